// Package app defines the tempo command-line application
package app

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayodele/tempo/internal/config"
	"github.com/ayodele/tempo/internal/ui"
)

const (
	envNoColor      = "NO_COLOR"
	envTempoNoColor = "TEMPO_NO_COLOR"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the tempo app instance.
func Get() *cli.App {
	tempoApp := &cli.App{
		Name: "tempo",
		Usage: `
		Tempo records which application you are working in over time and turns
		the recorded sessions into daily and weekly productivity reports.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              config.Version,
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:   "start",
				Usage:  "Start tracking application activity in the foreground",
				Action: startAction,
			},
			{
				Name:   "stop",
				Usage:  "Stop a running tracker",
				Action: stopAction,
			},
			{
				Name:   "status",
				Usage:  "Print the tracker status and today's totals",
				Action: statusAction,
			},
			{
				Name:   "report",
				Usage:  "Show an activity report. Defaults to today",
				Flags: []cli.Flag{
					dateFlag,
					weeklyFlag,
					hourlyFlag,
					textFlag,
				},
				Action: reportAction,
			},
			{
				Name:   "trends",
				Usage:  "Show the productivity score trend over recent days",
				Flags:  []cli.Flag{daysFlag},
				Action: trendsAction,
			},
			{
				Name:   "peak",
				Usage:  "Show the hours of day with the highest productivity",
				Action: peakAction,
			},
			{
				Name:  "category",
				Usage: "Inspect or override application categories",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List the category override rules",
						Action: categoryListAction,
					},
					{
						Name:      "get",
						Usage:     "Resolve the category for an application",
						ArgsUsage: "<app>",
						Action:    categoryGetAction,
					},
					{
						Name:      "set",
						Usage:     "Override the category for an application",
						ArgsUsage: "<app> <productive|neutral|distracting>",
						Action:    categorySetAction,
					},
				},
			},
			{
				Name:  "export",
				Usage: "Export sessions to a CSV or JSON file",
				Flags: []cli.Flag{
					formatFlag,
					outputFlag,
					startFlag,
					endFlag,
					anonymizeFlag,
				},
				Action: exportAction,
			},
			{
				Name:      "backup",
				Usage:     "Copy the database to a backup file",
				ArgsUsage: "<path>",
				Action:    backupAction,
			},
			{
				Name:      "restore",
				Usage:     "Replace the database with a backup file",
				ArgsUsage: "<path>",
				Action:    restoreAction,
			},
			{
				Name:   "compress",
				Usage:  "Strip descriptive fields from old sessions",
				Flags:  []cli.Flag{compressDaysFlag},
				Action: compressAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
		},
		Action: statusAction,
		Before: beforeAction,
	}

	return tempoApp
}

func beforeAction(ctx *cli.Context) error {
	config.InitializePaths()
	config.InitializeLogger()

	cfg, err := config.New(
		config.WithViperConfig(config.ConfigFilePath()),
	)
	if err != nil {
		return err
	}

	appConfig = cfg
	ui.DarkTheme = cfg.Display.DarkTheme

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if TEMPO_NO_COLOR is set
	if _, exists := os.LookupEnv(envTempoNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}
