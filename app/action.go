package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/gen2brain/beeep"
	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayodele/tempo/aggregator"
	"github.com/ayodele/tempo/category"
	"github.com/ayodele/tempo/export"
	"github.com/ayodele/tempo/internal/config"
	"github.com/ayodele/tempo/internal/session"
	"github.com/ayodele/tempo/internal/timeutil"
	"github.com/ayodele/tempo/report"
	"github.com/ayodele/tempo/store"
	"github.com/ayodele/tempo/tracker"
)

var appConfig *config.Config

var (
	errAlreadyRunning = errors.New(
		"tracking is already running: stop it with 'tempo stop'",
	)
	errMissingBackupPath = errors.New(
		"please provide a path for the backup file",
	)
	errUnknownFormat = errors.New(
		"the export format must be one of: csv, json",
	)
)

// newAggregator applies the configured thresholds on top of the
// defaults.
func newAggregator() *aggregator.Aggregator {
	agg := aggregator.New()

	if appConfig.Tracking.GapThreshold > 0 {
		agg.GapThreshold = appConfig.Tracking.GapThreshold
	}

	if appConfig.Tracking.MinDuration > 0 {
		agg.MinDuration = appConfig.Tracking.MinDuration
	}

	return agg
}

func reportHelper() (*report.Generator, *store.Client, error) {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	categorizer := category.New(config.RulesFilePath())

	return report.NewGenerator(db, categorizer), db, nil
}

// parseDate turns a human date string into a time value, defaulting
// to now for an empty string.
func parseDate(s string) (time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return time.Now(), nil
	}

	dt, err := dateparser.Parse(nil, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date %q: %w", s, err)
	}

	return dt.Time, nil
}

func reportAction(ctx *cli.Context) error {
	gen, db, err := reportHelper()
	if err != nil {
		return err
	}
	defer db.Close()

	if ctx.Bool("weekly") {
		weekly, genErr := gen.GenerateWeeklyReport()
		if genErr != nil {
			return genErr
		}

		report.RenderWeekly(config.Stdout, weekly)

		return nil
	}

	date, err := parseDate(ctx.String("date"))
	if err != nil {
		return err
	}

	if ctx.Bool("hourly") {
		return hourlyReport(db, date)
	}

	daily, err := gen.GenerateDailyReport(date)
	if err != nil {
		return err
	}

	if ctx.Bool("text") {
		fmt.Fprintln(config.Stdout, report.FormatAsText(daily))
		return nil
	}

	report.RenderDaily(config.Stdout, daily)
	notifyGoals(daily)

	return nil
}

// hourlyReport renders the hour-by-hour breakdown for the day
// containing date, after merging fragmented sessions.
func hourlyReport(db store.DB, date time.Time) error {
	dayStart := timeutil.DayStart(date)
	dayEnd := dayStart.Add(timeutil.SecondsInADay * time.Second)

	sessions, err := db.GetSessionsByDate(
		dayStart,
		dayEnd.Add(-time.Nanosecond),
	)
	if err != nil {
		return err
	}

	agg := newAggregator()
	merged := agg.MergeConsecutiveSessions(sessions)

	report.RenderHourly(config.Stdout, agg.CreateHourlySummary(merged))

	return nil
}

func trendsAction(ctx *cli.Context) error {
	gen, db, err := reportHelper()
	if err != nil {
		return err
	}
	defer db.Close()

	trends, err := gen.CalculateTrends(ctx.Int("days"))
	if err != nil {
		return err
	}

	report.RenderTrends(config.Stdout, trends)

	return nil
}

func peakAction(ctx *cli.Context) error {
	gen, db, err := reportHelper()
	if err != nil {
		return err
	}
	defer db.Close()

	peaks, err := gen.GetPeakProductivityHours()
	if err != nil {
		return err
	}

	report.RenderPeakHours(config.Stdout, peaks)

	return nil
}

func categoryListAction(_ *cli.Context) error {
	categorizer := category.New(config.RulesFilePath())

	rules := categorizer.Rules()
	if len(rules) == 0 {
		pterm.Info.Println("No category overrides are configured")
		return nil
	}

	for _, rule := range rules {
		fmt.Fprintf(config.Stdout, "%s: %s\n", rule.App, rule.Category)
	}

	return nil
}

func categoryGetAction(ctx *cli.Context) error {
	appName := ctx.Args().First()
	if appName == "" {
		return cli.ShowSubcommandHelp(ctx)
	}

	categorizer := category.New(config.RulesFilePath())

	fmt.Fprintln(config.Stdout, categorizer.GetCategory(appName))

	return nil
}

func categorySetAction(ctx *cli.Context) error {
	if ctx.Args().Len() != 2 {
		return cli.ShowSubcommandHelp(ctx)
	}

	appName := ctx.Args().Get(0)
	cat := session.Category(ctx.Args().Get(1))

	categorizer := category.New(config.RulesFilePath())

	if err := categorizer.SetCategory(appName, cat); err != nil {
		return err
	}

	if err := categorizer.SaveRules(); err != nil {
		return err
	}

	pterm.Success.Printfln("%s is now categorized as %s", appName, cat)

	return nil
}

func exportAction(ctx *cli.Context) error {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}
	defer db.Close()

	format := ctx.String("format")
	if format == "" {
		format = appConfig.Export.DefaultFormat
	}

	start := time.Unix(0, 0)

	if ctx.String("start") != "" {
		start, err = parseDate(ctx.String("start"))
		if err != nil {
			return err
		}
	}

	end, err := parseDate(ctx.String("end"))
	if err != nil {
		return err
	}

	output := ctx.String("output")
	if output == "" {
		output = "tempo_export." + format
	}

	exporter := export.New(db, config.DBFilePath())

	anonymize := ctx.Bool("anonymize") || appConfig.Export.Anonymize

	switch format {
	case "csv":
		err = exporter.ExportCSV(output, start, end, anonymize)
	case "json":
		err = exporter.ExportJSON(output, start, end)
	default:
		return fmt.Errorf("%w: got %q", errUnknownFormat, format)
	}

	if err != nil {
		return err
	}

	pterm.Success.Printfln("sessions exported to %s", output)

	return nil
}

func backupAction(ctx *cli.Context) error {
	backupPath := ctx.Args().First()
	if backupPath == "" {
		return errMissingBackupPath
	}

	exporter := export.New(nil, config.DBFilePath())

	if err := exporter.BackupDatabase(backupPath); err != nil {
		return err
	}

	pterm.Success.Printfln("database backed up to %s", backupPath)

	return nil
}

func restoreAction(ctx *cli.Context) error {
	backupPath := ctx.Args().First()
	if backupPath == "" {
		return errMissingBackupPath
	}

	var confirmed bool

	err := huh.NewConfirm().
		Title("Replace the current database?").
		Description("All sessions recorded since the backup will be lost.").
		Value(&confirmed).
		Run()
	if err != nil {
		return err
	}

	if !confirmed {
		pterm.Info.Println("restore cancelled")
		return nil
	}

	exporter := export.New(nil, config.DBFilePath())

	if err := exporter.RestoreDatabase(backupPath); err != nil {
		return err
	}

	pterm.Success.Printfln("database restored from %s", backupPath)

	return nil
}

func compressAction(ctx *cli.Context) error {
	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}
	defer db.Close()

	sessions, err := db.GetSessionsByDate(time.Unix(0, 0), time.Now())
	if err != nil {
		return err
	}

	agg := newAggregator()

	compressed := agg.CompressOldData(sessions, ctx.Int("days"))

	for i := range compressed {
		if err := db.UpdateSession(&compressed[i]); err != nil {
			return err
		}
	}

	pterm.Success.Printfln("compressed %d sessions", len(compressed))

	return nil
}

func startAction(_ *cli.Context) error {
	if tracker.Running(config.PIDFilePath()) {
		return errAlreadyRunning
	}

	if err := tracker.WritePIDFile(config.PIDFilePath()); err != nil {
		return err
	}
	defer os.Remove(config.PIDFilePath())

	db, err := store.NewClient(config.DBFilePath())
	if err != nil {
		return err
	}
	defer db.Close()

	categorizer := category.New(config.RulesFilePath())
	manager := tracker.NewManager(db, categorizer, appConfig)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	pterm.Info.Printfln(
		"tracking started on %s (sampling every %s)",
		tracker.Platform(),
		appConfig.Tracking.SampleInterval,
	)

	err = manager.Run(ctx)

	slog.Info("exiting tempo")

	return err
}

func stopAction(_ *cli.Context) error {
	if err := tracker.StopDaemon(config.PIDFilePath()); err != nil {
		return err
	}

	pterm.Success.Println("tracking stopped")

	return nil
}

func statusAction(_ *cli.Context) error {
	if tracker.Running(config.PIDFilePath()) {
		pterm.Success.Println("tracking is running")
	} else {
		pterm.Info.Println("tracking is not running")
	}

	gen, db, err := reportHelper()
	if err != nil {
		return err
	}
	defer db.Close()

	daily, err := gen.GenerateDailyReport(time.Now())
	if err != nil {
		return err
	}

	report.RenderDaily(config.Stdout, daily)
	notifyGoals(daily)

	return nil
}

// notifyGoals raises a desktop notification when today's totals cross
// the configured goal thresholds.
func notifyGoals(daily *report.DailyReport) {
	if !appConfig.Notifications.Enabled {
		return
	}

	goals := appConfig.Goals

	productive := daily.CategoryBreakdown[session.Productive].Hours()
	distracting := daily.CategoryBreakdown[session.Distracting].Hours()

	if goals.DailyProductiveHours > 0 &&
		productive >= goals.DailyProductiveHours {
		_ = beeep.Notify(
			"Tempo",
			"Daily productive goal reached. Nice work!",
			"",
		)
	}

	if goals.MaxDistractingHours > 0 &&
		distracting > goals.MaxDistractingHours {
		_ = beeep.Notify(
			"Tempo",
			"You have passed your distracting time limit for today.",
			"",
		)
	}
}
