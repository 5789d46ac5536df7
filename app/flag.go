package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	dateFlag = &cli.StringFlag{
		Name:    "date",
		Aliases: []string{"d"},
		Usage:   "Report on a specific day (e.g. 'yesterday', '2026-08-20')",
	}

	weeklyFlag = &cli.BoolFlag{
		Name:    "weekly",
		Aliases: []string{"w"},
		Usage:   "Report on the trailing 7 days instead of a single day",
	}

	hourlyFlag = &cli.BoolFlag{
		Name:  "hourly",
		Usage: "Show an hour-by-hour breakdown of the day",
	}

	textFlag = &cli.BoolFlag{
		Name:  "text",
		Usage: "Print the report as fixed-layout plain text",
	}

	daysFlag = &cli.IntFlag{
		Name:  "days",
		Usage: "Number of days to analyze",
		Value: 7,
	}

	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Export format: csv or json. Defaults to the configured format",
	}

	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Path of the export file",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "Only export sessions starting on or after this date",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "Only export sessions starting on or before this date",
	}

	anonymizeFlag = &cli.BoolFlag{
		Name:  "anonymize",
		Usage: "Replace application names with stable pseudonyms",
	}

	compressDaysFlag = &cli.IntFlag{
		Name:  "days",
		Usage: "Compress sessions older than this many days",
		Value: 30,
	}
)
