package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/ayodele/tempo/internal/session"
	"github.com/ayodele/tempo/internal/timeutil"
	"github.com/ayodele/tempo/internal/ui"
)

const barChartChar = "▇"

// RenderDaily prints a daily report and its colored sections to w.
func RenderDaily(w io.Writer, r *DailyReport) {
	header := pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("Activity report: %s", r.Date.Format("January 02, 2006"))

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s\n", ui.Blue("Summary")))
	builder.WriteString(fmt.Sprintf(
		"Time tracked: %s\n",
		ui.Green(timeutil.FormatDuration(r.TotalTime)),
	))
	builder.WriteString(fmt.Sprintln(
		"Productivity score:",
		ui.Green(fmt.Sprintf("%d/100", r.ProductivityScore)),
	))
	builder.WriteString(fmt.Sprintln("Sessions:", ui.Green(r.NumSessions)))

	builder.WriteString(fmt.Sprintf("\n%s\n", ui.Blue("Time by category")))

	for _, cat := range session.Categories {
		builder.WriteString(fmt.Sprintf(
			"%s: %s\n",
			capitalize(string(cat)),
			ui.Category(cat, timeutil.FormatDuration(r.CategoryBreakdown[cat])),
		))
	}

	if len(r.TopApps) > 0 {
		builder.WriteString(fmt.Sprintf("\n%s\n", ui.Blue("Top applications")))

		for i, app := range r.TopApps {
			if i == topAppLimit {
				break
			}

			builder.WriteString(fmt.Sprintf(
				"%d. %s: %s\n",
				i+1,
				app.Name,
				ui.Green(timeutil.FormatDuration(app.Duration)),
			))
		}
	}

	fmt.Fprintln(w, strings.TrimSpace(header+builder.String()))
}

// RenderWeekly prints the weekly totals with a per-day bar chart.
func RenderWeekly(w io.Writer, r *WeeklyReport) {
	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s\n", ui.Blue("Weekly summary")))
	builder.WriteString(fmt.Sprintf(
		"Time tracked: %s\n",
		ui.Green(timeutil.FormatDuration(r.WeeklyTotal)),
	))
	builder.WriteString(fmt.Sprintf(
		"Daily average: %s\n",
		ui.Green(timeutil.FormatDuration(r.DailyAverage)),
	))

	var bars pterm.Bars

	for _, day := range r.Days {
		bars = append(bars, pterm.Bar{
			Value: timeutil.Round(day.TotalTime.Minutes()),
			Label: day.Date.Format("Mon Jan 02"),
		})
	}

	chart := renderBarChart(bars, "Daily breakdown (minutes)")

	fmt.Fprintln(w, strings.TrimSpace(builder.String()+chart))
}

// RenderTrends prints the trend direction and score history.
func RenderTrends(w io.Writer, r *TrendReport) {
	if r.Direction == TrendInsufficientData {
		pterm.Info.Println(
			"Not enough daily activity to compute a trend yet",
		)
		return
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s\n", ui.Blue("Productivity trend")))
	builder.WriteString(fmt.Sprintln("Direction:", ui.Green(string(r.Direction))))
	builder.WriteString(fmt.Sprintf(
		"Average score: %s\n",
		ui.Green(fmt.Sprintf("%.1f", r.AverageScore)),
	))

	var bars pterm.Bars

	for i, score := range r.Scores {
		bars = append(bars, pterm.Bar{
			Value: score,
			Label: fmt.Sprintf("Day %d", i+1),
		})
	}

	chart := renderBarChart(bars, "Daily scores (chronological)")

	fmt.Fprintln(w, strings.TrimSpace(builder.String()+chart))
}

// RenderPeakHours prints the top hours ranked by productivity ratio.
func RenderPeakHours(w io.Writer, peaks []PeakHour) {
	if len(peaks) == 0 {
		pterm.Info.Println("No activity recorded in the last 7 days")
		return
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("%s\n", ui.Blue("Peak productivity hours")))

	for _, peak := range peaks {
		builder.WriteString(fmt.Sprintf(
			"%02d:00 - %s productive (%s tracked)\n",
			peak.Hour,
			ui.Green(fmt.Sprintf("%.0f%%", peak.ProductivityRatio*100)),
			timeutil.FormatDuration(peak.TotalTime),
		))
	}

	fmt.Fprintln(w, strings.TrimSpace(builder.String()))
}

// RenderHourly prints an hour-by-hour bar chart of tracked minutes.
func RenderHourly(w io.Writer, summaries []session.HourlySummary) {
	if len(summaries) == 0 {
		pterm.Info.Println("No sessions found for the specified time range")
		return
	}

	var bars pterm.Bars

	for _, summary := range summaries {
		bars = append(bars, pterm.Bar{
			Value: timeutil.Round(summary.TotalDuration.Minutes()),
			Label: summary.HourStart.Format("15:00"),
		})
	}

	fmt.Fprintln(
		w,
		strings.TrimSpace(renderBarChart(bars, "Hourly breakdown (minutes)")),
	)
}

func renderBarChart(bars pterm.Bars, title string) string {
	if len(bars) == 0 {
		return ""
	}

	header := ui.Blue(fmt.Sprintf("\n%s", title))

	chart, err := pterm.DefaultBarChart.
		WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}
