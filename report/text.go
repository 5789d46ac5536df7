package report

import (
	"fmt"
	"strings"

	"github.com/ayodele/tempo/internal/session"
	"github.com/ayodele/tempo/internal/timeutil"
)

const (
	headerRule  = 50
	sectionRule = 30
	topAppLimit = 5
)

// FormatAsText renders a daily report in a fixed plain-text layout.
// Field ordering, widths, and floor-division hour/minute rounding are
// deterministic so the output is suitable for golden-file comparison.
func FormatAsText(r *DailyReport) string {
	var lines []string

	lines = append(lines,
		strings.Repeat("=", headerRule),
		"ACTIVITY REPORT",
		strings.Repeat("=", headerRule),
		"",
	)

	lines = append(lines,
		fmt.Sprintf("Total Time: %s", timeutil.FormatDuration(r.TotalTime)),
		fmt.Sprintf("Productivity Score: %d/100", r.ProductivityScore),
		"",
	)

	if len(r.TopApps) > 0 {
		lines = append(lines,
			"Top Applications:",
			strings.Repeat("-", sectionRule),
		)

		for i, app := range r.TopApps {
			if i == topAppLimit {
				break
			}

			hrs, mins := timeutil.HoursAndMins(app.Duration)
			lines = append(lines, fmt.Sprintf(
				"%d. %-25s %dh %dm",
				i+1,
				app.Name,
				hrs,
				mins,
			))
		}
	}

	lines = append(lines, "")

	if r.CategoryBreakdown != nil {
		lines = append(lines,
			"Time by Category:",
			strings.Repeat("-", sectionRule),
		)

		for _, cat := range session.Categories {
			duration := r.CategoryBreakdown[cat]
			hrs, mins := timeutil.HoursAndMins(duration)

			var percentage float64
			if r.TotalTime > 0 {
				percentage = duration.Seconds() / r.TotalTime.Seconds() * 100
			}

			lines = append(lines, fmt.Sprintf(
				"%-15s %dh %dm (%.0f%%)",
				capitalize(string(cat)),
				hrs,
				mins,
				percentage,
			))
		}
	}

	return strings.Join(lines, "\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
