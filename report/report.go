// Package report composes the session store, categorizer, and
// aggregator into daily and weekly productivity reports
package report

import (
	"sort"
	"time"

	"github.com/ayodele/tempo/aggregator"
	"github.com/ayodele/tempo/category"
	"github.com/ayodele/tempo/internal/session"
	"github.com/ayodele/tempo/internal/timeutil"
	"github.com/ayodele/tempo/store"
)

// TrendDirection describes how the productivity score moved across a
// reporting window.
type TrendDirection string

const (
	TrendImproving        TrendDirection = "improving"
	TrendDeclining        TrendDirection = "declining"
	TrendStable           TrendDirection = "stable"
	TrendInsufficientData TrendDirection = "insufficient_data"
)

// trendThreshold is the score-point difference between window halves
// required before a trend counts as improving or declining.
const trendThreshold = 5

// DailyReport summarizes one epoch-aligned day of activity.
type DailyReport struct {
	Date              time.Time                          `json:"date"`
	TotalTime         time.Duration                      `json:"total_time"`
	ProductivityScore int                                `json:"productivity_score"`
	TopApps           []session.AppUsage                 `json:"top_apps"`
	CategoryBreakdown map[session.Category]time.Duration `json:"category_breakdown"`
	NumSessions       int                                `json:"num_sessions"`
}

// DayTotal is one day's entry in a weekly report.
type DayTotal struct {
	Date              time.Time     `json:"date"`
	TotalTime         time.Duration `json:"total_time"`
	ProductivityScore int           `json:"productivity_score"`
}

// WeeklyReport summarizes the trailing seven days.
type WeeklyReport struct {
	Days         []DayTotal    `json:"days"`
	WeeklyTotal  time.Duration `json:"weekly_total"`
	DailyAverage time.Duration `json:"daily_average"`
	StartDate    time.Time     `json:"start_date"`
	EndDate      time.Time     `json:"end_date"`
}

// TrendReport describes the direction of the productivity score over
// a number of days.
type TrendReport struct {
	Direction    TrendDirection `json:"trend_direction"`
	AverageScore float64        `json:"average_score"`
	Scores       []int          `json:"scores,omitempty"`
}

// PeakHour is one hour-of-day entry ranked by productivity ratio.
type PeakHour struct {
	Hour              int           `json:"hour"`
	ProductivityRatio float64       `json:"productivity_ratio"`
	TotalTime         time.Duration `json:"total_time"`
}

// Generator produces reports from stored sessions. Each call fetches
// a point-in-time snapshot from the store and computes eagerly, so a
// Generator holds no state between calls.
type Generator struct {
	db          store.DB
	categorizer *category.Categorizer
	aggregator  *aggregator.Aggregator

	now func() time.Time
}

// NewGenerator creates a report generator backed by the given store
// and categorizer.
func NewGenerator(db store.DB, c *category.Categorizer) *Generator {
	return &Generator{
		db:          db,
		categorizer: c,
		aggregator:  aggregator.New(),
		now:         time.Now,
	}
}

// resolveCategory prefers the category recorded on the session and
// falls back to the categorizer, so re-categorizing an app does not
// rewrite history unless the summary is recomputed from scratch.
func (g *Generator) resolveCategory(sess *session.Session) session.Category {
	if sess.Category != "" {
		return sess.Category
	}

	return g.categorizer.GetCategory(sess.AppName)
}

// GenerateDailyReport reports on the epoch day containing ts. Day
// boundaries are computed as floor(unix/86400)*86400 rather than
// local midnight, a deliberate carry-over from how sessions are
// stored; reports near midnight in non-UTC timezones attribute time
// to the UTC day.
func (g *Generator) GenerateDailyReport(ts time.Time) (*DailyReport, error) {
	dayStart := timeutil.DayStart(ts)
	dayEnd := dayStart.Add(timeutil.SecondsInADay * time.Second)

	sessions, err := g.db.GetSessionsByDate(
		dayStart,
		dayEnd.Add(-time.Nanosecond),
	)
	if err != nil {
		return nil, err
	}

	breakdown := make(map[session.Category]time.Duration, len(session.Categories))
	for _, cat := range session.Categories {
		breakdown[cat] = 0
	}

	var totalTime time.Duration

	appTimes := make(map[string]time.Duration)

	var appOrder []string

	for i := range sessions {
		sess := sessions[i]

		if sess.Duration == 0 {
			continue
		}

		totalTime += sess.Duration
		breakdown[g.resolveCategory(&sess)] += sess.Duration

		if _, seen := appTimes[sess.AppName]; !seen {
			appOrder = append(appOrder, sess.AppName)
		}

		appTimes[sess.AppName] += sess.Duration
	}

	score := g.categorizer.CalculateProductivityScore(
		breakdown[session.Productive],
		breakdown[session.Neutral],
		breakdown[session.Distracting],
	)

	topApps := make([]session.AppUsage, 0, len(appOrder))
	for _, name := range appOrder {
		topApps = append(topApps, session.AppUsage{
			Name:     name,
			Duration: appTimes[name],
		})
	}

	// Stable sort keeps first-seen order between equal durations.
	sort.SliceStable(topApps, func(i, j int) bool {
		return topApps[i].Duration > topApps[j].Duration
	})

	return &DailyReport{
		Date:              ts,
		TotalTime:         totalTime,
		ProductivityScore: score,
		TopApps:           topApps,
		CategoryBreakdown: breakdown,
		NumSessions:       len(sessions),
	}, nil
}

// GenerateWeeklyReport produces one daily report per day for the
// trailing seven days and sums them.
func (g *Generator) GenerateWeeklyReport() (*WeeklyReport, error) {
	now := g.now()
	weekStart := now.Add(-timeutil.DaysInAWeek * timeutil.SecondsInADay * time.Second)

	weekly := &WeeklyReport{
		StartDate: weekStart,
		EndDate:   now,
	}

	for i := 0; i < timeutil.DaysInAWeek; i++ {
		day := weekStart.Add(time.Duration(i) * timeutil.SecondsInADay * time.Second)

		daily, err := g.GenerateDailyReport(day)
		if err != nil {
			return nil, err
		}

		weekly.Days = append(weekly.Days, DayTotal{
			Date:              day,
			TotalTime:         daily.TotalTime,
			ProductivityScore: daily.ProductivityScore,
		})

		weekly.WeeklyTotal += daily.TotalTime
	}

	weekly.DailyAverage = weekly.WeeklyTotal / timeutil.DaysInAWeek

	return weekly, nil
}

// CalculateTrends compares the productivity scores of the first and
// second halves of the last `days` days. Days without any activity
// are skipped; fewer than two qualifying days yields an
// insufficient-data result instead of an error.
func (g *Generator) CalculateTrends(days int) (*TrendReport, error) {
	now := g.now()

	var scores []int

	for i := 0; i < days; i++ {
		day := now.Add(-time.Duration(i) * timeutil.SecondsInADay * time.Second)

		daily, err := g.GenerateDailyReport(day)
		if err != nil {
			return nil, err
		}

		if daily.TotalTime > 0 {
			scores = append(scores, daily.ProductivityScore)
		}
	}

	if len(scores) < 2 {
		report := &TrendReport{Direction: TrendInsufficientData}
		if len(scores) == 1 {
			report.AverageScore = float64(scores[0])
		}

		return report, nil
	}

	// Scores were collected walking backward from today.
	reverse(scores)

	half := len(scores) / 2
	firstHalfAvg := mean(scores[:half])
	secondHalfAvg := mean(scores[half:])

	direction := TrendStable

	switch {
	case secondHalfAvg > firstHalfAvg+trendThreshold:
		direction = TrendImproving
	case secondHalfAvg < firstHalfAvg-trendThreshold:
		direction = TrendDeclining
	}

	return &TrendReport{
		Direction:    direction,
		AverageScore: mean(scores),
		Scores:       scores,
	}, nil
}

// GetPeakProductivityHours ranks the local hours of day by the share
// of productive time accumulated over the trailing seven days,
// returning the top five.
func (g *Generator) GetPeakProductivityHours() ([]PeakHour, error) {
	now := g.now()
	weekStart := now.Add(-timeutil.DaysInAWeek * timeutil.SecondsInADay * time.Second)

	sessions, err := g.db.GetSessionsByDate(weekStart, now)
	if err != nil {
		return nil, err
	}

	var productive, total [timeutil.HoursInADay]time.Duration

	for i := range sessions {
		sess := sessions[i]

		if sess.Duration == 0 {
			continue
		}

		hour := sess.StartTime.Hour()

		total[hour] += sess.Duration

		if g.resolveCategory(&sess) == session.Productive {
			productive[hour] += sess.Duration
		}
	}

	peaks := make([]PeakHour, 0, timeutil.HoursInADay)

	for hour := 0; hour < timeutil.HoursInADay; hour++ {
		if total[hour] == 0 {
			continue
		}

		peaks = append(peaks, PeakHour{
			Hour:              hour,
			ProductivityRatio: productive[hour].Seconds() / total[hour].Seconds(),
			TotalTime:         total[hour],
		})
	}

	// Ties keep ascending hour order.
	sort.SliceStable(peaks, func(i, j int) bool {
		return peaks[i].ProductivityRatio > peaks[j].ProductivityRatio
	})

	if len(peaks) > 5 {
		peaks = peaks[:5]
	}

	return peaks, nil
}

func mean(scores []int) float64 {
	var sum int
	for _, s := range scores {
		sum += s
	}

	return float64(sum) / float64(len(scores))
}

func reverse(s []int) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
