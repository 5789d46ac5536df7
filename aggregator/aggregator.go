// Package aggregator transforms raw session records into merged
// timelines and hourly and daily summaries.
package aggregator

import (
	"sort"
	"time"

	"github.com/ayodele/tempo/internal/session"
	"github.com/ayodele/tempo/internal/timeutil"
)

const (
	// DefaultGapThreshold is the largest silent gap between two
	// same-app sessions that still permits merging them into one.
	DefaultGapThreshold = 10 * time.Second

	// DefaultMinDuration is the shortest session worth keeping.
	DefaultMinDuration = 30 * time.Second

	// DefaultCompressAfterDays is the age beyond which sessions are
	// stripped down to their essential fields.
	DefaultCompressAfterDays = 30
)

// Aggregator holds the thresholds applied when cleaning up session
// lists. The zero value is not usable; construct with New.
type Aggregator struct {
	GapThreshold time.Duration
	MinDuration  time.Duration

	now func() time.Time
}

// New returns an Aggregator with the default thresholds.
func New() *Aggregator {
	return &Aggregator{
		GapThreshold: DefaultGapThreshold,
		MinDuration:  DefaultMinDuration,
		now:          time.Now,
	}
}

// MergeConsecutiveSessions collapses runs of sessions in the same
// application into one session per run, provided the gap between a
// session's end and the next session's start does not exceed the gap
// threshold. The input is sorted by start time first (stable, so ties
// keep their original order). App names must match exactly; a session
// with no end time never merges with its successor. The result is
// sorted, non-overlapping, and idempotent under re-merging.
func (a *Aggregator) MergeConsecutiveSessions(
	sessions []session.Session,
) []session.Session {
	if len(sessions) == 0 {
		return []session.Session{}
	}

	sorted := make([]session.Session, len(sessions))
	copy(sorted, sessions)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.Before(sorted[j].StartTime)
	})

	merged := make([]session.Session, 0, len(sorted))

	current := sorted[0]

	for _, sess := range sorted[1:] {
		if a.canMerge(&current, &sess) {
			end := sess.EndTime
			if end.IsZero() {
				end = sess.StartTime
			}

			current.EndTime = end
			current.Duration = current.EndTime.Sub(current.StartTime)

			continue
		}

		current.ComputeDuration()
		merged = append(merged, current)
		current = sess
	}

	current.ComputeDuration()
	merged = append(merged, current)

	return merged
}

func (a *Aggregator) canMerge(current, next *session.Session) bool {
	if next.AppName != current.AppName {
		return false
	}

	// An open session has no end to measure the gap from.
	if current.EndTime.IsZero() {
		return false
	}

	return next.StartTime.Sub(current.EndTime) <= a.GapThreshold
}

// CreateHourlySummary buckets session time into epoch-aligned hours.
// A session spanning hour boundaries contributes partial time to its
// first and last hours and a full hour to every hour in between. Only
// hours that received time appear in the result, in ascending order.
// The summed bucket totals equal the summed input durations.
func (a *Aggregator) CreateHourlySummary(
	sessions []session.Session,
) []session.HourlySummary {
	if len(sessions) == 0 {
		return []session.HourlySummary{}
	}

	type bucket struct {
		apps  map[string]int64
		total int64
	}

	buckets := make(map[int64]*bucket)

	add := func(hour int64, app string, secs int64) {
		b, ok := buckets[hour]
		if !ok {
			b = &bucket{apps: make(map[string]int64)}
			buckets[hour] = b
		}

		b.apps[app] += secs
		b.total += secs
	}

	for i := range sessions {
		sess := sessions[i]

		start := sess.StartTime.Unix()

		end := start
		if !sess.EndTime.IsZero() {
			end = sess.EndTime.Unix()
		}

		if end <= start {
			continue
		}

		startHour := hourFloor(start)
		endHour := hourFloor(end)

		if startHour == endHour {
			add(startHour, sess.AppName, end-start)
			continue
		}

		add(startHour, sess.AppName, startHour+timeutil.SecondsInAnHour-start)

		for hour := startHour + timeutil.SecondsInAnHour; hour < endHour; hour += timeutil.SecondsInAnHour {
			add(hour, sess.AppName, timeutil.SecondsInAnHour)
		}

		if end > endHour {
			add(endHour, sess.AppName, end-endHour)
		}
	}

	hours := make([]int64, 0, len(buckets))
	for hour := range buckets {
		hours = append(hours, hour)
	}

	sort.Slice(hours, func(i, j int) bool { return hours[i] < hours[j] })

	result := make([]session.HourlySummary, 0, len(hours))

	for _, hour := range hours {
		b := buckets[hour]

		apps := make([]session.AppUsage, 0, len(b.apps))
		for name, secs := range b.apps {
			apps = append(apps, session.AppUsage{
				Name:     name,
				Duration: time.Duration(secs) * time.Second,
			})
		}

		sort.Slice(apps, func(i, j int) bool {
			if apps[i].Duration != apps[j].Duration {
				return apps[i].Duration > apps[j].Duration
			}

			return apps[i].Name < apps[j].Name
		})

		result = append(result, session.HourlySummary{
			HourStart:     time.Unix(hour, 0),
			Apps:          apps,
			TotalDuration: time.Duration(b.total) * time.Second,
		})
	}

	return result
}

// hourFloor aligns an epoch timestamp to the start of its hour,
// flooring so pre-epoch timestamps still bucket downward.
func hourFloor(unix int64) int64 {
	m := unix % timeutil.SecondsInAnHour
	if m < 0 {
		m += timeutil.SecondsInAnHour
	}

	return unix - m
}

// CreateDailySummary sums session durations into per-category totals.
// Sessions without a category count as neutral, and sessions without
// a duration contribute nothing but are still counted.
func (a *Aggregator) CreateDailySummary(
	sessions []session.Session,
) session.DailySummary {
	summary := session.DailySummary{
		NumSessions: len(sessions),
	}

	appsSeen := make(map[string]struct{})

	for i := range sessions {
		sess := sessions[i]

		summary.TotalTime += sess.Duration
		appsSeen[sess.AppName] = struct{}{}

		switch sess.Category {
		case session.Productive:
			summary.ProductiveTime += sess.Duration
		case session.Distracting:
			summary.DistractingTime += sess.Duration
		default:
			summary.NeutralTime += sess.Duration
		}
	}

	summary.NumApps = len(appsSeen)

	return summary
}

// FilterShortSessions drops sessions shorter than the minimum
// duration. Sessions with no recorded duration count as zero-length
// and are dropped.
func (a *Aggregator) FilterShortSessions(
	sessions []session.Session,
) []session.Session {
	kept := make([]session.Session, 0, len(sessions))

	for i := range sessions {
		if sessions[i].Duration >= a.MinDuration {
			kept = append(kept, sessions[i])
		}
	}

	return kept
}

// CompressOldData strips the descriptive fields from sessions older
// than daysThreshold days, leaving only the app name, timestamps,
// duration, and category. Newer sessions pass through as copies.
func (a *Aggregator) CompressOldData(
	sessions []session.Session,
	daysThreshold int,
) []session.Session {
	threshold := a.now().
		Add(-time.Duration(daysThreshold) * timeutil.HoursInADay * time.Hour)

	compressed := make([]session.Session, 0, len(sessions))

	for i := range sessions {
		sess := sessions[i]

		if sess.StartTime.Before(threshold) {
			sess = session.Session{
				AppName:   sess.AppName,
				StartTime: sess.StartTime,
				EndTime:   sess.EndTime,
				Duration:  sess.Duration,
				Category:  sess.Category,
			}
		}

		compressed = append(compressed, sess)
	}

	return compressed
}
