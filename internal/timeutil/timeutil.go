// Package timeutil provides utility functions for working with
// the epoch-aligned time buckets used in reports.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const (
	SecondsInAnHour = 3600
	SecondsInADay   = 86400
	HoursInADay     = 24
	DaysInAWeek     = 7
)

// Round rounds a float to the nearest integer, halves away from zero.
func Round(t float64) int {
	return int(math.Round(t))
}

// DayStart resets the given time to the start of its epoch day,
// i.e. floor(unix/86400)*86400. This is deliberately not local-time
// midnight so that day boundaries are stable across timezones.
func DayStart(t time.Time) time.Time {
	unix := t.Unix()
	return time.Unix(unix-mod(unix, SecondsInADay), 0)
}

// HourStart resets the given time to the start of its epoch hour.
func HourStart(t time.Time) time.Time {
	unix := t.Unix()
	return time.Unix(unix-mod(unix, SecondsInAnHour), 0)
}

// mod is a floored modulus so that timestamps before the epoch still
// bucket downward.
func mod(a, b int64) int64 {
	m := a % b
	if m < 0 {
		m += b
	}

	return m
}

// HoursAndMins expresses a duration in whole hours and leftover
// minutes using floor division.
func HoursAndMins(d time.Duration) (hrs, mins int) {
	totalSecs := int64(d.Seconds())
	hrs = int(totalSecs / SecondsInAnHour)
	mins = int(totalSecs % SecondsInAnHour / 60)

	return
}

// FormatDuration renders a duration in the fixed "XhYm" report layout.
func FormatDuration(d time.Duration) string {
	hrs, mins := HoursAndMins(d)
	return fmt.Sprintf("%dh %dm", hrs, mins)
}

// ToKey converts a time value to a database key for Bolt.
func ToKey(t time.Time) []byte {
	return []byte(t.Format(time.RFC3339Nano))
}
