// Package session defines application usage sessions
package session

import "time"

// Category is a productivity class assigned to an application.
type Category string

const (
	Productive  Category = "productive"
	Neutral     Category = "neutral"
	Distracting Category = "distracting"
)

// Categories lists the valid categories in display order.
var Categories = []Category{Productive, Neutral, Distracting}

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	return c == Productive || c == Neutral || c == Distracting
}

// Session represents one contiguous interval of usage of a single
// application. EndTime is the zero value while the session is ongoing,
// and Duration is only trustworthy once both timestamps are set.
type Session struct {
	AppName   string        `json:"app_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time,omitzero"`
	Duration  time.Duration `json:"duration,omitempty"`
	Category  Category      `json:"category,omitempty"`

	// Descriptive fields below are stripped when old data is compressed.
	ID          string    `json:"id,omitempty"`
	WindowTitle string    `json:"window_title,omitempty"`
	Hostname    string    `json:"hostname,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitzero"`
}

// Closed reports whether the session has both timestamps set.
func (s *Session) Closed() bool {
	return !s.StartTime.IsZero() && !s.EndTime.IsZero()
}

// ComputeDuration fills in Duration from the session timestamps when
// both are present. Sessions without an end time keep a zero duration.
func (s *Session) ComputeDuration() {
	if s.Closed() {
		s.Duration = s.EndTime.Sub(s.StartTime)
	}
}

// AppUsage pairs an application name with its accumulated duration.
type AppUsage struct {
	Name     string        `json:"name"`
	Duration time.Duration `json:"duration"`
}

// HourlySummary aggregates usage within a single epoch-aligned hour.
type HourlySummary struct {
	HourStart     time.Time     `json:"hour_start"`
	Apps          []AppUsage    `json:"apps"`
	TotalDuration time.Duration `json:"total_duration"`
}

// DailySummary aggregates a set of sessions into per-category totals.
type DailySummary struct {
	TotalTime       time.Duration `json:"total_time"`
	ProductiveTime  time.Duration `json:"productive_time"`
	NeutralTime     time.Duration `json:"neutral_time"`
	DistractingTime time.Duration `json:"distracting_time"`
	NumSessions     int           `json:"num_sessions"`
	NumApps         int           `json:"num_apps"`
}
