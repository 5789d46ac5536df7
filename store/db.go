package store

import (
	"time"

	"github.com/ayodele/tempo/internal/session"
)

// DailyStats holds the per-category totals for a time range, computed
// at the store level.
type DailyStats struct {
	TotalTime       time.Duration `json:"total_time"`
	ProductiveTime  time.Duration `json:"productive_time"`
	NeutralTime     time.Duration `json:"neutral_time"`
	DistractingTime time.Duration `json:"distracting_time"`
}

// DB is the database storage interface.
type DB interface {
	// GetSessionsByDate returns saved sessions whose start time falls
	// within the given range, sorted by start time.
	GetSessionsByDate(
		startTime, endTime time.Time,
	) ([]session.Session, error)
	// GetDailyStats sums recorded durations per category for sessions
	// within the given range.
	GetDailyStats(startTime, endTime time.Time) (DailyStats, error)
	// UpdateSession updates a session. The session is created if it
	// doesn't exist already, or overwritten if it does.
	UpdateSession(sess *session.Session) error
	// SaveApplication records an application and its category in the
	// app registry.
	SaveApplication(name string, cat session.Category) error
	// GetApplication looks up a registered application's category.
	GetApplication(name string) (session.Category, bool, error)
	// DeleteSessions deletes one or more saved sessions.
	DeleteSessions(sessions []session.Session) error
	// Close ends the database connection.
	Close() error
	// Open begins a database connection.
	Open() error
}
