// Package tracker owns the live session lifecycle: opening a session
// when an application gains focus, and closing and persisting it when
// focus moves on
package tracker

import (
	"context"
	"log/slog"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/kballard/go-shellquote"

	"github.com/ayodele/tempo/category"
	"github.com/ayodele/tempo/internal/config"
	"github.com/ayodele/tempo/internal/session"
	"github.com/ayodele/tempo/store"
)

// Manager tracks the currently focused application. All session
// open/close transitions go through the Manager's lock so that at
// most one session is ever open at a time.
type Manager struct {
	mu          sync.Mutex
	db          store.DB
	categorizer *category.Categorizer
	cfg         *config.Config
	current     *session.Session
	hostname    string

	now func() time.Time
}

// NewManager creates a session manager that persists closed sessions
// through db.
func NewManager(
	db store.DB,
	categorizer *category.Categorizer,
	cfg *config.Config,
) *Manager {
	hostname, _ := os.Hostname()

	return &Manager{
		db:          db,
		categorizer: categorizer,
		cfg:         cfg,
		hostname:    hostname,
		now:         time.Now,
	}
}

// StartSession closes any open session and opens a new one for the
// given application.
func (m *Manager) StartSession(appName, windowTitle string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.endCurrentLocked(); err != nil {
		return err
	}

	now := m.now()

	m.current = &session.Session{
		AppName:     appName,
		StartTime:   now,
		WindowTitle: windowTitle,
		Hostname:    m.hostname,
		CreatedAt:   now,
	}

	slog.Debug("session opened", slog.String("app", appName))

	return nil
}

// SwitchApplication opens a new session when focus moves to a
// different application. Focus staying within the same application
// leaves the current session running.
func (m *Manager) SwitchApplication(appName, windowTitle string) error {
	m.mu.Lock()

	if m.current != nil && m.current.AppName == appName {
		m.mu.Unlock()
		return nil
	}

	m.mu.Unlock()

	return m.StartSession(appName, windowTitle)
}

// EndCurrentSession closes the open session, assigns its category,
// and persists it along with the application registry entry.
func (m *Manager) EndCurrentSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.endCurrentLocked()
}

func (m *Manager) endCurrentLocked() error {
	if m.current == nil || !m.current.EndTime.IsZero() {
		return nil
	}

	m.current.EndTime = m.now()
	m.current.ComputeDuration()
	m.current.Category = m.categorizer.GetCategory(m.current.AppName)

	slog.Debug("session closed", slog.String("dump", spew.Sdump(m.current)))

	if err := m.db.UpdateSession(m.current); err != nil {
		return err
	}

	err := m.db.SaveApplication(m.current.AppName, m.current.Category)
	if err != nil {
		return err
	}

	m.current = nil

	return nil
}

// Current returns a copy of the open session, if any.
func (m *Manager) Current() (session.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return session.Session{}, false
	}

	return *m.current, true
}

// Run samples the active window on the configured interval until the
// context is cancelled, then closes the open session and runs the
// configured stop command.
func (m *Manager) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.Tracking.SampleInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if err := m.EndCurrentSession(); err != nil {
				return err
			}

			return m.runStopCmd()
		case <-ticker.C:
			app, title, ok := ActiveWindow()
			if !ok {
				continue
			}

			if err := m.SwitchApplication(app, title); err != nil {
				return err
			}
		}
	}
}

// runStopCmd executes the user's configured stop hook, if any.
func (m *Manager) runStopCmd() error {
	stopCmd := m.cfg.Tracking.StopCmd
	if stopCmd == "" {
		return nil
	}

	words, err := shellquote.Split(stopCmd)
	if err != nil {
		return err
	}

	cmd := exec.Command(words[0], words[1:]...)
	cmd.Stdout = config.Stdout
	cmd.Stderr = config.Stderr

	return cmd.Run()
}
