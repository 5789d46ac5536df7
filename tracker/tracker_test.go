package tracker

import (
	"sync"
	"testing"
	"time"

	"github.com/ayodele/tempo/category"
	"github.com/ayodele/tempo/internal/config"
	"github.com/ayodele/tempo/internal/session"
	"github.com/ayodele/tempo/store"
)

// dbRecorder captures persisted sessions and registry writes.
type dbRecorder struct {
	mu       sync.Mutex
	sessions []session.Session
	apps     map[string]session.Category
}

func newDBRecorder() *dbRecorder {
	return &dbRecorder{apps: make(map[string]session.Category)}
}

func (d *dbRecorder) UpdateSession(sess *session.Session) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.sessions = append(d.sessions, *sess)

	return nil
}

func (d *dbRecorder) SaveApplication(
	name string,
	cat session.Category,
) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.apps[name] = cat

	return nil
}

func (d *dbRecorder) GetSessionsByDate(
	startTime, endTime time.Time,
) ([]session.Session, error) {
	return nil, nil
}

func (d *dbRecorder) GetDailyStats(
	startTime, endTime time.Time,
) (store.DailyStats, error) {
	return store.DailyStats{}, nil
}

func (d *dbRecorder) GetApplication(
	name string,
) (session.Category, bool, error) {
	return "", false, nil
}

func (d *dbRecorder) DeleteSessions(sessions []session.Session) error {
	return nil
}

func (d *dbRecorder) Close() error { return nil }

func (d *dbRecorder) Open() error { return nil }

func newTestManager(db store.DB) *Manager {
	manager := NewManager(db, category.New(""), &config.Config{})

	clock := time.Unix(1000, 0)
	manager.now = func() time.Time {
		clock = clock.Add(10 * time.Second)
		return clock
	}

	return manager
}

func TestStartSessionOpensOne(t *testing.T) {
	db := newDBRecorder()
	manager := newTestManager(db)

	err := manager.StartSession("Code", "main.go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	current, ok := manager.Current()
	if !ok {
		t.Fatal("expected an open session")
	}

	if current.AppName != "Code" {
		t.Errorf("expected app name Code, but got: %s", current.AppName)
	}

	if !current.EndTime.IsZero() {
		t.Error("expected the open session to have no end time")
	}

	if len(db.sessions) != 0 {
		t.Errorf("expected nothing persisted yet, but got: %d", len(db.sessions))
	}
}

func TestSwitchApplicationClosesPrevious(t *testing.T) {
	db := newDBRecorder()
	manager := newTestManager(db)

	err := manager.StartSession("Code", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = manager.SwitchApplication("Firefox", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(db.sessions) != 1 {
		t.Fatalf("expected 1 persisted session, but got: %d", len(db.sessions))
	}

	closed := db.sessions[0]

	if closed.AppName != "Code" {
		t.Errorf("expected Code to be closed, but got: %s", closed.AppName)
	}

	if closed.Duration != 10*time.Second {
		t.Errorf("expected 10s duration, but got: %s", closed.Duration)
	}

	if closed.Category != session.Productive {
		t.Errorf("expected the closed session to be categorized, but got: %q", closed.Category)
	}

	if db.apps["Code"] != session.Productive {
		t.Errorf("expected the app registry entry, but got: %q", db.apps["Code"])
	}

	current, ok := manager.Current()
	if !ok || current.AppName != "Firefox" {
		t.Errorf("expected Firefox to be the open session, but got: %+v", current)
	}
}

func TestSwitchApplicationSameAppIsNoop(t *testing.T) {
	db := newDBRecorder()
	manager := newTestManager(db)

	err := manager.StartSession("Code", "main.go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, _ := manager.Current()

	err = manager.SwitchApplication("Code", "other.go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, _ := manager.Current()

	if !first.StartTime.Equal(second.StartTime) {
		t.Error("expected the session to keep running across same-app focus events")
	}

	if len(db.sessions) != 0 {
		t.Errorf("expected nothing persisted, but got: %d", len(db.sessions))
	}
}

func TestEndCurrentSession(t *testing.T) {
	db := newDBRecorder()
	manager := newTestManager(db)

	err := manager.StartSession("YouTube", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = manager.EndCurrentSession()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := manager.Current(); ok {
		t.Error("expected no open session after ending")
	}

	if len(db.sessions) != 1 {
		t.Fatalf("expected 1 persisted session, but got: %d", len(db.sessions))
	}

	if db.sessions[0].Category != session.Distracting {
		t.Errorf(
			"expected distracting category, but got: %s",
			db.sessions[0].Category,
		)
	}
}

func TestEndCurrentSessionWithoutOpenSession(t *testing.T) {
	db := newDBRecorder()
	manager := newTestManager(db)

	err := manager.EndCurrentSession()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(db.sessions) != 0 {
		t.Errorf("expected nothing persisted, but got: %d", len(db.sessions))
	}
}
