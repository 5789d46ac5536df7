package report

import (
	"testing"
	"time"

	"github.com/ayodele/tempo/category"
	"github.com/ayodele/tempo/internal/session"
	"github.com/ayodele/tempo/internal/testutil"
	"github.com/ayodele/tempo/internal/timeutil"
	"github.com/ayodele/tempo/store"
)

// dbMock serves sessions from memory, filtered the same way the bolt
// client filters them: by start time within the requested range.
type dbMock struct {
	sessions []session.Session
}

func (d *dbMock) GetSessionsByDate(
	startTime, endTime time.Time,
) ([]session.Session, error) {
	var result []session.Session

	for _, sess := range d.sessions {
		if sess.StartTime.Before(startTime) || sess.StartTime.After(endTime) {
			continue
		}

		result = append(result, sess)
	}

	return result, nil
}

func (d *dbMock) GetDailyStats(
	startTime, endTime time.Time,
) (store.DailyStats, error) {
	return store.DailyStats{}, nil
}

func (d *dbMock) UpdateSession(sess *session.Session) error { return nil }

func (d *dbMock) SaveApplication(
	name string,
	cat session.Category,
) error {
	return nil
}

func (d *dbMock) GetApplication(
	name string,
) (session.Category, bool, error) {
	return "", false, nil
}

func (d *dbMock) DeleteSessions(sessions []session.Session) error { return nil }

func (d *dbMock) Close() error { return nil }

func (d *dbMock) Open() error { return nil }

// day returns noon of the nth epoch day so reports are generated well
// away from the boundaries.
func day(n int64) time.Time {
	return time.Unix(n*timeutil.SecondsInADay+43200, 0)
}

// onDay builds a closed session starting at the given offset into the
// nth epoch day.
func onDay(
	n int64,
	app string,
	cat session.Category,
	offset, duration time.Duration,
) session.Session {
	start := time.Unix(n*timeutil.SecondsInADay, 0).Add(offset)

	sess := session.Session{
		AppName:   app,
		StartTime: start,
		EndTime:   start.Add(duration),
		Category:  cat,
	}
	sess.ComputeDuration()

	return sess
}

func newTestGenerator(
	db store.DB,
	now time.Time,
) *Generator {
	gen := NewGenerator(db, category.New(""))
	gen.now = func() time.Time { return now }

	return gen
}

func TestGenerateDailyReport(t *testing.T) {
	db := &dbMock{
		sessions: []session.Session{
			onDay(100, "Code", session.Productive, 9*time.Hour, 2*time.Hour),
			onDay(100, "Firefox", "", 11*time.Hour, 30*time.Minute),
			onDay(100, "Code", session.Productive, 12*time.Hour, time.Hour),
			onDay(100, "YouTube", session.Distracting, 20*time.Hour, 30*time.Minute),
			// A different day must not leak into the report.
			onDay(99, "Code", session.Productive, 9*time.Hour, 8*time.Hour),
		},
	}

	gen := newTestGenerator(db, day(100))

	daily, err := gen.GenerateDailyReport(day(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if daily.TotalTime != 4*time.Hour {
		t.Errorf("expected total time 4h, but got: %s", daily.TotalTime)
	}

	if daily.NumSessions != 4 {
		t.Errorf("expected 4 sessions, but got: %d", daily.NumSessions)
	}

	// Firefox has no stored category, so the categorizer resolves it
	// to neutral from the defaults table.
	if got := daily.CategoryBreakdown[session.Neutral]; got != 30*time.Minute {
		t.Errorf("expected neutral time 30m, but got: %s", got)
	}

	if got := daily.CategoryBreakdown[session.Productive]; got != 3*time.Hour {
		t.Errorf("expected productive time 3h, but got: %s", got)
	}

	// (3h + 0.5*0.5h) / 4h = 81.25 -> 81
	if daily.ProductivityScore != 81 {
		t.Errorf("expected score 81, but got: %d", daily.ProductivityScore)
	}

	if len(daily.TopApps) != 3 {
		t.Fatalf("expected 3 ranked apps, but got: %d", len(daily.TopApps))
	}

	if daily.TopApps[0].Name != "Code" || daily.TopApps[0].Duration != 3*time.Hour {
		t.Errorf("expected Code to rank first, but got: %+v", daily.TopApps[0])
	}
}

func TestTopAppsTieBreaksByFirstSeen(t *testing.T) {
	db := &dbMock{
		sessions: []session.Session{
			onDay(100, "Slack", session.Neutral, 9*time.Hour, time.Hour),
			onDay(100, "Zoom", session.Neutral, 11*time.Hour, time.Hour),
		},
	}

	gen := newTestGenerator(db, day(100))

	daily, err := gen.GenerateDailyReport(day(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if daily.TopApps[0].Name != "Slack" {
		t.Errorf(
			"expected first-seen app to win the tie, but got: %s",
			daily.TopApps[0].Name,
		)
	}
}

func TestGenerateDailyReportEmptyDay(t *testing.T) {
	gen := newTestGenerator(&dbMock{}, day(100))

	daily, err := gen.GenerateDailyReport(day(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if daily.TotalTime != 0 || daily.ProductivityScore != 0 {
		t.Errorf("expected an all-zero report, but got: %+v", daily)
	}
}

func TestGenerateWeeklyReport(t *testing.T) {
	db := &dbMock{
		sessions: []session.Session{
			onDay(99, "Code", session.Productive, 9*time.Hour, 2*time.Hour),
			onDay(98, "Firefox", session.Neutral, 9*time.Hour, 5*time.Hour),
		},
	}

	gen := newTestGenerator(db, day(100))

	weekly, err := gen.GenerateWeeklyReport()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(weekly.Days) != 7 {
		t.Fatalf("expected 7 daily entries, but got: %d", len(weekly.Days))
	}

	if weekly.WeeklyTotal != 7*time.Hour {
		t.Errorf("expected weekly total 7h, but got: %s", weekly.WeeklyTotal)
	}

	if weekly.DailyAverage != time.Hour {
		t.Errorf("expected daily average 1h, but got: %s", weekly.DailyAverage)
	}
}

func TestCalculateTrendsImproving(t *testing.T) {
	// Chronological scores: 25, 50, 75.
	db := &dbMock{
		sessions: []session.Session{
			// day 98: 1h neutral + 1h distracting -> 25
			onDay(98, "Firefox", session.Neutral, 9*time.Hour, time.Hour),
			onDay(98, "YouTube", session.Distracting, 11*time.Hour, time.Hour),
			// day 99: 1h neutral -> 50
			onDay(99, "Firefox", session.Neutral, 9*time.Hour, time.Hour),
			// day 100: 2h productive + 2h neutral -> 75
			onDay(100, "Code", session.Productive, 9*time.Hour, 2*time.Hour),
			onDay(100, "Firefox", session.Neutral, 12*time.Hour, 2*time.Hour),
		},
	}

	gen := newTestGenerator(db, day(100))

	trends, err := gen.CalculateTrends(3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trends.Direction != TrendImproving {
		t.Errorf("expected improving trend, but got: %s", trends.Direction)
	}

	want := []int{25, 50, 75}
	for i, score := range trends.Scores {
		if score != want[i] {
			t.Errorf("expected scores %v, but got: %v", want, trends.Scores)
			break
		}
	}

	if trends.AverageScore != 50 {
		t.Errorf("expected average score 50, but got: %.1f", trends.AverageScore)
	}
}

func TestCalculateTrendsSkipsIdleDays(t *testing.T) {
	// Only one active day in the window.
	db := &dbMock{
		sessions: []session.Session{
			onDay(100, "Code", session.Productive, 9*time.Hour, time.Hour),
		},
	}

	gen := newTestGenerator(db, day(100))

	trends, err := gen.CalculateTrends(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trends.Direction != TrendInsufficientData {
		t.Errorf("expected insufficient data, but got: %s", trends.Direction)
	}

	if trends.AverageScore != 100 {
		t.Errorf(
			"expected the single day's score as average, but got: %.1f",
			trends.AverageScore,
		)
	}
}

func TestCalculateTrendsStable(t *testing.T) {
	db := &dbMock{
		sessions: []session.Session{
			onDay(99, "Firefox", session.Neutral, 9*time.Hour, time.Hour),
			onDay(100, "Firefox", session.Neutral, 9*time.Hour, time.Hour),
		},
	}

	gen := newTestGenerator(db, day(100))

	trends, err := gen.CalculateTrends(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if trends.Direction != TrendStable {
		t.Errorf("expected stable trend, but got: %s", trends.Direction)
	}
}

func TestGetPeakProductivityHours(t *testing.T) {
	db := &dbMock{
		sessions: []session.Session{
			// 09:00 UTC across two days: fully productive.
			onDay(99, "Code", session.Productive, 9*time.Hour, time.Hour),
			onDay(100, "Code", session.Productive, 9*time.Hour, time.Hour),
			// 14:00 UTC: half productive.
			onDay(100, "Code", session.Productive, 14*time.Hour, 30*time.Minute),
			onDay(100, "YouTube", session.Distracting, 14*time.Hour+30*time.Minute, 30*time.Minute),
			// 20:00 UTC: no productive time at all.
			onDay(100, "YouTube", session.Distracting, 20*time.Hour, time.Hour),
		},
	}

	gen := newTestGenerator(db, day(100).Add(11*time.Hour))

	peaks, err := gen.GetPeakProductivityHours()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(peaks) != 3 {
		t.Fatalf("expected 3 active hours, but got: %d", len(peaks))
	}

	first := peaks[0]

	if first.Hour != time.Unix(100*timeutil.SecondsInADay, 0).Add(9*time.Hour).Hour() {
		t.Errorf("expected the fully productive hour to rank first, but got: %d", first.Hour)
	}

	if first.ProductivityRatio != 1 {
		t.Errorf("expected ratio 1.0, but got: %.2f", first.ProductivityRatio)
	}

	if first.TotalTime != 2*time.Hour {
		t.Errorf("expected 2h tracked in the peak hour, but got: %s", first.TotalTime)
	}

	last := peaks[len(peaks)-1]

	if last.ProductivityRatio != 0 {
		t.Errorf("expected the distracting hour to rank last, but got: %.2f", last.ProductivityRatio)
	}
}

type formatTest struct {
	report *DailyReport
	golden string
}

func (ft *formatTest) Output() ([]byte, string) {
	return []byte(FormatAsText(ft.report)), ft.golden
}

func TestFormatAsText(t *testing.T) {
	report := &DailyReport{
		Date:              day(100),
		TotalTime:         2*time.Hour + 30*time.Minute,
		ProductivityScore: 85,
		TopApps: []session.AppUsage{
			{Name: "Code", Duration: 2*time.Hour + 5*time.Minute},
			{Name: "Firefox", Duration: 25 * time.Minute},
		},
		CategoryBreakdown: map[session.Category]time.Duration{
			session.Productive:  2*time.Hour + 5*time.Minute,
			session.Neutral:     25 * time.Minute,
			session.Distracting: 0,
		},
		NumSessions: 6,
	}

	testutil.CompareGoldenFile(t, &formatTest{
		report: report,
		golden: "daily_report",
	})
}
