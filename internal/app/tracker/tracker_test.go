package tracker_test

import (
	"testing"
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/app/tracker"
	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
	"github.com/herm409/activity-tracker-app-sub000/internal/infra/sqlite"
)

// testService creates a tracker over a temporary database.
func testService(t *testing.T) (*tracker.Service, *sqlite.DB) {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return tracker.NewService(db, domain.DefaultParTarget), db
}

func TestProfile_CreatedOnFirstTouch(t *testing.T) {
	svc, _ := testService(t)

	p, err := svc.Profile("u1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.ParTarget != domain.DefaultParTarget {
		t.Errorf("expected default par %d, got %d", domain.DefaultParTarget, p.ParTarget)
	}

	p.ParTarget = 5
	if err := svc.SaveProfile(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, _ := svc.Profile("u1")
	if again.ParTarget != 5 {
		t.Errorf("expected saved par 5, got %d", again.ParTarget)
	}
}

func TestProfile_ConfiguredDefaultPar(t *testing.T) {
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	svc := tracker.NewService(db, 7)

	p, err := svc.Profile("u1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.ParTarget != 7 {
		t.Errorf("expected configured par 7, got %d", p.ParTarget)
	}

	// Saving with no par falls back to the configured default too
	p.ParTarget = 0
	if err := svc.SaveProfile(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	again, _ := svc.Profile("u1")
	if again.ParTarget != 7 {
		t.Errorf("expected fallback to configured par 7, got %d", again.ParTarget)
	}
}

func TestNewService_NonPositiveParFallsBack(t *testing.T) {
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	svc := tracker.NewService(db, 0)

	p, err := svc.Profile("u1")
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if p.ParTarget != domain.DefaultParTarget {
		t.Errorf("expected built-in default %d, got %d", domain.DefaultParTarget, p.ParTarget)
	}
}

func TestAddActivity_IncrementAndClamp(t *testing.T) {
	svc, _ := testService(t)
	date := time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

	rec, err := svc.AddActivity("u1", date, domain.MetricExposures, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.Exposures != 2 {
		t.Errorf("expected 2, got %d", rec.Exposures)
	}

	rec, _ = svc.AddActivity("u1", date, domain.MetricExposures, -5)
	if rec.Exposures != 0 {
		t.Errorf("expected clamp at 0, got %d", rec.Exposures)
	}

	if _, err := svc.AddActivity("u1", date, domain.Metric("bogus"), 1); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestSummary_PointsParAndStreaks(t *testing.T) {
	svc, _ := testService(t)
	ref := time.Date(2026, 8, 15, 18, 0, 0, 0, time.UTC)

	_ = svc.LogDay("u1", ref, domain.DayRecord{Exposures: 2, Enrolls: 1})
	_ = svc.LogDay("u1", ref.AddDate(0, 0, -1), domain.DayRecord{FollowUps: 1})

	sum, err := svc.Summary("u1", ref)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Points != 7 {
		t.Errorf("expected 7 points, got %d", sum.Points)
	}
	if sum.Deficit != -5 {
		t.Errorf("expected surplus of 5, got %d", sum.Deficit)
	}
	if sum.Streaks[domain.MetricExposures] != 1 {
		t.Errorf("exposures streak: expected 1, got %d", sum.Streaks[domain.MetricExposures])
	}
	// No follow-ups today; yesterday's still counts.
	if sum.Streaks[domain.MetricFollowUps] != 1 {
		t.Errorf("follow-ups streak: expected 1, got %d", sum.Streaks[domain.MetricFollowUps])
	}
}

func TestSummary_RaisesLongestStreaks(t *testing.T) {
	svc, db := testService(t)
	ref := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		_ = svc.LogDay("u1", ref.AddDate(0, 0, -i), domain.DayRecord{Exposures: 1})
	}

	sum, err := svc.Summary("u1", ref)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.Longest[domain.MetricExposures] != 3 {
		t.Errorf("expected longest 3, got %d", sum.Longest[domain.MetricExposures])
	}

	stored, _ := db.LongestStreaks("u1")
	if stored[domain.MetricExposures] != 3 {
		t.Errorf("expected persisted mark 3, got %d", stored[domain.MetricExposures])
	}

	// A later, shorter streak leaves the mark alone.
	later := ref.AddDate(0, 0, 5)
	_ = svc.LogDay("u1", later, domain.DayRecord{Exposures: 1})
	sum, _ = svc.Summary("u1", later)
	if sum.Streaks[domain.MetricExposures] != 1 {
		t.Errorf("expected current streak 1, got %d", sum.Streaks[domain.MetricExposures])
	}
	if sum.Longest[domain.MetricExposures] != 3 {
		t.Errorf("longest must not regress, got %d", sum.Longest[domain.MetricExposures])
	}
}

func TestReportWeek_TotalsAndComparison(t *testing.T) {
	svc, _ := testService(t)
	// Wednesday 2026-08-19; week runs Mon 17 – Sun 23.
	ref := time.Date(2026, 8, 19, 12, 0, 0, 0, time.UTC)

	_ = svc.LogDay("u1", time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), domain.DayRecord{Exposures: 3})
	_ = svc.LogDay("u1", time.Date(2026, 8, 18, 0, 0, 0, 0, time.UTC), domain.DayRecord{Enrolls: 1})
	// Previous week window (Aug 10–16).
	_ = svc.LogDay("u1", time.Date(2026, 8, 12, 0, 0, 0, 0, time.UTC), domain.DayRecord{Exposures: 1})

	report, err := svc.ReportWeek("u1", ref)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if report.WeekStart != "2026-08-17" {
		t.Errorf("expected week start 2026-08-17, got %s", report.WeekStart)
	}
	if report.Totals[domain.MetricExposures] != 3 {
		t.Errorf("expected 3 exposures, got %d", report.Totals[domain.MetricExposures])
	}
	if report.Points != 8 {
		t.Errorf("expected 8 points, got %d", report.Points)
	}
	if report.PrevPoints != 1 {
		t.Errorf("expected 1 point in the prior window, got %d", report.PrevPoints)
	}
	// Elapsed days Mon–Wed at par 2 = 6 against 8 points.
	if report.Par.Deficit != -2 {
		t.Errorf("expected surplus of 2, got %d", report.Par.Deficit)
	}
	// Wednesday the 19th is unlogged but not past; Mon/Tue are logged.
	if len(report.MissedDays) != 0 {
		t.Errorf("expected no missed days, got %v", report.MissedDays)
	}
}

func TestReportMonth_GoalProgress(t *testing.T) {
	svc, _ := testService(t)
	key := domain.MonthKey{Year: 2026, Month: time.August}

	p, _ := svc.Profile("u1")
	p.MonthlyGoals[domain.MetricExposures] = 10
	_ = svc.SaveProfile(p)

	_ = svc.LogDay("u1", key.Date(3), domain.DayRecord{Exposures: 4})
	_ = svc.LogDay("u1", key.Date(9), domain.DayRecord{Exposures: 2})

	progress, err := svc.ReportMonth("u1", key)
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	if progress.Totals[domain.MetricExposures] != 6 {
		t.Errorf("expected 6 exposures, got %d", progress.Totals[domain.MetricExposures])
	}
	if len(progress.Goals) != 1 {
		t.Fatalf("expected 1 goal line, got %d", len(progress.Goals))
	}
	if progress.Goals[0].Pct != 60.0 {
		t.Errorf("expected 60%% progress, got %.1f", progress.Goals[0].Pct)
	}
}
