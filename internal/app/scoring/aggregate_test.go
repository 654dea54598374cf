package scoring_test

import (
	"testing"
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/app/scoring"
	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

func TestSumRange_AllZeroWindow(t *testing.T) {
	w := scoring.NewTwoMonthWindow(august, domain.MonthBucket{}, domain.MonthBucket{})

	totals := scoring.SumRange(domain.ScoredMetrics, august.Date(1), august.Date(7), w)
	for m, total := range totals {
		if total != 0 {
			t.Errorf("%s: expected 0, got %d", m, total)
		}
	}
	if len(totals) != len(domain.ScoredMetrics) {
		t.Errorf("expected a total per scored metric, got %d", len(totals))
	}
}

func TestSumRange_SpansBuckets(t *testing.T) {
	cur := domain.MonthBucket{
		1: day(t, `{"exposures": 2}`),
		2: day(t, `{"exposures": 1, "enrolls": 1}`),
	}
	prev := domain.MonthBucket{
		30: day(t, `{"exposures": 4}`),
		31: day(t, `{"followUps": 3}`),
	}
	w := scoring.NewTwoMonthWindow(august, cur, prev)

	july := august.Prev()
	totals := scoring.SumRange(domain.ScoredMetrics, july.Date(30), august.Date(2), w)
	if totals[domain.MetricExposures] != 7 {
		t.Errorf("exposures: expected 7, got %d", totals[domain.MetricExposures])
	}
	if totals[domain.MetricFollowUps] != 3 {
		t.Errorf("follow ups: expected 3, got %d", totals[domain.MetricFollowUps])
	}
	if totals[domain.MetricEnrolls] != 1 {
		t.Errorf("enrolls: expected 1, got %d", totals[domain.MetricEnrolls])
	}
}

func TestSumRange_OutsideWindowContributesZero(t *testing.T) {
	cur := domain.MonthBucket{1: day(t, `{"exposures": 1}`)}
	w := scoring.NewTwoMonthWindow(august, cur, nil)

	// Range reaches back into June, two months before the window.
	start := time.Date(2026, 6, 25, 0, 0, 0, 0, time.UTC)
	totals := scoring.SumRange([]domain.Metric{domain.MetricExposures}, start, august.Date(1), w)
	if totals[domain.MetricExposures] != 1 {
		t.Errorf("expected untracked days to add nothing, got %d", totals[domain.MetricExposures])
	}
}

func TestSumPoints(t *testing.T) {
	cur := domain.MonthBucket{
		3: day(t, `{"enrolls": 1}`),    // 5
		4: day(t, `{"exposures": 2}`),  // 2
		5: day(t, `{"threeWays": 1}`),  // 3
	}
	w := scoring.NewTwoMonthWindow(august, cur, nil)

	if got := scoring.SumPoints(august.Date(1), august.Date(7), w); got != 10 {
		t.Errorf("expected 10 points, got %d", got)
	}
}

func TestMissedDays(t *testing.T) {
	cur := domain.MonthBucket{
		1: day(t, `{"exposures": 1}`),
		2: day(t, `{"gameplans": 2}`), // unscored activity only, still a miss
		// 3: nothing
		4: day(t, `{"followUps": 1}`),
	}
	w := scoring.NewTwoMonthWindow(august, cur, nil)

	today := august.Date(5)
	missed := scoring.MissedDays(august.Date(1), august.Date(7), today, w)
	if len(missed) != 2 {
		t.Fatalf("expected 2 missed days, got %d: %v", len(missed), missed)
	}
	if missed[0].Day() != 2 || missed[1].Day() != 3 {
		t.Errorf("expected days 2 and 3 flagged, got %v", missed)
	}
}

func TestMissedDays_TodayAndFutureNeverFlagged(t *testing.T) {
	w := scoring.NewTwoMonthWindow(august, domain.MonthBucket{}, nil)

	today := august.Date(1)
	missed := scoring.MissedDays(august.Date(1), august.Date(7), today, w)
	if len(missed) != 0 {
		t.Errorf("expected no missed days at the start of the window, got %v", missed)
	}
}

func TestWeekWindow_MondayStart(t *testing.T) {
	cases := []struct {
		ref       time.Time
		wantStart int
	}{
		{time.Date(2026, 8, 19, 10, 0, 0, 0, time.UTC), 17}, // Wednesday
		{time.Date(2026, 8, 17, 0, 0, 0, 0, time.UTC), 17},  // Monday itself
		{time.Date(2026, 8, 23, 23, 0, 0, 0, time.UTC), 17}, // Sunday
	}
	for _, tc := range cases {
		start, end := scoring.WeekWindow(tc.ref)
		if start.Day() != tc.wantStart {
			t.Errorf("ref %v: expected week start %d, got %d", tc.ref, tc.wantStart, start.Day())
		}
		if end.Sub(start) != 6*24*time.Hour {
			t.Errorf("ref %v: expected 7-day window, got %v", tc.ref, end.Sub(start))
		}
	}
}

// Repeated calls over the same snapshots yield identical results.
func TestAggregation_Idempotent(t *testing.T) {
	cur := domain.MonthBucket{
		10: day(t, `{"exposures": 2, "presentations": ["InPerson"], "enrolls": 1}`),
		9:  day(t, `{"followUps": 4}`),
	}
	w := scoring.NewTwoMonthWindow(august, cur, nil)
	ref := august.Date(10)

	first := scoring.SumRange(domain.ScoredMetrics, august.Date(1), august.Date(10), w)
	firstStreaks := scoring.CurrentStreaks(ref, w)
	for i := 0; i < 5; i++ {
		again := scoring.SumRange(domain.ScoredMetrics, august.Date(1), august.Date(10), w)
		for m := range first {
			if first[m] != again[m] {
				t.Fatalf("run %d: %s drifted from %d to %d", i, m, first[m], again[m])
			}
		}
		againStreaks := scoring.CurrentStreaks(ref, w)
		for m := range firstStreaks {
			if firstStreaks[m] != againStreaks[m] {
				t.Fatalf("run %d: %s streak drifted", i, m)
			}
		}
	}
}
