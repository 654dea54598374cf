package scoring

import (
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

// CalculateStreak counts consecutive days of activity for one metric,
// walking backward from ref. The reference day itself joins the streak
// only if it has activity; an empty reference day is skipped rather than
// breaking a streak that ran through yesterday. The walk ends at the
// first inactive day after that, or at the edge of the tracked window.
//
// Each iterated day is judged on its own record, including its own
// sitdown list for enrollments, never on the reference day's.
func CalculateStreak(m domain.Metric, ref time.Time, lookup DayLookup) int {
	day := dateOf(ref)
	streak := 0

	if rec, ok := lookup.Day(day); ok && rec.Count(m) > 0 {
		streak = 1
	}

	for {
		day = day.AddDate(0, 0, -1)
		rec, ok := lookup.Day(day)
		if !ok || rec.Count(m) == 0 {
			return streak
		}
		streak++
	}
}

// CurrentStreaks computes the streak for every scored metric.
func CurrentStreaks(ref time.Time, lookup DayLookup) map[domain.Metric]int {
	streaks := make(map[domain.Metric]int, len(domain.ScoredMetrics))
	for _, m := range domain.ScoredMetrics {
		streaks[m] = CalculateStreak(m, ref, lookup)
	}
	return streaks
}

// ReconcileLongest returns the longest-streak updates implied by freshly
// computed current streaks: only metrics whose current streak exceeds the
// stored longest appear in the result. Applying the result is monotone
// and idempotent; persistence is the caller's job.
func ReconcileLongest(fresh, stored map[domain.Metric]int) map[domain.Metric]int {
	updates := map[domain.Metric]int{}
	for m, cur := range fresh {
		if cur > stored[m] {
			updates[m] = cur
		}
	}
	return updates
}
