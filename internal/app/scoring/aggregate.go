package scoring

import (
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

// SumRange totals each requested metric's normalized count over every
// calendar day from start through end inclusive. Days without data
// contribute zero.
func SumRange(metrics []domain.Metric, start, end time.Time, lookup DayLookup) map[domain.Metric]int {
	totals := make(map[domain.Metric]int, len(metrics))
	for _, m := range metrics {
		totals[m] = 0
	}

	for day := dateOf(start); !day.After(dateOf(end)); day = day.AddDate(0, 0, 1) {
		rec, ok := lookup.Day(day)
		if !ok {
			continue
		}
		for _, m := range metrics {
			totals[m] += rec.Count(m)
		}
	}
	return totals
}

// SumPoints totals the weighted day scores over start..end inclusive.
func SumPoints(start, end time.Time, lookup DayLookup) int {
	points := 0
	for day := dateOf(start); !day.After(dateOf(end)); day = day.AddDate(0, 0, 1) {
		if rec, ok := lookup.Day(day); ok {
			points += CalculatePoints(&rec)
		}
	}
	return points
}

// MissedDays lists the days in start..end that are strictly before today
// (date-only comparison) and show zero across all scored metrics. Used by
// the calendar display to flag gaps.
func MissedDays(start, end, today time.Time, lookup DayLookup) []time.Time {
	var missed []time.Time
	cutoff := dateOf(today)

	for day := dateOf(start); !day.After(dateOf(end)); day = day.AddDate(0, 0, 1) {
		if !day.Before(cutoff) {
			break
		}
		rec, ok := lookup.Day(day)
		if !ok || rec.IsZero() {
			missed = append(missed, day)
		}
	}
	return missed
}

// WeekWindow returns the Monday-start week containing ref.
func WeekWindow(ref time.Time) (start, end time.Time) {
	day := dateOf(ref)
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	start = day.AddDate(0, 0, -offset)
	end = start.AddDate(0, 0, 6)
	return start, end
}
