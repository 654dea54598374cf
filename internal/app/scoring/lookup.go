package scoring

import (
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

// DayLookup resolves a calendar day to its activity record. ok is false
// when the day has no record or falls outside the tracked window; callers
// treat both as "no activity".
type DayLookup interface {
	Day(t time.Time) (domain.DayRecord, bool)
}

// TwoMonthWindow is a DayLookup over the current month's bucket and the
// immediately preceding month's. Days older than the previous month are
// outside the window.
type TwoMonthWindow struct {
	current domain.MonthKey
	cur     domain.MonthBucket
	prev    domain.MonthBucket
}

// NewTwoMonthWindow builds a lookup for the given current month.
func NewTwoMonthWindow(current domain.MonthKey, cur, prev domain.MonthBucket) TwoMonthWindow {
	return TwoMonthWindow{current: current, cur: cur, prev: prev}
}

// Day implements DayLookup.
func (w TwoMonthWindow) Day(t time.Time) (domain.DayRecord, bool) {
	key := domain.MonthKeyOf(t)
	var bucket domain.MonthBucket
	switch key {
	case w.current:
		bucket = w.cur
	case w.current.Prev():
		bucket = w.prev
	default:
		return domain.DayRecord{}, false
	}
	rec, ok := bucket[t.Day()]
	return rec, ok
}

// dateOf truncates a time to its calendar day (midnight UTC, keeping the
// original date components).
func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
