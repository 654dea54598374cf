// Package tracker is the activity-tracking service: it loads calendar
// snapshots from the store, runs the scoring engine over them, and
// persists the side effects (day records, longest-streak marks).
package tracker

import (
	"fmt"
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/app/scoring"
	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
	"github.com/herm409/activity-tracker-app-sub000/internal/infra/metrics"
	"github.com/herm409/activity-tracker-app-sub000/internal/infra/sqlite"
)

// Service manages activity logging and report computation.
type Service struct {
	db         *sqlite.DB
	defaultPar int
}

// NewService creates a tracker service. defaultPar is the par target
// assigned to profiles created on first touch; values below 1 fall
// back to the built-in default.
func NewService(db *sqlite.DB, defaultPar int) *Service {
	if defaultPar <= 0 {
		defaultPar = domain.DefaultParTarget
	}
	return &Service{db: db, defaultPar: defaultPar}
}

// ─── Profiles ───────────────────────────────────────────────────────────────

// Profile loads a user's profile, creating a default one on first touch.
func (s *Service) Profile(userID string) (domain.Profile, error) {
	p, err := s.db.GetProfile(userID)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if p != nil {
		return *p, nil
	}

	fresh := domain.NewProfile(userID, userID)
	fresh.ParTarget = s.defaultPar
	if err := s.db.UpsertProfile(fresh); err != nil {
		return domain.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	return fresh, nil
}

// SaveProfile updates name, par target, and monthly goals.
func (s *Service) SaveProfile(p domain.Profile) error {
	if p.ParTarget <= 0 {
		p.ParTarget = s.defaultPar
	}
	return s.db.UpsertProfile(p)
}

// ─── Logging ────────────────────────────────────────────────────────────────

// LogDay replaces one calendar day's record.
func (s *Service) LogDay(userID string, date time.Time, rec domain.DayRecord) error {
	key := domain.MonthKeyOf(date)
	if err := s.db.UpsertDay(userID, key, date.Day(), rec); err != nil {
		return fmt.Errorf("log day: %w", err)
	}
	for _, m := range domain.ScoredMetrics {
		if n := rec.Count(m); n > 0 {
			metrics.ActivitiesLogged.WithLabelValues(string(m)).Add(float64(n))
		}
	}
	return nil
}

// AddActivity bumps one metric on a day by delta, clamping at zero.
// This is the tap-to-log path: read, adjust, write back.
func (s *Service) AddActivity(userID string, date time.Time, m domain.Metric, delta int) (domain.DayRecord, error) {
	key := domain.MonthKeyOf(date)
	rec, _, err := s.db.GetDay(userID, key, date.Day())
	if err != nil {
		return domain.DayRecord{}, fmt.Errorf("load day: %w", err)
	}

	apply := func(v int) int {
		v += delta
		if v < 0 {
			v = 0
		}
		return v
	}
	switch m {
	case domain.MetricExposures:
		rec.Exposures = apply(rec.Exposures)
	case domain.MetricFollowUps:
		rec.FollowUps = apply(rec.FollowUps)
	case domain.MetricPresentations:
		rec.Presentations = apply(rec.Presentations)
	case domain.MetricThreeWays:
		rec.ThreeWays = apply(rec.ThreeWays)
	case domain.MetricEnrolls:
		rec.Enrolls = apply(rec.Enrolls)
	default:
		return domain.DayRecord{}, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, m)
	}

	if err := s.db.UpsertDay(userID, key, date.Day(), rec); err != nil {
		return domain.DayRecord{}, fmt.Errorf("save day: %w", err)
	}
	if delta > 0 {
		metrics.ActivitiesLogged.WithLabelValues(string(m)).Add(float64(delta))
	}
	return rec, nil
}

// Month returns the stored bucket for one calendar month.
func (s *Service) Month(userID string, key domain.MonthKey) (domain.MonthBucket, error) {
	return s.db.MonthBucket(userID, key)
}

// Window loads the two-month lookup ending at ref's month.
func (s *Service) Window(userID string, ref time.Time) (scoring.TwoMonthWindow, error) {
	key := domain.MonthKeyOf(ref)
	cur, err := s.db.MonthBucket(userID, key)
	if err != nil {
		return scoring.TwoMonthWindow{}, fmt.Errorf("load current month: %w", err)
	}
	prev, err := s.db.MonthBucket(userID, key.Prev())
	if err != nil {
		return scoring.TwoMonthWindow{}, fmt.Errorf("load previous month: %w", err)
	}
	return scoring.NewTwoMonthWindow(key, cur, prev), nil
}

// ─── Summaries and Reports ──────────────────────────────────────────────────

// DailySummary is one day's standing: points, par, and streaks.
type DailySummary struct {
	Date      string                `json:"date"`
	Points    int                   `json:"points"`
	ParTarget int                   `json:"par_target"`
	Deficit   int                   `json:"deficit"`
	WeekPar   scoring.WeekPar       `json:"week_par"`
	Streaks   map[domain.Metric]int `json:"streaks"`
	Longest   map[domain.Metric]int `json:"longest_streaks"`
}

// Summary computes the daily summary for ref and reconciles longest
// streaks: any current streak above its stored mark raises the mark.
func (s *Service) Summary(userID string, ref time.Time) (DailySummary, error) {
	profile, err := s.Profile(userID)
	if err != nil {
		return DailySummary{}, err
	}
	window, err := s.Window(userID, ref)
	if err != nil {
		return DailySummary{}, err
	}

	var points int
	if rec, ok := window.Day(ref); ok {
		points = scoring.CalculatePoints(&rec)
	}

	streaks := scoring.CurrentStreaks(ref, window)
	longest, err := s.reconcileLongest(userID, streaks, profile.LongestStreaks)
	if err != nil {
		return DailySummary{}, err
	}

	metrics.DailyPoints.Set(float64(points))
	for m, days := range streaks {
		metrics.CurrentStreakDays.WithLabelValues(string(m)).Set(float64(days))
	}

	return DailySummary{
		Date:      ref.Format("2006-01-02"),
		Points:    points,
		ParTarget: profile.ParTarget,
		Deficit:   scoring.EvaluatePar(points, profile.ParTarget),
		WeekPar:   scoring.EvaluateWeekPar(ref, profile.ParTarget, window),
		Streaks:   streaks,
		Longest:   longest,
	}, nil
}

// reconcileLongest applies the monotone longest-streak updates and
// returns the resulting marks.
func (s *Service) reconcileLongest(userID string, fresh, stored map[domain.Metric]int) (map[domain.Metric]int, error) {
	updates := scoring.ReconcileLongest(fresh, stored)
	longest := make(map[domain.Metric]int, len(domain.ScoredMetrics))
	for m, days := range stored {
		longest[m] = days
	}
	for m, days := range updates {
		if err := s.db.RaiseLongestStreak(userID, m, days); err != nil {
			return nil, fmt.Errorf("raise longest streak: %w", err)
		}
		longest[m] = days
	}
	return longest, nil
}

// WeeklyReport compares the current week against the preceding 7-day
// window and flags missed days.
type WeeklyReport struct {
	WeekStart  string                `json:"week_start"`
	WeekEnd    string                `json:"week_end"`
	Totals     map[domain.Metric]int `json:"totals"`
	Points     int                   `json:"points"`
	Par        scoring.WeekPar       `json:"par"`
	PrevTotals map[domain.Metric]int `json:"prev_totals"`
	PrevPoints int                   `json:"prev_points"`
	MissedDays []string              `json:"missed_days,omitempty"`
}

// ReportWeek builds the weekly report for the week containing ref.
func (s *Service) ReportWeek(userID string, ref time.Time) (WeeklyReport, error) {
	profile, err := s.Profile(userID)
	if err != nil {
		return WeeklyReport{}, err
	}
	window, err := s.Window(userID, ref)
	if err != nil {
		return WeeklyReport{}, err
	}

	start, end := scoring.WeekWindow(ref)
	prevStart := start.AddDate(0, 0, -7)
	prevEnd := start.AddDate(0, 0, -1)

	report := WeeklyReport{
		WeekStart:  start.Format("2006-01-02"),
		WeekEnd:    end.Format("2006-01-02"),
		Totals:     scoring.SumRange(domain.ScoredMetrics, start, end, window),
		Points:     scoring.SumPoints(start, end, window),
		Par:        scoring.EvaluateWeekPar(ref, profile.ParTarget, window),
		PrevTotals: scoring.SumRange(domain.ScoredMetrics, prevStart, prevEnd, window),
		PrevPoints: scoring.SumPoints(prevStart, prevEnd, window),
	}
	for _, day := range scoring.MissedDays(start, end, ref, window) {
		report.MissedDays = append(report.MissedDays, day.Format("2006-01-02"))
	}
	return report, nil
}

// MonthlyProgress is the month's totals measured against monthly goals.
type MonthlyProgress struct {
	Month  string                `json:"month"`
	Totals map[domain.Metric]int `json:"totals"`
	Points int                   `json:"points"`
	Goals  []domain.GoalProgress `json:"goals,omitempty"`
}

// ReportMonth totals one calendar month and scores it against goals.
func (s *Service) ReportMonth(userID string, key domain.MonthKey) (MonthlyProgress, error) {
	profile, err := s.Profile(userID)
	if err != nil {
		return MonthlyProgress{}, err
	}

	bucket, err := s.db.MonthBucket(userID, key)
	if err != nil {
		return MonthlyProgress{}, fmt.Errorf("load month: %w", err)
	}
	window := scoring.NewTwoMonthWindow(key, bucket, nil)

	start, end := key.Date(1), key.Date(key.Days())
	progress := MonthlyProgress{
		Month:  key.String(),
		Totals: scoring.SumRange(domain.ScoredMetrics, start, end, window),
		Points: scoring.SumPoints(start, end, window),
	}
	for _, m := range domain.ScoredMetrics {
		goal, ok := profile.MonthlyGoals[m]
		if !ok || goal <= 0 {
			continue
		}
		progress.Goals = append(progress.Goals, domain.GoalProgress{
			Metric: m,
			Total:  progress.Totals[m],
			Goal:   goal,
			Pct:    domain.ProgressPct(progress.Totals[m], goal),
		})
	}
	return progress, nil
}
