// Package scoring implements the activity scoring engine: weighted daily
// points, per-metric streaks over a two-month calendar window, range
// aggregation, and par deficit evaluation. Every function here is pure:
// given the same snapshots it returns the same answer and mutates nothing.
package scoring

import "github.com/herm409/activity-tracker-app-sub000/internal/domain"

// weights is the fixed point value per unit of each metric.
// Enrollments are worth five exposures; presentations and three-way
// calls sit in between.
var weights = map[domain.Metric]int{
	domain.MetricExposures:     1,
	domain.MetricFollowUps:     1,
	domain.MetricPresentations: 3,
	domain.MetricThreeWays:     3,
	domain.MetricEnrolls:       5,
}

// Weight returns the point weight for a metric (0 for unscored metrics).
func Weight(m domain.Metric) int {
	return weights[m]
}

// CalculatePoints returns the weighted point total for one day's record.
// A missing day scores zero.
func CalculatePoints(rec *domain.DayRecord) int {
	if rec == nil {
		return 0
	}
	total := 0
	for m, w := range weights {
		total += rec.Count(m) * w
	}
	return total
}
