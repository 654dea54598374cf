// Package metrics provides Prometheus metrics for the tracker:
// counters and gauges for logged activity, scoring, streaks, and the
// HTTP API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Activity ───────────────────────────────────────────────────────────────

// ActivitiesLogged counts logged activity units by metric.
var ActivitiesLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "partrack",
	Name:      "activities_logged_total",
	Help:      "Total activity units logged, by metric.",
}, []string{"metric"})

// DailyPoints tracks the most recently computed daily point score.
var DailyPoints = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "partrack",
	Name:      "daily_points",
	Help:      "Weighted point score of the last summarized day.",
})

// CurrentStreakDays tracks the current streak length per metric.
var CurrentStreakDays = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "partrack",
	Name:      "current_streak_days",
	Help:      "Current consecutive-day streak per metric.",
}, []string{"metric"})

// ─── Pipeline ───────────────────────────────────────────────────────────────

// ProspectsByStage counts prospects entering each pipeline stage.
var ProspectsByStage = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "partrack",
	Name:      "prospects_stage_total",
	Help:      "Total prospect stage entries, by stage.",
}, []string{"stage"})

// ─── HTTP ───────────────────────────────────────────────────────────────────

// HTTPRequests counts API requests by method and status class.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "partrack",
	Name:      "http_requests_total",
	Help:      "Total HTTP requests, by method and status class.",
}, []string{"method", "status"})

// HTTPDuration tracks request latency in seconds.
var HTTPDuration = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "partrack",
	Name:      "http_request_duration_seconds",
	Help:      "HTTP request duration in seconds.",
	Buckets:   prometheus.DefBuckets,
})

// ─── Health ─────────────────────────────────────────────────────────────────

// HealthCheckStatus tracks health check results (1=healthy, 0=unhealthy).
var HealthCheckStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Namespace: "partrack",
	Name:      "health_check_status",
	Help:      "Health check result per component (1=healthy, 0=unhealthy).",
}, []string{"check"})
