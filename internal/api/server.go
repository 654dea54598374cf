// Package api provides the HTTP server for the tracker. All endpoints
// speak JSON; day records are accepted in their legacy wire shapes and
// normalized at the boundary.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/herm409/activity-tracker-app-sub000/internal/app/pipeline"
	"github.com/herm409/activity-tracker-app-sub000/internal/app/team"
	"github.com/herm409/activity-tracker-app-sub000/internal/app/tracker"
	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
	"github.com/herm409/activity-tracker-app-sub000/internal/health"
	"github.com/herm409/activity-tracker-app-sub000/internal/infra/metrics"
)

// Server is the tracker HTTP API server.
type Server struct {
	tracker        *tracker.Service
	pipeline       *pipeline.Service
	teams          *team.Service
	health         *health.Checker
	version        string
	metricsEnabled bool
}

// NewServer creates a new API server.
func NewServer(trk *tracker.Service, pipe *pipeline.Service, teams *team.Service) *Server {
	return &Server{tracker: trk, pipeline: pipe, teams: teams, version: "dev"}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetHealth attaches the health checker for /health reporting.
func (s *Server) SetHealth(h *health.Checker) { s.health = h }

// SetVersion sets the version string reported by /api/version.
func (s *Server) SetVersion(v string) { s.version = v }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(corsMiddleware)
	r.Use(metricsMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": s.version})
	})

	r.Route("/api/users/{userID}", func(r chi.Router) {
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile", s.handlePutProfile)

		r.Get("/activity/{ym}", s.handleGetMonth)
		r.Put("/activity/{ym}/{day}", s.handlePutDay)
		r.Post("/activity/{ym}/{day}/increment", s.handleIncrement)

		r.Get("/summary", s.handleSummary)
		r.Get("/report/week", s.handleWeekReport)
		r.Get("/report/month", s.handleMonthReport)

		r.Get("/prospects", s.handleListProspects)
		r.Post("/prospects", s.handleCreateProspect)
		r.Get("/prospects/due", s.handleDueProspects)
		r.Get("/prospects/{id}", s.handleGetProspect)
		r.Put("/prospects/{id}", s.handleUpdateProspect)
		r.Delete("/prospects/{id}", s.handleDeleteProspect)
		r.Post("/prospects/{id}/advance", s.handleAdvanceProspect)
	})

	r.Route("/api/teams", func(r chi.Router) {
		r.Post("/", s.handleCreateTeam)
		r.Post("/join", s.handleJoinTeam)
		r.Get("/{teamID}/leaderboard", s.handleLeaderboard)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	statuses := s.health.Statuses()
	code := http.StatusOK
	status := "ok"
	if !s.health.IsHealthy() {
		code = http.StatusServiceUnavailable
		status = "degraded"
	}
	writeJSON(w, code, map[string]any{
		"status": status,
		"checks": statuses,
	})
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"message": msg,
			"type":    "error",
		},
	})
}

// writeDomainError maps domain sentinel errors onto HTTP status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrProspectNotFound),
		errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInviteInvalid),
		errors.Is(err, domain.ErrUnknownMetric),
		errors.Is(err, domain.ErrBadMonthKey),
		errors.Is(err, domain.ErrDayOutOfRange),
		errors.Is(err, domain.ErrInvalidStage),
		errors.Is(err, domain.ErrStageTransition):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrAlreadyMember):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// queryDate parses a ?date=YYYY-MM-DD parameter, defaulting to today.
func queryDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", raw)
}

// pathDay parses the {ym}/{day} path pair into a month key and day.
func pathDay(r *http.Request) (domain.MonthKey, int, error) {
	key, err := domain.ParseMonthKey(chi.URLParam(r, "ym"))
	if err != nil {
		return domain.MonthKey{}, 0, err
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 1 || day > key.Days() {
		return domain.MonthKey{}, 0, domain.ErrDayOutOfRange
	}
	return key, day, nil
}

// corsMiddleware adds CORS headers for local development.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// metricsMiddleware records request counts and latency.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		metrics.HTTPDuration.Observe(time.Since(start).Seconds())
		status := strconv.Itoa(ww.Status()/100) + "xx"
		metrics.HTTPRequests.WithLabelValues(r.Method, status).Inc()
	})
}
