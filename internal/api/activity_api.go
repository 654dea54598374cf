package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

// ─── Profile ────────────────────────────────────────────────────────────────

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.tracker.Profile(chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

type putProfileRequest struct {
	Name         string                `json:"name"`
	ParTarget    int                   `json:"par_target"`
	MonthlyGoals map[domain.Metric]int `json:"monthly_goals"`
}

func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	var req putProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := s.tracker.Profile(chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if req.Name != "" {
		profile.Name = req.Name
	}
	if req.ParTarget > 0 {
		profile.ParTarget = req.ParTarget
	}
	for m, goal := range req.MonthlyGoals {
		if _, err := domain.ParseMetric(string(m)); err != nil {
			writeDomainError(w, err)
			return
		}
		profile.MonthlyGoals[m] = goal
	}

	if err := s.tracker.SaveProfile(profile); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ─── Activity Days ──────────────────────────────────────────────────────────

func (s *Server) handleGetMonth(w http.ResponseWriter, r *http.Request) {
	key, err := domain.ParseMonthKey(chi.URLParam(r, "ym"))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	bucket, err := s.tracker.Month(chi.URLParam(r, "userID"), key)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month": key.String(),
		"days":  bucket,
	})
}

// handlePutDay accepts a day record in legacy wire form and stores the
// canonical version.
func (s *Server) handlePutDay(w http.ResponseWriter, r *http.Request) {
	key, day, err := pathDay(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var raw domain.RawDayRecord
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec := raw.Canonical()
	if err := s.tracker.LogDay(chi.URLParam(r, "userID"), key.Date(day), rec); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

type incrementRequest struct {
	Metric string `json:"metric"`
	Delta  int    `json:"delta"`
}

func (s *Server) handleIncrement(w http.ResponseWriter, r *http.Request) {
	key, day, err := pathDay(r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	var req incrementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	metric, err := domain.ParseMetric(req.Metric)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if req.Delta == 0 {
		req.Delta = 1
	}

	rec, err := s.tracker.AddActivity(chi.URLParam(r, "userID"), key.Date(day), metric, req.Delta)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ─── Summaries and Reports ──────────────────────────────────────────────────

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary, err := s.tracker.Summary(chi.URLParam(r, "userID"), date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleWeekReport(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := s.tracker.ReportWeek(chi.URLParam(r, "userID"), date)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleMonthReport(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ym")
	var key domain.MonthKey
	if raw == "" {
		key = domain.MonthKeyOf(time.Now())
	} else {
		var err error
		key, err = domain.ParseMonthKey(raw)
		if err != nil {
			writeDomainError(w, err)
			return
		}
	}

	progress, err := s.tracker.ReportMonth(chi.URLParam(r, "userID"), key)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}
