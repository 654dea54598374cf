package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

// ─── Prospect Pipeline ──────────────────────────────────────────────────────

func (s *Server) handleListProspects(w http.ResponseWriter, r *http.Request) {
	list, err := s.pipeline.List(chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"prospects": list})
}

func (s *Server) handleDueProspects(w http.ResponseWriter, r *http.Request) {
	due, err := s.pipeline.Due(chi.URLParam(r, "userID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"prospects": due})
}

type prospectRequest struct {
	Name       string `json:"name"`
	Notes      string `json:"notes"`
	NextFollow string `json:"next_follow_up"` // YYYY-MM-DD, optional
}

func (r prospectRequest) followDate() (time.Time, error) {
	if r.NextFollow == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", r.NextFollow)
}

func (s *Server) handleCreateProspect(w http.ResponseWriter, r *http.Request) {
	var req prospectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	follow, err := req.followDate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.pipeline.Create(chi.URLParam(r, "userID"), req.Name, req.Notes, follow)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleGetProspect(w http.ResponseWriter, r *http.Request) {
	p, err := s.pipeline.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdateProspect(w http.ResponseWriter, r *http.Request) {
	var req prospectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	follow, err := req.followDate()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := s.pipeline.Update(chi.URLParam(r, "id"), req.Name, req.Notes, follow)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProspect(w http.ResponseWriter, r *http.Request) {
	if err := s.pipeline.Delete(chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type advanceRequest struct {
	Stage      string `json:"stage"`
	NextFollow string `json:"next_follow_up"`
}

func (s *Server) handleAdvanceProspect(w http.ResponseWriter, r *http.Request) {
	var req advanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	stage, err := domain.ParseStage(req.Stage)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	var follow time.Time
	if req.NextFollow != "" {
		follow, err = time.Parse("2006-01-02", req.NextFollow)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	p, err := s.pipeline.Advance(chi.URLParam(r, "id"), stage, follow)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
