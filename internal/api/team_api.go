package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// ─── Teams and Leaderboards ─────────────────────────────────────────────────

type createTeamRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var req createTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	t, err := s.teams.Create(req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

type joinTeamRequest struct {
	UserID     string `json:"user_id"`
	InviteCode string `json:"invite_code"`
}

func (s *Server) handleJoinTeam(w http.ResponseWriter, r *http.Request) {
	var req joinTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.UserID == "" || req.InviteCode == "" {
		writeError(w, http.StatusBadRequest, "user_id and invite_code are required")
		return
	}

	t, err := s.teams.Join(req.UserID, req.InviteCode)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// handleLeaderboard ranks the team over ?from=..&to=.. (default: the
// trailing 7 days).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	to := time.Now()
	from := to.AddDate(0, 0, -6)

	if raw := r.URL.Query().Get("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		to = parsed
		from = to.AddDate(0, 0, -6)
	}
	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		from = parsed
	}

	entries, err := s.teams.Leaderboard(chi.URLParam(r, "teamID"), from, to)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"from":    from.Format("2006-01-02"),
		"to":      to.Format("2006-01-02"),
		"entries": entries,
	})
}
