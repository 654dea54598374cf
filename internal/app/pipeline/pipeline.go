// Package pipeline manages the prospect pipeline: create, advance,
// schedule follow-ups, and surface what is due today.
package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
	"github.com/herm409/activity-tracker-app-sub000/internal/infra/metrics"
	"github.com/herm409/activity-tracker-app-sub000/internal/infra/sqlite"
)

// Service manages prospects.
type Service struct {
	db  *sqlite.DB
	now func() time.Time
}

// NewService creates a pipeline service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Create adds a new prospect at the start of the pipeline.
func (s *Service) Create(userID, name, notes string, nextFollow time.Time) (domain.Prospect, error) {
	now := s.now()
	p := domain.Prospect{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       name,
		Stage:      domain.StageNew,
		NextFollow: nextFollow,
		Notes:      notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.UpsertProspect(p); err != nil {
		return domain.Prospect{}, fmt.Errorf("create prospect: %w", err)
	}
	metrics.ProspectsByStage.WithLabelValues(string(domain.StageNew)).Inc()
	return p, nil
}

// Get loads one prospect.
func (s *Service) Get(id string) (domain.Prospect, error) {
	p, err := s.db.GetProspect(id)
	if err != nil {
		return domain.Prospect{}, fmt.Errorf("get prospect: %w", err)
	}
	if p == nil {
		return domain.Prospect{}, domain.ErrProspectNotFound
	}
	return *p, nil
}

// List returns a user's prospects, most recently touched first.
func (s *Service) List(userID string) ([]domain.Prospect, error) {
	return s.db.ListProspects(userID)
}

// Due returns the prospects whose follow-up date has arrived.
func (s *Service) Due(userID string) ([]domain.Prospect, error) {
	return s.db.DueProspects(userID, s.now())
}

// Update rewrites a prospect's name, notes, and follow-up date.
// Stage changes go through Advance so transitions stay validated.
func (s *Service) Update(id, name, notes string, nextFollow time.Time) (domain.Prospect, error) {
	p, err := s.Get(id)
	if err != nil {
		return domain.Prospect{}, err
	}
	if name != "" {
		p.Name = name
	}
	p.Notes = notes
	p.NextFollow = nextFollow
	p.UpdatedAt = s.now()

	if err := s.db.UpsertProspect(p); err != nil {
		return domain.Prospect{}, fmt.Errorf("update prospect: %w", err)
	}
	return p, nil
}

// Advance moves a prospect to the next stage and optionally schedules
// the follow-up that goes with it.
func (s *Service) Advance(id string, next domain.Stage, nextFollow time.Time) (domain.Prospect, error) {
	p, err := s.Get(id)
	if err != nil {
		return domain.Prospect{}, err
	}

	if err := p.Advance(next, s.now()); err != nil {
		return domain.Prospect{}, err
	}
	if !next.Terminal() && !nextFollow.IsZero() {
		p.NextFollow = nextFollow
	}

	if err := s.db.UpsertProspect(p); err != nil {
		return domain.Prospect{}, fmt.Errorf("advance prospect: %w", err)
	}
	metrics.ProspectsByStage.WithLabelValues(string(next)).Inc()
	return p, nil
}

// Delete removes a prospect.
func (s *Service) Delete(id string) error {
	return s.db.DeleteProspect(id)
}
