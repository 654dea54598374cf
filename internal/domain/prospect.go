package domain

import (
	"fmt"
	"time"
)

// ─── Pipeline Stages ────────────────────────────────────────────────────────

// Stage is a prospect's position in the sales pipeline.
type Stage string

const (
	StageNew       Stage = "new"
	StageContacted Stage = "contacted"
	StagePresented Stage = "presented"
	StageFollowUp  Stage = "follow_up"
	StageEnrolled  Stage = "enrolled"
	StageDropped   Stage = "dropped"
)

// ParseStage converts a wire string into a Stage.
func ParseStage(s string) (Stage, error) {
	switch Stage(s) {
	case StageNew, StageContacted, StagePresented, StageFollowUp,
		StageEnrolled, StageDropped:
		return Stage(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStage, s)
}

// nextStages maps each stage to the transitions the pipeline allows.
// Dropping is allowed from any non-terminal stage.
var nextStages = map[Stage][]Stage{
	StageNew:       {StageContacted, StageDropped},
	StageContacted: {StagePresented, StageFollowUp, StageDropped},
	StagePresented: {StageFollowUp, StageEnrolled, StageDropped},
	StageFollowUp:  {StagePresented, StageEnrolled, StageDropped},
	StageEnrolled:  {},
	StageDropped:   {},
}

// CanAdvance reports whether a transition from s to next is legal.
func (s Stage) CanAdvance(next Stage) bool {
	for _, allowed := range nextStages[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether the stage ends the pipeline.
func (s Stage) Terminal() bool {
	return s == StageEnrolled || s == StageDropped
}

// ─── Prospect ───────────────────────────────────────────────────────────────

// Prospect is one person being worked through the pipeline.
type Prospect struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Name       string    `json:"name"`
	Stage      Stage     `json:"stage"`
	NextFollow time.Time `json:"next_follow_up,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Advance moves the prospect to the next stage, validating the transition.
func (p *Prospect) Advance(next Stage, now time.Time) error {
	if !p.Stage.CanAdvance(next) {
		return fmt.Errorf("%w: %s -> %s", ErrStageTransition, p.Stage, next)
	}
	p.Stage = next
	p.UpdatedAt = now
	if next.Terminal() {
		p.NextFollow = time.Time{}
	}
	return nil
}

// DueForFollowUp reports whether the prospect's follow-up date has passed.
func (p Prospect) DueForFollowUp(now time.Time) bool {
	if p.Stage.Terminal() || p.NextFollow.IsZero() {
		return false
	}
	return !p.NextFollow.After(now)
}
