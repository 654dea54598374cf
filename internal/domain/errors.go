package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure and carry no infrastructure dependency.

var (
	// Activity errors
	ErrUnknownMetric = errors.New("unknown metric")
	ErrBadMonthKey   = errors.New("invalid month key")
	ErrDayOutOfRange = errors.New("day outside calendar month")

	// Profile errors
	ErrProfileNotFound = errors.New("profile not found")

	// Prospect pipeline errors
	ErrProspectNotFound = errors.New("prospect not found")
	ErrInvalidStage     = errors.New("invalid pipeline stage")
	ErrStageTransition  = errors.New("illegal stage transition")

	// Team errors
	ErrTeamNotFound   = errors.New("team not found")
	ErrInviteInvalid  = errors.New("invite code not recognized")
	ErrAlreadyMember  = errors.New("user already belongs to the team")
)
