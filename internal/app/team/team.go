// Package team manages team rosters and leaderboards. Membership is by
// invite code; standings are computed from the same scoring engine the
// personal views use.
package team

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/herm409/activity-tracker-app-sub000/internal/app/scoring"
	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
	"github.com/herm409/activity-tracker-app-sub000/internal/infra/sqlite"
)

// Service manages teams and leaderboards.
type Service struct {
	db  *sqlite.DB
	now func() time.Time
}

// NewService creates a team service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Create provisions a team with a fresh invite code.
func (s *Service) Create(name string) (domain.Team, error) {
	t := domain.Team{
		ID:         uuid.NewString(),
		Name:       name,
		InviteCode: uuid.NewString()[:8],
		CreatedAt:  s.now(),
	}
	if err := s.db.InsertTeam(t); err != nil {
		return domain.Team{}, fmt.Errorf("create team: %w", err)
	}
	return t, nil
}

// Join adds a user to the team behind an invite code.
func (s *Service) Join(userID, inviteCode string) (domain.Team, error) {
	t, err := s.db.TeamByInvite(inviteCode)
	if err != nil {
		return domain.Team{}, fmt.Errorf("resolve invite: %w", err)
	}
	if t == nil {
		return domain.Team{}, domain.ErrInviteInvalid
	}

	p, err := s.db.GetProfile(userID)
	if err != nil {
		return domain.Team{}, fmt.Errorf("get profile: %w", err)
	}
	if p != nil && p.TeamID == t.ID {
		return domain.Team{}, domain.ErrAlreadyMember
	}
	if p == nil {
		fresh := domain.NewProfile(userID, userID)
		if err := s.db.UpsertProfile(fresh); err != nil {
			return domain.Team{}, fmt.Errorf("create profile: %w", err)
		}
	}

	if err := s.db.SetProfileTeam(userID, t.ID); err != nil {
		return domain.Team{}, fmt.Errorf("join team: %w", err)
	}
	return *t, nil
}

// Leaderboard ranks team members by points scored over from..to
// inclusive. Streaks are relative to the range end. Days outside each
// member's two tracked months contribute zero, same as everywhere else.
func (s *Service) Leaderboard(teamID string, from, to time.Time) ([]domain.LeaderboardEntry, error) {
	t, err := s.db.GetTeam(teamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	if t == nil {
		return nil, domain.ErrTeamNotFound
	}

	members, err := s.db.TeamMembers(teamID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(members))
	for _, member := range members {
		window, err := s.memberWindow(member.UserID, to)
		if err != nil {
			return nil, err
		}
		totals := scoring.SumRange([]domain.Metric{domain.MetricEnrolls}, from, to, window)
		entries = append(entries, domain.LeaderboardEntry{
			UserID:        member.UserID,
			Name:          member.Name,
			Points:        scoring.SumPoints(from, to, window),
			Enrolls:       totals[domain.MetricEnrolls],
			CurrentStreak: scoring.CalculateStreak(domain.MetricExposures, to, window),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].Enrolls > entries[j].Enrolls
	})
	return entries, nil
}

func (s *Service) memberWindow(userID string, ref time.Time) (scoring.TwoMonthWindow, error) {
	key := domain.MonthKeyOf(ref)
	cur, err := s.db.MonthBucket(userID, key)
	if err != nil {
		return scoring.TwoMonthWindow{}, fmt.Errorf("load month: %w", err)
	}
	prev, err := s.db.MonthBucket(userID, key.Prev())
	if err != nil {
		return scoring.TwoMonthWindow{}, fmt.Errorf("load month: %w", err)
	}
	return scoring.NewTwoMonthWindow(key, cur, prev), nil
}
