package domain

import "time"

// Team groups users for shared leaderboards. Membership is by invite code.
type Team struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	InviteCode string    `json:"invite_code"`
	CreatedAt  time.Time `json:"created_at"`
}

// LeaderboardEntry is one user's standing over a date range.
type LeaderboardEntry struct {
	UserID        string `json:"user_id"`
	Name          string `json:"name"`
	Points        int    `json:"points"`
	Enrolls       int    `json:"enrolls"`
	CurrentStreak int    `json:"current_streak"`
}
