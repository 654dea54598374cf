package domain

import "time"

// DefaultParTarget is the daily point target applied to new profiles.
const DefaultParTarget = 2

// Profile is a user's tracker configuration and long-lived stats.
type Profile struct {
	UserID         string         `json:"user_id"`
	Name           string         `json:"name"`
	ParTarget      int            `json:"par_target"`
	MonthlyGoals   map[Metric]int `json:"monthly_goals,omitempty"`
	LongestStreaks map[Metric]int `json:"longest_streaks,omitempty"`
	TeamID         string         `json:"team_id,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// NewProfile returns a profile with the default par target.
func NewProfile(userID, name string) Profile {
	return Profile{
		UserID:         userID,
		Name:           name,
		ParTarget:      DefaultParTarget,
		MonthlyGoals:   map[Metric]int{},
		LongestStreaks: map[Metric]int{},
		CreatedAt:      time.Now(),
	}
}

// GoalProgress is one metric's monthly total measured against its goal.
type GoalProgress struct {
	Metric Metric  `json:"metric"`
	Total  int     `json:"total"`
	Goal   int     `json:"goal"`
	Pct    float64 `json:"pct"`
}

// ProgressPct returns completion percentage (0-100) for a total vs. goal.
func ProgressPct(total, goal int) float64 {
	if goal <= 0 {
		return 100.0
	}
	pct := float64(total) / float64(goal) * 100.0
	if pct > 100.0 {
		pct = 100.0
	}
	return pct
}
