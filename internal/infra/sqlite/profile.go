package sqlite

import (
	"database/sql"
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

// ─── Profile Repository ─────────────────────────────────────────────────────

// UpsertProfile writes a profile along with its monthly goals.
func (d *DB) UpsertProfile(p domain.Profile) error {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := d.db.Exec(
		`INSERT INTO profiles (user_id, name, par_target, team_id, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			name=excluded.name,
			par_target=excluded.par_target,
			team_id=excluded.team_id`,
		p.UserID, p.Name, p.ParTarget, p.TeamID, createdAt.Unix(),
	)
	if err != nil {
		return err
	}

	for metric, goal := range p.MonthlyGoals {
		_, err := d.db.Exec(
			`INSERT INTO profile_goals (user_id, metric, goal) VALUES (?, ?, ?)
			 ON CONFLICT(user_id, metric) DO UPDATE SET goal=excluded.goal`,
			p.UserID, string(metric), goal,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetProfile retrieves a profile with goals and longest streaks attached.
// Returns nil without error when the user is unknown.
func (d *DB) GetProfile(userID string) (*domain.Profile, error) {
	var p domain.Profile
	var createdAt int64

	err := d.db.QueryRow(
		`SELECT user_id, name, par_target, team_id, created_at
		 FROM profiles WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &p.Name, &p.ParTarget, &p.TeamID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p.CreatedAt = time.Unix(createdAt, 0)

	p.MonthlyGoals, err = d.metricInts(
		`SELECT metric, goal FROM profile_goals WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	p.LongestStreaks, err = d.LongestStreaks(userID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SetProfileTeam moves a user onto a team.
func (d *DB) SetProfileTeam(userID, teamID string) error {
	_, err := d.db.Exec(
		`UPDATE profiles SET team_id = ? WHERE user_id = ?`, teamID, userID)
	return err
}

// ─── Longest Streaks ────────────────────────────────────────────────────────

// LongestStreaks returns the per-metric high-water marks for a user.
func (d *DB) LongestStreaks(userID string) (map[domain.Metric]int, error) {
	return d.metricInts(
		`SELECT metric, days FROM longest_streaks WHERE user_id = ?`, userID)
}

// RaiseLongestStreak records a new longest streak if days exceeds the
// stored value. Lower or equal values are ignored, so the stored mark
// only ever moves up.
func (d *DB) RaiseLongestStreak(userID string, metric domain.Metric, days int) error {
	_, err := d.db.Exec(
		`INSERT INTO longest_streaks (user_id, metric, days) VALUES (?, ?, ?)
		 ON CONFLICT(user_id, metric) DO UPDATE SET days=excluded.days
		 WHERE excluded.days > longest_streaks.days`,
		userID, string(metric), days,
	)
	return err
}

// metricInts runs a (metric, value) query into a map.
func (d *DB) metricInts(query, userID string) (map[domain.Metric]int, error) {
	rows, err := d.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[domain.Metric]int{}
	for rows.Next() {
		var metric string
		var val int
		if err := rows.Scan(&metric, &val); err != nil {
			return nil, err
		}
		out[domain.Metric(metric)] = val
	}
	return out, rows.Err()
}
