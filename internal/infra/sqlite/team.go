package sqlite

import (
	"database/sql"
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

// ─── Team Repository ────────────────────────────────────────────────────────

// InsertTeam creates a new team.
func (d *DB) InsertTeam(t domain.Team) error {
	_, err := d.db.Exec(
		`INSERT INTO teams (id, name, invite_code, created_at) VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, t.InviteCode, t.CreatedAt.Unix(),
	)
	return err
}

// GetTeam retrieves a team by id. Returns nil without error when absent.
func (d *DB) GetTeam(id string) (*domain.Team, error) {
	return d.teamBy(`SELECT id, name, invite_code, created_at FROM teams WHERE id = ?`, id)
}

// TeamByInvite resolves an invite code to its team.
func (d *DB) TeamByInvite(code string) (*domain.Team, error) {
	return d.teamBy(`SELECT id, name, invite_code, created_at FROM teams WHERE invite_code = ?`, code)
}

// TeamMembers returns the profiles belonging to a team.
func (d *DB) TeamMembers(teamID string) ([]domain.Profile, error) {
	rows, err := d.db.Query(
		`SELECT user_id, name, par_target, team_id, created_at
		 FROM profiles WHERE team_id = ? ORDER BY name`, teamID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.Profile
	for rows.Next() {
		var p domain.Profile
		var createdAt int64
		err := rows.Scan(&p.UserID, &p.Name, &p.ParTarget, &p.TeamID, &createdAt)
		if err != nil {
			return nil, err
		}
		p.CreatedAt = time.Unix(createdAt, 0)
		members = append(members, p)
	}
	return members, rows.Err()
}

func (d *DB) teamBy(query, arg string) (*domain.Team, error) {
	var t domain.Team
	var createdAt int64

	err := d.db.QueryRow(query, arg).Scan(&t.ID, &t.Name, &t.InviteCode, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t.CreatedAt = time.Unix(createdAt, 0)
	return &t, nil
}
