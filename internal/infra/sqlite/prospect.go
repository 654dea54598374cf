package sqlite

import (
	"database/sql"
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

// ─── Prospect Repository ────────────────────────────────────────────────────

// UpsertProspect inserts or updates a prospect.
func (d *DB) UpsertProspect(p domain.Prospect) error {
	_, err := d.db.Exec(
		`INSERT INTO prospects (id, user_id, name, stage, next_follow, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			stage=excluded.stage,
			next_follow=excluded.next_follow,
			notes=excluded.notes,
			updated_at=excluded.updated_at`,
		p.ID, p.UserID, p.Name, string(p.Stage), nullableUnix(p.NextFollow),
		p.Notes, p.CreatedAt.Unix(), p.UpdatedAt.Unix(),
	)
	return err
}

// GetProspect retrieves one prospect. Returns nil without error when absent.
func (d *DB) GetProspect(id string) (*domain.Prospect, error) {
	row := d.db.QueryRow(
		`SELECT id, user_id, name, stage, next_follow, notes, created_at, updated_at
		 FROM prospects WHERE id = ?`, id,
	)
	p, err := scanProspect(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// ListProspects returns a user's prospects, most recently updated first.
func (d *DB) ListProspects(userID string) ([]domain.Prospect, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, name, stage, next_follow, notes, created_at, updated_at
		 FROM prospects WHERE user_id = ? ORDER BY updated_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Prospect
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// DueProspects returns non-terminal prospects whose follow-up date is at
// or before now, soonest first.
func (d *DB) DueProspects(userID string, now time.Time) ([]domain.Prospect, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, name, stage, next_follow, notes, created_at, updated_at
		 FROM prospects
		 WHERE user_id = ? AND next_follow IS NOT NULL AND next_follow <= ?
		   AND stage NOT IN (?, ?)
		 ORDER BY next_follow ASC`,
		userID, now.Unix(), string(domain.StageEnrolled), string(domain.StageDropped),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Prospect
	for rows.Next() {
		p, err := scanProspect(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// DeleteProspect removes a prospect record.
func (d *DB) DeleteProspect(id string) error {
	result, err := d.db.Exec(`DELETE FROM prospects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return domain.ErrProspectNotFound
	}
	return nil
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func scanProspect(s scanner) (*domain.Prospect, error) {
	var p domain.Prospect
	var stage string
	var nextFollow sql.NullInt64
	var createdAt, updatedAt int64

	err := s.Scan(&p.ID, &p.UserID, &p.Name, &stage, &nextFollow,
		&p.Notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	p.Stage = domain.Stage(stage)
	if nextFollow.Valid {
		p.NextFollow = time.Unix(nextFollow.Int64, 0)
	}
	p.CreatedAt = time.Unix(createdAt, 0)
	p.UpdatedAt = time.Unix(updatedAt, 0)
	return &p, nil
}

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
