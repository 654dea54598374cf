// Package sqlite provides SQLite-based persistent storage for the tracker.
// Uses WAL mode for concurrent reads and crash-safe writes.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/tracker.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "tracker.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// User profiles: par target and team membership live here.
		`CREATE TABLE IF NOT EXISTS profiles (
			user_id    TEXT PRIMARY KEY,
			name       TEXT NOT NULL DEFAULT '',
			par_target INTEGER NOT NULL DEFAULT 2,
			team_id    TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_team ON profiles(team_id)`,

		// Monthly goals per metric.
		`CREATE TABLE IF NOT EXISTS profile_goals (
			user_id TEXT NOT NULL,
			metric  TEXT NOT NULL,
			goal    INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, metric)
		)`,

		// Longest streak high-water marks per metric.
		`CREATE TABLE IF NOT EXISTS longest_streaks (
			user_id TEXT NOT NULL,
			metric  TEXT NOT NULL,
			days    INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (user_id, metric)
		)`,

		// One row per user per calendar day. Counts are canonical;
		// legacy synonyms are folded in before they reach the store.
		`CREATE TABLE IF NOT EXISTS activity_days (
			user_id            TEXT NOT NULL,
			ym                 TEXT NOT NULL,
			day                INTEGER NOT NULL,
			exposures          INTEGER NOT NULL DEFAULT 0,
			follow_ups         INTEGER NOT NULL DEFAULT 0,
			presentations      INTEGER NOT NULL DEFAULT 0,
			presentation_types TEXT NOT NULL DEFAULT '',
			three_ways         INTEGER NOT NULL DEFAULT 0,
			enrolls            INTEGER NOT NULL DEFAULT 0,
			gameplans          INTEGER NOT NULL DEFAULT 0,
			exercise           BOOLEAN NOT NULL DEFAULT 0,
			personal_dev       BOOLEAN NOT NULL DEFAULT 0,
			updated_at         INTEGER NOT NULL,
			PRIMARY KEY (user_id, ym, day)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_activity_ym ON activity_days(ym)`,

		// Prospect pipeline.
		`CREATE TABLE IF NOT EXISTS prospects (
			id          TEXT PRIMARY KEY,
			user_id     TEXT NOT NULL,
			name        TEXT NOT NULL,
			stage       TEXT NOT NULL,
			next_follow INTEGER,
			notes       TEXT NOT NULL DEFAULT '',
			created_at  INTEGER NOT NULL,
			updated_at  INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_prospects_user ON prospects(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_prospects_follow ON prospects(next_follow)`,

		// Teams joined by invite code.
		`CREATE TABLE IF NOT EXISTS teams (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			invite_code TEXT NOT NULL UNIQUE,
			created_at  INTEGER NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
