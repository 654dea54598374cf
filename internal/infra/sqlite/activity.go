package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/herm409/activity-tracker-app-sub000/internal/domain"
)

// ─── Activity Day Repository ────────────────────────────────────────────────

// UpsertDay writes one calendar day's canonical record for a user.
func (d *DB) UpsertDay(userID string, key domain.MonthKey, day int, rec domain.DayRecord) error {
	if day < 1 || day > key.Days() {
		return fmt.Errorf("%w: %s day %d", domain.ErrDayOutOfRange, key, day)
	}

	_, err := d.db.Exec(
		`INSERT INTO activity_days (user_id, ym, day, exposures, follow_ups,
			presentations, presentation_types, three_ways, enrolls, gameplans,
			exercise, personal_dev, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, ym, day) DO UPDATE SET
			exposures=excluded.exposures,
			follow_ups=excluded.follow_ups,
			presentations=excluded.presentations,
			presentation_types=excluded.presentation_types,
			three_ways=excluded.three_ways,
			enrolls=excluded.enrolls,
			gameplans=excluded.gameplans,
			exercise=excluded.exercise,
			personal_dev=excluded.personal_dev,
			updated_at=excluded.updated_at`,
		userID, key.String(), day,
		rec.Exposures, rec.FollowUps, rec.Presentations,
		joinTypes(rec.PresentationTypes), rec.ThreeWays, rec.Enrolls,
		rec.Gameplans, rec.Exercise, rec.PersonalDev, time.Now().Unix(),
	)
	return err
}

// GetDay retrieves one day's record. ok is false when nothing was logged.
func (d *DB) GetDay(userID string, key domain.MonthKey, day int) (domain.DayRecord, bool, error) {
	row := d.db.QueryRow(
		`SELECT exposures, follow_ups, presentations, presentation_types,
			three_ways, enrolls, gameplans, exercise, personal_dev
		 FROM activity_days WHERE user_id = ? AND ym = ? AND day = ?`,
		userID, key.String(), day,
	)

	rec, err := scanDay(row)
	if err == sql.ErrNoRows {
		return domain.DayRecord{}, false, nil
	}
	if err != nil {
		return domain.DayRecord{}, false, err
	}
	return rec, true, nil
}

// MonthBucket loads a full month of records keyed by day-of-month.
func (d *DB) MonthBucket(userID string, key domain.MonthKey) (domain.MonthBucket, error) {
	rows, err := d.db.Query(
		`SELECT day, exposures, follow_ups, presentations, presentation_types,
			three_ways, enrolls, gameplans, exercise, personal_dev
		 FROM activity_days WHERE user_id = ? AND ym = ?`,
		userID, key.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bucket := domain.MonthBucket{}
	for rows.Next() {
		var day int
		var rec domain.DayRecord
		var types string
		err := rows.Scan(&day, &rec.Exposures, &rec.FollowUps, &rec.Presentations,
			&types, &rec.ThreeWays, &rec.Enrolls, &rec.Gameplans,
			&rec.Exercise, &rec.PersonalDev)
		if err != nil {
			return nil, err
		}
		rec.PresentationTypes = splitTypes(types)
		bucket[day] = rec
	}
	return bucket, rows.Err()
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func scanDay(s scanner) (domain.DayRecord, error) {
	var rec domain.DayRecord
	var types string
	err := s.Scan(&rec.Exposures, &rec.FollowUps, &rec.Presentations, &types,
		&rec.ThreeWays, &rec.Enrolls, &rec.Gameplans,
		&rec.Exercise, &rec.PersonalDev)
	if err != nil {
		return domain.DayRecord{}, err
	}
	rec.PresentationTypes = splitTypes(types)
	return rec, nil
}

func joinTypes(types []domain.PresentationType) string {
	if len(types) == 0 {
		return ""
	}
	parts := make([]string, len(types))
	for i, pt := range types {
		parts[i] = string(pt)
	}
	return strings.Join(parts, ",")
}

func splitTypes(s string) []domain.PresentationType {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	types := make([]domain.PresentationType, len(parts))
	for i, p := range parts {
		types[i] = domain.PresentationType(p)
	}
	return types
}
