// ABOUTME: Test result and observation persistence for SQLite storage.
// ABOUTME: Observations are append-only and keep their insertion sequence.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/athlete/internal/models"
)

// SaveResult upserts a result and appends its new observations.
func (d *DB) SaveResult(athleteID uuid.UUID, r *models.TestResult) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveResultTx(tx, athleteID, r); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return tx.Commit()
}

func saveResultTx(tx *sql.Tx, athleteID uuid.UUID, r *models.TestResult) error {
	upsert := `
		INSERT INTO test_results (athlete_id, test_id, latest_score, benchmark, percentile)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(athlete_id, test_id) DO UPDATE SET
			latest_score = excluded.latest_score,
			benchmark = excluded.benchmark,
			percentile = excluded.percentile
	`
	if _, err := tx.Exec(upsert, athleteID.String(), r.TestID, r.LatestScore, r.Benchmark, r.Percentile); err != nil {
		return err
	}

	var stored int
	err := tx.QueryRow(
		`SELECT COUNT(*) FROM observations WHERE athlete_id = ? AND test_id = ?`,
		athleteID.String(), r.TestID,
	).Scan(&stored)
	if err != nil {
		return err
	}
	if stored > len(r.History) {
		return fmt.Errorf("%w: %s has %d stored, %d given", ErrHistoryRewritten, r.TestID, stored, len(r.History))
	}

	insert := `
		INSERT INTO observations (athlete_id, test_id, seq, observed_at, value)
		VALUES (?, ?, ?, ?, ?)
	`
	for i := stored; i < len(r.History); i++ {
		o := r.History[i]
		if _, err := tx.Exec(insert, athleteID.String(), r.TestID, i, o.Date.Format(time.RFC3339Nano), o.Value); err != nil {
			return err
		}
	}
	return nil
}

// loadResults reads every result for an athlete with its ordered history.
func (d *DB) loadResults(athleteID uuid.UUID) (map[string]*models.TestResult, error) {
	rows, err := d.db.Query(`
		SELECT test_id, latest_score, benchmark, percentile
		FROM test_results
		WHERE athlete_id = ?
	`, athleteID.String())
	if err != nil {
		return nil, fmt.Errorf("load results: %w", err)
	}

	results := make(map[string]*models.TestResult)
	for rows.Next() {
		var r models.TestResult
		if err := rows.Scan(&r.TestID, &r.LatestScore, &r.Benchmark, &r.Percentile); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results[r.TestID] = &r
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("load results: %w", err)
	}
	_ = rows.Close()

	obs, err := d.db.Query(`
		SELECT test_id, observed_at, value
		FROM observations
		WHERE athlete_id = ?
		ORDER BY test_id, seq
	`, athleteID.String())
	if err != nil {
		return nil, fmt.Errorf("load observations: %w", err)
	}
	defer obs.Close()

	for obs.Next() {
		var testID, observedAt string
		var o models.Observation
		if err := obs.Scan(&testID, &observedAt, &o.Value); err != nil {
			return nil, fmt.Errorf("scan observation: %w", err)
		}
		o.Date, _ = time.Parse(time.RFC3339Nano, observedAt)
		if r, ok := results[testID]; ok {
			r.History = append(r.History, o)
		}
	}
	return results, obs.Err()
}
