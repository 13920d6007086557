// ABOUTME: Body measurement persistence for SQLite storage.
// ABOUTME: A measurement is written once per athlete and never updated.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/athlete/internal/models"
)

// SaveMeasurement stores the athlete's body measurement.
func (d *DB) SaveMeasurement(athleteID uuid.UUID, m *models.BodyMeasurement) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("save measurement: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveMeasurementTx(tx, athleteID, m); err != nil {
		return fmt.Errorf("save measurement: %w", err)
	}
	return tx.Commit()
}

// SaveMeasurementResult stores the measurement and its result in one transaction.
func (d *DB) SaveMeasurementResult(athleteID uuid.UUID, m *models.BodyMeasurement, r *models.TestResult) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("save measurement: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := saveMeasurementTx(tx, athleteID, m); err != nil {
		return fmt.Errorf("save measurement: %w", err)
	}
	if err := saveResultTx(tx, athleteID, r); err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return tx.Commit()
}

func saveMeasurementTx(tx *sql.Tx, athleteID uuid.UUID, m *models.BodyMeasurement) error {
	var exists int
	err := tx.QueryRow(`SELECT COUNT(*) FROM body_measurements WHERE athlete_id = ?`, athleteID.String()).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return ErrMeasurementExists
	}

	_, err = tx.Exec(`
		INSERT INTO body_measurements
			(athlete_id, height, height_unit, weight, weight_unit, height_video, weight_video, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		athleteID.String(),
		m.Height,
		string(m.HeightUnit),
		m.Weight,
		string(m.WeightUnit),
		m.HeightVideo,
		m.WeightVideo,
		m.SubmittedAt.Format(time.RFC3339),
	)
	return err
}

// loadMeasurement returns the athlete's measurement, or nil if none was submitted.
func (d *DB) loadMeasurement(athleteID uuid.UUID) (*models.BodyMeasurement, error) {
	var m models.BodyMeasurement
	var hu, wu, submittedAt string
	var hv, wv sql.NullString

	err := d.db.QueryRow(`
		SELECT height, height_unit, weight, weight_unit, height_video, weight_video, submitted_at
		FROM body_measurements
		WHERE athlete_id = ?
	`, athleteID.String()).Scan(&m.Height, &hu, &m.Weight, &wu, &hv, &wv, &submittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("load measurement: %w", err)
	}

	m.HeightUnit = models.HeightUnit(hu)
	m.WeightUnit = models.WeightUnit(wu)
	m.HeightVideo = hv.String
	m.WeightVideo = wv.String
	m.SubmittedAt, _ = time.Parse(time.RFC3339, submittedAt)
	return &m, nil
}
