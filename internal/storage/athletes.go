// ABOUTME: Athlete CRUD operations for SQLite storage.
// ABOUTME: Loads athletes together with their results and measurement.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/athlete/internal/models"
)

const dateLayout = "2006-01-02"

const athleteColumns = `id, first_name, last_name, dob, gender, contact, language, sport, role_in_sport, created_at`

// CreateAthlete stores a new athlete along with any results and measurement it carries.
func (d *DB) CreateAthlete(a *models.Athlete) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("create athlete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO athletes (` + athleteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(query,
		a.ID.String(),
		a.FirstName,
		a.LastName,
		formatDate(a.DOB),
		string(a.Gender),
		a.Contact,
		string(a.Language),
		string(a.Sport),
		a.RoleInSport,
		a.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("create athlete: %w", err)
	}

	for _, r := range a.Results {
		if err := saveResultTx(tx, a.ID, r); err != nil {
			return fmt.Errorf("create athlete: %w", err)
		}
	}
	if a.Measurement != nil {
		if err := saveMeasurementTx(tx, a.ID, a.Measurement); err != nil {
			return fmt.Errorf("create athlete: %w", err)
		}
	}

	return tx.Commit()
}

// GetAthlete retrieves an athlete by ID or ID prefix.
func (d *DB) GetAthlete(idOrPrefix string) (*models.Athlete, error) {
	id, err := d.resolveAthleteID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`SELECT `+athleteColumns+` FROM athletes WHERE id = ?`, id)
	a, err := scanAthlete(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
		}
		return nil, err
	}
	if err := d.loadAthlete(a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListAthletes returns athletes ordered by name, optionally filtered by sport.
func (d *DB) ListAthletes(sport *models.Sport, limit int) ([]*models.Athlete, error) {
	query := `SELECT ` + athleteColumns + ` FROM athletes`
	var args []interface{}

	if sport != nil {
		query += ` WHERE sport = ?`
		args = append(args, string(*sport))
	}
	query += ` ORDER BY last_name, first_name, id`
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}

	var athletes []*models.Athlete
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		athletes = append(athletes, a)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("list athletes: %w", err)
	}
	_ = rows.Close()

	for _, a := range athletes {
		if err := d.loadAthlete(a); err != nil {
			return nil, err
		}
	}
	return athletes, nil
}

// UpdateAthlete updates the athlete's profile fields. Results and the
// measurement are saved through their own operations.
func (d *DB) UpdateAthlete(a *models.Athlete) error {
	query := `
		UPDATE athletes
		SET first_name = ?, last_name = ?, dob = ?, gender = ?, contact = ?,
			language = ?, sport = ?, role_in_sport = ?
		WHERE id = ?
	`
	result, err := d.db.Exec(query,
		a.FirstName,
		a.LastName,
		formatDate(a.DOB),
		string(a.Gender),
		a.Contact,
		string(a.Language),
		string(a.Sport),
		a.RoleInSport,
		a.ID.String(),
	)
	if err != nil {
		return fmt.Errorf("update athlete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update athlete: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, a.ID)
	}
	return nil
}

// resolveAthleteID finds the full ID from a prefix.
func (d *DB) resolveAthleteID(idOrPrefix string) (string, error) {
	if len(idOrPrefix) == 36 && strings.Count(idOrPrefix, "-") == 4 {
		return idOrPrefix, nil
	}

	rows, err := d.db.Query(`SELECT id FROM athletes WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve athlete ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan athlete ID: %w", err)
		}
		matches = append(matches, id)
	}
	return pickMatch(idOrPrefix, matches)
}

// pickMatch applies the prefix lookup rules shared by all backends.
func pickMatch(idOrPrefix string, matches []string) (string, error) {
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w %s: matches multiple records", ErrAmbiguousPrefix, idOrPrefix)
	}
	return matches[0], nil
}

// loadAthlete fills in results, history, and the measurement.
func (d *DB) loadAthlete(a *models.Athlete) error {
	results, err := d.loadResults(a.ID)
	if err != nil {
		return err
	}
	a.Results = results

	m, err := d.loadMeasurement(a.ID)
	if err != nil {
		return err
	}
	a.Measurement = m
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanAthlete scans one athlete row.
func scanAthlete(row rowScanner) (*models.Athlete, error) {
	var a models.Athlete
	var idStr, gender, language, createdAt string
	var dob, contact, sport, role sql.NullString

	err := row.Scan(&idStr, &a.FirstName, &a.LastName, &dob, &gender, &contact, &language, &sport, &role, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan athlete: %w", err)
	}

	a.ID, _ = uuid.Parse(idStr)
	a.Gender = models.Gender(gender)
	a.Language = models.Language(language)
	a.Contact = contact.String
	a.Sport = models.Sport(sport.String)
	a.RoleInSport = role.String
	if dob.Valid && dob.String != "" {
		a.DOB, _ = time.Parse(dateLayout, dob.String)
	}
	a.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	a.Results = make(map[string]*models.TestResult)

	return &a, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
