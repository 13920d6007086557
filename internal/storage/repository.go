// ABOUTME: Repository interface for athlete performance storage.
// ABOUTME: Defines the contract for athletes, test results, and measurements.
package storage

import (
	"errors"

	"github.com/google/uuid"
	"github.com/harperreed/athlete/internal/models"
)

var (
	// ErrNotFound is returned when no athlete matches an ID or prefix.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguousPrefix is returned when an ID prefix matches several athletes.
	ErrAmbiguousPrefix = errors.New("ambiguous prefix")
	// ErrMeasurementExists is returned when a body measurement is submitted twice.
	ErrMeasurementExists = errors.New("body measurement already submitted")
	// ErrHistoryRewritten is returned when a saved result has fewer
	// observations than are already stored.
	ErrHistoryRewritten = errors.New("observation history cannot shrink")
)

// Repository defines the storage interface for athlete data.
// Athletes are returned fully loaded: results, history, and measurement.
type Repository interface {
	// Athlete operations
	CreateAthlete(a *models.Athlete) error
	GetAthlete(idOrPrefix string) (*models.Athlete, error)
	ListAthletes(sport *models.Sport, limit int) ([]*models.Athlete, error)
	UpdateAthlete(a *models.Athlete) error

	// SaveResult upserts the result and appends any observations beyond
	// those already stored. Stored history is never rewritten.
	SaveResult(athleteID uuid.UUID, r *models.TestResult) error

	// SaveMeasurement stores the athlete's one body measurement.
	SaveMeasurement(athleteID uuid.UUID, m *models.BodyMeasurement) error

	// SaveMeasurementResult stores the body measurement together with the
	// height/weight result. Either both are written or neither is.
	SaveMeasurementResult(athleteID uuid.UUID, m *models.BodyMeasurement, r *models.TestResult) error

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
