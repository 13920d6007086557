// ABOUTME: Badger-backed Repository for embedded key-value storage.
// ABOUTME: Observations are keyed by ULID so prefix scans return append order.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/sirupsen/logrus"

	"github.com/harperreed/athlete/internal/models"
)

// Key layout:
//
//	athlete:<id>                    profile JSON
//	result:<id>:<test>              result JSON without history
//	obs:<id>:<test>:<ulid>          observation JSON
//	measurement:<id>                measurement JSON
const (
	athletePrefix     = "athlete:"
	resultPrefix      = "result:"
	obsPrefix         = "obs:"
	measurementPrefix = "measurement:"
)

// KVStore implements Repository on top of Badger.
type KVStore struct {
	db  *badger.DB
	dir string
}

var _ Repository = (*KVStore)(nil)

// badgerLogger routes Badger's logging through logrus, demoting its chatty
// info messages to debug.
type badgerLogger struct {
	entry *logrus.Entry
}

func (l badgerLogger) Errorf(f string, v ...interface{})   { l.entry.Errorf(f, v...) }
func (l badgerLogger) Warningf(f string, v ...interface{}) { l.entry.Warnf(f, v...) }
func (l badgerLogger) Infof(f string, v ...interface{})    { l.entry.Debugf(f, v...) }
func (l badgerLogger) Debugf(f string, v ...interface{})   { l.entry.Tracef(f, v...) }

// OpenKV opens or creates a Badger store in dir.
func OpenKV(dir string) (*KVStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	opts := badger.DefaultOptions(dir).
		WithLogger(badgerLogger{entry: logrus.WithField("component", "badger")})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &KVStore{db: db, dir: dir}, nil
}

// DefaultKVPath returns the default Badger directory following XDG spec.
func DefaultKVPath() string {
	return filepath.Join(DataDir(), "kv")
}

// Close closes the store.
func (s *KVStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type kvProfile struct {
	ID          uuid.UUID       `json:"id"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	DOB         string          `json:"dob,omitempty"`
	Gender      models.Gender   `json:"gender"`
	Contact     string          `json:"contact,omitempty"`
	Language    models.Language `json:"language"`
	Sport       models.Sport    `json:"sport"`
	RoleInSport string          `json:"role_in_sport,omitempty"`
	CreatedAt   string          `json:"created_at"`
}

type kvResult struct {
	LatestScore float64 `json:"latest_score"`
	Benchmark   float64 `json:"benchmark"`
	Percentile  int     `json:"percentile"`
}

func athleteKey(id uuid.UUID) []byte { return []byte(athletePrefix + id.String()) }
func resultKey(id uuid.UUID, testID string) []byte {
	return []byte(resultPrefix + id.String() + ":" + testID)
}
func obsKeyPrefix(id uuid.UUID, testID string) []byte {
	return []byte(obsPrefix + id.String() + ":" + testID + ":")
}
func measurementKey(id uuid.UUID) []byte { return []byte(measurementPrefix + id.String()) }

func setJSON(txn *badger.Txn, key []byte, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return txn.Set(key, data)
}

func getJSON(txn *badger.Txn, key []byte, v any) error {
	item, err := txn.Get(key)
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// CreateAthlete stores a new athlete along with any results and measurement it carries.
func (s *KVStore) CreateAthlete(a *models.Athlete) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(athleteKey(a.ID)); err == nil {
			return fmt.Errorf("athlete %s already exists", a.ID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		if err := setJSON(txn, athleteKey(a.ID), toProfile(a)); err != nil {
			return err
		}
		for _, r := range a.Results {
			if err := saveResultTxn(txn, a.ID, r); err != nil {
				return err
			}
		}
		if a.Measurement != nil {
			return saveMeasurementTxn(txn, a.ID, a.Measurement)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("create athlete: %w", err)
	}
	return nil
}

// GetAthlete retrieves an athlete by ID or ID prefix.
func (s *KVStore) GetAthlete(idOrPrefix string) (*models.Athlete, error) {
	var a *models.Athlete
	err := s.db.View(func(txn *badger.Txn) error {
		id, err := resolveKVAthleteID(txn, idOrPrefix)
		if err != nil {
			return err
		}
		a, err = loadKVAthlete(txn, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// ListAthletes returns athletes ordered by name, optionally filtered by sport.
func (s *KVStore) ListAthletes(sport *models.Sport, limit int) ([]*models.Athlete, error) {
	var athletes []*models.Athlete
	err := s.db.View(func(txn *badger.Txn) error {
		var ids []uuid.UUID
		err := scanPrefix(txn, []byte(athletePrefix), func(key []byte) error {
			id, err := uuid.Parse(strings.TrimPrefix(string(key), athletePrefix))
			if err != nil {
				return fmt.Errorf("parse athlete key %q: %w", key, err)
			}
			ids = append(ids, id)
			return nil
		})
		if err != nil {
			return err
		}
		for _, id := range ids {
			a, err := loadKVAthlete(txn, id)
			if err != nil {
				return err
			}
			if sport != nil && a.Sport != *sport {
				continue
			}
			athletes = append(athletes, a)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list athletes: %w", err)
	}

	sortAthletes(athletes)
	if limit > 0 && len(athletes) > limit {
		athletes = athletes[:limit]
	}
	return athletes, nil
}

// UpdateAthlete updates the athlete's profile fields.
func (s *KVStore) UpdateAthlete(a *models.Athlete) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(athleteKey(a.ID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, a.ID)
			}
			return err
		}
		return setJSON(txn, athleteKey(a.ID), toProfile(a))
	})
	if err != nil {
		return fmt.Errorf("update athlete: %w", err)
	}
	return nil
}

// SaveResult upserts a result and appends its new observations.
func (s *KVStore) SaveResult(athleteID uuid.UUID, r *models.TestResult) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(athleteKey(athleteID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, athleteID)
			}
			return err
		}
		return saveResultTxn(txn, athleteID, r)
	})
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

// SaveMeasurement stores the athlete's body measurement.
func (s *KVStore) SaveMeasurement(athleteID uuid.UUID, m *models.BodyMeasurement) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return saveMeasurementTxn(txn, athleteID, m)
	})
	if err != nil {
		return fmt.Errorf("save measurement: %w", err)
	}
	return nil
}

// SaveMeasurementResult stores the measurement and its result in one transaction.
func (s *KVStore) SaveMeasurementResult(athleteID uuid.UUID, m *models.BodyMeasurement, r *models.TestResult) error {
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(athleteKey(athleteID)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, athleteID)
			}
			return err
		}
		if err := saveMeasurementTxn(txn, athleteID, m); err != nil {
			return fmt.Errorf("save measurement: %w", err)
		}
		if err := saveResultTxn(txn, athleteID, r); err != nil {
			return fmt.Errorf("save result: %w", err)
		}
		return nil
	})
}

// GetAllData retrieves all data for export.
func (s *KVStore) GetAllData() (*ExportData, error) {
	athletes, err := s.ListAthletes(nil, 0)
	if err != nil {
		return nil, err
	}
	return newExportData(athletes), nil
}

// ImportData imports data from an export file.
func (s *KVStore) ImportData(data *ExportData) error {
	return importAthletes(s, data)
}

func saveResultTxn(txn *badger.Txn, athleteID uuid.UUID, r *models.TestResult) error {
	if err := setJSON(txn, resultKey(athleteID, r.TestID), kvResult{
		LatestScore: r.LatestScore,
		Benchmark:   r.Benchmark,
		Percentile:  r.Percentile,
	}); err != nil {
		return err
	}

	prefix := obsKeyPrefix(athleteID, r.TestID)
	stored := 0
	if err := scanPrefix(txn, prefix, func([]byte) error {
		stored++
		return nil
	}); err != nil {
		return err
	}
	if stored > len(r.History) {
		return fmt.Errorf("%w: %s has %d stored, %d given", ErrHistoryRewritten, r.TestID, stored, len(r.History))
	}

	for _, o := range r.History[stored:] {
		key := append(append([]byte{}, prefix...), ulid.Make().String()...)
		if err := setJSON(txn, key, o); err != nil {
			return err
		}
	}
	return nil
}

func saveMeasurementTxn(txn *badger.Txn, athleteID uuid.UUID, m *models.BodyMeasurement) error {
	_, err := txn.Get(measurementKey(athleteID))
	if err == nil {
		return ErrMeasurementExists
	}
	if !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}
	return setJSON(txn, measurementKey(athleteID), m)
}

func resolveKVAthleteID(txn *badger.Txn, idOrPrefix string) (uuid.UUID, error) {
	var matches []string
	err := scanPrefix(txn, []byte(athletePrefix+idOrPrefix), func(key []byte) error {
		matches = append(matches, strings.TrimPrefix(string(key), athletePrefix))
		return nil
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve athlete ID: %w", err)
	}
	id, err := pickMatch(idOrPrefix, matches)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(id)
}

func loadKVAthlete(txn *badger.Txn, id uuid.UUID) (*models.Athlete, error) {
	var p kvProfile
	if err := getJSON(txn, athleteKey(id), &p); err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("load athlete %s: %w", id, err)
	}
	a := fromProfile(p)

	prefix := []byte(resultPrefix + id.String() + ":")
	var testIDs []string
	if err := scanPrefix(txn, prefix, func(key []byte) error {
		testIDs = append(testIDs, strings.TrimPrefix(string(key), string(prefix)))
		return nil
	}); err != nil {
		return nil, err
	}

	for _, testID := range testIDs {
		var kr kvResult
		if err := getJSON(txn, resultKey(id, testID), &kr); err != nil {
			return nil, fmt.Errorf("load result %s: %w", testID, err)
		}
		r := &models.TestResult{
			TestID:      testID,
			LatestScore: kr.LatestScore,
			Benchmark:   kr.Benchmark,
			Percentile:  kr.Percentile,
		}
		if err := scanPrefixValues(txn, obsKeyPrefix(id, testID), func(val []byte) error {
			var o models.Observation
			if err := json.Unmarshal(val, &o); err != nil {
				return err
			}
			r.History = append(r.History, o)
			return nil
		}); err != nil {
			return nil, fmt.Errorf("load observations %s: %w", testID, err)
		}
		a.Results[testID] = r
	}

	var m models.BodyMeasurement
	err := getJSON(txn, measurementKey(id), &m)
	switch {
	case err == nil:
		a.Measurement = &m
	case !errors.Is(err, badger.ErrKeyNotFound):
		return nil, fmt.Errorf("load measurement: %w", err)
	}
	return a, nil
}

// scanPrefix calls fn with a copy of every key under prefix, in key order.
func scanPrefix(txn *badger.Txn, prefix []byte, fn func(key []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := fn(it.Item().KeyCopy(nil)); err != nil {
			return err
		}
	}
	return nil
}

// scanPrefixValues calls fn with every value under prefix, in key order.
func scanPrefixValues(txn *badger.Txn, prefix []byte, fn func(val []byte) error) error {
	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()

	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}
