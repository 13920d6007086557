// ABOUTME: Tests for Repository implementations.
// ABOUTME: Runs the same athlete, result, and measurement checks against SQLite and Badger.
package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/athlete/internal/models"
)

var day0 = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "athlete.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestKV(t *testing.T) *KVStore {
	t.Helper()

	kv, err := OpenKV(filepath.Join(t.TempDir(), "kv"))
	if err != nil {
		t.Fatalf("Failed to open kv store: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv
}

// forEachBackend runs fn once per storage backend.
func forEachBackend(t *testing.T, fn func(t *testing.T, repo Repository)) {
	t.Run("sqlite", func(t *testing.T) { fn(t, setupTestDB(t)) })
	t.Run("badger", func(t *testing.T) { fn(t, setupTestKV(t)) })
}

func newTestAthlete(first, last string, sport models.Sport) *models.Athlete {
	return models.NewAthlete(first, last).
		WithDOB(time.Date(2008, 5, 15, 0, 0, 0, 0, time.UTC)).
		WithGender(models.GenderFemale).
		WithSport(sport, "Sprinter").
		WithContact(first + "@example.com").
		WithLanguage(models.LanguageHindi)
}

func TestCreateAndGetAthlete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		a := newTestAthlete("Priya", "Sharma", models.SportAthletics)
		a.Results[models.HeightWeightTestID] = &models.TestResult{TestID: models.HeightWeightTestID}

		if err := repo.CreateAthlete(a); err != nil {
			t.Fatalf("CreateAthlete failed: %v", err)
		}

		got, err := repo.GetAthlete(a.ID.String())
		if err != nil {
			t.Fatalf("GetAthlete failed: %v", err)
		}
		if got.ID != a.ID {
			t.Errorf("ID mismatch: got %v, want %v", got.ID, a.ID)
		}
		if got.FullName() != "Priya Sharma" {
			t.Errorf("FullName mismatch: got %q", got.FullName())
		}
		if !got.DOB.Equal(a.DOB) {
			t.Errorf("DOB mismatch: got %v, want %v", got.DOB, a.DOB)
		}
		if got.Language != models.LanguageHindi || got.Sport != models.SportAthletics || got.RoleInSport != "Sprinter" {
			t.Errorf("profile mismatch: %+v", got)
		}
		r := got.Result(models.HeightWeightTestID)
		if r == nil || !r.IsPlaceholder() {
			t.Errorf("expected placeholder t1 result, got %+v", r)
		}
		if got.Measurement != nil {
			t.Errorf("expected no measurement, got %+v", got.Measurement)
		}
	})
}

func TestGetAthleteByPrefix(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		a := newTestAthlete("Rohan", "Verma", models.SportCricket)
		if err := repo.CreateAthlete(a); err != nil {
			t.Fatalf("CreateAthlete failed: %v", err)
		}

		got, err := repo.GetAthlete(a.ID.String()[:8])
		if err != nil {
			t.Fatalf("GetAthlete by prefix failed: %v", err)
		}
		if got.ID != a.ID {
			t.Errorf("ID mismatch: got %v, want %v", got.ID, a.ID)
		}

		_, err = repo.GetAthlete("zzzzzzzz")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAmbiguousPrefix(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		for i := 0; i < 2; i++ {
			if err := repo.CreateAthlete(newTestAthlete("A", "B", models.SportHockey)); err != nil {
				t.Fatalf("CreateAthlete failed: %v", err)
			}
		}
		_, err := repo.GetAthlete("")
		if !errors.Is(err, ErrAmbiguousPrefix) {
			t.Errorf("expected ErrAmbiguousPrefix for empty prefix, got %v", err)
		}
	})
}

func TestSaveResultAppendsHistory(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		a := newTestAthlete("Aisha", "Khan", models.SportBasketball)
		if err := repo.CreateAthlete(a); err != nil {
			t.Fatalf("CreateAthlete failed: %v", err)
		}

		r := &models.TestResult{TestID: "t2", Benchmark: 41, Percentile: 88}
		for i, v := range []float64{46, 47, 48} {
			r.History = append(r.History, models.Observation{Date: day0.AddDate(0, 0, i), Value: v})
			r.LatestScore = v
			if err := repo.SaveResult(a.ID, r); err != nil {
				t.Fatalf("SaveResult failed: %v", err)
			}
		}

		got, err := repo.GetAthlete(a.ID.String())
		if err != nil {
			t.Fatalf("GetAthlete failed: %v", err)
		}
		gr := got.Result("t2")
		if gr == nil {
			t.Fatal("expected t2 result")
		}
		if len(gr.History) != 3 {
			t.Fatalf("Expected 3 observations, got %d", len(gr.History))
		}
		for i, want := range []float64{46, 47, 48} {
			if gr.History[i].Value != want {
				t.Errorf("History[%d] = %v, want %v", i, gr.History[i].Value, want)
			}
			if !gr.History[i].Date.Equal(day0.AddDate(0, 0, i)) {
				t.Errorf("History[%d].Date = %v", i, gr.History[i].Date)
			}
		}
		if gr.LatestScore != 48 || gr.Benchmark != 41 || gr.Percentile != 88 {
			t.Errorf("result mismatch: %+v", gr)
		}

		shrunk := &models.TestResult{TestID: "t2", History: r.History[:1]}
		if err := repo.SaveResult(a.ID, shrunk); !errors.Is(err, ErrHistoryRewritten) {
			t.Errorf("expected ErrHistoryRewritten, got %v", err)
		}
	})
}

func TestSaveMeasurementOnce(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		a := newTestAthlete("Vikram", "Singh", models.SportFootball)
		if err := repo.CreateAthlete(a); err != nil {
			t.Fatalf("CreateAthlete failed: %v", err)
		}

		m := models.NewBodyMeasurement(5.75, models.HeightFt, 150, models.WeightLbs).
			WithVideos("uploads/h.mp4", "uploads/w.mp4")
		if err := repo.SaveMeasurement(a.ID, m); err != nil {
			t.Fatalf("SaveMeasurement failed: %v", err)
		}
		if err := repo.SaveMeasurement(a.ID, m); !errors.Is(err, ErrMeasurementExists) {
			t.Errorf("expected ErrMeasurementExists, got %v", err)
		}

		got, err := repo.GetAthlete(a.ID.String())
		if err != nil {
			t.Fatalf("GetAthlete failed: %v", err)
		}
		gm := got.Measurement
		if gm == nil {
			t.Fatal("expected measurement")
		}
		if gm.Height != 5.75 || gm.HeightUnit != models.HeightFt || gm.Weight != 150 || gm.WeightUnit != models.WeightLbs {
			t.Errorf("measurement mismatch: %+v", gm)
		}
		if gm.HeightVideo != "uploads/h.mp4" || gm.WeightVideo != "uploads/w.mp4" {
			t.Errorf("video mismatch: %+v", gm)
		}
	})
}

func TestListAthletes(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		athletes := []*models.Athlete{
			newTestAthlete("Rohan", "Verma", models.SportCricket),
			newTestAthlete("Priya", "Sharma", models.SportAthletics),
			newTestAthlete("Arjun", "Verma", models.SportCricket),
		}
		for _, a := range athletes {
			if err := repo.CreateAthlete(a); err != nil {
				t.Fatalf("CreateAthlete failed: %v", err)
			}
		}

		all, err := repo.ListAthletes(nil, 0)
		if err != nil {
			t.Fatalf("ListAthletes failed: %v", err)
		}
		if len(all) != 3 {
			t.Fatalf("Expected 3 athletes, got %d", len(all))
		}
		want := []string{"Priya Sharma", "Arjun Verma", "Rohan Verma"}
		for i, name := range want {
			if all[i].FullName() != name {
				t.Errorf("position %d = %s, want %s", i, all[i].FullName(), name)
			}
		}

		cricket := models.SportCricket
		filtered, err := repo.ListAthletes(&cricket, 0)
		if err != nil {
			t.Fatalf("ListAthletes with sport failed: %v", err)
		}
		if len(filtered) != 2 {
			t.Errorf("Expected 2 cricket athletes, got %d", len(filtered))
		}

		limited, err := repo.ListAthletes(nil, 2)
		if err != nil {
			t.Fatalf("ListAthletes with limit failed: %v", err)
		}
		if len(limited) != 2 {
			t.Errorf("Expected 2 athletes with limit, got %d", len(limited))
		}
	})
}

func TestUpdateAthlete(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		a := newTestAthlete("Sneha", "Reddy", models.SportWrestling)
		if err := repo.CreateAthlete(a); err != nil {
			t.Fatalf("CreateAthlete failed: %v", err)
		}

		a.Language = models.LanguageTelugu
		a.RoleInSport = "Freestyle"
		if err := repo.UpdateAthlete(a); err != nil {
			t.Fatalf("UpdateAthlete failed: %v", err)
		}

		got, err := repo.GetAthlete(a.ID.String())
		if err != nil {
			t.Fatalf("GetAthlete failed: %v", err)
		}
		if got.Language != models.LanguageTelugu || got.RoleInSport != "Freestyle" {
			t.Errorf("update not applied: %+v", got)
		}

		missing := models.NewAthlete("No", "One")
		if err := repo.UpdateAthlete(missing); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSaveMeasurementResultWritesBoth(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		a := newTestAthlete("Kavya", "Reddy", models.SportHockey)
		if err := repo.CreateAthlete(a); err != nil {
			t.Fatalf("CreateAthlete failed: %v", err)
		}

		m := models.NewBodyMeasurement(175, models.HeightCm, 68, models.WeightKg)
		r := &models.TestResult{
			TestID:      models.HeightWeightTestID,
			LatestScore: 175068,
			Benchmark:   157561,
			Percentile:  80,
			History:     []models.Observation{{Date: day0, Value: 175068}},
		}
		if err := repo.SaveMeasurementResult(a.ID, m, r); err != nil {
			t.Fatalf("SaveMeasurementResult failed: %v", err)
		}

		got, err := repo.GetAthlete(a.ID.String())
		if err != nil {
			t.Fatalf("GetAthlete failed: %v", err)
		}
		if got.Measurement == nil {
			t.Fatal("expected measurement")
		}
		gr := got.Result(models.HeightWeightTestID)
		if gr == nil || len(gr.History) != 1 || gr.LatestScore != 175068 {
			t.Fatalf("result mismatch: %+v", gr)
		}

		if err := repo.SaveMeasurementResult(a.ID, m, r); !errors.Is(err, ErrMeasurementExists) {
			t.Errorf("expected ErrMeasurementExists, got %v", err)
		}
	})
}

func TestSaveMeasurementResultRollsBack(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		a := newTestAthlete("Arjun", "Nair", models.SportCricket)
		if err := repo.CreateAthlete(a); err != nil {
			t.Fatalf("CreateAthlete failed: %v", err)
		}

		// Two stored observations make a one-observation result invalid.
		stored := &models.TestResult{
			TestID:      models.HeightWeightTestID,
			LatestScore: 170065,
			History: []models.Observation{
				{Date: day0, Value: 170064},
				{Date: day0.AddDate(0, 0, 1), Value: 170065},
			},
		}
		if err := repo.SaveResult(a.ID, stored); err != nil {
			t.Fatalf("SaveResult failed: %v", err)
		}

		m := models.NewBodyMeasurement(175, models.HeightCm, 68, models.WeightKg)
		r := &models.TestResult{
			TestID:      models.HeightWeightTestID,
			LatestScore: 175068,
			History:     []models.Observation{{Date: day0, Value: 175068}},
		}
		if err := repo.SaveMeasurementResult(a.ID, m, r); !errors.Is(err, ErrHistoryRewritten) {
			t.Fatalf("expected ErrHistoryRewritten, got %v", err)
		}

		got, err := repo.GetAthlete(a.ID.String())
		if err != nil {
			t.Fatalf("GetAthlete failed: %v", err)
		}
		if got.Measurement != nil {
			t.Error("measurement was stored although its result failed")
		}
		if n := len(got.Result(models.HeightWeightTestID).History); n != 2 {
			t.Errorf("Expected 2 stored observations, got %d", n)
		}
	})
}
