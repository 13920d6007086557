// ABOUTME: Feedback snapshot, document, and the pluggable Generator contract.
// ABOUTME: Partition splits results into strengths and weaknesses by percentile.
package feedback

import (
	"context"
	"time"

	"github.com/harperreed/athlete/internal/age"
	"github.com/harperreed/athlete/internal/models"
)

// Percentile thresholds. Values in [WeaknessBelow, StrengthAtLeast) are neutral.
const (
	StrengthAtLeast = 80
	WeaknessBelow   = 70
)

// Document sources.
const (
	SourceClassifier = "classifier"
	SourceRemote     = "remote"
)

// Snapshot is everything a generator may read about an athlete.
// Results are in catalog order.
type Snapshot struct {
	FirstName string
	Age       int
	Gender    models.Gender
	Sport     models.Sport
	Language  models.Language
	Results   []models.TestResult
}

// NewSnapshot copies the athlete's current results for feedback generation.
func NewSnapshot(a *models.Athlete, asOf time.Time) Snapshot {
	s := Snapshot{
		FirstName: a.FirstName,
		Gender:    a.Gender,
		Sport:     a.Sport,
		Language:  a.Language,
		Results:   a.ResultsInCatalogOrder(),
	}
	if !a.DOB.IsZero() {
		s.Age = age.InYears(a.DOB, asOf)
	}
	if !s.Language.IsValid() {
		s.Language = models.DefaultLanguage
	}
	return s
}

// Document is the generated feedback. Strengths and Weaknesses hold test IDs
// and may be empty when the text came from a remote service.
type Document struct {
	Text       string   `json:"text"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Source     string   `json:"source"`
}

// Generator produces feedback for a snapshot.
type Generator interface {
	Generate(ctx context.Context, s Snapshot) (Document, error)
}

// Partition classifies results in the given order. Placeholder results
// (never observed) are skipped.
func Partition(results []models.TestResult) (strengths, weaknesses []string) {
	strengths, weaknesses = []string{}, []string{}
	for i := range results {
		r := &results[i]
		if r.IsPlaceholder() {
			continue
		}
		switch {
		case r.Percentile >= StrengthAtLeast:
			strengths = append(strengths, r.TestID)
		case r.Percentile < WeaknessBelow:
			weaknesses = append(weaknesses, r.TestID)
		}
	}
	return strengths, weaknesses
}
