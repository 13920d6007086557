// ABOUTME: Append-only per-athlete, per-test performance history.
// ABOUTME: Assigns cohort benchmark and percentile on the first observation.
package ledger

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/harperreed/athlete/internal/models"
)

// ErrNotFound is returned when an athlete has no result for a test.
var ErrNotFound = errors.New("result not found")

// Option configures a Ledger.
type Option func(*Ledger)

// WithCohort replaces the default cohort strategy.
func WithCohort(c CohortStrategy) Option {
	return func(l *Ledger) {
		if c != nil {
			l.cohort = c
		}
	}
}

// Ledger appends observations to an athlete's results. Writes to the same
// athlete and test must be serialized by the caller. Observation dates are
// expected to be non-decreasing per athlete and test; they are not checked.
type Ledger struct {
	cohort CohortStrategy
}

// New creates a Ledger using MockCohort unless overridden.
func New(opts ...Option) *Ledger {
	l := &Ledger{cohort: NewMockCohort()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record appends {date, value} to the athlete's result for testID and makes
// value the latest score. Benchmark and percentile are assigned only while
// the result has no history.
func (l *Ledger) Record(a *models.Athlete, testID string, value float64, date time.Time) *models.TestResult {
	if a.Results == nil {
		a.Results = make(map[string]*models.TestResult)
	}
	r, ok := a.Results[testID]
	if !ok {
		r = &models.TestResult{TestID: testID}
		a.Results[testID] = r
	}
	if len(r.History) == 0 {
		r.Benchmark, r.Percentile = l.cohort.Assign(testID, value)
	}
	r.History = append(r.History, models.Observation{Date: date, Value: value})
	r.LatestScore = value
	return r
}

// EnsurePlaceholder creates an empty result for testID if none exists.
// An existing result is returned untouched.
func (l *Ledger) EnsurePlaceholder(a *models.Athlete, testID string) *models.TestResult {
	if a.Results == nil {
		a.Results = make(map[string]*models.TestResult)
	}
	if r, ok := a.Results[testID]; ok {
		return r
	}
	r := &models.TestResult{TestID: testID}
	a.Results[testID] = r
	return r
}

// Latest returns the athlete's result for testID.
func (l *Ledger) Latest(a *models.Athlete, testID string) (*models.TestResult, error) {
	r := a.Result(testID)
	if r == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, testID)
	}
	return r, nil
}

// History yields the observations for testID in insertion order. The
// sequence reads a snapshot taken at each iteration start, so it can be
// ranged over repeatedly and never exposes the backing slice.
func (l *Ledger) History(a *models.Athlete, testID string) iter.Seq[models.Observation] {
	return func(yield func(models.Observation) bool) {
		r := a.Result(testID)
		if r == nil {
			return
		}
		snap := r.Clone()
		for _, o := range snap.History {
			if !yield(o) {
				return
			}
		}
	}
}
