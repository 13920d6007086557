// ABOUTME: TestResult and Observation models for the performance ledger.
// ABOUTME: A TestResult is the running record of one athlete on one test.
package models

import "time"

// Observation is one dated value in a test's history.
type Observation struct {
	Date  time.Time `json:"date" yaml:"date"`
	Value float64   `json:"value" yaml:"value"`
}

// TestResult is an athlete's record for one test.
// LatestScore equals the last History value whenever History is non-empty.
type TestResult struct {
	TestID      string        `json:"test_id" yaml:"test_id"`
	LatestScore float64       `json:"latest_score" yaml:"latest_score"`
	Benchmark   float64       `json:"benchmark" yaml:"benchmark"`
	Percentile  int           `json:"percentile" yaml:"percentile"`
	History     []Observation `json:"history" yaml:"history"`
}

// IsPlaceholder reports whether the result was created without any observation.
func (r *TestResult) IsPlaceholder() bool {
	return len(r.History) == 0 && r.LatestScore == 0
}

// TopPercent is the "top N%" figure shown on result cards.
func (r *TestResult) TopPercent() int {
	return 100 - r.Percentile
}

// Clone returns a deep copy so callers cannot alias the ledger's history.
func (r *TestResult) Clone() TestResult {
	c := *r
	if r.History != nil {
		c.History = make([]Observation, len(r.History))
		copy(c.History, r.History)
	}
	return c
}
