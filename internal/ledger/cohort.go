// ABOUTME: Cohort strategies that place a first observation against peers.
// ABOUTME: MockCohort reproduces the placeholder 90% benchmark and random percentile.
package ledger

import (
	"math"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

const (
	benchmarkFactor    = 0.9
	minMockPercentile  = 70
	mockPercentileSpan = 30
)

// CohortStrategy returns the benchmark and percentile for a test's first value.
type CohortStrategy interface {
	Assign(testID string, value float64) (benchmark float64, percentile int)
}

// CohortFunc adapts a function to CohortStrategy.
type CohortFunc func(testID string, value float64) (float64, int)

// Assign calls f.
func (f CohortFunc) Assign(testID string, value float64) (float64, int) {
	return f(testID, value)
}

// MockCohort stands in for real peer statistics: the benchmark is 90% of
// the value, floored, and the percentile is uniform in [70, 99].
type MockCohort struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// seedCounter keeps cohorts created in the same clock tick apart.
var seedCounter atomic.Int64

// NewMockCohort creates a MockCohort seeded from the clock, so separate
// processes draw different percentiles. Use NewSeededMockCohort for
// reproducible draws.
func NewMockCohort() *MockCohort {
	return NewSeededMockCohort(time.Now().UnixNano() + seedCounter.Add(1))
}

// NewSeededMockCohort creates a MockCohort with the given seed.
func NewSeededMockCohort(seed int64) *MockCohort {
	return &MockCohort{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // simulated cohort, not security sensitive
}

// Assign implements CohortStrategy.
func (m *MockCohort) Assign(_ string, value float64) (float64, int) {
	m.mu.Lock()
	p := minMockPercentile + m.rng.Intn(mockPercentileSpan)
	m.mu.Unlock()
	return math.Floor(value * benchmarkFactor), p
}
