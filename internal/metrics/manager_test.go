// ABOUTME: Tests for the Prometheus manager.
// ABOUTME: Verifies registration, label handling, and the scrape handler.
package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerCounters(t *testing.T) {
	m, _ := NewTestManagerAndRegistry()

	m.CounterSignUps.Inc()
	m.CounterObservations.WithLabelValues("t2").Inc()
	m.CounterObservations.WithLabelValues("t2").Inc()
	m.CounterObservations.WithLabelValues("t5").Inc()
	m.CounterFeedback.WithLabelValues("classifier").Inc()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterSignUps))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CounterObservations.WithLabelValues("t2")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterObservations.WithLabelValues("t5")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.CounterObservations))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.CounterFeedback.WithLabelValues("remote")))
}

func TestManagersDoNotShareRegistries(t *testing.T) {
	m1, _ := NewTestManagerAndRegistry()
	m2, _ := NewTestManagerAndRegistry()

	m1.CounterSignUps.Inc()
	assert.Equal(t, float64(0), testutil.ToFloat64(m2.CounterSignUps))
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := NewRegistry()
	m := NewManager(Namespace, Subsystem, reg)
	m.CounterRejected.WithLabelValues("invalid_dob").Inc()

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `athlete_tracker_rejected_total{reason="invalid_dob"} 1`)
	assert.Contains(t, string(body), "go_goroutines")
}
