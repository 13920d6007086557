// ABOUTME: Prometheus instruments for athlete operations.
// ABOUTME: Counts sign-ups, observations, feedback documents, and rejected inputs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	Namespace = "athlete"
	Subsystem = "tracker"
)

// Manager holds every instrument the tracker updates.
type Manager struct {
	// counters
	CounterSignUps      prometheus.Counter
	CounterObservations *prometheus.CounterVec
	CounterFeedback     *prometheus.CounterVec
	CounterRejected     *prometheus.CounterVec

	// gauges
	GaugeAthletes prometheus.Gauge

	// histograms
	HistFeedbackDuration prometheus.Histogram
}

// NewTestManagerAndRegistry returns a Manager registered on a fresh registry.
func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager(Namespace, "test", reg), reg
}

// NewManager registers all instruments on reg.
func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	return &Manager{
		CounterSignUps: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "signups_total",
			Help:      "The total number of athletes signed up",
		}),
		CounterObservations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "observations_total",
			Help:      "The total number of recorded test observations",
		}, []string{"test_id"}),
		CounterFeedback: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "feedback_total",
			Help:      "The total number of feedback documents by source",
		}, []string{"source"}),
		CounterRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "rejected_total",
			Help:      "The total number of rejected inputs by reason",
		}, []string{"reason"}),
		GaugeAthletes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "athletes",
			Help:      "Athletes seen by the last listing",
		}),
		HistFeedbackDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "feedback_duration_seconds",
			Help:      "Time spent generating feedback",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30},
		}),
	}
}

// NewRegistry returns a registry carrying build, runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Handler exposes reg in the Prometheus text format.
func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
