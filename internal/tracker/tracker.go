// ABOUTME: Application service tying the ledger, storage, and feedback together.
// ABOUTME: Every mutation is validated, persisted, logged, and counted.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/harperreed/athlete/internal/age"
	"github.com/harperreed/athlete/internal/composite"
	"github.com/harperreed/athlete/internal/feedback"
	"github.com/harperreed/athlete/internal/leaderboard"
	"github.com/harperreed/athlete/internal/ledger"
	"github.com/harperreed/athlete/internal/metrics"
	"github.com/harperreed/athlete/internal/models"
	"github.com/harperreed/athlete/internal/storage"
	"github.com/harperreed/athlete/internal/units"
)

var (
	// ErrInvalidValue is returned for negative or non-finite scores.
	ErrInvalidValue = errors.New("invalid value")
	// ErrCompositeTest is returned when a composite test is recorded directly.
	ErrCompositeTest = errors.New("composite test must be submitted as a measurement")
	// ErrInvalidMeasurement is returned for unknown units or non-positive heights.
	ErrInvalidMeasurement = errors.New("invalid measurement")
)

// Option configures a Service.
type Option func(*Service)

// WithLedger replaces the default ledger.
func WithLedger(l *ledger.Ledger) Option {
	return func(s *Service) { s.ledger = l }
}

// WithGenerator replaces the default classifier.
func WithGenerator(g feedback.Generator) Option {
	return func(s *Service) { s.generator = g }
}

// WithMetrics sets the instruments updated by the service.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the logger for mutations.
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) { s.log = l }
}

// WithClock overrides time.Now for sign-up and feedback dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// Service runs athlete operations against a Repository. Mutations are
// serialized so a load, append and save never interleave.
type Service struct {
	repo      storage.Repository
	ledger    *ledger.Ledger
	generator feedback.Generator
	metrics   *metrics.Manager
	log       logrus.FieldLogger
	now       func() time.Time

	mu sync.Mutex
}

// New creates a Service over repo.
func New(repo storage.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.ledger == nil {
		s.ledger = ledger.New()
	}
	if s.generator == nil {
		s.generator = feedback.NewClassifier(nil)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewManager(metrics.Namespace, metrics.Subsystem, prometheus.NewRegistry())
	}
	if s.log == nil {
		s.log = logrus.StandardLogger()
	}
	return s
}

// Now returns the service clock.
func (s *Service) Now() time.Time { return s.now() }

// SignUp validates the athlete's age at asOf, creates the height/weight
// placeholder and stores the athlete. It returns the age in years.
func (s *Service) SignUp(ctx context.Context, a *models.Athlete, asOf time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	years, err := age.Validate(a.DOB, asOf)
	if err != nil {
		s.metrics.CounterRejected.WithLabelValues("invalid_dob").Inc()
		return years, err
	}
	if !a.Language.IsValid() {
		a.Language = models.DefaultLanguage
	}
	s.ledger.EnsurePlaceholder(a, models.HeightWeightTestID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.repo.CreateAthlete(a); err != nil {
		return years, fmt.Errorf("create athlete: %w", err)
	}

	s.metrics.CounterSignUps.Inc()
	s.log.WithFields(logrus.Fields{
		"athlete": a.ID.String(),
		"sport":   a.Sport,
		"age":     years,
	}).Info("athlete signed up")
	return years, nil
}

// Athlete resolves an athlete by ID or unique ID prefix.
func (s *Service) Athlete(ctx context.Context, ref string) (*models.Athlete, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.GetAthlete(ref)
}

// Athletes lists stored athletes, optionally filtered by sport.
func (s *Service) Athletes(ctx context.Context, sport *models.Sport, limit int) ([]*models.Athlete, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	athletes, err := s.repo.ListAthletes(sport, limit)
	if err != nil {
		return nil, err
	}
	if sport == nil && limit <= 0 {
		s.metrics.GaugeAthletes.Set(float64(len(athletes)))
	}
	return athletes, nil
}

// RecordTest appends value to the athlete's history for a catalog test,
// given by ID or name, and persists the updated result.
func (s *Service) RecordTest(ctx context.Context, athleteRef, testRef string, value float64, date time.Time) (*models.Athlete, *models.TestResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	def, err := models.LookupTest(testRef)
	if err != nil {
		s.metrics.CounterRejected.WithLabelValues("unknown_test").Inc()
		return nil, nil, err
	}
	if def.Composite {
		s.metrics.CounterRejected.WithLabelValues("composite_test").Inc()
		return nil, nil, fmt.Errorf("%w: %s", ErrCompositeTest, def.ID)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		s.metrics.CounterRejected.WithLabelValues("invalid_value").Inc()
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidValue, value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.repo.GetAthlete(athleteRef)
	if err != nil {
		return nil, nil, err
	}
	r := s.ledger.Record(a, def.ID, value, date)
	if err := s.repo.SaveResult(a.ID, r); err != nil {
		return nil, nil, fmt.Errorf("save result: %w", err)
	}

	s.metrics.CounterObservations.WithLabelValues(def.ID).Inc()
	s.log.WithFields(logrus.Fields{
		"athlete": a.ID.String(),
		"test":    def.ID,
		"value":   value,
		"count":   len(r.History),
	}).Info("test recorded")
	return a, r, nil
}

// SubmitMeasurement normalizes a height/weight submission, records its
// composite score on the height/weight test and stores the measurement.
// A second submission for the same athlete fails with
// storage.ErrMeasurementExists.
func (s *Service) SubmitMeasurement(ctx context.Context, athleteRef string, m *models.BodyMeasurement, date time.Time) (*models.Athlete, composite.HeightWeight, error) {
	if err := ctx.Err(); err != nil {
		return nil, composite.HeightWeight{}, err
	}
	if m == nil || !m.HeightUnit.IsValid() || !m.WeightUnit.IsValid() || !(m.Height > 0) || !(m.Weight >= 0) {
		s.metrics.CounterRejected.WithLabelValues("invalid_measurement").Inc()
		return nil, composite.HeightWeight{}, ErrInvalidMeasurement
	}

	cm := units.HeightToCm(m.Height, m.HeightUnit)
	kg := units.WeightToKg(m.Weight, m.WeightUnit)
	score, err := composite.Encode(cm, kg)
	if err != nil {
		s.metrics.CounterRejected.WithLabelValues("out_of_range").Inc()
		return nil, composite.HeightWeight{}, err
	}
	hw, err := composite.Decode(score)
	if err != nil {
		return nil, composite.HeightWeight{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.repo.GetAthlete(athleteRef)
	if err != nil {
		return nil, composite.HeightWeight{}, err
	}
	if a.Measurement != nil {
		return a, composite.HeightWeight{}, storage.ErrMeasurementExists
	}
	if m.SubmittedAt.IsZero() {
		m.SubmittedAt = date
	}
	a.Measurement = m
	r := s.ledger.Record(a, models.HeightWeightTestID, score, date)
	if err := s.repo.SaveMeasurementResult(a.ID, m, r); err != nil {
		return nil, composite.HeightWeight{}, err
	}

	s.metrics.CounterObservations.WithLabelValues(models.HeightWeightTestID).Inc()
	s.log.WithFields(logrus.Fields{
		"athlete":   a.ID.String(),
		"height_cm": hw.HeightCm,
		"weight_kg": hw.WeightKg,
	}).Info("measurement submitted")
	return a, hw, nil
}

// Latest returns the athlete's current result for a test.
func (s *Service) Latest(ctx context.Context, athleteRef, testRef string) (*models.Athlete, *models.TestResult, error) {
	a, def, err := s.athleteAndTest(ctx, athleteRef, testRef)
	if err != nil {
		return nil, nil, err
	}
	r, err := s.ledger.Latest(a, def.ID)
	if err != nil {
		return a, nil, err
	}
	return a, r, nil
}

// History returns the athlete's observations for a test in recorded order.
func (s *Service) History(ctx context.Context, athleteRef, testRef string) (*models.Athlete, iter.Seq[models.Observation], error) {
	a, def, err := s.athleteAndTest(ctx, athleteRef, testRef)
	if err != nil {
		return nil, nil, err
	}
	return a, s.ledger.History(a, def.ID), nil
}

func (s *Service) athleteAndTest(ctx context.Context, athleteRef, testRef string) (*models.Athlete, models.TestDefinition, error) {
	if err := ctx.Err(); err != nil {
		return nil, models.TestDefinition{}, err
	}
	def, err := models.LookupTest(testRef)
	if err != nil {
		return nil, models.TestDefinition{}, err
	}
	a, err := s.repo.GetAthlete(athleteRef)
	if err != nil {
		return nil, models.TestDefinition{}, err
	}
	return a, def, nil
}

// Feedback generates coaching feedback for the athlete. A valid lang
// overrides the athlete's preferred language.
func (s *Service) Feedback(ctx context.Context, athleteRef string, lang models.Language) (feedback.Document, error) {
	a, err := s.Athlete(ctx, athleteRef)
	if err != nil {
		return feedback.Document{}, err
	}
	snap := feedback.NewSnapshot(a, s.now())
	if lang.IsValid() {
		snap.Language = lang
	}

	start := time.Now()
	doc, err := s.generator.Generate(ctx, snap)
	s.metrics.HistFeedbackDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return feedback.Document{}, fmt.Errorf("generate feedback: %w", err)
	}
	s.metrics.CounterFeedback.WithLabelValues(doc.Source).Inc()
	s.log.WithFields(logrus.Fields{
		"athlete":  a.ID.String(),
		"source":   doc.Source,
		"language": snap.Language,
	}).Debug("feedback generated")
	return doc, nil
}

// Leaderboard ranks athletes by average percentile, optionally within a sport.
func (s *Service) Leaderboard(ctx context.Context, sport *models.Sport, limit int) ([]leaderboard.Entry, error) {
	athletes, err := s.Athletes(ctx, sport, 0)
	if err != nil {
		return nil, err
	}
	return leaderboard.Rank(athletes, limit), nil
}

// Distribution counts stored athletes per sport.
func (s *Service) Distribution(ctx context.Context) ([]leaderboard.SportCount, error) {
	athletes, err := s.Athletes(ctx, nil, 0)
	if err != nil {
		return nil, err
	}
	return leaderboard.BySport(athletes), nil
}
