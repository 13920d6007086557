// ABOUTME: Generates demo athletes with plausible test histories.
// ABOUTME: Uses a seeded faker so the same seed always produces the same roster.
package seed

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/harperreed/athlete/internal/models"
	"github.com/harperreed/athlete/internal/tracker"
)

// scoreRange bounds generated scores for a test.
type scoreRange struct {
	min, max float64
	whole    bool
}

var ranges = map[string]scoreRange{
	"t2": {min: 25, max: 70},
	"t3": {min: 9, max: 13},
	"t4": {min: 15, max: 60, whole: true},
	"t5": {min: 5, max: 12},
}

// Options controls generation. Seed 0 picks a random seed.
type Options struct {
	Count int
	Seed  int64
	AsOf  time.Time
}

// Athletes signs up opts.Count fake athletes through svc, submits a
// measurement for each and records one to three observations per test.
// Some athletes skip tests so the roster has gaps.
func Athletes(ctx context.Context, svc *tracker.Service, opts Options) ([]*models.Athlete, error) {
	if opts.AsOf.IsZero() {
		opts.AsOf = svc.Now()
	}
	faker := gofakeit.New(opts.Seed)

	out := make([]*models.Athlete, 0, opts.Count)
	for i := 0; i < opts.Count; i++ {
		a := fakeAthlete(faker, opts.AsOf)
		if _, err := svc.SignUp(ctx, a, opts.AsOf); err != nil {
			return out, fmt.Errorf("sign up %s: %w", a.FullName(), err)
		}

		m := models.NewBodyMeasurement(
			round1(faker.Float64Range(150, 195)), models.HeightCm,
			round1(faker.Float64Range(45, 95)), models.WeightKg,
		)
		m.SubmittedAt = opts.AsOf
		if _, _, err := svc.SubmitMeasurement(ctx, a.ID.String(), m, opts.AsOf); err != nil {
			return out, fmt.Errorf("measure %s: %w", a.FullName(), err)
		}

		for _, d := range models.Catalog {
			r, ok := ranges[d.ID]
			if !ok || faker.Number(1, 5) == 1 {
				continue
			}
			n := faker.Number(1, 3)
			for k := 0; k < n; k++ {
				date := opts.AsOf.AddDate(0, 0, 7*(k-n+1))
				if _, _, err := svc.RecordTest(ctx, a.ID.String(), d.ID, fakeScore(faker, r), date); err != nil {
					return out, fmt.Errorf("record %s for %s: %w", d.ID, a.FullName(), err)
				}
			}
		}

		stored, err := svc.Athlete(ctx, a.ID.String())
		if err != nil {
			return out, err
		}
		out = append(out, stored)
	}
	return out, nil
}

func fakeAthlete(faker *gofakeit.Faker, asOf time.Time) *models.Athlete {
	dob := faker.DateRange(asOf.AddDate(-25, 0, 0), asOf.AddDate(-12, 0, 0))
	sport := models.AllSports[faker.Number(0, len(models.AllSports)-1)]
	gender := models.AllGenders[faker.Number(0, len(models.AllGenders)-1)]
	lang := models.AllLanguages[faker.Number(0, len(models.AllLanguages)-1)]

	return models.NewAthlete(faker.FirstName(), faker.LastName()).
		WithDOB(time.Date(dob.Year(), dob.Month(), dob.Day(), 0, 0, 0, 0, time.UTC)).
		WithGender(gender).
		WithSport(sport, faker.JobTitle()).
		WithContact(faker.Email()).
		WithLanguage(lang)
}

func fakeScore(faker *gofakeit.Faker, r scoreRange) float64 {
	if r.whole {
		return float64(faker.Number(int(r.min), int(r.max)))
	}
	return round1(faker.Float64Range(r.min, r.max))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
