// ABOUTME: Ranks athletes by average percentile and counts them per sport.
// ABOUTME: Backs the officials' dashboard views.
package leaderboard

import (
	"cmp"
	"math"
	"slices"

	"github.com/google/uuid"

	"github.com/harperreed/athlete/internal/models"
)

// DefaultLimit is how many athletes the dashboard shows.
const DefaultLimit = 5

// Entry is one ranked athlete.
type Entry struct {
	Rank              int          `json:"rank"`
	AthleteID         uuid.UUID    `json:"athlete_id"`
	Name              string       `json:"name"`
	Sport             models.Sport `json:"sport"`
	AveragePercentile int          `json:"average_percentile"`
	Tests             int          `json:"tests"`

	average float64
}

// SportCount is the number of athletes registered for a sport.
type SportCount struct {
	Sport models.Sport `json:"sport"`
	Count int          `json:"count"`
}

// AveragePercentile averages the percentiles of observed results.
// ok is false when no result has been observed.
func AveragePercentile(results []models.TestResult) (avg float64, n int, ok bool) {
	sum := 0
	for i := range results {
		if results[i].IsPlaceholder() {
			continue
		}
		sum += results[i].Percentile
		n++
	}
	if n == 0 {
		return 0, 0, false
	}
	return float64(sum) / float64(n), n, true
}

// Rank orders athletes by average percentile, highest first, and returns at
// most limit entries. Athletes without observed results are left out.
// A limit of zero or less returns every ranked athlete.
func Rank(athletes []*models.Athlete, limit int) []Entry {
	entries := make([]Entry, 0, len(athletes))
	for _, a := range athletes {
		avg, n, ok := AveragePercentile(a.ResultsInCatalogOrder())
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			AthleteID:         a.ID,
			Name:              a.FullName(),
			Sport:             a.Sport,
			AveragePercentile: int(math.Round(avg)),
			Tests:             n,
			average:           avg,
		})
	}

	slices.SortStableFunc(entries, func(x, y Entry) int {
		if c := cmp.Compare(y.average, x.average); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Name, y.Name); c != 0 {
			return c
		}
		return cmp.Compare(x.AthleteID.String(), y.AthleteID.String())
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// FilterBySport returns the athletes registered for sport.
func FilterBySport(athletes []*models.Athlete, sport models.Sport) []*models.Athlete {
	var out []*models.Athlete
	for _, a := range athletes {
		if a.Sport == sport {
			out = append(out, a)
		}
	}
	return out
}

// BySport counts athletes for every known sport, including empty ones.
func BySport(athletes []*models.Athlete) []SportCount {
	counts := make(map[models.Sport]int, len(models.AllSports))
	for _, a := range athletes {
		counts[a.Sport]++
	}
	out := make([]SportCount, len(models.AllSports))
	for i, s := range models.AllSports {
		out[i] = SportCount{Sport: s, Count: counts[s]}
	}
	return out
}
