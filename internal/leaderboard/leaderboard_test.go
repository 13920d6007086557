// ABOUTME: Tests for athlete ranking and sport distribution.
// ABOUTME: Uses the dashboard's sample athletes.
package leaderboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/athlete/internal/models"
)

func athlete(first string, sport models.Sport, percentiles ...int) *models.Athlete {
	a := models.NewAthlete(first, "Test").WithSport(sport, "")
	for i, p := range percentiles {
		id := models.Catalog[i].ID
		a.Results[id] = &models.TestResult{
			TestID:      id,
			LatestScore: 1,
			Percentile:  p,
			History:     []models.Observation{{Value: 1}},
		}
	}
	return a
}

func TestRank(t *testing.T) {
	priya := athlete("Priya", models.SportAthletics, 80, 75, 80, 85, 78)  // 79.6
	rohan := athlete("Rohan", models.SportCricket, 85, 65, 70, 90, 82)    // 78.4
	aisha := athlete("Aisha", models.SportBasketball, 82, 88, 72, 80, 68) // 78.0
	empty := models.NewAthlete("New", "Athlete")
	empty.Results[models.HeightWeightTestID] = &models.TestResult{TestID: models.HeightWeightTestID}

	entries := Rank([]*models.Athlete{aisha, empty, rohan, priya}, DefaultLimit)
	require.Len(t, entries, 3)
	assert.Equal(t, "Priya Test", entries[0].Name)
	assert.Equal(t, 80, entries[0].AveragePercentile)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, "Rohan Test", entries[1].Name)
	assert.Equal(t, 78, entries[1].AveragePercentile)
	assert.Equal(t, "Aisha Test", entries[2].Name)
	assert.Equal(t, 3, entries[2].Rank)
	assert.Equal(t, 5, entries[2].Tests)
}

func TestRankLimitAndTies(t *testing.T) {
	var athletes []*models.Athlete
	for _, name := range []string{"Zara", "Arjun", "Meera", "Dev", "Kabir", "Isha"} {
		athletes = append(athletes, athlete(name, models.SportHockey, 75))
	}

	entries := Rank(athletes, 5)
	require.Len(t, entries, 5)
	assert.Equal(t, "Arjun Test", entries[0].Name)
	assert.Equal(t, "Meera Test", entries[4].Name)

	assert.Len(t, Rank(athletes, 0), 6)
}

func TestPlaceholderExcludedFromAverage(t *testing.T) {
	a := athlete("Sneha", models.SportFootball, 90)
	a.Results["t2"] = &models.TestResult{TestID: "t2"}

	avg, n, ok := AveragePercentile(a.ResultsInCatalogOrder())
	require.True(t, ok)
	assert.Equal(t, 90.0, avg)
	assert.Equal(t, 1, n)
}

func TestBySportAndFilter(t *testing.T) {
	athletes := []*models.Athlete{
		athlete("A", models.SportCricket, 80),
		athlete("B", models.SportCricket, 70),
		athlete("C", models.SportHockey, 90),
	}

	counts := BySport(athletes)
	require.Len(t, counts, len(models.AllSports))
	got := map[models.Sport]int{}
	for _, c := range counts {
		got[c.Sport] = c.Count
	}
	assert.Equal(t, 2, got[models.SportCricket])
	assert.Equal(t, 1, got[models.SportHockey])
	assert.Equal(t, 0, got[models.SportWrestling])

	assert.Len(t, FilterBySport(athletes, models.SportCricket), 2)
	assert.Empty(t, FilterBySport(athletes, models.SportAthletics))
}
