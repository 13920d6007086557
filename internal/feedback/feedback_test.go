// ABOUTME: Tests for partitioning and the deterministic classifier.
// ABOUTME: Checks thresholds, first-weakness focus, and localization.
package feedback

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/harperreed/athlete/internal/i18n"
	"github.com/harperreed/athlete/internal/models"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func result(testID string, percentile int) models.TestResult {
	return models.TestResult{
		TestID:      testID,
		LatestScore: 10,
		Percentile:  percentile,
		History:     []models.Observation{{Value: 10}},
	}
}

func TestPartitionThresholds(t *testing.T) {
	results := []models.TestResult{
		result("t2", 80),
		result("t3", 79),
		result("t4", 70),
		result("t5", 69),
	}

	strengths, weaknesses := Partition(results)
	assert.Equal(t, []string{"t2"}, strengths)
	assert.Equal(t, []string{"t5"}, weaknesses)
}

func TestPartitionSkipsPlaceholders(t *testing.T) {
	results := []models.TestResult{
		{TestID: models.HeightWeightTestID},
		result("t2", 65),
	}
	strengths, weaknesses := Partition(results)
	assert.Empty(t, strengths)
	assert.Equal(t, []string{"t2"}, weaknesses)
}

func TestClassifierStrengthsAndFocus(t *testing.T) {
	c := NewClassifier(i18n.Default())
	s := Snapshot{
		FirstName: "Rohan",
		Language:  models.LanguageEnglish,
		Results: []models.TestResult{
			result("t1", 85),
			result("t2", 65),
			result("t3", 70),
			result("t4", 90),
			result("t5", 60),
		},
	}

	doc := c.Classify(s)
	assert.Equal(t, []string{"t1", "t4"}, doc.Strengths)
	assert.Equal(t, []string{"t2", "t5"}, doc.Weaknesses)
	assert.Equal(t, SourceClassifier, doc.Source)

	sections := strings.Split(doc.Text, "\n\n")
	require.Len(t, sections, 4)
	assert.Equal(t, "**Great job, Rohan!**", sections[0])
	assert.Contains(t, sections[1], "**Height & Weight, Sit-ups**")
	assert.Contains(t, sections[2], "**Vertical Jump**")
	assert.NotContains(t, doc.Text, "1600m Run/Walk")
	assert.Contains(t, sections[3], "box jumps")
}

func TestClassifierGenericClauses(t *testing.T) {
	c := NewClassifier(nil)
	s := Snapshot{
		FirstName: "Aisha",
		Language:  models.LanguageEnglish,
		Results:   []models.TestResult{result("t2", 75), result("t3", 72)},
	}

	doc := c.Classify(s)
	assert.Empty(t, doc.Strengths)
	assert.Empty(t, doc.Weaknesses)
	assert.Contains(t, doc.Text, "building a strong foundation")
	assert.Contains(t, doc.Text, "**Next Level:**")
}

func TestClassifierIsDeterministic(t *testing.T) {
	c := NewClassifier(nil)
	s := Snapshot{
		FirstName: "Priya",
		Language:  models.LanguageHindi,
		Results:   []models.TestResult{result("t2", 88), result("t3", 61), result("t5", 50)},
	}

	first, err := c.Generate(context.Background(), s)
	require.NoError(t, err)
	second, err := c.Generate(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestClassifierLocalizes(t *testing.T) {
	c := NewClassifier(nil)
	s := Snapshot{
		FirstName: "Priya",
		Language:  models.LanguageHindi,
		Results:   []models.TestResult{result("t3", 61)},
	}

	doc := c.Classify(s)
	assert.True(t, strings.HasPrefix(doc.Text, "**बहुत बढ़िया, Priya!**"), doc.Text)
	assert.Contains(t, doc.Text, "4x10 मीटर शटल दौड़")
}

func TestNewSnapshot(t *testing.T) {
	a := models.NewAthlete("Priya", "Sharma").
		WithDOB(time.Date(2008, 5, 15, 0, 0, 0, 0, time.UTC)).
		WithGender(models.GenderFemale).
		WithSport(models.SportAthletics, "Sprinter").
		WithLanguage("xx")
	a.Results["t3"] = &models.TestResult{TestID: "t3", Percentile: 80}
	a.Results["t1"] = &models.TestResult{TestID: "t1"}

	s := NewSnapshot(a, time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, 15, s.Age)
	assert.Equal(t, models.LanguageEnglish, s.Language)
	require.Len(t, s.Results, 2)
	assert.Equal(t, "t1", s.Results[0].TestID)
}
