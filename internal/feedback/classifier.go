// ABOUTME: Deterministic template-based feedback composer.
// ABOUTME: Names all strengths and the first weakness with its drill.
package feedback

import (
	"context"
	"strings"

	"github.com/harperreed/athlete/internal/i18n"
	"github.com/harperreed/athlete/internal/models"
)

const sectionSeparator = "\n\n"

// Classifier composes feedback from the strengths/weaknesses partition.
// The same snapshot always yields the same Document.
type Classifier struct {
	resolver *i18n.Resolver
}

// NewClassifier creates a Classifier. A nil resolver uses the embedded tables.
func NewClassifier(r *i18n.Resolver) *Classifier {
	if r == nil {
		r = i18n.Default()
	}
	return &Classifier{resolver: r}
}

// Generate implements Generator. It never fails.
func (c *Classifier) Generate(_ context.Context, s Snapshot) (Document, error) {
	return c.Classify(s), nil
}

// Classify partitions the snapshot and composes the feedback text.
func (c *Classifier) Classify(s Snapshot) Document {
	strengths, weaknesses := Partition(s.Results)
	lang := s.Language

	sections := []string{
		c.resolver.Resolve("feedback_greeting", lang, i18n.Params{"name": s.FirstName}),
	}

	if len(strengths) > 0 {
		names := make([]string, len(strengths))
		for i, id := range strengths {
			names[i] = c.testName(id, lang)
		}
		sep := c.resolver.Resolve("list_separator", lang, nil)
		sections = append(sections, c.resolver.Resolve("feedback_strengths", lang,
			i18n.Params{"tests": strings.Join(names, sep)}))
	} else {
		sections = append(sections, c.resolver.Resolve("feedback_foundation", lang, nil))
	}

	if len(weaknesses) > 0 {
		focus := weaknesses[0]
		name := c.testName(focus, lang)
		sections = append(sections,
			c.resolver.Resolve("feedback_focus", lang, i18n.Params{"test": name}),
			c.resolver.Resolve("feedback_tip", lang, i18n.Params{
				"test":  name,
				"drill": c.resolver.Resolve(drillKey(focus), lang, nil),
			}),
		)
	} else {
		sections = append(sections, c.resolver.Resolve("feedback_next_level", lang, nil))
	}

	return Document{
		Text:       strings.Join(sections, sectionSeparator),
		Strengths:  strengths,
		Weaknesses: weaknesses,
		Source:     SourceClassifier,
	}
}

func (c *Classifier) testName(testID string, lang models.Language) string {
	d, err := models.LookupTest(testID)
	if err != nil {
		return testID
	}
	return c.resolver.Resolve(d.NameKey(), lang, nil)
}

func drillKey(testID string) string {
	d, err := models.LookupTest(testID)
	if err != nil {
		return "drill_" + testID
	}
	return d.DrillKey
}
