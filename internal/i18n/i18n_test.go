// ABOUTME: Tests for the localized content resolver.
// ABOUTME: Covers fallback order, placeholder substitution, and table loading.
package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/athlete/internal/models"
)

func testResolver(t *testing.T) *Resolver {
	t.Helper()
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: en\nmessages:\n  greet: \"Hello {name}\"\n  only_en: \"English only\"\n")},
		"locales/hi.yaml": {Data: []byte("locale: hi\nmessages:\n  greet: \"नमस्ते {name}\"\n")},
	}
	r, err := LoadFromFS(fsys)
	require.NoError(t, err)
	return r
}

func TestResolveFallbackOrder(t *testing.T) {
	r := testResolver(t)

	assert.Equal(t, "नमस्ते Asha", r.Resolve("greet", models.LanguageHindi, Params{"name": "Asha"}))
	assert.Equal(t, "English only", r.Resolve("only_en", models.LanguageHindi, nil))
	assert.Equal(t, "missing_key", r.Resolve("missing_key", models.LanguageHindi, nil))
	assert.Equal(t, "Hello {name}", r.Resolve("greet", models.LanguageTamil, nil))
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name   string
		tmpl   string
		params Params
		want   string
	}{
		{"number", "Top {n}%", Params{"n": 5}, "Top 5%"},
		{"float", "{v} cm", Params{"v": 45.5}, "45.5 cm"},
		{"unknown kept", "Hi {name}, {other}", Params{"name": "Ravi"}, "Hi Ravi, {other}"},
		{"repeated", "{a}{a}", Params{"a": "x"}, "xx"},
		{"no rescan", "{a}", Params{"a": "{b}", "b": "nope"}, "{b}"},
		{"unclosed", "score {n", Params{"n": 1}, "score {n"},
		{"nested open", "{{n}}", Params{"n": 3}, "{3}"},
		{"no params", "{n}", nil, "{n}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Substitute(tt.tmpl, tt.params))
		})
	}
}

func TestLoadFromFSErrors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{"empty", fstest.MapFS{}},
		{"no english", fstest.MapFS{
			"locales/hi.yaml": {Data: []byte("locale: hi\nmessages: {}\n")},
		}},
		{"name mismatch", fstest.MapFS{
			"locales/en.yaml": {Data: []byte("locale: hi\nmessages: {}\n")},
		}},
		{"unsupported", fstest.MapFS{
			"locales/en.yaml": {Data: []byte("locale: en\nmessages: {}\n")},
			"locales/fr.yaml": {Data: []byte("locale: fr\nmessages: {}\n")},
		}},
		{"bad yaml", fstest.MapFS{
			"locales/en.yaml": {Data: []byte("locale: [en\n")},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFS(tt.fsys)
			assert.Error(t, err)
		})
	}
}

func TestEmbeddedTables(t *testing.T) {
	r := Default()
	assert.Equal(t, models.AllLanguages, r.Languages())

	for _, d := range models.Catalog {
		for _, key := range []string{d.NameKey(), d.DescriptionKey, d.DrillKey,
			d.Instructions.Perform, d.Instructions.Record, d.Instructions.Assess} {
			assert.True(t, r.Has(key, models.LanguageEnglish), "english table missing %s", key)
		}
	}

	assert.Equal(t, "Top 15%", r.Resolve("card_top_percentile", models.LanguageEnglish, Params{"percentile": 15}))
	assert.Equal(t, "शीर्ष 15%", r.Resolve("card_top_percentile", models.LanguageHindi, Params{"percentile": 15}))
	// Tamil has no drills; English fills the gap.
	assert.Equal(t,
		r.Resolve("drill_sit_ups", models.LanguageEnglish, nil),
		r.Resolve("drill_sit_ups", models.LanguageTamil, nil))
}
