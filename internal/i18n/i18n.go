// ABOUTME: Resolves localization keys against embedded per-language YAML tables.
// ABOUTME: Falls back to English, then to the key itself; substitutes {name} params.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/athlete/internal/models"
)

//go:embed locales/*.yaml
var embeddedLocales embed.FS

// Params are the named values substituted into a template.
type Params = map[string]any

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Resolver looks up translated templates. It is immutable after loading and
// safe for concurrent use.
type Resolver struct {
	tables map[models.Language]map[string]string
}

var defaultResolver = mustLoadEmbedded()

// Default returns the resolver built from the embedded locale tables.
func Default() *Resolver {
	return defaultResolver
}

func mustLoadEmbedded() *Resolver {
	r, err := LoadFromFS(embeddedLocales)
	if err != nil {
		panic(fmt.Sprintf("load embedded locales: %v", err))
	}
	return r
}

// LoadFromFS reads every locales/*.yaml file in fsys. The file name must
// match its locale field, and an English table is required.
func LoadFromFS(fsys fs.FS) (*Resolver, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locales: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale files found")
	}
	sort.Strings(paths)

	r := &Resolver{tables: make(map[models.Language]map[string]string)}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", p, err)
		}
		var f localeFile
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", p, err)
		}
		fromPath := strings.TrimSuffix(path.Base(p), path.Ext(p))
		lang := models.Language(strings.TrimSpace(f.Locale))
		if string(lang) != fromPath {
			return nil, fmt.Errorf("locale %s: locale %q must match file name", p, f.Locale)
		}
		if !lang.IsValid() {
			return nil, fmt.Errorf("locale %s: unsupported language %q", p, lang)
		}
		if f.Messages == nil {
			f.Messages = map[string]string{}
		}
		r.tables[lang] = f.Messages
	}

	if _, ok := r.tables[models.DefaultLanguage]; !ok {
		return nil, fmt.Errorf("base locale %s is not defined", models.DefaultLanguage)
	}
	return r, nil
}

// Resolve returns the template for key in lang, falling back to English and
// then to key itself, with {name} placeholders replaced from params.
func (r *Resolver) Resolve(key string, lang models.Language, params Params) string {
	tmpl, ok := r.lookup(key, lang)
	if !ok {
		tmpl = key
	}
	return Substitute(tmpl, params)
}

// Has reports whether lang defines key without falling back.
func (r *Resolver) Has(key string, lang models.Language) bool {
	_, ok := r.tables[lang][key]
	return ok
}

// Languages returns the loaded languages in display order.
func (r *Resolver) Languages() []models.Language {
	var out []models.Language
	for _, l := range models.AllLanguages {
		if _, ok := r.tables[l]; ok {
			out = append(out, l)
		}
	}
	return out
}

func (r *Resolver) lookup(key string, lang models.Language) (string, bool) {
	if s, ok := r.tables[lang][key]; ok {
		return s, true
	}
	s, ok := r.tables[models.DefaultLanguage][key]
	return s, ok
}

// Substitute replaces each {name} in tmpl that has an entry in params with
// fmt.Sprint of the value. Unknown placeholders are kept. Substituted text
// is never rescanned.
func Substitute(tmpl string, params Params) string {
	if len(params) == 0 || !strings.Contains(tmpl, "{") {
		return tmpl
	}
	var b strings.Builder
	b.Grow(len(tmpl))
	for i := 0; i < len(tmpl); {
		open := strings.IndexByte(tmpl[i:], '{')
		if open < 0 {
			b.WriteString(tmpl[i:])
			break
		}
		open += i
		b.WriteString(tmpl[i:open])

		end := strings.IndexByte(tmpl[open+1:], '}')
		if end < 0 {
			b.WriteString(tmpl[open:])
			break
		}
		end += open + 1
		name := tmpl[open+1 : end]
		if strings.IndexByte(name, '{') >= 0 {
			b.WriteByte('{')
			i = open + 1
			continue
		}
		if v, ok := params[name]; ok {
			b.WriteString(fmt.Sprint(v))
		} else {
			b.WriteString(tmpl[open : end+1])
		}
		i = end + 1
	}
	return b.String()
}
