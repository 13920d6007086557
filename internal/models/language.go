// ABOUTME: Language enum for the supported UI languages.
// ABOUTME: Parses BCP-47 tags with x/text and falls back to English.
package models

import (
	"strings"

	"golang.org/x/text/language"
)

// Language is one of the supported UI languages.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageTamil   Language = "ta"
	LanguageTelugu  Language = "te"

	// DefaultLanguage is the fallback for lookups and parsing.
	DefaultLanguage = LanguageEnglish
)

// AllLanguages returns all supported languages, default first.
var AllLanguages = []Language{LanguageEnglish, LanguageHindi, LanguageTamil, LanguageTelugu}

var languageMatcher = language.NewMatcher([]language.Tag{
	language.MustParse("en"),
	language.MustParse("hi"),
	language.MustParse("ta"),
	language.MustParse("te"),
})

// ParseLanguage maps a BCP-47 tag ("hi", "ta-IN", "en-US") to a supported
// Language. Unparseable or unsupported tags yield DefaultLanguage.
func ParseLanguage(s string) Language {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultLanguage
	}
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLanguage
	}
	_, idx, conf := languageMatcher.Match(tag)
	if conf == language.No {
		return DefaultLanguage
	}
	return AllLanguages[idx]
}

// IsValid reports whether l is a supported language.
func (l Language) IsValid() bool {
	for _, s := range AllLanguages {
		if s == l {
			return true
		}
	}
	return false
}
