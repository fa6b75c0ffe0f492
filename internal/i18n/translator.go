// Package i18n provides the Arabic/English message catalogue and currency display.
package i18n

import (
	"fmt"
	"regexp"

	"golang.org/x/text/language"
)

// Language codes supported by the catalogue
const (
	Arabic  = "ar"
	English = "en"
)

var placeholder = regexp.MustCompile(`\{\{(\w+)\}\}`)

var matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})

// Vars fills {{name}} placeholders
type Vars map[string]interface{}

// Translator looks messages up for one language
type Translator struct {
	lang string
}

// NewTranslator picks the closest supported language for lang, Arabic by default
func NewTranslator(lang string) *Translator {
	return &Translator{lang: Normalize(lang)}
}

// Normalize maps any BCP 47 tag onto "ar" or "en"
func Normalize(lang string) string {
	if lang == "" {
		return Arabic
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return Arabic
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return Arabic
	}
	if idx == 1 {
		return English
	}
	return Arabic
}

// Lang returns the normalized language code
func (t *Translator) Lang() string {
	return t.lang
}

// T returns the message for key, falling back to English and then to the key itself.
// Placeholders without a value are left as written.
func (t *Translator) T(key string, vars Vars) string {
	msg, ok := catalog[t.lang][key]
	if !ok {
		msg, ok = catalog[English][key]
		if !ok {
			return key
		}
	}
	if len(vars) == 0 {
		return msg
	}
	return placeholder.ReplaceAllStringFunc(msg, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		if v, ok := vars[name]; ok {
			return fmt.Sprint(v)
		}
		return m
	})
}
