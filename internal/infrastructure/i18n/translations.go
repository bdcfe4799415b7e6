package i18n

import (
	"embed"
	"log"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"expocheckin/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

var localeFiles = []string{"active.es.toml", "active.en.toml"}

var _ output.Translator = (*Translator)(nil)

// Translator renders banner messages from the embedded active.*.toml files.
// Localizers are built once per distinct Accept-Language value.
type Translator struct {
	bundle          *i18n.Bundle
	defaultLanguage language.Tag
	matcher         language.Matcher

	localizers sync.Map // resolved tag string -> *i18n.Localizer
}

// NewTranslator builds a Translator using the given default locale
// (e.g. "es").
func NewTranslator(defaultLocale string) *Translator {
	tag, err := language.Parse(defaultLocale)
	if err != nil {
		tag = language.Spanish
	}
	bundle := i18n.NewBundle(tag)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	for _, file := range localeFiles {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			log.Printf("⚠️ i18n: no se pudo cargar %s: %v", file, err)
		}
	}

	return &Translator{
		bundle:          bundle,
		defaultLanguage: tag,
		matcher:         language.NewMatcher(bundle.LanguageTags()),
	}
}

// Resolve picks the loaded language that best serves an Accept-Language
// value, falling back to the default locale.
func (t *Translator) Resolve(acceptLanguage string) language.Tag {
	if acceptLanguage == "" {
		return t.defaultLanguage
	}
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return t.defaultLanguage
	}
	_, i, confidence := t.matcher.Match(tags...)
	if confidence == language.No {
		return t.defaultLanguage
	}
	return t.bundle.LanguageTags()[i]
}

// T renders key for locale, which may be a raw Accept-Language header.
// Keys missing in that language fall back to the default locale, then to
// the key itself.
func (t *Translator) T(locale, key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := t.localizer(locale).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		log.Printf("⚠️ i18n: clave sin traducir (key=%s, locale=%q): %v", key, locale, err)
		return key
	}
	return msg
}

func (t *Translator) localizer(locale string) *i18n.Localizer {
	tag := t.Resolve(locale).String()
	if l, ok := t.localizers.Load(tag); ok {
		return l.(*i18n.Localizer)
	}
	l, _ := t.localizers.LoadOrStore(tag, i18n.NewLocalizer(t.bundle, tag, t.defaultLanguage.String()))
	return l.(*i18n.Localizer)
}
