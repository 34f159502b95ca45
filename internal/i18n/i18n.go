// Package i18n translates UI text for the supported locales and picks a
// locale from saved preferences and the environment.
package i18n

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

var (
	EnglishUS = language.MustParse("en-US")
	DutchNL   = language.MustParse("nl-NL")
	SpanishES = language.MustParse("es-ES")
)

// supported is in cycle order; the first entry is the fallback
var supported = []language.Tag{EnglishUS, DutchNL, SpanishES}

var (
	matcher = language.NewMatcher(supported)
	cat     = mustBuildCatalog()
)

// messages maps each supported locale to its translations
var messages = map[language.Tag]map[string]string{
	EnglishUS: enUS,
	DutchNL:   nlNL,
	SpanishES: esES,
}

func buildCatalog(tables map[language.Tag]map[string]string) (catalog.Catalog, error) {
	b := catalog.NewBuilder(catalog.Fallback(EnglishUS))
	for tag, msgs := range tables {
		for key, msg := range msgs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("i18n: %s %q: %w", tag, key, err)
			}
		}
	}
	return b, nil
}

func mustBuildCatalog() catalog.Catalog {
	c, err := buildCatalog(messages)
	if err != nil {
		panic(err)
	}
	return c
}

// Supported returns the selectable locales.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// Match returns the best supported locale for the given preferences, tried
// in order. Unparseable or unsupported values fall through to en-US.
func Match(prefs ...string) language.Tag {
	for _, p := range prefs {
		tag, ok := parse(p)
		if !ok {
			continue
		}
		_, idx, conf := matcher.Match(tag)
		if conf != language.No {
			return supported[idx]
		}
	}
	return EnglishUS
}

// EnvLocale returns the locale named by LC_ALL, LC_MESSAGES or LANG.
func EnvLocale() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// parse accepts BCP 47 tags and POSIX locale names (nl_NL.UTF-8).
func parse(s string) (language.Tag, bool) {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "" || s == "C" || s == "POSIX" {
		return language.Und, false
	}
	tag, err := language.Parse(strings.ReplaceAll(s, "_", "-"))
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// Translator formats UI strings for one locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for tag, which should be one of Supported().
func New(tag language.Tag) *Translator {
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Tag returns the translator's locale
func (t *Translator) Tag() language.Tag { return t.tag }

// T translates key, formatting args as with fmt.Sprintf.
func (t *Translator) T(key string, args ...any) string {
	return t.printer.Sprintf(key, args...)
}

// Next returns a translator for the locale after this one in cycle order.
func (t *Translator) Next() *Translator {
	for i, tag := range supported {
		if tag == t.tag {
			return New(supported[(i+1)%len(supported)])
		}
	}
	return New(EnglishUS)
}

// Code returns the short UI code of the locale ("EN", "NL", "ES").
func (t *Translator) Code() string {
	base, _ := t.tag.Base()
	return strings.ToUpper(base.String())
}
