// Package locales provides display-string lookups for the generated markup.
// Catalogs are compiled in; unknown languages fall back to English and
// unknown keys fall back to the key itself so generation never blocks on a
// missing translation.
package locales

import "strings"

var catalogs = map[string]map[string]string{
	"en": {
		"featured_tags": "Featured Tags",
		"home":          "Home",
		"navigation":    "Navigation",
		"last_update":   "Last update",
	},
	"fr": {
		"featured_tags": "Mots-clés en vedette",
		"home":          "Accueil",
		"navigation":    "Navigation",
		"last_update":   "Dernière mise à jour",
	},
	"de": {
		"featured_tags": "Beliebte Themen",
		"home":          "Startseite",
		"navigation":    "Navigation",
		"last_update":   "Letzte Aktualisierung",
	},
}

const fallbackLanguage = "en"

// Translator resolves display strings for one configured language.
type Translator struct {
	lang string
}

// New returns a translator for the given ISO 639-1 code. Region subtags are
// tolerated ("en-US" resolves as "en").
func New(lang string) *Translator {
	base := strings.ToLower(lang)
	if i := strings.IndexAny(base, "-_"); i > 0 {
		base = base[:i]
	}
	if _, ok := catalogs[base]; !ok {
		base = fallbackLanguage
	}
	return &Translator{lang: base}
}

// Language returns the resolved language code.
func (t *Translator) Language() string { return t.lang }

// Lookup returns the display string for key, falling back to English and
// finally to the key itself.
func (t *Translator) Lookup(key string) string {
	if s, ok := catalogs[t.lang][key]; ok {
		return s
	}
	if s, ok := catalogs[fallbackLanguage][key]; ok {
		return s
	}
	return key
}

// Supported reports whether a catalog exists for the language code.
func Supported(lang string) bool {
	_, ok := catalogs[strings.ToLower(lang)]
	return ok
}
