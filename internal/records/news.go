package records

import (
	"strings"
	"time"

	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// MaxNewsKeywords is the Google News limit on <news:keywords> entries.
const MaxNewsKeywords = 10

// Genres Google News accepts; anything else is dropped by the factory.
var newsGenres = map[string]bool{
	"PressRelease":  true,
	"Satire":        true,
	"Blog":          true,
	"OpEd":          true,
	"Opinion":       true,
	"UserGenerated": true,
}

// NewsEntry is one <url> element of a Google News sitemap.
type NewsEntry struct {
	Loc             string
	PublicationName string
	Language        string
	PublicationDate time.Time
	Title           string
	Keywords        []string
	Genres          []string
	ImageLoc        string
}

// NewsSitemap aggregates news entries for a build pass.
type NewsSitemap struct {
	Entries []NewsEntry
}

// NewNewsEntry builds a news sitemap entry from front matter. Required keys:
// news_loc (or permalink), news_title, news_publication_date. Unknown genres
// are filtered rather than rejected; keywords are capped at the Google limit.
func NewNewsEntry(meta Metadata, site *Site) (*NewsEntry, error) {
	loc := meta.GetDefault("news_loc", meta.Get("permalink"))
	if loc == "" {
		return nil, errors.MissingField("news_loc")
	}
	title := validate.SanitizeText(meta.Get("news_title"))
	if title == "" {
		return nil, errors.MissingField("news_title")
	}
	rawDate := meta.Get("news_publication_date")
	if rawDate == "" {
		return nil, errors.MissingField("news_publication_date")
	}
	pubDate, err := validate.FlexibleDate("news_publication_date", rawDate)
	if err != nil {
		return nil, err
	}

	e := &NewsEntry{
		Loc:             resolvePermalink(loc, site),
		PublicationName: validate.SanitizeText(meta.GetDefault("news_publication_name", siteName(site))),
		Language:        strings.ToLower(meta.GetDefault("news_language", siteLanguage(site))),
		PublicationDate: pubDate,
		Title:           title,
		Keywords:        capKeywords(meta.List("news_keywords")),
		Genres:          filterGenres(meta.List("news_genres")),
		ImageLoc:        meta.Get("news_image_loc"),
	}
	return e, nil
}

// Validate re-checks every news invariant.
func (e *NewsEntry) Validate() error {
	var errs error
	if _, err := validate.URL("news_loc", e.Loc); err != nil {
		errs = multierr.Append(errs, err)
	}
	if e.PublicationName == "" {
		errs = multierr.Append(errs, errors.MissingField("news_publication_name"))
	}
	if _, err := validate.LanguageCode("news_language", e.Language); err != nil {
		errs = multierr.Append(errs, err)
	}
	if e.PublicationDate.IsZero() {
		errs = multierr.Append(errs, errors.MissingField("news_publication_date"))
	}
	if e.Title == "" {
		errs = multierr.Append(errs, errors.MissingField("news_title"))
	}
	if len(e.Keywords) > MaxNewsKeywords {
		errs = multierr.Append(errs, errors.Structural("news keywords exceed the Google News limit of 10"))
	}
	for _, g := range e.Genres {
		if !newsGenres[g] {
			errs = multierr.Append(errs, errors.InvalidValue("news_genres", g, "not a Google News genre"))
		}
	}
	if e.ImageLoc != "" {
		if _, err := validate.URL("news_image_loc", e.ImageLoc); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// Add appends an entry.
func (n *NewsSitemap) Add(e NewsEntry) { n.Entries = append(n.Entries, e) }

// Validate checks every entry.
func (n *NewsSitemap) Validate() error {
	for i := range n.Entries {
		if err := n.Entries[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

func filterGenres(genres []string) []string {
	var out []string
	for _, g := range genres {
		if newsGenres[g] {
			out = append(out, g)
		}
	}
	return out
}

func capKeywords(kw []string) []string {
	if len(kw) > MaxNewsKeywords {
		return kw[:MaxNewsKeywords]
	}
	return kw
}

func siteName(site *Site) string {
	if site == nil {
		return ""
	}
	return site.Name
}
