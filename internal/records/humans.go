package records

import (
	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// MaxHumansFieldLength bounds every humans.txt field.
const MaxHumansFieldLength = 100

// Humans is the humans.txt credits record. Every field is optional; the
// only invariant is bounded length.
type Humans struct {
	Author          string
	AuthorWebsite   string
	AuthorTwitter   string
	AuthorLocation  string
	Thanks          string
	SiteLastUpdated string
	SiteStandards   string
	SiteComponents  string
	SiteSoftware    string
}

// NewHumans builds a humans.txt record from front matter. The author website
// and twitter handle are validated when present; malformed optional values
// are dropped rather than failing the whole record, matching the forgiving
// nature of the format.
func NewHumans(meta Metadata, _ *Site) (*Humans, error) {
	h := &Humans{
		Author:          validate.SanitizeText(meta.Get("author")),
		AuthorLocation:  validate.SanitizeText(meta.Get("author_location")),
		Thanks:          validate.SanitizeText(meta.Get("thanks")),
		SiteLastUpdated: validate.SanitizeText(meta.Get("site_last_updated")),
		SiteStandards:   validate.SanitizeText(meta.Get("site_standards")),
		SiteComponents:  validate.SanitizeText(meta.Get("site_components")),
		SiteSoftware:    validate.SanitizeText(meta.Get("site_software")),
	}
	if v := meta.Get("author_website"); v != "" {
		if normalized, err := validate.URL("author_website", v); err == nil {
			h.AuthorWebsite = normalized
		}
	}
	if v := meta.Get("author_twitter"); v != "" {
		if normalized, err := validate.TwitterHandle("author_twitter", v); err == nil {
			h.AuthorTwitter = normalized
		}
	}
	return h, nil
}

// Validate enforces the bounded-length invariant on every field.
func (h *Humans) Validate() error {
	var errs error
	for field, value := range map[string]string{
		"author":            h.Author,
		"author_website":    h.AuthorWebsite,
		"author_twitter":    h.AuthorTwitter,
		"author_location":   h.AuthorLocation,
		"thanks":            h.Thanks,
		"site_last_updated": h.SiteLastUpdated,
		"site_standards":    h.SiteStandards,
		"site_components":   h.SiteComponents,
		"site_software":     h.SiteSoftware,
	} {
		if value == "" {
			continue
		}
		if _, err := validate.TextLength(field, value, MaxHumansFieldLength); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
