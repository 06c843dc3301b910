package records

import (
	"time"

	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// Field length limits for page metadata. Meta descriptions beyond ~500
// characters are truncated by search engines anyway; we reject rather than
// silently cut.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 500
)

// Page is the per-document metadata record driving most artifact factories.
type Page struct {
	Title       string
	Description string
	Permalink   string
	Date        time.Time
	LastMod     time.Time
	Keywords    []string
}

// NewPage builds a Page from front matter. Required keys: title, description,
// permalink. The permalink is resolved against the site base URL when relative.
func NewPage(meta Metadata, site *Site) (*Page, error) {
	p := &Page{
		Title:       validate.SanitizeText(meta.Get("title")),
		Description: validate.SanitizeText(meta.Get("description")),
		Permalink:   resolvePermalink(meta.Get("permalink"), site),
		Keywords:    meta.List("keywords"),
	}
	if p.Title == "" {
		return nil, errors.MissingField("title")
	}
	if p.Description == "" {
		return nil, errors.MissingField("description")
	}
	if p.Permalink == "" {
		return nil, errors.MissingField("permalink")
	}
	if v := meta.Get("date"); v != "" {
		t, err := validate.FlexibleDate("date", v)
		if err != nil {
			return nil, err
		}
		p.Date = t
	}
	if v := meta.Get("last_updated"); v != "" {
		t, err := validate.FlexibleDate("last_updated", v)
		if err != nil {
			return nil, err
		}
		p.LastMod = t
	}
	return p, nil
}

// Validate re-checks all page invariants.
func (p *Page) Validate() error {
	var errs error
	if p.Title == "" {
		errs = multierr.Append(errs, errors.MissingField("title"))
	} else if _, err := validate.TextLength("title", p.Title, MaxTitleLength); err != nil {
		errs = multierr.Append(errs, err)
	}
	if p.Description == "" {
		errs = multierr.Append(errs, errors.MissingField("description"))
	} else if _, err := validate.TextLength("description", p.Description, MaxDescriptionLength); err != nil {
		errs = multierr.Append(errs, err)
	}
	if _, err := validate.URL("permalink", p.Permalink); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

// resolvePermalink joins a relative permalink onto the site base URL.
// Absolute permalinks pass through untouched.
func resolvePermalink(permalink string, site *Site) string {
	if permalink == "" || site == nil || site.BaseURL == "" {
		return permalink
	}
	if len(permalink) >= 7 && (permalink[:7] == "http://" || (len(permalink) >= 8 && permalink[:8] == "https://")) {
		return permalink
	}
	base := site.BaseURL
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	if permalink[0] != '/' {
		return base + "/" + permalink
	}
	return base + permalink
}
