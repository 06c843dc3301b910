package records

import (
	"strconv"
	"time"

	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// FeedItem is one RSS <item>. Items are emitted in the order given; the
// caller supplies them pre-ordered (typically newest-first).
type FeedItem struct {
	Title       string
	Link        string
	Description string
	GUID        string
	Author      string
	PubDate     time.Time
}

// Feed is the channel-level RSS 2.0 metadata plus its items.
type Feed struct {
	Title          string
	Link           string
	Description    string
	Language       string
	Copyright      string
	ManagingEditor string
	Webmaster      string
	Generator      string
	AtomLink       string
	Category       string
	Docs           string
	TTL            int
	PubDate        time.Time
	LastBuildDate  time.Time
	Items          []FeedItem
}

// NewFeed builds channel metadata from front matter. Required keys: title and
// permalink (the channel link). An item_* key group contributes one item.
func NewFeed(meta Metadata, site *Site) (*Feed, error) {
	if !meta.Has("title") {
		return nil, errors.MissingField("title")
	}
	if !meta.Has("permalink") {
		return nil, errors.MissingField("permalink")
	}

	f := &Feed{
		Title:          validate.SanitizeText(meta.Get("title")),
		Link:           resolvePermalink(meta.Get("permalink"), site),
		Description:    validate.SanitizeText(meta.Get("description")),
		Language:       meta.GetDefault("language", siteLanguage(site)),
		Copyright:      validate.SanitizeText(meta.Get("copyright")),
		ManagingEditor: validate.SanitizeText(meta.Get("managing_editor")),
		Webmaster:      validate.SanitizeText(meta.Get("webmaster")),
		Generator:      meta.GetDefault("generator", "sitedata"),
		AtomLink:       meta.Get("atom_link"),
		Category:       validate.SanitizeText(meta.Get("category")),
		Docs:           meta.Get("docs"),
	}

	if v := meta.Get("ttl"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, errors.InvalidValue("ttl", v, "ttl must be a non-negative integer")
		}
		f.TTL = n
	}
	if v := meta.Get("pub_date"); v != "" {
		t, err := validate.FlexibleDate("pub_date", v)
		if err != nil {
			return nil, err
		}
		f.PubDate = t
	}
	if v := meta.Get("last_build_date"); v != "" {
		t, err := validate.FlexibleDate("last_build_date", v)
		if err != nil {
			return nil, err
		}
		f.LastBuildDate = t
	}

	if meta.Has("item_title") || meta.Has("item_link") {
		item := FeedItem{
			Title:       validate.SanitizeText(meta.Get("item_title")),
			Link:        resolvePermalink(meta.Get("item_link"), site),
			Description: validate.SanitizeText(meta.Get("item_description")),
			GUID:        meta.Get("item_guid"),
			Author:      validate.SanitizeText(meta.Get("author")),
		}
		if v := meta.Get("item_pub_date"); v != "" {
			t, err := validate.FlexibleDate("item_pub_date", v)
			if err != nil {
				return nil, err
			}
			item.PubDate = t
		}
		f.Items = append(f.Items, item)
	}

	return f, nil
}

// AddItem appends an item, preserving caller ordering.
func (f *Feed) AddItem(item FeedItem) { f.Items = append(f.Items, item) }

// Validate re-checks channel and item invariants.
func (f *Feed) Validate() error {
	var errs error
	if f.Title == "" {
		errs = multierr.Append(errs, errors.MissingField("title"))
	}
	if f.Description == "" {
		errs = multierr.Append(errs, errors.MissingField("description"))
	}
	if _, err := validate.URL("link", f.Link); err != nil {
		errs = multierr.Append(errs, err)
	}
	if f.AtomLink != "" {
		if _, err := validate.URL("atom_link", f.AtomLink); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if f.Language != "" {
		if _, err := validate.LanguageCode("language", f.Language); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	for i := range f.Items {
		item := &f.Items[i]
		if item.Link != "" {
			if _, err := validate.URL("item_link", item.Link); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		if item.Title == "" && item.Description == "" {
			errs = multierr.Append(errs, errors.Structural("feed item needs a title or a description"))
		}
	}
	return errs
}

func siteLanguage(site *Site) string {
	if site == nil || site.Language == "" {
		return "en"
	}
	return site.Language
}
