package records

import (
	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// MetaTag is a single <meta> element: a name (or property) and its content.
type MetaTag struct {
	Name    string
	Content string
}

// MetaTagGroups holds the named tag sets a page template splices in:
// primary SEO tags, OpenGraph, Twitter cards, and the Apple/Microsoft
// platform-specific sets.
type MetaTagGroups struct {
	Primary   []MetaTag
	OpenGraph []MetaTag
	Twitter   []MetaTag
	Apple     []MetaTag
	Microsoft []MetaTag
}

// NewMetaTagGroups derives the tag groups from page front matter and the
// site defaults. Tags whose content would be empty are skipped at generation
// time, so optimistic population here is safe.
func NewMetaTagGroups(meta Metadata, site *Site) (*MetaTagGroups, error) {
	title := validate.SanitizeText(meta.Get("title"))
	description := validate.SanitizeText(meta.Get("description"))
	permalink := resolvePermalink(meta.Get("permalink"), site)
	image := meta.Get("image")

	g := &MetaTagGroups{
		Primary: []MetaTag{
			{Name: "title", Content: title},
			{Name: "description", Content: description},
			{Name: "keywords", Content: meta.Get("keywords")},
			{Name: "author", Content: validate.SanitizeText(meta.Get("author"))},
			{Name: "robots", Content: meta.GetDefault("robots", "index, follow")},
			{Name: "language", Content: meta.GetDefault("language", siteLanguage(site))},
			{Name: "viewport", Content: meta.GetDefault("viewport", "width=device-width, initial-scale=1")},
		},
		OpenGraph: []MetaTag{
			{Name: "og:type", Content: meta.GetDefault("og_type", "website")},
			{Name: "og:title", Content: title},
			{Name: "og:description", Content: description},
			{Name: "og:url", Content: permalink},
			{Name: "og:image", Content: image},
			{Name: "og:site_name", Content: validate.SanitizeText(siteName(site))},
			{Name: "og:locale", Content: meta.Get("locale")},
		},
		Twitter: []MetaTag{
			{Name: "twitter:card", Content: meta.GetDefault("twitter_card", "summary")},
			{Name: "twitter:title", Content: title},
			{Name: "twitter:description", Content: description},
			{Name: "twitter:image", Content: image},
		},
		Apple: []MetaTag{
			{Name: "apple-mobile-web-app-capable", Content: meta.Get("apple_mobile_web_app_capable")},
			{Name: "apple-mobile-web-app-title", Content: meta.Get("apple_mobile_web_app_title")},
			{Name: "apple-touch-icon", Content: meta.Get("apple_touch_icon")},
		},
		Microsoft: []MetaTag{
			{Name: "msapplication-TileColor", Content: meta.Get("ms_tile_color")},
			{Name: "msapplication-TileImage", Content: meta.Get("ms_tile_image")},
			{Name: "msapplication-config", Content: meta.Get("ms_config")},
		},
	}

	if handle := meta.Get("author_twitter"); handle != "" {
		if normalized, err := validate.TwitterHandle("author_twitter", handle); err == nil {
			g.Twitter = append(g.Twitter, MetaTag{Name: "twitter:site", Content: normalized})
		}
	}
	return g, nil
}

// Validate checks every present tag for a non-empty name and control-free
// content. Empty content is allowed here; generators skip those tags.
func (g *MetaTagGroups) Validate() error {
	var errs error
	for _, group := range [][]MetaTag{g.Primary, g.OpenGraph, g.Twitter, g.Apple, g.Microsoft} {
		for _, tag := range group {
			if tag.Name == "" {
				errs = multierr.Append(errs, errors.Structural("meta tag with empty name"))
			}
			if tag.Content != validate.SanitizeText(tag.Content) {
				errs = multierr.Append(errs, errors.Security(tag.Name, tag.Content, "meta tag content has control characters"))
			}
		}
	}
	return errs
}
