package gen

import (
	"encoding/json"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/records"
)

func TestSitemap(t *testing.T) {
	s := &records.Sitemap{Entries: []records.SitemapEntry{
		{
			Loc:        "https://example.com/posts/hello",
			LastMod:    time.Date(2024, 2, 20, 12, 30, 0, 0, time.UTC),
			ChangeFreq: records.ChangeFreqWeekly,
			Priority:   "0.8",
		},
		{Loc: "https://example.com/about"},
	}}

	out := Sitemap(s)

	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, out, "    <loc>https://example.com/posts/hello</loc>\n")
	assert.Contains(t, out, "    <lastmod>2024-02-20T12:30:00Z</lastmod>\n")
	assert.Contains(t, out, "    <changefreq>weekly</changefreq>\n")
	assert.Contains(t, out, "    <priority>0.8</priority>\n")
	assert.True(t, strings.HasSuffix(out, "</urlset>\n"))

	// Optional elements stay out for the bare entry.
	second := out[strings.Index(out, "about"):]
	assert.NotContains(t, second, "<lastmod>")
	assert.NotContains(t, second, "<changefreq>")

	// Same record, byte-identical output.
	assert.Equal(t, out, Sitemap(s))
}

func TestSitemapEscapesLoc(t *testing.T) {
	s := &records.Sitemap{Entries: []records.SitemapEntry{
		{Loc: "https://example.com/search?q=a&b=<c>"},
	}}
	out := Sitemap(s)
	assert.Contains(t, out, "<loc>https://example.com/search?q=a&amp;b=&lt;c&gt;</loc>")
}

func TestNewsSitemap(t *testing.T) {
	n := &records.NewsSitemap{Entries: []records.NewsEntry{
		{
			Loc:             "https://example.com/news/launch",
			PublicationName: "Example News",
			Language:        "en",
			PublicationDate: time.Date(2024, 2, 20, 8, 0, 0, 0, time.UTC),
			Title:           "Launch Day",
			Keywords:        []string{"launch", "product"},
			Genres:          []string{"PressRelease", "Blog"},
			ImageLoc:        "https://example.com/img/launch.jpg",
		},
	}}

	out := NewsSitemap(n)

	assert.Contains(t, out, `xmlns:news="http://www.google.com/schemas/sitemap-news/0.9"`)
	assert.Contains(t, out, `xmlns:image="http://www.google.com/schemas/sitemap-image/1.1"`)
	assert.Contains(t, out, "<news:name>Example News</news:name>")
	assert.Contains(t, out, "<news:language>en</news:language>")
	assert.Contains(t, out, "<news:publication_date>2024-02-20T08:00:00Z</news:publication_date>")
	assert.Contains(t, out, "<news:title>Launch Day</news:title>")
	assert.Contains(t, out, "<news:keywords>launch, product</news:keywords>")
	assert.Contains(t, out, "<news:genres>PressRelease, Blog</news:genres>")
	assert.Contains(t, out, "<image:loc>https://example.com/img/launch.jpg</image:loc>")

	// Publication block precedes the date, date precedes the title.
	assert.Less(t, strings.Index(out, "<news:publication>"), strings.Index(out, "<news:publication_date>"))
	assert.Less(t, strings.Index(out, "<news:publication_date>"), strings.Index(out, "<news:title>"))
}

type rssDoc struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Title       string `xml:"title"`
		Link        string `xml:"link"`
		Description string `xml:"description"`
		Language    string `xml:"language"`
		TTL         int    `xml:"ttl"`
		Items       []struct {
			Title   string `xml:"title"`
			Link    string `xml:"link"`
			GUID    string `xml:"guid"`
			PubDate string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

func TestFeedRoundTrip(t *testing.T) {
	f := &records.Feed{
		Title:       "Example & Sons",
		Link:        "https://example.com",
		Description: "News from <the> workshop",
		Language:    "en",
		TTL:         60,
		AtomLink:    "https://example.com/rss.xml",
		Items: []records.FeedItem{
			{
				Title:   "Second post",
				Link:    "https://example.com/posts/second",
				GUID:    "https://example.com/posts/second",
				PubDate: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			},
			{
				Title: "First post",
				Link:  "https://example.com/posts/first",
			},
		},
	}

	out := Feed(f)

	var doc rssDoc
	require.NoError(t, xml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Example & Sons", doc.Channel.Title)
	assert.Equal(t, "News from <the> workshop", doc.Channel.Description)
	assert.Equal(t, "en", doc.Channel.Language)
	assert.Equal(t, 60, doc.Channel.TTL)

	// Items come out in the order the record carries them.
	require.Len(t, doc.Channel.Items, 2)
	assert.Equal(t, "Second post", doc.Channel.Items[0].Title)
	assert.Equal(t, "First post", doc.Channel.Items[1].Title)
	assert.Equal(t, "Fri, 01 Mar 2024 09:00:00 GMT", doc.Channel.Items[0].PubDate)

	assert.Contains(t, out, `<atom:link href="https://example.com/rss.xml" rel="self" type="application/rss+xml"/>`)
}

func TestFeedOmitsEmptyChannelFields(t *testing.T) {
	f := &records.Feed{Title: "T", Link: "https://example.com", Description: "D"}
	out := Feed(f)
	assert.NotContains(t, out, "<copyright>")
	assert.NotContains(t, out, "<managingEditor>")
	assert.NotContains(t, out, "<ttl>")
	assert.NotContains(t, out, "<atom:link")
}

func TestManifest(t *testing.T) {
	m := &records.Manifest{
		Name:            "Example Site",
		ShortName:       "Example",
		StartURL:        records.DefaultStartURL,
		Display:         records.DefaultDisplay,
		BackgroundColor: records.DefaultBackground,
		ThemeColor:      "#336699",
		Orientation:     records.DefaultOrientation,
		Scope:           records.DefaultScope,
		Icons: []records.Icon{{
			Src:     "/icon.svg",
			Sizes:   records.DefaultIconSizes,
			Type:    records.DefaultIconType,
			Purpose: records.DefaultIconPurpose,
		}},
	}

	out, err := Manifest(m)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "\n"))

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Example Site", doc["name"])
	assert.Equal(t, "Example", doc["short_name"])
	assert.Equal(t, ".", doc["start_url"])
	assert.Equal(t, "standalone", doc["display"])
	assert.Equal(t, "#ffffff", doc["background_color"])

	icons, ok := doc["icons"].([]any)
	require.True(t, ok)
	require.Len(t, icons, 1)
	icon := icons[0].(map[string]any)
	assert.Equal(t, "/icon.svg", icon["src"])
	assert.Equal(t, "512x512", icon["sizes"])
	assert.Equal(t, "image/svg+xml", icon["type"])
	assert.Equal(t, "any maskable", icon["purpose"])
}

func TestManifestOmitsIconsKeyWhenEmpty(t *testing.T) {
	m := &records.Manifest{Name: "N", StartURL: ".", Display: "standalone"}
	out, err := Manifest(m)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	_, present := doc["icons"]
	assert.False(t, present)
}

func TestSecurityTxt(t *testing.T) {
	s := &records.SecurityPolicy{
		Contacts:           []string{"mailto:security@example.com", "https://example.com/report"},
		Expires:            time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Encryption:         "https://example.com/pgp.txt",
		Policy:             "https://example.com/policy",
		PreferredLanguages: []string{"en", "fr"},
	}

	out := SecurityTxt(s)

	want := "Contact: mailto:security@example.com\n" +
		"Contact: https://example.com/report\n" +
		"Expires: 2027-01-01T00:00:00Z\n" +
		"Encryption: https://example.com/pgp.txt\n" +
		"Policy: https://example.com/policy\n" +
		"Preferred-Languages: en, fr\n"
	assert.Equal(t, want, out)
}

func TestRobots(t *testing.T) {
	r := &records.Robots{
		Groups: []records.RobotsGroup{{
			UserAgent: "*",
			Allow:     []string{"/"},
			Disallow:  []string{"/admin", "/drafts"},
		}},
		Sitemap: "https://example.com/sitemap.xml",
	}

	out := Robots(r)

	want := "User-agent: *\n" +
		"Allow: /\n" +
		"Disallow: /admin\n" +
		"Disallow: /drafts\n" +
		"Sitemap: https://example.com/sitemap.xml\n"
	assert.Equal(t, want, out)
}

func TestRobotsDefaultShape(t *testing.T) {
	r, err := records.NewRobots(records.Metadata{}, &records.Site{BaseURL: "https://example.com"})
	require.NoError(t, err)
	assert.Equal(t, "User-agent: *\nSitemap: https://example.com/sitemap.xml\n", Robots(r))
}

func TestHumans(t *testing.T) {
	h := &records.Humans{
		Author:          "Jane Doe",
		AuthorWebsite:   "https://example.com",
		AuthorLocation:  "Oslo, Norway",
		Thanks:          "Contributors",
		SiteLastUpdated: "2024-02-20",
		SiteSoftware:    "sitedata",
	}

	out := Humans(h)

	want := "/* TEAM */\n" +
		"    Name: Jane Doe\n" +
		"    Website: https://example.com\n" +
		"    Location: Oslo, Norway\n" +
		"\n/* THANKS */\n" +
		"    Name: Contributors\n" +
		"\n/* SITE */\n" +
		"    Last update: 2024-02-20\n" +
		"    Software: sitedata\n"
	assert.Equal(t, want, out)
}

func TestHumansOmitsEmptySections(t *testing.T) {
	out := Humans(&records.Humans{Author: "Jane"})
	assert.Contains(t, out, "/* TEAM */")
	assert.NotContains(t, out, "/* THANKS */")
	assert.NotContains(t, out, "/* SITE */")
}

func TestCNAME(t *testing.T) {
	out := CNAME(&records.CNAME{Domain: "example.com", TTL: records.DefaultCNAMETTL})
	assert.Equal(t, "example.com\nwww.example.com", out)
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestCNAMEZone(t *testing.T) {
	out := CNAMEZone(&records.CNAME{Domain: "example.com", TTL: 7200})
	assert.Equal(t, "example.com 7200 IN CNAME www.example.com", out)

	out = CNAMEZone(&records.CNAME{Domain: "example.com", TTL: records.DefaultCNAMETTL})
	assert.Equal(t, "example.com 3600 IN CNAME www.example.com", out)
}

func TestNavigation(t *testing.T) {
	n := &records.Navigation{}
	n.Add(records.NavItem{Title: "Home", Permalink: "/", Depth: 0})
	n.Add(records.NavItem{Title: "Docs", Permalink: "/docs/", Depth: 0})
	n.Add(records.NavItem{Title: "Install", Permalink: "/docs/install/", Depth: 1})
	n.Add(records.NavItem{Title: "Linux", Permalink: "/docs/install/linux/", Depth: 2})
	n.Add(records.NavItem{Title: "Usage", Permalink: "/docs/usage/", Depth: 1})
	n.Add(records.NavItem{Title: "About", Permalink: "/about/", Depth: 0})

	out, err := Navigation(n)
	require.NoError(t, err)

	assert.Contains(t, out, `<a href="/docs/install/linux/">Linux</a>`)
	// Every opened list closes.
	assert.Equal(t, strings.Count(out, "<ul>"), strings.Count(out, "</ul>"))
	// About comes back at top level after the nested docs subtree.
	assert.Less(t, strings.Index(out, "Usage"), strings.Index(out, "About"))
}

func TestNavigationRejectsDepthJump(t *testing.T) {
	n := &records.Navigation{Items: []records.NavItem{
		{Title: "Home", Permalink: "/", Depth: 0},
		{Title: "Deep", Permalink: "/deep/", Depth: 2},
	}}
	_, err := Navigation(n)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindStructural))
}

func TestNavigationRejectsNonZeroStart(t *testing.T) {
	n := &records.Navigation{Items: []records.NavItem{
		{Title: "Child", Permalink: "/child/", Depth: 1},
	}}
	_, err := Navigation(n)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindStructural))
}

func TestNavigationFromFiles(t *testing.T) {
	mk := func(name string) *records.File {
		f, err := records.NewFile(name, "")
		require.NoError(t, err)
		return f
	}
	files := []*records.File{
		mk("getting-started.md"),
		mk("about.md"),
		mk("index.md"),
		mk("404.md"),
		mk("privacy.md"),
		mk("styles.css"),
		mk("data.toml"),
	}

	out := NavigationFromFiles(files)

	assert.Contains(t, out, `<li><a href="/about/index.html">About</a></li>`)
	assert.Contains(t, out, `<li><a href="/getting-started/index.html">Getting Started</a></li>`)
	assert.Contains(t, out, `<li><a href="/data/index.html">Data</a></li>`)
	assert.NotContains(t, out, "index.md")
	assert.NotContains(t, out, "404")
	assert.NotContains(t, out, "Privacy")
	assert.NotContains(t, out, "styles")
	// Alphabetical order.
	assert.Less(t, strings.Index(out, "About"), strings.Index(out, "Data"))
	assert.Less(t, strings.Index(out, "Data"), strings.Index(out, "Getting Started"))
}

func TestTagIndex(t *testing.T) {
	ti := records.NewTagIndex()
	ti.Tags["golang"] = &records.TagPages{
		Titles:       []string{"Post A", "Post B"},
		Dates:        []string{"2024-01-01", ""},
		Permalinks:   []string{"https://example.com/a", "https://example.com/b"},
		Descriptions: []string{"First", ""},
	}
	ti.Tags["design"] = &records.TagPages{
		Titles:       []string{"Post C"},
		Dates:        []string{"2024-02-01"},
		Permalinks:   []string{"https://example.com/c"},
		Descriptions: []string{"Third"},
	}

	out, err := TagIndex(ti)
	require.NoError(t, err)

	assert.Contains(t, out, `<div class="tags-wrapper">`)
	assert.Contains(t, out, "<h2>Featured Tags (3)</h2>")
	assert.Contains(t, out, `<h3 id="tag-golang">golang (2)</h3>`)
	assert.Contains(t, out, `<time datetime="2024-01-01">2024-01-01</time>`)
	assert.Contains(t, out, `<a href="https://example.com/a">Post A</a>`)
	// Lexical tag order: design before golang.
	assert.Less(t, strings.Index(out, "tag-design"), strings.Index(out, "tag-golang"))
}

func TestTagIndexRejectsMismatchedSequences(t *testing.T) {
	ti := records.NewTagIndex()
	ti.Tags["golang"] = &records.TagPages{
		Titles:     []string{"Post A"},
		Permalinks: []string{"https://example.com/a", "https://example.com/b"},
	}
	_, err := TagIndex(ti)
	require.Error(t, err)
	assert.True(t, errors.IsKind(err, errors.KindStructural))
}

func TestMetaTags(t *testing.T) {
	g := &records.MetaTagGroups{
		Primary: []records.MetaTag{
			{Name: "title", Content: "Hello"},
			{Name: "keywords", Content: ""},
		},
		OpenGraph: []records.MetaTag{
			{Name: "og:title", Content: "Hello"},
		},
		Twitter: []records.MetaTag{
			{Name: "twitter:card", Content: "summary"},
		},
	}

	out := MetaTags(g)

	assert.Contains(t, out, `<meta name="title" content="Hello">`)
	assert.Contains(t, out, `<meta property="og:title" content="Hello">`)
	assert.Contains(t, out, `<meta name="twitter:card" content="summary">`)
	assert.NotContains(t, out, "keywords")
	// Groups are blank-line separated.
	assert.Contains(t, out, "\n\n<meta property=")
}

func TestMetaTagsEscapesContent(t *testing.T) {
	g := &records.MetaTagGroups{Primary: []records.MetaTag{
		{Name: "description", Content: `He said "a < b & c"`},
	}}
	out := MetaTags(g)
	assert.Contains(t, out, `content="He said &quot;a &lt; b &amp; c&quot;"`)
}
