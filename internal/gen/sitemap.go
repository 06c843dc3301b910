package gen

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/sitedata/internal/records"
)

const sitemapHeader = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
`

// Sitemap renders a standard sitemap.xml body. Element order inside each
// <url> is fixed (loc, lastmod, changefreq, priority) to match the published
// schema; consumers validate structurally.
func Sitemap(s *records.Sitemap) string {
	var b strings.Builder
	b.WriteString(sitemapHeader)
	for i := range s.Entries {
		e := &s.Entries[i]
		b.WriteString("  <url>\n")
		writeXMLElement(&b, "    ", "loc", e.Loc)
		if !e.LastMod.IsZero() {
			writeXMLElement(&b, "    ", "lastmod", e.LastMod.UTC().Format(time.RFC3339))
		}
		if e.ChangeFreq != "" {
			writeXMLElement(&b, "    ", "changefreq", string(e.ChangeFreq))
		}
		if e.Priority != "" {
			writeXMLElement(&b, "    ", "priority", e.Priority)
		}
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>\n")
	return b.String()
}
