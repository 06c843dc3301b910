package gen

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/sitedata/internal/records"
)

const newsSitemapHeader = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"
        xmlns:news="http://www.google.com/schemas/sitemap-news/0.9"
        xmlns:image="http://www.google.com/schemas/sitemap-image/1.1">
`

// NewsSitemap renders a Google News sitemap body. Element order inside
// <news:news> follows the schema: publication (name, language), then
// publication_date, title, and the optional keywords/genres.
func NewsSitemap(n *records.NewsSitemap) string {
	var b strings.Builder
	b.WriteString(newsSitemapHeader)
	for i := range n.Entries {
		e := &n.Entries[i]
		b.WriteString("  <url>\n")
		writeXMLElement(&b, "    ", "loc", e.Loc)
		b.WriteString("    <news:news>\n")
		b.WriteString("      <news:publication>\n")
		writeXMLElement(&b, "        ", "news:name", e.PublicationName)
		writeXMLElement(&b, "        ", "news:language", e.Language)
		b.WriteString("      </news:publication>\n")
		writeXMLElement(&b, "      ", "news:publication_date", e.PublicationDate.UTC().Format(time.RFC3339))
		writeXMLElement(&b, "      ", "news:title", e.Title)
		if len(e.Keywords) > 0 {
			writeXMLElement(&b, "      ", "news:keywords", strings.Join(e.Keywords, ", "))
		}
		if len(e.Genres) > 0 {
			writeXMLElement(&b, "      ", "news:genres", strings.Join(e.Genres, ", "))
		}
		b.WriteString("    </news:news>\n")
		if e.ImageLoc != "" {
			b.WriteString("    <image:image>\n")
			writeXMLElement(&b, "      ", "image:loc", e.ImageLoc)
			b.WriteString("    </image:image>\n")
		}
		b.WriteString("  </url>\n")
	}
	b.WriteString("</urlset>\n")
	return b.String()
}
