package gen

import (
	"strconv"
	"strings"

	"git.home.luguber.info/inful/sitedata/internal/records"
)

// rssTimeFormat is the RFC 822 date shape feed readers expect.
const rssTimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// Feed renders an RSS 2.0 document. Channel elements come first in
// conventional order; items follow in exactly the order the record carries
// them (callers supply items pre-ordered, typically newest-first).
func Feed(f *records.Feed) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">` + "\n")
	b.WriteString("  <channel>\n")
	writeXMLElement(&b, "    ", "title", f.Title)
	writeXMLElement(&b, "    ", "link", f.Link)
	writeXMLElement(&b, "    ", "description", f.Description)
	if f.Language != "" {
		writeXMLElement(&b, "    ", "language", f.Language)
	}
	if f.Copyright != "" {
		writeXMLElement(&b, "    ", "copyright", f.Copyright)
	}
	if f.ManagingEditor != "" {
		writeXMLElement(&b, "    ", "managingEditor", f.ManagingEditor)
	}
	if f.Webmaster != "" {
		writeXMLElement(&b, "    ", "webMaster", f.Webmaster)
	}
	if !f.PubDate.IsZero() {
		writeXMLElement(&b, "    ", "pubDate", f.PubDate.UTC().Format(rssTimeFormat))
	}
	if !f.LastBuildDate.IsZero() {
		writeXMLElement(&b, "    ", "lastBuildDate", f.LastBuildDate.UTC().Format(rssTimeFormat))
	}
	if f.Category != "" {
		writeXMLElement(&b, "    ", "category", f.Category)
	}
	if f.Generator != "" {
		writeXMLElement(&b, "    ", "generator", f.Generator)
	}
	if f.Docs != "" {
		writeXMLElement(&b, "    ", "docs", f.Docs)
	}
	if f.TTL > 0 {
		writeXMLElement(&b, "    ", "ttl", strconv.Itoa(f.TTL))
	}
	if f.AtomLink != "" {
		b.WriteString(`    <atom:link href="` + xmlEscape(f.AtomLink) + `" rel="self" type="application/rss+xml"/>` + "\n")
	}
	for i := range f.Items {
		writeFeedItem(&b, &f.Items[i])
	}
	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")
	return b.String()
}

func writeFeedItem(b *strings.Builder, item *records.FeedItem) {
	b.WriteString("    <item>\n")
	if item.Title != "" {
		writeXMLElement(b, "      ", "title", item.Title)
	}
	if item.Link != "" {
		writeXMLElement(b, "      ", "link", item.Link)
	}
	if item.Description != "" {
		writeXMLElement(b, "      ", "description", item.Description)
	}
	if item.Author != "" {
		writeXMLElement(b, "      ", "author", item.Author)
	}
	if item.GUID != "" {
		writeXMLElement(b, "      ", "guid", item.GUID)
	}
	if !item.PubDate.IsZero() {
		writeXMLElement(b, "      ", "pubDate", item.PubDate.UTC().Format(rssTimeFormat))
	}
	b.WriteString("    </item>\n")
}
