package gen

import (
	"strings"

	"git.home.luguber.info/inful/sitedata/internal/records"
)

// MetaTags renders every tag group as one block of <meta> elements, groups
// in fixed order (primary, OpenGraph, Twitter, Apple, Microsoft) separated
// by blank lines. Tags with empty content are skipped; OpenGraph tags use
// the property attribute, every other group uses name.
func MetaTags(g *records.MetaTagGroups) string {
	var b strings.Builder
	writeMetaGroup(&b, g.Primary, "name")
	writeMetaGroup(&b, g.OpenGraph, "property")
	writeMetaGroup(&b, g.Twitter, "name")
	writeMetaGroup(&b, g.Apple, "name")
	writeMetaGroup(&b, g.Microsoft, "name")
	return b.String()
}

func writeMetaGroup(b *strings.Builder, tags []records.MetaTag, attr string) {
	wrote := false
	for _, tag := range tags {
		if tag.Content == "" {
			continue
		}
		if !wrote && b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(`<meta ` + attr + `="` + htmlEscape(tag.Name) + `" content="` + htmlEscape(tag.Content) + `">` + "\n")
		wrote = true
	}
}
