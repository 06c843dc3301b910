package gen

import (
	"fmt"
	"strings"

	"git.home.luguber.info/inful/sitedata/internal/records"
)

// TagIndex renders the accessible tag-index markup: a wrapper div, the
// Featured Tags heading with the total page count, then one section per tag
// (lexical order) listing its pages in collection order. A mismatched
// parallel sequence is a contract breach and returns a structural error.
func TagIndex(ti *records.TagIndex) (string, error) {
	return TagIndexWithHeading(ti, "Featured Tags")
}

// TagIndexWithHeading is TagIndex with a localized heading.
func TagIndexWithHeading(ti *records.TagIndex, heading string) (string, error) {
	if err := ti.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(`<div class="tags-wrapper">` + "\n")
	fmt.Fprintf(&b, "  <h2>%s (%d)</h2>\n", htmlEscape(heading), ti.TotalPages())
	for _, tag := range ti.SortedTags() {
		pages := ti.Tags[tag]
		fmt.Fprintf(&b, `  <section class="tag-section" aria-labelledby="tag-%s">`+"\n", htmlEscape(tag))
		fmt.Fprintf(&b, `    <h3 id="tag-%s">%s (%d)</h3>`+"\n", htmlEscape(tag), htmlEscape(tag), pages.Len())
		b.WriteString(`    <ul role="list">` + "\n")
		for i := 0; i < pages.Len(); i++ {
			b.WriteString("      <li>\n")
			fmt.Fprintf(&b, `        <a href="%s">%s</a>`+"\n", htmlEscape(pages.Permalinks[i]), htmlEscape(pages.Titles[i]))
			if pages.Dates[i] != "" {
				fmt.Fprintf(&b, `        <time datetime="%s">%s</time>`+"\n", pages.Dates[i], pages.Dates[i])
			}
			if pages.Descriptions[i] != "" {
				fmt.Fprintf(&b, "        <p>%s</p>\n", htmlEscape(pages.Descriptions[i]))
			}
			b.WriteString("      </li>\n")
		}
		b.WriteString("    </ul>\n")
		b.WriteString("  </section>\n")
	}
	b.WriteString("</div>\n")
	return b.String(), nil
}
