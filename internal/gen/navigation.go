package gen

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/records"
)

// Stems that never appear in generated navigation: the root page, error and
// utility pages, and legal boilerplate.
var excludedNavStems = map[string]bool{
	"index":   true,
	"404":     true,
	"privacy": true,
	"terms":   true,
	"offline": true,
}

// Extensions of content documents that contribute navigation entries.
var navExtensions = map[string]bool{
	"md":   true,
	"toml": true,
	"json": true,
}

// Navigation renders the nested menu markup for an ordered item sequence.
// A depth increase of one opens a nested <ul>; decreases close the open
// lists. Invalid depth transitions return a structural error.
func Navigation(n *records.Navigation) (string, error) {
	if len(n.Items) == 0 {
		return "<nav>\n  <ul>\n  </ul>\n</nav>\n", nil
	}
	if n.Items[0].Depth != 0 {
		return "", errors.Structural("navigation must start at depth 0")
	}

	var b strings.Builder
	b.WriteString("<nav>\n  <ul>\n")
	prev := 0
	for _, item := range n.Items {
		switch {
		case item.Depth == prev+1:
			// Open a child list under the previous item.
			b.WriteString(navIndent(prev) + "<ul>\n")
		case item.Depth > prev+1:
			return "", errors.Structural("navigation depth jumps by more than one level")
		case item.Depth < prev:
			for d := prev; d > item.Depth; d-- {
				b.WriteString(navIndent(d-1) + "</ul>\n")
			}
		}
		b.WriteString(navIndent(item.Depth) + `<li><a href="` + htmlEscape(item.Permalink) + `">` + htmlEscape(item.Title) + "</a></li>\n")
		prev = item.Depth
	}
	for d := prev; d > 0; d-- {
		b.WriteString(navIndent(d-1) + "</ul>\n")
	}
	b.WriteString("  </ul>\n</nav>\n")
	return b.String(), nil
}

// NavigationFromFiles derives a flat alphabetical menu from content
// documents. Excluded stems and unsupported extensions are skipped; each
// entry links to /<stem>/index.html with a title-cased display name.
func NavigationFromFiles(files []*records.File) string {
	var stems []string
	for _, f := range files {
		if !navExtensions[f.Extension] {
			continue
		}
		stem := f.Stem()
		if excludedNavStems[stem] {
			continue
		}
		stems = append(stems, stem)
	}
	sort.Strings(stems)

	var b strings.Builder
	b.WriteString("<nav>\n  <ul>\n")
	for _, stem := range stems {
		b.WriteString(`    <li><a href="/` + stem + `/index.html">` + htmlEscape(navTitle(stem)) + "</a></li>\n")
	}
	b.WriteString("  </ul>\n</nav>\n")
	return b.String()
}

// navTitle turns a file stem into a display name: separators become spaces
// and each word is title-cased.
func navTitle(stem string) string {
	name := strings.NewReplacer("-", " ", "_", " ").Replace(stem)
	return titleCase(name)
}

func navIndent(depth int) string {
	return strings.Repeat("  ", depth+2)
}
