// Package markdown renders content bodies and derives the plain-text
// excerpts used where a page has no explicit description.
package markdown

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Render converts a Markdown body (frontmatter already removed) to HTML.
func Render(body []byte) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert(body, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Excerpt extracts the leading plain text of a Markdown body, capped at
// maxRunes. Headings are skipped so the excerpt starts with running text;
// block boundaries collapse to single spaces.
func Excerpt(body []byte, maxRunes int) string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var b strings.Builder
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if _, ok := n.(*gmast.Heading); ok {
			return gmast.WalkSkipChildren, nil
		}
		if t, ok := n.(*gmast.Text); ok {
			if b.Len() > 0 && endsWithoutSpace(b.String()) {
				b.WriteByte(' ')
			}
			b.Write(t.Segment.Value(body))
		}
		if utf8.RuneCountInString(b.String()) >= maxRunes {
			return gmast.WalkStop, nil
		}
		return gmast.WalkContinue, nil
	})

	out := strings.Join(strings.Fields(b.String()), " ")
	if utf8.RuneCountInString(out) <= maxRunes {
		return out
	}
	runes := []rune(out)
	return strings.TrimRight(string(runes[:maxRunes]), " ")
}

// ExtractLinks collects link and image destinations from a Markdown body.
// The build uses it to seed navigation checks on generated permalinks.
func ExtractLinks(body []byte) []string {
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(body))

	var links []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, string(node.URL(body)))
		case *gmast.Image:
			links = append(links, string(node.Destination))
		case *gmast.Link:
			links = append(links, string(node.Destination))
		}
		return gmast.WalkContinue, nil
	})
	return links
}

func endsWithoutSpace(s string) bool {
	return s != "" && !strings.HasSuffix(s, " ")
}
