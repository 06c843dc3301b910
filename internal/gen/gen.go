// Package gen holds one deterministic generator per artifact format. Every
// generator is a pure function from a validated record to the complete file
// body: same record, byte-identical output.
//
// Generators assume records that passed Validate and do not re-check field
// syntax. The only errors they return are structural contract violations
// (mismatched parallel sequences, malformed navigation depth) that cannot be
// expressed before the record reaches them.
package gen

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// xmlEscape escapes the five XML-significant characters.
func xmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(s)
}

// htmlEscape escapes the characters that matter inside markup fragments.
func htmlEscape(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

// titleCase renders a word sequence in display casing ("getting-started"
// stems become "Getting Started" via the caller splitting first).
func titleCase(s string) string {
	return titleCaser.String(s)
}

// writeXMLElement appends one indented element line: <tag>escaped</tag>.
func writeXMLElement(b *strings.Builder, indent, tag, content string) {
	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(tag)
	b.WriteString(">")
	b.WriteString(xmlEscape(content))
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteString(">\n")
}
