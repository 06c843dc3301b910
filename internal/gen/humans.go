package gen

import (
	"strings"

	"git.home.luguber.info/inful/sitedata/internal/records"
)

// Humans renders humans.txt in the conventional three-section layout:
// TEAM, THANKS, SITE. Empty fields are skipped; a section with no fields is
// omitted entirely.
func Humans(h *records.Humans) string {
	var b strings.Builder

	team := []struct{ label, value string }{
		{"Name", h.Author},
		{"Website", h.AuthorWebsite},
		{"Twitter", h.AuthorTwitter},
		{"Location", h.AuthorLocation},
	}
	writeHumansSection(&b, "TEAM", team)

	thanks := []struct{ label, value string }{
		{"Name", h.Thanks},
	}
	writeHumansSection(&b, "THANKS", thanks)

	site := []struct{ label, value string }{
		{"Last update", h.SiteLastUpdated},
		{"Standards", h.SiteStandards},
		{"Components", h.SiteComponents},
		{"Software", h.SiteSoftware},
	}
	writeHumansSection(&b, "SITE", site)

	return b.String()
}

func writeHumansSection(b *strings.Builder, name string, fields []struct{ label, value string }) {
	empty := true
	for _, f := range fields {
		if f.value != "" {
			empty = false
			break
		}
	}
	if empty {
		return
	}
	if b.Len() > 0 {
		b.WriteString("\n")
	}
	b.WriteString("/* " + name + " */\n")
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		b.WriteString("    " + f.label + ": " + f.value + "\n")
	}
}
