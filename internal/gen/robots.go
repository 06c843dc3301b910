package gen

import (
	"strings"

	"git.home.luguber.info/inful/sitedata/internal/records"
)

// Robots renders robots.txt. Each group emits its User-agent line followed by
// Allow then Disallow rules; the sitemap link goes last, separated by a blank
// line when groups precede it.
func Robots(r *records.Robots) string {
	var b strings.Builder
	for i, g := range r.Groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("User-agent: " + g.UserAgent + "\n")
		for _, rule := range g.Allow {
			b.WriteString("Allow: " + rule + "\n")
		}
		for _, rule := range g.Disallow {
			b.WriteString("Disallow: " + rule + "\n")
		}
	}
	if r.Sitemap != "" {
		b.WriteString("Sitemap: " + r.Sitemap + "\n")
	}
	return b.String()
}
