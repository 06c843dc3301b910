package gen

import (
	"strings"
	"time"

	"git.home.luguber.info/inful/sitedata/internal/records"
)

// SecurityTxt renders an RFC 9116 security.txt. Fields appear in the
// canonical order: Contact lines first, then Expires, then the optional
// fields.
func SecurityTxt(s *records.SecurityPolicy) string {
	var b strings.Builder
	for _, c := range s.Contacts {
		b.WriteString("Contact: " + c + "\n")
	}
	b.WriteString("Expires: " + s.Expires.UTC().Format(time.RFC3339) + "\n")
	if s.Encryption != "" {
		b.WriteString("Encryption: " + s.Encryption + "\n")
	}
	if s.Canonical != "" {
		b.WriteString("Canonical: " + s.Canonical + "\n")
	}
	if s.Policy != "" {
		b.WriteString("Policy: " + s.Policy + "\n")
	}
	if s.Acknowledgments != "" {
		b.WriteString("Acknowledgments: " + s.Acknowledgments + "\n")
	}
	if len(s.PreferredLanguages) > 0 {
		b.WriteString("Preferred-Languages: " + strings.Join(s.PreferredLanguages, ", ") + "\n")
	}
	if s.Hiring != "" {
		b.WriteString("Hiring: " + s.Hiring + "\n")
	}
	return b.String()
}
