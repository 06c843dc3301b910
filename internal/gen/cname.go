package gen

import (
	"fmt"

	"git.home.luguber.info/inful/sitedata/internal/records"
)

// CNAME renders the GitHub Pages CNAME artifact: the apex domain and its www
// alias on separate lines, no trailing newline.
func CNAME(c *records.CNAME) string {
	return c.Domain + "\nwww." + c.Domain
}

// CNAMEZone renders the record as a DNS zone line aliasing the www
// subdomain to the apex, carrying the record's TTL.
func CNAMEZone(c *records.CNAME) string {
	return fmt.Sprintf("%s %d IN CNAME www.%s", c.Domain, c.TTL, c.Domain)
}
