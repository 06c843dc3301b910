package records

import (
	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// NavItem is one menu entry. Depth 0 is top level; a depth increase of one
// opens a child list under the previous item.
type NavItem struct {
	Title     string
	Permalink string
	Depth     int
}

// Navigation is the ordered flat sequence the nested-menu generator consumes.
type Navigation struct {
	Items []NavItem
}

// Add appends an entry.
func (n *Navigation) Add(item NavItem) { n.Items = append(n.Items, item) }

// Validate checks titles, permalinks, and the depth-transition invariant:
// the first item must sit at depth 0 and depth may only grow by one step at
// a time (any decrease is fine).
func (n *Navigation) Validate() error {
	var errs error
	prev := 0
	for i, item := range n.Items {
		if item.Title == "" {
			errs = multierr.Append(errs, errors.MissingField("nav.title"))
		}
		if item.Permalink == "" {
			errs = multierr.Append(errs, errors.MissingField("nav.permalink"))
		}
		if item.Depth < 0 {
			errs = multierr.Append(errs, errors.Structural("navigation depth is negative"))
			continue
		}
		if i == 0 {
			if item.Depth != 0 {
				errs = multierr.Append(errs, errors.Structural("navigation must start at depth 0"))
			}
		} else if item.Depth > prev+1 {
			errs = multierr.Append(errs, errors.Structural("navigation depth jumps by more than one level"))
		}
		if item.Title != validate.SanitizeText(item.Title) {
			errs = multierr.Append(errs, errors.Security("nav.title", item.Title, "navigation title has control characters"))
		}
		prev = item.Depth
	}
	return errs
}
