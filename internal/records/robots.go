package records

import (
	"strings"

	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// RobotsGroup is one User-agent block of robots.txt.
type RobotsGroup struct {
	UserAgent string
	Allow     []string
	Disallow  []string
}

// Robots is the robots.txt record: directive groups plus an optional
// sitemap link.
type Robots struct {
	Groups  []RobotsGroup
	Sitemap string
}

// NewRobots builds a robots record from front matter. All keys are optional;
// with none present the record yields the default wildcard group with the
// site sitemap link.
func NewRobots(meta Metadata, site *Site) (*Robots, error) {
	group := RobotsGroup{
		UserAgent: meta.GetDefault("robots_agent", "*"),
		Allow:     meta.List("robots_allow"),
		Disallow:  meta.List("robots_disallow"),
	}
	sitemap := meta.Get("robots_sitemap")
	if sitemap == "" {
		base := resolvePermalink(meta.Get("permalink"), site)
		if base == "" && site != nil {
			base = site.BaseURL
		}
		if base != "" {
			sitemap = strings.TrimRight(base, "/") + "/sitemap.xml"
		}
	}
	return &Robots{Groups: []RobotsGroup{group}, Sitemap: sitemap}, nil
}

// Validate re-checks rule syntax: every allow/disallow path must start with
// "/" or be the bare wildcard, and the sitemap link must be an absolute URL.
func (r *Robots) Validate() error {
	var errs error
	if len(r.Groups) == 0 {
		errs = multierr.Append(errs, errors.Structural("robots record has no directive groups"))
	}
	for _, g := range r.Groups {
		if g.UserAgent == "" {
			errs = multierr.Append(errs, errors.MissingField("robots_agent"))
		}
		for _, rule := range g.Allow {
			if err := validRule("robots_allow", rule); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		for _, rule := range g.Disallow {
			if err := validRule("robots_disallow", rule); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
	}
	if r.Sitemap != "" {
		if _, err := validate.URL("robots_sitemap", r.Sitemap); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func validRule(field, rule string) error {
	if rule == "*" {
		return nil
	}
	if !strings.HasPrefix(rule, "/") {
		return errors.InvalidValue(field, rule, "rule path must start with /")
	}
	if strings.ContainsAny(rule, " \t") {
		return errors.InvalidValue(field, rule, "rule path contains whitespace")
	}
	return nil
}
