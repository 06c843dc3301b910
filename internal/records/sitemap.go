package records

import (
	"strconv"
	"time"

	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// ChangeFreq enumerates the sitemap protocol change-frequency hints.
type ChangeFreq string

const (
	ChangeFreqAlways  ChangeFreq = "always"
	ChangeFreqHourly  ChangeFreq = "hourly"
	ChangeFreqDaily   ChangeFreq = "daily"
	ChangeFreqWeekly  ChangeFreq = "weekly"
	ChangeFreqMonthly ChangeFreq = "monthly"
	ChangeFreqYearly  ChangeFreq = "yearly"
	ChangeFreqNever   ChangeFreq = "never"
)

func (c ChangeFreq) valid() bool {
	switch c {
	case ChangeFreqAlways, ChangeFreqHourly, ChangeFreqDaily, ChangeFreqWeekly,
		ChangeFreqMonthly, ChangeFreqYearly, ChangeFreqNever:
		return true
	}
	return false
}

// SitemapEntry is one <url> element of a standard sitemap.
type SitemapEntry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq ChangeFreq
	// Priority is kept as the raw metadata string so "unset" and "0.5" stay
	// distinguishable; empty means the element is omitted.
	Priority string
}

// Sitemap aggregates the entries collected for every page of a build pass.
type Sitemap struct {
	Entries []SitemapEntry
}

// NewSitemapEntry builds one sitemap entry from page front matter.
// The required key is permalink (resolved against the site base URL).
func NewSitemapEntry(meta Metadata, site *Site) (*SitemapEntry, error) {
	loc := resolvePermalink(meta.Get("permalink"), site)
	if loc == "" {
		return nil, errors.MissingField("permalink")
	}
	e := &SitemapEntry{
		Loc:        loc,
		ChangeFreq: ChangeFreq(meta.GetDefault("changefreq", string(ChangeFreqWeekly))),
		Priority:   meta.Get("priority"),
	}
	if v := meta.GetDefault("last_updated", meta.Get("date")); v != "" {
		t, err := validate.FlexibleDate("last_updated", v)
		if err != nil {
			return nil, err
		}
		e.LastMod = t
	}
	return e, nil
}

// Validate re-checks one entry's invariants.
func (e *SitemapEntry) Validate() error {
	var errs error
	if _, err := validate.URL("loc", e.Loc); err != nil {
		errs = multierr.Append(errs, err)
	}
	if e.ChangeFreq != "" && !e.ChangeFreq.valid() {
		errs = multierr.Append(errs, errors.InvalidValue("changefreq", string(e.ChangeFreq), "not a sitemap change frequency"))
	}
	if e.Priority != "" {
		p, err := strconv.ParseFloat(e.Priority, 64)
		if err != nil || p < 0 || p > 1 {
			errs = multierr.Append(errs, errors.InvalidValue("priority", e.Priority, "priority must be a decimal in 0.0-1.0"))
		}
	}
	return errs
}

// Add appends an entry to the sitemap.
func (s *Sitemap) Add(e SitemapEntry) { s.Entries = append(s.Entries, e) }

// Validate checks every entry; the first failing entry aborts so the driver
// can report which page produced it.
func (s *Sitemap) Validate() error {
	for i := range s.Entries {
		if err := s.Entries[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
