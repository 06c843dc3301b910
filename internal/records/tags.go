package records

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/errors"
)

// Tags that never appear in the public index: service pages, auth surfaces,
// and scaffolding content.
var reservedTags = map[string]bool{
	"404": true, "offline": true, "thanks": true, "archive": true,
	"tag": true, "author": true, "category": true, "search": true,
	"login": true, "account": true, "profile": true, "unpublished": true,
	"private": true, "test": true, "navigation": true, "sidebar": true,
	"footer": true, "cart": true, "checkout": true, "order": true,
}

// TagPages holds the pages filed under one tag as parallel ordered sequences.
// Position i of every slice describes the same page.
type TagPages struct {
	Titles       []string
	Dates        []string
	Permalinks   []string
	Descriptions []string
}

// Len returns the number of pages, assuming a validated record.
func (t *TagPages) Len() int { return len(t.Titles) }

// TagIndex maps each sanitized tag to its page sequences. It accumulates
// across pages during a build pass and is validated once before generation.
type TagIndex struct {
	Tags map[string]*TagPages
}

// NewTagIndex returns an empty index.
func NewTagIndex() *TagIndex {
	return &TagIndex{Tags: make(map[string]*TagPages)}
}

// SanitizeTag strips everything but letters and digits so tags compare
// consistently regardless of punctuation in front matter.
func SanitizeTag(tag string) string {
	var b strings.Builder
	for _, c := range tag {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// CollectPage files one page under each of its front-matter tags. Reserved
// tags and tags that sanitize to nothing are skipped.
func (ti *TagIndex) CollectPage(meta Metadata, page *Page) {
	if page == nil {
		return
	}
	for _, raw := range meta.List("tags") {
		tag := SanitizeTag(raw)
		if tag == "" || reservedTags[strings.ToLower(tag)] {
			continue
		}
		pages := ti.Tags[tag]
		if pages == nil {
			pages = &TagPages{}
			ti.Tags[tag] = pages
		}
		date := ""
		if !page.Date.IsZero() {
			date = page.Date.Format("2006-01-02")
		}
		pages.Titles = append(pages.Titles, page.Title)
		pages.Dates = append(pages.Dates, date)
		pages.Permalinks = append(pages.Permalinks, page.Permalink)
		pages.Descriptions = append(pages.Descriptions, page.Description)
	}
}

// SortedTags returns the tag names in lexical order for deterministic output.
func (ti *TagIndex) SortedTags() []string {
	tags := make([]string, 0, len(ti.Tags))
	for tag := range ti.Tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// TotalPages counts page references across all tags.
func (ti *TagIndex) TotalPages() int {
	n := 0
	for _, pages := range ti.Tags {
		n += len(pages.Titles)
	}
	return n
}

// Validate enforces the parallel-sequence invariant: for every tag, all four
// sequences must have the same length.
func (ti *TagIndex) Validate() error {
	var errs error
	for tag, pages := range ti.Tags {
		n := len(pages.Titles)
		if len(pages.Dates) != n || len(pages.Permalinks) != n || len(pages.Descriptions) != n {
			errs = multierr.Append(errs, errors.Structural(
				fmt.Sprintf("tag %q has mismatched sequence lengths (titles=%d dates=%d permalinks=%d descriptions=%d)",
					tag, n, len(pages.Dates), len(pages.Permalinks), len(pages.Descriptions))))
		}
	}
	return errs
}
