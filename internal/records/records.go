// Package records defines one typed record per artifact kind, each with a
// factory that populates it from a front-matter metadata map and a Validate
// method that re-checks every invariant before a generator may consume it.
//
// Records are immutable after construction in practice: factories return
// fully-populated values, Validate mutates nothing, and generators only read.
// Validation is the single chokepoint; generators in internal/gen assume a
// record that passed Validate and do not re-check fields.
package records

import (
	"strings"
)

// Site carries the read-only site-wide defaults threaded into every factory
// call by the build driver. It is never mutated during a build pass.
type Site struct {
	BaseURL  string
	Language string
	Name     string
}

// Metadata is the string-keyed front-matter mapping produced by the
// front-matter parser. Unknown keys are ignored by factories.
type Metadata map[string]string

// Get returns the trimmed value for key, or the empty string.
func (m Metadata) Get(key string) string {
	return strings.TrimSpace(m[key])
}

// GetDefault returns the trimmed value for key, or def when absent or blank.
func (m Metadata) GetDefault(key, def string) string {
	if v := m.Get(key); v != "" {
		return v
	}
	return def
}

// List splits a comma-separated metadata value into trimmed non-empty parts.
func (m Metadata) List(key string) []string {
	raw := m.Get(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Has reports whether key is present with a non-blank value.
func (m Metadata) Has(key string) bool { return m.Get(key) != "" }
