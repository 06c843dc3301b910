// Package validate holds the field-level predicate and normalization
// functions shared by every record kind. All length and format rules live
// here; records compose these, and generators never re-check them.
//
// Each validator takes a candidate string and returns the normalized value
// or a typed *errors.DataError. Absence of optional fields is handled by
// the record factories, not here: validators are only called on present
// values (or on defaults the factory chose).
package validate

import (
	"fmt"
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/text/language"

	"git.home.luguber.info/inful/sitedata/internal/errors"
)

var (
	imageSizeRe     = regexp.MustCompile(`^\d+x\d+$`)
	twitterHandleRe = regexp.MustCompile(`^@?[A-Za-z0-9_]{1,15}$`)
	rgbColorRe      = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
)

// URL verifies that value parses as an absolute http or https URL and
// contains no markup-significant characters.
func URL(field, value string) (string, error) {
	if strings.ContainsAny(value, `<>"`) {
		return "", errors.Security(field, value, "URL contains markup characters")
	}
	u, err := url.Parse(value)
	if err != nil {
		return "", errors.InvalidValue(field, value, "not a parseable URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.InvalidValue(field, value, "URL scheme must be http or https")
	}
	if u.Host == "" {
		return "", errors.InvalidValue(field, value, "URL has no host")
	}
	return u.String(), nil
}

// Date parses value as RFC 3339 and returns it in UTC. Two-digit years and
// locale-dependent layouts like "20/02/2024" are rejected.
func Date(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, errors.InvalidValue(field, value, "not an RFC 3339 date")
	}
	return t.UTC(), nil
}

// FlexibleDate accepts RFC 3339 or RFC 1123/822 ("Tue, 20 Feb 2024 15:15:15 GMT")
// input and normalizes to UTC. Feed metadata historically carried either form.
func FlexibleDate(field, value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, time.RFC1123, time.RFC1123Z, time.RFC822, time.RFC822Z} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.InvalidValue(field, value, "not an RFC 3339 or RFC 822 date")
}

// Color accepts 3- or 6-digit hex colors and rgb(r,g,b) with channels 0-255.
func Color(field, value string) (string, error) {
	if strings.HasPrefix(value, "#") {
		hex := value[1:]
		if len(hex) != 3 && len(hex) != 6 {
			return "", errors.InvalidValue(field, value, "hex color must have 3 or 6 digits")
		}
		for _, c := range hex {
			if !isHexDigit(c) {
				return "", errors.InvalidValue(field, value, "hex color has non-hex digit")
			}
		}
		return value, nil
	}
	if m := rgbColorRe.FindStringSubmatch(value); m != nil {
		for _, ch := range m[1:] {
			n, err := strconv.Atoi(ch)
			if err != nil || n > 255 {
				return "", errors.InvalidValue(field, value, "rgb channel out of range 0-255")
			}
		}
		return value, nil
	}
	return "", errors.InvalidValue(field, value, "not a hex or rgb() color")
}

// ImageSize matches icon size tokens of the form "512x512".
func ImageSize(field, value string) (string, error) {
	if !imageSizeRe.MatchString(value) {
		return "", errors.InvalidValue(field, value, "image size must match WxH")
	}
	return value, nil
}

// LanguageCode verifies a two-letter ISO 639-1 code, returning it lowercased.
func LanguageCode(field, value string) (string, error) {
	code := strings.ToLower(strings.TrimSpace(value))
	if len(code) != 2 {
		return "", errors.InvalidValue(field, value, "language code must be two letters")
	}
	base, err := language.ParseBase(code)
	if err != nil || base.String() != code {
		return "", errors.InvalidValue(field, value, "not an ISO 639-1 language code")
	}
	return code, nil
}

// TwitterHandle accepts an optional leading @ followed by 1-15 word characters,
// and normalizes to the @-prefixed form.
func TwitterHandle(field, value string) (string, error) {
	if !twitterHandleRe.MatchString(value) {
		return "", errors.InvalidValue(field, value, "not a valid Twitter handle")
	}
	return "@" + strings.TrimPrefix(value, "@"), nil
}

// TextLength verifies the UTF-8 character count of value is at most max.
// It never truncates: over-length input is the caller's error to surface.
func TextLength(field, value string, max int) (string, error) {
	if n := utf8.RuneCountInString(value); n > max {
		return "", errors.InvalidValue(field, value, fmt.Sprintf("text is %d characters, limit is %d", n, max))
	}
	return value, nil
}

// SanitizePath cleans a filesystem-relative name, rejecting absolute paths,
// parent-directory components, and embedded NUL bytes.
func SanitizePath(field, value string) (string, error) {
	if strings.ContainsRune(value, 0) {
		return "", errors.Security(field, value, "path contains NUL byte")
	}
	if value == "" {
		return "", errors.InvalidValue(field, value, "path is empty")
	}
	if strings.HasPrefix(value, "/") || strings.HasPrefix(value, "\\") {
		return "", errors.Security(field, value, "absolute paths are not allowed")
	}
	cleaned := path.Clean(strings.ReplaceAll(value, "\\", "/"))
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", errors.Security(field, value, "path escapes the output root")
	}
	for _, part := range strings.Split(cleaned, "/") {
		if part == ".." {
			return "", errors.Security(field, value, "path contains parent-directory component")
		}
	}
	return cleaned, nil
}

// Domain validates a DNS domain per RFC 1035, converting internationalized
// names to punycode first. The normalized ASCII domain is returned.
func Domain(field, value string) (string, error) {
	if value != strings.TrimSpace(value) {
		return "", errors.InvalidValue(field, value, "domain has leading or trailing whitespace")
	}
	if value == "" {
		return "", errors.MissingField(field)
	}
	ascii, err := idna.Lookup.ToASCII(value)
	if err != nil {
		return "", errors.InvalidValue(field, value, "not a valid internationalized domain")
	}
	if len(ascii) > 255 {
		return "", errors.InvalidValue(field, value, "domain exceeds 255 characters")
	}
	labels := strings.Split(ascii, ".")
	if len(labels) < 2 {
		return "", errors.InvalidValue(field, value, "domain must have at least two labels")
	}
	for _, label := range labels {
		if label == "" {
			return "", errors.InvalidValue(field, value, "domain has an empty label")
		}
		if len(label) > 63 {
			return "", errors.InvalidValue(field, value, "domain label exceeds 63 characters")
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return "", errors.InvalidValue(field, value, "domain label starts or ends with a hyphen")
		}
		for _, c := range label {
			if !isAlphanumericASCII(c) && c != '-' {
				return "", errors.InvalidValue(field, value, "domain label has invalid characters")
			}
		}
	}
	return ascii, nil
}

// SanitizeText strips control characters from value. Unlike TextLength it
// does not enforce a limit; it only removes bytes that must never reach output.
func SanitizeText(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, c := range value {
		if c == '\ufeff' || (isControl(c) && c != '\n' && c != '\t') {
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func isHexDigit(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isAlphanumericASCII(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isControl(c rune) bool {
	return c < 0x20 || (c >= 0x7f && c < 0xa0)
}
