// Package frontmatter splits YAML frontmatter from document bodies and
// flattens the parsed fields into the string-keyed metadata the record
// factories consume.
package frontmatter

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitedata/internal/records"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Split separates `---` delimited YAML frontmatter from the body. If the
// document does not start with a delimiter, had is false and body is the
// full input. Both LF and CRLF documents are handled.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	closeLine := []byte("---" + nl)
	if bytes.HasPrefix(content[start:], closeLine) {
		return []byte{}, content[start+len(closeLine):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing "---" at EOF without a trailing newline still closes
		// the block.
		tail := []byte(nl + "---")
		if bytes.HasSuffix(content[start:], tail) {
			end := len(content) - len(tail) + len(nl)
			return content[start:end], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	bodyStart := start + idx + len(closeSeq)
	return content[start:end], content[bodyStart:], true, nil
}

// Parse parses raw YAML frontmatter (without delimiters) into a field map.
func Parse(frontmatter []byte) (map[string]any, error) {
	if len(frontmatter) == 0 {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal(frontmatter, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Flatten converts parsed YAML fields into the flat string-keyed metadata
// map the record factories consume. Lists join with ", " (the shape
// Metadata.List splits back apart), nested maps flatten with underscore-
// joined keys, and times render as RFC 3339.
func Flatten(fields map[string]any) records.Metadata {
	meta := make(records.Metadata, len(fields))
	flattenInto(meta, "", fields)
	return meta
}

func flattenInto(meta records.Metadata, prefix string, fields map[string]any) {
	for k, v := range fields {
		key := k
		if prefix != "" {
			key = prefix + "_" + k
		}
		switch val := v.(type) {
		case map[string]any:
			flattenInto(meta, key, val)
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, stringify(item))
			}
			meta[key] = strings.Join(parts, ", ")
		default:
			meta[key] = stringify(v)
		}
	}
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(val)
	}
}

func detectNewline(content []byte) string {
	for i := 0; i+1 < len(content); i++ {
		if content[i] == '\r' && content[i+1] == '\n' {
			return "\r\n"
		}
		if content[i] == '\n' {
			return "\n"
		}
	}
	return "\n"
}
