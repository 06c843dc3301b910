package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: Hello\n---\nbody text\n"))
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "title: Hello\n", string(fm))
	assert.Equal(t, "body text\n", string(body))
}

func TestSplitNoFrontmatter(t *testing.T) {
	fm, body, had, err := Split([]byte("# Heading\n"))
	require.NoError(t, err)
	assert.False(t, had)
	assert.Nil(t, fm)
	assert.Equal(t, "# Heading\n", string(body))
}

func TestSplitEmptyFrontmatter(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\nbody\n"))
	require.NoError(t, err)
	assert.True(t, had)
	assert.Empty(t, fm)
	assert.Equal(t, "body\n", string(body))
}

func TestSplitCRLF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\ntitle: Hello\r\n---\r\nbody\r\n"))
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "title: Hello\r\n", string(fm))
	assert.Equal(t, "body\r\n", string(body))
}

func TestSplitMissingClose(t *testing.T) {
	_, _, _, err := Split([]byte("---\ntitle: Hello\nno close here\n"))
	assert.ErrorIs(t, err, ErrMissingClosingDelimiter)
}

func TestSplitCloseAtEOF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: Hello\n---"))
	require.NoError(t, err)
	assert.True(t, had)
	assert.Equal(t, "title: Hello\n", string(fm))
	assert.Empty(t, body)
}

func TestParseAndFlatten(t *testing.T) {
	fields, err := Parse([]byte(`
title: Hello World
draft: false
weight: 3
tags:
  - go
  - web
og:
  type: article
  locale: en_US
`))
	require.NoError(t, err)

	meta := Flatten(fields)
	assert.Equal(t, "Hello World", meta.Get("title"))
	assert.Equal(t, "false", meta.Get("draft"))
	assert.Equal(t, "3", meta.Get("weight"))
	assert.Equal(t, "go, web", meta.Get("tags"))
	assert.Equal(t, []string{"go", "web"}, meta.List("tags"))
	assert.Equal(t, "article", meta.Get("og_type"))
	assert.Equal(t, "en_US", meta.Get("og_locale"))
}

func TestParseEmpty(t *testing.T) {
	fields, err := Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestFlattenDates(t *testing.T) {
	// yaml.v3 leaves quoted values as strings; factories parse them.
	fields, err := Parse([]byte(`date: "2024-02-20T12:00:00Z"`))
	require.NoError(t, err)
	meta := Flatten(fields)
	assert.Equal(t, "2024-02-20T12:00:00Z", meta.Get("date"))
}
