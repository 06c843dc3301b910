package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "index.md", "# home")
	writeContent(t, dir, "posts/a.md", "# a")
	writeContent(t, dir, "posts/deep/b.md", "# b")
	writeContent(t, dir, "data.toml", "key = 1")
	writeContent(t, dir, "styles.css", "body {}")

	files, err := Scan(dir, []string{"**/*.md", "**/*.toml"})
	require.NoError(t, err)

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"data.toml", "index.md", "posts/a.md", "posts/deep/b.md"}, names)
	assert.NotEmpty(t, files[1].Content)
	assert.Equal(t, "md", files[1].Extension)
}

func TestScanDeduplicatesOverlappingPatterns(t *testing.T) {
	dir := t.TempDir()
	writeContent(t, dir, "a.md", "x")

	files, err := Scan(dir, []string{"**/*.md", "*.md"})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestScanEmptyDir(t *testing.T) {
	files, err := Scan(t.TempDir(), []string{"**/*.md"})
	require.NoError(t, err)
	assert.Empty(t, files)
}
