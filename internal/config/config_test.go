package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitedata.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadLayersFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
site:
  base_url: https://example.com
  name: Example
content:
  dir: docs
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cfg.Site.BaseURL)
	assert.Equal(t, "docs", cfg.Content.Dir)
	// Untouched fields keep their defaults.
	assert.Equal(t, "en", cfg.Site.Language)
	assert.Equal(t, "public", cfg.Output.Dir)
	assert.Equal(t, 300, cfg.Watch.DebounceMillis)
	assert.Equal(t, 20, cfg.Feed.MaxItems)
}

func TestLoadRejectsBadBaseURL(t *testing.T) {
	path := writeConfig(t, `
site:
  base_url: not-a-url
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site.base_url")
}

func TestLoadRejectsBadLanguage(t *testing.T) {
	path := writeConfig(t, `
site:
  base_url: https://example.com
  language: english
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "site.language")
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	t.Setenv("SITEDATA_BASE_URL", "https://override.example.com")
	t.Setenv("SITEDATA_LOG_LEVEL", "debug")

	path := writeConfig(t, `
site:
  base_url: https://example.com
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://override.example.com", cfg.Site.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestEnabledDefaultsOn(t *testing.T) {
	off := false
	on := true
	assert.True(t, Enabled(nil))
	assert.True(t, Enabled(&on))
	assert.False(t, Enabled(&off))
}

func TestInitRefusesOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitedata.yaml")
	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", cfg.Site.BaseURL)
}
