package locales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		lang string
		key  string
		want string
	}{
		{"en", "featured_tags", "Featured Tags"},
		{"fr", "featured_tags", "Mots-clés en vedette"},
		{"de", "home", "Startseite"},
		{"en-US", "home", "Home"},
		{"pt", "home", "Home"},             // no catalog, English fallback
		{"fr", "no_such_key", "no_such_key"}, // unknown key falls back to itself
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.lang).Lookup(tt.key), "lang=%s key=%s", tt.lang, tt.key)
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("en"))
	assert.True(t, Supported("DE"))
	assert.False(t, Supported("pt"))
}
