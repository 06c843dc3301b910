// Package config loads the site configuration: defaults, then the YAML
// config file, then environment overrides. Values are validated through the
// same validators the record factories use, so a bad base URL or language
// code fails at startup rather than mid-build.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// Config is the full site configuration.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Output    OutputConfig    `yaml:"output"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Feed      FeedConfig      `yaml:"feed"`
	State     StateConfig     `yaml:"state"`
	Watch     WatchConfig     `yaml:"watch"`
	Events    EventsConfig    `yaml:"events"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// SiteConfig carries the site identity every artifact derives from.
type SiteConfig struct {
	BaseURL  string `yaml:"base_url"`
	Name     string `yaml:"name"`
	Language string `yaml:"language"`
}

// ContentConfig locates and filters content documents.
type ContentConfig struct {
	Dir      string   `yaml:"dir"`
	Patterns []string `yaml:"patterns,omitempty"`
}

// OutputConfig controls where artifacts land.
type OutputConfig struct {
	Dir   string `yaml:"dir"`
	Clean bool   `yaml:"clean"`
}

// ArtifactsConfig toggles individual artifact generators. Every artifact is
// on by default; the YAML only needs the ones turned off.
type ArtifactsConfig struct {
	Sitemap     *bool `yaml:"sitemap,omitempty"`
	NewsSitemap *bool `yaml:"news_sitemap,omitempty"`
	RSS         *bool `yaml:"rss,omitempty"`
	Manifest    *bool `yaml:"manifest,omitempty"`
	SecurityTxt *bool `yaml:"security_txt,omitempty"`
	Robots      *bool `yaml:"robots,omitempty"`
	Humans      *bool `yaml:"humans,omitempty"`
	CNAME       *bool `yaml:"cname,omitempty"`
	TagIndex    *bool `yaml:"tag_index,omitempty"`
	Navigation  *bool `yaml:"navigation,omitempty"`
	MetaTags    *bool `yaml:"meta_tags,omitempty"`
}

// FeedConfig carries channel-level RSS settings not tied to any one page.
type FeedConfig struct {
	Title       string `yaml:"title,omitempty"`
	Description string `yaml:"description,omitempty"`
	Copyright   string `yaml:"copyright,omitempty"`
	TTL         int    `yaml:"ttl,omitempty"`
	MaxItems    int    `yaml:"max_items,omitempty"`
}

// StateConfig locates the incremental-build database.
type StateConfig struct {
	Path string `yaml:"path"`
}

// WatchConfig tunes watch mode: rebuild debounce plus an optional cron
// schedule for full rebuilds.
type WatchConfig struct {
	DebounceMillis int    `yaml:"debounce_ms"`
	Schedule       string `yaml:"schedule,omitempty"`
}

// EventsConfig configures the optional NATS build-completion announcements.
type EventsConfig struct {
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// MetricsConfig configures the optional Prometheus endpoint.
type MetricsConfig struct {
	Listen string `yaml:"listen,omitempty"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Enabled resolves an artifact toggle against the on-by-default rule.
func Enabled(t *bool) bool { return t == nil || *t }

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Site:    SiteConfig{Language: "en"},
		Content: ContentConfig{Dir: "content", Patterns: []string{"**/*.md", "**/*.toml", "**/*.json"}},
		Output:  OutputConfig{Dir: "public"},
		Feed:    FeedConfig{TTL: 60, MaxItems: 20},
		State:   StateConfig{Path: ".sitedata/state.db"},
		Watch:   WatchConfig{DebounceMillis: 300},
		Events:  EventsConfig{Subject: "sitedata.build.completed"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

// Load reads the YAML config at path, layered over defaults, then applies
// environment overrides. A .env file in the working directory is loaded
// first without overriding the process environment.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays SITEDATA_* environment variables over the loaded file.
func applyEnv(cfg *Config) {
	for key, target := range map[string]*string{
		"SITEDATA_BASE_URL":       &cfg.Site.BaseURL,
		"SITEDATA_SITE_NAME":      &cfg.Site.Name,
		"SITEDATA_LANGUAGE":       &cfg.Site.Language,
		"SITEDATA_CONTENT_DIR":    &cfg.Content.Dir,
		"SITEDATA_OUTPUT_DIR":     &cfg.Output.Dir,
		"SITEDATA_STATE_PATH":     &cfg.State.Path,
		"SITEDATA_NATS_URL":       &cfg.Events.URL,
		"SITEDATA_NATS_SUBJECT":   &cfg.Events.Subject,
		"SITEDATA_METRICS_LISTEN": &cfg.Metrics.Listen,
		"SITEDATA_LOG_LEVEL":      &cfg.Logging.Level,
	} {
		if v := os.Getenv(key); v != "" {
			*target = v
		}
	}
}

// Validate checks the fields the rest of the system depends on.
func (c *Config) Validate() error {
	var errs error
	if c.Site.BaseURL != "" {
		if _, err := validate.URL("site.base_url", c.Site.BaseURL); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if c.Site.Language != "" {
		if _, err := validate.LanguageCode("site.language", c.Site.Language); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if c.Content.Dir == "" {
		errs = multierr.Append(errs, fmt.Errorf("content.dir must not be empty"))
	}
	if c.Output.Dir == "" {
		errs = multierr.Append(errs, fmt.Errorf("output.dir must not be empty"))
	}
	if c.Watch.DebounceMillis < 0 {
		errs = multierr.Append(errs, fmt.Errorf("watch.debounce_ms must not be negative"))
	}
	if c.Feed.MaxItems < 0 {
		errs = multierr.Append(errs, fmt.Errorf("feed.max_items must not be negative"))
	}
	return errs
}
