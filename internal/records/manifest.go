package records

import (
	"go.uber.org/multierr"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/validate"
)

// Web app manifest defaults and length limits (per the PWA manifest schema
// and common install-banner constraints).
const (
	DefaultStartURL     = "."
	DefaultDisplay      = "standalone"
	DefaultBackground   = "#ffffff"
	DefaultOrientation  = "portrait-primary"
	DefaultScope        = "/"
	DefaultIconSizes    = "512x512"
	DefaultIconType     = "image/svg+xml"
	DefaultIconPurpose  = "any maskable"
	MaxManifestName     = 45
	MaxManifestShort    = 12
	MaxManifestDescLen  = 120
)

var displayModes = map[string]bool{
	"fullscreen": true,
	"standalone": true,
	"minimal-ui": true,
	"browser":    true,
}

// Icon is one entry of the manifest icons array.
type Icon struct {
	Src     string
	Sizes   string
	Type    string
	Purpose string
}

// Manifest is the PWA web-app manifest record.
type Manifest struct {
	Name            string
	ShortName       string
	Description     string
	StartURL        string
	Display         string
	BackgroundColor string
	ThemeColor      string
	Orientation     string
	Scope           string
	Icons           []Icon
}

// NewManifest builds a manifest from front matter. The required key is name;
// start_url defaults to ".". An "icon" key contributes one 512x512 SVG icon.
func NewManifest(meta Metadata, site *Site) (*Manifest, error) {
	name := validate.SanitizeText(meta.GetDefault("short_title", meta.Get("name")))
	if name == "" {
		name = validate.SanitizeText(siteName(site))
	}
	if name == "" {
		return nil, errors.MissingField("name")
	}

	m := &Manifest{
		Name:            name,
		ShortName:       validate.SanitizeText(meta.Get("short_name")),
		Description:     validate.SanitizeText(meta.Get("description")),
		StartURL:        meta.GetDefault("start_url", DefaultStartURL),
		Display:         meta.GetDefault("display", DefaultDisplay),
		BackgroundColor: meta.GetDefault("background_color", DefaultBackground),
		ThemeColor:      meta.Get("theme_color"),
		Orientation:     meta.GetDefault("orientation", DefaultOrientation),
		Scope:           meta.GetDefault("scope", DefaultScope),
	}
	if icon := meta.Get("icon"); icon != "" {
		m.Icons = append(m.Icons, Icon{
			Src:     icon,
			Sizes:   DefaultIconSizes,
			Type:    DefaultIconType,
			Purpose: DefaultIconPurpose,
		})
	}
	return m, nil
}

// AddIcon appends an icon entry.
func (m *Manifest) AddIcon(icon Icon) { m.Icons = append(m.Icons, icon) }

// Validate re-checks every manifest invariant.
func (m *Manifest) Validate() error {
	var errs error
	if m.Name == "" {
		errs = multierr.Append(errs, errors.MissingField("name"))
	} else if _, err := validate.TextLength("name", m.Name, MaxManifestName); err != nil {
		errs = multierr.Append(errs, err)
	}
	if m.ShortName != "" {
		if _, err := validate.TextLength("short_name", m.ShortName, MaxManifestShort); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if m.Description != "" {
		if _, err := validate.TextLength("description", m.Description, MaxManifestDescLen); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if m.StartURL == "" {
		errs = multierr.Append(errs, errors.MissingField("start_url"))
	}
	if !displayModes[m.Display] {
		errs = multierr.Append(errs, errors.InvalidValue("display", m.Display, "not a manifest display mode"))
	}
	if m.BackgroundColor != "" {
		if _, err := validate.Color("background_color", m.BackgroundColor); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if m.ThemeColor != "" {
		if _, err := validate.Color("theme_color", m.ThemeColor); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	for _, icon := range m.Icons {
		if icon.Src == "" {
			errs = multierr.Append(errs, errors.MissingField("icon.src"))
		}
		if _, err := validate.ImageSize("icon.sizes", icon.Sizes); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}
