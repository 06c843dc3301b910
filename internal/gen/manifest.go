package gen

import (
	"encoding/json"

	"git.home.luguber.info/inful/sitedata/internal/errors"
	"git.home.luguber.info/inful/sitedata/internal/records"
)

type manifestIcon struct {
	Src     string `json:"src"`
	Sizes   string `json:"sizes"`
	Type    string `json:"type"`
	Purpose string `json:"purpose,omitempty"`
}

type manifestDoc struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name,omitempty"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	Display         string         `json:"display"`
	BackgroundColor string         `json:"background_color,omitempty"`
	ThemeColor      string         `json:"theme_color,omitempty"`
	Orientation     string         `json:"orientation,omitempty"`
	Scope           string         `json:"scope,omitempty"`
	Icons           []manifestIcon `json:"icons,omitempty"`
}

// Manifest renders the web-app manifest as indented JSON with a trailing
// newline. The icons key is omitted entirely when the record carries none.
func Manifest(m *records.Manifest) (string, error) {
	doc := manifestDoc{
		Name:            m.Name,
		ShortName:       m.ShortName,
		Description:     m.Description,
		StartURL:        m.StartURL,
		Display:         m.Display,
		BackgroundColor: m.BackgroundColor,
		ThemeColor:      m.ThemeColor,
		Orientation:     m.Orientation,
		Scope:           m.Scope,
	}
	for _, icon := range m.Icons {
		doc.Icons = append(doc.Icons, manifestIcon{
			Src:     icon.Src,
			Sizes:   icon.Sizes,
			Type:    icon.Type,
			Purpose: icon.Purpose,
		})
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", errors.Structural("manifest not marshalable: " + err.Error())
	}
	return string(out) + "\n", nil
}
