// Package styles holds the lipgloss styles of the terminal renderer.
//
// Styles are defined by name in the embedded styles.yaml, with colours
// given as light and dark pairs so output reads on either background.
package styles

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// ColorDef is an adaptive colour definition
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style definition
type StyleDef struct {
	Bold       bool   `yaml:"bold,omitempty"`
	Italic     bool   `yaml:"italic,omitempty"`
	Foreground string `yaml:"foreground,omitempty"`
	MarginLeft int    `yaml:"marginLeft,omitempty"`
}

// Config is the content of a styles file
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Names of the styles the renderers use
const (
	Header  = "Header"
	Success = "Success"
	Warning = "Warning"
	Error   = "Error"
	Muted   = "Muted"
	Path    = "Path"
	Detail  = "Detail"
)

//go:embed styles.yaml
var embeddedStyles []byte

var registry map[string]lipgloss.Style

func init() {
	r, err := Parse(embeddedStyles)
	if err != nil {
		r = make(map[string]lipgloss.Style)
	}
	registry = r
}

// Parse builds a style registry from YAML data. Styles naming an unknown
// colour keep the terminal default.
func Parse(data []byte) (map[string]lipgloss.Style, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse styles: %w", err)
	}

	colors := make(map[string]lipgloss.AdaptiveColor, len(config.Colors))
	for name, def := range config.Colors {
		colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}

	styles := make(map[string]lipgloss.Style, len(config.Styles))
	for name, def := range config.Styles {
		style := lipgloss.NewStyle().Bold(def.Bold).Italic(def.Italic)
		if c, ok := colors[def.Foreground]; ok {
			style = style.Foreground(c)
		}
		if def.MarginLeft > 0 {
			style = style.MarginLeft(def.MarginLeft)
		}
		styles[name] = style
	}
	return styles, nil
}

// Get returns the named style, or an unstyled one when it is not defined
func Get(name string) lipgloss.Style {
	if style, ok := registry[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Render renders s with the named style
func Render(name, s string) string {
	return Get(name).Render(s)
}
