// Package analysis extracts brand colors, root custom properties and font
// families from a web page so themes can be generated to match it.
package analysis

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Analysis is the page summary consumed by the variant generator.
type Analysis struct {
	URL       string    `json:"url" yaml:"url"`
	Colors    Colors    `json:"colors" yaml:"colors"`
	Fonts     Fonts     `json:"fonts" yaml:"fonts"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	// Fallback is set when the page could not be analysed and defaults were used.
	Fallback bool `json:"fallback" yaml:"fallback"`
}

type Colors struct {
	Backgrounds       []string          `json:"backgrounds" yaml:"backgrounds"`
	TextColors        []string          `json:"textColors" yaml:"textColors"`
	AccentColors      []string          `json:"accentColors" yaml:"accentColors"`
	BorderColors      []string          `json:"borderColors" yaml:"borderColors"`
	PrimaryBackground string            `json:"primaryBackground" yaml:"primaryBackground"`
	PrimaryText       string            `json:"primaryText" yaml:"primaryText"`
	RootVariables     map[string]string `json:"rootVariables" yaml:"rootVariables"`
	LogoColors        []string          `json:"logoColors" yaml:"logoColors"`
}

type Fonts struct {
	Families []string `json:"families" yaml:"families"`
	Sizes    []string `json:"sizes" yaml:"sizes"`
	Weights  []string `json:"weights" yaml:"weights"`
}

// Defaults used for any color class a page does not provide.
var (
	DefaultBackgrounds  = []string{"#ffffff", "#f8f9fa", "#e9ecef"}
	DefaultTextColors   = []string{"#1f2937", "#111827", "#4b5563"}
	DefaultAccentColors = []string{"#2563eb", "#1d4ed8", "#1e40af"}
	DefaultBorderColors = []string{"#d1d5db", "#e5e7eb"}
)

// Fallback returns the default analysis for url.
func Fallback(url string) Analysis {
	return Analysis{
		URL: url,
		Colors: Colors{
			Backgrounds:       clone(DefaultBackgrounds),
			TextColors:        clone(DefaultTextColors),
			AccentColors:      clone(DefaultAccentColors),
			BorderColors:      clone(DefaultBorderColors),
			PrimaryBackground: DefaultBackgrounds[0],
			PrimaryText:       DefaultTextColors[0],
			RootVariables:     map[string]string{},
			LogoColors:        []string{},
		},
		Fonts: Fonts{
			Families: []string{"system-ui", "Arial", "Helvetica Neue"},
			Sizes:    []string{"16px", "18px", "14px"},
			Weights:  []string{"400", "500", "600"},
		},
		Timestamp: time.Now().UTC(),
		Fallback:  true,
	}
}

// Load reads an analysis saved as JSON or YAML.
func Load(path string) (Analysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Analysis{}, fmt.Errorf("reading analysis: %w", err)
	}
	var a Analysis
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &a)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &a)
	default:
		return Analysis{}, fmt.Errorf("unsupported analysis format %q", filepath.Ext(path))
	}
	if err != nil {
		return Analysis{}, fmt.Errorf("parsing analysis %s: %w", path, err)
	}
	return a, nil
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}

func orDefault(s, def []string) []string {
	if len(s) == 0 {
		return clone(def)
	}
	return s
}
