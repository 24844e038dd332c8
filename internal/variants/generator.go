// Package variants proposes four themed token sets for a page analysis:
// Brand Faithful, High Contrast, Modern and Minimalist.
package variants

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/pulseinsights/pitheme/internal/analysis"
	"github.com/pulseinsights/pitheme/internal/color"
	"github.com/pulseinsights/pitheme/internal/tokens"
)

// Kind tags a variant's style family. It selects the per-kind tweaks applied
// by BuildTokens.
type Kind string

const (
	KindBrand        Kind = "brand"
	KindHighContrast Kind = "high-contrast"
	KindModern       Kind = "modern"
	KindMinimalist   Kind = "minimalist"
)

// Legacy custom property names used as variant config keys.
const (
	VarPrimary    = "--pi-primary-color"
	VarSecondary  = "--pi-secondary-color"
	VarText       = "--pi-text-color"
	VarBackground = "--pi-background-color"
	VarBorder     = "--pi-border-color"
	VarHover      = "--pi-hover-color"
	VarFontFamily = "--pi-font-family"
	VarRadius     = "--pi-border-radius"
	VarShadow     = "--pi-box-shadow"
)

// DefaultFontStack follows any detected family.
const DefaultFontStack = `system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif`

// Variant is one proposed theme.
type Variant struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Kind        Kind              `json:"variant" yaml:"variant"`
	Config      map[string]string `json:"config" yaml:"config"`
	Tokens      *tokens.Tree      `json:"tokens" yaml:"tokens"`
}

// BrandOverride replaces brand detection for pages whose URL contains Match.
// The generator adds the detected font family to Config.
type BrandOverride struct {
	Match       string
	Description string
	Config      map[string]string
}

// DefaultOverrides is the built-in brand override table.
var DefaultOverrides = []BrandOverride{
	{
		Match:       "airsupra",
		Description: "Matches AirSupra's brand colors and fonts",
		Config: map[string]string{
			VarPrimary:    "#ff6b35",
			VarSecondary:  "#1e3a8a",
			VarText:       "#1f2937",
			VarBackground: "#ffffff",
			VarBorder:     "#e5e7eb",
			VarHover:      "#dc2626",
			VarRadius:     "8px",
			VarShadow:     "0 4px 12px rgba(0,0,0,0.15)",
		},
	},
}

// Generator builds variants. The zero value uses no brand overrides.
type Generator struct {
	Overrides []BrandOverride
}

// New returns a Generator using DefaultOverrides.
func New() *Generator {
	return &Generator{Overrides: DefaultOverrides}
}

// Generate returns the four variants for a, in fixed order.
func Generate(a analysis.Analysis) []Variant {
	return New().Generate(a)
}

// Generate returns the Brand Faithful, High Contrast, Modern and Minimalist
// variants for a. Each variant's Tokens are built from its Config.
func (g *Generator) Generate(a analysis.Analysis) []Variant {
	variants := []Variant{
		g.brandFaithful(a),
		highContrast(a),
		modern(a),
		minimalist(),
	}
	for i := range variants {
		variants[i].ID = uuid.NewString()
		variants[i].Tokens = BuildTokens(variants[i].Config, variants[i].Kind)
	}
	return variants
}

func (g *Generator) override(url string) (BrandOverride, bool) {
	for _, o := range g.Overrides {
		if o.Match != "" && strings.Contains(url, o.Match) {
			return o, true
		}
	}
	return BrandOverride{}, false
}

func (g *Generator) brandFaithful(a analysis.Analysis) Variant {
	font := FontFamilyWithFallbacks(first(a.Fonts.Families))

	if o, ok := g.override(a.URL); ok {
		config := make(map[string]string, len(o.Config)+1)
		for k, v := range o.Config {
			config[k] = v
		}
		config[VarFontFamily] = font
		return Variant{Name: "Brand Faithful", Description: o.Description, Kind: KindBrand, Config: config}
	}

	b := DetectBrandColors(a.Colors)
	return Variant{
		Name:        "Brand Faithful",
		Description: "Matches the site's detected colors and fonts",
		Kind:        KindBrand,
		Config: map[string]string{
			VarPrimary:    b.Primary,
			VarSecondary:  b.Secondary,
			VarText:       b.Text,
			VarBackground: b.Background,
			VarBorder:     b.Border,
			VarHover:      b.Hover,
			VarFontFamily: font,
			VarRadius:     "8px",
			VarShadow:     "0 4px 12px rgba(0,0,0,0.15)",
		},
	}
}

func highContrast(a analysis.Analysis) Variant {
	hover := firstOr("#000000", nonEmpty(a.Colors.AccentColors), nonEmpty(a.Colors.Backgrounds))
	return Variant{
		Name:        "High Contrast",
		Description: "Accessibility-first palette with high contrast",
		Kind:        KindHighContrast,
		Config: map[string]string{
			VarPrimary:    "#000000",
			VarSecondary:  "#ffffff",
			VarText:       "#000000",
			VarBackground: "#ffffff",
			VarBorder:     "#000000",
			VarHover:      hover,
			VarFontFamily: FontFamilyWithFallbacks(first(a.Fonts.Families)),
			VarRadius:     "4px",
			VarShadow:     "0 2px 8px rgba(0,0,0,0.3)",
		},
	}
}

func modern(a analysis.Analysis) Variant {
	accents := nonEmpty(a.Colors.AccentColors)
	backgrounds := nonEmpty(a.Colors.Backgrounds)
	primary := Modernize(firstOr("#6366f1", accents, backgrounds))
	secondary := Modernize(firstOr("#8b5cf6", skip(accents, 1), skip(backgrounds, 1)))

	family := first(skip(a.Fonts.Families, 1))
	if family == "" {
		family = first(a.Fonts.Families)
	}
	return Variant{
		Name:        "Modern",
		Description: "Contemporary gradient-inspired theme",
		Kind:        KindModern,
		Config: map[string]string{
			VarPrimary:    primary,
			VarSecondary:  secondary,
			VarText:       "#1f2937",
			VarBackground: "#ffffff",
			VarBorder:     "#e5e7eb",
			VarHover:      color.Darken(primary, 0.1),
			VarFontFamily: FontFamilyWithFallbacks(family),
			VarRadius:     "16px",
			VarShadow:     "0 18px 40px rgba(0,0,0,0.18)",
		},
	}
}

func minimalist() Variant {
	return Variant{
		Name:        "Minimalist",
		Description: "Neutral palette with subtle accents",
		Kind:        KindMinimalist,
		Config: map[string]string{
			VarPrimary:    "#6b7280",
			VarSecondary:  "#9ca3af",
			VarText:       "#374151",
			VarBackground: "#ffffff",
			VarBorder:     "#d1d5db",
			VarHover:      "#4b5563",
			VarFontFamily: FontFamilyWithFallbacks(""),
			VarRadius:     "6px",
			VarShadow:     "0 1px 3px rgba(0,0,0,0.08)",
		},
	}
}

// BrandColors is the result of brand color detection.
type BrandColors struct {
	Primary    string
	Secondary  string
	Text       string
	Background string
	Border     string
	Hover      string
}

// DetectBrandColors picks brand colors from an analysis. Matching :root
// custom properties take precedence over scraped colors of the same class,
// and variables named primary or secondary come before accent variables.
func DetectBrandColors(c analysis.Colors) BrandColors {
	roots := rootCandidates(c.RootVariables)
	accents := append(append(roots.primary, roots.accent...), nonEmpty(c.AccentColors)...)
	secondaries := append(roots.secondary, skip(accents, 1)...)
	backgrounds := append(roots.background, nonEmpty(c.Backgrounds)...)
	texts := append(roots.text, nonEmpty(c.TextColors)...)
	borders := append(roots.border, nonEmpty(c.BorderColors)...)

	primary := color.Normalize(first(accents), "#007bff")
	return BrandColors{
		Primary:    primary,
		Secondary:  color.Normalize(first(secondaries), "#6b7280"),
		Text:       color.Normalize(first(texts), "#1f2937"),
		Background: color.Normalize(first(backgrounds), "#ffffff"),
		Border:     color.Normalize(first(borders), color.Lighten(primary, 0.4)),
		Hover:      color.Darken(primary, 0.15),
	}
}

type candidates struct {
	primary, secondary, accent, background, text, border []string
}

// rootCandidates buckets :root color variables by keywords in their names.
// A variable may land in several buckets. Names are visited in sorted order.
func rootCandidates(vars map[string]string) candidates {
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	var c candidates
	for _, name := range names {
		value := strings.TrimSpace(vars[name])
		if value == "" || strings.Contains(value, "var(") {
			continue
		}
		parsed, ok := color.Parse(value)
		if !ok {
			continue
		}
		hex := parsed.Hex()
		key := strings.ToLower(name)
		if strings.Contains(key, "primary") {
			c.primary = append(c.primary, hex)
		}
		if strings.Contains(key, "secondary") {
			c.secondary = append(c.secondary, hex)
		}
		if containsAny(key, "accent", "brand", "highlight") {
			c.accent = append(c.accent, hex)
		}
		if containsAny(key, "background", "surface", "panel", "card") {
			c.background = append(c.background, hex)
		}
		if containsAny(key, "text", "font", "body") {
			c.text = append(c.text, hex)
		}
		if containsAny(key, "border", "stroke", "outline") {
			c.border = append(c.border, hex)
		}
	}
	return c
}

// Modernize maps a color onto the nearest hue of a fixed contemporary palette.
// Values that are not colors are returned unchanged.
func Modernize(value string) string {
	c, ok := color.Parse(value)
	if !ok {
		return value
	}
	r, g, b := c.R, c.G, c.B
	switch {
	case r > 200 && g < 100 && b < 100:
		return "#ef4444"
	case r < 100 && g > 200 && b < 100:
		return "#10b981"
	case r < 100 && g < 100 && b > 200:
		return "#3b82f6"
	case r > 200 && g > 200 && b < 100:
		return "#f59e0b"
	case r > 200 && g < 100 && b > 200:
		return "#8b5cf6"
	}
	return "#6366f1"
}

// FontFamilyWithFallbacks quotes a single family name and appends the
// system font stack. Values that already end in a generic sans-serif stack
// are kept as they are.
func FontFamilyWithFallbacks(family string) string {
	if family == "" {
		return DefaultFontStack
	}
	if strings.Contains(family, ",") && strings.Contains(strings.ToLower(family), "sans-serif") {
		return family
	}
	name := strings.TrimSpace(strings.NewReplacer(`"`, "", "'", "").Replace(family))
	return `"` + name + `", ` + DefaultFontStack
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// firstOr returns the first element of the first non-empty list, or def.
func firstOr(def string, lists ...[]string) string {
	for _, l := range lists {
		if len(l) > 0 {
			return l[0]
		}
	}
	return def
}

func skip(values []string, n int) []string {
	if len(values) <= n {
		return nil
	}
	return values[n:]
}
