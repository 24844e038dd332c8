package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Color represents an RGB color. The R, G, B uint8 fields are the source of truth;
// all output formats are derived from them. Alpha is never tracked.
type Color struct {
	R, G, B uint8
}

// Node represents a palette entry that can be both a color and a namespace.
// Color is nil for namespace-only nodes (groups without a color attribute).
// Children is nil for leaf nodes (flat color attributes).
type Node struct {
	Color    *Color
	Children map[string]*Node
}

// Lookup resolves a dot-path (as segments) to a Color.
// Returns an error if the path is not found or the target node has no color.
func (n *Node) Lookup(path []string) (Color, error) {
	current := n
	for _, part := range path {
		if current.Children == nil {
			return Color{}, fmt.Errorf("path not found: %s is a leaf, cannot traverse further", part)
		}
		child, ok := current.Children[part]
		if !ok {
			return Color{}, fmt.Errorf("path not found: %q does not exist", part)
		}
		current = child
	}
	if current.Color == nil {
		return Color{}, fmt.Errorf("path is a group, not a color; reference a specific child")
	}
	return *current.Color, nil
}

var rgbPattern = regexp.MustCompile(`(?i)^rgba?\(\s*([\d.]+)\s*,\s*([\d.]+)\s*,\s*([\d.]+)(?:\s*,\s*([\d.]+))?\s*\)$`)

// ParseHex parses a hex color string like "#eb6f92" or "#fff" into a Color.
// The leading # is optional.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: must be 3 or 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Parse reads a CSS color value: #rgb, #rrggbb, rgb(r, g, b) or rgba(r, g, b, a).
// Channels given as rgb() numbers are clamped to 0-255 and rounded; alpha is
// dropped. Empty strings, "transparent" and anything else unrecognised report ok=false.
func Parse(value string) (Color, bool) {
	input := strings.TrimSpace(value)
	if input == "" || strings.EqualFold(input, "transparent") {
		return Color{}, false
	}
	if strings.HasPrefix(input, "#") {
		c, err := ParseHex(input)
		return c, err == nil
	}
	m := rgbPattern.FindStringSubmatch(input)
	if m == nil {
		return Color{}, false
	}
	var ch [3]float64
	for i := range ch {
		v, err := strconv.ParseFloat(m[i+1], 64)
		if err != nil {
			return Color{}, false
		}
		ch[i] = v
	}
	return FromRGB(ch[0], ch[1], ch[2]), true
}

// FromRGB builds a Color from arbitrary channel values, clamping each to
// 0-255 and rounding to the nearest integer.
func FromRGB(r, g, b float64) Color {
	return Color{R: clampChannel(r), G: clampChannel(g), B: clampChannel(b)}
}

func clampChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}

// Normalize parses value and re-emits it as lowercase #rrggbb. Unparseable
// input yields fallback.
func Normalize(value, fallback string) string {
	c, ok := Parse(value)
	if !ok {
		return fallback
	}
	return c.Hex()
}

// Hex returns the color as a hex string with leading #, e.g. "#eb6f92".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexBare returns the color as a hex string without leading #, e.g. "eb6f92".
func (c Color) HexBare() string {
	return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}
