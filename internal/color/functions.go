package color

import "math"

// Lighten blends each channel toward 255 by amount, clamped to [0, 1].
func (c Color) Lighten(amount float64) Color {
	f := clampUnit(amount)
	mix := func(v uint8) float64 { return float64(v) + (255-float64(v))*f }
	return FromRGB(mix(c.R), mix(c.G), mix(c.B))
}

// Darken scales each channel toward 0 by amount, clamped to [0, 1].
func (c Color) Darken(amount float64) Color {
	f := clampUnit(amount)
	mix := func(v uint8) float64 { return float64(v) * (1 - f) }
	return FromRGB(mix(c.R), mix(c.G), mix(c.B))
}

// Lighten parses value and returns it lightened as lowercase hex. Values that
// are not colors are returned unchanged.
func Lighten(value string, amount float64) string {
	c, ok := Parse(value)
	if !ok {
		return value
	}
	return c.Lighten(amount).Hex()
}

// Darken is the darkening counterpart of Lighten.
func Darken(value string, amount float64) string {
	c, ok := Parse(value)
	if !ok {
		return value
	}
	return c.Darken(amount).Hex()
}

func clampUnit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
