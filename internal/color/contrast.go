package color

import "math"

var (
	White = Color{255, 255, 255}
	// Ink is the dark foreground paired against White when picking readable text.
	Ink = Color{0x11, 0x18, 0x27}
)

// RelativeLuminance returns the WCAG relative luminance of c, in [0, 1].
func RelativeLuminance(c Color) float64 {
	channel := func(v uint8) float64 {
		s := float64(v) / 255
		if s <= 0.03928 {
			return s / 12.92
		}
		return math.Pow((s+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(c.R) + 0.7152*channel(c.G) + 0.0722*channel(c.B)
}

// ContrastRatio returns the WCAG contrast ratio between a and b, in [1, 21].
// The result does not depend on argument order.
func ContrastRatio(a, b Color) float64 {
	la, lb := RelativeLuminance(a), RelativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// Contrast parses both values and returns their contrast ratio. ok is false
// when either value is not a color.
func Contrast(a, b string) (ratio float64, ok bool) {
	ca, okA := Parse(a)
	cb, okB := Parse(b)
	if !okA || !okB {
		return 0, false
	}
	return ContrastRatio(ca, cb), true
}

// BestOn returns whichever of light or dark contrasts more with bg. Ties go
// to light.
func BestOn(bg, light, dark Color) Color {
	if ContrastRatio(bg, light) >= ContrastRatio(bg, dark) {
		return light
	}
	return dark
}
