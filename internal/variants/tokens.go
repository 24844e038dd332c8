package variants

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/pulseinsights/pitheme/internal/color"
	"github.com/pulseinsights/pitheme/internal/tokens"
)

// Readability thresholds applied while building variant tokens.
const (
	ReadableText   = 4.5
	VisibleBorder  = 2.5
	FaintBorder    = 1.5
	ReadableAccent = 3.0
)

var lengthPattern = regexp.MustCompile(`(?i)^([\d.]+)([a-z%]*)$`)

// BuildTokens turns a variant config into a complete token tree. Missing
// config values fall back to colors derived from the primary, and text,
// border and muted colors are adjusted to stay legible on the background.
func BuildTokens(config map[string]string, kind Kind) *tokens.Tree {
	t := tokens.Defaults()

	primary := color.Normalize(or(config[VarPrimary], "#2563eb"), "#2563eb")
	background := color.Normalize(or(config[VarBackground], "#ffffff"), "#ffffff")
	textBase := color.Normalize(or(config[VarText], "#1f2937"), "#1f2937")
	hover := color.Normalize(config[VarHover], color.Darken(primary, 0.15))
	active := color.Darken(primary, 0.25)
	secondary := color.Normalize(config[VarSecondary], color.Lighten(primary, 0.3))
	border := color.Normalize(config[VarBorder], color.Lighten(primary, 0.45))
	radius := or(config[VarRadius], "14px")
	shadow := or(config[VarShadow], "0 18px 40px rgba(15, 23, 42, 0.18)")
	font := FontFamilyWithFallbacks(config[VarFontFamily])

	onPrimary := accessibleOnPrimary(primary)
	answerBorder := visibleBorder(border, background)

	t.Colors = tokens.Colors{
		Primary:       primary,
		PrimaryHover:  hover,
		PrimaryActive: active,
		Secondary:     secondary,
		Text:          readableText(textBase, background),
		Bg:            background,
		Muted:         readableAccent(secondary, background),
		AnswerBorder:  answerBorder,
		RadioBorder:   answerBorder,
		InputBorder:   answerBorder,
		InputFocus:    hover,
		OnPrimary:     onPrimary,
	}

	strong := kind == KindHighContrast
	t.Typography = tokens.Typography{
		FontFamily:        font,
		LineHeights:       tokens.LineHeights{Question: "1.3", Answer: "1.4", Body: "1.5"},
		Sizes:             tokens.Scale{Question: "28px", Answer: "16px", Body: "16px", Caption: "14px"},
		Weights:           tokens.Scale{Question: pick(strong, "700", "600"), Answer: pick(strong, "600", "500"), Body: "400", Caption: "400"},
		CloseButtonFamily: font,
		CloseButtonSize:   "32px",
	}

	t.Layout = tokens.Layout{GapRow: "12px", GapCol: "12px"}
	t.Shape = tokens.Shape{
		WidgetRadius:  radius,
		ControlRadius: ScaleRadius(radius, 0.8),
		ButtonRadius:  ScaleRadius(radius, 0.6),
	}
	t.Shadows = tokens.Shadows{Widget: shadow, Bar: "0px -1px 12px rgba(15, 23, 42, 0.2)"}
	t.Buttons = tokens.Buttons{
		PaddingDesktop: "12px 28px",
		PaddingMobile:  "12px 20px",
		FontWeight:     pick(strong, "700", "600"),
	}
	t.Answers = tokens.Answers{
		RadioStyle:            pick(kind == KindModern, "tile", "dot"),
		RadioOuter:            "18px",
		RadioInner:            "10px",
		RadioBorderWidth:      "2px",
		TileSize:              "60px",
		TextAlignWhenRadioOn:  pick(kind == KindModern, "left", "center"),
		TextAlignWhenRadioOff: "center",
	}
	t.Inputs = tokens.Inputs{
		Style:  pick(kind == KindMinimalist, "underline", "box"),
		Height: "48px",
		Radius: ScaleRadius(radius, 0.75),
	}
	t.Focus = tokens.Focus{
		Color:  color.Lighten(primary, 0.35),
		Style:  "solid",
		Width:  "2px",
		Offset: "2px",
		Radius: t.Shape.ControlRadius,
	}

	b := &t.States.Button
	b.Default.Fill, b.Default.Border, b.Default.Color = primary, "1px solid "+primary, onPrimary
	b.Hover.Fill, b.Hover.Border, b.Hover.Color = hover, "1px solid "+hover, onPrimary
	b.Active.Fill, b.Active.Border, b.Active.Color = active, "1px solid "+active, onPrimary
	b.Focus.Fill, b.Focus.Border, b.Focus.Color = hover, "2px solid #ffffff", onPrimary
	b.Selected.Fill, b.Selected.Border, b.Selected.Color = "#ffffff", "2px solid "+primary, primary

	switch kind {
	case KindModern:
		t.Shape.WidgetRadius = "24px"
		t.Shape.ButtonRadius = "18px"
		t.Layout.GapRow = "14px"
		t.Buttons.FontWeight = "600"
		t.Shadows.Widget = "0 30px 60px rgba(15, 23, 42, 0.25)"
	case KindMinimalist:
		t.Shadows.Widget = "none"
		t.Shape.WidgetRadius = "8px"
		t.Buttons.FontWeight = "500"
	}
	return t
}

// ScaleRadius multiplies a CSS length by factor, rounding to two decimals.
// A unitless number gains "px"; values that are not a plain length are
// returned unchanged and an empty value becomes "4px".
func ScaleRadius(value string, factor float64) string {
	if value == "" {
		return "4px"
	}
	m := lengthPattern.FindStringSubmatch(strings.TrimSpace(value))
	if m == nil {
		return value
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return value
	}
	unit := or(m[2], "px")
	scaled := math.Round(math.Max(0, amount*factor)*100) / 100
	return strconv.FormatFloat(scaled, 'f', -1, 64) + unit
}

func readableText(text, bg string) string {
	ratio, ok := color.Contrast(text, bg)
	if !ok || ratio >= ReadableText {
		return text
	}
	b, _ := color.Parse(bg)
	return color.BestOn(b, color.White, color.Color{R: 0x11, G: 0x11, B: 0x11}).Hex()
}

func accessibleOnPrimary(primary string) string {
	p, ok := color.Parse(primary)
	if !ok || color.ContrastRatio(p, color.White) >= ReadableText {
		return color.White.Hex()
	}
	return color.BestOn(p, color.White, color.Ink).Hex()
}

func visibleBorder(border, bg string) string {
	ratio, ok := color.Contrast(border, bg)
	switch {
	case !ok || ratio >= VisibleBorder:
		return border
	case ratio < FaintBorder:
		return color.Darken(bg, 0.3)
	default:
		return color.Lighten(bg, 0.3)
	}
}

func readableAccent(accent, bg string) string {
	ratio, ok := color.Contrast(accent, bg)
	if !ok || ratio >= ReadableAccent {
		return accent
	}
	return color.Darken(bg, 0.4)
}

func or(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
