package tokens

import "strings"

// Kind classifies the CSS value a token holds.
type Kind int

const (
	KindColor Kind = iota
	KindFont
	KindLength
	KindWeight
	KindShadow
	KindBorder
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindColor:
		return "color"
	case KindFont:
		return "font"
	case KindLength:
		return "length"
	case KindWeight:
		return "weight"
	case KindShadow:
		return "shadow"
	case KindBorder:
		return "border"
	default:
		return "text"
	}
}

// Path addresses a token, e.g. Path{"colors", "primary"}.
type Path []string

// ParsePath splits a dotted token path such as "states.button.hover.fill".
func ParsePath(s string) Path {
	return Path(strings.Split(s, "."))
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Entry describes one token: where it lives, which CSS custom property it
// feeds and its default value. Core entries must be non-empty in a valid theme.
type Entry struct {
	Path    Path
	CSSVar  string
	Label   string
	Kind    Kind
	Core    bool
	Default string

	field func(*Tree) *string
}

// Value returns the entry's value in t.
func (e Entry) Value(t *Tree) string {
	return *e.field(t)
}

// Schema lists every token in emission order. The variable block of the
// stylesheet and the set of required tokens are both derived from it.
var Schema = []Entry{
	// colors
	{Path: Path{"colors", "primary"}, CSSVar: "--pi-color-primary", Label: "Primary color", Kind: KindColor, Core: true, Default: "#2563eb",
		field: func(t *Tree) *string { return &t.Colors.Primary }},
	{Path: Path{"colors", "primaryHover"}, CSSVar: "--pi-color-primary-hover", Label: "Primary hover", Kind: KindColor, Default: "#1d4ed8",
		field: func(t *Tree) *string { return &t.Colors.PrimaryHover }},
	{Path: Path{"colors", "primaryActive"}, CSSVar: "--pi-color-primary-active", Label: "Primary active", Kind: KindColor, Default: "#1e3a8a",
		field: func(t *Tree) *string { return &t.Colors.PrimaryActive }},
	{Path: Path{"colors", "secondary"}, CSSVar: "--pi-color-secondary", Label: "Secondary color", Kind: KindColor, Default: "#8b5cf6",
		field: func(t *Tree) *string { return &t.Colors.Secondary }},
	{Path: Path{"colors", "text"}, CSSVar: "--pi-color-text", Label: "Text color", Kind: KindColor, Core: true, Default: "#1f2937",
		field: func(t *Tree) *string { return &t.Colors.Text }},
	{Path: Path{"colors", "bg"}, CSSVar: "--pi-color-background", Label: "Background", Kind: KindColor, Core: true, Default: "#ffffff",
		field: func(t *Tree) *string { return &t.Colors.Bg }},
	{Path: Path{"colors", "muted"}, CSSVar: "--pi-color-muted", Label: "Muted text", Kind: KindColor, Core: true, Default: "#6b7280",
		field: func(t *Tree) *string { return &t.Colors.Muted }},
	{Path: Path{"colors", "answerBorder"}, CSSVar: "--pi-color-answer-border", Label: "Answer border", Kind: KindColor, Default: "#d1d5db",
		field: func(t *Tree) *string { return &t.Colors.AnswerBorder }},
	{Path: Path{"colors", "radioBorder"}, CSSVar: "--pi-color-radio-border", Label: "Radio border", Kind: KindColor, Default: "#9ca3af",
		field: func(t *Tree) *string { return &t.Colors.RadioBorder }},
	{Path: Path{"colors", "inputBorder"}, CSSVar: "--pi-color-input-border", Label: "Input border", Kind: KindColor, Default: "#cbd5f5",
		field: func(t *Tree) *string { return &t.Colors.InputBorder }},
	{Path: Path{"colors", "inputFocus"}, CSSVar: "--pi-color-input-focus", Label: "Input focus ring", Kind: KindColor, Default: "#1d4ed8",
		field: func(t *Tree) *string { return &t.Colors.InputFocus }},
	{Path: Path{"colors", "onPrimary"}, CSSVar: "--pi-color-on-primary", Label: "On primary", Kind: KindColor, Default: "#ffffff",
		field: func(t *Tree) *string { return &t.Colors.OnPrimary }},

	// typography
	{Path: Path{"typography", "fontFamily"}, CSSVar: "--pi-typography-font-family", Label: "Base font family", Kind: KindFont, Core: true, Default: `system-ui, -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif`,
		field: func(t *Tree) *string { return &t.Typography.FontFamily }},
	{Path: Path{"typography", "lineHeights", "question"}, CSSVar: "--pi-typography-line-height-question", Label: "Question line height", Kind: KindLength, Default: "1.25",
		field: func(t *Tree) *string { return &t.Typography.LineHeights.Question }},
	{Path: Path{"typography", "lineHeights", "answer"}, CSSVar: "--pi-typography-line-height-answer", Label: "Answer line height", Kind: KindLength, Default: "1.4",
		field: func(t *Tree) *string { return &t.Typography.LineHeights.Answer }},
	{Path: Path{"typography", "lineHeights", "body"}, CSSVar: "--pi-typography-line-height-body", Label: "Body line height", Kind: KindLength, Default: "1.5",
		field: func(t *Tree) *string { return &t.Typography.LineHeights.Body }},
	{Path: Path{"typography", "sizes", "question"}, CSSVar: "--pi-typography-size-question", Label: "Question size", Kind: KindLength, Core: true, Default: "28px",
		field: func(t *Tree) *string { return &t.Typography.Sizes.Question }},
	{Path: Path{"typography", "sizes", "answer"}, CSSVar: "--pi-typography-size-answer", Label: "Answer size", Kind: KindLength, Default: "16px",
		field: func(t *Tree) *string { return &t.Typography.Sizes.Answer }},
	{Path: Path{"typography", "sizes", "body"}, CSSVar: "--pi-typography-size-body", Label: "Body size", Kind: KindLength, Default: "16px",
		field: func(t *Tree) *string { return &t.Typography.Sizes.Body }},
	{Path: Path{"typography", "sizes", "caption"}, CSSVar: "--pi-typography-size-caption", Label: "Caption size", Kind: KindLength, Default: "14px",
		field: func(t *Tree) *string { return &t.Typography.Sizes.Caption }},
	{Path: Path{"typography", "weights", "question"}, CSSVar: "--pi-typography-weight-question", Label: "Question weight", Kind: KindWeight, Core: true, Default: "600",
		field: func(t *Tree) *string { return &t.Typography.Weights.Question }},
	{Path: Path{"typography", "weights", "answer"}, CSSVar: "--pi-typography-weight-answer", Label: "Answer weight", Kind: KindWeight, Default: "500",
		field: func(t *Tree) *string { return &t.Typography.Weights.Answer }},
	{Path: Path{"typography", "weights", "body"}, CSSVar: "--pi-typography-weight-body", Label: "Body weight", Kind: KindWeight, Default: "400",
		field: func(t *Tree) *string { return &t.Typography.Weights.Body }},
	{Path: Path{"typography", "weights", "caption"}, CSSVar: "--pi-typography-weight-caption", Label: "Caption weight", Kind: KindWeight, Default: "400",
		field: func(t *Tree) *string { return &t.Typography.Weights.Caption }},
	{Path: Path{"typography", "closeButtonFamily"}, CSSVar: "--pi-typography-close-family", Label: "Close button font", Kind: KindFont, Default: "system-ui, sans-serif",
		field: func(t *Tree) *string { return &t.Typography.CloseButtonFamily }},
	{Path: Path{"typography", "closeButtonSize"}, CSSVar: "--pi-typography-close-size", Label: "Close button size", Kind: KindLength, Default: "32px",
		field: func(t *Tree) *string { return &t.Typography.CloseButtonSize }},

	// layout
	{Path: Path{"layout", "gapRow"}, CSSVar: "--pi-layout-gap-row", Label: "Row gap", Kind: KindLength, Default: "10px",
		field: func(t *Tree) *string { return &t.Layout.GapRow }},
	{Path: Path{"layout", "gapCol"}, CSSVar: "--pi-layout-gap-col", Label: "Column gap", Kind: KindLength, Default: "12px",
		field: func(t *Tree) *string { return &t.Layout.GapCol }},

	// shape
	{Path: Path{"shape", "widgetRadius"}, CSSVar: "--pi-shape-widget-radius", Label: "Widget radius", Kind: KindLength, Core: true, Default: "16px",
		field: func(t *Tree) *string { return &t.Shape.WidgetRadius }},
	{Path: Path{"shape", "controlRadius"}, CSSVar: "--pi-shape-control-radius", Label: "Answer radius", Kind: KindLength, Core: true, Default: "10px",
		field: func(t *Tree) *string { return &t.Shape.ControlRadius }},
	{Path: Path{"shape", "buttonRadius"}, CSSVar: "--pi-shape-button-radius", Label: "Button radius", Kind: KindLength, Core: true, Default: "8px",
		field: func(t *Tree) *string { return &t.Shape.ButtonRadius }},

	// shadows
	{Path: Path{"shadows", "widget"}, CSSVar: "--pi-shadow-widget", Label: "Widget shadow", Kind: KindShadow, Default: "0 20px 60px rgba(15, 23, 42, 0.12)",
		field: func(t *Tree) *string { return &t.Shadows.Widget }},
	{Path: Path{"shadows", "bar"}, CSSVar: "--pi-shadow-bar", Label: "Bar shadow", Kind: KindShadow, Default: "0px -1px 12px rgba(15, 23, 42, 0.2)",
		field: func(t *Tree) *string { return &t.Shadows.Bar }},

	// states
	{Path: Path{"states", "button", "default", "fill"}, CSSVar: "--pi-button-fill-default", Label: "Button fill", Kind: KindColor, Default: "#2563eb",
		field: func(t *Tree) *string { return &t.States.Button.Default.Fill }},
	{Path: Path{"states", "button", "default", "border"}, CSSVar: "--pi-button-border-default", Label: "Button border", Kind: KindBorder, Default: "1px solid #2563eb",
		field: func(t *Tree) *string { return &t.States.Button.Default.Border }},
	{Path: Path{"states", "button", "default", "shadow"}, CSSVar: "--pi-button-shadow-default", Label: "Button shadow", Kind: KindShadow, Default: "0 2px 6px rgba(37, 99, 235, 0.35)",
		field: func(t *Tree) *string { return &t.States.Button.Default.Shadow }},
	{Path: Path{"states", "button", "default", "color"}, CSSVar: "--pi-button-color-default", Label: "Button text color", Kind: KindColor, Default: "#ffffff",
		field: func(t *Tree) *string { return &t.States.Button.Default.Color }},
	{Path: Path{"states", "button", "hover", "fill"}, CSSVar: "--pi-button-fill-hover", Label: "Button hover fill", Kind: KindColor, Default: "#1d4ed8",
		field: func(t *Tree) *string { return &t.States.Button.Hover.Fill }},
	{Path: Path{"states", "button", "hover", "border"}, CSSVar: "--pi-button-border-hover", Label: "Button hover border", Kind: KindBorder, Default: "1px solid #1d4ed8",
		field: func(t *Tree) *string { return &t.States.Button.Hover.Border }},
	{Path: Path{"states", "button", "hover", "shadow"}, CSSVar: "--pi-button-shadow-hover", Label: "Button hover shadow", Kind: KindShadow, Default: "0 4px 10px rgba(29, 78, 216, 0.3)",
		field: func(t *Tree) *string { return &t.States.Button.Hover.Shadow }},
	{Path: Path{"states", "button", "hover", "color"}, CSSVar: "--pi-button-color-hover", Label: "Button hover text", Kind: KindColor, Default: "#ffffff",
		field: func(t *Tree) *string { return &t.States.Button.Hover.Color }},
	{Path: Path{"states", "button", "active", "fill"}, CSSVar: "--pi-button-fill-active", Label: "Button active fill", Kind: KindColor, Default: "#1e3a8a",
		field: func(t *Tree) *string { return &t.States.Button.Active.Fill }},
	{Path: Path{"states", "button", "active", "border"}, CSSVar: "--pi-button-border-active", Label: "Button active border", Kind: KindBorder, Default: "1px solid #1e3a8a",
		field: func(t *Tree) *string { return &t.States.Button.Active.Border }},
	{Path: Path{"states", "button", "active", "shadow"}, CSSVar: "--pi-button-shadow-active", Label: "Button active shadow", Kind: KindShadow, Default: "0 2px 4px rgba(30, 58, 138, 0.35)",
		field: func(t *Tree) *string { return &t.States.Button.Active.Shadow }},
	{Path: Path{"states", "button", "active", "color"}, CSSVar: "--pi-button-color-active", Label: "Button active text", Kind: KindColor, Default: "#ffffff",
		field: func(t *Tree) *string { return &t.States.Button.Active.Color }},
	{Path: Path{"states", "button", "focus", "fill"}, CSSVar: "--pi-button-fill-focus", Label: "Button focus fill", Kind: KindColor, Default: "#1d4ed8",
		field: func(t *Tree) *string { return &t.States.Button.Focus.Fill }},
	{Path: Path{"states", "button", "focus", "border"}, CSSVar: "--pi-button-border-focus", Label: "Button focus border", Kind: KindBorder, Default: "2px solid #ffffff",
		field: func(t *Tree) *string { return &t.States.Button.Focus.Border }},
	{Path: Path{"states", "button", "focus", "shadow"}, CSSVar: "--pi-button-shadow-focus", Label: "Button focus shadow", Kind: KindShadow, Default: "0 0 0 4px rgba(29, 78, 216, 0.25)",
		field: func(t *Tree) *string { return &t.States.Button.Focus.Shadow }},
	{Path: Path{"states", "button", "focus", "color"}, CSSVar: "--pi-button-color-focus", Label: "Button focus text", Kind: KindColor, Default: "#ffffff",
		field: func(t *Tree) *string { return &t.States.Button.Focus.Color }},
	{Path: Path{"states", "button", "selected", "fill"}, CSSVar: "--pi-button-fill-selected", Label: "Button selected fill", Kind: KindColor, Default: "#ffffff",
		field: func(t *Tree) *string { return &t.States.Button.Selected.Fill }},
	{Path: Path{"states", "button", "selected", "border"}, CSSVar: "--pi-button-border-selected", Label: "Button selected border", Kind: KindBorder, Default: "2px solid #2563eb",
		field: func(t *Tree) *string { return &t.States.Button.Selected.Border }},
	{Path: Path{"states", "button", "selected", "shadow"}, CSSVar: "--pi-button-shadow-selected", Label: "Button selected shadow", Kind: KindShadow, Default: "0 0 0 2px rgba(37, 99, 235, 0.2)",
		field: func(t *Tree) *string { return &t.States.Button.Selected.Shadow }},
	{Path: Path{"states", "button", "selected", "color"}, CSSVar: "--pi-button-color-selected", Label: "Button selected text", Kind: KindColor, Default: "#2563eb",
		field: func(t *Tree) *string { return &t.States.Button.Selected.Color }},

	// focus
	{Path: Path{"focus", "color"}, CSSVar: "--pi-focus-outline-color", Label: "Focus outline color", Kind: KindColor, Default: "#5e9ed6",
		field: func(t *Tree) *string { return &t.Focus.Color }},
	{Path: Path{"focus", "style"}, CSSVar: "--pi-focus-outline-style", Label: "Focus outline style", Kind: KindText, Default: "solid",
		field: func(t *Tree) *string { return &t.Focus.Style }},
	{Path: Path{"focus", "width"}, CSSVar: "--pi-focus-outline-width", Label: "Focus outline width", Kind: KindLength, Default: "2px",
		field: func(t *Tree) *string { return &t.Focus.Width }},
	{Path: Path{"focus", "offset"}, CSSVar: "--pi-focus-outline-offset", Label: "Focus outline offset", Kind: KindLength, Default: "2px",
		field: func(t *Tree) *string { return &t.Focus.Offset }},
	{Path: Path{"focus", "radius"}, CSSVar: "--pi-focus-outline-radius", Label: "Focus outline radius", Kind: KindLength, Default: "var(--pi-shape-control-radius)",
		field: func(t *Tree) *string { return &t.Focus.Radius }},

	// buttons
	{Path: Path{"buttons", "paddingDesktop"}, CSSVar: "--pi-button-padding-desktop", Label: "Button padding (desktop)", Kind: KindLength, Default: "12px 28px",
		field: func(t *Tree) *string { return &t.Buttons.PaddingDesktop }},
	{Path: Path{"buttons", "paddingMobile"}, CSSVar: "--pi-button-padding-mobile", Label: "Button padding (mobile)", Kind: KindLength, Default: "12px 20px",
		field: func(t *Tree) *string { return &t.Buttons.PaddingMobile }},
	{Path: Path{"buttons", "fontWeight"}, CSSVar: "--pi-button-font-weight", Label: "Button font weight", Kind: KindWeight, Default: "600",
		field: func(t *Tree) *string { return &t.Buttons.FontWeight }},

	// answers
	{Path: Path{"answers", "radioStyle"}, CSSVar: "--pi-answers-radio-style", Label: "Radio style", Kind: KindText, Default: "dot",
		field: func(t *Tree) *string { return &t.Answers.RadioStyle }},
	{Path: Path{"answers", "radioOuter"}, CSSVar: "--pi-answers-radio-outer-size", Label: "Radio outer size", Kind: KindLength, Default: "18px",
		field: func(t *Tree) *string { return &t.Answers.RadioOuter }},
	{Path: Path{"answers", "radioInner"}, CSSVar: "--pi-answers-radio-inner-size", Label: "Radio inner size", Kind: KindLength, Default: "10px",
		field: func(t *Tree) *string { return &t.Answers.RadioInner }},
	{Path: Path{"answers", "radioBorderWidth"}, CSSVar: "--pi-answers-radio-border-width", Label: "Radio border width", Kind: KindLength, Default: "2px",
		field: func(t *Tree) *string { return &t.Answers.RadioBorderWidth }},
	{Path: Path{"answers", "tileSize"}, CSSVar: "--pi-answers-tile-min-height", Label: "Answer min height", Kind: KindLength, Default: "56px",
		field: func(t *Tree) *string { return &t.Answers.TileSize }},
	{Path: Path{"answers", "textAlignWhenRadioOn"}, CSSVar: "--pi-answers-text-align-radio-on", Label: "Answer alignment (radio on)", Kind: KindText, Default: "left",
		field: func(t *Tree) *string { return &t.Answers.TextAlignWhenRadioOn }},
	{Path: Path{"answers", "textAlignWhenRadioOff"}, CSSVar: "--pi-answers-text-align-radio-off", Label: "Answer alignment (radio off)", Kind: KindText, Default: "center",
		field: func(t *Tree) *string { return &t.Answers.TextAlignWhenRadioOff }},

	// inputs
	{Path: Path{"inputs", "style"}, CSSVar: "--pi-input-style", Label: "Input style", Kind: KindText, Default: "box",
		field: func(t *Tree) *string { return &t.Inputs.Style }},
	{Path: Path{"inputs", "height"}, CSSVar: "--pi-input-height", Label: "Input height", Kind: KindLength, Default: "48px",
		field: func(t *Tree) *string { return &t.Inputs.Height }},
	{Path: Path{"inputs", "radius"}, CSSVar: "--pi-input-radius", Label: "Input radius", Kind: KindLength, Default: "10px",
		field: func(t *Tree) *string { return &t.Inputs.Radius }},
}

var schemaIndex = func() map[string]int {
	m := make(map[string]int, len(Schema))
	for i, e := range Schema {
		m[e.Path.String()] = i
	}
	return m
}()

func lookupPath(p Path) (Entry, bool) {
	return Lookup(p.String())
}

// Lookup finds the schema entry for a dotted path.
func Lookup(dotPath string) (Entry, bool) {
	i, ok := schemaIndex[dotPath]
	if !ok {
		return Entry{}, false
	}
	return Schema[i], true
}

// CorePaths returns the paths that must be non-empty for a theme to compile.
func CorePaths() []Path {
	var paths []Path
	for _, e := range Schema {
		if e.Core {
			paths = append(paths, e.Path)
		}
	}
	return paths
}

// Groups returns the top-level token group names in schema order.
func Groups() []string {
	_, groups := Children(nil)
	return groups
}

// Children lists the names directly below prefix. Leaves are tokens and
// groups hold further names. Both keep schema order.
func Children(prefix Path) (leaves, groups []string) {
	seen := map[string]bool{}
	for _, e := range Schema {
		if len(e.Path) <= len(prefix) || !e.Path.hasPrefix(prefix) {
			continue
		}
		name := e.Path[len(prefix)]
		if seen[name] {
			continue
		}
		seen[name] = true
		if len(e.Path) == len(prefix)+1 {
			leaves = append(leaves, name)
		} else {
			groups = append(groups, name)
		}
	}
	return leaves, groups
}

func (p Path) hasPrefix(prefix Path) bool {
	if len(p) < len(prefix) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// Defaults returns a tree holding every schema default.
func Defaults() *Tree {
	t := &Tree{}
	for _, e := range Schema {
		*e.field(t) = e.Default
	}
	return t
}

// ApplyDefaults overlays raw onto the schema defaults. A path present in raw
// with a scalar value wins, including the empty string; nil, missing and
// nested-object values leave the default in place. Keys outside the schema
// are ignored. raw is not modified.
func ApplyDefaults(raw Raw) *Tree {
	t := Defaults()
	for _, e := range Schema {
		if v, ok := raw.String(e.Path); ok {
			*e.field(t) = v
		}
	}
	return t
}
