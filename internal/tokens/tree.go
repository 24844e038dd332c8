// Package tokens defines the design-token tree of a survey widget theme, the
// schema that maps every token to its CSS custom property, and defaulting of
// partial input.
package tokens

// Tree is a complete set of theme tokens. Every leaf is a CSS value string.
type Tree struct {
	Colors     Colors     `json:"colors" yaml:"colors"`
	Typography Typography `json:"typography" yaml:"typography"`
	Layout     Layout     `json:"layout" yaml:"layout"`
	Shape      Shape      `json:"shape" yaml:"shape"`
	Shadows    Shadows    `json:"shadows" yaml:"shadows"`
	States     States     `json:"states" yaml:"states"`
	Focus      Focus      `json:"focus" yaml:"focus"`
	Buttons    Buttons    `json:"buttons" yaml:"buttons"`
	Answers    Answers    `json:"answers" yaml:"answers"`
	Inputs     Inputs     `json:"inputs" yaml:"inputs"`
}

type Colors struct {
	Primary       string `json:"primary" yaml:"primary"`
	PrimaryHover  string `json:"primaryHover" yaml:"primaryHover"`
	PrimaryActive string `json:"primaryActive" yaml:"primaryActive"`
	Secondary     string `json:"secondary" yaml:"secondary"`
	Text          string `json:"text" yaml:"text"`
	Bg            string `json:"bg" yaml:"bg"`
	Muted         string `json:"muted" yaml:"muted"`
	AnswerBorder  string `json:"answerBorder" yaml:"answerBorder"`
	RadioBorder   string `json:"radioBorder" yaml:"radioBorder"`
	InputBorder   string `json:"inputBorder" yaml:"inputBorder"`
	InputFocus    string `json:"inputFocus" yaml:"inputFocus"`
	OnPrimary     string `json:"onPrimary" yaml:"onPrimary"`
}

type Typography struct {
	FontFamily        string      `json:"fontFamily" yaml:"fontFamily"`
	LineHeights       LineHeights `json:"lineHeights" yaml:"lineHeights"`
	Sizes             Scale       `json:"sizes" yaml:"sizes"`
	Weights           Scale       `json:"weights" yaml:"weights"`
	CloseButtonFamily string      `json:"closeButtonFamily" yaml:"closeButtonFamily"`
	CloseButtonSize   string      `json:"closeButtonSize" yaml:"closeButtonSize"`
}

type LineHeights struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Body     string `json:"body" yaml:"body"`
}

// Scale holds one value per text role.
type Scale struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Body     string `json:"body" yaml:"body"`
	Caption  string `json:"caption" yaml:"caption"`
}

type Layout struct {
	GapRow string `json:"gapRow" yaml:"gapRow"`
	GapCol string `json:"gapCol" yaml:"gapCol"`
}

type Shape struct {
	WidgetRadius  string `json:"widgetRadius" yaml:"widgetRadius"`
	ControlRadius string `json:"controlRadius" yaml:"controlRadius"`
	ButtonRadius  string `json:"buttonRadius" yaml:"buttonRadius"`
}

type Shadows struct {
	Widget string `json:"widget" yaml:"widget"`
	Bar    string `json:"bar" yaml:"bar"`
}

type States struct {
	Button ButtonStates `json:"button" yaml:"button"`
}

// ButtonStates holds the visual state of the submit button per interaction state.
type ButtonStates struct {
	Default  ButtonState `json:"default" yaml:"default"`
	Hover    ButtonState `json:"hover" yaml:"hover"`
	Active   ButtonState `json:"active" yaml:"active"`
	Focus    ButtonState `json:"focus" yaml:"focus"`
	Selected ButtonState `json:"selected" yaml:"selected"`
}

type ButtonState struct {
	Fill   string `json:"fill" yaml:"fill"`
	Border string `json:"border" yaml:"border"`
	Shadow string `json:"shadow" yaml:"shadow"`
	Color  string `json:"color" yaml:"color"`
}

type Focus struct {
	Color  string `json:"color" yaml:"color"`
	Style  string `json:"style" yaml:"style"`
	Width  string `json:"width" yaml:"width"`
	Offset string `json:"offset" yaml:"offset"`
	Radius string `json:"radius" yaml:"radius"`
}

type Buttons struct {
	PaddingDesktop string `json:"paddingDesktop" yaml:"paddingDesktop"`
	PaddingMobile  string `json:"paddingMobile" yaml:"paddingMobile"`
	FontWeight     string `json:"fontWeight" yaml:"fontWeight"`
}

type Answers struct {
	RadioStyle            string `json:"radioStyle" yaml:"radioStyle"`
	RadioOuter            string `json:"radioOuter" yaml:"radioOuter"`
	RadioInner            string `json:"radioInner" yaml:"radioInner"`
	RadioBorderWidth      string `json:"radioBorderWidth" yaml:"radioBorderWidth"`
	TileSize              string `json:"tileSize" yaml:"tileSize"`
	TextAlignWhenRadioOn  string `json:"textAlignWhenRadioOn" yaml:"textAlignWhenRadioOn"`
	TextAlignWhenRadioOff string `json:"textAlignWhenRadioOff" yaml:"textAlignWhenRadioOff"`
}

type Inputs struct {
	Style  string `json:"style" yaml:"style"`
	Height string `json:"height" yaml:"height"`
	Radius string `json:"radius" yaml:"radius"`
}

// Variable is one CSS custom property declaration.
type Variable struct {
	Name  string
	Value string
}

// Get returns the value at p. ok is false when p is not a token path.
func (t *Tree) Get(p Path) (value string, ok bool) {
	e, ok := lookupPath(p)
	if !ok {
		return "", false
	}
	return *e.field(t), true
}

// Set stores value at p and reports whether p is a token path.
func (t *Tree) Set(p Path, value string) bool {
	e, ok := lookupPath(p)
	if !ok {
		return false
	}
	*e.field(t) = value
	return true
}

// Clone returns an independent copy of t.
func (t *Tree) Clone() *Tree {
	c := *t
	return &c
}

// Raw converts t into nested maps keyed by token name. Feeding the result
// back through ApplyDefaults reproduces t.
func (t *Tree) Raw() Raw {
	raw := Raw{}
	for _, e := range Schema {
		SetPath(raw, e.Path, *e.field(t))
	}
	return raw
}

// Variables lists the CSS custom properties of t in schema order, skipping
// empty values.
func (t *Tree) Variables() []Variable {
	vars := make([]Variable, 0, len(Schema))
	for _, e := range Schema {
		v := *e.field(t)
		if v == "" {
			continue
		}
		vars = append(vars, Variable{Name: e.CSSVar, Value: v})
	}
	return vars
}
