// Package css renders a normalized token tree into the survey widget
// stylesheet.
package css

import (
	"bytes"
	"embed"
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/pulseinsights/pitheme/internal/tokens"
)

//go:embed templates/*.css.tmpl
var templateFS embed.FS

var lineBreaks = regexp.MustCompile(`[\r\n]+`)

// escape keeps a token value on one line so it cannot end a declaration early.
func escape(value string) string {
	return lineBreaks.ReplaceAllString(value, " ")
}

var templates = template.Must(template.New("css").Funcs(template.FuncMap{
	"escape": escape,
	"row": func(s layoutSystem, w FixedWidth) layoutRow {
		return layoutRow{System: s, Width: w}
	},
}).ParseFS(templateFS, "templates/*.css.tmpl"))

// Options selects the optional stylesheet sections.
type Options struct {
	IncludeLegacyLayer     bool `json:"includeLegacyLayer" yaml:"includeLegacyLayer" mapstructure:"include_legacy_layer"`
	IncludeFocusStyles     bool `json:"includeFocusStyles" yaml:"includeFocusStyles" mapstructure:"include_focus_styles"`
	IncludeSliderStyles    bool `json:"includeSliderStyles" yaml:"includeSliderStyles" mapstructure:"include_slider_styles"`
	IncludeAllAtOnceStyles bool `json:"includeAllAtOnceStyles" yaml:"includeAllAtOnceStyles" mapstructure:"include_all_at_once_styles"`
}

// DefaultOptions enables everything except the legacy overlay.
func DefaultOptions() Options {
	return Options{
		IncludeLegacyLayer:     false,
		IncludeFocusStyles:     true,
		IncludeSliderStyles:    true,
		IncludeAllAtOnceStyles: true,
	}
}

// Section names, in emission order.
const (
	SectionVariables = "variables"
	SectionBase      = "base"
	SectionSlider    = "slider"
	SectionAllAtOnce = "all-at-once"
	SectionLayout    = "layout"
	SectionFocus     = "focus"
	SectionLegacy    = "legacy"
)

// Section is one rendered block of the stylesheet.
type Section struct {
	Name string
	CSS  string
}

func render(name string, data any) string {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		panic(fmt.Sprintf("css: rendering %s: %v", name, err))
	}
	return strings.TrimSpace(buf.String())
}

// Variables renders the custom property block scoped to the widget container.
func Variables(t *tokens.Tree) string {
	return render("variables", t.Variables())
}

// Base renders the always-on widget rules. The radio indicator is hidden and
// answers use the radio-off alignment when answers render as tiles.
func Base(t *tokens.Tree) string {
	data := struct {
		RadioDisplay string
		RadioAlign   string
	}{"inline-flex", t.Answers.TextAlignWhenRadioOn}
	if t.Answers.RadioStyle == "tile" {
		data.RadioDisplay = "none"
		data.RadioAlign = t.Answers.TextAlignWhenRadioOff
	}
	return render("base.css.tmpl", data)
}

func Slider() string {
	return render("slider.css.tmpl", nil)
}

func AllAtOnce() string {
	return render("all-at-once.css.tmpl", nil)
}

// AnswerLayout renders the answers-per-row and alignment rules for both the
// data-answers-layout and the legacy data-answer-widths markup.
func AnswerLayout() string {
	return render("layout.css.tmpl", layoutData{
		Widths:     FixedWidths,
		Alignments: Alignments,
		Modern:     modernLayout,
		Legacy:     legacyLayout,
	})
}

func Focus() string {
	return render("focus.css.tmpl", nil)
}

// LegacyOverlay renders compatibility rules for classic widget markup.
func LegacyOverlay() string {
	return render("legacy.css.tmpl", nil)
}

// Sections renders the stylesheet sections enabled by opts, in order.
func Sections(t *tokens.Tree, opts Options) []Section {
	sections := []Section{
		{SectionVariables, Variables(t)},
		{SectionBase, Base(t)},
	}
	if opts.IncludeSliderStyles {
		sections = append(sections, Section{SectionSlider, Slider()})
	}
	if opts.IncludeAllAtOnceStyles {
		sections = append(sections, Section{SectionAllAtOnce, AllAtOnce()})
	}
	sections = append(sections, Section{SectionLayout, AnswerLayout()})
	if opts.IncludeFocusStyles {
		sections = append(sections, Section{SectionFocus, Focus()})
	}
	if opts.IncludeLegacyLayer {
		sections = append(sections, Section{SectionLegacy, LegacyOverlay()})
	}
	return sections
}

// Build renders the full stylesheet: the enabled sections separated by a
// blank line.
func Build(t *tokens.Tree, opts Options) string {
	sections := Sections(t, opts)
	parts := make([]string, len(sections))
	for i, s := range sections {
		parts[i] = s.CSS
	}
	return strings.Join(parts, "\n\n") + "\n"
}
