package css

import (
	"fmt"
	"strings"
	"testing"

	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/pulseinsights/pitheme/internal/tokens"
)

func TestVariables(t *testing.T) {
	tree := tokens.Defaults()
	tree.Colors.Secondary = ""
	got := Variables(tree)

	if !strings.HasPrefix(got, "#_pi_surveyWidgetContainer {\n  --pi-color-primary: #2563eb;\n") {
		t.Errorf("unexpected variable block start:\n%s", got)
	}
	if !strings.HasSuffix(got, "  --pi-input-radius: 10px;\n}") {
		t.Errorf("unexpected variable block end:\n%s", got)
	}
	if strings.Contains(got, "--pi-color-secondary") {
		t.Error("empty token emitted")
	}
	lines := strings.Split(got, "\n")
	if len(lines) != len(tree.Variables())+2 {
		t.Errorf("got %d lines, want %d", len(lines), len(tree.Variables())+2)
	}
}

func TestVariablesEscapesLineBreaks(t *testing.T) {
	tree := tokens.Defaults()
	tree.Typography.FontFamily = "Inter,\r\n  sans-serif"
	got := Variables(tree)
	if !strings.Contains(got, "  --pi-typography-font-family: Inter,   sans-serif;\n") {
		t.Errorf("font family not flattened:\n%s", got)
	}
}

func TestBaseRadioStyle(t *testing.T) {
	tests := []struct {
		name        string
		style       string
		wantDisplay string
		wantAlign   string
	}{
		{"dot", "dot", "display: inline-flex;", "text-align: left;"},
		{"tile", "tile", "display: none;", "text-align: right;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := tokens.Defaults()
			tree.Answers.RadioStyle = tt.style
			tree.Answers.TextAlignWhenRadioOn = "left"
			tree.Answers.TextAlignWhenRadioOff = "right"
			got := Base(tree)

			outer := ruleBody(t, got, "#_pi_surveyWidget ._pi_answers_container li ._pi_radio_button_outer {")
			if !strings.Contains(outer, tt.wantDisplay) {
				t.Errorf("radio outer rule = %q, want %q", outer, tt.wantDisplay)
			}
			label := ruleBody(t, got, `[data-question-type="single_choice_question"] li label {`)
			if !strings.Contains(label, tt.wantAlign) {
				t.Errorf("single choice label rule = %q, want %q", label, tt.wantAlign)
			}
		})
	}
}

// ruleBody returns the declarations following the first occurrence of head.
func ruleBody(t *testing.T, css, head string) string {
	t.Helper()
	i := strings.Index(css, head)
	if i < 0 {
		t.Fatalf("rule %q not found", head)
	}
	rest := css[i+len(head):]
	return rest[:strings.Index(rest, "}")]
}

func TestBuildSectionOrder(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeLegacyLayer = true
	got := Build(tokens.Defaults(), opts)

	markers := []string{
		"--pi-color-primary: #2563eb;",
		"/* CSS Isolation",
		".noUi-connect",
		"@media (max-width: 640px)",
		"/* ======================= Answer Layout System",
		":focus-visible",
		"/* Legacy overlay for classic Pulse markup */",
	}
	last := -1
	for _, m := range markers {
		i := strings.Index(got, m)
		if i < 0 {
			t.Fatalf("marker %q missing", m)
		}
		if i <= last {
			t.Errorf("marker %q out of order", m)
		}
		last = i
	}
	if strings.Contains(got, "\n\n\n") {
		t.Error("sections should be separated by exactly one blank line")
	}
}

func TestSectionsRespectOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want []string
	}{
		{"defaults", DefaultOptions(), []string{SectionVariables, SectionBase, SectionSlider, SectionAllAtOnce, SectionLayout, SectionFocus}},
		{"everything", Options{true, true, true, true}, []string{SectionVariables, SectionBase, SectionSlider, SectionAllAtOnce, SectionLayout, SectionFocus, SectionLegacy}},
		{"nothing optional", Options{}, []string{SectionVariables, SectionBase, SectionLayout}},
		{"legacy only", Options{IncludeLegacyLayer: true}, []string{SectionVariables, SectionBase, SectionLayout, SectionLegacy}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, s := range Sections(tokens.Defaults(), tt.opts) {
				got = append(got, s.Name)
				if s.CSS == "" {
					t.Errorf("section %s is empty", s.Name)
				}
			}
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("sections = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildWithoutFocus(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeFocusStyles = false
	if got := Build(tokens.Defaults(), opts); strings.Contains(got, ":focus-visible") {
		t.Error("focus styles emitted although disabled")
	}
}

func TestAnswerLayoutSymmetry(t *testing.T) {
	sheet, err := parser.Parse(AnswerLayout())
	if err != nil {
		t.Fatalf("parsing layout css: %v", err)
	}

	for _, w := range FixedWidths {
		perRow := fmt.Sprintf(`[data-answers-per-row="%d"]`, w.Count)
		modern := findRule(sheet, `ul[data-answers-layout="fixed"]`+perRow+" li")
		legacy := findRule(sheet, `ul[data-answer-widths="fixed"]`+perRow+" li")
		if modern == nil || legacy == nil {
			t.Fatalf("%d per row: modern=%v legacy=%v", w.Count, modern != nil, legacy != nil)
		}
		for _, r := range []*douceur.Rule{modern, legacy} {
			if len(r.Selectors) != 2 {
				t.Errorf("%d per row: selectors = %v", w.Count, r.Selectors)
			}
			want := map[string]string{
				"margin":    w.Margin(),
				"flex":      "0 0 " + w.Percent,
				"max-width": w.Percent,
			}
			for _, d := range r.Declarations {
				if want[d.Property] != d.Value || !d.Important {
					t.Errorf("%d per row: %s = %q (important %v)", w.Count, d.Property, d.Value, d.Important)
				}
			}
			if len(r.Declarations) != len(want) {
				t.Errorf("%d per row: %d declarations, want %d", w.Count, len(r.Declarations), len(want))
			}
		}
	}
}

func TestAnswerLayoutAlignments(t *testing.T) {
	sheet, err := parser.Parse(AnswerLayout())
	if err != nil {
		t.Fatalf("parsing layout css: %v", err)
	}
	for _, a := range Alignments {
		r := findRule(sheet, fmt.Sprintf(`ul[data-answers-alignment="%s"]`, a.Value))
		if r == nil {
			t.Fatalf("alignment %s missing", a.Value)
		}
		if len(r.Declarations) != 1 || r.Declarations[0].Value != a.Justify {
			t.Errorf("alignment %s: declarations = %v", a.Value, r.Declarations)
		}
		li := findRule(sheet, fmt.Sprintf(`ul[data-answers-alignment="%s"] li`, a.Value))
		if li == nil {
			t.Fatalf("alignment %s item rule missing", a.Value)
		}
	}
}

func TestAnswerLayoutSingleAnswerMargin(t *testing.T) {
	got := AnswerLayout()
	if !strings.Contains(got, "margin: 5px 7% !important;\n  flex: 0 0 86% !important;") {
		t.Error("single answer row should use the wide margin")
	}
	if !strings.Contains(got, "div#_pi_surveyWidgetContainer.mobile-enabled ul[data-answers-layout=\"variable\"] li,") {
		t.Error("mobile variable width rule missing")
	}
	if !strings.Contains(got, "flex: 0 0 calc((100% / 3) - 2%) !important;") {
		t.Error("default fixed width rule missing")
	}
}

func findRule(sheet *douceur.Stylesheet, selector string) *douceur.Rule {
	for _, r := range sheet.Rules {
		for _, s := range r.Selectors {
			if s == selector {
				return r
			}
		}
	}
	return nil
}
