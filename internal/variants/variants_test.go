package variants

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pulseinsights/pitheme/internal/analysis"
	"github.com/pulseinsights/pitheme/internal/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fallback() analysis.Analysis {
	return analysis.Fallback("https://example.com")
}

func TestGenerateOrder(t *testing.T) {
	got := Generate(fallback())
	require.Len(t, got, 4)

	names := []string{got[0].Name, got[1].Name, got[2].Name, got[3].Name}
	assert.Equal(t, []string{"Brand Faithful", "High Contrast", "Modern", "Minimalist"}, names)
	kinds := []Kind{got[0].Kind, got[1].Kind, got[2].Kind, got[3].Kind}
	assert.Equal(t, []Kind{KindBrand, KindHighContrast, KindModern, KindMinimalist}, kinds)

	seen := map[string]bool{}
	for _, v := range got {
		_, err := uuid.Parse(v.ID)
		assert.NoError(t, err, v.Name)
		assert.False(t, seen[v.ID], "duplicate id for %s", v.Name)
		seen[v.ID] = true
		assert.NotNil(t, v.Tokens, v.Name)
	}
}

func TestDetectBrandColors(t *testing.T) {
	got := DetectBrandColors(fallback().Colors)
	assert.Equal(t, BrandColors{
		Primary:    "#2563eb",
		Secondary:  "#1d4ed8",
		Text:       "#1f2937",
		Background: "#ffffff",
		Border:     "#d1d5db",
		Hover:      "#1f54c8",
	}, got)
}

func TestDetectBrandColorsPrefersRootVariables(t *testing.T) {
	colors := fallback().Colors
	colors.RootVariables = map[string]string{
		"--brand-accent":  "#FF6B35",
		"--surface-bg":    "#fafafa",
		"--body-text":     "#333",
		"--outline-color": "#ccc",
		"--text-main":     "var(--x)",
		"--font-size":     "16px",
	}
	got := DetectBrandColors(colors)
	assert.Equal(t, BrandColors{
		Primary:    "#ff6b35",
		Secondary:  "#2563eb",
		Text:       "#333333",
		Background: "#fafafa",
		Border:     "#cccccc",
		Hover:      "#d95b2d",
	}, got)
}

func TestDetectBrandColorsPrimaryVariables(t *testing.T) {
	tests := []struct {
		name          string
		vars          map[string]string
		wantPrimary   string
		wantSecondary string
	}{
		{
			name:          "primary beats scraped accents",
			vars:          map[string]string{"--color-primary": "#ff0000"},
			wantPrimary:   "#ff0000",
			wantSecondary: "#00ff00",
		},
		{
			name:          "primary beats brand variables",
			vars:          map[string]string{"--brand-accent": "#0000ff", "--primary": "#ff0000"},
			wantPrimary:   "#ff0000",
			wantSecondary: "#0000ff",
		},
		{
			name:          "secondary variable",
			vars:          map[string]string{"--primary": "#ff0000", "--secondary": "#333"},
			wantPrimary:   "#ff0000",
			wantSecondary: "#333333",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectBrandColors(analysis.Colors{
				AccentColors:  []string{"#00ff00"},
				RootVariables: tt.vars,
			})
			assert.Equal(t, tt.wantPrimary, got.Primary)
			assert.Equal(t, tt.wantSecondary, got.Secondary)
		})
	}
}

func TestDetectBrandColorsEmpty(t *testing.T) {
	got := DetectBrandColors(analysis.Colors{})
	assert.Equal(t, "#007bff", got.Primary)
	assert.Equal(t, "#6b7280", got.Secondary)
	assert.Equal(t, "#1f2937", got.Text)
	assert.Equal(t, "#ffffff", got.Background)
	assert.Equal(t, "#66b0ff", got.Border)
}

func TestBrandOverride(t *testing.T) {
	a := analysis.Fallback("https://www.airsupra.com/")
	a.Fonts.Families = []string{"Montserrat"}

	brand := New().Generate(a)[0]
	assert.Equal(t, "Matches AirSupra's brand colors and fonts", brand.Description)
	assert.Equal(t, "#ff6b35", brand.Config[VarPrimary])
	assert.Equal(t, "#dc2626", brand.Config[VarHover])
	assert.Equal(t, `"Montserrat", `+DefaultFontStack, brand.Config[VarFontFamily])
	assert.Equal(t, "#dc2626", brand.Tokens.Colors.PrimaryHover)
	assert.NotContains(t, DefaultOverrides[0].Config, VarFontFamily)

	plain := (&Generator{}).Generate(a)[0]
	assert.Equal(t, "Matches the site's detected colors and fonts", plain.Description)
	assert.Equal(t, "#2563eb", plain.Config[VarPrimary])
}

func TestBuildTokensBrand(t *testing.T) {
	brand := Generate(fallback())[0]
	tr := brand.Tokens

	assert.Equal(t, "#2563eb", tr.Colors.Primary)
	assert.Equal(t, "#1f54c8", tr.Colors.PrimaryHover)
	assert.Equal(t, "#1c4ab0", tr.Colors.PrimaryActive)
	assert.Equal(t, "#ffffff", tr.Colors.OnPrimary)
	assert.Equal(t, "#b3b3b3", tr.Colors.AnswerBorder)
	assert.Equal(t, tr.Colors.AnswerBorder, tr.Colors.RadioBorder)
	assert.Equal(t, tr.Colors.AnswerBorder, tr.Colors.InputBorder)
	assert.Equal(t, "#1d4ed8", tr.Colors.Muted)
	assert.Equal(t, tr.Colors.PrimaryHover, tr.Colors.InputFocus)

	assert.Equal(t, "8px", tr.Shape.WidgetRadius)
	assert.Equal(t, "6.4px", tr.Shape.ControlRadius)
	assert.Equal(t, "4.8px", tr.Shape.ButtonRadius)
	assert.Equal(t, "6px", tr.Inputs.Radius)
	assert.Equal(t, "6.4px", tr.Focus.Radius)
	assert.Equal(t, "#719af2", tr.Focus.Color)

	assert.Equal(t, "#1f54c8", tr.States.Button.Hover.Fill)
	assert.Equal(t, "1px solid #1f54c8", tr.States.Button.Hover.Border)
	assert.Equal(t, "2px solid #ffffff", tr.States.Button.Focus.Border)
	assert.Equal(t, "#ffffff", tr.States.Button.Selected.Fill)
	assert.Equal(t, "#2563eb", tr.States.Button.Selected.Color)

	assert.Equal(t, "dot", tr.Answers.RadioStyle)
	assert.Equal(t, "box", tr.Inputs.Style)
	assert.Equal(t, "600", tr.Typography.Weights.Question)
}

func TestBuildTokensHighContrast(t *testing.T) {
	tr := Generate(fallback())[1].Tokens

	assert.Equal(t, "#000000", tr.Colors.Primary)
	assert.Equal(t, "#2563eb", tr.Colors.PrimaryHover)
	assert.Equal(t, "#ffffff", tr.Colors.OnPrimary)
	assert.Equal(t, "#999999", tr.Colors.Muted)
	assert.Equal(t, "#000000", tr.Colors.AnswerBorder)
	assert.Equal(t, "700", tr.Typography.Weights.Question)
	assert.Equal(t, "600", tr.Typography.Weights.Answer)
	assert.Equal(t, "700", tr.Buttons.FontWeight)
	assert.Equal(t, "3.2px", tr.Shape.ControlRadius)
	assert.Equal(t, "2.4px", tr.Shape.ButtonRadius)
	assert.Equal(t, "3px", tr.Inputs.Radius)
}

func TestBuildTokensModern(t *testing.T) {
	v := Generate(fallback())[2]
	tr := v.Tokens

	assert.Equal(t, "#3b82f6", v.Config[VarPrimary])
	assert.Equal(t, "#3b82f6", v.Config[VarSecondary])
	assert.Equal(t, `"Arial", `+DefaultFontStack, v.Config[VarFontFamily])

	assert.Equal(t, "#3575dd", tr.Colors.PrimaryHover)
	assert.Equal(t, "#111827", tr.Colors.OnPrimary)
	assert.Equal(t, "tile", tr.Answers.RadioStyle)
	assert.Equal(t, "left", tr.Answers.TextAlignWhenRadioOn)
	assert.Equal(t, "24px", tr.Shape.WidgetRadius)
	assert.Equal(t, "18px", tr.Shape.ButtonRadius)
	assert.Equal(t, "12.8px", tr.Shape.ControlRadius)
	assert.Equal(t, "14px", tr.Layout.GapRow)
	assert.Equal(t, "12px", tr.Layout.GapCol)
	assert.Equal(t, "0 30px 60px rgba(15, 23, 42, 0.25)", tr.Shadows.Widget)
}

func TestBuildTokensMinimalist(t *testing.T) {
	tr := Generate(fallback())[3].Tokens

	assert.Equal(t, DefaultFontStack, tr.Typography.FontFamily)
	assert.Equal(t, DefaultFontStack, tr.Typography.CloseButtonFamily)
	assert.Equal(t, "#ffffff", tr.Colors.OnPrimary)
	assert.Equal(t, "#999999", tr.Colors.Muted)
	assert.Equal(t, "#b3b3b3", tr.Colors.AnswerBorder)
	assert.Equal(t, "underline", tr.Inputs.Style)
	assert.Equal(t, "none", tr.Shadows.Widget)
	assert.Equal(t, "8px", tr.Shape.WidgetRadius)
	assert.Equal(t, "4.8px", tr.Shape.ControlRadius)
	assert.Equal(t, "500", tr.Buttons.FontWeight)
}

func TestBuildTokensEmptyConfig(t *testing.T) {
	tr := BuildTokens(map[string]string{}, KindBrand)

	assert.Equal(t, "#2563eb", tr.Colors.Primary)
	assert.Equal(t, "#1f54c8", tr.Colors.PrimaryHover)
	assert.Equal(t, "14px", tr.Shape.WidgetRadius)
	assert.Equal(t, "11.2px", tr.Shape.ControlRadius)
	assert.Equal(t, "0 18px 40px rgba(15, 23, 42, 0.18)", tr.Shadows.Widget)
	assert.Equal(t, DefaultFontStack, tr.Typography.FontFamily)
}

func TestScaleRadius(t *testing.T) {
	tests := []struct {
		value  string
		factor float64
		want   string
	}{
		{"14px", 0.8, "11.2px"},
		{"1.5rem", 0.6, "0.9rem"},
		{"10", 0.5, "5px"},
		{"50%", 0.5, "25%"},
		{" 8px ", 0.75, "6px"},
		{"", 0.8, "4px"},
		{"calc(1px + 2px)", 0.5, "calc(1px + 2px)"},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, ScaleRadius(tt.value, tt.factor))
		})
	}
}

func TestFontFamilyWithFallbacks(t *testing.T) {
	assert.Equal(t, DefaultFontStack, FontFamilyWithFallbacks(""))
	assert.Equal(t, `"Open Sans", `+DefaultFontStack, FontFamilyWithFallbacks("'Open Sans'"))
	assert.Equal(t, "Inter, Arial, sans-serif", FontFamilyWithFallbacks("Inter, Arial, sans-serif"))
	assert.Equal(t, `"Georgia, serif", `+DefaultFontStack, FontFamilyWithFallbacks("Georgia, serif"))
}

func TestModernize(t *testing.T) {
	tests := map[string]string{
		"#ff0000": "#ef4444",
		"#00ff00": "#10b981",
		"#0000ff": "#3b82f6",
		"#ffff00": "#f59e0b",
		"#ff00ff": "#8b5cf6",
		"#808080": "#6366f1",
		"nope":    "nope",
	}
	for in, want := range tests {
		assert.Equal(t, want, Modernize(in), in)
	}
}

func TestReadabilityGuards(t *testing.T) {
	assert.Equal(t, "#111111", readableText("#777777", "#888888"))
	assert.Equal(t, "#1f2937", readableText("#1f2937", "#ffffff"))
	assert.Equal(t, "not-a-color", readableText("not-a-color", "#ffffff"))

	assert.Equal(t, "#b3b3b3", visibleBorder("#ffffff", "#ffffff"))
	assert.Equal(t, "#ffffff", visibleBorder("#aaaaaa", "#ffffff"))
	assert.Equal(t, "#000000", visibleBorder("#000000", "#ffffff"))

	assert.Equal(t, "#999999", readableAccent("#eeeeee", "#ffffff"))
	assert.Equal(t, "#333333", readableAccent("#333333", "#ffffff"))

	assert.Equal(t, "#111827", accessibleOnPrimary("#ffff00"))
	assert.Equal(t, "#ffffff", accessibleOnPrimary("#1e3a8a"))
	assert.Equal(t, "#ffffff", accessibleOnPrimary("nope"))
}

func TestCompile(t *testing.T) {
	got, err := Compile(fallback(), css.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, got, 4)
	for _, c := range got {
		assert.Contains(t, c.CSS, "--pi-color-primary: "+c.Tokens.Colors.Primary+";", c.Name)
		assert.Empty(t, c.Warnings, c.Name)
	}
	assert.Equal(t, "Modern", got[2].Name)
}

func TestCompileAllStopsAtFirstFailure(t *testing.T) {
	variants := Generate(fallback())
	variants[2].Tokens.Colors.Text = ""
	variants[3].Tokens.Colors.Bg = ""

	got, err := CompileAll(variants, css.DefaultOptions())
	require.Error(t, err)
	assert.Nil(t, got)

	var ce *CompileError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "Modern", ce.Theme)
	assert.Equal(t, `Failed to compile theme "Modern": Missing token: colors.text`, err.Error())
}

func TestCompileErrorJoinsMessages(t *testing.T) {
	err := &CompileError{Theme: "X", Errors: []string{"Missing token: colors.text", "Missing token: colors.bg"}}
	assert.Equal(t, `Failed to compile theme "X": Missing token: colors.text; Missing token: colors.bg`, err.Error())
	assert.True(t, strings.HasPrefix(err.Error(), "Failed to compile theme"))
}
