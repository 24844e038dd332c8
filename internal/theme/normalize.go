// Package theme turns partial token input into a complete, accessible token
// tree and checks the result before it is emitted as CSS.
package theme

import (
	"github.com/pulseinsights/pitheme/internal/color"
	"github.com/pulseinsights/pitheme/internal/tokens"
)

const (
	// OnPrimaryContrast is the ratio colors.onPrimary must reach against
	// colors.primary before the normalizer replaces it.
	OnPrimaryContrast = 4.5

	hoverDarken  = 0.1
	activeDarken = 0.2

	controlRadiusRef = "var(--pi-shape-control-radius)"
)

// Normalize applies schema defaults to raw and derives the tokens that depend
// on others: the text color on primary surfaces, every button state and the
// focus outline radius. Derived button state tokens never replace a value
// raw sets explicitly. Normalizing the Raw form of a normalized tree is a
// no-op.
func Normalize(raw tokens.Raw) *tokens.Tree {
	t := tokens.ApplyDefaults(raw)
	ensureOnPrimary(t)
	ensureButtonStates(t, raw)
	ensureFocusDefaults(t)
	return t
}

func ensureOnPrimary(t *tokens.Tree) {
	primary, ok := color.Parse(t.Colors.Primary)
	if !ok {
		return
	}
	if on, ok := color.Parse(t.Colors.OnPrimary); ok && color.ContrastRatio(primary, on) >= OnPrimaryContrast {
		return
	}
	t.Colors.OnPrimary = color.BestOn(primary, color.White, color.Ink).Hex()
}

type derivation struct {
	path  tokens.Path
	value string
}

func ensureButtonStates(t *tokens.Tree, raw tokens.Raw) {
	primary := t.Colors.Primary
	onPrimary := t.Colors.OnPrimary

	// The color variables and the button states share derived hover and
	// active colors.
	if !raw.Explicit(tokens.Path{"colors", "primaryHover"}) {
		t.Colors.PrimaryHover = color.Darken(primary, hoverDarken)
	}
	if !raw.Explicit(tokens.Path{"colors", "primaryActive"}) {
		t.Colors.PrimaryActive = color.Darken(primary, activeDarken)
	}
	hover, active := t.Colors.PrimaryHover, t.Colors.PrimaryActive

	for _, d := range buttonStateDerivations(primary, hover, active, onPrimary) {
		if raw.Explicit(d.path) {
			continue
		}
		t.Set(d.path, d.value)
	}
}

func buttonStateDerivations(primary, hover, active, onPrimary string) []derivation {
	state := func(name, leaf string) tokens.Path {
		return tokens.Path{"states", "button", name, leaf}
	}
	return []derivation{
		{state("default", "fill"), primary},
		{state("default", "border"), "1px solid " + primary},
		{state("default", "shadow"), "0 2px 6px rgba(37, 99, 235, 0.35)"},
		{state("default", "color"), onPrimary},

		{state("hover", "fill"), hover},
		{state("hover", "border"), "1px solid " + hover},
		{state("hover", "shadow"), "0 4px 10px rgba(29, 78, 216, 0.30)"},
		{state("hover", "color"), onPrimary},

		{state("active", "fill"), active},
		{state("active", "border"), "1px solid " + active},
		{state("active", "shadow"), "0 2px 4px rgba(30, 58, 138, 0.35)"},
		{state("active", "color"), onPrimary},

		{state("focus", "fill"), hover},
		{state("focus", "border"), "2px solid #ffffff"},
		{state("focus", "shadow"), "0 0 0 4px rgba(29, 78, 216, 0.25)"},
		{state("focus", "color"), onPrimary},

		{state("selected", "fill"), "#ffffff"},
		{state("selected", "border"), "2px solid " + primary},
		{state("selected", "shadow"), "0 0 0 2px rgba(37, 99, 235, 0.2)"},
		{state("selected", "color"), primary},
	}
}

func ensureFocusDefaults(t *tokens.Tree) {
	if t.Focus.Radius == "" || t.Focus.Radius == controlRadiusRef {
		t.Focus.Radius = t.Shape.ControlRadius
	}
}
