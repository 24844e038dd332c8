// Package pitheme compiles survey-widget design tokens into an isolated
// stylesheet and proposes theme variants for a web page.
package pitheme

import (
	"fmt"
	"strings"

	"github.com/pulseinsights/pitheme/internal/analysis"
	"github.com/pulseinsights/pitheme/internal/compiler"
	"github.com/pulseinsights/pitheme/internal/css"
	"github.com/pulseinsights/pitheme/internal/engine"
	"github.com/pulseinsights/pitheme/internal/parser"
	"github.com/pulseinsights/pitheme/internal/theme"
	"github.com/pulseinsights/pitheme/internal/tokens"
	"github.com/pulseinsights/pitheme/internal/variants"
)

type (
	// Options selects the optional stylesheet sections.
	Options = css.Options
	// Result is the outcome of Compile.
	Result = compiler.Result
	// Report holds validation errors and warnings.
	Report = theme.Report
	// Theme is a compiled token file, ready for template rendering.
	Theme = engine.Theme
	// Engine renders templates against a Theme.
	Engine = engine.Engine
)

// DefaultOptions enables every section except the legacy overlay.
func DefaultOptions() Options {
	return css.DefaultOptions()
}

// Compile fills raw with defaults, derives state colors, validates the result
// and renders the stylesheet when no core token is missing.
func Compile(raw map[string]any, opts Options) Result {
	return compiler.Compile(tokens.Raw(raw), opts)
}

// Validate reports missing core tokens and contrast warnings for raw after
// normalization.
func Validate(raw map[string]any) Report {
	return theme.Validate(theme.Normalize(tokens.Raw(raw)))
}

// Load reads a token file (HCL, JSON, YAML or TOML) and compiles it.
func Load(path string, opts Options) (*Theme, error) {
	doc, err := parser.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading tokens: %w", err)
	}

	res := compiler.Compile(doc.Tokens, opts)
	if !res.OK() {
		return nil, fmt.Errorf("compiling %s: %s", path, strings.Join(res.Errors, "; "))
	}

	return &Theme{
		Name:        doc.Meta.Name,
		Author:      doc.Meta.Author,
		Description: doc.Meta.Description,
		CSS:         res.CSS,
		Tokens:      res.Theme,
		Palette:     doc.Palette,
		Warnings:    res.Warnings,
	}, nil
}

// GenerateVariants proposes and compiles the four theme variants for a page.
// A variant that fails to compile aborts the batch with a
// *variants.CompileError.
func GenerateVariants(a analysis.Analysis, opts Options) ([]variants.Compiled, error) {
	return variants.Compile(a, opts)
}
