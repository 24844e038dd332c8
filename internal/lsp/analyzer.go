package lsp

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/pulseinsights/pitheme/internal/color"
	"github.com/pulseinsights/pitheme/internal/parser"
	"github.com/pulseinsights/pitheme/internal/theme"
	"github.com/pulseinsights/pitheme/internal/tokens"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

const diagSource = "pitheme"

// AnalysisResult holds all information produced by analyzing a token file.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Palette     *color.Node
	Symbols     map[string]protocol.Range // "palette.brand", "palette.brand.soft" -> definition range
	Colors      []ColorLocation
	Tokens      []TokenLocation
}

// ColorLocation records a resolved color at a specific source position.
type ColorLocation struct {
	Range protocol.Range
	Color color.Color
	IsRef bool // true if the value is a reference or function call (not a literal)
}

// TokenLocation records a token assignment.
type TokenLocation struct {
	Range protocol.Range
	Entry tokens.Entry
	Value string
}

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	line, col := pos.Line-1, pos.Column-1
	if line < 0 {
		line = 0
	}
	if col < 0 {
		col = 0
	}
	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(col),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// Analyze parses HCL content from memory and produces diagnostics, a symbol table,
// color and token locations. It collects ALL errors rather than short-circuiting on
// the first, then runs the theme validator over the tokens that did evaluate.
func Analyze(filename, content string) *AnalysisResult {
	f := parser.AnalyzeHCL(filename, []byte(content))

	result := &AnalysisResult{
		Palette: f.Palette,
		Symbols: make(map[string]protocol.Range, len(f.Symbols)),
	}
	for name, rng := range f.Symbols {
		result.Symbols[name] = hclRangeToLSP(rng)
	}
	for _, is := range f.Issues {
		result.addDiagnostic(hclRangeToLSP(is.Range), &DiagError, is.Message)
	}
	for _, c := range f.Colors {
		result.Colors = append(result.Colors, ColorLocation{Range: hclRangeToLSP(c.Range), Color: c.Color, IsRef: c.IsRef})
	}
	for _, ref := range f.Refs {
		e, ok := tokens.Lookup(ref.Path.String())
		if !ok {
			continue
		}
		result.Tokens = append(result.Tokens, TokenLocation{Range: hclRangeToLSP(ref.Range), Entry: e, Value: ref.Value})
	}

	report := theme.Validate(theme.Normalize(f.Tokens))
	for _, msg := range report.Errors {
		result.addDiagnostic(result.rangeFor(strings.TrimPrefix(msg, "Missing token: ")), &DiagError, msg)
	}
	for _, msg := range report.Warnings {
		result.addDiagnostic(result.rangeFor("colors.onPrimary"), &DiagWarning, msg)
	}
	return result
}

// rangeFor returns the range of the assignment to dotPath, or the start of
// the document when the token is not assigned in the file.
func (r *AnalysisResult) rangeFor(dotPath string) protocol.Range {
	for _, t := range r.Tokens {
		if t.Entry.Path.String() == dotPath {
			return t.Range
		}
	}
	return protocol.Range{}
}

func (r *AnalysisResult) addDiagnostic(rng protocol.Range, severity *protocol.DiagnosticSeverity, msg string) {
	r.Diagnostics = append(r.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: severity,
		Source:   strPtr(diagSource),
		Message:  msg,
	})
}

func strPtr(s string) *string {
	return &s
}
