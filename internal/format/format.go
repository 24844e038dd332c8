// Package format canonicalizes HCL token files.
package format

import (
	"bytes"
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

var multipleBlankLines = regexp.MustCompile(`\n{3,}`)
var blankLineAfterOpenBrace = regexp.MustCompile(`\{\n\s*\n`)
var blankLineBeforeCloseBrace = regexp.MustCompile(`\n\s*\n(\s*\})`)
var hexLiteral = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Format takes HCL source content and returns it formatted according to
// HCL canonical style rules. It uses hclwrite.Format which handles
// indentation, spacing, and newline normalization. Hex color literals in
// strings are lower-cased.
//
// The formatter works even on partial/invalid HCL, making it suitable
// for use while the user is still typing.
func Format(content string) (string, error) {
	formatted := lowerHexLiterals(hclwrite.Format([]byte(content)))
	// Collapse multiple consecutive blank lines into a single blank line.
	collapsed := multipleBlankLines.ReplaceAllString(string(formatted), "\n\n")
	// Remove blank lines immediately after opening braces.
	collapsed = blankLineAfterOpenBrace.ReplaceAllString(collapsed, "{\n")
	// Remove blank lines immediately before closing braces.
	collapsed = blankLineBeforeCloseBrace.ReplaceAllString(collapsed, "\n${1}")
	return collapsed, nil
}

// lowerHexLiterals rewrites quoted string parts that are exactly a hex color.
// Comments and template expressions are left alone.
func lowerHexLiterals(src []byte) []byte {
	toks, _ := hclsyntax.LexConfig(src, "", hcl.Pos{Line: 1, Column: 1, Byte: 0})
	out := bytes.Clone(src)
	for _, tok := range toks {
		if tok.Type != hclsyntax.TokenQuotedLit || !hexLiteral.Match(tok.Bytes) {
			continue
		}
		start, end := tok.Range.Start.Byte, tok.Range.End.Byte
		if start < 0 || end > len(out) || start > end {
			continue
		}
		copy(out[start:end], bytes.ToLower(tok.Bytes))
	}
	return out
}
