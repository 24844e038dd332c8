package lsp

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pulseinsights/pitheme/internal/color"
	"github.com/pulseinsights/pitheme/internal/tokens"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// extractText extracts the source text at a given LSP range from document content.
func extractText(content string, r protocol.Range) string {
	lines := strings.Split(content, "\n")

	startLine := int(r.Start.Line)
	endLine := int(r.End.Line)

	if startLine >= len(lines) {
		return ""
	}
	if endLine >= len(lines) {
		endLine = len(lines) - 1
	}

	if startLine == endLine {
		line := lines[startLine]
		startChar := int(r.Start.Character)
		endChar := int(r.End.Character)
		if startChar > len(line) {
			startChar = len(line)
		}
		if endChar > len(line) {
			endChar = len(line)
		}
		return line[startChar:endChar]
	}

	// Multi-line range
	var parts []string
	for i := startLine; i <= endLine; i++ {
		line := lines[i]
		if i == startLine {
			startChar := int(r.Start.Character)
			if startChar > len(line) {
				startChar = len(line)
			}
			parts = append(parts, line[startChar:])
		} else if i == endLine {
			endChar := int(r.End.Character)
			if endChar > len(line) {
				endChar = len(line)
			}
			parts = append(parts, line[:endChar])
		} else {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, "\n")
}

// colorSummary renders a color as hex, rgb and hsl.
func colorSummary(c color.Color) string {
	h, sat, l := colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}.Hsl()
	hsl := fmt.Sprintf("hsl(%.0f, %.0f%%, %.0f%%)", h, sat*100, l*100)
	return fmt.Sprintf("`%s` \u00b7 `%s` \u00b7 `%s`", c.Hex(), c.RGB(), hsl)
}

// tokenSummary describes the schema entry a token assignment feeds.
func tokenSummary(e tokens.Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** (%s)\n\n`%s`", e.Label, e.Kind, e.CSSVar)
	if e.Core {
		b.WriteString(" \u00b7 required")
	}
	if e.Default != "" {
		fmt.Fprintf(&b, "\n\nDefault: `%s`", e.Default)
	}
	return b.String()
}

// hover produces a Hover response for the given cursor position.
// A color under the cursor shows its hex, RGB and HSL forms; references and
// function calls also show their source text. Inside a token assignment the
// token's label, CSS custom property and default are shown too.
// Returns nil if neither is found at the position.
func hover(result *AnalysisResult, content string, pos protocol.Position) *protocol.Hover {
	if result == nil {
		return nil
	}

	var parts []string
	var rng *protocol.Range

	for i, tl := range result.Tokens {
		if posInRange(pos, tl.Range) {
			parts = append(parts, tokenSummary(tl.Entry))
			rng = &result.Tokens[i].Range
			break
		}
	}

	for i, cl := range result.Colors {
		if !posInRange(pos, cl.Range) {
			continue
		}
		md := colorSummary(cl.Color)
		if cl.IsRef {
			md = fmt.Sprintf("**%s**\n\n%s", extractText(content, cl.Range), md)
		}
		parts = append(parts, md)
		rng = &result.Colors[i].Range
		break
	}

	if len(parts) == 0 {
		return nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: strings.Join(parts, "\n\n---\n\n"),
		},
		Range: rng,
	}
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	uri := string(params.TextDocument.URI)

	result := s.docs.Result(uri)
	if result == nil {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return hover(result, content, params.Position), nil
}
