package lsp

import (
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// paletteRefAtCursor returns the palette path under the cursor, cut after the
// segment the cursor is on. On "brand" in "palette.brand.soft" it returns
// "palette.brand". It returns "" when the cursor is not on a palette path.
func paletteRefAtCursor(line string, character uint32) string {
	col := int(character)
	if col >= len(line) {
		return ""
	}

	end := col
	for end < len(line) && isIdentChar(line[end]) {
		end++
	}
	start := col
	for start > 0 && isIdentChar(line[start-1]) {
		start--
	}

	parts := strings.Split(line[start:end], ".")
	if parts[0] != "palette" || len(parts) < 2 {
		return ""
	}

	cursorInWord := col - start
	var ref []string
	pos := 0
	for _, part := range parts {
		if pos <= cursorInWord {
			ref = append(ref, part)
		}
		pos += len(part) + 1
	}
	// palette.brand.color is defined by the brand block.
	if len(ref) > 2 && ref[len(ref)-1] == "color" {
		ref = ref[:len(ref)-1]
	}
	return strings.Join(ref, ".")
}

func isIdentChar(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9') ||
		b == '_' || b == '-' || b == '.'
}

// definition returns where the palette entry under the cursor is declared,
// or nil when the cursor is not on a known palette reference.
func definition(result *AnalysisResult, content string, uri string, pos protocol.Position) *protocol.Location {
	if result == nil {
		return nil
	}

	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}
	ref := paletteRefAtCursor(lines[pos.Line], pos.Character)
	if ref == "" {
		return nil
	}

	rng, ok := result.Symbols[ref]
	if !ok {
		return nil
	}
	return &protocol.Location{
		URI:   protocol.DocumentUri(uri),
		Range: rng,
	}
}

func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}
	if loc := definition(s.docs.Result(uri), content, uri, params.Position); loc != nil {
		return loc, nil
	}
	return nil, nil
}
