package lsp

import (
	"sort"
	"strings"

	"github.com/pulseinsights/pitheme/internal/color"
	"github.com/pulseinsights/pitheme/internal/tokens"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// splitLines splits content into lines, preserving empty trailing lines.
func splitLines(content string) []string {
	return strings.Split(content, "\n")
}

// metaAttributes are the valid attributes inside the meta block.
var metaAttributes = []string{"name", "author", "description"}

// complete produces completion items given an analysis result, document content,
// and cursor position. This is the core logic, decoupled from the LSP protocol
// handler for testability.
func complete(result *AnalysisResult, content string, pos protocol.Position) []protocol.CompletionItem {
	lines := splitLines(content)
	if int(pos.Line) >= len(lines) {
		return nil
	}

	line := lines[pos.Line]
	charPos := min(int(pos.Character), len(line))
	textBeforeCursor := line[:charPos]

	// Check for palette path completion: look for "palette." or "palette.xxx."
	if items, ok := tryPaletteCompletion(result, textBeforeCursor); ok {
		return items
	}

	// After "=", offer functions and palette
	if isValuePosition(textBeforeCursor) {
		return valueCompletions()
	}

	stack := blockStack(lines, int(pos.Line))
	switch {
	case len(stack) == 0:
		return topLevelCompletions()
	case stack[0] == "meta" && len(stack) == 1:
		return attributeCompletions(metaAttributes, findDefinedAttributes(lines, int(pos.Line)))
	case stack[0] == "palette":
		return nil
	}
	return groupCompletions(tokens.Path(stack), findDefinedAttributes(lines, int(pos.Line)))
}

// tryPaletteCompletion checks if the text before the cursor ends with a palette
// path prefix (e.g., "palette." or "palette.brand.") and returns completion
// items for the children at that node in the palette tree. ok is false when
// the cursor is not on a palette path.
func tryPaletteCompletion(result *AnalysisResult, textBeforeCursor string) (items []protocol.CompletionItem, ok bool) {
	idx := strings.LastIndex(textBeforeCursor, "palette.")
	if idx == -1 {
		return nil, false
	}
	if result == nil || result.Palette == nil {
		return nil, true
	}
	pathStr := textBeforeCursor[idx+len("palette."):]

	// - "palette."          -> children of root
	// - "palette.brand."    -> children of "brand"
	// - "palette.bra"       -> children of root (client filters partial match)
	// - "palette.brand.so"  -> children of "brand"
	var segments []string
	if parts := strings.Split(pathStr, "."); len(parts) > 1 {
		segments = parts[:len(parts)-1]
	}

	node := result.Palette
	for _, seg := range segments {
		child, found := node.Children[seg]
		if !found {
			return nil, true
		}
		node = child
	}

	if node.Children == nil {
		return nil, true
	}
	return nodeChildrenToCompletionItems(node), true
}

// nodeChildrenToCompletionItems converts a node's children into completion items,
// sorted by name.
func nodeChildrenToCompletionItems(node *color.Node) []protocol.CompletionItem {
	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]protocol.CompletionItem, 0, len(names))
	for _, name := range names {
		child := node.Children[name]
		item := protocol.CompletionItem{
			Label: name,
			Kind:  completionKindPtr(protocol.CompletionItemKindColor),
		}
		if child.Color != nil {
			item.Detail = strPtr(child.Color.Hex())
		} else {
			item.Kind = completionKindPtr(protocol.CompletionItemKindModule)
			item.Detail = strPtr("color group")
		}
		items = append(items, item)
	}
	return items
}

// isValuePosition returns true if the text before the cursor indicates we are
// at a value position (after an "=" sign with nothing meaningful following it).
func isValuePosition(textBeforeCursor string) bool {
	trimmed := strings.TrimSpace(textBeforeCursor)
	eqIdx := strings.LastIndex(trimmed, "=")
	if eqIdx == -1 {
		return false
	}
	return strings.TrimSpace(trimmed[eqIdx+1:]) == ""
}

type function struct {
	name, signature, snippet string
}

var functions = []function{
	{"lighten", "lighten(color, amount)", "lighten(${1:color}, ${2:0.1})"},
	{"darken", "darken(color, amount)", "darken(${1:color}, ${2:0.1})"},
	{"contrast", "contrast(a, b) number", "contrast(${1:a}, ${2:b})"},
	{"readable", "readable(background)", "readable(${1:color})"},
}

// valueCompletions returns completion items for a value position, including
// function snippets and a palette reference trigger.
func valueCompletions() []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	items := make([]protocol.CompletionItem, 0, len(functions)+1)
	for _, fn := range functions {
		items = append(items, protocol.CompletionItem{
			Label:            fn.name,
			Kind:             completionKindPtr(protocol.CompletionItemKindFunction),
			Detail:           strPtr(fn.signature),
			InsertText:       strPtr(fn.snippet),
			InsertTextFormat: &snippetFormat,
		})
	}
	return append(items, protocol.CompletionItem{
		Label:      "palette",
		Kind:       completionKindPtr(protocol.CompletionItemKindVariable),
		Detail:     strPtr("palette reference"),
		InsertText: strPtr("palette."),
	})
}

// blockStack scans from the top of the file down to the cursor line and
// returns the names of the blocks enclosing the cursor, outermost first.
func blockStack(lines []string, cursorLine int) []string {
	var stack []string
	for i := 0; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		opens := strings.Count(line, "{")
		closes := strings.Count(line, "}")

		if opens > 0 {
			if parts := strings.Fields(line); len(parts) >= 1 {
				for j := 0; j < opens; j++ {
					stack = append(stack, strings.TrimSuffix(parts[0], "{"))
				}
			}
		}
		for j := 0; j < closes; j++ {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return stack
}

// findDefinedAttributes scans the current block (from the nearest opening brace
// before cursorLine to cursorLine) and returns attribute names already defined
// (lines containing "name = ...").
func findDefinedAttributes(lines []string, cursorLine int) map[string]bool {
	defined := make(map[string]bool)

	startLine := 0
	depth := 0
	for i := cursorLine; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		depth += strings.Count(line, "}") - strings.Count(line, "{")
		if depth < 0 {
			startLine = i
			break
		}
	}

	for i := startLine; i <= cursorLine; i++ {
		line := strings.TrimSpace(lines[i])
		if eqIdx := strings.Index(line, "="); eqIdx > 0 {
			name := strings.TrimSpace(line[:eqIdx])
			if !strings.Contains(name, " ") && !strings.Contains(name, "{") {
				defined[name] = true
			}
		}
	}
	return defined
}

func attributeCompletions(names []string, defined map[string]bool) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, name := range names {
		if !defined[name] {
			items = append(items, protocol.CompletionItem{
				Label: name,
				Kind:  completionKindPtr(protocol.CompletionItemKindProperty),
			})
		}
	}
	return items
}

// groupCompletions offers the tokens and nested groups of a token group,
// skipping tokens already assigned in the block.
func groupCompletions(prefix tokens.Path, defined map[string]bool) []protocol.CompletionItem {
	leaves, groups := tokens.Children(prefix)
	if leaves == nil && groups == nil {
		return nil
	}

	var items []protocol.CompletionItem
	for _, name := range leaves {
		if defined[name] {
			continue
		}
		item := protocol.CompletionItem{
			Label: name,
			Kind:  completionKindPtr(protocol.CompletionItemKindProperty),
		}
		if e, ok := tokens.Lookup(append(prefix[:len(prefix):len(prefix)], name).String()); ok {
			item.Detail = strPtr(e.CSSVar)
			item.Documentation = e.Label
			if e.Kind == tokens.KindColor {
				item.Kind = completionKindPtr(protocol.CompletionItemKindColor)
			}
		}
		items = append(items, item)
	}
	return append(items, blockCompletions(groups)...)
}

// topLevelCompletions returns completion items for top-level block names.
func topLevelCompletions() []protocol.CompletionItem {
	return blockCompletions(append([]string{"meta", "palette"}, tokens.Groups()...))
}

func blockCompletions(names []string) []protocol.CompletionItem {
	snippetFormat := protocol.InsertTextFormatSnippet

	var items []protocol.CompletionItem
	for _, name := range names {
		items = append(items, protocol.CompletionItem{
			Label:            name,
			Kind:             completionKindPtr(protocol.CompletionItemKindModule),
			InsertText:       strPtr(name + " {\n  $0\n}"),
			InsertTextFormat: &snippetFormat,
		})
	}
	return items
}

// completionKindPtr returns a pointer to a CompletionItemKind.
func completionKindPtr(k protocol.CompletionItemKind) *protocol.CompletionItemKind {
	return &k
}

// textDocumentCompletion is the LSP handler for textDocument/completion requests.
func (s *Server) textDocumentCompletion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	uri := string(params.TextDocument.URI)

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}

	return complete(s.docs.Result(uri), content, params.Position), nil
}
