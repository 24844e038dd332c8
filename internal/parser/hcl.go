package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/pulseinsights/pitheme/internal/color"
	"github.com/pulseinsights/pitheme/internal/tokens"
	"github.com/zclconf/go-cty/cty"
)

// Issue is a problem found at a source location.
type Issue struct {
	Range   hcl.Range
	Message string
}

func (i Issue) String() string {
	if i.Range.Filename == "" {
		return i.Message
	}
	return fmt.Sprintf("%s:%d,%d: %s", i.Range.Filename, i.Range.Start.Line, i.Range.Start.Column, i.Message)
}

// ColorRef records a resolved color at a specific source position.
type ColorRef struct {
	Range hcl.Range
	Color color.Color
	IsRef bool // true unless the value is a literal string
}

// TokenRef records where a token is assigned.
type TokenRef struct {
	Path  tokens.Path
	Range hcl.Range
	Value string
}

// File is everything learned from walking an HCL token file. Walking does
// not stop at the first problem: Issues lists all of them.
type File struct {
	Document
	Issues  []Issue
	Colors  []ColorRef
	Symbols map[string]hcl.Range // "palette.brand.soft" -> definition range
	Refs    []TokenRef
}

// item is an attribute or block in source order.
type item struct {
	pos   hcl.Pos
	attr  *hclsyntax.Attribute
	block *hclsyntax.Block
}

func sourceOrder(body *hclsyntax.Body) []item {
	var items []item
	for _, attr := range body.Attributes {
		items = append(items, item{pos: attr.SrcRange.Start, attr: attr})
	}
	for _, block := range body.Blocks {
		items = append(items, item{pos: block.DefRange().Start, block: block})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].pos.Byte < items[j].pos.Byte
	})
	return items
}

// AnalyzeHCL parses an HCL token file from memory. The palette block is
// evaluated first, in source order so later entries can reference earlier
// ones; each token group block is then evaluated against it.
func AnalyzeHCL(filename string, src []byte) *File {
	f := &File{
		Document: Document{Palette: &color.Node{}, Tokens: tokens.Raw{}},
		Symbols:  make(map[string]hcl.Range),
	}

	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		f.addDiags(diags)
		// Keep the palette of the partial body so editors can still offer it.
		if body, ok := file.Body.(*hclsyntax.Body); ok {
			for _, block := range body.Blocks {
				if block.Type == "palette" {
					f.walkPalette(block.Body, f.Palette, "palette")
				}
			}
		}
		return f
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		f.addIssue(hcl.Range{Filename: filename}, "parsed body is not an hclsyntax.Body")
		return f
	}

	for _, attr := range body.Attributes {
		f.addIssue(attr.NameRange, fmt.Sprintf("unexpected attribute %q at top level; token values belong in a group block", attr.Name))
	}

	for _, block := range body.Blocks {
		switch block.Type {
		case "meta":
			if diags := gohcl.DecodeBody(block.Body, nil, &f.Meta); diags.HasErrors() {
				f.addDiags(diags)
			}
		case "palette":
			f.walkPalette(block.Body, f.Palette, "palette")
		}
	}

	ctx := BuildEvalContext(f.Palette)
	for _, block := range body.Blocks {
		if block.Type == "meta" || block.Type == "palette" {
			continue
		}
		if !contains(tokens.Groups(), block.Type) {
			valid := append([]string{"meta", "palette"}, tokens.Groups()...)
			f.addIssue(block.TypeRange, fmt.Sprintf("unknown block %q (valid: %s)", block.Type, strings.Join(valid, ", ")))
			continue
		}
		f.walkGroup(block, tokens.Path{block.Type}, ctx)
	}
	return f
}

func (f *File) addIssue(rng hcl.Range, msg string) {
	f.Issues = append(f.Issues, Issue{Range: rng, Message: msg})
}

func (f *File) addDiags(diags hcl.Diagnostics) {
	for _, d := range diags {
		msg := d.Summary
		if d.Detail != "" {
			msg += ": " + d.Detail
		}
		var rng hcl.Range
		if d.Subject != nil {
			rng = *d.Subject
		}
		f.addIssue(rng, msg)
	}
}

// walkPalette parses a palette block body:
//   - Direct color attributes: key = "#hex"
//   - Nested blocks: key { sub = ... }, optionally with their own color attribute
func (f *File) walkPalette(body *hclsyntax.Body, node *color.Node, prefix string) {
	for _, it := range sourceOrder(body) {
		if it.block != nil {
			if node.Children == nil {
				node.Children = make(map[string]*color.Node)
			}
			child := &color.Node{}
			node.Children[it.block.Type] = child
			f.Symbols[prefix+"."+it.block.Type] = it.block.DefRange()
			f.walkPalette(it.block.Body, child, prefix+"."+it.block.Type)
			continue
		}

		attr := it.attr
		name := prefix + "." + attr.Name
		if attr.Name != "color" {
			f.Symbols[name] = attr.SrcRange
		}

		// Rebuild the context so the attribute sees every earlier entry.
		val, diags := attr.Expr.Value(BuildEvalContext(f.Palette))
		if diags.HasErrors() {
			f.addIssue(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", name, diags.Error()))
			continue
		}
		s, err := ResolveColor(val)
		if err != nil {
			f.addIssue(attr.SrcRange, fmt.Sprintf("%s: %s", name, err))
			continue
		}
		c, ok := color.Parse(s)
		if !ok {
			f.addIssue(attr.SrcRange, fmt.Sprintf("%s: invalid color %q", name, s))
			continue
		}
		f.Colors = append(f.Colors, ColorRef{Range: attr.Expr.Range(), Color: c, IsRef: !isLiteralExpr(attr.Expr)})

		if attr.Name == "color" {
			node.Color = &c
			continue
		}
		if node.Children == nil {
			node.Children = make(map[string]*color.Node)
		}
		node.Children[attr.Name] = &color.Node{Color: &c}
	}
}

// walkGroup evaluates the attributes of a token group block and recurses into
// nested groups, checking every name against the schema.
func (f *File) walkGroup(block *hclsyntax.Block, prefix tokens.Path, ctx *hcl.EvalContext) {
	if len(block.Labels) > 0 {
		f.addIssue(block.LabelRanges[0], fmt.Sprintf("block %q takes no labels", block.Type))
	}
	leaves, groups := tokens.Children(prefix)

	for _, it := range sourceOrder(block.Body) {
		if it.block != nil {
			if !contains(groups, it.block.Type) {
				f.addIssue(it.block.TypeRange, fmt.Sprintf("unknown block %q in %s (valid: %s)", it.block.Type, prefix, validList(groups)))
				continue
			}
			f.walkGroup(it.block, append(prefix[:len(prefix):len(prefix)], it.block.Type), ctx)
			continue
		}

		attr := it.attr
		path := append(prefix[:len(prefix):len(prefix)], attr.Name)
		switch {
		case contains(groups, attr.Name):
			f.addIssue(attr.NameRange, fmt.Sprintf("%s is a group; write it as a block", path))
			continue
		case !contains(leaves, attr.Name):
			f.addIssue(attr.NameRange, fmt.Sprintf("unknown attribute %q in %s (valid: %s)", attr.Name, prefix, validList(leaves)))
			continue
		}

		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			f.addIssue(attr.SrcRange, fmt.Sprintf("evaluating %s: %s", path, diags.Error()))
			continue
		}
		s, err := cssValue(val)
		if err != nil {
			f.addIssue(attr.SrcRange, fmt.Sprintf("%s: %s", path, err))
			continue
		}

		tokens.SetPath(f.Tokens, path, s)
		f.Refs = append(f.Refs, TokenRef{Path: path, Range: attr.SrcRange, Value: s})
		if e, ok := tokens.Lookup(path.String()); ok && e.Kind == tokens.KindColor {
			if c, ok := color.Parse(s); ok {
				f.Colors = append(f.Colors, ColorRef{Range: attr.Expr.Range(), Color: c, IsRef: !isLiteralExpr(attr.Expr)})
			}
		}
	}
}

// cssValue renders an evaluated attribute as a token string.
func cssValue(val cty.Value) (string, error) {
	if val.IsNull() {
		return "", fmt.Errorf("value is null")
	}
	switch {
	case val.Type() == cty.String:
		return val.AsString(), nil
	case val.Type() == cty.Number:
		return val.AsBigFloat().Text('f', -1), nil
	case val.Type() == cty.Bool:
		if val.True() {
			return "true", nil
		}
		return "false", nil
	}
	return ResolveColor(val)
}

// isLiteralExpr reports whether expr is a plain string or number with no
// references or function calls.
func isLiteralExpr(expr hclsyntax.Expression) bool {
	switch e := expr.(type) {
	case *hclsyntax.LiteralValueExpr:
		return true
	case *hclsyntax.TemplateExpr:
		return e.IsStringLiteral()
	default:
		return false
	}
}

// IssuesError combines issues into a single error, or returns nil.
func IssuesError(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	msgs := make([]string, len(issues))
	for i, is := range issues {
		msgs[i] = is.String()
	}
	return fmt.Errorf("%s", strings.Join(msgs, "\n"))
}

func validList(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
