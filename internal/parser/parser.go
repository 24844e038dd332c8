// Package parser loads token files. HCL files may declare a palette and use
// color functions; JSON, YAML and TOML files hold the token groups directly.
package parser

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pulseinsights/pitheme/internal/color"
	"github.com/pulseinsights/pitheme/internal/tokens"
	"gopkg.in/yaml.v3"
)

// Meta holds theme metadata.
type Meta struct {
	Name        string `hcl:"name,optional" json:"name" yaml:"name" toml:"name"`
	Author      string `hcl:"author,optional" json:"author" yaml:"author" toml:"author"`
	Description string `hcl:"description,optional" json:"description" yaml:"description" toml:"description"`
}

// Document is a loaded token file.
type Document struct {
	Meta    Meta
	Palette *color.Node
	Tokens  tokens.Raw
}

// Extensions lists the file extensions Load understands.
var Extensions = []string{".hcl", ".json", ".yaml", ".yml", ".toml"}

// Load reads and parses a token file, picking the format from its extension.
func Load(path string) (*Document, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading token file: %w", err)
	}
	return Parse(path, src)
}

// Parse parses token file content. filename selects the format and is used
// in error messages.
func Parse(filename string, src []byte) (*Document, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".hcl" {
		f := AnalyzeHCL(filename, src)
		if err := IssuesError(f.Issues); err != nil {
			return nil, err
		}
		return &f.Document, nil
	}

	var m map[string]any
	var err error
	switch ext {
	case ".json":
		err = json.Unmarshal(src, &m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(src, &m)
	case ".toml":
		err = toml.Unmarshal(src, &m)
	default:
		return nil, fmt.Errorf("unsupported token file format %q (valid: %s)", ext, strings.Join(Extensions, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return FromMap(m)
}

// FromMap builds a document from decoded data. An optional "meta" key holds
// metadata; every other key must be a token group.
func FromMap(m map[string]any) (*Document, error) {
	raw := tokens.Raw{}
	doc := &Document{Palette: &color.Node{}, Tokens: raw}
	for k, v := range m {
		if k == "meta" {
			continue
		}
		raw[k] = v
	}
	if _, ok := m["meta"]; ok {
		meta := tokens.Raw{"meta": m["meta"]}
		doc.Meta.Name, _ = meta.String(tokens.Path{"meta", "name"})
		doc.Meta.Author, _ = meta.String(tokens.Path{"meta", "author"})
		doc.Meta.Description, _ = meta.String(tokens.Path{"meta", "description"})
	}

	if issues := CheckRaw(raw); len(issues) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(issues, "\n"))
	}
	return doc, nil
}

// CheckRaw reports every key of raw that is not a token group, nested
// group or token name, in sorted order.
func CheckRaw(raw tokens.Raw) []string {
	return checkLevel(raw, nil)
}

func checkLevel(m map[string]any, prefix tokens.Path) []string {
	leaves, groups := tokens.Children(prefix)
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var issues []string
	for _, k := range keys {
		path := append(prefix[:len(prefix):len(prefix)], k)
		child, isMap := asMap(m[k])
		switch {
		case contains(groups, k) && isMap:
			issues = append(issues, checkLevel(child, path)...)
		case contains(groups, k):
			issues = append(issues, fmt.Sprintf("%s is a group; expected an object", path))
		case contains(leaves, k) && isMap:
			issues = append(issues, fmt.Sprintf("%s is a token; expected a value, got an object", path))
		case contains(leaves, k):
		case len(prefix) == 0:
			issues = append(issues, fmt.Sprintf("unknown group %q (valid: %s)", k, validList(groups)))
		default:
			issues = append(issues, fmt.Sprintf("unknown attribute %q in %s (valid: %s)", k, prefix, validList(append(leaves, groups...))))
		}
	}
	return issues
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case tokens.Raw:
		return m, true
	case map[string]any:
		return m, true
	default:
		return nil, false
	}
}
