// Package engine renders user templates against a compiled theme, so one
// token file can feed CSS, design docs, native app resources and the like.
package engine

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"text/template"

	"github.com/pulseinsights/pitheme/internal/color"
	"github.com/pulseinsights/pitheme/internal/tokens"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("pitheme.engine")

// Theme is a compiled theme as templates see it.
type Theme struct {
	Name        string
	Author      string
	Description string
	CSS         string
	Tokens      *tokens.Tree
	Palette     *color.Node
	Warnings    []string
}

// Variables lists the theme's CSS custom properties in schema order.
func (t *Theme) Variables() []tokens.Variable {
	return t.Tokens.Variables()
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// Slug returns the directory name used for the theme's output.
func (t *Theme) Slug() string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(t.Name), "-"), "-")
	if slug == "" {
		return "theme"
	}
	return slug
}

// Engine loads and executes Go templates against a compiled Theme.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Apps         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the given theme, and writes output files below OutputDir/<slug>.
func (e *Engine) Run(theme *Theme) error {
	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	outDir := filepath.Join(e.OutputDir, theme.Slug())
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	funcs := funcMap(theme)
	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			continue
		}

		if err := renderTemplate(tmplPath, filepath.Join(outDir, baseName), theme, funcs); err != nil {
			return err
		}
		log.Debugf("rendered %s", filepath.Join(outDir, baseName))
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	// If no apps are specified, render all.
	if len(e.Apps) == 0 {
		return true
	}

	return slices.Contains(e.Apps, name)
}

func renderTemplate(tmplPath, outPath string, theme *Theme, funcs template.FuncMap) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(funcs).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, theme); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// resolveColor accepts a palette path ("palette.brand.soft"), a token path
// ("colors.primary") or a color literal.
func resolveColor(theme *Theme, value string) (color.Color, error) {
	if rest, ok := strings.CutPrefix(value, "palette."); ok {
		if theme.Palette == nil {
			return color.Color{}, fmt.Errorf("palette path not found: %s", value)
		}
		c, err := theme.Palette.Lookup(strings.Split(rest, "."))
		if err != nil {
			return color.Color{}, fmt.Errorf("%s: %w", value, err)
		}
		return c, nil
	}

	literal := value
	if v, ok := theme.Tokens.Get(tokens.ParsePath(value)); ok {
		literal = v
	}
	c, ok := color.Parse(literal)
	if !ok {
		return color.Color{}, fmt.Errorf("not a color: %q", value)
	}
	return c, nil
}

func funcMap(theme *Theme) template.FuncMap {
	return template.FuncMap{
		"hex": func(value string) (string, error) {
			c, err := resolveColor(theme, value)
			return c.Hex(), err
		},
		"hexBare": func(value string) (string, error) {
			c, err := resolveColor(theme, value)
			return c.HexBare(), err
		},
		"rgb": func(value string) (string, error) {
			c, err := resolveColor(theme, value)
			return c.RGB(), err
		},
		"token": func(path string) (string, error) {
			v, ok := theme.Tokens.Get(tokens.ParsePath(path))
			if !ok {
				return "", fmt.Errorf("unknown token %q", path)
			}
			return v, nil
		},
		"cssvar": func(path string) (string, error) {
			e, ok := tokens.Lookup(path)
			if !ok {
				return "", fmt.Errorf("unknown token %q", path)
			}
			return "var(" + e.CSSVar + ")", nil
		},
		"contrast": func(a, b string) (float64, error) {
			ca, err := resolveColor(theme, a)
			if err != nil {
				return 0, err
			}
			cb, err := resolveColor(theme, b)
			if err != nil {
				return 0, err
			}
			return math.Round(color.ContrastRatio(ca, cb)*100) / 100, nil
		},
	}
}
