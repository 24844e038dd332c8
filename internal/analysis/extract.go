package analysis

import (
	"bytes"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/pulseinsights/pitheme/internal/color"
	"golang.org/x/net/html"
)

var (
	colorPattern      = regexp.MustCompile(`#(?:[0-9a-fA-F]{3,8})\b|rgba?\([^)]+\)`)
	inlineFontPattern = regexp.MustCompile(`(?i)font-family\s*:\s*([^;"']+)`)
	fontPattern       = regexp.MustCompile(`(?i)font-family\s*:\s*([^;}]+)`)
	rootBlockPattern  = regexp.MustCompile(`(?i):root\s*\{([^}]+)\}`)
	rootVarPattern    = regexp.MustCompile(`(?i)(--[a-z0-9_-]+)\s*:\s*([^;]+);`)
)

const (
	darkLuminance  = 0.35
	lightLuminance = 0.65

	maxClassColors  = 8
	maxAccentColors = 12
	maxFontFamilies = 6
)

// Classified groups page colors by lightness.
type Classified struct {
	Text        []string
	Backgrounds []string
	Accents     []string
	Borders     []string
}

// FromHTML analyses a page's markup. Colors come from inline style
// attributes first, then from anywhere in the document text.
func FromHTML(url string, src []byte) (Analysis, error) {
	doc, err := html.Parse(bytes.NewReader(src))
	if err != nil {
		return Analysis{}, fmt.Errorf("parsing html: %w", err)
	}
	styles := inlineStyles(doc)
	text := string(src)

	var found []string
	for _, s := range styles {
		found = append(found, matchColors(s)...)
	}
	found = append(found, matchColors(text)...)
	classified := Classify(uniqueNonEmpty(found))

	families := FontFamilies(styles, text)
	if len(families) == 0 {
		families = []string{"system-ui"}
	}

	a := Analysis{
		URL: url,
		Colors: Colors{
			Backgrounds:       orDefault(classified.Backgrounds, DefaultBackgrounds),
			TextColors:        orDefault(classified.Text, DefaultTextColors),
			AccentColors:      orDefault(classified.Accents, DefaultAccentColors),
			BorderColors:      orDefault(classified.Borders, DefaultBorderColors),
			PrimaryBackground: DefaultBackgrounds[0],
			PrimaryText:       DefaultTextColors[0],
			RootVariables:     RootVariables(text),
			LogoColors:        []string{},
		},
		Fonts:     Fonts{Families: families, Sizes: []string{}, Weights: []string{}},
		Timestamp: time.Now().UTC(),
	}
	if len(classified.Backgrounds) > 0 {
		a.Colors.PrimaryBackground = classified.Backgrounds[0]
	}
	if len(classified.Text) > 0 {
		a.Colors.PrimaryText = classified.Text[0]
	}
	return a, nil
}

func inlineStyles(n *html.Node) []string {
	var styles []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == "style" && attr.Val != "" {
					styles = append(styles, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return styles
}

func matchColors(s string) []string {
	matches := colorPattern.FindAllString(s, -1)
	for i, m := range matches {
		matches[i] = strings.TrimSuffix(strings.TrimSpace(m), ";")
	}
	return matches
}

type scored struct {
	hex       string
	luminance float64
}

// Classify sorts colors by relative luminance and splits them: dark ones are
// text candidates, light ones backgrounds and the middle band borders.
// Accents are the middle band followed by the lighter backgrounds past the
// first two. Unparseable values are dropped and colors that normalize to the
// same hex are kept once.
func Classify(values []string) Classified {
	var unique []scored
	seen := make(map[string]bool)
	for _, v := range values {
		c, ok := color.Parse(v)
		if !ok || seen[c.Hex()] {
			continue
		}
		seen[c.Hex()] = true
		unique = append(unique, scored{hex: c.Hex(), luminance: color.RelativeLuminance(c)})
	}
	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].luminance < unique[j].luminance
	})

	var dark, light, middle []string
	for _, s := range unique {
		switch {
		case s.luminance <= darkLuminance:
			dark = append(dark, s.hex)
		case s.luminance >= lightLuminance:
			light = append(light, s.hex)
		default:
			middle = append(middle, s.hex)
		}
	}

	accents := append(clone(middle), tail(light, 2)...)
	return Classified{
		Text:        head(dark, maxClassColors),
		Backgrounds: head(light, maxClassColors),
		Accents:     head(accents, maxAccentColors),
		Borders:     head(middle, maxClassColors),
	}
}

// FontFamilies returns the first family named by each font-family
// declaration, inline styles first, without duplicates.
func FontFamilies(inline []string, text string) []string {
	var families []string
	for _, s := range inline {
		for _, m := range inlineFontPattern.FindAllStringSubmatch(s, -1) {
			families = append(families, firstFamily(m[1]))
		}
	}
	for _, m := range fontPattern.FindAllStringSubmatch(text, -1) {
		families = append(families, firstFamily(m[1]))
	}
	return head(uniqueNonEmpty(families), maxFontFamilies)
}

func firstFamily(value string) string {
	first, _, _ := strings.Cut(value, ",")
	first = strings.NewReplacer(`"`, "", "'", "").Replace(first)
	return strings.TrimSpace(first)
}

// RootVariables collects custom properties declared in :root blocks. The
// first declaration of a name wins.
func RootVariables(text string) map[string]string {
	vars := map[string]string{}
	for _, block := range rootBlockPattern.FindAllStringSubmatch(text, -1) {
		for _, m := range rootVarPattern.FindAllStringSubmatch(block[1], -1) {
			name, value := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
			if name == "" || value == "" {
				continue
			}
			if _, seen := vars[name]; !seen {
				vars[name] = value
			}
		}
	}
	return vars
}

func uniqueNonEmpty(values []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, v := range values {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func tail(s []string, from int) []string {
	if len(s) <= from {
		return nil
	}
	return s[from:]
}
