package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/pulseinsights/pitheme/internal/analysis"
	"github.com/pulseinsights/pitheme/internal/variants"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	flagHTML       string
	flagURL        string
	flagNoSwatches bool
)

var variantsCmd = &cobra.Command{
	Use:   "variants [analysis-file]",
	Short: "Propose four themes that match a web page",
	Long: "Generate the Brand Faithful, High Contrast, Modern and Minimalist themes for a page.\n" +
		"The page is described by a saved analysis (.json or .yaml), a saved --html file,\n" +
		"or fetched with --url. One stylesheet per variant and variants.yaml are written to --out.",
	Args: cobra.MaximumNArgs(1),
	RunE: runVariants,
}

func init() {
	variantsCmd.Flags().StringVar(&flagHTML, "html", "", "analyse a saved HTML page")
	variantsCmd.Flags().StringVar(&flagURL, "url", "", "page URL; fetched unless --html is given")
	variantsCmd.Flags().String("out", "output", "output directory")
	variantsCmd.Flags().BoolVar(&flagNoSwatches, "no-swatches", false, "do not print color swatches")
	addCompileFlags(variantsCmd)
}

func runVariants(cmd *cobra.Command, args []string) error {
	a, err := loadAnalysis(cmd, args)
	if err != nil {
		return err
	}
	if a.Fallback {
		fmt.Fprintln(cmd.ErrOrStderr(), "Page could not be analysed; using default colors")
	}

	compiled, err := variants.New().Compile(a, cfg.Compile)
	if err != nil {
		var cerr *variants.CompileError
		if errors.As(err, &cerr) {
			for _, e := range cerr.Errors {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %s: %s\n", cerr.Theme, e)
			}
		}
		return err
	}

	outDir := cfg.Output.Dir
	if err := writeVariants(outDir, compiled); err != nil {
		return err
	}
	if !flagNoSwatches {
		fmt.Fprintln(cmd.OutOrStdout(), renderSwatches(compiled))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d variants to %s\n", len(compiled), outDir)
	return nil
}

func loadAnalysis(cmd *cobra.Command, args []string) (analysis.Analysis, error) {
	switch {
	case flagHTML != "":
		src, err := os.ReadFile(flagHTML)
		if err != nil {
			return analysis.Analysis{}, fmt.Errorf("reading html: %w", err)
		}
		return analysis.FromHTML(analysis.NormalizeURL(flagURL), src)
	case flagURL != "":
		ctx, stop := signalContext()
		defer stop()
		client := &http.Client{Timeout: 15 * time.Second}
		return analysis.Fetch(ctx, client, flagURL), nil
	case len(args) == 1:
		return analysis.Load(args[0])
	default:
		return analysis.Analysis{}, fmt.Errorf("provide an analysis file, --html or --url")
	}
}

// writeVariants writes <kind>.css for every variant and variants.yaml with
// their configs and tokens.
func writeVariants(dir string, compiled []variants.Compiled) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, c := range compiled {
		path := filepath.Join(dir, string(c.Kind)+".css")
		if err := os.WriteFile(path, []byte(c.CSS), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	data, err := yaml.Marshal(compiled)
	if err != nil {
		return fmt.Errorf("encoding variants: %w", err)
	}
	path := filepath.Join(dir, "variants.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

var titleStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)

// renderSwatches draws each variant's main colors as labelled blocks.
func renderSwatches(compiled []variants.Compiled) string {
	var b strings.Builder
	for _, c := range compiled {
		colors := c.Tokens.Colors
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%s)", c.Name, c.Kind)))
		b.WriteString("\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			swatch("primary", colors.Primary, colors.OnPrimary),
			swatch("hover", colors.PrimaryHover, colors.OnPrimary),
			swatch("secondary", colors.Secondary, colors.Bg),
			swatch("text", colors.Bg, colors.Text),
			swatch("border", colors.AnswerBorder, colors.Text),
		))
		b.WriteString("\n")
		for _, w := range c.Warnings {
			b.WriteString("  warning: " + w + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func swatch(label, bg, fg string) string {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg)).
		Foreground(lipgloss.Color(fg)).
		Padding(0, 1).
		MarginRight(1).
		Render(fmt.Sprintf("%s %s", label, bg))
}
