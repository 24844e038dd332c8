package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pulseinsights/pitheme"
	"github.com/pulseinsights/pitheme/internal/format"
	"github.com/spf13/cobra"
)

var (
	flagTheme     string
	flagTemplates string
	flagApp       []string
	flagCheck     bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render templates against a compiled token file",
	RunE:  runGenerate,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format .hcl token files",
	Long:  "Format one or more .hcl token files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

func init() {
	generateCmd.Flags().StringVar(&flagTheme, "theme", "theme.hcl", "path to the token file")
	generateCmd.Flags().String("out", "output", "output directory")
	generateCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	generateCmd.Flags().StringArrayVar(&flagApp, "app", nil, "render only these templates, by output name (can be repeated)")
	addCompileFlags(generateCmd)
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	theme, err := pitheme.Load(flagTheme, cfg.Compile)
	if err != nil {
		return err
	}
	for _, w := range theme.Warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", w)
	}

	e := &pitheme.Engine{
		TemplatesDir: flagTemplates,
		OutputDir:    cfg.Output.Dir,
		Apps:         flagApp,
	}
	if err := e.Run(theme); err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated theme files in %s\n", filepath.Join(cfg.Output.Dir, theme.Slug()))
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.Format(content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}
