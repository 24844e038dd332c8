package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pulseinsights/pitheme/internal/compiler"
	"github.com/pulseinsights/pitheme/internal/parser"
	"github.com/pulseinsights/pitheme/internal/server"
	"github.com/pulseinsights/pitheme/internal/theme"
	"github.com/spf13/cobra"
)

var (
	flagOutput string
	flagWatch  bool
)

var compileCmd = &cobra.Command{
	Use:   "compile <tokens-file>",
	Short: "Compile a token file into the widget stylesheet",
	Long: "Compile a token file (.hcl, .json, .yaml or .toml) into the widget stylesheet.\n" +
		"The stylesheet is written to stdout unless --output is given.",
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

var validateCmd = &cobra.Command{
	Use:   "validate <tokens-file>",
	Short: "Check a token file for missing core tokens and contrast problems",
	Args:  cobra.ExactArgs(1),
	Run:   runValidate,
}

func init() {
	compileCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write the stylesheet to this file")
	compileCmd.Flags().BoolVarP(&flagWatch, "watch", "w", false, "recompile whenever the token file changes")
	addCompileFlags(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	path := args[0]
	if !flagWatch {
		return compileFile(path, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	ctx, stop := signalContext()
	defer stop()

	if err := compileFile(path, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %s for changes\n", path)
	return server.WatchFile(ctx, path, func() {
		if err := compileFile(path, cmd.OutOrStdout(), cmd.ErrOrStderr()); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
	})
}

// compileFile compiles path and writes the stylesheet to --output or stdout.
func compileFile(path string, stdout, stderr io.Writer) error {
	doc, err := parser.Load(path)
	if err != nil {
		return fmt.Errorf("loading tokens: %w", err)
	}

	res := compiler.Compile(doc.Tokens, cfg.Compile)
	if !res.OK() {
		for _, e := range res.Errors {
			fmt.Fprintf(stderr, "error: %s\n", e)
		}
		return fmt.Errorf("compiling %s: %d errors", path, len(res.Errors))
	}

	if flagOutput == "" {
		_, err := io.WriteString(stdout, res.CSS)
		return err
	}
	if err := os.WriteFile(flagOutput, []byte(res.CSS), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagOutput, err)
	}
	fmt.Fprintf(stderr, "Wrote %s\n", flagOutput)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) {
	doc, err := parser.Load(args[0])
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
		os.Exit(1)
	}

	report := theme.Validate(theme.Normalize(doc.Tokens))
	for _, w := range report.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
	}
	for _, e := range report.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", e)
	}
	if !report.OK() {
		os.Exit(1)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", args[0])
}
