package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pulseinsights/pitheme/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("pitheme")

var (
	flagConfig string
	version    = "dev" // Injected at build time via ldflags

	cfg *config.Config
)

// flagKeys maps command flags to the config keys they override.
var flagKeys = map[string]string{
	"legacy-layer":       "compile.include_legacy_layer",
	"focus-styles":       "compile.include_focus_styles",
	"slider-styles":      "compile.include_slider_styles",
	"all-at-once-styles": "compile.include_all_at_once_styles",
	"out":                "output.dir",
	"addr":               "server.addr",
	"verbose":            "log.verbosity",
	"log-file":           "log.file",
}

var rootCmd = &cobra.Command{
	Use:               "pitheme",
	Short:             "Compile survey widget design tokens into an isolated stylesheet",
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ./pitheme.yaml)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase log verbosity (repeatable)")
	rootCmd.PersistentFlags().String("log-file", "", "write logs to this file instead of stderr")

	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// addCompileFlags registers the stylesheet section switches on cmd.
func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("legacy-layer", false, "append the legacy compatibility overlay")
	cmd.Flags().Bool("focus-styles", true, "include keyboard focus styles")
	cmd.Flags().Bool("slider-styles", true, "include slider question styles")
	cmd.Flags().Bool("all-at-once-styles", true, "include all-at-once layout styles")
}

// setup resolves the configuration for the command being run and configures
// logging. Flags the command defines override the config file and environment.
func setup(cmd *cobra.Command, args []string) error {
	v := config.New()
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return fmt.Errorf("binding flags: %w", bindErr)
	}

	c, err := config.Load(v, flagConfig)
	if err != nil {
		return err
	}
	cfg = c

	var logFile *string
	if cfg.Log.File != "" {
		logFile = &cfg.Log.File
	}
	commonlog.Configure(cfg.Log.Verbosity, logFile)
	log.Debugf("using config file %q", v.ConfigFileUsed())
	return nil
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
