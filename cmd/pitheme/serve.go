package main

import (
	"github.com/pulseinsights/pitheme/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve [tokens-file]",
	Short: "Run the preview server",
	Long: "Serve the compile API. With a token file, also serve its stylesheet at /theme.css\n" +
		"and push every recompile to websocket clients on /ws.",
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "127.0.0.1:8787", "listen address")
	addCompileFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signalContext()
	defer stop()

	hub := server.NewHub()
	var session *server.Session
	if len(args) == 1 {
		session = server.NewSession(args[0], cfg.Compile, hub)
		session.Reload()
		go func() {
			if err := server.WatchFile(ctx, args[0], func() { session.Reload() }); err != nil {
				log.Errorf("watching %s: %s", args[0], err)
			}
		}()
	}

	return server.New(session, hub, cfg.Compile).ListenAndServe(ctx, cfg.Server.Addr)
}
