package main

import (
	"os"

	"github.com/pulseinsights/pitheme/internal/lsp"
	"github.com/spf13/pflag"
)

var version = "dev"

func main() {
	verbosity := pflag.CountP("verbose", "v", "increase log verbosity (repeatable)")
	pflag.Parse()

	s := lsp.NewServer(version, *verbosity)
	if err := s.Run(); err != nil {
		os.Exit(1)
	}
}
