// Package main provides the entry point for the atomic CLI.
package main

import (
	"context"
	"os"

	"github.com/atomiclab/atomic/internal/cli"
	"github.com/atomiclab/atomic/internal/signal"
)

// Build information, set at build time via ldflags.
var (
	version = "dev"     //nolint:gochecknoglobals // set via ldflags
	commit  = "none"    //nolint:gochecknoglobals // set via ldflags
	date    = "unknown" //nolint:gochecknoglobals // set via ldflags
)

func main() {
	h := signal.NewHandler(context.Background())
	defer h.Stop()

	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	if err := cli.Execute(h.Context(), info); err != nil {
		os.Exit(1)
	}
}
