package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/deyak360/recording-trimmer/version"
)

func main() {
	ctx := context.Background()

	appl := &cli.Command{
		Name:    version.Name(),
		Usage:   "Detect loudness spikes in lecture recordings and trim the dead tail",
		Version: version.Version() + " " + version.Commit(),
		Commands: []*cli.Command{
			scanCommand(),
			trimCommand(),
		},
	}

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}
