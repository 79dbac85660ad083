//nolint:wrapcheck
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/farcloser/primordium/fault"
	"github.com/farcloser/primordium/format"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	trimmer "github.com/deyak360/recording-trimmer"
	"github.com/deyak360/recording-trimmer/internal/config"
	"github.com/deyak360/recording-trimmer/internal/integration/binary"
	"github.com/deyak360/recording-trimmer/internal/output"
	"github.com/deyak360/recording-trimmer/internal/types"
)

const displayPathWidth = 60

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML analysis configuration overriding the built-in tiers",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: console, json, markdown",
			Value:   "console",
		},
		&cli.BoolFlag{
			Name:    "recursive",
			Aliases: []string{"r"},
			Usage:   "Descend into subdirectories when the argument is a directory",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Usage:   "Number of recordings to process concurrently",
			Value:   1,
		},
		&cli.BoolFlag{
			Name:    "debug",
			Aliases: []string{"D"},
			Usage:   "Enable debug logging",
		},
	}
}

func setupLogging(cmd *cli.Command) {
	if cmd.Bool("debug") {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}
}

// loadOptions resolves scan options from --config, falling back to the
// built-in defaults.
func loadOptions(cmd *cli.Command) (trimmer.Options, error) {
	path := cmd.String("config")
	if path == "" {
		return config.Default().Options(), nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return trimmer.Options{}, err
	}

	return cfg.Options(), nil
}

// preflight verifies both ffmpeg and ffprobe are reachable before a batch
// starts, so a missing binary fails once instead of once per file.
func preflight() error {
	for _, bin := range []string{"ffmpeg", "ffprobe"} {
		if _, ok := binary.Available(bin); !ok {
			return fmt.Errorf("%w: %s not found in PATH", fault.ErrMissingRequirements, bin)
		}
	}

	return nil
}

// runBatch processes inputs with at most jobs concurrent workers. Per-file
// failures are reported inside each entry's metadata, never as a batch
// error, so one broken recording does not abort the rest.
func runBatch(
	ctx context.Context,
	inputs []string,
	jobs int,
	process func(ctx context.Context, path string) map[string]any,
) []*format.Data {
	if jobs < 1 {
		jobs = 1
	}

	entries := make([]*format.Data, len(inputs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)

	for i, path := range inputs {
		group.Go(func() error {
			entries[i] = &format.Data{
				Object: path,
				Meta:   process(groupCtx, path),
			}

			return nil
		})
	}

	// Workers never return errors; Wait only fences completion.
	_ = group.Wait()

	return entries
}

func printEntries(entries []*format.Data, formatName string) error {
	formatter, err := format.GetFormatter(formatName)
	if err != nil {
		return err
	}

	return formatter.PrintAll(entries, os.Stdout)
}

// skipEntry records a per-file failure and logs it at warn level.
func skipEntry(path string, err error) map[string]any {
	slog.Warn("skipping recording",
		"path", output.CompactPath(path, displayPathWidth),
		"error", err)

	meta := map[string]any{
		"skipped": true,
		"error":   err.Error(),
	}

	if types.IsConfiguration(err) {
		meta["kind"] = "configuration"
	}

	return meta
}
