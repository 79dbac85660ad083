//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	trimmer "github.com/deyak360/recording-trimmer"
	"github.com/deyak360/recording-trimmer/internal/integration/ffmpeg"
	"github.com/deyak360/recording-trimmer/internal/integration/ffprobe"
	"github.com/deyak360/recording-trimmer/internal/output"
	"github.com/deyak360/recording-trimmer/internal/paths"
)

var errScanArgs = errors.New("expected exactly one argument: recording file or directory")

func scanCommand() *cli.Command {
	return &cli.Command{
		Name:      "scan",
		Usage:     "Analyze recordings for the loudness spike marking the lecture's end",
		ArgsUsage: "<file | directory>",
		Flags:     commonFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errScanArgs, cmd.NArg())
			}

			setupLogging(cmd)

			opts, err := loadOptions(cmd)
			if err != nil {
				return err
			}

			if err := preflight(); err != nil {
				return err
			}

			inputs, err := paths.ListInputs(cmd.Args().First(), paths.DefaultExtension, cmd.Bool("recursive"))
			if err != nil {
				return err
			}

			if len(inputs) == 0 {
				return fmt.Errorf("no %s recordings found under %q", paths.DefaultExtension, cmd.Args().First())
			}

			entries := runBatch(ctx, inputs, cmd.Int("jobs"),
				func(ctx context.Context, path string) map[string]any {
					return scanFile(ctx, path, opts)
				})

			return printEntries(entries, cmd.String("format"))
		},
	}
}

// scanFile analyzes one recording end to end: probe the duration, extract
// the momentary loudness series, run spike detection.
func scanFile(ctx context.Context, path string, opts trimmer.Options) map[string]any {
	duration, err := ffprobe.Duration(ctx, path)
	if err != nil {
		return skipEntry(path, fmt.Errorf("probing duration: %w", err))
	}

	series, err := ffmpeg.Loudness(ctx, path)
	if err != nil {
		return skipEntry(path, fmt.Errorf("extracting loudness: %w", err))
	}

	result, err := trimmer.Scan(series, duration, opts)
	if err != nil {
		return skipEntry(path, fmt.Errorf("scanning: %w", err))
	}

	return output.ScanToMap(result, duration)
}
