//nolint:wrapcheck
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	trimmer "github.com/deyak360/recording-trimmer"
	"github.com/deyak360/recording-trimmer/internal/integration/ffmpeg"
	"github.com/deyak360/recording-trimmer/internal/integration/ffprobe"
	"github.com/deyak360/recording-trimmer/internal/output"
	"github.com/deyak360/recording-trimmer/internal/paths"
)

var errTrimArgs = errors.New("expected exactly one argument: recording file or directory")

const (
	// Recordings shorter than this are not worth trimming at all.
	defaultMinDurationSec = 600

	// A trim must remove at least this much tail to justify a new file.
	defaultMinSegmentSec = 180
)

type trimSettings struct {
	opts        trimmer.Options
	outDir      string
	scheme      string
	policy      paths.ConflictPolicy
	offset      float64
	minSegment  float64
	minDuration float64
	logLevel    string
}

func trimCommand() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Directory to write trimmed recordings into",
			Value:   "trimmed",
		},
		&cli.StringFlag{
			Name:  "naming",
			Usage: "Output naming scheme; placeholders: {ORIGINAL}, {TIMESTAMP}, {UNIX}",
			Value: "{ORIGINAL}_trimmed",
		},
		&cli.StringFlag{
			Name:  "on-conflict",
			Usage: "What to do when the output file exists: overwrite, fail, rename",
			Value: string(paths.ConflictFail),
		},
		&cli.FloatFlag{
			Name:  "offset",
			Usage: "Seconds of audio to keep past the detected spike",
			Value: 2.0,
		},
		&cli.FloatFlag{
			Name:  "min-segment",
			Usage: "Minimum removable tail, in seconds, for a trim to be worthwhile",
			Value: defaultMinSegmentSec,
		},
		&cli.FloatFlag{
			Name:  "min-duration",
			Usage: "Minimum recording duration, in seconds, to consider trimming",
			Value: defaultMinDurationSec,
		},
	)

	return &cli.Command{
		Name:      "trim",
		Usage:     "Scan recordings and cut everything past the detected lecture end",
		ArgsUsage: "<file | directory>",
		Flags:     flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errTrimArgs, cmd.NArg())
			}

			setupLogging(cmd)

			settings, err := buildTrimSettings(cmd)
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
					return trimFile(ctx, path, settings)
				})

			return printEntries(entries, cmd.String("format"))
		},
	}
}

func buildTrimSettings(cmd *cli.Command) (*trimSettings, error) {
	opts, err := loadOptions(cmd)
	if err != nil {
		return nil, err
	}

	policy, err := paths.ParseConflictPolicy(cmd.String("on-conflict"))
	if err != nil {
		return nil, err
	}

	scheme := cmd.String("naming")
	if err := paths.ValidateScheme(scheme); err != nil {
		return nil, err
	}

	outDir := cmd.String("out")
	if err := paths.EnsureWritableDir(outDir); err != nil {
		return nil, err
	}

	offset := cmd.Float("offset")
	if offset < 0 {
		return nil, fmt.Errorf("--offset must not be negative (got %g)", offset)
	}

	logLevel := "error"
	if cmd.Bool("debug") {
		logLevel = "info"
	}

	return &trimSettings{
		opts:        opts,
		outDir:      outDir,
		scheme:      scheme,
		policy:      policy,
		offset:      offset,
		minSegment:  cmd.Float("min-segment"),
		minDuration: cmd.Float("min-duration"),
		logLevel:    logLevel,
	}, nil
}

// trimFile scans one recording and, when a spike clears the trim gates,
// writes a stream-copied cut into the output directory.
func trimFile(ctx context.Context, path string, settings *trimSettings) map[string]any {
	duration, err := ffprobe.Duration(ctx, path)
	if err != nil {
		return skipEntry(path, fmt.Errorf("probing duration: %w", err))
	}

	if duration < settings.minDuration {
		return map[string]any{
			"trimmed": false,
			"reason":  fmt.Sprintf("recording is only %s (%s), not worth trimming", output.HMS(duration), fileSize(path)),
		}
	}

	series, err := ffmpeg.Loudness(ctx, path)
	if err != nil {
		return skipEntry(path, fmt.Errorf("extracting loudness: %w", err))
	}

	result, err := trimmer.Scan(series, duration, settings.opts)
	if err != nil {
		return skipEntry(path, fmt.Errorf("scanning: %w", err))
	}

	meta := output.ScanToMap(result, duration)
	meta["trimmed"] = false

	if !result.Detected {
		meta["reason"] = "no loudness spike detected"

		return meta
	}

	cutAt := min(max(result.TrimTime+settings.offset, 0), duration)
	if cutAt >= duration {
		meta["reason"] = "trim point falls beyond the current end"

		return meta
	}

	if duration-cutAt < settings.minSegment {
		meta["reason"] = fmt.Sprintf("negligible savings: only %s removable", output.HMS(duration-cutAt))

		return meta
	}

	outPath, err := paths.ResolveOutput(path, settings.outDir, settings.scheme, settings.policy, time.Now())
	if err != nil {
		return skipEntry(path, fmt.Errorf("resolving output: %w", err))
	}

	if err := ffmpeg.Trim(ctx, path, cutAt, outPath, settings.logLevel); err != nil {
		return skipEntry(path, fmt.Errorf("trimming: %w", err))
	}

	meta["trimmed"] = true
	meta["output"] = outPath
	meta["cut_at"] = output.HMS(cutAt)
	meta["removed"] = output.HMS(duration - cutAt)

	return meta
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return "size unknown"
	}

	return fmt.Sprintf("%.1f MB", float64(info.Size())/(1<<20))
}
