package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/farcloser/primordium/fault"

	"github.com/deyak360/recording-trimmer/internal/integration/binary"
	"github.com/deyak360/recording-trimmer/internal/types"
)

// The ebur128 filter logs one line per momentary measurement on stderr:
//
//	[Parsed_ebur128_0 @ ...] t: 1.5      TARGET:-23 LUFS    M: -27.3 S: ...
var loudnessLine = regexp.MustCompile(`t:\s*(\d+\.?\d*)\s*.*M:\s*(-?\d+\.?\d*)`)

const ebur128Prefix = "[Parsed_ebur128_0"

// Loudness runs ffmpeg's EBU R 128 filter over the file and parses the
// momentary loudness (M) series, roughly one sample per 100ms. The returned
// series may be empty for recordings the filter produced no measurements for;
// that is the caller's "no data" condition, not an error.
func Loudness(ctx context.Context, filePath string) ([]types.Sample, error) {
	slog.Debug("ffmpeg.Loudness", "file path", filePath)

	ffmpegPath, found := binary.Available(name)
	if !found {
		return nil, fmt.Errorf("%w: %s", fault.ErrMissingRequirements, name)
	}

	ctx, cancel := context.WithTimeout(ctx, loudnessTimeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input for analyzing media files
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-i", filePath,
		"-af", "ebur128=peak=true",
		"-f", "null",
		"-",
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", fault.ErrTimeout, loudnessTimeout)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, binary.Classify(stderr.String(), filePath)
		}

		return nil, fmt.Errorf("%w %s: %w", binary.ErrLaunch, name, err)
	}

	return parseLoudness(stderr.String()), nil
}

func parseLoudness(output string) []types.Sample {
	var samples []types.Sample

	for line := range strings.Lines(output) {
		if !strings.HasPrefix(line, ebur128Prefix) {
			continue
		}

		match := loudnessLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		t, errT := strconv.ParseFloat(match[1], 64)
		m, errM := strconv.ParseFloat(match[2], 64)

		if errT != nil || errM != nil {
			continue
		}

		samples = append(samples, types.Sample{Time: t, Loudness: m})
	}

	return samples
}
