package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/farcloser/primordium/fault"

	"github.com/deyak360/recording-trimmer/internal/integration/binary"
)

// Trim writes the first seconds of the recording to outputPath using stream
// copy, so the cut is lossless and fast. logLevel is passed through to
// ffmpeg's own -v flag.
func Trim(ctx context.Context, filePath string, seconds float64, outputPath, logLevel string) error {
	slog.Debug("ffmpeg.Trim", "file path", filePath, "seconds", seconds, "output", outputPath)

	ffmpegPath, found := binary.Available(name)
	if !found {
		return fmt.Errorf("%w: %s", fault.ErrMissingRequirements, name)
	}

	ctx, cancel := context.WithTimeout(ctx, trimTimeout)
	defer cancel()

	//nolint:gosec // filePath and outputPath are intentionally user-provided
	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-y",
		"-v", logLevel,
		"-i", filePath,
		"-t", strconv.FormatFloat(seconds, 'f', 3, 64),
		"-c", "copy",
		outputPath,
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: after %v", fault.ErrTimeout, trimTimeout)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return binary.Classify(stderr.String(), filePath)
		}

		return fmt.Errorf("%w %s: %w", binary.ErrLaunch, name, err)
	}

	return nil
}
