package ffprobe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"

	"github.com/farcloser/primordium/fault"

	"github.com/deyak360/recording-trimmer/internal/integration/binary"
)

// Result contains the marshalled output of ffprobe.
type Result struct {
	Format Format `json:"format"`
}

// Format holds the container-level fields the trimmer cares about. Duration
// comes back as a float string ("310.666667"); everything else is display
// context.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`        // e.g. "mov,mp4,m4a,3gp,3g2,mj2"
	Duration   string `json:"duration,omitempty"` // seconds, float string
	Size       string `json:"size,omitempty"`     // bytes, string
}

// Probe runs ffprobe on the given file path and returns parsed container
// metadata. It requires ffprobe to be available in the system PATH.
func Probe(ctx context.Context, filePath string) (*Result, error) {
	slog.Debug("ffprobe.Probe", "file path", filePath)

	ffprobePath, found := binary.Available(name)
	if !found {
		return nil, fmt.Errorf("%w: %s", fault.ErrMissingRequirements, name)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // filePath is intentionally user-provided input for probing media files
	cmd := exec.CommandContext(ctx, ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		filePath,
	)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: after %v", fault.ErrTimeout, timeout)
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, binary.Classify(stderr.String(), filePath)
		}

		return nil, fmt.Errorf("%w %s: %w", binary.ErrLaunch, name, err)
	}

	var result Result
	if err = json.Unmarshal(output, &result); err != nil {
		return nil, fmt.Errorf("%w: %w", fault.ErrInvalidJSON, err)
	}

	return &result, nil
}

// Duration returns the recording's duration in seconds.
func Duration(ctx context.Context, filePath string) (float64, error) {
	result, err := Probe(ctx, filePath)
	if err != nil {
		return 0, err
	}

	duration, err := strconv.ParseFloat(result.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: no usable duration for %s", binary.ErrInvalidFormat, filePath)
	}

	return duration, nil
}
