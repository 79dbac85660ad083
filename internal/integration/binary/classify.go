package binary

import (
	"errors"
	"fmt"
	"strings"
)

// Upstream failure kinds surfaced per file. ffmpeg and ffprobe report most
// problems only through free-text diagnostics on stderr, so Classify sniffs
// the output the way their own exit codes never distinguish.
var (
	ErrNotFound      = errors.New("file not found")
	ErrPermission    = errors.New("permission denied")
	ErrInvalidFormat = errors.New("invalid file or format")
	ErrLaunch        = errors.New("could not launch")
)

// Classify maps a failed invocation's diagnostic output to one of the
// upstream failure kinds for the given file.
func Classify(output, filePath string) error {
	lower := strings.ToLower(output)

	switch {
	case strings.Contains(lower, "permission denied"):
		return fmt.Errorf("%w: %s", ErrPermission, filePath)
	case strings.Contains(lower, "no such file"):
		return fmt.Errorf("%w: %s", ErrNotFound, filePath)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidFormat, filePath)
	}
}
