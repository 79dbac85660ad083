package types

import "errors"

// Scan failure kinds. Configuration errors and data absence are both
// per-file skips for the caller, never fatal to a batch; the distinction
// matters only for messaging.
var (
	// ErrInvalidWindow reports a window size incompatible with the series
	// length (w <= 0 or w >= len(series)).
	ErrInvalidWindow = errors.New("invalid window size")

	// ErrSkipBeyondEnd reports a leading skip region that covers the whole
	// rolling-average series, leaving nothing to scan.
	ErrSkipBeyondEnd = errors.New("skip region exceeds available data")

	// ErrNoTailData reports an empty analysis window at the end of the
	// recording.
	ErrNoTailData = errors.New("no samples in analysis window")

	// ErrNoData reports an empty loudness series.
	ErrNoData = errors.New("no loudness data")
)

// IsConfiguration reports whether err is a scan configuration error as
// opposed to missing data or an upstream failure.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrInvalidWindow) || errors.Is(err, ErrSkipBeyondEnd)
}
