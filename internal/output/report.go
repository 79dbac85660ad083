// Package output provides shared report serialization for the trimmer's
// console, JSON and markdown output.
package output

import (
	"fmt"
	"math"
	"path/filepath"

	trimmer "github.com/deyak360/recording-trimmer"
	"github.com/deyak360/recording-trimmer/internal/types"
)

// ScanToMap converts a scan result into the canonical map structure used by
// all output formats.
func ScanToMap(result *trimmer.Result, duration float64) map[string]any {
	meta := map[string]any{
		"tier":     result.Tier.String(),
		"duration": HMS(duration),
		"windows":  result.Windows,
		"detected": result.Detected,
	}

	if result.Detected {
		meta["trim_time"] = HMS(result.TrimTime)
		meta["trim_time_sec"] = result.TrimTime
		meta["removable"] = HMS(duration - result.TrimTime)
	}

	if lines := TrailLines(result.Trail); len(lines) > 0 {
		meta["candidates"] = lines
	}

	return meta
}

// TrailLines renders the candidate trail as display lines, most recent last.
func TrailLines(trail []types.Candidate) []any {
	lines := make([]any, 0, len(trail))
	for _, c := range trail {
		lines = append(lines, CandidateLine(c))
	}

	return lines
}

// CandidateLine renders one trail entry, including its offset checks.
func CandidateLine(c types.Candidate) string {
	threshold := "n/a"
	if c.BaselineKnown {
		threshold = fmt.Sprintf("%.2f dB", c.Threshold)
	}

	verdict := "rejected"
	if c.Status == types.StatusPass {
		verdict = "confirmed"
	}

	line := fmt.Sprintf("%s %s: avg %.2f dB (threshold %s)", verdict, HMS(c.Time), c.Average, threshold)

	for _, check := range c.Checks {
		switch {
		case check.OutOfRange:
			line += fmt.Sprintf(" +%ds: out of range", check.OffsetSec)
		case check.Passed:
			line += fmt.Sprintf(" +%ds: %.2f dB held", check.OffsetSec, check.Average)
		default:
			line += fmt.Sprintf(" +%ds: %.2f dB dropped", check.OffsetSec, check.Average)
		}
	}

	if c.Summarized {
		line += fmt.Sprintf(" (best of second, %d offsets held)", c.PassCount)
	}

	return line
}

// HMS formats a duration in seconds as HH:MM:SS.mmm. Negative values clamp
// to zero.
func HMS(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	totalMs := int64(math.Round(seconds * 1000))
	hours := totalMs / 3_600_000
	minutes := totalMs % 3_600_000 / 60_000
	secs := totalMs % 60_000 / 1000
	millis := totalMs % 1000

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
}

// CompactPath shortens a path for display, keeping the base name intact.
func CompactPath(path string, maxLen int) string {
	if maxLen <= 0 || len(path) <= maxLen {
		return path
	}

	base := filepath.Base(path)
	if len(base)+4 >= maxLen {
		return "..." + path[len(path)-(maxLen-3):]
	}

	return path[:maxLen-len(base)-4] + ".../" + base
}
