package trimmer

import (
	"fmt"
	"log/slog"

	"github.com/deyak360/recording-trimmer/internal/detect/adaptive"
	"github.com/deyak360/recording-trimmer/internal/detect/fixedend"
	"github.com/deyak360/recording-trimmer/internal/types"
)

/*
Usage:

result, err := trimmer.Scan(series, duration, trimmer.DefaultOptions())
if err != nil {
    // configuration error or no data; the file is skipped, not fatal
}
if result.Detected {
    fmt.Printf("trim at %.1fs\n", result.TrimTime)
}

// Custom tier parameters
opts := trimmer.DefaultOptions()
opts.Long.ThresholdDB = 8
opts.Long.AnalysisMinutes = 45
result, err := trimmer.Scan(series, duration, opts)

// Inspect the diagnostic trail
for _, c := range result.Trail {
    fmt.Printf("[%s] %.1fs avg=%.2f\n", c.Status, c.Time, c.Average)
}
*/

// Scan locates the earliest sustained loudness spike in a recording's
// momentary-loudness series. The recording's duration selects one of three
// tiers: short and medium recordings get an adaptive whole-file scan, long
// ones a fixed-baseline scan over only the trailing analysis window.
//
// A scan is a pure computation over its inputs: series and opts are never
// mutated, and concurrent scans over distinct series need no coordination.
func Scan(series []types.Sample, duration float64, opts Options) (*Result, error) {
	if len(series) == 0 {
		return nil, types.ErrNoData
	}

	applyDefaults(&opts)

	tier := tierFor(duration, opts)
	params := opts.tier(tier)

	slog.Debug("trimmer.Scan",
		"duration", duration,
		"tier", tier,
		"threshold", params.ThresholdDB,
		"window seconds", params.WindowSec)

	var (
		outcome *types.Outcome
		err     error
	)

	switch tier {
	case TierLong:
		outcome, err = fixedend.Scan(series, duration, fixedend.Params{
			ThresholdDB:     params.ThresholdDB,
			WindowSize:      params.WindowSec * opts.SamplesPerSec,
			ConfirmOffsets:  params.ConfirmOffsetsSec,
			AnalysisMinutes: params.AnalysisMinutes,
			SamplesPerSec:   opts.SamplesPerSec,
		})
	case TierShort, TierMedium:
		outcome, err = adaptive.Scan(series, adaptive.Params{
			ThresholdDB:    params.ThresholdDB,
			WindowSize:     params.WindowSec * opts.SamplesPerSec,
			ConfirmOffsets: params.ConfirmOffsetsSec,
			SkipMinutes:    params.SkipMinutes,
			SamplesPerSec:  opts.SamplesPerSec,
		})
	}

	if err != nil {
		return nil, fmt.Errorf("%s scan: %w", tier, err)
	}

	return &Result{
		Tier:     tier,
		Detected: outcome.Detected,
		TrimTime: outcome.TrimTime,
		Windows:  outcome.Windows,
		Trail:    outcome.Trail,
	}, nil
}

func tierFor(duration float64, opts Options) Tier {
	switch {
	case duration < float64(opts.ShortMaxMinutes)*60:
		return TierShort
	case duration < float64(opts.MediumMaxMinutes)*60:
		return TierMedium
	default:
		return TierLong
	}
}

func applyDefaults(opts *Options) {
	defaults := DefaultOptions()

	if opts.SamplesPerSec <= 0 {
		opts.SamplesPerSec = defaults.SamplesPerSec
	}

	if opts.ShortMaxMinutes <= 0 {
		opts.ShortMaxMinutes = defaults.ShortMaxMinutes
	}

	if opts.MediumMaxMinutes <= 0 {
		opts.MediumMaxMinutes = defaults.MediumMaxMinutes
	}

	if tierIsZero(opts.Short) {
		opts.Short = defaults.Short
	}

	if tierIsZero(opts.Medium) {
		opts.Medium = defaults.Medium
	}

	if tierIsZero(opts.Long) {
		opts.Long = defaults.Long
	}
}

func tierIsZero(p TierParams) bool {
	return p.ThresholdDB == 0 && p.WindowSec == 0 && len(p.ConfirmOffsetsSec) == 0 &&
		p.SkipMinutes == 0 && p.AnalysisMinutes == 0
}
