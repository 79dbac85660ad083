// Package adaptive scans an entire loudness series for the first sustained
// spike, comparing each windowed average against the running mean of
// everything scanned before it. The moving baseline suits shorter recordings
// whose typical loudness may drift.
package adaptive

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"

	"github.com/deyak360/recording-trimmer/internal/detect/confirm"
	"github.com/deyak360/recording-trimmer/internal/detect/rolling"
	"github.com/deyak360/recording-trimmer/internal/detect/trail"
	"github.com/deyak360/recording-trimmer/internal/types"
)

// Params configures one adaptive scan.
type Params struct {
	ThresholdDB    float64 // required excess over the running baseline, LUFS
	WindowSize     int     // moving-average width, samples
	ConfirmOffsets []int   // seconds; positive, strictly increasing, unique
	SkipMinutes    int     // leading region excluded from candidacy
	SamplesPerSec  int     // nominal sampling rate of the series
}

// Scan walks the series from the skip point forward and stops at the first
// confirmed spike. Rolling averages inside the skip region never become
// candidates but still seed the running baseline.
func Scan(series []types.Sample, params Params) (*types.Outcome, error) {
	rolled, err := rolling.Averages(series, params.WindowSize)
	if err != nil {
		return nil, err
	}

	slog.Debug("adaptive.Scan",
		"windows", len(rolled.Averages),
		"window seconds", float64(params.WindowSize)/float64(params.SamplesPerSec))

	start := params.SkipMinutes * 60 * params.SamplesPerSec
	if start >= len(rolled.Averages) {
		return nil, fmt.Errorf("%w: skip %d min over %d windows", types.ErrSkipBeyondEnd, params.SkipMinutes, len(rolled.Averages))
	}

	// Fold state for the incremental baseline. Seeded with the skip region's
	// averages so the baseline reflects everything before the scan start.
	var sumBefore float64

	countBefore := start
	if start > 0 {
		sumBefore = floats.Sum(rolled.Averages[:start])
	}

	buffer := trail.New()
	outcome := &types.Outcome{Windows: len(rolled.Averages)}

	for i := start; i < len(rolled.Averages); i++ {
		avg := rolled.Averages[i]

		// No candidate can fire before any baseline sample exists.
		if countBefore > 0 {
			baseline := sumBefore / float64(countBefore)
			if avg > baseline+params.ThresholdDB {
				conf := confirm.Evaluate(rolled.Averages, i, avg, params.SamplesPerSec, params.ConfirmOffsets)

				candidate := types.Candidate{
					Status:        types.StatusFail,
					Time:          rolled.Times[i],
					Average:       avg,
					Threshold:     baseline + params.ThresholdDB,
					BaselineKnown: true,
					Checks:        conf.Checks,
					PassCount:     conf.PassCount,
				}
				if conf.Confirmed {
					candidate.Status = types.StatusPass
				}

				buffer.Add(candidate)

				if conf.Confirmed {
					buffer.Confirm()
					outcome.Detected = true
					outcome.TrimTime = rolled.Times[i]

					break
				}
			}
		}

		// The baseline always reflects everything scanned so far, candidates
		// included.
		sumBefore += avg
		countBefore++
	}

	outcome.Trail = buffer.Close()

	return outcome, nil
}
