// Package fixedend scans only the trailing analysis window of a long
// recording, comparing against one static baseline computed from everything
// before it. Long recordings make whole-file scanning wasteful, and their
// body is assumed consistently quieter than end-of-recording noise.
package fixedend

import (
	"fmt"
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/deyak360/recording-trimmer/internal/detect/confirm"
	"github.com/deyak360/recording-trimmer/internal/detect/rolling"
	"github.com/deyak360/recording-trimmer/internal/detect/trail"
	"github.com/deyak360/recording-trimmer/internal/types"
)

// Params configures one fixed-baseline scan.
type Params struct {
	ThresholdDB     float64
	WindowSize      int
	ConfirmOffsets  []int
	AnalysisMinutes int // trailing duration to scan; everything before is baseline
	SamplesPerSec   int
}

// Scan partitions the series at duration - analysis window, takes the plain
// mean of the leading part as the baseline, and walks rolling averages over
// the tail. The baseline never updates during the walk.
func Scan(series []types.Sample, duration float64, params Params) (*types.Outcome, error) {
	analysisStart := max(0.0, duration-float64(params.AnalysisMinutes)*60.0)

	split := sort.Search(len(series), func(i int) bool {
		return series[i].Time >= analysisStart
	})

	tail := series[split:]
	if len(tail) == 0 {
		return nil, fmt.Errorf("%w: analysis start %.1fs past last sample", types.ErrNoTailData, analysisStart)
	}

	var (
		baseline      float64
		baselineKnown bool
	)

	if split > 0 {
		body := make([]float64, split)
		for i, s := range series[:split] {
			body[i] = s.Loudness
		}

		baseline = stat.Mean(body, nil)
		baselineKnown = true
	}

	slog.Debug("fixedend.Scan",
		"analysis start", analysisStart,
		"tail samples", len(tail),
		"baseline", baseline,
		"baseline known", baselineKnown)

	rolled, err := rolling.Averages(tail, params.WindowSize)
	if err != nil {
		return nil, err
	}

	buffer := trail.New()
	outcome := &types.Outcome{Windows: len(rolled.Averages)}

	for i, avg := range rolled.Averages {
		// With no pre-tail samples there is no baseline to beat, and every
		// tail point is a candidate.
		if baselineKnown && avg <= baseline+params.ThresholdDB {
			continue
		}

		conf := confirm.Evaluate(rolled.Averages, i, avg, params.SamplesPerSec, params.ConfirmOffsets)

		candidate := types.Candidate{
			Status:        types.StatusFail,
			Time:          rolled.Times[i],
			Average:       avg,
			Threshold:     baseline + params.ThresholdDB,
			BaselineKnown: baselineKnown,
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

	outcome.Trail = buffer.Close()

	return outcome, nil
}
