// Package rolling computes windowed moving averages over a loudness series
// with an incremental sliding sum, in O(n) time and O(n) space.
package rolling

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/deyak360/recording-trimmer/internal/types"
)

// Averages computes len(samples) - window + 1 moving averages over the
// loudness values of samples. Each average covers window consecutive samples
// and is timestamped with the first sample of its window.
func Averages(samples []types.Sample, window int) (*types.RollingSeries, error) {
	if window <= 0 || window >= len(samples) {
		return nil, fmt.Errorf("%w: window %d for series length %d", types.ErrInvalidWindow, window, len(samples))
	}

	values := make([]float64, len(samples))
	times := make([]float64, len(samples))

	for i, s := range samples {
		values[i] = s.Loudness
		times[i] = s.Time
	}

	total := len(values) - window + 1
	averages := make([]float64, total)
	width := float64(window)

	// Seed with the first window, then slide: add the entering value,
	// subtract the leaving one.
	sum := floats.Sum(values[:window])
	averages[0] = sum / width

	for i := 1; i < total; i++ {
		sum += values[i+window-1] - values[i-1]
		averages[i] = sum / width
	}

	return &types.RollingSeries{
		Averages: averages,
		Times:    times[:total],
		Window:   window,
	}, nil
}
