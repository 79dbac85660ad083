package fixedend

import (
	"errors"
	"math"
	"testing"

	"github.com/deyak360/recording-trimmer/internal/types"
)

// lectureSeries builds a 400s series at 10 samples/sec: flat at -35 LUFS
// with a jump to -15 from jumpSec onward.
func lectureSeries(jumpSec float64) []types.Sample {
	series := make([]types.Sample, 4000)
	for i := range series {
		at := float64(i) / 10.0

		level := -35.0
		if at >= jumpSec {
			level = -15.0
		}

		series[i] = types.Sample{Time: at, Loudness: level}
	}

	return series
}

func TestScanConfirmsSpikeAgainstLectureMean(t *testing.T) {
	series := lectureSeries(350)

	outcome, err := Scan(series, 400, Params{
		ThresholdDB:     10,
		WindowSize:      5,
		ConfirmOffsets:  []int{1, 2},
		AnalysisMinutes: 1,
		SamplesPerSec:   10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !outcome.Detected {
		t.Fatal("expected a confirmed spike")
	}

	if math.Abs(outcome.TrimTime-350.0) > 0.5 {
		t.Errorf("TrimTime = %v, want ≈350.0", outcome.TrimTime)
	}

	// The static baseline is the plain lecture mean, -35, so the recorded
	// threshold must be exactly -25.
	first := outcome.Trail[0]
	if math.Abs(first.Threshold-(-25.0)) > 1e-9 {
		t.Errorf("Threshold = %v, want -25", first.Threshold)
	}

	if !first.BaselineKnown {
		t.Error("baseline should be known when pre-tail samples exist")
	}
}

func TestScanQuietTailFindsNothing(t *testing.T) {
	series := lectureSeries(9999) // never jumps

	outcome, err := Scan(series, 400, Params{
		ThresholdDB:     10,
		WindowSize:      5,
		ConfirmOffsets:  []int{1},
		AnalysisMinutes: 1,
		SamplesPerSec:   10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Detected || len(outcome.Trail) != 0 {
		t.Fatalf("expected a clean scan, got %+v", outcome)
	}
}

func TestScanWithoutPreTailSamplesTreatsEveryPointAsCandidate(t *testing.T) {
	// The analysis window covers the whole recording, so there is no body
	// to average: no baseline exists and every window becomes a candidate.
	series := make([]types.Sample, 100)
	for i := range series {
		series[i] = types.Sample{Time: float64(i) / 10.0, Loudness: -30}
	}

	outcome, err := Scan(series, 10, Params{
		ThresholdDB:     10,
		WindowSize:      5,
		ConfirmOffsets:  []int{1},
		AnalysisMinutes: 1,
		SamplesPerSec:   10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Flat series: the very first candidate confirms (equal averages pass).
	if !outcome.Detected {
		t.Fatal("expected the first window to confirm on a flat series")
	}

	if outcome.TrimTime != 0 {
		t.Errorf("TrimTime = %v, want 0", outcome.TrimTime)
	}

	if outcome.Trail[0].BaselineKnown {
		t.Error("baseline must be unknown with no pre-tail samples")
	}
}

func TestScanNoTailData(t *testing.T) {
	// Samples stop well before the analysis window starts.
	series := make([]types.Sample, 100)
	for i := range series {
		series[i] = types.Sample{Time: float64(i) / 10.0, Loudness: -30}
	}

	_, err := Scan(series, 4000, Params{
		ThresholdDB:     10,
		WindowSize:      5,
		ConfirmOffsets:  []int{1},
		AnalysisMinutes: 1,
		SamplesPerSec:   10,
	})
	if !errors.Is(err, types.ErrNoTailData) {
		t.Fatalf("got %v, want ErrNoTailData", err)
	}
}

func TestScanBaselineStaysFixedDuringWalk(t *testing.T) {
	// Two spikes in the tail; the recorded threshold must be identical for
	// both candidates because the baseline never updates mid-walk.
	series := lectureSeries(350)
	for i := 3450; i < 3460; i++ {
		series[i].Loudness = -15 // a short burst at t=345 that cannot confirm
	}

	outcome, err := Scan(series, 400, Params{
		ThresholdDB:     10,
		WindowSize:      5,
		ConfirmOffsets:  []int{1, 2},
		AnalysisMinutes: 1,
		SamplesPerSec:   10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !outcome.Detected {
		t.Fatal("expected the sustained spike to confirm")
	}

	if len(outcome.Trail) < 2 {
		t.Fatalf("expected burst and spike in the trail, got %d entries", len(outcome.Trail))
	}

	for _, entry := range outcome.Trail {
		if math.Abs(entry.Threshold-outcome.Trail[0].Threshold) > 1e-9 {
			t.Errorf("threshold varied across candidates: %v vs %v", entry.Threshold, outcome.Trail[0].Threshold)
		}
	}
}
