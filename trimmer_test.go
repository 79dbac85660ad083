package trimmer

import (
	"errors"
	"math"
	"testing"

	"github.com/deyak360/recording-trimmer/internal/types"
)

// flatSeries builds n samples at 10/sec, all at the given loudness.
func flatSeries(n int, loudness float64) []types.Sample {
	series := make([]types.Sample, n)
	for i := range series {
		series[i] = types.Sample{Time: float64(i) / 10.0, Loudness: loudness}
	}

	return series
}

func TestScanEmptySeries(t *testing.T) {
	if _, err := Scan(nil, 600, DefaultOptions()); !errors.Is(err, types.ErrNoData) {
		t.Fatalf("got %v, want ErrNoData", err)
	}
}

func TestTierSelection(t *testing.T) {
	tests := []struct {
		name     string
		duration float64
		want     Tier
	}{
		{name: "ten minutes is short", duration: 10 * 60, want: TierShort},
		{name: "just under the short boundary", duration: 25*60 - 1, want: TierShort},
		{name: "exactly the short boundary is medium", duration: 25 * 60, want: TierMedium},
		{name: "forty minutes is medium", duration: 40 * 60, want: TierMedium},
		{name: "exactly the medium boundary is long", duration: 45 * 60, want: TierLong},
		{name: "two hours is long", duration: 2 * 60 * 60, want: TierLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tierFor(tc.duration, DefaultOptions()); got != tc.want {
				t.Fatalf("tierFor(%v) = %v, want %v", tc.duration, got, tc.want)
			}
		})
	}
}

func TestTierSelectionWithCustomBoundaries(t *testing.T) {
	opts := DefaultOptions()
	opts.ShortMaxMinutes = 10
	opts.MediumMaxMinutes = 60

	if got := tierFor(30*60, opts); got != TierMedium {
		t.Fatalf("got %v, want TierMedium with raised boundary", got)
	}
}

func TestScanShortRecordingNoSpike(t *testing.T) {
	// 10 minutes of steady speech, with a skipped first minute.
	series := flatSeries(6000, -28)

	result, err := Scan(series, 600, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Tier != TierShort {
		t.Errorf("Tier = %v, want short", result.Tier)
	}

	if result.Detected {
		t.Error("flat recording must not produce a spike")
	}

	if result.Windows == 0 {
		t.Error("Windows should report the walked average count")
	}
}

func TestScanShortRecordingWithEndSpike(t *testing.T) {
	// 10 minutes at -30 with the last 30 seconds at -8, like a train
	// platform announcement after a lecture.
	series := flatSeries(6000, -30)
	for i := 5700; i < 6000; i++ {
		series[i].Loudness = -8
	}

	result, err := Scan(series, 600, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Detected {
		t.Fatal("expected the end spike to confirm")
	}

	// Detection lands on the first window straddling the jump at t=570.
	if math.Abs(result.TrimTime-570) > 3.5 {
		t.Errorf("TrimTime = %v, want ≈570", result.TrimTime)
	}
}

func TestScanLongRecordingUsesFixedBaseline(t *testing.T) {
	// One hour at -33 with a loud final ten minutes.
	series := flatSeries(36000, -33)
	for i := 30000; i < 36000; i++ {
		series[i].Loudness = -12
	}

	result, err := Scan(series, 3600, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Tier != TierLong {
		t.Fatalf("Tier = %v, want long", result.Tier)
	}

	if !result.Detected {
		t.Fatal("expected the spike inside the analysis window to confirm")
	}

	if math.Abs(result.TrimTime-3000) > 8 {
		t.Errorf("TrimTime = %v, want ≈3000", result.TrimTime)
	}
}

func TestScanDefaultsFillZeroOptions(t *testing.T) {
	series := flatSeries(6000, -28)

	result, err := Scan(series, 600, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Tier != TierShort {
		t.Fatalf("Tier = %v, want short from default boundaries", result.Tier)
	}
}

func TestScanWrapsConfigurationErrors(t *testing.T) {
	// 10 seconds of audio against the short tier's 1-minute skip: the skip
	// region swallows every window.
	series := flatSeries(100, -28)

	_, err := Scan(series, 10, DefaultOptions())
	if err == nil {
		t.Fatal("expected a configuration error")
	}

	if !errors.Is(err, types.ErrSkipBeyondEnd) && !errors.Is(err, types.ErrInvalidWindow) {
		t.Fatalf("got %v, want a configuration sentinel", err)
	}
}

func TestTierString(t *testing.T) {
	if TierShort.String() != "short" || TierMedium.String() != "medium" || TierLong.String() != "long" {
		t.Fatal("tier names must be stable, they appear in reports")
	}
}
