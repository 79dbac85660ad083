package confirm

import "testing"

func TestEvaluate(t *testing.T) {
	// 60 averages at 10 samples/sec: quiet until index 40, loud after.
	averages := make([]float64, 60)
	for i := range averages {
		if i < 40 {
			averages[i] = -30
		} else {
			averages[i] = -10
		}
	}

	tests := []struct {
		name          string
		idx           int
		candidateAvg  float64
		offsets       []int
		wantConfirmed bool
		wantPassCount int
		wantChecks    int
	}{
		{
			name:          "all offsets hold",
			idx:           40,
			candidateAvg:  -10,
			offsets:       []int{1},
			wantConfirmed: true,
			wantPassCount: 1,
			wantChecks:    1,
		},
		{
			name:          "equal average passes",
			idx:           40,
			candidateAvg:  -10,
			offsets:       []int{1, 1},
			wantConfirmed: true,
			wantPassCount: 2,
			wantChecks:    2,
		},
		{
			name:          "offset past series end fails out of range",
			idx:           40,
			candidateAvg:  -10,
			offsets:       []int{5},
			wantConfirmed: false,
			wantPassCount: 0,
			wantChecks:    1,
		},
		{
			name:          "quieter future average fails",
			idx:           20,
			candidateAvg:  -25,
			offsets:       []int{1},
			wantConfirmed: false,
			wantPassCount: 0,
			wantChecks:    1,
		},
		{
			name:          "first failure stops remaining offsets",
			idx:           20,
			candidateAvg:  -25,
			offsets:       []int{1, 2, 3},
			wantConfirmed: false,
			wantPassCount: 0,
			wantChecks:    1, // short-circuit: offsets 2 and 3 never evaluated
		},
		{
			name:          "pass then out of range",
			idx:           40,
			candidateAvg:  -10,
			offsets:       []int{1, 5},
			wantConfirmed: false,
			wantPassCount: 1,
			wantChecks:    2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(averages, tc.idx, tc.candidateAvg, 10, tc.offsets)

			if got.Confirmed != tc.wantConfirmed {
				t.Errorf("Confirmed = %v, want %v", got.Confirmed, tc.wantConfirmed)
			}

			if got.PassCount != tc.wantPassCount {
				t.Errorf("PassCount = %d, want %d", got.PassCount, tc.wantPassCount)
			}

			if len(got.Checks) != tc.wantChecks {
				t.Errorf("len(Checks) = %d, want %d", len(got.Checks), tc.wantChecks)
			}
		})
	}
}

func TestEvaluateMarksOutOfRange(t *testing.T) {
	averages := []float64{-10, -10}

	got := Evaluate(averages, 0, -10, 10, []int{1})
	if len(got.Checks) != 1 || !got.Checks[0].OutOfRange {
		t.Fatalf("expected a single out-of-range check, got %+v", got.Checks)
	}
}
