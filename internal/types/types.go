package types

// Sample is one momentary loudness measurement extracted from a recording.
// Samples arrive ordered by time at a fixed nominal rate; the scanners assume
// monotonicity but do not re-verify it.
type Sample struct {
	Time     float64 // seconds from the start of the recording
	Loudness float64 // momentary loudness, LUFS
}

// RollingSeries holds windowed moving averages over a loudness series.
// Averages[i] is the mean of the window starting at sample i; Times[i] is the
// timestamp of that window's first sample. Both slices have
// len(samples) - Window + 1 entries.
type RollingSeries struct {
	Averages []float64
	Times    []float64
	Window   int // window width, in samples
}

// Status is the outcome of a spike candidate's confirmation pass.
type Status int

const (
	StatusFail Status = iota
	StatusPass
)

func (s Status) String() string {
	if s == StatusPass {
		return "Pass"
	}

	return "Fail"
}

// OffsetCheck records the evaluation of one confirm offset for a candidate.
// When OutOfRange is true the offset's confirm index fell past the end of the
// rolling-average series and Average is meaningless.
type OffsetCheck struct {
	OffsetSec  int
	Passed     bool
	OutOfRange bool
	Average    float64
}

// Confirmation is the result of evaluating a candidate against its configured
// confirm offsets. Checks holds one entry per evaluated offset; evaluation
// stops at the first failure, so a failed confirmation has fewer checks than
// configured offsets.
type Confirmation struct {
	Confirmed bool
	PassCount int
	Checks    []OffsetCheck
}

// Candidate is a recorded spike candidate, either confirmed (StatusPass) or
// rejected (StatusFail). Candidates surviving per-second deduplication form
// the diagnostic trail of a scan.
type Candidate struct {
	Status  Status
	Time    float64 // seconds
	Average float64 // window average at the candidate position

	// Threshold is the value the candidate's average had to exceed
	// (baseline + configured threshold). BaselineKnown is false when no
	// baseline existed yet at this point of the scan; Threshold is then
	// meaningless and the candidate fired unconditionally.
	Threshold     float64
	BaselineKnown bool

	Checks    []OffsetCheck
	PassCount int

	// Summarized marks an entry that stands in for all failed candidates of
	// its second, retained for being the closest to confirmation.
	Summarized bool
}

// Outcome is the result of one scan over a loudness series.
type Outcome struct {
	Detected bool
	TrimTime float64 // valid only when Detected
	Windows  int     // number of rolling averages walked
	Trail    []Candidate
}
