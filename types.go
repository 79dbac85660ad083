package trimmer

import "github.com/deyak360/recording-trimmer/internal/types"

// Tier selects a parameter set and scan algorithm by recording duration.
type Tier int

const (
	TierShort  Tier = iota // adaptive scan, short parameter set
	TierMedium             // adaptive scan, medium parameter set
	TierLong               // fixed-baseline scan over the trailing window
)

func (t Tier) String() string {
	switch t {
	case TierShort:
		return "short"
	case TierMedium:
		return "medium"
	case TierLong:
		return "long"
	}

	return "unknown"
}

// TierParams is one tier's detection configuration. SkipMinutes applies to
// the adaptive tiers, AnalysisMinutes to the long tier; the other is ignored.
type TierParams struct {
	// ThresholdDB is the minimum excess over the baseline, in LUFS-equivalent
	// units, for a point to become a spike candidate.
	ThresholdDB float64

	// WindowSec is the moving-average window width in seconds; the sample
	// count is derived from SamplesPerSec.
	WindowSec int

	// ConfirmOffsetsSec lists future offsets, in seconds, at which elevated
	// loudness must still hold. Positive, strictly increasing, unique.
	ConfirmOffsetsSec []int

	// SkipMinutes excludes a leading region from candidacy (its averages
	// still feed the running baseline).
	SkipMinutes int

	// AnalysisMinutes is the trailing duration scanned by the long tier;
	// everything before it forms the static baseline.
	AnalysisMinutes int
}

// Options configures a scan. The zero value of any field falls back to
// DefaultOptions.
type Options struct {
	// SamplesPerSec is the nominal rate of the loudness series (ffmpeg's
	// ebur128 filter emits roughly one momentary value per 100ms).
	SamplesPerSec int

	// ShortMaxMinutes and MediumMaxMinutes are the tier boundaries: below
	// the first is short, below the second is medium, the rest is long.
	ShortMaxMinutes  int
	MediumMaxMinutes int

	Short  TierParams
	Medium TierParams
	Long   TierParams
}

// DefaultOptions returns the tier parameters tuned for lecture-style
// recordings with commute noise at the end.
func DefaultOptions() Options {
	return Options{
		SamplesPerSec:    10,
		ShortMaxMinutes:  25,
		MediumMaxMinutes: 45,
		Short: TierParams{
			ThresholdDB:       12,
			WindowSec:         3,
			ConfirmOffsetsSec: []int{3, 6},
			SkipMinutes:       1,
		},
		Medium: TierParams{
			ThresholdDB:       12,
			WindowSec:         5,
			ConfirmOffsetsSec: []int{4, 8},
			SkipMinutes:       5,
		},
		Long: TierParams{
			ThresholdDB:       10,
			WindowSec:         7,
			ConfirmOffsetsSec: []int{5, 10, 25},
			AnalysisMinutes:   30,
		},
	}
}

func (o Options) tier(t Tier) TierParams {
	switch t {
	case TierMedium:
		return o.Medium
	case TierLong:
		return o.Long
	default:
		return o.Short
	}
}

// Result is the outcome of scanning one recording.
type Result struct {
	Tier     Tier
	Detected bool
	TrimTime float64 // seconds; valid only when Detected

	// Windows is how many rolling averages the scan walked.
	Windows int

	// Trail is the per-second deduplicated candidate log, for diagnostics.
	Trail []types.Candidate
}
