// Package confirm decides whether a spike candidate is sustained or
// transient by probing the rolling-average series at configured future
// offsets.
package confirm

import (
	"math"

	"github.com/deyak360/recording-trimmer/internal/types"
)

// Evaluate checks the candidate at index idx against every confirm offset, in
// order. An offset passes when its confirm index is in range and the average
// there is at least the candidate's average. The first failing offset stops
// evaluation; the candidate is confirmed only when every offset passed.
//
// Evaluate is a pure decision function: it reads the series and shares no
// state across candidates.
func Evaluate(averages []float64, idx int, candidateAvg float64, samplesPerSec int, offsetsSec []int) types.Confirmation {
	result := types.Confirmation{Confirmed: true}

	for _, offset := range offsetsSec {
		confirmIdx := idx + int(math.Round(float64(offset)*float64(samplesPerSec)))
		if confirmIdx >= len(averages) {
			result.Confirmed = false
			result.Checks = append(result.Checks, types.OffsetCheck{
				OffsetSec:  offset,
				OutOfRange: true,
			})

			break
		}

		avg := averages[confirmIdx]
		if avg < candidateAvg {
			result.Confirmed = false
			result.Checks = append(result.Checks, types.OffsetCheck{
				OffsetSec: offset,
				Average:   avg,
			})

			break
		}

		result.Checks = append(result.Checks, types.OffsetCheck{
			OffsetSec: offset,
			Passed:    true,
			Average:   avg,
		})
		result.PassCount++
	}

	return result
}
