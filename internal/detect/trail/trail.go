// Package trail buffers spike candidates per integer second so the
// diagnostic trail records at most one failed candidate per second — the one
// that came closest to confirmation — instead of one per sample.
package trail

import "github.com/deyak360/recording-trimmer/internal/types"

// Buffer accumulates the candidates of the current second and flushes them
// into the trail on second rollover, on confirmation, or on Close. It holds
// at most one second's worth of candidates at a time.
type Buffer struct {
	pending       []types.Candidate
	currentSecond int
	hasSecond     bool
	entries       []types.Candidate
}

func New() *Buffer {
	return &Buffer{}
}

// Add records a candidate. When the candidate falls into a new integer
// second, the previous second's group is flushed first.
func (b *Buffer) Add(c types.Candidate) {
	second := int(c.Time)
	if b.hasSecond && second != b.currentSecond {
		b.flush(false)
	}

	b.pending = append(b.pending, c)
	b.currentSecond = second
	b.hasSecond = true
}

// Confirm flushes every buffered candidate verbatim, including the confirmed
// one, and clears the buffer.
func (b *Buffer) Confirm() {
	b.flush(true)
	b.hasSecond = false
}

// Close flushes any remaining candidates and returns the accumulated trail.
func (b *Buffer) Close() []types.Candidate {
	b.flush(false)

	return b.entries
}

// flush moves the pending group into the trail. A group consisting solely of
// failed candidates collapses to its best entry (highest pass count, earliest
// on ties) marked Summarized, unless the flush is due to a confirmation — a
// confirmed flush keeps every buffered entry.
func (b *Buffer) flush(confirmed bool) {
	if len(b.pending) == 0 {
		return
	}

	allFailed := true

	for _, c := range b.pending {
		if c.Status == types.StatusPass {
			allFailed = false

			break
		}
	}

	if allFailed && !confirmed {
		best := b.pending[0]

		for _, c := range b.pending[1:] {
			if c.PassCount > best.PassCount {
				best = c
			}
		}

		best.Summarized = true
		b.entries = append(b.entries, best)
	} else {
		b.entries = append(b.entries, b.pending...)
	}

	b.pending = b.pending[:0]
}
