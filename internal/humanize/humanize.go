// Package humanize applies bounded, seedable timing and velocity
// perturbation so generated streams stop sounding mechanical.
package humanize

import (
	"math/rand"
	"sort"

	"github.com/ErikaNSantos/lofi-crafter/internal/track"
)

// Default variance bounds, as fractions of a beat (timing) and of the
// event's velocity (velocity). Callers draw a per-track value inside these.
const (
	TimingMin   = 0.05
	TimingMax   = 0.08
	VelocityMin = 0.15
	VelocityMax = 0.20
)

// accentBoost is the fixed velocity lift for events landing on beats 1 and 3
const accentBoost = 8

// ghostCut is the fixed reduction for designated ghost notes, replacing the
// normal velocity variance
const ghostCut = 10

// Events returns a perturbed copy of the stream. Start ticks are displaced
// within ±timingPct of one beat, velocities scaled within ±velocityPct and
// clamped to [1, 127]. All randomness comes from seed, so identical input
// and seed reproduce identical output. Events stay ordered by start tick,
// ties keeping their original order; no start goes below zero and no
// duration below one tick.
func Events(events []track.NoteEvent, timingPct, velocityPct float64, seed int64) []track.NoteEvent {
	rng := rand.New(rand.NewSource(seed))
	out := make([]track.NoteEvent, len(events))

	maxShift := timingPct * track.TicksPerBeat
	for i, e := range events {
		strong := onStrongBeat(e.Start)

		shift := int((rng.Float64()*2 - 1) * maxShift)
		e.Start += shift
		if e.Start < 0 {
			e.Start = 0
		}

		if e.Ghost {
			e.Velocity -= ghostCut
		} else {
			factor := 1 + (rng.Float64()*2-1)*velocityPct
			e.Velocity = int(float64(e.Velocity) * factor)
			if strong {
				e.Velocity += accentBoost
			}
		}
		if e.Velocity < 1 {
			e.Velocity = 1
		}
		if e.Velocity > 127 {
			e.Velocity = 127
		}

		if e.Duration < 1 {
			e.Duration = 1
		}
		out[i] = e
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start < out[j].Start
	})
	return out
}

// onStrongBeat reports whether a tick falls on beat 1 or 3 of its measure,
// judged from the pre-perturbation position.
func onStrongBeat(start int) bool {
	if start%track.TicksPerBeat != 0 {
		return false
	}
	beat := (start / track.TicksPerBeat) % track.BeatsPerMeasure
	return beat == 0 || beat == 2
}
