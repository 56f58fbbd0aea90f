// Package melody derives a single-voice line from a chord sequence, biased
// toward chord tones on the beat and scale passing tones between them.
package melody

import (
	"fmt"
	"math/rand"

	apperrors "github.com/ErikaNSantos/lofi-crafter/internal/errors"
	"github.com/ErikaNSantos/lofi-crafter/internal/theory"
	"github.com/ErikaNSantos/lofi-crafter/internal/track"
)

// Melody register sits an octave above the harmony voicings
const (
	registerLow  = 60
	registerHigh = 84
)

// maxLeap bounds consecutive intervals to keep the line singable
const maxLeap = 12

// restChance thins the line out; lo-fi melodies breathe
const restChance = 0.35

const baseVelocity = 72

// Params configure one melody generation pass
type Params struct {
	Root int
	Mode theory.Mode
}

// Generate produces a channel-1 note sequence covering the chord sequence's
// span. All randomness comes from rng, so the same seed and chord context
// reproduce the same line.
func Generate(chords []track.ChordEvent, p Params, rng *rand.Rand) ([]track.NoteEvent, error) {
	if len(chords) == 0 {
		return nil, fmt.Errorf("melody: %w", apperrors.ErrEmptyChordSequence)
	}

	scaleTones := theory.ScaleTones(p.Root, p.Mode, registerLow, registerHigh)

	var events []track.NoteEvent
	prev := -1
	for _, chord := range chords {
		chordTones := liftChordTones(chord)
		beats := chord.Duration / track.TicksPerBeat
		if beats < 1 {
			beats = 1
		}

		for b := 0; b < beats; b++ {
			beatStart := chord.Start + b*track.TicksPerBeat
			subdivisions := pickSubdivisions(b, rng)
			subLen := track.TicksPerBeat / subdivisions

			for s := 0; s < subdivisions; s++ {
				lastOfChord := b == beats-1 && s == subdivisions-1
				// The resolution sub-beat always sounds
				if rng.Float64() < restChance && !lastOfChord {
					continue
				}
				start := beatStart + s*subLen
				onBeat := s == 0

				pitch := choosePitch(chordTones, scaleTones, prev, onBeat, lastOfChord, rng)
				prev = pitch

				events = append(events, track.NoteEvent{
					Pitch:    pitch,
					Velocity: baseVelocity,
					Channel:  track.ChannelMelody,
					Start:    start,
					Duration: subLen * 3 / 4,
				})
			}
		}
	}
	return events, nil
}

// pickSubdivisions chooses 1-4 sub-beats, denser on strong beats
func pickSubdivisions(beat int, rng *rand.Rand) int {
	strong := beat%2 == 0
	r := rng.Float64()
	switch {
	case strong && r < 0.25:
		return 4
	case r < 0.55:
		return 2
	default:
		return 1
	}
}

// choosePitch selects from chord tones and scale passing tones, constrained
// to maxLeap from the previous pitch. The last sub-beat of a chord always
// resolves to a chord tone.
func choosePitch(chordTones, scaleTones []int, prev int, onBeat, lastOfChord bool, rng *rand.Rand) int {
	pool := chordTones
	if !lastOfChord {
		// Passing tones are welcome off the beat, chord tones on it
		if !onBeat && rng.Float64() < 0.6 {
			pool = scaleTones
		} else if rng.Float64() < 0.2 {
			pool = scaleTones
		}
	}

	candidates := within(pool, prev)
	if len(candidates) == 0 {
		candidates = within(chordTones, prev)
	}
	return candidates[rng.Intn(len(candidates))]
}

// within filters the pool to register pitches at most maxLeap from prev,
// octave-shifting tones toward prev so a reachable candidate always exists.
func within(pool []int, prev int) []int {
	if prev < 0 {
		return pool
	}
	seen := map[int]bool{}
	var out []int
	for _, p := range pool {
		for _, shifted := range []int{p - 12, p, p + 12} {
			if shifted < registerLow || shifted > registerHigh || seen[shifted] {
				continue
			}
			d := shifted - prev
			if d < 0 {
				d = -d
			}
			if d <= maxLeap {
				seen[shifted] = true
				out = append(out, shifted)
			}
		}
	}
	return out
}

// liftChordTones moves the chord voicing into the melody register
func liftChordTones(c track.ChordEvent) []int {
	tones := make([]int, 0, len(c.Pitches))
	for _, p := range c.Pitches {
		t := p + 12
		for t < registerLow {
			t += 12
		}
		for t > registerHigh {
			t -= 12
		}
		tones = append(tones, t)
	}
	return tones
}
