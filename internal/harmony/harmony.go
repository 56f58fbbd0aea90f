// Package harmony resolves a progression in a key into concrete chord
// voicings and the bass line that anchors them.
package harmony

import (
	"fmt"

	apperrors "github.com/ErikaNSantos/lofi-crafter/internal/errors"
	"github.com/ErikaNSantos/lofi-crafter/internal/theory"
	"github.com/ErikaNSantos/lofi-crafter/internal/track"
)

// Voicing register bounds keep the harmony clear of the melody above it
const (
	registerLow  = 48
	registerHigh = 72
)

// Velocities before humanization. Felt-piano chords sit well under the
// bass so the low end stays defined.
const (
	chordVelocity = 45
	bassVelocity  = 70
)

// chordGapTicks trims each chord short of the barline so voicings don't
// bleed into the next measure.
const chordGapTicks = 60

// Params configure one harmony generation pass
type Params struct {
	Root        int // pitch class 0-11
	Mode        theory.Mode
	Progression theory.Progression
	Measures    int
}

// Chords resolves the progression into one voiced chord per measure,
// cycling the progression as needed. The final chord is truncated to the
// track's remaining duration, never overrunning it.
func Chords(p Params) ([]track.ChordEvent, error) {
	if p.Measures <= 0 {
		return nil, fmt.Errorf("measures %d: %w", p.Measures, apperrors.ErrRangeViolation)
	}
	total := p.Measures * track.TicksPerMeasure

	chords := make([]track.ChordEvent, 0, p.Measures)
	for m := 0; m < p.Measures; m++ {
		step := p.Progression.StepAt(m)
		root := theory.DegreePitch(p.Root, p.Mode, step.Degree, 3)
		chords = append(chords, voice(root, step.Quality, m*track.TicksPerMeasure, total))
	}
	return chords, nil
}

// voice builds a chord's pitches on a root, folding any pitch above the
// register ceiling down an octave. Voicing order stays as the interval set
// defines it.
func voice(root int, q theory.Quality, start, total int) track.ChordEvent {
	// Root register: octave 3 keeps roots in [48, 59]
	for root > registerHigh-12 {
		root -= 12
	}
	for root < registerLow {
		root += 12
	}

	intervals := q.Intervals()
	pitches := make([]int, 0, len(intervals))
	for _, iv := range intervals {
		p := root + iv
		for p > registerHigh {
			p -= 12
		}
		pitches = append(pitches, p)
	}

	duration := track.TicksPerMeasure - chordGapTicks
	if start+duration > total {
		duration = total - start
	}
	return track.ChordEvent{
		Root:     root,
		Pitches:  pitches,
		Start:    start,
		Duration: duration,
	}
}

// Notes flattens the chord sequence into channel-0 note events: the voiced
// chords plus a bass line an octave below the roots, on the downbeat and the
// "and" of two.
func Notes(chords []track.ChordEvent) []track.NoteEvent {
	var events []track.NoteEvent
	for _, c := range chords {
		for _, p := range c.Pitches {
			events = append(events, track.NoteEvent{
				Pitch:    p,
				Velocity: chordVelocity,
				Channel:  track.ChannelHarmony,
				Start:    c.Start,
				Duration: c.Duration,
			})
		}
		bass := c.Root - 12
		if track.PercussionPitches[bass] {
			// The serializer contract reserves these pitches for channel 9
			bass += 12
		}
		for _, offset := range []int{0, track.TicksPerBeat * 3 / 2} {
			events = append(events, track.NoteEvent{
				Pitch:    bass,
				Velocity: bassVelocity,
				Channel:  track.ChannelHarmony,
				Start:    c.Start + offset,
				Duration: track.TicksPerBeat * 4 / 5,
			})
		}
	}
	return events
}
