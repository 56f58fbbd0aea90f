package track

// Timing constants. Everything in the generator is positioned in ticks at a
// fixed resolution of 480 per beat, 4/4 only.
const (
	TicksPerBeat    = 480
	BeatsPerMeasure = 4
	TicksPerMeasure = TicksPerBeat * BeatsPerMeasure
)

// Channel assignments. Channel 9 is the General MIDI percussion channel.
const (
	ChannelHarmony = 0
	ChannelMelody  = 1
	ChannelDrums   = 9
)

// General MIDI percussion pitches used by the drum generator
const (
	Kick     = 36
	Rimshot  = 37
	Snare    = 38
	ClosedHH = 42
	OpenHH   = 46
)

// PercussionPitches is the full pitch vocabulary allowed on channel 9
var PercussionPitches = map[int]bool{
	Kick:     true,
	Rimshot:  true,
	Snare:    true,
	ClosedHH: true,
	OpenHH:   true,
}

// NoteEvent is a single pitched event. Drum hits use the same type on
// channel 9 with Ghost marking deliberately soft texture hits.
type NoteEvent struct {
	Pitch    int
	Velocity int
	Channel  int
	Start    int // ticks
	Duration int // ticks
	Ghost    bool
}

// End returns the tick at which the event stops sounding
func (e NoteEvent) End() int {
	return e.Start + e.Duration
}

// ChordEvent is a fully resolved chord: the voiced pitches plus the span it
// occupies. Immutable once produced by the harmony generator.
type ChordEvent struct {
	Root     int   // MIDI pitch of the voiced root
	Pitches  []int // voicing order fixed: root, third, fifth, extension...
	Start    int
	Duration int
}

// Track is the assembled artifact handed to the serializer
type Track struct {
	TicksPerBeat int
	BPM          int
	Numerator    int
	Denominator  int
	Measures     int
	Events       []NoteEvent // ordered by start tick, then channel
}

// TotalTicks returns the track's full duration in ticks
func (t *Track) TotalTicks() int {
	return t.Measures * TicksPerMeasure
}

// ChannelEvents returns the events on one channel, preserving order
func (t *Track) ChannelEvents(ch int) []NoteEvent {
	var out []NoteEvent
	for _, e := range t.Events {
		if e.Channel == ch {
			out = append(out, e)
		}
	}
	return out
}
