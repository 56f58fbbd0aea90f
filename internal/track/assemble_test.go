package track

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleOrdering(t *testing.T) {
	harmony := []NoteEvent{
		{Pitch: 48, Velocity: 50, Channel: ChannelHarmony, Start: 480, Duration: 400},
		{Pitch: 52, Velocity: 50, Channel: ChannelHarmony, Start: 0, Duration: 400},
	}
	melody := []NoteEvent{
		{Pitch: 64, Velocity: 70, Channel: ChannelMelody, Start: 0, Duration: 200},
	}
	drums := []NoteEvent{
		{Pitch: Kick, Velocity: 85, Channel: ChannelDrums, Start: 0, Duration: 100},
	}

	tr := Assemble(85, 2, true, harmony, melody, drums)
	require.Len(t, tr.Events, 4)

	for i := 1; i < len(tr.Events); i++ {
		prev, cur := tr.Events[i-1], tr.Events[i]
		ok := prev.Start < cur.Start || (prev.Start == cur.Start && prev.Channel <= cur.Channel)
		assert.True(t, ok, "event %d out of order", i)
	}
	// Equal starts break ties by channel 0, 1, 9
	assert.Equal(t, ChannelHarmony, tr.Events[0].Channel)
	assert.Equal(t, ChannelMelody, tr.Events[1].Channel)
	assert.Equal(t, ChannelDrums, tr.Events[2].Channel)
}

func TestAssembleTruncatesAtTrackEnd(t *testing.T) {
	total := 1 * TicksPerMeasure
	harmony := []NoteEvent{
		{Pitch: 48, Velocity: 50, Channel: ChannelHarmony, Start: total - 100, Duration: 500},
		{Pitch: 50, Velocity: 50, Channel: ChannelHarmony, Start: total + 10, Duration: 100},
	}

	tr := Assemble(80, 1, false, harmony, nil, nil)
	require.Len(t, tr.Events, 1, "events starting past the end are dropped")
	assert.Equal(t, total, tr.Events[0].End(), "duration truncated to fit")
}

func TestAssembleNoDrums(t *testing.T) {
	drums := []NoteEvent{
		{Pitch: Kick, Velocity: 85, Channel: ChannelDrums, Start: 0, Duration: 100},
	}
	tr := Assemble(80, 1, false, nil, nil, drums)
	assert.Empty(t, tr.ChannelEvents(ChannelDrums))
}

func TestAssembleClampsMelodyOverlap(t *testing.T) {
	melody := []NoteEvent{
		{Pitch: 60, Velocity: 70, Channel: ChannelMelody, Start: 0, Duration: 300},
		{Pitch: 62, Velocity: 70, Channel: ChannelMelody, Start: 250, Duration: 200},
	}
	tr := Assemble(80, 1, false, nil, melody, nil)
	events := tr.ChannelEvents(ChannelMelody)
	require.Len(t, events, 2)
	assert.LessOrEqual(t, events[0].End(), events[1].Start)
}

func TestTrackMetadata(t *testing.T) {
	tr := Assemble(85, 16, true, nil, nil, nil)
	assert.Equal(t, 480, tr.TicksPerBeat)
	assert.Equal(t, 85, tr.BPM)
	assert.Equal(t, 4, tr.Numerator)
	assert.Equal(t, 4, tr.Denominator)
	assert.Equal(t, 16*4*480, tr.TotalTicks())
}
