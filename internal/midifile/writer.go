// Package midifile serializes an assembled track into a standard MIDI file.
package midifile

import (
	"bytes"
	"fmt"
	"sort"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/ErikaNSantos/lofi-crafter/internal/track"
)

// General MIDI programs per channel; channel 9 is percussion and takes none
var channelPrograms = map[int]uint8{
	track.ChannelHarmony: 0, // acoustic grand, the felt-piano stand-in
	track.ChannelMelody:  4, // electric piano 1
}

// timed pairs an absolute tick with a wire message, so deltas can be
// computed after sorting
type timed struct {
	tick uint32
	msg  smf.Message
}

// Build converts a track into an SMF document: a meta track carrying tempo
// and meter first, then one track per channel in 0, 1, 9 order.
func Build(t *track.Track) (*smf.SMF, error) {
	if t == nil || len(t.Events) == 0 {
		return nil, fmt.Errorf("empty track")
	}

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(t.TicksPerBeat)

	var meta smf.Track
	meta.Add(0, smf.MetaTrackSequenceName("lofi-crafter"))
	meta.Add(0, smf.MetaMeter(uint8(t.Numerator), uint8(t.Denominator)))
	meta.Add(0, smf.MetaTempo(float64(t.BPM)))
	meta.Close(0)
	if err := sm.Add(meta); err != nil {
		return nil, fmt.Errorf("add meta track: %w", err)
	}

	for _, ch := range []int{track.ChannelHarmony, track.ChannelMelody, track.ChannelDrums} {
		events := t.ChannelEvents(ch)
		if len(events) == 0 {
			continue
		}
		if err := sm.Add(channelTrack(ch, events)); err != nil {
			return nil, fmt.Errorf("add channel %d track: %w", ch, err)
		}
	}
	return sm, nil
}

// channelTrack flattens note events into a delta-timed SMF track
func channelTrack(ch int, events []track.NoteEvent) smf.Track {
	var msgs []timed
	for _, e := range events {
		msgs = append(msgs, timed{uint32(e.Start), smf.Message(midi.NoteOn(uint8(ch), uint8(e.Pitch), uint8(e.Velocity)))})
		msgs = append(msgs, timed{uint32(e.End()), smf.Message(midi.NoteOff(uint8(ch), uint8(e.Pitch)))})
	}
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].tick < msgs[j].tick })

	var tr smf.Track
	if prog, ok := channelPrograms[ch]; ok {
		tr.Add(0, smf.Message(midi.ProgramChange(uint8(ch), prog)))
	}
	var last uint32
	for _, m := range msgs {
		tr.Add(m.tick-last, m.msg)
		last = m.tick
	}
	tr.Close(0)
	return tr
}

// Bytes renders the track to MIDI file bytes
func Bytes(t *track.Track) ([]byte, error) {
	sm, err := Build(t)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := sm.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the track to a .mid file at path
func WriteFile(t *track.Track, path string) error {
	sm, err := Build(t)
	if err != nil {
		return err
	}
	if err := sm.WriteFile(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
