package track

import "sort"

// Assemble merges the humanized harmony, melody and drum streams into one
// Track. Events are ordered by start tick, ties broken by channel (0, 1, 9)
// so output is deterministic. Events running past the track end are truncated
// to fit; events starting at or past the end are dropped. When includeDrums
// is false the percussion stream is omitted entirely.
func Assemble(bpm, measures int, includeDrums bool, harmony, melody, drums []NoteEvent) *Track {
	t := &Track{
		TicksPerBeat: TicksPerBeat,
		BPM:          bpm,
		Numerator:    4,
		Denominator:  4,
		Measures:     measures,
	}
	total := t.TotalTicks()

	streams := [][]NoteEvent{harmony, melody}
	if includeDrums {
		streams = append(streams, drums)
	}

	var events []NoteEvent
	for _, stream := range streams {
		for _, e := range stream {
			if e.Start >= total {
				continue
			}
			if e.End() > total {
				e.Duration = total - e.Start
			}
			if e.Duration <= 0 {
				continue
			}
			events = append(events, e)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Start != events[j].Start {
			return events[i].Start < events[j].Start
		}
		return events[i].Channel < events[j].Channel
	})

	// The melody contract promises no overlap within channel 1; humanized
	// timing can still push one note into the next, so clamp durations here.
	lastMelody := -1
	for i := range events {
		if events[i].Channel != ChannelMelody {
			continue
		}
		if lastMelody >= 0 && events[lastMelody].End() > events[i].Start {
			d := events[i].Start - events[lastMelody].Start
			if d < 1 {
				d = 1
			}
			events[lastMelody].Duration = d
		}
		lastMelody = i
	}

	t.Events = events
	return t
}
