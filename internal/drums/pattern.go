// Package drums synthesizes kick, snare and hi-hat hit sequences with the
// swung, behind-the-beat feel that defines the lo-fi groove.
package drums

import (
	"fmt"
	"math/rand"

	apperrors "github.com/ErikaNSantos/lofi-crafter/internal/errors"
	"github.com/ErikaNSantos/lofi-crafter/internal/style"
	"github.com/ErikaNSantos/lofi-crafter/internal/track"
)

// Base velocities before humanization
const (
	kickVelocity     = 85
	backbeatVelocity = 75
	ghostVelocity    = 25
	hatOnVelocity    = 65
	hatOffVelocity   = 40
	sparseVelocity   = 60
)

// kickSkipChance is the probability of dropping the syncopated kick,
// per intensity
var kickSkipChance = map[style.Intensity]float64{
	style.IntensityLow:    0.6,
	style.IntensityMedium: 0.4,
	style.IntensityHigh:   0.2,
}

// Pattern holds one generated drum stream plus the swing fraction it was
// built with, so callers can reason about hi-hat offsets.
type Pattern struct {
	Hits  []track.NoteEvent
	Swing float64 // fraction of one hi-hat subdivision
}

// Generate synthesizes a channel-9 hit sequence for the preset. The swing
// fraction is drawn once per track from the preset's range. Presets that
// default to no drums (sleep, ambient) get the sparse treatment when drums
// are requested anyway.
func Generate(preset style.Preset, measures int, rng *rand.Rand) (*Pattern, error) {
	switch preset.Intensity {
	case style.IntensityLow, style.IntensityMedium, style.IntensityHigh:
	default:
		return nil, fmt.Errorf("intensity %q: %w", preset.Intensity, apperrors.ErrUnsupportedIntensity)
	}

	swing := preset.SwingLow + rng.Float64()*(preset.SwingHigh-preset.SwingLow)
	p := &Pattern{Swing: swing}

	sparse := !preset.HasDrums
	for m := 0; m < measures; m++ {
		base := m * track.TicksPerMeasure
		if sparse {
			p.sparseMeasure(base, m, rng)
			continue
		}
		p.kick(base, preset.Intensity, rng)
		p.backbeat(base, preset.Intensity, rng)
		p.hats(base, preset.Intensity, swing, rng)
	}
	return p, nil
}

// kick places the downbeat kick plus a pushed/dragged syncopated hit on the
// "and" of three. Offsets stay within a quarter of a beat's swing room.
func (p *Pattern) kick(base int, intensity style.Intensity, rng *rand.Rand) {
	p.add(base+jitter(rng, 25), track.Kick, kickVelocity, 100, false)

	if rng.Float64() >= kickSkipChance[intensity] {
		t := base + track.TicksPerBeat*5/2 + jitter(rng, 25)
		p.add(t, track.Kick, kickVelocity-5, 100, false)
	}
}

// backbeat lands snare or rimshot on beats 2 and 4, always a touch late,
// with occasional ghost notes trailing behind.
func (p *Pattern) backbeat(base int, intensity style.Intensity, rng *rand.Rand) {
	for _, beat := range []int{1, 3} {
		pitch := track.Snare
		switch intensity {
		case style.IntensityLow:
			pitch = track.Rimshot
		case style.IntensityMedium:
			if beat == 1 {
				pitch = track.Rimshot
			}
		}

		t := base + beat*track.TicksPerBeat + 15 + rng.Intn(31)
		p.add(t, pitch, backbeatVelocity, 120, false)

		if rng.Float64() < 0.3 {
			p.add(t+track.TicksPerBeat/2, track.Snare, ghostVelocity, 80, true)
		}
	}
}

// hats lays down the subdivision grid: closed hats on the beat, every other
// subdivision delayed by swing, open hat substituted now and then for accent.
func (p *Pattern) hats(base int, intensity style.Intensity, swing float64, rng *rand.Rand) {
	perBeat := 2 // 8ths
	if intensity == style.IntensityHigh {
		perBeat = 4 // 16ths
	}
	subLen := track.TicksPerBeat / perBeat

	for beat := 0; beat < track.BeatsPerMeasure; beat++ {
		beatStart := base + beat*track.TicksPerBeat
		for s := 0; s < perBeat; s++ {
			t := beatStart + s*subLen
			vel := hatOnVelocity
			if s%2 == 1 {
				t += int(swing * float64(subLen))
				vel = hatOffVelocity
			}

			pitch := track.ClosedHH
			if s%2 == 1 && rng.Float64() < 0.1 {
				pitch = track.OpenHH
				vel = hatOnVelocity
			}
			p.add(t, pitch, vel, 80, false)
		}
	}
}

// sparseMeasure is the sleep/ambient treatment: soft kick on 1 and 3,
// rimshot backbeat, hi-hat reduced to a rare open accent.
func (p *Pattern) sparseMeasure(base, measure int, rng *rand.Rand) {
	for _, beat := range []int{0, 2} {
		if beat == 2 && rng.Float64() < 0.3 {
			continue
		}
		t := base + beat*track.TicksPerBeat + jitter(rng, 15)
		p.add(t, track.Kick, sparseVelocity, 100, false)
	}

	t := base + 3*track.TicksPerBeat + 10 + rng.Intn(21)
	p.add(t, track.Rimshot, sparseVelocity-10, 120, false)

	if measure%2 == 0 && rng.Float64() < 0.15 {
		p.add(base+jitter(rng, 10), track.OpenHH, hatOffVelocity, 80, false)
	}
}

func (p *Pattern) add(start, pitch, velocity, duration int, ghost bool) {
	if start < 0 {
		start = 0
	}
	p.Hits = append(p.Hits, track.NoteEvent{
		Pitch:    pitch,
		Velocity: velocity,
		Channel:  track.ChannelDrums,
		Start:    start,
		Duration: duration,
		Ghost:    ghost,
	})
}

// jitter returns a uniform offset in [-n, n]
func jitter(rng *rand.Rand, n int) int {
	return rng.Intn(2*n+1) - n
}
