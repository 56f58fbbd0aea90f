// Package engine runs the full generation pipeline: preset lookup, request
// validation, harmony, melody, drums, humanization and assembly.
package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/ErikaNSantos/lofi-crafter/internal/drums"
	apperrors "github.com/ErikaNSantos/lofi-crafter/internal/errors"
	"github.com/ErikaNSantos/lofi-crafter/internal/harmony"
	"github.com/ErikaNSantos/lofi-crafter/internal/humanize"
	"github.com/ErikaNSantos/lofi-crafter/internal/melody"
	"github.com/ErikaNSantos/lofi-crafter/internal/style"
	"github.com/ErikaNSantos/lofi-crafter/internal/theory"
	"github.com/ErikaNSantos/lofi-crafter/internal/track"
)

// Request is a generation request. Zero/nil fields fall back to the style
// preset: key drawn from the preset's preferences, bpm from its range,
// measures from its default, drums from its HasDrums flag. A nil Seed draws
// a fresh one, reported back in the Result.
type Request struct {
	Style       string
	Key         string
	BPM         int
	Measures    int
	Progression string
	Drums       *bool
	Seed        *int64
}

// Result is the resolved request plus the assembled track. Every field the
// engine filled in is reported so a caller can reproduce the exact output.
type Result struct {
	Track       *track.Track
	Style       string
	Key         string
	Mode        theory.Mode
	BPM         int
	Measures    int
	Progression string
	Drums       bool
	Seed        int64
}

// Seed offsets keep the three humanization streams independent while still
// deriving from the one request seed
const (
	harmonySeedOffset = 1
	melodySeedOffset  = 2
	drumsSeedOffset   = 3
)

// Generate validates the request and runs the pipeline. It fails fast: no
// partial track is ever returned, and a failed request leaves no state
// behind.
func Generate(req Request) (*Result, error) {
	preset, err := style.Lookup(req.Style)
	if err != nil {
		return nil, err
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	key := req.Key
	if key == "" {
		key = preset.Keys[rng.Intn(len(preset.Keys))]
	}
	root, minor, err := theory.ParseKey(key)
	if err != nil {
		return nil, apperrors.NewRequestError("key", key, apperrors.ErrInvalidKey)
	}
	mode := preset.Mode
	if minor {
		mode = theory.ModeMinor
	}

	bpm := req.BPM
	if bpm == 0 {
		bpm = preset.BPMLow + rng.Intn(preset.BPMHigh-preset.BPMLow+1)
	} else if bpm < preset.BPMLow || bpm > preset.BPMHigh {
		return nil, apperrors.NewRequestError("bpm",
			fmt.Sprintf("%d (style allows %d-%d)", bpm, preset.BPMLow, preset.BPMHigh),
			apperrors.ErrRangeViolation)
	}

	measures := req.Measures
	if measures == 0 {
		measures = preset.Measures
	}
	if measures < 0 {
		return nil, apperrors.NewRequestError("measures", fmt.Sprintf("%d", measures), apperrors.ErrRangeViolation)
	}

	progID := req.Progression
	if progID == "" {
		progID = preset.Progressions[rng.Intn(len(preset.Progressions))]
	}
	prog, err := theory.LookupProgression(progID)
	if err != nil {
		return nil, err
	}

	includeDrums := preset.HasDrums
	if req.Drums != nil {
		includeDrums = *req.Drums
	}

	chords, err := harmony.Chords(harmony.Params{
		Root:        root,
		Mode:        mode,
		Progression: prog,
		Measures:    measures,
	})
	if err != nil {
		return nil, err
	}
	harmonyEvents := harmony.Notes(chords)

	melodyEvents, err := melody.Generate(chords, melody.Params{Root: root, Mode: mode}, rng)
	if err != nil {
		return nil, err
	}

	var drumEvents []track.NoteEvent
	if includeDrums {
		pattern, err := drums.Generate(preset, measures, rng)
		if err != nil {
			return nil, err
		}
		drumEvents = pattern.Hits
	}

	// Per-track variance drawn once inside the documented defaults
	timingPct := humanize.TimingMin + rng.Float64()*(humanize.TimingMax-humanize.TimingMin)
	velocityPct := humanize.VelocityMin + rng.Float64()*(humanize.VelocityMax-humanize.VelocityMin)

	harmonyEvents = humanize.Events(harmonyEvents, timingPct, velocityPct, seed+harmonySeedOffset)
	melodyEvents = humanize.Events(melodyEvents, timingPct, velocityPct, seed+melodySeedOffset)
	if includeDrums {
		drumEvents = humanize.Events(drumEvents, timingPct, velocityPct, seed+drumsSeedOffset)
	}

	return &Result{
		Track:       track.Assemble(bpm, measures, includeDrums, harmonyEvents, melodyEvents, drumEvents),
		Style:       preset.ID,
		Key:         key,
		Mode:        mode,
		BPM:         bpm,
		Measures:    measures,
		Progression: progID,
		Drums:       includeDrums,
		Seed:        seed,
	}, nil
}
