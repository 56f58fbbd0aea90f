package theory

import (
	"fmt"

	apperrors "github.com/ErikaNSantos/lofi-crafter/internal/errors"
)

// Step is one entry of a progression: a scale degree (1-7) with a chord
// quality built on top of it.
type Step struct {
	Degree  int
	Quality Quality
}

// Progression is an ordered sequence of steps, cycled to fill however many
// measures a track asks for.
type Progression struct {
	ID    string
	Steps []Step
}

// StepAt returns the step for measure m, cycling past the end
func (p Progression) StepAt(m int) Step {
	return p.Steps[m%len(p.Steps)]
}

// Named progressions. The lo-fi staples lean on minor 9ths and half-diminished
// passing chords; "borrowed-dawn" and "static-iv" stay closer to one chord for
// the sparse styles.
var progressions = map[string]Progression{
	"midnight-cycle": {
		ID: "midnight-cycle",
		Steps: []Step{
			{1, Minor9}, {4, Minor7}, {7, Dominant7}, {3, Major7},
		},
	},
	"jazz-turnaround": {
		ID: "jazz-turnaround",
		Steps: []Step{
			{1, Minor7}, {6, Major7}, {2, Minor7b5}, {5, Dominant7},
		},
	},
	"borrowed-dawn": {
		ID: "borrowed-dawn",
		Steps: []Step{
			{6, Major7}, {5, Dominant7}, {1, Minor9}, {1, Minor7},
		},
	},
	"static-iv": {
		ID: "static-iv",
		Steps: []Step{
			{1, Minor7}, {4, Minor9}, {1, Minor7}, {4, Minor7},
		},
	},
	"sunset-six": {
		ID: "sunset-six",
		Steps: []Step{
			{1, Major9}, {6, Minor7}, {4, Major6}, {5, Dominant9},
		},
	},
	"velvet-ii-v": {
		ID: "velvet-ii-v",
		Steps: []Step{
			{2, Minor7}, {5, Dominant9}, {1, Major7}, {1, Major6},
		},
	},
	"fading-minor": {
		ID: "fading-minor",
		Steps: []Step{
			{1, Minor9}, {6, Major7}, {4, Minor6}, {5, Dominant7},
		},
	},
}

// progressionOrder keeps ListProgressions deterministic
var progressionOrder = []string{
	"midnight-cycle",
	"jazz-turnaround",
	"borrowed-dawn",
	"static-iv",
	"sunset-six",
	"velvet-ii-v",
	"fading-minor",
}

// LookupProgression returns a registered progression by id
func LookupProgression(id string) (Progression, error) {
	p, ok := progressions[id]
	if !ok {
		return Progression{}, fmt.Errorf("progression %q: %w", id, apperrors.ErrUnknownProgression)
	}
	return p, nil
}

// ListProgressions returns all registered progression ids in a fixed order
func ListProgressions() []string {
	out := make([]string, len(progressionOrder))
	copy(out, progressionOrder)
	return out
}
