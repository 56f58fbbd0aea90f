package style

import (
	"fmt"

	apperrors "github.com/ErikaNSantos/lofi-crafter/internal/errors"
	"github.com/ErikaNSantos/lofi-crafter/internal/theory"
)

// Intensity controls drum density and hi-hat subdivision
type Intensity string

const (
	IntensityLow    Intensity = "low"
	IntensityMedium Intensity = "medium"
	IntensityHigh   Intensity = "high"
)

// Preset holds every generation parameter for one lo-fi style. Presets are
// read-only after init; a generation request never mutates them.
type Preset struct {
	ID           string
	Name         string
	Description  string
	BPMLow       int
	BPMHigh      int
	Keys         []string // preferred keys, first entries favored by docs only
	Mode         theory.Mode
	Measures     int  // default track length
	HasDrums     bool // drums on by default; off presets still honor an explicit request
	Intensity    Intensity
	SwingLow     float64 // swing offset as a fraction of one hi-hat subdivision
	SwingHigh    float64
	Progressions []string
}

var presets = map[string]Preset{
	"chillhop": {
		ID:           "chillhop",
		Name:         "Chillhop",
		Description:  "Felt piano, steady bass and consistent beats",
		BPMLow:       75,
		BPMHigh:      90,
		Keys:         []string{"C", "F", "G", "D"},
		Mode:         theory.ModeMinor,
		Measures:     16,
		HasDrums:     true,
		Intensity:    IntensityMedium,
		SwingLow:     0.08,
		SwingHigh:    0.16,
		Progressions: []string{"midnight-cycle", "static-iv", "fading-minor"},
	},
	"jazzhop": {
		ID:           "jazzhop",
		Name:         "Jazzhop",
		Description:  "Complex jazz progressions with heavy swing",
		BPMLow:       80,
		BPMHigh:      95,
		Keys:         []string{"Eb", "Bb", "F", "Ab"},
		Mode:         theory.ModeDorian,
		Measures:     16,
		HasDrums:     true,
		Intensity:    IntensityHigh,
		SwingLow:     0.16,
		SwingHigh:    0.25,
		Progressions: []string{"jazz-turnaround", "velvet-ii-v", "sunset-six"},
	},
	"sleep": {
		ID:           "sleep",
		Name:         "Sleep Lo-Fi",
		Description:  "Slow tempo, sustained chords, barely-there percussion",
		BPMLow:       60,
		BPMHigh:      70,
		Keys:         []string{"A", "E", "D", "G"},
		Mode:         theory.ModeMinor,
		Measures:     24,
		HasDrums:     false,
		Intensity:    IntensityLow,
		SwingLow:     0.0,
		SwingHigh:    0.05,
		Progressions: []string{"static-iv", "borrowed-dawn"},
	},
	"ambient": {
		ID:           "ambient",
		Name:         "Ambient Lo-Fi",
		Description:  "Atmospheric, focused on texture over rhythm",
		BPMLow:       60,
		BPMHigh:      70,
		Keys:         []string{"A", "E", "D"},
		Mode:         theory.ModeMinor,
		Measures:     24,
		HasDrums:     false,
		Intensity:    IntensityLow,
		SwingLow:     0.0,
		SwingHigh:    0.05,
		Progressions: []string{"static-iv", "midnight-cycle"},
	},
	"sad": {
		ID:           "sad",
		Name:         "Sad Lo-Fi",
		Description:  "Minor progressions and melancholic melodies",
		BPMLow:       70,
		BPMHigh:      80,
		Keys:         []string{"Am", "Dm", "Em", "Bm"},
		Mode:         theory.ModeMinor,
		Measures:     16,
		HasDrums:     true,
		Intensity:    IntensityLow,
		SwingLow:     0.05,
		SwingHigh:    0.12,
		Progressions: []string{"fading-minor", "jazz-turnaround", "borrowed-dawn"},
	},
	"nostalgic": {
		ID:           "nostalgic",
		Name:         "Nostalgic Lo-Fi",
		Description:  "Spaced, emotive melodies over wistful changes",
		BPMLow:       70,
		BPMHigh:      80,
		Keys:         []string{"C", "G", "D", "A"},
		Mode:         theory.ModeMinor,
		Measures:     16,
		HasDrums:     true,
		Intensity:    IntensityMedium,
		SwingLow:     0.08,
		SwingHigh:    0.16,
		Progressions: []string{"sunset-six", "midnight-cycle", "borrowed-dawn"},
	},
}

// presetOrder keeps List output stable
var presetOrder = []string{"chillhop", "jazzhop", "sleep", "ambient", "sad", "nostalgic"}

// Lookup returns the preset for a style id
func Lookup(id string) (Preset, error) {
	p, ok := presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("style %q: %w", id, apperrors.ErrUnknownStyle)
	}
	return p, nil
}

// List returns all presets in registration order
func List() []Preset {
	out := make([]Preset, 0, len(presetOrder))
	for _, id := range presetOrder {
		out = append(out, presets[id])
	}
	return out
}
