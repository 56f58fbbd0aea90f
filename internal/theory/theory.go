package theory

import (
	"fmt"
	"strings"

	apperrors "github.com/ErikaNSantos/lofi-crafter/internal/errors"
)

// Mode represents the scale flavor used for degree resolution
type Mode string

const (
	ModeMajor  Mode = "major"
	ModeMinor  Mode = "minor"
	ModeDorian Mode = "dorian"
)

// scales maps each mode to its seven semitone offsets within one octave.
// Offsets are strictly increasing and wrap at 12.
var scales = map[Mode][7]int{
	ModeMajor:  {0, 2, 4, 5, 7, 9, 11},
	ModeMinor:  {0, 2, 3, 5, 7, 8, 10},
	ModeDorian: {0, 2, 3, 5, 7, 9, 10},
}

// Quality represents a chord quality by name
type Quality string

const (
	Major7    Quality = "maj7"
	Minor7    Quality = "m7"
	Dominant7 Quality = "7"
	Minor7b5  Quality = "m7b5"
	Major9    Quality = "maj9"
	Minor9    Quality = "m9"
	Dominant9 Quality = "9"
	Major6    Quality = "6"
	Minor6    Quality = "m6"
)

// qualityIntervals maps each quality to its semitone offsets from the root,
// in voicing order (root, third, fifth, extension...).
var qualityIntervals = map[Quality][]int{
	Major7:    {0, 4, 7, 11},
	Minor7:    {0, 3, 7, 10},
	Dominant7: {0, 4, 7, 10},
	Minor7b5:  {0, 3, 6, 10},
	Major9:    {0, 4, 7, 11, 14},
	Minor9:    {0, 3, 7, 10, 14},
	Dominant9: {0, 4, 7, 10, 14},
	Major6:    {0, 4, 7, 9},
	Minor6:    {0, 3, 7, 9},
}

// Intervals returns the semitone offsets for a chord quality in voicing order.
// The returned slice must not be modified.
func (q Quality) Intervals() []int {
	return qualityIntervals[q]
}

// keyMap resolves note names (with sharp/flat spellings) to pitch classes
var keyMap = map[string]int{
	"C": 0, "C#": 1, "DB": 1, "D": 2, "D#": 3, "EB": 3, "E": 4,
	"F": 5, "F#": 6, "GB": 6, "G": 7, "G#": 8, "AB": 8, "A": 9,
	"A#": 10, "BB": 10, "B": 11,
}

// ParseKey resolves a key string like "C", "F#" or "Bbm" to a pitch class and
// an explicit minor flag. A trailing "m" marks a minor key; the caller decides
// the mode for keys without a suffix.
func ParseKey(key string) (root int, minor bool, err error) {
	s := strings.TrimSpace(key)
	if strings.HasSuffix(s, "m") && len(s) > 1 {
		minor = true
		s = s[:len(s)-1]
	}
	if len(s) > 0 {
		s = strings.ToUpper(s[:1]) + s[1:]
	}
	// Normalize accidental spelling: "f#" -> "F#", "bb" -> "BB"
	pc, ok := keyMap[strings.ToUpper(s)]
	if !ok {
		return 0, false, fmt.Errorf("parse key %q: %w", key, apperrors.ErrInvalidKey)
	}
	return pc, minor, nil
}

// DegreePitch resolves a scale degree (1-based) to a MIDI pitch. Degrees past
// the scale length wrap into the next octave. Octave 4 puts the tonic of C at
// middle C (60).
func DegreePitch(root int, mode Mode, degree, octave int) int {
	scale := scales[mode]
	idx := (degree - 1) % len(scale)
	oct := octave + (degree-1)/len(scale)
	return root + scale[idx] + (oct+1)*12
}

// ScaleTones returns all pitches of the mode's scale within [lo, hi]
func ScaleTones(root int, mode Mode, lo, hi int) []int {
	scale := scales[mode]
	var tones []int
	for p := lo; p <= hi; p++ {
		pc := ((p - root) % 12 + 12) % 12
		for _, off := range scale {
			if pc == off {
				tones = append(tones, p)
				break
			}
		}
	}
	return tones
}

// PitchClassName returns the note name for a pitch class (0-11)
func PitchClassName(pc int) string {
	names := []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}
	return names[((pc%12)+12)%12]
}
