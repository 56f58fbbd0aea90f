package output

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Dir is a directory rendered MIDI files are written into
type Dir struct {
	Path string
}

// Ensure creates the output directory if it does not exist
func Ensure(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &Dir{Path: path}, nil
}

// Filename builds the canonical render filename for a track.
// The suffix distinguishes variations in a batch, e.g. "_v2".
func Filename(style, key string, bpm int, suffix string) string {
	return fmt.Sprintf("lofi_%s_%s_%dbpm%s.mid", style, key, bpm, suffix)
}

// TrackPath returns the full path for a render inside the directory
func (d *Dir) TrackPath(style, key string, bpm int, suffix string) string {
	return filepath.Join(d.Path, Filename(style, key, bpm, suffix))
}

// Renders lists the MIDI files currently in the directory, sorted by name
func (d *Dir) Renders() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(d.Path, "*.mid"))
	if err != nil {
		return nil, fmt.Errorf("list renders: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}
