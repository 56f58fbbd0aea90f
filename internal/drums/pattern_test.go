package drums

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ErikaNSantos/lofi-crafter/internal/errors"
	"github.com/ErikaNSantos/lofi-crafter/internal/style"
	"github.com/ErikaNSantos/lofi-crafter/internal/track"
)

func mustPreset(t *testing.T, id string) style.Preset {
	t.Helper()
	p, err := style.Lookup(id)
	require.NoError(t, err)
	return p
}

func TestGenerateUnsupportedIntensity(t *testing.T) {
	p := mustPreset(t, "chillhop")
	p.Intensity = "extreme"
	_, err := Generate(p, 4, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, apperrors.ErrUnsupportedIntensity)
}

func TestGenerateDeterministic(t *testing.T) {
	p := mustPreset(t, "jazzhop")
	a, err := Generate(p, 8, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	b, err := Generate(p, 8, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateVocabularyAndChannel(t *testing.T) {
	for _, id := range []string{"chillhop", "jazzhop", "sad", "sleep"} {
		t.Run(id, func(t *testing.T) {
			pattern, err := Generate(mustPreset(t, id), 8, rand.New(rand.NewSource(3)))
			require.NoError(t, err)
			require.NotEmpty(t, pattern.Hits)
			for _, h := range pattern.Hits {
				assert.Equal(t, track.ChannelDrums, h.Channel)
				assert.True(t, track.PercussionPitches[h.Pitch],
					"pitch %d outside the percussion vocabulary", h.Pitch)
				assert.GreaterOrEqual(t, h.Start, 0)
				assert.Greater(t, h.Duration, 0)
			}
		})
	}
}

func TestSwingWithinPresetRange(t *testing.T) {
	p := mustPreset(t, "jazzhop")
	for seed := int64(0); seed < 20; seed++ {
		pattern, err := Generate(p, 2, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, pattern.Swing, p.SwingLow)
		assert.LessOrEqual(t, pattern.Swing, p.SwingHigh)
	}
}

func TestHatOffsetsBoundedBySwing(t *testing.T) {
	p := mustPreset(t, "chillhop")
	pattern, err := Generate(p, 8, rand.New(rand.NewSource(9)))
	require.NoError(t, err)

	subLen := track.TicksPerBeat / 2 // medium intensity plays 8ths
	maxOffset := int(p.SwingHigh * float64(subLen))
	for _, h := range pattern.Hits {
		if h.Pitch != track.ClosedHH && h.Pitch != track.OpenHH {
			continue
		}
		// Distance from the nearest subdivision gridline
		rem := h.Start % subLen
		offset := rem
		if subLen-rem < offset {
			offset = subLen - rem
		}
		assert.LessOrEqual(t, offset, maxOffset,
			"hat at %d further than swing allows", h.Start)
	}
}

func TestBackbeatDeterministic(t *testing.T) {
	p := mustPreset(t, "chillhop")
	pattern, err := Generate(p, 4, rand.New(rand.NewSource(2)))
	require.NoError(t, err)

	// Every measure has a backbeat hit near beats 2 and 4, always late
	for m := 0; m < 4; m++ {
		for _, beat := range []int{1, 3} {
			nominal := m*track.TicksPerMeasure + beat*track.TicksPerBeat
			found := false
			for _, h := range pattern.Hits {
				if h.Ghost || (h.Pitch != track.Snare && h.Pitch != track.Rimshot) {
					continue
				}
				if h.Start >= nominal+15 && h.Start <= nominal+45 {
					found = true
					break
				}
			}
			assert.True(t, found, "no backbeat near measure %d beat %d", m, beat+1)
		}
	}
}

func TestGhostNotesMarked(t *testing.T) {
	p := mustPreset(t, "chillhop")
	// Enough measures that ghost notes will appear at 0.3 per backbeat
	pattern, err := Generate(p, 16, rand.New(rand.NewSource(4)))
	require.NoError(t, err)

	ghosts := 0
	for _, h := range pattern.Hits {
		if h.Ghost {
			ghosts++
			assert.Equal(t, track.Snare, h.Pitch)
			assert.LessOrEqual(t, h.Velocity, 30, "ghosts are quiet")
		}
	}
	assert.Greater(t, ghosts, 0, "expected at least one ghost note over 16 measures")
}

func TestSparseStyles(t *testing.T) {
	p := mustPreset(t, "sleep")
	pattern, err := Generate(p, 8, rand.New(rand.NewSource(6)))
	require.NoError(t, err)

	hats := 0
	for _, h := range pattern.Hits {
		switch h.Pitch {
		case track.Kick:
			// Kick only near beats 1 and 3; jitter can land just before the barline
			inMeasure := h.Start % track.TicksPerMeasure
			dOne := inMeasure
			if wrap := track.TicksPerMeasure - inMeasure; wrap < dOne {
				dOne = wrap
			}
			dThree := inMeasure - 2*track.TicksPerBeat
			if dThree < 0 {
				dThree = -dThree
			}
			assert.True(t, dOne <= 15 || dThree <= 15, "sparse kick at %d off beats 1/3", h.Start)
		case track.Snare:
			t.Errorf("sparse styles use rimshot, got snare at %d", h.Start)
		case track.ClosedHH, track.OpenHH:
			hats++
		}
	}
	assert.LessOrEqual(t, hats, 8, "hi-hat density near zero for sparse styles")
}
