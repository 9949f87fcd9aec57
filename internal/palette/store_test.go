package palette

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreCopiesBase(t *testing.T) {
	base := append([]RGB(nil), Default...)
	s, err := NewStore(base, Offsets{})
	require.NoError(t, err)

	base[0] = RGB{}
	assert.Equal(t, Default, s.Base())
	assert.Equal(t, Default, s.Adjusted())
	assert.Equal(t, Default[0], s.Background())
}

func TestStoreRejectsShortPalettes(t *testing.T) {
	_, err := NewStore(Default[:2], Offsets{})
	require.ErrorIs(t, err, ErrPaletteTooSmall)

	s, err := NewStore(Default, Offsets{})
	require.NoError(t, err)
	require.ErrorIs(t, s.LoadBase(nil), ErrPaletteTooSmall)
	assert.Equal(t, Default, s.Base(), "failed load leaves the palette untouched")
}

func TestSetOffsetsRederivesEverything(t *testing.T) {
	s, err := NewStore(Default, Offsets{})
	require.NoError(t, err)

	o := Offsets{Hue: 30}
	s.SetOffsets(o)
	assert.Equal(t, Default, s.Base())
	assert.Equal(t, Adjust(Default, o), s.Adjusted())
	for i, c := range s.Adjusted() {
		assert.NotEqual(t, Default[i], c, "entry %d", i)
	}
}

func TestPaletteTracksEdits(t *testing.T) {
	s, err := NewStore(Default, Offsets{})
	require.NoError(t, err)
	assert.Equal(t, Default, s.Palette())
	assert.Equal(t, Adjust(Default, Offsets{}), s.Palette())

	s.SetOffsets(Offsets{Lightness: -20})
	assert.Equal(t, s.Adjusted(), s.Palette())
	assert.NotEqual(t, Default[0], s.Palette()[0])
}

func TestEditAdjusted(t *testing.T) {
	for _, tc := range []struct {
		offsets Offsets
		want    string
		base    RGB
	}{
		{Offsets{Hue: 30}, "#336699", RGB{51, 153, 153}},
		{Offsets{Hue: -40, Saturation: 15, Lightness: -10}, "#3a7d44", RGB{92, 142, 133}},
	} {
		s, err := NewStore(Default, tc.offsets)
		require.NoError(t, err)

		want := MustParseHex(tc.want)
		require.NoError(t, s.EditAdjusted(2, want))

		base := s.Base()
		assert.Equal(t, tc.base, base[2])

		adjusted := s.Adjusted()
		assert.LessOrEqual(t, channelDelta(want, adjusted[2]), 1)
		for j := range base {
			assert.Equal(t, Forward(base[j], tc.offsets), adjusted[j], "entry %d", j)
		}
		if diff := cmp.Diff(Default[3:], base[3:]); diff != "" {
			t.Errorf("untouched base entries changed (-want +got):\n%s", diff)
		}
	}
}

func TestEditAdjustedOutOfRange(t *testing.T) {
	s, err := NewStore(Default, Offsets{})
	require.NoError(t, err)
	assert.ErrorIs(t, s.EditAdjusted(-1, RGB{}), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.EditAdjusted(len(Default), RGB{}), ErrIndexOutOfRange)
}

func TestRandomize(t *testing.T) {
	s, err := NewStore(Default, Offsets{Hue: 90, Saturation: 10})
	require.NoError(t, err)

	require.NoError(t, s.Randomize(rand.New(rand.NewSource(7)), RandomSize))
	assert.Equal(t, RandomSize, s.Len())
	assert.True(t, s.Offsets().IsNeutral())
	assert.Equal(t, s.Base(), s.Adjusted())
	assert.NotEqual(t, Default, s.Base())

	// Same seed, same palette.
	other, err := NewStore(Default, Offsets{})
	require.NoError(t, err)
	require.NoError(t, other.Randomize(rand.New(rand.NewSource(7)), RandomSize))
	assert.Equal(t, s.Base(), other.Base())

	assert.ErrorIs(t, s.Randomize(rand.New(rand.NewSource(1)), 2), ErrPaletteTooSmall)
}
