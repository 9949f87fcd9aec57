package palette

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want RGB
	}{
		{"#fffd8c", RGB{255, 253, 140}},
		{"fffd8c", RGB{255, 253, 140}},
		{"#FFFD8C", RGB{255, 253, 140}},
		{"#abc", RGB{0xaa, 0xbb, 0xcc}},
		{" 535ef9 ", RGB{0x53, 0x5e, 0xf9}},
	} {
		got, err := ParseHex(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	for _, in := range []string{"", "#", "#1234", "#12345g", "zzzzzz", "#fffd8c00"} {
		_, err := ParseHex(in)
		assert.ErrorIs(t, err, ErrMalformedHex, in)
	}
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#fffd8c", RGB{255, 253, 140}.Hex())
	assert.Equal(t, "#000a0f", RGB{0, 10, 15}.Hex())
}

func TestRGBToHSL(t *testing.T) {
	h, s, l := RGBToHSL(255, 253, 140)
	assert.InDelta(t, 0.1636, h, 0.001)
	assert.InDelta(t, 1.0, s, 1e-9)
	assert.InDelta(t, 0.775, l, 0.001)

	// Achromatic.
	h, s, l = RGBToHSL(90, 90, 90)
	assert.Zero(t, h)
	assert.Zero(t, s)
	assert.InDelta(t, 90.0/255, l, 1e-9)

	// One case per max channel.
	h, _, _ = RGBToHSL(255, 0, 0)
	assert.InDelta(t, 0, h, 1e-9)
	h, _, _ = RGBToHSL(0, 255, 0)
	assert.InDelta(t, 1.0/3, h, 1e-9)
	h, _, _ = RGBToHSL(0, 0, 255)
	assert.InDelta(t, 2.0/3, h, 1e-9)
	h, _, _ = RGBToHSL(255, 0, 128) // g < b wraps forward
	assert.True(t, h > 0.9 && h < 1, "h = %v", h)
}

func TestHSLToRGB(t *testing.T) {
	assert.Equal(t, RGB{255, 0, 0}, HSLToRGB(0, 1, 0.5))
	assert.Equal(t, RGB{0, 255, 0}, HSLToRGB(1.0/3, 1, 0.5))
	assert.Equal(t, RGB{128, 128, 128}, HSLToRGB(0.7, 0, 0.5)) // rounded, not truncated
	assert.Equal(t, RGB{255, 255, 255}, HSLToRGB(0, 0, 1))

	h, s, l := RGBToHSL(255, 253, 140)
	assert.Equal(t, RGB{255, 253, 140}, HSLToRGB(h, s, l))
}

func TestInterpolate(t *testing.T) {
	a, b := RGB{0, 100, 255}, RGB{255, 0, 0}
	assert.Equal(t, a, Interpolate(a, b, 0))
	assert.Equal(t, b, Interpolate(a, b, 1))
	assert.Equal(t, RGB{128, 50, 128}, Interpolate(a, b, 0.5))
}
