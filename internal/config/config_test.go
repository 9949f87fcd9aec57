package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/fluid/internal/palette"
)

func TestEncode(t *testing.T) {
	s := Default()
	s.Offsets = palette.Offsets{Hue: 30, Saturation: -5, Lightness: 2}
	adjusted := palette.Adjust(s.BaseColors, s.Offsets)

	v := Encode(s, adjusted)
	assert.Equal(t, "true", v.Get(KeyViewOnly))
	assert.Equal(t, "140", v.Get(KeyBlur))
	assert.Equal(t, "110", v.Get(KeyRadius))
	assert.Equal(t, "4", v.Get(KeyShadow))
	assert.Equal(t, "150", v.Get(KeyCount))
	assert.Equal(t, "6.2", v.Get(KeySmoothness))
	assert.Equal(t, "1.8", v.Get(KeySpeed))
	assert.Equal(t, "fffd8c,97fff4,ff6b6b,7091f5,d6a3ff,bae9bd,535ef9", v.Get(KeyBaseColors))
	assert.Equal(t, "30", v.Get(KeyHue))
	assert.Equal(t, "-5", v.Get(KeySat))
	assert.Equal(t, "2", v.Get(KeyLight))
	assert.Len(t, strings.Split(v.Get(KeyColors), ","), len(adjusted))
	assert.NotContains(t, v.Get(KeyColors), "#")
}

func TestShareURLRoundTrip(t *testing.T) {
	s := Default()
	s.Blur, s.Radius, s.Count, s.Speed = 90, 72.5, 12, 0.4
	s.Offsets = palette.Offsets{Hue: -45, Lightness: 10}
	adjusted := palette.Adjust(s.BaseColors, s.Offsets)

	link, err := ShareURL("https://example.com/fluid/?old=1#frag", s, adjusted)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://example.com/fluid/?"))
	assert.NotContains(t, link, "old=1")
	assert.NotContains(t, link, "#frag")

	got := Settings{}
	require.NoError(t, ParseURL(link, &got))
	want := s
	want.ViewOnly = true
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePartial(t *testing.T) {
	s := Default()
	require.NoError(t, ParseURL("?count=0&speed=3", &s))

	want := Default()
	want.Count, want.Speed = 0, 3
	assert.Equal(t, want, s)
}

func TestDecodePrefersBaseColors(t *testing.T) {
	s := Default()
	require.NoError(t, ParseURL("baseColors=ff0000,00ff00,0000ff&colors=111111,222222,333333", &s))
	assert.Equal(t, []palette.RGB{{R: 255, G: 0, B: 0}, {R: 0, G: 255, B: 0}, {R: 0, G: 0, B: 255}}, s.BaseColors)

	s = Default()
	require.NoError(t, ParseURL("colors=111111,222222,333333", &s))
	assert.Equal(t, []palette.RGB{{R: 0x11, G: 0x11, B: 0x11}, {R: 0x22, G: 0x22, B: 0x22}, {R: 0x33, G: 0x33, B: 0x33}}, s.BaseColors)
}

func TestDecodeSkipsMalformedValues(t *testing.T) {
	s := Default()
	v := url.Values{}
	v.Set(KeyBlur, "lots")
	v.Set(KeyCount, "-3")
	v.Set(KeyBaseColors, "ff0000,nothex,0000ff")
	v.Set(KeyHue, "12.7")
	v.Set(KeyRadius, "80")

	err := Decode(v, &s)
	require.Error(t, err)
	assert.ErrorIs(t, err, palette.ErrMalformedHex)
	assert.Contains(t, err.Error(), KeyBlur)
	assert.Contains(t, err.Error(), KeyCount)

	def := Default()
	assert.Equal(t, def.Blur, s.Blur)
	assert.Equal(t, def.Count, s.Count)
	assert.Equal(t, def.BaseColors, s.BaseColors)
	assert.Equal(t, 12, s.Offsets.Hue, "fractional offsets truncate")
	assert.Equal(t, 80.0, s.Radius, "valid keys still apply")
}

func TestDecodeRejectsOversizeValues(t *testing.T) {
	s := Default()
	err := ParseURL("?blur=1e300&shadow=1e300&count=100000000000000&hue=1e300&radius=90", &s)
	require.Error(t, err)
	for _, key := range []string{KeyBlur, KeyShadow, KeyCount, KeyHue} {
		assert.Contains(t, err.Error(), key)
	}

	def := Default()
	assert.Equal(t, def.Blur, s.Blur)
	assert.Equal(t, def.Shadow, s.Shadow)
	assert.Equal(t, def.Count, s.Count)
	assert.Equal(t, def.Offsets, s.Offsets)
	assert.Equal(t, 90.0, s.Radius)

	// What the decoder accepts, the encoder writes back losslessly.
	var again Settings
	require.NoError(t, Decode(Encode(s, s.BaseColors), &again))
	assert.Equal(t, s.Blur, again.Blur)
	assert.Equal(t, s.Shadow, again.Shadow)
}

func TestDefaultRadius(t *testing.T) {
	assert.Equal(t, 64.0, DefaultRadius(1280))
	assert.Equal(t, 110.0, DefaultRadius(0))
	assert.Equal(t, 110.0, DefaultRadius(-5))
}

func TestDecodeRejectsShortPalette(t *testing.T) {
	s := Default()
	err := ParseURL("baseColors=ff0000,00ff00", &s)
	assert.ErrorIs(t, err, palette.ErrPaletteTooSmall)
	assert.Equal(t, Default().BaseColors, s.BaseColors)
}

func TestDecodeViewOnly(t *testing.T) {
	s := Default()
	require.NoError(t, ParseURL("viewOnly=true", &s))
	assert.True(t, s.ViewOnly)
	require.NoError(t, ParseURL("viewOnly=1", &s))
	assert.False(t, s.ViewOnly, "only the literal true enables view-only mode")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "110", FormatNumber(110))
	assert.Equal(t, "6.2", FormatNumber(6.2))
	assert.Equal(t, "0.05", FormatNumber(0.05))
}

func TestReadPreset(t *testing.T) {
	s := Default()
	err := ReadPreset(strings.NewReader(`
blur: 60
count: 40
speed: 0.5
baseColors: ["#ff0000", coral, 00ff00, Teal]
hue: -20
viewOnly: true
`), &s)
	require.NoError(t, err)

	want := Default()
	want.Blur, want.Count, want.Speed = 60, 40, 0.5
	want.BaseColors = []palette.RGB{{R: 255, G: 0, B: 0}, {R: 255, G: 127, B: 80}, {R: 0, G: 255, B: 0}, {R: 0, G: 128, B: 128}}
	want.Offsets.Hue = -20
	want.ViewOnly = true
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("preset mismatch (-want +got):\n%s", diff)
	}
}

func TestReadPresetErrors(t *testing.T) {
	s := Default()
	err := ReadPreset(strings.NewReader("count: -1\nradius: 30\n"), &s)
	require.Error(t, err)
	assert.Equal(t, 30.0, s.Radius)
	assert.Equal(t, Default().Count, s.Count)

	err = ReadPreset(strings.NewReader("blur: 1.0e+300\ncount: 100000000000000\n"), &s)
	require.Error(t, err)
	assert.Equal(t, Default().Blur, s.Blur)
	assert.Equal(t, Default().Count, s.Count)

	err = ReadPreset(strings.NewReader("colour: red\n"), &s)
	assert.Error(t, err, "unknown keys are rejected")

	require.NoError(t, ReadPreset(strings.NewReader(""), &s), "empty preset is valid")
}

func TestLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	require.NoError(t, os.WriteFile(path, []byte("shadow: 12\n"), 0o644))

	s := Default()
	require.NoError(t, LoadPreset(path, &s))
	assert.Equal(t, 12, s.Shadow)

	assert.Error(t, LoadPreset(filepath.Join(t.TempDir(), "missing.yaml"), &s))
}
