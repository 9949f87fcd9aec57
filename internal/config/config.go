// Package config holds the tunable state of the gradient field and encodes it
// to and from the flat key/value form used by shareable links, embed snippets
// and YAML presets.
package config

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/irfansharif/fluid/internal/palette"
)

// Parameter keys.
const (
	KeyBlur       = "blur"
	KeyRadius     = "radius"
	KeyShadow     = "shadow"
	KeyCount      = "count"
	KeySmoothness = "smoothness"
	KeySpeed      = "speed"
	KeyBaseColors = "baseColors"
	KeyHue        = "hue"
	KeySat        = "sat"
	KeyLight      = "light"
	KeyColors     = "colors" // legacy: adjusted colors from older links
	KeyViewOnly   = "viewOnly"
)

// Settings is the full tunable state.
type Settings struct {
	Blur       int     // px, drives the compositing blur
	Radius     float64 // px, disc render radius and wrap margin
	Shadow     int     // px, shadow blur around each disc
	Count      int     // number of particles
	Smoothness float64 // push-away strength
	Speed      float64 // drift speed factor

	BaseColors []palette.RGB
	Offsets    palette.Offsets
	ViewOnly   bool // hide all editing input, render only
}

// DefaultRadius derives the starting disc radius from the canvas width.
func DefaultRadius(width int) float64 {
	if r := float64(width) * 0.05; r > 0 {
		return r
	}
	return fallbackRadius
}

const fallbackRadius = 110

// Default returns the settings the field starts with.
func Default() Settings {
	return Settings{
		Blur:       140,
		Radius:     fallbackRadius,
		Shadow:     4,
		Count:      150,
		Smoothness: 6.2,
		Speed:      1.8,
		BaseColors: append([]palette.RGB(nil), palette.Default...),
	}
}

// Encode returns the parameters of a shareable link. Links always open in
// view-only mode. Alongside the base palette and offsets, the adjusted palette
// is written under the legacy key so older readers still show the same colors.
func Encode(s Settings, adjusted []palette.RGB) url.Values {
	v := url.Values{}
	v.Set(KeyViewOnly, "true")
	v.Set(KeyBlur, strconv.Itoa(s.Blur))
	v.Set(KeyRadius, FormatNumber(s.Radius))
	v.Set(KeyShadow, strconv.Itoa(s.Shadow))
	v.Set(KeyCount, strconv.Itoa(s.Count))
	v.Set(KeySmoothness, FormatNumber(s.Smoothness))
	v.Set(KeySpeed, FormatNumber(s.Speed))
	v.Set(KeyBaseColors, joinColors(s.BaseColors))
	v.Set(KeyHue, strconv.Itoa(s.Offsets.Hue))
	v.Set(KeySat, strconv.Itoa(s.Offsets.Saturation))
	v.Set(KeyLight, strconv.Itoa(s.Offsets.Lightness))
	v.Set(KeyColors, joinColors(adjusted))
	return v
}

// Decode applies the parameters present in v onto s. Absent keys leave the
// current values untouched. A malformed value is skipped and reported; the
// remaining keys still apply. The palette is read from baseColors when
// present, otherwise from the legacy colors key.
func Decode(v url.Values, s *Settings) error {
	var errs []error

	if v.Has(KeyBlur) {
		if n, err := parseNonNegative(KeyBlur, v.Get(KeyBlur)); err != nil {
			errs = append(errs, err)
		} else {
			s.Blur = int(math.Round(n))
		}
	}
	if v.Has(KeyRadius) {
		if n, err := parseNonNegative(KeyRadius, v.Get(KeyRadius)); err != nil {
			errs = append(errs, err)
		} else {
			s.Radius = n
		}
	}
	if v.Has(KeyShadow) {
		if n, err := parseNonNegative(KeyShadow, v.Get(KeyShadow)); err != nil {
			errs = append(errs, err)
		} else {
			s.Shadow = int(math.Round(n))
		}
	}
	if v.Has(KeyCount) {
		if n, err := parseInt(KeyCount, v.Get(KeyCount)); err != nil {
			errs = append(errs, err)
		} else if err := checkRange(KeyCount, float64(n)); err != nil {
			errs = append(errs, err)
		} else {
			s.Count = n
		}
	}
	if v.Has(KeySmoothness) {
		if n, err := parseNonNegative(KeySmoothness, v.Get(KeySmoothness)); err != nil {
			errs = append(errs, err)
		} else {
			s.Smoothness = n
		}
	}
	if v.Has(KeySpeed) {
		if n, err := parseNonNegative(KeySpeed, v.Get(KeySpeed)); err != nil {
			errs = append(errs, err)
		} else {
			s.Speed = n
		}
	}

	paletteKey := ""
	switch {
	case v.Has(KeyBaseColors):
		paletteKey = KeyBaseColors
	case v.Has(KeyColors):
		paletteKey = KeyColors
	}
	if paletteKey != "" {
		if colors, err := splitColors(paletteKey, v.Get(paletteKey)); err != nil {
			errs = append(errs, err)
		} else {
			s.BaseColors = colors
		}
	}

	for _, o := range []struct {
		key string
		dst *int
	}{
		{KeyHue, &s.Offsets.Hue},
		{KeySat, &s.Offsets.Saturation},
		{KeyLight, &s.Offsets.Lightness},
	} {
		if !v.Has(o.key) {
			continue
		}
		n, err := parseInt(o.key, v.Get(o.key))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*o.dst = n
	}

	if v.Has(KeyViewOnly) {
		s.ViewOnly = v.Get(KeyViewOnly) == "true"
	}
	return errors.Join(errs...)
}

// ShareURL appends the encoded settings to base, replacing any query it had.
func ShareURL(base string, s Settings, adjusted []palette.RGB) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parsing base URL: %w", err)
	}
	u.RawQuery = Encode(s, adjusted).Encode()
	u.Fragment = ""
	return u.String(), nil
}

// ParseURL decodes the query of a full link or of a bare query string (with or
// without the leading '?') onto s.
func ParseURL(raw string, s *Settings) error {
	query := raw
	if i := strings.IndexByte(raw, '?'); i >= 0 {
		query = raw[i+1:]
	}
	if i := strings.IndexByte(query, '#'); i >= 0 {
		query = query[:i]
	}
	v, err := url.ParseQuery(query)
	if err != nil {
		return fmt.Errorf("parsing query: %w", err)
	}
	return Decode(v, s)
}

// FormatNumber prints a float the way the embedded runtime would: integral
// values without a fraction, everything else in its shortest exact form.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinColors(colors []palette.RGB) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = strings.TrimPrefix(c.Hex(), "#")
	}
	return strings.Join(parts, ",")
}

func splitColors(key, raw string) ([]palette.RGB, error) {
	parts := strings.Split(raw, ",")
	colors := make([]palette.RGB, 0, len(parts))
	for _, part := range parts {
		c, err := palette.ParseHex(part)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		colors = append(colors, c)
	}
	if len(colors) < palette.MinSize {
		return nil, fmt.Errorf("%s: %w: %d entries", key, palette.ErrPaletteTooSmall, len(colors))
	}
	return colors, nil
}

// parseInt reads an integer, truncating a fractional form ("12.7" is 12).
func parseInt(key, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: %q is not a number", key, raw)
	}
	if math.Abs(f) > maxValue {
		return 0, fmt.Errorf("%s: %v is too large", key, f)
	}
	return int(f), nil
}

func parseNonNegative(key, raw string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%s: %q is not a number", key, raw)
	}
	if err := checkRange(key, f); err != nil {
		return 0, err
	}
	return f, nil
}

// maxValue bounds numeric parameters so they round to an int without
// overflowing.
const maxValue = math.MaxInt32

func checkRange(key string, f float64) error {
	if f < 0 {
		return fmt.Errorf("%s: %v is negative", key, f)
	} else if f > maxValue {
		return fmt.Errorf("%s: %v is too large", key, f)
	}
	return nil
}
