// Package palette provides the color machinery behind the gradient field. It
// implements hex/HSL conversion on top of go-colorful, the reversible HSL
// grading transform, the palette store that keeps base and adjusted colors in
// sync, and the cyclic gradient sampler.
package palette

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrMalformedHex is returned when a string cannot be read as a hex color.
var ErrMalformedHex = errors.New("malformed hex color")

// RGB is an 8-bit sRGB triple.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as a lowercase "#rrggbb" string.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA returns the opaque color.RGBA equivalent.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// ParseHex reads "#rrggbb", "rrggbb", "#rgb" or "rgb".
func ParseHex(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	digits := strings.TrimPrefix(s, "#")
	if len(digits) != 6 && len(digits) != 3 {
		return RGB{}, fmt.Errorf("%w: %q", ErrMalformedHex, s)
	}
	for _, ch := range digits {
		if !isHexDigit(ch) {
			return RGB{}, fmt.Errorf("%w: %q", ErrMalformedHex, s)
		}
	}

	c, err := colorful.Hex("#" + digits)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q: %v", ErrMalformedHex, s, err)
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// MustParseHex is like ParseHex but panics on malformed input. Intended for
// package-level literals only.
func MustParseHex(s string) RGB {
	c, err := ParseHex(s)
	if err != nil {
		panic("MustParseHex: " + err.Error())
	}
	return c
}

func isHexDigit(ch rune) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// RGBToHSL converts 8-bit channels to HSL. All three results are in [0,1]; h
// is a fraction of a full turn, not degrees.
func RGBToHSL(r, g, b uint8) (h, s, l float64) {
	h, s, l = RGB{R: r, G: g, B: b}.colorful().Hsl()
	return h / 360, s, l
}

// HSLToRGB converts HSL (h in turns) back to rounded 8-bit channels.
func HSLToRGB(h, s, l float64) RGB {
	r, g, b := colorful.Hsl(h*360, s, l).RGB255()
	return RGB{R: r, G: g, B: b}
}

// Interpolate blends a towards b per channel, rounding to the nearest step.
func Interpolate(a, b RGB, t float64) RGB {
	lerp := func(x, y uint8) uint8 {
		v := math.Round(float64(x) + (float64(y)-float64(x))*t)
		return uint8(clamp(v, 0, 255))
	}
	return RGB{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B)}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
