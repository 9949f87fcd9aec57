package palette

import "math"

// Slider ranges for the three global adjustments.
const (
	HueRange   = 180 // degrees, either side of center
	ShiftRange = 100 // percent, either side of center
)

// Offsets is the global grading triple shared by every palette entry. The zero
// value is the neutral center.
type Offsets struct {
	Hue        int // degrees
	Saturation int // percent
	Lightness  int // percent
}

// Clamped returns the offsets limited to the slider ranges.
func (o Offsets) Clamped() Offsets {
	return Offsets{
		Hue:        clampInt(o.Hue, -HueRange, HueRange),
		Saturation: clampInt(o.Saturation, -ShiftRange, ShiftRange),
		Lightness:  clampInt(o.Lightness, -ShiftRange, ShiftRange),
	}
}

// IsNeutral reports whether the offsets leave colors untouched.
func (o Offsets) IsNeutral() bool { return o == Offsets{} }

// Forward maps a base color to its adjusted color: hue is rotated and wrapped
// into [0,1), saturation and lightness are shifted and clamped into [0,1].
func Forward(base RGB, o Offsets) RGB {
	return shift(base, o, 1)
}

// Inverse solves for the base color that Forward maps onto adjusted under the
// same offsets. Clamping in either direction is lossy, so the round trip only
// holds while neither s nor l is pushed against 0 or 1.
func Inverse(adjusted RGB, o Offsets) RGB {
	return shift(adjusted, o, -1)
}

func shift(c RGB, o Offsets, sign float64) RGB {
	h, s, l := RGBToHSL(c.R, c.G, c.B)

	h = math.Mod(h+sign*float64(o.Hue)/360, 1)
	if h < 0 {
		h += 1
	}
	s = clamp(s+sign*float64(o.Saturation)/100, 0, 1)
	l = clamp(l+sign*float64(o.Lightness)/100, 0, 1)

	return HSLToRGB(h, s, l)
}

// Adjust applies Forward to every entry, returning a fresh slice.
func Adjust(base []RGB, o Offsets) []RGB {
	out := make([]RGB, len(base))
	for i, c := range base {
		out[i] = Forward(c, o)
	}
	return out
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
