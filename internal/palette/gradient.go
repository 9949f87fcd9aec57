package palette

import "math"

// Sample maps a color progress value and a per-point phase offset onto the
// adjusted palette. Entry 0 acts as the wrap anchor and is not a stop of its
// own: the walk runs over entries 1..n-1 and steps from the last back to 1.
//
// Stop indices are wrapped into range, so progress values beyond 1 (a point
// farther from the pointer than the canvas diagonal) cycle instead of reading
// past the end. Palettes shorter than two entries degrade to entry 0.
func Sample(adjusted []RGB, progress, phase float64) RGB {
	switch len(adjusted) {
	case 0:
		return RGB{}
	case 1:
		return adjusted[0]
	}

	count := len(adjusted) - 1
	t := (progress + phase) * float64(count-1)
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		t = 0
	}
	t = math.Mod(t, float64(count)) // keeps the stop index representable
	whole := math.Floor(t)

	i := wrapStop(int(whole)+1, count)
	next := i + 1
	if next > count {
		next = 1
	}
	return Interpolate(adjusted[i], adjusted[next], t-whole)
}

// wrapStop folds i into [1, count].
func wrapStop(i, count int) int {
	return (i-1)%count + 1
}
