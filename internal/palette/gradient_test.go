package palette

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleMidpoint(t *testing.T) {
	// count = 6, t = 0.5 * 5 = 2.5: halfway between stops 3 and 4.
	got := Sample(Default, 0.5, 0)
	assert.Equal(t, Interpolate(Default[3], Default[4], 0.5), got)
	assert.Equal(t, RGB{163, 154, 250}, got)
}

func TestSampleIsDeterministic(t *testing.T) {
	for _, p := range []float64{0, 0.13, 0.5, 0.77, 1} {
		assert.Equal(t, Sample(Default, p, 0.11), Sample(Default, p, 0.11))
	}
}

func TestSampleCyclicContinuity(t *testing.T) {
	assert.Equal(t, Default[1], Sample(Default, 0, 0))

	// Approaching the top of the range lands on the last stop, which is
	// adjacent to stop 1 in the cycle.
	assert.LessOrEqual(t, channelDelta(Default[6], Sample(Default, 0.9999, 0)), 1)

	// The last stop steps back to 1, never to the pivot at 0.
	end := Sample(Default, 1.1, 0) // t = 5.5, between stop 6 and stop 1
	assert.Equal(t, Interpolate(Default[6], Default[1], 0.5), end)
}

func TestSamplePhaseShiftsAlongCycle(t *testing.T) {
	// progress + phase is all that matters.
	assert.Equal(t, Sample(Default, 0.25, 0), Sample(Default, 0.125, 0.125))
}

func TestSampleNeverIndexesOutOfRange(t *testing.T) {
	for _, p := range []float64{-3, 0, 1, 1.2, 1.19999, 2.5, 40, 1e300, math.Inf(1), math.NaN()} {
		assert.NotPanics(t, func() { Sample(Default, p, 0.19) })
	}

	assert.Equal(t, Default[1], Sample(Default, math.Inf(1), 0))

	// Degenerate palettes.
	assert.Equal(t, RGB{}, Sample(nil, 0.5, 0))
	assert.Equal(t, Default[0], Sample(Default[:1], 0.5, 0))
	assert.Equal(t, Default[1], Sample(Default[:2], 0.5, 0.1))
}

func TestWrapStop(t *testing.T) {
	for _, tc := range []struct{ in, count, want int }{
		{1, 6, 1}, {6, 6, 6}, {7, 6, 1}, {13, 6, 1}, {8, 6, 2},
	} {
		assert.Equal(t, tc.want, wrapStop(tc.in, tc.count), "%d mod %d", tc.in, tc.count)
	}
}
