package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearingAndPolar(t *testing.T) {
	p, q := MakePoint(1, 1), MakePoint(1, 5)
	assert.InDelta(t, math.Pi/2, Bearing(p, q), 1e-12)
	assert.InDelta(t, 4, Dist(p, q), 1e-12)

	v := Polar(Bearing(p, q), 2)
	assert.InDelta(t, 0, v.X, 1e-12)
	assert.InDelta(t, 2, v.Y, 1e-12)
}

func TestWrap(t *testing.T) {
	const w, h, margin = 100, 50, 10

	assert.Equal(t, MakePoint(5, 5), Wrap(MakePoint(5, 5), w, h, margin))
	assert.Equal(t, MakePoint(-10, 60), Wrap(MakePoint(-10, 60), w, h, margin), "edges are inside")

	got := Wrap(MakePoint(-10-1e-9, 5), w, h, margin)
	assert.Equal(t, 110.0, got.X, "relocated to the far edge, not clamped")

	got = Wrap(MakePoint(111, 61), w, h, margin)
	assert.Equal(t, MakePoint(-10, -10), got)
}

func TestScreenToNDC(t *testing.T) {
	m := ScreenToNDC(200, 100)
	assert.Equal(t, MakePoint(-1, 1), m.MulPoint(MakePoint(0, 0)))
	assert.Equal(t, MakePoint(1, -1), m.MulPoint(MakePoint(200, 100)))
	assert.Equal(t, MakePoint(0, 0), m.MulPoint(MakePoint(100, 50)))

	shift := Translate(100, 50)
	assert.Equal(t, MakePoint(1, -1), m.Mul(shift).MulPoint(MakePoint(100, 50)))
	assert.Equal(t, MakePoint(7, 3), Translate(-3, 1).Mul(Translate(10, 2)).MulPoint(MakePoint(0, 0)))

	mat := m.Matrix4()
	assert.Equal(t, float32(0.01), mat[0])
	assert.Equal(t, float32(-0.02), mat[5])
	assert.Equal(t, float32(-1), mat[12])
	assert.Equal(t, float32(1), mat[13])
}
