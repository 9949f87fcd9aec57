package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irfansharif/fluid/internal/geom"
)

func polygonArea(n int, r float64) float64 {
	return 0.5 * float64(n) * r * r * math.Sin(2*math.Pi/float64(n))
}

func meshArea(m mesh) float64 {
	area := 0.0
	for i := 0; i+2 < len(m.verts); i += 3 {
		a, b, c := m.verts[i], m.verts[i+1], m.verts[i+2]
		area += math.Abs((b.X-a.X)*(c.Y-a.Y)-(c.X-a.X)*(b.Y-a.Y)) / 2
	}
	return area
}

func TestDiscMesh(t *testing.T) {
	m, err := buildDiscMesh(110, 0)
	require.NoError(t, err)
	assert.Equal(t, circleSegments-2, m.fill.triangles())
	assert.InDelta(t, polygonArea(circleSegments, 110), meshArea(m.fill), 1e-6)
	assert.Empty(t, m.halo.verts)
	for _, a := range m.fill.alpha {
		assert.Equal(t, float32(1), a)
	}
}

func TestHaloMesh(t *testing.T) {
	const radius, shadow = 50.0, 12.0
	m, err := buildDiscMesh(radius, shadow)
	require.NoError(t, err)

	want := polygonArea(circleSegments, radius+shadow) - polygonArea(circleSegments, radius)
	assert.InDelta(t, want, meshArea(m.halo), 1e-6)

	for i, v := range m.halo.verts {
		d := geom.Dist(geom.Point{}, v)
		switch {
		case math.Abs(d-radius) < 1e-9:
			assert.Equal(t, float32(haloAlpha), m.halo.alpha[i])
		case math.Abs(d-(radius+shadow)) < 1e-9:
			assert.Equal(t, float32(0), m.halo.alpha[i])
		default:
			t.Fatalf("vertex %v lies on neither ring", v)
		}
	}
}

func TestMeshZeroRadius(t *testing.T) {
	m, err := buildDiscMesh(0, 4)
	require.NoError(t, err)
	assert.Empty(t, m.fill.verts)
	assert.Empty(t, m.halo.verts)
}

func TestMeshCache(t *testing.T) {
	c := newMeshCache()
	a, err := c.get(20, 3)
	require.NoError(t, err)
	b, err := c.get(20, 3)
	require.NoError(t, err)
	assert.Len(t, c.entries, 1)
	assert.Equal(t, a, b)

	_, err = c.get(21, 3)
	require.NoError(t, err)
	assert.Len(t, c.entries, 2)
}

func TestTriangulateRejectsDegenerateRing(t *testing.T) {
	_, err := triangulate([][]geom.Point{{{X: 0, Y: 0}, {X: 1, Y: 1}}}, func(int) float32 { return 1 })
	assert.Error(t, err)
}
