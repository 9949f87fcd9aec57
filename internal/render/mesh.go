package render

import (
	"fmt"
	"math"

	"github.com/rclancey/earcut"

	"github.com/irfansharif/fluid/internal/geom"
)

// circleSegments is the number of polygon edges used to approximate a disc.
const circleSegments = 48

// haloAlpha is the opacity of the shadow halo where it meets the disc edge. It
// fades linearly to zero at the outer edge.
const haloAlpha = 0.5

// mesh is a triangle list relative to a disc's center, with one opacity per
// vertex.
type mesh struct {
	verts []geom.Point // three per triangle
	alpha []float32    // one per vertex
}

func (m mesh) triangles() int { return len(m.verts) / 3 }

type meshKey struct {
	radius, shadow float64
}

// discMesh holds the fill and halo geometry for one (radius, shadow) pair.
type discMesh struct {
	fill mesh
	halo mesh // empty when shadow is zero
}

// meshCache memoizes triangulated discs. Every disc in a frame shares the same
// radius and shadow, so the cache almost always holds a single entry.
type meshCache struct {
	entries map[meshKey]discMesh
}

func newMeshCache() *meshCache {
	return &meshCache{entries: make(map[meshKey]discMesh)}
}

func (c *meshCache) get(radius, shadow float64) (discMesh, error) {
	key := meshKey{radius, shadow}
	if m, ok := c.entries[key]; ok {
		return m, nil
	}
	m, err := buildDiscMesh(radius, shadow)
	if err != nil {
		return discMesh{}, err
	}
	if len(c.entries) > 16 {
		c.entries = make(map[meshKey]discMesh) // radius or shadow is being dragged around
	}
	c.entries[key] = m
	return m, nil
}

func buildDiscMesh(radius, shadow float64) (discMesh, error) {
	if radius <= 0 {
		return discMesh{}, nil // nothing to draw
	}

	inner := ring(radius)
	fill, err := triangulate([][]geom.Point{inner}, func(int) float32 { return 1 })
	if err != nil {
		return discMesh{}, fmt.Errorf("triangulating disc (r=%v): %w", radius, err)
	}
	if shadow <= 0 {
		return discMesh{fill: fill}, nil
	}

	// The halo is an annulus: the outer ring with the disc cut out as a hole.
	// Outer vertices come first, so their indices are below circleSegments.
	halo, err := triangulate([][]geom.Point{ring(radius + shadow), inner}, func(i int) float32 {
		if i < circleSegments {
			return 0
		}
		return haloAlpha
	})
	if err != nil {
		return discMesh{}, fmt.Errorf("triangulating halo (r=%v, shadow=%v): %w", radius, shadow, err)
	}
	return discMesh{fill: fill, halo: halo}, nil
}

// ring returns a regular polygon of the given radius centered on the origin.
func ring(radius float64) []geom.Point {
	pts := make([]geom.Point, circleSegments)
	for i := range pts {
		angle := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = geom.Polar(angle, radius)
	}
	return pts
}

// triangulate runs earcut over rings[0] with the remaining rings as holes, and
// returns the triangles with a per-vertex opacity looked up by vertex index.
func triangulate(rings [][]geom.Point, alphaOf func(index int) float32) (mesh, error) {
	// Convert polygon points to flat coordinate array required by earcut.
	// Format: [x0, y0, x1, y1, ..., xn, yn]
	var vertexCoords []float64
	var holeIndices []int
	for i, r := range rings {
		if len(r) < 3 {
			return mesh{}, fmt.Errorf("degenerate ring (%d vertices < 3)", len(r))
		}
		if i > 0 {
			holeIndices = append(holeIndices, len(vertexCoords)/2)
		}
		for _, p := range r {
			vertexCoords = append(vertexCoords, p.X, p.Y)
		}
	}

	triangleIndices, err := earcut.Earcut(vertexCoords, holeIndices, 2 /* dim */)
	if err != nil {
		return mesh{}, err
	}
	if len(triangleIndices) == 0 || len(triangleIndices)%3 != 0 {
		return mesh{}, fmt.Errorf("invalid triangle index count %d", len(triangleIndices))
	}

	m := mesh{
		verts: make([]geom.Point, len(triangleIndices)),
		alpha: make([]float32, len(triangleIndices)),
	}
	for i, idx := range triangleIndices {
		m.verts[i] = geom.MakePoint(vertexCoords[idx*2], vertexCoords[idx*2+1])
		m.alpha[i] = alphaOf(idx)
	}
	return m, nil
}
