// Package geom provides the 2D primitives shared by the field and renderer:
// - Point arithmetic, distances and bearings
// - Axis-aligned extents with toroidal wrapping
// - 2D affine transformations for screen to NDC mapping
package geom

import "math"

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func Dist(p, q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Bearing returns the angle of the ray from p towards q, in radians.
func Bearing(p, q Point) float64 {
	return math.Atan2(q.Y-p.Y, q.X-p.X)
}

// Polar returns the vector of the given length along angle.
func Polar(angle, length float64) Point {
	return Point{math.Cos(angle) * length, math.Sin(angle) * length}
}

// Wrap teleports each coordinate that has left [-margin, extent+margin] to the
// opposite edge of that range. It is a toroidal wrap, not a clamp.
func Wrap(p Point, w, h, margin float64) Point {
	return Point{wrap1(p.X, w, margin), wrap1(p.Y, h, margin)}
}

func wrap1(v, extent, margin float64) float64 {
	if v < -margin {
		v = extent + margin
	}
	if v > extent+margin {
		v = -margin
	}
	return v
}

// Translate returns the transform that shifts points by (dx, dy).
func Translate(dx, dy float64) Affine { return MakeAffine(1, 0, dx, 0, 1, dy) }

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// ScreenToNDC maps pixel coordinates (origin top-left, y down) of a w x h
// viewport onto OpenGL normalized device coordinates.
func ScreenToNDC(w, h int) Affine {
	return MakeAffine(
		2.0/float64(w), 0, -1,
		0, -2.0/float64(h), 1,
	)
}

// Matrix4 converts the affine transform to column-major OpenGL 4x4 form.
func (t Affine) Matrix4() [16]float32 {
	return [16]float32{
		float32(t.A), float32(t.D), 0, 0,
		float32(t.B), float32(t.E), 0, 0,
		0, 0, 1, 0,
		float32(t.C), float32(t.F), 0, 1,
	}
}
