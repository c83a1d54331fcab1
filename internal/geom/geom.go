// Package geom provides 2D geometric primitives shared by the wave model and
// the drawing surfaces:
// - Point arithmetic and distances
// - Quadratic Bézier evaluation and flattening
// - 2D affine transformations (screen space to GL clip space)
package geom

import (
	"math"
)

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

// Identity is the identity transform.
var Identity = MakeAffine(1, 0, 0, 0, 1, 0)

func (p Point) Add(q Point) Point     { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point { return Point{p.X * s, p.Y * s} }
func (p Point) Len() float64          { return math.Hypot(p.X, p.Y) }

func Dot(p, q Point) float64 { return p.X*q.X + p.Y*q.Y }

func Dist(p, q Point) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Lerp interpolates linearly between p (t=0) and q (t=1).
func Lerp(p, q Point, t float64) Point {
	return Point{p.X + (q.X-p.X)*t, p.Y + (q.Y-p.Y)*t}
}

// Mid returns the midpoint of pq.
func Mid(p, q Point) Point { return Lerp(p, q, 0.5) }

// Normal returns the unit left-hand normal of the direction p->q, or the zero
// vector for a degenerate segment.
func Normal(p, q Point) Point {
	d := q.Sub(p)
	l := d.Len()
	if l == 0 {
		return Point{}
	}
	return Point{-d.Y / l, d.X / l}
}

// QuadraticAt evaluates the quadratic Bézier (p0, c, p1) at t in [0, 1].
func QuadraticAt(p0, c, p1 Point, t float64) Point {
	u := 1 - t
	return Point{
		X: u*u*p0.X + 2*u*t*c.X + t*t*p1.X,
		Y: u*u*p0.Y + 2*u*t*c.Y + t*t*p1.Y,
	}
}

// FlattenQuadratic samples the curve (p0, c, p1) into segments line pieces,
// returning the points after p0 (p1 is always the last one).
func FlattenQuadratic(p0, c, p1 Point, segments int) []Point {
	if segments < 1 {
		segments = 1
	}
	out := make([]Point, 0, segments)
	for i := 1; i < segments; i++ {
		out = append(out, QuadraticAt(p0, c, p1, float64(i)/float64(segments)))
	}
	return append(out, p1)
}

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

// ScreenToNDC maps pixel coordinates (origin top-left, y down) of a w×h
// framebuffer to OpenGL normalized device coordinates.
func ScreenToNDC(w, h int) Affine {
	if w <= 0 || h <= 0 {
		return Identity
	}
	return MakeAffine(
		2.0/float64(w), 0, -1,
		0, -2.0/float64(h), 1,
	)
}

// Matrix4 converts an affine transform to a column-major OpenGL 4x4 matrix.
func (t Affine) Matrix4() [16]float32 {
	return [16]float32{
		float32(t.A), float32(t.D), 0, 0,
		float32(t.B), float32(t.E), 0, 0,
		0, 0, 1, 0,
		float32(t.C), float32(t.F), 0, 1,
	}
}
