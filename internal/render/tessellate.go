package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/irfansharif/waves/internal/geom"
	"github.com/irfansharif/waves/internal/memory"
)

const (
	// curveTolerance is the target length, in pixels, of the line pieces a
	// quadratic curve is flattened into.
	curveTolerance   = 4.0
	maxCurveSegments = 32
)

type subpath struct {
	points []geom.Point
	closed bool
}

// Tessellator turns gg-style path calls into interleaved triangle vertices
// (x, y, r, g, b, a), the layout memory.VertexBuffer expects. Fill and Stroke
// consume the current path, like a gg context.
type Tessellator struct {
	paths     []subpath
	color     [4]float32
	lineWidth float64
	vertices  []float32
}

// NewTessellator returns an empty tessellator drawing opaque black 1px lines.
func NewTessellator() *Tessellator {
	return &Tessellator{color: [4]float32{0, 0, 0, 1}, lineWidth: 1}
}

// SetColor sets the colour of subsequent fills and strokes.
func (t *Tessellator) SetColor(c color.Color) {
	r, g, b, a := c.RGBA()
	t.color = [4]float32{float32(r) / 0xffff, float32(g) / 0xffff, float32(b) / 0xffff, float32(a) / 0xffff}
}

// SetLineWidth sets the stroke width in pixels.
func (t *Tessellator) SetLineWidth(w float64) { t.lineWidth = w }

func (t *Tessellator) MoveTo(x, y float64) {
	t.paths = append(t.paths, subpath{points: []geom.Point{geom.MakePoint(x, y)}})
}

func (t *Tessellator) LineTo(x, y float64) {
	sp := t.current()
	sp.points = append(sp.points, geom.MakePoint(x, y))
}

// QuadraticTo flattens the curve from the current point through control
// (cx, cy) to (x, y).
func (t *Tessellator) QuadraticTo(cx, cy, x, y float64) {
	sp := t.current()
	p0 := sp.points[len(sp.points)-1]
	c, p1 := geom.MakePoint(cx, cy), geom.MakePoint(x, y)
	sp.points = append(sp.points, geom.FlattenQuadratic(p0, c, p1, curveSegments(p0, c, p1))...)
}

func (t *Tessellator) ClosePath() {
	if len(t.paths) > 0 {
		t.paths[len(t.paths)-1].closed = true
	}
}

// current returns the open subpath, starting one at the origin when a path
// begins without a MoveTo.
func (t *Tessellator) current() *subpath {
	if len(t.paths) == 0 {
		t.MoveTo(0, 0)
	}
	return &t.paths[len(t.paths)-1]
}

// Fill triangulates every subpath with at least three points as a closed
// polygon and clears the path.
func (t *Tessellator) Fill() error {
	defer t.clearPath()
	for _, sp := range t.paths {
		if len(sp.points) < 3 {
			continue
		}
		triangles, err := earClip(sp.points)
		if err != nil {
			return fmt.Errorf("fill: %w", err)
		}
		for _, tri := range triangles {
			t.appendTriangle(tri[0], tri[1], tri[2])
		}
	}
	return nil
}

// Stroke expands every segment of the path into a quad of the current line
// width and clears the path.
func (t *Tessellator) Stroke() error {
	defer t.clearPath()
	if t.lineWidth <= 0 || math.IsNaN(t.lineWidth) {
		return fmt.Errorf("stroke: invalid line width %v", t.lineWidth)
	}
	half := t.lineWidth / 2
	for _, sp := range t.paths {
		pts := sp.points
		if sp.closed && len(pts) > 2 {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		for i := 0; i+1 < len(pts); i++ {
			t.appendSegment(pts[i], pts[i+1], half)
		}
	}
	return nil
}

func (t *Tessellator) appendSegment(p, q geom.Point, half float64) {
	n := geom.Normal(p, q)
	if n == (geom.Point{}) {
		return
	}
	n = n.Scale(half)
	a, b := p.Add(n), p.Sub(n)
	c, d := q.Sub(n), q.Add(n)
	t.appendTriangle(a, b, c)
	t.appendTriangle(a, c, d)
}

func (t *Tessellator) appendTriangle(a, b, c geom.Point) {
	for _, p := range [3]geom.Point{a, b, c} {
		t.vertices = append(t.vertices,
			float32(p.X), float32(p.Y),
			t.color[0], t.color[1], t.color[2], t.color[3],
		)
	}
}

// Vertices returns the triangles produced since the last Reset.
func (t *Tessellator) Vertices() []float32 { return t.vertices }

// Triangles returns the number of triangles produced since the last Reset.
func (t *Tessellator) Triangles() int {
	return len(t.vertices) / (3 * memory.FloatsPerVertex)
}

// Reset drops the path and all produced vertices.
func (t *Tessellator) Reset() {
	t.clearPath()
	t.vertices = t.vertices[:0]
}

func (t *Tessellator) clearPath() { t.paths = t.paths[:0] }

// curveSegments picks how many line pieces to flatten a quadratic into, based
// on the length of its control polygon.
func curveSegments(p0, c, p1 geom.Point) int {
	l := geom.Dist(p0, c) + geom.Dist(c, p1)
	n := int(math.Ceil(l / curveTolerance))
	return max(1, min(n, maxCurveSegments))
}
