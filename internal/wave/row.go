// Package wave models the animated rows of the canvas. A Row is a horizontal
// band of evenly spaced points; every wobble tick springs each point toward a
// random vertical target, and drawing pushes points away from the pointer
// before stroking (or filling) a smooth curve through them.
package wave

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/harmonica"

	"github.com/irfansharif/waves/internal/geom"
)

// Surface is the 2D drawing surface rows are drawn onto. It is the subset of
// *gg.Context the canvas needs, so a gg context can be used as is.
type Surface interface {
	Width() int
	Height() int
	Clear()
	SetHexColor(hex string)
	SetLineWidth(width float64)
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticTo(cx, cy, x, y float64)
	ClosePath()
	Fill() error
	Stroke() error
}

// PointerOff is the pointer coordinate meaning "no active pointer". It lies
// far outside any viewport.
const PointerOff = -1e9

// IsPointerOff reports whether (x, y) is the pointer-off sentinel.
func IsPointerOff(x, y float64) bool {
	return x <= PointerOff/2 || y <= PointerOff/2
}

// Style selects how a row is drawn.
type Style int

const (
	// StyleFill closes the curve down to the bottom of the surface and fills
	// the band.
	StyleFill Style = iota
	// StyleStroke strokes the curve only.
	StyleStroke
)

func (s Style) String() string {
	switch s {
	case StyleFill:
		return "fill"
	case StyleStroke:
		return "stroke"
	default:
		return "unknown"
	}
}

const (
	defaultAmplitude = 0.35 // wobble target range, as a fraction of the point distance
	defaultPush      = 0.6  // pointer displacement at zero distance, as a fraction of the point distance
	defaultRetarget  = 0.02 // per-tick chance a point picks a new target early
	defaultLineWidth = 2.0
	defaultFPS       = 60
	defaultFrequency = 3.0
	defaultDamping   = 0.7
)

// Point is one vertex of a row: its resting position plus the spring state
// producing the wobble.
type Point struct {
	Base     geom.Point
	Offset   float64 // vertical displacement from Base
	Velocity float64
	Target   float64
}

// Position is the wobbled, undistorted position of the point.
func (p Point) Position() geom.Point {
	return geom.Point{X: p.Base.X, Y: p.Base.Y + p.Offset}
}

// Row is one animated horizontal band.
type Row struct {
	Fraction  float64 // vertical position as a fraction of the surface height
	Points    []Point
	Color     string
	Scale     float64 // device pixel scale, applied to line widths
	Style     Style
	LineWidth float64
	Amplitude float64
	Push      float64

	rng      *rand.Rand
	spring   harmonica.Spring
	retarget float64
}

// Option configures a Row.
type Option func(*Row)

// WithRand sets the row's random source.
func WithRand(r *rand.Rand) Option { return func(row *Row) { row.rng = r } }

// WithStyle sets the draw style.
func WithStyle(s Style) Option { return func(row *Row) { row.Style = s } }

// WithLineWidth sets the stroke width in logical pixels.
func WithLineWidth(w float64) Option { return func(row *Row) { row.LineWidth = w } }

// WithAmplitude sets the wobble range as a fraction of the point distance.
func WithAmplitude(a float64) Option { return func(row *Row) { row.Amplitude = a } }

// WithPush sets the pointer displacement strength as a fraction of the point
// distance.
func WithPush(p float64) Option { return func(row *Row) { row.Push = p } }

// WithSpring configures the harmonica spring driving the wobble.
func WithSpring(fps int, frequency, damping float64) Option {
	return func(row *Row) {
		row.spring = harmonica.NewSpring(harmonica.FPS(fps), frequency, damping)
	}
}

// NewRow creates an empty row at the given vertical fraction. Call Resize to
// lay out its points.
func NewRow(fraction float64, opts ...Option) *Row {
	r := &Row{
		Fraction:  fraction,
		Scale:     1,
		LineWidth: defaultLineWidth,
		Amplitude: defaultAmplitude,
		Push:      defaultPush,
		retarget:  defaultRetarget,
		spring:    harmonica.NewSpring(harmonica.FPS(defaultFPS), defaultFrequency, defaultDamping),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.rng == nil {
		r.rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return r
}

// Resize lays out exactly totalPoints evenly spaced points across width at
// Fraction*height. Colour and fraction are kept, and so is the spring state
// of points that survive the resize, so motion continues smoothly.
func (r *Row) Resize(width, height float64, totalPoints int) {
	if totalPoints < 0 {
		totalPoints = 0
	}
	step := 0.0
	if totalPoints > 1 {
		step = width / float64(totalPoints-1)
	}
	y := r.Fraction * height

	pts := make([]Point, totalPoints)
	for i := range pts {
		if i < len(r.Points) {
			pts[i] = r.Points[i]
		}
		pts[i].Base = geom.Point{X: float64(i) * step, Y: y}
	}
	r.Points = pts
}

// Rescale adapts the spring state of every point to a new inter-point
// distance: offsets, velocities and targets are scaled by to/from and offsets
// are clamped to ±to. It does nothing unless both distances are positive.
func (r *Row) Rescale(from, to float64) {
	if from <= 0 || to <= 0 {
		return
	}
	k := to / from
	for i := range r.Points {
		p := &r.Points[i]
		p.Offset *= k
		p.Velocity *= k
		p.Target *= k
		if p.Offset > to {
			p.Offset, p.Velocity = to, 0
		} else if p.Offset < -to {
			p.Offset, p.Velocity = -to, 0
		}
	}
}

// Wobble advances every point one spring step toward its target. Targets are
// re-drawn at random within ±distance*Amplitude once reached (or, rarely,
// early); offsets never exceed ±distance. Only the first totalPoints points
// are advanced, which is all of them unless a resize is pending.
func (r *Row) Wobble(distance float64, totalPoints int) {
	if distance <= 0 {
		return
	}
	n := min(totalPoints, len(r.Points))
	limit := distance * r.Amplitude
	for i := 0; i < n; i++ {
		p := &r.Points[i]
		if math.Abs(p.Target-p.Offset) < limit*0.05 || r.rng.Float64() < r.retarget {
			p.Target = (r.rng.Float64()*2 - 1) * limit
		}
		p.Offset, p.Velocity = r.spring.Update(p.Offset, p.Velocity, p.Target)
		if p.Offset > distance {
			p.Offset, p.Velocity = distance, 0
		} else if p.Offset < -distance {
			p.Offset, p.Velocity = -distance, 0
		}
	}
}

// Positions returns where each point is drawn: its wobbled position, pushed
// away from the pointer when closer than distance. The push fades linearly
// from distance*Push at the pointer to zero at the threshold.
func (r *Row) Positions(distance, px, py float64) []geom.Point {
	out := make([]geom.Point, len(r.Points))
	active := distance > 0 && !IsPointerOff(px, py)
	pointer := geom.MakePoint(px, py)
	for i, p := range r.Points {
		pos := p.Position()
		if active {
			if d := geom.Dist(pos, pointer); d < distance {
				dir := geom.MakePoint(0, -1)
				if d > 0 {
					dir = pos.Sub(pointer).Scale(1 / d)
				}
				pos = pos.Add(dir.Scale((1 - d/distance) * distance * r.Push))
			}
		}
		out[i] = pos
	}
	return out
}

// Draw renders the row as a smooth curve through its drawn positions, using
// quadratic segments between consecutive midpoints. Rows with fewer than two
// points, or without a colour yet, draw nothing.
func (r *Row) Draw(s Surface, distance, px, py float64) error {
	if s == nil || len(r.Points) < 2 || r.Color == "" {
		return nil
	}
	pts := r.Positions(distance, px, py)
	first, last := pts[0], pts[len(pts)-1]

	s.SetHexColor(r.Color)
	s.MoveTo(first.X, first.Y)
	for i := 1; i < len(pts)-1; i++ {
		m := geom.Mid(pts[i], pts[i+1])
		s.QuadraticTo(pts[i].X, pts[i].Y, m.X, m.Y)
	}
	s.LineTo(last.X, last.Y)

	if r.Style == StyleStroke {
		s.SetLineWidth(r.LineWidth * r.Scale)
		return s.Stroke()
	}
	bottom := float64(s.Height())
	s.LineTo(last.X, bottom)
	s.LineTo(first.X, bottom)
	s.ClosePath()
	return s.Fill()
}
