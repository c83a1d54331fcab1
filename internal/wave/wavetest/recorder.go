// Package wavetest provides a recording wave.Surface for tests.
package wavetest

import (
	"github.com/irfansharif/waves/internal/geom"
)

// OpKind identifies a recorded drawing call.
type OpKind int

const (
	OpClear OpKind = iota
	OpMoveTo
	OpLineTo
	OpQuadraticTo
	OpClosePath
	OpFill
	OpStroke
)

// Op is one recorded drawing call. Points holds the call's coordinates
// (control point first for quadratics).
type Op struct {
	Kind   OpKind
	Points []geom.Point
	Color  string
	Width  float64
}

// Recorder implements wave.Surface by recording every call.
type Recorder struct {
	W, H int
	Ops  []Op

	// Err, when set, is returned from Fill and Stroke.
	Err error

	color string
	width float64
}

// NewRecorder returns a recorder with the given buffer size.
func NewRecorder(w, h int) *Recorder { return &Recorder{W: w, H: h} }

func (r *Recorder) Width() int  { return r.W }
func (r *Recorder) Height() int { return r.H }

// Resize changes the recorded buffer size.
func (r *Recorder) Resize(w, h int) error {
	r.W, r.H = w, h
	return nil
}

func (r *Recorder) Clear()                 { r.record(OpClear) }
func (r *Recorder) SetHexColor(hex string) { r.color = hex }
func (r *Recorder) SetLineWidth(w float64) { r.width = w }
func (r *Recorder) MoveTo(x, y float64)    { r.record(OpMoveTo, geom.MakePoint(x, y)) }
func (r *Recorder) LineTo(x, y float64)    { r.record(OpLineTo, geom.MakePoint(x, y)) }
func (r *Recorder) ClosePath()             { r.record(OpClosePath) }
func (r *Recorder) QuadraticTo(cx, cy, x, y float64) {
	r.record(OpQuadraticTo, geom.MakePoint(cx, cy), geom.MakePoint(x, y))
}

func (r *Recorder) Fill() error {
	r.record(OpFill)
	return r.Err
}

func (r *Recorder) Stroke() error {
	r.record(OpStroke)
	return r.Err
}

// Count returns how many ops of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Colors returns the colour of every fill and stroke, in order.
func (r *Recorder) Colors() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpFill || op.Kind == OpStroke {
			out = append(out, op.Color)
		}
	}
	return out
}

// Reset drops recorded ops.
func (r *Recorder) Reset() { r.Ops = nil }

func (r *Recorder) record(k OpKind, pts ...geom.Point) {
	r.Ops = append(r.Ops, Op{Kind: k, Points: pts, Color: r.color, Width: r.width})
}
