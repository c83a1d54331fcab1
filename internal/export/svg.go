package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

type svgPath struct {
	d     string
	style string
}

// SVGSurface is a vector wave surface. Drawing calls accumulate path elements
// for the current frame; WriteTo serializes the frame as an SVG document.
type SVGSurface struct {
	w, h       int
	background string

	color     string
	lineWidth float64
	d         strings.Builder
	paths     []svgPath
}

// NewSVGSurface returns a w×h vector surface with the given background.
func NewSVGSurface(w, h int, background string) *SVGSurface {
	return &SVGSurface{w: w, h: h, background: background, color: "#000000", lineWidth: 1}
}

func (s *SVGSurface) Width() int  { return s.w }
func (s *SVGSurface) Height() int { return s.h }

// Resize sets the document size.
func (s *SVGSurface) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", w, h)
	}
	s.w, s.h = w, h
	return nil
}

// Clear drops the frame's paths.
func (s *SVGSurface) Clear() {
	s.paths = s.paths[:0]
	s.d.Reset()
}

func (s *SVGSurface) SetHexColor(hex string) { s.color = hex }
func (s *SVGSurface) SetLineWidth(w float64) { s.lineWidth = w }

func (s *SVGSurface) MoveTo(x, y float64) { s.cmd("M", x, y) }
func (s *SVGSurface) LineTo(x, y float64) { s.cmd("L", x, y) }
func (s *SVGSurface) ClosePath()          { s.cmd("Z") }

func (s *SVGSurface) QuadraticTo(cx, cy, x, y float64) { s.cmd("Q", cx, cy, x, y) }

func (s *SVGSurface) cmd(op string, coords ...float64) {
	if s.d.Len() > 0 {
		s.d.WriteByte(' ')
	}
	s.d.WriteString(op)
	for _, c := range coords {
		s.d.WriteByte(' ')
		s.d.WriteString(strconv.FormatFloat(c, 'f', 2, 64))
	}
}

// Fill emits the current path as a filled element.
func (s *SVGSurface) Fill() error {
	return s.emit("fill:" + s.color + ";stroke:none")
}

// Stroke emits the current path as a stroked element.
func (s *SVGSurface) Stroke() error {
	if s.lineWidth <= 0 {
		s.d.Reset()
		return fmt.Errorf("stroke: invalid line width %v", s.lineWidth)
	}
	return s.emit(fmt.Sprintf("fill:none;stroke:%s;stroke-width:%s;stroke-linejoin:round;stroke-linecap:round",
		s.color, strconv.FormatFloat(s.lineWidth, 'f', 2, 64)))
}

func (s *SVGSurface) emit(style string) error {
	if s.d.Len() == 0 {
		return nil
	}
	s.paths = append(s.paths, svgPath{d: s.d.String(), style: style})
	s.d.Reset()
	return nil
}

// Paths returns the number of path elements in the frame.
func (s *SVGSurface) Paths() int { return len(s.paths) }

// WriteTo writes the frame as an SVG document.
func (s *SVGSurface) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	canvas := svg.New(cw)
	canvas.Start(s.w, s.h)
	canvas.Title("waves")
	canvas.Rect(0, 0, s.w, s.h, "fill:"+s.background)
	for _, p := range s.paths {
		canvas.Path(p.d, p.style)
	}
	canvas.End()
	return cw.n, cw.err
}

// countingWriter tracks bytes written and keeps the first error, since svgo
// discards write errors.
type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}
