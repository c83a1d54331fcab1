// Package render presents the wave canvas on screen.
//
// Surface implements the canvas drawing surface on OpenGL: paths are
// flattened and triangulated on the CPU (fills with earcut, strokes as quads)
// and each frame is uploaded through a memory.VertexBuffer in one draw call.
// TermPresenter blits a raster frame to a terminal instead.
package render

import (
	"fmt"
	"image/color"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/irfansharif/waves/internal/memory"
	"github.com/irfansharif/waves/internal/palette"
)

// Stats tracks rendering performance metrics.
type Stats struct {
	Frames          int
	Triangles       int     // in the last flushed frame
	LastFlushTimeUs float64 // time spent in the last Flush call in microseconds
	Memory          memory.Stats
}

// Surface is an OpenGL drawing surface for the wave rows. Drawing calls only
// accumulate geometry; Flush submits the frame.
type Surface struct {
	*Tessellator

	w, h       int
	background color.RGBA
	colorErr   error

	program *program
	buffer  *memory.VertexBuffer
	stats   Stats
}

// NewSurface creates a w×h surface cleared to background. A GL context must
// be current on the calling thread.
func NewSurface(w, h int, background string) (*Surface, error) {
	bg, err := palette.RGBA(background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	prog, err := newProgram()
	if err != nil {
		return nil, err
	}
	buffer, err := memory.NewVertexBuffer(0)
	if err != nil {
		prog.delete()
		return nil, err
	}
	return &Surface{
		Tessellator: NewTessellator(),
		w:           w,
		h:           h,
		background:  bg,
		program:     prog,
		buffer:      buffer,
	}, nil
}

func (s *Surface) Width() int  { return s.w }
func (s *Surface) Height() int { return s.h }

// Resize sets the framebuffer size the surface draws into.
func (s *Surface) Resize(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", w, h)
	}
	s.w, s.h = w, h
	return nil
}

// Clear starts a new frame.
func (s *Surface) Clear() {
	s.Reset()
	s.colorErr = nil
}

// SetHexColor sets the current colour from a palette entry. An invalid entry
// fails the next Fill or Stroke.
func (s *Surface) SetHexColor(hex string) {
	c, err := palette.RGBA(hex)
	if err != nil {
		s.colorErr = err
		return
	}
	s.colorErr = nil
	s.SetColor(c)
}

func (s *Surface) Fill() error {
	if s.colorErr != nil {
		s.clearPath()
		return s.colorErr
	}
	return s.Tessellator.Fill()
}

func (s *Surface) Stroke() error {
	if s.colorErr != nil {
		s.clearPath()
		return s.colorErr
	}
	return s.Tessellator.Stroke()
}

// Flush clears the framebuffer and draws the accumulated frame.
func (s *Surface) Flush() error {
	start := time.Now()

	gl.Viewport(0, 0, int32(s.w), int32(s.h))
	bg := s.background
	gl.ClearColor(float32(bg.R)/255, float32(bg.G)/255, float32(bg.B)/255, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if err := s.buffer.Upload(s.Vertices()); err != nil {
		return fmt.Errorf("uploading frame: %w", err)
	}
	s.program.use(s.w, s.h)
	s.buffer.Draw()

	s.stats.Frames++
	s.stats.Triangles = s.Triangles()
	s.stats.LastFlushTimeUs = float64(time.Since(start).Microseconds())
	return nil
}

// Stats returns the current performance statistics.
func (s *Surface) Stats() Stats {
	st := s.stats
	st.Memory = s.buffer.Stats()
	return st
}

// PrintStats logs the vertex buffer's statistics.
func (s *Surface) PrintStats() { s.buffer.PrintStats() }

// Cleanup releases the GL resources.
func (s *Surface) Cleanup() {
	s.buffer.Cleanup()
	s.program.delete()
}

// Background returns the colour the surface clears to.
func (s *Surface) Background() color.RGBA { return s.background }
