package app

import (
	"math"

	"github.com/irfansharif/waves/internal/canvas"
)

const (
	minScale = 0.25
	maxScale = 8.0
)

// View manages the host's viewport: logical size and device pixel scale.
type View struct {
	Width, Height int
	Scale         float64
}

// NewView creates a view of the given logical size and scale.
func NewView(width, height int, scale float64) *View {
	v := &View{}
	v.Set(width, height, scale)
	return v
}

// Set updates the viewport, clamping the scale to a valid range, and reports
// whether anything changed.
func (v *View) Set(width, height int, scale float64) bool {
	width, height = max(width, 0), max(height, 0)
	scale = clampScale(scale)
	if width == v.Width && height == v.Height && scale == v.Scale {
		return false
	}
	v.Width, v.Height, v.Scale = width, height, scale
	return true
}

// Viewport returns the view as a canvas viewport.
func (v *View) Viewport() canvas.Viewport {
	return canvas.Viewport{Width: v.Width, Height: v.Height, Scale: v.Scale}
}

// ToLogical converts a point in framebuffer pixels to logical pixels.
func (v *View) ToLogical(x, y float64) (float64, float64) {
	return x / v.Scale, y / v.Scale
}

func clampScale(s float64) float64 {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		return 1
	}
	return math.Min(math.Max(s, minScale), maxScale)
}
