package export

import (
	"fmt"
	"io"

	"github.com/irfansharif/waves/internal/canvas"
)

// Render sizes drv to vp, runs frames animation ticks and leaves the final
// frame drawn on the driver's surface. Under reduced motion the static frame
// is drawn instead.
func Render(drv *canvas.Driver, vp canvas.Viewport, frames int) error {
	if err := drv.UpdateCanvasSizeAndRows(vp); err != nil {
		return fmt.Errorf("sizing canvas: %w", err)
	}
	if err := drv.Start(); err != nil {
		return err
	}
	for i := 0; i < frames; i++ {
		drv.Tick()
	}
	if drv.Paused() || frames == 0 {
		return nil
	}
	// The last Tick swallows draw errors; surface them here.
	return drv.DrawRows()
}

// PNG renders frames ticks onto a raster and writes it to w as a PNG.
func PNG(w io.Writer, drv *canvas.Driver, vp canvas.Viewport, frames int, background string) error {
	r, err := NewRaster(1, 1, background)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	drv.SetSurface(r)
	if err := Render(drv, vp, frames); err != nil {
		return err
	}
	if err := r.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// SVG renders frames ticks onto a vector surface and writes it to w.
func SVG(w io.Writer, drv *canvas.Driver, vp canvas.Viewport, frames int, background string) error {
	s := NewSVGSurface(1, 1, background)
	drv.SetSurface(s)
	if err := Render(drv, vp, frames); err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return fmt.Errorf("writing svg: %w", err)
	}
	return nil
}
