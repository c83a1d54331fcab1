// Package export renders the wave canvas headlessly: raster frames through
// gogpu/gg (PNG files and terminal frames) and vector frames through svgo.
package export

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/irfansharif/waves/internal/palette"
)

// Raster is a software-rendered wave surface: a gg context that clears to an
// opaque background instead of transparency.
type Raster struct {
	*gg.Context
	background gg.RGBA
}

// NewRaster returns a w×h raster cleared to background.
func NewRaster(w, h int, background string) (*Raster, error) {
	bg, err := palette.RGBA(background)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	r := &Raster{Context: gg.NewContext(max(w, 1), max(h, 1)), background: gg.FromColor(bg)}
	r.Clear()
	return r, nil
}

// Clear fills the raster with its background.
func (r *Raster) Clear() { r.ClearWithColor(r.background) }
