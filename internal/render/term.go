package render

import (
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// halfBlock is the upper half block: its foreground paints the top pixel of
// a cell and its background the bottom one.
const halfBlock = '▀'

// TermPresenter shows raster frames on a terminal, two pixel rows per cell.
type TermPresenter struct {
	screen     tcell.Screen
	background color.RGBA
}

// NewTermPresenter returns a presenter drawing onto screen. Transparent
// pixels show background.
func NewTermPresenter(screen tcell.Screen, background color.RGBA) *TermPresenter {
	return &TermPresenter{screen: screen, background: background}
}

// PixelSize is the frame size that maps one pixel to each half cell.
func (p *TermPresenter) PixelSize() (w, h int) {
	cols, rows := p.screen.Size()
	return cols, rows * 2
}

// Present draws img scaled to the screen (nearest neighbour) and shows it.
func (p *TermPresenter) Present(img image.Image) {
	cols, rows := p.screen.Size()
	b := img.Bounds()
	if cols <= 0 || rows <= 0 || b.Empty() {
		return
	}
	pw, ph := cols, rows*2
	sample := func(x, y int) tcell.Color {
		sx := b.Min.X + x*b.Dx()/pw
		sy := b.Min.Y + y*b.Dy()/ph
		return p.toColor(img.At(sx, sy))
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			style := tcell.StyleDefault.
				Foreground(sample(col, row*2)).
				Background(sample(col, row*2+1))
			p.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}
	p.screen.Show()
}

// toColor composites c over the background.
func (p *TermPresenter) toColor(c color.Color) tcell.Color {
	r, g, b, a := c.RGBA() // premultiplied
	inv := 0xffff - a
	blend := func(v uint32, bg uint8) int32 {
		return int32((v + uint32(bg)*0x101*inv/0xffff) >> 8)
	}
	return tcell.NewRGBColor(blend(r, p.background.R), blend(g, p.background.G), blend(b, p.background.B))
}
