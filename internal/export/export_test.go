package export

import (
	"bytes"
	"encoding/xml"
	"errors"
	"image/png"
	"io"
	"math/rand"
	"strings"
	"testing"

	"github.com/irfansharif/waves/internal/canvas"
	"github.com/irfansharif/waves/internal/palette"
	"github.com/irfansharif/waves/internal/wave"
)

var (
	_ wave.Surface   = (*Raster)(nil)
	_ wave.Surface   = (*SVGSurface)(nil)
	_ canvas.Resizer = (*Raster)(nil)
	_ canvas.Resizer = (*SVGSurface)(nil)
)

func newDriver(opts canvas.Options) *canvas.Driver {
	opts.Rand = rand.New(rand.NewSource(3))
	return canvas.New(nil, palette.Catalog(), opts)
}

func TestPNG(t *testing.T) {
	var buf bytes.Buffer
	drv := newDriver(canvas.Options{})
	vp := canvas.Viewport{Width: 160, Height: 90, Scale: 2}
	// No ticks: the rows are flat at their resting heights.
	if err := PNG(&buf, drv, vp, 0, "#ffffff"); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 180 {
		t.Errorf("image is %dx%d, want 320x180", b.Dx(), b.Dy())
	}
	if r, g, b, a := img.At(160, 2).RGBA(); r>>8 != 255 || g>>8 != 255 || b>>8 != 255 || a>>8 != 255 {
		t.Errorf("top of the frame = (%d,%d,%d,%d), want the white background", r>>8, g>>8, b>>8, a>>8)
	}
	// Row 0 is drawn last and covers the bottom of the frame.
	want, _ := palette.RGBA(drv.Palette()[len(drv.Palette())-1])
	r, g, b, _ := img.At(160, 178).RGBA()
	if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B {
		t.Errorf("bottom of the frame = (%d,%d,%d), want %v", r>>8, g>>8, b>>8, want)
	}
}

func TestPNGAnimated(t *testing.T) {
	var buf bytes.Buffer
	drv := newDriver(canvas.Options{})
	if err := PNG(&buf, drv, canvas.Viewport{Width: 120, Height: 80, Scale: 1}, 10, "#000000"); err != nil {
		t.Fatal(err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if drv.Stats().Frames != 10 {
		t.Errorf("ran %d frames, want 10", drv.Stats().Frames)
	}
}

func TestPNGBadBackground(t *testing.T) {
	if err := PNG(&bytes.Buffer{}, newDriver(canvas.Options{}), canvas.Viewport{Width: 10, Height: 10}, 1, "nope"); err == nil {
		t.Error("invalid background accepted")
	}
}

func TestSVG(t *testing.T) {
	var buf bytes.Buffer
	drv := newDriver(canvas.Options{Style: wave.StyleStroke})
	if err := SVG(&buf, drv, canvas.Viewport{Width: 300, Height: 200, Scale: 1}, 5, "#101010"); err != nil {
		t.Fatal(err)
	}
	doc := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(doc), "<?xml") {
		t.Errorf("document does not start with an XML declaration: %.40q", doc)
	}
	if got := strings.Count(doc, "<path"); got != len(canvas.DefaultFractions) {
		t.Errorf("document has %d paths, want one per row (%d)", got, len(canvas.DefaultFractions))
	}
	if !strings.Contains(doc, "stroke-width:2.00") {
		t.Error("stroke width missing from row paths")
	}
	for _, c := range drv.Palette() {
		if !strings.Contains(doc, "stroke:"+c) {
			t.Errorf("palette colour %s missing", c)
		}
	}

	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if err != nil {
			if err != io.EOF {
				t.Fatalf("invalid XML: %v", err)
			}
			break
		}
	}
}

func TestSVGReducedMotion(t *testing.T) {
	var buf bytes.Buffer
	drv := newDriver(canvas.Options{ReducedMotion: true})
	if err := SVG(&buf, drv, canvas.Viewport{Width: 300, Height: 200, Scale: 1}, 50, "#ffffff"); err != nil {
		t.Fatal(err)
	}
	if drv.Stats().Frames != 0 {
		t.Errorf("reduced motion ran %d animation frames", drv.Stats().Frames)
	}
	if got := strings.Count(buf.String(), "fill:#"); got != len(canvas.DefaultFractions)+1 {
		t.Errorf("static frame has %d filled elements, want background plus one per row", got)
	}
}

func TestSVGSurfacePathData(t *testing.T) {
	s := NewSVGSurface(100, 50, "white")
	s.SetHexColor("#ff0000")
	s.MoveTo(0, 10)
	s.QuadraticTo(5, 0, 10, 10.5)
	s.LineTo(10, 50)
	s.ClosePath()
	if err := s.Fill(); err != nil {
		t.Fatal(err)
	}
	want := svgPath{d: "M 0.00 10.00 Q 5.00 0.00 10.00 10.50 L 10.00 50.00 Z", style: "fill:#ff0000;stroke:none"}
	if s.Paths() != 1 || s.paths[0] != want {
		t.Errorf("paths = %+v, want %+v", s.paths, want)
	}

	// Fill consumes the path; an empty path emits nothing.
	if err := s.Fill(); err != nil || s.Paths() != 1 {
		t.Error("empty path emitted an element")
	}
	s.Clear()
	if s.Paths() != 0 {
		t.Error("Clear kept paths")
	}
}

func TestSVGSurfaceStrokeWidth(t *testing.T) {
	s := NewSVGSurface(10, 10, "white")
	s.SetLineWidth(0)
	s.MoveTo(0, 0)
	s.LineTo(1, 1)
	if err := s.Stroke(); err == nil {
		t.Error("zero-width stroke accepted")
	}
	if s.Paths() != 0 {
		t.Error("failed stroke emitted an element")
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestSVGSurfaceWriteError(t *testing.T) {
	s := NewSVGSurface(10, 10, "white")
	if _, err := s.WriteTo(failWriter{}); err == nil {
		t.Error("write error swallowed")
	}
}

func TestRasterClearsToBackground(t *testing.T) {
	r, err := NewRaster(8, 8, "navy")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = r.Close() }()
	r.SetHexColor("#ff0000")
	r.DrawRectangle(0, 0, 8, 8)
	if err := r.Fill(); err != nil {
		t.Fatal(err)
	}
	r.Clear()
	cr, cg, cb, ca := r.Image().At(4, 4).RGBA()
	if cr>>8 != 0 || cg>>8 != 0 || cb>>8 != 128 || ca>>8 != 255 {
		t.Errorf("cleared pixel = (%d,%d,%d,%d), want navy", cr>>8, cg>>8, cb>>8, ca>>8)
	}
}
