// Package canvas drives the animated wave canvas: it owns the drawing surface
// sizing, the rows, the session's palette list and the Active/Paused state,
// and orchestrates wobble, draw, resize and palette changes.
//
// A Driver is single-threaded: every method must be called from the host's
// UI/event goroutine (the glfw main loop, or the terminal event loop).
package canvas

import (
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/irfansharif/waves/internal/palette"
	"github.com/irfansharif/waves/internal/wave"
)

var driverLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	if os.Getenv("WAVES_DEBUG_DRIVER") == "1" {
		driverLogger = log.New(os.Stdout, "[driver] ", log.Ltime|log.Lmsgprefix)
	}
}

// Viewport is the host's logical (unscaled) size and device pixel scale.
type Viewport struct {
	Width, Height int
	Scale         float64
}

// Resizer is implemented by surfaces whose backing buffer can be resized.
type Resizer interface {
	Resize(w, h int) error
}

// State is the viewport-derived and pointer state shared by all rows.
type State struct {
	Scale                       float64
	BufferWidth, BufferHeight   int // backing pixel buffer (viewport × scale)
	DisplayWidth, DisplayHeight int // logical display size (viewport)
	TotalPoints                 int
	Distance                    float64 // inter-point distance in buffer pixels
	PointerX, PointerY          float64 // buffer pixels, or wave.PointerOff
}

// Stats tracks driver activity.
type Stats struct {
	Frames         int
	Wobbles        int
	Draws          int
	SkippedDraws   int
	PaletteChanges int
	LastDrawTimeUs float64
}

// Driver orchestrates the rows onto one surface.
type Driver struct {
	surface  wave.Surface
	rows     []*wave.Row
	palettes *palette.List
	opts     Options
	state    State
	stats    Stats

	// Pointer in logical pixels; state holds it in buffer pixels.
	pointerX, pointerY float64
	// Distance the rows' spring state is sized for.
	motionDistance float64

	paused        bool
	closed        bool
	ticks         int
	onClose       []func()
	drawErrLogged bool
}

// New creates a driver drawing onto surface (which may be nil when no drawing
// context could be acquired; the driver then renders nothing). The palettes
// are copied and shuffled once. The driver starts Active, or Paused when
// opts.ReducedMotion is set.
func New(surface wave.Surface, palettes []palette.Palette, opts Options) *Driver {
	opts = opts.withDefaults()

	d := &Driver{
		surface:  surface,
		palettes: palette.NewList(opts.Rand, palettes),
		opts:     opts,
		paused:   opts.ReducedMotion,
		state: State{
			Scale:    1,
			PointerX: wave.PointerOff,
			PointerY: wave.PointerOff,
		},
		pointerX: wave.PointerOff,
		pointerY: wave.PointerOff,
	}
	for _, fraction := range opts.Fractions {
		d.rows = append(d.rows, wave.NewRow(fraction,
			wave.WithRand(rand.New(rand.NewSource(opts.Rand.Int63()))),
			wave.WithStyle(opts.Style),
			wave.WithLineWidth(opts.LineWidth),
			wave.WithAmplitude(opts.Amplitude),
			wave.WithPush(opts.Push),
			wave.WithSpring(opts.FPS, opts.Frequency, opts.Damping),
		))
	}
	d.applyPalette(d.palettes.Current())
	return d
}

// SetSurface swaps the drawing surface, e.g. once a GL context is ready.
func (d *Driver) SetSurface(s wave.Surface) { d.surface = s }

// Surface returns the current drawing surface.
func (d *Driver) Surface() wave.Surface { return d.surface }

// Rows returns the driver's rows, row 0 first.
func (d *Driver) Rows() []*wave.Row { return append([]*wave.Row(nil), d.rows...) }

// State returns a snapshot of the driver state.
func (d *Driver) State() State { return d.state }

// Stats returns the activity counters.
func (d *Driver) Stats() Stats { return d.stats }

// Paused reports whether the animation loop is suspended.
func (d *Driver) Paused() bool { return d.paused }

// Closed reports whether Close was called.
func (d *Driver) Closed() bool { return d.closed }

// ReducedMotion reports whether the driver renders static frames only.
func (d *Driver) ReducedMotion() bool { return d.opts.ReducedMotion }

// UpdateCanvasSizeAndRows recomputes the backing buffer (viewport × scale)
// and display (viewport) sizes, resizes the surface's buffer when it supports
// it, and lays out every row for the new point count. A surface resize error
// is returned after the rows have been updated.
func (d *Driver) UpdateCanvasSizeAndRows(vp Viewport) error {
	scale := vp.Scale
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	bw := int(math.Round(float64(max(vp.Width, 0)) * scale))
	bh := int(math.Round(float64(max(vp.Height, 0)) * scale))

	d.state.Scale = scale
	d.state.BufferWidth, d.state.BufferHeight = bw, bh
	d.state.DisplayWidth, d.state.DisplayHeight = max(vp.Width, 0), max(vp.Height, 0)
	d.state.TotalPoints, d.state.Distance = layout(bw, bh, d.opts.Spacing*scale)
	d.scalePointer()

	var err error
	if r, ok := d.surface.(Resizer); ok && bw > 0 && bh > 0 {
		err = r.Resize(bw, bh)
	}
	for _, row := range d.rows {
		row.Scale = scale
		row.Resize(float64(bw), float64(bh), d.state.TotalPoints)
		row.Rescale(d.motionDistance, d.state.Distance)
	}
	if d.state.Distance > 0 {
		d.motionDistance = d.state.Distance
	}
	driverLogger.Printf("viewport %dx%d@%.2f: buffer %dx%d, %d points, distance %.1f",
		vp.Width, vp.Height, scale, bw, bh, d.state.TotalPoints, d.state.Distance)
	return err
}

// layout returns the point count and spacing covering a bw×bh buffer with
// points roughly spacing pixels apart, or zero for an empty buffer.
func layout(bw, bh int, spacing float64) (int, float64) {
	if bw <= 0 || bh <= 0 {
		return 0, 0
	}
	if spacing <= 0 {
		spacing = defaultSpacing
	}
	total := int(math.Ceil(float64(bw)/spacing)) + 1
	if total < 2 {
		total = 2
	}
	return total, float64(bw) / float64(total-1)
}

// DrawRows clears the surface and draws every row, last row first. It is a
// no-op when there are no points, no surface, or the surface has no area. A
// failing surface is logged once and otherwise ignored; the first error of
// the frame is returned.
func (d *Driver) DrawRows() error {
	s := d.surface
	if d.closed || d.state.TotalPoints == 0 || s == nil || s.Width() <= 0 || s.Height() <= 0 {
		d.stats.SkippedDraws++
		return nil
	}

	start := time.Now()
	s.Clear()
	var first error
	for i := len(d.rows) - 1; i >= 0; i-- {
		err := d.rows[i].Draw(s, d.state.Distance, d.state.PointerX, d.state.PointerY)
		if err != nil && first == nil {
			first = err
		}
	}
	if first != nil && !d.drawErrLogged {
		log.Printf("wave canvas: drawing failed, continuing without output: %v", first)
		d.drawErrLogged = true
	}

	d.stats.Draws++
	d.stats.LastDrawTimeUs = float64(time.Since(start).Microseconds())
	return first
}

// WobbleRows advances every row one wobble step. When advancePalette is set
// the next palette is applied as well.
func (d *Driver) WobbleRows(advancePalette bool) {
	for _, row := range d.rows {
		row.Wobble(d.state.Distance, d.state.TotalPoints)
	}
	d.stats.Wobbles++
	if advancePalette {
		d.NextPalette()
	}
}

// Start renders the first frame. Under reduced motion this is the only frame
// drawn until the pointer or palette changes.
func (d *Driver) Start() error {
	return d.DrawRows()
}

// Tick runs one animation frame (wobble then draw) when Active, and reports
// whether a frame was produced. Every AutoRotateEvery ticks the wobble also
// advances the palette.
func (d *Driver) Tick() bool {
	if d.closed || d.paused {
		return false
	}
	d.ticks++
	advance := d.opts.AutoRotateEvery > 0 && d.ticks%d.opts.AutoRotateEvery == 0
	d.WobbleRows(advance)
	_ = d.DrawRows()
	d.stats.Frames++
	return true
}

// SetMousePosition records the pointer in logical coordinates. It follows
// later scale changes.
func (d *Driver) SetMousePosition(x, y float64) {
	if wave.IsPointerOff(x, y) {
		d.ResetMousePosition()
		return
	}
	d.pointerX, d.pointerY = x, y
	d.scalePointer()
}

// ResetMousePosition sets the pointer to the off sentinel.
func (d *Driver) ResetMousePosition() {
	d.pointerX, d.pointerY = wave.PointerOff, wave.PointerOff
	d.scalePointer()
}

func (d *Driver) scalePointer() {
	if wave.IsPointerOff(d.pointerX, d.pointerY) {
		d.state.PointerX, d.state.PointerY = wave.PointerOff, wave.PointerOff
		return
	}
	d.state.PointerX, d.state.PointerY = d.pointerX*d.state.Scale, d.pointerY*d.state.Scale
}

// MousePosition returns the pointer in buffer pixels.
func (d *Driver) MousePosition() (x, y float64) {
	return d.state.PointerX, d.state.PointerY
}

// PointerMoved records the pointer and, while Paused, redraws the static
// frame once so the distortion follows the pointer. When Active the next Tick
// picks the position up.
func (d *Driver) PointerMoved(x, y float64) {
	d.SetMousePosition(x, y)
	d.redrawIfPaused()
}

// PointerLeft resets the pointer, redrawing like PointerMoved.
func (d *Driver) PointerLeft() {
	d.PointerMoved(wave.PointerOff, wave.PointerOff)
}

// SetPalette assigns row i the colour p[len(p)-i-1], all rows at once.
func (d *Driver) SetPalette(p palette.Palette) {
	d.applyPalette(p)
	d.redrawIfPaused()
}

func (d *Driver) applyPalette(p palette.Palette) {
	n := len(p)
	for i, row := range d.rows {
		j := n - i - 1
		if j < 0 {
			// More rows than colours: keep cycling through the palette.
			j = (j%n + n) % n
		}
		row.Color = p[j]
	}
	d.stats.PaletteChanges++
}

// Palette returns the active palette.
func (d *Driver) Palette() palette.Palette { return d.palettes.Current() }

// PaletteIndex returns the position of the active palette in the shuffled
// list.
func (d *Driver) PaletteIndex() int { return d.palettes.Index() }

// Palettes returns the session's shuffled palette list.
func (d *Driver) Palettes() []palette.Palette { return d.palettes.Palettes() }

// NextPalette applies the next palette of the shuffled list (wrapping).
func (d *Driver) NextPalette() palette.Palette {
	p := d.palettes.Next()
	d.SetPalette(p)
	return p
}

// PreviousPalette applies the previous palette of the shuffled list
// (wrapping).
func (d *Driver) PreviousPalette() palette.Palette {
	p := d.palettes.Previous()
	d.SetPalette(p)
	return p
}

// SelectPalette applies the palette at index i of the shuffled list.
func (d *Driver) SelectPalette(i int) palette.Palette {
	p := d.palettes.Select(i)
	d.SetPalette(p)
	return p
}

func (d *Driver) redrawIfPaused() {
	if d.paused && !d.closed {
		_ = d.DrawRows()
	}
}

// Pause suspends the animation loop; the last frame stays on the surface.
func (d *Driver) Pause() { d.paused = true }

// Resume restarts the animation loop. Under reduced motion the driver stays
// static and Resume reports false.
func (d *Driver) Resume() bool {
	if d.opts.ReducedMotion || d.closed {
		return false
	}
	d.paused = false
	return true
}

// TogglePause flips between Active and Paused and returns whether the driver
// is now paused.
func (d *Driver) TogglePause() bool {
	if d.paused {
		d.Resume()
	} else {
		d.Pause()
	}
	return d.paused
}

// OnClose registers fn to run at teardown (listener removal, GPU cleanup).
// Hooks run once, most recently registered first.
func (d *Driver) OnClose(fn func()) {
	if d.closed {
		fn()
		return
	}
	d.onClose = append(d.onClose, fn)
}

// Close tears the driver down: the loop stops, draws become no-ops and the
// teardown hooks run. Close is idempotent.
func (d *Driver) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.paused = true
	for i := len(d.onClose) - 1; i >= 0; i-- {
		d.onClose[i]()
	}
	d.onClose = nil
	driverLogger.Printf("closed after %d frames", d.stats.Frames)
}
