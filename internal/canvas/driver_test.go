package canvas

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/gogpu/gg"

	"github.com/irfansharif/waves/internal/palette"
	"github.com/irfansharif/waves/internal/wave"
	"github.com/irfansharif/waves/internal/wave/wavetest"
)

var testPalettes = []palette.Palette{
	{"#000001", "#000002", "#000003", "#000004"},
	{"#000011", "#000012", "#000013", "#000014"},
	{"#000021", "#000022", "#000023", "#000024"},
	{"#000031", "#000032", "#000033", "#000034"},
	{"#000041", "#000042", "#000043", "#000044"},
}

func newDriver(t *testing.T, s wave.Surface, opts Options) *Driver {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(11))
	}
	return New(s, testPalettes, opts)
}

func TestUpdateCanvasSizeAndRows(t *testing.T) {
	rec := wavetest.NewRecorder(1, 1)
	d := newDriver(t, rec, Options{Spacing: 100})
	if err := d.UpdateCanvasSizeAndRows(Viewport{Width: 400, Height: 300, Scale: 2}); err != nil {
		t.Fatal(err)
	}

	st := d.State()
	if st.BufferWidth != 800 || st.BufferHeight != 600 {
		t.Errorf("buffer = %dx%d, want 800x600", st.BufferWidth, st.BufferHeight)
	}
	if st.DisplayWidth != 400 || st.DisplayHeight != 300 {
		t.Errorf("display = %dx%d, want 400x300", st.DisplayWidth, st.DisplayHeight)
	}
	if rec.W != 800 || rec.H != 600 {
		t.Errorf("surface buffer = %dx%d, want 800x600", rec.W, rec.H)
	}
	// 800px at 200px spacing (100 logical × 2).
	if st.TotalPoints != 5 || st.Distance != 200 {
		t.Errorf("points = %d distance = %v, want 5 and 200", st.TotalPoints, st.Distance)
	}
	for i, row := range d.Rows() {
		if len(row.Points) != st.TotalPoints {
			t.Errorf("row %d has %d points, want %d", i, len(row.Points), st.TotalPoints)
		}
		if row.Scale != 2 {
			t.Errorf("row %d scale = %v, want 2", i, row.Scale)
		}
		if want := row.Fraction * 600; row.Points[0].Base.Y != want {
			t.Errorf("row %d at y=%v, want %v", i, row.Points[0].Base.Y, want)
		}
	}
}

func TestUpdateCanvasSizeDefaults(t *testing.T) {
	d := newDriver(t, wavetest.NewRecorder(1, 1), Options{})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 100, Height: 50})
	if d.State().Scale != 1 || d.State().BufferWidth != 100 {
		t.Errorf("zero scale should default to 1: %+v", d.State())
	}

	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 0, Height: 50, Scale: 1})
	if d.State().TotalPoints != 0 {
		t.Errorf("zero-width viewport gave %d points", d.State().TotalPoints)
	}
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: -5, Height: -5, Scale: 1})
	if st := d.State(); st.BufferWidth != 0 || st.DisplayWidth != 0 {
		t.Errorf("negative viewport not clamped: %+v", st)
	}
}

type failingResizer struct {
	*wavetest.Recorder
}

func (failingResizer) Resize(int, int) error { return errors.New("no resize") }

func TestUpdateCanvasSizeResizeError(t *testing.T) {
	d := newDriver(t, failingResizer{wavetest.NewRecorder(10, 10)}, Options{})
	err := d.UpdateCanvasSizeAndRows(Viewport{Width: 200, Height: 100, Scale: 1})
	if err == nil {
		t.Fatal("expected resize error")
	}
	if d.State().TotalPoints == 0 || len(d.Rows()[0].Points) == 0 {
		t.Error("rows should be laid out despite the resize error")
	}
}

func TestDrawRowsGuards(t *testing.T) {
	t.Run("zero points", func(t *testing.T) {
		rec := wavetest.NewRecorder(100, 100)
		d := newDriver(t, rec, Options{})
		if err := d.DrawRows(); err != nil {
			t.Fatal(err)
		}
		if len(rec.Ops) != 0 {
			t.Errorf("drew %d ops with no points", len(rec.Ops))
		}
	})
	t.Run("zero width surface", func(t *testing.T) {
		rec := wavetest.NewRecorder(100, 100)
		d := newDriver(t, rec, Options{})
		_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 100, Height: 100, Scale: 1})
		rec.W = 0
		if err := d.DrawRows(); err != nil {
			t.Fatal(err)
		}
		if len(rec.Ops) != 0 {
			t.Errorf("drew %d ops on a zero-width surface", len(rec.Ops))
		}
	})
	t.Run("no surface", func(t *testing.T) {
		d := newDriver(t, nil, Options{})
		_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 100, Height: 100, Scale: 1})
		if err := d.DrawRows(); err != nil {
			t.Fatal(err)
		}
		if !d.Tick() {
			t.Error("Tick should still run the loop without a surface")
		}
		if d.Stats().Draws != 0 || d.Stats().SkippedDraws != 2 {
			t.Errorf("stats = %+v", d.Stats())
		}
	})
}

func TestDrawRowsOrder(t *testing.T) {
	rec := wavetest.NewRecorder(1, 1)
	d := newDriver(t, rec, Options{})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 300, Height: 200, Scale: 1})
	d.SetPalette(palette.Palette{"#aa0000", "#bb0000", "#cc0000", "#dd0000"})
	rec.Reset()

	if err := d.DrawRows(); err != nil {
		t.Fatal(err)
	}
	if rec.Ops[0].Kind != wavetest.OpClear {
		t.Fatalf("first op %v, want Clear", rec.Ops[0].Kind)
	}
	// Last row (colour p[0]) first, row 0 (colour p[3]) last.
	want := []string{"#aa0000", "#bb0000", "#cc0000", "#dd0000"}
	got := rec.Colors()
	if len(got) != len(want) {
		t.Fatalf("colours = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("draw %d colour %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDrawRowsSurfaceError(t *testing.T) {
	rec := wavetest.NewRecorder(1, 1)
	rec.Err = errors.New("raster failed")
	d := newDriver(t, rec, Options{})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 300, Height: 200, Scale: 1})
	if err := d.DrawRows(); !errors.Is(err, rec.Err) {
		t.Errorf("DrawRows error = %v", err)
	}
	if !d.Tick() {
		t.Error("a failing surface must not stop the loop")
	}
}

func TestSetPaletteReverseOrder(t *testing.T) {
	d := newDriver(t, wavetest.NewRecorder(1, 1), Options{})
	p := palette.Palette{"#c00000", "#c10000", "#c20000", "#c30000"}
	d.SetPalette(p)
	for i, row := range d.Rows() {
		if want := p[len(p)-i-1]; row.Color != want {
			t.Errorf("row %d colour %s, want %s", i, row.Color, want)
		}
	}
}

func TestSetPaletteMoreRowsThanColours(t *testing.T) {
	d := newDriver(t, wavetest.NewRecorder(1, 1), Options{Fractions: []float64{0.9, 0.8, 0.7, 0.6, 0.5, 0.4}})
	p := palette.Palette{"#000000", "#111111", "#222222", "#333333"}
	d.SetPalette(p)
	want := []string{"#333333", "#222222", "#111111", "#000000", "#333333", "#222222"}
	for i, row := range d.Rows() {
		if row.Color != want[i] {
			t.Errorf("row %d colour %s, want %s", i, row.Color, want[i])
		}
	}
}

func TestInitialPaletteApplied(t *testing.T) {
	d := newDriver(t, wavetest.NewRecorder(1, 1), Options{})
	p := d.Palette()
	for i, row := range d.Rows() {
		if row.Color != p[len(p)-i-1] {
			t.Errorf("row %d not coloured from the active palette", i)
		}
	}
}

func TestNextPreviousPaletteInverse(t *testing.T) {
	d := newDriver(t, wavetest.NewRecorder(1, 1), Options{})
	for i := range d.Palettes() {
		start := d.SelectPalette(i)
		d.NextPalette()
		if got := d.PreviousPalette(); got != start {
			t.Errorf("next/previous from %d = %v, want %v", i, got, start)
		}
		d.PreviousPalette()
		if got := d.NextPalette(); got != start {
			t.Errorf("previous/next from %d = %v, want %v", i, got, start)
		}
		if d.Rows()[0].Color != start[len(start)-1] {
			t.Errorf("rows not recoloured after cycling from %d", i)
		}
	}
}

func TestPaletteCycleWraps(t *testing.T) {
	d := newDriver(t, wavetest.NewRecorder(1, 1), Options{})
	start := d.Palette()
	for i := 0; i < len(testPalettes); i++ {
		d.NextPalette()
	}
	if d.Palette() != start {
		t.Error("a full cycle of NextPalette did not return to the start")
	}
	d.SelectPalette(0)
	d.PreviousPalette()
	if d.PaletteIndex() != len(testPalettes)-1 {
		t.Errorf("Previous from 0 gave index %d", d.PaletteIndex())
	}
}

func TestPointerOffRendersUndisplaced(t *testing.T) {
	rec := wavetest.NewRecorder(1, 1)
	d := newDriver(t, rec, Options{Style: wave.StyleStroke})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 400, Height: 400, Scale: 1})
	d.WobbleRows(false)

	collect := func() []wavetest.Op {
		rec.Reset()
		if err := d.DrawRows(); err != nil {
			t.Fatal(err)
		}
		return append([]wavetest.Op(nil), rec.Ops...)
	}

	d.ResetMousePosition()
	off := collect()

	// Put the pointer on the first point of row 0.
	first := d.Rows()[0].Points[0].Position()
	d.SetMousePosition(first.X, first.Y+1)
	on := collect()

	d.ResetMousePosition()
	again := collect()

	if len(off) != len(on) || len(off) != len(again) {
		t.Fatalf("op counts differ: %d %d %d", len(off), len(on), len(again))
	}
	differs := false
	for i := range off {
		for j := range off[i].Points {
			if off[i].Points[j] != on[i].Points[j] {
				differs = true
			}
			if off[i].Points[j] != again[i].Points[j] {
				t.Fatalf("op %d point %d differs after resetting the pointer", i, j)
			}
		}
	}
	if !differs {
		t.Error("in-range pointer produced no displacement")
	}
}

func TestSetMousePositionScales(t *testing.T) {
	d := newDriver(t, wavetest.NewRecorder(1, 1), Options{})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 100, Height: 100, Scale: 2})
	d.SetMousePosition(10, 20)
	if x, y := d.MousePosition(); x != 20 || y != 40 {
		t.Errorf("pointer = (%v,%v), want (20,40)", x, y)
	}
	d.SetMousePosition(wave.PointerOff, wave.PointerOff)
	if x, y := d.MousePosition(); !wave.IsPointerOff(x, y) {
		t.Errorf("sentinel was scaled: (%v,%v)", x, y)
	}
}

func TestPointerFollowsScaleChange(t *testing.T) {
	d := newDriver(t, wavetest.NewRecorder(1, 1), Options{})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 100, Height: 100, Scale: 2})
	d.SetMousePosition(10, 20)
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 100, Height: 100, Scale: 1})
	if x, y := d.MousePosition(); x != 10 || y != 20 {
		t.Errorf("pointer = (%v,%v) after scale change, want (10,20)", x, y)
	}
	d.ResetMousePosition()
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 100, Height: 100, Scale: 3})
	if x, y := d.MousePosition(); !wave.IsPointerOff(x, y) {
		t.Errorf("off pointer became (%v,%v) after scale change", x, y)
	}
}

func TestResizeKeepsWobbleBounded(t *testing.T) {
	d := newDriver(t, wavetest.NewRecorder(1, 1), Options{Amplitude: 0.9})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 800, Height: 600, Scale: 2})
	for i := 0; i < 200; i++ {
		d.WobbleRows(false)
	}
	d.Pause()

	check := func(vp Viewport) {
		t.Helper()
		_ = d.UpdateCanvasSizeAndRows(vp)
		dist := d.State().Distance
		for i, row := range d.Rows() {
			for j, p := range row.Points {
				if math.Abs(p.Offset) > dist {
					t.Fatalf("%+v: row %d point %d offset %v beyond ±%v", vp, i, j, p.Offset, dist)
				}
			}
		}
	}
	check(Viewport{Width: 5, Height: 600, Scale: 1})
	// Through an empty viewport and back.
	check(Viewport{Width: 0, Height: 0, Scale: 1})
	check(Viewport{Width: 3, Height: 600, Scale: 1})
}

func TestNoPush(t *testing.T) {
	rec := wavetest.NewRecorder(1, 1)
	d := newDriver(t, rec, Options{Style: wave.StyleStroke, Push: NoPush})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 400, Height: 400, Scale: 1})
	d.WobbleRows(false)
	for _, row := range d.Rows() {
		if row.Push != 0 {
			t.Fatalf("row push = %v, want 0", row.Push)
		}
	}

	rec.Reset()
	_ = d.DrawRows()
	off := append([]wavetest.Op(nil), rec.Ops...)
	first := d.Rows()[0].Points[0].Position()
	d.SetMousePosition(first.X, first.Y+1)
	rec.Reset()
	_ = d.DrawRows()
	for i := range off {
		for j := range off[i].Points {
			if off[i].Points[j] != rec.Ops[i].Points[j] {
				t.Fatalf("op %d point %d displaced with distortion off", i, j)
			}
		}
	}
}

func TestTickActiveAndPaused(t *testing.T) {
	rec := wavetest.NewRecorder(1, 1)
	d := newDriver(t, rec, Options{})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 300, Height: 200, Scale: 1})
	if d.Paused() {
		t.Fatal("driver should start Active")
	}
	if !d.Tick() {
		t.Fatal("Active tick did not draw")
	}

	if !d.TogglePause() {
		t.Fatal("TogglePause should pause")
	}
	rec.Reset()
	before := d.Stats()
	if d.Tick() {
		t.Error("Paused tick drew a frame")
	}
	if len(rec.Ops) != 0 || d.Stats().Wobbles != before.Wobbles {
		t.Error("Paused tick touched the rows or surface")
	}

	// A paused frame still follows the pointer.
	d.PointerMoved(10, 10)
	if rec.Count(wavetest.OpClear) != 1 {
		t.Error("pointer move did not redraw the paused frame")
	}
	if d.Stats().Wobbles != before.Wobbles {
		t.Error("pointer move wobbled a paused canvas")
	}

	if d.TogglePause() {
		t.Fatal("TogglePause should resume")
	}
	if !d.Tick() {
		t.Error("resumed tick did not draw")
	}
}

func TestPalettesRedrawWhilePaused(t *testing.T) {
	rec := wavetest.NewRecorder(1, 1)
	d := newDriver(t, rec, Options{})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 300, Height: 200, Scale: 1})
	d.Pause()
	rec.Reset()
	p := d.NextPalette()
	if rec.Count(wavetest.OpClear) != 1 {
		t.Fatal("palette change while paused did not redraw")
	}
	if got := rec.Colors(); got[len(got)-1] != p[len(p)-1] {
		t.Errorf("redraw used stale colours: %v", got)
	}
}

func TestReducedMotion(t *testing.T) {
	rec := wavetest.NewRecorder(1, 1)
	d := newDriver(t, rec, Options{ReducedMotion: true})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 300, Height: 200, Scale: 1})
	if !d.Paused() || !d.ReducedMotion() {
		t.Fatal("reduced motion should start Paused")
	}
	if err := d.Start(); err != nil {
		t.Fatal(err)
	}
	if rec.Count(wavetest.OpClear) != 1 {
		t.Fatal("Start did not render the static frame")
	}
	if d.Tick() {
		t.Error("reduced motion ran an animation frame")
	}
	if d.Resume() || !d.Paused() {
		t.Error("Resume must not start the loop under reduced motion")
	}
	if !d.TogglePause() {
		t.Error("TogglePause must keep a reduced-motion driver paused")
	}

	rec.Reset()
	d.PointerMoved(150, 100)
	d.PointerMoved(160, 100)
	if got := rec.Count(wavetest.OpClear); got != 2 {
		t.Errorf("pointer moves redrew %d times, want 2", got)
	}
	rec.Reset()
	d.PointerLeft()
	if got := rec.Count(wavetest.OpClear); got != 1 {
		t.Errorf("pointer leave redrew %d times, want 1", got)
	}
	for _, row := range d.Rows() {
		for i, p := range row.Points {
			if p.Offset != 0 {
				t.Fatalf("point %d wobbled under reduced motion", i)
			}
		}
	}
}

func TestWobbleRowsAdvancePalette(t *testing.T) {
	d := newDriver(t, wavetest.NewRecorder(1, 1), Options{})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 300, Height: 200, Scale: 1})

	idx := d.PaletteIndex()
	d.WobbleRows(false)
	if d.PaletteIndex() != idx {
		t.Error("WobbleRows(false) changed the palette")
	}
	d.WobbleRows(true)
	if want := (idx + 1) % len(testPalettes); d.PaletteIndex() != want {
		t.Errorf("WobbleRows(true) index %d, want %d", d.PaletteIndex(), want)
	}
}

func TestAutoRotate(t *testing.T) {
	tests := []struct {
		name        string
		every       int
		ticks       int
		wantAdvance int
	}{
		{"disabled", 0, 10, 0},
		{"negative disables", -2, 10, 0},
		{"every tick", 1, 3, 3},
		{"every third", 3, 10, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDriver(t, wavetest.NewRecorder(1, 1), Options{AutoRotateEvery: tt.every})
			_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 300, Height: 200, Scale: 1})
			start := d.PaletteIndex()
			for i := 0; i < tt.ticks; i++ {
				d.Tick()
			}
			want := (start + tt.wantAdvance) % len(testPalettes)
			if d.PaletteIndex() != want {
				t.Errorf("index %d, want %d", d.PaletteIndex(), want)
			}
		})
	}
}

func TestCloseTeardown(t *testing.T) {
	rec := wavetest.NewRecorder(1, 1)
	d := newDriver(t, rec, Options{})
	_ = d.UpdateCanvasSizeAndRows(Viewport{Width: 300, Height: 200, Scale: 1})

	var order []int
	d.OnClose(func() { order = append(order, 1) })
	d.OnClose(func() { order = append(order, 2) })
	d.Close()
	d.Close()
	if len(order) != 2 || order[0] != 2 || order[1] != 1 {
		t.Errorf("hooks ran %v, want [2 1]", order)
	}

	rec.Reset()
	if d.Tick() {
		t.Error("Tick after Close drew")
	}
	if err := d.DrawRows(); err != nil || len(rec.Ops) != 0 {
		t.Error("DrawRows after Close touched the surface")
	}
	if d.Resume() {
		t.Error("Resume after Close succeeded")
	}
	ran := false
	d.OnClose(func() { ran = true })
	if !ran {
		t.Error("hook registered after Close did not run immediately")
	}
}

func TestIndependentDrivers(t *testing.T) {
	a := newDriver(t, wavetest.NewRecorder(1, 1), Options{})
	b := newDriver(t, wavetest.NewRecorder(1, 1), Options{})
	a.NextPalette()
	a.Pause()
	if b.Paused() {
		t.Error("pausing one driver paused another")
	}
	if a.PaletteIndex() == b.PaletteIndex() {
		t.Error("palette state leaked between drivers")
	}
}

func TestDriverOnGGContext(t *testing.T) {
	dc := gg.NewContext(1, 1)
	defer func() { _ = dc.Close() }()

	d := newDriver(t, dc, Options{})
	if err := d.UpdateCanvasSizeAndRows(Viewport{Width: 120, Height: 80, Scale: 1.5}); err != nil {
		t.Fatal(err)
	}
	if dc.Width() != 180 || dc.Height() != 120 {
		t.Fatalf("gg context is %dx%d, want 180x120", dc.Width(), dc.Height())
	}
	for i := 0; i < 5; i++ {
		d.Tick()
	}
	if _, _, _, a := dc.Image().At(90, 118).RGBA(); a == 0 {
		t.Error("bottom of the canvas is empty after drawing filled rows")
	}
}
