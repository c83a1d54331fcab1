// Package app ties a canvas driver to a host: it builds the driver from the
// configuration, maps host input onto driver operations, and presents frames.
package app

import (
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/irfansharif/waves/internal/canvas"
	"github.com/irfansharif/waves/internal/config"
	"github.com/irfansharif/waves/internal/export"
	"github.com/irfansharif/waves/internal/wave"
)

// Flusher is implemented by surfaces that buffer a frame until it is
// submitted, like the OpenGL surface.
type Flusher interface {
	Flush() error
}

// Action is a host-independent input command.
type Action int

const (
	ActionNone Action = iota
	ActionNextPalette
	ActionPreviousPalette
	ActionTogglePause
	ActionSnapshot
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionNextPalette:
		return "next-palette"
	case ActionPreviousPalette:
		return "previous-palette"
	case ActionTogglePause:
		return "toggle-pause"
	case ActionSnapshot:
		return "snapshot"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// App encapsulates the main application state and logic.
type App struct {
	Config config.Config
	Driver *canvas.Driver
	View   *View
	Seed   int64

	surface wave.Surface
	frames  FrameCounter
	quit    bool
}

// NewApp builds the driver for cfg on surface, sizes it to view and renders
// the first frame.
func NewApp(cfg config.Config, surface wave.Surface, view *View) (*App, error) {
	seed := cfg.ResolvedSeed()
	rng := rand.New(rand.NewSource(seed))
	palettes := cfg.Palettes(rng)
	driver := canvas.New(surface, palettes, cfg.DriverOptions(rng))

	app := &App{
		Config:  cfg,
		Driver:  driver,
		View:    view,
		Seed:    seed,
		surface: surface,
	}
	if err := driver.UpdateCanvasSizeAndRows(view.Viewport()); err != nil {
		return nil, fmt.Errorf("sizing canvas: %w", err)
	}
	if err := driver.Start(); err != nil {
		log.Printf("first frame failed: %v", err)
	}
	return app, nil
}

// Resize propagates a host size or scale change to the driver. A paused
// canvas is redrawn right away since no tick will.
func (app *App) Resize(width, height int, scale float64) error {
	if !app.View.Set(width, height, scale) {
		return nil
	}
	err := app.Driver.UpdateCanvasSizeAndRows(app.View.Viewport())
	if app.Driver.Paused() {
		_ = app.Driver.DrawRows()
	}
	return err
}

// Frame advances the animation one step and submits the surface's frame.
// It reports whether the animation produced a new frame.
func (app *App) Frame() (bool, error) {
	drawn := app.Driver.Tick()
	if f, ok := app.surface.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return drawn, err
		}
	}
	return drawn, nil
}

// Do applies a host input command.
func (app *App) Do(action Action) {
	switch action {
	case ActionNextPalette:
		app.Driver.NextPalette()
	case ActionPreviousPalette:
		app.Driver.PreviousPalette()
	case ActionTogglePause:
		app.Driver.TogglePause()
	case ActionQuit:
		app.quit = true
	}
}

// PointerMoved forwards a pointer position in logical coordinates.
func (app *App) PointerMoved(x, y float64) { app.Driver.PointerMoved(x, y) }

// PointerLeft resets the pointer.
func (app *App) PointerLeft() { app.Driver.PointerLeft() }

// ShouldQuit reports whether ActionQuit was received.
func (app *App) ShouldQuit() bool { return app.quit }

// Snapshot renders the current state of the rows into a PNG at the canvas's
// buffer size.
func (app *App) Snapshot(w io.Writer) error {
	st := app.Driver.State()
	if st.BufferWidth <= 0 || st.BufferHeight <= 0 {
		return fmt.Errorf("nothing to snapshot: canvas is %dx%d", st.BufferWidth, st.BufferHeight)
	}
	r, err := export.NewRaster(st.BufferWidth, st.BufferHeight, app.Config.Background)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	prev := app.Driver.Surface()
	app.Driver.SetSurface(r)
	err = app.Driver.DrawRows()
	app.Driver.SetSurface(prev)
	if err != nil {
		return fmt.Errorf("drawing snapshot: %w", err)
	}
	return r.EncodePNG(w)
}

// Frames returns the frame-rate counter.
func (app *App) Frames() *FrameCounter { return &app.frames }

// Close tears the driver down, running its teardown hooks.
func (app *App) Close() { app.Driver.Close() }
