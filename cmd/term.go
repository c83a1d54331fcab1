package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/irfansharif/waves/internal/app"
	"github.com/irfansharif/waves/internal/config"
	"github.com/irfansharif/waves/internal/export"
	"github.com/irfansharif/waves/internal/palette"
	"github.com/irfansharif/waves/internal/render"
)

const termFrameInterval = time.Second / 30

// runTerm animates the canvas in the terminal. Input is read on its own
// goroutine and handed to the loop, which owns the driver.
func runTerm(cfg config.Config) error {
	bg, err := palette.RGBA(cfg.Background)
	if err != nil {
		return err
	}
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	presenter := render.NewTermPresenter(screen, bg)
	pw, ph := presenter.PixelSize()
	raster, err := export.NewRaster(pw, ph, cfg.Background)
	if err != nil {
		return err
	}
	defer func() { _ = raster.Close() }()

	// One raster pixel per half cell.
	application, err := app.NewApp(cfg, raster, app.NewView(pw, ph, 1))
	if err != nil {
		return err
	}
	defer application.Close()
	presenter.Present(raster.Image())

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	application.Driver.OnClose(func() { close(quit) })
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(termFrameInterval)
	defer ticker.Stop()

	var buttons tcell.ButtonMask
	for !application.ShouldQuit() {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				pw, ph := presenter.PixelSize()
				if err := application.Resize(pw, ph, 1); err != nil {
					log.Printf("Resize to %dx%d failed: %v", pw, ph, err)
				}
				presenter.Present(raster.Image())
			case *tcell.EventKey:
				switch action := termAction(ev); action {
				case app.ActionSnapshot:
					if err := writeSnapshot(application, termSnapshotPath(cfg, application.Seed)); err != nil {
						log.Printf("Snapshot failed: %v", err)
					}
				default:
					application.Do(action)
				}
			case *tcell.EventMouse:
				x, y := ev.Position()
				// Aim at the lower half of the cell.
				application.PointerMoved(float64(x), float64(y*2+1))
				pressed := ev.Buttons()
				if pressed&tcell.Button1 != 0 && buttons&tcell.Button1 == 0 {
					application.Do(app.ActionNextPalette)
				}
				buttons = pressed
			}
			if application.Driver.Paused() {
				presenter.Present(raster.Image())
			}
		case <-ticker.C:
			if drawn, _ := application.Frame(); drawn {
				presenter.Present(raster.Image())
			}
		}
	}
	return nil
}

func termSnapshotPath(cfg config.Config, seed int64) string {
	if cfg.Out != "" && cfg.Out != "-" {
		return cfg.Out
	}
	return fmt.Sprintf("waves-%d.png", seed)
}
