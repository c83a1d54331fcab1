package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/irfansharif/waves/internal/canvas"
	"github.com/irfansharif/waves/internal/config"
	"github.com/irfansharif/waves/internal/export"
)

// runExport renders cfg.Frames ticks headlessly and writes the final frame
// as a PNG or SVG.
func runExport(cfg config.Config) error {
	out, closeOut, err := openOutput(cfg.Out)
	if err != nil {
		return err
	}
	if err := renderExport(out, cfg); err != nil {
		_ = closeOut()
		return err
	}
	return closeOut()
}

func renderExport(w io.Writer, cfg config.Config) error {
	seed := cfg.ResolvedSeed()
	rng := rand.New(rand.NewSource(seed))
	drv := canvas.New(nil, cfg.Palettes(rng), cfg.DriverOptions(rng))
	defer drv.Close()
	runtimeLogger.Printf("Exporting %s: seed %d, %d frames", cfg.Mode, seed, cfg.Frames)

	vp := cfg.Viewport(1)
	switch cfg.Mode {
	case config.ModePNG:
		return export.PNG(w, drv, vp, cfg.Frames, cfg.Background)
	case config.ModeSVG:
		return export.SVG(w, drv, vp, cfg.Frames, cfg.Background)
	default:
		return fmt.Errorf("mode %q does not export", cfg.Mode)
	}
}

// openOutput opens path for writing; "" and "-" are stdout.
func openOutput(path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
