// Package config holds the runtime configuration of the waves binary: flag
// registration, environment overrides and validation.
package config

import (
	"flag"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/irfansharif/waves/internal/canvas"
	"github.com/irfansharif/waves/internal/palette"
	"github.com/irfansharif/waves/internal/wave"
)

// Modes the binary can run in.
const (
	ModeWindow   = "window"
	ModeTerm     = "term"
	ModePNG      = "png"
	ModeSVG      = "svg"
	ModePalettes = "palettes"
)

const (
	DefaultMode       = ModeWindow
	DefaultWidth      = 1280
	DefaultHeight     = 720
	DefaultScale      = 1.0
	DefaultFrames     = 90 // headless ticks before writing a frame
	DefaultBackground = "#ffffff"
	MaxGenerated      = 64
	MaxDimension      = 16384
)

// Environment variables overriding flags.
const (
	EnvSeed          = "WAVES_SEED"
	EnvReducedMotion = "WAVES_REDUCED_MOTION"
)

// Config is the complete runtime configuration.
type Config struct {
	Mode   string
	Out    string // output path for png/svg; "" or "-" is stdout
	Frames int

	Width, Height int
	Scale         float64 // 0 picks the host's own scale
	Background    string

	Seed          int64 // 0 seeds from the clock
	ReducedMotion bool
	AutoRotate    int
	Stroke        bool
	Generated     int // extra HSLuv palettes appended to the catalog
}

// Default returns the configuration with every default applied.
func Default() Config {
	return Config{
		Mode:       DefaultMode,
		Frames:     DefaultFrames,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Scale:      DefaultScale,
		Background: DefaultBackground,
	}
}

// RegisterFlags binds the config's fields to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Mode, "mode", c.Mode, "one of window, term, png, svg, palettes")
	fs.StringVar(&c.Out, "out", c.Out, "output file for png/svg modes (default stdout)")
	fs.IntVar(&c.Frames, "frames", c.Frames, "animation ticks before a headless export")
	fs.IntVar(&c.Width, "width", c.Width, "canvas width in logical pixels")
	fs.IntVar(&c.Height, "height", c.Height, "canvas height in logical pixels")
	fs.Float64Var(&c.Scale, "scale", c.Scale, "device pixel scale of png/svg output")
	fs.StringVar(&c.Background, "background", c.Background, "background colour behind the rows")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed (0 uses the clock, see "+EnvSeed+")")
	fs.BoolVar(&c.ReducedMotion, "reduced-motion", c.ReducedMotion, "render static frames only")
	fs.IntVar(&c.AutoRotate, "auto-rotate", c.AutoRotate, "advance the palette every n frames (0 disables)")
	fs.BoolVar(&c.Stroke, "stroke", c.Stroke, "draw rows as lines instead of filled bands")
	fs.IntVar(&c.Generated, "generated", c.Generated, "extra generated palettes")
}

// ApplyEnv overrides fields from the environment, read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv(EnvSeed)); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvSeed, v, err)
		}
		c.Seed = seed
	}
	if v := strings.TrimSpace(getenv(EnvReducedMotion)); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvReducedMotion, v, err)
		}
		c.ReducedMotion = on
	}
	return nil
}

// Validate rejects configurations no host can run.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeWindow, ModeTerm, ModePNG, ModeSVG, ModePalettes:
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Width <= 0 || c.Height <= 0 || c.Width > MaxDimension || c.Height > MaxDimension {
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	}
	if c.Scale < 0 || c.Scale > 8 {
		return fmt.Errorf("invalid scale %v", c.Scale)
	}
	if c.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", c.Frames)
	}
	if c.AutoRotate < 0 {
		return fmt.Errorf("invalid auto-rotate interval %d", c.AutoRotate)
	}
	if c.Generated < 0 || c.Generated > MaxGenerated {
		return fmt.Errorf("generated palettes must be within [0, %d], got %d", MaxGenerated, c.Generated)
	}
	if _, err := palette.RGBA(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	return nil
}

// ResolvedSeed returns Seed, or the current time when it is unset.
func (c *Config) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// Palettes returns the catalog followed by Generated palettes drawn from r.
func (c *Config) Palettes(r *rand.Rand) []palette.Palette {
	out := palette.Catalog()
	if c.Generated > 0 {
		out = append(out, palette.Generate(r, c.Generated)...)
	}
	return out
}

// DriverOptions maps the config onto canvas options.
func (c *Config) DriverOptions(r *rand.Rand) canvas.Options {
	style := wave.StyleFill
	if c.Stroke {
		style = wave.StyleStroke
	}
	return canvas.Options{
		Style:           style,
		AutoRotateEvery: c.AutoRotate,
		ReducedMotion:   c.ReducedMotion,
		Rand:            r,
	}
}

// Viewport returns the configured logical canvas size at the configured
// Scale, or at hostScale when Scale is zero.
func (c *Config) Viewport(hostScale float64) canvas.Viewport {
	scale := c.Scale
	if scale == 0 {
		scale = hostScale
	}
	return canvas.Viewport{Width: c.Width, Height: c.Height, Scale: scale}
}
