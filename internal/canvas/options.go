package canvas

import (
	"math/rand"

	"github.com/irfansharif/waves/internal/wave"
)

const (
	defaultSpacing   = 96.0 // logical pixels between points
	defaultAmplitude = 0.35
	defaultPush      = 0.6
	defaultLineWidth = 2.0
	defaultFPS       = 60
	defaultFrequency = 3.0
	defaultDamping   = 0.7
)

// NoPush, or any negative Options.Push, turns pointer distortion off. A zero
// Push takes the default.
const NoPush = -1.0

// DefaultFractions places the four rows from the bottom band (row 0) up to
// the top band (row 3). Rows are drawn last-first, so with filled bands each
// lower row covers the ones above it.
var DefaultFractions = []float64{0.8, 0.65, 0.5, 0.35}

// Options configures a Driver. Zero fields take defaults.
type Options struct {
	Fractions []float64
	Spacing   float64 // logical pixels between points
	Style     wave.Style
	LineWidth float64
	Amplitude float64 // wobble range, fraction of the point distance
	Push      float64 // pointer displacement, fraction of the point distance; NoPush disables it

	// Spring driving the wobble, see harmonica.NewSpring.
	FPS       int
	Frequency float64
	Damping   float64

	// AutoRotateEvery advances the palette every n ticks; 0 disables it.
	AutoRotateEvery int
	// ReducedMotion keeps the driver static: no animation loop, one frame
	// per pointer or palette change.
	ReducedMotion bool

	Rand *rand.Rand
}

func (o Options) withDefaults() Options {
	if len(o.Fractions) == 0 {
		o.Fractions = DefaultFractions
	}
	if o.Spacing <= 0 {
		o.Spacing = defaultSpacing
	}
	if o.LineWidth <= 0 {
		o.LineWidth = defaultLineWidth
	}
	if o.Amplitude <= 0 {
		o.Amplitude = defaultAmplitude
	}
	if o.Push < 0 {
		o.Push = 0
	} else if o.Push == 0 {
		o.Push = defaultPush
	}
	if o.FPS <= 0 {
		o.FPS = defaultFPS
	}
	if o.Frequency <= 0 {
		o.Frequency = defaultFrequency
	}
	if o.Damping <= 0 {
		o.Damping = defaultDamping
	}
	if o.AutoRotateEvery < 0 {
		o.AutoRotateEvery = 0
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	return o
}
