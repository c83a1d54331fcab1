// Package palette provides the colour palettes assigned to the wave rows: a
// fixed catalog, HSLuv-based generation of extra palettes, an unbiased
// shuffle, and the session's circular palette list.
package palette

import (
	"fmt"
	"image/color"
	"math/rand"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Size is the number of colours in a palette, one per row.
const Size = 4

// Palette holds four colours ordered innermost to outermost. Entries are
// canonical "#rrggbb" strings once normalized.
type Palette [Size]string

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// catalog is the built-in set. Entries may be CSS colour names or short hex;
// Catalog normalizes them.
var catalog = []Palette{
	{"#0b132b", "#1c2541", "#3a506b", "#5bc0be"},
	{"#264653", "#2a9d8f", "#e9c46a", "#f4a261"},
	{"#22223b", "#4a4e69", "#9a8c98", "#c9ada7"},
	{"#03045e", "#0077b6", "#00b4d8", "#90e0ef"},
	{"#582f0e", "#7f4f24", "#936639", "#a68a64"},
	{"#10002b", "#3c096c", "#7b2cbf", "#c77dff"},
	{"#003049", "#d62828", "#f77f00", "#fcbf49"},
	{"#081c15", "#1b4332", "#2d6a4f", "#52b788"},
	{"midnightblue", "slateblue", "mediumpurple", "thistle"},
	{"darkslategray", "teal", "mediumaquamarine", "#aff"},
	{"maroon", "firebrick", "tomato", "lightsalmon"},
	{"#2b2d42", "#8d99ae", "#edf2f4", "#ef233c"},
}

// Catalog returns a normalized copy of the built-in palettes.
func Catalog() []Palette {
	out := make([]Palette, 0, len(catalog))
	for _, p := range catalog {
		n, err := Normalize(p)
		if err != nil {
			panic(fmt.Sprintf("palette: invalid built-in palette %v: %v", p, err))
		}
		out = append(out, n)
	}
	return out
}

// Normalize returns p with every entry converted to "#rrggbb".
func Normalize(p Palette) (Palette, error) {
	var out Palette
	for i, entry := range p {
		c, err := parse(entry)
		if err != nil {
			return Palette{}, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = c.Hex()
	}
	return out, nil
}

// Validate reports the first entry of p that is not a colour.
func Validate(p Palette) error {
	_, err := Normalize(p)
	return err
}

// RGBA converts a palette entry to an opaque color.RGBA.
func RGBA(entry string) (color.RGBA, error) {
	c, err := parse(entry)
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

func parse(entry string) (colorful.Color, error) {
	s := strings.ToLower(strings.TrimSpace(entry))
	if s == "" {
		return colorful.Color{}, fmt.Errorf("empty colour")
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("colour %q: %w", entry, err)
		}
		return c, nil
	}
	named, ok := colornames.Map[s]
	if !ok {
		return colorful.Color{}, fmt.Errorf("unknown colour name %q", entry)
	}
	c, _ := colorful.MakeColor(named)
	return c, nil
}

// Generate returns n palettes built in HSLuv space: one random hue per
// palette, lightness stepping up from the innermost to the outermost row.
func Generate(r *rand.Rand, n int) []Palette {
	out := make([]Palette, 0, max(n, 0))
	for i := 0; i < n; i++ {
		hue := r.Float64() * 360
		sat := clamp(0.55+r.Float64()*0.35, 0, 1)
		var p Palette
		for j := range p {
			light := clamp(0.25+0.18*float64(j), 0, 1)
			// Drift the hue a little per row so bands stay distinguishable.
			h := hue + float64(j)*(r.Float64()*12-6)
			for h < 0 {
				h += 360
			}
			for h >= 360 {
				h -= 360
			}
			p[j] = colorful.HSLuv(h, sat, light).Clamped().Hex()
		}
		out = append(out, p)
	}
	return out
}
