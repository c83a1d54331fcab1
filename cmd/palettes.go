package main

import (
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/irfansharif/waves/internal/config"
	"github.com/irfansharif/waves/internal/palette"
)

var (
	swatchStyle = lipgloss.NewStyle().Width(6)
	indexStyle  = lipgloss.NewStyle().Width(4).Align(lipgloss.Right).Faint(true)
	hexStyle    = lipgloss.NewStyle().Faint(true)
)

// printPalettes lists the catalog (plus any generated palettes) with colour
// swatches, one palette per line.
func printPalettes(w io.Writer, cfg config.Config) error {
	rng := rand.New(rand.NewSource(cfg.ResolvedSeed()))
	for i, p := range cfg.Palettes(rng) {
		if _, err := fmt.Fprintln(w, paletteLine(i, p)); err != nil {
			return err
		}
	}
	return nil
}

func paletteLine(i int, p palette.Palette) string {
	swatches := make([]string, len(p))
	for j, c := range p {
		swatches[j] = swatchStyle.Background(lipgloss.Color(c)).Render("")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		indexStyle.Render(fmt.Sprintf("%d", i)),
		"  ",
		strings.Join(swatches, ""),
		"  ",
		hexStyle.Render(strings.Join(p[:], " ")),
	)
}
