package render

import (
	"image/color"

	"gonum.org/v1/plot/palette"

	"github.com/san-kum/fieldviz/internal/scene"
	"github.com/san-kum/fieldviz/internal/theme"
)

// scalePalette adapts sampled theme colors to gonum's palette interface.
type scalePalette []color.Color

func (p scalePalette) Colors() []color.Color { return p }

// paletteOf samples n colors for a mapping. Solid mappings repeat one color.
func paletteOf(c scene.ColorMapping, n int, opacity float64) palette.Palette {
	out := make(scalePalette, n)
	if !c.ByValue {
		for i := range out {
			out[i] = shade(c.Solid, opacity)
		}
		return out
	}
	for i, col := range c.Scale.Sample(n) {
		out[i] = shade(col, opacity)
	}
	return out
}

// shade applies a trace opacity on top of the color's own alpha.
func shade(c theme.Color, opacity float64) color.Color {
	return c.WithAlpha(c.A * opacity).NRGBA()
}

// valueColor colors sample i of a trace by its mapping.
func valueColor(c scene.ColorMapping, v, lo, hi, opacity float64) color.Color {
	if !c.ByValue {
		return shade(c.Solid, opacity)
	}
	return shade(c.Scale.Normalize(v, lo, hi), opacity)
}

// midColor represents a whole trace in legends and single-color plotters.
func midColor(c scene.ColorMapping, opacity float64) color.Color {
	if !c.ByValue {
		return shade(c.Solid, opacity)
	}
	return shade(c.Scale.At(0.5), opacity)
}
