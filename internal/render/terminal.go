package render

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/scene"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan, asciigraph.Magenta, asciigraph.Yellow, asciigraph.Green,
	asciigraph.Red, asciigraph.Blue, asciigraph.White,
}

// Terminal renders a text preview with one line chart per panel. Color adds
// ANSI colors per trace.
type Terminal struct {
	Width, Height int
	Color         bool
}

func (Terminal) Format() string { return FormatTerminal }

func (t Terminal) Render(w io.Writer, s *scene.Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	var b strings.Builder
	b.WriteString(s.Title + "\n")
	if s.Subtitle != "" {
		b.WriteString(s.Subtitle + "\n")
	}
	for i := range s.Panels {
		p := &s.Panels[i]
		title := p.Title
		if title == "" {
			title = fmt.Sprintf("panel %d", i+1)
		}
		fmt.Fprintf(&b, "\n[%d,%d] %s (%s)\n", p.Row+1, p.Col+1, title, p.Projection)

		var (
			data  [][]float64
			names []string
		)
		for _, tr := range p.Traces {
			if d := profile(tr.Field); len(d) > 1 {
				data = append(data, d)
				names = append(names, tr.Name)
			}
		}
		if len(data) == 0 {
			b.WriteString("  (no numeric data)\n")
			continue
		}
		opts := []asciigraph.Option{
			asciigraph.Height(t.Height),
			asciigraph.Width(t.Width),
			asciigraph.Precision(2),
			asciigraph.Caption(strings.Join(names, ", ")),
		}
		if t.Color {
			colors := make([]asciigraph.AnsiColor, len(data))
			for k := range colors {
				colors[k] = seriesColors[k%len(seriesColors)]
			}
			opts = append(opts, asciigraph.SeriesColors(colors...))
		}
		b.WriteString(asciigraph.PlotMany(data, opts...))
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// profile reduces a field to one line: series as they are, grids along
// their middle row, volumes along their middle x line, and point sets as
// sorted values. Masked cells are skipped.
func profile(f *field.Field) []float64 {
	var raw []float64
	switch f.Kind {
	case field.KindSeries:
		raw = f.Values
	case field.KindGrid:
		nx, ny := len(f.Coords[0]), len(f.Coords[1])
		j := ny / 2
		raw = f.Values[j*nx : (j+1)*nx]
	case field.KindVolume:
		nx, ny, nz := len(f.Coords[0]), len(f.Coords[1]), len(f.Coords[2])
		start := ((nz/2)*ny + ny/2) * nx
		raw = f.Values[start : start+nx]
	default:
		raw = append([]float64(nil), f.Values...)
		sort.Float64s(raw)
	}
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
