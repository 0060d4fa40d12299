package theme

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/fieldviz/internal/field"
)

// Stop anchors a color at a normalized position.
type Stop struct {
	Pos   float64
	Color Color
}

// ColorScale maps a normalized value in [0, 1] to a color. The zero value is
// not usable; build scales with NewColorScale or look one up with Scale.
type ColorScale struct {
	Name  string
	stops []Stop
}

// NewColorScale checks that there are at least two stops, that positions are
// non-decreasing and that they start at 0 and end at 1.
func NewColorScale(name string, stops ...Stop) (ColorScale, error) {
	if len(stops) < 2 {
		return ColorScale{}, fmt.Errorf("theme: scale %q needs at least two stops, has %d: %w", name, len(stops), field.ErrInvalidParameter)
	}
	if stops[0].Pos != 0 || stops[len(stops)-1].Pos != 1 {
		return ColorScale{}, fmt.Errorf("theme: scale %q must span [0, 1], spans [%g, %g]: %w",
			name, stops[0].Pos, stops[len(stops)-1].Pos, field.ErrInvalidParameter)
	}
	for i := 1; i < len(stops); i++ {
		if math.IsNaN(stops[i].Pos) || stops[i].Pos < stops[i-1].Pos {
			return ColorScale{}, fmt.Errorf("theme: scale %q stop %d at %g precedes %g: %w",
				name, i, stops[i].Pos, stops[i-1].Pos, field.ErrInvalidParameter)
		}
	}
	return ColorScale{Name: name, stops: append([]Stop(nil), stops...)}, nil
}

// ParseScale builds a scale from (position, color string) pairs.
func ParseScale(name string, pairs [][2]string) (ColorScale, error) {
	stops := make([]Stop, len(pairs))
	for i, p := range pairs {
		pos, err := strconv.ParseFloat(strings.TrimSpace(p[0]), 64)
		if err != nil {
			return ColorScale{}, fmt.Errorf("theme: scale %q stop %d position %q: %w", name, i, p[0], field.ErrInvalidParameter)
		}
		c, err := ParseColor(p[1])
		if err != nil {
			return ColorScale{}, err
		}
		stops[i] = Stop{Pos: pos, Color: c}
	}
	return NewColorScale(name, stops...)
}

func mustScale(name string, stops ...Stop) ColorScale {
	s, err := NewColorScale(name, stops...)
	if err != nil {
		panic(err)
	}
	return s
}

func evenly(name string, colors ...string) ColorScale {
	stops := make([]Stop, len(colors))
	for i, c := range colors {
		stops[i] = Stop{Pos: float64(i) / float64(len(colors)-1), Color: MustParse(c)}
	}
	return mustScale(name, stops...)
}

func at(pos float64, c string) Stop { return Stop{Pos: pos, Color: MustParse(c)} }

// Stops returns a copy of the scale's stops.
func (s ColorScale) Stops() []Stop {
	return append([]Stop(nil), s.stops...)
}

// Valid reports whether the scale was built through NewColorScale.
func (s ColorScale) Valid() bool { return len(s.stops) >= 2 }

// At interpolates the color at t, clamping t into [0, 1]. Coincident stops
// form a hard step that resolves to the later stop.
func (s ColorScale) At(t float64) Color {
	if len(s.stops) == 0 {
		return Color{}
	}
	if math.IsNaN(t) || t <= 0 {
		return s.stops[0].Color
	}
	if t >= 1 {
		return s.stops[len(s.stops)-1].Color
	}
	i := sort.Search(len(s.stops), func(i int) bool { return s.stops[i].Pos > t })
	lo, hi := s.stops[i-1], s.stops[i]
	span := hi.Pos - lo.Pos
	if span == 0 {
		return hi.Color
	}
	return lo.Color.Blend(hi.Color, (t-lo.Pos)/span)
}

// Normalize maps v from [lo, hi] to a color. A degenerate range maps to the
// middle of the scale.
func (s ColorScale) Normalize(v, lo, hi float64) Color {
	if hi <= lo {
		return s.At(0.5)
	}
	return s.At((v - lo) / (hi - lo))
}

// Sample returns n evenly spaced colors from the scale, ends included.
func (s ColorScale) Sample(n int) []Color {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []Color{s.At(0.5)}
	}
	out := make([]Color, n)
	for i := range out {
		out[i] = s.At(float64(i) / float64(n-1))
	}
	return out
}

// Built-in scales.
var (
	Viridis = evenly("Viridis",
		"#440154", "#482878", "#3e4989", "#31688e", "#26828e",
		"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725")

	Plasma = evenly("Plasma",
		"#0d0887", "#46039f", "#7201a8", "#9c179e", "#bd3786",
		"#d8576b", "#ed7953", "#fb9f3a", "#fdca26", "#f0f921")

	Jet = mustScale("Jet",
		at(0, "rgb(0, 0, 131)"),
		at(0.125, "rgb(0, 60, 170)"),
		at(0.375, "rgb(5, 255, 255)"),
		at(0.625, "rgb(255, 255, 0)"),
		at(0.875, "rgb(250, 0, 0)"),
		at(1, "rgb(128, 0, 0)"))

	RdBu = mustScale("RdBu",
		at(0, "rgb(5, 10, 172)"),
		at(0.35, "rgb(106, 137, 247)"),
		at(0.5, "rgb(190, 190, 190)"),
		at(0.6, "rgb(220, 170, 132)"),
		at(0.7, "rgb(230, 145, 90)"),
		at(1, "rgb(178, 10, 28)"))

	RdYlBuReversed = evenly("RdYlBu_r",
		"#313695", "#4575b4", "#74add1", "#abd9e9", "#e0f3f8",
		"#fee090", "#fdae61", "#f46d43", "#d73027", "#a50026")

	Cyberpunk = mustScale("Cyberpunk",
		at(0, "rgba(0, 0, 0, 0.8)"),
		at(0.2, "rgba(0, 255, 255, 0.8)"),
		at(0.5, "rgba(128, 0, 128, 0.8)"),
		at(0.8, "rgba(255, 0, 255, 0.9)"),
		at(1, "rgba(255, 255, 0, 1)"))

	Holographic = mustScale("Holographic",
		at(0, "rgba(0, 0, 50, 0.8)"),
		at(0.2, "rgba(0, 100, 200, 0.8)"),
		at(0.4, "rgba(0, 200, 255, 0.9)"),
		at(0.6, "rgba(100, 255, 200, 0.9)"),
		at(0.8, "rgba(200, 255, 100, 0.9)"),
		at(1, "rgba(255, 200, 0, 1)"))

	Quantum = mustScale("Quantum",
		at(0, "rgba(0, 0, 100, 0.1)"),
		at(0.5, "rgba(100, 0, 200, 0.5)"),
		at(1, "rgba(200, 0, 255, 0.9)"))
)

var scales = map[string]ColorScale{
	"viridis":     Viridis,
	"plasma":      Plasma,
	"jet":         Jet,
	"rdbu":        RdBu,
	"rdylbu_r":    RdYlBuReversed,
	"cyberpunk":   Cyberpunk,
	"holographic": Holographic,
	"quantum":     Quantum,
}

// Scale looks up a built-in scale by case-insensitive name.
func Scale(name string) (ColorScale, bool) {
	s, ok := scales[strings.ToLower(name)]
	return s, ok
}

// ScaleNames lists the built-in scales in sorted order.
func ScaleNames() []string {
	names := make([]string, 0, len(scales))
	for n := range scales {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
