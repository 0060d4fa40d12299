package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/fieldviz/internal/field"
)

// Config carries the presentation settings a renderer applies to a scene.
type Config struct {
	Name            string
	PaperBackground Color
	PlotBackground  Color
	GridColor       Color
	FontFamily      string
	FontColor       Color
	FontSize        float64
	TitleSize       float64
	Width           int
	Height          int
	Scale           ColorScale
	Palette         []Color
}

// Available themes
var (
	plain = Config{
		Name:            "plain",
		PaperBackground: MustParse("white"),
		PlotBackground:  MustParse("#e5ecf6"),
		GridColor:       MustParse("white"),
		FontFamily:      "Arial, sans-serif",
		FontColor:       MustParse("#2a3f5f"),
		FontSize:        12,
		TitleSize:       20,
		Width:           1200,
		Height:          800,
		Scale:           Viridis,
		Palette: colors("#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a",
			"#19d3f3", "#ff6692", "#b6e880", "#ff97ff", "#fecb52"),
	}

	cyberpunk = Config{
		Name:            "cyberpunk",
		PaperBackground: MustParse("rgba(0, 0, 0, 0.95)"),
		PlotBackground:  MustParse("rgba(0, 0, 0, 0.95)"),
		GridColor:       MustParse("rgba(0, 255, 255, 0.15)"),
		FontFamily:      "Courier New, monospace",
		FontColor:       MustParse("cyan"),
		FontSize:        12,
		TitleSize:       24,
		Width:           1200,
		Height:          800,
		Scale:           Cyberpunk,
		Palette:         colors("cyan", "magenta", "yellow", "lime", "red", "#ff8800"),
	}

	futuristic = Config{
		Name:            "futuristic",
		PaperBackground: MustParse("rgba(0, 0, 0, 0.9)"),
		PlotBackground:  MustParse("rgba(0, 0, 0, 0.8)"),
		GridColor:       MustParse("rgba(255, 255, 255, 0.1)"),
		FontFamily:      "Arial, sans-serif",
		FontColor:       MustParse("white"),
		FontSize:        12,
		TitleSize:       20,
		Width:           1200,
		Height:          800,
		Scale:           Plasma,
		Palette:         colors("#00d4ff", "#ff6b6b", "#4ecdc4", "#ffe66d", "#a06cd5", "#ff9ff3"),
	}

	ocean = Config{
		Name:            "ocean",
		PaperBackground: MustParse("#001a33"),
		PlotBackground:  MustParse("#00264d"),
		GridColor:       MustParse("#4488aa"),
		FontFamily:      "Helvetica, sans-serif",
		FontColor:       MustParse("#e0f0ff"),
		FontSize:        12,
		TitleSize:       20,
		Width:           1200,
		Height:          800,
		Scale:           Viridis,
		Palette:         colors("#0077be", "#00a8cc", "#ffd700", "#00ff88", "#ff4444"),
	}

	builtins = map[string]Config{
		plain.Name:      plain,
		cyberpunk.Name:  cyberpunk,
		futuristic.Name: futuristic,
		ocean.Name:      ocean,
	}
)

func colors(specs ...string) []Color {
	out := make([]Color, len(specs))
	for i, s := range specs {
		out[i] = MustParse(s)
	}
	return out
}

// Default returns a copy of the plain theme.
func Default() Config {
	return plain.Clone()
}

// Get returns a copy of a built-in theme by case-insensitive name.
func Get(name string) (Config, bool) {
	c, ok := builtins[strings.ToLower(name)]
	if !ok {
		return Config{}, false
	}
	return c.Clone(), true
}

// Names lists the built-in themes in sorted order.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for n := range builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Clone returns a copy that shares nothing mutable with c.
func (c Config) Clone() Config {
	c.Palette = append([]Color(nil), c.Palette...)
	return c
}

// WithSize returns a copy of c with the given pixel dimensions. Non-positive
// values keep the current size.
func (c Config) WithSize(width, height int) Config {
	c = c.Clone()
	if width > 0 {
		c.Width = width
	}
	if height > 0 {
		c.Height = height
	}
	return c
}

// WithScale returns a copy of c using s as the default color scale.
func (c Config) WithScale(s ColorScale) Config {
	c = c.Clone()
	c.Scale = s
	return c
}

// PaletteColor cycles through the trace palette.
func (c Config) PaletteColor(i int) Color {
	if len(c.Palette) == 0 {
		return c.FontColor
	}
	if i < 0 {
		i = -i
	}
	return c.Palette[i%len(c.Palette)]
}

// Validate reports a theme that cannot drive a renderer.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("theme %q: size %dx%d must be positive: %w", c.Name, c.Width, c.Height, field.ErrInvalidParameter)
	}
	if !c.Scale.Valid() {
		return fmt.Errorf("theme %q: missing color scale: %w", c.Name, field.ErrInvalidParameter)
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("theme %q: font size %g must be positive: %w", c.Name, c.FontSize, field.ErrInvalidParameter)
	}
	return nil
}
