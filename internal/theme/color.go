package theme

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/fieldviz/internal/field"
)

// Color is an sRGB color with straight alpha in [0, 1].
type Color struct {
	colorful.Color
	A float64
}

// Opaque wraps c with full alpha.
func Opaque(c colorful.Color) Color {
	return Color{Color: c, A: 1}
}

var cssNames = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"lime":    "#00ff00",
	"green":   "#008000",
	"blue":    "#0000ff",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"yellow":  "#ffff00",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"gray":    "#808080",
	"grey":    "#808080",
	"navy":    "#000080",
	"teal":    "#008080",
	"gold":    "#ffd700",
}

// ParseColor accepts #rgb, #rrggbb, #rrggbbaa, rgb(r, g, b), rgba(r, g, b, a),
// "transparent" and a small set of CSS color names.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return Color{A: 0}, nil
	}
	if hex, ok := cssNames[s]; ok {
		s = hex
	}

	switch {
	case strings.HasPrefix(s, "#"):
		if len(s) == 9 {
			a, err := strconv.ParseUint(s[7:], 16, 8)
			if err != nil {
				return Color{}, badColor(s)
			}
			c, err := colorful.Hex(s[:7])
			if err != nil {
				return Color{}, badColor(s)
			}
			return Color{Color: c, A: float64(a) / 255}, nil
		}
		c, err := colorful.Hex(s)
		if err != nil {
			return Color{}, badColor(s)
		}
		return Opaque(c), nil
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s, s[5:len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s, s[4:len(s)-1], 3)
	}
	return Color{}, badColor(s)
}

// MustParse is ParseColor for literals known to be valid.
func MustParse(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseFunc(orig, body string, n int) (Color, error) {
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return Color{}, badColor(orig)
	}
	var ch [4]float64
	ch[3] = 1
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil || math.IsNaN(v) {
			return Color{}, badColor(orig)
		}
		if i < 3 && (v < 0 || v > 255) {
			return Color{}, badColor(orig)
		}
		if i == 3 && (v < 0 || v > 1) {
			return Color{}, badColor(orig)
		}
		ch[i] = v
	}
	return Color{Color: colorful.Color{R: ch[0] / 255, G: ch[1] / 255, B: ch[2] / 255}, A: ch[3]}, nil
}

func badColor(s string) error {
	return fmt.Errorf("theme: cannot parse color %q: %w", s, field.ErrInvalidParameter)
}

// CSS renders the color as rgba(r, g, b, a), or #rrggbb when opaque.
func (c Color) CSS() string {
	if c.A >= 1 {
		return c.Clamped().Hex()
	}
	r, g, b := c.Clamped().RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// NRGBA converts to a non-premultiplied image color.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(c.A) * 255))}
}

// Blend interpolates in RGB space from c (t=0) to o (t=1), alpha included.
func (c Color) Blend(o Color, t float64) Color {
	return Color{Color: c.Color.BlendRgb(o.Color, t), A: c.A + (o.A-c.A)*t}
}

// WithAlpha returns c with alpha a.
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
