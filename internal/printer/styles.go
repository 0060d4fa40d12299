// Package printer formats CLI output with lipgloss styles.
package printer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/fieldviz/internal/theme"
)

var (
	Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffffff")).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color("#444466"))

	Label = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888899")).
		Width(14)

	Value = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#00ccff")).
		Bold(true)

	Subtle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#666688"))

	Success = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00ff88"))

	Warning = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffaa00"))

	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#444466")).
		Padding(0, 1)
)

// GradientText colors each rune of text on a blend from one color to
// another in Lab space.
func GradientText(text string, from, to theme.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		c := from.Color.BlendLab(to.Color, t).Clamped()
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex())).Render(string(r)))
	}
	return b.String()
}

// Banner is the scene title in the colors of a theme's scale ends.
func Banner(text string, th theme.Config) string {
	stops := th.Scale.Stops()
	if len(stops) < 2 {
		return Header.Render(text)
	}
	return GradientText(text, stops[0].Color, stops[len(stops)-1].Color)
}

// Swatch draws width cells sampled across a color scale.
func Swatch(s theme.ColorScale, width int) string {
	var b strings.Builder
	for _, c := range s.Sample(width) {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Clamped().Hex())).Render(" "))
	}
	return b.String()
}

// KeyValue renders one aligned "label value" line.
func KeyValue(label string, value any) string {
	return Label.Render(label) + Value.Render(fmt.Sprint(value))
}

// Box renders content in a rounded panel under a title.
func Box(title, content string) string {
	return Header.Render(title) + "\n" + Panel.Render(content)
}
