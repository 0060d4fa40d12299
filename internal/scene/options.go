package scene

import "github.com/san-kum/fieldviz/internal/field"

// Option adjusts a composition.
type Option func(*options)

type options struct {
	title, subtitle string
	axes            *AxisTitles
	camera          *Camera
	traceName       string
	legend          *bool
	style           *Style
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithTitle sets the scene title and subtitle.
func WithTitle(title, subtitle string) Option {
	return func(o *options) { o.title, o.subtitle = title, subtitle }
}

// WithAxisTitles overrides the axis titles derived from field metadata.
func WithAxisTitles(x, y, z string) Option {
	return func(o *options) { o.axes = &AxisTitles{X: x, Y: y, Z: z} }
}

// WithCamera sets the eye position of 3D panels.
func WithCamera(eye field.Point) Option {
	return func(o *options) { o.camera = &Camera{Eye: eye} }
}

// WithTraceName names the primary trace.
func WithTraceName(name string) Option {
	return func(o *options) { o.traceName = name }
}

// WithLegend shows or hides the legend.
func WithLegend(show bool) Option {
	return func(o *options) { o.legend = &show }
}

// WithStyle replaces the primary trace's default style.
func WithStyle(s Style) Option {
	return func(o *options) { o.style = &s }
}
