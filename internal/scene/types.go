package scene

import (
	"fmt"
	"math"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/theme"
)

// RenderMode selects how a trace draws its field.
type RenderMode string

const (
	Markers      RenderMode = "markers"
	Lines        RenderMode = "lines"
	MarkersLines RenderMode = "markers+lines"
	Surface      RenderMode = "surface"
	Isosurface   RenderMode = "isosurface"
	Contour      RenderMode = "contour"
	Heatmap      RenderMode = "heatmap"
	Bar          RenderMode = "bar"
)

// Modes lists every render mode.
var Modes = []RenderMode{Markers, Lines, MarkersLines, Surface, Isosurface, Contour, Heatmap, Bar}

// ParseMode accepts a mode name; "lines+markers" is read as markers+lines.
func ParseMode(s string) (RenderMode, error) {
	if s == "lines+markers" {
		return MarkersLines, nil
	}
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("scene: unknown render mode %q: %w", s, field.ErrInvalidParameter)
}

// HasMarkers reports whether the mode draws point markers.
func (m RenderMode) HasMarkers() bool { return m == Markers || m == MarkersLines }

// HasLines reports whether the mode joins points with lines.
func (m RenderMode) HasLines() bool { return m == Lines || m == MarkersLines }

// Pointwise reports whether the mode draws individual samples.
func (m RenderMode) Pointwise() bool { return m == Markers || m == Lines || m == MarkersLines }

// Compatible reports whether mode can render a field of the given kind.
func Compatible(kind field.Kind, mode RenderMode) bool {
	switch mode {
	case Markers, Lines, MarkersLines:
		return kind == field.KindCloud || kind == field.KindSeries || kind == field.KindTopology
	case Surface, Contour, Heatmap:
		return kind == field.KindGrid
	case Isosurface:
		return kind == field.KindVolume
	case Bar:
		return kind == field.KindSeries
	}
	return false
}

// Projection is the dimensionality of a panel's axes.
type Projection string

const (
	Projection2D Projection = "2d"
	Projection3D Projection = "3d"
)

// ProjectionFor picks the panel projection a trace of this field and mode
// needs. Point modes follow the field's coordinate count.
func ProjectionFor(f *field.Field, mode RenderMode) Projection {
	switch mode {
	case Surface, Isosurface:
		return Projection3D
	case Contour, Heatmap, Bar:
		return Projection2D
	}
	if f.Dim() >= 3 {
		return Projection3D
	}
	return Projection2D
}

// Style carries per-trace drawing parameters. Fields a mode does not use are
// ignored by renderers.
type Style struct {
	Size    float64
	Width   float64
	Opacity float64
	Symbol  string
	Dash    string

	// IsoMin and IsoMax bound the isosurface values; both zero means the
	// field's value range.
	IsoMin, IsoMax float64
	SurfaceCount   int

	ContourLevels int
	ShowLabels    bool
}

// DefaultStyle returns the drawing defaults for mode.
func DefaultStyle(mode RenderMode) Style {
	switch mode {
	case Markers:
		return Style{Size: 6, Opacity: 0.8, Symbol: "circle"}
	case Lines:
		return Style{Width: 2, Opacity: 1, Dash: "solid"}
	case MarkersLines:
		return Style{Size: 6, Width: 2, Opacity: 0.9, Symbol: "circle", Dash: "solid"}
	case Surface:
		return Style{Opacity: 1}
	case Isosurface:
		return Style{Opacity: 0.6, SurfaceCount: 5}
	case Contour:
		return Style{Opacity: 1, ContourLevels: 12}
	case Heatmap:
		return Style{Opacity: 1}
	case Bar:
		return Style{Opacity: 0.9}
	}
	return Style{Opacity: 1}
}

func (s Style) validate() error {
	if math.IsNaN(s.Opacity) || s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("scene: opacity %g outside [0, 1]: %w", s.Opacity, field.ErrInvalidParameter)
	}
	if s.Size < 0 || s.Width < 0 || s.SurfaceCount < 0 || s.ContourLevels < 0 {
		return fmt.Errorf("scene: negative style size: %w", field.ErrInvalidParameter)
	}
	if s.IsoMin > s.IsoMax {
		return fmt.Errorf("scene: iso range [%g, %g] is inverted: %w", s.IsoMin, s.IsoMax, field.ErrInvalidParameter)
	}
	return nil
}

// ColorMapping colors a trace either with one solid color or through a scale
// over the field values.
type ColorMapping struct {
	Solid     theme.Color
	ByValue   bool
	Scale     theme.ColorScale
	ShowScale bool
	Title     string
}

// Trace is one visual layer of a panel.
type Trace struct {
	Name  string
	Field *field.Field
	Mode  RenderMode
	Color ColorMapping
	Style Style
	// EdgeColor draws topology edges when the field has any.
	EdgeColor theme.Color
}

// AxisTitles names a panel's axes.
type AxisTitles struct {
	X, Y, Z string
}

// Camera positions the viewer of a 3D panel.
type Camera struct {
	Eye field.Point
}

// DefaultCamera looks at the origin from the first octant.
var DefaultCamera = Camera{Eye: field.Point{X: 1.25, Y: 1.25, Z: 1.25}}

// Panel is one cell of a scene grid.
type Panel struct {
	Title      string
	Row, Col   int
	Projection Projection
	Axes       AxisTitles
	Camera     *Camera
	Traces     []Trace
}

// View returns the panel camera or the default.
func (p *Panel) View() Camera {
	if p.Camera != nil {
		return *p.Camera
	}
	return DefaultCamera
}

// Scene is a renderable composition of panels laid out on a grid.
type Scene struct {
	Title      string
	Subtitle   string
	Rows, Cols int
	Panels     []Panel
	Theme      theme.Config
	ShowLegend bool
}

// TraceCount is the total number of traces over all panels.
func (s *Scene) TraceCount() int {
	n := 0
	for i := range s.Panels {
		n += len(s.Panels[i].Traces)
	}
	return n
}

// Validate checks the layout and that every trace agrees with its panel.
func (s *Scene) Validate() error {
	if s.Rows < 1 || s.Cols < 1 || len(s.Panels) > s.Rows*s.Cols {
		return fmt.Errorf("scene: %d panels do not fit a %dx%d grid: %w", len(s.Panels), s.Rows, s.Cols, field.ErrInvalidParameter)
	}
	for i := range s.Panels {
		p := &s.Panels[i]
		if p.Row < 0 || p.Row >= s.Rows || p.Col < 0 || p.Col >= s.Cols {
			return fmt.Errorf("scene: panel %d at (%d, %d) outside grid: %w", i, p.Row, p.Col, field.ErrInvalidParameter)
		}
		for j, tr := range p.Traces {
			if tr.Field == nil {
				return fmt.Errorf("scene: panel %d trace %d has no field: %w", i, j, field.ErrInvalidParameter)
			}
			if !Compatible(tr.Field.Kind, tr.Mode) {
				return fmt.Errorf("scene: panel %d trace %d: %w", i, j, field.Incompatible("Validate", tr.Field.Kind, string(tr.Mode)))
			}
			if got := ProjectionFor(tr.Field, tr.Mode); got != p.Projection {
				return fmt.Errorf("scene: panel %d trace %d needs %s axes on a %s panel: %w", i, j, got, p.Projection, field.ErrIncompatibleRenderMode)
			}
		}
	}
	return nil
}
