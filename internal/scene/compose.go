package scene

import (
	"fmt"
	"math"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/theme"
)

// MaxPanels bounds the number of panels in one scene.
const MaxPanels = 36

// OverlaySpec describes a trace drawn over a panel's primary trace.
type OverlaySpec struct {
	Field *field.Field
	Mode  RenderMode
	// Scale colors the trace by value; the zero scale means the theme's.
	Scale theme.ColorScale
	// Color, when set, draws the whole trace in one color instead.
	Color     *theme.Color
	Name      string
	Style     *Style
	ShowScale bool
}

// PanelSpec describes one panel of a multi-panel scene.
type PanelSpec struct {
	Title  string
	Field  *field.Field
	Mode   RenderMode
	Scale  theme.ColorScale
	Color  *theme.Color
	Name   string
	Style  *Style
	Axes   *AxisTitles
	Camera *Camera
	// Extra traces stack on the primary trace in order.
	Extra []OverlaySpec
}

// ComposeSingle renders one field with one mode as a 1x1 scene. A zero scale
// falls back to the theme's color scale.
func ComposeSingle(f *field.Field, mode RenderMode, scale theme.ColorScale, th theme.Config, opts ...Option) (*Scene, error) {
	return compose("ComposeSingle", f, mode, scale, th, nil, opts)
}

// ComposeOverlay draws f and then each overlay, in order, on one panel. Every
// overlay must be compatible with its own field and share the panel's
// projection.
func ComposeOverlay(f *field.Field, mode RenderMode, scale theme.ColorScale, th theme.Config, overlays []OverlaySpec, opts ...Option) (*Scene, error) {
	return compose("ComposeOverlay", f, mode, scale, th, overlays, opts)
}

func compose(op string, f *field.Field, mode RenderMode, scale theme.ColorScale, th theme.Config, overlays []OverlaySpec, opts []Option) (*Scene, error) {
	if err := th.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	o := collect(opts)
	spec := PanelSpec{
		Field:  f,
		Mode:   mode,
		Scale:  scale,
		Name:   o.traceName,
		Style:  o.style,
		Axes:   o.axes,
		Camera: o.camera,
		Extra:  overlays,
	}
	panel, err := buildPanel(op, spec, th)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	legend := len(panel.Traces) > 1
	if o.legend != nil {
		legend = *o.legend
	}
	return &Scene{
		Title:      o.title,
		Subtitle:   o.subtitle,
		Rows:       1,
		Cols:       1,
		Panels:     []Panel{panel},
		Theme:      th.Clone(),
		ShowLegend: legend,
	}, nil
}

// GridShape returns the rows and columns that hold n panels: the column
// count is ceil(sqrt(n)).
func GridShape(n int) (rows, cols int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return rows, cols
}

// ComposeGrid lays out one panel per spec in row-major order. It returns
// no scene at all if any panel fails. Only WithTitle and WithLegend apply;
// everything else is set per panel through PanelSpec.
func ComposeGrid(specs []PanelSpec, th theme.Config, opts ...Option) (*Scene, error) {
	const op = "ComposeGrid"

	if len(specs) == 0 {
		return nil, &field.ParamError{Op: op, Param: "panels", Value: 0, Detail: "at least one panel required", Err: field.ErrInvalidParameter}
	}
	if len(specs) > MaxPanels {
		return nil, &field.ParamError{Op: op, Param: "panels", Value: len(specs), Detail: fmt.Sprintf("ceiling is %d", MaxPanels), Err: field.ErrResourceLimit}
	}
	if err := th.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	rows, cols := GridShape(len(specs))
	panels := make([]Panel, len(specs))
	legend := false
	for i, spec := range specs {
		p, err := buildPanel(op, spec, th)
		if err != nil {
			return nil, fmt.Errorf("scene: panel %d: %w", i, err)
		}
		p.Row, p.Col = i/cols, i%cols
		panels[i] = p
		if len(p.Traces) > 1 {
			legend = true
		}
	}

	o := collect(opts)
	if o.legend != nil {
		legend = *o.legend
	}
	return &Scene{
		Title:      o.title,
		Subtitle:   o.subtitle,
		Rows:       rows,
		Cols:       cols,
		Panels:     panels,
		Theme:      th.Clone(),
		ShowLegend: legend,
	}, nil
}

func buildPanel(op string, spec PanelSpec, th theme.Config) (Panel, error) {
	primary, err := buildTrace(op, OverlaySpec{
		Field:     spec.Field,
		Mode:      spec.Mode,
		Scale:     spec.Scale,
		Color:     spec.Color,
		Name:      spec.Name,
		Style:     spec.Style,
		ShowScale: true,
	}, th, 0)
	if err != nil {
		return Panel{}, err
	}

	proj := ProjectionFor(primary.Field, primary.Mode)
	panel := Panel{
		Title:      spec.Title,
		Projection: proj,
		Axes:       defaultAxes(primary.Field, primary.Mode),
		Traces:     []Trace{primary},
	}
	if spec.Axes != nil {
		panel.Axes = *spec.Axes
	}
	if proj == Projection3D && spec.Camera != nil {
		cam := *spec.Camera
		panel.Camera = &cam
	}

	for i, ov := range spec.Extra {
		tr, err := buildTrace(op, ov, th, i+1)
		if err != nil {
			return Panel{}, fmt.Errorf("overlay %d: %w", i, err)
		}
		if got := ProjectionFor(tr.Field, tr.Mode); got != proj {
			return Panel{}, fmt.Errorf("overlay %d needs %s axes on a %s panel: %w", i, got, proj, field.ErrIncompatibleRenderMode)
		}
		panel.Traces = append(panel.Traces, tr)
	}
	return panel, nil
}

func buildTrace(op string, spec OverlaySpec, th theme.Config, idx int) (Trace, error) {
	f := spec.Field
	if f == nil {
		return Trace{}, &field.ParamError{Op: op, Param: "field", Value: nil, Detail: "field required", Err: field.ErrInvalidParameter}
	}
	if err := f.Validate(); err != nil {
		return Trace{}, err
	}
	if !Compatible(f.Kind, spec.Mode) {
		return Trace{}, field.Incompatible(op, f.Kind, string(spec.Mode))
	}

	style := DefaultStyle(spec.Mode)
	if spec.Style != nil {
		style = *spec.Style
	}
	if err := style.validate(); err != nil {
		return Trace{}, err
	}
	if spec.Mode == Isosurface && style.IsoMin == 0 && style.IsoMax == 0 {
		style.IsoMin, style.IsoMax = f.Range()
	}

	mapping := ColorMapping{Title: f.Label(field.MetaValue, "")}
	if spec.Color != nil {
		mapping.Solid = *spec.Color
	} else {
		mapping.ByValue = true
		mapping.Scale = spec.Scale
		if !mapping.Scale.Valid() {
			mapping.Scale = th.Scale
		}
		mapping.ShowScale = spec.ShowScale
	}

	name := spec.Name
	if name == "" {
		name = f.Label(field.MetaValue, string(f.Kind))
	}

	return Trace{
		Name:      name,
		Field:     f,
		Mode:      spec.Mode,
		Color:     mapping,
		Style:     style,
		EdgeColor: th.PaletteColor(idx).WithAlpha(0.2),
	}, nil
}

func defaultAxes(f *field.Field, mode RenderMode) AxisTitles {
	value := f.Label(field.MetaValue, "value")
	switch f.Kind {
	case field.KindSeries:
		return AxisTitles{X: f.Label(field.MetaX, "Time"), Y: f.Label(field.MetaY, value)}
	case field.KindGrid:
		a := AxisTitles{X: f.Label(field.MetaX, "x"), Y: f.Label(field.MetaY, "y")}
		if mode == Surface {
			a.Z = f.Label(field.MetaZ, value)
		}
		return a
	}
	a := AxisTitles{X: f.Label(field.MetaX, "x"), Y: f.Label(field.MetaY, "y")}
	if ProjectionFor(f, mode) == Projection3D {
		a.Z = f.Label(field.MetaZ, "z")
	}
	return a
}
