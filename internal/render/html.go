package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/scene"
	"github.com/san-kum/fieldviz/internal/theme"
)

// PlotlyURL is the script the HTML document loads plotly.js from.
const PlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="{{.Script}}" charset="utf-8"></script>
<style>body { margin: 0; background: {{.Background}}; }</style>
</head>
<body>
<div id="fieldviz" style="width: {{.Width}}px; height: {{.Height}}px;"></div>
<script>
Plotly.newPlot("fieldviz", {{.Data}}, {{.Layout}}, {responsive: true});
</script>
</body>
</html>
`))

type pageData struct {
	Title         string
	Script        string
	Background    template.CSS
	Width, Height int
	Data          template.JS
	Layout        template.JS
}

// HTML renders an interactive plotly.js document. The figure data is
// embedded in the page.
type HTML struct{}

func (HTML) Format() string { return FormatHTML }

func (HTML) Render(w io.Writer, s *scene.Scene) error {
	if err := s.Validate(); err != nil {
		return err
	}
	fig := BuildFigure(s)
	data, err := json.Marshal(fig.Data)
	if err != nil {
		return fmt.Errorf("encode traces: %w", err)
	}
	layout, err := json.Marshal(fig.Layout)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	return page.Execute(w, pageData{
		Title:      s.Title,
		Script:     PlotlyURL,
		Background: template.CSS(s.Theme.PaperBackground.CSS()),
		Width:      s.Theme.Width,
		Height:     s.Theme.Height,
		Data:       template.JS(data),
		Layout:     template.JS(layout),
	})
}

// Figure is a plotly figure: one entry per drawn trace plus the layout.
type Figure struct {
	Data   []map[string]any `json:"data"`
	Layout map[string]any   `json:"layout"`
}

// numbers encodes NaN and infinities as JSON null, which plotly draws as gaps.
type numbers []float64

func (n numbers) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, 8*len(n)+2)
	b = append(b, '[')
	for i, v := range n {
		if i > 0 {
			b = append(b, ',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			b = append(b, "null"...)
			continue
		}
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	return append(b, ']'), nil
}

// axisRef binds a trace to a 2D axis pair or a 3D scene.
type axisRef struct {
	x, y, scene string
}

func (r axisRef) is3D() bool { return r.scene != "" }

func (r axisRef) apply(m map[string]any) {
	if r.is3D() {
		m["scene"] = r.scene
		return
	}
	m["xaxis"] = r.x
	m["yaxis"] = r.y
}

type span [2]float64

// cellDomain is the paper-space rectangle of grid cell (row, col), row 0 on
// top.
func cellDomain(rows, cols, row, col int) (x, y span) {
	gx, gy := 0.0, 0.0
	if cols > 1 {
		gx = 0.06
	}
	if rows > 1 {
		gy = 0.08
	}
	x = span{float64(col)/float64(cols) + gx/2, float64(col+1)/float64(cols) - gx/2}
	y = span{1 - float64(row+1)/float64(rows) + gy/2, 1 - float64(row)/float64(rows) - gy/2}
	return x, y
}

func suffix(base string, n int) string {
	if n == 1 {
		return base
	}
	return base + strconv.Itoa(n)
}

// BuildFigure lays every panel of s out on its own axes or 3D scene.
func BuildFigure(s *scene.Scene) Figure {
	th := s.Theme
	title := s.Title
	if s.Subtitle != "" {
		title += "<br><sub>" + s.Subtitle + "</sub>"
	}
	layout := map[string]any{
		"title": map[string]any{
			"text": title,
			"x":    0.5,
			"font": fontJSON(th, th.TitleSize),
		},
		"paper_bgcolor": th.PaperBackground.CSS(),
		"plot_bgcolor":  th.PlotBackground.CSS(),
		"font":          fontJSON(th, th.FontSize),
		"width":         th.Width,
		"height":        th.Height,
		"showlegend":    s.ShowLegend,
		"margin":        map[string]any{"t": 110, "l": 60, "r": 60, "b": 60},
	}

	var (
		data        []map[string]any
		annotations []any
		n2d, n3d    int
	)
	for i := range s.Panels {
		p := &s.Panels[i]
		dx, dy := cellDomain(s.Rows, s.Cols, p.Row, p.Col)
		var ref axisRef
		if p.Projection == scene.Projection3D {
			n3d++
			ref.scene = suffix("scene", n3d)
			layout[ref.scene] = sceneJSON(p, dx, dy, th)
		} else {
			n2d++
			ref.x, ref.y = suffix("x", n2d), suffix("y", n2d)
			layout[suffix("xaxis", n2d)] = axisJSON(p.Axes.X, dx, ref.y, th)
			layout[suffix("yaxis", n2d)] = axisJSON(p.Axes.Y, dy, ref.x, th)
		}
		if p.Title != "" {
			annotations = append(annotations, map[string]any{
				"text":      "<b>" + p.Title + "</b>",
				"x":         (dx[0] + dx[1]) / 2,
				"y":         dy[1] + 0.01,
				"xref":      "paper",
				"yref":      "paper",
				"xanchor":   "center",
				"yanchor":   "bottom",
				"showarrow": false,
				"font":      fontJSON(th, th.FontSize+2),
			})
		}
		for _, tr := range p.Traces {
			data = append(data, traceJSON(tr, ref)...)
		}
	}
	if len(annotations) > 0 {
		layout["annotations"] = annotations
	}
	return Figure{Data: data, Layout: layout}
}

func fontJSON(th theme.Config, size float64) map[string]any {
	return map[string]any{"family": th.FontFamily, "color": th.FontColor.CSS(), "size": size}
}

func axisJSON(title string, domain span, anchor string, th theme.Config) map[string]any {
	return map[string]any{
		"title":     map[string]any{"text": title},
		"domain":    domain,
		"anchor":    anchor,
		"gridcolor": th.GridColor.CSS(),
		"color":     th.FontColor.CSS(),
		"zeroline":  false,
	}
}

func sceneJSON(p *scene.Panel, dx, dy span, th theme.Config) map[string]any {
	axis := func(title string) map[string]any {
		return map[string]any{
			"title":           map[string]any{"text": title},
			"gridcolor":       th.GridColor.CSS(),
			"backgroundcolor": th.PlotBackground.CSS(),
			"showbackground":  true,
			"color":           th.FontColor.CSS(),
		}
	}
	eye := p.View().Eye
	return map[string]any{
		"domain":  map[string]any{"x": dx, "y": dy},
		"xaxis":   axis(p.Axes.X),
		"yaxis":   axis(p.Axes.Y),
		"zaxis":   axis(p.Axes.Z),
		"bgcolor": th.PlotBackground.CSS(),
		"camera":  map[string]any{"eye": map[string]float64{"x": eye.X, "y": eye.Y, "z": eye.Z}},
	}
}

func scaleJSON(s theme.ColorScale) [][2]any {
	stops := s.Stops()
	out := make([][2]any, len(stops))
	for i, st := range stops {
		out[i] = [2]any{st.Pos, st.Color.CSS()}
	}
	return out
}

// colorJSON fills the color attributes of a marker, line or colored trace.
func colorJSON(m map[string]any, c scene.ColorMapping, f *field.Field, valueKey string) {
	if !c.ByValue {
		m["color"] = c.Solid.CSS()
		return
	}
	lo, hi := f.Range()
	m[valueKey] = numbers(f.Values)
	m["colorscale"] = scaleJSON(c.Scale)
	m["cmin"], m["cmax"] = lo, hi
	m["showscale"] = c.ShowScale
	if c.ShowScale {
		m["colorbar"] = map[string]any{"title": map[string]any{"text": c.Title}}
	}
}

// surfaceColor fills colorscale attributes for traces colored by z.
func surfaceColor(m map[string]any, c scene.ColorMapping, f *field.Field, lo, hi string) {
	scale := c.Scale
	if !c.ByValue {
		s, err := theme.NewColorScale("solid", theme.Stop{Pos: 0, Color: c.Solid}, theme.Stop{Pos: 1, Color: c.Solid})
		if err == nil {
			scale = s
		}
	}
	vlo, vhi := f.Range()
	m["colorscale"] = scaleJSON(scale)
	m[lo], m[hi] = vlo, vhi
	m["showscale"] = c.ShowScale && c.ByValue
	if c.ShowScale {
		m["colorbar"] = map[string]any{"title": map[string]any{"text": c.Title}}
	}
}

func traceJSON(tr scene.Trace, ref axisRef) []map[string]any {
	f := tr.Field
	st := tr.Style
	t := map[string]any{"name": tr.Name, "opacity": st.Opacity}
	ref.apply(t)

	switch tr.Mode {
	case scene.Markers, scene.Lines, scene.MarkersLines:
		var out []map[string]any
		if f.Kind == field.KindTopology && len(f.Edges) > 0 {
			out = append(out, edgesJSON(tr, ref))
		}
		t["type"] = "scatter"
		if ref.is3D() {
			t["type"] = "scatter3d"
		}
		t["mode"] = string(tr.Mode)
		xs, ys, zs := pointColumns(f)
		t["x"], t["y"] = xs, ys
		if ref.is3D() {
			t["z"] = zs
		}
		if tr.Mode.HasMarkers() {
			m := map[string]any{"size": st.Size, "symbol": st.Symbol}
			colorJSON(m, tr.Color, f, "color")
			t["marker"] = m
		}
		if tr.Mode.HasLines() {
			l := map[string]any{"width": st.Width}
			if st.Dash != "" {
				l["dash"] = st.Dash
			}
			if ref.is3D() || !tr.Color.ByValue {
				colorJSON(l, tr.Color, f, "color")
				delete(l, "showscale")
				delete(l, "colorbar")
			} else {
				l["color"] = tr.Color.Scale.At(0.5).CSS()
			}
			t["line"] = l
		}
		return append(out, t)

	case scene.Bar:
		t["type"] = "bar"
		xs, ys, _ := pointColumns(f)
		t["x"], t["y"] = xs, ys
		m := map[string]any{}
		colorJSON(m, tr.Color, f, "color")
		t["marker"] = m

	case scene.Heatmap, scene.Contour, scene.Surface:
		t["type"] = string(tr.Mode)
		t["z"] = gridRows(f)
		t["x"], t["y"] = gridAxes(f)
		surfaceColor(t, tr.Color, f, "zmin", "zmax")
		switch tr.Mode {
		case scene.Heatmap:
			if st.ShowLabels {
				t["texttemplate"] = "%{z:.2f}"
			}
			t["hoverongaps"] = false
		case scene.Contour:
			t["ncontours"] = st.ContourLevels
			t["contours"] = map[string]any{"coloring": "heatmap", "showlabels": st.ShowLabels}
		case scene.Surface:
			t["cmin"], t["cmax"] = t["zmin"], t["zmax"]
			delete(t, "zmin")
			delete(t, "zmax")
		}

	case scene.Isosurface:
		t["type"] = "isosurface"
		xs, ys, zs := volumeColumns(f)
		t["x"], t["y"], t["z"] = xs, ys, zs
		t["value"] = numbers(f.Values)
		t["isomin"], t["isomax"] = st.IsoMin, st.IsoMax
		t["surface"] = map[string]any{"count": st.SurfaceCount}
		hidden := map[string]any{"show": false}
		t["caps"] = map[string]any{"x": hidden, "y": hidden, "z": hidden}
		surfaceColor(t, tr.Color, f, "cmin", "cmax")
	}
	return []map[string]any{t}
}

// edgesJSON draws every topology edge as one line trace broken by nulls.
func edgesJSON(tr scene.Trace, ref axisRef) map[string]any {
	f := tr.Field
	n := 3 * len(f.Edges)
	xs, ys, zs := make(numbers, 0, n), make(numbers, 0, n), make(numbers, 0, n)
	gap := math.NaN()
	for _, e := range f.Edges {
		xs = append(xs, f.Coords[0][e.From], f.Coords[0][e.To], gap)
		ys = append(ys, f.Coords[1][e.From], f.Coords[1][e.To], gap)
		if f.Dim() >= 3 {
			zs = append(zs, f.Coords[2][e.From], f.Coords[2][e.To], gap)
		}
	}
	t := map[string]any{
		"type":       "scatter",
		"mode":       "lines",
		"name":       tr.Name + " links",
		"x":          xs,
		"y":          ys,
		"line":       map[string]any{"color": tr.EdgeColor.CSS(), "width": 1},
		"hoverinfo":  "skip",
		"showlegend": false,
	}
	if ref.is3D() {
		t["type"] = "scatter3d"
		t["z"] = zs
	}
	ref.apply(t)
	return t
}

// pointColumns returns the plot coordinates of a pointwise field. Series plot
// value over time, or over their labels when they have them.
func pointColumns(f *field.Field) (x, y any, z numbers) {
	if f.Kind == field.KindSeries {
		if f.Labels != nil {
			return f.Labels, numbers(f.Values), nil
		}
		return numbers(f.Coords[0]), numbers(f.Values), nil
	}
	x = numbers(f.Coords[0])
	y = numbers(f.Coords[1])
	if f.Dim() >= 3 {
		z = numbers(f.Coords[2])
	}
	return x, y, z
}

func gridRows(f *field.Field) []numbers {
	nx, ny := len(f.Coords[0]), len(f.Coords[1])
	rows := make([]numbers, ny)
	for j := range rows {
		rows[j] = numbers(f.Values[j*nx : (j+1)*nx])
	}
	return rows
}

// gridAxes returns the x and y ticks of a grid. Labels name the columns and,
// for square grids, the rows too.
func gridAxes(f *field.Field) (x, y any) {
	x, y = numbers(f.Coords[0]), numbers(f.Coords[1])
	if f.Labels != nil {
		x = f.Labels
		if len(f.Labels) == len(f.Coords[1]) {
			y = f.Labels
		}
	}
	return x, y
}

func volumeColumns(f *field.Field) (x, y, z numbers) {
	ax, ay, az := f.Coords[0], f.Coords[1], f.Coords[2]
	n := len(f.Values)
	x, y, z = make(numbers, 0, n), make(numbers, 0, n), make(numbers, 0, n)
	for k := range az {
		for j := range ay {
			for i := range ax {
				x = append(x, ax[i])
				y = append(y, ay[j])
				z = append(z, az[k])
			}
		}
	}
	return x, y, z
}
