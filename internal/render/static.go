package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/scene"
	"github.com/san-kum/fieldviz/internal/theme"
)

// Sampling caps for 3D geometry in static images.
const (
	maxWireLines  = 60
	maxIsoSamples = 20000
	maxTickLabels = 12
)

// Static renders scenes to PNG or SVG images with gonum/plot. 3D panels are
// projected through a perspective camera and drawn far to near.
type Static struct {
	Kind string
}

func (s Static) Format() string { return s.Kind }

func (s Static) Render(w io.Writer, sc *scene.Scene) error {
	if err := sc.Validate(); err != nil {
		return err
	}
	th := sc.Theme
	width, height := pixels(th.Width), pixels(th.Height)
	bg := th.PaperBackground.NRGBA()

	var cv vg.CanvasWriterTo
	switch s.Kind {
	case FormatPNG:
		cv = vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseBackgroundColor(bg))}
	case FormatSVG:
		cv = vgsvg.New(width, height)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, s.Kind)
	}

	dc := draw.New(cv)
	fillBackground(dc, bg)
	top := drawTitle(dc, sc)

	plots, err := buildPlots(sc)
	if err != nil {
		return err
	}
	tiles := draw.Tiles{
		Rows:      sc.Rows,
		Cols:      sc.Cols,
		PadTop:    top,
		PadBottom: vg.Points(12),
		PadLeft:   vg.Points(12),
		PadRight:  vg.Points(12),
		PadX:      vg.Points(24),
		PadY:      vg.Points(24),
	}
	canvases := plot.Align(plots, tiles, dc)
	for r := range plots {
		for c := range plots[r] {
			plots[r][c].Draw(canvases[r][c])
		}
	}
	if _, err := cv.WriteTo(w); err != nil {
		return fmt.Errorf("write %s: %w", s.Kind, err)
	}
	return nil
}

// pixels converts a theme size to vg lengths at 96 dpi.
func pixels(px int) vg.Length {
	return vg.Length(px) * vg.Inch / 96
}

func fillBackground(dc draw.Canvas, c color.Color) {
	var p vg.Path
	p.Move(dc.Min)
	p.Line(vg.Point{X: dc.Max.X, Y: dc.Min.Y})
	p.Line(dc.Max)
	p.Line(vg.Point{X: dc.Min.X, Y: dc.Max.Y})
	p.Close()
	dc.SetColor(c)
	dc.Fill(p)
}

// drawTitle writes the scene title and subtitle and returns the height they
// take from the top of the image.
func drawTitle(dc draw.Canvas, sc *scene.Scene) vg.Length {
	th := sc.Theme
	pad := vg.Points(10)
	if sc.Title == "" && sc.Subtitle == "" {
		return pad
	}
	sty := plot.New().Title.TextStyle
	sty.Color = th.FontColor.NRGBA()
	sty.XAlign = draw.XCenter
	sty.YAlign = draw.YTop

	x := (dc.Min.X + dc.Max.X) / 2
	y := dc.Max.Y - pad
	if sc.Title != "" {
		sty.Font.Size = vg.Points(th.TitleSize)
		dc.FillText(sty, vg.Point{X: x, Y: y}, sc.Title)
		y -= sty.Height(sc.Title) + vg.Points(4)
	}
	if sc.Subtitle != "" {
		sty.Font.Size = vg.Points(th.FontSize)
		dc.FillText(sty, vg.Point{X: x, Y: y}, sc.Subtitle)
		y -= sty.Height(sc.Subtitle)
	}
	return dc.Max.Y - y + 2*pad
}

// buildPlots returns one plot per grid cell. Cells without a panel get an
// empty plot with hidden axes.
func buildPlots(sc *scene.Scene) ([][]*plot.Plot, error) {
	plots := make([][]*plot.Plot, sc.Rows)
	for r := range plots {
		plots[r] = make([]*plot.Plot, sc.Cols)
		for c := range plots[r] {
			empty := plot.New()
			empty.HideAxes()
			empty.BackgroundColor = color.Transparent
			plots[r][c] = empty
		}
	}
	for i := range sc.Panels {
		p := &sc.Panels[i]
		pl, err := panelPlot(p, sc)
		if err != nil {
			return nil, fmt.Errorf("panel %d: %w", i, err)
		}
		plots[p.Row][p.Col] = pl
	}
	return plots, nil
}

func panelPlot(p *scene.Panel, sc *scene.Scene) (*plot.Plot, error) {
	th := sc.Theme
	pl := plot.New()
	styleAxes(pl, th)
	pl.Title.Text = p.Title

	if p.Projection == scene.Projection3D {
		draw3D(pl, p, sc)
		return pl, nil
	}

	pl.X.Label.Text, pl.Y.Label.Text = p.Axes.X, p.Axes.Y
	grid := plotter.NewGrid()
	grid.Vertical.Color = th.GridColor.NRGBA()
	grid.Horizontal.Color = th.GridColor.NRGBA()
	pl.Add(grid)
	for _, tr := range p.Traces {
		if err := addTrace2D(pl, tr, th, sc.ShowLegend); err != nil {
			return nil, fmt.Errorf("trace %q: %w", tr.Name, err)
		}
	}
	return pl, nil
}

func styleAxes(pl *plot.Plot, th theme.Config) {
	fc := th.FontColor.NRGBA()
	pl.BackgroundColor = th.PlotBackground.NRGBA()
	pl.Title.TextStyle.Color = fc
	pl.Title.TextStyle.Font.Size = vg.Points(th.FontSize + 2)
	pl.Legend.TextStyle.Color = fc
	pl.Legend.Top = true
	for _, a := range []*plot.Axis{&pl.X, &pl.Y} {
		a.LineStyle.Color = fc
		a.Label.TextStyle.Color = fc
		a.Label.TextStyle.Font.Size = vg.Points(th.FontSize)
		a.Tick.Label.Color = fc
		a.Tick.Label.Font.Size = vg.Points(math.Max(6, th.FontSize-2))
		a.Tick.LineStyle.Color = fc
	}
}

func lineStyle(st scene.Style, c color.Color) draw.LineStyle {
	ls := draw.LineStyle{Color: c, Width: vg.Points(math.Max(0.5, st.Width*0.75))}
	switch st.Dash {
	case "dash":
		ls.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
	case "dot":
		ls.Dashes = []vg.Length{vg.Points(1.5), vg.Points(3)}
	case "dashdot":
		ls.Dashes = []vg.Length{vg.Points(6), vg.Points(3), vg.Points(1.5), vg.Points(3)}
	}
	return ls
}

func glyphStyle(st scene.Style, c color.Color) draw.GlyphStyle {
	return draw.GlyphStyle{Color: c, Radius: vg.Points(math.Max(1, st.Size*0.375)), Shape: shape(st.Symbol)}
}

func addTrace2D(pl *plot.Plot, tr scene.Trace, th theme.Config, legend bool) error {
	switch tr.Mode {
	case scene.Markers, scene.Lines, scene.MarkersLines:
		return addPoints2D(pl, tr, legend)
	case scene.Bar:
		return addBars(pl, tr, legend)
	case scene.Heatmap:
		addHeatmap(pl, tr, th)
		return nil
	case scene.Contour:
		addContour(pl, tr)
		return nil
	}
	return field.Incompatible("Render", tr.Field.Kind, string(tr.Mode))
}

// planeColumns returns the 2D position of every sample. Labelled series sit
// at their index so category ticks apply.
func planeColumns(f *field.Field) (xs, ys []float64) {
	if f.Kind == field.KindSeries {
		if f.Labels != nil {
			xs = make([]float64, len(f.Values))
			for i := range xs {
				xs[i] = float64(i)
			}
			return xs, f.Values
		}
		return f.Coords[0], f.Values
	}
	return f.Coords[0], f.Coords[1]
}

// finite drops samples with a NaN or infinite coordinate and returns the
// source index of each kept sample.
func finite(xs, ys []float64) (plotter.XYs, []int) {
	pts := make(plotter.XYs, 0, len(xs))
	idx := make([]int, 0, len(xs))
	for i := range xs {
		if bad(xs[i]) || bad(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
		idx = append(idx, i)
	}
	return pts, idx
}

func bad(v float64) bool { return math.IsNaN(v) || math.IsInf(v, 0) }

func addPoints2D(pl *plot.Plot, tr scene.Trace, legend bool) error {
	f, st := tr.Field, tr.Style
	lo, hi := f.Range()
	colorAt := func(i int) color.Color { return valueColor(tr.Color, f.Values[i], lo, hi, st.Opacity) }

	if f.Kind == field.KindTopology && len(f.Edges) > 0 {
		edges := &painter{}
		ls := draw.LineStyle{Color: tr.EdgeColor.NRGBA(), Width: vg.Points(0.5)}
		for _, e := range f.Edges {
			edges.segment(f.Coords[0][e.From], f.Coords[1][e.From], f.Coords[0][e.To], f.Coords[1][e.To], 0, ls)
		}
		pl.Add(edges)
	}

	xs, ys := planeColumns(f)
	pts, idx := finite(xs, ys)
	if len(pts) == 0 {
		return nil
	}
	if f.Labels != nil {
		pl.X.Tick.Marker = labelTicks(f.Labels, maxTickLabels)
	}

	var thumbs []plot.Thumbnailer
	if tr.Mode.HasLines() {
		ls := lineStyle(st, midColor(tr.Color, st.Opacity))
		if tr.Color.ByValue {
			seg := &painter{}
			for k := 1; k < len(pts); k++ {
				s := ls
				s.Color = colorAt(idx[k])
				seg.segment(pts[k-1].X, pts[k-1].Y, pts[k].X, pts[k].Y, 0, s)
			}
			pl.Add(seg)
			thumbs = append(thumbs, lineThumb(ls))
		} else {
			line, err := plotter.NewLine(pts)
			if err != nil {
				return err
			}
			line.LineStyle = ls
			pl.Add(line)
			thumbs = append(thumbs, line)
		}
	}
	if tr.Mode.HasMarkers() {
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		base := glyphStyle(st, midColor(tr.Color, st.Opacity))
		sc.GlyphStyle = base
		sc.GlyphStyleFunc = func(k int) draw.GlyphStyle {
			g := base
			g.Color = colorAt(idx[k])
			return g
		}
		pl.Add(sc)
		thumbs = append(thumbs, glyphThumb(base))
	}
	if legend && tr.Name != "" {
		pl.Legend.Add(tr.Name, thumbs...)
	}
	return nil
}

func addBars(pl *plot.Plot, tr scene.Trace, legend bool) error {
	f := tr.Field
	n := len(f.Values)
	bars, err := plotter.NewBarChart(plotter.Values(f.Values), vg.Points(math.Max(1, 360/float64(n))))
	if err != nil {
		return err
	}
	bars.Color = midColor(tr.Color, tr.Style.Opacity)
	bars.LineStyle.Width = 0
	pl.Add(bars)
	if f.Labels != nil {
		pl.X.Tick.Marker = labelTicks(f.Labels, maxTickLabels)
	}
	if legend && tr.Name != "" {
		pl.Legend.Add(tr.Name, bars)
	}
	return nil
}

// valueBounds is the field range widened when it collapses to a point.
func valueBounds(f *field.Field) (lo, hi float64) {
	lo, hi = f.Range()
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

func addHeatmap(pl *plot.Plot, tr scene.Trace, th theme.Config) {
	f := tr.Field
	g := gridXYZ{f: f, indexed: f.Labels != nil}
	lo, hi := valueBounds(f)
	h := plotter.NewHeatMap(g, paletteOf(tr.Color, 64, tr.Style.Opacity))
	h.Min, h.Max = lo, hi
	h.NaN = color.Transparent
	pl.Add(h)

	if g.indexed {
		pl.X.Tick.Marker = labelTicks(f.Labels, maxTickLabels)
		if len(f.Labels) == len(f.Coords[1]) {
			pl.Y.Tick.Marker = labelTicks(f.Labels, maxTickLabels)
		}
	}
	if !tr.Style.ShowLabels {
		return
	}
	nx, ny := g.Dims()
	var cells plotter.XYLabels
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			v := g.Z(i, j)
			if math.IsNaN(v) {
				continue
			}
			cells.XYs = append(cells.XYs, plotter.XY{X: g.X(i), Y: g.Y(j)})
			cells.Labels = append(cells.Labels, fmt.Sprintf("%.2f", v))
		}
	}
	labels, err := plotter.NewLabels(cells)
	if err != nil {
		return
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Color = th.FontColor.NRGBA()
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YCenter
	}
	pl.Add(labels)
}

// addContour fills the grid as a heat map and draws iso-lines over it.
func addContour(pl *plot.Plot, tr scene.Trace) {
	f := tr.Field
	g := gridXYZ{f: f}
	lo, hi := valueBounds(f)
	n := tr.Style.ContourLevels
	if n <= 0 {
		n = scene.DefaultStyle(scene.Contour).ContourLevels
	}

	fill := plotter.NewHeatMap(g, paletteOf(tr.Color, 64, tr.Style.Opacity))
	fill.Min, fill.Max = lo, hi
	fill.NaN = color.Transparent
	pl.Add(fill)

	levels := make([]float64, n)
	for i := range levels {
		levels[i] = lo + (hi-lo)*float64(i+1)/float64(n+1)
	}
	lines := plotter.NewContour(g, levels, paletteOf(tr.Color, n, 1))
	lines.Min, lines.Max = lo, hi
	pl.Add(lines)
}

// draw3D projects every trace of a 3D panel through the panel camera into
// one painter.
func draw3D(pl *plot.Plot, p *scene.Panel, sc *scene.Scene) {
	th := sc.Theme
	pl.HideAxes()
	cam := NewCamera(p.View())
	b := newBox()
	for _, tr := range p.Traces {
		extend(b, tr)
	}

	pt := &painter{}
	grid := draw.LineStyle{Color: th.GridColor.NRGBA(), Width: vg.Points(0.5)}
	for _, e := range cubeEdges() {
		project(pt, cam, e[0], e[1], grid)
	}
	for _, tr := range p.Traces {
		thumbs := project3D(pt, cam, b, tr)
		if sc.ShowLegend && tr.Name != "" && len(thumbs) > 0 {
			pl.Legend.Add(tr.Name, thumbs...)
		}
	}
	pl.Add(pt)

	var names plotter.XYLabels
	for _, a := range []struct {
		title string
		end   Vec3
	}{
		{p.Axes.X, Vec3{1.3, -1, -1}},
		{p.Axes.Y, Vec3{-1, 1.3, -1}},
		{p.Axes.Z, Vec3{-1, -1, 1.3}},
	} {
		if a.title == "" {
			continue
		}
		if x, y, _, ok := cam.Project(a.end); ok {
			names.XYs = append(names.XYs, plotter.XY{X: x, Y: y})
			names.Labels = append(names.Labels, a.title)
		}
	}
	if len(names.Labels) > 0 {
		if labels, err := plotter.NewLabels(names); err == nil {
			for i := range labels.TextStyle {
				labels.TextStyle[i].Color = th.FontColor.NRGBA()
				labels.TextStyle[i].XAlign = draw.XCenter
			}
			pl.Add(labels)
		}
	}

	// keep the projection square around its centre
	xmin, xmax, ymin, ymax := pt.DataRange()
	half := math.Max(xmax-xmin, ymax-ymin)/2 + 0.1
	cx, cy := (xmin+xmax)/2, (ymin+ymax)/2
	pl.X.Min, pl.X.Max = cx-half, cx+half
	pl.Y.Min, pl.Y.Max = cy-half, cy+half
}

func project(pt *painter, cam *Camera, a, b Vec3, ls draw.LineStyle) {
	x1, y1, d1, ok1 := cam.Project(a)
	x2, y2, d2, ok2 := cam.Project(b)
	if ok1 && ok2 {
		pt.segment(x1, y1, x2, y2, (d1+d2)/2, ls)
	}
}

// extend grows the panel box by everything a trace draws.
func extend(b *box, tr scene.Trace) {
	f := tr.Field
	switch f.Kind {
	case field.KindGrid:
		xs, ys := f.Coords[0], f.Coords[1]
		lo, hi := f.Range()
		b.extend(Vec3{xs[0], ys[0], lo})
		b.extend(Vec3{xs[len(xs)-1], ys[len(ys)-1], hi})
	case field.KindVolume:
		last := func(c []float64) float64 { return c[len(c)-1] }
		ax, ay, az := f.Coords[0], f.Coords[1], f.Coords[2]
		b.extend(Vec3{ax[0], ay[0], az[0]})
		b.extend(Vec3{last(ax), last(ay), last(az)})
	default:
		for i := range f.Values {
			b.extend(pointAt(f, i))
		}
	}
}

func pointAt(f *field.Field, i int) Vec3 {
	v := Vec3{X: f.Coords[0][i], Y: f.Coords[1][i]}
	if f.Dim() >= 3 {
		v.Z = f.Coords[2][i]
	}
	return v
}

// project3D adds one trace to the painter and returns its legend thumbnails.
func project3D(pt *painter, cam *Camera, b *box, tr scene.Trace) []plot.Thumbnailer {
	f, st := tr.Field, tr.Style
	lo, hi := f.Range()
	colorOf := func(v float64) color.Color { return valueColor(tr.Color, v, lo, hi, st.Opacity) }

	switch tr.Mode {
	case scene.Surface:
		wireframe(pt, cam, b, f, st, colorOf)
		return []plot.Thumbnailer{lineThumb(lineStyle(scene.Style{Width: 1}, midColor(tr.Color, st.Opacity)))}
	case scene.Isosurface:
		g := glyphStyle(scene.Style{Size: 3}, midColor(tr.Color, st.Opacity))
		isoPoints(pt, cam, b, f, st, g, colorOf)
		return []plot.Thumbnailer{glyphThumb(g)}
	}

	var thumbs []plot.Thumbnailer
	if f.Kind == field.KindTopology {
		ls := draw.LineStyle{Color: tr.EdgeColor.NRGBA(), Width: vg.Points(0.5)}
		for _, e := range f.Edges {
			project(pt, cam, b.normalize(pointAt(f, e.From)), b.normalize(pointAt(f, e.To)), ls)
		}
	}
	if tr.Mode.HasLines() {
		ls := lineStyle(st, midColor(tr.Color, st.Opacity))
		for i := 1; i < len(f.Values); i++ {
			s := ls
			s.Color = colorOf(f.Values[i])
			project(pt, cam, b.normalize(pointAt(f, i-1)), b.normalize(pointAt(f, i)), s)
		}
		thumbs = append(thumbs, lineThumb(ls))
	}
	if tr.Mode.HasMarkers() {
		g := glyphStyle(st, midColor(tr.Color, st.Opacity))
		for i, v := range f.Values {
			x, y, d, ok := cam.Project(b.normalize(pointAt(f, i)))
			if !ok {
				continue
			}
			s := g
			s.Color = colorOf(v)
			pt.point(x, y, d, s)
		}
		thumbs = append(thumbs, glyphThumb(g))
	}
	return thumbs
}

// wireframe draws a thinned mesh of the surface z = value(x, y).
func wireframe(pt *painter, cam *Camera, b *box, f *field.Field, st scene.Style, colorOf func(float64) color.Color) {
	xs, ys := f.Coords[0], f.Coords[1]
	nx, ny := len(xs), len(ys)
	sx := max(1, (nx+maxWireLines-1)/maxWireLines)
	sy := max(1, (ny+maxWireLines-1)/maxWireLines)
	at := func(i, j int) Vec3 { return b.normalize(Vec3{xs[i], ys[j], f.At(i, j)}) }
	edge := func(i1, j1, i2, j2 int) {
		v1, v2 := f.At(i1, j1), f.At(i2, j2)
		if math.IsNaN(v1) || math.IsNaN(v2) {
			return
		}
		ls := lineStyle(scene.Style{Width: 1}, colorOf((v1+v2)/2))
		project(pt, cam, at(i1, j1), at(i2, j2), ls)
	}
	for j := 0; j < ny; j += sy {
		for i := sx; i < nx; i += sx {
			edge(i-sx, j, i, j)
		}
	}
	for i := 0; i < nx; i += sx {
		for j := sy; j < ny; j += sy {
			edge(i, j-sy, i, j)
		}
	}
}

// isoPoints marks the volume samples inside the iso band.
func isoPoints(pt *painter, cam *Camera, b *box, f *field.Field, st scene.Style, g draw.GlyphStyle, colorOf func(float64) color.Color) {
	ax, ay, az := f.Coords[0], f.Coords[1], f.Coords[2]
	nx, ny := len(ax), len(ay)
	step := max(1, int(math.Ceil(math.Cbrt(float64(len(f.Values))/maxIsoSamples))))
	for k := 0; k < len(az); k += step {
		for j := 0; j < ny; j += step {
			for i := 0; i < nx; i += step {
				v := f.Values[(k*ny+j)*nx+i]
				if math.IsNaN(v) || v < st.IsoMin || v > st.IsoMax {
					continue
				}
				x, y, d, ok := cam.Project(b.normalize(Vec3{ax[i], ay[j], az[k]}))
				if !ok {
					continue
				}
				s := g
				s.Color = colorOf(v)
				pt.point(x, y, d, s)
			}
		}
	}
}
