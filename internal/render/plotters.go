package render

import (
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/san-kum/fieldviz/internal/field"
)

// mark is one projected segment or glyph.
type mark struct {
	depth          float64
	x1, y1, x2, y2 float64
	dot            bool
	line           draw.LineStyle
	glyph          draw.GlyphStyle
}

// painter draws marks far to near so nearer geometry covers farther
// geometry. Marks of equal depth keep insertion order.
type painter struct {
	marks []mark
}

func (p *painter) segment(x1, y1, x2, y2, depth float64, sty draw.LineStyle) {
	p.marks = append(p.marks, mark{depth: depth, x1: x1, y1: y1, x2: x2, y2: y2, line: sty})
}

func (p *painter) point(x, y, depth float64, sty draw.GlyphStyle) {
	p.marks = append(p.marks, mark{depth: depth, x1: x, y1: y, x2: x, y2: y, dot: true, glyph: sty})
}

func (p *painter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	sort.SliceStable(p.marks, func(i, j int) bool { return p.marks[i].depth > p.marks[j].depth })
	for _, m := range p.marks {
		if m.dot {
			c.DrawGlyph(m.glyph, vg.Point{X: trX(m.x1), Y: trY(m.y1)})
			continue
		}
		c.StrokeLine2(m.line, trX(m.x1), trY(m.y1), trX(m.x2), trY(m.y2))
	}
}

func (p *painter) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(p.marks) == 0 {
		return -1, 1, -1, 1
	}
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, m := range p.marks {
		xmin = math.Min(xmin, math.Min(m.x1, m.x2))
		xmax = math.Max(xmax, math.Max(m.x1, m.x2))
		ymin = math.Min(ymin, math.Min(m.y1, m.y2))
		ymax = math.Max(ymax, math.Max(m.y1, m.y2))
	}
	return xmin, xmax, ymin, ymax
}

type lineThumb draw.LineStyle

func (t lineThumb) Thumbnail(c *draw.Canvas) {
	y := c.Center().Y
	c.StrokeLine2(draw.LineStyle(t), c.Min.X, y, c.Max.X, y)
}

type glyphThumb draw.GlyphStyle

func (t glyphThumb) Thumbnail(c *draw.Canvas) {
	c.DrawGlyph(draw.GlyphStyle(t), c.Center())
}

// diamondGlyph is a filled square standing on its corner.
type diamondGlyph struct{}

func (diamondGlyph) DrawGlyph(c *draw.Canvas, sty draw.GlyphStyle, pt vg.Point) {
	c.SetColor(sty.Color)
	r := sty.Radius
	var p vg.Path
	p.Move(vg.Point{X: pt.X, Y: pt.Y + r})
	p.Line(vg.Point{X: pt.X + r, Y: pt.Y})
	p.Line(vg.Point{X: pt.X, Y: pt.Y - r})
	p.Line(vg.Point{X: pt.X - r, Y: pt.Y})
	p.Close()
	c.Fill(p)
}

func shape(symbol string) draw.GlyphDrawer {
	switch symbol {
	case "diamond":
		return diamondGlyph{}
	case "square":
		return draw.SquareGlyph{}
	case "cross", "x":
		return draw.CrossGlyph{}
	case "triangle-up":
		return draw.TriangleGlyph{}
	case "circle-open":
		return draw.RingGlyph{}
	}
	return draw.CircleGlyph{}
}

// gridXYZ adapts a grid field to plotter.GridXYZ. Indexed grids place cells
// at 0..n-1 so category ticks line up.
type gridXYZ struct {
	f       *field.Field
	indexed bool
}

func (g gridXYZ) Dims() (c, r int) { return len(g.f.Coords[0]), len(g.f.Coords[1]) }
func (g gridXYZ) Z(c, r int) float64 { return g.f.At(c, r) }

func (g gridXYZ) X(c int) float64 {
	if g.indexed {
		return float64(c)
	}
	return g.f.Coords[0][c]
}

func (g gridXYZ) Y(r int) float64 {
	if g.indexed {
		return float64(r)
	}
	return g.f.Coords[1][r]
}

// labelTicks places category labels at 0..n-1, keeping at most limit labels.
func labelTicks(labels []string, limit int) plot.ConstantTicks {
	step := (len(labels) + limit - 1) / limit
	if step < 1 {
		step = 1
	}
	ticks := make([]plot.Tick, len(labels))
	for i, l := range labels {
		ticks[i].Value = float64(i)
		if i%step == 0 {
			ticks[i].Label = l
		}
	}
	return ticks
}
