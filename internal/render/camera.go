package render

import (
	"math"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/scene"
)

// Vec3 is a point or direction in a 3D panel.
type Vec3 struct {
	X, Y, Z float64
}

func vec(p field.Point) Vec3 { return Vec3{p.X, p.Y, p.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Length() float64      { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	if l := v.Length(); l != 0 {
		return v.Scale(1 / l)
	}
	return Vec3{}
}
func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}

// Camera projects the unit cube of a 3D panel onto its drawing plane. The
// viewer sits on the eye direction looking at the origin with z up.
type Camera struct {
	right, up, back Vec3
	dist            float64
	near            float64
}

// NewCamera builds a perspective camera from a panel's eye position. A zero
// eye falls back to the default view.
func NewCamera(c scene.Camera) *Camera {
	eye := vec(c.Eye)
	if eye.Length() == 0 {
		eye = vec(scene.DefaultCamera.Eye)
	}
	back := eye.Normalize()
	worldUp := Vec3{0, 0, 1}
	if math.Abs(back.Dot(worldUp)) > 0.999 {
		worldUp = Vec3{0, 1, 0}
	}
	right := worldUp.Cross(back).Normalize()
	return &Camera{
		right: right,
		up:    back.Cross(right),
		back:  back,
		dist:  2*eye.Length() + 1,
		near:  0.1,
	}
}

// RotatePoint expresses p in view space: x to the right, y up and z toward
// the viewer.
func (c *Camera) RotatePoint(p Vec3) Vec3 {
	return Vec3{p.Dot(c.right), p.Dot(c.up), p.Dot(c.back)}
}

// Project maps p to plane coordinates. depth grows away from the viewer; ok
// is false for points behind the near plane.
func (c *Camera) Project(p Vec3) (x, y, depth float64, ok bool) {
	rot := c.RotatePoint(p)
	if rot.Z >= c.dist-c.near {
		return 0, 0, 0, false
	}
	scale := c.dist / (c.dist - rot.Z)
	return rot.X * scale, rot.Y * scale, -rot.Z, true
}

// box tracks the data extent of a 3D panel and maps it onto [-1, 1]^3.
type box struct {
	min, max Vec3
	empty    bool
}

func newBox() *box {
	inf := math.Inf(1)
	return &box{min: Vec3{inf, inf, inf}, max: Vec3{-inf, -inf, -inf}, empty: true}
}

func (b *box) extend(p Vec3) {
	if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) {
		return
	}
	b.min = Vec3{math.Min(b.min.X, p.X), math.Min(b.min.Y, p.Y), math.Min(b.min.Z, p.Z)}
	b.max = Vec3{math.Max(b.max.X, p.X), math.Max(b.max.Y, p.Y), math.Max(b.max.Z, p.Z)}
	b.empty = false
}

func (b *box) normalize(p Vec3) Vec3 {
	if b.empty {
		return Vec3{}
	}
	return Vec3{
		unit(p.X, b.min.X, b.max.X),
		unit(p.Y, b.min.Y, b.max.Y),
		unit(p.Z, b.min.Z, b.max.Z),
	}
}

func unit(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	return 2*(v-lo)/(hi-lo) - 1
}

// cubeEdges are the twelve edges of the [-1, 1] cube drawn behind 3D data.
func cubeEdges() [][2]Vec3 {
	v := []Vec3{{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1}, {-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	out := make([][2]Vec3, len(ei))
	for i, e := range ei {
		out[i] = [2]Vec3{v[e[0]], v[e[1]]}
	}
	return out
}
