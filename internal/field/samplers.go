package field

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// SphereShell scatters points around a sphere of the given radius with
// Gaussian radial jitter. The attribute is the distance from the origin.
func SphereShell(radius, jitter float64) Sampler {
	return func(rnd *rand.Rand, _ int) (Point, float64) {
		theta := rnd.Float64() * 2 * math.Pi
		phi := rnd.Float64() * math.Pi
		r := radius + jitter*rnd.NormFloat64()
		p := Point{
			X: r * math.Sin(phi) * math.Cos(theta),
			Y: r * math.Sin(phi) * math.Sin(theta),
			Z: r * math.Cos(phi),
		}
		return p, math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
	}
}

// GaussianCluster draws each coordinate from N(centre, sigma). The attribute
// is the distance from the centre.
func GaussianCluster(centre Point, sigma float64) Sampler {
	return func(rnd *rand.Rand, _ int) (Point, float64) {
		n := distuv.Normal{Mu: 0, Sigma: sigma, Src: rnd}
		d := Point{X: n.Rand(), Y: n.Rand(), Z: n.Rand()}
		return Point{X: centre.X + d.X, Y: centre.Y + d.Y, Z: centre.Z + d.Z}, math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
	}
}

// UniformBox draws points uniformly inside the box and a uniform attribute
// from value.
func UniformBox(x, y, z, value Range) Sampler {
	return func(rnd *rand.Rand, _ int) (Point, float64) {
		p := Point{
			X: x.Min + rnd.Float64()*x.Span(),
			Y: y.Min + rnd.Float64()*y.Span(),
			Z: z.Min + rnd.Float64()*z.Span(),
		}
		return p, value.Min + rnd.Float64()*value.Span()
	}
}

// Paraboloid draws x and y from N(0, 1) and lifts them onto z = x^2 + y^2
// with N(0, noise) scatter. The attribute is z.
func Paraboloid(noise float64) Sampler {
	return func(rnd *rand.Rand, _ int) (Point, float64) {
		x, y := rnd.NormFloat64(), rnd.NormFloat64()
		z := x*x + y*y + noise*rnd.NormFloat64()
		return Point{X: x, Y: y, Z: z}, z
	}
}

// DecayingHelix traces count points of a looping path over t in [0, tmax]
// whose amplitude decays as exp(-t/decay). The attribute is sin(t).
func DecayingHelix(count int, amplitude, phase, tmax, decay float64) Sampler {
	return func(_ *rand.Rand, i int) (Point, float64) {
		t := paramAt(i, count, tmax)
		a := amplitude * math.Exp(-t/decay)
		return Point{
			X: a * math.Sin(t+phase),
			Y: a * math.Cos(t+phase),
			Z: a * math.Sin(2*t+phase),
		}, math.Sin(t)
	}
}

// Spiral traces a decaying planar spiral that rises linearly in z. The
// attribute is t.
func Spiral(count int, tmax, decay, rise float64) Sampler {
	return func(_ *rand.Rand, i int) (Point, float64) {
		t := paramAt(i, count, tmax)
		a := math.Exp(-t / decay)
		return Point{X: math.Sin(t) * a, Y: math.Cos(t) * a, Z: t * rise}, t
	}
}

func paramAt(i, count int, tmax float64) float64 {
	if count <= 1 {
		return 0
	}
	return tmax * float64(i) / float64(count-1)
}
