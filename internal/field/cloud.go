package field

import "math/rand/v2"

// Sampler produces the i-th point of a cloud and its scalar attribute.
// Stochastic samplers draw from rnd; parametric ones may use only i.
type Sampler func(rnd *rand.Rand, i int) (Point, float64)

// PointCloudParams configures GeneratePointCloud.
type PointCloudParams struct {
	Count   int
	Sampler Sampler
	// Planar drops the z coordinate, giving a 2D cloud.
	Planar bool
	Labels AxisLabels
}

// GeneratePointCloud calls Sampler Count times in index order.
func GeneratePointCloud(rnd *rand.Rand, p PointCloudParams) (*Field, error) {
	const op = "GeneratePointCloud"

	if p.Count < 1 {
		return nil, invalid(op, "count", p.Count, "must be at least 1")
	}
	if p.Count > MaxPoints {
		return nil, tooLarge(op, "count", p.Count, MaxPoints)
	}
	if p.Sampler == nil {
		return nil, invalid(op, "sampler", nil, "sampler required")
	}
	if rnd == nil {
		return nil, invalid(op, "rnd", nil, "random source required")
	}

	xs := make([]float64, p.Count)
	ys := make([]float64, p.Count)
	var zs []float64
	if !p.Planar {
		zs = make([]float64, p.Count)
	}
	values := make([]float64, p.Count)

	for i := 0; i < p.Count; i++ {
		pt, v := p.Sampler(rnd, i)
		xs[i], ys[i] = pt.X, pt.Y
		if zs != nil {
			zs[i] = pt.Z
		}
		values[i] = v
	}

	coords := [][]float64{xs, ys}
	if zs != nil {
		coords = append(coords, zs)
	}
	return &Field{
		Kind:     KindCloud,
		Coords:   coords,
		Values:   values,
		Metadata: p.Labels.meta(),
	}, nil
}
