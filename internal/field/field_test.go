package field

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func TestTopologyNoConnections(t *testing.T) {
	f, err := GenerateTopology(seeded(1), DefaultTopology([]int{5, 5}, 0))
	require.NoError(t, err)

	assert.Equal(t, KindTopology, f.Kind)
	assert.Equal(t, 10, f.Len())
	assert.Empty(t, f.Edges)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 1, 1, 1, 1, 1}, f.Layers)
	require.NoError(t, f.Validate())
}

func TestTopologyFullyConnected(t *testing.T) {
	f, err := GenerateTopology(seeded(1), DefaultTopology([]int{5, 5}, 1))
	require.NoError(t, err)

	require.Len(t, f.Edges, 25)
	for _, e := range f.Edges {
		assert.Equal(t, 0, f.Layers[e.From])
		assert.Equal(t, 1, f.Layers[e.To])
	}
}

func TestTopologyEdgesOnlyJoinAdjacentLayers(t *testing.T) {
	for _, policy := range []EdgePolicy{EdgeBernoulli, EdgeFixedCount} {
		t.Run(policy.String(), func(t *testing.T) {
			p := DefaultTopology([]int{7, 9, 4, 6}, 0.4)
			p.Policy = policy
			f, err := GenerateTopology(seeded(7), p)
			require.NoError(t, err)

			assert.Equal(t, 26, f.Len())
			for _, e := range f.Edges {
				assert.Equal(t, f.Layers[e.From]+1, f.Layers[e.To], "edge %d->%d", e.From, e.To)
			}
		})
	}
}

func TestTopologyFixedCount(t *testing.T) {
	p := DefaultTopology([]int{10, 20, 5}, 0.25)
	p.Policy = EdgeFixedCount
	f, err := GenerateTopology(seeded(3), p)
	require.NoError(t, err)

	// round(0.25*200) + round(0.25*100)
	require.Len(t, f.Edges, 75)
	seen := make(map[Edge]bool)
	for _, e := range f.Edges {
		assert.False(t, seen[e], "duplicate edge %v", e)
		seen[e] = true
	}
}

func TestTopologyPlacement(t *testing.T) {
	f, err := GenerateTopology(seeded(1), DefaultTopology([]int{4, 2}, 0))
	require.NoError(t, err)
	require.Equal(t, 3, f.Dim())

	assert.InDelta(t, 2.0, f.Coords[0][0], 1e-12)
	assert.InDelta(t, 0.0, f.Coords[1][0], 1e-12)
	assert.InDelta(t, 0.0, f.Coords[0][1], 1e-12)
	assert.InDelta(t, 2.0, f.Coords[1][1], 1e-12)
	// second layer: radius 3.5, shifted by 3
	assert.InDelta(t, 6.5, f.Coords[0][4], 1e-12)
	assert.Equal(t, f.Values, f.Coords[2])
	for _, v := range f.Values {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
	assert.Equal(t, []int{0, 0, 0, 0, 1, 1}, f.Layers)
}

func TestTopologyColumnLayout(t *testing.T) {
	p := DefaultTopology([]int{3, 1}, 0.5)
	p.Layout = LayoutColumn
	p.Lift = false
	f, err := GenerateTopology(seeded(2), p)
	require.NoError(t, err)

	assert.Equal(t, 2, f.Dim())
	assert.Equal(t, []float64{0, 0, 0, 3}, f.Coords[0])
	assert.Equal(t, []float64{-5, 0, 5, 0}, f.Coords[1])
}

func TestTopologyDeterministic(t *testing.T) {
	p := DefaultTopology([]int{8, 12, 8}, 0.3)
	a, err := GenerateTopology(seeded(42), p)
	require.NoError(t, err)
	b, err := GenerateTopology(seeded(42), p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestTopologyRejects(t *testing.T) {
	tests := []struct {
		name  string
		sizes []int
		prob  float64
		rnd   *rand.Rand
		want  error
	}{
		{"no layers", nil, 0.5, seeded(1), ErrInvalidParameter},
		{"empty layer", []int{3, 0}, 0.5, seeded(1), ErrInvalidParameter},
		{"negative probability", []int{3}, -0.1, seeded(1), ErrInvalidParameter},
		{"probability above one", []int{3}, 1.5, seeded(1), ErrInvalidParameter},
		{"nan probability", []int{3}, math.NaN(), seeded(1), ErrInvalidParameter},
		{"nil source", []int{3}, 0.5, nil, ErrInvalidParameter},
		{"too many nodes", []int{MaxNodes, 1}, 0.5, seeded(1), ErrResourceLimit},
		{"too many candidates", []int{8000, 8000}, 0.5, seeded(1), ErrResourceLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := GenerateTopology(tt.rnd, DefaultTopology(tt.sizes, tt.prob))
			assert.Nil(t, f)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseEdgePolicy(t *testing.T) {
	p, ok := ParseEdgePolicy("fixed")
	assert.True(t, ok)
	assert.Equal(t, EdgeFixedCount, p)

	p, ok = ParseEdgePolicy("")
	assert.True(t, ok)
	assert.Equal(t, EdgeBernoulli, p)

	_, ok = ParseEdgePolicy("poisson")
	assert.False(t, ok)
}

func TestGridMatchesFormula(t *testing.T) {
	f, err := GenerateGrid(nil, GridParams{
		XRange:     Range{-5, 5},
		YRange:     Range{-5, 5},
		Resolution: 100,
		Formula:    Superposition,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{100, 100}, f.Shape())
	require.Len(t, f.Values, 10000)
	for j, y := range f.Coords[1] {
		for i, x := range f.Coords[0] {
			require.Equal(t, Superposition(x, y), f.At(i, j))
		}
	}
}

func TestGridBoundsAreExact(t *testing.T) {
	for _, n := range []int{2, 3, 7, 100, 101, 333} {
		f, err := GenerateGrid(nil, GridParams{
			XRange:     Range{-4, 4},
			YRange:     Range{0.1, 1},
			Resolution: n,
			Formula:    Sensitivity,
		})
		require.NoError(t, err)
		xs, ys := f.Coords[0], f.Coords[1]
		assert.Equal(t, -4.0, xs[0])
		assert.Equal(t, 4.0, xs[n-1])
		assert.Equal(t, 0.1, ys[0])
		assert.Equal(t, 1.0, ys[n-1])
	}
}

func TestGridNoise(t *testing.T) {
	p := GridParams{
		XRange:     Range{-2, 2},
		YRange:     Range{-2, 2},
		Resolution: 40,
		Formula:    flatSurface(0),
		NoiseSigma: 0.5,
	}

	_, err := GenerateGrid(nil, p)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	a, err := GenerateGrid(seeded(9), p)
	require.NoError(t, err)
	b, err := GenerateGrid(seeded(9), p)
	require.NoError(t, err)
	assert.Equal(t, a.Values, b.Values)

	lo, hi := a.Range()
	assert.Less(t, lo, 0.0)
	assert.Greater(t, hi, 0.0)
	// smoothing shrinks the spread well below the raw sigma
	assert.Less(t, hi-lo, 4*p.NoiseSigma)
}

// flatSurface returns z = c everywhere.
func flatSurface(c float64) Surface {
	return func(float64, float64) float64 { return c }
}

func TestGridRejects(t *testing.T) {
	base := GridParams{XRange: Range{0, 1}, YRange: Range{0, 1}, Resolution: 10, Formula: Sensitivity}
	tests := []struct {
		name   string
		mutate func(*GridParams)
		want   error
	}{
		{"resolution one", func(p *GridParams) { p.Resolution = 1 }, ErrInvalidParameter},
		{"inverted x", func(p *GridParams) { p.XRange = Range{1, 0} }, ErrInvalidParameter},
		{"empty y", func(p *GridParams) { p.YRange = Range{2, 2} }, ErrInvalidParameter},
		{"infinite x", func(p *GridParams) { p.XRange = Range{0, math.Inf(1)} }, ErrInvalidParameter},
		{"no formula", func(p *GridParams) { p.Formula = nil }, ErrInvalidParameter},
		{"negative noise", func(p *GridParams) { p.NoiseSigma = -1 }, ErrInvalidParameter},
		{"too large", func(p *GridParams) { p.Resolution = 2001 }, ErrResourceLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			_, err := GenerateGrid(seeded(1), p)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestSmooth(t *testing.T) {
	flat := make([]float64, 25)
	for i := range flat {
		flat[i] = 3
	}
	for _, v := range Smooth(flat, 5, 5, 1.5) {
		assert.InDelta(t, 3.0, v, 1e-12)
	}

	spike := make([]float64, 49)
	spike[24] = 1
	out := Smooth(spike, 7, 7, 1)
	assert.Less(t, out[24], 1.0)
	assert.Greater(t, out[23], 0.0)
	assert.InDelta(t, out[23], out[25], 1e-12)

	same := Smooth(spike, 7, 7, 0)
	assert.Equal(t, spike, same)
	same[0] = 5
	assert.Equal(t, 0.0, spike[0])
}

func TestReflect(t *testing.T) {
	for _, tt := range []struct{ i, n, want int }{
		{-1, 4, 0}, {-2, 4, 1}, {4, 4, 3}, {5, 4, 2}, {2, 4, 2}, {-3, 1, 0},
	} {
		assert.Equal(t, tt.want, reflect(tt.i, tt.n), "reflect(%d, %d)", tt.i, tt.n)
	}
}

func TestVolume(t *testing.T) {
	f, err := GenerateVolume(nil, VolumeParams{
		Bounds:     [3]Range{{-2, 2}, {-2, 2}, {-2, 2}},
		Resolution: 9,
		Formula:    QuantumField,
	})
	require.NoError(t, err)
	require.NoError(t, f.Validate())
	assert.Equal(t, []int{9, 9, 9}, f.Shape())

	i, j, k := 2, 5, 7
	x, y, z := f.Coords[0][i], f.Coords[1][j], f.Coords[2][k]
	assert.Equal(t, QuantumField(x, y, z), f.Values[(k*9+j)*9+i])

	_, err = GenerateVolume(nil, VolumeParams{
		Bounds:     [3]Range{{0, 1}, {0, 1}, {0, 1}},
		Resolution: 201,
		Formula:    QuantumField,
	})
	assert.ErrorIs(t, err, ErrResourceLimit)

	_, err = GenerateVolume(nil, VolumeParams{
		Bounds:     [3]Range{{0, 1}, {1, 0}, {0, 1}},
		Resolution: 5,
		Formula:    QuantumField,
	})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSeriesUniformNoise(t *testing.T) {
	p := SeriesParams{
		Duration:       100,
		Samples:        1000,
		Components:     []Component{Sine(0.2, 0.1, 0), Constant(0.5)},
		NoiseAmplitude: 0.05,
	}
	f, err := GenerateSeries(seeded(5), p)
	require.NoError(t, err)

	ts := f.Coords[0]
	assert.Equal(t, 0.0, ts[0])
	assert.Equal(t, 100.0, ts[len(ts)-1])
	for i, v := range f.Values {
		clean := 0.2*math.Sin(0.1*ts[i]) + 0.5
		assert.GreaterOrEqual(t, v-clean, -1e-12)
		assert.Less(t, v-clean, 0.05+1e-12)
	}
}

func TestSeriesWithoutNoiseNeedsNoSource(t *testing.T) {
	f, err := GenerateSeries(nil, SeriesParams{
		Duration:   10,
		Samples:    11,
		Components: []Component{DampedSine(1, 1, 5), Cosine(1, 0, 0)},
	})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f.Values[0], 1e-12)
}

func TestSeriesRejects(t *testing.T) {
	base := SeriesParams{Duration: 1, Samples: 10, Components: []Component{Constant(1)}}
	tests := []struct {
		name   string
		mutate func(*SeriesParams)
		want   error
	}{
		{"one sample", func(p *SeriesParams) { p.Samples = 1 }, ErrInvalidParameter},
		{"zero duration", func(p *SeriesParams) { p.Duration = 0 }, ErrInvalidParameter},
		{"no components", func(p *SeriesParams) { p.Components = nil }, ErrInvalidParameter},
		{"nil component", func(p *SeriesParams) { p.Components = []Component{nil} }, ErrInvalidParameter},
		{"noisy without source", func(p *SeriesParams) { p.NoiseAmplitude = 1 }, ErrInvalidParameter},
		{"too long", func(p *SeriesParams) { p.Samples = MaxSeriesSamples + 1 }, ErrResourceLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			_, err := GenerateSeries(nil, p)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPointCloud(t *testing.T) {
	f, err := GeneratePointCloud(seeded(11), PointCloudParams{Count: 500, Sampler: SphereShell(2, 0.5)})
	require.NoError(t, err)
	assert.Equal(t, 3, f.Dim())
	assert.Equal(t, 500, f.Len())
	for i, v := range f.Values {
		x, y, z := f.Coords[0][i], f.Coords[1][i], f.Coords[2][i]
		assert.InDelta(t, math.Sqrt(x*x+y*y+z*z), v, 1e-9)
	}

	flat, err := GeneratePointCloud(seeded(11), PointCloudParams{Count: 500, Sampler: SphereShell(2, 0.5), Planar: true})
	require.NoError(t, err)
	assert.Equal(t, 2, flat.Dim())
	assert.Equal(t, f.Coords[0], flat.Coords[0])
}

func TestPointCloudRejects(t *testing.T) {
	s := UniformBox(Range{0, 1}, Range{0, 1}, Range{0, 1}, Range{2, 8})
	_, err := GeneratePointCloud(seeded(1), PointCloudParams{Count: 0, Sampler: s})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = GeneratePointCloud(seeded(1), PointCloudParams{Count: MaxPoints + 1, Sampler: s})
	assert.ErrorIs(t, err, ErrResourceLimit)
	_, err = GeneratePointCloud(nil, PointCloudParams{Count: 3, Sampler: s})
	assert.ErrorIs(t, err, ErrInvalidParameter)
	_, err = GeneratePointCloud(seeded(1), PointCloudParams{Count: 3})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestSamplers(t *testing.T) {
	rnd := seeded(13)

	box := UniformBox(Range{-4, 4}, Range{-4, 4}, Range{0, 1}, Range{2, 8})
	for i := 0; i < 200; i++ {
		p, v := box(rnd, i)
		assert.True(t, p.X >= -4 && p.X < 4 && p.Z >= 0 && p.Z < 1)
		assert.True(t, v >= 2 && v < 8)
	}

	centre := Point{1, 2, 3}
	p, v := GaussianCluster(centre, 1)(rnd, 0)
	d := math.Sqrt((p.X-1)*(p.X-1) + (p.Y-2)*(p.Y-2) + (p.Z-3)*(p.Z-3))
	assert.InDelta(t, d, v, 1e-9)

	p, v = Paraboloid(0)(rnd, 0)
	assert.InDelta(t, p.X*p.X+p.Y*p.Y, p.Z, 1e-12)
	assert.Equal(t, p.Z, v)

	helix := DecayingHelix(100, 1.5, 0, 10, 10)
	start, _ := helix(nil, 0)
	assert.InDelta(t, 1.5, start.Y, 1e-12)
	end, val := helix(nil, 99)
	assert.InDelta(t, 1.5*math.Exp(-1)*math.Cos(10), end.Y, 1e-12)
	assert.InDelta(t, math.Sin(10), val, 1e-12)

	last, tval := Spiral(100, 10, 10, 0.1)(nil, 99)
	assert.InDelta(t, 1.0, last.Z, 1e-12)
	assert.Equal(t, 10.0, tval)
}

func TestCategoricalAndHistogram(t *testing.T) {
	c, err := NewCategorical([]string{"a", "b", "c"}, []float64{1, 2, 3}, AxisLabels{Y: "Energy"})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, c.Coords[0])
	assert.Equal(t, "Energy", c.Label(MetaY, ""))

	_, err = NewCategorical([]string{"a"}, []float64{1, 2}, AxisLabels{})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	s, err := NewSeries([]float64{0, 1, 2, 3, 4}, []float64{0, 1, 1, 2, 5}, AxisLabels{Value: "Energy"})
	require.NoError(t, err)
	h, err := s.Histogram(5)
	require.NoError(t, err)
	require.Len(t, h.Values, 5)
	assert.Equal(t, []float64{1, 2, 1, 0, 1}, h.Values)
	assert.Equal(t, "0.50", h.Labels[0])
	assert.Equal(t, "Energy", h.Label(MetaX, ""))
}

func TestHistogramSkipsNonFinite(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
	}{
		{"nan", []float64{1, 2, math.NaN()}},
		{"inf", []float64{1, 2, math.Inf(1)}},
		{"both infinities", []float64{math.Inf(-1), 1, 2, math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := make([]float64, len(tt.values))
			for i := range ts {
				ts[i] = float64(i)
			}
			s, err := NewSeries(ts, tt.values, AxisLabels{})
			require.NoError(t, err)
			var h *Field
			require.NotPanics(t, func() { h, err = s.Histogram(2) })
			require.NoError(t, err)
			assert.Equal(t, []float64{1, 1}, h.Values)
		})
	}

	s, err := NewSeries([]float64{0, 1}, []float64{math.NaN(), math.Inf(1)}, AxisLabels{})
	require.NoError(t, err)
	_, err = s.Histogram(4)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestCumulativeDeviation(t *testing.T) {
	s, err := NewSeries([]float64{0, 1, 2}, []float64{0.6, 0.4, 0.7}, AxisLabels{X: "Time"})
	require.NoError(t, err)
	d, err := s.CumulativeDeviation(0.5)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.1, 0, 0.2}, d.Values, 1e-12)
	assert.Equal(t, s.Coords[0], d.Coords[0])

	g, err := NewGrid([]float64{0, 1}, []float64{0, 1}, []float64{1, 2, 3, 4}, AxisLabels{})
	require.NoError(t, err)
	_, err = g.CumulativeDeviation(0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewGridValidates(t *testing.T) {
	_, err := NewGrid([]float64{0, 1}, []float64{0, 1, 2}, []float64{1, 2, 3}, AxisLabels{})
	assert.ErrorIs(t, err, ErrInvalidParameter)

	g, err := NewGrid([]float64{0, 1, 2}, []float64{0, 1}, []float64{1, 2, 3, 4, 5, 6}, AxisLabels{})
	require.NoError(t, err)
	assert.Equal(t, 6.0, g.At(2, 1))
	lo, hi := g.Range()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 6.0, hi)
}

func TestClone(t *testing.T) {
	f, err := GenerateTopology(seeded(4), DefaultTopology([]int{3, 3}, 1))
	require.NoError(t, err)
	c := f.Clone()
	assert.Equal(t, f, c)
	c.Values[0] = 99
	c.Edges[0].To = 0
	assert.NotEqual(t, 99.0, f.Values[0])
	assert.NotEqual(t, 0, f.Edges[0].To)
}

func TestParamError(t *testing.T) {
	_, err := GenerateGrid(nil, GridParams{Resolution: 1})
	var pe *ParamError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "GenerateGrid", pe.Op)
	assert.Equal(t, "resolution", pe.Param)
	assert.Contains(t, err.Error(), "resolution=1")

	err = Incompatible("ComposeSingle", KindGrid, "isosurface")
	assert.ErrorIs(t, err, ErrIncompatibleRenderMode)
	assert.Contains(t, err.Error(), "grid_scalar")
}
