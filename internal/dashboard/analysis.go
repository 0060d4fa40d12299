package dashboard

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/scene"
	"github.com/san-kum/fieldviz/internal/theme"
)

func probabilitySurface(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	f, err := field.GenerateGrid(rnd, field.GridParams{
		XRange:     field.Range{Min: 1, Max: 11},
		YRange:     field.Range{Min: 0.1, Max: 1},
		Resolution: t.grid(100),
		Formula:    field.ProbabilitySurface,
		Labels: field.AxisLabels{
			X: "Dimensions", Y: "Complexity Parameter",
			Z: "Simulation Probability", Value: "Simulation Probability",
		},
	})
	if err != nil {
		return nil, err
	}
	style := scene.DefaultStyle(scene.Surface)
	style.Opacity = 0.8
	return scene.ComposeSingle(f, scene.Surface, theme.Plasma, th,
		scene.WithTitle("Simulation Probability vs Dimensional Complexity", "Higher Dimensions Show Emergent Patterns"),
		scene.WithStyle(style),
	)
}

func particleSuite(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	n := t.points(1000)
	scatter, err := field.GeneratePointCloud(rnd, field.PointCloudParams{
		Count:   n,
		Sampler: field.GaussianCluster(field.Point{}, 1),
		Planar:  true,
		Labels:  field.AxisLabels{X: "X Coordinate", Y: "Y Coordinate", Value: "Radius"},
	})
	if err != nil {
		return nil, err
	}

	energies := draw(n, distuv.Exponential{Rate: 0.5, Src: rnd})
	energy, err := histogramOf(energies, 50, "Energy Level")
	if err != nil {
		return nil, err
	}

	corr, err := randomMatrix(5, distuv.Uniform{Min: 0, Max: 1, Src: rnd}, "Correlation")
	if err != nil {
		return nil, err
	}
	maskUpper(corr, 0)

	xs := floats.Span(make([]float64, 1000), -3, 3)
	density := make([]float64, len(xs))
	for i, x := range xs {
		density[i] = 0.3*math.Exp(-0.5*(x-1)*(x-1)) + 0.2*math.Exp(-0.5*(x+1)*(x+1))
	}
	pdf, err := field.NewSeries(xs, density, field.AxisLabels{X: "Parameter Value", Y: "Density", Value: "Density"})
	if err != nil {
		return nil, err
	}

	sky := theme.MustParse("#87ceeb")
	red := theme.MustParse("red")
	specs := []scene.PanelSpec{
		{
			Title: "3D Particle Distribution", Field: scatter, Mode: scene.Markers, Scale: theme.Viridis,
			Name: "Particles", Style: &scene.Style{Size: 4, Opacity: 0.6, Symbol: "circle"},
		},
		{Title: "Energy Distribution", Field: energy, Mode: scene.Bar, Color: &sky, Name: "Energy"},
		{Title: "Parameter Correlation Matrix", Field: corr, Mode: scene.Heatmap, Scale: theme.RdBu, Name: "Correlation"},
		{
			Title: "Probability Density Function", Field: pdf, Mode: scene.Lines, Color: &red,
			Name: "Probability Density", Style: &scene.Style{Width: 3, Opacity: 1, Dash: "solid"},
		},
	}
	return scene.ComposeGrid(specs, th,
		scene.WithTitle("Advanced Particle Physics Visualization Suite", "Multi-Dimensional Simulation Analysis"),
	)
}

func probabilityTrends(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	params := field.SeriesParams{
		Duration:   100,
		Samples:    t.samples(1000),
		Components: []field.Component{field.Constant(0.4), field.Sine(0.1, 0.1, 0), field.Cosine(0.05, 0.05, 0)},
		Noise:      field.NoiseGaussian,
		Labels:     field.AxisLabels{X: "Time Steps", Y: "Simulation Probability"},
	}
	expected, err := field.GenerateSeries(nil, params)
	if err != nil {
		return nil, err
	}
	params.NoiseAmplitude = t.seriesNoise(0.02)
	actual, err := field.GenerateSeries(rnd, params)
	if err != nil {
		return nil, err
	}

	beta := distuv.Beta{Alpha: 2, Beta: 5, Src: rnd}
	samples := draw(1000, beta)
	for i := range samples {
		samples[i] = samples[i]*0.8 + 0.1
	}
	dist, err := histogramOf(samples, 50, "Simulation Probability")
	if err != nil {
		return nil, err
	}

	dims, err := field.GeneratePointCloud(rnd, field.PointCloudParams{
		Count: t.points(500),
		Sampler: func(r *rand.Rand, _ int) (field.Point, float64) {
			d := 1 + 10*r.Float64()
			p := 0.3 + 0.05*d + 0.02*math.Pow(d, 1.5) + 0.05*r.NormFloat64()
			return field.Point{X: d, Y: p}, p
		},
		Planar: true,
		Labels: field.AxisLabels{X: "Number of Dimensions", Y: "Simulation Probability", Value: "Simulation Probability"},
	})
	if err != nil {
		return nil, err
	}
	coef, err := polyfit(dims.Coords[0], dims.Coords[1], 2)
	if err != nil {
		return nil, err
	}
	xr := floats.Span(make([]float64, 100), 1, 11)
	yr := make([]float64, len(xr))
	for i, x := range xr {
		yr[i] = polyval(coef, x)
	}
	trend, err := field.NewSeries(xr, yr, field.AxisLabels{Value: "Trend"})
	if err != nil {
		return nil, err
	}

	sensitivity, err := field.GenerateGrid(rnd, field.GridParams{
		XRange:     field.Range{Min: 0.1, Max: 1},
		YRange:     field.Range{Min: 0.1, Max: 1},
		Resolution: 20,
		Formula:    field.Sensitivity,
		Labels:     field.AxisLabels{X: "Parameter 1", Y: "Parameter 2", Value: "Sensitivity"},
	})
	if err != nil {
		return nil, err
	}

	blue, red, orange := theme.MustParse("blue"), theme.MustParse("red"), theme.MustParse("orange")
	specs := []scene.PanelSpec{
		{
			Title: "Real-Time Simulation Probability Trend", Field: actual, Mode: scene.Lines, Color: &blue,
			Name: "Actual Probability",
			Extra: []scene.OverlaySpec{{
				Field: expected, Mode: scene.Lines, Color: &red, Name: "Expected Trend",
				Style: &scene.Style{Width: 2, Opacity: 1, Dash: "dash"},
			}},
		},
		{Title: "Probability Distribution", Field: dist, Mode: scene.Bar, Color: &orange, Name: "Distribution"},
		{
			Title: "Dimension vs Simulation Probability", Field: dims, Mode: scene.Markers, Scale: theme.Viridis,
			Name: "Samples", Style: &scene.Style{Size: 5, Opacity: 0.6, Symbol: "circle"},
			Extra: []scene.OverlaySpec{{Field: trend, Mode: scene.Lines, Color: &red, Name: "Trend Line"}},
		},
		{Title: "Parameter Sensitivity Heatmap", Field: sensitivity, Mode: scene.Heatmap, Scale: theme.RdYlBuReversed, Name: "Sensitivity"},
	}
	return scene.ComposeGrid(specs, th,
		scene.WithTitle("Professional Probability Analysis Dashboard", "Advanced ML Simulation Metrics"),
	)
}

func particleCloud(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	f, err := field.GeneratePointCloud(rnd, field.PointCloudParams{
		Count:   t.points(2000),
		Sampler: field.SphereShell(2, 0.5),
		Labels: field.AxisLabels{
			X: "X Coordinate", Y: "Y Coordinate", Z: "Z Coordinate", Value: "Distance from Origin",
		},
	})
	if err != nil {
		return nil, err
	}
	style := scene.DefaultStyle(scene.Markers)
	style.Size = 5
	return scene.ComposeSingle(f, scene.Markers, theme.Viridis, th,
		scene.WithTitle("Advanced 3D Particle Distribution", "Higher-Dimensional Physics Simulation"),
		scene.WithTraceName("Particles"),
		scene.WithStyle(style),
		scene.WithCamera(field.Point{X: 1.5, Y: 1.5, Z: 1.5}),
	)
}

var correlationColumns = []string{
	"Dimension_Count", "Complexity", "Quantization", "Symmetry",
	"Probability", "Entropy", "Information", "Energy",
}

func correlationMatrix(rnd *rand.Rand, th theme.Config, _ Tuning) (*scene.Scene, error) {
	n := len(correlationColumns)
	f, err := randomMatrix(n, distuv.Uniform{Min: 0, Max: 0.5, Src: rnd}, "Correlation Coefficient")
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		f.Values[i*n+i] = 1
	}
	for _, c := range []struct {
		a, b int
		v    float64
	}{{0, 4, 0.6}, {2, 4, 0.7}, {3, 4, 0.5}, {6, 4, 0.8}} {
		f.Values[c.a*n+c.b] = c.v
		f.Values[c.b*n+c.a] = c.v
	}
	maskUpper(f, 1)
	f.Labels = append([]string(nil), correlationColumns...)
	if err := f.Validate(); err != nil {
		return nil, err
	}

	style := scene.DefaultStyle(scene.Heatmap)
	style.ShowLabels = true
	return scene.ComposeSingle(f, scene.Heatmap, theme.RdBu, th,
		scene.WithTitle("Advanced Physics Parameters Correlation Matrix", "Multi-Dimensional Simulation Analysis"),
		scene.WithTraceName("Correlation"),
		scene.WithAxisTitles("", "", ""),
		scene.WithStyle(style),
	)
}

// maskUpper blanks cells on or above diagonal k (row j, column i with
// i-j >= k) so renderers leave them empty.
func maskUpper(f *field.Field, k int) {
	n := len(f.Coords[0])
	for j := range f.Coords[1] {
		for i := 0; i < n; i++ {
			if i-j >= k {
				f.Values[j*n+i] = math.NaN()
			}
		}
	}
}

func histogramOf(values []float64, bins int, label string) (*field.Field, error) {
	idx := make([]float64, len(values))
	for i := range idx {
		idx[i] = float64(i)
	}
	s, err := field.NewSeries(idx, values, field.AxisLabels{Value: label})
	if err != nil {
		return nil, err
	}
	return s.Histogram(bins)
}

// polyfit returns least-squares coefficients c[0] + c[1]x + ... + c[deg]x^deg.
// The degree drops to len(xs)-1 when there are too few samples.
func polyfit(xs, ys []float64, deg int) ([]float64, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("polyfit: no samples: %w", field.ErrInvalidParameter)
	}
	deg = min(deg, len(xs)-1)
	a := mat.NewDense(len(xs), deg+1, nil)
	for i, x := range xs {
		p := 1.0
		for j := 0; j <= deg; j++ {
			a.Set(i, j, p)
			p *= x
		}
	}
	var c mat.VecDense
	if err := c.SolveVec(a, mat.NewVecDense(len(ys), append([]float64(nil), ys...))); err != nil {
		return nil, err
	}
	return c.RawVector().Data, nil
}

func polyval(c []float64, x float64) float64 {
	y := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		y = y*x + c[i]
	}
	return y
}
