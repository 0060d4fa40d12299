package dashboard

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/scene"
	"github.com/san-kum/fieldviz/internal/theme"
)

func neuralMap(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	p := field.DefaultTopology(t.layers([]int{20, 30, 40, 50, 60, 50, 40, 30, 20, 10}), t.probability(0.3))
	p.Layout = field.LayoutColumn
	p.LayerSpacing = 2
	p.Lift = false
	p.Policy = t.EdgePolicy
	f, err := field.GenerateTopology(rnd, p)
	if err != nil {
		return nil, err
	}

	style := scene.DefaultStyle(scene.Markers)
	style.Size = 10
	return scene.ComposeSingle(f, scene.Markers, theme.Viridis, th,
		scene.WithTitle("Neural Network Simulation Probability Map", "Multi-Layer Reality Detection Architecture"),
		scene.WithTraceName("Neurons"),
		scene.WithAxisTitles("Network Layer", "Neuron Position", ""),
		scene.WithStyle(style),
	)
}

func superposition(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	b := field.Range{Min: -5, Max: 5}
	f, err := field.GenerateGrid(rnd, field.GridParams{
		XRange:     b,
		YRange:     b,
		Resolution: t.grid(200),
		Formula:    field.Superposition,
		Labels:     field.AxisLabels{X: "Position X", Y: "Position Y", Value: "Probability Density"},
	})
	if err != nil {
		return nil, err
	}

	style := scene.DefaultStyle(scene.Contour)
	style.ShowLabels = true
	return scene.ComposeSingle(f, scene.Contour, theme.Plasma, th,
		scene.WithTitle("Quantum Superposition Probability States", "Wave Function Interference Pattern"),
		scene.WithTraceName("Probability Density"),
		scene.WithStyle(style),
	)
}

func dimensionalMatrix(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	flow, err := field.GeneratePointCloud(rnd, field.PointCloudParams{
		Count:   100,
		Sampler: field.Spiral(100, 10, 10, 0.1),
		Labels:  field.AxisLabels{Value: "Phase"},
	})
	if err != nil {
		return nil, err
	}

	corr, err := randomMatrix(10, distuv.Uniform{Min: 0, Max: 1, Src: rnd}, "Correlation")
	if err != nil {
		return nil, err
	}
	for i := 0; i < 10; i++ {
		corr.Values[i*10+i] = 1
	}

	xs := floats.Span(make([]float64, 100), 1, 11)
	probVals := make([]float64, len(xs))
	for i, x := range xs {
		probVals[i] = 0.2 + 0.3*math.Sin(0.5*x) + 0.2*math.Exp(-(x-5)*(x-5)/10)
	}
	prob, err := field.NewSeries(xs, probVals, field.AxisLabels{X: "Dimensions", Value: "Probability"})
	if err != nil {
		return nil, err
	}

	temporal, err := field.GenerateSeries(rnd, field.SeriesParams{
		Duration:       100,
		Samples:        t.samples(1000),
		Components:     []field.Component{field.DampedSine(1, 0.1, 100)},
		NoiseAmplitude: t.seriesNoise(0.1),
		Noise:          field.NoiseGaussian,
		Labels:         field.AxisLabels{X: "Time", Value: "Signal"},
	})
	if err != nil {
		return nil, err
	}

	levels := make([]string, 10)
	for i := range levels {
		levels[i] = fmt.Sprintf("Level %d", i+1)
	}
	energy, err := field.NewCategorical(levels, []float64{10, 25, 40, 30, 50, 45, 35, 20, 15, 25}, field.AxisLabels{Value: "Energy"})
	if err != nil {
		return nil, err
	}

	pattern, err := field.GeneratePointCloud(rnd, field.PointCloudParams{
		Count:   t.points(200),
		Sampler: field.Paraboloid(0.5),
		Labels:  field.AxisLabels{Value: "Pattern"},
	})
	if err != nil {
		return nil, err
	}

	entropy, err := randomMatrix(10, distuv.Exponential{Rate: 0.5, Src: rnd}, "Entropy")
	if err != nil {
		return nil, err
	}

	sig := draw(100, distuv.Gamma{Alpha: 2, Beta: 0.5, Src: rnd})
	signature, err := field.NewSeries(floats.Span(make([]float64, 100), 0, 99), sig, field.AxisLabels{X: "Index", Value: "Signature"})
	if err != nil {
		return nil, err
	}

	b := field.Range{Min: -2, Max: 2}
	surface, err := field.GenerateGrid(rnd, field.GridParams{
		XRange:     b,
		YRange:     b,
		Resolution: 50,
		Formula:    field.RippleSurface,
		Labels:     field.AxisLabels{Value: "Reality"},
	})
	if err != nil {
		return nil, err
	}

	specs := []scene.PanelSpec{
		{Title: "3D Dimensional Flow", Field: flow, Mode: scene.Lines, Name: "Dim Flow"},
		{Title: "Multi-Dimensional Correlation", Field: corr, Mode: scene.Heatmap, Scale: theme.Viridis, Name: "Correlation"},
		{Title: "Probability Matrix", Field: prob, Mode: scene.MarkersLines, Name: "Probability"},
		{Title: "Temporal Analysis", Field: temporal, Mode: scene.Lines, Name: "Temporal"},
		{Title: "Energy Distribution", Field: energy, Mode: scene.Bar, Name: "Energy"},
		{Title: "Pattern Recognition", Field: pattern, Mode: scene.Markers, Name: "Pattern"},
		{Title: "Information Entropy", Field: entropy, Mode: scene.Heatmap, Scale: theme.Plasma, Name: "Entropy"},
		{Title: "Reality Signature", Field: signature, Mode: scene.MarkersLines, Name: "Signature"},
		{Title: "Reality Surface", Field: surface, Mode: scene.Surface, Scale: theme.RdBu, Name: "Reality"},
	}
	return scene.ComposeGrid(specs, th,
		scene.WithTitle("Futuristic Multi-Dimensional Reality Analysis Dashboard", "Advanced Simulation Detection Matrix"),
	)
}

func probabilityLandscape(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	b := field.Range{Min: -3, Max: 3}
	f, err := field.GenerateGrid(rnd, field.GridParams{
		XRange:     b,
		YRange:     b,
		Resolution: t.grid(100),
		Formula:    field.Landscape,
		NoiseSigma: t.gridNoise(0.005),
		Labels:     field.AxisLabels{X: "Parameter X", Y: "Parameter Y", Z: "Probability Density", Value: "Probability Density"},
	})
	if err != nil {
		return nil, err
	}
	return scene.ComposeSingle(f, scene.Surface, theme.Jet, th,
		scene.WithTitle("Advanced Probability Landscape Analysis", "Futuristic Multi-Modal Simulation Probability Distribution"),
		scene.WithTraceName("Probability Landscape"),
		scene.WithCamera(field.Point{X: 1.8, Y: 1.8, Z: 1.2}),
	)
}

// randomMatrix fills an n by n grid over positions 0..n-1 from d.
func randomMatrix(n int, d distuv.Rander, value string) (*field.Field, error) {
	pos := floats.Span(make([]float64, n), 0, float64(n-1))
	return field.NewGrid(pos, pos, draw(n*n, d), field.AxisLabels{Value: value})
}

func draw(n int, d distuv.Rander) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = d.Rand()
	}
	return out
}
