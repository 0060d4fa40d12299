package dashboard

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/scene"
	"github.com/san-kum/fieldviz/internal/theme"
)

func neuralMatrix(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	p := field.DefaultTopology(t.layers([]int{50, 60, 70, 60, 50}), t.probability(0.15))
	p.Policy = t.EdgePolicy
	f, err := field.GenerateTopology(rnd, p)
	if err != nil {
		return nil, err
	}

	style := scene.DefaultStyle(scene.Markers)
	style.Size = 8
	return scene.ComposeSingle(f, scene.Markers, theme.Cyberpunk, th,
		scene.WithTitle("CYBERPUNK NEURAL NETWORK SIMULATION MATRIX", "Advanced Multi-Dimensional Probability Architecture"),
		scene.WithTraceName("Neurons"),
		scene.WithStyle(style),
		scene.WithCamera(field.Point{X: 1.5, Y: 1.5, Z: 1.5}),
	)
}

func holographic(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	bounds := field.Range{Min: -4, Max: 4}
	f, err := field.GenerateGrid(rnd, field.GridParams{
		XRange:     bounds,
		YRange:     bounds,
		Resolution: t.grid(100),
		Formula:    field.Holographic,
		NoiseSigma: t.gridNoise(0.03),
		Labels:     field.AxisLabels{X: "Dimension X", Y: "Dimension Y", Value: "Field Intensity"},
	})
	if err != nil {
		return nil, err
	}

	white := theme.MustParse("rgba(255, 255, 255, 0.7)")
	dot := scene.Style{Size: 5, Opacity: 0.6, Symbol: "diamond"}
	streams := make([]scene.OverlaySpec, 10)
	for i := range streams {
		c, err := field.GeneratePointCloud(rnd, field.PointCloudParams{
			Count:   50,
			Sampler: field.UniformBox(bounds, bounds, field.Range{}, field.Range{Min: 2, Max: 8}),
			Planar:  true,
			Labels:  field.AxisLabels{Value: "Particle Size"},
		})
		if err != nil {
			return nil, err
		}
		streams[i] = scene.OverlaySpec{
			Field: c,
			Mode:  scene.Markers,
			Color: &white,
			Name:  fmt.Sprintf("Particle Stream %d", i+1),
			Style: &dot,
		}
	}

	return scene.ComposeOverlay(f, scene.Contour, theme.Holographic, th, streams,
		scene.WithTitle("HOLOGRAPHIC DIMENSIONAL REALITY FIELD", "Advanced Multi-Dimensional Simulation Interface"),
		scene.WithTraceName("Holographic Field"),
	)
}

func quantumField(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	b := field.Range{Min: -3, Max: 3}
	v, err := field.GenerateVolume(rnd, field.VolumeParams{
		Bounds:     [3]field.Range{b, b, b},
		Resolution: t.volume(50),
		Formula:    field.QuantumField,
		Labels:     field.AxisLabels{X: "Quantum X", Y: "Quantum Y", Z: "Quantum Z", Value: "Field Amplitude"},
	})
	if err != nil {
		return nil, err
	}

	iso := scene.DefaultStyle(scene.Isosurface)
	iso.IsoMin, iso.IsoMax = 0.1, 0.5

	path := scene.Style{Size: 4, Width: 3, Opacity: 0.9, Symbol: "circle", Dash: "solid"}
	particles := make([]scene.OverlaySpec, 5)
	for i := range particles {
		c, err := field.GeneratePointCloud(rnd, field.PointCloudParams{
			Count:   100,
			Sampler: field.DecayingHelix(100, 1.5, float64(i), 10, 10),
		})
		if err != nil {
			return nil, err
		}
		particles[i] = scene.OverlaySpec{
			Field: c,
			Mode:  scene.MarkersLines,
			Scale: theme.Plasma,
			Name:  fmt.Sprintf("Quantum Particle %d", i+1),
			Style: &path,
		}
	}

	return scene.ComposeOverlay(v, scene.Isosurface, theme.Quantum, th, particles,
		scene.WithTitle("QUANTUM SIMULATION FIELD DYNAMICS", "Multi-Dimensional Probability Wave Functions"),
		scene.WithTraceName("Quantum Field"),
		scene.WithStyle(iso),
	)
}

func realityTracker(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error) {
	n := t.samples(1000)
	gen := func(noise float64, comps ...field.Component) (*field.Field, error) {
		return field.GenerateSeries(rnd, field.SeriesParams{
			Duration:       100,
			Samples:        n,
			Components:     comps,
			NoiseAmplitude: t.seriesNoise(noise),
			Labels:         field.AxisLabels{X: "Time", Y: "Level"},
		})
	}

	prob, err := gen(0.05,
		field.Constant(0.5),
		field.Sine(0.2, 0.1, 0),
		field.Cosine(0.15, 0.05, 0),
		field.DampedSine(0.1, 0.3, 100),
	)
	if err != nil {
		return nil, err
	}
	stability, err := gen(0.05, field.Constant(0.8), field.Sine(0.15, 0.08, 0))
	if err != nil {
		return nil, err
	}
	coherence, err := gen(0.1, field.Constant(0.7), field.Cosine(0.2, 0.06, 0))
	if err != nil {
		return nil, err
	}
	signature, err := gen(0.1, field.Constant(0.6), field.Sine(0.25, 0.07, math.Pi/4), field.Cosine(0.15, 0.12, 0))
	if err != nil {
		return nil, err
	}
	deviation, err := prob.CumulativeDeviation(0.5)
	if err != nil {
		return nil, err
	}

	line := func(w float64, dash string) *scene.Style {
		return &scene.Style{Width: w, Opacity: 1, Dash: dash}
	}
	solid := func(name string) *theme.Color {
		c := theme.MustParse(name)
		return &c
	}

	specs := []scene.PanelSpec{
		{
			Title: "Real-Time Probability", Field: prob, Mode: scene.Lines,
			Name: "Simulation Probability", Color: solid("cyan"), Style: line(3, "solid"),
			Extra: []scene.OverlaySpec{{
				Field: stability, Mode: scene.Lines,
				Name: "Dimensional Stability", Color: solid("magenta"), Style: line(3, "solid"),
			}},
		},
		{
			Title: "Quantum Coherence", Field: coherence, Mode: scene.MarkersLines,
			Name: "Quantum Coherence", Color: solid("yellow"),
			Style: &scene.Style{Size: 3, Width: 2, Opacity: 1, Symbol: "circle", Dash: "solid"},
		},
		{
			Title: "Reality Signature", Field: signature, Mode: scene.Lines,
			Name: "Reality Signature", Color: solid("lime"), Style: line(3, "solid"),
		},
		{
			Title: "Cumulative Deviation", Field: deviation, Mode: scene.Lines,
			Name: "Cumulative Deviation", Color: solid("red"), Style: line(2, "dash"),
		},
	}
	return scene.ComposeGrid(specs, th,
		scene.WithTitle("REAL-TIME REALITY SIGNATURE TRACKER", "Advanced Simulation Detection System"),
		scene.WithLegend(true),
	)
}
