package scene_test

import (
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/scene"
	"github.com/san-kum/fieldviz/internal/theme"
)

func mustField(f *field.Field, err error) *field.Field {
	Expect(err).NotTo(HaveOccurred())
	return f
}

var _ = Describe("Compatible", func() {
	DescribeTable("render modes per field kind",
		func(kind field.Kind, mode scene.RenderMode, want bool) {
			Expect(scene.Compatible(kind, mode)).To(Equal(want))
		},
		Entry("markers on a cloud", field.KindCloud, scene.Markers, true),
		Entry("lines on a series", field.KindSeries, scene.Lines, true),
		Entry("markers+lines on a topology", field.KindTopology, scene.MarkersLines, true),
		Entry("surface on a grid", field.KindGrid, scene.Surface, true),
		Entry("contour on a grid", field.KindGrid, scene.Contour, true),
		Entry("heatmap on a grid", field.KindGrid, scene.Heatmap, true),
		Entry("isosurface on a volume", field.KindVolume, scene.Isosurface, true),
		Entry("bar on a series", field.KindSeries, scene.Bar, true),
		Entry("isosurface on a grid", field.KindGrid, scene.Isosurface, false),
		Entry("surface on a cloud", field.KindCloud, scene.Surface, false),
		Entry("markers on a grid", field.KindGrid, scene.Markers, false),
		Entry("bar on a cloud", field.KindCloud, scene.Bar, false),
		Entry("unknown mode", field.KindSeries, scene.RenderMode("violin"), false),
	)
})

var _ = Describe("ParseMode", func() {
	It("accepts every mode and the reversed markers spelling", func() {
		for _, m := range scene.Modes {
			got, err := scene.ParseMode(string(m))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(m))
		}
		got, err := scene.ParseMode("lines+markers")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(Equal(scene.MarkersLines))
	})

	It("rejects unknown modes", func() {
		_, err := scene.ParseMode("violin")
		Expect(err).To(MatchError(field.ErrInvalidParameter))
	})
})

var _ = Describe("DefaultStyle", func() {
	It("documents the per-mode defaults", func() {
		Expect(scene.DefaultStyle(scene.Markers).Size).To(Equal(6.0))
		Expect(scene.DefaultStyle(scene.Markers).Opacity).To(Equal(0.8))
		Expect(scene.DefaultStyle(scene.Lines).Width).To(Equal(2.0))
		Expect(scene.DefaultStyle(scene.Isosurface).Opacity).To(Equal(0.6))
		Expect(scene.DefaultStyle(scene.Isosurface).SurfaceCount).To(Equal(5))
		Expect(scene.DefaultStyle(scene.Contour).ContourLevels).To(Equal(12))
		Expect(scene.DefaultStyle(scene.Bar).Opacity).To(Equal(0.9))
	})
})

var _ = Describe("GridShape", func() {
	DescribeTable("uses ceil(sqrt(n)) columns",
		func(n, rows, cols int) {
			r, c := scene.GridShape(n)
			Expect([]int{r, c}).To(Equal([]int{rows, cols}))
		},
		Entry("one", 1, 1, 1),
		Entry("two", 2, 1, 2),
		Entry("three", 3, 2, 2),
		Entry("four", 4, 2, 2),
		Entry("five", 5, 2, 3),
		Entry("nine", 9, 3, 3),
		Entry("ten", 10, 3, 4),
		Entry("thirty-six", 36, 6, 6),
	)
})

var _ = Describe("Composition", func() {
	var (
		th       theme.Config
		rnd      *rand.Rand
		grid     *field.Field
		volume   *field.Field
		series   *field.Field
		cloud3D  *field.Field
		cloud2D  *field.Field
		topology *field.Field
	)

	BeforeEach(func() {
		th = theme.Default()
		rnd = rand.New(rand.NewPCG(1, 2))
		grid = mustField(field.GenerateGrid(nil, field.GridParams{
			XRange: field.Range{Min: -5, Max: 5}, YRange: field.Range{Min: -5, Max: 5},
			Resolution: 100, Formula: field.Superposition,
			Labels: field.AxisLabels{X: "Position X", Y: "Position Y", Value: "Probability"},
		}))
		volume = mustField(field.GenerateVolume(nil, field.VolumeParams{
			Bounds:     [3]field.Range{{Min: -2, Max: 2}, {Min: -2, Max: 2}, {Min: -2, Max: 2}},
			Resolution: 10, Formula: field.QuantumField,
		}))
		series = mustField(field.GenerateSeries(rnd, field.SeriesParams{
			Duration: 100, Samples: 200,
			Components:     []field.Component{field.Sine(0.2, 0.1, 0), field.Constant(0.5)},
			NoiseAmplitude: 0.05,
		}))
		cloud3D = mustField(field.GeneratePointCloud(rnd, field.PointCloudParams{Count: 50, Sampler: field.SphereShell(2, 0.5)}))
		cloud2D = mustField(field.GeneratePointCloud(rnd, field.PointCloudParams{Count: 50, Sampler: field.SphereShell(2, 0.5), Planar: true}))
		topology = mustField(field.GenerateTopology(rnd, field.DefaultTopology([]int{5, 5}, 1)))
	})

	Describe("ComposeSingle", func() {
		It("wraps one contour trace over the full grid", func() {
			s, err := scene.ComposeSingle(grid, scene.Contour, theme.Plasma, th)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Rows).To(Equal(1))
			Expect(s.Cols).To(Equal(1))
			Expect(s.Panels).To(HaveLen(1))

			p := s.Panels[0]
			Expect(p.Projection).To(Equal(scene.Projection2D))
			Expect(p.Traces).To(HaveLen(1))
			tr := p.Traces[0]
			Expect(tr.Mode).To(Equal(scene.Contour))
			Expect(tr.Field.Values).To(HaveLen(10000))
			Expect(tr.Field.At(37, 62)).To(Equal(field.Superposition(tr.Field.Coords[0][37], tr.Field.Coords[1][62])))
			Expect(tr.Color.ByValue).To(BeTrue())
			Expect(tr.Color.Scale.Name).To(Equal("Plasma"))
			Expect(tr.Color.ShowScale).To(BeTrue())
			Expect(p.Axes.X).To(Equal("Position X"))
			Expect(s.Validate()).To(Succeed())
		})

		It("falls back to the theme scale", func() {
			s, err := scene.ComposeSingle(grid, scene.Heatmap, theme.ColorScale{}, th)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Panels[0].Traces[0].Color.Scale.Name).To(Equal(th.Scale.Name))
		})

		It("rejects an isosurface over a grid", func() {
			s, err := scene.ComposeSingle(grid, scene.Isosurface, theme.Viridis, th)
			Expect(s).To(BeNil())
			Expect(err).To(MatchError(field.ErrIncompatibleRenderMode))
		})

		It("rejects a nil field", func() {
			_, err := scene.ComposeSingle(nil, scene.Markers, theme.Viridis, th)
			Expect(err).To(MatchError(field.ErrInvalidParameter))
		})

		It("rejects an unusable theme", func() {
			bad := th
			bad.Width = 0
			_, err := scene.ComposeSingle(grid, scene.Contour, theme.Viridis, bad)
			Expect(err).To(MatchError(field.ErrInvalidParameter))
		})

		It("places 3D clouds on 3D panels with the requested camera", func() {
			eye := field.Point{X: 1.5, Y: 1.5, Z: 1.5}
			s, err := scene.ComposeSingle(cloud3D, scene.Markers, theme.Viridis, th,
				scene.WithCamera(eye), scene.WithTitle("Cloud", "sub"), scene.WithTraceName("Particles"))
			Expect(err).NotTo(HaveOccurred())
			p := s.Panels[0]
			Expect(p.Projection).To(Equal(scene.Projection3D))
			Expect(p.View().Eye).To(Equal(eye))
			Expect(p.Traces[0].Name).To(Equal("Particles"))
			Expect(s.Title).To(Equal("Cloud"))
			Expect(s.Subtitle).To(Equal("sub"))
			Expect(s.ShowLegend).To(BeFalse())
		})

		It("ignores the camera on 2D panels", func() {
			s, err := scene.ComposeSingle(cloud2D, scene.Markers, theme.Viridis, th, scene.WithCamera(field.Point{X: 3}))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Panels[0].Camera).To(BeNil())
			Expect(s.Panels[0].View()).To(Equal(scene.DefaultCamera))
		})

		It("fills the isosurface range from the field", func() {
			s, err := scene.ComposeSingle(volume, scene.Isosurface, theme.Quantum, th)
			Expect(err).NotTo(HaveOccurred())
			lo, hi := volume.Range()
			st := s.Panels[0].Traces[0].Style
			Expect(st.IsoMin).To(Equal(lo))
			Expect(st.IsoMax).To(Equal(hi))
			Expect(st.SurfaceCount).To(Equal(5))
			Expect(s.Panels[0].Projection).To(Equal(scene.Projection3D))
		})

		It("applies style and axis overrides", func() {
			st := scene.Style{Size: 10, Opacity: 0.5, Symbol: "diamond"}
			s, err := scene.ComposeSingle(topology, scene.Markers, theme.Cyberpunk, th,
				scene.WithStyle(st), scene.WithAxisTitles("a", "b", "c"))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Panels[0].Traces[0].Style).To(Equal(st))
			Expect(s.Panels[0].Axes).To(Equal(scene.AxisTitles{X: "a", Y: "b", Z: "c"}))
		})

		It("rejects an invalid style", func() {
			_, err := scene.ComposeSingle(series, scene.Lines, theme.Viridis, th, scene.WithStyle(scene.Style{Opacity: 2}))
			Expect(err).To(MatchError(field.ErrInvalidParameter))
		})

		It("defaults series axes to time and value", func() {
			s, err := scene.ComposeSingle(series, scene.Lines, theme.Viridis, th)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Panels[0].Axes.X).To(Equal("Time"))
			Expect(s.Panels[0].Projection).To(Equal(scene.Projection2D))
		})
	})

	Describe("ComposeOverlay", func() {
		It("draws the primary trace first and overlays in order", func() {
			white := theme.MustParse("rgba(255, 255, 255, 0.7)")
			overlays := []scene.OverlaySpec{
				{Field: cloud2D, Mode: scene.Markers, Color: &white, Name: "Stream 1"},
				{Field: cloud2D, Mode: scene.Markers, Color: &white, Name: "Stream 2"},
			}
			s, err := scene.ComposeOverlay(grid, scene.Contour, theme.Holographic, th, overlays)
			Expect(err).NotTo(HaveOccurred())
			tr := s.Panels[0].Traces
			Expect(tr).To(HaveLen(3))
			Expect(tr[0].Mode).To(Equal(scene.Contour))
			Expect(tr[1].Name).To(Equal("Stream 1"))
			Expect(tr[2].Name).To(Equal("Stream 2"))
			Expect(tr[1].Color.ByValue).To(BeFalse())
			Expect(tr[1].Color.Solid.CSS()).To(Equal("rgba(255, 255, 255, 0.7)"))
			Expect(s.ShowLegend).To(BeTrue())
		})

		It("rejects an overlay with the wrong projection", func() {
			_, err := scene.ComposeOverlay(grid, scene.Contour, theme.Holographic, th,
				[]scene.OverlaySpec{{Field: cloud3D, Mode: scene.Markers}})
			Expect(err).To(MatchError(field.ErrIncompatibleRenderMode))
		})

		It("rejects an overlay incompatible with its own field", func() {
			_, err := scene.ComposeOverlay(volume, scene.Isosurface, theme.Quantum, th,
				[]scene.OverlaySpec{{Field: grid, Mode: scene.Markers}})
			Expect(err).To(MatchError(field.ErrIncompatibleRenderMode))
			Expect(err.Error()).To(ContainSubstring("overlay 0"))
		})

		It("lets the legend be forced off", func() {
			s, err := scene.ComposeOverlay(volume, scene.Isosurface, theme.Quantum, th,
				[]scene.OverlaySpec{{Field: cloud3D, Mode: scene.Lines}}, scene.WithLegend(false))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.ShowLegend).To(BeFalse())
			Expect(s.Validate()).To(Succeed())
		})
	})

	Describe("ComposeGrid", func() {
		specsOf := func(n int) []scene.PanelSpec {
			specs := make([]scene.PanelSpec, n)
			for i := range specs {
				specs[i] = scene.PanelSpec{Field: series, Mode: scene.Lines}
			}
			return specs
		}

		It("lays out panels row-major on a ceil(sqrt) grid", func() {
			specs := []scene.PanelSpec{
				{Title: "Flow", Field: cloud3D, Mode: scene.Lines},
				{Title: "Correlation", Field: grid, Mode: scene.Heatmap},
				{Title: "Probability", Field: series, Mode: scene.MarkersLines},
				{Title: "Surface", Field: grid, Mode: scene.Surface},
				{Title: "Energy", Field: series, Mode: scene.Bar},
			}
			s, err := scene.ComposeGrid(specs, th, scene.WithTitle("Matrix", ""))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Rows).To(Equal(2))
			Expect(s.Cols).To(Equal(3))
			Expect(s.Panels).To(HaveLen(5))
			for i, p := range s.Panels {
				Expect(p.Title).To(Equal(specs[i].Title))
				Expect(p.Row).To(Equal(i / 3))
				Expect(p.Col).To(Equal(i % 3))
			}
			Expect(s.Panels[0].Projection).To(Equal(scene.Projection3D))
			Expect(s.Panels[1].Projection).To(Equal(scene.Projection2D))
			Expect(s.Panels[3].Projection).To(Equal(scene.Projection3D))
			Expect(s.Validate()).To(Succeed())
		})

		It("is all or nothing", func() {
			specs := specsOf(4)
			specs[2] = scene.PanelSpec{Field: grid, Mode: scene.Isosurface}
			s, err := scene.ComposeGrid(specs, th)
			Expect(s).To(BeNil())
			Expect(err).To(MatchError(field.ErrIncompatibleRenderMode))
			Expect(err.Error()).To(ContainSubstring("panel 2"))
		})

		It("stacks extra traces on a panel", func() {
			dev := mustField(series.CumulativeDeviation(0.5))
			specs := []scene.PanelSpec{{
				Field: series, Mode: scene.Lines,
				Extra: []scene.OverlaySpec{{Field: dev, Mode: scene.Lines, Name: "Deviation"}},
			}}
			s, err := scene.ComposeGrid(specs, th)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Panels[0].Traces).To(HaveLen(2))
			Expect(s.ShowLegend).To(BeTrue())
		})

		It("rejects an empty request", func() {
			_, err := scene.ComposeGrid(nil, th)
			Expect(err).To(MatchError(field.ErrInvalidParameter))
		})

		It("rejects more panels than the ceiling", func() {
			_, err := scene.ComposeGrid(specsOf(scene.MaxPanels+1), th)
			Expect(err).To(MatchError(field.ErrResourceLimit))
		})

		It("accepts exactly the ceiling", func() {
			s, err := scene.ComposeGrid(specsOf(scene.MaxPanels), th)
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Rows * s.Cols).To(BeNumerically(">=", scene.MaxPanels))
		})

		It("does not share the theme palette with the caller", func() {
			s, err := scene.ComposeGrid(specsOf(1), th)
			Expect(err).NotTo(HaveOccurred())
			th.Palette[0] = theme.MustParse("black")
			Expect(s.Theme.Palette[0].CSS()).NotTo(Equal("#000000"))
		})
	})

	Describe("Validate", func() {
		It("catches a trace on the wrong projection", func() {
			s, err := scene.ComposeSingle(cloud2D, scene.Markers, theme.Viridis, th)
			Expect(err).NotTo(HaveOccurred())
			s.Panels[0].Projection = scene.Projection3D
			Expect(s.Validate()).To(MatchError(field.ErrIncompatibleRenderMode))
		})

		It("catches panels outside the grid", func() {
			s, err := scene.ComposeSingle(cloud2D, scene.Markers, theme.Viridis, th)
			Expect(err).NotTo(HaveOccurred())
			s.Panels[0].Col = 1
			Expect(s.Validate()).To(MatchError(field.ErrInvalidParameter))
		})
	})
})
