package dashboard

import (
	"fmt"
	"math"

	"github.com/san-kum/fieldviz/internal/field"
)

// Tuning overrides the sizes and noise levels baked into each dashboard.
// Zero values keep the dashboard's own defaults.
type Tuning struct {
	GridResolution   int
	VolumeResolution int
	SeriesSamples    int
	PointCount       int

	// GridNoise and SeriesNoise scale the default noise levels. A negative
	// value disables noise.
	GridNoise   float64
	SeriesNoise float64

	LayerSizes            []int
	ConnectionProbability *float64
	EdgePolicy            field.EdgePolicy
}

// Validate rejects values that no dashboard could use.
func (t Tuning) Validate() error {
	bad := func(name string, v any) error {
		return &field.ParamError{Op: "Tuning", Param: name, Value: v, Detail: "out of range", Err: field.ErrInvalidParameter}
	}
	if t.GridResolution < 0 || t.GridResolution == 1 {
		return bad("grid_resolution", t.GridResolution)
	}
	if t.VolumeResolution < 0 || t.VolumeResolution == 1 {
		return bad("volume_resolution", t.VolumeResolution)
	}
	if t.SeriesSamples < 0 || t.SeriesSamples == 1 {
		return bad("series_samples", t.SeriesSamples)
	}
	if t.PointCount < 0 {
		return bad("point_count", t.PointCount)
	}
	if math.IsNaN(t.GridNoise) || math.IsNaN(t.SeriesNoise) {
		return bad("noise", math.NaN())
	}
	if p := t.ConnectionProbability; p != nil && (math.IsNaN(*p) || *p < 0 || *p > 1) {
		return bad("connection_probability", *p)
	}
	for i, n := range t.LayerSizes {
		if n <= 0 {
			return bad(fmt.Sprintf("layer_sizes[%d]", i), n)
		}
	}
	return nil
}

func pick(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

func (t Tuning) grid(def int) int    { return pick(t.GridResolution, def) }
func (t Tuning) volume(def int) int  { return pick(t.VolumeResolution, def) }
func (t Tuning) samples(def int) int { return pick(t.SeriesSamples, def) }
func (t Tuning) points(def int) int  { return pick(t.PointCount, def) }

func scaleNoise(factor, def float64) float64 {
	switch {
	case factor < 0:
		return 0
	case factor == 0:
		return def
	}
	return factor * def
}

func (t Tuning) gridNoise(def float64) float64   { return scaleNoise(t.GridNoise, def) }
func (t Tuning) seriesNoise(def float64) float64 { return scaleNoise(t.SeriesNoise, def) }

func (t Tuning) layers(def []int) []int {
	if len(t.LayerSizes) > 0 {
		return append([]int(nil), t.LayerSizes...)
	}
	return def
}

func (t Tuning) probability(def float64) float64 {
	if t.ConnectionProbability != nil {
		return *t.ConnectionProbability
	}
	return def
}
