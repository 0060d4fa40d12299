package field

import (
	"math"
	"math/rand/v2"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Component is one additive term of a time series.
type Component func(t float64) float64

// NoiseKind selects the per-sample noise model of a series.
type NoiseKind int

const (
	// NoiseUniform adds amplitude * U[0, 1) to every sample.
	NoiseUniform NoiseKind = iota
	// NoiseGaussian adds N(0, amplitude) to every sample.
	NoiseGaussian
)

// SeriesParams configures GenerateSeries.
type SeriesParams struct {
	Duration       float64
	Samples        int
	Components     []Component
	NoiseAmplitude float64
	Noise          NoiseKind
	Labels         AxisLabels
}

// GenerateSeries sums Components on Samples evenly spaced instants over
// [0, Duration] and adds independent noise per sample.
func GenerateSeries(rnd *rand.Rand, p SeriesParams) (*Field, error) {
	const op = "GenerateSeries"

	if p.Samples < 2 {
		return nil, invalid(op, "samples", p.Samples, "must be at least 2")
	}
	if p.Samples > MaxSeriesSamples {
		return nil, tooLarge(op, "samples", p.Samples, MaxSeriesSamples)
	}
	if math.IsNaN(p.Duration) || math.IsInf(p.Duration, 0) || p.Duration <= 0 {
		return nil, invalid(op, "duration", p.Duration, "must be positive and finite")
	}
	if len(p.Components) == 0 {
		return nil, invalid(op, "components", 0, "at least one component required")
	}
	for i, c := range p.Components {
		if c == nil {
			return nil, invalid(op, "components", i, "component %d is nil", i)
		}
	}
	if math.IsNaN(p.NoiseAmplitude) || p.NoiseAmplitude < 0 {
		return nil, invalid(op, "noise_amplitude", p.NoiseAmplitude, "must be >= 0")
	}
	if p.NoiseAmplitude > 0 && rnd == nil {
		return nil, invalid(op, "rnd", nil, "random source required when noise_amplitude > 0")
	}

	ts := floats.Span(make([]float64, p.Samples), 0, p.Duration)
	values := make([]float64, p.Samples)
	for i, t := range ts {
		sum := 0.0
		for _, c := range p.Components {
			sum += c(t)
		}
		values[i] = sum
	}

	if p.NoiseAmplitude > 0 {
		for i := range values {
			switch p.Noise {
			case NoiseGaussian:
				values[i] += rnd.NormFloat64() * p.NoiseAmplitude
			default:
				values[i] += rnd.Float64() * p.NoiseAmplitude
			}
		}
	}

	return &Field{
		Kind:     KindSeries,
		Coords:   [][]float64{ts},
		Values:   values,
		Metadata: p.Labels.meta(),
	}, nil
}

// NewSeries wraps explicit (t, value) samples.
func NewSeries(ts, values []float64, labels AxisLabels) (*Field, error) {
	f := &Field{
		Kind:     KindSeries,
		Coords:   [][]float64{append([]float64(nil), ts...)},
		Values:   append([]float64(nil), values...),
		Metadata: labels.meta(),
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// NewCategorical wraps one value per named category. The coordinate column
// holds the category positions 0..n-1.
func NewCategorical(names []string, values []float64, labels AxisLabels) (*Field, error) {
	if len(names) != len(values) {
		return nil, invalid("NewCategorical", "names", len(names), "have %d values", len(values))
	}
	pos := make([]float64, len(values))
	for i := range pos {
		pos[i] = float64(i)
	}
	f := &Field{
		Kind:     KindSeries,
		Coords:   [][]float64{pos},
		Values:   append([]float64(nil), values...),
		Labels:   append([]string(nil), names...),
		Metadata: labels.meta(),
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// CumulativeDeviation returns a series of the running sum of value-baseline
// on the same time axis.
func (f *Field) CumulativeDeviation(baseline float64) (*Field, error) {
	if f.Kind != KindSeries {
		return nil, invalid("CumulativeDeviation", "kind", f.Kind, "needs a time series")
	}
	dev := make([]float64, len(f.Values))
	for i, v := range f.Values {
		dev[i] = v - baseline
	}
	out := &Field{
		Kind:     KindSeries,
		Coords:   [][]float64{append([]float64(nil), f.Coords[0]...)},
		Values:   floats.CumSum(make([]float64, len(dev)), dev),
		Metadata: meta(MetaX, f.Label(MetaX, ""), MetaY, "Cumulative Deviation"),
	}
	return out, nil
}

// Histogram bins the field's finite values into bins equal-width buckets
// between their minimum and maximum and returns the counts as a categorical
// series labelled by bin centre. NaN and infinite values are not counted.
func (f *Field) Histogram(bins int) (*Field, error) {
	if bins < 1 {
		return nil, invalid("Histogram", "bins", bins, "must be at least 1")
	}
	x := make([]float64, 0, len(f.Values))
	for _, v := range f.Values {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			x = append(x, v)
		}
	}
	if len(x) == 0 {
		return nil, invalid("Histogram", "values", len(f.Values), "no finite values")
	}
	sort.Float64s(x)
	lo, hi := x[0], x[len(x)-1]
	if hi == lo {
		hi = lo + 1
	}
	dividers := floats.Span(make([]float64, bins+1), lo, hi)
	dividers[bins] = math.Nextafter(hi, math.Inf(1))
	counts := stat.Histogram(nil, dividers, x, nil)

	names := make([]string, bins)
	centres := make([]float64, bins)
	for i := range names {
		centres[i] = (dividers[i] + dividers[i+1]) / 2
		names[i] = strconv.FormatFloat(centres[i], 'f', 2, 64)
	}
	return &Field{
		Kind:     KindSeries,
		Coords:   [][]float64{centres},
		Values:   counts,
		Labels:   names,
		Metadata: meta(MetaX, f.Label(MetaValue, "Value"), MetaY, "Frequency"),
	}, nil
}
