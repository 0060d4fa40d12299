package field

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// Surface is a closed-form z = f(x, y).
type Surface func(x, y float64) float64

// Volumetric is a closed-form v = f(x, y, z).
type Volumetric func(x, y, z float64) float64

// AxisLabels names the axes of a generated field. Empty entries are omitted
// from the field metadata.
type AxisLabels struct {
	X, Y, Z, Value string
}

func (l AxisLabels) meta() map[string]string {
	return meta(MetaX, l.X, MetaY, l.Y, MetaZ, l.Z, MetaValue, l.Value)
}

// DefaultSmoothSigma is the Gaussian kernel width applied to grid noise when
// GridParams.SmoothSigma is zero.
const DefaultSmoothSigma = 1.0

// GridParams configures GenerateGrid.
type GridParams struct {
	XRange, YRange Range
	Resolution     int
	Formula        Surface
	// NoiseSigma is the standard deviation of the per-cell Gaussian noise
	// drawn before smoothing. Zero disables noise and randomness entirely.
	NoiseSigma float64
	// SmoothSigma is the smoothing kernel width in cells.
	SmoothSigma float64
	Labels      AxisLabels
}

// GenerateGrid evaluates Formula on a Resolution x Resolution grid.
func GenerateGrid(rnd *rand.Rand, p GridParams) (*Field, error) {
	const op = "GenerateGrid"

	if p.Resolution < 2 {
		return nil, invalid(op, "resolution", p.Resolution, "must be at least 2")
	}
	if p.Resolution > MaxGridSamples/p.Resolution {
		return nil, tooLarge(op, "resolution", p.Resolution, MaxGridSamples)
	}
	if !p.XRange.valid() {
		return nil, invalid(op, "x_range", p.XRange, "need finite Min < Max")
	}
	if !p.YRange.valid() {
		return nil, invalid(op, "y_range", p.YRange, "need finite Min < Max")
	}
	if p.Formula == nil {
		return nil, invalid(op, "formula", nil, "formula required")
	}
	if math.IsNaN(p.NoiseSigma) || p.NoiseSigma < 0 {
		return nil, invalid(op, "noise_sigma", p.NoiseSigma, "must be >= 0")
	}
	if math.IsNaN(p.SmoothSigma) || p.SmoothSigma < 0 {
		return nil, invalid(op, "smooth_sigma", p.SmoothSigma, "must be >= 0")
	}
	if p.NoiseSigma > 0 && rnd == nil {
		return nil, invalid(op, "rnd", nil, "random source required when noise_sigma > 0")
	}

	n := p.Resolution
	xs := floats.Span(make([]float64, n), p.XRange.Min, p.XRange.Max)
	ys := floats.Span(make([]float64, n), p.YRange.Min, p.YRange.Max)

	values := make([]float64, n*n)
	for j, y := range ys {
		row := values[j*n : (j+1)*n]
		for i, x := range xs {
			row[i] = p.Formula(x, y)
		}
	}

	if p.NoiseSigma > 0 {
		noise := make([]float64, n*n)
		for i := range noise {
			noise[i] = rnd.NormFloat64() * p.NoiseSigma
		}
		sigma := p.SmoothSigma
		if sigma == 0 {
			sigma = DefaultSmoothSigma
		}
		floats.Add(values, Smooth(noise, n, n, sigma))
	}

	return &Field{
		Kind:     KindGrid,
		Coords:   [][]float64{xs, ys},
		Values:   values,
		Metadata: p.Labels.meta(),
	}, nil
}

// VolumeParams configures GenerateVolume.
type VolumeParams struct {
	Bounds     [3]Range
	Resolution int
	Formula    Volumetric
	Labels     AxisLabels
}

// GenerateVolume evaluates Formula on a Resolution^3 grid. It draws no random
// numbers; rnd is accepted for signature symmetry and may be nil.
func GenerateVolume(_ *rand.Rand, p VolumeParams) (*Field, error) {
	const op = "GenerateVolume"

	if p.Resolution < 2 {
		return nil, invalid(op, "resolution", p.Resolution, "must be at least 2")
	}
	if p.Resolution > 1<<20 || p.Resolution*p.Resolution*p.Resolution > MaxVolumeSamples {
		return nil, tooLarge(op, "resolution", p.Resolution, MaxVolumeSamples)
	}
	for i, b := range p.Bounds {
		if !b.valid() {
			return nil, invalid(op, "bounds", b, "axis %d needs finite Min < Max", i)
		}
	}
	if p.Formula == nil {
		return nil, invalid(op, "formula", nil, "formula required")
	}

	n := p.Resolution
	axes := make([][]float64, 3)
	for i := range axes {
		axes[i] = floats.Span(make([]float64, n), p.Bounds[i].Min, p.Bounds[i].Max)
	}

	values := make([]float64, n*n*n)
	for k, z := range axes[2] {
		for j, y := range axes[1] {
			base := (k*n + j) * n
			for i, x := range axes[0] {
				values[base+i] = p.Formula(x, y, z)
			}
		}
	}

	return &Field{
		Kind:     KindVolume,
		Coords:   axes,
		Values:   values,
		Metadata: p.Labels.meta(),
	}, nil
}

// NewGrid wraps explicit grid data. values must hold len(xs)*len(ys) entries
// laid out row-major with x fastest.
func NewGrid(xs, ys, values []float64, labels AxisLabels) (*Field, error) {
	f := &Field{
		Kind:     KindGrid,
		Coords:   [][]float64{append([]float64(nil), xs...), append([]float64(nil), ys...)},
		Values:   append([]float64(nil), values...),
		Metadata: labels.meta(),
	}
	if len(xs) == 0 || len(ys) == 0 {
		return nil, invalid("NewGrid", "axes", [2]int{len(xs), len(ys)}, "axes must be non-empty")
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Smooth convolves an nx by ny row-major array with a separable Gaussian
// kernel of the given sigma, truncated at 4 sigma, with reflected borders.
// A non-positive sigma returns a copy.
func Smooth(values []float64, nx, ny int, sigma float64) []float64 {
	out := append([]float64(nil), values...)
	if sigma <= 0 || nx == 0 || ny == 0 {
		return out
	}
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2

	tmp := make([]float64, len(values))
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			sum := 0.0
			for k, w := range kernel {
				sum += w * values[j*nx+reflect(i+k-radius, nx)]
			}
			tmp[j*nx+i] = sum
		}
	}
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			sum := 0.0
			for k, w := range kernel {
				sum += w * tmp[reflect(j+k-radius, ny)*nx+i]
			}
			out[j*nx+i] = sum
		}
	}
	return out
}

func gaussianKernel(sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	kernel := make([]float64, 2*radius+1)
	for i := range kernel {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
	}
	floats.Scale(1/floats.Sum(kernel), kernel)
	return kernel
}

// reflect maps an out-of-range index back into [0, n) by mirroring about the
// edges, repeating the edge sample (d c b a | a b c d | d c b a).
func reflect(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * n
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - 1 - i
	}
	return i
}
