package field

import (
	"fmt"
	"math"
)

// Kind classifies the shape of a field's payload.
type Kind string

const (
	KindGrid     Kind = "grid_scalar"
	KindCloud    Kind = "point_cloud"
	KindVolume   Kind = "volumetric_scalar"
	KindSeries   Kind = "time_series"
	KindTopology Kind = "layered_topology"
)

// Metadata keys understood by the scene composer.
const (
	MetaX     = "x"
	MetaY     = "y"
	MetaZ     = "z"
	MetaValue = "value"
	MetaUnit  = "unit"
)

// Range is a closed interval on one axis.
type Range struct {
	Min, Max float64
}

func (r Range) valid() bool {
	return !math.IsNaN(r.Min) && !math.IsNaN(r.Max) && !math.IsInf(r.Min, 0) && !math.IsInf(r.Max, 0) && r.Min < r.Max
}

// Span returns Max-Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Point is one sample position in space.
type Point struct {
	X, Y, Z float64
}

// Edge is a directed link between two node indices of a topology.
type Edge struct {
	From, To int
}

// Field is one synthesized dataset.
//
// Grids store values row-major with x varying fastest, so the value at
// (x[i], y[j]) is Values[j*len(x)+i]. Volumes extend this with z outermost.
// Point clouds, topologies and series store one value per sample and keep
// per-sample coordinate columns in Coords.
//
// Labels, when present, name each sample of a series or each column of a
// grid. Renderers use them as category ticks.
type Field struct {
	Kind     Kind
	Coords   [][]float64
	Values   []float64
	Edges    []Edge
	Layers   []int
	Labels   []string
	Metadata map[string]string
}

// Dim is the coordinate dimensionality of the field.
func (f *Field) Dim() int { return len(f.Coords) }

// Len is the number of samples (grid cells, points, nodes or time steps).
func (f *Field) Len() int { return len(f.Values) }

// Shape returns the expected value count per axis. For grids and volumes this
// is the axis lengths; otherwise a single entry with the sample count.
func (f *Field) Shape() []int {
	switch f.Kind {
	case KindGrid, KindVolume:
		shape := make([]int, len(f.Coords))
		for i, axis := range f.Coords {
			shape[i] = len(axis)
		}
		return shape
	default:
		if len(f.Coords) == 0 {
			return []int{len(f.Values)}
		}
		return []int{len(f.Coords[0])}
	}
}

// At returns the grid value at column i (x) and row j (y).
func (f *Field) At(i, j int) float64 {
	return f.Values[j*len(f.Coords[0])+i]
}

// Range returns the smallest and largest value, skipping NaN cells. A field
// with no numeric values yields (0, 0).
func (f *Field) Range() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range f.Values {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// Label returns a metadata entry or fallback when it is missing.
func (f *Field) Label(key, fallback string) string {
	if v, ok := f.Metadata[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Validate checks that the value count agrees with the coordinates.
func (f *Field) Validate() error {
	switch f.Kind {
	case KindGrid, KindVolume:
		want := 2
		if f.Kind == KindVolume {
			want = 3
		}
		if len(f.Coords) != want {
			return fmt.Errorf("%s field needs %d axes, has %d: %w", f.Kind, want, len(f.Coords), ErrInvalidParameter)
		}
		n := 1
		for _, axis := range f.Coords {
			n *= len(axis)
		}
		if n != len(f.Values) {
			return fmt.Errorf("%s field has %d values for %d cells: %w", f.Kind, len(f.Values), n, ErrInvalidParameter)
		}
		// grid labels name the x positions
		if f.Labels != nil && len(f.Labels) != len(f.Coords[0]) {
			return fmt.Errorf("%s field has %d labels for %d columns: %w", f.Kind, len(f.Labels), len(f.Coords[0]), ErrInvalidParameter)
		}
	case KindSeries, KindCloud, KindTopology:
		if len(f.Coords) == 0 {
			return fmt.Errorf("%s field has no coordinates: %w", f.Kind, ErrInvalidParameter)
		}
		for i, col := range f.Coords {
			if len(col) != len(f.Values) {
				return fmt.Errorf("%s field column %d has %d entries for %d values: %w", f.Kind, i, len(col), len(f.Values), ErrInvalidParameter)
			}
		}
		if f.Labels != nil && len(f.Labels) != len(f.Values) {
			return fmt.Errorf("%s field has %d labels for %d values: %w", f.Kind, len(f.Labels), len(f.Values), ErrInvalidParameter)
		}
		if f.Kind == KindTopology {
			for _, e := range f.Edges {
				if e.From < 0 || e.From >= len(f.Values) || e.To < 0 || e.To >= len(f.Values) {
					return fmt.Errorf("edge %d->%d outside %d nodes: %w", e.From, e.To, len(f.Values), ErrInvalidParameter)
				}
			}
		}
	default:
		return fmt.Errorf("unknown field kind %q: %w", f.Kind, ErrInvalidParameter)
	}
	return nil
}

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	c := &Field{
		Kind:   f.Kind,
		Coords: make([][]float64, len(f.Coords)),
		Values: append([]float64(nil), f.Values...),
	}
	for i, col := range f.Coords {
		c.Coords[i] = append([]float64(nil), col...)
	}
	if f.Edges != nil {
		c.Edges = append([]Edge(nil), f.Edges...)
	}
	if f.Layers != nil {
		c.Layers = append([]int(nil), f.Layers...)
	}
	if f.Labels != nil {
		c.Labels = append([]string(nil), f.Labels...)
	}
	if f.Metadata != nil {
		c.Metadata = make(map[string]string, len(f.Metadata))
		for k, v := range f.Metadata {
			c.Metadata[k] = v
		}
	}
	return c
}

func meta(pairs ...string) map[string]string {
	m := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			m[pairs[i]] = pairs[i+1]
		}
	}
	return m
}
