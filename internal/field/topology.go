package field

import (
	"math"
	"math/rand/v2"
	"sort"
)

// Layout places the nodes of each layer.
type Layout int

const (
	// LayoutRing spaces the nodes of layer i evenly on a circle of radius
	// BaseRadius + i*RadiusStep.
	LayoutRing Layout = iota
	// LayoutColumn stacks the nodes of layer i on a vertical column.
	LayoutColumn
)

// EdgePolicy selects how edges between adjacent layers are drawn.
type EdgePolicy int

const (
	// EdgeBernoulli runs one independent trial per (source, destination)
	// pair. Draw count grows with n_i * n_{i+1}.
	EdgeBernoulli EdgePolicy = iota
	// EdgeFixedCount samples exactly round(p * n_i * n_{i+1}) distinct pairs
	// per layer pair, so draws grow with the edge count instead.
	EdgeFixedCount
)

// ParseEdgePolicy maps "bernoulli" and "fixed" to a policy.
func ParseEdgePolicy(s string) (EdgePolicy, bool) {
	switch s {
	case "", "bernoulli":
		return EdgeBernoulli, true
	case "fixed", "fixed_count":
		return EdgeFixedCount, true
	}
	return EdgeBernoulli, false
}

func (p EdgePolicy) String() string {
	if p == EdgeFixedCount {
		return "fixed"
	}
	return "bernoulli"
}

// TopologyParams configures GenerateTopology.
type TopologyParams struct {
	LayerSizes            []int
	ConnectionProbability float64
	Layout                Layout
	Policy                EdgePolicy

	BaseRadius   float64
	RadiusStep   float64
	LayerSpacing float64
	// ColumnHalfHeight bounds the column layout to [-h, h].
	ColumnHalfHeight float64
	// Lift appends each node's attribute as a z coordinate.
	Lift bool
}

// DefaultTopology returns the ring layout used by the neural matrix.
func DefaultTopology(sizes []int, p float64) TopologyParams {
	return TopologyParams{
		LayerSizes:            sizes,
		ConnectionProbability: p,
		Layout:                LayoutRing,
		Policy:                EdgeBernoulli,
		BaseRadius:            2,
		RadiusStep:            1.5,
		LayerSpacing:          3,
		ColumnHalfHeight:      5,
		Lift:                  true,
	}
}

// GenerateTopology builds a layered node graph. Node k of layer i gets a
// uniform [0,1) attribute; directed edges only connect layer i to layer i+1.
func GenerateTopology(rnd *rand.Rand, p TopologyParams) (*Field, error) {
	const op = "GenerateTopology"

	if len(p.LayerSizes) == 0 {
		return nil, invalid(op, "layer_sizes", p.LayerSizes, "at least one layer required")
	}
	total := 0
	for i, n := range p.LayerSizes {
		if n <= 0 {
			return nil, invalid(op, "layer_sizes", p.LayerSizes, "layer %d has %d nodes", i, n)
		}
		total += n
		if total > MaxNodes {
			return nil, tooLarge(op, "layer_sizes", total, MaxNodes)
		}
	}
	prob := p.ConnectionProbability
	if math.IsNaN(prob) || prob < 0 || prob > 1 {
		return nil, invalid(op, "connection_probability", prob, "must lie in [0, 1]")
	}
	if rnd == nil {
		return nil, invalid(op, "rnd", nil, "random source required")
	}
	draws := 0
	for i := 0; i+1 < len(p.LayerSizes); i++ {
		pairs := p.LayerSizes[i] * p.LayerSizes[i+1]
		if p.Policy == EdgeFixedCount {
			pairs = int(math.Round(prob * float64(pairs)))
		}
		draws += pairs
		if draws > MaxEdgeCandidates {
			return nil, tooLarge(op, "edge_candidates", draws, MaxEdgeCandidates)
		}
	}

	xs := make([]float64, 0, total)
	ys := make([]float64, 0, total)
	attr := make([]float64, 0, total)
	layers := make([]int, 0, total)
	starts := make([]int, len(p.LayerSizes))

	for i, n := range p.LayerSizes {
		starts[i] = len(xs)
		for k := 0; k < n; k++ {
			x, y := p.place(i, k, n)
			xs = append(xs, x)
			ys = append(ys, y)
			attr = append(attr, rnd.Float64())
			layers = append(layers, i)
		}
	}

	var edges []Edge
	for i := 0; i+1 < len(p.LayerSizes); i++ {
		src, dst := p.LayerSizes[i], p.LayerSizes[i+1]
		switch p.Policy {
		case EdgeFixedCount:
			k := int(math.Round(prob * float64(src*dst)))
			for _, idx := range samplePairs(rnd, src*dst, k) {
				edges = append(edges, Edge{From: starts[i] + idx/dst, To: starts[i+1] + idx%dst})
			}
		default:
			for a := 0; a < src; a++ {
				for b := 0; b < dst; b++ {
					if rnd.Float64() < prob {
						edges = append(edges, Edge{From: starts[i] + a, To: starts[i+1] + b})
					}
				}
			}
		}
	}

	coords := [][]float64{xs, ys}
	if p.Lift {
		coords = append(coords, append([]float64(nil), attr...))
	}

	return &Field{
		Kind:     KindTopology,
		Coords:   coords,
		Values:   attr,
		Edges:    edges,
		Layers:   layers,
		Metadata: meta(MetaX, "Network Layer", MetaY, "Neuron Position", MetaZ, "Activation", MetaValue, "Activation"),
	}, nil
}

func (p TopologyParams) place(layer, k, n int) (x, y float64) {
	offset := float64(layer) * p.LayerSpacing
	if p.Layout == LayoutColumn {
		if n == 1 {
			return offset, 0
		}
		h := p.ColumnHalfHeight
		return offset, -h + 2*h*float64(k)/float64(n-1)
	}
	r := p.BaseRadius + float64(layer)*p.RadiusStep
	theta := 2 * math.Pi * float64(k) / float64(n)
	return r*math.Cos(theta) + offset, r * math.Sin(theta)
}

// samplePairs draws k distinct indices from [0, total) with Floyd's
// algorithm and returns them ascending.
func samplePairs(rnd *rand.Rand, total, k int) []int {
	if k <= 0 {
		return nil
	}
	if k > total {
		k = total
	}
	chosen := make(map[int]struct{}, k)
	for j := total - k; j < total; j++ {
		t := rnd.IntN(j + 1)
		if _, dup := chosen[t]; dup {
			t = j
		}
		chosen[t] = struct{}{}
	}
	out := make([]int, 0, k)
	for idx := range chosen {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}
