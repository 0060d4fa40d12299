// Package field synthesizes the numeric payloads that dashboards are drawn from.
//
// A [Field] is one generated dataset: a scalar grid, a scalar volume, a time
// series, a point cloud or a layered topology (nodes on rings or columns with
// directed edges between adjacent layers). Each generator is a pure function
// of its parameters and an explicitly passed random source:
//
//   - [GenerateTopology]: layered node rings with probabilistic edges
//   - [GenerateGrid]: closed-form surface on a square grid, optional smoothed noise
//   - [GenerateVolume]: closed-form scalar field on a cubic grid
//   - [GenerateSeries]: summed components on a uniform time axis plus noise
//   - [GeneratePointCloud]: independent draws from a [Sampler]
//
// # Randomness
//
// Nothing in this package touches a global generator. Callers own a
// *rand.Rand (math/rand/v2) per request:
//
//	rnd := rand.New(rand.NewPCG(seed, seed))
//	f, err := field.GenerateGrid(rnd, field.GridParams{
//	    XRange:     field.Range{Min: -4, Max: 4},
//	    YRange:     field.Range{Min: -4, Max: 4},
//	    Resolution: 100,
//	    Formula:    field.Holographic,
//	})
//
// The same seed and parameters always give bit-identical values.
//
// # Limits
//
// Requests beyond the documented ceilings ([MaxGridSamples],
// [MaxVolumeSamples], [MaxPoints] and friends) fail with [ErrResourceLimit]
// before any allocation happens.
package field
