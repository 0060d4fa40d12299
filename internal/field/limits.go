package field

// Ceilings on request sizes. Each generator checks its ceiling before
// allocating anything.
const (
	MaxGridSamples    = 4_000_000
	MaxVolumeSamples  = 200 * 200 * 200
	MaxSeriesSamples  = 10_000_000
	MaxPoints         = 5_000_000
	MaxNodes          = 1_000_000
	MaxEdgeCandidates = 50_000_000
)
