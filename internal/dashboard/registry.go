package dashboard

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/san-kum/fieldviz/internal/scene"
	"github.com/san-kum/fieldviz/internal/theme"
)

// ErrUnknownKind is returned for a dashboard name that is not registered.
var ErrUnknownKind = errors.New("dashboard: unknown kind")

// Builder generates the fields of one dashboard and composes its scene.
type Builder func(rnd *rand.Rand, th theme.Config, t Tuning) (*scene.Scene, error)

// Kind is a named dashboard recipe.
type Kind struct {
	Name        string
	Description string
	// Theme is the theme the dashboard was designed for.
	Theme string
	Build Builder
}

type Registry struct {
	kinds map[string]Kind
}

// NewRegistry returns a registry holding every built-in dashboard.
func NewRegistry() *Registry {
	r := &Registry{kinds: make(map[string]Kind)}

	r.Register(Kind{"neural_matrix", "3D ring network of neurons with sparse layer links", "cyberpunk", neuralMatrix})
	r.Register(Kind{"holographic", "holographic interference contour with particle streams", "cyberpunk", holographic})
	r.Register(Kind{"quantum_field", "quantum isosurfaces with decaying particle paths", "cyberpunk", quantumField})
	r.Register(Kind{"reality_tracker", "four time series with cumulative deviation", "cyberpunk", realityTracker})

	r.Register(Kind{"neural_map", "2D column network probability map", "futuristic", neuralMap})
	r.Register(Kind{"superposition", "superposed wave packet probability contour", "futuristic", superposition})
	r.Register(Kind{"dimensional_matrix", "nine panel multi-dimensional analysis grid", "futuristic", dimensionalMatrix})
	r.Register(Kind{"probability_landscape", "multi-modal probability surface", "futuristic", probabilityLandscape})

	r.Register(Kind{"probability_surface", "dimension and complexity probability surface", "plain", probabilitySurface})
	r.Register(Kind{"particle_suite", "particle scatter, energy histogram, correlation and density", "plain", particleSuite})
	r.Register(Kind{"probability_trends", "trend, distribution, regression and sensitivity panels", "plain", probabilityTrends})
	r.Register(Kind{"particle_cloud", "3D spherical shell of particles", "plain", particleCloud})
	r.Register(Kind{"correlation_matrix", "lower-triangular parameter correlation heatmap", "plain", correlationMatrix})

	return r
}

// Register adds or replaces a kind.
func (r *Registry) Register(k Kind) {
	r.kinds[k.Name] = k
}

// Get returns the kind registered under name.
func (r *Registry) Get(name string) (Kind, error) {
	k, ok := r.kinds[name]
	if !ok {
		return Kind{}, fmt.Errorf("%w: %s", ErrUnknownKind, name)
	}
	return k, nil
}

// List returns the registered names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build runs the named dashboard with its own random source seeded from seed.
func (r *Registry) Build(name string, seed uint64, th theme.Config, t Tuning) (*scene.Scene, error) {
	k, err := r.Get(name)
	if err != nil {
		return nil, err
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	s, err := k.Build(NewSource(seed), th, t)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	slog.Debug("dashboard built", "kind", name, "seed", seed, "panels", len(s.Panels), "traces", s.TraceCount(), "elapsed", time.Since(start))
	return s, nil
}

const golden = 0x9e3779b97f4a7c15

// NewSource returns a PCG generator for seed. Equal seeds give equal streams.
func NewSource(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^golden))
}
