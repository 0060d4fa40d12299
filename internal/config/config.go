package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fieldviz/internal/dashboard"
	"github.com/san-kum/fieldviz/internal/field"
	"github.com/san-kum/fieldviz/internal/theme"
)

const (
	DefaultSeed      = 42
	DefaultOutputDir = "fieldviz-out"
	DefaultFormat    = "html"
	DefaultKind      = "neural_matrix"
)

// Config is the YAML run configuration. An empty Theme lets every dashboard
// use the theme it was designed for; zero Width and Height keep the theme's
// size. Scale, given as [position, color] pairs, replaces the theme's default
// color scale.
type Config struct {
	Seed      uint64       `yaml:"seed"`
	Theme     string       `yaml:"theme"`
	Scale     [][]string   `yaml:"scale,omitempty"`
	OutputDir string       `yaml:"output_dir"`
	Formats   []string     `yaml:"formats"`
	Width     int          `yaml:"width"`
	Height    int          `yaml:"height"`
	Kinds     []string     `yaml:"kinds"`
	Tuning    TuningConfig `yaml:"tuning"`
}

// TuningConfig mirrors dashboard.Tuning with YAML names. Zero values keep
// each dashboard's defaults.
type TuningConfig struct {
	GridResolution        int      `yaml:"grid_resolution,omitempty"`
	GridNoise             float64  `yaml:"grid_noise,omitempty"`
	VolumeResolution      int      `yaml:"volume_resolution,omitempty"`
	SeriesSamples         int      `yaml:"series_samples,omitempty"`
	SeriesNoise           float64  `yaml:"series_noise,omitempty"`
	PointCount            int      `yaml:"point_count,omitempty"`
	LayerSizes            []int    `yaml:"layer_sizes,omitempty"`
	ConnectionProbability *float64 `yaml:"connection_probability,omitempty"`
	EdgePolicy            string   `yaml:"edge_policy,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Seed:      DefaultSeed,
		OutputDir: DefaultOutputDir,
		Formats:   []string{DefaultFormat},
		Kinds:     []string{DefaultKind},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the fields the dashboards and renderers cannot repair.
// Kind and format names are checked where they are resolved.
func (c *Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("config: size %dx%d is negative: %w", c.Width, c.Height, field.ErrInvalidParameter)
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("config: no output formats: %w", field.ErrInvalidParameter)
	}
	if len(c.Kinds) == 0 {
		return fmt.Errorf("config: no dashboard kinds: %w", field.ErrInvalidParameter)
	}
	if _, _, err := c.ColorScale(); err != nil {
		return err
	}
	t, err := c.Tuning.Dashboard()
	if err != nil {
		return err
	}
	return t.Validate()
}

// ColorScale parses the custom scale. ok is false when none is configured.
func (c *Config) ColorScale() (s theme.ColorScale, ok bool, err error) {
	if len(c.Scale) == 0 {
		return theme.ColorScale{}, false, nil
	}
	pairs := make([][2]string, len(c.Scale))
	for i, p := range c.Scale {
		if len(p) != 2 {
			return theme.ColorScale{}, false, fmt.Errorf("config: scale stop %d needs [position, color], has %d items: %w", i, len(p), field.ErrInvalidParameter)
		}
		pairs[i] = [2]string{p[0], p[1]}
	}
	s, err = theme.ParseScale("custom", pairs)
	if err != nil {
		return theme.ColorScale{}, false, err
	}
	return s, true, nil
}

// Dashboard converts the YAML tuning to dashboard.Tuning.
func (t TuningConfig) Dashboard() (dashboard.Tuning, error) {
	policy, ok := field.ParseEdgePolicy(t.EdgePolicy)
	if !ok {
		return dashboard.Tuning{}, fmt.Errorf("config: unknown edge policy %q: %w", t.EdgePolicy, field.ErrInvalidParameter)
	}
	return dashboard.Tuning{
		GridResolution:        t.GridResolution,
		VolumeResolution:      t.VolumeResolution,
		SeriesSamples:         t.SeriesSamples,
		PointCount:            t.PointCount,
		GridNoise:             t.GridNoise,
		SeriesNoise:           t.SeriesNoise,
		LayerSizes:            append([]int(nil), t.LayerSizes...),
		ConnectionProbability: t.ConnectionProbability,
		EdgePolicy:            policy,
	}, nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Formats = append([]string(nil), c.Formats...)
	out.Kinds = append([]string(nil), c.Kinds...)
	out.Scale = nil
	for _, p := range c.Scale {
		out.Scale = append(out.Scale, append([]string(nil), p...))
	}
	out.Tuning.LayerSizes = append([]int(nil), c.Tuning.LayerSizes...)
	if c.Tuning.ConnectionProbability != nil {
		p := *c.Tuning.ConnectionProbability
		out.Tuning.ConnectionProbability = &p
	}
	return &out
}
