package config

import "sort"

var Presets = map[string]*Config{
	"cyberpunk": {
		Seed: DefaultSeed, Theme: "cyberpunk", OutputDir: DefaultOutputDir, Formats: []string{"html"},
		Kinds: []string{"neural_matrix", "holographic", "quantum_field", "reality_tracker"},
	},
	"futuristic": {
		Seed: DefaultSeed, Theme: "futuristic", OutputDir: DefaultOutputDir, Formats: []string{"html"},
		Kinds: []string{"neural_map", "superposition", "dimensional_matrix", "probability_landscape"},
	},
	"classic": {
		Seed: DefaultSeed, Theme: "plain", OutputDir: DefaultOutputDir, Formats: []string{"html", "png"},
		Kinds: []string{"probability_surface", "particle_suite", "probability_trends", "particle_cloud", "correlation_matrix"},
	},
	"gallery": {
		Seed: DefaultSeed, OutputDir: DefaultOutputDir, Formats: []string{"html", "svg"},
		Width: 1600, Height: 1000,
		Kinds: []string{
			"neural_matrix", "holographic", "quantum_field", "reality_tracker",
			"neural_map", "superposition", "dimensional_matrix", "probability_landscape",
			"probability_surface", "particle_suite", "probability_trends", "particle_cloud", "correlation_matrix",
		},
		Tuning: TuningConfig{GridResolution: 80, VolumeResolution: 30},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
