package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"small": {
		Name: "small", Bodies: 3, Buckets: 4, Steps: 200, Seed: 7,
		Sampling: SamplingConfig{Mean: 0.5, StdDev: 0.1, Noise: 0.1},
		Ranges:   DefaultRanges(),
	},
	"dense": {
		Name: "dense", Bodies: 32, Buckets: 24, Steps: 2000, Seed: 11, Parallel: true,
		Sampling: SamplingConfig{Mean: 0.5, StdDev: 0.1, Noise: 0.05},
		Ranges:   DefaultRanges(),
	},
	"calm": {
		Name: "calm", Bodies: 10, Buckets: 12, Steps: 1000, Seed: 3,
		Sampling: SamplingConfig{Mean: 0.2, StdDev: 0.05, Noise: 0.01},
		Ranges:   DefaultRanges(),
	},
	"noisy": {
		Name: "noisy", Bodies: 10, Buckets: 12, Steps: 1000, Seed: 5,
		Sampling: SamplingConfig{Mean: 0.5, StdDev: 0.3, Noise: 0.4},
		Ranges:   DefaultRanges(),
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
