package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBodies  = 10
	DefaultBuckets = 12
	DefaultSteps   = 11000
	DefaultSeed    = 252
	DefaultMean    = 0.5
	DefaultStdDev  = 0.1
	DefaultNoise   = 0.100051
	DefaultTopN    = 0
)

// Config describes one synthetic run: how many bodies and buckets, how
// long the control sequences are, and how they are sampled.
type Config struct {
	Name     string         `yaml:"name" toml:"name"`
	Bodies   int            `yaml:"bodies" toml:"bodies"`
	Buckets  int            `yaml:"buckets" toml:"buckets"`
	Steps    int            `yaml:"steps" toml:"steps"`
	Seed     int64          `yaml:"seed" toml:"seed"`
	Parallel bool           `yaml:"parallel" toml:"parallel"`
	TopN     int            `yaml:"top_n" toml:"top_n"`
	Sampling SamplingConfig `yaml:"sampling" toml:"sampling"`
	Ranges   RangeConfig    `yaml:"ranges" toml:"ranges"`
}

// SamplingConfig parameterises the bounded normal generator.
type SamplingConfig struct {
	Mean   float64 `yaml:"mean" toml:"mean"`
	StdDev float64 `yaml:"stddev" toml:"stddev"`
	Noise  float64 `yaml:"noise" toml:"noise"`
}

// RangeConfig maps generator samples in [0, 1] onto physical ranges.
type RangeConfig struct {
	Velocity     Range   `yaml:"velocity" toml:"velocity"`
	Acceleration Range   `yaml:"acceleration" toml:"acceleration"`
	TimeDelta    Range   `yaml:"time_delta" toml:"time_delta"`
	Radius       Range   `yaml:"radius" toml:"radius"`
	CurveMax     float64 `yaml:"curve_max" toml:"curve_max"`
}

type Range struct {
	Min float64 `yaml:"min" toml:"min"`
	Max float64 `yaml:"max" toml:"max"`
}

// Scale maps u in [0, 1] into the range.
func (r Range) Scale(u float64) float64 {
	return r.Min + u*(r.Max-r.Min)
}

func DefaultConfig() *Config {
	return &Config{
		Name:    "default",
		Bodies:  DefaultBodies,
		Buckets: DefaultBuckets,
		Steps:   DefaultSteps,
		Seed:    DefaultSeed,
		TopN:    DefaultTopN,
		Sampling: SamplingConfig{
			Mean:   DefaultMean,
			StdDev: DefaultStdDev,
			Noise:  DefaultNoise,
		},
		Ranges: DefaultRanges(),
	}
}

func DefaultRanges() RangeConfig {
	return RangeConfig{
		Velocity:     Range{Min: 0, Max: 2},
		Acceleration: Range{Min: 0, Max: 0.5},
		TimeDelta:    Range{Min: 0.1, Max: 0.3},
		Radius:       Range{Min: 0.5, Max: 2.5},
		CurveMax:     0.5,
	}
}

// Load reads a YAML or TOML (.toml) config on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as TOML when path ends in .toml and YAML otherwise.
func Save(path string, cfg *Config) error {
	if strings.ToLower(filepath.Ext(path)) == ".toml" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Bodies < 1 {
		return fmt.Errorf("bodies must be positive, got %d", c.Bodies)
	}
	if c.Buckets < 1 {
		return fmt.Errorf("buckets must be positive, got %d", c.Buckets)
	}
	if c.Steps < 1 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if c.TopN < 0 {
		return fmt.Errorf("top_n must be non-negative, got %d", c.TopN)
	}
	if c.Sampling.StdDev <= 0 {
		return fmt.Errorf("sampling stddev must be positive, got %f", c.Sampling.StdDev)
	}
	if c.Sampling.Noise <= 0 {
		return fmt.Errorf("sampling noise must be positive, got %f", c.Sampling.Noise)
	}
	if c.Ranges.Radius.Min <= 0 || c.Ranges.Radius.Max < c.Ranges.Radius.Min {
		return fmt.Errorf("radius range [%f, %f] must be positive and ordered", c.Ranges.Radius.Min, c.Ranges.Radius.Max)
	}
	return nil
}
