// Package config defines the YAML model description for a simulation
// run: cell populations with initial layouts, force terms referencing
// registered laws, and timestep settings. Files are validated against
// an embedded JSON schema before use.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt    = 0.05
	DefaultSteps = 400
)

type Config struct {
	Name        string       `yaml:"name" json:"name"`
	Dt          float64      `yaml:"dt" json:"dt"`
	Steps       int          `yaml:"steps" json:"steps"`
	Seed        int64        `yaml:"seed" json:"seed"`
	Populations []Population `yaml:"populations" json:"populations"`
	Forces      []ForceTerm  `yaml:"forces" json:"forces"`
}

// Population places a group of cells of one type.
type Population struct {
	Type   string     `yaml:"type" json:"type"`
	Count  int        `yaml:"count" json:"count"`
	Layout string     `yaml:"layout" json:"layout"`
	Center [2]float64 `yaml:"center" json:"center"` // (y, x)

	// Radius sizes the circle layout, Spacing the grid layout, and
	// Width/Height the uniform box layout. Unset values default to 1.
	Radius  float64 `yaml:"radius,omitempty" json:"radius,omitempty"`
	Spacing float64 `yaml:"spacing,omitempty" json:"spacing,omitempty"`
	Width   float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Height  float64 `yaml:"height,omitempty" json:"height,omitempty"`
}

// ForceTerm configures one pairwise force rule by law name.
type ForceTerm struct {
	Law      string    `yaml:"law" json:"law"`
	Params   []float64 `yaml:"params" json:"params"`
	MinRange float64   `yaml:"min_range" json:"min_range"`

	// MaxRange of zero (or absent) means unbounded.
	MaxRange float64 `yaml:"max_range,omitempty" json:"max_range,omitempty"`

	// Between restricts the term to pairs of the two named cell
	// types. Empty means every pair interacts.
	Between []string `yaml:"between,omitempty" json:"between,omitempty"`

	// NoiseStdev of zero means no random forces; NoiseBound is only
	// meaningful alongside a nonzero stdev and is otherwise inert.
	NoiseStdev float64 `yaml:"noise_stdev,omitempty" json:"noise_stdev,omitempty"`
	NoiseBound float64 `yaml:"noise_bound,omitempty" json:"noise_bound,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:  "adhesion",
		Dt:    DefaultDt,
		Steps: DefaultSteps,
		Populations: []Population{
			{Type: "cell", Count: 12, Layout: "circle", Radius: 3},
		},
		Forces: []ForceTerm{
			{Law: "hooke", Params: []float64{1.0, 0.5}, MaxRange: 2.5},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
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
