// Package config loads named ranking profiles from YAML files and resolves
// them into run configurations.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/adalundhe/ragno/core/rank"
	"gopkg.in/yaml.v3"
)

// ErrUnknownProfile indicates a profile name absent from both the loaded
// file and the built-in profiles.
var ErrUnknownProfile = errors.New("unknown ranking profile")

// Profile is one named ranking configuration in a profile file. Zero-valued
// fields fall back to the mode preset's defaults, so a profile only states
// what it overrides.
type Profile struct {
	Mode                 string  `yaml:"mode"`
	Alpha                float64 `yaml:"alpha"`
	MaxIterations        int     `yaml:"max_iterations"`
	ConvergenceThreshold float64 `yaml:"convergence_threshold"`
	TopK                 int     `yaml:"top_k"`
	Workers              int     `yaml:"workers"`
}

// Config resolves the profile into a validated run configuration.
func (p Profile) Config() (rank.Config, error) {
	mode, err := rank.ParseTraversalMode(p.Mode)
	if err != nil {
		return rank.Config{}, err
	}

	var cfg rank.Config
	switch mode {
	case rank.TraversalShallow:
		cfg = rank.ShallowConfig()
	case rank.TraversalDeep:
		cfg = rank.DeepConfig()
	default:
		cfg = rank.DefaultConfig()
	}

	if p.Alpha != 0 {
		cfg.Alpha = p.Alpha
	}
	if p.MaxIterations != 0 {
		cfg.MaxIterations = p.MaxIterations
	}
	if p.ConvergenceThreshold != 0 {
		cfg.ConvergenceThreshold = p.ConvergenceThreshold
	}
	if p.TopK != 0 {
		cfg.TopK = p.TopK
	}
	if p.Workers != 0 {
		cfg.Workers = p.Workers
	}

	if err := cfg.Validate(); err != nil {
		return rank.Config{}, err
	}
	return cfg, nil
}

// File is a parsed ranking-profile file.
type File struct {
	Profiles map[string]Profile `yaml:"profiles"`
}

// DefaultProfiles returns the built-in profiles available without a file.
func DefaultProfiles() map[string]Profile {
	return map[string]Profile{
		"default": {},
		"shallow": {Mode: "shallow"},
		"deep":    {Mode: "deep"},
	}
}

// Parse reads a profile file from bytes. Built-in profiles remain available
// unless the file overrides them by name.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse ranking profiles: %w", err)
	}
	merged := DefaultProfiles()
	for name, profile := range f.Profiles {
		merged[name] = profile
	}
	f.Profiles = merged
	return &f, nil
}

// Load reads a profile file from disk.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ranking profiles: %w", err)
	}
	return Parse(data)
}

// Config resolves a named profile into a validated run configuration.
func (f *File) Config(name string) (rank.Config, error) {
	profile, ok := f.Profiles[name]
	if !ok {
		return rank.Config{}, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
	}
	return profile.Config()
}
