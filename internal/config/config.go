// Package config provides application configuration management.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"graphmirror/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Output contains output configuration
	Output OutputConfig `json:"output"`

	// Selection contains default selection tunables; a profile file or
	// CLI flags override these per run.
	Selection SelectionConfig `json:"selection"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// OutputConfig contains output-related settings
type OutputConfig struct {
	// DefaultFormat is the default output format (cli, json)
	DefaultFormat string `json:"default_format"`

	// ShowTrace includes the per-iteration trace in output
	ShowTrace bool `json:"show_trace"`
}

// SelectionConfig contains default selection tunables
type SelectionConfig struct {
	// TargetInstanceCount is the default total number of instances to select
	TargetInstanceCount int `json:"target_instance_count"`

	// RareBoostFactor amplifies priority of under-covered types (>= 1.0)
	RareBoostFactor float64 `json:"rare_boost_factor"`

	// MissingTypeThreshold is the fraction of source prevalence below
	// which a covered type still counts as underrepresented
	MissingTypeThreshold float64 `json:"missing_type_threshold"`

	// SupplementalBudgetFraction is the share of the target reserved for
	// the cross-pattern set-cover pass
	SupplementalBudgetFraction float64 `json:"supplemental_budget_fraction"`

	// StructuralWeight blends structural similarity into scoring when
	// the boost factor is not active
	StructuralWeight float64 `json:"structural_weight"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Output: OutputConfig{
			DefaultFormat: "cli",
			ShowTrace:     false,
		},
		Selection: SelectionConfig{
			TargetInstanceCount:        20,
			RareBoostFactor:            1.0,
			MissingTypeThreshold:       0.10,
			SupplementalBudgetFraction: 0.10,
			StructuralWeight:           0.3,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
