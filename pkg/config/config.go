package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-paperchain/pkg/validation"
)

// ErrNoConfigPath is returned by Load for an empty path.
var ErrNoConfigPath = errors.New("config path is empty")

// Load reads a YAML config file over the defaults and validates the result
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrNoConfigPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults. Keys that are absent keep their
// default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	return errors.Join(
		validation.NewConfigValidator("analysis").
			RangeInt("max_ring_size", c.Analysis.MaxRingSize, validation.MinRingSize, validation.MaxRingSize).
			RangeInt("max_path_length", c.Analysis.MaxPathLength, 1, validation.MaxPathLength).
			OneOf("method", c.Analysis.Method, []string{"hill-reilly", "cremer-pople"}).
			Validate(),
		validation.NewConfigValidator("perception").
			When(c.Perception.Enabled, func(cv *validation.ConfigValidator) {
				cv.NonNegativeFloat("tolerance", c.Perception.Tolerance).
					NonNegativeFloat("min_distance", c.Perception.MinDistance).
					NonNegativeFloat("max_hydrogen_bond_length", c.Perception.MaxHydrogenBondLength)
			}).
			Validate(),
		validation.NewConfigValidator("logging").
			OneOf("level", c.Logging.Level, []string{"debug", "info", "warn", "warning", "error"}).
			OneOf("format", c.Logging.Format, []string{"json", "text", "console"}).
			Validate(),
		validation.NewConfigValidator("batch").
			Custom("workers", func() error { return validation.ValidateWorkers(c.Batch.Workers) }).
			Validate(),
	)
}
