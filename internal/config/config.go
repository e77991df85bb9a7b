// Package config loads the region feature settings from a YAML file and
// provides default values for everything the file leaves out.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/region-features-mcp/internal/labelmap"
	"github.com/ironsheep/region-features-mcp/internal/regfeat"
	"github.com/ironsheep/region-features-mcp/internal/regfeat/morpho2d"
)

// Config represents the application configuration loaded from YAML.
type Config struct {
	// Analysis parameters
	Analysis struct {
		// Features lists the feature IDs computed when a request names none.
		Features []string `yaml:"features"`

		// UnitDisplay is one of none, column_names, new_columns, new_table.
		UnitDisplay string `yaml:"unitDisplay"`

		// Workers is the number of goroutines used by the histogram sweep.
		Workers int `yaml:"workers"`

		// MaskThreshold binarises non-label images: grey levels at or above
		// it become label 1.
		MaskThreshold uint8 `yaml:"maskThreshold"`
	} `yaml:"analysis"`

	// Calibration applied to label images, which carry no physical spacing.
	Calibration labelmap.Calibration `yaml:"calibration"`

	// Output parameters
	Output struct {
		// Format is csv or json.
		Format string `yaml:"format"`
	} `yaml:"output"`

	// Log parameters
	Log struct {
		// Level is a zerolog level name: debug, info, warn, error.
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	cfg := &Config{}

	for _, id := range morpho2d.DefaultFeatures {
		cfg.Analysis.Features = append(cfg.Analysis.Features, string(id))
	}
	cfg.Analysis.UnitDisplay = regfeat.UnitsColumnNames.String()
	cfg.Analysis.Workers = runtime.NumCPU()
	cfg.Analysis.MaskThreshold = 128

	cfg.Calibration = labelmap.DefaultCalibration()

	cfg.Output.Format = "csv"
	cfg.Log.Level = "info"

	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath == "" {
		return cfg, nil
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// Validate checks values that would only fail later, deep inside an
// analysis.
func (c *Config) Validate() error {
	if _, err := regfeat.ParseUnitDisplay(c.Analysis.UnitDisplay); err != nil {
		return err
	}
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Analysis.Workers)
	}
	if err := c.Calibration.Validate(); err != nil {
		return err
	}
	switch c.Output.Format {
	case "csv", "json":
	default:
		return fmt.Errorf("unknown output format %q (want csv or json)", c.Output.Format)
	}
	return nil
}

// UnitDisplay returns the parsed unit display policy.
func (c *Config) UnitDisplay() (regfeat.UnitDisplay, error) {
	return regfeat.ParseUnitDisplay(c.Analysis.UnitDisplay)
}

// FeatureIDs returns the default features as IDs.
func (c *Config) FeatureIDs() []regfeat.ID {
	ids := make([]regfeat.ID, len(c.Analysis.Features))
	for i, f := range c.Analysis.Features {
		ids[i] = regfeat.ID(f)
	}
	return ids
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}
	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}
