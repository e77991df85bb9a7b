package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/region-features-mcp/internal/regfeat"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig_Missing(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "absent.yaml")} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%q) failed: %v", path, err)
		}
		if cfg.Analysis.UnitDisplay != "column_names" {
			t.Errorf("default unit display: got %q", cfg.Analysis.UnitDisplay)
		}
		if cfg.Calibration.X.Spacing != 1 || cfg.Calibration.Y.Spacing != 1 {
			t.Errorf("default calibration: got %+v", cfg.Calibration)
		}
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	path := writeConfig(t, `
analysis:
  features: [Area, EulerNumber_C8]
  unitDisplay: new_table
  workers: 3
calibration:
  x: {spacing: 0.25, unit: um}
  y: {spacing: 0.5, unit: um}
log:
  level: debug
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	ids := cfg.FeatureIDs()
	if len(ids) != 2 || ids[1] != "EulerNumber_C8" {
		t.Errorf("features: got %v", ids)
	}
	u, err := cfg.UnitDisplay()
	if err != nil || u != regfeat.UnitsNewTable {
		t.Errorf("unit display: got %v, %v", u, err)
	}
	if cfg.Analysis.Workers != 3 {
		t.Errorf("workers: got %d", cfg.Analysis.Workers)
	}
	if cfg.Calibration.X.Spacing != 0.25 || cfg.Calibration.Y.Unit != "um" {
		t.Errorf("calibration: got %+v", cfg.Calibration)
	}
	// untouched sections keep their defaults
	if cfg.Output.Format != "csv" || cfg.Analysis.MaskThreshold != 128 {
		t.Errorf("defaults lost: format %q, threshold %d", cfg.Output.Format, cfg.Analysis.MaskThreshold)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level: got %q", cfg.Log.Level)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "analysis: [unclosed"},
		{"unknown unit display", "analysis:\n  unitDisplay: sideways\n"},
		{"zero spacing", "calibration:\n  x: {spacing: 0}\n"},
		{"unknown format", "output:\n  format: xml\n"},
		{"negative workers", "analysis:\n  workers: -2\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCreateDefaultConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	if err := CreateDefaultConfigFile(path); err != nil {
		t.Fatalf("CreateDefaultConfigFile failed: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	want := DefaultConfig()
	if len(cfg.Analysis.Features) != len(want.Analysis.Features) {
		t.Errorf("features: got %v, want %v", cfg.Analysis.Features, want.Analysis.Features)
	}
	if cfg.Calibration != want.Calibration {
		t.Errorf("calibration: got %+v, want %+v", cfg.Calibration, want.Calibration)
	}
}
