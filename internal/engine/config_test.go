package engine

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SourceFormat != "json" {
		t.Errorf("SourceFormat = %q, want json", cfg.SourceFormat)
	}
	if cfg.Layout.Iterations != 150 {
		t.Errorf("Layout.Iterations = %d, want 150", cfg.Layout.Iterations)
	}
	if cfg.AntiPattern.BottleneckThreshold != 5 {
		t.Errorf("AntiPattern.BottleneckThreshold = %d, want 5", cfg.AntiPattern.BottleneckThreshold)
	}
	if cfg.Sink != "console" {
		t.Errorf("Sink = %q, want console", cfg.Sink)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c4flow.yaml")
	yaml := `
source_format: dsl
sink: prometheus
layout:
  iterations: 50
  initial_temperature: 0.1
  area: 900
  seed: 7
anti_pattern:
  bottleneck_threshold: 3
  over_coupling_threshold: 4
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.SourceFormat != "dsl" || cfg.Sink != "prometheus" {
		t.Errorf("cfg = %+v, unexpected source/sink", cfg)
	}
	if cfg.Layout.Iterations != 50 || cfg.Layout.Area != 900 || cfg.Layout.Seed != 7 {
		t.Errorf("cfg.Layout = %+v, unexpected values", cfg.Layout)
	}
	if cfg.AntiPattern.BottleneckThreshold != 3 || cfg.AntiPattern.OverCouplingThreshold != 4 {
		t.Errorf("cfg.AntiPattern = %+v, unexpected values", cfg.AntiPattern)
	}
}

func TestLoadConfigMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("not: valid: yaml: at: all:"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig with malformed YAML returned no error")
	}
}
