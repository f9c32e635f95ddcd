// Package engine wires the source, layout, detector, DOT emitter, and
// telemetry packages into a single pipeline: a Source produces a Graph,
// layout.Optimize and detector.Detect run over it, and dotgen.ToDOT
// renders the result. Telemetry is best-effort and never affects what Run
// returns.
package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/archflow/c4flow/internal/detector"
	"github.com/archflow/c4flow/internal/layout"
)

// Config aggregates every value needed to run one pipeline invocation. It
// is a plain value type — never shared process state — constructed either
// by DefaultConfig or by loading a YAML file with LoadConfig.
type Config struct {
	SourceFormat string                     `yaml:"source_format"`
	Layout       layout.LayoutConfig        `yaml:"layout"`
	AntiPattern  detector.AntiPatternConfig `yaml:"anti_pattern"`
	Sink         string                     `yaml:"sink"`
}

// DefaultConfig returns the documented defaults for every sub-config: JSON
// source, layout.DefaultConfig, detector.DefaultConfig, console sink.
func DefaultConfig() Config {
	return Config{
		SourceFormat: "json",
		Layout:       layout.DefaultConfig(),
		AntiPattern:  detector.DefaultConfig(),
		Sink:         "console",
	}
}

// LoadConfig reads a YAML file at path and overlays it onto DefaultConfig.
// A missing file is not an error; it yields the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("engine.LoadConfig: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("engine.LoadConfig: parsing %s: %w", path, err)
	}

	return cfg, nil
}
