// Package bridge exposes the five string-in/string-out operations a
// foreign-language host calls into: ParseDSL, OptimizeLayout,
// DetectAntiPatterns, GenerateDot, and Version, plus GenerateModel, which
// validates and re-encodes Model JSON for the CLI. Every entry point recovers
// from any panic — including ones raised by programming errors such as an
// out-of-bounds slice access deep in a dependency — and returns a
// structured Error as JSON instead, so a bridge call can never abort the
// host process.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/archflow/c4flow/internal/detector"
	"github.com/archflow/c4flow/internal/dotgen"
	"github.com/archflow/c4flow/internal/layout"
	"github.com/archflow/c4flow/internal/sources"
)

const engineVersion = "0.1.0"

// guard runs fn and converts any panic into the same Error shape a
// returned error would produce, so a bridge call can never take the host
// process down.
func guard(fn func() (string, error)) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = errorJSON("Internal", fmt.Sprintf("recovered panic: %v", r))
		}
	}()

	out, err := fn()
	if err != nil {
		return errorJSON(classify(err), err.Error())
	}
	return out
}

// classify maps an engine error onto the bridge's error taxonomy: config
// validation failures are InvalidConfig, everything else that surfaces
// through a bridge entry point is bad caller input.
func classify(err error) string {
	if errors.Is(err, layout.ErrInvalidConfig) || errors.Is(err, detector.ErrInvalidConfig) {
		return "InvalidConfig"
	}
	return "UserInput"
}

// ParseDSL parses a DSL document and returns its Model JSON representation.
func ParseDSL(dsl string) string {
	return guard(func() (string, error) {
		g, err := sources.DSLSource{}.Load(dsl)
		if err != nil {
			return "", err
		}
		return encodeModel(g, nil), nil
	})
}

// OptimizeLayout decodes a Model JSON document, runs layout.Optimize with
// the (optionally overridden) layout config, and returns the Optimized
// model JSON shape: the same nodes/edges plus optimization_stats.
func OptimizeLayout(modelInput, layoutConfigInput string) string {
	return guard(func() (string, error) {
		g, err := decodeModel(modelInput)
		if err != nil {
			return "", err
		}

		cfg, err := layoutConfigFromJSON(layoutConfigInput)
		if err != nil {
			return "", err
		}

		stats, err := layout.Optimize(g, cfg)
		if err != nil {
			return "", err
		}

		return encodeModel(g, &optimizationStats{
			Iterations:       stats.IterationsRun,
			DurationMs:       stats.DurationMs,
			FinalTemperature: stats.FinalTemperature,
		}), nil
	})
}

// DetectAntiPatterns decodes a Model JSON document, runs detector.Detect
// with the (optionally overridden) thresholds, and returns Findings JSON.
func DetectAntiPatterns(modelInput, detectionConfigInput string) string {
	return guard(func() (string, error) {
		g, err := decodeModel(modelInput)
		if err != nil {
			return "", err
		}

		cfg, err := detectionConfigFromJSON(detectionConfigInput)
		if err != nil {
			return "", err
		}

		findings, err := detector.Detect(g, cfg)
		if err != nil {
			return "", err
		}

		return encodeFindings(findings), nil
	})
}

// GenerateDot decodes a Model JSON document and a Findings JSON document
// and returns the rendered DOT text.
func GenerateDot(modelInput, findingsInput string) string {
	return guard(func() (string, error) {
		g, err := decodeModel(modelInput)
		if err != nil {
			return "", err
		}

		findings, err := decodeFindings(findingsInput)
		if err != nil {
			return "", err
		}

		return dotgen.ToDOT(g, findings), nil
	})
}

// GenerateModel decodes a Model JSON document and re-encodes it, validating
// shape and edge/node references the same way ParseDSL validates DSL text.
func GenerateModel(modelInput string) string {
	return guard(func() (string, error) {
		g, err := decodeModel(modelInput)
		if err != nil {
			return "", err
		}
		return encodeModel(g, nil), nil
	})
}

// Version returns a JSON object reporting the engine version.
func Version(_ string) string {
	return guard(func() (string, error) {
		b, err := json.Marshal(struct {
			Version string `json:"version"`
		}{Version: engineVersion})
		if err != nil {
			return "", err
		}
		return string(b), nil
	})
}
