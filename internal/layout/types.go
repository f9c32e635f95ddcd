// Package layout implements the Fruchterman–Reingold force-directed layout
// optimizer: given a graphmodel.Graph and a LayoutConfig, it mutates every
// node's position in place and returns a summary of the run.
//
// Errors:
//
//	ErrInvalidConfig - non-positive area, negative iterations, or a
//	                   non-finite initial temperature.
package layout

import "errors"

// ErrInvalidConfig indicates a LayoutConfig value is out of range: area
// must be > 0, iterations must be >= 0, and initial temperature must be
// finite.
var ErrInvalidConfig = errors.New("layout: invalid config")

// LayoutConfig parameterizes one Optimize call. The zero value is not
// valid on its own; use DefaultConfig for a usable starting point.
type LayoutConfig struct {
	// Iterations is the number of cooling steps to run. 0 is legal and
	// performs no work beyond deterministic initial placement.
	Iterations int `yaml:"iterations"`

	// InitialTemperature (T0) bounds the maximum per-iteration
	// displacement, in units of the frame half-width. Defaults to 0.2.
	InitialTemperature float64 `yaml:"initial_temperature"`

	// Area is the frame's total area; the frame is a square of side
	// sqrt(Area) centered on the origin. Must be > 0. Defaults to 2000.0.
	Area float64 `yaml:"area"`

	// Seed drives the deterministic pseudo-random initial placement.
	// The same Seed, Graph, and remaining config fields always produce
	// the same positions.
	Seed uint64 `yaml:"seed"`
}

// DefaultConfig returns the documented defaults: 150 iterations,
// T0 = 0.2, area = 2000.0, and a fixed, documented seed — a value
// constructor, not shared mutable state.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Iterations:         150,
		InitialTemperature: 0.2,
		Area:               2000.0,
		Seed:               defaultSeed,
	}
}

// defaultSeed is the documented constant used when no seed is supplied,
// fixed so test fixtures and golden output stay reproducible.
const defaultSeed uint64 = 0xC4_0000_0001

// OptimizationStats summarizes one Optimize call.
type OptimizationStats struct {
	IterationsRun    int
	FinalTemperature float64
	DurationMs       int64
	NodeCount        int
	EdgeCount        int

	// NonFiniteGuards counts displacement components that came out NaN or
	// Inf and were replaced with 0.0 for that step. Zero in the common
	// case.
	NonFiniteGuards int
}
