// Package detector finds structural anti-patterns in a graphmodel.Graph:
// cycles, bottlenecks, over-coupling, and isolated nodes.
//
// Errors:
//
//	ErrInvalidConfig - a threshold in AntiPatternConfig is <= 0.
package detector

import "errors"

// ErrInvalidConfig indicates an AntiPatternConfig threshold is out of
// range: both BottleneckThreshold and OverCouplingThreshold must be >= 1.
var ErrInvalidConfig = errors.New("detector: invalid config")

// Kind identifies which anti-pattern a Finding reports.
type Kind int

const (
	Cycle Kind = iota
	Bottleneck
	OverCoupling
	Isolated
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Cycle:
		return "Cycle"
	case Bottleneck:
		return "Bottleneck"
	case OverCoupling:
		return "OverCoupling"
	case Isolated:
		return "Isolated"
	default:
		return "Unknown"
	}
}

// Finding is a single anti-pattern result. Only the fields relevant to Kind
// are meaningful: Nodes for Cycle; Node/InDegree for Bottleneck; Node/
// OutDegree for OverCoupling; Node for Isolated.
type Finding struct {
	Kind Kind

	// Nodes lists the strongly connected component's members, in ascending
	// insertion order, for a Cycle finding. Length 1 for a self-loop.
	Nodes []string

	// Node is the single node a Bottleneck, OverCoupling, or Isolated
	// finding is about.
	Node string

	InDegree  int
	OutDegree int

	Severity float64
}

// AntiPatternConfig parameterizes one Detect call.
type AntiPatternConfig struct {
	// BottleneckThreshold: a node with in-degree strictly greater than this
	// yields a Bottleneck finding. Must be >= 1.
	BottleneckThreshold int `yaml:"bottleneck_threshold"`

	// OverCouplingThreshold: a node with out-degree strictly greater than
	// this yields an OverCoupling finding. Must be >= 1.
	OverCouplingThreshold int `yaml:"over_coupling_threshold"`
}

// DefaultConfig returns the documented defaults: bottleneck threshold
// 5, over-coupling threshold 8.
func DefaultConfig() AntiPatternConfig {
	return AntiPatternConfig{
		BottleneckThreshold:   5,
		OverCouplingThreshold: 8,
	}
}
