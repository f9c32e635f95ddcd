// Package graphmodel defines the typed C4 graph: Node, Edge, NodeKind, and
// the Graph container itself, plus the sentinel errors every constructor
// returns.
//
// Graph owns its nodes and edges outright. Callers (the detector, the DOT
// emitter, the layout optimizer) borrow it read-only, except for the
// optimizer which is the sole writer of node positions. Topology — the node
// and edge catalogs — is frozen the moment construction finishes; nothing
// under internal/ ever adds or removes a node or edge after the source
// adapter has built the graph.
//
// Errors:
//
//	ErrEmptyID       - a node ID, empty string, was rejected.
//	ErrDuplicateID   - AddNode called twice with the same ID.
//	ErrUnknownNode   - AddEdge/SetPosition referenced a node that doesn't exist.
//	ErrInvalidWeight - AddEdge given a negative or non-finite weight.
package graphmodel

import "errors"

// Sentinel errors for graph construction. Callers should branch on these
// with errors.Is; the messages are not part of the contract.
var (
	// ErrEmptyID indicates a node ID was the empty string.
	ErrEmptyID = errors.New("graphmodel: node ID is empty")

	// ErrDuplicateID indicates AddNode was called with an ID already present.
	ErrDuplicateID = errors.New("graphmodel: duplicate node ID")

	// ErrUnknownNode indicates an edge endpoint or position target does not exist.
	ErrUnknownNode = errors.New("graphmodel: unknown node")

	// ErrInvalidWeight indicates a negative or non-finite edge weight.
	ErrInvalidWeight = errors.New("graphmodel: invalid edge weight")
)

// NodeKind drives visual shape in the DOT emitter. It carries no semantic
// weight in the layout optimizer or the anti-pattern detector.
type NodeKind int

const (
	// System is a C4 "Software System" — the coarsest unit.
	System NodeKind = iota
	// Container is a deployable/runnable unit within a System.
	Container
	// Component is a logical building block within a Container.
	Component
	// Person is a human actor interacting with the system.
	Person
)

// String renders the NodeKind the way node labels and DOT tooltips expect.
func (k NodeKind) String() string {
	switch k {
	case System:
		return "System"
	case Container:
		return "Container"
	case Component:
		return "Component"
	case Person:
		return "Person"
	default:
		return "Unknown"
	}
}

// Position is a 2-D coordinate in layout space. It is the zero value
// (0, 0) — indistinguishable from "set to the origin" — until Set is true,
// which SetPosition flips the first time a position is written (by the
// optimizer, or by a source reading a stored position).
type Position struct {
	X, Y float64
	Set  bool
}

// Node is a single C4 element: a system, container, component, or person.
type Node struct {
	ID          string
	Name        string
	Kind        NodeKind
	Technology  string
	Description string
	Pos         Position
}

// Edge is a directed relationship between two nodes already present in the
// owning Graph. Multi-edges (repeated From/To pairs) and self-loops
// (From == To) are both permitted; see package doc and the layout/detector
// packages for how each treats them.
type Edge struct {
	From, To string
	Label    string
	Weight   float64
}
