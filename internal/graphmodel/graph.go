package graphmodel

import (
	"fmt"
	"math"
)

// Graph is the in-memory C4 graph: an ordered node catalog, an ordered edge
// list, and an adjacency view derived from it. Insertion order is
// preserved on both catalogs so that detector and emitter output stays
// deterministic run to run.
//
// Concurrency: Graph carries no internal locking. Per the engine's
// concurrency model, a single Graph may be read by any number of goroutines
// calling Detect/ToDOT concurrently, provided none of them is running
// Optimize or otherwise mutating the graph at the same time. Callers that
// need finer-grained sharing must add their own synchronization; Graph
// itself assumes the standard shared-immutable/exclusive-mutable
// discipline documented for the engine as a whole.
type Graph struct {
	order []string         // node IDs in insertion order
	nodes map[string]*Node // node ID -> Node

	edges []Edge // edges in insertion order

	// outIdx/inIdx hold indices into edges for edges incident to each node,
	// split into outgoing and incoming. Updated on every AddEdge; topology
	// never shrinks after construction so appending is the only mutation.
	outIdx map[string][]int
	inIdx  map[string][]int
}

// NewGraph returns an empty Graph ready for AddNode/AddEdge calls.
func NewGraph() *Graph {
	return &Graph{
		nodes:  make(map[string]*Node),
		outIdx: make(map[string][]int),
		inIdx:  make(map[string][]int),
	}
}

// AddNode inserts a new node. Returns ErrEmptyID for an empty id, or
// ErrDuplicateID if id is already present.
func (g *Graph) AddNode(id, name string, kind NodeKind, technology, description string) error {
	if id == "" {
		return ErrEmptyID
	}
	if _, exists := g.nodes[id]; exists {
		return fmt.Errorf("AddNode(%q): %w", id, ErrDuplicateID)
	}

	g.nodes[id] = &Node{
		ID:          id,
		Name:        name,
		Kind:        kind,
		Technology:  technology,
		Description: description,
	}
	g.order = append(g.order, id)

	return nil
}

// AddEdge inserts a directed edge from -> to. Both endpoints must already
// exist (ErrUnknownNode otherwise); weight must be finite and non-negative
// (ErrInvalidWeight otherwise). The weight is stored as given; 0 is a valid
// finite weight and is not replaced by the 1.0 default, which the sources
// and the bridge apply when their input names no weight.
func (g *Graph) AddEdge(from, to, label string, weight float64) error {
	if _, ok := g.nodes[from]; !ok {
		return fmt.Errorf("AddEdge(%q -> %q): %w: %q", from, to, ErrUnknownNode, from)
	}
	if _, ok := g.nodes[to]; !ok {
		return fmt.Errorf("AddEdge(%q -> %q): %w: %q", from, to, ErrUnknownNode, to)
	}
	if weight < 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return fmt.Errorf("AddEdge(%q -> %q): %w: %v", from, to, ErrInvalidWeight, weight)
	}

	idx := len(g.edges)
	g.edges = append(g.edges, Edge{From: from, To: to, Label: label, Weight: weight})
	g.outIdx[from] = append(g.outIdx[from], idx)
	g.inIdx[to] = append(g.inIdx[to], idx)

	return nil
}

// SetPosition writes the layout position of an existing node. Returns
// ErrUnknownNode if id is not present.
func (g *Graph) SetPosition(id string, x, y float64) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("SetPosition(%q): %w", id, ErrUnknownNode)
	}
	n.Pos = Position{X: x, Y: y, Set: true}

	return nil
}

// Node returns the node with the given ID, or nil if it doesn't exist.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// HasNode reports whether id names an existing node.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Nodes returns all nodes in insertion order. The returned slice is a
// fresh copy of pointers into the Graph's storage — safe to range over,
// but node fields other than Pos must be treated as read-only by callers
// other than the layout optimizer.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, len(g.order))
	for i, id := range g.order {
		out[i] = g.nodes[id]
	}

	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	copy(out, g.edges)

	return out
}

// OutNeighbors returns the IDs this node has outgoing edges to, in
// edge-insertion order. A self-loop contributes its own ID.
func (g *Graph) OutNeighbors(id string) []string {
	idxs := g.outIdx[id]
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = g.edges[idx].To
	}

	return out
}

// InNeighbors returns the IDs this node has incoming edges from, in
// edge-insertion order. A self-loop contributes its own ID.
func (g *Graph) InNeighbors(id string) []string {
	idxs := g.inIdx[id]
	out := make([]string, len(idxs))
	for i, idx := range idxs {
		out[i] = g.edges[idx].From
	}

	return out
}

// OutDegree counts outgoing edges from id, including multi-edges and a
// self-loop (counted once, as the single outgoing side of it).
func (g *Graph) OutDegree(id string) int {
	return len(g.outIdx[id])
}

// InDegree counts incoming edges to id, including multi-edges and a
// self-loop (counted once, as the single incoming side of it).
func (g *Graph) InDegree(id string) int {
	return len(g.inIdx[id])
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.order)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// String implements fmt.Stringer with a compact size summary.
func (g *Graph) String() string {
	return fmt.Sprintf("graphmodel.Graph{nodes:%d, edges:%d}", g.NodeCount(), g.EdgeCount())
}
