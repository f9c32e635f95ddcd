package layout

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/archflow/c4flow/internal/graphmodel"
)

func chainGraph(t *testing.T) *graphmodel.Graph {
	t.Helper()
	g := graphmodel.NewGraph()
	if err := g.AddNode("A", "A", graphmodel.Container, "", ""); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode("B", "B", graphmodel.Container, "", ""); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode("C", "C", graphmodel.Container, "", ""); err != nil {
		t.Fatal(err)
	}
	_ = g.AddEdge("A", "B", "", 1)
	_ = g.AddEdge("B", "C", "", 1)

	return g
}

func TestOptimizeDeterminism(t *testing.T) {
	cfg := DefaultConfig()

	g1 := chainGraph(t)
	stats1, err := Optimize(g1, cfg)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	g2 := chainGraph(t)
	stats2, err := Optimize(g2, cfg)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	// DurationMs is wall-clock and may differ; everything else must match.
	stats1.DurationMs = 0
	stats2.DurationMs = 0
	if stats1 != stats2 {
		t.Errorf("stats differ across runs: %+v vs %+v", stats1, stats2)
	}

	for _, id := range []string{"A", "B", "C"} {
		p1, p2 := g1.Node(id).Pos, g2.Node(id).Pos
		if p1 != p2 {
			t.Errorf("position of %s differs: %+v vs %+v", id, p1, p2)
		}
	}
}

func TestOptimizeTopologyPreserved(t *testing.T) {
	g := chainGraph(t)
	wantNodes, wantEdges := g.NodeCount(), g.EdgeCount()

	if _, err := Optimize(g, DefaultConfig()); err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	if g.NodeCount() != wantNodes || g.EdgeCount() != wantEdges {
		t.Errorf("topology changed: nodes %d->%d edges %d->%d", wantNodes, g.NodeCount(), wantEdges, g.EdgeCount())
	}
	if got := g.OutNeighbors("A"); len(got) != 1 || got[0] != "B" {
		t.Errorf("OutNeighbors(A) = %v, want [B]", got)
	}
}

func TestOptimizePositionsFinite(t *testing.T) {
	g := chainGraph(t)
	cfg := DefaultConfig()

	if _, err := Optimize(g, cfg); err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	half := math.Sqrt(cfg.Area) / 2
	for _, n := range g.Nodes() {
		if !n.Pos.Set {
			t.Errorf("node %s has no position set", n.ID)
		}
		if math.IsNaN(n.Pos.X) || math.IsInf(n.Pos.X, 0) || math.IsNaN(n.Pos.Y) || math.IsInf(n.Pos.Y, 0) {
			t.Errorf("node %s has non-finite position %+v", n.ID, n.Pos)
		}
		if n.Pos.X < -half-1e-9 || n.Pos.X > half+1e-9 || n.Pos.Y < -half-1e-9 || n.Pos.Y > half+1e-9 {
			t.Errorf("node %s position %+v outside frame half=%v", n.ID, n.Pos, half)
		}
	}
}

func TestOptimizeEmptyGraph(t *testing.T) {
	g := graphmodel.NewGraph()
	stats, err := Optimize(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if stats.NodeCount != 0 || stats.IterationsRun != 0 {
		t.Errorf("stats for empty graph = %+v, want zero work", stats)
	}
}

func TestOptimizeSingleNode(t *testing.T) {
	g := graphmodel.NewGraph()
	_ = g.AddNode("solo", "Solo", graphmodel.Component, "", "")

	if _, err := Optimize(g, DefaultConfig()); err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	pos := g.Node("solo").Pos
	if pos.X != 0 || pos.Y != 0 {
		t.Errorf("single node position = %+v, want origin", pos)
	}
}

func TestOptimizeFinalTemperatureNotZero(t *testing.T) {
	g := chainGraph(t)
	cfg := DefaultConfig()
	stats, err := Optimize(g, cfg)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	want := cfg.InitialTemperature * (1 - float64(cfg.Iterations-1)/float64(cfg.Iterations))
	if math.Abs(stats.FinalTemperature-want) > 1e-12 {
		t.Errorf("FinalTemperature = %v, want %v (not the zero-reporting bug)", stats.FinalTemperature, want)
	}
	if stats.FinalTemperature == 0 {
		t.Errorf("FinalTemperature reported as zero, want last-iteration temperature")
	}
}

func TestOptimizeInvalidConfig(t *testing.T) {
	g := chainGraph(t)

	tests := []struct {
		name string
		cfg  LayoutConfig
	}{
		{"non-positive area", LayoutConfig{Iterations: 10, InitialTemperature: 0.2, Area: 0}},
		{"negative area", LayoutConfig{Iterations: 10, InitialTemperature: 0.2, Area: -5}},
		{"negative iterations", LayoutConfig{Iterations: -1, InitialTemperature: 0.2, Area: 100}},
		{"NaN temperature", LayoutConfig{Iterations: 10, InitialTemperature: math.NaN(), Area: 100}},
		{"Inf temperature", LayoutConfig{Iterations: 10, InitialTemperature: math.Inf(1), Area: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Optimize(g, tt.cfg); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Optimize(%+v) error = %v, want ErrInvalidConfig", tt.cfg, err)
			}
		})
	}
}

func TestOptimizeZeroIterations(t *testing.T) {
	g := chainGraph(t)
	cfg := DefaultConfig()
	cfg.Iterations = 0

	stats, err := Optimize(g, cfg)
	if err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	if stats.IterationsRun != 0 {
		t.Errorf("IterationsRun = %d, want 0", stats.IterationsRun)
	}
	// Positions are still set (initial placement), just never displaced.
	for _, n := range g.Nodes() {
		if !n.Pos.Set {
			t.Errorf("node %s has no position after zero-iteration optimize", n.ID)
		}
	}
}

// When every node sits inside one grid cell, the bucketed kernel sees all
// pairs and must reproduce the quadratic kernel exactly.
func TestBucketedKernelMatchesQuadraticWithinOneCell(t *testing.T) {
	const n = 8

	g := graphmodel.NewGraph()
	for i := 0; i < n; i++ {
		id := nodeID(i)
		_ = g.AddNode(id, id, graphmodel.Component, "", "")
	}
	for i := 1; i < n; i++ {
		_ = g.AddEdge(nodeID(i), nodeID(i-1), "", 1)
	}

	nodes := g.Nodes()
	idx := make(map[string]int, n)
	for i, nd := range nodes {
		idx[nd.ID] = i
	}

	// Tight cluster: every pair well inside a single cell of side k.
	k := 10.0
	pos := make([]vec2, n)
	for i := range pos {
		pos[i] = vec2{X: 1 + 0.3*float64(i), Y: 1 + 0.2*float64(i%3)}
	}
	edges := g.Edges()

	dQuad := quadraticKernel(pos, edges, idx, k)
	dBucket := bucketedKernel(pos, edges, idx, k)

	for i := range dQuad {
		if dQuad[i].sub(dBucket[i]).length() > 1e-9 {
			t.Errorf("node %d: quadratic %+v vs bucketed %+v", i, dQuad[i], dBucket[i])
		}
	}
}

// Above the size threshold Optimize switches to the bucketed kernel; its
// output must still honor the finiteness and in-frame guarantees, and stay
// deterministic.
func TestOptimizeLargeGraphBucketedPath(t *testing.T) {
	const n = 260 // above bucketedThreshold

	build := func() *graphmodel.Graph {
		g := graphmodel.NewGraph()
		for i := 0; i < n; i++ {
			id := nodeID(i)
			_ = g.AddNode(id, id, graphmodel.Component, "", "")
		}
		for i := 1; i < n; i++ {
			_ = g.AddEdge(nodeID(i), nodeID(i-1), "", 1)
		}
		return g
	}

	cfg := DefaultConfig()
	cfg.Iterations = 20

	g1 := build()
	if _, err := Optimize(g1, cfg); err != nil {
		t.Fatalf("Optimize: %v", err)
	}

	half := math.Sqrt(cfg.Area) / 2
	for _, nd := range g1.Nodes() {
		if !nd.Pos.Set {
			t.Fatalf("node %s has no position", nd.ID)
		}
		if math.IsNaN(nd.Pos.X) || math.IsNaN(nd.Pos.Y) {
			t.Fatalf("node %s has NaN position", nd.ID)
		}
		if nd.Pos.X < -half || nd.Pos.X > half || nd.Pos.Y < -half || nd.Pos.Y > half {
			t.Errorf("node %s position %+v outside frame half=%v", nd.ID, nd.Pos, half)
		}
	}

	g2 := build()
	if _, err := Optimize(g2, cfg); err != nil {
		t.Fatalf("Optimize: %v", err)
	}
	for i, nd := range g1.Nodes() {
		if nd.Pos != g2.Nodes()[i].Pos {
			t.Errorf("node %s position differs across identical runs", nd.ID)
		}
	}
}

func nodeID(i int) string {
	return "n" + strconv.Itoa(i)
}
