package detector

import (
	"errors"
	"reflect"
	"testing"

	"github.com/archflow/c4flow/internal/graphmodel"
)

func mustAddNode(t *testing.T, g *graphmodel.Graph, id string) {
	t.Helper()
	if err := g.AddNode(id, id, graphmodel.Container, "", ""); err != nil {
		t.Fatalf("AddNode(%s): %v", id, err)
	}
}

func mustAddEdge(t *testing.T, g *graphmodel.Graph, from, to string) {
	t.Helper()
	if err := g.AddEdge(from, to, "", 1); err != nil {
		t.Fatalf("AddEdge(%s,%s): %v", from, to, err)
	}
}

// S1 - linear chain: no Findings.
func TestDetectLinearChainNoFindings(t *testing.T) {
	g := graphmodel.NewGraph()
	for _, id := range []string{"A", "B", "C"} {
		mustAddNode(t, g, id)
	}
	mustAddEdge(t, g, "A", "B")
	mustAddEdge(t, g, "B", "C")

	findings, err := Detect(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none", findings)
	}
}

// S2 - three-node cycle.
func TestDetectThreeNodeCycle(t *testing.T) {
	g := graphmodel.NewGraph()
	for _, id := range []string{"A", "B", "C"} {
		mustAddNode(t, g, id)
	}
	mustAddEdge(t, g, "A", "B")
	mustAddEdge(t, g, "B", "C")
	mustAddEdge(t, g, "C", "A")

	findings, err := Detect(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want exactly one Cycle", findings)
	}
	f := findings[0]
	if f.Kind != Cycle || f.Severity != 1.0 {
		t.Errorf("finding = %+v, want Cycle severity 1.0", f)
	}
	if !reflect.DeepEqual(f.Nodes, []string{"A", "B", "C"}) {
		t.Errorf("Nodes = %v, want [A B C] in insertion order", f.Nodes)
	}
}

// S3 - hub bottleneck.
func TestDetectHubBottleneck(t *testing.T) {
	g := graphmodel.NewGraph()
	mustAddNode(t, g, "H")
	for i := 1; i <= 6; i++ {
		id := string(rune('0' + i))
		mustAddNode(t, g, "N"+id)
		mustAddEdge(t, g, "N"+id, "H")
	}

	cfg := AntiPatternConfig{BottleneckThreshold: 5, OverCouplingThreshold: 8}
	findings, err := Detect(g, cfg)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want exactly one Bottleneck", findings)
	}
	f := findings[0]
	if f.Kind != Bottleneck || f.Node != "H" || f.InDegree != 6 {
		t.Errorf("finding = %+v, want Bottleneck{H, in=6}", f)
	}
	if f.Severity != 0.2 {
		t.Errorf("severity = %v, want 0.2", f.Severity)
	}
}

// S4 - isolated node.
func TestDetectIsolated(t *testing.T) {
	g := graphmodel.NewGraph()
	for _, id := range []string{"A", "B", "X"} {
		mustAddNode(t, g, id)
	}
	mustAddEdge(t, g, "A", "B")

	findings, err := Detect(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want exactly one Isolated", findings)
	}
	f := findings[0]
	if f.Kind != Isolated || f.Node != "X" || f.Severity != 0.3 {
		t.Errorf("finding = %+v, want Isolated{X, 0.3}", f)
	}
}

// S5 - mixed: Web->API->Cache->API->DB with a 2-cycle API<->Cache.
func TestDetectMixed(t *testing.T) {
	g := graphmodel.NewGraph()
	for _, id := range []string{"Web", "API", "Cache", "DB"} {
		mustAddNode(t, g, id)
	}
	mustAddEdge(t, g, "Web", "API")
	mustAddEdge(t, g, "API", "Cache")
	mustAddEdge(t, g, "Cache", "API")
	mustAddEdge(t, g, "API", "DB")

	findings, err := Detect(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want exactly one Cycle (API in-degree 2 stays under default threshold 5)", findings)
	}
	f := findings[0]
	if f.Kind != Cycle || !reflect.DeepEqual(f.Nodes, []string{"API", "Cache"}) {
		t.Errorf("finding = %+v, want Cycle{[API Cache]}", f)
	}
}

// S6 - self-loop excluded from degree heuristics.
func TestDetectSelfLoop(t *testing.T) {
	g := graphmodel.NewGraph()
	mustAddNode(t, g, "A")
	mustAddNode(t, g, "B")
	mustAddEdge(t, g, "A", "A")
	mustAddEdge(t, g, "A", "B")

	findings, err := Detect(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(findings) != 1 {
		t.Fatalf("findings = %+v, want exactly one Cycle (self-loop)", findings)
	}
	f := findings[0]
	if f.Kind != Cycle || !reflect.DeepEqual(f.Nodes, []string{"A"}) || f.Severity != 1.0 {
		t.Errorf("finding = %+v, want Cycle{[A], 1.0}", f)
	}
}

func TestDetectThresholdBoundary(t *testing.T) {
	build := func(inDegree int) *graphmodel.Graph {
		g := graphmodel.NewGraph()
		mustAddNode(t, g, "H")
		for i := 0; i < inDegree; i++ {
			id := "N" + string(rune('a'+i))
			mustAddNode(t, g, id)
			mustAddEdge(t, g, id, "H")
		}
		return g
	}

	cfg := AntiPatternConfig{BottleneckThreshold: 5, OverCouplingThreshold: 8}

	atThreshold, err := Detect(build(5), cfg)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	for _, f := range atThreshold {
		if f.Kind == Bottleneck {
			t.Errorf("in_degree == threshold produced a Bottleneck finding: %+v", f)
		}
	}

	overThreshold, err := Detect(build(6), cfg)
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	found := false
	for _, f := range overThreshold {
		if f.Kind == Bottleneck && f.Node == "H" {
			found = true
			if f.Severity != 1.0/5.0 {
				t.Errorf("severity at threshold+1 = %v, want 1/threshold = 0.2", f.Severity)
			}
		}
	}
	if !found {
		t.Error("in_degree == threshold+1 did not produce a Bottleneck finding")
	}
}

func TestDetectNoFindingsForAcyclicComponent(t *testing.T) {
	g := graphmodel.NewGraph()
	for _, id := range []string{"A", "B", "C", "D"} {
		mustAddNode(t, g, id)
	}
	mustAddEdge(t, g, "A", "B")
	mustAddEdge(t, g, "A", "C")
	mustAddEdge(t, g, "B", "D")
	mustAddEdge(t, g, "C", "D")

	findings, err := Detect(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	for _, f := range findings {
		if f.Kind == Cycle {
			t.Errorf("acyclic diamond produced a Cycle finding: %+v", f)
		}
	}
}

func TestDetectInvalidConfig(t *testing.T) {
	g := graphmodel.NewGraph()
	mustAddNode(t, g, "A")

	tests := []AntiPatternConfig{
		{BottleneckThreshold: 0, OverCouplingThreshold: 8},
		{BottleneckThreshold: 5, OverCouplingThreshold: 0},
		{BottleneckThreshold: -1, OverCouplingThreshold: 8},
	}
	for _, cfg := range tests {
		if _, err := Detect(g, cfg); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Detect(%+v) error = %v, want ErrInvalidConfig", cfg, err)
		}
	}
}

func TestDetectEmptyGraph(t *testing.T) {
	g := graphmodel.NewGraph()
	findings, err := Detect(g, DefaultConfig())
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if len(findings) != 0 {
		t.Errorf("findings = %+v, want none for empty graph", findings)
	}
}
