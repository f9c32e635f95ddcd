package detector

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/archflow/c4flow/internal/graphmodel"
)

// Detect runs the full anti-pattern sweep over g and returns Findings in
// a fixed order: Cycle (by earliest-inserted member), then
// Bottleneck, then OverCoupling, then Isolated, each in node insertion
// order. g's topology is read only; Detect never mutates g.
func Detect(g *graphmodel.Graph, cfg AntiPatternConfig) ([]Finding, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	nodes := g.Nodes()
	order := make(map[string]int, len(nodes))
	for i, n := range nodes {
		order[n.ID] = i
	}

	cycles := detectCycles(nodes, order, g.Edges())

	inDeg, outDeg := degreeCounts(nodes, g.Edges())

	var findings []Finding
	findings = append(findings, cycles...)

	for _, n := range nodes {
		in := inDeg[n.ID]
		if in > cfg.BottleneckThreshold {
			findings = append(findings, Finding{
				Kind:     Bottleneck,
				Node:     n.ID,
				InDegree: in,
				Severity: float64(in-cfg.BottleneckThreshold) / float64(cfg.BottleneckThreshold),
			})
		}
	}

	for _, n := range nodes {
		out := outDeg[n.ID]
		if out > cfg.OverCouplingThreshold {
			findings = append(findings, Finding{
				Kind:      OverCoupling,
				Node:      n.ID,
				OutDegree: out,
				Severity:  float64(out-cfg.OverCouplingThreshold) / float64(cfg.OverCouplingThreshold),
			})
		}
	}

	for _, n := range nodes {
		if inDeg[n.ID]+outDeg[n.ID] == 0 {
			findings = append(findings, Finding{
				Kind:     Isolated,
				Node:     n.ID,
				Severity: 0.3,
			})
		}
	}

	return findings, nil
}

func validateConfig(cfg AntiPatternConfig) error {
	if cfg.BottleneckThreshold < 1 {
		return fmt.Errorf("Detect: %w: bottleneck threshold must be >= 1, got %d", ErrInvalidConfig, cfg.BottleneckThreshold)
	}
	if cfg.OverCouplingThreshold < 1 {
		return fmt.Errorf("Detect: %w: over-coupling threshold must be >= 1, got %d", ErrInvalidConfig, cfg.OverCouplingThreshold)
	}

	return nil
}

// detectCycles finds every SCC of size >= 2 via gonum's Tarjan implementation
// plus every self-loop, and returns them as Cycle Findings ordered by the
// insertion index of each cycle's earliest member.
//
// Self-loops are folded in separately rather than fed into the gonum graph:
// a Tarjan SCC of size 1 never indicates a self-loop on its own (gonum does
// not model self-loops as producing a distinct SCC), so a plain edge scan
// for From == To is simpler and just as linear-time.
func detectCycles(nodes []*graphmodel.Node, order map[string]int, edges []graphmodel.Edge) []Finding {
	dg := simple.NewDirectedGraph()
	for i := range nodes {
		dg.AddNode(simple.Node(int64(i)))
	}

	selfLoop := make(map[string]bool)
	for _, e := range edges {
		if e.From == e.To {
			selfLoop[e.From] = true
			continue
		}
		u, uok := order[e.From]
		v, vok := order[e.To]
		if !uok || !vok {
			continue
		}
		dg.SetEdge(dg.NewEdge(simple.Node(int64(u)), simple.Node(int64(v))))
	}

	type pending struct {
		finding  Finding
		firstIdx int
	}
	var all []pending

	for _, scc := range topo.TarjanSCC(dg) {
		if len(scc) < 2 {
			continue
		}
		members := make([]string, 0, len(scc))
		for _, n := range scc {
			members = append(members, nodes[n.ID()].ID)
		}
		sort.Slice(members, func(i, j int) bool {
			return order[members[i]] < order[members[j]]
		})
		all = append(all, pending{
			finding:  Finding{Kind: Cycle, Nodes: members, Severity: 1.0},
			firstIdx: order[members[0]],
		})
	}

	for _, n := range nodes {
		if selfLoop[n.ID] {
			all = append(all, pending{
				finding:  Finding{Kind: Cycle, Nodes: []string{n.ID}, Severity: 1.0},
				firstIdx: order[n.ID],
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].firstIdx < all[j].firstIdx
	})

	out := make([]Finding, len(all))
	for i, p := range all {
		out[i] = p.finding
	}

	return out
}

// degreeCounts returns in-/out-degree per node, counting multi-edges but
// never counting a self-loop toward either direction, matching the
// bottleneck/over-coupling heuristics' exclusion of self-loops.
func degreeCounts(nodes []*graphmodel.Node, edges []graphmodel.Edge) (in, out map[string]int) {
	in = make(map[string]int, len(nodes))
	out = make(map[string]int, len(nodes))
	for _, n := range nodes {
		in[n.ID] = 0
		out[n.ID] = 0
	}

	for _, e := range edges {
		if e.From == e.To {
			continue
		}
		out[e.From]++
		in[e.To]++
	}

	return in, out
}
