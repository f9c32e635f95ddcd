package dotgen

import (
	"fmt"
	"strings"

	"github.com/archflow/c4flow/internal/detector"
	"github.com/archflow/c4flow/internal/graphmodel"
)

// nodeAnnotation collects every finding-derived DOT attribute for one node.
type nodeAnnotation struct {
	maxSeverity float64
	description string
	inCycle     bool
	isolated    bool
}

// ToDOT renders g and the Findings detected against it (or against a prior
// version of g with the same topology) into a Graphviz DOT document.
// Deterministic for a given (Graph, Findings) pair: nodes and edges are
// emitted in g's insertion order.
func ToDOT(g *graphmodel.Graph, findings []detector.Finding) string {
	ann := annotate(findings)
	cycleID := cycleMembership(findings)

	var sb strings.Builder
	sb.WriteString("digraph Architecture {\n")
	sb.WriteString("  bgcolor=\"#f8f8f8\";\n")
	sb.WriteString("  splines=curved;\n")
	sb.WriteString("  node [fontsize=10, fontcolor=\"#222222\"];\n")
	sb.WriteString("\n")

	nodes := g.Nodes()
	allPositioned := len(nodes) > 0
	for _, n := range nodes {
		if !n.Pos.Set {
			allPositioned = false
			break
		}
	}

	for _, n := range nodes {
		writeNode(&sb, n, ann[n.ID], allPositioned)
	}

	sb.WriteString("\n")

	for _, e := range g.Edges() {
		writeEdge(&sb, e, cycleID)
	}

	sb.WriteString("}\n")

	return sb.String()
}

func writeNode(sb *strings.Builder, n *graphmodel.Node, a nodeAnnotation, allPositioned bool) {
	fill := colorForSeverity(a.maxSeverity)

	style := "filled"
	if a.isolated {
		style = "filled,dashed"
	}

	attrs := []string{
		fmt.Sprintf("shape=%s", shapeFor(n.Kind)),
		fmt.Sprintf("label=\"%s\"", escapeDOT(nodeLabel(n))),
		fmt.Sprintf("style=\"%s\"", style),
		fmt.Sprintf("fillcolor=\"%s\"", fill),
		fmt.Sprintf("penwidth=%.1f", penwidthForSeverity(a.maxSeverity)),
	}

	if a.inCycle {
		attrs = append(attrs, "peripheries=2")
	}
	if a.maxSeverity >= 0.7 {
		attrs = append(attrs, "fontname=\"Helvetica-Bold\"")
	}
	if a.description != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=\"%.2f: %s\"", a.maxSeverity, escapeDOT(a.description)))
	}
	if allPositioned {
		attrs = append(attrs, fmt.Sprintf("pos=\"%g,%g!\"", n.Pos.X, n.Pos.Y))
	}

	fmt.Fprintf(sb, "  \"%s\" [%s];\n", escapeDOT(n.ID), strings.Join(attrs, ", "))
}

func writeEdge(sb *strings.Builder, e graphmodel.Edge, cycleID map[string]int) {
	attrs := []string{}
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=\"%s\"", escapeDOT(e.Label)))
	}

	if sameCycle(e.From, e.To, cycleID) {
		attrs = append(attrs, "color=\"#ff4444\"", "penwidth=3")
	} else {
		attrs = append(attrs, "color=\"#888888\"", "penwidth=1.5")
	}

	fmt.Fprintf(sb, "  \"%s\" -> \"%s\" [%s];\n", escapeDOT(e.From), escapeDOT(e.To), strings.Join(attrs, ", "))
}

func sameCycle(from, to string, cycleID map[string]int) bool {
	a, aok := cycleID[from]
	b, bok := cycleID[to]
	return aok && bok && a == b
}

func nodeLabel(n *graphmodel.Node) string {
	if n.Technology != "" {
		return fmt.Sprintf("%s\\n[%s]", n.Name, n.Technology)
	}
	return n.Name
}

// penwidthForSeverity scales border weight with severity: 1.0 at the
// healthy baseline, up to 3.0 at maximum severity.
func penwidthForSeverity(severity float64) float64 {
	if severity <= 0 {
		return 1.0
	}
	w := 1.0 + severity*2.0
	if w > 3.0 {
		w = 3.0
	}
	return w
}

// annotate folds the Finding list into one nodeAnnotation per touched node,
// keeping each node's highest-severity finding for color/tooltip/bold
// purposes. Findings arrive pre-ordered (Cycle, Bottleneck, OverCoupling,
// Isolated); ties keep the first (highest-priority-kind) finding seen.
func annotate(findings []detector.Finding) map[string]nodeAnnotation {
	ann := make(map[string]nodeAnnotation)

	apply := func(id string, severity float64, desc string, inCycle, isolated bool) {
		cur := ann[id]
		if inCycle {
			cur.inCycle = true
		}
		if isolated {
			cur.isolated = true
		}
		if severity > cur.maxSeverity || cur.description == "" {
			cur.maxSeverity = severity
			cur.description = desc
		}
		ann[id] = cur
	}

	for _, f := range findings {
		switch f.Kind {
		case detector.Cycle:
			desc := "cycle member"
			if len(f.Nodes) == 1 {
				desc = "self-loop"
			}
			for _, id := range f.Nodes {
				apply(id, f.Severity, desc, true, false)
			}
		case detector.Bottleneck:
			apply(f.Node, f.Severity, fmt.Sprintf("bottleneck: in-degree %d", f.InDegree), false, false)
		case detector.OverCoupling:
			apply(f.Node, f.Severity, fmt.Sprintf("over-coupled: out-degree %d", f.OutDegree), false, false)
		case detector.Isolated:
			apply(f.Node, f.Severity, "isolated node", false, true)
		}
	}

	return ann
}

// cycleMembership assigns each Cycle finding's members a shared integer ID
// so writeEdge can test whether two endpoints sit in the same SCC.
func cycleMembership(findings []detector.Finding) map[string]int {
	ids := make(map[string]int)
	next := 0
	for _, f := range findings {
		if f.Kind != detector.Cycle {
			continue
		}
		for _, id := range f.Nodes {
			ids[id] = next
		}
		next++
	}
	return ids
}

// escapeDOT quotes a string for safe embedding inside a DOT quoted
// identifier: internal double quotes become single quotes (a literal
// backslash-quote would otherwise require a second escaping pass at every
// call site), and newlines collapse to spaces.
func escapeDOT(s string) string {
	s = strings.ReplaceAll(s, "\"", "'")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
