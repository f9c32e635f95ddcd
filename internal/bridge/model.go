package bridge

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/archflow/c4flow/internal/detector"
	"github.com/archflow/c4flow/internal/graphmodel"
	"github.com/archflow/c4flow/internal/layout"
)

// modelJSON is the Model JSON / Optimized model JSON wire contract shared
// with foreign-language hosts.
type modelJSON struct {
	Nodes             []modelNode        `json:"nodes"`
	Edges             []modelEdge        `json:"edges"`
	NodeCount         int                `json:"node_count"`
	EdgeCount         int                `json:"edge_count"`
	OptimizationStats *optimizationStats `json:"optimization_stats,omitempty"`
}

type modelNode struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Position    *[2]float64 `json:"position"`
	Technology  string      `json:"technology,omitempty"`
	Description string      `json:"description,omitempty"`
}

type modelEdge struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Label  string   `json:"label,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

type optimizationStats struct {
	Iterations       int     `json:"iterations"`
	DurationMs       int64   `json:"duration_ms"`
	FinalTemperature float64 `json:"final_temperature"`
}

// findingsJSON is the Findings JSON wire contract.
type findingsJSON struct {
	Patterns []findingJSON `json:"patterns"`
	Count    int           `json:"count"`
}

type findingJSON struct {
	Type        string   `json:"type"`
	Severity    float64  `json:"severity"`
	Description string   `json:"description"`
	NodeID      string   `json:"node_id,omitempty"`
	Nodes       []string `json:"nodes,omitempty"`
	InDegree    *int     `json:"in_degree,omitempty"`
	OutDegree   *int     `json:"out_degree,omitempty"`
}

// detectionConfigJSON is the Config JSON contract for detection: an omitted
// or zero field means "use the default", and an empty config string means
// defaults for both.
type detectionConfigJSON struct {
	BottleneckThreshold   int `json:"bottleneck_threshold,omitempty"`
	OverCouplingThreshold int `json:"over_coupling_threshold,omitempty"`
}

// layoutConfigJSON mirrors layout.LayoutConfig for bridge callers; omitted
// fields fall back to layout.DefaultConfig's fields, and a field given as
// zero is applied as zero.
type layoutConfigJSON struct {
	Iterations         *int     `json:"iterations,omitempty"`
	InitialTemperature *float64 `json:"initial_temperature,omitempty"`
	Area               *float64 `json:"area,omitempty"`
	Seed               *uint64  `json:"seed,omitempty"`
}

func decodeModel(input string) (*graphmodel.Graph, error) {
	var m modelJSON
	if err := json.Unmarshal([]byte(input), &m); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	g := graphmodel.NewGraph()
	for _, n := range m.Nodes {
		kind, err := kindFromString(n.Type)
		if err != nil {
			return nil, fmt.Errorf("decode model: node %q: %w", n.ID, err)
		}
		if err := g.AddNode(n.ID, n.Name, kind, n.Technology, n.Description); err != nil {
			return nil, fmt.Errorf("decode model: %w", err)
		}
		if n.Position != nil {
			if err := g.SetPosition(n.ID, n.Position[0], n.Position[1]); err != nil {
				return nil, fmt.Errorf("decode model: %w", err)
			}
		}
	}
	for _, e := range m.Edges {
		weight := 1.0
		if e.Weight != nil {
			weight = *e.Weight
		}
		if err := g.AddEdge(e.From, e.To, e.Label, weight); err != nil {
			return nil, fmt.Errorf("decode model: %w", err)
		}
	}

	return g, nil
}

func encodeModel(g *graphmodel.Graph, stats *optimizationStats) string {
	m := modelJSON{
		NodeCount:         g.NodeCount(),
		EdgeCount:         g.EdgeCount(),
		OptimizationStats: stats,
	}
	for _, n := range g.Nodes() {
		var pos *[2]float64
		if n.Pos.Set {
			pos = &[2]float64{n.Pos.X, n.Pos.Y}
		}
		m.Nodes = append(m.Nodes, modelNode{
			ID:          n.ID,
			Name:        n.Name,
			Type:        n.Kind.String(),
			Position:    pos,
			Technology:  n.Technology,
			Description: n.Description,
		})
	}
	for _, e := range g.Edges() {
		weight := e.Weight
		m.Edges = append(m.Edges, modelEdge{From: e.From, To: e.To, Label: e.Label, Weight: &weight})
	}

	b, err := json.Marshal(m)
	if err != nil {
		return errorJSON("Internal", "failed to marshal model: "+err.Error())
	}
	return string(b)
}

func encodeFindings(findings []detector.Finding) string {
	fj := findingsJSON{Count: len(findings)}
	for _, f := range findings {
		item := findingJSON{
			Type:        f.Kind.String(),
			Severity:    f.Severity,
			Description: findingDescription(f),
		}
		switch f.Kind {
		case detector.Cycle:
			item.Nodes = f.Nodes
		case detector.Bottleneck:
			item.NodeID = f.Node
			in := f.InDegree
			item.InDegree = &in
		case detector.OverCoupling:
			item.NodeID = f.Node
			out := f.OutDegree
			item.OutDegree = &out
		case detector.Isolated:
			item.NodeID = f.Node
		}
		fj.Patterns = append(fj.Patterns, item)
	}

	b, err := json.Marshal(fj)
	if err != nil {
		return errorJSON("Internal", "failed to marshal findings: "+err.Error())
	}
	return string(b)
}

func decodeFindings(input string) ([]detector.Finding, error) {
	var fj findingsJSON
	if err := json.Unmarshal([]byte(input), &fj); err != nil {
		return nil, fmt.Errorf("decode findings: %w", err)
	}

	findings := make([]detector.Finding, 0, len(fj.Patterns))
	for _, item := range fj.Patterns {
		f := detector.Finding{Severity: item.Severity}
		switch item.Type {
		case "Cycle":
			f.Kind = detector.Cycle
			f.Nodes = item.Nodes
		case "Bottleneck":
			f.Kind = detector.Bottleneck
			f.Node = item.NodeID
			if item.InDegree != nil {
				f.InDegree = *item.InDegree
			}
		case "OverCoupling":
			f.Kind = detector.OverCoupling
			f.Node = item.NodeID
			if item.OutDegree != nil {
				f.OutDegree = *item.OutDegree
			}
		case "Isolated":
			f.Kind = detector.Isolated
			f.Node = item.NodeID
		default:
			return nil, fmt.Errorf("decode findings: unknown finding type %q", item.Type)
		}
		findings = append(findings, f)
	}

	return findings, nil
}

func findingDescription(f detector.Finding) string {
	switch f.Kind {
	case detector.Cycle:
		if len(f.Nodes) == 1 {
			return "self-loop"
		}
		return "cycle among " + fmt.Sprint(len(f.Nodes)) + " nodes"
	case detector.Bottleneck:
		return fmt.Sprintf("in-degree %d exceeds threshold", f.InDegree)
	case detector.OverCoupling:
		return fmt.Sprintf("out-degree %d exceeds threshold", f.OutDegree)
	case detector.Isolated:
		return "no incoming or outgoing edges"
	default:
		return ""
	}
}

func kindFromString(s string) (graphmodel.NodeKind, error) {
	switch strings.ToLower(s) {
	case "system":
		return graphmodel.System, nil
	case "container":
		return graphmodel.Container, nil
	case "component":
		return graphmodel.Component, nil
	case "person":
		return graphmodel.Person, nil
	default:
		return 0, fmt.Errorf("unknown node type %q", s)
	}
}

func detectionConfigFromJSON(input string) (detector.AntiPatternConfig, error) {
	cfg := detector.DefaultConfig()
	if input == "" {
		return cfg, nil
	}

	var dc detectionConfigJSON
	if err := json.Unmarshal([]byte(input), &dc); err != nil {
		return cfg, fmt.Errorf("decode detection config: %w", err)
	}
	if dc.BottleneckThreshold != 0 {
		cfg.BottleneckThreshold = dc.BottleneckThreshold
	}
	if dc.OverCouplingThreshold != 0 {
		cfg.OverCouplingThreshold = dc.OverCouplingThreshold
	}

	return cfg, nil
}

func layoutConfigFromJSON(input string) (layout.LayoutConfig, error) {
	cfg := layout.DefaultConfig()
	if input == "" {
		return cfg, nil
	}

	var lc layoutConfigJSON
	if err := json.Unmarshal([]byte(input), &lc); err != nil {
		return cfg, fmt.Errorf("decode layout config: %w", err)
	}
	if lc.Iterations != nil {
		cfg.Iterations = *lc.Iterations
	}
	if lc.InitialTemperature != nil {
		cfg.InitialTemperature = *lc.InitialTemperature
	}
	if lc.Area != nil {
		cfg.Area = *lc.Area
	}
	if lc.Seed != nil {
		cfg.Seed = *lc.Seed
	}

	return cfg, nil
}
