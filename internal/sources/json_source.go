package sources

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/archflow/c4flow/internal/graphmodel"
)

// modelJSON decodes the nodes and edges of the bridge's Model JSON contract
// ({nodes: [...], edges: [...], node_count, edge_count}); node_count and
// edge_count are not read.
type modelJSON struct {
	Nodes []modelNodeJSON `json:"nodes"`
	Edges []modelEdgeJSON `json:"edges"`
}

type modelNodeJSON struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	Position    *[2]float64 `json:"position"`
	Technology  string      `json:"technology,omitempty"`
	Description string      `json:"description,omitempty"`
}

type modelEdgeJSON struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Label  string   `json:"label,omitempty"`
	Weight *float64 `json:"weight,omitempty"`
}

// JSONSource decodes the Model JSON shape into a Graph.
type JSONSource struct{}

func (JSONSource) Load(input string) (*graphmodel.Graph, error) {
	var m modelJSON
	if err := json.Unmarshal([]byte(input), &m); err != nil {
		return nil, fmt.Errorf("JSONSource.Load: %w: %v", ErrMalformedInput, err)
	}
	if len(m.Nodes) == 0 {
		return nil, fmt.Errorf("JSONSource.Load: %w: no nodes", ErrMalformedInput)
	}

	g := graphmodel.NewGraph()

	for _, n := range m.Nodes {
		kind, err := kindFromString(n.Type)
		if err != nil {
			return nil, fmt.Errorf("JSONSource.Load: node %q: %w", n.ID, err)
		}
		if err := g.AddNode(n.ID, n.Name, kind, n.Technology, n.Description); err != nil {
			return nil, fmt.Errorf("JSONSource.Load: %w", err)
		}
		if n.Position != nil {
			if err := g.SetPosition(n.ID, n.Position[0], n.Position[1]); err != nil {
				return nil, fmt.Errorf("JSONSource.Load: %w", err)
			}
		}
	}

	for _, e := range m.Edges {
		if !g.HasNode(e.From) || !g.HasNode(e.To) {
			return nil, fmt.Errorf("JSONSource.Load: edge %s->%s: %w", e.From, e.To, ErrUnknownNode)
		}
		weight := 1.0
		if e.Weight != nil {
			weight = *e.Weight
		}
		if err := g.AddEdge(e.From, e.To, e.Label, weight); err != nil {
			return nil, fmt.Errorf("JSONSource.Load: %w", err)
		}
	}

	return g, nil
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
		return 0, fmt.Errorf("%w: unknown node kind %q", ErrMalformedInput, s)
	}
}
