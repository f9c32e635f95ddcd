package sources

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/archflow/c4flow/internal/graphmodel"
)

// DSLSource parses a deliberately minimal, regex-level line language:
//
//	system "id" "Name" ["Technology"] ["Description"]
//	container "id" "Name" ["Technology"] ["Description"]
//	component "id" "Name" ["Technology"] ["Description"]
//	person "id" "Name" ["Technology"] ["Description"]
//	rel id -> id ["label"] [weight]
//
// Blank lines and lines starting with # are ignored. The engine requires
// only a valid Graph, not any particular syntax.
type DSLSource struct{}

var (
	nodeLineRe = regexp.MustCompile(`^(system|container|component|person)\s+"([^"]*)"\s+"([^"]*)"(?:\s+"([^"]*)")?(?:\s+"([^"]*)")?\s*$`)
	relLineRe  = regexp.MustCompile(`^rel\s+(\S+)\s*->\s*(\S+)(?:\s+"([^"]*)")?(?:\s+([0-9.]+))?\s*$`)
)

func (DSLSource) Load(input string) (*graphmodel.Graph, error) {
	lines := strings.Split(input, "\n")

	g := graphmodel.NewGraph()
	sawAny := false

	for lineNo, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "rel"):
			m := relLineRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("DSLSource.Load: line %d: %w: %q", lineNo+1, ErrMalformedInput, raw)
			}
			from, to, label, weightStr := m[1], m[2], m[3], m[4]
			if !g.HasNode(from) || !g.HasNode(to) {
				return nil, fmt.Errorf("DSLSource.Load: line %d: %w: %s -> %s", lineNo+1, ErrUnknownNode, from, to)
			}
			weight := 1.0
			if weightStr != "" {
				w, err := strconv.ParseFloat(weightStr, 64)
				if err != nil {
					return nil, fmt.Errorf("DSLSource.Load: line %d: %w: invalid weight %q", lineNo+1, ErrMalformedInput, weightStr)
				}
				weight = w
			}
			if err := g.AddEdge(from, to, label, weight); err != nil {
				return nil, fmt.Errorf("DSLSource.Load: line %d: %w", lineNo+1, err)
			}
			sawAny = true

		default:
			m := nodeLineRe.FindStringSubmatch(line)
			if m == nil {
				return nil, fmt.Errorf("DSLSource.Load: line %d: %w: %q", lineNo+1, ErrMalformedInput, raw)
			}
			kind, err := kindFromString(m[1])
			if err != nil {
				return nil, fmt.Errorf("DSLSource.Load: line %d: %w", lineNo+1, err)
			}
			id, name, technology, description := m[2], m[3], m[4], m[5]
			if err := g.AddNode(id, name, kind, technology, description); err != nil {
				return nil, fmt.Errorf("DSLSource.Load: line %d: %w", lineNo+1, err)
			}
			sawAny = true
		}
	}

	if !sawAny {
		return nil, fmt.Errorf("DSLSource.Load: %w: no statements", ErrMalformedInput)
	}

	return g, nil
}
