// Package dotgen renders a graphmodel.Graph and a set of detector.Finding
// values into a Graphviz DOT document, annotating nodes and edges touched
// by an anti-pattern.
package dotgen

import "github.com/archflow/c4flow/internal/graphmodel"

// shapeFor maps a graphmodel.NodeKind to the DOT node shape used to draw it.
func shapeFor(kind graphmodel.NodeKind) string {
	switch kind {
	case graphmodel.System:
		return "box3d"
	case graphmodel.Container:
		return "component"
	case graphmodel.Component:
		return "box"
	case graphmodel.Person:
		return "ellipse"
	default:
		return "box"
	}
}
