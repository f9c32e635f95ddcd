// Package sources loads a graphmodel.Graph from external text. It owns
// input validation so the engine only ever sees a valid Graph.
package sources

import (
	"fmt"

	"github.com/archflow/c4flow/internal/graphmodel"
)

// Source turns input text into a Graph.
type Source interface {
	Load(input string) (*graphmodel.Graph, error)
}

// NewSource returns the Source implementation for format: "json" or "dsl".
func NewSource(format string) (Source, error) {
	switch format {
	case "json":
		return JSONSource{}, nil
	case "dsl":
		return DSLSource{}, nil
	default:
		return nil, fmt.Errorf("NewSource: %w: %q", ErrUnknownFormat, format)
	}
}
