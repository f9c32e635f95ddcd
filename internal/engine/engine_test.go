package engine

import (
	"strings"
	"testing"

	"github.com/archflow/c4flow/internal/telemetry"
)

type recordingObserver struct {
	layouts  []telemetry.LayoutConvergedEvent
	patterns []telemetry.PatternDetectedEvent
}

func (r *recordingObserver) OnLayoutConverged(e telemetry.LayoutConvergedEvent) {
	r.layouts = append(r.layouts, e)
}

func (r *recordingObserver) OnPatternDetected(e telemetry.PatternDetectedEvent) {
	r.patterns = append(r.patterns, e)
}

const threeCycleJSON = `{
	"nodes": [
		{"id": "A", "name": "A", "type": "Container"},
		{"id": "B", "name": "B", "type": "Container"},
		{"id": "C", "name": "C", "type": "Container"}
	],
	"edges": [
		{"from": "A", "to": "B"},
		{"from": "B", "to": "C"},
		{"from": "C", "to": "A"}
	]
}`

func TestEngineRunEndToEnd(t *testing.T) {
	obs := &recordingObserver{}
	e := New(DefaultConfig(), obs)

	result, err := e.Run(threeCycleJSON)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if result.Graph.NodeCount() != 3 {
		t.Errorf("NodeCount = %d, want 3", result.Graph.NodeCount())
	}
	if len(result.Findings) != 1 || result.Findings[0].Kind.String() != "Cycle" {
		t.Errorf("findings = %+v, want exactly one Cycle", result.Findings)
	}
	if !strings.Contains(result.DOT, "digraph Architecture") {
		t.Errorf("DOT missing header: %q", result.DOT)
	}
	if !strings.Contains(result.DOT, `fillcolor="#ff4444"`) {
		t.Errorf("DOT missing cycle highlight: %q", result.DOT)
	}

	if len(obs.layouts) != 1 {
		t.Errorf("observer saw %d layout events, want 1", len(obs.layouts))
	}
	if len(obs.patterns) != 1 {
		t.Errorf("observer saw %d pattern events, want 1", len(obs.patterns))
	}
}

func TestEngineRunWithNilObserver(t *testing.T) {
	e := New(DefaultConfig(), nil)
	if _, err := e.Run(threeCycleJSON); err != nil {
		t.Fatalf("Run with nil observer: %v", err)
	}
}

func TestEngineRunPropagatesSourceError(t *testing.T) {
	e := New(DefaultConfig(), nil)
	if _, err := e.Run("not json"); err == nil {
		t.Error("Run with malformed input returned no error")
	}
}

func TestNewSink(t *testing.T) {
	if _, err := NewSink("console"); err != nil {
		t.Errorf("NewSink(console): %v", err)
	}
	if _, err := NewSink(""); err != nil {
		t.Errorf("NewSink(\"\"): %v", err)
	}
	if _, err := NewSink("prometheus-test-engine"); err == nil {
		t.Error("NewSink with an unknown name returned no error")
	}
}
