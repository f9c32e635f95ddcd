package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/archflow/c4flow/internal/detector"
	"github.com/archflow/c4flow/internal/dotgen"
	"github.com/archflow/c4flow/internal/graphmodel"
	"github.com/archflow/c4flow/internal/layout"
	"github.com/archflow/c4flow/internal/sources"
	"github.com/archflow/c4flow/internal/telemetry"
)

// Engine orchestrates one Source -> Graph -> layout -> detector -> dotgen
// run, notifying an optional Observer after each of the two analysis
// stages. It carries no state across calls.
type Engine struct {
	Config   Config
	Observer telemetry.Observer
}

// New constructs an Engine. A nil Observer is valid and leaves results
// unchanged — telemetry is always best-effort, never load-bearing.
func New(cfg Config, obs telemetry.Observer) *Engine {
	return &Engine{Config: cfg, Observer: obs}
}

// Result bundles everything a caller typically wants after one pipeline
// run: the graph (with positions set), the findings, and the rendered DOT.
type Result struct {
	Graph    *graphmodel.Graph
	Stats    layout.OptimizationStats
	Findings []detector.Finding
	DOT      string
}

// Run loads input via the configured source, lays it out, detects
// anti-patterns, and renders DOT — the full pipeline in one call.
func (e *Engine) Run(input string) (*Result, error) {
	g, err := e.Load(input)
	if err != nil {
		return nil, err
	}

	stats, err := e.Layout(g)
	if err != nil {
		return nil, err
	}

	findings, err := e.Detect(g)
	if err != nil {
		return nil, err
	}

	return &Result{
		Graph:    g,
		Stats:    stats,
		Findings: findings,
		DOT:      dotgen.ToDOT(g, findings),
	}, nil
}

// Load runs the configured Source over input.
func (e *Engine) Load(input string) (*graphmodel.Graph, error) {
	src, err := sources.NewSource(e.Config.SourceFormat)
	if err != nil {
		return nil, fmt.Errorf("Engine.Load: %w", err)
	}

	g, err := src.Load(input)
	if err != nil {
		return nil, fmt.Errorf("Engine.Load: %w", err)
	}

	return g, nil
}

// Layout runs layout.Optimize over g and, best-effort, notifies the
// observer with a LayoutConvergedEvent carrying a fresh RunID.
func (e *Engine) Layout(g *graphmodel.Graph) (layout.OptimizationStats, error) {
	stats, err := layout.Optimize(g, e.Config.Layout)
	if err != nil {
		return stats, fmt.Errorf("Engine.Layout: %w", err)
	}

	telemetry.Notify(e.Observer, func(o telemetry.Observer) {
		o.OnLayoutConverged(telemetry.LayoutConvergedEvent{
			RunID:            uuid.New(),
			Iterations:       stats.IterationsRun,
			FinalTemperature: stats.FinalTemperature,
			DurationMs:       stats.DurationMs,
			NodeCount:        stats.NodeCount,
			EdgeCount:        stats.EdgeCount,
		})
	})

	return stats, nil
}

// Detect runs detector.Detect over g and, best-effort, notifies the
// observer once per Finding.
func (e *Engine) Detect(g *graphmodel.Graph) ([]detector.Finding, error) {
	start := time.Now()
	findings, err := detector.Detect(g, e.Config.AntiPattern)
	if err != nil {
		return nil, fmt.Errorf("Engine.Detect: %w", err)
	}
	durationMs := time.Since(start).Milliseconds()

	runID := uuid.New()
	graphSize := g.NodeCount()
	for _, f := range findings {
		f := f
		telemetry.Notify(e.Observer, func(o telemetry.Observer) {
			o.OnPatternDetected(telemetry.PatternDetectedEvent{
				RunID:               runID,
				Kind:                f.Kind.String(),
				Severity:            f.Severity,
				NodeIDs:             findingNodeIDs(f),
				DetectionDurationMs: durationMs,
				GraphSize:           graphSize,
			})
		})
	}

	return findings, nil
}

func findingNodeIDs(f detector.Finding) []string {
	if len(f.Nodes) > 0 {
		return f.Nodes
	}
	if f.Node != "" {
		return []string{f.Node}
	}
	return nil
}

// NewSink constructs a telemetry.Observer from the configured sink name.
// "console" (the default) and "prometheus" need no extra arguments;
// "postgres" requires a connection string and is constructed directly by
// the caller via telemetry.NewPostgresSink instead of through this helper.
func NewSink(name string) (telemetry.Observer, error) {
	switch name {
	case "", "console":
		return telemetry.NewConsoleSink(), nil
	case "prometheus":
		return telemetry.NewPrometheusSink(), nil
	default:
		return nil, fmt.Errorf("engine.NewSink: unknown sink %q", name)
	}
}
