package telemetry

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// One named constant per statement, kept next to the sink that issues it.
const (
	insertLayoutConvergedQuery = `
		INSERT INTO c4flow_layout_events
			(run_id, iterations, final_temperature, duration_ms, node_count, edge_count)
		VALUES ($1, $2, $3, $4, $5, $6)`

	insertPatternDetectedQuery = `
		INSERT INTO c4flow_pattern_events
			(run_id, kind, severity, node_ids, detection_duration_ms, graph_size)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

// PostgresSink persists each event as a row via pgxpool. This sink
// persists telemetry, not layout state; the graph's own positions are
// never written here.
type PostgresSink struct {
	pool *pgxpool.Pool
}

// NewPostgresSink opens a connection pool against connString. The caller
// is responsible for having created the c4flow_layout_events and
// c4flow_pattern_events tables beforehand.
func NewPostgresSink(ctx context.Context, connString string) (*PostgresSink, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("telemetry: connect postgres sink: %w", err)
	}

	return &PostgresSink{pool: pool}, nil
}

// Close releases the underlying connection pool.
func (s *PostgresSink) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *PostgresSink) OnLayoutConverged(e LayoutConvergedEvent) {
	_, _ = s.pool.Exec(context.Background(), insertLayoutConvergedQuery,
		e.RunID, e.Iterations, e.FinalTemperature, e.DurationMs, e.NodeCount, e.EdgeCount)
}

func (s *PostgresSink) OnPatternDetected(e PatternDetectedEvent) {
	_, _ = s.pool.Exec(context.Background(), insertPatternDetectedQuery,
		e.RunID, e.Kind, e.Severity, e.NodeIDs, e.DetectionDurationMs, e.GraphSize)
}
