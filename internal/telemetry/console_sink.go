package telemetry

import (
	"fmt"
	"io"
	"os"
)

// ConsoleSink writes each event as a single line to an io.Writer (stdout
// by default). It is the default sink when the caller configures none.
type ConsoleSink struct {
	out io.Writer
}

// NewConsoleSink returns a sink writing to os.Stdout.
func NewConsoleSink() *ConsoleSink {
	return &ConsoleSink{out: os.Stdout}
}

// NewConsoleSinkTo returns a sink writing to an arbitrary writer, useful
// for tests.
func NewConsoleSinkTo(w io.Writer) *ConsoleSink {
	return &ConsoleSink{out: w}
}

func (s *ConsoleSink) OnLayoutConverged(e LayoutConvergedEvent) {
	fmt.Fprintf(s.out, "[%s] layout converged: %d iterations, final_temp=%.4f, %dms, nodes=%d edges=%d\n",
		e.RunID, e.Iterations, e.FinalTemperature, e.DurationMs, e.NodeCount, e.EdgeCount)
}

func (s *ConsoleSink) OnPatternDetected(e PatternDetectedEvent) {
	fmt.Fprintf(s.out, "[%s] pattern detected: %s severity=%.2f nodes=%v (%dms, graph_size=%d)\n",
		e.RunID, e.Kind, e.Severity, e.NodeIDs, e.DetectionDurationMs, e.GraphSize)
}
