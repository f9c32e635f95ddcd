package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusSink exposes promauto-registered counters and histograms for
// layout and detection activity.
type PrometheusSink struct {
	iterationsRun  prometheus.Histogram
	layoutDuration prometheus.Histogram
	findingsByKind *prometheus.CounterVec
	detectDuration prometheus.Histogram
}

// NewPrometheusSink registers its metrics against the default registerer.
// Registering a second PrometheusSink in the same process will panic, same
// as any other promauto-based metric set — callers should construct one
// per process.
func NewPrometheusSink() *PrometheusSink {
	return &PrometheusSink{
		iterationsRun: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "c4flow_layout_iterations_run",
			Help:    "Number of cooling iterations executed per Optimize call",
			Buckets: []float64{10, 25, 50, 100, 150, 250, 500, 1000},
		}),
		layoutDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "c4flow_layout_duration_ms",
			Help:    "Wall-clock duration of an Optimize call, in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
		findingsByKind: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "c4flow_findings_total",
			Help: "Total anti-pattern findings detected, by kind",
		}, []string{"kind"}),
		detectDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "c4flow_detect_duration_ms",
			Help:    "Wall-clock duration of a Detect call, in milliseconds",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		}),
	}
}

func (s *PrometheusSink) OnLayoutConverged(e LayoutConvergedEvent) {
	s.iterationsRun.Observe(float64(e.Iterations))
	s.layoutDuration.Observe(float64(e.DurationMs))
}

func (s *PrometheusSink) OnPatternDetected(e PatternDetectedEvent) {
	s.findingsByKind.WithLabelValues(e.Kind).Inc()
	s.detectDuration.Observe(float64(e.DetectionDurationMs))
}
