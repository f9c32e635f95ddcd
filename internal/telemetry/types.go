// Package telemetry forwards per-run optimizer and detector statistics to
// an external sink. It never influences engine results: an absent or
// failing Observer changes nothing about what the engine returns.
package telemetry

import "github.com/google/uuid"

// LayoutConvergedEvent reports one layout.Optimize call.
type LayoutConvergedEvent struct {
	RunID            uuid.UUID
	Iterations       int
	FinalTemperature float64
	DurationMs       int64
	NodeCount        int
	EdgeCount        int
}

// PatternDetectedEvent reports one detector.Finding surfaced during a
// detector.Detect call.
type PatternDetectedEvent struct {
	RunID               uuid.UUID
	Kind                string
	Severity            float64
	NodeIDs             []string
	DetectionDurationMs int64
	GraphSize           int
}

// Observer receives best-effort notifications of engine activity. Delivery
// is not ordered with respect to the engine's own return, and a caller
// with no telemetry need not implement this interface at all.
type Observer interface {
	OnLayoutConverged(LayoutConvergedEvent)
	OnPatternDetected(PatternDetectedEvent)
}

// Notify invokes obs best-effort: observer panics are recovered and
// dropped, exactly as a foreign telemetry sink that hiccups must never be
// allowed to take the optimize/detect call down with it. A nil Observer is
// a no-op.
func Notify(obs Observer, fn func(Observer)) {
	if obs == nil {
		return
	}
	defer func() { _ = recover() }()
	fn(obs)
}
