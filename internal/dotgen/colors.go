package dotgen

// colorForSeverity maps a finding severity to its fill-color band. Every
// detector.Finding kind carries a strictly positive severity, so 0.0 only
// ever means "no finding touches this node" and maps to the healthy color.
func colorForSeverity(severity float64) string {
	switch {
	case severity >= 1.0:
		return "#ff4444"
	case severity >= 0.7:
		return "#ff8844"
	case severity >= 0.3:
		return "#ffcc44"
	case severity > 0.0:
		return "#cccccc"
	default:
		return healthyColor
	}
}

const healthyColor = "#aaddaa"
