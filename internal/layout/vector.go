package layout

import "math"

// vec2 is a minimal 2-component vector used for force accumulation. The
// optimizer's arithmetic is simple enough (add, scale, clamp magnitude)
// that pulling in a general-purpose geometry library would add a
// dependency without earning its keep — see DESIGN.md.
type vec2 struct {
	X, Y float64
}

func (v vec2) add(o vec2) vec2 {
	return vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v vec2) sub(o vec2) vec2 {
	return vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v vec2) scale(s float64) vec2 {
	return vec2{X: v.X * s, Y: v.Y * s}
}

func (v vec2) length() float64 {
	return math.Hypot(v.X, v.Y)
}

// clampMagnitude scales v down so its length never exceeds max. Vectors
// already within the bound pass through unchanged.
func (v vec2) clampMagnitude(max float64) vec2 {
	l := v.length()
	if l <= max || l == 0 {
		return v
	}

	return v.scale(max / l)
}

// sanitize replaces a non-finite component with 0.0 and reports whether it
// had to. Keeps NaN/Inf displacements from ever reaching a node's position.
func (v vec2) sanitize() (vec2, bool) {
	guarded := false
	x, y := v.X, v.Y
	if math.IsNaN(x) || math.IsInf(x, 0) {
		x = 0
		guarded = true
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		y = 0
		guarded = true
	}

	return vec2{X: x, Y: y}, guarded
}

// clampToBox clamps v's components into [-half, half] on each axis.
func clampToBox(v vec2, half float64) vec2 {
	return vec2{X: clampAxis(v.X, half), Y: clampAxis(v.Y, half)}
}

func clampAxis(v, half float64) float64 {
	if v < -half {
		return -half
	}
	if v > half {
		return half
	}

	return v
}
