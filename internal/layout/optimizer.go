package layout

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/archflow/c4flow/internal/graphmodel"
)

// epsilon floors the distance used in the repulsive-force computation so
// two coincident nodes never produce a division by (near) zero. Fixed so
// test fixtures stay reproducible.
const epsilon = 1e-4

// bucketedThreshold is the node count above which Optimize switches from
// the quadratic reference kernel to the grid-bucketed concurrent kernel.
// Below this count the quadratic kernel is already well under the
// performance target and its exactness is worth keeping.
const bucketedThreshold = 200

// Optimize runs Fruchterman–Reingold layout over g, mutating every node's
// position in place, and returns a summary of the run. Topology (the node
// and edge catalogs) is never touched.
//
// An empty graph does zero work and returns a zeroed OptimizationStats
// beyond the node/edge counts. A single-node graph places that node at the
// origin without running any force computation.
func Optimize(g *graphmodel.Graph, cfg LayoutConfig) (OptimizationStats, error) {
	if err := validateConfig(cfg); err != nil {
		return OptimizationStats{}, err
	}

	start := time.Now()
	nodes := g.Nodes()
	n := len(nodes)

	stats := OptimizationStats{
		NodeCount: n,
		EdgeCount: g.EdgeCount(),
	}

	if n == 0 {
		stats.DurationMs = time.Since(start).Milliseconds()
		return stats, nil
	}

	half := math.Sqrt(cfg.Area) / 2

	if n == 1 {
		_ = g.SetPosition(nodes[0].ID, 0, 0)
		stats.DurationMs = time.Since(start).Milliseconds()
		return stats, nil
	}

	idx := make(map[string]int, n)
	for i, nd := range nodes {
		idx[nd.ID] = i
	}
	pos := initialPlacement(nodes, half, cfg.Seed)

	k := idealEdgeLength(cfg.Area, n)
	edges := g.Edges()

	kernel := quadraticKernel
	if n > bucketedThreshold {
		kernel = bucketedKernel
	}

	var finalTemp float64
	for i := 0; i < cfg.Iterations; i++ {
		temp := cfg.InitialTemperature * (1 - float64(i)/float64(cfg.Iterations))
		finalTemp = temp

		disp := kernel(pos, edges, idx, k)

		for ni, d := range disp {
			sanitized, guarded := d.sanitize()
			if guarded {
				stats.NonFiniteGuards++
			}
			// temp is in units of the frame half-width; scale it to
			// layout units for the displacement cap.
			clamped := sanitized.clampMagnitude(temp * half)
			pos[ni] = clampToBox(pos[ni].add(clamped), half)
		}
	}
	stats.IterationsRun = cfg.Iterations
	stats.FinalTemperature = finalTemp

	for i, nd := range nodes {
		_ = g.SetPosition(nd.ID, pos[i].X, pos[i].Y)
	}

	stats.DurationMs = time.Since(start).Milliseconds()

	return stats, nil
}

func validateConfig(cfg LayoutConfig) error {
	if cfg.Area <= 0 {
		return fmt.Errorf("Optimize: %w: area must be > 0, got %v", ErrInvalidConfig, cfg.Area)
	}
	if cfg.Iterations < 0 {
		return fmt.Errorf("Optimize: %w: iterations must be >= 0, got %d", ErrInvalidConfig, cfg.Iterations)
	}
	if math.IsNaN(cfg.InitialTemperature) || math.IsInf(cfg.InitialTemperature, 0) {
		return fmt.Errorf("Optimize: %w: initial temperature must be finite, got %v", ErrInvalidConfig, cfg.InitialTemperature)
	}

	return nil
}

// idealEdgeLength is k = C * sqrt(A / max(N, 1)), C = 1.0.
func idealEdgeLength(area float64, n int) float64 {
	denom := n
	if denom < 1 {
		denom = 1
	}

	return math.Sqrt(area / float64(denom))
}

// initialPlacement draws a deterministic pseudo-random position for each
// node, uniform within the frame, seeded from cfg.Seed.
func initialPlacement(nodes []*graphmodel.Node, half float64, seed uint64) []vec2 {
	src := rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)
	rng := rand.New(src)

	pos := make([]vec2, len(nodes))
	for i := range nodes {
		x := (rng.Float64()*2 - 1) * half
		y := (rng.Float64()*2 - 1) * half
		pos[i] = vec2{X: x, Y: y}
	}

	return pos
}

// forceKernel computes one iteration's displacement vector for every node
// given the current positions. Both the quadratic reference kernel and the
// bucketed concurrent kernel implement this signature.
type forceKernel func(pos []vec2, edges []graphmodel.Edge, idx map[string]int, k float64) []vec2

// quadraticKernel is the O(N^2) reference implementation: every unordered
// pair repels, every edge attracts. Self-loops contribute no force to
// either pass.
func quadraticKernel(pos []vec2, edges []graphmodel.Edge, idx map[string]int, k float64) []vec2 {
	n := len(pos)
	disp := make([]vec2, n)

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			f := repulsion(pos[i], pos[j], k)
			disp[i] = disp[i].add(f)
			disp[j] = disp[j].sub(f)
		}
	}

	for _, e := range edges {
		if e.From == e.To {
			continue // self-loops contribute no force
		}
		ui, uok := idx[e.From]
		vi, vok := idx[e.To]
		if !uok || !vok {
			continue
		}
		f := attraction(pos[ui], pos[vi], k)
		disp[ui] = disp[ui].sub(f)
		disp[vi] = disp[vi].add(f)
	}

	return disp
}

// repulsion returns the force vector on a from b: magnitude k^2/max(d,eps)
// directed away from b. A pair closer than eps gets a zero vector, since
// unit gives no direction below that distance.
func repulsion(a, b vec2, k float64) vec2 {
	delta := a.sub(b)
	d := delta.length()
	if d < epsilon {
		d = epsilon
	}
	mag := (k * k) / d

	return unit(delta, d).scale(mag)
}

// attraction returns a vector of magnitude d^2/k pointing from b toward a,
// for an edge between a and b. The caller subtracts it from a's
// displacement and adds it to b's, which pulls the two endpoints together.
func attraction(a, b vec2, k float64) vec2 {
	delta := a.sub(b)
	d := delta.length()
	mag := (d * d) / k

	return unit(delta, d).scale(mag)
}

func unit(delta vec2, d float64) vec2 {
	if d < epsilon {
		return vec2{}
	}

	return delta.scale(1 / d)
}
