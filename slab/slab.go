// Package slab selects the particles drawn in a cross-section view.
//
// A pass runs three steps over the raw particle list:
//
//  1. keep particles whose depth lies strictly inside the slab around the brushed coordinate,
//  2. drop particles at or below a fraction of the slab's peak concentration,
//  3. order the survivors by distance to the slab center and keep at most MaxDots of them.
//
// Nothing here fails: empty inputs produce empty selections.
package slab

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/slabview/particle"
)

// MaxDots caps the number of drawn particles to avoid occlusion.
const MaxDots = 2000

// DepthFunc returns a particle's coordinate along the brushed axis.
type DepthFunc func(particle.Particle) float64

// Params describes the brushed slab and the concentration cut.
type Params struct {
	Coord         float64   // Slab center along the brushed axis
	Thickness     float64   // Half-width of the slab
	Depth         DepthFunc // Brushed-coordinate accessor
	UserThreshold float64   // Fraction in [0, 1] of the slab's peak concentration
	MaxDots       int       // Draw cap, at most MaxDots (0 = MaxDots)
}

// Selection is the outcome of one pass.
type Selection struct {
	// Slab is the number of particles inside the slab before the concentration cut.
	Slab int
	// Threshold is the absolute concentration cut; zero when the slab was empty.
	Threshold float64
	// Truncated is the number of particles dropped by the draw cap.
	Truncated int
	// Particles are the drawable particles, closest to the slab center first.
	Particles []particle.Particle
}

// Distance returns the signed distance coord - depth(p).
func Distance(coord float64, depth DepthFunc, p particle.Particle) float64 {
	return coord - depth(p)
}

// Filter returns the particles with |coord - depth(p)| < thickness, in input order.
// Particles exactly at the slab boundary are excluded.
func Filter(data []particle.Particle, coord, thickness float64, depth DepthFunc) []particle.Particle {
	out := make([]particle.Particle, 0)
	for i := range data {
		if math.Abs(Distance(coord, depth, data[i])) < thickness {
			out = append(out, data[i])
		}
	}
	return out
}

// Threshold returns user × max(concentration) over the given particles.
// The second result is false when there are no particles, in which case
// nothing satisfies the threshold.
func Threshold(filtered []particle.Particle, user float64) (float64, bool) {
	if len(filtered) == 0 {
		return 0, false
	}
	conc := make([]float64, len(filtered))
	for i := range filtered {
		conc[i] = filtered[i].Concentration
	}
	return user * floats.Max(conc), true
}

// AboveThreshold keeps particles with concentration strictly greater than threshold.
func AboveThreshold(data []particle.Particle, threshold float64) []particle.Particle {
	out := make([]particle.Particle, 0, len(data))
	for i := range data {
		if data[i].Concentration > threshold {
			out = append(out, data[i])
		}
	}
	return out
}

// Nearest returns at most limit particles ordered by ascending |slab distance|.
// Ties keep their input order. data is not modified.
func Nearest(data []particle.Particle, coord float64, depth DepthFunc, limit int) []particle.Particle {
	dist := make([]float64, len(data))
	idx := make([]int, len(data))
	for i := range data {
		dist[i] = math.Abs(Distance(coord, depth, data[i]))
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return dist[idx[a]] < dist[idx[b]]
	})

	n := len(idx)
	if limit >= 0 && n > limit {
		n = limit
	}
	out := make([]particle.Particle, n)
	for i := 0; i < n; i++ {
		out[i] = data[idx[i]]
	}
	return out
}

// Select runs the full slab, threshold and downsample pass.
// A nil Depth accessor selects nothing.
func Select(data []particle.Particle, p Params) Selection {
	if p.Depth == nil {
		return Selection{Particles: []particle.Particle{}}
	}
	limit := MaxDots
	if p.MaxDots > 0 {
		limit = min(p.MaxDots, MaxDots)
	}

	inSlab := Filter(data, p.Coord, p.Thickness, p.Depth)
	sel := Selection{Slab: len(inSlab)}

	threshold, ok := Threshold(inSlab, p.UserThreshold)
	if !ok {
		sel.Particles = []particle.Particle{}
		return sel
	}
	sel.Threshold = threshold

	// Slab membership already holds for inSlab, so a single concentration pass
	// gives the same set as re-checking both conditions on the raw data.
	kept := AboveThreshold(inSlab, threshold)
	sel.Particles = Nearest(kept, p.Coord, p.Depth, limit)
	sel.Truncated = len(kept) - len(sel.Particles)
	return sel
}
