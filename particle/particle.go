// Package particle defines the 3D particle records and plot bounds consumed by the slab view.
package particle

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Vec3 is a 3-component vector indexed by Axis.
type Vec3 [3]float64

// At returns the component along the given axis.
func (v Vec3) At(a Axis) float64 {
	return v[a]
}

// Norm returns the Euclidean magnitude.
func (v Vec3) Norm() float64 {
	return floats.Norm(v[:], 2)
}

// Particle is one sample of the field: where it is, how it moves and how concentrated it is.
// The view never mutates particles.
type Particle struct {
	ID            int64
	Position      Vec3
	Velocity      Vec3
	Concentration float64
}

// Coord returns the particle position along an axis.
func (p Particle) Coord(a Axis) float64 {
	return p.Position[a]
}

// Speed returns the magnitude of the particle velocity.
func (p Particle) Speed() float64 {
	return p.Velocity.Norm()
}

// CoordAccessor returns a depth accessor for the given axis.
// Hosts pass this as the brushed-coordinate accessor.
func CoordAccessor(a Axis) func(Particle) float64 {
	return func(p Particle) float64 {
		return p.Position[a]
	}
}

// Bounds holds the plotted coordinate ranges.
type Bounds struct {
	MinX, MaxX float64
	MinY, MaxY float64
	MinZ, MaxZ float64
}

// Extent returns the (min, max) range along an axis.
func (b Bounds) Extent(a Axis) (lo, hi float64) {
	switch a {
	case AxisX:
		return b.MinX, b.MaxX
	case AxisY:
		return b.MinY, b.MaxY
	default:
		return b.MinZ, b.MaxZ
	}
}

// BoundsOf computes the tight bounding box of the particle positions.
// Returns false if data is empty.
func BoundsOf(data []Particle) (Bounds, bool) {
	if len(data) == 0 {
		return Bounds{}, false
	}
	lo := Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	hi := Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := range data {
		for a := range lo {
			c := data[i].Position[a]
			lo[a] = math.Min(lo[a], c)
			hi[a] = math.Max(hi[a], c)
		}
	}
	return Bounds{
		MinX: lo[AxisX], MaxX: hi[AxisX],
		MinY: lo[AxisY], MaxY: hi[AxisY],
		MinZ: lo[AxisZ], MaxZ: hi[AxisZ],
	}, true
}
