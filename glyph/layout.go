// Package glyph lays out drawable glyphs for a slab selection: position and
// color scales, a per-frame glyph radius, and the arrow-and-ring outline of each particle.
package glyph

import (
	"math"

	"github.com/gogpu/gg"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/slabview/particle"
)

// Layout constants.
const (
	DefaultMargin                    = 10.0
	DefaultRadiusFactor              = 3.0
	DefaultMinRadius                 = 5.0
	DefaultVelocityScale             = 0.25
	DefaultConcentrationRadiusFactor = 0.01
)

// Frame holds everything the layout needs besides the particles.
type Frame struct {
	Width, Height float64
	Margin        float64
	Axis          particle.Axis // Brushed axis
	Bounds        particle.Bounds
	ColorRange    [2]gg.RGBA

	RadiusFactor              float64 // radius = max(RadiusFactor * min(w, h) / n, MinRadius)
	MinRadius                 float64
	VelocityScale             float64 // Fastest arrow spans radius / VelocityScale
	ConcentrationRadiusFactor float64 // Ring radius per unit concentration
}

// DefaultFrame returns a frame of the given size with the stock constants.
func DefaultFrame(width, height float64, axis particle.Axis, bounds particle.Bounds, colors [2]gg.RGBA) Frame {
	return Frame{
		Width:                     width,
		Height:                    height,
		Margin:                    DefaultMargin,
		Axis:                      axis,
		Bounds:                    bounds,
		ColorRange:                colors,
		RadiusFactor:              DefaultRadiusFactor,
		MinRadius:                 DefaultMinRadius,
		VelocityScale:             DefaultVelocityScale,
		ConcentrationRadiusFactor: DefaultConcentrationRadiusFactor,
	}
}

// Glyph is one drawable particle. It is rebuilt on every pass.
type Glyph struct {
	ID    int64
	Pos   gg.Point // Screen position of the glyph origin
	Shape Shape
	Fill  gg.RGBA
}

// Result is a laid out frame.
type Result struct {
	Glyphs []Glyph
	Radius float64
	VMax   float64
	X, Y   Linear
	Color  ColorScale
}

// Radius returns the glyph radius for n particles on a w×h canvas.
func (f Frame) Radius(n int) float64 {
	if n == 0 {
		return f.MinRadius
	}
	return math.Max(f.RadiusFactor*math.Min(f.Width, f.Height)/float64(n), f.MinRadius)
}

// MaxSpeed returns the largest velocity magnitude, or 0 for no particles.
func MaxSpeed(data []particle.Particle) float64 {
	if len(data) == 0 {
		return 0
	}
	speeds := make([]float64, len(data))
	for i := range data {
		speeds[i] = data[i].Speed()
	}
	return floats.Max(speeds)
}

// Layout computes the glyphs for already selected particles, in input order.
func Layout(data []particle.Particle, f Frame) Result {
	proj := particle.Plane(f.Axis)
	radius := f.Radius(len(data))
	vMax := MaxSpeed(data)

	x0, x1 := f.Bounds.Extent(proj.A)
	y0, y1 := f.Bounds.Extent(proj.B)
	res := Result{
		Glyphs: make([]Glyph, len(data)),
		Radius: radius,
		VMax:   vMax,
		X:      NewLinear(x0, x1, f.Margin+radius, f.Width-f.Margin-radius),
		Y:      NewLinear(y0, y1, f.Height-f.Margin-radius, f.Margin+radius),
		Color:  NewColorScale(y0, y1, f.ColorRange[0], f.ColorRange[1]),
	}

	scale := f.VelocityScale * vMax / radius
	for i := range data {
		p := &data[i]
		a, b := proj.Project(p.Position)
		// NewShape negates vb: the Y scale is inverted, so an arrow drawn with raw
		// vb in the y-down glyph frame would point against the particle's motion.
		va, vb := proj.Project(p.Velocity)
		res.Glyphs[i] = Glyph{
			ID:    p.ID,
			Pos:   gg.Pt(res.X.Map(a), res.Y.Map(b)),
			Shape: NewShape(va, vb, scale, p.Concentration*f.ConcentrationRadiusFactor),
			Fill:  res.Color.Map(b),
		}
	}
	return res
}
