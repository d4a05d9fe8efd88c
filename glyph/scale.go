package glyph

import "github.com/gogpu/gg"

// Linear maps a numeric domain onto a numeric range.
// A zero-span domain maps every input to the middle of the range.
type Linear struct {
	D0, D1 float64
	R0, R1 float64
}

// NewLinear creates a scale from domain [d0, d1] to range [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{D0: d0, D1: d1, R0: r0, R1: r1}
}

// Map applies the scale. Inputs outside the domain extrapolate.
func (s Linear) Map(v float64) float64 {
	span := s.D1 - s.D0
	if span == 0 {
		return (s.R0 + s.R1) / 2
	}
	return s.R0 + (v-s.D0)/span*(s.R1-s.R0)
}

// ColorScale interpolates between two colors over a numeric domain.
type ColorScale struct {
	t        Linear
	from, to gg.RGBA
}

// NewColorScale maps [d0, d1] onto the colors from..to.
func NewColorScale(d0, d1 float64, from, to gg.RGBA) ColorScale {
	return ColorScale{t: NewLinear(d0, d1, 0, 1), from: from, to: to}
}

// Map returns the interpolated color. Values outside the domain clamp to the end colors.
func (c ColorScale) Map(v float64) gg.RGBA {
	t := c.t.Map(v)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return c.from.Lerp(c.to, t)
}
