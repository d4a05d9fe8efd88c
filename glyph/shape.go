package glyph

import (
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

// Shape is a glyph outline in its own frame, origin at the particle.
// Local y grows downward like screen space.
type Shape struct {
	// Tip, Left and Right are the arrowhead triangle; Tip points along the in-plane velocity.
	Tip, Left, Right gg.Point
	// Ring is tangent to the tip; its radius encodes concentration.
	RingCenter gg.Point
	RingRadius float64
}

// Pen receives glyph outlines. *gg.Context implements it.
type Pen interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	DrawCircle(x, y, r float64)
}

// NewShape builds the composite glyph for in-plane velocity (va, vb).
// The arrow tip sits at (va, vb) / scale with vb flipped so positive vertical
// velocity points up on screen. A zero or non-finite scale collapses the arrow to the origin.
func NewShape(va, vb, scale, ringRadius float64) Shape {
	var tip gg.Point
	if scale != 0 && !math.IsNaN(scale) && !math.IsInf(scale, 0) {
		tip = gg.Pt(va/scale, -vb/scale)
	}
	if ringRadius < 0 {
		ringRadius = 0
	}
	return Shape{
		Tip:        tip,
		Left:       gg.Pt(-tip.Y/3, tip.X/3),
		Right:      gg.Pt(tip.Y/3, -tip.X/3),
		RingCenter: gg.Pt(tip.X, tip.Y+ringRadius),
		RingRadius: ringRadius,
	}
}

// ArrowLength returns the distance from the origin to the tip.
func (s Shape) ArrowLength() float64 {
	return s.Tip.Length()
}

// Draw traces the arrow and ring as one outline.
func (s Shape) Draw(p Pen) {
	p.MoveTo(s.Tip.X, s.Tip.Y)
	p.LineTo(s.Left.X, s.Left.Y)
	p.LineTo(s.Right.X, s.Right.Y)
	p.ClosePath()
	if s.RingRadius > 0 {
		p.DrawCircle(s.RingCenter.X, s.RingCenter.Y, s.RingRadius)
	}
}

// Path returns the outline as a gg path.
func (s Shape) Path() *gg.Path {
	p := gg.NewPath()
	p.MoveTo(s.Tip.X, s.Tip.Y)
	p.LineTo(s.Left.X, s.Left.Y)
	p.LineTo(s.Right.X, s.Right.Y)
	p.Close()
	if s.RingRadius > 0 {
		p.Circle(s.RingCenter.X, s.RingCenter.Y, s.RingRadius)
	}
	return p
}

// Lerp interpolates every control point and the ring radius.
func (s Shape) Lerp(to Shape, t float64) Shape {
	return Shape{
		Tip:        s.Tip.Lerp(to.Tip, t),
		Left:       s.Left.Lerp(to.Left, t),
		Right:      s.Right.Lerp(to.Right, t),
		RingCenter: s.RingCenter.Lerp(to.RingCenter, t),
		RingRadius: s.RingRadius + (to.RingRadius-s.RingRadius)*t,
	}
}

// SVG renders the outline as SVG path data.
func (s Shape) SVG() string {
	var b strings.Builder
	b.WriteString("M ")
	writePoint(&b, s.Tip)
	b.WriteString(" L ")
	writePoint(&b, s.Left)
	b.WriteByte(' ')
	writePoint(&b, s.Right)
	b.WriteString(" Z")
	if s.RingRadius > 0 {
		// Two half arcs from the tip through the far side and back.
		r := fmtFloat(s.RingRadius)
		far := gg.Pt(s.Tip.X, s.Tip.Y+2*s.RingRadius)
		b.WriteString(" M ")
		writePoint(&b, s.Tip)
		b.WriteString(" A " + r + "," + r + " 0 1,0 ")
		writePoint(&b, far)
		b.WriteString(" A " + r + "," + r + " 0 1,0 ")
		writePoint(&b, s.Tip)
		b.WriteString(" Z")
	}
	return b.String()
}

func writePoint(b *strings.Builder, p gg.Point) {
	b.WriteString(fmtFloat(p.X))
	b.WriteByte(',')
	b.WriteString(fmtFloat(p.Y))
}

func fmtFloat(v float64) string {
	if v == 0 {
		v = 0 // normalize -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
