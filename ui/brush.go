package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/slabview/particle"
	"github.com/pthm-cable/slabview/slab"
)

// minThicknessFraction is the smallest slab half-width as a fraction of the axis extent.
const minThicknessFraction = 0.001

// BrushState is the slab selection controlled by the brushing panel.
type BrushState struct {
	Axis      particle.Axis
	Coord     float64
	Thickness float64
	Threshold float64

	bounds particle.Bounds
}

// NewBrushState creates a brush over bounds, clamping the initial values into range.
func NewBrushState(axis particle.Axis, coord, thickness, threshold float64, bounds particle.Bounds) *BrushState {
	b := &BrushState{Axis: axis, bounds: bounds}
	b.Coord = coord
	b.Thickness = thickness
	b.Threshold = threshold
	b.clamp()
	return b
}

// Bounds returns the data bounds the brush ranges over.
func (b *BrushState) Bounds() particle.Bounds {
	return b.bounds
}

// CoordRange returns the slider range for the slab center.
func (b *BrushState) CoordRange() (lo, hi float64) {
	return b.bounds.Extent(b.Axis)
}

// ThicknessRange returns the slider range for the slab half-width.
func (b *BrushState) ThicknessRange() (lo, hi float64) {
	c0, c1 := b.CoordRange()
	span := math.Abs(c1 - c0)
	if span == 0 {
		span = 1
	}
	return span * minThicknessFraction, span / 2
}

// Accessor returns the brushed-coordinate accessor for the current axis.
func (b *BrushState) Accessor() slab.DepthFunc {
	return particle.CoordAccessor(b.Axis)
}

// SetAxis switches the brushed axis. The slab is recentered on the new axis.
func (b *BrushState) SetAxis(a particle.Axis) bool {
	if a == b.Axis {
		return false
	}
	b.Axis = a
	lo, hi := b.CoordRange()
	b.Coord = (lo + hi) / 2
	b.clamp()
	return true
}

// SetCoord moves the slab center.
func (b *BrushState) SetCoord(v float64) bool {
	old := b.Coord
	b.Coord = v
	b.clamp()
	return b.Coord != old
}

// SetThickness changes the slab half-width.
func (b *BrushState) SetThickness(v float64) bool {
	old := b.Thickness
	b.Thickness = v
	b.clamp()
	return b.Thickness != old
}

// SetThreshold changes the concentration fraction.
func (b *BrushState) SetThreshold(v float64) bool {
	old := b.Threshold
	b.Threshold = v
	b.clamp()
	return b.Threshold != old
}

// SetBounds replaces the data bounds and clamps the brush into them.
func (b *BrushState) SetBounds(bounds particle.Bounds) {
	b.bounds = bounds
	b.clamp()
}

func (b *BrushState) clamp() {
	lo, hi := b.CoordRange()
	if lo > hi {
		lo, hi = hi, lo
	}
	b.Coord = clampf(b.Coord, lo, hi)
	tlo, thi := b.ThicknessRange()
	b.Thickness = clampf(b.Thickness, tlo, thi)
	b.Threshold = clampf(b.Threshold, 0, 1)
}

// BrushEvent reports which inputs the user changed this frame.
type BrushEvent struct {
	Brush     bool // axis, coord or thickness
	Threshold bool
}

// BrushPanel renders the slab controls.
type BrushPanel struct {
	renderer *Renderer
	state    *BrushState
	x, y     int32
	width    int32
}

// NewBrushPanel creates a panel editing state.
func NewBrushPanel(state *BrushState, x, y, width int32) *BrushPanel {
	return &BrushPanel{
		renderer: NewRenderer(),
		state:    state,
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the panel and applies user edits to the state.
// Returns the changes and the Y position below the panel.
func (p *BrushPanel) Draw() (BrushEvent, int32) {
	var ev BrushEvent
	r := p.renderer
	th := r.Theme
	s := p.state

	x := float32(p.x + th.Padding)
	y := p.y + th.Padding
	inner := float32(p.width - 2*th.Padding)

	y = r.DrawSectionHeader(int32(x), y, "Slab")

	// Axis buttons
	bw := (inner - 2*float32(th.Padding)) / 3
	for i, a := range []particle.Axis{particle.AxisX, particle.AxisY, particle.AxisZ} {
		label := a.String()
		if a == s.Axis {
			label = "[" + label + "]"
		}
		bx := x + float32(i)*(bw+float32(th.Padding))
		if gui.Button(rl.Rectangle{X: bx, Y: float32(y), Width: bw, Height: 24}, label) {
			if s.SetAxis(a) {
				ev.Brush = true
			}
		}
	}
	y += 24 + th.Padding

	lo, hi := s.CoordRange()
	var changed bool
	y, changed = p.slider(x, y, inner, "Coordinate", s.Coord, lo, hi, s.SetCoord)
	ev.Brush = ev.Brush || changed

	tlo, thi := s.ThicknessRange()
	y, changed = p.slider(x, y, inner, "Thickness", s.Thickness, tlo, thi, s.SetThickness)
	ev.Brush = ev.Brush || changed

	y = r.DrawSectionHeader(int32(x), y+th.Padding, "Concentration")
	y, ev.Threshold = p.slider(x, y, inner, "Threshold", s.Threshold, 0, 1, s.SetThreshold)

	return ev, y
}

// slider draws a labelled slider and hands a moved value to set.
func (p *BrushPanel) slider(x float32, y int32, width float32, label string, value, lo, hi float64, set func(float64) bool) (int32, bool) {
	th := p.renderer.Theme
	rl.DrawText(label, int32(x), y, th.FontSize, th.LabelColor)
	value32 := float32(value)
	rl.DrawText(fmt.Sprintf("%.3f", value), int32(x+width-60), y, th.FontSize, th.ValueColor)
	y += th.LineHeight

	next := gui.SliderBar(
		rl.Rectangle{X: x + 30, Y: float32(y), Width: width - 60, Height: float32(th.SliderHeight)},
		fmt.Sprintf("%.1f", lo), fmt.Sprintf("%.1f", hi),
		value32, float32(lo), float32(hi),
	)
	changed := false
	if next != value32 {
		changed = set(float64(next))
	}
	return y + th.SliderHeight + th.Padding, changed
}

func clampf(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
