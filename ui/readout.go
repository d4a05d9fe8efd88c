package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gogpu/gg"

	"github.com/pthm-cable/slabview/particle"
	"github.com/pthm-cable/slabview/telemetry"
)

// ReadoutData holds everything the readout panel shows.
type ReadoutData struct {
	Pass       telemetry.PassStats
	Perf       telemetry.PerfStats
	ColorRange [2]gg.RGBA
	// Vertical extent the color ramp spans
	ColorLo, ColorHi float64
	VerticalAxis     string
	Zoom             float32
	// Particle under the cursor, if any
	Hovered *particle.Particle
}

// Readout renders pass statistics and the color legend.
type Readout struct {
	renderer *Renderer
	x, width int32
}

// NewReadout creates a readout panel at column x.
func NewReadout(x, width int32) *Readout {
	return &Readout{
		renderer: NewRenderer(),
		x:        x,
		width:    width,
	}
}

// Draw renders the readout starting at y and returns the Y below it.
func (r *Readout) Draw(y int32, data ReadoutData) int32 {
	rr := r.renderer
	pad := rr.Theme.Padding
	x := r.x + pad
	inner := r.width - 2*pad
	s := data.Pass

	y = rr.DrawSectionHeader(x, y, "Selection")
	y = rr.DrawLabelValue(x, y, "In slab", fmt.Sprintf("%d / %d", s.Slab, s.Total))
	y = rr.DrawLabelValue(x, y, "Cut", fmt.Sprintf("%.4g", s.Threshold))
	y = rr.DrawLabelValue(x, y, "Drawn", fmt.Sprintf("%d (-%d)", s.Drawn, s.Truncated))
	y = rr.DrawLabelValue(x, y, "Radius", fmt.Sprintf("%.2f", s.Radius))
	y = rr.DrawLabelValue(x, y, "Max speed", fmt.Sprintf("%.4g", s.VMax))
	y = rr.DrawLabelValue(x, y, "Conc p50", fmt.Sprintf("%.4g", s.ConcP50))
	y = rr.DrawLabelValue(x, y, "Conc p90", fmt.Sprintf("%.4g", s.ConcP90))
	y = rr.DrawLabelValue(x, y, "Changes", fmt.Sprintf("+%d -%d =%d", s.Inserted, s.Removed, s.Retained))
	y += pad

	y = rr.DrawSectionHeader(x, y, "Color ("+data.VerticalAxis+")")
	y = rr.DrawColorRamp(x, y, inner, data.ColorRange[0], data.ColorRange[1], data.ColorLo, data.ColorHi)
	y += pad

	if p := data.Hovered; p != nil {
		y = rr.DrawSectionHeader(x, y, fmt.Sprintf("Particle %d", p.ID))
		y = rr.DrawLabelValue(x, y, "Position", fmtVec(p.Position))
		y = rr.DrawLabelValue(x, y, "Velocity", fmtVec(p.Velocity))
		y = rr.DrawLabelValue(x, y, "Speed", fmt.Sprintf("%.4g", p.Speed()))
		y = rr.DrawLabelValue(x, y, "Conc", fmt.Sprintf("%.4g", p.Concentration))
		y += pad
	}

	y = rr.DrawSectionHeader(x, y, "Performance")
	y = rr.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%.0f", data.Perf.FPS))
	y = rr.DrawLabelValue(x, y, "Pass", data.Perf.AvgPassDuration.String())
	for _, phase := range []string{telemetry.PhaseSelect, telemetry.PhaseLayout, telemetry.PhaseReconcile} {
		if pct, ok := data.Perf.PhasePct[phase]; ok {
			y = rr.DrawLabelValue(x, y, phase, fmt.Sprintf("%.0f%%", pct))
		}
	}
	y = rr.DrawLabelValue(x, y, "Zoom", fmt.Sprintf("%.2fx", data.Zoom))
	return y
}

// DrawHelp renders the key legend at the bottom of the panel.
func (r *Readout) DrawHelp(screenHeight int32, text string) {
	rl.DrawText(text, r.x+r.renderer.Theme.Padding, screenHeight-25, 12, rl.Gray)
}

func fmtVec(v particle.Vec3) string {
	return fmt.Sprintf("%.2f, %.2f, %.2f", v[0], v[1], v[2])
}
