// Package view hosts the slab pipeline: it owns the inputs supplied by the
// application, decides when a recomputation is due and reconciles the scene.
package view

import (
	"log/slog"
	"time"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/slabview/config"
	"github.com/pthm-cable/slabview/glyph"
	"github.com/pthm-cable/slabview/particle"
	"github.com/pthm-cable/slabview/slab"
	"github.com/pthm-cable/slabview/surface"
	"github.com/pthm-cable/slabview/telemetry"
)

// Props are the view parameters supplied by the host and the brushing control.
type Props struct {
	Data                       []particle.Particle
	Bounds                     *particle.Bounds
	BrushedAxis                particle.Axis
	BrushedCoord               float64
	GetBrushedCoord            slab.DepthFunc
	BrushedAreaThickness       float64
	UserConcentrationThreshold float64
	ColorRange                 [2]gg.RGBA
}

// Options are the fixed layout constants.
type Options struct {
	Margin                    float64
	MaxDots                   int
	RadiusFactor              float64
	MinRadius                 float64
	VelocityScale             float64
	ConcentrationRadiusFactor float64
	Transition                time.Duration
	PerfWindow                int
}

// DefaultOptions returns the stock layout constants.
func DefaultOptions() Options {
	return Options{
		Margin:                    glyph.DefaultMargin,
		MaxDots:                   slab.MaxDots,
		RadiusFactor:              glyph.DefaultRadiusFactor,
		MinRadius:                 glyph.DefaultMinRadius,
		VelocityScale:             glyph.DefaultVelocityScale,
		ConcentrationRadiusFactor: glyph.DefaultConcentrationRadiusFactor,
		Transition:                surface.DefaultTransition,
		PerfWindow:                60,
	}
}

// OptionsFromConfig reads the layout constants from the loaded config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Margin:                    cfg.View.Margin,
		MaxDots:                   cfg.View.MaxDots,
		RadiusFactor:              cfg.View.RadiusFactor,
		MinRadius:                 cfg.View.MinRadius,
		VelocityScale:             cfg.View.VelocityScale,
		ConcentrationRadiusFactor: cfg.View.ConcentrationRadiusFactor,
		Transition:                cfg.Derived.Transition,
		PerfWindow:                cfg.Telemetry.PerfWindow,
	}
}

// PropsFromConfig builds the initial props from the brush and color sections.
// Data and Bounds are left for the host to supply.
func PropsFromConfig(cfg *config.Config) Props {
	axis := cfg.Derived.Axis
	return Props{
		BrushedAxis:                axis,
		BrushedCoord:               cfg.Brush.Coord,
		GetBrushedCoord:            particle.CoordAccessor(axis),
		BrushedAreaThickness:       cfg.Brush.Thickness,
		UserConcentrationThreshold: cfg.Brush.ConcentrationThreshold,
		ColorRange:                 cfg.Derived.ColorRange,
	}
}

// deps counts changes to each input the pass depends on.
type deps struct {
	surface   uint64
	data      uint64
	accessor  uint64
	bounds    uint64
	threshold uint64
}

// View recomputes the drawable glyph set whenever one of its dependencies changes:
// surface readiness, data, brushed-coordinate accessor, bounds or concentration threshold.
type View struct {
	props Props
	opts  Options

	scene         *surface.Scene
	width, height float64

	current deps
	applied deps
	dirty   bool

	perf   *telemetry.PerfCollector
	out    *telemetry.OutputManager
	logger *slog.Logger

	pass  int
	last  telemetry.PassStats
	drawn map[int64]particle.Particle
}

// New creates a view. out may be nil to disable CSV output.
func New(props Props, opts Options, out *telemetry.OutputManager, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.PerfWindow < 1 {
		opts.PerfWindow = 60
	}
	return &View{
		props:  props,
		opts:   opts,
		perf:   telemetry.NewPerfCollector(opts.PerfWindow),
		out:    out,
		logger: logger,
		dirty:  true,
	}
}

// Attach binds the view to a scene of the given canvas size and drops any
// elements already on it. The first pass runs on the next Update.
func (v *View) Attach(scene *surface.Scene, width, height float64) {
	if scene != nil {
		scene.Clear()
	}
	v.scene = scene
	v.width, v.height = width, height
	v.current.surface++
}

// Resize changes the canvas size.
func (v *View) Resize(width, height float64) {
	if width == v.width && height == v.height {
		return
	}
	v.width, v.height = width, height
	v.current.surface++
}

// SetData replaces the particle set.
func (v *View) SetData(data []particle.Particle) {
	v.props.Data = data
	v.current.data++
}

// SetBounds replaces the plotted ranges. nil disables drawing.
func (v *View) SetBounds(b *particle.Bounds) {
	v.props.Bounds = b
	v.current.bounds++
}

// SetBrush moves the slab. The brushing control always hands over a fresh
// accessor together with the slab, so this counts as an accessor change.
func (v *View) SetBrush(axis particle.Axis, coord, thickness float64, accessor slab.DepthFunc) {
	v.props.BrushedAxis = axis
	v.props.BrushedCoord = coord
	v.props.BrushedAreaThickness = thickness
	v.props.GetBrushedCoord = accessor
	v.current.accessor++
}

// SetThreshold changes the user concentration fraction.
func (v *View) SetThreshold(fraction float64) {
	v.props.UserConcentrationThreshold = fraction
	v.current.threshold++
}

// SetColorRange changes the color ramp. It is not a dependency: the new colors
// show up with the next pass triggered by another input.
func (v *View) SetColorRange(colors [2]gg.RGBA) {
	v.props.ColorRange = colors
}

// Props returns the current inputs.
func (v *View) Props() Props {
	return v.props
}

// Pending reports whether a dependency changed since the last pass.
func (v *View) Pending() bool {
	return v.dirty || v.current != v.applied
}

// LastPass returns the stats of the most recent pass.
func (v *View) LastPass() telemetry.PassStats {
	return v.last
}

// Particle returns a particle drawn by the most recent pass.
func (v *View) Particle(id int64) (particle.Particle, bool) {
	p, ok := v.drawn[id]
	return p, ok
}

// Perf returns the pass timing collector.
func (v *View) Perf() *telemetry.PerfCollector {
	return v.perf
}

// Update runs a pass if any dependency changed.
// Returns the reconciliation diff and whether a pass was drawn.
// Missing scene, data or bounds skip the pass without drawing anything.
func (v *View) Update() (surface.Changes, bool) {
	if !v.Pending() {
		return surface.Changes{}, false
	}
	v.applied = v.current
	v.dirty = false

	if v.scene == nil || v.props.Data == nil || v.props.Bounds == nil {
		v.logger.Debug("skipping pass: inputs not ready",
			"scene", v.scene != nil,
			"data", v.props.Data != nil,
			"bounds", v.props.Bounds != nil,
		)
		return surface.Changes{}, false
	}
	return v.run(), true
}

// Tick advances the scene's transitions.
func (v *View) Tick(dt time.Duration) bool {
	if v.scene == nil {
		return false
	}
	return v.scene.Advance(dt)
}

// Frame returns the layout frame for the current inputs.
func (v *View) Frame() glyph.Frame {
	f := glyph.DefaultFrame(v.width, v.height, v.props.BrushedAxis, particle.Bounds{}, v.props.ColorRange)
	if v.props.Bounds != nil {
		f.Bounds = *v.props.Bounds
	}
	f.Margin = v.opts.Margin
	f.RadiusFactor = v.opts.RadiusFactor
	f.MinRadius = v.opts.MinRadius
	f.VelocityScale = v.opts.VelocityScale
	f.ConcentrationRadiusFactor = v.opts.ConcentrationRadiusFactor
	return f
}

// run executes one full pass.
func (v *View) run() surface.Changes {
	p := &v.props
	v.pass++
	v.perf.StartPass()

	v.perf.StartPhase(telemetry.PhaseSelect)
	sel := slab.Select(p.Data, slab.Params{
		Coord:         p.BrushedCoord,
		Thickness:     p.BrushedAreaThickness,
		Depth:         p.GetBrushedCoord,
		UserThreshold: p.UserConcentrationThreshold,
		MaxDots:       v.opts.MaxDots,
	})
	v.perf.RecordCount(telemetry.PhaseSelect, len(p.Data))

	v.perf.StartPhase(telemetry.PhaseLayout)
	res := glyph.Layout(sel.Particles, v.Frame())
	v.perf.RecordCount(telemetry.PhaseLayout, len(res.Glyphs))

	v.perf.StartPhase(telemetry.PhaseReconcile)
	changes := v.scene.Apply(res.Glyphs)
	v.perf.RecordCount(telemetry.PhaseReconcile, len(changes.Inserted)+len(changes.Removed)+len(changes.Retained))

	v.perf.StartPhase(telemetry.PhaseOutput)
	stats := telemetry.PassStats{
		Pass:      v.pass,
		Axis:      p.BrushedAxis.String(),
		Coord:     p.BrushedCoord,
		Thickness: p.BrushedAreaThickness,
		UserCut:   p.UserConcentrationThreshold,
		Total:     len(p.Data),
		Slab:      sel.Slab,
		Threshold: sel.Threshold,
		Drawn:     len(sel.Particles),
		Truncated: sel.Truncated,
		Radius:    res.Radius,
		VMax:      res.VMax,
		Inserted:  len(changes.Inserted),
		Removed:   len(changes.Removed),
		Retained:  len(changes.Retained),
	}
	conc := make([]float64, len(sel.Particles))
	v.drawn = make(map[int64]particle.Particle, len(sel.Particles))
	for i := range sel.Particles {
		conc[i] = sel.Particles[i].Concentration
		v.drawn[sel.Particles[i].ID] = sel.Particles[i]
	}
	stats.ConcMean, stats.ConcP50, stats.ConcP90 = telemetry.ConcentrationStats(conc)
	v.last = stats

	if err := v.out.WritePass(stats); err != nil {
		v.logger.Error("failed to write pass stats", "error", err)
	}
	if changes.Empty() {
		v.logger.Debug("pass kept the drawn set", "pass", v.pass, "retained", len(changes.Retained))
	}
	v.logger.Debug("pass", "stats", stats)
	v.perf.EndPass()

	if v.perf.Samples() > 0 && v.pass%v.opts.PerfWindow == 0 {
		perf := v.perf.Stats()
		v.logger.Info("perf", "stats", perf)
		if err := v.out.WritePerf(perf, v.pass); err != nil {
			v.logger.Error("failed to write perf stats", "error", err)
		}
	}
	return changes
}
