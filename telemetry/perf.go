package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one view pass.
const (
	PhaseSelect    = "select"    // slab filter, threshold and downsample
	PhaseLayout    = "layout"    // scales and glyph geometry
	PhaseReconcile = "reconcile" // scene enter/update/exit
	PhaseOutput    = "output"    // stats and CSV
)

// phases lists the known phases in pipeline order.
var phases = []string{PhaseSelect, PhaseLayout, PhaseReconcile, PhaseOutput}

// PerfSample holds timing data for a single pass.
type PerfSample struct {
	PassDuration time.Duration
	Phases       map[string]time.Duration
	Items        map[string]int // particles or glyphs each phase handled
}

// PerfCollector tracks performance metrics over a rolling window of passes.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	currentItems  map[string]int
	passStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of passes to average over.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
		currentItems:  make(map[string]int),
	}
}

// StartPass begins timing a new pass.
func (p *PerfCollector) StartPass() {
	p.passStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.currentItems = make(map[string]int)
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// RecordCount adds n to the item count of a phase in the current pass.
func (p *PerfCollector) RecordCount(phase string, n int) {
	p.currentItems[phase] += n
}

// EndPass finishes timing the current pass and records the sample.
func (p *PerfCollector) EndPass() {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		PassDuration: now.Sub(p.passStart),
		Phases:       p.currentPhases,
		Items:        p.currentItems,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
	p.lastPhase = ""
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// Samples returns the number of passes in the window.
func (p *PerfCollector) Samples() int {
	return p.sampleCount
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgPassDuration time.Duration
	MinPassDuration time.Duration
	MaxPassDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total pass time
	PhasePct map[string]float64

	// Average items handled per pass, by phase
	PhaseItems map[string]float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			PhaseItems:    make(map[string]float64),
			FrameDuration: p.frameDuration,
			FPS:           fps,
		}
	}

	var total, minPass, maxPass time.Duration
	phaseSum := make(map[string]time.Duration)
	itemSum := make(map[string]int)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.PassDuration
		if i == 0 || s.PassDuration < minPass {
			minPass = s.PassDuration
		}
		if s.PassDuration > maxPass {
			maxPass = s.PassDuration
		}
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
		for phase, n := range s.Items {
			itemSum[phase] += n
		}
	}

	avg := total / time.Duration(p.sampleCount)

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avg > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avg) * 100
		}
	}

	phaseItems := make(map[string]float64, len(itemSum))
	for phase, n := range itemSum {
		phaseItems[phase] = float64(n) / float64(p.sampleCount)
	}

	return PerfStats{
		AvgPassDuration: avg,
		MinPassDuration: minPass,
		MaxPassDuration: maxPass,
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		PhaseItems:      phaseItems,
		FrameDuration:   p.frameDuration,
		FPS:             fps,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_pass_us", s.AvgPassDuration.Microseconds()),
		slog.Int64("min_pass_us", s.MinPassDuration.Microseconds()),
		slog.Int64("max_pass_us", s.MaxPassDuration.Microseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for _, phase := range phases {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
		if n, ok := s.PhaseItems[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_items", n))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Pass         int     `csv:"pass"`
	AvgPassUS    int64   `csv:"avg_pass_us"`
	MinPassUS    int64   `csv:"min_pass_us"`
	MaxPassUS    int64   `csv:"max_pass_us"`
	FPS          float64 `csv:"fps"`
	SelectPct    float64 `csv:"select_pct"`
	LayoutPct    float64 `csv:"layout_pct"`
	ReconcilePct float64 `csv:"reconcile_pct"`
	OutputPct    float64 `csv:"output_pct"`

	SelectItems    float64 `csv:"select_items"`
	LayoutItems    float64 `csv:"layout_items"`
	ReconcileItems float64 `csv:"reconcile_items"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(pass int) PerfStatsCSV {
	return PerfStatsCSV{
		Pass:         pass,
		AvgPassUS:    s.AvgPassDuration.Microseconds(),
		MinPassUS:    s.MinPassDuration.Microseconds(),
		MaxPassUS:    s.MaxPassDuration.Microseconds(),
		FPS:          s.FPS,
		SelectPct:    s.PhasePct[PhaseSelect],
		LayoutPct:    s.PhasePct[PhaseLayout],
		ReconcilePct: s.PhasePct[PhaseReconcile],
		OutputPct:    s.PhasePct[PhaseOutput],

		SelectItems:    s.PhaseItems[PhaseSelect],
		LayoutItems:    s.PhaseItems[PhaseLayout],
		ReconcileItems: s.PhaseItems[PhaseReconcile],
	}
}
