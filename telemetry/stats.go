package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// PassStats summarizes one recomputation of the view.
type PassStats struct {
	Pass      int     `csv:"pass"`
	Axis      string  `csv:"axis"`
	Coord     float64 `csv:"coord"`
	Thickness float64 `csv:"thickness"`
	UserCut   float64 `csv:"user_threshold"`

	// Selection
	Total     int     `csv:"total"`     // Particles in the data set
	Slab      int     `csv:"slab"`      // Inside the slab
	Threshold float64 `csv:"threshold"` // Absolute concentration cut
	Drawn     int     `csv:"drawn"`
	Truncated int     `csv:"truncated"` // Dropped by the draw cap

	// Layout
	Radius float64 `csv:"radius"`
	VMax   float64 `csv:"vmax"`

	// Concentration of drawn particles
	ConcMean float64 `csv:"conc_mean"`
	ConcP50  float64 `csv:"conc_p50"`
	ConcP90  float64 `csv:"conc_p90"`

	// Reconciliation
	Inserted int `csv:"inserted"`
	Removed  int `csv:"removed"`
	Retained int `csv:"retained"`
}

// ConcentrationStats returns the mean, median and 90th percentile.
// Returns zeros for an empty slice.
func ConcentrationStats(values []float64) (mean, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p50 = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
	return mean, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s PassStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("pass", s.Pass),
		slog.String("axis", s.Axis),
		slog.Float64("coord", s.Coord),
		slog.Float64("thickness", s.Thickness),
		slog.Int("total", s.Total),
		slog.Int("slab", s.Slab),
		slog.Float64("threshold", s.Threshold),
		slog.Int("drawn", s.Drawn),
		slog.Int("truncated", s.Truncated),
		slog.Float64("radius", s.Radius),
		slog.Float64("vmax", s.VMax),
		slog.Int("inserted", s.Inserted),
		slog.Int("removed", s.Removed),
		slog.Int("retained", s.Retained),
	)
}
