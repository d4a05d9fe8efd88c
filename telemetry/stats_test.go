package telemetry

import (
	"math"
	"testing"
)

func TestConcentrationStats(t *testing.T) {
	values := []float64{10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
	mean, p50, p90 := ConcentrationStats(values)

	if math.Abs(mean-5.5) > 1e-9 {
		t.Errorf("mean = %v, want 5.5", mean)
	}
	// Empirical quantiles pick an observed value.
	if p50 != 5 {
		t.Errorf("p50 = %v, want 5", p50)
	}
	if p90 != 9 {
		t.Errorf("p90 = %v, want 9", p90)
	}
	if values[0] != 10 {
		t.Error("input slice should not be reordered")
	}
}

func TestConcentrationStatsEmpty(t *testing.T) {
	mean, p50, p90 := ConcentrationStats(nil)
	if mean != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}
