package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartPass()
		pc.StartPhase(PhaseSelect)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseLayout)
		time.Sleep(200 * time.Microsecond)
		pc.EndPass()
	}

	stats := pc.Stats()

	if stats.AvgPassDuration <= 0 {
		t.Error("expected positive average pass duration")
	}
	if _, ok := stats.PhaseAvg[PhaseSelect]; !ok {
		t.Error("expected select phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseLayout]; !ok {
		t.Error("expected layout phase to be tracked")
	}
	if stats.MinPassDuration > stats.MaxPassDuration {
		t.Errorf("min %v > max %v", stats.MinPassDuration, stats.MaxPassDuration)
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartPass()
		pc.StartPhase(PhaseReconcile)
		time.Sleep(10 * time.Microsecond)
		pc.EndPass()
	}

	if pc.Samples() != 5 {
		t.Errorf("samples = %d, want window size 5", pc.Samples())
	}
	if pc.Stats().AvgPassDuration <= 0 {
		t.Error("expected positive average pass duration after window filled")
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartPass()
		pc.StartPhase("fast")
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase("slow")
		time.Sleep(1 * time.Millisecond)
		pc.EndPass()
	}

	stats := pc.Stats()
	if stats.PhasePct["slow"] <= stats.PhasePct["fast"] {
		t.Errorf("slow phase (%.1f%%) should outweigh fast phase (%.1f%%)",
			stats.PhasePct["slow"], stats.PhasePct["fast"])
	}
}

func TestPerfCollector_ItemCounts(t *testing.T) {
	pc := NewPerfCollector(4)

	for _, n := range []int{100, 300} {
		pc.StartPass()
		pc.StartPhase(PhaseSelect)
		pc.RecordCount(PhaseSelect, n)
		pc.StartPhase(PhaseLayout)
		pc.RecordCount(PhaseLayout, n/10)
		pc.RecordCount(PhaseLayout, n/10)
		pc.EndPass()
	}

	stats := pc.Stats()
	if got := stats.PhaseItems[PhaseSelect]; got != 200 {
		t.Errorf("select items = %v, want 200", got)
	}
	if got := stats.PhaseItems[PhaseLayout]; got != 40 {
		t.Errorf("layout items = %v, want 40", got)
	}
	if _, ok := stats.PhaseItems[PhaseReconcile]; ok {
		t.Error("reconcile recorded no items and should be absent")
	}

	row := stats.ToCSV(2)
	if row.SelectItems != 200 || row.LayoutItems != 40 || row.ReconcileItems != 0 {
		t.Errorf("csv items = %v/%v/%v, want 200/40/0", row.SelectItems, row.LayoutItems, row.ReconcileItems)
	}
}

func TestPerfCollector_Empty(t *testing.T) {
	stats := NewPerfCollector(0).Stats()
	if stats.AvgPassDuration != 0 || len(stats.PhaseAvg) != 0 {
		t.Error("empty collector should report zero stats")
	}
}

func TestPerfStats_ToCSV(t *testing.T) {
	s := PerfStats{
		AvgPassDuration: 1500 * time.Microsecond,
		PhasePct:        map[string]float64{PhaseSelect: 60, PhaseLayout: 40},
	}
	row := s.ToCSV(12)
	if row.Pass != 12 || row.AvgPassUS != 1500 || row.SelectPct != 60 || row.LayoutPct != 40 {
		t.Errorf("unexpected csv row: %+v", row)
	}
}
