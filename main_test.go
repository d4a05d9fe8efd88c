package main

import (
	"flag"
	"testing"

	"github.com/pthm-cable/slabview/particle"
)

var cube = particle.Bounds{MinX: -10, MaxX: 10, MinY: -10, MaxY: 10, MinZ: -10, MaxZ: 10}

func parseBrushFlags(t *testing.T, args ...string) *brushFlags {
	t.Helper()
	var bf brushFlags
	fs := flag.NewFlagSet("slabview", flag.ContinueOnError)
	fs.StringVar(&bf.axis, "axis", "", "")
	fs.Var(&bf.coord, "coord", "")
	fs.Var(&bf.thickness, "thickness", "")
	fs.Var(&bf.threshold, "threshold", "")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return &bf
}

func TestBrushFlags(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		axis      particle.Axis
		coord     float64
		thickness float64
		threshold float64
	}{
		{"unset uses config", nil, particle.AxisZ, 4, 2, 0.3},
		{"zero coord overrides config", []string{"-coord", "0"}, particle.AxisZ, 0, 2, 0.3},
		{"zero threshold overrides config", []string{"-threshold", "0"}, particle.AxisZ, 4, 2, 0},
		{"axis alone recenters", []string{"-axis", "x"}, particle.AxisX, 0, 2, 0.3},
		{"axis with coord", []string{"-axis", "y", "-coord", "-3"}, particle.AxisY, -3, 2, 0.3},
		{"thickness", []string{"-thickness", "5"}, particle.AxisZ, 4, 5, 0.3},
		{"coord clamped into bounds", []string{"-coord", "50"}, particle.AxisZ, 10, 2, 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brush, err := parseBrushFlags(t, tt.args...).apply(particle.AxisZ, 4, 2, 0.3, cube)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if brush.Axis != tt.axis {
				t.Errorf("axis = %v, want %v", brush.Axis, tt.axis)
			}
			if brush.Coord != tt.coord {
				t.Errorf("coord = %v, want %v", brush.Coord, tt.coord)
			}
			if brush.Thickness != tt.thickness {
				t.Errorf("thickness = %v, want %v", brush.Thickness, tt.thickness)
			}
			if brush.Threshold != tt.threshold {
				t.Errorf("threshold = %v, want %v", brush.Threshold, tt.threshold)
			}
		})
	}
}

func TestBrushFlagsInvalid(t *testing.T) {
	if _, err := parseBrushFlags(t, "-axis", "w").apply(particle.AxisZ, 0, 1, 0.5, cube); err == nil {
		t.Error("expected error for unknown axis")
	}

	var f optFloat
	if err := f.Set("abc"); err == nil {
		t.Error("expected parse error")
	}
	if f.set {
		t.Error("failed Set must leave the flag unset")
	}
}
