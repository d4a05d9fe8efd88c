package main

import (
	"fmt"
	"strconv"

	"github.com/pthm-cable/slabview/particle"
	"github.com/pthm-cable/slabview/ui"
)

// optFloat is a float flag that remembers whether it was given, so that any
// value including zero can override the config.
type optFloat struct {
	v   float64
	set bool
}

func (f *optFloat) String() string {
	if f == nil || !f.set {
		return ""
	}
	return strconv.FormatFloat(f.v, 'g', -1, 64)
}

func (f *optFloat) Set(s string) error {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parse %q: %w", s, err)
	}
	f.v, f.set = v, true
	return nil
}

// brushFlags holds the command-line brush overrides.
type brushFlags struct {
	axis      string
	coord     optFloat
	thickness optFloat
	threshold optFloat
}

// apply builds the initial brush from config values and bounds, then applies
// the overrides. Changing the axis without -coord recenters the slab.
func (f *brushFlags) apply(axis particle.Axis, coord, thickness, threshold float64, bounds particle.Bounds) (*ui.BrushState, error) {
	if f.axis != "" {
		a, err := particle.ParseAxis(f.axis)
		if err != nil {
			return nil, fmt.Errorf("invalid -axis: %w", err)
		}
		axis = a
	}
	brush := ui.NewBrushState(axis, coord, thickness, threshold, bounds)
	switch {
	case f.coord.set:
		brush.SetCoord(f.coord.v)
	case f.axis != "":
		lo, hi := brush.CoordRange()
		brush.SetCoord((lo + hi) / 2)
	}
	if f.thickness.set {
		brush.SetThickness(f.thickness.v)
	}
	if f.threshold.set {
		brush.SetThreshold(f.threshold.v)
	}
	return brush, nil
}
