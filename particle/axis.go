package particle

import "fmt"

// Axis selects one of the three coordinate axes.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns "x", "y" or "z".
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", uint8(a))
}

// ParseAxis parses "x", "y" or "z".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q (want x, y or z)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Axis) UnmarshalText(text []byte) error {
	v, err := ParseAxis(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Projection describes the slicing plane for a brushed axis.
// A is plotted horizontally, B vertically and Depth is the slab normal.
type Projection struct {
	A, B, Depth Axis
}

// projections is indexed by the brushed axis.
var projections = [3]Projection{
	AxisX: {A: AxisY, B: AxisZ, Depth: AxisX},
	AxisY: {A: AxisX, B: AxisZ, Depth: AxisY},
	AxisZ: {A: AxisX, B: AxisY, Depth: AxisZ},
}

// Plane returns the projection for slicing along the given axis.
// Invalid axes fall back to z.
func Plane(brushed Axis) Projection {
	if brushed > AxisZ {
		brushed = AxisZ
	}
	return projections[brushed]
}

// Project returns the in-plane (a, b) components of v.
func (p Projection) Project(v Vec3) (a, b float64) {
	return v[p.A], v[p.B]
}
