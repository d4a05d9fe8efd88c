package particle

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundsOf(t *testing.T) {
	_, ok := BoundsOf(nil)
	assert.False(t, ok, "empty data has no bounds")

	data := []Particle{
		{ID: 1, Position: Vec3{-1, 4, 2}},
		{ID: 2, Position: Vec3{3, -2, 7}},
	}
	b, ok := BoundsOf(data)
	require.True(t, ok)
	assert.Equal(t, Bounds{MinX: -1, MaxX: 3, MinY: -2, MaxY: 4, MinZ: 2, MaxZ: 7}, b)

	lo, hi := b.Extent(AxisZ)
	assert.Equal(t, 2.0, lo)
	assert.Equal(t, 7.0, hi)
}

func TestSpeed(t *testing.T) {
	p := Particle{Velocity: Vec3{3, 4, 0}}
	assert.InDelta(t, 5.0, p.Speed(), 1e-12)
}

func TestReadCSV(t *testing.T) {
	in := "id,x,y,z,vx,vy,vz,concentration\n" +
		"7,1,2,3,0.1,0.2,0.3,42\n" +
		"8,-1,-2,-3,0,0,0,0\n"

	data, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, data, 2)
	assert.Equal(t, int64(7), data[0].ID)
	assert.Equal(t, Vec3{1, 2, 3}, data[0].Position)
	assert.Equal(t, Vec3{0.1, 0.2, 0.3}, data[0].Velocity)
	assert.Equal(t, 42.0, data[0].Concentration)
}

func TestReadCSVRejectsNegativeConcentration(t *testing.T) {
	in := "id,x,y,z,vx,vy,vz,concentration\n1,0,0,0,0,0,0,-1\n"
	_, err := ReadCSV(strings.NewReader(in))
	assert.Error(t, err)
}

func TestReadCSVRejectsNonFinite(t *testing.T) {
	rows := []string{
		"1,0,0,0,0,0,0,NaN",
		"1,0,0,0,0,0,0,+Inf",
		"1,NaN,0,0,0,0,0,1",
		"1,0,0,0,0,-Inf,0,1",
	}
	for _, row := range rows {
		in := "id,x,y,z,vx,vy,vz,concentration\n0,0,0,0,0,0,0,5\n" + row + "\n"
		_, err := ReadCSV(strings.NewReader(in))
		assert.Error(t, err, row)
	}
}

func TestWriteCSVHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Particle{{ID: 3, Concentration: 1}}))
	first := strings.SplitN(buf.String(), "\n", 2)[0]
	assert.Equal(t, "id,x,y,z,vx,vy,vz,concentration", first)
}

func TestSynthesizeDeterministic(t *testing.T) {
	p := DefaultSynthParams()
	p.Count = 500

	a := Synthesize(p)
	b := Synthesize(p)
	require.Len(t, a, 500)
	assert.Equal(t, a, b)

	for _, q := range a {
		assert.GreaterOrEqual(t, q.Concentration, 0.0)
		assert.LessOrEqual(t, q.Concentration, p.MaxConcentration)
		assert.False(t, math.IsNaN(q.Speed()))
		for ax := AxisX; ax <= AxisZ; ax++ {
			lo, hi := p.Bounds.Extent(ax)
			assert.GreaterOrEqual(t, q.Coord(ax), lo)
			assert.LessOrEqual(t, q.Coord(ax), hi)
		}
	}
}
