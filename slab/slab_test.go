package slab

import (
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/slabview/particle"
)

var depthZ = DepthFunc(particle.CoordAccessor(particle.AxisZ))

func at(id int64, z, conc float64) particle.Particle {
	return particle.Particle{ID: id, Position: particle.Vec3{0, 0, z}, Concentration: conc}
}

func ids(data []particle.Particle) []int64 {
	out := make([]int64, len(data))
	for i, p := range data {
		out[i] = p.ID
	}
	return out
}

func randomParticles(rng *rand.Rand, n int) []particle.Particle {
	data := make([]particle.Particle, n)
	for i := range data {
		data[i] = particle.Particle{
			ID: int64(i),
			Position: particle.Vec3{
				rng.Float64()*10 - 5,
				rng.Float64()*10 - 5,
				rng.Float64()*10 - 5,
			},
			Velocity:      particle.Vec3{rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64()},
			Concentration: rng.Float64() * 100,
		}
	}
	return data
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name      string
		data      []particle.Particle
		coord     float64
		thickness float64
		want      []int64
	}{
		{"empty", nil, 0, 1, []int64{}},
		{"near and far", []particle.Particle{at(1, 0.1, 1), at(2, 5.0, 1)}, 0, 1, []int64{1}},
		{"boundary excluded", []particle.Particle{at(1, 1, 1), at(2, -1, 1), at(3, 0.999, 1)}, 0, 1, []int64{3}},
		{"offset slab", []particle.Particle{at(1, 2.5, 1), at(2, 3.4, 1), at(3, 1.0, 1)}, 3, 0.6, []int64{1, 2}},
		{"zero thickness", []particle.Particle{at(1, 0, 1)}, 0, 0, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.data, tt.coord, tt.thickness, depthZ)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterMatchesDefinition(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	data := randomParticles(rng, 3000)
	got := Filter(data, 1.5, 0.75, depthZ)

	want := map[int64]bool{}
	for _, p := range data {
		if math.Abs(1.5-p.Position[2]) < 0.75 {
			want[p.ID] = true
		}
	}
	require.Len(t, got, len(want))
	for _, p := range got {
		assert.True(t, want[p.ID], "particle %d should not be in the slab", p.ID)
	}
}

func TestThreshold(t *testing.T) {
	data := []particle.Particle{at(1, 0, 10), at(2, 0, 50), at(3, 0, 100)}
	th, ok := Threshold(data, 0.8)
	require.True(t, ok)
	assert.InDelta(t, 80.0, th, 1e-9)

	kept := AboveThreshold(data, th)
	assert.Equal(t, []int64{3}, ids(kept))

	_, ok = Threshold(nil, 0.8)
	assert.False(t, ok)
}

func TestAboveThresholdStrict(t *testing.T) {
	data := []particle.Particle{at(1, 0, 80), at(2, 0, 80.0001)}
	assert.Equal(t, []int64{2}, ids(AboveThreshold(data, 80)))
}

func TestAboveThresholdIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	data := randomParticles(rng, 1000)
	th, _ := Threshold(data, 0.4)

	once := AboveThreshold(data, th)
	twice := AboveThreshold(once, th)
	assert.Equal(t, ids(once), ids(twice))
}

func TestSelectExample(t *testing.T) {
	data := []particle.Particle{
		at(1, 0.1, 10),
		at(2, -0.2, 50),
		at(3, 0.3, 100),
		at(4, 5.0, 1000), // outside the slab, must not raise the threshold
	}
	sel := Select(data, Params{Coord: 0, Thickness: 1, Depth: depthZ, UserThreshold: 0.8})

	assert.Equal(t, 3, sel.Slab)
	assert.InDelta(t, 80.0, sel.Threshold, 1e-9)
	assert.Equal(t, []int64{3}, ids(sel.Particles))
}

func TestSelectEmpty(t *testing.T) {
	sel := Select(nil, Params{Coord: 0, Thickness: 1, Depth: depthZ, UserThreshold: 0.5})
	assert.NotNil(t, sel.Particles)
	assert.Empty(t, sel.Particles)
	assert.Zero(t, sel.Slab)

	// Slab misses everything.
	sel = Select([]particle.Particle{at(1, 9, 1)}, Params{Coord: 0, Thickness: 1, Depth: depthZ})
	assert.Empty(t, sel.Particles)

	// No accessor.
	sel = Select([]particle.Particle{at(1, 0, 1)}, Params{Coord: 0, Thickness: 1})
	assert.Empty(t, sel.Particles)
}

func TestSelectOrdersByDistance(t *testing.T) {
	data := []particle.Particle{at(1, 0.5, 1), at(2, -0.1, 1), at(3, 0.3, 1), at(4, 0.1, 1)}
	sel := Select(data, Params{Coord: 0, Thickness: 1, Depth: depthZ, UserThreshold: 0})
	// 2 and 4 tie at 0.1 and keep input order.
	assert.Equal(t, []int64{2, 4, 3, 1}, ids(sel.Particles))
}

func TestSelectCapsAtMaxDots(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, n := range []int{0, 1, MaxDots - 1, MaxDots, MaxDots + 1, 3 * MaxDots} {
		data := randomParticles(rng, n)
		sel := Select(data, Params{Coord: 0, Thickness: 10, Depth: depthZ, UserThreshold: 0})
		assert.LessOrEqual(t, len(sel.Particles), MaxDots, "n=%d", n)
	}
}

func TestSelectKeepsClosest(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	data := randomParticles(rng, 5000)
	// Give every particle the same concentration so only the cap matters.
	for i := range data {
		data[i].Concentration = 1
	}
	sel := Select(data, Params{Coord: 0.25, Thickness: 100, Depth: depthZ, UserThreshold: 0.5})
	require.Len(t, sel.Particles, MaxDots)
	assert.Equal(t, 5000-MaxDots, sel.Truncated)

	dists := make([]float64, len(data))
	for i, p := range data {
		dists[i] = math.Abs(0.25 - p.Position[2])
	}
	sort.Float64s(dists)
	cutoff := dists[MaxDots-1]

	for i, p := range sel.Particles {
		d := math.Abs(0.25 - p.Position[2])
		assert.LessOrEqual(t, d, cutoff)
		if i > 0 {
			prev := math.Abs(0.25 - sel.Particles[i-1].Position[2])
			assert.LessOrEqual(t, prev, d)
		}
	}
}

func TestSelectCustomCap(t *testing.T) {
	data := []particle.Particle{at(1, 0.3, 1), at(2, 0.2, 1), at(3, 0.1, 1)}
	sel := Select(data, Params{Coord: 0, Thickness: 1, Depth: depthZ, MaxDots: 2})
	assert.Equal(t, []int64{3, 2}, ids(sel.Particles))
	assert.Equal(t, 1, sel.Truncated)
}

func TestSelectCapNeverExceedsMaxDots(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	data := randomParticles(rng, 3*MaxDots)
	for i := range data {
		data[i].Concentration = 1
	}
	sel := Select(data, Params{Coord: 0, Thickness: 100, Depth: depthZ, UserThreshold: 0.5, MaxDots: 5000})
	assert.Len(t, sel.Particles, MaxDots)
	assert.Equal(t, 2*MaxDots, sel.Truncated)
}

func TestSelectDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	data := randomParticles(rng, 4000)
	p := Params{Coord: -1, Thickness: 2, Depth: depthZ, UserThreshold: 0.3}
	assert.Equal(t, Select(data, p), Select(data, p))
}
