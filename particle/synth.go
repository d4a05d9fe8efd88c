package particle

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
)

// SynthParams configures the synthetic particle field.
type SynthParams struct {
	Count            int
	Seed             int64
	Bounds           Bounds
	NoiseScale       float64 // Spatial frequency of the flow and concentration fields
	Speed            float64 // Peak velocity component
	MaxConcentration float64
	Contrast         float64 // Exponent applied to concentration (higher = sparser plumes)
}

// DefaultSynthParams returns a 10-unit box holding twenty thousand particles.
func DefaultSynthParams() SynthParams {
	return SynthParams{
		Count:            20000,
		Seed:             1,
		Bounds:           Bounds{MinX: -5, MaxX: 5, MinY: -5, MaxY: 5, MinZ: 0, MaxZ: 10},
		NoiseScale:       0.25,
		Speed:            1.0,
		MaxConcentration: 100,
		Contrast:         2.0,
	}
}

// Synthesize scatters particles uniformly inside the bounds and samples
// velocity and concentration from simplex noise fields.
// The same params always yield the same particles.
func Synthesize(p SynthParams) []Particle {
	rng := rand.New(rand.NewSource(p.Seed))
	// Independent fields per velocity component and concentration.
	fields := [4]opensimplex.Noise{
		opensimplex.New(p.Seed),
		opensimplex.New(p.Seed + 1),
		opensimplex.New(p.Seed + 2),
		opensimplex.New(p.Seed + 3),
	}

	contrast := p.Contrast
	if contrast <= 0 {
		contrast = 1
	}

	data := make([]Particle, p.Count)
	for i := range data {
		pos := Vec3{
			lerp(p.Bounds.MinX, p.Bounds.MaxX, rng.Float64()),
			lerp(p.Bounds.MinY, p.Bounds.MaxY, rng.Float64()),
			lerp(p.Bounds.MinZ, p.Bounds.MaxZ, rng.Float64()),
		}
		sx, sy, sz := pos[0]*p.NoiseScale, pos[1]*p.NoiseScale, pos[2]*p.NoiseScale

		var vel Vec3
		for a := range vel {
			vel[a] = p.Speed * fields[a].Eval3(sx, sy, sz)
		}

		// Eval3 is roughly in [-1, 1]; fold into [0, 1] before shaping.
		c := (fields[3].Eval3(sx, sy, sz) + 1) / 2
		c = math.Pow(clamp01(c), contrast) * p.MaxConcentration

		data[i] = Particle{
			ID:            int64(i),
			Position:      pos,
			Velocity:      vel,
			Concentration: c,
		}
	}
	return data
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
