package particle

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gocarina/gocsv"
)

// Record is the CSV row layout for a particle.
type Record struct {
	ID            int64   `csv:"id"`
	X             float64 `csv:"x"`
	Y             float64 `csv:"y"`
	Z             float64 `csv:"z"`
	VX            float64 `csv:"vx"`
	VY            float64 `csv:"vy"`
	VZ            float64 `csv:"vz"`
	Concentration float64 `csv:"concentration"`
}

// ToParticle converts a CSV row to a Particle.
func (r Record) ToParticle() Particle {
	return Particle{
		ID:            r.ID,
		Position:      Vec3{r.X, r.Y, r.Z},
		Velocity:      Vec3{r.VX, r.VY, r.VZ},
		Concentration: r.Concentration,
	}
}

// ToRecord converts a Particle to its CSV row.
func ToRecord(p Particle) Record {
	return Record{
		ID: p.ID,
		X:  p.Position[0], Y: p.Position[1], Z: p.Position[2],
		VX: p.Velocity[0], VY: p.Velocity[1], VZ: p.Velocity[2],
		Concentration: p.Concentration,
	}
}

// ReadCSV decodes particles from CSV with an id,x,y,z,vx,vy,vz,concentration header.
func ReadCSV(r io.Reader) ([]Particle, error) {
	var records []Record
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("decoding particles: %w", err)
	}
	data := make([]Particle, len(records))
	for i, rec := range records {
		p := rec.ToParticle()
		if !finite(p.Position[:]) || !finite(p.Velocity[:]) || !finite([]float64{p.Concentration}) {
			return nil, fmt.Errorf("particle %d: non-finite value", rec.ID)
		}
		if p.Concentration < 0 {
			return nil, fmt.Errorf("particle %d: negative concentration %v", rec.ID, p.Concentration)
		}
		data[i] = p
	}
	return data, nil
}

// LoadCSV reads a particle CSV file.
func LoadCSV(path string) ([]Particle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening particle file: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// WriteCSV encodes particles as CSV including the header row.
func WriteCSV(w io.Writer, data []Particle) error {
	records := make([]Record, len(data))
	for i := range data {
		records[i] = ToRecord(data[i])
	}
	if err := gocsv.Marshal(records, w); err != nil {
		return fmt.Errorf("encoding particles: %w", err)
	}
	return nil
}

// SaveCSV writes particles to a CSV file.
func SaveCSV(path string, data []Particle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating particle file: %w", err)
	}
	if err := WriteCSV(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func finite(vs []float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
