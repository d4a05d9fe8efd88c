// Command slabgen writes a synthetic particle field as CSV.
//
// Usage: go run ./cmd/slabgen -out particles.csv
package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"github.com/pthm-cable/slabview/config"
	"github.com/pthm-cable/slabview/particle"
	"github.com/pthm-cable/slabview/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Config YAML whose data.synthetic section is used (empty = defaults)")
	out := flag.String("out", "particles.csv", "Output CSV path")
	count := flag.Int("count", 0, "Particle count (0 = use config)")
	var seed *int64
	flag.Func("seed", "Noise seed (unset = use config)", func(s string) error {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return err
		}
		seed = &v
		return nil
	})
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	params := config.Cfg().Data.Synthetic.SynthParams()
	if *count > 0 {
		params.Count = *count
	}
	if seed != nil {
		params.Seed = *seed
	}

	data := particle.Synthesize(params)
	if err := particle.SaveCSV(*out, data); err != nil {
		slog.Error("failed to write particles", "error", err)
		os.Exit(1)
	}

	conc := make([]float64, len(data))
	for i := range data {
		conc[i] = data[i].Concentration
	}
	mean, p50, p90 := telemetry.ConcentrationStats(conc)
	slog.Info("particles written",
		"path", *out,
		"count", len(data),
		"seed", params.Seed,
		"conc_mean", mean,
		"conc_p50", p50,
		"conc_p90", p90,
	)
}
