package main

import (
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"

	"github.com/pthm-cable/slabview/config"
	"github.com/pthm-cable/slabview/particle"
	"github.com/pthm-cable/slabview/renderer"
	"github.com/pthm-cable/slabview/surface"
	"github.com/pthm-cable/slabview/telemetry"
	"github.com/pthm-cable/slabview/view"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	dataPath := flag.String("data", "", "Particle CSV (empty = use config, then synthesize)")
	headless := flag.Bool("headless", false, "Render one frame to -out and exit")
	outPath := flag.String("out", "slab.png", "Image written in headless mode or on [P] (.png or .svg)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	var bf brushFlags
	flag.StringVar(&bf.axis, "axis", "", "Brushed axis x, y or z (empty = use config)")
	flag.Var(&bf.coord, "coord", "Slab center (unset = use config)")
	flag.Var(&bf.thickness, "thickness", "Slab half-width (unset = use config)")
	flag.Var(&bf.threshold, "threshold", "Concentration fraction in [0, 1] (unset = use config)")
	debug := flag.Bool("debug", false, "Log every pass")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	gg.SetLogger(logger)

	data, bounds, err := loadParticles(cfg, *dataPath)
	if err != nil {
		slog.Error("failed to load particles", "error", err)
		os.Exit(1)
	}

	brush, err := bf.apply(cfg.Derived.Axis, cfg.Brush.Coord, cfg.Brush.Thickness, cfg.Brush.ConcentrationThreshold, bounds)
	if err != nil {
		slog.Error("invalid brush flags", "error", err)
		os.Exit(1)
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	props := view.PropsFromConfig(cfg)
	props.BrushedAxis = brush.Axis
	props.BrushedCoord = brush.Coord
	props.GetBrushedCoord = brush.Accessor()
	props.BrushedAreaThickness = brush.Thickness
	props.UserConcentrationThreshold = brush.Threshold
	v := view.New(props, view.OptionsFromConfig(cfg), om, logger)
	v.SetData(data)
	v.SetBounds(&bounds)

	style := renderer.Style{
		Background:  cfg.Derived.Background,
		Stroke:      cfg.Derived.StrokeColor,
		StrokeWidth: cfg.View.StrokeWidth,
	}

	slog.Info("starting",
		"particles", len(data),
		"axis", brush.Axis.String(),
		"coord", brush.Coord,
		"thickness", brush.Thickness,
		"threshold", brush.Threshold,
		"headless", *headless,
		"output_dir", om.Dir(),
	)

	if *headless {
		// Headless mode - settle immediately, no raylib needed
		w, h := cfg.CanvasSize()
		scene := surface.NewScene(0)
		v.Attach(scene, w, h)
		v.Update()
		if err := saveFrame(*outPath, scene, int(w), int(h), style); err != nil {
			slog.Error("failed to save frame", "error", err)
			os.Exit(1)
		}
		slog.Info("frame saved", "path", *outPath, "stats", v.LastPass())
		return
	}

	runWindow(cfg, v, brush, style, *outPath)
}

// loadParticles reads the CSV named by the flag or config, or synthesizes a field.
func loadParticles(cfg *config.Config, path string) ([]particle.Particle, particle.Bounds, error) {
	if path == "" {
		path = cfg.Data.Path
	}
	if path == "" {
		params := cfg.Data.Synthetic.SynthParams()
		slog.Info("synthesizing particles", "count", params.Count, "seed", params.Seed)
		return particle.Synthesize(params), params.Bounds, nil
	}

	data, err := particle.LoadCSV(path)
	if err != nil {
		return nil, particle.Bounds{}, err
	}
	bounds, _ := particle.BoundsOf(data)
	slog.Info("loaded particles", "path", path, "count", len(data))
	return data, bounds, nil
}

// saveFrame writes the scene as PNG or SVG depending on the extension.
func saveFrame(path string, scene *surface.Scene, w, h int, style renderer.Style) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return renderer.SaveSVG(path, scene, w, h, style)
	}
	return renderer.NewRaster(style).SavePNG(scene, w, h, path)
}
