// Package config provides configuration loading and access for the slab view.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/gogpu/gg"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/slabview/particle"
	"github.com/pthm-cable/slabview/slab"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all view configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	View      ViewConfig      `yaml:"view"`
	Brush     BrushConfig     `yaml:"brush"`
	Color     ColorConfig     `yaml:"color"`
	Data      DataConfig      `yaml:"data"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // Brushing panel on the right; canvas gets the rest
}

// ViewConfig holds glyph layout parameters.
type ViewConfig struct {
	Margin                    float64 `yaml:"margin"`
	MaxDots                   int     `yaml:"max_dots"`
	RadiusFactor              float64 `yaml:"radius_factor"`               // radius = max(factor * min(w, h) / n, min_radius)
	MinRadius                 float64 `yaml:"min_radius"`
	VelocityScale             float64 `yaml:"velocity_scale"`              // Fastest arrow spans radius / velocity_scale
	ConcentrationRadiusFactor float64 `yaml:"concentration_radius_factor"` // Ring radius per unit concentration
	TransitionMS              int     `yaml:"transition_ms"`
	StrokeWidth               float64 `yaml:"stroke_width"`
	StrokeColor               string  `yaml:"stroke_color"`
	Background                string  `yaml:"background"`
}

// BrushConfig holds the initial slab.
type BrushConfig struct {
	Axis                   string  `yaml:"axis"`
	Coord                  float64 `yaml:"coord"`
	Thickness              float64 `yaml:"thickness"`               // Half-width of the slab
	ConcentrationThreshold float64 `yaml:"concentration_threshold"` // Fraction of the slab's peak concentration
}

// ColorConfig holds the glyph color ramp.
type ColorConfig struct {
	Range [2]string `yaml:"range"` // Hex colors for the bottom and top of the vertical axis
}

// DataConfig selects the particle source.
type DataConfig struct {
	Path      string          `yaml:"path"` // CSV file; empty = synthesize
	Synthetic SyntheticConfig `yaml:"synthetic"`
}

// SyntheticConfig holds generator parameters for the built-in particle field.
type SyntheticConfig struct {
	Count            int          `yaml:"count"`
	Seed             int64        `yaml:"seed"`
	NoiseScale       float64      `yaml:"noise_scale"`
	Speed            float64      `yaml:"speed"`
	MaxConcentration float64      `yaml:"max_concentration"`
	Contrast         float64      `yaml:"contrast"`
	Bounds           BoundsConfig `yaml:"bounds"`
}

// BoundsConfig is the YAML form of particle.Bounds.
type BoundsConfig struct {
	MinX float64 `yaml:"min_x"`
	MaxX float64 `yaml:"max_x"`
	MinY float64 `yaml:"min_y"`
	MaxY float64 `yaml:"max_y"`
	MinZ float64 `yaml:"min_z"`
	MaxZ float64 `yaml:"max_z"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow int `yaml:"perf_window"` // Passes averaged by the perf collector
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Axis        particle.Axis
	ColorRange  [2]gg.RGBA
	StrokeColor gg.RGBA
	Background  gg.RGBA
	Transition  time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()
	return cfg, nil
}

// Validate checks values the view cannot work with.
func (c *Config) Validate() error {
	if _, err := particle.ParseAxis(c.Brush.Axis); err != nil {
		return fmt.Errorf("brush.axis: %w", err)
	}
	if c.Brush.Thickness <= 0 {
		return fmt.Errorf("brush.thickness must be positive, got %v", c.Brush.Thickness)
	}
	if t := c.Brush.ConcentrationThreshold; t < 0 || t > 1 {
		return fmt.Errorf("brush.concentration_threshold must be in [0, 1], got %v", t)
	}
	if c.View.MaxDots < 0 || c.View.MaxDots > slab.MaxDots {
		return fmt.Errorf("view.max_dots must be in [0, %d], got %d", slab.MaxDots, c.View.MaxDots)
	}
	if c.Screen.Width <= c.Screen.PanelWidth || c.Screen.Height <= 0 {
		return fmt.Errorf("screen %dx%d leaves no room for the canvas", c.Screen.Width, c.Screen.Height)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.Axis, _ = particle.ParseAxis(c.Brush.Axis)
	c.Derived.ColorRange = [2]gg.RGBA{gg.Hex(c.Color.Range[0]), gg.Hex(c.Color.Range[1])}
	c.Derived.StrokeColor = gg.Hex(c.View.StrokeColor)
	c.Derived.Background = gg.Hex(c.View.Background)
	c.Derived.Transition = time.Duration(c.View.TransitionMS) * time.Millisecond
}

// CanvasSize returns the drawing area in pixels.
func (c *Config) CanvasSize() (w, h float64) {
	return float64(c.Screen.Width - c.Screen.PanelWidth), float64(c.Screen.Height)
}

// Bounds returns the synthetic field bounds.
func (b BoundsConfig) Bounds() particle.Bounds {
	return particle.Bounds{
		MinX: b.MinX, MaxX: b.MaxX,
		MinY: b.MinY, MaxY: b.MaxY,
		MinZ: b.MinZ, MaxZ: b.MaxZ,
	}
}

// SynthParams converts the synthetic section to generator parameters.
func (s SyntheticConfig) SynthParams() particle.SynthParams {
	return particle.SynthParams{
		Count:            s.Count,
		Seed:             s.Seed,
		Bounds:           s.Bounds.Bounds(),
		NoiseScale:       s.NoiseScale,
		Speed:            s.Speed,
		MaxConcentration: s.MaxConcentration,
		Contrast:         s.Contrast,
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
