// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/turing/field"
	"github.com/pthm-cable/turing/systems"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// maxGradientStops mirrors the renderer's gradient capacity.
const maxGradientStops = 8

// Config holds all simulation configuration parameters.
type Config struct {
	Screen       ScreenConfig       `yaml:"screen"`
	Grid         GridConfig         `yaml:"grid"`
	Simulation   SimulationConfig   `yaml:"simulation"`
	ParameterMap ParameterMapConfig `yaml:"parameter_map"`
	Seed         SeedConfig         `yaml:"seed"`
	Paint        PaintConfig        `yaml:"paint"`
	Render       RenderConfig       `yaml:"render"`
	Relief       ReliefConfig       `yaml:"relief"`
	Gradient     []GradientStop     `yaml:"gradient"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	Recording    RecordingConfig    `yaml:"recording"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display parameters.
type ScreenConfig struct {
	Width      int32   `yaml:"width"`
	Height     int32   `yaml:"height"`
	TargetFPS  int32   `yaml:"target_fps"`
	PanelWidth int32   `yaml:"panel_width"`
	MaxZoom    float64 `yaml:"max_zoom"`
}

// GridConfig holds field dimensions.
type GridConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	MaxCells int `yaml:"max_cells"` // 0 = field.DefaultMaxCells
}

// SimulationConfig holds the Gray-Scott parameters.
type SimulationConfig struct {
	FeedRate      float64 `yaml:"feed_rate"`
	KillRate      float64 `yaml:"kill_rate"`
	DiffuseU      float64 `yaml:"diffuse_u"`
	DiffuseV      float64 `yaml:"diffuse_v"`
	DeltaTime     float64 `yaml:"delta_time"`
	NoiseStrength float64 `yaml:"noise_strength"`
	Stencil       string  `yaml:"stencil"`
	Boundary      string  `yaml:"boundary"`
	MapMode       bool    `yaml:"map_mode"`
	StepsPerFrame int     `yaml:"steps_per_frame"`
	Workers       int     `yaml:"workers"` // 0 = GOMAXPROCS
}

// ParameterMapConfig holds the feed/kill ranges swept in map mode.
type ParameterMapConfig struct {
	KillMin float64 `yaml:"kill_min"`
	KillMax float64 `yaml:"kill_max"`
	FeedMin float64 `yaml:"feed_min"`
	FeedMax float64 `yaml:"feed_max"`
}

// SeedConfig holds initial-condition parameters.
type SeedConfig struct {
	RNGSeed       int64   `yaml:"rng_seed"` // 0 = time-based
	Radius        float64 `yaml:"radius"`
	BlobCount     int     `yaml:"blob_count"`
	BlobRadiusMin float64 `yaml:"blob_radius_min"`
	BlobRadiusMax float64 `yaml:"blob_radius_max"`
}

// PaintConfig holds brush parameters.
type PaintConfig struct {
	Radius int `yaml:"radius"`
}

// RenderConfig holds compositor parameters.
type RenderConfig struct {
	Palette      int     `yaml:"palette"`
	Relief       bool    `yaml:"relief"`
	Zoom         float64 `yaml:"zoom"`
	PanX         float64 `yaml:"pan_x"`
	PanY         float64 `yaml:"pan_y"`
	OutputWidth  int     `yaml:"output_width"`  // 0 = grid width
	OutputHeight int     `yaml:"output_height"` // 0 = grid height
}

// ReliefConfig holds relief lighting parameters.
type ReliefConfig struct {
	Ambient      float64 `yaml:"ambient"`
	KeyWeight    float64 `yaml:"key_weight"`
	RimWeight    float64 `yaml:"rim_weight"`
	SpecExponent float64 `yaml:"spec_exponent"`
	SpecScale    float64 `yaml:"spec_scale"`
	Strength     float64 `yaml:"strength"`
	BorderMargin int     `yaml:"border_margin"`
}

// GradientStop is one stop of the default gradient.
type GradientStop struct {
	Pos   float64    `yaml:"pos"`
	Color [3]float64 `yaml:"color,flow"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int     `yaml:"stats_window"` // ticks per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	CoverageThreshold   float64 `yaml:"coverage_threshold"`
}

// RecordingConfig holds video capture parameters.
type RecordingConfig struct {
	FPS         int32 `yaml:"fps"`
	JPEGQuality int   `yaml:"jpeg_quality"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Stencil   systems.Stencil // Simulation.Stencil parsed
	Boundary  field.Boundary  // Simulation.Boundary parsed
	OutputW   int             // Effective render width
	OutputH   int             // Effective render height
	ScreenW32 float32         // Screen.Width as float32
	ScreenH32 float32         // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path (or defaults if empty)
// and sets it as the global config.
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
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
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

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults. It panics if they are invalid.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Finalize validates the config and recomputes derived values.
// Call it after editing fields in code.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	if err := field.CheckSize(c.Grid.Width, c.Grid.Height, c.Grid.MaxCells); err != nil {
		return fmt.Errorf("%w: grid: %w", ErrInvalid, err)
	}
	if _, err := systems.ParseStencil(c.Simulation.Stencil); err != nil {
		return fmt.Errorf("%w: simulation.stencil: %w", ErrInvalid, err)
	}
	if _, err := field.ParseBoundary(c.Simulation.Boundary); err != nil {
		return fmt.Errorf("%w: simulation.boundary: %w", ErrInvalid, err)
	}
	sim := c.Simulation
	for _, r := range []struct {
		name string
		v    float64
	}{
		{"simulation.feed_rate", sim.FeedRate},
		{"simulation.kill_rate", sim.KillRate},
		{"simulation.diffuse_u", sim.DiffuseU},
		{"simulation.diffuse_v", sim.DiffuseV},
		{"simulation.noise_strength", sim.NoiseStrength},
	} {
		if err := systems.CheckRate(r.name, r.v); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalid, err)
		}
	}
	if err := systems.CheckDeltaTime("simulation.delta_time", sim.DeltaTime); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := systems.CheckStepsPerFrame("simulation.steps_per_frame", sim.StepsPerFrame); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if err := systems.CheckRadius("paint.radius", c.Paint.Radius); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	pm := c.ParameterMap
	if pm.KillMin > pm.KillMax {
		return fmt.Errorf("%w: parameter_map kill_min %g > kill_max %g", ErrInvalid, pm.KillMin, pm.KillMax)
	}
	if pm.FeedMin > pm.FeedMax {
		return fmt.Errorf("%w: parameter_map feed_min %g > feed_max %g", ErrInvalid, pm.FeedMin, pm.FeedMax)
	}
	if c.Seed.BlobRadiusMin > c.Seed.BlobRadiusMax {
		return fmt.Errorf("%w: seed blob_radius_min %g > blob_radius_max %g", ErrInvalid, c.Seed.BlobRadiusMin, c.Seed.BlobRadiusMax)
	}
	if c.Seed.BlobCount < 0 {
		return fmt.Errorf("%w: seed.blob_count must be >= 0, got %d", ErrInvalid, c.Seed.BlobCount)
	}
	if len(c.Gradient) > maxGradientStops {
		return fmt.Errorf("%w: gradient has %d stops, max %d", ErrInvalid, len(c.Gradient), maxGradientStops)
	}
	if c.Render.Palette < 0 {
		return fmt.Errorf("%w: render.palette must be >= 0, got %d", ErrInvalid, c.Render.Palette)
	}
	if c.Render.OutputWidth < 0 || c.Render.OutputHeight < 0 {
		return fmt.Errorf("%w: render output size must be >= 0", ErrInvalid)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
// Validate must have succeeded first.
func (c *Config) computeDerived() {
	c.Derived.Stencil, _ = systems.ParseStencil(c.Simulation.Stencil)
	c.Derived.Boundary, _ = field.ParseBoundary(c.Simulation.Boundary)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// Output size defaults to one pixel per cell
	c.Derived.OutputW = c.Render.OutputWidth
	if c.Derived.OutputW == 0 {
		c.Derived.OutputW = c.Grid.Width
	}
	c.Derived.OutputH = c.Render.OutputHeight
	if c.Derived.OutputH == 0 {
		c.Derived.OutputH = c.Grid.Height
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
