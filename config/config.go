// Package config provides configuration loading and access for the
// simulation: board geometry, growth economy, arena and telemetry settings.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/snek/walls"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Board       Board           `yaml:"board"`
	WallsPreset string          `yaml:"walls_preset"`
	Arena       ArenaConfig     `yaml:"arena"`
	Vision      VisionConfig    `yaml:"vision"`
	Telemetry   TelemetryConfig `yaml:"telemetry"`
	Tune        TuneConfig      `yaml:"tune"`
}

// ArenaConfig holds batch AI runner parameters.
type ArenaConfig struct {
	AIs               int    `yaml:"ais"`
	StepsPerLength    int    `yaml:"steps_per_length"`   // Step budget per body cell
	ParallelThreshold int    `yaml:"parallel_threshold"` // Runs needed before stepping in parallel
	Seed              string `yaml:"seed"`               // Derives AI names; empty = random
}

// VisionConfig holds vision sensor parameters.
type VisionConfig struct {
	Distance int `yaml:"distance"` // Max raycast steps per direction
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow    int `yaml:"stats_window"` // Arena steps per stats window
	HallOfFameSize int `yaml:"hall_of_fame_size"`
}

// TuneConfig holds policy tuning parameters.
type TuneConfig struct {
	Seeds        int     `yaml:"seeds"`     // Board seeds per evaluation
	MaxSteps     int     `yaml:"max_steps"` // Arena step cap per evaluation
	AIs          int     `yaml:"ais"`
	InitStepSize float64 `yaml:"init_step_size"`
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

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
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

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived normalises the board and expands the wall preset.
func (c *Config) computeDerived() error {
	c.Board = NewBoard(c.Board)
	if len(c.Board.Walls) == 0 && c.WallsPreset != "" {
		if err := c.ApplyWallsPreset(c.WallsPreset); err != nil {
			return err
		}
	}

	if c.Arena.StepsPerLength < 1 {
		c.Arena.StepsPerLength = 1
	}
	if c.Vision.Distance < 1 {
		c.Vision.Distance = 1
	}
	if c.Telemetry.StatsWindow < 1 {
		c.Telemetry.StatsWindow = 1
	}
	return nil
}

// ApplyWallsPreset replaces the board walls with the named preset, sized
// to the current board.
func (c *Config) ApplyWallsPreset(key string) error {
	p, ok := walls.ByKey(key)
	if !ok {
		return fmt.Errorf("unknown walls preset %q", key)
	}
	c.WallsPreset = key
	c.Board.Walls = p.Layout(c.Board.Width, c.Board.Height)
	return nil
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
