// Package config loads the tunable parameters needed to bootstrap a
// world: loader concurrency, navigation defaults, and terrain generation
// knobs. Mirrors the teacher's own config package shape (a single Config
// struct, JSON or YAML depending on file extension, Default + Validate).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config captures the tunable parameters needed to bootstrap a world.
type Config struct {
	Loader  LoaderConfig  `json:"loader" yaml:"loader"`
	Nav     NavConfig     `json:"nav" yaml:"nav"`
	Terrain TerrainConfig `json:"terrain" yaml:"terrain"`
	Viewer  ViewerConfig  `json:"viewer" yaml:"viewer"`
}

// LoaderConfig bounds the background slab loader's concurrency and
// backpressure (§7's LoaderBusy threshold is MaxQueueDepth).
type LoaderConfig struct {
	Workers        int `json:"workers" yaml:"workers"`
	MaxQueueDepth  int `json:"maxQueueDepth" yaml:"maxQueueDepth"`
	ResultCapacity int `json:"resultCapacity" yaml:"resultCapacity"`
}

// NavConfig is the default agent shape and cost policy path queries use
// when the caller doesn't supply its own.
type NavConfig struct {
	Width          int     `json:"width" yaml:"width"`
	Height         int     `json:"height" yaml:"height"`
	StepHeight     int     `json:"stepHeight" yaml:"stepHeight"`
	WalkMultiplier float64 `json:"walkMultiplier" yaml:"walkMultiplier"`
	JumpMultiplier float64 `json:"jumpMultiplier" yaml:"jumpMultiplier"`
	ExpansionLimit int     `json:"expansionLimit" yaml:"expansionLimit"`
}

// TerrainConfig parameterizes the Perlin heightmap terrain source.
type TerrainConfig struct {
	Seed        int64   `json:"seed" yaml:"seed"`
	Persistence float64 `json:"persistence" yaml:"persistence"`
	Lacunarity  float64 `json:"lacunarity" yaml:"lacunarity"`
	Octaves     int32   `json:"octaves" yaml:"octaves"`
	Amplitude   float64 `json:"amplitude" yaml:"amplitude"`
	BaseHeight  int32   `json:"baseHeight" yaml:"baseHeight"`
}

// ViewerConfig is the default vertical slice window a WorldViewer opens
// with, expressed as a half-extent above and below the camera.
type ViewerConfig struct {
	SlicesBelow int32 `json:"slicesBelow" yaml:"slicesBelow"`
	SlicesAbove int32 `json:"slicesAbove" yaml:"slicesAbove"`
}

// Load reads configuration from a file if provided, dispatching on its
// extension (.yaml/.yml vs everything else treated as JSON). An empty
// path returns defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Default returns a configuration suitable for local development.
func Default() *Config {
	return &Config{
		Loader: LoaderConfig{
			Workers:        4,
			MaxQueueDepth:  4096,
			ResultCapacity: 256,
		},
		Nav: NavConfig{
			Width:          1,
			Height:         2,
			StepHeight:     1,
			WalkMultiplier: 1,
			JumpMultiplier: 1,
			ExpansionLimit: 20000,
		},
		Terrain: TerrainConfig{
			Seed:        1,
			Persistence: 0.5,
			Lacunarity:  2.0,
			Octaves:     3,
			Amplitude:   24,
			BaseHeight:  32,
		},
		Viewer: ViewerConfig{
			SlicesBelow: 32,
			SlicesAbove: 32,
		},
	}
}

func (c *Config) Validate() error {
	if c.Loader.Workers <= 0 {
		return errors.New("loader.workers must be positive")
	}
	if c.Loader.MaxQueueDepth < 0 {
		return errors.New("loader.maxQueueDepth cannot be negative")
	}
	if c.Loader.ResultCapacity <= 0 {
		return errors.New("loader.resultCapacity must be positive")
	}
	if c.Nav.Width <= 0 || c.Nav.Height <= 0 {
		return errors.New("nav.width and nav.height must be positive")
	}
	if c.Nav.StepHeight < 0 {
		return errors.New("nav.stepHeight cannot be negative")
	}
	if c.Terrain.Octaves <= 0 {
		return errors.New("terrain.octaves must be positive")
	}
	if c.Viewer.SlicesBelow < 0 || c.Viewer.SlicesAbove < 0 {
		return errors.New("viewer.slicesBelow and viewer.slicesAbove cannot be negative")
	}
	return nil
}
