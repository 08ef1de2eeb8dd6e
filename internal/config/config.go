// Package config loads and validates the YAML configuration consumed by
// the scheduler, following the teacher's common.LoadConfig pattern.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hardsphere/internal/sim"
)

// Defaults from spec.md §6.
const (
	DefaultGravity         = false
	DefaultBallRestitution = 1.0
	DefaultWallRestitution = 1.0
	DefaultOutputRate      = 1.0
	DefaultRandomSeed      = 100
	DefaultLogLevel        = "INFO"
)

// rawConfig mirrors the YAML document with pointer fields for every key
// that has a default, so the loader can tell "absent from the file" apart
// from "explicitly set to the zero value" (false, 0) before defaulting —
// neither is recoverable once unmarshaled straight into a value field.
type rawConfig struct {
	NDim            int       `yaml:"ndim"`
	NumBalls        int       `yaml:"num_balls"`
	BallRadius      float64   `yaml:"ball_radius"`
	DomainSize      []float64 `yaml:"domain_size"`
	SimulationTime  float64   `yaml:"simulation_time"`
	Gravity         *bool     `yaml:"gravity"`
	BallRestitution *float64  `yaml:"ball_restitution"`
	WallRestitution *float64  `yaml:"wall_restitution"`
	OutputRate      *float64  `yaml:"output_rate"`
	RandomSeed      *int64    `yaml:"random_seed"`
	RunName         string    `yaml:"run_name"`
	OutputDir       string    `yaml:"output_dir"`

	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`

	Diagnostics struct {
		Enabled bool   `yaml:"enabled"`
		File    string `yaml:"file"`
	} `yaml:"diagnostics"`

	Livefeed struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"livefeed"`
}

// Config is the fully-resolved, defaulted configuration. SimParams is
// ready to pass straight to sim.NewScheduler.
type Config struct {
	SimParams sim.Params

	RunName   string
	OutputDir string

	LogLevel string

	DiagnosticsEnabled bool
	DiagnosticsFile    string

	LivefeedEnabled bool
	LivefeedAddr    string
}

// Load reads path, unmarshals it, applies spec.md §6 defaults to every
// key that was absent from the file, and aggregates every validation
// violation into one *sim.ConfigError rather than stopping at the first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse config file %q: %w", path, err)
	}

	cfg := &Config{
		RunName:   raw.RunName,
		OutputDir: raw.OutputDir,
		LogLevel:  raw.Log.Level,

		DiagnosticsEnabled: raw.Diagnostics.Enabled,
		DiagnosticsFile:    raw.Diagnostics.File,

		LivefeedEnabled: raw.Livefeed.Enabled,
		LivefeedAddr:    raw.Livefeed.Addr,
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	var domainSize sim.Vec
	for axis, v := range raw.DomainSize {
		if axis < sim.MaxDim {
			domainSize[axis] = v
		}
	}

	gravity := DefaultGravity
	if raw.Gravity != nil {
		gravity = *raw.Gravity
	}
	ballRestitution := DefaultBallRestitution
	if raw.BallRestitution != nil {
		ballRestitution = *raw.BallRestitution
	}
	wallRestitution := DefaultWallRestitution
	if raw.WallRestitution != nil {
		wallRestitution = *raw.WallRestitution
	}
	outputRate := DefaultOutputRate
	if raw.OutputRate != nil {
		outputRate = *raw.OutputRate
	}
	randomSeed := int64(DefaultRandomSeed)
	if raw.RandomSeed != nil {
		randomSeed = *raw.RandomSeed
	}

	cfg.SimParams = sim.Params{
		NDim:            raw.NDim,
		NumBalls:        raw.NumBalls,
		BallRadius:      raw.BallRadius,
		DomainSize:      domainSize,
		SimulationTime:  raw.SimulationTime,
		Gravity:         gravity,
		BallRestitution: ballRestitution,
		WallRestitution: wallRestitution,
		OutputRate:      outputRate,
		RandomSeed:      randomSeed,
	}

	var violations []string
	if err := sim.ValidateParams(cfg.SimParams); err != nil {
		cfgErr, ok := err.(*sim.ConfigError)
		if !ok {
			return nil, err
		}
		violations = append(violations, cfgErr.Violations...)
	}
	if cfg.RunName == "" {
		violations = append(violations, "run_name is required")
	}
	if cfg.OutputDir == "" {
		violations = append(violations, "output_dir is required")
	}
	if len(violations) > 0 {
		return nil, &sim.ConfigError{Violations: violations}
	}

	return cfg, nil
}
