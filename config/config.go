// Package config holds the tunables of planners, matches and experiments.
// A Config is built once and passed by value; nothing reads it globally.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"spires/game"
	"spires/grid"
)

type Config struct {
	LogLevel   string     `yaml:"log_level"`
	Planner    Planner    `yaml:"planner"`
	Engine     Engine     `yaml:"engine"`
	Experiment Experiment `yaml:"experiment"`
}

// Planner configures one planning controller.
type Planner struct {
	Depth      int             `yaml:"depth"`
	Budget     time.Duration   `yaml:"budget"` // zero disables the time budget
	TieBand    int             `yaml:"tie_band"`
	Seed       uint64          `yaml:"seed"`
	Pruning    bool            `yaml:"pruning"`
	TabuWindow int             `yaml:"tabu_window"`
	Rules      string          `yaml:"rules"`     // "standard" or "claim"
	Evaluator  string          `yaml:"evaluator"` // "position" or "resources"
	Moves      game.MoveConfig `yaml:"moves"`
	Weights    game.Weights    `yaml:"weights"`
}

// Engine configures a headless match.
type Engine struct {
	MaxTurns        int            `yaml:"max_turns"`
	TravelLoss      int            `yaml:"travel_loss"` // units lost per step by the executor
	HomeGarrison    int            `yaml:"home_garrison"`
	NeutralGarrison int            `yaml:"neutral_garrison"`
	Production      int            `yaml:"production"`
	CaptureCost     int            `yaml:"capture_cost"`
	Board           grid.GenConfig `yaml:"board"`
}

// Experiment configures a batch of matches.
type Experiment struct {
	Name      string `yaml:"name"`
	Games     int    `yaml:"games"` // per matchup
	OutputDir string `yaml:"output_dir"`
	Database  string `yaml:"database"` // sqlite path, empty disables the store
}

// Load reads path on top of the defaults and applies environment overrides.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var err error
	if c.Planner.Depth, err = envIntOrDefault("SPIRES_DEPTH", c.Planner.Depth); err != nil {
		return err
	}
	if v := os.Getenv("SPIRES_BUDGET"); v != "" {
		d, perr := time.ParseDuration(v)
		if perr != nil {
			return fmt.Errorf("invalid SPIRES_BUDGET %q: %w", v, perr)
		}
		c.Planner.Budget = d
	}
	if v := os.Getenv("SPIRES_SEED"); v != "" {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return fmt.Errorf("invalid SPIRES_SEED %q: %w", v, perr)
		}
		c.Planner.Seed = seed
		c.Engine.Board.Seed = int64(seed)
	}
	c.Experiment.Database = envOrDefault("SPIRES_DB", c.Experiment.Database)
	c.LogLevel = envOrDefault("LOG_LEVEL", c.LogLevel)
	return nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	var errs []error
	if _, err := game.RulesByName(c.Planner.Rules); err != nil {
		errs = append(errs, err)
	}
	switch c.Planner.Evaluator {
	case "", "position", "resources":
	default:
		errs = append(errs, fmt.Errorf("unknown evaluator %q", c.Planner.Evaluator))
	}
	if c.Planner.Budget < 0 {
		errs = append(errs, errors.New("planner budget must not be negative"))
	}
	if c.Planner.TieBand < 0 {
		errs = append(errs, errors.New("planner tie band must not be negative"))
	}
	if c.Engine.MaxTurns <= 0 {
		errs = append(errs, errors.New("engine max turns must be positive"))
	}
	if c.Engine.TravelLoss < 0 {
		errs = append(errs, errors.New("engine travel loss must not be negative"))
	}
	if c.Engine.Board.Radius <= 0 {
		errs = append(errs, errors.New("board radius must be positive"))
	}
	return errors.Join(errs...)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}
