package config

import (
	"time"

	"spires/game"
	"spires/grid"
)

const (
	DefaultDepth      = 3
	DefaultBudget     = 250 * time.Millisecond
	DefaultTieBand    = 0
	DefaultTabuWindow = 6

	DefaultMaxTurns        = 300
	DefaultTravelLoss      = 1
	DefaultHomeGarrison    = 20
	DefaultNeutralGarrison = 5
	DefaultProduction      = 2
	DefaultCaptureCost     = 10

	DefaultGames              = 10
	DefaultSamplerTemperature = 20.0
)

func Default() *Config {
	return &Config{
		LogLevel: "info",
		Planner:  DefaultPlanner(),
		Engine: Engine{
			MaxTurns:        DefaultMaxTurns,
			TravelLoss:      DefaultTravelLoss,
			HomeGarrison:    DefaultHomeGarrison,
			NeutralGarrison: DefaultNeutralGarrison,
			Production:      DefaultProduction,
			CaptureCost:     DefaultCaptureCost,
			Board:           grid.DefaultGenConfig(),
		},
		Experiment: Experiment{
			Name:      "depth",
			Games:     DefaultGames,
			OutputDir: "experiments",
		},
	}
}

func DefaultPlanner() Planner {
	return Planner{
		Depth:      DefaultDepth,
		Budget:     DefaultBudget,
		TieBand:    DefaultTieBand,
		Pruning:    true,
		TabuWindow: DefaultTabuWindow,
		Rules:      "standard",
		Evaluator:  "position",
		Moves:      game.DefaultMoveConfig(),
		Weights:    game.DefaultWeights(),
	}
}
