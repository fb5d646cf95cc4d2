package engine

import (
	"context"

	"spires/experiments/metrics"
	"spires/game"
)

// Phase is the step of a turn the engine is in.
type Phase int

const (
	Planning Phase = iota
	Executing
	Producing
)

func (p Phase) String() string {
	switch p {
	case Planning:
		return "planning"
	case Executing:
		return "executing"
	default:
		return "producing"
	}
}

type Engine interface {
	// Run plays a match till there's a winner or the turn limit is reached
	Run(ctx context.Context) (winner game.Faction, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
