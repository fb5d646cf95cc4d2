package agent

import (
	"context"

	"spires/experiments/metrics"
	"spires/game"
)

// Agent picks one command per planning phase for its faction.
type Agent interface {
	Faction() game.Faction
	// FindMove returns the command to issue, or false to pass this turn
	FindMove(ctx context.Context, live []game.LiveNode, turn int) (game.Command, metrics.MoveMetric, bool)
	// NewMatch drops everything remembered from a previous match
	NewMatch()
}

// Executor carries out a command in the live world. It owns real unit deduction, pathing and
// combat resolution; planning never waits on it.
type Executor interface {
	Execute(ctx context.Context, cmd game.Command) error
}

type ExecutorFunc func(ctx context.Context, cmd game.Command) error

func (f ExecutorFunc) Execute(ctx context.Context, cmd game.Command) error {
	return f(ctx, cmd)
}
