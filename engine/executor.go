package engine

import (
	"context"
	"errors"
	"fmt"

	"spires/agent"
	"spires/game"
)

var (
	ErrUnknownSpire = errors.New("unknown spire")
	ErrNotOwner     = errors.New("source not owned by the mover")
	ErrNoUnits      = errors.New("nothing to send")
	ErrUnreachable  = errors.New("destination unreachable")
)

// Executor resolves commands against a world. Travel costs TravelLoss units per step,
// which may differ from the flat one-per-step model the planner predicts with.
type Executor struct {
	world      *World
	rules      game.Rules
	travelLoss int
}

var _ agent.Executor = (*Executor)(nil)

func NewExecutor(w *World, rules game.Rules, travelLoss int) *Executor {
	if rules == nil {
		rules = game.NewStandardRules()
	}
	return &Executor{
		world:      w,
		rules:      rules,
		travelLoss: max(travelLoss, 0),
	}
}

// Execute moves units for the owner of the source spire. Units that do not survive the trip
// are lost; that is not an error.
func (e *Executor) Execute(ctx context.Context, cmd game.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	source, dest := e.world.Spire(cmd.Source), e.world.Spire(cmd.Dest)
	if source == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSpire, cmd.Source)
	}
	if dest == nil {
		return fmt.Errorf("%w: %s", ErrUnknownSpire, cmd.Dest)
	}
	mover := source.owner
	if mover == game.Neutral {
		return fmt.Errorf("%w: %s is neutral", ErrNotOwner, cmd.Source)
	}
	send := min(cmd.Send, source.Strength())
	if send <= 0 || source == dest {
		return fmt.Errorf("%w: %s sends %d", ErrNoUnits, cmd.Source, cmd.Send)
	}
	distance := e.world.Oracle.Distance(cmd.Source, cmd.Dest)
	if distance < 0 {
		return fmt.Errorf("%w: %s to %s", ErrUnreachable, cmd.Source, cmd.Dest)
	}

	from := source.node()
	from.Consume(send)
	source.apply(from)

	arriving := send - e.travelLoss*distance
	if arriving <= 0 {
		return nil
	}
	to := dest.node()
	if to.Owner == mover {
		to.Garrison += arriving
	} else {
		e.rules.Resolve(&to, mover, arriving)
	}
	dest.apply(to)
	return nil
}
