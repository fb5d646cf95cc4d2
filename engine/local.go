package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"spires/agent"
	"spires/config"
	"spires/experiments/metrics"
	"spires/game"
)

// LocalEngine plays a match between two agents in-process. Each turn every agent plans
// once and its command is executed before the next agent plans; owned spires produce at
// the end of the turn.
type LocalEngine struct {
	World    *World
	agents   []agent.Agent
	executor *Executor
	maxTurns int
	phase    Phase
	turn     int
}

var _ Engine = (*LocalEngine)(nil)

// NewLocalEngine seats agents in the given order; the first one starts. It panics unless
// exactly one agent plays each contesting faction.
func NewLocalEngine(world *World, agents []agent.Agent, rules game.Rules, cfg config.Engine) *LocalEngine {
	if len(agents) != 2 {
		panic("need exactly two agents")
	}
	if agents[0].Faction() == agents[1].Faction() {
		panic("agents must play different factions")
	}
	for _, a := range agents {
		if a.Faction() == game.Neutral {
			panic("an agent cannot play neutral")
		}
	}
	return &LocalEngine{
		World:    world,
		agents:   agents,
		executor: NewExecutor(world, rules, cfg.TravelLoss),
		maxTurns: cfg.MaxTurns,
	}
}

func (e *LocalEngine) Phase() Phase {
	return e.phase
}

func (e *LocalEngine) Turn() int {
	return e.turn
}

func (e *LocalEngine) Run(ctx context.Context) (game.Faction, metrics.GameMetric, []metrics.MoveMetric) {
	gameMetric := metrics.GameMetric{
		StartingFaction: e.agents[0].Faction().String(),
		StartTime:       time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	for _, a := range e.agents {
		a.NewMatch()
	}

	log.Debug().Msgf("%s is starting", e.agents[0].Faction())

	winner := game.Neutral
	for e.turn = 1; e.turn <= e.maxTurns && ctx.Err() == nil; e.turn++ {
		for _, a := range e.agents {
			e.phase = Planning
			cmd, metric, ok := a.FindMove(ctx, e.World.Live(), e.turn)
			moveMetrics = append(moveMetrics, metric)
			if !ok {
				continue
			}
			gameMetric.TotalMoves++

			e.phase = Executing
			if err := e.execute(ctx, a.Faction(), cmd); err != nil {
				log.Warn().Err(err).Int("turn", e.turn).Str("faction", a.Faction().String()).Msg("command rejected")
			}
			if winner = e.World.Winner(); winner != game.Neutral {
				break
			}
		}
		if winner != game.Neutral {
			break
		}
		e.phase = Producing
		e.World.Produce()
	}
	gameMetric.Turns = min(e.turn, e.maxTurns)

	if winner == game.Neutral {
		winner = e.World.Leader()
		log.Debug().Msgf("stopped after %d turns, leader: %s", gameMetric.Turns, winner)
	} else {
		log.Debug().Msgf("game ended on turn %d, winner: %s", gameMetric.Turns, winner)
	}

	gameMetric.Winner = winner.String()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	return winner, gameMetric, moveMetrics
}

// execute hands cmd to the executor after checking the faction still owns the source.
func (e *LocalEngine) execute(ctx context.Context, faction game.Faction, cmd game.Command) error {
	source := e.World.Spire(cmd.Source)
	if source == nil {
		return ErrUnknownSpire
	}
	if source.Owner() != faction {
		return fmt.Errorf("%w: %s", ErrNotOwner, cmd.Source)
	}
	return e.executor.Execute(ctx, cmd)
}
