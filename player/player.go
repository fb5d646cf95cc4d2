// Package player holds baseline opponents that pick actions without searching.
package player

import (
	"context"
	"time"

	"spires/agent"
	"spires/experiments/metrics"
	"spires/game"
)

// base snapshots the live world and lists candidate actions the way the planner does.
type base struct {
	faction   game.Faction
	moves     game.MoveConfig
	rules     game.Rules
	distances *game.DistanceCache
}

func newBase(faction game.Faction, oracle game.DistanceOracle, moves game.MoveConfig, rules game.Rules) base {
	if rules == nil {
		rules = game.NewStandardRules()
	}
	return base{
		faction:   faction,
		moves:     moves,
		rules:     rules,
		distances: game.NewDistanceCache(oracle),
	}
}

func (b *base) Faction() game.Faction {
	return b.faction
}

func (b *base) NewMatch() {}

// choose snapshots live, lets pick select one candidate and fills in the move metric.
func (b *base) choose(live []game.LiveNode, turn int, pick func([]game.Action) int) (game.Command, metrics.MoveMetric, bool) {
	start := time.Now()
	s := game.TakeSnapshot(live, b.distances)
	moves := game.GenerateMoves(s, b.faction, b.moves, b.rules)
	metric := metrics.MoveMetric{
		Turn:         turn,
		Faction:      b.faction.String(),
		SearchMetric: metrics.SearchMetric{Candidates: len(moves)},
	}
	if len(moves) == 0 {
		metric.Duration = time.Since(start)
		return game.Command{}, metric, false
	}
	a := moves[pick(moves)]
	cmd := s.CommandFor(a)
	metric.Action = agent.FormatCommand(cmd)
	metric.Score = a.Score
	metric.Duration = time.Since(start)
	return cmd, metric, true
}

// Greedy always issues the candidate with the best ordering heuristic.
type Greedy struct {
	base
}

var _ agent.Agent = (*Greedy)(nil)

func NewGreedy(faction game.Faction, oracle game.DistanceOracle, moves game.MoveConfig, rules game.Rules) *Greedy {
	return &Greedy{base: newBase(faction, oracle, moves, rules)}
}

func (g *Greedy) FindMove(_ context.Context, live []game.LiveNode, turn int) (game.Command, metrics.MoveMetric, bool) {
	return g.choose(live, turn, func([]game.Action) int { return 0 })
}
