package player

import (
	"context"

	"golang.org/x/exp/rand"

	"spires/agent"
	"spires/experiments/metrics"
	"spires/game"
)

// Random issues a uniformly chosen candidate.
type Random struct {
	base
	seed uint64
	rng  *rand.Rand
}

var _ agent.Agent = (*Random)(nil)

func NewRandom(faction game.Faction, oracle game.DistanceOracle, moves game.MoveConfig, rules game.Rules, seed uint64) *Random {
	return &Random{
		base: newBase(faction, oracle, moves, rules),
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// NewMatch reseeds the source so every match replays the same choices.
func (r *Random) NewMatch() {
	r.rng.Seed(r.seed)
}

func (r *Random) FindMove(_ context.Context, live []game.LiveNode, turn int) (game.Command, metrics.MoveMetric, bool) {
	return r.choose(live, turn, func(moves []game.Action) int {
		return r.rng.Intn(len(moves))
	})
}
