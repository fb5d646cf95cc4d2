package player

import (
	"context"
	"math"

	"golang.org/x/exp/rand"

	"spires/agent"
	"spires/experiments/metrics"
	"spires/game"
)

// Sampler draws a candidate with probability proportional to exp(score / temperature).
// Low temperatures approach Greedy, high ones approach Random.
type Sampler struct {
	base
	temperature float64
	seed        uint64
	rng         *rand.Rand
}

var _ agent.Agent = (*Sampler)(nil)

func NewSampler(faction game.Faction, oracle game.DistanceOracle, moves game.MoveConfig, rules game.Rules, temperature float64, seed uint64) *Sampler {
	if temperature <= 0 {
		temperature = 1
	}
	return &Sampler{
		base:        newBase(faction, oracle, moves, rules),
		temperature: temperature,
		seed:        seed,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (s *Sampler) Temperature() float64 {
	return s.temperature
}

func (s *Sampler) NewMatch() {
	s.rng.Seed(s.seed)
}

func (s *Sampler) FindMove(_ context.Context, live []game.LiveNode, turn int) (game.Command, metrics.MoveMetric, bool) {
	return s.choose(live, turn, func(moves []game.Action) int {
		return sample(policy(moves, s.temperature), s.rng.Float64())
	})
}

// policy turns heuristic scores into selection probabilities. Moves are sorted best first,
// so the first score is the largest and keeps the exponents non-positive.
func policy(moves []game.Action, temperature float64) []float64 {
	probs := make([]float64, len(moves))
	sum := 0.0
	for i, a := range moves {
		probs[i] = math.Exp(float64(a.Score-moves[0].Score) / temperature)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// sample returns the index whose cumulative probability first exceeds draw.
func sample(probs []float64, draw float64) int {
	cumulative := 0.0
	for i, p := range probs {
		cumulative += p
		if draw < cumulative {
			return i
		}
	}
	return len(probs) - 1 // Rounding errors
}
