package experiments

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"

	"spires/config"
	"spires/experiments/metrics"
)

// ThroughputBudgets are the per-move time budgets compared by the throughput experiment.
var ThroughputBudgets = []time.Duration{
	5 * time.Millisecond,
	20 * time.Millisecond,
	80 * time.Millisecond,
}

// RunThroughputExperiment measures how deep and how many nodes a planner searches per move
// under each budget. Both seats use the same config for the same playing strength and
// similar game length.
func RunThroughputExperiment(ctx context.Context, cfg *config.Config) (Summary, error) {
	configs := []metrics.AgentConfig{}
	matchUps := [][]metrics.AgentConfig{}
	for i, budget := range ThroughputBudgets {
		c := metrics.AgentConfig{
			ID:        i + 1,
			Kind:      "planner",
			Depth:     max(cfg.Planner.Depth, 8),
			Budget:    budget,
			TieBand:   cfg.Planner.TieBand,
			Rules:     cfg.Planner.Rules,
			Evaluator: cfg.Planner.Evaluator,
		}
		configs = append(configs, c)
		matchUps = append(matchUps, []metrics.AgentConfig{c, c})
	}

	summary, err := runExperiment(ctx, cfg, "throughput", configs, matchUps)
	if err != nil {
		return summary, err
	}
	for _, c := range configs {
		totals := summary.Searches[c.ID]
		if totals == nil || totals.Moves == 0 {
			continue
		}
		log.Info().Msgf("budget %s: %s nodes per move, mean depth %.1f, %d of %d moves cut short",
			c.Budget, humanize.Comma(int64(totals.Nodes/totals.Moves)),
			float64(totals.Depth)/float64(totals.Moves), totals.TimedOut, totals.Moves)
	}
	return summary, nil
}
