package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/rs/zerolog/log"

	"spires/agent"
	"spires/config"
	"spires/engine"
	"spires/experiments"
	"spires/game"
	"spires/grid"
	"spires/logger"
	"spires/player"
)

func main() {
	configPath := flag.String("config", "", "YAML config file, defaults when empty")
	experiment := flag.String("experiment", "", "experiment to run: depth, baselines or throughput")
	logLevel := flag.String("log-level", "", "log level, overrides LOG_LEVEL")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Init(*logLevel)
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *logLevel == "" {
		*logLevel = cfg.LogLevel
	}
	logger.Init(*logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *experiment != "" {
		summary, err := experiments.Run(ctx, cfg, *experiment)
		if err != nil {
			log.Fatal().Err(err).Msgf("%s experiment failed", *experiment)
		}
		log.Info().Str("run", summary.RunID).Interface("wins", summary.Wins).Int("draws", summary.Draws).Msg("experiment finished")
		return
	}

	playMatch(ctx, cfg)
}

// playMatch plays one planner against the greedy baseline on a generated board.
func playMatch(ctx context.Context, cfg *config.Config) {
	world := engine.NewWorld(grid.Generate(cfg.Engine.Board), cfg.Engine)
	rules, err := game.RulesByName(cfg.Planner.Rules)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid rules")
	}

	planner, err := agent.NewPlanner(game.AI, world.Oracle, cfg.Planner)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create planner")
	}
	greedy := player.NewGreedy(game.Player, world.Oracle, cfg.Planner.Moves, rules)

	log.Info().Int("spires", len(world.Layout.Spires)).Int("radius", cfg.Engine.Board.Radius).Msg("board generated")
	e := engine.NewLocalEngine(world, []agent.Agent{greedy, planner}, rules, cfg.Engine)
	winner, gameMetric, _ := e.Run(ctx)
	log.Info().
		Str("winner", winner.String()).
		Int("turns", gameMetric.Turns).
		Int("moves", gameMetric.TotalMoves).
		Dur("duration", gameMetric.Duration).
		Msg("match over")
}
