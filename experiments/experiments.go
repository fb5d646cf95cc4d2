package experiments

import (
	"context"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"spires/agent"
	"spires/config"
	"spires/engine"
	"spires/experiments/metrics"
	"spires/game"
	"spires/grid"
	"spires/player"
)

// Summary is the outcome of one experiment run.
type Summary struct {
	RunID string
	Dir   string      // directory holding the CSV records
	Wins  map[int]int // AgentConfig.ID -> games won
	Draws int
	Games int
	Nodes int // search nodes visited over every move

	Searches map[int]*SearchTotals // AgentConfig.ID -> accumulated search metrics
}

// SearchTotals accumulates the move metrics of one contestant.
type SearchTotals struct {
	Moves    int
	Nodes    int
	Depth    int // sum of completed depths
	TimedOut int
}

func (s *SearchTotals) add(m metrics.MoveMetric) {
	s.Moves++
	s.Nodes += m.Nodes
	s.Depth += m.Depth
	if m.TimedOut {
		s.TimedOut++
	}
}

// Run starts the experiment registered under name.
func Run(ctx context.Context, cfg *config.Config, name string) (Summary, error) {
	switch name {
	case "depth":
		return RunDepthExperiment(ctx, cfg)
	case "baselines":
		return RunBaselineExperiment(ctx, cfg)
	case "throughput":
		return RunThroughputExperiment(ctx, cfg)
	default:
		return Summary{}, fmt.Errorf("unknown experiment %q", name)
	}
}

// RunDepthExperiment pairs planners of increasing depth against the greedy baseline.
func RunDepthExperiment(ctx context.Context, cfg *config.Config) (Summary, error) {
	baseline := metrics.AgentConfig{ID: 0, Kind: "greedy"}
	configs := []metrics.AgentConfig{baseline}
	matchUps := [][]metrics.AgentConfig{}
	for depth := 1; depth <= max(cfg.Planner.Depth, 1); depth++ {
		c := plannerConfig(depth, cfg.Planner)
		configs = append(configs, c)
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, c})
	}
	return runExperiment(ctx, cfg, "depth", configs, matchUps)
}

// RunBaselineExperiment pairs the configured planner against every baseline player.
func RunBaselineExperiment(ctx context.Context, cfg *config.Config) (Summary, error) {
	planner := plannerConfig(cfg.Planner.Depth, cfg.Planner)
	configs := []metrics.AgentConfig{
		{ID: 0, Kind: "greedy"},
		{ID: 1, Kind: "random"},
		{ID: 2, Kind: "sampler"},
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, baseline := range configs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, planner})
	}
	return runExperiment(ctx, cfg, "baselines", append(configs, planner), matchUps)
}

func plannerConfig(depth int, p config.Planner) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:        100 + depth,
		Kind:      "planner",
		Depth:     depth,
		Budget:    p.Budget,
		TieBand:   p.TieBand,
		Rules:     p.Rules,
		Evaluator: p.Evaluator,
	}
}

func runExperiment(ctx context.Context, cfg *config.Config, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (Summary, error) {
	summary := Summary{RunID: uuid.NewString(), Wins: make(map[int]int), Searches: make(map[int]*SearchTotals)}
	for _, c := range configs {
		summary.Searches[c.ID] = &SearchTotals{}
	}
	startTime := time.Now()
	games := max(cfg.Experiment.Games, 1)

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Str("run", summary.RunID).Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1, config2 := matchup[0], matchup[1]
		label := fmt.Sprintf("%dv%d", config1.ID, config2.ID)
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		for i := 0; i < games; i++ {
			if err := ctx.Err(); err != nil {
				return summary, err
			}
			count++
			winner, gameMetric, moveMetrics, err := runGame(ctx, cfg, count, config1, config2)
			if err != nil {
				return summary, err
			}
			gameMetric.RunID = summary.RunID
			gameMetric.Matchup = label
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
				summary.Nodes += mm.Nodes
				id := config2.ID
				if mm.Faction == game.Player.String() {
					id = config1.ID
				}
				if totals, ok := summary.Searches[id]; ok {
					totals.add(mm)
				}
			}

			switch winner {
			case game.Player:
				summary.Wins[config1.ID]++
			case game.AI:
				summary.Wins[config2.ID]++
			default:
				summary.Draws++
			}
			summary.Games++
			log.Info().Msgf("completed matchup %d of %d game %d of %d after %d turns with winner: %s",
				mi+1, len(matchUps), i+1, games, gameMetric.Turns, winner)
		}
	}

	log.Info().Msgf("completed %s experiment: %d games, %s search nodes in %s", name, summary.Games,
		humanize.Comma(int64(summary.Nodes)), time.Since(startTime).Round(time.Millisecond))

	if err := store(cfg, name, startTime, &summary, configs, gameRecords, moveRecords); err != nil {
		return summary, err
	}
	return summary, nil
}

// store writes the CSV records and, when a database is configured, the SQLite records.
func store(cfg *config.Config, name string, startTime time.Time, summary *Summary, configs []metrics.AgentConfig,
	gameRecords []metrics.GameRecord, moveRecords []metrics.MoveRecord) error {
	writer, err := metrics.NewWriter(cfg.Experiment.OutputDir, name)
	if err != nil {
		return fmt.Errorf("failed to create experiment writer: %w", err)
	}
	summary.Dir = writer.Dir()
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")

	if cfg.Experiment.Database == "" {
		return nil
	}
	db, err := metrics.OpenStore(cfg.Experiment.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.SaveRun(summary.RunID, name, startTime, configs); err != nil {
		return fmt.Errorf("failed to store run: %w", err)
	}
	if err := db.SaveGames(summary.RunID, gameRecords, moveRecords); err != nil {
		return fmt.Errorf("failed to store games: %w", err)
	}
	log.Info().Str("db", cfg.Experiment.Database).Msgf("stored %s move records", humanize.Comma(int64(len(moveRecords))))
	return nil
}

// runGame plays one game on a freshly generated board. config1 plays Player and config2 AI;
// the starting side alternates with the game number.
func runGame(ctx context.Context, cfg *config.Config, number int, config1, config2 metrics.AgentConfig) (game.Faction, metrics.GameMetric, []metrics.MoveMetric, error) {
	board := cfg.Engine.Board
	board.Seed += int64(number)
	world := engine.NewWorld(grid.Generate(board), cfg.Engine)

	seed := cfg.Planner.Seed + uint64(number)
	agent1, err := createAgent(game.Player, world.Oracle, cfg.Planner, config1, seed)
	if err != nil {
		return game.Neutral, metrics.GameMetric{}, nil, err
	}
	agent2, err := createAgent(game.AI, world.Oracle, cfg.Planner, config2, seed+1)
	if err != nil {
		return game.Neutral, metrics.GameMetric{}, nil, err
	}
	agents := []agent.Agent{agent1, agent2}
	if number%2 == 0 {
		agents[0], agents[1] = agents[1], agents[0]
	}

	rules, err := game.RulesByName(cfg.Planner.Rules)
	if err != nil {
		return game.Neutral, metrics.GameMetric{}, nil, err
	}
	e := engine.NewLocalEngine(world, agents, rules, cfg.Engine)
	winner, gameMetric, moveMetrics := e.Run(ctx)
	return winner, gameMetric, moveMetrics, nil
}

func createAgent(faction game.Faction, oracle game.DistanceOracle, base config.Planner, c metrics.AgentConfig, seed uint64) (agent.Agent, error) {
	rules, err := game.RulesByName(base.Rules)
	if err != nil {
		return nil, err
	}
	switch c.Kind {
	case "greedy":
		return player.NewGreedy(faction, oracle, base.Moves, rules), nil
	case "random":
		return player.NewRandom(faction, oracle, base.Moves, rules, seed), nil
	case "sampler":
		return player.NewSampler(faction, oracle, base.Moves, rules, config.DefaultSamplerTemperature, seed), nil
	case "planner":
		p := base
		p.Depth = c.Depth
		p.Budget = c.Budget
		p.TieBand = c.TieBand
		p.Seed = seed
		if c.Rules != "" {
			p.Rules = c.Rules
		}
		if c.Evaluator != "" {
			p.Evaluator = c.Evaluator
		}
		return agent.NewPlanner(faction, oracle, p)
	default:
		return nil, fmt.Errorf("unknown agent kind %q", c.Kind)
	}
}
