package agent

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"spires/config"
	"spires/experiments/metrics"
	"spires/game"
	"spires/searcher"
)

// Planner is the planning controller of one faction: snapshot, search, tabu guard and command
// hand-off. Plans are serialised; Busy reports one in flight.
type Planner struct {
	faction   game.Faction
	cfg       config.Planner
	search    *searcher.Negamax
	tabu      *Tabu
	distances *game.DistanceCache

	mu   sync.Mutex
	busy atomic.Bool
}

// NewPlanner builds a planner for faction that measures distances through oracle.
func NewPlanner(faction game.Faction, oracle game.DistanceOracle, cfg config.Planner) (*Planner, error) {
	if faction == game.Neutral {
		return nil, fmt.Errorf("planner needs a contesting faction, got %s", faction)
	}
	rules, err := game.RulesByName(cfg.Rules)
	if err != nil {
		return nil, err
	}
	evaluate, err := EvaluatorByName(cfg.Evaluator)
	if err != nil {
		return nil, err
	}

	options := []searcher.Option{
		searcher.WithDepth(cfg.Depth),
		searcher.WithDuration(cfg.Budget),
		searcher.WithMoveConfig(cfg.Moves),
		searcher.WithWeights(cfg.Weights),
		searcher.WithRules(rules),
		searcher.WithEvaluationFn(evaluate),
		searcher.WithPruning(cfg.Pruning),
		searcher.WithMetrics(),
	}
	if cfg.TieBand > 0 {
		options = append(options, searcher.WithTieBand(cfg.TieBand, cfg.Seed))
	}

	return &Planner{
		faction:   faction,
		cfg:       cfg,
		search:    searcher.NewNegamax(options...),
		tabu:      NewTabu(cfg.TabuWindow),
		distances: game.NewDistanceCache(oracle),
	}, nil
}

// EvaluatorByName resolves an evaluator name; empty selects the positional evaluator.
func EvaluatorByName(name string) (game.Evaluate, error) {
	switch name {
	case "", "position":
		return game.EvaluatePosition, nil
	case "resources":
		return game.EvaluateResources, nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q", name)
	}
}

func (p *Planner) Faction() game.Faction {
	return p.faction
}

// Busy reports whether a plan is being computed.
func (p *Planner) Busy() bool {
	return p.busy.Load()
}

// NewMatch forgets the tabu history. Cached distances survive; the map is unchanged.
func (p *Planner) NewMatch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tabu.Reset()
}

// InvalidateDistances drops every cached distance. Call it when the map changes.
func (p *Planner) InvalidateDistances() {
	p.distances.Invalidate()
}

// Plan returns the command to issue on turn, or false when the faction should pass.
func (p *Planner) Plan(ctx context.Context, live []game.LiveNode, turn int) (game.Command, bool) {
	cmd, _, ok := p.FindMove(ctx, live, turn)
	return cmd, ok
}

func (p *Planner) FindMove(ctx context.Context, live []game.LiveNode, turn int) (game.Command, metrics.MoveMetric, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.busy.Store(true)
	defer p.busy.Store(false)

	s := game.TakeSnapshot(live, p.distances)
	result, ok := p.search.FindBestMove(ctx, s, p.faction, p.tabu.RootFilter(turn))
	metric := metrics.MoveMetric{
		Turn:         turn,
		Faction:      p.faction.String(),
		Score:        result.Score,
		SearchMetric: result.Metric,
	}
	if !ok {
		log.Debug().Int("turn", turn).Str("faction", p.faction.String()).Msg("no action, passing")
		return game.Command{}, metric, false
	}

	cmd := s.CommandFor(result.Action)
	p.tabu.Record(cmd.Source, cmd.Dest, turn)
	metric.Action = FormatCommand(cmd)

	log.Debug().
		Int("turn", turn).
		Str("faction", p.faction.String()).
		Str("source", string(cmd.Source)).
		Str("dest", string(cmd.Dest)).
		Int("send", cmd.Send).
		Str("kind", result.Action.Kind.String()).
		Int("score", result.Score).
		Int("depth", result.Depth).
		Int("nodes", result.Nodes).
		Msg("planned")
	return cmd, metric, true
}

// Issue plans turn and hands the command to exec. It returns false when the faction passed.
func (p *Planner) Issue(ctx context.Context, live []game.LiveNode, turn int, exec Executor) (bool, error) {
	cmd, ok := p.Plan(ctx, live, turn)
	if !ok {
		return false, nil
	}
	if err := exec.Execute(ctx, cmd); err != nil {
		return true, fmt.Errorf("failed to execute %s: %w", FormatCommand(cmd), err)
	}
	return true, nil
}

// FormatCommand renders a command as "source->dest xsend".
func FormatCommand(cmd game.Command) string {
	return fmt.Sprintf("%s->%s x%d", cmd.Source, cmd.Dest, cmd.Send)
}
