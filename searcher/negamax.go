package searcher

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"spires/experiments/metrics"
	"spires/game"
)

// Infinity bounds every score the search can produce.
const Infinity = 1 << 30

// DefaultDepth is the iterative deepening limit when none is configured.
const DefaultDepth = 3

// checkInterval is how many visited nodes pass between deadline checks.
const checkInterval = 64

type Option func(n *Negamax)

// RootFilter narrows the root candidates before they are searched. It never sees inner nodes.
type RootFilter func(s *game.Snapshot, moves []game.Action) []game.Action

// Result is the outcome of one search.
type Result struct {
	Action  game.Action
	Score   int
	Depth   int // deepest fully completed iteration, 0 when none completed
	Nodes   int
	Cutoffs int
	Metric  metrics.SearchMetric
}

// Negamax searches alternating plies of both factions with alpha-beta pruning under a depth
// and time budget. A Negamax is not safe for concurrent use.
type Negamax struct {
	depth    int
	duration time.Duration
	moves    game.MoveConfig
	weights  game.Weights
	rules    game.Rules
	evaluate game.Evaluate
	tieBand  int
	rng      *rand.Rand
	pruning  bool
	ordering bool
	metrics  metrics.Collector
}

// WithDepth sets the deepest iteration. Zero or less makes the search evaluate only.
func WithDepth(depth int) Option {
	return func(n *Negamax) {
		n.depth = depth
	}
}

// WithDuration sets the wall-clock budget of each search. Zero means no budget.
func WithDuration(duration time.Duration) Option {
	return func(n *Negamax) {
		if duration > 0 {
			n.duration = duration
		}
	}
}

func WithMoveConfig(cfg game.MoveConfig) Option {
	return func(n *Negamax) {
		n.moves = cfg
	}
}

func WithWeights(w game.Weights) Option {
	return func(n *Negamax) {
		n.weights = w
	}
}

func WithRules(rules game.Rules) Option {
	return func(n *Negamax) {
		if rules != nil {
			n.rules = rules
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(n *Negamax) {
		if evaluate != nil {
			n.evaluate = evaluate
		}
	}
}

// WithTieBand picks uniformly, from a source seeded with seed, among root moves scoring within
// band of the best one.
func WithTieBand(band int, seed uint64) Option {
	return func(n *Negamax) {
		if band > 0 {
			n.tieBand = band
			n.rng = rand.New(rand.NewSource(seed))
		}
	}
}

// WithPruning switches alpha-beta cutoffs. Without them the search is plain minimax.
func WithPruning(enabled bool) Option {
	return func(n *Negamax) {
		n.pruning = enabled
	}
}

// WithOrdering switches searching the previous iteration's best root move first.
func WithOrdering(enabled bool) Option {
	return func(n *Negamax) {
		n.ordering = enabled
	}
}

func WithMetrics() Option {
	return func(n *Negamax) {
		n.metrics = metrics.NewCollector()
	}
}

func NewNegamax(options ...Option) *Negamax {
	n := &Negamax{ // Default values
		depth:    DefaultDepth,
		moves:    game.DefaultMoveConfig(),
		weights:  game.DefaultWeights(),
		rules:    game.NewStandardRules(),
		evaluate: game.EvaluatePosition,
		pruning:  true,
		ordering: true,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(n)
	}
	// The evaluator judges threats with the same capture model and send cap as the search
	if n.weights.Rules == nil {
		n.weights.Rules = n.rules
	}
	if n.weights.SendCap == 0 {
		n.weights.SendCap = n.moves.MaxSendPerSource
	}
	return n
}

func (n *Negamax) Depth() int {
	return n.depth
}

// FindBestMove searches the best action for side. It returns false when side has no candidate
// action or the depth is not positive; the result then only carries the static evaluation.
// A depth interrupted by the deadline is discarded. When not even the first depth completes,
// the heuristically best candidate is returned.
func (n *Negamax) FindBestMove(ctx context.Context, s *game.Snapshot, side game.Faction, filter RootFilter) (Result, bool) {
	opponent := side.Opponent()
	moves := n.rootMoves(s, side, filter)

	n.metrics.Start(n.depth, len(moves))
	if len(moves) == 0 || n.depth <= 0 || side == game.Neutral {
		return Result{
			Score:  n.evaluate(s, side, opponent, n.weights),
			Metric: n.metrics.Complete(),
		}, false
	}

	if n.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, n.duration)
		defer cancel()
	}

	sr := &search{Negamax: n, ctx: ctx}
	best := Result{Action: moves[0]}
	order := make([]int, len(moves))
	for i := range order {
		order[i] = i
	}
	var scores []int
	for depth := 1; depth <= n.depth; depth++ {
		depthScores, idx, ok := sr.root(s, side, moves, order, depth)
		if !ok {
			n.metrics.Interrupt()
			log.Debug().Int("depth", depth).Int("nodes", sr.nodes).Msg("search interrupted")
			break
		}
		scores = depthScores
		best.Action, best.Score, best.Depth = moves[idx], scores[idx], depth
		n.metrics.CompleteDepth(depth)
		log.Debug().
			Int("depth", depth).
			Int("score", best.Score).
			Int("nodes", sr.nodes).
			Int("cutoffs", sr.cutoffs).
			Stringer("action", best.Action).
			Msg("depth complete")
		if n.ordering {
			order = promote(order, idx)
		}
	}

	if best.Depth == 0 {
		best.Score = n.evaluate(game.Simulate(s, best.Action, side, n.rules), side, opponent, n.weights)
	} else if n.tieBand > 0 {
		// One draw per search, over the deepest completed iteration
		var band []int
		for i, score := range scores {
			if score >= best.Score-n.tieBand {
				band = append(band, i)
			}
		}
		pick := band[n.rng.Intn(len(band))]
		best.Action, best.Score = moves[pick], scores[pick]
	}
	best.Nodes, best.Cutoffs = sr.nodes, sr.cutoffs
	best.Metric = n.metrics.Complete()
	return best, true
}

// rootMoves generates the root candidates of side. The global cap is applied after filter so a
// filter never exhausts a list the cap has already cut short.
func (n *Negamax) rootMoves(s *game.Snapshot, side game.Faction, filter RootFilter) []game.Action {
	if filter == nil {
		return game.GenerateMoves(s, side, n.moves, n.rules)
	}
	uncapped := n.moves
	uncapped.GlobalMoveCap = 0
	moves := game.GenerateMoves(s, side, uncapped, n.rules)
	if len(moves) > 0 {
		moves = filter(s, moves)
	}
	if n.moves.GlobalMoveCap > 0 && len(moves) > n.moves.GlobalMoveCap {
		moves = moves[:n.moves.GlobalMoveCap]
	}
	return moves
}

// promote moves best to the front of order and keeps the rest in heuristic order.
func promote(order []int, best int) []int {
	next := make([]int, 0, len(order))
	next = append(next, best)
	for i := range order {
		if i != best {
			next = append(next, i)
		}
	}
	return next
}

// search holds the state of one FindBestMove call.
type search struct {
	*Negamax
	ctx     context.Context
	nodes   int
	cutoffs int
	stopped bool
}

// expired reports whether the budget ran out. The context is polled every checkInterval nodes.
func (sr *search) expired() bool {
	if sr.stopped {
		return true
	}
	if sr.nodes%checkInterval == 0 && sr.ctx.Err() != nil {
		sr.stopped = true
	}
	return sr.stopped
}

// root searches the root candidates at depth in the given order. It returns the score of every
// candidate and the index of the best one; equal scores go to the lower heuristic index.
// Scores of candidates that cannot reach the tie band are upper bounds.
func (sr *search) root(s *game.Snapshot, side game.Faction, moves []game.Action, order []int, depth int) ([]int, int, bool) {
	if sr.ctx.Err() != nil {
		sr.stopped = true
		return nil, 0, false
	}
	opponent := side.Opponent()
	scores := make([]int, len(moves))
	bestScore, bestIdx := -Infinity, -1
	for _, i := range order {
		lower := -Infinity
		if sr.pruning && bestIdx >= 0 {
			lower = max(bestScore-sr.tieBand-1, -Infinity)
		}
		child := game.Simulate(s, moves[i], side, sr.rules)
		v, ok := sr.negamax(child, depth-1, -Infinity, -lower, opponent)
		if !ok {
			return nil, 0, false
		}
		scores[i] = -v
		if scores[i] > bestScore || (scores[i] == bestScore && i < bestIdx) {
			bestScore, bestIdx = scores[i], i
		}
	}
	return scores, bestIdx, true
}

// negamax returns the value of s for side to move, or false when the budget ran out.
func (sr *search) negamax(s *game.Snapshot, depth, alpha, beta int, side game.Faction) (int, bool) {
	sr.nodes++
	sr.metrics.AddNode()
	if sr.expired() {
		return 0, false
	}

	opponent := side.Opponent()
	if depth <= 0 {
		return sr.evaluate(s, side, opponent, sr.weights), true
	}
	moves := game.GenerateMoves(s, side, sr.moves, sr.rules)
	if len(moves) == 0 {
		return sr.evaluate(s, side, opponent, sr.weights), true
	}

	best := -Infinity
	for _, a := range moves {
		child := game.Simulate(s, a, side, sr.rules)
		v, ok := sr.negamax(child, depth-1, -beta, -alpha, opponent)
		if !ok {
			return 0, false
		}
		best = max(best, -v)
		if !sr.pruning {
			continue
		}
		alpha = max(alpha, best)
		if alpha >= beta {
			sr.cutoffs++
			sr.metrics.AddCutoff()
			break
		}
	}
	return best, true
}
