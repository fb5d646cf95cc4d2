package player

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"spires/game"
)

type spire struct {
	id       game.NodeID
	owner    game.Faction
	garrison int
	coord    game.Coord
}

func (s *spire) ID() game.NodeID                     { return s.id }
func (s *spire) Alive() bool                         { return s != nil }
func (s *spire) Owner() game.Faction                 { return s.owner }
func (s *spire) Reserve() int                        { return 0 }
func (s *spire) Garrison() int                       { return s.garrison }
func (s *spire) CaptureCost() int                    { return 10 }
func (s *spire) ClaimProgress() map[game.Faction]int { return nil }
func (s *spire) Coord() game.Coord                   { return s.coord }
func (s *spire) Production() int                     { return 0 }

type hexOracle map[game.NodeID]game.Coord

func (o hexOracle) Distance(a, b game.NodeID) int {
	return game.HexDistance(o[a], o[b])
}

func board() ([]game.LiveNode, hexOracle) {
	spires := []*spire{
		{id: "a", owner: game.AI, garrison: 12, coord: game.Coord{Q: 0, R: 0}},
		{id: "b", owner: game.AI, garrison: 3, coord: game.Coord{Q: 1, R: 0}},
		{id: "n", owner: game.Neutral, garrison: 2, coord: game.Coord{Q: 2, R: 0}},
		{id: "p", owner: game.Player, garrison: 6, coord: game.Coord{Q: 3, R: -1}},
	}
	live := make([]game.LiveNode, len(spires))
	oracle := hexOracle{}
	for i, s := range spires {
		live[i] = s
		oracle[s.id] = s.coord
	}
	return live, oracle
}

func TestGreedy(t *testing.T) {
	live, oracle := board()
	g := NewGreedy(game.AI, oracle, game.DefaultMoveConfig(), nil)

	cmd, metric, ok := g.FindMove(context.Background(), live, 1)
	require.True(t, ok, "AI has options")

	s := game.TakeSnapshot(live, oracle)
	best := game.GenerateMoves(s, game.AI, game.DefaultMoveConfig(), game.NewStandardRules())[0]
	require.Equal(t, s.CommandFor(best), cmd, "heuristic best")
	require.Equal(t, best.Score, metric.Score, "metric carries the heuristic score")
	require.Positive(t, metric.Candidates, "candidates counted")
}

func TestRandomIsSeeded(t *testing.T) {
	live, oracle := board()
	first := NewRandom(game.AI, oracle, game.DefaultMoveConfig(), nil, 3)
	second := NewRandom(game.AI, oracle, game.DefaultMoveConfig(), nil, 3)

	var replay []game.Command
	for turn := 1; turn <= 8; turn++ {
		a, _, ok := first.FindMove(context.Background(), live, turn)
		require.True(t, ok, "AI has options")
		b, _, _ := second.FindMove(context.Background(), live, turn)
		require.Equal(t, a, b, "same seed, same choice on turn %d", turn)
		replay = append(replay, a)
	}

	first.NewMatch()
	for turn := 1; turn <= 8; turn++ {
		a, _, _ := first.FindMove(context.Background(), live, turn)
		require.Equal(t, replay[turn-1], a, "new match replays turn %d", turn)
	}
}

func TestPass(t *testing.T) {
	live, oracle := board()
	_, _, ok := NewGreedy(game.Neutral, oracle, game.DefaultMoveConfig(), nil).FindMove(context.Background(), live, 1)
	require.False(t, ok, "neutral never acts")

	_, _, ok = NewRandom(game.AI, oracle, game.DefaultMoveConfig(), nil, 1).FindMove(context.Background(), live[2:3], 1)
	require.False(t, ok, "no owned spires")
}

func TestPolicy(t *testing.T) {
	moves := []game.Action{{Score: 10}, {Score: 10}, {Score: -1000}}
	probs := policy(moves, 1)
	require.InDelta(t, 0.5, probs[0], 1e-9, "equal scores share the mass")
	require.InDelta(t, 0.5, probs[1], 1e-9, "equal scores share the mass")
	require.InDelta(t, 0, probs[2], 1e-9, "hopeless move never drawn")

	require.Equal(t, 0, sample(probs, 0.2), "first bucket")
	require.Equal(t, 1, sample(probs, 0.7), "second bucket")
	require.Equal(t, 2, sample(probs, 1.0), "rounding falls through to the last")

	flat := policy(moves, 1e9)
	require.InDelta(t, 1.0/3, flat[2], 1e-3, "hot policy is nearly uniform")
}

func TestSamplerIsSeeded(t *testing.T) {
	live, oracle := board()
	first := NewSampler(game.AI, oracle, game.DefaultMoveConfig(), nil, 20, 5)
	second := NewSampler(game.AI, oracle, game.DefaultMoveConfig(), nil, 20, 5)
	for turn := 1; turn <= 5; turn++ {
		a, _, ok := first.FindMove(context.Background(), live, turn)
		require.True(t, ok, "AI has options")
		b, _, _ := second.FindMove(context.Background(), live, turn)
		require.Equal(t, a, b, "same seed, same draw on turn %d", turn)
	}
}
