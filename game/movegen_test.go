package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateMoves(t *testing.T) {
	t.Run("no move when arriving strength would be zero", func(t *testing.T) {
		s := newSnapshot(
			&spire{id: "src", owner: AI, garrison: 10, coord: at(0, 0)},
			&spire{id: "far", owner: Neutral, garrison: 0, coord: at(10, 0)},
			&spire{id: "near", owner: Neutral, garrison: 0, coord: at(0, 9)},
		)
		cfg := DefaultMoveConfig()
		cfg.MaxSendPerSource = 10

		moves := GenerateMoves(s, AI, cfg, NewStandardRules())

		require.Len(t, moves, 1, "Only the spire within reach should be a candidate")
		require.Equal(t, 2, moves[0].Dest, "Distance 9 should leave one arriving unit")
		require.Equal(t, 1, moves[0].Arriving)
		require.Equal(t, 9, moves[0].Distance)
	})

	t.Run("arriving strength decreases with distance", func(t *testing.T) {
		spires := []*spire{{id: "src", owner: AI, garrison: 10, coord: at(0, 0)}}
		for d := 1; d <= 12; d++ {
			spires = append(spires, &spire{id: NodeID(fmt.Sprintf("n%d", d)), coord: at(d, 0), garrison: 50})
		}
		s := newSnapshot(spires...)
		cfg := MoveConfig{AllowTargetingOpponent: true}

		moves := GenerateMoves(s, AI, cfg, NewStandardRules())

		require.Len(t, moves, 9, "Distances 1 to 9 should be reachable with 10 units")
		for _, m := range moves {
			require.Equal(t, 10-m.Distance, m.Arriving, "Each step should cost one unit")
			require.Positive(t, m.Arriving, "No candidate may arrive empty")
		}
	})

	t.Run("respecting the per-source and global caps", func(t *testing.T) {
		var spires []*spire
		for i := 0; i < 15; i++ {
			owner := Neutral
			if i < 5 {
				owner = AI
			}
			spires = append(spires, &spire{id: NodeID(fmt.Sprintf("n%d", i)), owner: owner, garrison: 50, coord: at(i, 0)})
		}
		s := newSnapshot(spires...)

		unbounded := MoveConfig{AllowReinforcement: true, AllowTargetingOpponent: true}
		require.Len(t, GenerateMoves(s, AI, unbounded, nil), 5*14, "Every pair should be a candidate without caps")

		perSource := unbounded
		perSource.PerSourceTopK = 2
		require.Len(t, GenerateMoves(s, AI, perSource, nil), 10, "Each source should keep its top 2")

		capped := perSource
		capped.GlobalMoveCap = 6
		moves := GenerateMoves(s, AI, capped, nil)
		require.Len(t, moves, 6, "Global cap should bound the branching factor")
		for i := 1; i < len(moves); i++ {
			require.GreaterOrEqual(t, moves[i-1].Score, moves[i].Score, "Candidates should be ordered best first")
		}
	})

	t.Run("honouring reinforcement and targeting switches", func(t *testing.T) {
		s := newSnapshot(
			&spire{id: "a", owner: AI, garrison: 20, coord: at(0, 0)},
			&spire{id: "b", owner: AI, garrison: 4, coord: at(2, 0)},
			&spire{id: "p", owner: Player, garrison: 1, coord: at(-2, 0)},
			&spire{id: "n", owner: Neutral, garrison: 1, coord: at(0, 2)},
		)
		cfg := MoveConfig{}

		for _, m := range GenerateMoves(s, AI, cfg, nil) {
			require.Equal(t, ContestAction, m.Kind, "Reinforcement should be disabled")
			require.Equal(t, 3, m.Dest, "Only the neutral spire may be targeted")
		}

		cfg.AllowReinforcement = true
		cfg.AllowTargetingOpponent = true
		kinds := map[ActionKind]int{}
		for _, m := range GenerateMoves(s, AI, cfg, nil) {
			kinds[m.Kind]++
		}
		require.Equal(t, 2, kinds[ReinforceAction], "a and b should reinforce each other")
		require.Equal(t, 3, kinds[ContestAction], "a reaches p and n, b reaches n only")
	})

	t.Run("flagging and preferring finishers", func(t *testing.T) {
		s := newSnapshot(
			&spire{id: "src", owner: AI, garrison: 10, coord: at(0, 0)},
			&spire{id: "weak", garrison: 5, coord: at(3, 0)},
			&spire{id: "strong", garrison: 8, coord: at(0, 3)},
		)

		moves := GenerateMoves(s, AI, DefaultMoveConfig(), NewStandardRules())

		require.Len(t, moves, 2)
		require.Equal(t, 1, moves[0].Dest, "The capturable spire should come first")
		require.True(t, moves[0].Finisher, "7 arriving against 5 should capture")
		require.False(t, moves[1].Finisher, "7 arriving against 8 should not capture")
	})

	t.Run("rewarding moves that deny an opponent capture", func(t *testing.T) {
		s := newSnapshot(
			&spire{id: "ai", owner: AI, garrison: 20, coord: at(0, 0)},
			&spire{id: "player", owner: Player, garrison: 10, coord: at(6, 0)},
			&spire{id: "contested", garrison: 2, coord: at(3, 0)},
			&spire{id: "safe", garrison: 2, coord: at(-3, 0)},
		)
		cfg := DefaultMoveConfig()

		moves := GenerateMoves(s, AI, cfg, NewStandardRules())

		byDest := map[int]Action{}
		for _, m := range moves {
			byDest[m.Dest] = m
		}
		require.Equal(t, 2, moves[0].Dest, "Taking the contested spire should rank first")
		require.Equal(t, cfg.Heuristics.BlockerBonus, byDest[2].Score-byDest[3].Score,
			"The only difference between the neutral targets should be the blocker bonus")
	})

	t.Run("no moves for a faction without spires", func(t *testing.T) {
		s := newSnapshot(&spire{id: "a", owner: Player, garrison: 10, coord: at(0, 0)})

		require.Empty(t, GenerateMoves(s, AI, DefaultMoveConfig(), nil))
		require.Empty(t, GenerateMoves(s, Neutral, DefaultMoveConfig(), nil), "Neutral never acts")
	})

	t.Run("claim rules measure the remaining claim", func(t *testing.T) {
		s := newSnapshot(
			&spire{id: "src", owner: AI, garrison: 10, coord: at(0, 0)},
			&spire{id: "dst", owner: Player, garrison: 30, cost: 9, claim: map[Faction]int{AI: 3}, coord: at(2, 0)},
		)

		moves := GenerateMoves(s, AI, DefaultMoveConfig(), NewClaimRules())

		require.Len(t, moves, 1)
		require.True(t, moves[0].Finisher, "8 arriving should complete the remaining claim of 6 regardless of garrison")
	})
}
