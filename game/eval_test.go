package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func boardForEval() *Snapshot {
	return newSnapshot(
		&spire{id: "a1", owner: AI, garrison: 12, coord: at(0, 0)},
		&spire{id: "a2", owner: AI, garrison: 3, coord: at(1, 0)},
		&spire{id: "p1", owner: Player, garrison: 7, coord: at(6, 0)},
		&spire{id: "n1", garrison: 2, coord: at(2, 0)},
		&spire{id: "n2", garrison: 4, coord: at(5, 1)},
		&spire{id: "n3", garrison: 1, coord: at(3, -3)},
	)
}

func TestEvaluatePosition(t *testing.T) {
	t.Run("swapping perspectives negates the score", func(t *testing.T) {
		weights := []Weights{
			DefaultWeights(),
			{Ownership: 1},
			{Units: 3, Expansion: 7},
			{Territory: 11, Centrality: 2, Cluster: 5, SupportRange: 2},
			{Ownership: 1000, Units: 5, Expansion: 150, Territory: 20, Centrality: 1, Cluster: 10, SupportRange: 3, SendCap: 4, Rules: NewClaimRules()},
		}
		s := boardForEval()

		for _, w := range weights {
			require.Equal(t, EvaluatePosition(s, AI, Player, w), -EvaluatePosition(s, Player, AI, w),
				"Evaluation should be antisymmetric for %+v", w)
			require.Equal(t, EvaluateResources(s, AI, Player, w), -EvaluateResources(s, Player, AI, w))
		}
	})

	t.Run("weighing ownership above units", func(t *testing.T) {
		s := boardForEval()
		w := DefaultWeights()

		require.Positive(t, EvaluatePosition(s, AI, Player, w), "AI owns more spires and should be ahead")
		require.Equal(t, w.Ownership*1+w.Units*(15-7), EvaluateResources(s, AI, Player, w))
	})

	t.Run("a side without spires scores without dividing by zero", func(t *testing.T) {
		s := newSnapshot(
			&spire{id: "a", owner: AI, garrison: 5, coord: at(0, 0)},
			&spire{id: "n", garrison: 1, coord: at(2, 0)},
		)
		w := DefaultWeights()

		score := EvaluatePosition(s, AI, Player, w)
		require.Equal(t, w.Ownership+w.Units*5+w.Expansion+w.Territory+w.Centrality*s.Board.Centrality(0), score)
		require.Equal(t, -score, EvaluatePosition(s, Player, AI, w))
	})

	t.Run("counting live threats as expansion", func(t *testing.T) {
		s := boardForEval()
		w := Weights{Expansion: 1}

		// a1 sends 12 and takes n1, n2 and n3 but not p1; p1 sends 7 and takes n1 and n2 only
		require.Equal(t, 3-2, EvaluatePosition(s, AI, Player, w))
	})

	t.Run("crediting neutral spires to the closer side", func(t *testing.T) {
		s := boardForEval()
		w := Weights{Territory: 1}

		// n1 and n3 are closer to AI, n2 is closer to Player
		require.Equal(t, 1, EvaluatePosition(s, AI, Player, w))
		require.Equal(t, -1, EvaluatePosition(s, Player, AI, w))
	})
}
