package agent

import (
	"testing"

	"github.com/stretchr/testify/require"

	"spires/game"
)

func TestTabuRepeats(t *testing.T) {
	tabu := NewTabu(6)
	require.False(t, tabu.IsTabu("a", "b", 1), "never issued")

	tabu.Record("a", "b", 1)
	require.False(t, tabu.IsTabu("a", "b", 2), "one repeat is tolerated")

	tabu.Record("a", "b", 2)
	require.True(t, tabu.IsTabu("a", "b", 3), "third issue in a row is blocked")
	require.False(t, tabu.IsTabu("b", "a", 3), "direction matters")
	require.False(t, tabu.IsTabu("a", "c", 3), "other pairs unaffected")

	require.False(t, tabu.IsTabu("a", "b", 9), "both issues fell out of the window")
}

func TestTabuPrunesToWindow(t *testing.T) {
	tabu := NewTabu(2)
	tabu.Record("a", "b", 1)
	tabu.Record("c", "d", 2)
	require.Equal(t, 2, tabu.Len(), "both pairs remembered")

	tabu.Record("c", "d", 4)
	require.Equal(t, 1, tabu.Len(), "turn 1 is outside the window of turn 4")
}

func TestTabuDisabled(t *testing.T) {
	tabu := NewTabu(0)
	for turn := 1; turn <= 5; turn++ {
		tabu.Record("a", "b", turn)
	}
	require.False(t, tabu.IsTabu("a", "b", 6), "zero window blocks nothing")
	require.Zero(t, tabu.Len(), "nothing remembered")
}

func TestTabuFilter(t *testing.T) {
	live, oracle := world(
		&spire{id: "a", owner: game.AI, garrison: 10, coord: game.Coord{Q: 0, R: 0}},
		&spire{id: "b", owner: game.AI, garrison: 2, coord: game.Coord{Q: 1, R: 0}},
		&spire{id: "c", owner: game.Player, garrison: 1, coord: game.Coord{Q: 2, R: 0}},
	)
	s := game.TakeSnapshot(live, oracle)
	reinforce := game.Action{Kind: game.ReinforceAction, Source: 0, Dest: 1, Send: 10}
	finisher := game.Action{Kind: game.ContestAction, Source: 0, Dest: 2, Send: 10, Finisher: true}

	t.Run("finishers survive", func(t *testing.T) {
		tabu := NewTabu(6)
		for turn := 1; turn <= 2; turn++ {
			tabu.Record("a", "b", turn)
			tabu.Record("a", "c", turn)
		}
		kept := tabu.Filter(s, []game.Action{reinforce, finisher}, 3)
		require.Equal(t, []game.Action{finisher}, kept, "blocked reinforcement dropped, finisher kept")
		require.Equal(t, 2, tabu.Len(), "history untouched")
	})

	t.Run("exhaustion clears history", func(t *testing.T) {
		tabu := NewTabu(6)
		tabu.Record("a", "b", 1)
		tabu.Record("a", "b", 2)
		actions := []game.Action{reinforce}
		kept := tabu.Filter(s, actions, 3)
		require.Equal(t, actions, kept, "guard bypassed rather than leaving nothing")
		require.Zero(t, tabu.Len(), "history cleared")
		require.False(t, tabu.IsTabu("a", "b", 3), "pair free again")
	})

	t.Run("root filter binds the turn", func(t *testing.T) {
		tabu := NewTabu(6)
		tabu.Record("a", "b", 1)
		tabu.Record("a", "b", 2)
		kept := tabu.RootFilter(3)(s, []game.Action{reinforce, finisher})
		require.Equal(t, []game.Action{finisher}, kept, "same result as Filter")
	})
}
