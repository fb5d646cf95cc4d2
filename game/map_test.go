package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoardCentrality(t *testing.T) {
	t.Run("middle spire is the most central", func(t *testing.T) {
		b := NewBoard([]NodeID{"a", "b", "c"}, coordOracle{"a": at(0, 0), "b": at(1, 0), "c": at(2, 0)})

		require.Equal(t, 5, b.Centrality(1), "Middle spire should be half a step closer on average")
		require.Zero(t, b.Centrality(0), "End spires should be the least central")
		require.Zero(t, b.Centrality(2), "End spires should be the least central")
	})

	t.Run("isolated spire is never central", func(t *testing.T) {
		b := NewBoard([]NodeID{"a", "b", "c", "iso"}, coordOracle{"a": at(0, 0), "b": at(1, 0), "c": at(2, 0)})

		iso, ok := b.Index("iso")
		require.True(t, ok, "Isolated spire should still be indexed")
		require.Equal(t, -1, b.Distance(0, iso), "Unknown pairs should be unreachable")
		require.Zero(t, b.Centrality(iso), "Unreachable spire should score like the farthest one")
		require.Greater(t, b.Centrality(1), b.Centrality(iso), "True centre should outrank the isolated spire")
	})
}
