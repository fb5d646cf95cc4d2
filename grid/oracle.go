package grid

import (
	"sync"

	"spires/game"
)

// Oracle answers spire-to-spire path lengths over a grid. It implements game.DistanceOracle.
type Oracle struct {
	grid *Grid

	mu     sync.RWMutex
	spires map[game.NodeID]game.Coord
}

func NewOracle(g *Grid) *Oracle {
	return &Oracle{
		grid:   g,
		spires: make(map[game.NodeID]game.Coord),
	}
}

// Place records where a spire stands. Placing an existing id moves it.
func (o *Oracle) Place(id game.NodeID, c game.Coord) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.spires[id] = c
}

func (o *Oracle) Remove(id game.NodeID) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.spires, id)
}

func (o *Oracle) Distance(a, b game.NodeID) int {
	o.mu.RLock()
	ca, okA := o.spires[a]
	cb, okB := o.spires[b]
	o.mu.RUnlock()
	if !okA || !okB {
		return -1
	}
	return o.grid.PathLength(ca, cb)
}
