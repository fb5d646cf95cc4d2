package engine

import (
	"maps"

	"spires/config"
	"spires/game"
	"spires/grid"
)

// Spire is a live spire of the headless world. It implements game.LiveNode.
type Spire struct {
	id         game.NodeID
	owner      game.Faction
	reserve    int
	garrison   int
	cost       int
	claim      map[game.Faction]int
	coord      game.Coord
	production int
	destroyed  bool
}

func (s *Spire) ID() game.NodeID     { return s.id }
func (s *Spire) Alive() bool         { return s != nil && !s.destroyed }
func (s *Spire) Owner() game.Faction { return s.owner }
func (s *Spire) Reserve() int        { return s.reserve }
func (s *Spire) Garrison() int       { return s.garrison }
func (s *Spire) CaptureCost() int    { return s.cost }
func (s *Spire) Coord() game.Coord   { return s.coord }
func (s *Spire) Production() int     { return s.production }

func (s *Spire) ClaimProgress() map[game.Faction]int {
	return maps.Clone(s.claim)
}

func (s *Spire) Strength() int {
	return s.reserve + s.garrison
}

// node copies the spire into a simulation record.
func (s *Spire) node() game.Node {
	return game.Node{
		ID:          s.id,
		Owner:       s.owner,
		Reserve:     s.reserve,
		Garrison:    s.garrison,
		Claim:       maps.Clone(s.claim),
		CaptureCost: s.cost,
		Coord:       s.coord,
		Production:  s.production,
	}
}

// apply writes a resolved simulation record back.
func (s *Spire) apply(n game.Node) {
	s.owner = n.Owner
	s.reserve = n.Reserve
	s.garrison = n.Garrison
	s.claim = n.Claim
}

// World holds every spire of one match and the grid they stand on.
type World struct {
	Layout *grid.Layout
	Oracle *grid.Oracle
	spires []*Spire
	byID   map[game.NodeID]*Spire
}

// NewWorld places a spire on every layout position. The first two become the Player and AI
// homes; the rest start neutral.
func NewWorld(layout *grid.Layout, cfg config.Engine) *World {
	w := &World{
		Layout: layout,
		Oracle: layout.Oracle(),
		byID:   make(map[game.NodeID]*Spire, len(layout.Spires)),
	}
	for i, p := range layout.Spires {
		s := &Spire{
			id:         p.ID,
			owner:      game.Neutral,
			garrison:   cfg.NeutralGarrison,
			cost:       cfg.CaptureCost,
			coord:      p.Coord,
			production: cfg.Production,
		}
		switch i {
		case 0:
			s.owner, s.garrison = game.Player, cfg.HomeGarrison
		case 1:
			s.owner, s.garrison = game.AI, cfg.HomeGarrison
		}
		w.add(s)
	}
	return w
}

func (w *World) add(s *Spire) {
	w.spires = append(w.spires, s)
	w.byID[s.id] = s
}

// Live returns every spire as the planning layer reads it, destroyed ones included.
func (w *World) Live() []game.LiveNode {
	live := make([]game.LiveNode, len(w.spires))
	for i, s := range w.spires {
		live[i] = s
	}
	return live
}

// Spire returns the live spire with id, nil when unknown or destroyed.
func (w *World) Spire(id game.NodeID) *Spire {
	s := w.byID[id]
	if !s.Alive() {
		return nil
	}
	return s
}

// Destroy removes a spire from play. Planners skip it from the next snapshot on.
func (w *World) Destroy(id game.NodeID) {
	if s := w.byID[id]; s != nil {
		s.destroyed = true
		w.Oracle.Remove(id)
	}
}

func (w *World) Count(f game.Faction) int {
	count := 0
	for _, s := range w.spires {
		if s.Alive() && s.owner == f {
			count++
		}
	}
	return count
}

// Winner is the only faction still owning spires, Neutral while both hold some.
func (w *World) Winner() game.Faction {
	player, ai := w.Count(game.Player), w.Count(game.AI)
	switch {
	case player > 0 && ai == 0:
		return game.Player
	case ai > 0 && player == 0:
		return game.AI
	default:
		return game.Neutral
	}
}

// Leader is the faction owning more spires, Neutral on a tie.
func (w *World) Leader() game.Faction {
	player, ai := w.Count(game.Player), w.Count(game.AI)
	switch {
	case player > ai:
		return game.Player
	case ai > player:
		return game.AI
	default:
		return game.Neutral
	}
}

// Produce adds each owned spire's production to its reserve.
func (w *World) Produce() {
	for _, s := range w.spires {
		if s.Alive() && s.owner != game.Neutral {
			s.reserve += s.production
		}
	}
}
