package agent

import "spires/game"

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

// hexOracle measures straight hex distance between known spires.
type hexOracle map[game.NodeID]game.Coord

func (o hexOracle) Distance(a, b game.NodeID) int {
	ca, okA := o[a]
	cb, okB := o[b]
	if !okA || !okB {
		return -1
	}
	return game.HexDistance(ca, cb)
}

func world(spires ...*spire) ([]game.LiveNode, hexOracle) {
	live := make([]game.LiveNode, len(spires))
	oracle := hexOracle{}
	for i, s := range spires {
		live[i] = s
		if s != nil {
			oracle[s.id] = s.coord
		}
	}
	return live, oracle
}
