package game

// spire is an in-memory LiveNode for tests.
type spire struct {
	id         NodeID
	owner      Faction
	reserve    int
	garrison   int
	cost       int
	claim      map[Faction]int
	coord      Coord
	production int
	dead       bool
}

func (s *spire) ID() NodeID                     { return s.id }
func (s *spire) Alive() bool                    { return s != nil && !s.dead }
func (s *spire) Owner() Faction                 { return s.owner }
func (s *spire) Reserve() int                   { return s.reserve }
func (s *spire) Garrison() int                  { return s.garrison }
func (s *spire) CaptureCost() int               { return s.cost }
func (s *spire) ClaimProgress() map[Faction]int { return s.claim }
func (s *spire) Coord() Coord                   { return s.coord }
func (s *spire) Production() int                { return s.production }

// coordOracle measures straight hex distance between the spires it knows.
type coordOracle map[NodeID]Coord

func (o coordOracle) Distance(a, b NodeID) int {
	ca, okA := o[a]
	cb, okB := o[b]
	if !okA || !okB {
		return -1
	}
	return HexDistance(ca, cb)
}

func at(q, r int) Coord {
	return Coord{Q: q, R: r}
}

func newSnapshot(spires ...*spire) *Snapshot {
	oracle := coordOracle{}
	live := make([]LiveNode, len(spires))
	for i, s := range spires {
		oracle[s.id] = s.coord
		live[i] = s
	}
	return TakeSnapshot(live, oracle)
}
