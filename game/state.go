package game

import "maps"

// Node is the simulation record of one spire. Reserve and Garrison together form the
// spire's sendable and defensive strength; Reserve is always consumed first.
type Node struct {
	ID          NodeID
	Owner       Faction
	Reserve     int
	Garrison    int
	Claim       map[Faction]int // partial capture points per contesting faction
	CaptureCost int
	Coord       Coord
	Production  int
	Live        LiveNode // back-reference, shared between clones
}

// Strength is the total sendable and defensive strength of the spire.
func (n *Node) Strength() int {
	return n.Reserve + n.Garrison
}

// Consume removes up to amount units, reserve first, and returns how many were removed.
func (n *Node) Consume(amount int) int {
	if amount <= 0 {
		return 0
	}
	fromReserve := min(amount, n.Reserve)
	n.Reserve -= fromReserve
	fromGarrison := min(amount-fromReserve, n.Garrison)
	n.Garrison -= fromGarrison
	return fromReserve + fromGarrison
}

// capture hands the spire to a new owner with the surviving units as its garrison.
func (n *Node) capture(owner Faction, surplus int) {
	n.Owner = owner
	n.Reserve = 0
	n.Garrison = max(surplus, 0)
	n.Claim = nil
}

func (n Node) clone() Node {
	if n.Claim != nil {
		n.Claim = maps.Clone(n.Claim)
	}
	return n
}

// Snapshot is a value copy of every spire at one point of a planning cycle.
// Search never mutates a snapshot handed to another branch; transitions clone first.
type Snapshot struct {
	Nodes []Node
	Board *Board
}

// TakeSnapshot reads every live spire once. Nil, destroyed and duplicate spires are skipped.
func TakeSnapshot(live []LiveNode, oracle DistanceOracle) *Snapshot {
	nodes := make([]Node, 0, len(live))
	seen := make(map[NodeID]bool, len(live))
	for _, l := range live {
		n, ok := readNode(l)
		if !ok || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		nodes = append(nodes, n)
	}

	ids := make([]NodeID, len(nodes))
	for i := range nodes {
		ids[i] = nodes[i].ID
	}
	return &Snapshot{
		Nodes: nodes,
		Board: NewBoard(ids, oracle),
	}
}

// readNode copies one live spire, treating any failure to read it as a destroyed spire.
func readNode(l LiveNode) (n Node, ok bool) {
	if l == nil {
		return Node{}, false
	}
	defer func() {
		if r := recover(); r != nil {
			n, ok = Node{}, false
		}
	}()
	if !l.Alive() {
		return Node{}, false
	}

	n = Node{
		ID:          l.ID(),
		Owner:       l.Owner(),
		Reserve:     max(l.Reserve(), 0),
		Garrison:    max(l.Garrison(), 0),
		CaptureCost: max(l.CaptureCost(), 0),
		Coord:       l.Coord(),
		Production:  l.Production(),
		Live:        l,
	}
	for f, p := range l.ClaimProgress() {
		// The owner never claims its own spire
		if f == n.Owner || f == Neutral || p <= 0 {
			continue
		}
		if n.Claim == nil {
			n.Claim = make(map[Faction]int)
		}
		n.Claim[f] = p
	}
	return n, true
}

// Clone deep-copies every record. The board and live back-references are shared.
func (s *Snapshot) Clone() *Snapshot {
	nodes := make([]Node, len(s.Nodes))
	for i := range s.Nodes {
		nodes[i] = s.Nodes[i].clone()
	}
	return &Snapshot{
		Nodes: nodes,
		Board: s.Board,
	}
}

// Distance returns the step count between two spires of this snapshot.
func (s *Snapshot) Distance(i, j int) int {
	if i == j {
		return 0
	}
	return s.Board.Distance(i, j)
}

// Owned returns the indices of the spires owned by f.
func (s *Snapshot) Owned(f Faction) []int {
	var owned []int
	for i := range s.Nodes {
		if s.Nodes[i].Owner == f {
			owned = append(owned, i)
		}
	}
	return owned
}

// CountOwned returns how many spires f owns.
func (s *Snapshot) CountOwned(f Faction) int {
	count := 0
	for i := range s.Nodes {
		if s.Nodes[i].Owner == f {
			count++
		}
	}
	return count
}

// Winner returns the only faction still owning spires, or Neutral while both hold some.
func (s *Snapshot) Winner() Faction {
	player, ai := s.CountOwned(Player), s.CountOwned(AI)
	switch {
	case player > 0 && ai == 0:
		return Player
	case ai > 0 && player == 0:
		return AI
	default:
		return Neutral
	}
}
