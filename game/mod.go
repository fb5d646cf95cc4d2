package game

import "spires/utils"

// Faction identifies who owns a spire. Neutral spires belong to nobody.
type Faction int

const (
	Neutral Faction = iota
	Player
	AI
)

func (f Faction) String() string {
	switch f {
	case Player:
		return "player"
	case AI:
		return "ai"
	default:
		return "neutral"
	}
}

// Opponent returns the other contesting faction. Neutral has no opponent.
func (f Faction) Opponent() Faction {
	switch f {
	case Player:
		return AI
	case AI:
		return Player
	default:
		return Neutral
	}
}

// NodeID is the identity of a live spire.
type NodeID string

// Coord is an axial hex coordinate. The third cube coordinate is -Q-R.
type Coord struct {
	Q int `json:"q" yaml:"q"`
	R int `json:"r" yaml:"r"`
}

// S returns the implicit third cube coordinate.
func (c Coord) S() int {
	return -c.Q - c.R
}

// HexDistance is the straight-line step count between two hexes, ignoring obstacles.
func HexDistance(a, b Coord) int {
	dq := utils.Abs(a.Q - b.Q)
	dr := utils.Abs(a.R - b.R)
	ds := utils.Abs(a.S() - b.S())
	return max(dq, dr, ds)
}

// LiveNode is the read-only view of a spire owned by the scene layer.
// Implementations must tolerate calls on a nil receiver by reporting !Alive().
type LiveNode interface {
	ID() NodeID
	Alive() bool
	Owner() Faction
	Reserve() int
	Garrison() int
	CaptureCost() int
	ClaimProgress() map[Faction]int
	Coord() Coord
	Production() int
}

// DistanceOracle answers shortest-path step counts between spires.
// It must be deterministic and symmetric for a static map; -1 means unreachable.
type DistanceOracle interface {
	Distance(a, b NodeID) int
}

// Evaluate scores a snapshot from perspective's point of view, higher is better.
type Evaluate func(s *Snapshot, perspective, opponent Faction, w Weights) int
