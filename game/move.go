package game

import "fmt"

// ActionKind distinguishes moves between friendly spires from moves against foreign ones.
type ActionKind int

const (
	ReinforceAction ActionKind = iota
	ContestAction
)

func (k ActionKind) String() string {
	if k == ReinforceAction {
		return "reinforce"
	}
	return "contest"
}

// Action sends units from one spire to another. Source and Dest index the snapshot
// the action was generated from.
type Action struct {
	Kind     ActionKind
	Source   int
	Dest     int
	Send     int
	Distance int
	Arriving int  // Send minus one unit per step travelled
	Score    int  // ordering heuristic, not an evaluation
	Finisher bool // Arriving is enough to take Dest this ply
}

func (a Action) String() string {
	return fmt.Sprintf("%s %d->%d send=%d arrive=%d", a.Kind, a.Source, a.Dest, a.Send, a.Arriving)
}

// Command is the hand-off to the execution layer: which spire sends how many units where.
type Command struct {
	Source NodeID
	Dest   NodeID
	Send   int
}

// CommandFor resolves an action's indices against the snapshot it came from.
func (s *Snapshot) CommandFor(a Action) Command {
	return Command{
		Source: s.Nodes[a.Source].ID,
		Dest:   s.Nodes[a.Dest].ID,
		Send:   a.Send,
	}
}
