package game

import "fmt"

// Rules decides how hostile arrivals contest a spire.
type Rules interface {
	Name() string
	// Needed is the smallest arriving force with which attacker takes n in one move.
	Needed(n *Node, attacker Faction) int
	// Resolve applies arriving hostile units to n.
	Resolve(n *Node, attacker Faction, arriving int)
}

// StandardRules subtracts arriving units from the defender's strength.
// The spire flips once the attacker strictly outnumbers the defence.
type StandardRules struct{}

func NewStandardRules() StandardRules {
	return StandardRules{}
}

func (StandardRules) Name() string { return "standard" }

func (StandardRules) Needed(n *Node, _ Faction) int {
	return n.Strength() + 1
}

func (StandardRules) Resolve(n *Node, attacker Faction, arriving int) {
	if arriving <= 0 {
		return
	}
	defence := n.Strength()
	if arriving > defence {
		n.capture(attacker, arriving-defence)
		return
	}
	n.Consume(arriving)
}

// ClaimRules accumulates claim points per attacker without touching the defence.
// The spire flips when the attacker's claim reaches the capture cost.
type ClaimRules struct{}

func NewClaimRules() ClaimRules {
	return ClaimRules{}
}

func (ClaimRules) Name() string { return "claim" }

func (ClaimRules) Needed(n *Node, attacker Faction) int {
	return max(n.CaptureCost-n.Claim[attacker], 1)
}

func (r ClaimRules) Resolve(n *Node, attacker Faction, arriving int) {
	if arriving <= 0 {
		return
	}
	needed := r.Needed(n, attacker)
	if arriving >= needed {
		n.capture(attacker, arriving-needed)
		return
	}
	if n.Claim == nil {
		n.Claim = make(map[Faction]int)
	}
	n.Claim[attacker] += arriving
}

// RulesByName returns the capture model registered under name.
func RulesByName(name string) (Rules, error) {
	switch name {
	case "", "standard":
		return NewStandardRules(), nil
	case "claim":
		return NewClaimRules(), nil
	default:
		return nil, fmt.Errorf("unknown capture rules %q", name)
	}
}
