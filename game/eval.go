package game

// Weights scales each evaluation term. All weights are non-negative.
type Weights struct {
	Ownership    int `yaml:"ownership"`
	Units        int `yaml:"units"`
	Expansion    int `yaml:"expansion"`
	Territory    int `yaml:"territory"`
	Centrality   int `yaml:"centrality"`
	Cluster      int `yaml:"cluster"`
	SupportRange int `yaml:"support_range"` // spires this close back each other up
	SendCap      int `yaml:"send_cap"`      // mirrors MoveConfig.MaxSendPerSource for threat counting

	Rules Rules `yaml:"-"` // capture model used to judge threats; nil means StandardRules
}

func DefaultWeights() Weights {
	return Weights{
		Ownership:    1000,
		Units:        5,
		Expansion:    150,
		Territory:    20,
		Centrality:   1,
		Cluster:      10,
		SupportRange: 3,
	}
}

func (w Weights) rules() Rules {
	if w.Rules == nil {
		return NewStandardRules()
	}
	return w.Rules
}

// EvaluateResources only weighs owned spires and the units stationed on them.
func EvaluateResources(s *Snapshot, perspective, opponent Faction, w Weights) int {
	ownership, units := s.calculateResourceScores(perspective, opponent)
	return w.Ownership*ownership + w.Units*units
}

// EvaluatePosition weighs ownership, units, live capture threats, territorial reach and
// the placement of owned spires.
func EvaluatePosition(s *Snapshot, perspective, opponent Faction, w Weights) int {
	ownership, units := s.calculateResourceScores(perspective, opponent)
	score := w.Ownership*ownership + w.Units*units
	if w.Expansion != 0 {
		score += w.Expansion * s.calculateExpansionScore(perspective, opponent, w)
	}
	if w.Territory != 0 {
		score += w.Territory * s.calculateTerritoryScore(perspective, opponent)
	}
	if w.Centrality != 0 {
		score += w.Centrality * s.calculateCentralityScore(perspective, opponent)
	}
	if w.Cluster != 0 {
		score += w.Cluster * s.calculateClusterScore(perspective, opponent, w.SupportRange)
	}
	return score
}

func (s *Snapshot) calculateResourceScores(perspective, opponent Faction) (ownership, units int) {
	for i := range s.Nodes {
		n := &s.Nodes[i]
		switch n.Owner {
		case perspective:
			ownership++
			units += n.Strength()
		case opponent:
			ownership--
			units -= n.Strength()
		}
	}
	return ownership, units
}

// calculateExpansionScore counts the spires each side could take with its next single action.
func (s *Snapshot) calculateExpansionScore(perspective, opponent Faction, w Weights) int {
	return s.capturable(perspective, w) - s.capturable(opponent, w)
}

func (s *Snapshot) capturable(f Faction, w Weights) int {
	rules := w.rules()
	reach := s.reach(f, w.SendCap)
	count := 0
	for i := range s.Nodes {
		n := &s.Nodes[i]
		if n.Owner == f {
			continue
		}
		if reach[i] > 0 && reach[i] >= rules.Needed(n, f) {
			count++
		}
	}
	return count
}

// calculateTerritoryScore credits each neutral spire to whichever side sits strictly closer.
func (s *Snapshot) calculateTerritoryScore(perspective, opponent Faction) int {
	score := 0
	for i := range s.Nodes {
		if s.Nodes[i].Owner != Neutral {
			continue
		}
		mine, theirs := s.nearest(perspective, i), s.nearest(opponent, i)
		switch {
		case mine < 0 && theirs < 0:
		case theirs < 0:
			score++
		case mine < 0:
			score--
		case mine < theirs:
			score++
		case theirs < mine:
			score--
		}
	}
	return score
}

// nearest is the distance from i to f's closest owned spire, -1 if f reaches none.
func (s *Snapshot) nearest(f Faction, i int) int {
	best := -1
	for j := range s.Nodes {
		if j == i || s.Nodes[j].Owner != f {
			continue
		}
		if d := s.Distance(j, i); d >= 0 && (best < 0 || d < best) {
			best = d
		}
	}
	return best
}

func (s *Snapshot) calculateCentralityScore(perspective, opponent Faction) int {
	score := 0
	for i := range s.Nodes {
		switch s.Nodes[i].Owner {
		case perspective:
			score += s.Board.Centrality(i)
		case opponent:
			score -= s.Board.Centrality(i)
		}
	}
	return score
}

// calculateClusterScore counts pairs of same-side spires within supporting range.
func (s *Snapshot) calculateClusterScore(perspective, opponent Faction, supportRange int) int {
	if supportRange <= 0 {
		return 0
	}
	score := 0
	for i := range s.Nodes {
		owner := s.Nodes[i].Owner
		if owner != perspective && owner != opponent {
			continue
		}
		for j := i + 1; j < len(s.Nodes); j++ {
			if s.Nodes[j].Owner != owner {
				continue
			}
			if d := s.Distance(i, j); d >= 0 && d <= supportRange {
				if owner == perspective {
					score++
				} else {
					score--
				}
			}
		}
	}
	return score
}
