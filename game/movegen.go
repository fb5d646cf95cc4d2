package game

import (
	"slices"

	"spires/utils"
)

// MoveConfig bounds the candidate actions generated for one side at one search node.
// Zero caps mean "unbounded".
type MoveConfig struct {
	MaxSendPerSource       int        `yaml:"max_send_per_source"`
	PerSourceTopK          int        `yaml:"per_source_top_k"`
	GlobalMoveCap          int        `yaml:"global_move_cap"`
	AllowReinforcement     bool       `yaml:"allow_reinforcement"`
	AllowTargetingOpponent bool       `yaml:"allow_targeting_opponent"`
	Heuristics             Heuristics `yaml:"heuristics"`
}

// Heuristics weighs the cheap ordering score of candidate actions.
type Heuristics struct {
	ContestBase     int `yaml:"contest_base"`
	MarginWeight    int `yaml:"margin_weight"`
	MarginCap       int `yaml:"margin_cap"`
	FinisherBonus   int `yaml:"finisher_bonus"`
	BlockerBonus    int `yaml:"blocker_bonus"`
	SwingBonus      int `yaml:"swing_bonus"`
	ReinforceBase   int `yaml:"reinforce_base"`
	WeaknessWeight  int `yaml:"weakness_weight"`
	RescueBonus     int `yaml:"rescue_bonus"`
	DistancePenalty int `yaml:"distance_penalty"`
	ExposurePenalty int `yaml:"exposure_penalty"`
}

func DefaultMoveConfig() MoveConfig {
	return MoveConfig{
		MaxSendPerSource:       0,
		PerSourceTopK:          4,
		GlobalMoveCap:          12,
		AllowReinforcement:     true,
		AllowTargetingOpponent: true,
		Heuristics: Heuristics{
			ContestBase:     20,
			MarginWeight:    2,
			MarginCap:       20,
			FinisherBonus:   100,
			BlockerBonus:    60,
			SwingBonus:      30,
			ReinforceBase:   0,
			WeaknessWeight:  2,
			RescueBonus:     60,
			DistancePenalty: 3,
			ExposurePenalty: 50,
		},
	}
}

// Sendable is how many units a spire can commit to one action under cfg.
func (cfg MoveConfig) Sendable(n *Node) int {
	return sendable(n, cfg.MaxSendPerSource)
}

func sendable(n *Node, maxSend int) int {
	if maxSend <= 0 {
		return n.Strength()
	}
	return min(maxSend, n.Strength())
}

// GenerateMoves lists the candidate actions of faction, best heuristic first.
// Each source keeps its PerSourceTopK best candidates, then the union is cut to GlobalMoveCap.
// An empty result means faction has nothing worth doing.
func GenerateMoves(s *Snapshot, faction Faction, cfg MoveConfig, rules Rules) []Action {
	if faction == Neutral {
		return nil
	}
	if rules == nil {
		rules = NewStandardRules()
	}
	opponent := faction.Opponent()
	threat := s.reach(opponent, cfg.MaxSendPerSource)

	var moves []Action
	for src := range s.Nodes {
		source := &s.Nodes[src]
		if source.Owner != faction {
			continue
		}
		send := cfg.Sendable(source)
		if send <= 0 {
			continue
		}
		exposed := exposure(source, send, opponent, threat[src], rules)

		var local []Action
		for dst := range s.Nodes {
			if dst == src {
				continue
			}
			d := s.Distance(src, dst)
			if d < 0 {
				continue
			}
			arriving := send - d
			if arriving <= 0 {
				continue
			}

			dest := &s.Nodes[dst]
			a := Action{Source: src, Dest: dst, Send: send, Distance: d, Arriving: arriving}
			switch {
			case dest.Owner == faction:
				if !cfg.AllowReinforcement {
					continue
				}
				a.Kind = ReinforceAction
				a.Score = cfg.Heuristics.reinforce(dest, arriving, d, opponent, threat[dst], rules)
			case dest.Owner == opponent && !cfg.AllowTargetingOpponent:
				continue
			default:
				needed := rules.Needed(dest, faction)
				a.Kind = ContestAction
				a.Finisher = arriving >= needed
				a.Score = cfg.Heuristics.contest(dest, arriving, needed, d, faction, threat[dst], rules)
			}
			if exposed {
				a.Score -= cfg.Heuristics.ExposurePenalty
			}
			local = append(local, a)
		}

		sortByScore(local)
		if cfg.PerSourceTopK > 0 && len(local) > cfg.PerSourceTopK {
			local = local[:cfg.PerSourceTopK]
		}
		moves = append(moves, local...)
	}

	sortByScore(moves)
	if cfg.GlobalMoveCap > 0 && len(moves) > cfg.GlobalMoveCap {
		moves = moves[:cfg.GlobalMoveCap]
	}
	return moves
}

// sortByScore orders best first; equal scores keep generation order.
func sortByScore(moves []Action) {
	slices.SortStableFunc(moves, func(a, b Action) int {
		return b.Score - a.Score
	})
}

// reach is, per spire, the largest force faction could land there with a single action.
func (s *Snapshot) reach(faction Faction, maxSend int) []int {
	best := make([]int, len(s.Nodes))
	for src := range s.Nodes {
		if s.Nodes[src].Owner != faction {
			continue
		}
		send := sendable(&s.Nodes[src], maxSend)
		for dst := range s.Nodes {
			if dst == src {
				continue
			}
			d := s.Distance(src, dst)
			if d < 0 {
				continue
			}
			if arriving := send - d; arriving > best[dst] {
				best[dst] = arriving
			}
		}
	}
	return best
}

// exposure reports whether sending units away lets the opponent take the source next ply
// when it could not before.
func exposure(source *Node, send int, opponent Faction, threat int, rules Rules) bool {
	if threat <= 0 {
		return false
	}
	if threat >= rules.Needed(source, opponent) {
		return false
	}
	after := source.clone()
	after.Consume(send)
	return threat >= rules.Needed(&after, opponent)
}

func (h Heuristics) reinforce(dest *Node, arriving, distance int, opponent Faction, threat int, rules Rules) int {
	score := h.ReinforceBase - h.WeaknessWeight*dest.Strength() - h.DistancePenalty*distance
	if threat > 0 && threat >= rules.Needed(dest, opponent) {
		after := dest.clone()
		after.Garrison += arriving
		if threat < rules.Needed(&after, opponent) {
			score += h.RescueBonus
		}
	}
	return score
}

func (h Heuristics) contest(dest *Node, arriving, needed, distance int, faction Faction, threat int, rules Rules) int {
	margin := utils.Clamp(arriving-needed, -h.MarginCap, h.MarginCap)
	score := h.ContestBase + h.MarginWeight*margin - h.DistancePenalty*distance
	if arriving >= needed {
		score += h.FinisherBonus
	}
	opponent := faction.Opponent()
	if dest.Owner == opponent {
		score += h.SwingBonus
		return score
	}
	// Blocker: the opponent could take this spire next ply, and no longer can after the move
	if threat > 0 && threat >= rules.Needed(dest, opponent) {
		after := dest.clone()
		rules.Resolve(&after, faction, arriving)
		if after.Owner == faction && threat < rules.Needed(&after, opponent) {
			score += h.BlockerBonus
		}
	}
	return score
}
