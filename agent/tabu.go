package agent

import (
	"github.com/rs/zerolog/log"

	"spires/game"
	"spires/searcher"
)

type pair struct {
	source game.NodeID
	dest   game.NodeID
}

// Tabu remembers recently issued source/destination pairs. A pair seen at least twice within
// the window is blocked; one repeat is always tolerated.
type Tabu struct {
	window  int
	history map[pair][]int // turns the pair was issued, oldest first
}

// NewTabu returns a guard over the last window turns. A window of zero or less blocks nothing.
func NewTabu(window int) *Tabu {
	return &Tabu{
		window:  window,
		history: make(map[pair][]int),
	}
}

// Record notes that the pair was issued on turn and forgets turns outside the window.
func (t *Tabu) Record(source, dest game.NodeID, turn int) {
	if t.window <= 0 {
		return
	}
	key := pair{source, dest}
	t.history[key] = append(t.history[key], turn)
	t.prune(turn)
}

func (t *Tabu) prune(turn int) {
	for key, turns := range t.history {
		i := 0
		for i < len(turns) && turn-turns[i] > t.window {
			i++
		}
		if i == len(turns) {
			delete(t.history, key)
			continue
		}
		t.history[key] = turns[i:]
	}
}

// IsTabu reports whether issuing the pair on turn would be a third occurrence within the window.
func (t *Tabu) IsTabu(source, dest game.NodeID, turn int) bool {
	if t.window <= 0 {
		return false
	}
	count := 0
	for _, seen := range t.history[pair{source, dest}] {
		if seen < turn && turn-seen <= t.window {
			count++
		}
	}
	return count >= 2
}

// Filter drops tabu actions except finishers. If nothing survives, the history is cleared and
// the actions are returned unfiltered.
func (t *Tabu) Filter(s *game.Snapshot, actions []game.Action, turn int) []game.Action {
	if t.window <= 0 || len(actions) == 0 {
		return actions
	}
	kept := make([]game.Action, 0, len(actions))
	for _, a := range actions {
		cmd := s.CommandFor(a)
		if a.Finisher || !t.IsTabu(cmd.Source, cmd.Dest, turn) {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		log.Debug().Int("turn", turn).Int("blocked", len(actions)).Msg("every candidate is tabu, clearing history")
		t.Reset()
		return actions
	}
	return kept
}

// RootFilter adapts Filter for the root of a search on turn.
func (t *Tabu) RootFilter(turn int) searcher.RootFilter {
	return func(s *game.Snapshot, moves []game.Action) []game.Action {
		return t.Filter(s, moves, turn)
	}
}

func (t *Tabu) Reset() {
	clear(t.history)
}

// Len returns the number of remembered pairs.
func (t *Tabu) Len() int {
	return len(t.history)
}
