package game

// Simulate returns the snapshot after mover plays a. The input is never modified.
// Actions that cannot land any units (foreign or empty source, unreachable or too distant
// destination, non-positive send) leave the copy unchanged.
func Simulate(s *Snapshot, a Action, mover Faction, rules Rules) *Snapshot {
	next := s.Clone()
	if rules == nil {
		rules = NewStandardRules()
	}
	if a.Source < 0 || a.Source >= len(next.Nodes) || a.Dest < 0 || a.Dest >= len(next.Nodes) {
		return next
	}
	if a.Source == a.Dest || a.Send <= 0 {
		return next
	}

	source := &next.Nodes[a.Source]
	if source.Owner != mover || mover == Neutral {
		return next
	}
	d := next.Distance(a.Source, a.Dest)
	if d < 0 {
		return next
	}
	send := min(a.Send, source.Strength())
	arriving := send - d
	if arriving <= 0 {
		return next
	}

	source.Consume(send)
	dest := &next.Nodes[a.Dest]
	if dest.Owner == mover {
		dest.Garrison += arriving
		return next
	}
	rules.Resolve(dest, mover, arriving)
	return next
}
