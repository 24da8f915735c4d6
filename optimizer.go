package rex

// removeEpsilons is the post-construction optimization pass. It sweeps the
// state pool once and splices out each epsilon state whose removal is locally
// safe: a single predecessor inherits the state's successors, or dually a
// single successor inherits its predecessors. Epsilon states with fan-in and
// fan-out above one are multiplexers and stay, as do the start and accept
// sentinels and self-looping states. The pass shrinks the frontier during
// execution without altering the accepted language, and is safe to run any
// number of times.
func removeEpsilons(a *automaton) {
	removed := make(map[*state]bool)

	for _, s := range a.states {
		if s.kind != kindEpsilon || s == a.start || s == a.accept {
			continue
		}
		if selfLooping(s) {
			continue
		}

		switch {
		case len(s.prev) == 1 && len(s.next) >= 1:
			p := s.prev[0]
			for _, n := range clip(s.next) {
				p.addNext(n)
			}
			unlink(s)
			removed[s] = true

		case len(s.next) == 1 && len(s.prev) >= 1:
			n := s.next[0]
			for _, p := range clip(s.prev) {
				p.addNext(n)
			}
			unlink(s)
			removed[s] = true
		}
	}

	if len(removed) == 0 {
		return
	}
	states := a.states[:0]
	for _, s := range a.states {
		if !removed[s] {
			states = append(states, s)
		}
	}
	a.states = states
}

func selfLooping(s *state) bool {
	for _, n := range s.next {
		if n == s {
			return true
		}
	}
	return false
}

// unlink detaches s from all neighbours in both directions.
func unlink(s *state) {
	for _, p := range clip(s.prev) {
		p.removeNext(s)
	}
	for _, n := range clip(s.next) {
		s.removeNext(n)
	}
}

// clip copies a neighbour list so it can be ranged over while the original
// is being rewritten.
func clip(ss []*state) []*state {
	out := make([]*state, len(ss))
	copy(out, ss)
	return out
}
