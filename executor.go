package rex

import (
	"fmt"
	"io"
)

// thread is a frontier entry: an active state, plus the progress made inside
// it for string states that consume one symbol per step across |lit| steps.
// off is zero for every other kind.
type thread struct {
	st  *state
	off int
}

// executor drives a state graph against an input sequence, one symbol per
// step, keeping the frontier of reachable states. It holds non-owning
// references only, and is single-use: one executor per Accept call.
type executor struct {
	start  *state
	accept *state
	input  []byte
	pos    int

	frontier map[thread]struct{}

	trace io.Writer
}

// run reports whether the whole input is accepted: after consuming every
// symbol, the accept state is a member of the final frontier. Empty input
// accepts iff accept is in the epsilon closure of start.
func (e *executor) run() bool {
	e.frontier = map[thread]struct{}{{e.start, 0}: {}}
	e.closure(e.frontier)
	for e.pos < len(e.input) {
		if len(e.frontier) == 0 {
			e.logf("rex: dead frontier at %d\n", e.pos)
			return false
		}
		e.step()
	}
	_, ok := e.frontier[thread{e.accept, 0}]
	return ok
}

// step consumes input[pos]: every consuming state in the frontier that
// matches the symbol contributes its successors to the next frontier, which
// is then epsilon-closed at the advanced position.
func (e *executor) step() {
	c := e.input[e.pos]
	next := make(map[thread]struct{}, len(e.frontier))

	for t := range e.frontier {
		s := t.st
		switch s.kind {
		case kindEpsilon, kindPosLookahead, kindNegLookahead:
			// Zero-width; closure already spread through these.

		case kindString:
			if c != s.lit[t.off] {
				continue
			}
			if t.off+1 < len(s.lit) {
				next[thread{s, t.off + 1}] = struct{}{}
				continue
			}
			for _, n := range s.next {
				next[thread{n, 0}] = struct{}{}
			}

		default:
			if !s.matches(c) {
				continue
			}
			for _, n := range s.next {
				next[thread{n, 0}] = struct{}{}
			}
		}
	}

	e.pos++
	e.closure(next)
	e.frontier = next
	e.logf("rex: pos %d frontier %d\n", e.pos, len(e.frontier))
}

// closure expands the set along epsilon transitions to a fixed point.
// Lookahead states are evaluated inline: a positive lookahead joins (and
// spreads) iff a nested executor accepts the remaining suffix; a negative
// lookahead mirrors it.
func (e *executor) closure(set map[thread]struct{}) {
	q := make([]thread, 0, len(set))
	for t := range set {
		q = append(q, t)
	}
	for len(q) > 0 {
		t := q[0]
		q = q[1:]

		var open bool
		switch t.st.kind {
		case kindEpsilon:
			open = true
		case kindPosLookahead:
			open = e.lookahead(t.st)
		case kindNegLookahead:
			open = !e.lookahead(t.st)
		default:
			continue
		}
		if !open {
			delete(set, t)
			continue
		}
		for _, n := range t.st.next {
			nt := thread{n, 0}
			if _, seen := set[nt]; seen {
				continue
			}
			set[nt] = struct{}{}
			q = append(q, nt)
		}
	}
}

// lookahead runs the state's sub-automaton over the remaining suffix with a
// nested executor.
func (e *executor) lookahead(s *state) bool {
	sub := executor{
		start:  s.sub.start,
		accept: s.sub.accept,
		input:  e.input[e.pos:],
		trace:  e.trace,
	}
	return sub.run()
}

func (e *executor) logf(format string, args ...any) {
	if e.trace == nil {
		return
	}
	fmt.Fprintf(e.trace, format, args...)
}
