package rex

import "fmt"

// maxGroupDepth caps the builder's group-frame stack. Index 0 is reserved,
// index 1 is the implicit root group and the slot above the innermost group
// holds the transient frame, so patterns may nest 124 groups.
const maxGroupDepth = 127

// builder assembles an automaton from a sequence of compilation events. Each
// method returns the builder so events can be chained; the first violation
// sticks and is surfaced by finish.
//
// Building (a|b)+ by hand:
//
//	b := newBuilder(a, 0)
//	b.beginGroup()
//	b.pushSymbol('a')
//	b.pushBranch()
//	b.pushSymbol('b')
//	b.endGroup()
//	b.pushJump()
//	err := b.finish()
type builder struct {
	auto *automaton

	// cur is the tail of the being-built chain.
	cur *state

	// starts/ends hold the group frames, indexed by open-group depth. The
	// slot one above the innermost open group holds the transient frame of
	// the last pushed unit, which is what quantifier events rewrite.
	starts [maxGroupDepth]*state
	ends   [maxGroupDepth]*state
	depth  int

	// macros tracks lookahead states awaiting endMacro.
	macros []macroFrame

	// limit is the configured frame-stack cap, at most maxGroupDepth.
	limit int

	err error
}

type macroFrame struct {
	eps   *state // epsilon inserted before the lookahead state
	macro *state
}

func newBuilder(a *automaton, limit int) *builder {
	if limit <= 0 || limit > maxGroupDepth {
		limit = maxGroupDepth
	}
	b := &builder{auto: a, cur: a.start, depth: 1, limit: limit}
	b.starts[1] = a.start
	b.ends[1] = a.accept
	return b
}

func (b *builder) fail(format string, args ...any) *builder {
	if b.err == nil {
		b.err = fmt.Errorf(format, args...)
	}
	return b
}

// lastFrame returns the transient frame quantifier events act on: the most
// recently pushed state, or the most recently closed group.
func (b *builder) lastFrame() (gs, ge *state, ok bool) {
	gs, ge = b.starts[b.depth+1], b.ends[b.depth+1]
	return gs, ge, gs != nil && ge != nil
}

func (b *builder) setLastFrame(gs, ge *state) {
	b.starts[b.depth+1] = gs
	b.ends[b.depth+1] = ge
}

// pushState inserts an epsilon state followed by st, and registers the pair
// as the transient frame so a following quantifier binds to st alone.
func (b *builder) pushState(st *state) *builder {
	if b.err != nil {
		return b
	}
	eps := b.auto.newState(kindEpsilon)
	b.cur.addNext(eps).addNext(st)
	b.cur = st
	b.setLastFrame(eps, st)
	return b
}

// Per-kind pushState wrappers.

func (b *builder) pushSymbol(c byte) *builder {
	s := b.auto.newState(kindSymbol)
	s.sym = c
	return b.pushState(s)
}

func (b *builder) pushAny() *builder {
	return b.pushState(b.auto.newState(kindAny))
}

func (b *builder) pushRange(lo, hi byte) *builder {
	s := b.auto.newState(kindRange)
	s.lo, s.hi = lo, hi
	return b.pushState(s)
}

func (b *builder) pushString(lit string) *builder {
	if lit == "" {
		return b.fail("empty string literal")
	}
	s := b.auto.newState(kindString)
	s.lit = lit
	return b.pushState(s)
}

func (b *builder) pushLambda(name string, pred predicate) *builder {
	s := b.auto.newState(kindLambda)
	s.name, s.pred = name, pred
	return b.pushState(s)
}

// beginGroup opens a group: two fresh epsilon states bound as the new
// innermost frame.
func (b *builder) beginGroup() *builder {
	if b.err != nil {
		return b
	}
	if b.depth+2 >= b.limit {
		return b.fail("group depth exceeds %d", b.limit)
	}
	gs := b.auto.newState(kindEpsilon)
	ge := b.auto.newState(kindEpsilon)
	b.cur.addNext(gs)
	b.cur = gs
	b.depth++
	b.starts[b.depth] = gs
	b.ends[b.depth] = ge
	b.setLastFrame(nil, nil)
	return b
}

// endGroup seals the innermost group and pops it. The popped frame becomes
// the transient frame, so a quantifier directly after ) binds to the group.
func (b *builder) endGroup() *builder {
	if b.err != nil {
		return b
	}
	if b.depth <= 1 {
		return b.fail("endGroup without beginGroup")
	}
	ge := b.ends[b.depth]
	b.cur.addNext(ge)
	b.cur = ge
	b.depth--
	return b
}

// pushBranch seals the current alternative of the innermost group and resets
// the tail to the group start, ready for the next alternative.
func (b *builder) pushBranch() *builder {
	if b.err != nil {
		return b
	}
	b.cur.addNext(b.ends[b.depth])
	b.cur = b.starts[b.depth]
	b.setLastFrame(nil, nil)
	return b
}

// pushJump adds a back-edge around the last unit: repeat one or more times.
func (b *builder) pushJump() *builder {
	if b.err != nil {
		return b
	}
	gs, ge, ok := b.lastFrame()
	if !ok {
		return b.fail("jump with no preceding state")
	}
	ge.addNext(gs)
	return b
}

// pushSkip adds a forward bypass around the last unit: repeat zero or one
// time. Combined with pushJump this yields zero-or-more.
func (b *builder) pushSkip() *builder {
	if b.err != nil {
		return b
	}
	gs, _, ok := b.lastFrame()
	if !ok {
		return b.fail("skip with no preceding state")
	}
	eps := b.auto.newState(kindEpsilon)
	b.cur.addNext(eps)
	gs.addNext(eps)
	b.cur = eps
	return b
}

// pushRepeat unrolls the last unit min..max times by cloning its subgraph.
// max == 0 means unbounded. The unit is already present once, so min-1
// mandatory clones are appended, then max-min optional ones, each reachable
// or skippable through a fresh epsilon state; a final epsilon seals the
// frame and becomes its end.
func (b *builder) pushRepeat(min, max int) *builder {
	if b.err != nil {
		return b
	}
	if min < 1 || (max != 0 && max < min) {
		return b.fail("bad repetition bounds {%d,%d}", min, max)
	}
	gs, ge, ok := b.lastFrame()
	if !ok {
		return b.fail("repeat with no preceding state")
	}

	tail := b.cur
	back := gs // where an unbounded tail loops back to
	for i := 1; i < min; i++ {
		eps := b.auto.newState(kindEpsilon)
		tail.addNext(eps)
		cs, ce := b.cloneFrame(gs, ge)
		eps.addNext(cs)
		back = eps
		tail = ce
	}

	end := b.auto.newState(kindEpsilon)
	if max == 0 {
		tail.addNext(back)
	} else {
		for i := min; i < max; i++ {
			eps := b.auto.newState(kindEpsilon)
			tail.addNext(eps)
			eps.addNext(end) // the remaining instances may be skipped
			cs, ce := b.cloneFrame(gs, ge)
			eps.addNext(cs)
			tail = ce
		}
	}
	tail.addNext(end)
	b.cur = end
	b.setLastFrame(gs, end)
	return b
}

// beginMacro inserts a lookahead state whose behaviour delegates to an
// embedded sub-automaton, then redirects building into that sub-automaton
// until endMacro.
func (b *builder) beginMacro(k stateKind) *builder {
	if b.err != nil {
		return b
	}
	if k != kindPosLookahead && k != kindNegLookahead {
		return b.fail("beginMacro on non-macro kind %v", k)
	}
	if b.depth+2 >= b.limit {
		return b.fail("group depth exceeds %d", b.limit)
	}

	eps := b.auto.newState(kindEpsilon)
	m := b.auto.newState(k)
	m.sub.start = b.auto.newState(kindEpsilon)
	m.sub.accept = b.auto.newState(kindEpsilon)
	b.cur.addNext(eps).addNext(m)

	b.macros = append(b.macros, macroFrame{eps: eps, macro: m})
	b.depth++
	b.starts[b.depth] = m.sub.start
	b.ends[b.depth] = m.sub.accept
	b.setLastFrame(nil, nil)
	b.cur = m.sub.start
	return b
}

// endMacro seals the sub-automaton and resumes building after the lookahead
// state.
func (b *builder) endMacro() *builder {
	if b.err != nil {
		return b
	}
	if len(b.macros) == 0 {
		return b.fail("endMacro without beginMacro")
	}
	b.cur.addNext(b.ends[b.depth])
	b.depth--

	f := b.macros[len(b.macros)-1]
	b.macros = b.macros[:len(b.macros)-1]
	b.cur = f.macro
	b.setLastFrame(f.eps, f.macro)
	return b
}

// finish links the tail to the accept state and reports the first recorded
// violation, if any.
func (b *builder) finish() error {
	if b.err != nil {
		return b.err
	}
	if len(b.macros) > 0 {
		return fmt.Errorf("unterminated lookahead")
	}
	if b.depth != 1 {
		return fmt.Errorf("unterminated group")
	}
	b.cur.addNext(b.auto.accept)
	return nil
}

// cloneFrame copies the subgraph between gs and ge. Each source state is
// cloned once; revisits reuse the first clone, preserving merge points and
// cycles. Traversal stops at ge, so the clone never escapes the frame.
// Lookahead clones share the source's sub-automaton, which is read-only at
// execution time.
func (b *builder) cloneFrame(gs, ge *state) (cs, ce *state) {
	clones := make(map[*state]*state)

	var cloneOf func(s *state) *state
	cloneOf = func(s *state) *state {
		if c, ok := clones[s]; ok {
			return c
		}
		c := b.auto.newState(s.kind)
		c.sym, c.lo, c.hi = s.sym, s.lo, s.hi
		c.lit, c.pred, c.name = s.lit, s.pred, s.name
		c.sub = s.sub
		clones[s] = c
		if s != ge {
			for _, n := range s.next {
				c.addNext(cloneOf(n))
			}
		}
		return c
	}

	cs = cloneOf(gs)
	ce = cloneOf(ge)
	return cs, ce
}
