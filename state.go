package rex

import "fmt"

// stateKind discriminates the closed set of NFA node kinds. Dispatch on it is
// always by exhaustive switch.
type stateKind uint8

const (
	kindEpsilon stateKind = iota
	kindAny
	kindSymbol
	kindRange
	kindString
	kindLambda
	kindPosLookahead
	kindNegLookahead
)

// predicate tests a single input symbol.
type predicate func(byte) bool

// subgraph holds the endpoints of a sub-automaton embedded in the same state
// pool, referenced by lookahead states.
type subgraph struct {
	start  *state
	accept *state
}

// state is a node in the NFA. The automaton owns every state; a state never
// owns its neighbours. States are mutable during the build and optimize
// phases only - execution treats the graph as read-only.
type state struct {
	kind stateKind

	// Kind-specific payload.
	sym    byte      // kindSymbol
	lo, hi byte      // kindRange
	lit    string    // kindString
	pred   predicate // kindLambda
	name   string    // kindLambda display name
	sub    subgraph  // lookahead kinds

	// next is the ordered list of successors; order determines exploration
	// order. prev mirrors next and exists for the optimizer: for every
	// a -> b in next, b lists a in prev.
	next []*state
	prev []*state

	id int
}

// addNext links s -> other, and other's prev back-reference. Duplicate edges
// are not recorded. Returns other so links can be chained.
func (s *state) addNext(other *state) *state {
	for _, n := range s.next {
		if n == other {
			return other
		}
	}
	s.next = append(s.next, other)
	other.prev = append(other.prev, s)
	return other
}

// removeNext unlinks s -> other in both directions.
func (s *state) removeNext(other *state) {
	s.next = removeState(s.next, other)
	other.prev = removeState(other.prev, s)
}

func removeState(ss []*state, s *state) []*state {
	out := ss[:0]
	for _, x := range ss {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}

// consumes reports whether entering the state reads input. Lookahead states
// are zero-width: they assert without consuming.
func (s *state) consumes() bool {
	switch s.kind {
	case kindEpsilon, kindPosLookahead, kindNegLookahead:
		return false
	}
	return true
}

// matches tests one input symbol against a single-symbol state. Epsilon,
// string and lookahead states have no single-symbol predicate.
func (s *state) matches(c byte) bool {
	switch s.kind {
	case kindAny:
		return c != 0
	case kindSymbol:
		return c == s.sym
	case kindRange:
		return c >= s.lo && c <= s.hi
	case kindLambda:
		return s.pred(c)
	}
	panic(fmt.Sprintf("rex: matches called on %v state", s.kind))
}

func (s *state) displayName() string {
	switch s.kind {
	case kindSymbol:
		return fmt.Sprintf("Symbol<%c>#%d", s.sym, s.id)
	case kindRange:
		return fmt.Sprintf("Range<%c-%c>#%d", s.lo, s.hi, s.id)
	case kindString:
		return fmt.Sprintf("String<%s>#%d", s.lit, s.id)
	case kindLambda:
		return fmt.Sprintf("Lambda<%s>#%d", s.name, s.id)
	}
	return fmt.Sprintf("%v#%d", s.kind, s.id)
}

func (k stateKind) String() string {
	switch k {
	case kindEpsilon:
		return "Epsilon"
	case kindAny:
		return "Any"
	case kindSymbol:
		return "Symbol"
	case kindRange:
		return "Range"
	case kindString:
		return "String"
	case kindLambda:
		return "Lambda"
	case kindPosLookahead:
		return "PositiveLookahead"
	case kindNegLookahead:
		return "NegativeLookahead"
	}
	return "?"
}
