package rex

import (
	"fmt"
	"io"
	"strings"
)

// automaton owns the NFA state pool. The start and accept sentinels are
// epsilon states allocated at construction; every other state is added
// through newState. State lifetime equals automaton lifetime.
type automaton struct {
	states []*state
	start  *state
	accept *state
}

func newAutomaton() *automaton {
	a := &automaton{}
	a.start = a.newState(kindEpsilon)
	a.accept = a.newState(kindEpsilon)
	return a
}

// newState allocates a state of the given kind and adds it to the pool. Pool
// order is allocation order, which keeps the optimizer sweep deterministic.
func (a *automaton) newState(k stateKind) *state {
	s := &state{kind: k, id: len(a.states)}
	a.states = append(a.states, s)
	return s
}

// accepts runs the input against the graph. Each call owns its own executor,
// so a compiled automaton may be shared between goroutines.
func (a *automaton) accepts(input []byte, trace io.Writer) bool {
	e := executor{
		start:  a.start,
		accept: a.accept,
		input:  input,
		trace:  trace,
	}
	return e.run()
}

// dumpString renders the graph depth-first, one state per line, indented by
// depth. Repeated states are noted rather than expanded again.
func (a *automaton) dumpString() string {
	var out strings.Builder

	type visit struct {
		s     *state
		depth int
	}
	stack := []visit{{a.start, 0}}
	seen := make(map[*state]bool)

	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		out.WriteString(strings.Repeat("| ", v.depth))
		if seen[v.s] {
			fmt.Fprintf(&out, "<repeated %s> ...\n", v.s.displayName())
			continue
		}
		seen[v.s] = true
		out.WriteString(v.s.displayName())
		out.WriteByte('\n')

		// Push successors in reverse so they pop in edge order.
		for i := len(v.s.next) - 1; i >= 0; i-- {
			stack = append(stack, visit{v.s.next[i], v.depth + 1})
		}
	}
	return out.String()
}
