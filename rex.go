// Package rex implements a regular-expression engine built atop a
// non-deterministic finite automaton. A pattern compiles into a graph of
// states connected by transition edges; Accept reports whether an input
// string is wholly accepted by that graph. The engine matches full strings
// only - there is no substring search and no capture extraction.
package rex

import "fmt"

// Regex is a compiled pattern. It is immutable once compiled and may be
// shared between goroutines; every Accept call runs its own executor.
type Regex struct {
	pattern string
	auto    *automaton
	cfg     compileConfig
}

// Compile translates a pattern into a regex. A malformed pattern (unbalanced
// groups, bad character class, bad repetition bounds, trailing escape, group
// nesting beyond the depth cap) returns an error and no regex.
func Compile(pattern string, opts ...CompileOption) (*Regex, error) {
	cfg := defaultCompileConfig
	for _, o := range opts {
		o(&cfg)
	}

	a, err := compile(pattern, &cfg)
	if err != nil {
		return nil, fmt.Errorf("pattern %q: %w", pattern, err)
	}
	return &Regex{pattern: pattern, auto: a, cfg: cfg}, nil
}

// MustCompile calls Compile, and panics if unable to compile the pattern.
func MustCompile(pattern string, opts ...CompileOption) *Regex {
	r, err := Compile(pattern, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Accept reports whether the regex accepts the entire input.
//
//	MustCompile("(abc)+").Accept("abcabc") // true
//	MustCompile("(abc)+").Accept("abcab")  // false
func (r *Regex) Accept(input string) bool {
	return r.auto.accepts([]byte(input), r.cfg.trace)
}

// AcceptBytes is Accept for a byte slice.
func (r *Regex) AcceptBytes(input []byte) bool {
	return r.auto.accepts(input, r.cfg.trace)
}

// String returns the source pattern.
func (r *Regex) String() string { return r.pattern }

// Accept compiles the pattern in place and matches the input against it.
func Accept(pattern, input string) (bool, error) {
	r, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return r.Accept(input), nil
}
