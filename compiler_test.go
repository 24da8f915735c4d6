package rex

import "testing"

func countKind(a *automaton, k stateKind) int {
	n := 0
	for _, s := range a.states {
		if s.kind == k {
			n++
		}
	}
	return n
}

// Consecutive literals coalesce into one string state.
func TestCompileCoalescesLiterals(t *testing.T) {
	r := MustCompile("abcde")
	if got, want := countKind(r.auto, kindString), 1; got != want {
		t.Errorf("string states = %d, want %d", got, want)
	}
	if got, want := countKind(r.auto, kindSymbol), 0; got != want {
		t.Errorf("symbol states = %d, want %d", got, want)
	}
}

// A quantifier binds to the last literal only; the run before it still
// coalesces.
func TestCompileQuantifierBinding(t *testing.T) {
	r := MustCompile("abc+")
	if got, want := countKind(r.auto, kindString), 1; got != want {
		t.Errorf("string states = %d, want %d", got, want)
	}
	if got, want := countKind(r.auto, kindSymbol), 1; got != want {
		t.Errorf("symbol states = %d, want %d", got, want)
	}

	tests := []struct {
		input string
		want  bool
	}{
		{"abc", true},
		{"abccc", true},
		{"ab", false},
		{"abcabc", false},
	}
	for _, test := range tests {
		if got, want := r.Accept(test.input), test.want; got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", "abc+", test.input, got, want)
		}
	}
}

// Class lowering: a lone range becomes a range state, anything more a
// lambda.
func TestCompileClassLowering(t *testing.T) {
	if got := countKind(MustCompile("[a-z]").auto, kindRange); got != 1 {
		t.Errorf("[a-z] range states = %d, want 1", got)
	}
	if got := countKind(MustCompile("[q]").auto, kindSymbol); got != 1 {
		t.Errorf("[q] symbol states = %d, want 1", got)
	}
	if got := countKind(MustCompile("[abc]").auto, kindLambda); got != 1 {
		t.Errorf("[abc] lambda states = %d, want 1", got)
	}
	if got := countKind(MustCompile("[^]").auto, kindAny); got != 1 {
		t.Errorf("[^] any states = %d, want 1", got)
	}
	if got := countKind(MustCompile(`[\d]`).auto, kindLambda); got != 1 {
		t.Errorf(`[\d] lambda states = %d, want 1`, got)
	}
}

func TestCompileCaseInsensitiveLowering(t *testing.T) {
	r := MustCompile("ab1", CaseInsensitive(true))
	// Letters fold into lambdas; the digit stays a symbol.
	if got, want := countKind(r.auto, kindLambda), 2; got != want {
		t.Errorf("lambda states = %d, want %d", got, want)
	}
	if got, want := countKind(r.auto, kindSymbol), 1; got != want {
		t.Errorf("symbol states = %d, want %d", got, want)
	}
}

func TestCompileLookaheadStates(t *testing.T) {
	r := MustCompile("(?=a)a")
	if got, want := countKind(r.auto, kindPosLookahead), 1; got != want {
		t.Errorf("positive lookahead states = %d, want %d", got, want)
	}
	neg := MustCompile("(?!a).")
	if got, want := countKind(neg.auto, kindNegLookahead), 1; got != want {
		t.Errorf("negative lookahead states = %d, want %d", got, want)
	}
}
