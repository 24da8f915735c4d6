package rex

import (
	"strings"
	"testing"
)

func TestAcceptBasic(t *testing.T) {
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{"abc", "abc", true},
		{"abc", "abcd", false},
		{"abc", " abc", false},
		{"abc", "", false},
		{"", "", true},
		{"", "a", false},
	}

	for _, test := range tests {
		r := MustCompile(test.pattern)
		if got, want := r.Accept(test.input), test.want; got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", test.pattern, test.input, got, want)
		}
	}
}

func TestAcceptAny(t *testing.T) {
	r := MustCompile("..")

	for c := byte(32); c < 127; c++ {
		for n := 1; n <= 3; n++ {
			input := strings.Repeat(string(c), n)
			if got, want := r.Accept(input), n == 2; got != want {
				t.Errorf("Accept(%q, %q) = %v, want %v", "..", input, got, want)
			}
		}
	}

	dot := MustCompile(".")
	for c := byte(1); c < 127; c++ {
		if !dot.Accept(string(c)) {
			t.Errorf("Accept(%q, %q) = false, want true", ".", string(c))
		}
	}
	if dot.Accept("\x00") {
		t.Errorf("Accept(%q, %q) = true, want false", ".", "\x00")
	}
}

func TestAcceptEscapes(t *testing.T) {
	r := MustCompile(`\d\d`)

	tests := []struct {
		input string
		want  bool
	}{
		{"10", true},
		{"67", true},
		{"ab", false},
		{"1", false},
	}
	for _, test := range tests {
		if got, want := r.Accept(test.input), test.want; got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", `\d\d`, test.input, got, want)
		}
	}

	word := MustCompile(`\w`)
	space := MustCompile(`\s`)
	for c := byte(1); c < 127; c++ {
		input := string(c)
		if got, want := word.Accept(input), isWord(c); got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", `\w`, input, got, want)
		}
		if got, want := space.Accept(input), isSpace(c); got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", `\s`, input, got, want)
		}
	}

	// \c for non-predicate c escapes the literal.
	lit := MustCompile(`\+\.`)
	if !lit.Accept("+.") {
		t.Errorf("Accept(%q, %q) = false, want true", `\+\.`, "+.")
	}
	if lit.Accept("a.") {
		t.Errorf("Accept(%q, %q) = true, want false", `\+\.`, "a.")
	}
}

func TestAcceptQuantifiers(t *testing.T) {
	plus := MustCompile("a+")
	for n := 1; n < 1000; n++ {
		if !plus.Accept(strings.Repeat("a", n)) {
			t.Fatalf("Accept(%q, a×%d) = false, want true", "a+", n)
		}
		if plus.Accept(strings.Repeat("b", n)) {
			t.Fatalf("Accept(%q, b×%d) = true, want false", "a+", n)
		}
	}
	if plus.Accept("") {
		t.Errorf("Accept(%q, %q) = true, want false", "a+", "")
	}

	tests := []struct {
		pattern, input string
		want           bool
	}{
		{"a+b+", "ab", true},
		{"a+b+", "aaabbbb", true},
		{"a+b+", "abbb", true},
		{"a+b+", "aaaa", false},
		{"a+b+", "abba", false},
		{"a+b+", "ababab", false},

		{"a+b*", "ab", true},
		{"a+b*", "aaabbbb", true},
		{"a+b*", "abbb", true},
		{"a+b*", "aaaa", true},
		{"a+b*", "abba", false},
		{"a+b*", "ababab", false},

		{"ab?", "a", true},
		{"ab?", "ab", true},
		{"ab?", "abb", false},
		{"ab?", "b", false},
	}
	for _, test := range tests {
		r := MustCompile(test.pattern)
		if got, want := r.Accept(test.input), test.want; got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", test.pattern, test.input, got, want)
		}
	}
}

func TestAcceptGroups(t *testing.T) {
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{"(ab)+", "ab", true},
		{"(ab)+", "ababab", true},
		{"(ab)+", "aaabbbb", false},
		{"(ab)+", "abbb", false},
		{"(ab)+", "aaaa", false},
		{"(ab)+", "abba", false},

		{"a|b", "a", true},
		{"a|b", "b", true},
		{"a|b", "c", false},
		{"a|b", "ab", false},

		{"(cat|dog)s?", "cat", true},
		{"(cat|dog)s?", "dogs", true},
		{"(cat|dog)s?", "cats", true},
		{"(cat|dog)s?", "cow", false},

		{"((a|b)c)+", "acbc", true},
		{"((a|b)c)+", "ac", true},
		{"((a|b)c)+", "ab", false},
	}
	for _, test := range tests {
		r := MustCompile(test.pattern)
		if got, want := r.Accept(test.input), test.want; got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", test.pattern, test.input, got, want)
		}
	}
}

func TestAcceptClasses(t *testing.T) {
	abc := MustCompile("[abc]")
	word := MustCompile("[a-zA-Z0-9_]")
	notABC := MustCompile("[^abc]")

	for c := byte(1); c < 127; c++ {
		input := string(c)
		inABC := c == 'a' || c == 'b' || c == 'c'
		if got, want := abc.Accept(input), inABC; got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", "[abc]", input, got, want)
		}
		if got, want := word.Accept(input), isWord(c); got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", "[a-zA-Z0-9_]", input, got, want)
		}
		if got, want := notABC.Accept(input), !inABC; got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", "[^abc]", input, got, want)
		}
	}

	// [^] admits every non-null byte.
	any := MustCompile("[^]")
	for c := 1; c < 256; c++ {
		if !any.Accept(string([]byte{byte(c)})) {
			t.Errorf("Accept(%q, %#x) = false, want true", "[^]", c)
		}
	}
	if any.Accept("\x00") {
		t.Errorf("Accept(%q, %q) = true, want false", "[^]", "\x00")
	}

	tests := []struct {
		pattern, input string
		want           bool
	}{
		{`[\d]+`, "123", true},
		{`[\d]+`, "12a", false},
		{`[a\-z]`, "-", true},
		{`[a\-z]`, "b", false},
		{"[a-]", "-", true},
		{"[a-]", "a", true},
		{"[-a]", "-", true},
		{"[0-9a-f]+", "c0ffee", true},
		{"[0-9a-f]+", "C0FFEE", false},
	}
	for _, test := range tests {
		r := MustCompile(test.pattern)
		if got, want := r.Accept(test.input), test.want; got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", test.pattern, test.input, got, want)
		}
	}
}

func TestAcceptBoundedRepetition(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a{3}", []string{"aaa"}, []string{"", "a", "aa", "aaaa"}},
		{"a{2,}", []string{"aa", "aaa", "aaaaaaaa"}, []string{"", "a"}},
		{"a{1,3}", []string{"a", "aa", "aaa"}, []string{"", "aaaa"}},
		{"a{0,2}", []string{"", "a", "aa"}, []string{"aaa"}},
		{"a{0,}", []string{"", "a", "aaaa"}, []string{"b"}},
		{"(ab){2}", []string{"abab"}, []string{"ab", "ababab"}},
		{"(a|b){2,3}", []string{"ab", "aba", "bbb"}, []string{"a", "abab"}},
	}
	for _, test := range tests {
		r := MustCompile(test.pattern)
		for _, input := range test.accept {
			if !r.Accept(input) {
				t.Errorf("Accept(%q, %q) = false, want true", test.pattern, input)
			}
		}
		for _, input := range test.reject {
			if r.Accept(input) {
				t.Errorf("Accept(%q, %q) = true, want false", test.pattern, input)
			}
		}
	}

	// Bounded repetition is pure unrolling: a{3} and aaa are the same
	// language.
	lit, rep := MustCompile("aaa"), MustCompile("a{3}")
	for n := 0; n <= 5; n++ {
		input := strings.Repeat("a", n)
		if got, want := rep.Accept(input), lit.Accept(input); got != want {
			t.Errorf("Accept(%q, %q) = %v, but Accept(%q, %q) = %v", "a{3}", input, got, "aaa", input, want)
		}
	}
}

func TestAcceptLookahead(t *testing.T) {
	tests := []struct {
		pattern, input string
		want           bool
	}{
		{"(?=ab)a.", "ab", true},
		{"(?=ab)a.", "ax", false},
		{"(?!b).", "a", true},
		{"(?!b).", "b", false},
		{`a(?!b)`, "a", true},
		{`\d+(?!\d)`, "123", true},
	}
	for _, test := range tests {
		r := MustCompile(test.pattern)
		if got, want := r.Accept(test.input), test.want; got != want {
			t.Errorf("Accept(%q, %q) = %v, want %v", test.pattern, test.input, got, want)
		}
	}
}

// Accept matches the entire input: extending an accepted input in either
// direction must not accept unless the pattern admits it.
func TestAcceptAnchoring(t *testing.T) {
	tests := []struct {
		pattern, input string
	}{
		{"abc", "abc"},
		{"a+b+", "aabb"},
		{"(ab)+", "abab"},
		{"[a-z]{3}", "xyz"},
	}
	for _, test := range tests {
		r := MustCompile(test.pattern)
		if !r.Accept(test.input) {
			t.Fatalf("Accept(%q, %q) = false, want true", test.pattern, test.input)
		}
		for _, ext := range []string{"x" + test.input, test.input + "x"} {
			if r.Accept(ext) {
				t.Errorf("Accept(%q, %q) = true, want false", test.pattern, ext)
			}
		}
	}
}

func TestAcceptDeterminism(t *testing.T) {
	r := MustCompile("(a|b)*abb")
	for i := 0; i < 100; i++ {
		if !r.Accept("babb") {
			t.Fatalf("Accept(%q, %q) = false on run %d, want true", "(a|b)*abb", "babb", i)
		}
		if r.Accept("baba") {
			t.Fatalf("Accept(%q, %q) = true on run %d, want false", "(a|b)*abb", "baba", i)
		}
	}
}

func TestCaseInsensitive(t *testing.T) {
	r := MustCompile("ab[c-e]", CaseInsensitive(true))

	for _, input := range []string{"abc", "ABC", "aBd", "Abe"} {
		if !r.Accept(input) {
			t.Errorf("Accept(%q, %q) = false, want true", "ab[c-e]", input)
		}
	}
	for _, input := range []string{"abf", "ABF", "ab"} {
		if r.Accept(input) {
			t.Errorf("Accept(%q, %q) = true, want false", "ab[c-e]", input)
		}
	}
}

func TestCompileErrors(t *testing.T) {
	patterns := []string{
		"(ab",
		"ab)",
		"(a(b)",
		"[abc",
		"[]",
		"[z-a]",
		"+a",
		"(+)",
		"|+",
		"a{2,1}",
		"a{0}",
		"a{",
		"a{}",
		"a{x}",
		"a{1001}",
		`ab\`,
		"(?<a)",
		"(?=ab",
		strings.Repeat("(", 200) + "a" + strings.Repeat(")", 200),
	}
	for _, pattern := range patterns {
		if _, err := Compile(pattern); err == nil {
			t.Errorf("Compile(%q) error = nil, want non-nil", pattern)
		}
	}
}

func TestAcceptFunc(t *testing.T) {
	ok, err := Accept("a+", "aaa")
	if err != nil {
		t.Fatalf("Accept(a+, aaa) error = %v", err)
	}
	if !ok {
		t.Errorf("Accept(a+, aaa) = false, want true")
	}

	if _, err := Accept("(", "x"); err == nil {
		t.Errorf("Accept((, x) error = nil, want non-nil")
	}
}

func TestWithGroupDepth(t *testing.T) {
	if _, err := Compile("((a))", WithGroupDepth(3)); err == nil {
		t.Errorf("Compile with depth 3 error = nil, want non-nil")
	}
	if _, err := Compile("((a))", WithGroupDepth(10)); err != nil {
		t.Errorf("Compile with depth 10 error = %v", err)
	}
}
