package rex

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	var buf strings.Builder
	if err := Generate(&buf, `ab[0-9x]+`, "match", "Serial"); err != nil {
		t.Fatalf("Generate(...) = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"DO NOT EDIT",
		"package match",
		"type serialState struct",
		"var serialStates = []serialState",
		"func SerialAccept(input string) bool",
		"mask:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Generate output missing %q:\n%s", want, out)
		}
	}

	// The generated output needs no imports at all.
	if strings.Contains(out, "import") {
		t.Errorf("Generate output has imports:\n%s", out)
	}
}

func TestGenerateStringTable(t *testing.T) {
	var buf strings.Builder
	if err := Generate(&buf, "abcd", "match", "Word"); err != nil {
		t.Fatalf("Generate(...) = %v", err)
	}
	if !strings.Contains(buf.String(), `"abcd"`) {
		t.Errorf("Generate output missing coalesced literal:\n%s", buf.String())
	}
}

func TestGenerateErrors(t *testing.T) {
	var buf strings.Builder
	if err := Generate(&buf, "(?=a)b", "match", "Look"); err == nil {
		t.Errorf("Generate with lookahead error = nil, want non-nil")
	}
	if err := Generate(&buf, "(", "match", "Bad"); err == nil {
		t.Errorf("Generate with bad pattern error = nil, want non-nil")
	}
	if err := Generate(&buf, "a", "match", "7up"); err == nil {
		t.Errorf("Generate with bad name error = nil, want non-nil")
	}
}
