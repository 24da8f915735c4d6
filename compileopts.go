package rex

import "io"

var defaultCompileConfig = compileConfig{
	groupDepth: maxGroupDepth,
}

type compileConfig struct {
	caseInsensitive bool
	groupDepth      int
	trace           io.Writer
}

// CompileOption functions optionally alter how patterns are compiled.
type CompileOption = func(*compileConfig)

// CaseInsensitive changes how ASCII letters are matched. If enabled, a
// literal letter in the pattern (or in a character class) matches both its
// cases. Disabled by default.
func CaseInsensitive(enable bool) CompileOption {
	return func(cfg *compileConfig) {
		cfg.caseInsensitive = enable
	}
}

// WithGroupDepth lowers the cap on the builder's group-frame stack. The
// default (and maximum) is 127; values outside [1, 127] are ignored. The
// stack also holds a reserved slot, the root group and the transient frame,
// so a cap of n admits n-3 nested groups and lookaheads. Exceeding the cap is
// a compile error.
func WithGroupDepth(depth int) CompileOption {
	return func(cfg *compileConfig) {
		if depth >= 1 && depth <= maxGroupDepth {
			cfg.groupDepth = depth
		}
	}
}

// WithTraceLogs logs executor progress, for debugging the engine itself, to
// the provided writer. Disabled by default.
func WithTraceLogs(out io.Writer) CompileOption {
	return func(cfg *compileConfig) {
		cfg.trace = out
	}
}
