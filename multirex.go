package rex

import (
	"context"
	"errors"
	"sync"
)

// RegexSet matches inputs against several compiled patterns at once.
type RegexSet struct {
	regexes []*Regex
}

// CompileSet compiles every pattern into a set. The first malformed pattern
// aborts compilation.
func CompileSet(patterns []string, opts ...CompileOption) (*RegexSet, error) {
	set := &RegexSet{regexes: make([]*Regex, 0, len(patterns))}
	for _, p := range patterns {
		r, err := Compile(p, opts...)
		if err != nil {
			return nil, err
		}
		set.regexes = append(set.regexes, r)
	}
	return set, nil
}

// Len returns the number of patterns in the set.
func (s *RegexSet) Len() int { return len(s.regexes) }

// Accept reports whether any pattern in the set accepts the input.
func (s *RegexSet) Accept(input string) bool {
	for _, r := range s.regexes {
		if r.Accept(input) {
			return true
		}
	}
	return false
}

// Matching returns the indices of the patterns that accept the input, in
// compile order.
func (s *RegexSet) Matching(input string) []int {
	var out []int
	for i, r := range s.regexes {
		if r.Accept(input) {
			out = append(out, i)
		}
	}
	return out
}

// MatchFunc receives one input and the indices of the patterns accepting it.
// Returning a non-nil error stops the batch.
type MatchFunc = func(input string, matched []int) error

// MatchOption functions optionally alter how MatchAll operates.
type MatchOption = func(*matchConfig)

type matchConfig struct {
	goroutines int
}

// GoroutineLimit sets the number of worker goroutines used by MatchAll. By
// default one worker per input is started, capped at the batch size.
func GoroutineLimit(n int) MatchOption {
	return func(cfg *matchConfig) {
		cfg.goroutines = n
	}
}

// MatchAll matches a batch of inputs against the set, fanning the batch out
// over worker goroutines. You should either make sure that the callback f is
// safe to call concurrently from multiple goroutines, or set GoroutineLimit
// to 1. The compiled automata themselves are read-only and safe to share.
func (s *RegexSet) MatchAll(ctx context.Context, inputs []string, f MatchFunc, opts ...MatchOption) error {
	if f == nil {
		return errors.New("nil MatchFunc in arg to MatchAll")
	}

	cfg := &matchConfig{}
	for _, o := range opts {
		if o == nil {
			continue
		}
		o(cfg)
	}
	if cfg.goroutines <= 0 || cfg.goroutines > len(inputs) {
		cfg.goroutines = len(inputs)
	}
	if len(inputs) == 0 {
		return nil
	}

	workCh := make(chan string)
	wctx, cancel := context.WithCancelCause(ctx)
	var wg sync.WaitGroup
	for i := 0; i < cfg.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for input := range workCh {
				if wctx.Err() != nil {
					// Cancelled; keep draining so the feeder can finish.
					continue
				}
				if err := f(input, s.Matching(input)); err != nil {
					cancel(err)
				}
			}
		}()
	}

	// Feed work to the workers.
	for _, input := range inputs {
		select {
		case <-wctx.Done():
			close(workCh)
			wg.Wait()
			return context.Cause(wctx)

		case workCh <- input:
			// input has been fed
		}
	}
	close(workCh)

	wg.Wait()
	return context.Cause(wctx)
}
