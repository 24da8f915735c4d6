package rex

import "fmt"

// maxRepeatCount bounds {n,m} so a hostile pattern cannot demand an
// arbitrarily large unrolled graph.
const maxRepeatCount = 1000

// Symbol predicates shared by escapes and character classes.

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWord(c byte) bool { return isDigit(c) || isAlpha(c) || c == '_' }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f'
}

func swapCase(c byte) byte {
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 'A'
	case c >= 'A' && c <= 'Z':
		return c - 'A' + 'a'
	}
	return c
}

// escapePredicate maps a predicate escape (the char after the backslash) to
// its named test. Returns a nil predicate for ordinary escapes.
func escapePredicate(c byte) (string, predicate) {
	switch c {
	case 'd':
		return "Digit", isDigit
	case 'D':
		return "NonDigit", func(b byte) bool { return !isDigit(b) }
	case 'w':
		return "Word", isWord
	case 'W':
		return "NonWord", func(b byte) bool { return !isWord(b) }
	case 's':
		return "WhiteSpace", isSpace
	case 'S':
		return "NonWhiteSpace", func(b byte) bool { return !isSpace(b) }
	}
	return "", nil
}

// compile translates pattern text into a built, optimized automaton. The
// translation is a single left-to-right pass emitting builder events; no
// construct needs more than two characters of lookahead.
func compile(pattern string, cfg *compileConfig) (*automaton, error) {
	a := newAutomaton()
	c := &compiler{b: newBuilder(a, cfg.groupDepth), pattern: pattern, cfg: cfg}
	if err := c.translate(); err != nil {
		return nil, err
	}
	removeEpsilons(a)
	return a, nil
}

type compiler struct {
	b       *builder
	pattern string
	cfg     *compileConfig

	// lits buffers a run of ordinary literals so consecutive ones can
	// coalesce into a single string state.
	lits []byte

	// hasUnit records whether a quantifier at this point has something to
	// bind to.
	hasUnit bool

	// groups matches each ) to the construct that opened it: 'g' for a
	// plain group, 'm' for a lookahead.
	groups []byte
}

func (c *compiler) translate() error {
	p := c.pattern
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '(':
			c.flush(false)
			if i+1 < len(p) && p[i+1] == '?' {
				if i+2 >= len(p) {
					return fmt.Errorf("unterminated group at %d", i)
				}
				switch p[i+2] {
				case '=':
					c.b.beginMacro(kindPosLookahead)
				case '!':
					c.b.beginMacro(kindNegLookahead)
				default:
					return fmt.Errorf("unsupported group flag (?%c at %d", p[i+2], i)
				}
				c.groups = append(c.groups, 'm')
				i += 2
			} else {
				c.b.beginGroup()
				c.groups = append(c.groups, 'g')
			}
			c.hasUnit = false

		case ')':
			c.flush(false)
			if len(c.groups) == 0 {
				return fmt.Errorf("unmatched ) at %d", i)
			}
			opener := c.groups[len(c.groups)-1]
			c.groups = c.groups[:len(c.groups)-1]
			if opener == 'm' {
				c.b.endMacro()
			} else {
				c.b.endGroup()
			}
			c.hasUnit = true

		case '|':
			c.flush(false)
			c.b.pushBranch()
			c.hasUnit = false

		case '+':
			if err := c.quantifiable(i); err != nil {
				return err
			}
			c.b.pushJump()

		case '*':
			if err := c.quantifiable(i); err != nil {
				return err
			}
			c.b.pushSkip()
			c.b.pushJump()

		case '?':
			if err := c.quantifiable(i); err != nil {
				return err
			}
			c.b.pushSkip()

		case '{':
			if err := c.quantifiable(i); err != nil {
				return err
			}
			end, min, max, unbounded, err := c.bounds(i)
			if err != nil {
				return err
			}
			switch {
			case unbounded && min == 0:
				// {0,} is zero-or-more.
				c.b.pushSkip()
				c.b.pushJump()
			case unbounded:
				c.b.pushRepeat(min, 0)
			case max == 0:
				return fmt.Errorf("repetition {0} at %d", i)
			case max < min:
				return fmt.Errorf("repetition bounds out of order at %d", i)
			case min == 0:
				// {0,m} is one-to-m, bypassable.
				c.b.pushRepeat(1, max)
				c.b.pushSkip()
			default:
				c.b.pushRepeat(min, max)
			}
			i = end

		case '.':
			c.flush(false)
			c.b.pushAny()
			c.hasUnit = true

		case '[':
			c.flush(false)
			end, err := c.class(i)
			if err != nil {
				return err
			}
			i = end
			c.hasUnit = true

		case '\\':
			c.flush(false)
			if i+1 >= len(p) {
				return fmt.Errorf("trailing escape at %d", i)
			}
			if name, pred := escapePredicate(p[i+1]); pred != nil {
				c.b.pushLambda(name, pred)
			} else {
				c.single(p[i+1])
			}
			i++
			c.hasUnit = true

		default:
			c.lits = append(c.lits, p[i])
		}
	}
	c.flush(false)
	return c.b.finish()
}

// quantifiable flushes any pending literal run so the quantifier binds to
// the last literal only, and rejects a quantifier with nothing before it.
func (c *compiler) quantifiable(i int) error {
	if len(c.lits) > 0 {
		c.flush(true)
		return nil
	}
	if !c.hasUnit {
		return fmt.Errorf("nothing to repeat at %d", i)
	}
	return nil
}

// flush empties the literal-run buffer into the builder. With forQuant set,
// the final literal is emitted as its own unit so a quantifier binds to it
// alone.
func (c *compiler) flush(forQuant bool) {
	lits := c.lits
	c.lits = c.lits[:0]
	if len(lits) == 0 {
		return
	}
	if forQuant {
		if len(lits) > 1 {
			c.chunk(lits[:len(lits)-1])
		}
		c.single(lits[len(lits)-1])
	} else {
		c.chunk(lits)
	}
	c.hasUnit = true
}

func (c *compiler) chunk(lits []byte) {
	if c.cfg.caseInsensitive {
		// Folded literals are lambda states; no string coalescing.
		for _, ch := range lits {
			c.single(ch)
		}
		return
	}
	if len(lits) == 1 {
		c.b.pushSymbol(lits[0])
		return
	}
	c.b.pushString(string(lits))
}

func (c *compiler) single(ch byte) {
	if c.cfg.caseInsensitive && isAlpha(ch) {
		lo, up := ch, swapCase(ch)
		c.b.pushLambda(fmt.Sprintf("Fold<%c>", ch), func(b byte) bool {
			return b == lo || b == up
		})
		return
	}
	c.b.pushSymbol(ch)
}

// bounds parses {n}, {n,} or {n,m} starting at the opening brace. Returns
// the index of the closing brace.
func (c *compiler) bounds(i int) (end, min, max int, unbounded bool, err error) {
	p := c.pattern
	j := i + 1
	min, j, err = scanCount(p, j, i)
	if err != nil {
		return 0, 0, 0, false, err
	}
	if j < len(p) && p[j] == '}' {
		return j, min, min, false, nil
	}
	if j >= len(p) || p[j] != ',' {
		return 0, 0, 0, false, fmt.Errorf("malformed repetition at %d", i)
	}
	j++
	if j < len(p) && p[j] == '}' {
		return j, min, 0, true, nil
	}
	max, j, err = scanCount(p, j, i)
	if err != nil {
		return 0, 0, 0, false, err
	}
	if j >= len(p) || p[j] != '}' {
		return 0, 0, 0, false, fmt.Errorf("malformed repetition at %d", i)
	}
	return j, min, max, false, nil
}

func scanCount(p string, j, at int) (int, int, error) {
	start := j
	n := 0
	for j < len(p) && isDigit(p[j]) {
		n = n*10 + int(p[j]-'0')
		if n > maxRepeatCount {
			return 0, 0, fmt.Errorf("repetition count above %d at %d", maxRepeatCount, at)
		}
		j++
	}
	if j == start {
		return 0, 0, fmt.Errorf("malformed repetition at %d", at)
	}
	return n, j, nil
}

// classItem is one member of a character class: a byte range (single bytes
// have lo == hi) or a named predicate escape.
type classItem struct {
	lo, hi byte
	name   string
	pred   predicate
}

func (it classItem) match(c byte) bool {
	if it.pred != nil {
		return it.pred(c)
	}
	return c >= it.lo && c <= it.hi
}

// class parses [...] starting at the opening bracket and emits one unit.
// Returns the index of the closing bracket.
func (c *compiler) class(i int) (int, error) {
	p := c.pattern
	j := i + 1
	negated := false
	if j < len(p) && p[j] == '^' {
		negated = true
		j++
	}
	if j < len(p) && p[j] == ']' {
		if !negated {
			return 0, fmt.Errorf("empty character class at %d", i)
		}
		// [^] admits every non-null symbol.
		c.b.pushAny()
		return j, nil
	}

	var items []classItem
	for {
		if j >= len(p) {
			return 0, fmt.Errorf("unterminated character class at %d", i)
		}
		switch ch := p[j]; {
		case ch == ']':
			c.emitClass(p[i:j+1], negated, items)
			return j, nil

		case ch == '\\':
			if j+1 >= len(p) {
				return 0, fmt.Errorf("unterminated character class at %d", i)
			}
			esc := p[j+1]
			if name, pred := escapePredicate(esc); pred != nil {
				items = append(items, classItem{name: name, pred: pred})
			} else {
				items = append(items, classItem{lo: esc, hi: esc})
			}
			j += 2

		case j+2 < len(p) && p[j+1] == '-' && p[j+2] != ']':
			lo, hi := ch, p[j+2]
			if hi < lo {
				return 0, fmt.Errorf("character range out of order at %d", j)
			}
			items = append(items, classItem{lo: lo, hi: hi})
			j += 3

		default:
			items = append(items, classItem{lo: ch, hi: ch})
			j++
		}
	}
}

// emitClass lowers a parsed class onto the builder: a lone member becomes a
// symbol, range or predicate state, anything else a lambda over the member
// disjunction. A negated class never matches the null symbol.
func (c *compiler) emitClass(text string, negated bool, items []classItem) {
	if !negated && len(items) == 1 && !c.cfg.caseInsensitive {
		switch it := items[0]; {
		case it.pred != nil:
			c.b.pushLambda(it.name, it.pred)
			return
		case it.lo == it.hi:
			c.b.pushSymbol(it.lo)
			return
		default:
			c.b.pushRange(it.lo, it.hi)
			return
		}
	}

	fold := c.cfg.caseInsensitive
	pred := func(b byte) bool {
		matched := false
		for _, it := range items {
			if it.match(b) || (fold && isAlpha(b) && it.match(swapCase(b))) {
				matched = true
				break
			}
		}
		if negated {
			return b != 0 && !matched
		}
		return matched
	}
	c.b.pushLambda(text, pred)
}
