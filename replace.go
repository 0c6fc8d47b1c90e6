package regexml

import "github.com/coregx/regexml/internal/engine"

// ReplaceAll returns a copy of input with every match of re replaced by
// repl, expanded per spec.md §4.4: "$n" is replaced by the text captured
// by group n (empty if the group did not participate or does not exist);
// the first digit after "$" is always taken, and further digits are
// consumed greedily only while the numeric value stays within re's group
// count; "\$" and
// "\\" are literal; any other "$x" or "\x", a trailing "$", or a trailing
// "\" is an *InvalidReplacementStringError. Under the "q" flag, repl is
// used verbatim with no expansion.
//
// ReplaceAll refuses to run, returning ErrMatchesEmptyString, when re can
// match the empty string — the "advance past a zero-width match" rule
// below only guards against the rare case where a program that never
// matches empty overall still produces one zero-width match at a specific
// offset; a program classified as matching empty anywhere has no
// well-defined replace semantics at all.
func (re *Regex) ReplaceAll(input, repl string) (string, error) {
	if re.core.MatchesEmptyStatus != engine.ZLSNever {
		return "", ErrMatchesEmptyString
	}

	in := []rune(input)
	replRunes := []rune(repl)
	m := engine.NewMatcher(re.core, in)

	var out []rune
	last := 0
	pos := 0
	for pos <= len(in) {
		s, e, ok := re.firstMatch(m, pos)
		if !ok {
			break
		}
		out = append(out, in[last:s]...)
		expanded, err := expandReplacement(re.core.GroupCount, in, m, replRunes, re.core.Flags.Literal)
		if err != nil {
			return "", err
		}
		out = append(out, expanded...)
		last = e
		if e == s {
			// Zero-width match: advance one code point past it so the
			// scan always makes progress, per spec.md §4.4.
			if e < len(in) {
				out = append(out, in[e])
				last = e + 1
			}
			pos = e + 1
		} else {
			pos = e
		}
	}
	out = append(out, in[last:]...)
	return string(out), nil
}

// expandReplacement expands a single replacement string's "$n"/"\x"
// escapes against the groups currently captured by m, or returns repl
// verbatim when literal is set.
func expandReplacement(groupCount int, input []rune, m *engine.Matcher, repl []rune, literal bool) ([]rune, error) {
	if literal {
		return append([]rune(nil), repl...), nil
	}
	var out []rune
	i := 0
	for i < len(repl) {
		switch c := repl[i]; c {
		case '$':
			i++
			if i >= len(repl) {
				return nil, &InvalidReplacementStringError{Message: "trailing '$'"}
			}
			if !isDigit(repl[i]) {
				return nil, &InvalidReplacementStringError{Message: "'$' not followed by a digit"}
			}
			// The first digit is always consumed, even if its value alone
			// already exceeds groupCount (then the group simply captured
			// nothing); only further digits are gated by the running total
			// staying within range, so "$12" with 5 groups reads group 1
			// and leaves the literal "2" behind.
			n := int(repl[i] - '0')
			i++
			for i < len(repl) && isDigit(repl[i]) {
				cand := n*10 + int(repl[i]-'0')
				if cand > groupCount {
					break
				}
				n = cand
				i++
			}
			if s, okS := m.ParenStart(n); okS {
				if e, okE := m.ParenEnd(n); okE {
					out = append(out, input[s:e]...)
				}
			}
		case '\\':
			i++
			if i >= len(repl) {
				return nil, &InvalidReplacementStringError{Message: "trailing '\\'"}
			}
			if repl[i] != '$' && repl[i] != '\\' {
				return nil, &InvalidReplacementStringError{Message: "invalid escape '\\" + string(repl[i]) + "'"}
			}
			out = append(out, repl[i])
			i++
		default:
			out = append(out, c)
			i++
		}
	}
	return out, nil
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
