package engine

import (
	"strconv"

	"github.com/coregx/regexml/internal/charclass"
	"github.com/coregx/regexml/internal/ucd"
)

// Atom matches a fixed, non-empty sequence of code points.
type Atom struct {
	Runes []rune
}

func (a *Atom) MatchLength() (int, bool) { return len(a.Runes), true }
func (a *Atom) MinMatchLength() int      { return len(a.Runes) }

func (a *Atom) MatchesEmptyString() uint32 {
	if len(a.Runes) == 0 {
		return ZLSAnywhere
	}
	return ZLSNever
}

func (a *Atom) InitialCharClass(caseBlind bool) (charclass.Set, bool) {
	if len(a.Runes) == 0 {
		return charclass.Set{}, false
	}
	if !caseBlind {
		return charclass.FromRune(a.Runes[0]), true
	}
	return ucd.CaseClosure(a.Runes[0]), true
}

func (a *Atom) Iter(m *Matcher, position int) MatchIter {
	in := m.input
	if position+len(a.Runes) > len(in) {
		return noMatch
	}
	if m.caseIndependent {
		for i, want := range a.Runes {
			if !equalCaseBlind(in[position+i], want) {
				return noMatch
			}
		}
	} else {
		for i, want := range a.Runes {
			if in[position+i] != want {
				return noMatch
			}
		}
	}
	return onceIter(position + len(a.Runes))
}

func (a *Atom) Display() string { return string(a.Runes) }

// CharClass matches a single code point against a character-class set.
type CharClass struct {
	Set charclass.Set
}

func (c *CharClass) MatchLength() (int, bool)    { return 1, true }
func (c *CharClass) MinMatchLength() int         { return 1 }
func (c *CharClass) MatchesEmptyString() uint32  { return ZLSNever }
func (c *CharClass) InitialCharClass(caseBlind bool) (charclass.Set, bool) {
	if !caseBlind {
		return c.Set, true
	}
	out := c.Set
	for _, r := range c.Set.Ranges() {
		for cp := r.Lo; cp <= r.Hi; cp++ {
			out = charclass.Union(out, ucd.CaseClosure(cp))
			if cp == r.Hi {
				break
			}
		}
	}
	return out, true
}

func (c *CharClass) Iter(m *Matcher, position int) MatchIter {
	if position >= len(m.input) {
		return noMatch
	}
	r := m.input[position]
	if c.Set.Contains(r) || (m.caseIndependent && c.Set.Contains(ucd.SimpleLowercase(r))) {
		return onceIter(position + 1)
	}
	return noMatch
}

func (c *CharClass) Display() string { return "[...]" }

// Bol is the zero-width start-of-line/start-of-input anchor "^".
type Bol struct{}

func (Bol) MatchLength() (int, bool)   { return 0, true }
func (Bol) MinMatchLength() int        { return 0 }
func (Bol) MatchesEmptyString() uint32 { return ZLSAtStart }
func (Bol) InitialCharClass(bool) (charclass.Set, bool) { return charclass.Set{}, false }

func (Bol) Iter(m *Matcher, position int) MatchIter {
	if position == 0 {
		return onceIter(position)
	}
	if m.program.Flags.MultiLine && position < len(m.input) && isNewline(m.input[position-1]) {
		return onceIter(position)
	}
	return noMatch
}

func (Bol) Display() string { return "^" }

// Eol is the zero-width end-of-line/end-of-input anchor "$".
type Eol struct{}

func (Eol) MatchLength() (int, bool)   { return 0, true }
func (Eol) MinMatchLength() int        { return 0 }
func (Eol) MatchesEmptyString() uint32 { return ZLSAtEnd }
func (Eol) InitialCharClass(bool) (charclass.Set, bool) { return charclass.Set{}, false }

func (Eol) Iter(m *Matcher, position int) MatchIter {
	in := m.input
	if m.program.Flags.MultiLine {
		if len(in) == 0 || position >= len(in) || isNewline(in[position]) {
			return onceIter(position)
		}
		return noMatch
	}
	if len(in) == 0 || position >= len(in) {
		return onceIter(position)
	}
	return noMatch
}

func (Eol) Display() string { return "$" }

func isNewline(r rune) bool { return r == '\n' }

// Nothing matches the empty string unconditionally; the optimizer
// substitutes it for quantified zero-width children and empty branches.
type Nothing struct{}

func (Nothing) MatchLength() (int, bool)   { return 0, true }
func (Nothing) MinMatchLength() int        { return 0 }
func (Nothing) MatchesEmptyString() uint32 { return ZLSAnywhere }
func (Nothing) InitialCharClass(bool) (charclass.Set, bool) { return charclass.Set{}, false }
func (Nothing) Iter(m *Matcher, position int) MatchIter     { return onceIter(position) }
func (Nothing) Display() string                             { return "" }

// EndProgram is the terminal node of a top-level sequence. For an anchored
// match attempt it requires position == len(input); otherwise it always
// succeeds and records group 0's end.
type EndProgram struct{}

func (EndProgram) MatchLength() (int, bool)   { return 0, true }
func (EndProgram) MinMatchLength() int        { return 0 }
func (EndProgram) MatchesEmptyString() uint32 { return ZLSAnywhere }
func (EndProgram) InitialCharClass(bool) (charclass.Set, bool) { return charclass.Set{}, false }

func (EndProgram) Iter(m *Matcher, position int) MatchIter {
	if m.anchoredMatch {
		if position >= len(m.input) {
			return onceIter(position)
		}
		return noMatch
	}
	m.setParenEnd(0, position)
	return onceIter(position)
}

func (EndProgram) Display() string { return "\\Z" }

// BackReference matches the exact (or case-folded) code points previously
// captured by group N, failing if group N has not yet closed.
type BackReference struct {
	Group int
}

func (b *BackReference) MatchLength() (int, bool)   { return 0, false }
func (b *BackReference) MinMatchLength() int        { return 0 }
func (b *BackReference) MatchesEmptyString() uint32 { return 0 }
func (b *BackReference) InitialCharClass(bool) (charclass.Set, bool) { return charclass.Set{}, false }

func (b *BackReference) Iter(m *Matcher, position int) MatchIter {
	s, okS := m.startBackref[b.Group]
	e, okE := m.endBackref[b.Group]
	if !okS || !okE {
		return noMatch
	}
	if s == e {
		return onceIter(position)
	}
	l := e - s
	if position+l > len(m.input) {
		return noMatch
	}
	if m.caseIndependent {
		for i := 0; i < l; i++ {
			if !equalCaseBlind(m.input[position+i], m.input[s+i]) {
				return noMatch
			}
		}
	} else {
		for i := 0; i < l; i++ {
			if m.input[position+i] != m.input[s+i] {
				return noMatch
			}
		}
	}
	return onceIter(position + l)
}

func (b *BackReference) Display() string {
	return "\\" + strconv.Itoa(b.Group)
}

func equalCaseBlind(a, b rune) bool {
	return a == b || ucd.SimpleLowercase(a) == ucd.SimpleLowercase(b)
}
