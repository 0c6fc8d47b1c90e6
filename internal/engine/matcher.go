package engine

import (
	"github.com/coregx/regexml/internal/asciiscan"
	"github.com/coregx/regexml/internal/prefilter"
	"github.com/coregx/regexml/internal/ucd"
)

// Matcher holds the mutable state for a single match attempt: the matcher
// is created fresh per query and discarded once exhausted, while the
// Program it walks is immutable and freely shared across matchers.
type Matcher struct {
	program         *Program
	input           []rune
	caseIndependent bool
	pureASCII       bool
	anchoredMatch   bool

	parenCount int
	startN     []int
	endN       []int

	startBackref map[int]int
	endBackref   map[int]int

	ahoEncoding *prefilter.Encoding

	err error
}

func newMatcher(p *Program, input []rune) *Matcher {
	n := p.GroupCount + 1
	m := &Matcher{
		program:         p,
		input:           input,
		caseIndependent: p.Flags.CaseInsensitive,
		pureASCII:       asciiscan.IsASCIIRunes(input),
		startN:          make([]int, n),
		endN:            make([]int, n),
	}
	for i := range m.startN {
		m.startN[i] = -1
		m.endN[i] = -1
	}
	if p.HasBackReferences {
		m.startBackref = make(map[int]int, n)
		m.endBackref = make(map[int]int, n)
	}
	return m
}

// NewMatcher constructs a matcher over program and input for external
// callers (the four public query operations).
func NewMatcher(p *Program, input []rune) *Matcher { return newMatcher(p, input) }

func (m *Matcher) setParenStart(i, pos int) { m.growParens(i); m.startN[i] = pos }
func (m *Matcher) setParenEnd(i, pos int)   { m.growParens(i); m.endN[i] = pos }

func (m *Matcher) growParens(i int) {
	for i >= len(m.startN) {
		m.startN = append(m.startN, -1)
		m.endN = append(m.endN, -1)
	}
}

// ParenStart returns the start offset of group i, or (-1, false) if it has
// not been captured in the most recent match attempt.
func (m *Matcher) ParenStart(i int) (int, bool) {
	if i < 0 || i >= len(m.startN) || m.startN[i] < 0 {
		return -1, false
	}
	return m.startN[i], true
}

// ParenEnd returns the end offset of group i, or (-1, false) if it has not
// been captured in the most recent match attempt.
func (m *Matcher) ParenEnd(i int) (int, bool) {
	if i < 0 || i >= len(m.endN) || m.endN[i] < 0 {
		return -1, false
	}
	return m.endN[i], true
}

// ParenCount returns the highest-numbered group touched by the most recent
// match attempt, plus one (group 0 always counts).
func (m *Matcher) ParenCount() int {
	if m.parenCount == 0 {
		return 1
	}
	return m.parenCount
}

// clearCapturedGroupsBeyond clears any group boundary recorded after pos,
// so a failed alternative's stale boundaries never leak into a sibling
// branch or a later backtrack of the same sequence. Boundaries exactly at
// pos are kept: they belong to the match so far (group 0's start, a group
// that has just closed at pos, or a zero-width group at pos).
func (m *Matcher) clearCapturedGroupsBeyond(pos int) {
	for i := range m.startN {
		if m.startN[i] > pos {
			m.startN[i] = -1
		}
		if m.endN[i] > pos {
			m.endN[i] = -1
		}
	}
}

func (m *Matcher) resetCaptureState() {
	for i := range m.startN {
		m.startN[i] = -1
		m.endN[i] = -1
	}
	m.parenCount = 0
	if m.program.HasBackReferences {
		for k := range m.startBackref {
			delete(m.startBackref, k)
		}
		for k := range m.endBackref {
			delete(m.endBackref, k)
		}
	}
	m.err = nil
}

// IsMatch reports whether some position in the input starts a match.
func (m *Matcher) IsMatch() bool { return m.isMatch() }

func (m *Matcher) isMatch() bool { return m.Matches(0) }

// MatchAt attempts a match beginning at exactly position i. If anchored is
// true, the match must additionally consume the whole remaining input;
// every caller in this module passes false. On success, group 0's
// start/end are recorded and true is returned.
func (m *Matcher) MatchAt(i int, anchored bool) bool {
	m.resetCaptureState()
	m.anchoredMatch = anchored
	m.setParenStart(0, i)
	it := m.program.Root.Iter(m, i)
	end, ok := it.Next()
	if !ok {
		return false
	}
	m.setParenEnd(0, end)
	if m.parenCount == 0 {
		m.parenCount = 1
	}
	return true
}

// Matches reports whether some position >= start starts a match, updating
// capture state to reflect the leftmost such match. The search order here
// is the fast-path cascade from spec.md §4.3.
func (m *Matcher) Matches(start int) bool {
	in := m.input
	p := m.program

	if p.HasBOL {
		if !p.Flags.MultiLine {
			if start > 0 {
				return false
			}
			return m.MatchAt(0, false)
		}
		if start <= 0 && m.MatchAt(0, false) {
			return true
		}
		for i := start; i < len(in); i++ {
			if in[i] == '\n' && i+1 < len(in) && i+1 >= start {
				if m.MatchAt(i+1, false) {
					return true
				}
			}
		}
		return false
	}

	if len(in)-start < p.MinLength {
		return false
	}

	if p.Prefix != nil {
		for i := start; i+len(p.Prefix.Runes) <= len(in); i++ {
			if m.runesEqualAt(i, p.Prefix.Runes) {
				if m.MatchAt(i, false) {
					return true
				}
			}
		}
		return false
	}

	if p.AhoPrefilter != nil {
		if m.ahoEncoding == nil {
			m.ahoEncoding = prefilter.Encode(in)
		}
		for i := start; ; {
			cand, ok := p.AhoPrefilter.Find(m.ahoEncoding, i)
			if !ok {
				return false
			}
			if m.MatchAt(cand, false) {
				return true
			}
			i = cand + 1
		}
	}

	if p.HasInitialClass {
		for i := start; i < len(in); i++ {
			r := in[i]
			if p.InitialClass.Contains(r) || (m.caseIndependent && p.InitialClass.Contains(ucd.SimpleLowercase(r))) {
				if m.MatchAt(i, false) {
					return true
				}
			}
		}
		return false
	}

	for i := start; i <= len(in); i++ {
		if !m.satisfiesPreconditions(i) {
			continue
		}
		if m.MatchAt(i, false) {
			return true
		}
	}
	return false
}

func (m *Matcher) runesEqualAt(pos int, want []rune) bool {
	for i, w := range want {
		got := m.input[pos+i]
		if m.caseIndependent {
			if !m.equalCaseBlind(got, w) {
				return false
			}
		} else if got != w {
			return false
		}
	}
	return true
}

// equalCaseBlind compares two code points ignoring case, the way
// equalCaseBlind does, but skips straight to ASCII case folding when the
// whole input is known to be pure ASCII (asciiscan.IsASCIIRunes, checked
// once per matcher) and the pattern code point b is ASCII too, instead of
// consulting the Unicode simple-case tables for every comparison.
func (m *Matcher) equalCaseBlind(a, b rune) bool {
	if m.pureASCII && asciiscan.IsASCIIRune(b) {
		return a == b || asciiFold(a) == asciiFold(b)
	}
	return equalCaseBlind(a, b)
}

func asciiFold(r rune) rune {
	if r >= 'A' && r <= 'Z' {
		return r + ('a' - 'A')
	}
	return r
}

// satisfiesPreconditions is a cheap pre-filter over the program's
// preconditions with a known fixed offset from the candidate start
// position; it never rejects a position it isn't sure about.
func (m *Matcher) satisfiesPreconditions(candidate int) bool {
	for _, pc := range m.program.Preconditions {
		if pc.FixedPosition < 0 {
			continue
		}
		pos := candidate + pc.FixedPosition
		switch op := pc.Op.(type) {
		case *Atom:
			if pos+len(op.Runes) > len(m.input) || !m.runesEqualAt(pos, op.Runes) {
				return false
			}
		case *CharClass:
			if pos >= len(m.input) {
				return false
			}
			r := m.input[pos]
			if !op.Set.Contains(r) && !(m.caseIndependent && op.Set.Contains(ucd.SimpleLowercase(r))) {
				return false
			}
		}
	}
	return true
}
