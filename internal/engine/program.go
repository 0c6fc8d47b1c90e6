package engine

import (
	"fmt"

	"github.com/coregx/regexml/internal/charclass"
	"github.com/coregx/regexml/internal/prefilter"
)

// Dialect selects which of the two pattern-language grammars the compiler
// accepts: XPath (reluctant quantifiers, non-capturing groups, "^"/"$"
// anchors, back-references and the "\$" escape) or XSD (none of these).
type Dialect int

const (
	XPath Dialect = iota
	XSD
)

// Flags are the recognized per-pattern match flags from spec.md §3.
type Flags struct {
	CaseInsensitive  bool // i
	MultiLine        bool // m
	DotAll           bool // s
	IgnoreWhitespace bool // x
	Literal          bool // q
	Dialect          Dialect
}

// ParseFlags validates a flag string against the recognized XSD/XPath flag
// letters. A trailing ";"-prefixed segment carries implementation-defined
// flags (the original's debug/allow-unknown-block toggles) that are parsed
// but never rejected, since their effect is not specified; everything
// before ";" must be one of "imsxq" or flag parsing fails.
func ParseFlags(flagStr string, dialect Dialect) (Flags, error) {
	main := flagStr
	if i := indexByte(flagStr, ';'); i >= 0 {
		main = flagStr[:i]
	}
	f := Flags{Dialect: dialect}
	for _, c := range main {
		switch c {
		case 'i':
			f.CaseInsensitive = true
		case 'm':
			f.MultiLine = true
		case 's':
			f.DotAll = true
		case 'x':
			f.IgnoreWhitespace = true
		case 'q':
			f.Literal = true
		default:
			return Flags{}, invalidFlags("Unrecognized flag: " + string(c))
		}
	}
	if f.Literal && dialect == XSD {
		return Flags{}, invalidFlags("'q' flag is not allowed in XSD")
	}
	return f, nil
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// Precondition is a cheap, position-bounded test the matcher's search
// fast-path uses to prune hopeless starting positions before attempting a
// full match_at: an atom, a character class, or a fixed repeat of either,
// extracted from the top-level sequence, optionally anchored to a fixed
// offset from the match start.
type Precondition struct {
	Op            Op
	FixedPosition int  // offset from match start this must hold at, or -1 if none
	MinPosition   int  // minimum offset from match start this can hold at
}

// Program is the immutable, compiled form of a pattern plus its flags and
// static analysis results. A Program is safe for concurrent use by
// multiple matchers; a Matcher holds the mutable state for one query.
type Program struct {
	Root               Op
	Pattern            []rune
	Flags              Flags
	GroupCount         int
	MinLength          int
	FixedLength        int
	HasFixedLength     bool
	Prefix             *Atom
	InitialClass       charclass.Set
	HasInitialClass    bool
	HasBackReferences  bool
	HasBOL             bool
	Preconditions      []Precondition
	BacktrackLimit     int
	NestingTable       map[int]int // group -> immediately enclosing group (0 = none)
	MatchesEmptyStatus uint32
	CompilationNotes   []string

	// AhoPrefilter narrows candidate start positions via a multi-literal
	// automaton when the top-level pattern is a pure alternation of two or
	// more literal atoms (e.g. "cat|dog|bird"), the way meta.Engine bypasses
	// its NFA with UseAhoCorasick for large literal alternations.
	AhoPrefilter *prefilter.Filter
}

func newProgram(root Op, pattern []rune, flags Flags, groupCount int, hasBackReferences bool) *Program {
	p := &Program{
		Root:              root,
		Pattern:           pattern,
		Flags:             flags,
		GroupCount:        groupCount,
		MinLength:         root.MinMatchLength(),
		HasBackReferences: hasBackReferences,
	}
	if n, ok := root.MatchLength(); ok {
		p.FixedLength = n
		p.HasFixedLength = true
	}
	if seq, ok := root.(*Sequence); ok && len(seq.Ops) > 0 {
		switch first := seq.Ops[0].(type) {
		case *Bol:
			p.HasBOL = true
		case *Atom:
			p.Prefix = first
			p.CompilationNotes = append(p.CompilationNotes, "hoisted literal prefix: "+first.Display())
		}
		if cc, ok := seq.Ops[0].(*CharClass); ok {
			p.InitialClass = cc.Set
			p.HasInitialClass = true
			p.CompilationNotes = append(p.CompilationNotes, "hoisted initial character class from leading CharClass")
		}
		if choice, ok := seq.Ops[0].(*Choice); ok && !flags.CaseInsensitive {
			if literals, ok := literalBranches(choice); ok {
				if filter, ok := prefilter.Build(literals); ok {
					p.AhoPrefilter = filter
					p.CompilationNotes = append(p.CompilationNotes, fmt.Sprintf("built Aho-Corasick prefilter over %d literal branches", len(literals)))
				}
			}
		}
	}
	p.NestingTable = buildNestingTable(pattern, flags)
	p.addPrecondition(root, -1, 0)
	if len(p.Preconditions) > 0 {
		p.CompilationNotes = append(p.CompilationNotes, fmt.Sprintf("extracted %d precondition(s)", len(p.Preconditions)))
	}
	p.MatchesEmptyStatus = computeMatchesEmptyStatus(p)
	return p
}

// addPrecondition walks the tree the way spec.md §4.2 describes: atoms and
// character classes (and min>=1 fixed repeats of them) become
// preconditions directly; captures and sequences recurse into their
// children, sequences threading a running fixed-position/min-position
// estimate forward as they go.
func (p *Program) addPrecondition(op Op, fixedPosition int, minPosition int) {
	switch v := op.(type) {
	case *Atom, *CharClass:
		p.Preconditions = append(p.Preconditions, Precondition{op, fixedPosition, minPosition})
	case *Repeat:
		if v.Min >= 1 {
			p.addRepeatPrecondition(v.Child, v.Min, fixedPosition, minPosition)
		}
	case *GreedyFixed:
		if v.Min >= 1 {
			p.addRepeatPrecondition(v.Child, v.Min, fixedPosition, minPosition)
		}
	case *ReluctantFixed:
		if v.Min >= 1 {
			p.addRepeatPrecondition(v.Child, v.Min, fixedPosition, minPosition)
		}
	case *UnambiguousRepeat:
		if v.Min >= 1 {
			p.addRepeatPrecondition(v.Child, v.Min, fixedPosition, minPosition)
		}
	case *Capture:
		p.addPrecondition(v.Child, fixedPosition, minPosition)
	case *Sequence:
		fp, mp := fixedPosition, minPosition
		for _, o := range v.Ops {
			if _, isBol := o.(*Bol); isBol {
				fp = 0
			}
			p.addPrecondition(o, fp, mp)
			if fp >= 0 {
				if n, ok := o.MatchLength(); ok {
					fp += n
				} else {
					fp = -1
				}
			}
			mp += o.MinMatchLength()
		}
	}
}

func (p *Program) addRepeatPrecondition(child Op, min int, fixedPosition, minPosition int) {
	switch child.(type) {
	case *Atom, *CharClass:
		if min == 1 {
			p.Preconditions = append(p.Preconditions, Precondition{child, fixedPosition, minPosition})
			return
		}
		rep := &GreedyFixed{Child: child, Min: min, Max: min, Len: mustFixedLen(child)}
		p.Preconditions = append(p.Preconditions, Precondition{rep, fixedPosition, minPosition})
	default:
		p.addPrecondition(child, fixedPosition, minPosition)
	}
}

// literalBranches reports whether every branch of choice is a plain Atom,
// returning their rune sequences if so.
func literalBranches(choice *Choice) ([][]rune, bool) {
	if len(choice.Branches) < 2 {
		return nil, false
	}
	out := make([][]rune, 0, len(choice.Branches))
	for _, b := range choice.Branches {
		atom, ok := b.(*Atom)
		if !ok {
			return nil, false
		}
		out = append(out, atom.Runes)
	}
	return out, true
}

func mustFixedLen(op Op) int {
	n, _ := op.MatchLength()
	return n
}

// computeMatchesEmptyStatus runs the compiled program against the empty
// string, per spec.md §7: replace_all/tokenize consult this rather than
// only the static MatchesEmptyString() classification, since the
// classification can be conservative in ways that don't matter for this
// one concrete check.
func computeMatchesEmptyStatus(p *Program) uint32 {
	m := newMatcher(p, nil)
	if m.isMatch() {
		return ZLSAnywhere
	}
	return ZLSNever
}

// buildNestingTable performs the single left-to-right scan over the
// original pattern text spec.md §4.4 describes, tracking "\"-escapes,
// "[...]" class depth, and "(?:" non-capturing groups, to record each
// capturing group's immediately enclosing capturing group number (0 means
// top level). Used only by Analyze to order zero-width group boundaries
// that share an offset.
func buildNestingTable(pattern []rune, flags Flags) map[int]int {
	table := map[int]int{}
	stack := []int{0}
	group := 0
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c == '\\' {
			i++
			continue
		}
		if inClass {
			if c == ']' {
				inClass = false
			}
			continue
		}
		switch c {
		case '[':
			inClass = true
		case '(':
			if i+2 < len(pattern) && pattern[i+1] == '?' && pattern[i+2] == ':' && flags.Dialect == XPath {
				i += 2
				continue
			}
			group++
			table[group] = stack[len(stack)-1]
			stack = append(stack, group)
		case ')':
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	return table
}
