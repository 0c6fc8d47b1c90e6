// Package engine holds the three tightly-coupled parts of the regex core:
// the operation tree that represents a compiled pattern, the compiler that
// builds it from pattern code points, and the backtracking matcher that
// evaluates it against input. They share a package because the compiler's
// output is the matcher's input and the shape of the tree drives both.
package engine

import "github.com/coregx/regexml/internal/charclass"

// Empty-string matching classification bits. An operation may match the
// empty string never, only anchored at the start, only anchored at the
// end, or anywhere; the bit layout lets Sequence/Choice combine children's
// classifications with plain bitwise ops.
const (
	ZLSAtStart  uint32 = 1
	ZLSAtEnd    uint32 = 2
	ZLSAnywhere uint32 = ZLSAtStart | ZLSAtEnd | 4
	ZLSNever    uint32 = 1024
)

// Op is the uniform capability set every operation-tree variant exposes.
// Child ownership is exclusive except where the optimizer rewrites a
// Repeat into an UnambiguousRepeat reusing the same child; since nodes are
// never mutated after compilation, sharing a node is safe without copying.
type Op interface {
	// MatchLength returns the fixed length (in code points) this operation
	// always consumes when it matches, or (0, false) if the length varies.
	MatchLength() (int, bool)
	// MinMatchLength returns the minimum number of code points this
	// operation can consume on a successful match.
	MinMatchLength() int
	// MatchesEmptyString classifies whether/where this operation can match
	// a zero-length string, as one of the ZLS* constants (or 0, meaning no
	// information available, e.g. for a back-reference).
	MatchesEmptyString() uint32
	// InitialCharClass returns a conservative set of code points that may
	// begin a non-empty match of this operation, or false if none can be
	// computed cheaply.
	InitialCharClass(caseBlind bool) (charclass.Set, bool)
	// Iter returns a lazy, finite sequence of end-positions reachable from
	// position, continuing the match attempt that m is running.
	Iter(m *Matcher, position int) MatchIter
	// Display renders the operation back into (approximately) its source
	// syntax, used for diagnostics and the compilation-notes trace.
	Display() string
}

// MatchIter is a pull-based iterator of candidate end-positions. Next
// returns false once exhausted; implementations must not hold onto native
// call-stack recursion for deeply nested alternation/repetition, since
// pattern nesting is attacker- or author-controlled and arbitrary.
type MatchIter interface {
	Next() (int, bool)
}

// sliceIter replays a fixed, precomputed list of positions; used by
// operations whose full set of candidates can cheaply be computed eagerly.
type sliceIter struct {
	positions []int
	i         int
}

func (it *sliceIter) Next() (int, bool) {
	if it.i >= len(it.positions) {
		return 0, false
	}
	p := it.positions[it.i]
	it.i++
	return p, true
}

func newSliceIter(positions ...int) MatchIter {
	return &sliceIter{positions: positions}
}

// emptyIter never yields anything.
type emptyIter struct{}

func (emptyIter) Next() (int, bool) { return 0, false }

var noMatch MatchIter = emptyIter{}

// onceIter yields a single position then stops.
func onceIter(p int) MatchIter {
	return &sliceIter{positions: []int{p}}
}

// funcIter adapts a closure into a MatchIter, used by operations (Repeat,
// Sequence, Choice) whose next candidate depends on mutable state that is
// cheaper to express as a closure than as a named struct.
type funcIter struct {
	next func() (int, bool)
}

func (f *funcIter) Next() (int, bool) { return f.next() }

func newFuncIter(next func() (int, bool)) MatchIter {
	return &funcIter{next: next}
}
