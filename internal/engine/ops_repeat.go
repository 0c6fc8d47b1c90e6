package engine

import "github.com/coregx/regexml/internal/charclass"

const unbounded = int(^uint(0) >> 1)

// Repeat is general repetition over a variable-length child, used when the
// fixed-length and unambiguous-repeat specializations below don't apply.
type Repeat struct {
	Child  Op
	Min    int
	Max    int
	Greedy bool
}

func (r *Repeat) MatchLength() (int, bool) {
	if r.Min != r.Max {
		return 0, false
	}
	n, ok := r.Child.MatchLength()
	if !ok {
		return 0, false
	}
	return r.Min * n, true
}

func (r *Repeat) MinMatchLength() int { return r.Min * r.Child.MinMatchLength() }

func (r *Repeat) MatchesEmptyString() uint32 {
	if r.Min == 0 {
		return ZLSAnywhere
	}
	return r.Child.MatchesEmptyString()
}

func (r *Repeat) InitialCharClass(caseBlind bool) (charclass.Set, bool) {
	return r.Child.InitialCharClass(caseBlind)
}

// Iter drives a greedy or reluctant repetition by maintaining a stack of
// child iterators (one per occurrence consumed so far), extending it up to
// Max occurrences before yielding the longest match first (greedy) or
// extending it lazily one occurrence at a time (reluctant).
func (r *Repeat) Iter(m *Matcher, position int) MatchIter {
	if r.Greedy {
		return r.greedyIter(m, position)
	}
	return r.reluctantIter(m, position)
}

func (r *Repeat) greedyIter(m *Matcher, position int) MatchIter {
	bound := r.Max
	if remaining := len(m.input) - position + 1; bound > remaining {
		bound = remaining
	}
	if bound < 0 {
		bound = 0
	}

	var iters []MatchIter
	var positions []int
	base := 0
	if r.Min == 0 {
		base = 1
		iters = append(iters, onceIter(position))
		positions = append(positions, position)
	}
	p := position
	for i := 0; i < bound; i++ {
		it := r.Child.Iter(m, p)
		next, ok := it.Next()
		if !ok {
			if len(iters) == 0 {
				return noMatch
			}
			break
		}
		iters = append(iters, it)
		positions = append(positions, next)
		p = next
	}
	primed := true
	guard := newZeroLengthGuard()
	return newFuncIter(func() (int, bool) {
		for {
			if primed {
				primed = false
			} else if len(iters) > 0 {
				top := iters[len(iters)-1]
				next, ok := top.Next()
				if ok {
					positions[len(positions)-1] = next
					cur := next
					for len(iters)-base < bound {
						m.clearCapturedGroupsBeyond(cur)
						it := r.Child.Iter(m, cur)
						n, ok2 := it.Next()
						if !ok2 {
							break
						}
						iters = append(iters, it)
						positions = append(positions, n)
						cur = n
					}
				} else {
					iters = iters[:len(iters)-1]
					positions = positions[:len(positions)-1]
				}
			}
			if len(iters) < r.Min {
				if len(iters) == 0 {
					return 0, false
				}
				continue
			}
			if len(iters) == 0 {
				return 0, false
			}
			p := positions[len(positions)-1]
			if guard.reject(p) {
				return 0, false
			}
			return p, true
		}
	})
}

func (r *Repeat) reluctantIter(m *Matcher, position int) MatchIter {
	count := 0
	pos := position
	started := false
	return newFuncIter(func() (int, bool) {
		if !started {
			started = true
			for count < r.Min {
				it := r.Child.Iter(m, pos)
				next, ok := it.Next()
				if !ok {
					return 0, false
				}
				count++
				pos = next
			}
			return pos, true
		}
		if count < r.Max {
			m.clearCapturedGroupsBeyond(position)
			it := r.Child.Iter(m, pos)
			next, ok := it.Next()
			if ok {
				pos = next
				count++
				return pos, true
			}
		}
		return 0, false
	})
}

func (r *Repeat) Display() string { return r.Child.Display() + "{rep}" }

// zeroLengthGuard is the ForceProgressIterator from the original design: it
// aborts a repetition after observing more than three consecutive
// zero-length matches at the same position, guarding against patterns like
// (a?|b?|c?|d)* that could otherwise expand forever without consuming input.
type zeroLengthGuard struct {
	count   int
	lastPos int
	primed  bool
}

func newZeroLengthGuard() *zeroLengthGuard { return &zeroLengthGuard{} }

func (g *zeroLengthGuard) reject(pos int) bool {
	if g.primed && pos == g.lastPos {
		g.count++
	} else {
		g.count = 0
		g.lastPos = pos
		g.primed = true
	}
	return g.count > 3
}

// GreedyFixed specializes Repeat when Child has a known fixed match
// length: occurrences can be stepped by that length directly instead of
// re-deriving it from a child iterator each time, and greedy backtracking
// is a simple decreasing walk over candidate end-positions.
type GreedyFixed struct {
	Child Op
	Min   int
	Max   int
	Len   int
}

func (g *GreedyFixed) MatchLength() (int, bool) {
	if g.Min == g.Max {
		return g.Min * g.Len, true
	}
	return 0, false
}

func (g *GreedyFixed) MinMatchLength() int { return g.Min * g.Child.MinMatchLength() }

func (g *GreedyFixed) MatchesEmptyString() uint32 {
	if g.Min == 0 {
		return ZLSAnywhere
	}
	return g.Child.MatchesEmptyString()
}

func (g *GreedyFixed) InitialCharClass(caseBlind bool) (charclass.Set, bool) {
	return g.Child.InitialCharClass(caseBlind)
}

func (g *GreedyFixed) Iter(m *Matcher, position int) MatchIter {
	guard := len(m.input)
	if g.Max != unbounded {
		if alt := position + g.Len*g.Max; alt < guard {
			guard = alt
		}
	}
	if position >= guard && g.Min > 0 {
		return noMatch
	}
	p := position
	matches := 0
	for p <= guard {
		it := g.Child.Iter(m, p)
		_, ok := it.Next()
		if !ok {
			break
		}
		matches++
		p += g.Len
		if matches == g.Max {
			break
		}
	}
	if matches < g.Min {
		return noMatch
	}
	limit := position + g.Len*g.Min
	cur := p
	return newFuncIter(func() (int, bool) {
		if cur < limit {
			return 0, false
		}
		n := cur
		cur -= g.Len
		return n, true
	})
}

func (g *GreedyFixed) Display() string { return g.Child.Display() + "{greedy-fixed}" }

// ReluctantFixed is GreedyFixed's mirror image: it consumes the minimum
// number of occurrences first, then extends one at a time up to Max,
// yielding shortest-match-first.
type ReluctantFixed struct {
	Child Op
	Min   int
	Max   int
	Len   int
}

func (r *ReluctantFixed) MatchLength() (int, bool) {
	if r.Min == r.Max {
		return r.Min * r.Len, true
	}
	return 0, false
}

func (r *ReluctantFixed) MinMatchLength() int { return r.Min * r.Child.MinMatchLength() }

func (r *ReluctantFixed) MatchesEmptyString() uint32 {
	if r.Min == 0 {
		return ZLSAnywhere
	}
	return r.Child.MatchesEmptyString()
}

func (r *ReluctantFixed) InitialCharClass(caseBlind bool) (charclass.Set, bool) {
	return r.Child.InitialCharClass(caseBlind)
}

func (r *ReluctantFixed) Iter(m *Matcher, position int) MatchIter {
	count := 0
	pos := position
	started := false
	return newFuncIter(func() (int, bool) {
		if !started {
			started = true
			for count < r.Min {
				it := r.Child.Iter(m, pos)
				next, ok := it.Next()
				if !ok {
					return 0, false
				}
				count++
				pos = next
			}
			return pos, true
		}
		if count < r.Max {
			m.clearCapturedGroupsBeyond(position)
			it := r.Child.Iter(m, pos)
			next, ok := it.Next()
			if ok {
				pos = next
				count++
				return pos, true
			}
		}
		return 0, false
	})
}

func (r *ReluctantFixed) Display() string { return r.Child.Display() + "{reluctant-fixed}" }

// UnambiguousRepeat is the optimizer's rewrite of a Repeat whose child
// cannot ambiguously match what the following operation would also match:
// it is evaluated linearly, greedily consuming up to Max occurrences with
// no backtracking, since backtracking could never change the outcome.
type UnambiguousRepeat struct {
	Child Op
	Min   int
	Max   int
}

func (u *UnambiguousRepeat) MatchLength() (int, bool) {
	if u.Min != u.Max {
		return 0, false
	}
	n, ok := u.Child.MatchLength()
	if !ok {
		return 0, false
	}
	return u.Min * n, true
}

func (u *UnambiguousRepeat) MinMatchLength() int { return u.Min * u.Child.MinMatchLength() }

func (u *UnambiguousRepeat) MatchesEmptyString() uint32 {
	if u.Min == 0 {
		return ZLSAnywhere
	}
	return u.Child.MatchesEmptyString()
}

func (u *UnambiguousRepeat) InitialCharClass(caseBlind bool) (charclass.Set, bool) {
	return u.Child.InitialCharClass(caseBlind)
}

func (u *UnambiguousRepeat) Iter(m *Matcher, position int) MatchIter {
	p := position
	count := 0
	for u.Max == unbounded || count < u.Max {
		it := u.Child.Iter(m, p)
		next, ok := it.Next()
		if !ok || next == p {
			break
		}
		p = next
		count++
	}
	if count < u.Min {
		return noMatch
	}
	return onceIter(p)
}

func (u *UnambiguousRepeat) Display() string { return u.Child.Display() + "{unambiguous-rep}" }
