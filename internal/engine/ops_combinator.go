package engine

import "github.com/coregx/regexml/internal/charclass"

// Sequence is concatenation: each operation consumes where the previous
// one left off. Implemented as an explicit stack of child iterators rather
// than native recursion, since pattern nesting is attacker/author
// controlled and can be arbitrarily deep.
type Sequence struct {
	Ops []Op
}

func (s *Sequence) MatchLength() (int, bool) {
	total := 0
	for _, op := range s.Ops {
		n, ok := op.MatchLength()
		if !ok {
			return 0, false
		}
		total += n
	}
	return total, true
}

func (s *Sequence) MinMatchLength() int {
	total := 0
	for _, op := range s.Ops {
		total += op.MinMatchLength()
	}
	return total
}

func (s *Sequence) MatchesEmptyString() uint32 {
	anywhere := true
	for _, op := range s.Ops {
		m := op.MatchesEmptyString()
		if m == ZLSNever {
			return ZLSNever
		}
		if m != ZLSAnywhere {
			anywhere = false
			break
		}
	}
	if anywhere {
		return ZLSAnywhere
	}
	bol := true
	for _, op := range s.Ops {
		if op.MatchesEmptyString()&ZLSAtStart == 0 {
			bol = false
			break
		}
	}
	if bol {
		return ZLSAtStart
	}
	eol := true
	for _, op := range s.Ops {
		if op.MatchesEmptyString()&ZLSAtEnd == 0 {
			eol = false
			break
		}
	}
	if eol {
		return ZLSAtEnd
	}
	return 0
}

func (s *Sequence) InitialCharClass(caseBlind bool) (charclass.Set, bool) {
	if len(s.Ops) == 0 {
		return charclass.Set{}, false
	}
	return s.Ops[0].InitialCharClass(caseBlind)
}

func (s *Sequence) Iter(m *Matcher, position int) MatchIter {
	if len(s.Ops) == 0 {
		return onceIter(position)
	}
	var containsCapture bool
	for _, op := range s.Ops {
		if containsCaptureOp(op) {
			containsCapture = true
			break
		}
	}
	var savedStart, savedEnd []int
	if containsCapture {
		savedStart = append([]int(nil), m.startN...)
		savedEnd = append([]int(nil), m.endN...)
	}

	iters := make([]MatchIter, 1, len(s.Ops))
	iters[0] = s.Ops[0].Iter(m, position)
	counter := 0
	restored := false

	return newFuncIter(func() (int, bool) {
		for len(iters) > 0 {
			for {
				top := iters[len(iters)-1]
				p, ok := top.Next()
				if !ok {
					break
				}
				m.clearCapturedGroupsBeyond(p)
				if len(iters) >= len(s.Ops) {
					return p, true
				}
				iters = append(iters, s.Ops[len(iters)].Iter(m, p))
			}
			iters = iters[:len(iters)-1]
			if m.program.BacktrackLimit > 0 {
				counter++
				if counter > m.program.BacktrackLimit {
					m.err = ErrBacktrackLimit
					return 0, false
				}
			}
		}
		if containsCapture && !restored {
			restored = true
			copy(m.startN, savedStart)
			copy(m.endN, savedEnd)
		}
		return 0, false
	})
}

func (s *Sequence) Display() string {
	out := ""
	for _, op := range s.Ops {
		out += op.Display()
	}
	return out
}

func containsCaptureOp(op Op) bool {
	switch v := op.(type) {
	case *Capture:
		return true
	case *Sequence:
		for _, c := range v.Ops {
			if containsCaptureOp(c) {
				return true
			}
		}
	case *Choice:
		for _, c := range v.Branches {
			if containsCaptureOp(c) {
				return true
			}
		}
	case *Repeat:
		return containsCaptureOp(v.Child)
	case *UnambiguousRepeat:
		return containsCaptureOp(v.Child)
	case *GreedyFixed:
		return containsCaptureOp(v.Child)
	case *ReluctantFixed:
		return containsCaptureOp(v.Child)
	}
	return false
}

// Choice is alternation: branches are tried left-to-right, each one
// getting a fresh clear of any capture state recorded beyond position by
// a previously tried (and abandoned) branch.
type Choice struct {
	Branches []Op
}

func (c *Choice) MatchLength() (int, bool) {
	if len(c.Branches) == 0 {
		return 0, true
	}
	fixed, ok := c.Branches[0].MatchLength()
	if !ok {
		return 0, false
	}
	for _, b := range c.Branches[1:] {
		n, ok2 := b.MatchLength()
		if !ok2 || n != fixed {
			return 0, false
		}
	}
	return fixed, true
}

func (c *Choice) MinMatchLength() int {
	if len(c.Branches) == 0 {
		return 0
	}
	min := c.Branches[0].MinMatchLength()
	for _, b := range c.Branches[1:] {
		if n := b.MinMatchLength(); n < min {
			min = n
		}
	}
	return min
}

func (c *Choice) MatchesEmptyString() uint32 {
	var acc uint32
	for _, b := range c.Branches {
		acc |= b.MatchesEmptyString()
	}
	return acc
}

func (c *Choice) InitialCharClass(caseBlind bool) (charclass.Set, bool) {
	out := charclass.Empty()
	for _, b := range c.Branches {
		s, ok := b.InitialCharClass(caseBlind)
		if !ok {
			return charclass.Set{}, false
		}
		out = charclass.Union(out, s)
	}
	return out, true
}

func (c *Choice) Iter(m *Matcher, position int) MatchIter {
	branchIdx := 0
	var cur MatchIter
	return newFuncIter(func() (int, bool) {
		for {
			if cur != nil {
				if p, ok := cur.Next(); ok {
					return p, true
				}
			}
			if branchIdx >= len(c.Branches) {
				return 0, false
			}
			m.clearCapturedGroupsBeyond(position)
			cur = c.Branches[branchIdx].Iter(m, position)
			branchIdx++
		}
	})
}

func (c *Choice) Display() string {
	out := "(?:"
	for _, b := range c.Branches {
		out += b.Display() + "|"
	}
	return out + ")"
}

// Capture records the start and end positions of its child's match under a
// numbered group, updating the matcher's back-reference arrays when the
// program uses back-references.
type Capture struct {
	Group int
	Child Op
}

func (c *Capture) MatchLength() (int, bool)   { return c.Child.MatchLength() }
func (c *Capture) MinMatchLength() int        { return c.Child.MinMatchLength() }
func (c *Capture) MatchesEmptyString() uint32 { return c.Child.MatchesEmptyString() }
func (c *Capture) InitialCharClass(caseBlind bool) (charclass.Set, bool) {
	return c.Child.InitialCharClass(caseBlind)
}

func (c *Capture) Iter(m *Matcher, position int) MatchIter {
	if m.program.HasBackReferences {
		m.startBackref[c.Group] = position
		delete(m.endBackref, c.Group)
	}
	basis := c.Child.Iter(m, position)
	return newFuncIter(func() (int, bool) {
		next, ok := basis.Next()
		if !ok {
			return 0, false
		}
		if c.Group >= m.parenCount {
			m.parenCount = c.Group + 1
		}
		m.setParenStart(c.Group, position)
		m.setParenEnd(c.Group, next)
		if m.program.HasBackReferences {
			m.startBackref[c.Group] = position
			m.endBackref[c.Group] = next
		}
		return next, true
	})
}

func (c *Capture) Display() string { return "(" + c.Child.Display() + ")" }
