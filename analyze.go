package regexml

import (
	"sort"
	"strings"

	"github.com/coregx/regexml/internal/engine"
)

// Node is one leaf or interior node of a match's capture-group structure:
// either a plain run of text, or a Group wrapping the children captured
// underneath one numbered capturing group.
type Node interface {
	// Flatten returns the text this node (and, for a Group, everything
	// nested beneath it) covers, in left-to-right order.
	Flatten() string
}

// TextNode is a leaf run of un-grouped (or grouped-but-uninterrupted)
// character data.
type TextNode string

// Flatten returns t's text.
func (t TextNode) Flatten() string { return string(t) }

// GroupNode is an interior node: the text matched by one capturing group,
// broken into its own children wherever a nested capturing group began or
// ended.
type GroupNode struct {
	Group    int
	Children []Node
}

// Flatten concatenates g's children's flattened text, in order.
func (g *GroupNode) Flatten() string {
	var b strings.Builder
	for _, c := range g.Children {
		b.WriteString(c.Flatten())
	}
	return b.String()
}

// Entry is one element of the sequence Analyze yields: either a
// non-matching substring (Match is nil, Text holds the substring) or a
// match (Text is empty, Match holds group 0's nested structure).
type Entry struct {
	Text  string
	Match *GroupNode
}

// IsMatch reports whether e represents a match rather than a non-matching
// span.
func (e *Entry) IsMatch() bool { return e.Match != nil }

// Flatten returns e's underlying text: Text for a non-match, or the
// flattened match tree for a match.
func (e *Entry) Flatten() string {
	if e.Match != nil {
		return e.Match.Flatten()
	}
	return e.Text
}

// Analyze returns a lazy sequence of Entry values describing input as an
// ordered run of matching and non-matching spans, each match carrying its
// capture-group nesting structure (spec.md §4.4). Unlike ReplaceAll and
// Tokenize, Analyze does not refuse empty-matching programs: a zero-width
// match simply produces a Match entry that flattens to "".
func (re *Regex) Analyze(input string) (*AnalyzeIterator, error) {
	in := []rune(input)
	return &AnalyzeIterator{
		re:    re,
		m:     engine.NewMatcher(re.core, in),
		input: in,
		done:  len(in) == 0,
	}, nil
}

// Next returns the next Entry and true, or (nil, false) once input has
// been fully consumed.
func (it *AnalyzeIterator) Next() (*Entry, bool) {
	if len(it.pending) > 0 {
		e := it.pending[0]
		it.pending = it.pending[1:]
		return e, true
	}
	if it.done {
		return nil, false
	}

	s, e, ok := it.re.firstMatch(it.m, it.pos)
	if !ok {
		it.done = true
		if it.pos >= len(it.input) {
			return nil, false
		}
		text := string(it.input[it.pos:])
		it.pos = len(it.input)
		return &Entry{Text: text}, true
	}

	tree := buildMatchTree(it.input, s, e, it.m, it.re.core.NestingTable, it.re.core.GroupCount)
	matchEntry := &Entry{Match: tree}

	var leading *Entry
	if s > it.pos {
		leading = &Entry{Text: string(it.input[it.pos:s])}
	}

	it.pos = e
	if e == s {
		// A zero-width match never advances pos on its own; consume one
		// code point as a guaranteed-non-match span so the next search
		// makes progress instead of re-finding the same empty match.
		if e < len(it.input) {
			it.pending = append(it.pending, &Entry{Text: string(it.input[e : e+1])})
			it.pos = e + 1
		} else {
			it.done = true
		}
	}

	if leading != nil {
		it.pending = append([]*Entry{matchEntry}, it.pending...)
		return leading, true
	}
	return matchEntry, true
}

// groupSpan is one capturing group's extent, relative to the enclosing
// match's start.
type groupSpan struct {
	group      int
	start, end int
}

// action is one boundary event at a given offset within the match: a
// group frame being opened (start) or closed (end).
type action struct {
	group int
	start bool
}

// buildMatchTree implements spec.md §4.4's nesting algorithm: collect
// every participating group's (start, end) offsets relative to the match,
// order the start/end actions at each offset (non-zero-width groups by
// nesting depth, zero-width groups inserted via the nesting table), then
// walk the match text draining actions into a stack of group frames.
func buildMatchTree(input []rune, matchStart, matchEnd int, m *engine.Matcher, nestingTable map[int]int, groupCount int) *GroupNode {
	matchLen := matchEnd - matchStart

	var spans []groupSpan
	for g := 1; g <= groupCount; g++ {
		s, okS := m.ParenStart(g)
		e, okE := m.ParenEnd(g)
		if !okS || !okE {
			continue
		}
		spans = append(spans, groupSpan{group: g, start: s - matchStart, end: e - matchStart})
	}

	depth := make(map[int]int, len(spans)+1)
	depth[0] = 0
	var depthOf func(g int) int
	depthOf = func(g int) int {
		if d, ok := depth[g]; ok {
			return d
		}
		d := 1 + depthOf(nestingTable[g])
		depth[g] = d
		return d
	}

	actionsAt := make(map[int][]action, len(spans))

	var nonZero, zero []groupSpan
	for _, sp := range spans {
		if sp.start == sp.end {
			zero = append(zero, sp)
		} else {
			nonZero = append(nonZero, sp)
		}
	}

	endsByOffset := map[int][]groupSpan{}
	startsByOffset := map[int][]groupSpan{}
	for _, sp := range nonZero {
		endsByOffset[sp.end] = append(endsByOffset[sp.end], sp)
		startsByOffset[sp.start] = append(startsByOffset[sp.start], sp)
	}
	for off, ends := range endsByOffset {
		sort.Slice(ends, func(i, j int) bool {
			di, dj := depthOf(ends[i].group), depthOf(ends[j].group)
			if di != dj {
				return di > dj // deepest (most nested) closes first
			}
			return ends[i].group > ends[j].group
		})
		for _, sp := range ends {
			actionsAt[off] = append(actionsAt[off], action{group: sp.group, start: false})
		}
	}
	for off, starts := range startsByOffset {
		sort.Slice(starts, func(i, j int) bool {
			di, dj := depthOf(starts[i].group), depthOf(starts[j].group)
			if di != dj {
				return di < dj // shallowest (outermost) opens first
			}
			return starts[i].group < starts[j].group
		})
		actionsAt[off] = append(actionsAt[off], actionsFor(starts)...)
	}

	// Zero-width groups carry no (start, end) offsets of their own to sort
	// by depth, so their placement within an offset's action list must be
	// decided from the nesting table directly: insert the pair right
	// before the parent's own End action, so the pair lands while the
	// parent frame is still on top of the stack. If the parent does not
	// close at this offset (most commonly because it is the implicit
	// group 0), insert before the first Start action instead, so the pair
	// attaches to whichever frame is on top once this offset's closures
	// are done but before any sibling frame opens. Ascending group order
	// means an outer zero-width group is placed before an inner one
	// nested inside it, so the inner group's own parent-End lookup can
	// find the outer pair's End action already in place.
	sort.Slice(zero, func(i, j int) bool { return zero[i].group < zero[j].group })
	for _, sp := range zero {
		pair := []action{{group: sp.group, start: true}, {group: sp.group, start: false}}
		parent := nestingTable[sp.group]
		list := actionsAt[sp.start]
		idx := indexOfEndAction(list, parent)
		if idx < 0 {
			idx = indexOfFirstStart(list)
		}
		merged := make([]action, 0, len(list)+2)
		merged = append(merged, list[:idx]...)
		merged = append(merged, pair...)
		merged = append(merged, list[idx:]...)
		actionsAt[sp.start] = merged
	}

	type frame struct {
		group    int
		children []Node
	}
	stack := []*frame{{group: 0}}
	var text []rune
	flush := func() {
		if len(text) == 0 {
			return
		}
		top := stack[len(stack)-1]
		top.children = append(top.children, TextNode(string(text)))
		text = nil
	}

	for o := 0; o <= matchLen; o++ {
		for _, a := range actionsAt[o] {
			flush()
			if a.start {
				stack = append(stack, &frame{group: a.group})
			} else {
				popped := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				top := stack[len(stack)-1]
				top.children = append(top.children, &GroupNode{Group: popped.group, Children: popped.children})
			}
		}
		if o < matchLen {
			text = append(text, input[matchStart+o])
		}
	}
	flush()

	root := stack[0]
	return &GroupNode{Group: 0, Children: root.children}
}

func actionsFor(spans []groupSpan) []action {
	out := make([]action, len(spans))
	for i, sp := range spans {
		out[i] = action{group: sp.group, start: true}
	}
	return out
}

func indexOfEndAction(actions []action, group int) int {
	for i, a := range actions {
		if !a.start && a.group == group {
			return i
		}
	}
	return -1
}

func indexOfFirstStart(actions []action) int {
	for i, a := range actions {
		if a.start {
			return i
		}
	}
	return len(actions)
}
