package regexml

import "github.com/coregx/regexml/internal/engine"

// TokenIterator is the lazy sequence Tokenize returns: each call to Next
// advances the underlying matcher by exactly one match and yields the
// substring that preceded it (or, on the final call, whatever remains of
// the input after the last match). It holds no allocation beyond the
// input's rune slice and the matcher's capture-state arrays, so iterating
// a huge input does not require materializing every token up front.
type TokenIterator struct {
	re    *Regex
	m     *engine.Matcher
	input []rune
	pos   int
	done  bool
}

// AnalyzeIterator is the lazy sequence Analyze returns: each call to Next
// advances past one match (or the final trailing non-match span) and
// yields an Entry describing either a non-matching substring or a match
// with its nested capture-group structure.
type AnalyzeIterator struct {
	re      *Regex
	m       *engine.Matcher
	input   []rune
	pos     int
	pending []*Entry
	done    bool
}
