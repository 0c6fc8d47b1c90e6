// Package prefilter narrows candidate match-start positions ahead of the
// backtracking matcher using a multi-literal Aho-Corasick automaton, the
// way meta.Engine's UseAhoCorasick strategy bypasses its NFA for large
// literal alternations. It only applies when a pattern's top-level
// structure is a pure choice among two or more literal atoms (e.g.
// "cat|dog|bird"); single-literal prefixes are handled more cheaply by the
// matcher's own rune-by-rune prefix comparison.
package prefilter

import "github.com/coregx/ahocorasick"

// Filter wraps a built automaton over a fixed set of literal patterns.
type Filter struct {
	automaton *ahocorasick.Automaton
}

// Build constructs a Filter over literals (each a run of code points), or
// reports ok=false if there are fewer than two literals or the automaton
// failed to build.
func Build(literals [][]rune) (f *Filter, ok bool) {
	if len(literals) < 2 {
		return nil, false
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern([]byte(string(lit)))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, false
	}
	return &Filter{automaton: auto}, true
}

// Encoding is the UTF-8 byte form of a rune slice plus the byte offset of
// each rune, letting the automaton's byte-oriented matches be translated
// back to the code-point offsets the matcher works in.
type Encoding struct {
	Bytes  []byte
	ByteAt []int // ByteAt[i] = byte offset of input rune i; ByteAt[len(input)] = len(Bytes)
}

// Encode builds the byte encoding of input once so repeated Filter.Find
// calls over the same input don't redo the UTF-8 conversion.
func Encode(input []rune) *Encoding {
	e := &Encoding{ByteAt: make([]int, len(input)+1)}
	buf := make([]byte, 0, len(input))
	for i, r := range input {
		e.ByteAt[i] = len(buf)
		buf = append(buf, string(r)...)
	}
	e.ByteAt[len(input)] = len(buf)
	e.Bytes = buf
	return e
}

// runeIndex returns the rune index whose byte offset is exactly b, or
// false if b falls in the middle of a code point (never true for offsets
// the automaton reports, since every registered pattern is itself a
// sequence of whole runes).
func (e *Encoding) runeIndex(b int) (int, bool) {
	lo, hi := 0, len(e.ByteAt)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if e.ByteAt[mid] < b {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if e.ByteAt[lo] == b {
		return lo, true
	}
	return 0, false
}

// Find returns the rune index of the next candidate occurrence at or
// after startRune, or false if none remains.
func (f *Filter) Find(e *Encoding, startRune int) (int, bool) {
	if startRune < 0 || startRune >= len(e.ByteAt)-1 {
		return 0, false
	}
	at := e.ByteAt[startRune]
	for at <= len(e.Bytes) {
		m := f.automaton.Find(e.Bytes, at)
		if m == nil {
			return 0, false
		}
		if idx, ok := e.runeIndex(m.Start); ok {
			return idx, true
		}
		at = m.Start + 1
	}
	return 0, false
}
