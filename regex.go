// Package regexml implements a regular-expression engine conforming to
// the XML Schema 1.1 and XPath 3.1 regular-expression grammars. It
// compiles a pattern plus a flag string into an immutable Regex and
// exposes four query operations over it: IsMatch (full-string-contains
// test), ReplaceAll (find-and-replace with capture-group substitution),
// Tokenize (split on matches), and Analyze (an ordered sequence of
// matching and non-matching substrings with nested capture-group
// structure).
//
// The engine is Unicode-aware: it operates on code-point sequences (not
// UTF-8 bytes), supports \p{Category} and \p{IsBlockName} character-class
// escapes, and honors case-insensitive matching by full simple Unicode
// case closure rather than byte-wise folding.
//
// Basic usage:
//
//	re, err := regexml.Compile(`[A-Z][A-Z]+`, "", regexml.XPath)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(re.IsMatch("SEND OUT")) // true
//
// Compiled patterns are safe for concurrent use: a Regex is immutable
// once constructed, and every query instantiates its own internal match
// state.
package regexml

import "github.com/coregx/regexml/internal/engine"

// Regex is a compiled pattern ready to be queried. It wraps a Program
// with the four public query operations spec.md §4.4 describes.
type Regex struct {
	*Program
}

// Compile parses pattern under flagStr and dialect into a Regex.
// Recognized flags (in the main, pre-";" segment of flagStr) are "i"
// case-insensitive, "m" multi-line, "s" dot-all, "x" ignore unescaped
// whitespace, and "q" literal ("q" is rejected under XSD). An unrecognized
// flag returns an *InvalidFlagsError; a malformed pattern returns a
// *SyntaxError.
//
// Example:
//
//	re, err := regexml.Compile(`\d{3}-\d{4}`, "", regexml.XPath)
func Compile(pattern, flagStr string, dialect Dialect) (*Regex, error) {
	p, err := compile(pattern, flagStr, dialect)
	if err != nil {
		return nil, err
	}
	return &Regex{Program: p}, nil
}

// MustCompile is like Compile but panics if pattern or flagStr is
// invalid. It is intended for patterns known to be valid at compile time,
// e.g. package-level pattern variables.
func MustCompile(pattern, flagStr string, dialect Dialect) *Regex {
	re, err := Compile(pattern, flagStr, dialect)
	if err != nil {
		panic("regexml: Compile(" + pattern + ", " + flagStr + "): " + err.Error())
	}
	return re
}

// IsMatch reports whether some position in input starts a match of re —
// equivalently, whether input contains re as a substring (case-blind
// substring, under the "i" flag).
//
// Example:
//
//	re := regexml.MustCompile(`bra`, "", regexml.XPath)
//	fmt.Println(re.IsMatch("abracadabra")) // true
func (re *Regex) IsMatch(input string) bool {
	m := engine.NewMatcher(re.core, []rune(input))
	return m.IsMatch()
}

// firstMatch runs the matcher's search starting at startRune and, on
// success, returns the whole-match [start, end) rune offsets.
func (re *Regex) firstMatch(m *engine.Matcher, startRune int) (start, end int, ok bool) {
	if !m.Matches(startRune) {
		return 0, 0, false
	}
	s, _ := m.ParenStart(0)
	e, _ := m.ParenEnd(0)
	return s, e, true
}
