package regexml

import "github.com/coregx/regexml/internal/engine"

// Tokenize splits input on successive matches of re, returning a lazy
// iterator over the substrings between them (spec.md §4.4): the span
// before the first match, between each consecutive pair, and after the
// last. An empty input yields no tokens at all. Tokenize refuses to run,
// returning ErrMatchesEmptyString, when re can match the empty string,
// since splitting on a zero-width delimiter is ill-defined.
//
// Example:
//
//	re := regexml.MustCompile(`\s+`, "", regexml.XPath)
//	it, _ := re.Tokenize("The cat sat")
//	for tok, ok := it.Next(); ok; tok, ok = it.Next() {
//	    fmt.Println(tok)
//	}
//	// Output:
//	// The
//	// cat
//	// sat
func (re *Regex) Tokenize(input string) (*TokenIterator, error) {
	if re.core.MatchesEmptyStatus != engine.ZLSNever {
		return nil, ErrMatchesEmptyString
	}
	in := []rune(input)
	return &TokenIterator{
		re:    re,
		m:     engine.NewMatcher(re.core, in),
		input: in,
		done:  len(in) == 0,
	}, nil
}

// Next returns the next token and true, or ("", false) once the sequence
// is exhausted.
func (it *TokenIterator) Next() (string, bool) {
	if it.done {
		return "", false
	}
	s, e, ok := it.re.firstMatch(it.m, it.pos)
	if !ok {
		tok := string(it.input[it.pos:])
		it.done = true
		return tok, true
	}
	tok := string(it.input[it.pos:s])
	it.pos = e
	return tok, true
}
