package regexml_test

import (
	"fmt"

	"github.com/coregx/regexml"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := regexml.Compile(`[A-Z][A-Z]+`, "", regexml.XPath)
	if err != nil {
		panic(err)
	}
	fmt.Println(re.IsMatch("SEND OUT"))
	// Output: true
}

// ExampleMustCompile demonstrates panic-on-error compilation with a flag.
func ExampleMustCompile() {
	re := regexml.MustCompile(`hello`, "i", regexml.XPath)
	fmt.Println(re.IsMatch("Say HELLO"))
	// Output: true
}

// ExampleRegex_ReplaceAll demonstrates capture-group substitution.
func ExampleRegex_ReplaceAll() {
	re := regexml.MustCompile(`(\w+)@(\w+)`, "", regexml.XPath)
	out, err := re.ReplaceAll("contact: user@host", "$2:$1")
	if err != nil {
		panic(err)
	}
	fmt.Println(out)
	// Output: contact: host:user
}

// ExampleRegex_Tokenize demonstrates splitting on every match.
func ExampleRegex_Tokenize() {
	re := regexml.MustCompile(`\s+`, "", regexml.XPath)
	it, err := re.Tokenize("The cat sat")
	if err != nil {
		panic(err)
	}
	for tok, ok := it.Next(); ok; tok, ok = it.Next() {
		fmt.Println(tok)
	}
	// Output:
	// The
	// cat
	// sat
}

// ExampleRegex_Analyze demonstrates walking the ordered sequence of
// matching and non-matching spans, each match carrying its nested
// capture-group structure.
func ExampleRegex_Analyze() {
	re := regexml.MustCompile(`a(b)c`, "", regexml.XPath)
	it, err := re.Analyze("xabcx")
	if err != nil {
		panic(err)
	}
	for e, ok := it.Next(); ok; e, ok = it.Next() {
		if e.IsMatch() {
			fmt.Printf("match %q\n", e.Match.Flatten())
		} else {
			fmt.Printf("text %q\n", e.Text)
		}
	}
	// Output:
	// text "x"
	// match "abc"
	// text "x"
}
