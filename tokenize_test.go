package regexml

import (
	"errors"
	"testing"
)

func collectTokens(it *TokenIterator) []string {
	var out []string
	for tok, ok := it.Next(); ok; tok, ok = it.Next() {
		out = append(out, tok)
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		input   string
		want    []string
	}{
		{"split on whitespace", `\s+`, "The cat sat", []string{"The", "cat", "sat"}},
		{"no delimiter present", `,`, "abc", []string{"abc"}},
		{"delimiter at start and end", `,`, ",a,b,", []string{"", "a", "b", ""}},
		{"consecutive delimiters", `,`, "a,,b", []string{"a", "", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re := MustCompile(tt.pattern, "", XPath)
			it, err := re.Tokenize(tt.input)
			if err != nil {
				t.Fatalf("Tokenize() error = %v", err)
			}
			got := collectTokens(it)
			if !equalStrings(got, tt.want) {
				t.Errorf("Tokenize(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTokenizeEmptyInputYieldsNoTokens(t *testing.T) {
	re := MustCompile(`,`, "", XPath)
	it, err := re.Tokenize("")
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	if _, ok := it.Next(); ok {
		t.Error("Tokenize(\"\") yielded a token, want none")
	}
}

func TestTokenizeRejectsEmptyMatchingProgram(t *testing.T) {
	re := MustCompile(`a*`, "", XPath)
	_, err := re.Tokenize("aaa")
	if !errors.Is(err, ErrMatchesEmptyString) {
		t.Errorf("Tokenize() error = %v, want ErrMatchesEmptyString", err)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
