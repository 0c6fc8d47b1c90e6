package engine

import "testing"

func isMatch(t *testing.T, pattern, flags string, dialect Dialect, input string) bool {
	t.Helper()
	p, err := Compile(pattern, flags, dialect)
	if err != nil {
		t.Fatalf("Compile(%q, %q) error = %v", pattern, flags, err)
	}
	m := newMatcher(p, []rune(input))
	return m.isMatch()
}

func TestMatcherIsMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		flags   string
		input   string
		want    bool
	}{
		{"literal substring", "bra", "", "abracadabra", true},
		{"literal absent", "xyz", "", "abracadabra", false},
		{"digit class", `\d+`, "", "room 42", true},
		{"digit class absent", `\d+`, "", "no digits", false},
		{"alternation first branch", "cat|dog", "", "I have a cat", true},
		{"alternation second branch", "cat|dog", "", "I have a dog", true},
		{"alternation neither", "cat|dog", "", "I have a bird", false},
		{"greedy star", "a*", "", "", true},
		{"plus requires one", "a+", "", "", false},
		{"bounded repeat satisfied", "a{2,4}", "", "aaa", true},
		{"bounded repeat too few", "a{2,4}", "", "x a x", false},
		{"char class negation", "[^0-9]+", "", "abc", true},
		{"char class subtraction", "[a-z-[aeiou]]", "", "b", true},
		{"char class subtraction excludes vowel", "[a-z-[aeiou]]", "", "a", false},
		{"case insensitive", "HELLO", "i", "say hello world", true},
		{"case sensitive mismatch", "HELLO", "", "say hello world", false},
		{"start anchor XPath", "^abc", "", "abcdef", true},
		{"start anchor fails mid-string", "^cde", "", "abcdef", false},
		{"end anchor XPath", "def$", "", "abcdef", true},
		{"end anchor fails mid-string", "abc$", "", "abcdef", false},
		{"dot excludes newline by default", "a.c", "", "a\nc", false},
		{"dot-all includes newline", "a.c", "s", "a\nc", true},
		{"backreference matches", `(a+)b\1`, "", "aabaa", true},
		{"backreference mismatch", `(a+)b\1`, "", "aabxx", false},
		{"capture group participates", `(ab)+`, "", "ababab", true},
		{"word escape", `\w+`, "", "_under_score9", true},
		{"word boundary absence via class", `\W`, "", "abc def", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isMatch(t, tt.pattern, tt.flags, XPath, tt.input); got != tt.want {
				t.Errorf("IsMatch(%q, flags=%q, %q) = %v, want %v", tt.pattern, tt.flags, tt.input, got, tt.want)
			}
		})
	}
}

func TestMatcherXSDAnchorsAreLiteral(t *testing.T) {
	// Under XSD, bare "^" and "$" are ordinary characters, not anchors.
	p, err := Compile(`a^b`, "", XSD)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	m := newMatcher(p, []rune("xa^bx"))
	if !m.isMatch() {
		t.Error(`"a^b" under XSD should match a literal caret in the middle of the string`)
	}
	if isMatch(t, "a^b", "", XPath, "xa^bx") {
		t.Error(`"a^b" under XPath should not match: "^" there is a start-anchor, so "a" can never immediately precede it`)
	}
}

func TestMatcherCaptureGroupOffsets(t *testing.T) {
	p, err := Compile(`a(b)c`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	m := newMatcher(p, []rune("xabcx"))
	if !m.Matches(0) {
		t.Fatal("Matches(0) = false, want true")
	}
	s0, _ := m.ParenStart(0)
	e0, _ := m.ParenEnd(0)
	if s0 != 1 || e0 != 4 {
		t.Errorf("group 0 = [%d,%d), want [1,4)", s0, e0)
	}
	s1, ok1 := m.ParenStart(1)
	e1, ok2 := m.ParenEnd(1)
	if !ok1 || !ok2 || s1 != 2 || e1 != 3 {
		t.Errorf("group 1 = [%d,%d) (ok=%v,%v), want [2,3)", s1, e1, ok1, ok2)
	}
}

func TestMatcherNonParticipatingGroup(t *testing.T) {
	p, err := Compile(`(a)|(b)`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	m := newMatcher(p, []rune("a"))
	if !m.Matches(0) {
		t.Fatal("Matches(0) = false, want true")
	}
	if _, ok := m.ParenStart(2); ok {
		t.Error("group 2 should not participate when branch 1 matched")
	}
}

func TestMatcherFindsFirstMatchAtLaterOffset(t *testing.T) {
	p, err := Compile(`\d+`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	m := newMatcher(p, []rune("ab12cd34"))
	if !m.Matches(0) {
		t.Fatal("Matches(0) = false, want true")
	}
	s, _ := m.ParenStart(0)
	e, _ := m.ParenEnd(0)
	if s != 2 || e != 4 {
		t.Errorf("first match = [%d,%d), want [2,4)", s, e)
	}
	if !m.Matches(e) {
		t.Fatal("Matches(e) = false, want true (second match)")
	}
	s2, _ := m.ParenStart(0)
	e2, _ := m.ParenEnd(0)
	if s2 != 6 || e2 != 8 {
		t.Errorf("second match = [%d,%d), want [6,8)", s2, e2)
	}
}
