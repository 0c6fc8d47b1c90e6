package engine

import "testing"

func TestCompileSyntaxErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		dialect Dialect
	}{
		{"unclosed group", "(a", XPath},
		{"unmatched close paren", "a)", XPath},
		{"dangling quantifier", "*", XPath},
		{"bad quantifier range", "a{3,1}", XPath},
		{"unterminated class", "[abc", XPath},
		{"empty negative class", "[^]", XPath},
		{"octal escape", `\0`, XPath},
		{"unknown escape", `\y`, XPath},
		{"backreference to unknown group", `\1`, XPath},
		{"reluctant quantifier rejected in XSD", "a+?", XSD},
		{"non-capturing group rejected in XSD", "(?:a)", XSD},
		{"digit backreference rejected in XSD", `(a)\1`, XSD},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compile(tt.pattern, "", tt.dialect); err == nil {
				t.Errorf("Compile(%q) succeeded, want a syntax error", tt.pattern)
			}
		})
	}
}

func TestCompileFlagErrors(t *testing.T) {
	if _, err := Compile("a", "z", XPath); err == nil {
		t.Error("Compile with an unrecognized flag should fail")
	}
	if _, err := Compile("a", "q", XSD); err == nil {
		t.Error("Compile with 'q' under XSD should fail")
	}
}

func TestCompileLiteralFlagBypassesParsing(t *testing.T) {
	p, err := Compile("a(b", "q", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if p.GroupCount != 0 {
		t.Errorf("literal pattern should have no capturing groups, got %d", p.GroupCount)
	}
	m := newMatcher(p, []rune("xa(bx"))
	if !m.isMatch() {
		t.Error("literal pattern 'a(b' should match its own text verbatim")
	}
}

func TestCompileFixedLengthLift(t *testing.T) {
	p, err := Compile(`ab{2,4}`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if _, ok := p.Root.(*Sequence); !ok {
		t.Fatalf("root = %T, want *Sequence", p.Root)
	}
	found := false
	for _, note := range p.CompilationNotes {
		if note != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected at least one compilation note for a quantified pattern")
	}
}

func TestCompileUnambiguousRepeatRewrite(t *testing.T) {
	// "a" repeated then followed by "b": the repeated atom's initial class
	// {a} is disjoint from the following "b", so the repeat should be
	// rewritten to an UnambiguousRepeat.
	p, err := Compile(`a+b`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	seq, ok := p.Root.(*Sequence)
	if !ok {
		t.Fatalf("root = %T, want *Sequence", p.Root)
	}
	if _, ok := seq.Ops[0].(*UnambiguousRepeat); !ok {
		t.Errorf("seq.Ops[0] = %T, want *UnambiguousRepeat", seq.Ops[0])
	}
}

func TestCompileExactCountRewrite(t *testing.T) {
	p, err := Compile(`a{3}`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	seq, ok := p.Root.(*Sequence)
	if !ok {
		t.Fatalf("root = %T, want *Sequence", p.Root)
	}
	ur, ok := seq.Ops[0].(*UnambiguousRepeat)
	if !ok {
		t.Fatalf("seq.Ops[0] = %T, want *UnambiguousRepeat", seq.Ops[0])
	}
	if ur.Min != 3 || ur.Max != 3 {
		t.Errorf("UnambiguousRepeat{Min: %d, Max: %d}, want {3, 3}", ur.Min, ur.Max)
	}
}

func TestCompileGroupCount(t *testing.T) {
	p, err := Compile(`(a)(b(c))`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if p.GroupCount != 3 {
		t.Errorf("GroupCount = %d, want 3", p.GroupCount)
	}
}

func TestCompileNonCapturingGroupDoesNotCount(t *testing.T) {
	p, err := Compile(`(?:a)(b)`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if p.GroupCount != 1 {
		t.Errorf("GroupCount = %d, want 1", p.GroupCount)
	}
}

func TestCompileBackReferenceValid(t *testing.T) {
	p, err := Compile(`(a)\1`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !p.HasBackReferences {
		t.Error("HasBackReferences = false, want true")
	}
}

func TestCompileIgnoreWhitespaceFlag(t *testing.T) {
	p1, err := Compile(`a b c`, "x", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	p2, err := Compile(`abc`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	n1, _ := p1.Root.MatchLength()
	n2, _ := p2.Root.MatchLength()
	if n1 != n2 {
		t.Errorf("'x' flag: fixed length = %d, want %d (matching 'abc')", n1, n2)
	}
}

func TestCompilePrefixHoisting(t *testing.T) {
	p, err := Compile(`hello\d+`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if p.Prefix == nil {
		t.Fatal("Prefix is nil, want a hoisted literal prefix")
	}
	if string(p.Prefix.Runes) != "hello" {
		t.Errorf("Prefix = %q, want %q", string(p.Prefix.Runes), "hello")
	}
}

func TestCompileAhoPrefilterForLiteralAlternation(t *testing.T) {
	p, err := Compile(`cat|dog|bird`, "", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if p.AhoPrefilter == nil {
		t.Error("AhoPrefilter is nil, want a built prefilter for a pure-literal alternation")
	}
}

func TestCompileAhoPrefilterSkippedUnderCaseInsensitive(t *testing.T) {
	p, err := Compile(`cat|dog|bird`, "i", XPath)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if p.AhoPrefilter != nil {
		t.Error("AhoPrefilter should not be built when case-insensitive matching is requested")
	}
}
