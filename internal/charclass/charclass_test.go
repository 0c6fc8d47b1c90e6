package charclass

import "testing"

func TestUnion(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want []Range
	}{
		{"disjoint", FromRange('a', 'c'), FromRange('x', 'z'), []Range{{'a', 'c'}, {'x', 'z'}}},
		{"adjacent merges", FromRange('a', 'c'), FromRange('d', 'f'), []Range{{'a', 'f'}}},
		{"overlapping", FromRange('a', 'f'), FromRange('d', 'z'), []Range{{'a', 'z'}}},
		{"empty with set", Empty(), FromRange('a', 'z'), []Range{{'a', 'z'}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Union(tt.a, tt.b).Ranges()
			if !rangesEqual(got, tt.want) {
				t.Errorf("Union() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDifference(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want []Range
	}{
		{"remove middle", FromRange('a', 'z'), FromRange('m', 'n'), []Range{{'a', 'l'}, {'o', 'z'}}},
		{"remove all", FromRange('a', 'z'), FromRange('a', 'z'), nil},
		{"remove prefix", FromRange('a', 'z'), FromRange('a', 'c'), []Range{{'d', 'z'}}},
		{"remove disjoint", FromRange('a', 'c'), FromRange('x', 'z'), []Range{{'a', 'c'}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Difference(tt.a, tt.b).Ranges()
			if !rangesEqual(got, tt.want) {
				t.Errorf("Difference() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestComplement(t *testing.T) {
	s := Complement(FromRange(0, 'a'-1))
	if s.Contains('A') {
		t.Error("complement of [0, a) should not contain 'A' - 'A' < 'a'")
	}
	if !s.Contains('a') {
		t.Error("complement of [0, a) should contain 'a'")
	}
	if !s.Contains(MaxRune) {
		t.Error("complement of [0, a) should contain MaxRune")
	}
}

func TestContains(t *testing.T) {
	s := Union(FromRange('a', 'f'), FromRune('z'))
	for _, r := range []rune{'a', 'c', 'f', 'z'} {
		if !s.Contains(r) {
			t.Errorf("Contains(%q) = false, want true", r)
		}
	}
	for _, r := range []rune{'g', 'y', 'A'} {
		if s.Contains(r) {
			t.Errorf("Contains(%q) = true, want false", r)
		}
	}
}

func TestIsDisjoint(t *testing.T) {
	tests := []struct {
		name string
		a, b Set
		want bool
	}{
		{"disjoint ranges", FromRange('a', 'f'), FromRange('g', 'z'), true},
		{"overlapping ranges", FromRange('a', 'f'), FromRange('d', 'z'), false},
		{"empty is disjoint from anything", Empty(), FromRange('a', 'z'), true},
		{"identical sets not disjoint", FromRange('a', 'z'), FromRange('a', 'z'), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDisjoint(tt.a, tt.b); got != tt.want {
				t.Errorf("IsDisjoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsDisjointSamplingCapIsConservative(t *testing.T) {
	// A huge set intersecting a huge set only at the very end: the sampling
	// cap may report "not disjoint" as false-negative-safe (i.e. it must
	// never claim disjoint when they actually overlap within the sample
	// window; beyond the cap it is allowed to fall back to "not disjoint").
	a := FromRange(0, 10000)
	b := FromRange(10000, 20000)
	if IsDisjoint(a, b) {
		t.Error("sets sharing code point 10000 must not be reported disjoint")
	}
}

func TestXMLNameChar(t *testing.T) {
	start := XMLNameStartChar()
	all := XMLNameChar()
	if !start.Contains('a') || !all.Contains('a') {
		t.Error("'a' should be a valid NameStartChar and NameChar")
	}
	if start.Contains('-') {
		t.Error("'-' must not be a NameStartChar")
	}
	if !all.Contains('-') {
		t.Error("'-' must be a NameChar")
	}
	if start.Contains('5') {
		t.Error("'5' must not be a NameStartChar")
	}
	if !all.Contains('5') {
		t.Error("'5' must be a NameChar")
	}
}

func rangesEqual(a, b []Range) bool {
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
