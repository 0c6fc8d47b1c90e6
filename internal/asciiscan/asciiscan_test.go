package asciiscan

import "testing"

func TestIsASCII(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want bool
	}{
		{"empty", nil, true},
		{"ascii short", []byte("hello"), true},
		{"ascii exactly 8", []byte("abcdefgh"), true},
		{"ascii exactly 32", []byte("abcdefghabcdefghabcdefghabcdefgh"), true},
		{"ascii long", []byte("the quick brown fox jumps over the lazy dog, thirty-five bytes more"), true},
		{"non-ascii in tail", []byte("abcdefg\x80"), false},
		{"non-ascii at start", []byte("\xffabcdefg"), false},
		{"non-ascii past 32 bytes", []byte("abcdefghabcdefghabcdefghabcdefgh\x80"), false},
		{"utf8 cafe", []byte("café"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsASCII(tt.data); got != tt.want {
				t.Errorf("IsASCII(%q) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

func TestIsASCIIRunes(t *testing.T) {
	tests := []struct {
		name  string
		input []rune
		want  bool
	}{
		{"empty", nil, true},
		{"ascii short", []rune("hello"), true},
		{"ascii exactly 8", []rune("abcdefgh"), true},
		{"ascii 9 all clear", []rune("abcdefghi"), true},
		{"non-ascii in first chunk", []rune("abcdefgé"), false},
		{"non-ascii in tail", []rune("abcdefghié"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsASCIIRunes(tt.input); got != tt.want {
				t.Errorf("IsASCIIRunes(%q) = %v, want %v", string(tt.input), got, tt.want)
			}
		})
	}
}

func TestIsASCIIRune(t *testing.T) {
	if !IsASCIIRune('a') {
		t.Error("'a' should be ASCII")
	}
	if IsASCIIRune('é') {
		t.Error("'é' should not be ASCII")
	}
}
