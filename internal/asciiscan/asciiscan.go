// Package asciiscan provides a fast check for whether a byte buffer is
// pure ASCII, the way simd.IsASCII lets the regex engine pick a cheaper
// code path once it knows no code point in the input exceeds 0x7F.
//
// The engine's Matcher is the only caller outside this package: it calls
// IsASCIIRunes once per input, and when the input is pure ASCII its
// case-insensitive comparisons against ASCII pattern characters use ASCII
// case folding instead of the Unicode simple-case tables. The byte-slice
// form, IsASCII, is exercised only by this package's tests.
package asciiscan

import "encoding/binary"

// IsASCII reports whether every byte in data has its high bit clear.
func IsASCII(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	return isASCII(data)
}

// isASCIIGeneric is the portable SWAR (SIMD Within A Register) fallback:
// it checks eight bytes at a time for any byte with bit 7 set by ANDing
// with a mask of high bits, rather than comparing byte by byte.
func isASCIIGeneric(data []byte) bool {
	const hi8 = uint64(0x8080808080808080)
	n := len(data)
	i := 0
	for i+8 <= n {
		if binary.LittleEndian.Uint64(data[i:])&hi8 != 0 {
			return false
		}
		i += 8
	}
	for ; i < n; i++ {
		if data[i] >= 0x80 {
			return false
		}
	}
	return true
}

// IsASCIIRune reports whether a single code point is in the ASCII range.
func IsASCIIRune(r rune) bool { return r < 0x80 }

// IsASCIIRunes reports whether every code point in input is in the ASCII
// range, scanning eight runes at a time before falling back to a
// rune-by-rune tail check, mirroring isASCIIGeneric's chunking shape over
// the wider int32 element.
func IsASCIIRunes(input []rune) bool {
	n := len(input)
	i := 0
	for i+8 <= n {
		var acc rune
		for j := 0; j < 8; j++ {
			acc |= input[i+j]
		}
		if acc >= 0x80 {
			for j := 0; j < 8; j++ {
				if input[i+j] >= 0x80 {
					return false
				}
			}
		}
		i += 8
	}
	for ; i < n; i++ {
		if input[i] >= 0x80 {
			return false
		}
	}
	return true
}
