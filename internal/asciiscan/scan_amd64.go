//go:build amd64

package asciiscan

import "encoding/binary"

// hasAVX2 records whether the running CPU has AVX2, the way simd's amd64
// build selects a wider vector width when available. This package has no
// assembly kernel to dispatch to, so the flag only widens the pure-Go SWAR
// stride from 8 to 32 bytes per iteration; a CPU without AVX2 still gets a
// correct answer from the same code at the narrower stride.
var hasAVX2 = cpuHasAVX2()

func isASCII(data []byte) bool {
	if hasAVX2 && len(data) >= 32 {
		return isASCIIWide(data)
	}
	return isASCIIGeneric(data)
}

// isASCIIWide checks 32 bytes per iteration (four uint64 words), falling
// back to isASCIIGeneric for the remainder.
func isASCIIWide(data []byte) bool {
	const hi8 = uint64(0x8080808080808080)
	n := len(data)
	i := 0
	for i+32 <= n {
		w0 := binary.LittleEndian.Uint64(data[i:])
		w1 := binary.LittleEndian.Uint64(data[i+8:])
		w2 := binary.LittleEndian.Uint64(data[i+16:])
		w3 := binary.LittleEndian.Uint64(data[i+24:])
		if (w0|w1|w2|w3)&hi8 != 0 {
			return false
		}
		i += 32
	}
	return isASCIIGeneric(data[i:])
}
