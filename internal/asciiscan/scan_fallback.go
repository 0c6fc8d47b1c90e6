//go:build !amd64

package asciiscan

func isASCII(data []byte) bool {
	return isASCIIGeneric(data)
}
