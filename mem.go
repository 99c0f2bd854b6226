// Completion: 100% - Memory operations complete
package picrt

// Byte-level memory operations over caller-owned storage. The runtime these
// model has no allocator of its own, so every routine here works in place on
// buffers the caller provides.

// CopyMem copies min(len(dst), len(src)) bytes from src to dst and returns
// the number of bytes copied.
func CopyMem(dst, src []byte) int {
	n := len(src)
	if len(dst) < n {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = src[i]
	}
	return n
}

// SetMem fills dst with b.
func SetMem(dst []byte, b byte) {
	for i := range dst {
		dst[i] = b
	}
}

// CompareMem compares a and b byte by byte over min(len(a), len(b)) bytes.
// Returns the difference of the first mismatching pair, or 0 if the common
// prefix matches.
func CompareMem(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return int(a[i]) - int(b[i])
		}
	}
	return 0
}
