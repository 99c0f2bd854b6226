// Completion: 100% - Code buffer complete
package picrt

import "bytes"

// CodeBuffer collects emitted machine code. Byte-granular writes for x86-64,
// 32-bit little-endian writes for the fixed-width ARM64 encodings.
type CodeBuffer struct {
	buf bytes.Buffer
}

// Write appends one byte.
func (cb *CodeBuffer) Write(b uint8) {
	cb.buf.WriteByte(b)
}

// WriteU16 appends a 16-bit value, little-endian.
func (cb *CodeBuffer) WriteU16(v uint16) {
	cb.buf.WriteByte(uint8(v))
	cb.buf.WriteByte(uint8(v >> 8))
}

// WriteU32 appends a 32-bit value, little-endian. One ARM64 instruction.
func (cb *CodeBuffer) WriteU32(v uint32) {
	cb.buf.WriteByte(uint8(v))
	cb.buf.WriteByte(uint8(v >> 8))
	cb.buf.WriteByte(uint8(v >> 16))
	cb.buf.WriteByte(uint8(v >> 24))
}

// WriteU64 appends a 64-bit value, little-endian.
func (cb *CodeBuffer) WriteU64(v U64) {
	cb.WriteU32(v.Lo)
	cb.WriteU32(v.Hi)
}

// Bytes returns the emitted code.
func (cb *CodeBuffer) Bytes() []byte {
	return cb.buf.Bytes()
}

// Len returns the number of bytes emitted so far.
func (cb *CodeBuffer) Len() int {
	return cb.buf.Len()
}

// Reset clears the buffer for reuse.
func (cb *CodeBuffer) Reset() {
	cb.buf.Reset()
}
