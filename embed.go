// Completion: 100% - Constant embedding descriptors complete
package picrt

import "unicode/utf16"

// Constant embedding turns compile-time literals into values that exist only
// as instruction operands. A descriptor captures the literal at bake time;
// Materialize reproduces the defined behavior of the emitted routine (write
// each element, then a zero terminator, into caller-owned storage), and the
// Emitter generates the routine itself for a target architecture.
//
// Descriptors own no storage for the materialized value and are never
// deduplicated: two equal literals embed twice. Sharing is exactly the
// constant-pooling behavior being avoided.

// ============================================================================
// Sequences
// ============================================================================

// ByteSeq is an embedded sequence of byte-sized code units.
type ByteSeq struct {
	units []byte
}

// EmbedString captures the bytes of s.
func EmbedString(s string) ByteSeq {
	return ByteSeq{units: []byte(s)}
}

// EmbedBytes captures a copy of b.
func EmbedBytes(b []byte) ByteSeq {
	units := make([]byte, len(b))
	CopyMem(units, b)
	return ByteSeq{units: units}
}

// Len returns the element count, excluding the terminator.
func (s ByteSeq) Len() int {
	return len(s.units)
}

// Materialize writes the sequence followed by a zero terminator into dst,
// element by element. Returns false without writing anything if dst is
// shorter than Len()+1.
func (s ByteSeq) Materialize(dst []byte) bool {
	if len(dst) < len(s.units)+1 {
		return false
	}
	for i, u := range s.units {
		dst[i] = u
	}
	dst[len(s.units)] = 0
	return true
}

// WideSeq is an embedded sequence of 16-bit code units.
type WideSeq struct {
	units []uint16
}

// EmbedWideString captures s as UTF-16 code units.
func EmbedWideString(s string) WideSeq {
	return WideSeq{units: utf16.Encode([]rune(s))}
}

// Len returns the element count, excluding the terminator.
func (s WideSeq) Len() int {
	return len(s.units)
}

// Materialize writes the sequence followed by a zero terminator into dst,
// element by element. Returns false without writing anything if dst is
// shorter than Len()+1.
func (s WideSeq) Materialize(dst []uint16) bool {
	if len(dst) < len(s.units)+1 {
		return false
	}
	for i, u := range s.units {
		dst[i] = u
	}
	dst[len(s.units)] = 0
	return true
}

// ============================================================================
// Scalars
// ============================================================================

// Scalar is an embedded binary64 literal captured as its raw bit pattern.
type Scalar struct {
	bits U64
}

// EmbedFloat captures the pattern of a native float64 at bake time.
func EmbedFloat(v float64) Scalar {
	return Scalar{bits: F64FromFloat(v).Bits()}
}

// ScalarFromBits wraps an explicit pattern.
func ScalarFromBits(b U64) Scalar {
	return Scalar{bits: b}
}

// Bits returns the captured pattern.
func (s Scalar) Bits() U64 {
	return s.bits
}

// Value reinterprets the pattern as the floating value, with no memory round
// trip: this is the defined behavior of the emitted register-pair load.
func (s Scalar) Value() F64 {
	return F64FromBits(s.bits)
}

// ============================================================================
// Emitter
// ============================================================================

// Emitter generates single-use materialization routines for one target.
// Every call emits a fresh routine into the buffer; identical inputs are
// never coalesced.
type Emitter struct {
	arch Arch
	buf  *CodeBuffer
}

// NewEmitter returns an emitter targeting arch.
func NewEmitter(arch Arch) *Emitter {
	return &Emitter{arch: arch, buf: &CodeBuffer{}}
}

// Bytes returns everything emitted so far.
func (e *Emitter) Bytes() []byte {
	return e.buf.Bytes()
}

// Reset clears the buffer.
func (e *Emitter) Reset() {
	e.buf.Reset()
}

// EmitByteSequence emits a routine that stores each unit of seq, then a zero
// terminator, into the caller's buffer (first argument register), using only
// store-immediate instructions, and returns.
func (e *Emitter) EmitByteSequence(seq ByteSeq) {
	switch e.arch {
	case ArchX86_64:
		e.byteSeqX86(seq.units)
	case ArchARM64:
		e.byteSeqARM64(seq.units)
	}
}

// EmitWideSequence is EmitByteSequence for 16-bit units.
func (e *Emitter) EmitWideSequence(seq WideSeq) {
	switch e.arch {
	case ArchX86_64:
		e.wideSeqX86(seq.units)
	case ArchARM64:
		e.wideSeqARM64(seq.units)
	}
}

// EmitScalar emits a routine that materializes the scalar's 64-bit pattern in
// the return floating-point register: one 64-bit immediate load on x86-64, a
// four-part sub-word build on ARM64, then a direct register-class move. No
// memory is touched.
func (e *Emitter) EmitScalar(s Scalar) {
	switch e.arch {
	case ArchX86_64:
		e.scalarX86(s.bits)
	case ArchARM64:
		e.scalarARM64(s.bits)
	}
}
