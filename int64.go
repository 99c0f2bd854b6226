// Completion: 100% - Wide signed arithmetic complete
package picrt

// I64 is the signed companion of U64: same two-word representation, with the
// high half signed so ordering and sign extension come out right. The
// combination of halves always follows two's-complement 64-bit semantics, so
// add, subtract and multiply are word-identical to the unsigned versions and
// delegate to them; only division, arithmetic shift and comparison carry sign
// logic of their own. Plain delegation keeps the shared groups free of
// dispatch tables.
type I64 struct {
	Lo uint32 // bits [31:0]
	Hi int32  // bits [63:32], signed
}

// MakeI64 builds a value from its two halves.
func MakeI64(hi int32, lo uint32) I64 {
	return I64{Lo: lo, Hi: hi}
}

// I64FromInt converts a native int64. Boundary helper.
func I64FromInt(v int64) I64 {
	return I64{Lo: uint32(uint64(v)), Hi: int32(uint64(v) >> 32)}
}

// I64FromInt32 sign-extends a 32-bit value.
func I64FromInt32(v int32) I64 {
	hi := int32(0)
	if v < 0 {
		hi = -1
	}
	return I64{Lo: uint32(v), Hi: hi}
}

// Int converts back to a native int64. Boundary helper.
func (a I64) Int() int64 {
	return int64(uint64(uint32(a.Hi))<<32 | uint64(a.Lo))
}

// toU64 reinterprets the two's-complement bits.
func (a I64) toU64() U64 {
	return U64{Lo: a.Lo, Hi: uint32(a.Hi)}
}

func i64FromU64(v U64) I64 {
	return I64{Lo: v.Lo, Hi: int32(v.Hi)}
}

// IsZero reports whether a == 0.
func (a I64) IsZero() bool {
	return a.Lo == 0 && a.Hi == 0
}

// IsNeg reports whether a < 0.
func (a I64) IsNeg() bool {
	return a.Hi < 0
}

// Neg returns -a (two's complement; the minimum value negates to itself).
func (a I64) Neg() I64 {
	return i64FromU64(a.toU64().Not().Inc())
}

// Abs returns |a| as a U64 magnitude, which also holds for the minimum value.
func (a I64) Abs() U64 {
	if a.IsNeg() {
		return a.toU64().Not().Inc()
	}
	return a.toU64()
}

// ============================================================================
// Word-identical groups: delegate to the unsigned implementations
// ============================================================================

// Add returns a+b mod 2^64.
func (a I64) Add(b I64) I64 {
	return i64FromU64(a.toU64().Add(b.toU64()))
}

// Sub returns a-b mod 2^64.
func (a I64) Sub(b I64) I64 {
	return i64FromU64(a.toU64().Sub(b.toU64()))
}

// Mul returns a*b mod 2^64. Two's complement makes the low 64 product bits
// sign-agnostic.
func (a I64) Mul(b I64) I64 {
	return i64FromU64(a.toU64().Mul(b.toU64()))
}

// And returns a&b.
func (a I64) And(b I64) I64 { return i64FromU64(a.toU64().And(b.toU64())) }

// Or returns a|b.
func (a I64) Or(b I64) I64 { return i64FromU64(a.toU64().Or(b.toU64())) }

// Xor returns a^b.
func (a I64) Xor(b I64) I64 { return i64FromU64(a.toU64().Xor(b.toU64())) }

// Not returns ^a.
func (a I64) Not() I64 { return i64FromU64(a.toU64().Not()) }

// Shl returns a<<n, with the unsigned rules for out-of-range amounts.
func (a I64) Shl(n int) I64 {
	return i64FromU64(a.toU64().Shl(n))
}

// ============================================================================
// Sign-carrying operations
// ============================================================================

// DivMod returns the truncating quotient and remainder: the quotient takes
// the sign of the operand product and the remainder satisfies
// a == q*b + r, so it carries the dividend's sign. Division by zero yields
// (0, 0).
func (a I64) DivMod(b I64) (q, r I64) {
	if b.IsZero() {
		return I64{}, I64{}
	}
	uq, ur := a.Abs().DivMod(b.Abs())
	q = i64FromU64(uq)
	r = i64FromU64(ur)
	if a.IsNeg() != b.IsNeg() {
		q = q.Neg()
	}
	if a.IsNeg() {
		r = r.Neg()
	}
	return q, r
}

// Div returns the truncating quotient, with a/0 == 0.
func (a I64) Div(b I64) I64 {
	q, _ := a.DivMod(b)
	return q
}

// Mod returns the remainder of truncating division, with a%0 == 0.
func (a I64) Mod(b I64) I64 {
	_, r := a.DivMod(b)
	return r
}

// Shr returns a>>n, arithmetic: vacated bits take the sign. Amounts >= 64 or
// < 0 yield 0 for non-negative values and -1 for negative ones, the fixed
// point of the shift.
func (a I64) Shr(n int) I64 {
	switch {
	case n < 0 || n >= 64:
		if a.IsNeg() {
			return I64{Lo: 0xFFFFFFFF, Hi: -1}
		}
		return I64{}
	case n == 0:
		return a
	case n == 32:
		hi := int32(0)
		if a.Hi < 0 {
			hi = -1
		}
		return I64{Lo: uint32(a.Hi), Hi: hi}
	case n > 32:
		hi := int32(0)
		if a.Hi < 0 {
			hi = -1
		}
		return I64{Lo: uint32(a.Hi >> (n - 32)), Hi: hi}
	default:
		return I64{Lo: a.Lo>>n | uint32(a.Hi)<<(32-n), Hi: a.Hi >> n}
	}
}

// Cmp returns -1, 0 or 1: high word compared signed, low word unsigned as the
// tiebreaker. Total order consistent with mathematical value.
func (a I64) Cmp(b I64) int {
	if a.Hi != b.Hi {
		if a.Hi < b.Hi {
			return -1
		}
		return 1
	}
	if a.Lo != b.Lo {
		if a.Lo < b.Lo {
			return -1
		}
		return 1
	}
	return 0
}

// Eq reports a == b.
func (a I64) Eq(b I64) bool {
	return a.Lo == b.Lo && a.Hi == b.Hi
}

// Less reports a < b.
func (a I64) Less(b I64) bool {
	return a.Cmp(b) < 0
}
