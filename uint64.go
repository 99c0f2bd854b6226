// Completion: 100% - Wide unsigned arithmetic complete
package picrt

// U64 is a 64-bit unsigned integer stored as two 32-bit words, with every
// operation implemented from 32-bit arithmetic and bitwise operations only.
//
// Code generated from these routines never needs a native 64-bit constant,
// which is what keeps 64-bit math out of the constant pool on constrained
// targets: division becomes a bit loop, multiplication becomes 16-bit-limb
// schoolbook products, and no operation reaches for a compiler intrinsic.
// The conversions to and from Go's uint64 exist only at the API boundary.
type U64 struct {
	Lo uint32 // bits [31:0]
	Hi uint32 // bits [63:32]
}

// MakeU64 builds a value from its two halves.
func MakeU64(hi, lo uint32) U64 {
	return U64{Lo: lo, Hi: hi}
}

// U64FromUint converts a native uint64. Boundary helper.
func U64FromUint(v uint64) U64 {
	return U64{Lo: uint32(v), Hi: uint32(v >> 32)}
}

// Uint converts back to a native uint64. Boundary helper.
func (a U64) Uint() uint64 {
	return uint64(a.Hi)<<32 | uint64(a.Lo)
}

// MaxU64 returns the all-ones value.
func MaxU64() U64 {
	return U64{Lo: 0xFFFFFFFF, Hi: 0xFFFFFFFF}
}

// IsZero reports whether a == 0.
func (a U64) IsZero() bool {
	return a.Lo == 0 && a.Hi == 0
}

// ============================================================================
// Addition and subtraction: ripple carry/borrow across the word boundary
// ============================================================================

// Add returns a+b mod 2^64.
func (a U64) Add(b U64) U64 {
	lo := a.Lo + b.Lo
	carry := uint32(0)
	if lo < a.Lo { // unsigned wraparound means a carry out
		carry = 1
	}
	return U64{Lo: lo, Hi: a.Hi + b.Hi + carry}
}

// Sub returns a-b mod 2^64.
func (a U64) Sub(b U64) U64 {
	lo := a.Lo - b.Lo
	borrow := uint32(0)
	if a.Lo < b.Lo {
		borrow = 1
	}
	return U64{Lo: lo, Hi: a.Hi - b.Hi - borrow}
}

// Inc returns a+1.
func (a U64) Inc() U64 {
	lo := a.Lo + 1
	if lo == 0 {
		return U64{Lo: 0, Hi: a.Hi + 1}
	}
	return U64{Lo: lo, Hi: a.Hi}
}

// Dec returns a-1.
func (a U64) Dec() U64 {
	if a.Lo == 0 {
		return U64{Lo: 0xFFFFFFFF, Hi: a.Hi - 1}
	}
	return U64{Lo: a.Lo - 1, Hi: a.Hi}
}

// ============================================================================
// Multiplication: schoolbook in 16-bit limbs
// ============================================================================

// mul32 returns the full 64-bit product of two 32-bit words, computed in
// 16-bit limbs so no partial product overflows 32 bits.
func mul32(x, y uint32) U64 {
	x0 := x & 0xFFFF
	x1 := x >> 16
	y0 := y & 0xFFFF
	y1 := y >> 16

	p00 := x0 * y0
	p01 := x0 * y1
	p10 := x1 * y0
	p11 := x1 * y1

	mid := (p00 >> 16) + (p01 & 0xFFFF) + (p10 & 0xFFFF)
	lo := (p00 & 0xFFFF) | (mid << 16)
	hi := p11 + (p01 >> 16) + (p10 >> 16) + (mid >> 16)
	return U64{Lo: lo, Hi: hi}
}

// Mul returns a*b mod 2^64: the four cross products of the 32-bit halves,
// with the two that land entirely above bit 63 discarded.
func (a U64) Mul(b U64) U64 {
	ll := mul32(a.Lo, b.Lo)
	lh := mul32(a.Lo, b.Hi) // only its low word reaches bits [63:32]
	hl := mul32(a.Hi, b.Lo)
	return U64{Lo: ll.Lo, Hi: ll.Hi + lh.Lo + hl.Lo}
}

// mul64To128 returns the full 128-bit product of a and b as (hi, lo).
// Used by the soft-float mantissa multiply.
func mul64To128(a, b U64) (hi, lo U64) {
	ll := mul32(a.Lo, b.Lo)
	lh := mul32(a.Lo, b.Hi)
	hl := mul32(a.Hi, b.Lo)
	hh := mul32(a.Hi, b.Hi)

	// Middle column: ll.Hi + lh.Lo + hl.Lo, carries into the top.
	mid := MakeU64(0, ll.Hi).Add(MakeU64(0, lh.Lo)).Add(MakeU64(0, hl.Lo))

	lo = U64{Lo: ll.Lo, Hi: mid.Lo}
	hi = hh.Add(MakeU64(0, lh.Hi)).Add(MakeU64(0, hl.Hi)).Add(MakeU64(0, mid.Hi))
	return hi, lo
}

// ============================================================================
// Division and modulo: restoring binary long division
// ============================================================================

// DivMod returns (a/b, a%b). Division by zero yields (0, 0); there is no
// trap handler at this layer, so a defined result is the only option.
func (a U64) DivMod(b U64) (q, r U64) {
	if b.IsZero() {
		return U64{}, U64{}
	}
	// For each bit from most to least significant: shift the remainder left,
	// inject the next dividend bit, and subtract the divisor when it fits.
	for i := 63; i >= 0; i-- {
		r = r.Shl(1)
		if a.bit(i) != 0 {
			r.Lo |= 1
		}
		if r.Cmp(b) >= 0 {
			r = r.Sub(b)
			q = q.setBit(i)
		}
	}
	return q, r
}

// Div returns a/b, with a/0 == 0.
func (a U64) Div(b U64) U64 {
	q, _ := a.DivMod(b)
	return q
}

// Mod returns a%b, with a%0 == 0.
func (a U64) Mod(b U64) U64 {
	_, r := a.DivMod(b)
	return r
}

// bit returns bit i of a, for 0 <= i < 64.
func (a U64) bit(i int) uint32 {
	if i >= 32 {
		return (a.Hi >> (i - 32)) & 1
	}
	return (a.Lo >> i) & 1
}

// setBit returns a with bit i set.
func (a U64) setBit(i int) U64 {
	if i >= 32 {
		a.Hi |= uint32(1) << (i - 32)
	} else {
		a.Lo |= uint32(1) << i
	}
	return a
}

// ============================================================================
// Bitwise operations
// ============================================================================

// And returns a&b.
func (a U64) And(b U64) U64 {
	return U64{Lo: a.Lo & b.Lo, Hi: a.Hi & b.Hi}
}

// Or returns a|b.
func (a U64) Or(b U64) U64 {
	return U64{Lo: a.Lo | b.Lo, Hi: a.Hi | b.Hi}
}

// Xor returns a^b.
func (a U64) Xor(b U64) U64 {
	return U64{Lo: a.Lo ^ b.Lo, Hi: a.Hi ^ b.Hi}
}

// Not returns ^a.
func (a U64) Not() U64 {
	return U64{Lo: ^a.Lo, Hi: ^a.Hi}
}

// ============================================================================
// Shifts: composed across the word boundary
// ============================================================================

// Shl returns a<<n. Amounts >= 64 or < 0 yield zero; 32 is a direct word move.
func (a U64) Shl(n int) U64 {
	switch {
	case n < 0 || n >= 64:
		return U64{}
	case n == 0:
		return a
	case n == 32:
		return U64{Lo: 0, Hi: a.Lo}
	case n > 32:
		return U64{Lo: 0, Hi: a.Lo << (n - 32)}
	default:
		return U64{Lo: a.Lo << n, Hi: a.Hi<<n | a.Lo>>(32-n)}
	}
}

// Shr returns a>>n (logical). Amounts >= 64 or < 0 yield zero; 32 is a direct
// word move.
func (a U64) Shr(n int) U64 {
	switch {
	case n < 0 || n >= 64:
		return U64{}
	case n == 0:
		return a
	case n == 32:
		return U64{Lo: a.Hi, Hi: 0}
	case n > 32:
		return U64{Lo: a.Hi >> (n - 32), Hi: 0}
	default:
		return U64{Lo: a.Lo>>n | a.Hi<<(32-n), Hi: a.Hi >> n}
	}
}

// ============================================================================
// Comparison: high word first, low word as tiebreaker
// ============================================================================

// Cmp returns -1, 0 or 1 as a is below, equal to or above b. The order is
// total and consistent with mathematical value.
func (a U64) Cmp(b U64) int {
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
func (a U64) Eq(b U64) bool {
	return a.Lo == b.Lo && a.Hi == b.Hi
}

// Less reports a < b.
func (a U64) Less(b U64) bool {
	return a.Cmp(b) < 0
}
