// Completion: 100% - Soft binary64 module complete
package picrt

import "math"

// F64 is an IEEE-754 binary64 value stored as a raw bit pattern and computed
// on with U64 word arithmetic only: unpack the fields with shifts and masks,
// work on the significands as wide integers, round to nearest-even, repack.
// Nothing here touches the host FPU or a compiler-generated literal, so code
// generated from these routines carries no constant-pool entries.
//
// The bit pattern is carried as-is: no NaN canonicalization happens on
// construction, negation or field access. Arithmetic that must produce a NaN
// of its own (inf-inf, 0*inf, 0/0, inf/inf) uses the quiet default pattern.
type F64 struct {
	bits U64
}

// Field layout: 1 sign bit, 11 exponent bits, 52 fraction bits.
const (
	expBias  = 1023
	expMax   = 0x7FF
	signMask = 0x80000000 // high word
)

var (
	fracMask    = MakeU64(0x000FFFFF, 0xFFFFFFFF)
	implicitBit = MakeU64(0x00100000, 0x00000000) // bit 52
	u64One      = MakeU64(0, 1)
)

// F64FromBits wraps a raw bit pattern.
func F64FromBits(b U64) F64 {
	return F64{bits: b}
}

// Bits returns the raw pattern.
func (f F64) Bits() U64 {
	return f.bits
}

// F64FromFloat captures a native float64's bit pattern. Bake-time boundary
// helper, the scalar-embedding counterpart of HashName.
func F64FromFloat(v float64) F64 {
	return F64{bits: U64FromUint(math.Float64bits(v))}
}

// Float reinterprets the pattern as a native float64. Boundary helper.
func (f F64) Float() float64 {
	return math.Float64frombits(f.bits.Uint())
}

// ============================================================================
// Classification
// ============================================================================

func (f F64) signBit() uint32 {
	return f.bits.Hi >> 31
}

func (f F64) expField() int32 {
	return int32((f.bits.Hi >> 20) & expMax)
}

func (f F64) fracField() U64 {
	return f.bits.And(fracMask)
}

// IsNaN reports whether f is any NaN.
func (f F64) IsNaN() bool {
	return f.expField() == expMax && !f.fracField().IsZero()
}

// IsInf reports whether f is +Inf or -Inf.
func (f F64) IsInf() bool {
	return f.expField() == expMax && f.fracField().IsZero()
}

// IsZero reports whether f is +0 or -0.
func (f F64) IsZero() bool {
	return f.expField() == 0 && f.fracField().IsZero()
}

func zeroF64(sign uint32) F64 {
	return F64{bits: U64{Hi: sign << 31}}
}

func infF64(sign uint32) F64 {
	return F64{bits: U64{Hi: sign<<31 | uint32(expMax)<<20}}
}

func nanF64() F64 {
	return F64{bits: MakeU64(0x7FF80000, 0)} // quiet default NaN
}

// Neg flips the sign bit and nothing else.
func (f F64) Neg() F64 {
	return F64{bits: U64{Lo: f.bits.Lo, Hi: f.bits.Hi ^ signMask}}
}

// Abs clears the sign bit.
func (f F64) Abs() F64 {
	return F64{bits: U64{Lo: f.bits.Lo, Hi: f.bits.Hi &^ signMask}}
}

// ============================================================================
// Unpack / round / pack
// ============================================================================

// unpackFinite splits a finite nonzero value into sign, biased exponent and a
// 53-bit significand with the implicit bit in place. Subnormals normalize
// here, which can drive the exponent to zero or below; roundPack undoes that
// on the way out.
func (f F64) unpackFinite() (sign uint32, exp int32, sig U64) {
	sign = f.signBit()
	exp = f.expField()
	sig = f.fracField()
	if exp == 0 {
		exp = 1
		for sig.And(implicitBit).IsZero() {
			sig = sig.Shl(1)
			exp--
		}
		return sign, exp, sig
	}
	return sign, exp, sig.Or(implicitBit)
}

// shrSticky shifts right n bits, ORing every bit shifted out into the result's
// lowest bit so rounding still sees that something was lost.
func shrSticky(a U64, n int32) U64 {
	if n <= 0 {
		return a
	}
	if n >= 64 {
		if a.IsZero() {
			return U64{}
		}
		return u64One
	}
	r := a.Shr(int(n))
	if !a.Shl(64 - int(n)).IsZero() {
		r = r.Or(u64One)
	}
	return r
}

// shr128Sticky is shrSticky over a 128-bit value, for 1 <= n <= 63.
func shr128Sticky(hi, lo U64, n int32) U64 {
	r := hi.Shl(64 - int(n)).Or(lo.Shr(int(n)))
	if !lo.Shl(64 - int(n)).IsZero() {
		r = r.Or(u64One)
	}
	return r
}

// roundPack encodes sign * (sig56/2^55) * 2^(exp-1023), where sig56 carries
// the significand with the leading bit at position 55 and three
// guard/round/sticky bits below the fraction. Rounds to nearest, ties to
// even. Exponent overflow returns infinity; exponents at or below zero fall
// into the subnormal range (or all the way to zero).
func roundPack(sign uint32, exp int32, sig56 U64) F64 {
	if exp >= expMax {
		return infF64(sign)
	}
	if exp <= 0 {
		sig56 = shrSticky(sig56, 1-exp)
		exp = 0
	}

	grs := sig56.Lo & 7
	lsb := sig56.Shr(3).Lo & 1
	inc := grs&4 != 0 && (grs&3 != 0 || lsb != 0)

	sig := sig56.Shr(3)
	var bits U64
	if exp == 0 {
		bits = sig // fraction only; the implicit bit never made it back
	} else {
		bits = U64{Lo: sig.Lo, Hi: uint32(exp)<<20 | sig.Hi&0x000FFFFF}
	}
	if inc {
		// Carry propagation does the rest: a full fraction rolls into the
		// exponent field, a full exponent rolls into infinity.
		bits = bits.Add(u64One)
	}
	bits.Hi |= sign << 31
	return F64{bits: bits}
}

// ============================================================================
// Addition and subtraction
// ============================================================================

// Add returns a+b, rounded to nearest-even.
func (a F64) Add(b F64) F64 {
	if a.IsNaN() {
		return a
	}
	if b.IsNaN() {
		return b
	}
	if a.IsInf() {
		if b.IsInf() && a.signBit() != b.signBit() {
			return nanF64()
		}
		return a
	}
	if b.IsInf() {
		return b
	}
	if a.IsZero() {
		if b.IsZero() {
			if a.signBit() == b.signBit() {
				return a
			}
			return zeroF64(0) // opposite zeros sum to +0 in round-to-nearest
		}
		return b
	}
	if b.IsZero() {
		return a
	}

	signA, expA, sigA := a.unpackFinite()
	signB, expB, sigB := b.unpackFinite()
	sigA = sigA.Shl(3)
	sigB = sigB.Shl(3)

	// Order by magnitude so the swap-free path below sees |A| >= |B|.
	if expA < expB || (expA == expB && sigA.Less(sigB)) {
		signA, signB = signB, signA
		expA, expB = expB, expA
		sigA, sigB = sigB, sigA
	}
	sigB = shrSticky(sigB, expA-expB)

	if signA == signB {
		sum := sigA.Add(sigB)
		exp := expA
		if sum.bit(56) != 0 {
			sum = shrSticky(sum, 1)
			exp++
		}
		return roundPack(signA, exp, sum)
	}

	diff := sigA.Sub(sigB)
	if diff.IsZero() {
		return zeroF64(0) // exact cancellation
	}
	exp := expA
	for diff.bit(55) == 0 {
		diff = diff.Shl(1)
		exp--
	}
	return roundPack(signA, exp, diff)
}

// Sub returns a-b.
func (a F64) Sub(b F64) F64 {
	if b.IsNaN() {
		return b
	}
	return a.Add(b.Neg())
}

// ============================================================================
// Multiplication
// ============================================================================

// Mul returns a*b, rounded to nearest-even.
func (a F64) Mul(b F64) F64 {
	if a.IsNaN() {
		return a
	}
	if b.IsNaN() {
		return b
	}
	sign := a.signBit() ^ b.signBit()
	if a.IsInf() || b.IsInf() {
		if a.IsZero() || b.IsZero() {
			return nanF64() // 0 * inf
		}
		return infF64(sign)
	}
	if a.IsZero() || b.IsZero() {
		return zeroF64(sign)
	}

	_, expA, sigA := a.unpackFinite()
	_, expB, sigB := b.unpackFinite()
	exp := expA + expB - expBias

	// 53x53 product: 105 or 106 significant bits.
	hi, lo := mul64To128(sigA, sigB)
	var sig56 U64
	if hi.bit(41) != 0 { // product bit 105: mantissa in [2,4)
		sig56 = shr128Sticky(hi, lo, 50)
		exp++
	} else {
		sig56 = shr128Sticky(hi, lo, 49)
	}
	return roundPack(sign, exp, sig56)
}

// ============================================================================
// Division
// ============================================================================

// Div returns a/b, rounded to nearest-even. Division of a finite nonzero
// value by zero yields a signed infinity: a defined pattern, silently, since
// no trap handler exists at this layer. 0/0 and inf/inf yield the default
// NaN.
func (a F64) Div(b F64) F64 {
	if a.IsNaN() {
		return a
	}
	if b.IsNaN() {
		return b
	}
	sign := a.signBit() ^ b.signBit()
	if a.IsInf() {
		if b.IsInf() {
			return nanF64()
		}
		return infF64(sign)
	}
	if b.IsInf() {
		return zeroF64(sign)
	}
	if b.IsZero() {
		if a.IsZero() {
			return nanF64()
		}
		return infF64(sign)
	}
	if a.IsZero() {
		return zeroF64(sign)
	}

	_, expA, sigA := a.unpackFinite()
	_, expB, sigB := b.unpackFinite()
	exp := expA - expB + expBias
	if sigA.Less(sigB) {
		sigA = sigA.Shl(1)
		exp--
	}

	// Restoring long division of the significands: 56 quotient bits, leading
	// bit guaranteed by the pre-shift, remainder folded into sticky.
	var q U64
	rem := sigA
	for i := 0; i < 56; i++ {
		q = q.Shl(1)
		if rem.Cmp(sigB) >= 0 {
			rem = rem.Sub(sigB)
			q = q.Or(u64One)
		}
		rem = rem.Shl(1)
	}
	if !rem.IsZero() {
		q = q.Or(u64One)
	}
	return roundPack(sign, exp, q)
}

// ============================================================================
// Integer conversions
// ============================================================================

// F64FromInt32 converts exactly: split sign from magnitude, left-normalize
// the magnitude to find the binary exponent, pack. Every int32 is
// representable, so no rounding happens.
func F64FromInt32(v int32) F64 {
	if v == 0 {
		return zeroF64(0)
	}
	sign := uint32(0)
	mag := uint32(v)
	if v < 0 {
		sign = 1
		mag = -mag
	}
	p := 31
	for (mag>>p)&1 == 0 {
		p--
	}
	sig := MakeU64(0, mag).Shl(52 - p)
	exp := int32(expBias + p)
	bits := U64{Lo: sig.Lo, Hi: sign<<31 | uint32(exp)<<20 | sig.Hi&0x000FFFFF}
	return F64{bits: bits}
}

// Int32 converts with truncation toward zero and saturation: NaN yields 0,
// values at or beyond the int32 range clamp to the nearest bound. The
// saturating policy is deliberate; nothing downstream can represent an
// out-of-range result, and clamping is at least ordered correctly.
func (f F64) Int32() int32 {
	if f.IsNaN() {
		return 0
	}
	sign := f.signBit()
	exp := f.expField()
	if exp == expMax { // infinities saturate
		if sign != 0 {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	e := exp - expBias
	if e < 0 {
		return 0 // |f| < 1 truncates to zero
	}
	if e >= 31 {
		// -2^31 itself lands here exactly; everything else clamps to it.
		if sign != 0 {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	sig := f.fracField().Or(implicitBit)
	mag := sig.Shr(int(52 - e)).Lo
	if sign != 0 {
		return -int32(mag)
	}
	return int32(mag)
}

// ============================================================================
// Comparisons
// ============================================================================

// Eq reports a == b in the IEEE sense: false if either is NaN, true for
// +0 == -0.
func (a F64) Eq(b F64) bool {
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	if a.IsZero() && b.IsZero() {
		return true
	}
	return a.bits.Eq(b.bits)
}

// Less reports a < b; false if either is NaN.
func (a F64) Less(b F64) bool {
	if a.IsNaN() || b.IsNaN() {
		return false
	}
	aNeg := a.signBit() != 0
	bNeg := b.signBit() != 0
	if a.IsZero() && b.IsZero() {
		return false
	}
	if aNeg != bNeg {
		return aNeg
	}
	if aNeg {
		am := U64{Lo: a.bits.Lo, Hi: a.bits.Hi &^ signMask}
		bm := U64{Lo: b.bits.Lo, Hi: b.bits.Hi &^ signMask}
		return bm.Less(am)
	}
	return a.bits.Less(b.bits)
}

// LessEq reports a <= b; false if either is NaN.
func (a F64) LessEq(b F64) bool {
	return a.Less(b) || a.Eq(b)
}

// Greater reports a > b; false if either is NaN.
func (a F64) Greater(b F64) bool {
	return b.Less(a)
}

// GreaterEq reports a >= b; false if either is NaN.
func (a F64) GreaterEq(b F64) bool {
	return b.LessEq(a)
}
