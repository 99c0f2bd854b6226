package picrt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Value table exercising both halves and the boundaries between them.
var u64Samples = []uint64{
	0, 1, 2, 0xFFFF, 0x10000, 0xFFFFFFFF, 0x100000000,
	0xFFFFFFFE, 0x1FFFFFFFF, 0x123456789ABCDEF0,
	0x8000000000000000, 0xFFFFFFFFFFFFFFFF, 5381, 33,
}

func TestU64RoundTrip(t *testing.T) {
	for _, v := range u64Samples {
		require.Equal(t, v, U64FromUint(v).Uint())
	}
	require.Equal(t, uint64(0x100000002), MakeU64(1, 2).Uint())
}

func TestU64AddSub(t *testing.T) {
	for _, a := range u64Samples {
		for _, b := range u64Samples {
			wa, wb := U64FromUint(a), U64FromUint(b)
			require.Equal(t, a+b, wa.Add(wb).Uint(), "%#x + %#x", a, b)
			require.Equal(t, a-b, wa.Sub(wb).Uint(), "%#x - %#x", a, b)
			// (a+b)-b == a, mod 2^64.
			require.Equal(t, a, wa.Add(wb).Sub(wb).Uint())
		}
	}
}

func TestU64CarryAcrossWordBoundary(t *testing.T) {
	got := MakeU64(0, 0xFFFFFFFF).Add(MakeU64(0, 1))
	require.Equal(t, MakeU64(1, 0), got)

	got = MakeU64(1, 0).Sub(MakeU64(0, 1))
	require.Equal(t, MakeU64(0, 0xFFFFFFFF), got)
}

func TestU64IncDec(t *testing.T) {
	require.Equal(t, MakeU64(1, 0), MakeU64(0, 0xFFFFFFFF).Inc())
	require.Equal(t, MakeU64(0, 0xFFFFFFFF), MakeU64(1, 0).Dec())
	require.Equal(t, U64{}, MaxU64().Inc())
}

func TestU64Mul(t *testing.T) {
	// The carry-across-the-boundary case from the reference vector set.
	got := MakeU64(0, 0xFFFFFFFF).Mul(MakeU64(0, 2))
	require.Equal(t, MakeU64(1, 0xFFFFFFFE), got)

	for _, a := range u64Samples {
		for _, b := range u64Samples {
			wa, wb := U64FromUint(a), U64FromUint(b)
			require.Equal(t, a*b, wa.Mul(wb).Uint(), "%#x * %#x", a, b)
			// Commutative mod 2^64.
			require.Equal(t, wa.Mul(wb), wb.Mul(wa))
		}
	}
}

func TestU64MulAssociative(t *testing.T) {
	vals := []uint64{3, 0xFFFFFFFF, 0x123456789, 7, 0x8000000000000001}
	for _, a := range vals {
		for _, b := range vals {
			for _, c := range vals {
				wa, wb, wc := U64FromUint(a), U64FromUint(b), U64FromUint(c)
				require.Equal(t, wa.Mul(wb).Mul(wc), wa.Mul(wb.Mul(wc)))
			}
		}
	}
}

func TestU64DivMod(t *testing.T) {
	for _, a := range u64Samples {
		for _, b := range u64Samples {
			if b == 0 {
				continue
			}
			wa, wb := U64FromUint(a), U64FromUint(b)
			q, r := wa.DivMod(wb)
			require.Equal(t, a/b, q.Uint(), "%#x / %#x", a, b)
			require.Equal(t, a%b, r.Uint(), "%#x %% %#x", a, b)
			// a == (a/b)*b + (a%b), and a%b < b.
			require.Equal(t, wa, q.Mul(wb).Add(r))
			require.True(t, r.Less(wb))
		}
	}
}

func TestU64DivByZero(t *testing.T) {
	// Defined, silent, non-trapping.
	a := U64FromUint(0x123456789ABCDEF0)
	require.Equal(t, U64{}, a.Div(U64{}))
	require.Equal(t, U64{}, a.Mod(U64{}))
}

func TestU64Shifts(t *testing.T) {
	cases := []struct {
		in  U64
		n   int
		shl U64
		shr U64
	}{
		{MakeU64(0, 1), 0, MakeU64(0, 1), MakeU64(0, 1)},
		{MakeU64(0, 1), 1, MakeU64(0, 2), U64{}},
		{MakeU64(0, 1), 32, MakeU64(1, 0), U64{}},
		{MakeU64(1, 0), 32, U64{}, MakeU64(0, 1)},
		{MakeU64(0, 1), 33, MakeU64(2, 0), U64{}},
		{MakeU64(0x80000000, 0), 1, U64{}, MakeU64(0x40000000, 0)},
		{MakeU64(1, 2), 63, U64{}, U64{}},
		{MakeU64(0, 3), 63, MakeU64(0x80000000, 0), U64{}},
	}
	for _, c := range cases {
		require.Equal(t, c.shl, c.in.Shl(c.n), "%+v << %d", c.in, c.n)
		require.Equal(t, c.shr, c.in.Shr(c.n), "%+v >> %d", c.in, c.n)
	}

	// Out-of-range amounts yield zero.
	for _, n := range []int{64, 65, 1000, -1, -64} {
		require.Equal(t, U64{}, MakeU64(0xDEADBEEF, 0xCAFEF00D).Shl(n))
		require.Equal(t, U64{}, MakeU64(0xDEADBEEF, 0xCAFEF00D).Shr(n))
	}
}

func TestU64Bitwise(t *testing.T) {
	a := MakeU64(0xF0F0F0F0, 0x12345678)
	b := MakeU64(0x0FF00FF0, 0x87654321)
	require.Equal(t, MakeU64(0xF0F0F0F0&0x0FF00FF0, 0x12345678&0x87654321), a.And(b))
	require.Equal(t, MakeU64(0xF0F0F0F0|0x0FF00FF0, 0x12345678|0x87654321), a.Or(b))
	require.Equal(t, MakeU64(0xF0F0F0F0^0x0FF00FF0, 0x12345678^0x87654321), a.Xor(b))
	require.Equal(t, MaxU64(), a.Xor(a).Not())
}

func TestU64Ordering(t *testing.T) {
	// Strict total order consistent with mathematical value.
	sorted := []uint64{0, 1, 0xFFFF, 0xFFFFFFFF, 0x100000000, 0x8000000000000000, 0xFFFFFFFFFFFFFFFF}
	for i, a := range sorted {
		for j, b := range sorted {
			wa, wb := U64FromUint(a), U64FromUint(b)
			switch {
			case i < j:
				require.Equal(t, -1, wa.Cmp(wb), "%#x < %#x", a, b)
				require.True(t, wa.Less(wb))
			case i > j:
				require.Equal(t, 1, wa.Cmp(wb))
			default:
				require.Equal(t, 0, wa.Cmp(wb))
				require.True(t, wa.Eq(wb))
			}
		}
	}
}

func TestMul64To128(t *testing.T) {
	cases := []struct {
		a, b   uint64
		hi, lo uint64
	}{
		{0, 0, 0, 0},
		{1, 0xFFFFFFFFFFFFFFFF, 0, 0xFFFFFFFFFFFFFFFF},
		{0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFE, 1},
		{0x100000000, 0x100000000, 1, 0},
		{1 << 52, 1 << 52, 1 << 40, 0}, // the soft-float mantissa case
	}
	for _, c := range cases {
		hi, lo := mul64To128(U64FromUint(c.a), U64FromUint(c.b))
		require.Equal(t, c.hi, hi.Uint(), "%#x * %#x hi", c.a, c.b)
		require.Equal(t, c.lo, lo.Uint(), "%#x * %#x lo", c.a, c.b)
	}
}
