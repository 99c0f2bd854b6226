package picrt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var i64Samples = []int64{
	0, 1, -1, 2, -2, 100, -100,
	0x7FFFFFFF, -0x80000000, 0x80000000, -0x80000001,
	0x123456789ABCDEF0, -0x123456789ABCDEF0,
	math.MaxInt64, math.MinInt64, 5381,
}

func TestI64RoundTrip(t *testing.T) {
	for _, v := range i64Samples {
		require.Equal(t, v, I64FromInt(v).Int())
	}
	require.Equal(t, int64(-1), MakeI64(-1, 0xFFFFFFFF).Int())
	require.Equal(t, int64(-5), I64FromInt32(-5).Int())
}

func TestI64Sign(t *testing.T) {
	require.True(t, I64FromInt(-1).IsNeg())
	require.False(t, I64FromInt(0).IsNeg())
	require.False(t, I64FromInt(1).IsNeg())
	require.True(t, I64FromInt(0).IsZero())

	require.Equal(t, int64(-7), I64FromInt(7).Neg().Int())
	require.Equal(t, uint64(7), I64FromInt(-7).Abs().Uint())
	// MinInt64 has no positive counterpart; its magnitude is exact in U64.
	require.Equal(t, uint64(1)<<63, I64FromInt(math.MinInt64).Abs().Uint())
}

func TestI64AddSubMul(t *testing.T) {
	for _, a := range i64Samples {
		for _, b := range i64Samples {
			wa, wb := I64FromInt(a), I64FromInt(b)
			require.Equal(t, a+b, wa.Add(wb).Int(), "%d + %d", a, b)
			require.Equal(t, a-b, wa.Sub(wb).Int(), "%d - %d", a, b)
			require.Equal(t, a*b, wa.Mul(wb).Int(), "%d * %d", a, b)
		}
	}
}

func TestI64DivMod(t *testing.T) {
	for _, a := range i64Samples {
		for _, b := range i64Samples {
			if b == 0 || (a == math.MinInt64 && b == -1) {
				continue
			}
			wa, wb := I64FromInt(a), I64FromInt(b)
			q, r := wa.DivMod(wb)
			require.Equal(t, a/b, q.Int(), "%d / %d", a, b)
			require.Equal(t, a%b, r.Int(), "%d %% %d", a, b)
			// Truncated division identity.
			require.Equal(t, wa, q.Mul(wb).Add(r))
		}
	}
}

func TestI64DivSigns(t *testing.T) {
	// Quotient truncates toward zero; remainder follows the dividend.
	cases := []struct{ a, b, q, r int64 }{
		{7, 2, 3, 1},
		{-7, 2, -3, -1},
		{7, -2, -3, 1},
		{-7, -2, 3, -1},
	}
	for _, c := range cases {
		q, r := I64FromInt(c.a).DivMod(I64FromInt(c.b))
		require.Equal(t, c.q, q.Int(), "%d / %d", c.a, c.b)
		require.Equal(t, c.r, r.Int(), "%d %% %d", c.a, c.b)
	}
}

func TestI64DivByZero(t *testing.T) {
	q, r := I64FromInt(-42).DivMod(I64{})
	require.True(t, q.IsZero())
	require.True(t, r.IsZero())
}

func TestI64ArithmeticShr(t *testing.T) {
	cases := []struct {
		in  int64
		n   int
		out int64
	}{
		{-8, 1, -4},
		{-8, 2, -2},
		{-1, 63, -1},
		{-1, 64, -1},
		{1 << 40, 40, 1},
		{math.MinInt64, 63, -1},
		{math.MinInt64, 32, math.MinInt64 >> 32},
		{5, 64, 0},
		{5, -1, 0},
	}
	for _, c := range cases {
		require.Equal(t, c.out, I64FromInt(c.in).Shr(c.n).Int(), "%d >> %d", c.in, c.n)
	}
}

func TestI64Shl(t *testing.T) {
	require.Equal(t, int64(-16), I64FromInt(-1).Shl(4).Int())
	require.Equal(t, int64(1)<<40, I64FromInt(1).Shl(40).Int())
	require.True(t, I64FromInt(1).Shl(64).IsZero())
}

func TestI64Ordering(t *testing.T) {
	sorted := []int64{math.MinInt64, -0x80000001, -1, 0, 1, 0x7FFFFFFF, 0x80000000, math.MaxInt64}
	for i, a := range sorted {
		for j, b := range sorted {
			wa, wb := I64FromInt(a), I64FromInt(b)
			switch {
			case i < j:
				require.Equal(t, -1, wa.Cmp(wb), "%d < %d", a, b)
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
