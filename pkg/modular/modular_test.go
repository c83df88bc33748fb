package modular

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
)

func n(v int64) bigint.Int { return bigint.New(v) }

func TestCanonical(t *testing.T) {
	tests := []struct {
		x, m, want int64
	}{
		{17, 5, 2},
		{-17, 5, 3},
		{-15, 5, 0},
		{0, 7, 0},
		{4, 7, 4},
		{-1, 1000000007, 1000000006},
	}
	for _, tt := range tests {
		got, err := Canonical(n(tt.x), n(tt.m))
		require.NoError(t, err)
		assert.Equal(t, n(tt.want).String(), got.String(), "Canonical(%d, %d)", tt.x, tt.m)
	}

	_, err := Canonical(n(3), bigint.Zero())
	assert.ErrorIs(t, err, bigint.ErrDivisionByZero)
}

func TestCanonicalDiffersFromRem(t *testing.T) {
	rem, err := n(-7).Rem(n(3))
	require.NoError(t, err)
	canon, err := Canonical(n(-7), n(3))
	require.NoError(t, err)
	assert.Equal(t, "-1", rem.String())
	assert.Equal(t, "2", canon.String())
}

func TestAddSubMulMod(t *testing.T) {
	m := n(13)
	for a := int64(-20); a <= 20; a += 3 {
		for b := int64(-20); b <= 20; b += 7 {
			add, err := AddMod(n(a), n(b), m)
			require.NoError(t, err)
			sub, err := SubMod(n(a), n(b), m)
			require.NoError(t, err)
			mul, err := MulMod(n(a), n(b), m)
			require.NoError(t, err)

			assert.True(t, add.Equal(n(((a+b)%13+13)%13)), "AddMod(%d, %d) = %s", a, b, add)
			assert.True(t, sub.Equal(n(((a-b)%13+13)%13)), "SubMod(%d, %d) = %s", a, b, sub)
			assert.True(t, mul.Equal(n(((a*b)%13+13)%13)), "MulMod(%d, %d) = %s", a, b, mul)
		}
	}
}

func TestPowMod(t *testing.T) {
	got, err := PowMod(n(3), n(200), n(1000000007))
	require.NoError(t, err)
	want := new(big.Int).Exp(big.NewInt(3), big.NewInt(200), big.NewInt(1000000007))
	assert.Equal(t, want.String(), got.String())

	one, err := PowMod(n(12345), bigint.Zero(), n(97))
	require.NoError(t, err)
	assert.Equal(t, "1", one.String(), "x^0")

	zero, err := PowMod(n(5), bigint.Zero(), bigint.One())
	require.NoError(t, err)
	assert.Equal(t, "0", zero.String(), "x^0 mod 1")

	neg, err := PowMod(n(-2), n(3), n(7))
	require.NoError(t, err)
	assert.Equal(t, "6", neg.String(), "(-2)^3 mod 7")

	_, err = PowMod(n(2), n(-1), n(7))
	assert.ErrorIs(t, err, ErrNegativeExponent)

	mod := bigint.Parse("340282366920938463463374607431768211507")
	base := bigint.Parse("123456789123456789123456789")
	exp := bigint.Parse("98765432198765432198765")
	got, err = PowMod(base, exp, mod)
	require.NoError(t, err)
	bm, _ := new(big.Int).SetString(mod.String(), 10)
	bb, _ := new(big.Int).SetString(base.String(), 10)
	be, _ := new(big.Int).SetString(exp.String(), 10)
	assert.Equal(t, new(big.Int).Exp(bb, be, bm).String(), got.String())
}

func TestPow(t *testing.T) {
	for x := int64(2); x <= 7; x++ {
		want := int64(1)
		for y := int64(0); y <= 10; y++ {
			got, err := Pow(n(x), n(y))
			require.NoError(t, err)
			assert.True(t, got.Equal(n(want)), "Pow(%d, %d) = %s, want %d", x, y, got, want)
			want *= x
		}
	}
}

func TestExtendedGCD(t *testing.T) {
	pairs := [][2]int64{{84, 33}, {33, 84}, {240, 46}, {17, 5}, {0, 9}, {9, 0}, {-84, 33}, {84, -33}, {1, 1}}
	for _, p := range pairs {
		a, b := n(p[0]), n(p[1])
		g, x, y, err := ExtendedGCD(a, b)
		require.NoError(t, err)
		lhs := a.Mul(x).Add(b.Mul(y))
		assert.True(t, lhs.Equal(g), "%d*%s + %d*%s = %s, want %s", p[0], x, p[1], y, lhs, g)
		assert.True(t, g.Abs().Equal(GCD(a, b)), "ExtendedGCD(%d, %d) g = %s", p[0], p[1], g)
	}

	g, _, _, err := ExtendedGCD(n(84), n(33))
	require.NoError(t, err)
	assert.Equal(t, "3", g.String())
}

func TestInverseMod(t *testing.T) {
	got, err := InverseMod(n(34795381), n(226339651))
	require.NoError(t, err)
	assert.Equal(t, "38572232", got.String())

	neg, err := InverseMod(n(-3), n(7))
	require.NoError(t, err)
	check, err := MulMod(n(-3), neg, n(7))
	require.NoError(t, err)
	assert.Equal(t, "1", check.String())

	_, err = InverseMod(n(6), n(9))
	assert.ErrorIs(t, err, ErrNotInvertible)
}

func TestDivMod(t *testing.T) {
	got, err := DivMod(n(10), n(4), n(13))
	require.NoError(t, err)
	check, err := MulMod(got, n(4), n(13))
	require.NoError(t, err)
	assert.Equal(t, "10", check.String())

	_, err = DivMod(n(1), n(2), n(4))
	assert.ErrorIs(t, err, ErrNotInvertible)
}

func TestGCD(t *testing.T) {
	tests := []struct{ a, b, want int64 }{
		{12, 18, 6},
		{-12, 18, 6},
		{17, 5, 1},
		{0, 5, 5},
		{5, 0, 5},
		{0, 0, 0},
		{1000000007 * 3, 1000000007 * 7, 1000000007},
	}
	for _, tt := range tests {
		assert.Equal(t, n(tt.want).String(), GCD(n(tt.a), n(tt.b)).String(), "GCD(%d, %d)", tt.a, tt.b)
	}
}

func TestSqrt(t *testing.T) {
	check := func(v bigint.Int) {
		t.Helper()
		r, err := Sqrt(v)
		require.NoError(t, err)
		next := r.Add(bigint.One())
		require.True(t, r.Mul(r).LessEq(v) && next.Mul(next).Greater(v),
			"Sqrt(%s) = %s violates r² ≤ n < (r+1)²", v, r)
	}

	for x := int64(0); x <= 1000; x++ {
		check(n(x))
	}
	for x := int64(2); x <= 1_000_000_000_000; x = x*16/10 + 1 {
		check(n(x))
	}
	check(bigint.Parse("340282366920938463463374607431768211507"))
	check(bigint.Parse("99999999999999999999999999999999999999999999999999"))

	_, err := Sqrt(n(-4))
	assert.ErrorIs(t, err, ErrNegativeSquareRoot)
}
