package numtheory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/modular"
)

func TestChinese(t *testing.T) {
	got, err := Chinese([]Congruence{
		{Residue: n(2), Modulus: n(3)},
		{Residue: n(3), Modulus: n(5)},
		{Residue: n(2), Modulus: n(7)},
	})
	require.NoError(t, err)
	assert.Equal(t, "23", got.String())

	single, err := Chinese([]Congruence{{Residue: n(-4), Modulus: n(9)}})
	require.NoError(t, err)
	assert.Equal(t, "5", single.String())
}

func TestChineseLargeSystem(t *testing.T) {
	system := []Congruence{
		{Residue: bigint.Parse("123456"), Modulus: n(1000003)},
		{Residue: bigint.Parse("-987654"), Modulus: n(1000033)},
		{Residue: bigint.Parse("5"), Modulus: n(97)},
		{Residue: bigint.Parse("999999999999"), Modulus: n(1000000007)},
		{Residue: bigint.Parse("42"), Modulus: bigint.Parse("340282366920938463463374607431768211507")},
	}
	got, err := Chinese(system)
	require.NoError(t, err)

	product := bigint.One()
	for _, c := range system {
		product = product.Mul(c.Modulus)
		want, err := modular.Canonical(c.Residue, c.Modulus)
		require.NoError(t, err)
		r, err := modular.Canonical(got, c.Modulus)
		require.NoError(t, err)
		assert.True(t, r.Equal(want), "%s mod %s = %s, want %s", got, c.Modulus, r, want)
	}
	assert.True(t, got.Sign() >= 0 && got.Less(product), "Chinese = %s outside [0, %s)", got, product)
}

func TestChineseErrors(t *testing.T) {
	_, err := Chinese(nil)
	assert.ErrorIs(t, err, ErrEmptySystem)

	_, err = Chinese([]Congruence{
		{Residue: n(1), Modulus: n(6)},
		{Residue: n(2), Modulus: n(9)},
	})
	assert.ErrorIs(t, err, modular.ErrNotInvertible)

	_, err = Chinese([]Congruence{{Residue: n(1), Modulus: n(0)}})
	assert.ErrorIs(t, err, ErrNotPositive)
}

func TestLogMod(t *testing.T) {
	x, found, err := LogMod(n(3), n(13), n(17))
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "4", x.String())

	x, found, err = LogMod(n(5), n(34), n(91))
	require.NoError(t, err)
	require.True(t, found)
	check, err := modular.PowMod(n(5), x, n(91))
	require.NoError(t, err)
	assert.Equal(t, "34", check.String(), "5^%s mod 91", x)

	// 2 generates the multiplicative group mod 101.
	for ans := int64(1); ans < 101; ans++ {
		x, found, err := LogMod(n(2), n(ans), n(101))
		require.NoError(t, err, "LogMod(2, %d, 101)", ans)
		require.True(t, found, "LogMod(2, %d, 101)", ans)
		assert.True(t, x.Less(n(101)), "LogMod(2, %d, 101) = %s is not below the modulus", ans, x)
		check, err := modular.PowMod(n(2), x, n(101))
		require.NoError(t, err)
		assert.True(t, check.Equal(n(ans)), "2^%s mod 101 = %s, want %d", x, check, ans)
	}
}

func TestLogModNoSolution(t *testing.T) {
	// Powers of 2 mod 7 are 1, 2 and 4.
	_, found, err := LogMod(n(2), n(3), n(7))
	require.NoError(t, err)
	assert.False(t, found)

	_, found, err = LogMod(n(6), n(1), n(9))
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = LogMod(n(2), n(1), n(0))
	assert.ErrorIs(t, err, ErrNotPositive)

	huge := bigint.Parse("340282366920938463463374607431768211507")
	_, _, err = LogMod(n(3), n(5), huge)
	assert.ErrorIs(t, err, ErrTableTooLarge)

	// √(2^50) + 1 fits a machine word but exceeds the 2^24 table cap.
	_, _, err = LogMod(n(3), n(5), n(1<<50))
	assert.ErrorIs(t, err, ErrTableTooLarge)
}

func TestLegendre(t *testing.T) {
	tests := []struct {
		a, p int64
		want int
	}{
		{18, 31, 1},
		{83, 17, 1},
		{8, 61, -1},
		{20, 107, -1},
		{25, 5, 0},
	}
	for _, tt := range tests {
		got, err := Legendre(n(tt.a), n(tt.p))
		require.NoError(t, err, "Legendre(%d, %d)", tt.a, tt.p)
		assert.Equal(t, tt.want, got, "Legendre(%d, %d)", tt.a, tt.p)
	}

	_, err := Legendre(n(3), n(1))
	assert.ErrorIs(t, err, ErrNotPositive)
}

func TestJacobi(t *testing.T) {
	tests := []struct {
		a, b int64
		want int
	}{
		{2, 15, 1},
		{8, 21, -1},
		{19, 45, 1},
		{1001, 9907, -1},
		{3, 9, 0},
		{0, 7, 0},
		{-3, 7, 0},
		{5, 8, 0},
		{5, -7, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Jacobi(n(tt.a), n(tt.b)), "Jacobi(%d, %d)", tt.a, tt.b)
	}
}

func TestJacobiMatchesLegendreForPrimes(t *testing.T) {
	for _, p := range []int64{3, 5, 7, 11, 13, 97} {
		for a := int64(1); a <= 2*p; a++ {
			l, err := Legendre(n(a), n(p))
			require.NoError(t, err, "Legendre(%d, %d)", a, p)
			assert.Equal(t, l, Jacobi(n(a), n(p)), "Jacobi(%d, %d)", a, p)
		}
	}
}
