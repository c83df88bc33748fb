package numtheory

import (
	"fmt"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/modular"
)

// Legendre returns the Legendre symbol (a/p) for an odd prime p by Euler's
// criterion: 0 when p divides a, 1 for quadratic residues and -1 otherwise.
// p is not checked for primality.
func Legendre(a, p bigint.Int) (int, error) {
	if p.Less(two) {
		return 0, fmt.Errorf("%w: legendre modulus %s", ErrNotPositive, p)
	}
	exp := must(p.Sub(one).Quo(two))
	r, err := modular.PowMod(a, exp, p)
	if err != nil {
		return 0, err
	}
	switch {
	case r.IsZero():
		return 0, nil
	case r.Equal(one):
		return 1, nil
	default:
		return -1, nil
	}
}

// Jacobi returns the Jacobi symbol (a/b). It is 0 when a ≤ 0, b ≤ 0, b is
// even or gcd(a, b) ≠ 1.
func Jacobi(a, b bigint.Int) int {
	if a.Sign() <= 0 || b.Sign() <= 0 || !b.IsOdd() {
		return 0
	}

	a = must(a.Rem(b))
	t := 1
	for !a.IsZero() {
		for !a.IsOdd() {
			a = must(a.Quo(two))
			if r := smallRem(b, 8); r == 3 || r == 5 {
				t = -t
			}
		}
		a, b = b, a
		if smallRem(a, 4) == 3 && smallRem(b, 4) == 3 {
			t = -t
		}
		a = must(a.Rem(b))
	}
	if b.Equal(one) {
		return t
	}
	return 0
}

// smallRem returns x mod d for non-negative x.
func smallRem(x bigint.Int, d int64) int64 {
	r, _ := must(x.Rem(bigint.New(d))).Int64()
	return r
}
