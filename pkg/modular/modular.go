// Package modular implements modular arithmetic and the Euclidean algorithms
// over bigint.Int.
//
// Every function is pure. Moduli are expected to be positive; a zero modulus
// surfaces bigint.ErrDivisionByZero from the underlying division.
package modular

import (
	"errors"
	"fmt"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
)

var (
	// ErrNotInvertible is returned by InverseMod and DivMod when the operand
	// and the modulus are not coprime.
	ErrNotInvertible = errors.New("modular: value is not invertible")

	// ErrNegativeExponent is returned by PowMod and Pow for exponents below zero.
	ErrNegativeExponent = errors.New("modular: negative exponent")

	// ErrNegativeSquareRoot is returned by Sqrt for negative input.
	ErrNegativeSquareRoot = errors.New("modular: square root of a negative number")
)

var two = bigint.New(2)

// Canonical returns the representative of x in [0, m).
//
// The truncated remainder may be negative; in that case m is added once and
// the sum reduced again.
func Canonical(x, m bigint.Int) (bigint.Int, error) {
	r, err := x.Rem(m)
	if err != nil {
		return bigint.Zero(), err
	}
	if r.Sign() >= 0 {
		return r, nil
	}
	return r.Add(m).Rem(m)
}

// AddMod returns (a + b) mod m.
func AddMod(a, b, m bigint.Int) (bigint.Int, error) {
	ca, err := Canonical(a, m)
	if err != nil {
		return bigint.Zero(), err
	}
	cb, err := Canonical(b, m)
	if err != nil {
		return bigint.Zero(), err
	}
	return Canonical(ca.Add(cb), m)
}

// SubMod returns (a - b) mod m.
func SubMod(a, b, m bigint.Int) (bigint.Int, error) {
	ca, err := Canonical(a, m)
	if err != nil {
		return bigint.Zero(), err
	}
	cb, err := Canonical(b, m)
	if err != nil {
		return bigint.Zero(), err
	}
	return Canonical(ca.Sub(cb), m)
}

// MulMod returns (a * b) mod m.
func MulMod(a, b, m bigint.Int) (bigint.Int, error) {
	ca, err := Canonical(a, m)
	if err != nil {
		return bigint.Zero(), err
	}
	cb, err := Canonical(b, m)
	if err != nil {
		return bigint.Zero(), err
	}
	return Canonical(ca.Mul(cb), m)
}

// DivMod returns a * b⁻¹ mod m.
func DivMod(a, b, m bigint.Int) (bigint.Int, error) {
	inv, err := InverseMod(b, m)
	if err != nil {
		return bigint.Zero(), err
	}
	return MulMod(a, inv, m)
}

// PowMod returns base^exp mod m by binary exponentiation. exp = 0 yields 1.
func PowMod(base, exp, m bigint.Int) (bigint.Int, error) {
	if exp.Sign() < 0 {
		return bigint.Zero(), fmt.Errorf("%w: %s", ErrNegativeExponent, exp)
	}

	res, err := Canonical(bigint.One(), m)
	if err != nil {
		return bigint.Zero(), err
	}
	b, err := Canonical(base, m)
	if err != nil {
		return bigint.Zero(), err
	}
	e := exp
	for e.Sign() > 0 {
		if e.IsOdd() {
			if res, err = MulMod(res, b, m); err != nil {
				return bigint.Zero(), err
			}
		}
		if b, err = MulMod(b, b, m); err != nil {
			return bigint.Zero(), err
		}
		if e, err = e.Quo(two); err != nil {
			return bigint.Zero(), err
		}
	}
	return res, nil
}

// Pow returns base^exp without reduction.
func Pow(base, exp bigint.Int) (bigint.Int, error) {
	if exp.Sign() < 0 {
		return bigint.Zero(), fmt.Errorf("%w: %s", ErrNegativeExponent, exp)
	}

	res := bigint.One()
	b := base
	e := exp
	for e.Sign() > 0 {
		if e.IsOdd() {
			res = res.Mul(b)
		}
		b = b.Mul(b)
		var err error
		if e, err = e.Quo(two); err != nil {
			return bigint.Zero(), err
		}
	}
	return res, nil
}

// ExtendedGCD returns g, x, y with a·x + b·y = g.
//
// It follows the recursion gcdex(a, b) = gcdex(b mod a, a) with base case
// a = 0 ⇒ (b, 0, 1), and back-substitution x = y1 - (b/a)·x1, y = x1. The
// quotients are kept on an explicit stack instead of the call stack.
func ExtendedGCD(a, b bigint.Int) (g, x, y bigint.Int, err error) {
	var quotients []bigint.Int
	for !a.IsZero() {
		q, r, err := b.QuoRem(a)
		if err != nil {
			return bigint.Zero(), bigint.Zero(), bigint.Zero(), err
		}
		quotients = append(quotients, q)
		a, b = r, a
	}

	g, x, y = b, bigint.Zero(), bigint.One()
	for i := len(quotients) - 1; i >= 0; i-- {
		x, y = y.Sub(quotients[i].Mul(x)), x
	}
	return g, x, y, nil
}

// InverseMod returns x in [0, m) with a·x ≡ 1 (mod m).
func InverseMod(a, m bigint.Int) (bigint.Int, error) {
	ca, err := Canonical(a, m)
	if err != nil {
		return bigint.Zero(), err
	}
	g, x, _, err := ExtendedGCD(ca, m)
	if err != nil {
		return bigint.Zero(), err
	}
	if !g.Equal(bigint.One()) {
		return bigint.Zero(), fmt.Errorf("%w: gcd(%s, %s) = %s", ErrNotInvertible, a, m, g)
	}
	return Canonical(x, m)
}

// GCD returns the greatest common divisor of |a| and |b|. The larger side is
// repeatedly replaced by its remainder modulo the smaller until one is zero.
func GCD(a, b bigint.Int) bigint.Int {
	x, y := a.Mag(), b.Mag()
	for !x.IsZero() && !y.IsZero() {
		// Both sides are non-zero here, so Rem cannot fail.
		if x.Cmp(y) >= 0 {
			x, _ = x.Rem(y)
		} else {
			y, _ = y.Rem(x)
		}
	}
	return bigint.FromUint(x.Add(y))
}

// Abs returns |x|.
func Abs(x bigint.Int) bigint.Int {
	return x.Abs()
}

// Sqrt returns ⌊√n⌋ by Newton iteration.
//
// The iteration starts at 10^⌈d/2⌉ for a d-digit n, which is never below √n,
// and stops as soon as the next estimate fails to decrease.
func Sqrt(n bigint.Int) (bigint.Int, error) {
	if n.Sign() < 0 {
		return bigint.Zero(), fmt.Errorf("%w: %s", ErrNegativeSquareRoot, n)
	}
	if n.IsZero() {
		return bigint.Zero(), nil
	}

	cur, err := Pow(bigint.New(10), bigint.New(int64((n.Len()+1)/2)))
	if err != nil {
		return bigint.Zero(), err
	}
	for {
		q, err := n.Quo(cur)
		if err != nil {
			return bigint.Zero(), err
		}
		next, err := cur.Add(q).Quo(two)
		if err != nil {
			return bigint.Zero(), err
		}
		if next.GreaterEq(cur) {
			return cur, nil
		}
		cur = next
	}
}
