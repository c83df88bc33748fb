package numtheory

import (
	"context"
	"fmt"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/modular"
)

// nextPrimeAttempts bounds the candidates NextPrime examines.
const nextPrimeAttempts = 10_000

// smallNumberDigits is the largest decimal length IsPrime settles by trial
// division alone.
const smallNumberDigits = 4

// TrialBound selects how far IsPrimeTrial divides.
type TrialBound struct {
	rounds     int
	exhaustive bool
}

// Exhaustive divides by every integer from 2 to ⌊√n⌋.
func Exhaustive() TrialBound {
	return TrialBound{exhaustive: true}
}

// BoundedRounds divides by the integers from 2 to min(r, ⌊√n⌋).
func BoundedRounds(r int) TrialBound {
	return TrialBound{rounds: r}
}

// String describes the bound.
func (b TrialBound) String() string {
	if b.exhaustive {
		return "exhaustive"
	}
	return fmt.Sprintf("divisors up to %d", b.rounds)
}

// IsPrimeTrial reports whether n has no divisor d ≥ 2 with d² ≤ n within
// bound. Values below 2 are not prime.
func IsPrimeTrial(n bigint.Int, bound TrialBound) bool {
	if n.Less(two) {
		return false
	}
	for d := int64(2); bound.exhaustive || d <= int64(bound.rounds); d++ {
		div := bigint.New(d)
		if div.Mul(div).Greater(n) {
			break
		}
		if r, _ := n.Rem(div); r.IsZero() {
			return false
		}
	}
	return true
}

// IsPrimeFermat runs the Fermat test with the first rounds primes as
// witnesses, skipping witnesses w ≥ n-1. Carmichael numbers coprime to every
// witness pass.
func IsPrimeFermat(n bigint.Int, rounds int) bool {
	if n.Less(two) {
		return false
	}
	nMinus1 := n.Sub(one)
	for _, w := range FirstPrimes(rounds) {
		witness := bigint.New(int64(w))
		if witness.GreaterEq(nMinus1) {
			break
		}
		if x := must(modular.PowMod(witness, nMinus1, n)); !x.Equal(one) {
			return false
		}
	}
	return true
}

// IsPrimeMillerRabin runs Miller–Rabin with the first rounds primes as
// witnesses, skipping witnesses w ≥ n-1.
func IsPrimeMillerRabin(n bigint.Int, rounds int) bool {
	if n.Less(two) {
		return false
	}
	if n.Equal(two) {
		return true
	}
	if !n.IsOdd() {
		return false
	}

	nMinus1 := n.Sub(one)
	d, s := nMinus1, 0
	for !d.IsOdd() {
		d = must(d.Quo(two))
		s++
	}

	for _, w := range FirstPrimes(rounds) {
		witness := bigint.New(int64(w))
		if witness.GreaterEq(nMinus1) {
			break
		}
		x := must(modular.PowMod(witness, d, n))
		if x.Equal(one) || x.Equal(nMinus1) {
			continue
		}

		passed := false
		for i := 1; i < s; i++ {
			x = must(modular.MulMod(x, x, n))
			if x.Equal(nMinus1) {
				passed = true
				break
			}
		}
		if !passed {
			return false
		}
	}
	return true
}

// IsPrime reports whether n is prime. Numbers of at most four decimal digits
// are settled by exhaustive trial division. Longer numbers must pass trial
// division by 2..len+3 and Miller–Rabin with len+3 witnesses.
func IsPrime(n bigint.Int) bool {
	if n.Less(two) {
		return false
	}
	digits := n.Len()
	if digits <= smallNumberDigits {
		return IsPrimeTrial(n, Exhaustive())
	}
	rounds := digits + 3
	return IsPrimeTrial(n, BoundedRounds(rounds)) && IsPrimeMillerRabin(n, rounds)
}

// NextPrime returns the smallest prime greater than n, examining at most
// 10,000 candidates.
func NextPrime(n bigint.Int) (bigint.Int, error) {
	return nextPrime(context.Background(), n, nextPrimeAttempts)
}

// NextPrimeContext is NextPrime with cancellation, checked before each
// candidate.
func NextPrimeContext(ctx context.Context, n bigint.Int) (bigint.Int, error) {
	return nextPrime(ctx, n, nextPrimeAttempts)
}

func nextPrime(ctx context.Context, n bigint.Int, attempts int) (bigint.Int, error) {
	cur := n
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return bigint.Zero(), err
		}
		cur = cur.Add(one)
		if IsPrime(cur) {
			return cur, nil
		}
	}
	return bigint.Zero(), fmt.Errorf("%w: %d candidates after %s", ErrExhaustedSearch, attempts, n)
}
