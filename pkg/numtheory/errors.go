package numtheory

import (
	"errors"
	"fmt"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
)

var (
	// ErrExhaustedSearch is returned by NextPrime when no prime follows within
	// its attempt bound.
	ErrExhaustedSearch = errors.New("numtheory: no prime found within search bound")

	// ErrNoDivisorFound is returned by Pollard's rho when none of its step
	// values yields a non-trivial divisor. Check primality before factoring.
	ErrNoDivisorFound = errors.New("numtheory: no non-trivial divisor found")

	// ErrIterationLimit is returned when a Pollard's rho step hits its
	// configured iteration cap. Retrying with other steps or a larger cap may succeed.
	ErrIterationLimit = errors.New("numtheory: pollard rho iteration limit reached")

	// ErrNotPositive is returned for inputs that must be positive integers.
	ErrNotPositive = errors.New("numtheory: input must be positive")

	// ErrEmptySystem is returned by Chinese for an empty congruence system.
	ErrEmptySystem = errors.New("numtheory: empty congruence system")

	// ErrTableTooLarge is returned by LogMod when the baby-step table would
	// exceed its size limit.
	ErrTableTooLarge = errors.New("numtheory: modulus too large for baby-step giant-step")
)

var (
	one = bigint.One()
	two = bigint.New(2)
)

// must unwraps results of modular operations whose modulus is already known
// to be at least 2, where an error cannot occur.
func must(x bigint.Int, err error) bigint.Int {
	if err != nil {
		panic(fmt.Sprintf("numtheory: unexpected arithmetic failure: %v", err))
	}
	return x
}
