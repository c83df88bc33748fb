package numtheory

import (
	"fmt"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/modular"
)

// Congruence is the constraint x ≡ Residue (mod Modulus).
type Congruence struct {
	Residue bigint.Int `json:"residue" toml:"residue" msgpack:"residue"`
	Modulus bigint.Int `json:"modulus" toml:"modulus" msgpack:"modulus"`
}

// Chinese solves a system of congruences with pairwise coprime moduli using
// Garner's mixed-radix algorithm. The result lies in [0, M) where M is the
// product of the moduli. A pair of moduli sharing a factor yields
// modular.ErrNotInvertible.
func Chinese(system []Congruence) (bigint.Int, error) {
	if len(system) == 0 {
		return bigint.Zero(), ErrEmptySystem
	}
	for i, c := range system {
		if c.Modulus.Less(one) {
			return bigint.Zero(), fmt.Errorf("%w: modulus %s at position %d", ErrNotPositive, c.Modulus, i)
		}
	}

	n := len(system)
	// inverses[i][j] = Modulus[i]⁻¹ mod Modulus[j] for i < j.
	inverses := make([][]bigint.Int, n)
	for i := range system {
		inverses[i] = make([]bigint.Int, n)
		for j := i + 1; j < n; j++ {
			inv, err := modular.InverseMod(system[i].Modulus, system[j].Modulus)
			if err != nil {
				return bigint.Zero(), fmt.Errorf("moduli %s and %s: %w", system[i].Modulus, system[j].Modulus, err)
			}
			inverses[i][j] = inv
		}
	}

	digits := make([]bigint.Int, n)
	for i, c := range system {
		digits[i] = c.Residue
		for j := 0; j < i; j++ {
			digits[i] = must(modular.Canonical(inverses[j][i].Mul(digits[i].Sub(digits[j])), c.Modulus))
		}
	}

	result, coef := bigint.Zero(), one
	for i, c := range system {
		result = result.Add(digits[i].Mul(coef))
		coef = coef.Mul(c.Modulus)
	}
	return must(modular.Canonical(result, coef)), nil
}
