package numtheory

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/modular"
)

// maxBabySteps bounds the giant-step table LogMod builds.
const maxBabySteps = 1 << 24

// LogMod solves base^x ≡ ans (mod m) by baby-step giant-step and returns a
// solution x in [0, m). found is false when base and m share a factor
// or no exponent exists. Moduli whose square root exceeds 2^24 return
// ErrTableTooLarge.
func LogMod(base, ans, m bigint.Int) (x bigint.Int, found bool, err error) {
	if m.Sign() <= 0 {
		return bigint.Zero(), false, fmt.Errorf("%w: modulus %s", ErrNotPositive, m)
	}
	if !modular.GCD(base, m).Equal(one) {
		return bigint.Zero(), false, nil
	}

	root := must(modular.Sqrt(m))
	blockSize := root.Add(one)
	raw, ok := blockSize.Mag().Uint64()
	if !ok {
		return bigint.Zero(), false, fmt.Errorf("%w: %s", ErrTableTooLarge, m)
	}
	block, err := safecast.Conv[int](raw)
	if err != nil || block > maxBabySteps {
		return bigint.Zero(), false, fmt.Errorf("%w: %s", ErrTableTooLarge, m)
	}

	giant := must(modular.PowMod(base, blockSize, m))
	steps := make(map[string]int, block)
	cur := giant
	for i := 1; i <= block; i++ {
		key := cur.String()
		if _, ok := steps[key]; !ok {
			steps[key] = i
		}
		cur = must(modular.MulMod(cur, giant, m))
	}

	cur = must(modular.Canonical(ans, m))
	base = must(modular.Canonical(base, m))
	for j := 0; j <= block; j++ {
		if i, ok := steps[cur.String()]; ok {
			if res := bigint.New(int64(i)*int64(block) - int64(j)); res.Less(m) {
				return res, true, nil
			}
		}
		cur = must(modular.MulMod(cur, base, m))
	}
	return bigint.Zero(), false, nil
}
