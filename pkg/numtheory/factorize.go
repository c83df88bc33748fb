package numtheory

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/modular"
)

// ctxCheckInterval is how many rho iterations run between context checks.
const ctxCheckInterval = 1024

// Factor is a prime power p^e in a factorization.
type Factor struct {
	Prime    bigint.Int
	Exponent int
}

// FactorizerConfig configures a Factorizer.
type FactorizerConfig struct {
	// TrialDivisionLimit bounds the divisors tried before Pollard's rho.
	// Only the top-level number is trial divided. Zero disables it.
	TrialDivisionLimit int64

	// MaxRhoIterations caps the iterations of a single rho step (0 = no cap).
	MaxRhoIterations int

	// RhoSteps are the increments c of x ↦ x²+c, tried in order.
	RhoSteps []int64
}

// DefaultFactorizerConfig returns the configuration used by the package-level
// functions.
func DefaultFactorizerConfig() FactorizerConfig {
	return FactorizerConfig{
		TrialDivisionLimit: 1000,
		MaxRhoIterations:   1_000_000,
		RhoSteps:           []int64{1, 3, 5, 7},
	}
}

// Factorizer splits integers into prime powers. A Factorizer holds no mutable
// state once configured and may be shared between goroutines.
type Factorizer struct {
	config FactorizerConfig
	logger *zap.Logger
}

// NewFactorizer creates a Factorizer with the default configuration and a
// no-op logger.
func NewFactorizer() *Factorizer {
	return &Factorizer{
		config: DefaultFactorizerConfig(),
		logger: zap.NewNop(),
	}
}

// WithConfig sets the factorizer configuration.
func (f *Factorizer) WithConfig(config FactorizerConfig) *Factorizer {
	f.config = config
	return f
}

// WithLogger sets the logger used for progress output. A nil logger disables
// logging.
func (f *Factorizer) WithLogger(logger *zap.Logger) *Factorizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	f.logger = logger
	return f
}

// RhoIteration runs one Pollard's rho walk over x ↦ x²+step mod n. The fixed
// point is refreshed each time the cycle length doubles. It returns
// gcd(|x - x_fixed|, n) once that is not 1, which may be n itself.
func (f *Factorizer) RhoIteration(n, step bigint.Int) (bigint.Int, error) {
	return f.rhoIteration(context.Background(), n, step)
}

func (f *Factorizer) rhoIteration(ctx context.Context, n, step bigint.Int) (bigint.Int, error) {
	if n.Less(two) {
		return bigint.Zero(), fmt.Errorf("%w: rho on %s", ErrNoDivisorFound, n)
	}

	xFixed, x := one, two
	cycle, count := 2, 0
	for modular.GCD(x.Sub(xFixed), n).Equal(one) {
		if f.config.MaxRhoIterations > 0 && count >= f.config.MaxRhoIterations {
			return bigint.Zero(), fmt.Errorf("%w: %d iterations with step %s", ErrIterationLimit, count, step)
		}
		if count%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return bigint.Zero(), err
			}
		}
		if count == cycle {
			xFixed = x
			cycle *= 2
			f.logger.Debug("pollard rho cycle doubled",
				zap.Stringer("n", n),
				zap.Stringer("step", step),
				zap.Int("cycle", cycle))
		}
		x = must(modular.Canonical(x.Mul(x).Add(step), n))
		count++
	}
	return modular.GCD(n, x.Sub(xFixed)), nil
}

// Rho returns a non-trivial divisor of the composite n, trying each configured
// step in turn. n should be checked with IsPrime first.
func (f *Factorizer) Rho(n bigint.Int) (bigint.Int, error) {
	return f.rho(context.Background(), n)
}

func (f *Factorizer) rho(ctx context.Context, n bigint.Int) (bigint.Int, error) {
	limited := false
	for _, c := range f.config.RhoSteps {
		d, err := f.rhoIteration(ctx, n, bigint.New(c))
		switch {
		case errors.Is(err, ErrIterationLimit):
			limited = true
			continue
		case err != nil:
			return bigint.Zero(), err
		}
		if !d.Equal(one) && !d.Equal(n) {
			return d, nil
		}
	}
	if limited {
		return bigint.Zero(), fmt.Errorf("%w: every step of rho on %s", ErrIterationLimit, n)
	}
	return bigint.Zero(), fmt.Errorf("%w: %s", ErrNoDivisorFound, n)
}

// Factorize returns the prime factorization of n sorted by prime. 1 factors
// into the empty product.
func (f *Factorizer) Factorize(n bigint.Int) ([]Factor, error) {
	return f.FactorizeContext(context.Background(), n)
}

// FactorizeContext is Factorize with cancellation. ctx is polled between
// splits and periodically inside each rho walk.
func (f *Factorizer) FactorizeContext(ctx context.Context, n bigint.Int) ([]Factor, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("%w: factorize %s", ErrNotPositive, n)
	}

	exponents := make(map[string]*Factor)
	record := func(p bigint.Int, e int) {
		key := p.String()
		if existing, ok := exponents[key]; ok {
			existing.Exponent += e
			return
		}
		exponents[key] = &Factor{Prime: p, Exponent: e}
	}

	rest := f.trialDivide(n, record)
	pending := []bigint.Int{rest}
	for len(pending) > 0 {
		m := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if m.Equal(one) {
			continue
		}
		if IsPrime(m) {
			record(m, 1)
			continue
		}
		d, err := f.rho(ctx, m)
		if err != nil {
			return nil, fmt.Errorf("factorize %s: %w", n, err)
		}
		pending = append(pending, d, must(m.Quo(d)))
	}

	factors := make([]Factor, 0, len(exponents))
	for _, factor := range exponents {
		factors = append(factors, *factor)
	}
	slices.SortFunc(factors, func(a, b Factor) int { return a.Prime.Cmp(b.Prime) })
	return factors, nil
}

// trialDivide strips every divisor d < TrialDivisionLimit with d² ≤ n and
// returns the cofactor.
func (f *Factorizer) trialDivide(n bigint.Int, record func(bigint.Int, int)) bigint.Int {
	for d := int64(2); d < f.config.TrialDivisionLimit; d++ {
		div := bigint.New(d)
		if div.Mul(div).Greater(n) {
			break
		}
		count := 0
		for {
			q, r, _ := n.QuoRem(div)
			if !r.IsZero() {
				break
			}
			n = q
			count++
		}
		if count > 0 {
			record(div, count)
		}
	}
	return n
}

// Euler returns φ(n), the count of integers in [1, n] coprime to n.
func (f *Factorizer) Euler(n bigint.Int) (bigint.Int, error) {
	factors, err := f.Factorize(n)
	if err != nil {
		return bigint.Zero(), err
	}
	phi := n
	for _, factor := range factors {
		phi = phi.Sub(must(phi.Quo(factor.Prime)))
	}
	return phi, nil
}

// Mobius returns μ(n): 0 if n has a squared prime factor, otherwise -1 or 1
// for an odd or even number of prime factors.
func (f *Factorizer) Mobius(n bigint.Int) (int, error) {
	factors, err := f.Factorize(n)
	if err != nil {
		return 0, err
	}
	for _, factor := range factors {
		if factor.Exponent > 1 {
			return 0, nil
		}
	}
	if len(factors)%2 == 1 {
		return -1, nil
	}
	return 1, nil
}

// PollardRhoIteration runs a single rho walk with the default configuration.
func PollardRhoIteration(n, step bigint.Int) (bigint.Int, error) {
	return NewFactorizer().RhoIteration(n, step)
}

// PollardRho returns a non-trivial divisor of the composite n using steps 1,
// 3, 5 and 7.
func PollardRho(n bigint.Int) (bigint.Int, error) {
	return NewFactorizer().Rho(n)
}

// Factorize returns the prime factorization of n using the default
// configuration.
func Factorize(n bigint.Int) ([]Factor, error) {
	return NewFactorizer().Factorize(n)
}

// Euler returns Euler's totient of n.
func Euler(n bigint.Int) (bigint.Int, error) {
	return NewFactorizer().Euler(n)
}

// Mobius returns the Möbius function of n.
func Mobius(n bigint.Int) (int, error) {
	return NewFactorizer().Mobius(n)
}
