package rsa

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
	"github.com/mahdiidarabi/cryptomath/pkg/modular"
	"github.com/mahdiidarabi/cryptomath/pkg/numtheory"
)

const minKeyBits = 16

// KeyGenConfig configures key generation.
type KeyGenConfig struct {
	// Bits is the target modulus size. P gets Bits/2-3 random bits and Q
	// gets (Bits+1)/2+3 before each is advanced to the next prime.
	Bits int

	// Seed feeds the PCG source. Equal seeds give equal keys.
	Seed uint64

	// PublicExponent is the first candidate for E; it is incremented until
	// coprime to φ(N).
	PublicExponent int64
}

// DefaultKeyGenConfig returns a 512-bit configuration with seed 0.
func DefaultKeyGenConfig() KeyGenConfig {
	return KeyGenConfig{
		Bits:           512,
		Seed:           0,
		PublicExponent: 104729,
	}
}

// WithBits sets the modulus size.
func (c KeyGenConfig) WithBits(bits int) KeyGenConfig {
	c.Bits = bits
	return c
}

// WithSeed sets the random seed.
func (c KeyGenConfig) WithSeed(seed uint64) KeyGenConfig {
	c.Seed = seed
	return c
}

// KeyGenerator derives RSA key pairs from a deterministic random source.
type KeyGenerator struct {
	config KeyGenConfig
	logger *zap.Logger
}

// NewKeyGenerator creates a generator with the given configuration.
func NewKeyGenerator(config KeyGenConfig) *KeyGenerator {
	return &KeyGenerator{
		config: config,
		logger: zap.NewNop(),
	}
}

// WithLogger sets the logger used for progress output.
func (g *KeyGenerator) WithLogger(logger *zap.Logger) *KeyGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g.logger = logger
	return g
}

// Generate draws starting points for P and Q, searches for both primes
// concurrently and derives E and D.
func (g *KeyGenerator) Generate(ctx context.Context) (*KeyPair, error) {
	bits := g.config.Bits
	if bits < minKeyBits {
		return nil, fmt.Errorf("%w: %d bits (minimum %d)", ErrKeySizeTooSmall, bits, minKeyBits)
	}

	// Both starting points come from one stream, P first.
	rng := rand.New(rand.NewPCG(g.config.Seed, g.config.Seed))
	starts := [2]bigint.Int{
		randomBits(rng, bits/2-3),
		randomBits(rng, (bits+1)/2+3),
	}

	var primes [2]bigint.Int
	eg, ctx := errgroup.WithContext(ctx)
	for i := range starts {
		eg.Go(func() error {
			p, err := numtheory.NextPrimeContext(ctx, starts[i])
			if err != nil {
				return fmt.Errorf("prime search from %s: %w", starts[i], err)
			}
			primes[i] = p
			g.logger.Debug("found prime", zap.Int("index", i), zap.Int("digits", p.Len()))
			return ctx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	p, q := primes[0], primes[1]
	one := bigint.One()
	phi := p.Sub(one).Mul(q.Sub(one))

	e := bigint.New(g.config.PublicExponent)
	for !modular.GCD(e, phi).Equal(one) {
		e = e.Add(one)
	}
	d, err := modular.InverseMod(e, phi)
	if err != nil {
		return nil, fmt.Errorf("private exponent: %w", err)
	}

	n := p.Mul(q)
	g.logger.Info("generated rsa key",
		zap.Int("bits", bits),
		zap.Int("modulus_digits", n.Len()),
		zap.Stringer("e", e))

	return &KeyPair{
		Bits:    bits,
		Public:  PublicKey{N: n, E: e},
		Private: &PrivateKey{P: p, Q: q, D: d},
	}, nil
}

// randomBits builds a number from bits coin flips, most significant first.
func randomBits(rng *rand.Rand, bits int) bigint.Int {
	two := bigint.New(2)
	num := bigint.Zero()
	for i := 0; i < bits; i++ {
		num = num.Mul(two).Add(bigint.New(int64(rng.IntN(2))))
	}
	return num
}
