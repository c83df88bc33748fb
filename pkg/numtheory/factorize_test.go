package numtheory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
)

// product multiplies a factorization back together.
func product(factors []Factor) bigint.Int {
	p := bigint.One()
	for _, f := range factors {
		for i := 0; i < f.Exponent; i++ {
			p = p.Mul(f.Prime)
		}
	}
	return p
}

func checkFactorization(t *testing.T, v bigint.Int, factors []Factor) {
	t.Helper()
	got := product(factors)
	require.True(t, got.Equal(v), "factors of %s multiply to %s", v, got)
	for i, f := range factors {
		assert.True(t, IsPrime(f.Prime), "factor %s of %s is not prime", f.Prime, v)
		assert.GreaterOrEqual(t, f.Exponent, 1, "exponent of %s in %s", f.Prime, v)
		if i > 0 {
			assert.True(t, factors[i-1].Prime.Less(f.Prime), "factors of %s not strictly ascending at %d", v, i)
		}
	}
}

func TestFactorize(t *testing.T) {
	inputs := []string{
		"2",
		"12",
		"97",
		"1018081",      // 1009²
		"248832746496", // 2^10 · 3^5 · 1000003
		"867017552311",
		"1000036000099", // 1000003 · 1000033
		"340282366920938463463374607431768211507",
	}
	for _, in := range inputs {
		v := bigint.Parse(in)
		factors, err := Factorize(v)
		require.NoError(t, err, "Factorize(%s)", in)
		checkFactorization(t, v, factors)
		t.Logf("%s = %v", in, factors)
	}

	factors, err := Factorize(n(248832746496))
	require.NoError(t, err)
	want := []Factor{{n(2), 10}, {n(3), 5}, {n(1000003), 1}}
	require.Len(t, factors, len(want))
	for i := range want {
		assert.True(t, factors[i].Prime.Equal(want[i].Prime), "factor %d = %v, want %v", i, factors[i], want[i])
		assert.Equal(t, want[i].Exponent, factors[i].Exponent, "exponent of factor %d", i)
	}

	square, err := Factorize(n(1018081))
	require.NoError(t, err)
	require.Len(t, square, 1)
	assert.Equal(t, "1009", square[0].Prime.String())
	assert.Equal(t, 2, square[0].Exponent)
}

func TestFactorizeWithoutTrialDivision(t *testing.T) {
	config := DefaultFactorizerConfig()
	config.TrialDivisionLimit = 0
	f := NewFactorizer().WithConfig(config)

	v := n(1000036000099 * 7)
	factors, err := f.Factorize(v)
	require.NoError(t, err)
	checkFactorization(t, v, factors)
}

func TestFactorizeEdgeCases(t *testing.T) {
	factors, err := Factorize(bigint.One())
	require.NoError(t, err)
	assert.Empty(t, factors)

	for _, v := range []int64{0, -5} {
		_, err := Factorize(n(v))
		assert.ErrorIs(t, err, ErrNotPositive, "Factorize(%d)", v)
	}
}

func TestPollardRho(t *testing.T) {
	for _, v := range []int64{8051, 10403, 1000036000099} {
		d, err := PollardRho(n(v))
		require.NoError(t, err, "PollardRho(%d)", v)
		assert.False(t, d.Equal(bigint.One()) || d.Equal(n(v)), "PollardRho(%d) = %s is trivial", v, d)
		r, err := n(v).Rem(d)
		require.NoError(t, err)
		assert.True(t, r.IsZero(), "PollardRho(%d) = %s does not divide", v, d)
	}

	d, err := PollardRhoIteration(n(8051), bigint.One())
	require.NoError(t, err)
	r, err := n(8051).Rem(d)
	require.NoError(t, err)
	assert.True(t, r.IsZero(), "PollardRhoIteration(8051, 1) = %s does not divide", d)

	_, err = PollardRho(bigint.One())
	assert.ErrorIs(t, err, ErrNoDivisorFound)
}

func TestPollardRhoIterationLimit(t *testing.T) {
	config := DefaultFactorizerConfig()
	config.MaxRhoIterations = 1
	f := NewFactorizer().WithConfig(config)

	_, err := f.Rho(n(1000036000099))
	assert.ErrorIs(t, err, ErrIterationLimit)
	_, err = f.Factorize(n(1000036000099))
	assert.ErrorIs(t, err, ErrIterationLimit)
}

func TestRhoLogsCycleDoubling(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	f := NewFactorizer().WithLogger(zap.New(core))

	_, err := f.Rho(n(1000036000099))
	require.NoError(t, err)
	assert.NotZero(t, logs.FilterMessage("pollard rho cycle doubled").Len(),
		"expected cycle doubling to be logged at debug level")
}

func TestEuler(t *testing.T) {
	tests := []struct{ in, want int64 }{
		{1, 1},
		{2, 1},
		{9, 6},
		{36, 12},
		{97, 96},
		{1000000, 400000},
		{1000036000099, 1000002 * 1000032},
	}
	for _, tt := range tests {
		got, err := Euler(n(tt.in))
		require.NoError(t, err, "Euler(%d)", tt.in)
		assert.Equal(t, n(tt.want).String(), got.String(), "Euler(%d)", tt.in)
	}
}

func TestMobius(t *testing.T) {
	tests := []struct {
		in   int64
		want int
	}{
		{1, 1},
		{6, 1},
		{12, 0},
		{30, -1},
		{97, -1},
		{1018081, 0},
		{1000036000099, 1},
	}
	for _, tt := range tests {
		got, err := Mobius(n(tt.in))
		require.NoError(t, err, "Mobius(%d)", tt.in)
		assert.Equal(t, tt.want, got, "Mobius(%d)", tt.in)
	}

	_, err := Mobius(bigint.Zero())
	assert.ErrorIs(t, err, ErrNotPositive)
}

func TestFactorizeAll(t *testing.T) {
	inputs := []bigint.Int{n(12), n(97), bigint.Zero(), n(1000036000099), n(1018081)}
	results, err := FactorizeAll(context.Background(), inputs, BatchConfig{NumWorkers: 3})
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, r := range results {
		assert.True(t, r.Input.Equal(inputs[i]), "result %d is for %s, want %s", i, r.Input, inputs[i])
		if inputs[i].IsZero() {
			assert.ErrorIs(t, r.Err, ErrNotPositive, "result %d", i)
			continue
		}
		require.NoError(t, r.Err, "result %d", i)
		checkFactorization(t, r.Input, r.Factors)
	}
}

func TestFactorizeAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FactorizeAll(ctx, []bigint.Int{n(12)}, DefaultBatchConfig())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFactorizeContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFactorizer()
	_, err := f.FactorizeContext(ctx, n(1000036000099))
	assert.ErrorIs(t, err, context.Canceled)

	// A walk already running stops at its next check instead of finishing.
	_, err = f.rhoIteration(ctx, n(1000036000099), bigint.One())
	assert.ErrorIs(t, err, context.Canceled)
	_, err = f.rho(ctx, n(1000036000099))
	assert.ErrorIs(t, err, context.Canceled)

	factors, err := f.FactorizeContext(context.Background(), n(1000036000099))
	require.NoError(t, err)
	checkFactorization(t, n(1000036000099), factors)
}
