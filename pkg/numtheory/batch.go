package numtheory

import (
	"context"
	"runtime"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mahdiidarabi/cryptomath/pkg/bigint"
)

// BatchConfig configures FactorizeAll.
type BatchConfig struct {
	// NumWorkers controls parallelization (0 = runtime.NumCPU()).
	NumWorkers int

	// ProgressEvery logs a progress line after this many completed inputs
	// (0 = never).
	ProgressEvery int
}

// DefaultBatchConfig returns a configuration with one worker per CPU.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		NumWorkers:    0,
		ProgressEvery: 100,
	}
}

// BatchResult is the outcome of factoring one input.
type BatchResult struct {
	Input   bigint.Int
	Factors []Factor
	Err     error
}

// FactorizeAll factors every input on a pool of workers. Results keep the
// input order, and a failed input only sets its own Err. Cancelling ctx also
// interrupts factorizations already in progress; the returned error is
// non-nil only when ctx ends before every input is done.
func (f *Factorizer) FactorizeAll(ctx context.Context, inputs []bigint.Int, config BatchConfig) ([]BatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	numWorkers := config.NumWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	numWorkers = min(numWorkers, max(len(inputs), 1))

	results := make([]BatchResult, len(inputs))
	work := make(chan int, numWorkers*4)
	var completed int64

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(work)
		for i := range inputs {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case work <- i:
			}
		}
		return nil
	})

	for w := 0; w < numWorkers; w++ {
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case i, ok := <-work:
					if !ok {
						return nil
					}
					factors, err := f.FactorizeContext(ctx, inputs[i])
					results[i] = BatchResult{Input: inputs[i], Factors: factors, Err: err}
					if err != nil {
						f.logger.Warn("factorization failed",
							zap.Stringer("input", inputs[i]),
							zap.Error(err))
					}

					done := atomic.AddInt64(&completed, 1)
					if config.ProgressEvery > 0 && done%int64(config.ProgressEvery) == 0 {
						f.logger.Info("batch progress",
							zap.Int64("completed", done),
							zap.Int("total", len(inputs)))
					}
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// FactorizeAll factors inputs concurrently with the default Factorizer.
func FactorizeAll(ctx context.Context, inputs []bigint.Int, config BatchConfig) ([]BatchResult, error) {
	return NewFactorizer().FactorizeAll(ctx, inputs, config)
}
