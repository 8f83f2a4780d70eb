package bcrypt

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelConfig controls batch hashing and verification
type ParallelConfig struct {
	// Enabled enables parallel processing of batches
	Enabled bool

	// MaxWorkers is the maximum number of worker goroutines
	// If 0, defaults to runtime.NumCPU()
	MaxWorkers int

	// MinBatchForParallel is the minimum batch size to use parallel processing
	// Below this threshold, sequential processing is used
	// Defaults to 2
	MinBatchForParallel int
}

// Validate checks if the parallel configuration is valid
func (p *ParallelConfig) Validate() error {
	if !p.Enabled {
		return nil // Nothing to validate if disabled
	}

	if p.MaxWorkers < 0 {
		return errors.New("parallel max workers cannot be negative")
	}
	if p.MaxWorkers > 1024 {
		return errors.New("parallel max workers must not exceed 1024")
	}
	if p.MinBatchForParallel < 1 {
		return errors.New("parallel min batch threshold must be at least 1")
	}

	return nil
}

// DefaultParallelConfig returns the default parallel processing configuration
func DefaultParallelConfig() ParallelConfig {
	return ParallelConfig{
		Enabled:             true,
		MaxWorkers:          runtime.NumCPU(),
		MinBatchForParallel: 2,
	}
}

// Pair is one password/hash combination for VerifyAll.
type Pair struct {
	Password []byte
	Hash     []byte
}

// HashAll hashes every password, each under its own fresh salt. Results are
// in input order. The first error cancels the remaining work.
func (h *Hasher) HashAll(ctx context.Context, passwords [][]byte) ([][]byte, error) {
	hashes := make([][]byte, len(passwords))
	err := h.forEach(ctx, len(passwords), "hash", func(i int) error {
		hash, err := h.Hash(passwords[i])
		if err != nil {
			return fmt.Errorf("password %d: %w", i, err)
		}
		hashes[i] = hash
		return nil
	})
	if err != nil {
		return nil, err
	}
	return hashes, nil
}

// VerifyAll checks every pair. A mismatch is a false entry, not an error;
// a malformed hash aborts the batch.
func (h *Hasher) VerifyAll(ctx context.Context, pairs []Pair) ([]bool, error) {
	results := make([]bool, len(pairs))
	err := h.forEach(ctx, len(pairs), "verify", func(i int) error {
		ok, err := Verify(pairs[i].Password, pairs[i].Hash)
		if err != nil {
			return fmt.Errorf("pair %d: %w", i, err)
		}
		results[i] = ok
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// forEach runs fn for 0..n-1, in parallel when the configuration allows and
// the batch is large enough. Panics in fn are returned as errors.
func (h *Hasher) forEach(ctx context.Context, n int, op string, fn func(i int) error) error {
	if n == 0 {
		return nil
	}

	call := func(i int) (err error) {
		defer func() {
			if r := recover(); r != nil {
				// Convert panic to error
				err = fmt.Errorf("panic in %s worker: %v", op, r)
			}
		}()
		return fn(i)
	}

	cfg := h.config.Parallel
	if !cfg.Enabled || n < cfg.MinBatchForParallel {
		// Sequential processing
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := call(i); err != nil {
				return err
			}
		}
		return nil
	}

	// Determine number of workers
	numWorkers := cfg.MaxWorkers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	if numWorkers > n {
		numWorkers = n
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numWorkers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		i := i // per-iteration copy (pre-Go 1.22 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return call(i)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
