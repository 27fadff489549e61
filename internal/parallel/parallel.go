// Package parallel provides the host-side scheduling helpers used by the
// execution targets: chunked loops for map kernels and bounded block dispatch.
package parallel

import (
	"context"
	"runtime"

	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled      bool // Whether parallel execution is enabled.
	NumWorkers   int  // Number of worker goroutines to use.
	MinChunkSize int  // Minimum items per goroutine to avoid overhead.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:      n > 1,
		NumWorkers:   n,
		MinChunkSize: 64, // Typical cache line aware chunk.
	}
}

// SequentialConfig returns a configuration that never spawns goroutines.
func SequentialConfig() Config {
	return Config{NumWorkers: 1, MinChunkSize: 1}
}

func (c Config) workers() int {
	return max(c.NumWorkers, 1)
}

// For executes f(i) for i in [0, n) with optional parallelism.
// Falls back to sequential execution if parallelism is disabled or n is too small.
// A panic in f is re-raised on the calling goroutine once every chunk finished.
func For(n int, f func(i int), cfg Config) {
	if !cfg.Enabled || n < cfg.MinChunkSize || cfg.workers() == 1 {
		for i := 0; i < n; i++ {
			f(i)
		}
		return
	}

	var (
		g  errgroup.Group
		pc panics.Catcher
	)
	g.SetLimit(cfg.workers())

	chunkSize := max((n+cfg.workers()-1)/cfg.workers(), cfg.MinChunkSize)
	for start := 0; start < n; start += chunkSize {
		end := min(start+chunkSize, n)
		g.Go(func() error {
			pc.Try(func() {
				for i := start; i < end; i++ {
					f(i)
				}
			})
			return nil
		})
	}
	_ = g.Wait()
	pc.Repanic()
}

// Blocks runs f(block) for block in [0, n) with at most cfg.NumWorkers blocks
// in flight. The first error stops blocks that have not started yet and is
// returned once every started block has finished.
func Blocks(ctx context.Context, n int, f func(ctx context.Context, block int) error, cfg Config) error {
	if !cfg.Enabled || n == 1 || cfg.workers() == 1 {
		for b := 0; b < n; b++ {
			if err := f(ctx, b); err != nil {
				return err
			}
		}
		return nil
	}

	p := pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(min(cfg.workers(), n))

	for b := 0; b < n; b++ {
		p.Go(func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return f(ctx, b)
		})
	}
	return p.Wait()
}
