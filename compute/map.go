// Package compute runs row-wise operations over geometry arrays. Output row
// i always corresponds to input row i.
package compute

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// rows handed to one goroutine at a time
const chunkSize = 1024

// Options tunes the parallel operations. The zero value uses GOMAXPROCS
// workers and no logging.
type Options struct {
	Concurrency int
	Logger      *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Map calls fn for every row in [0, n) across at most opts.Concurrency
// goroutines and collects the results in row order. The first failing row
// fails the whole call and stops scheduling of the remaining chunks.
func Map[T any](ctx context.Context, n int, opts Options, fn func(i int) (T, error)) ([]T, error) {
	opts = opts.withDefaults()
	out := make([]T, n)
	if n == 0 {
		return out, nil
	}
	opts.Logger.Debug("map rows",
		zap.Int("rows", n),
		zap.Int("concurrency", opts.Concurrency),
		zap.Int("chunk", chunkSize))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for start := 0; start < n; start += chunkSize {
		if gctx.Err() != nil {
			break
		}
		end := min(start+chunkSize, n)
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				v, err := fn(i)
				if err != nil {
					opts.Logger.Debug("row failed", zap.Int("row", i), zap.Error(err))
					return fmt.Errorf("row %d: %w", i, err)
				}
				out[i] = v
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// cancelled before any chunk ran
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
