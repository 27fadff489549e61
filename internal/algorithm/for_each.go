package algorithm

import (
	"context"
	"fmt"

	"github.com/born-ml/fold/internal/execution"
	"github.com/born-ml/fold/internal/kernel"
	"github.com/born-ml/fold/internal/parallel"
)

// ForEach replaces every element of the local partition with fn(element).
// fn runs exactly once per element.
func ForEach[T any](ctx context.Context, p execution.Policy, view LocalView[T], fn func(T) T) error {
	return ForEachIndex(ctx, p, view, func(_ int, v T) T { return fn(v) })
}

// ForEachIndex is ForEach with the local index passed to fn.
func ForEachIndex[T any](ctx context.Context, p execution.Policy, view LocalView[T], fn func(i int, v T) T) error {
	data := view.Local()
	return transform(ctx, "ForEach", p, data, data, fn)
}

// Transform writes fn(src[i]) to dst[i] for every element of the local
// partition. dst must have the same length as the partition.
func Transform[T, R any](ctx context.Context, p execution.Policy, view LocalView[T], dst []R, fn func(T) R) error {
	src := view.Local()
	if len(src) != len(dst) {
		return fmt.Errorf("%w: source %d, destination %d", ErrLengthMismatch, len(src), len(dst))
	}
	return transform(ctx, "Transform", p, src, dst, func(_ int, v T) R { return fn(v) })
}

func transform[T, R any](ctx context.Context, name string, p execution.Policy, src []T, dst []R, fn func(int, T) R) (err error) {
	ex := p.Executor()
	if ex == nil {
		return ErrNoExecutor
	}
	if len(src) == 0 {
		return nil
	}

	ctx, span := startSpan(ctx, name, p, len(src))
	defer func() { endSpan(span, err) }()

	cfg := ex.ParallelConfig()
	k := kernel.NewMapKernel(name, src, dst, func(_ *kernel.Acc, _ int, dst []R, src []T) {
		parallel.For(len(src), func(i int) {
			dst[i] = fn(i, src[i])
		}, cfg)
	})
	if err := ex.RunMap(ctx, k, len(src)); err != nil {
		return fmt.Errorf("algorithm: %s: %w", name, err)
	}
	return nil
}
