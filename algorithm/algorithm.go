// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package algorithm provides parallel reduce and for-each over the locally
// owned partition of a partitioned array.
//
// Example:
//
//	p := execution.MakeParallelPolicy(ex)
//	total, err := algorithm.Reduce(ctx, p, algorithm.Slice[int](data), 0, func(a, b int) int { return a + b })
//	err = algorithm.ForEach(ctx, p, algorithm.Slice[int](data), func(v int) int { return v * 2 })
package algorithm

import (
	"context"

	internalalg "github.com/born-ml/fold/internal/algorithm"
	"github.com/born-ml/fold/execution"
	"github.com/born-ml/fold/kernel"
)

type (
	// LocalView is the locally owned block of a partitioned array.
	LocalView[T any] = internalalg.LocalView[T]

	// Slice adapts a plain slice to LocalView.
	Slice[T any] = internalalg.Slice[T]
)

// Errors.
var (
	ErrNoExecutor     = internalalg.ErrNoExecutor
	ErrLengthMismatch = internalalg.ErrLengthMismatch
)

// Reduce folds the local partition with combine, starting from identity.
// combine must be associative and commutative.
func Reduce[T any](ctx context.Context, p execution.Policy, view LocalView[T], identity T, combine func(T, T) T) (T, error) {
	return internalalg.Reduce(ctx, p, view, identity, combine)
}

// TransformReduce folds transform(x) over the local partition.
func TransformReduce[T, R any](ctx context.Context, p execution.Policy, view LocalView[T], init R, combine func(R, R) R, transform func(T) R) (R, error) {
	return internalalg.TransformReduce(ctx, p, view, init, combine, transform)
}

// Sum adds up the local partition.
func Sum[T kernel.Number](ctx context.Context, p execution.Policy, view LocalView[T]) (T, error) {
	return internalalg.Sum(ctx, p, view)
}

// Min returns the smallest element; ok is false for an empty partition.
func Min[T kernel.Number](ctx context.Context, p execution.Policy, view LocalView[T]) (T, bool, error) {
	return internalalg.Min(ctx, p, view)
}

// Max returns the largest element; ok is false for an empty partition.
func Max[T kernel.Number](ctx context.Context, p execution.Policy, view LocalView[T]) (T, bool, error) {
	return internalalg.Max(ctx, p, view)
}

// ForEach replaces every element with fn(element).
func ForEach[T any](ctx context.Context, p execution.Policy, view LocalView[T], fn func(T) T) error {
	return internalalg.ForEach(ctx, p, view, fn)
}

// ForEachIndex is ForEach with the local index passed to fn.
func ForEachIndex[T any](ctx context.Context, p execution.Policy, view LocalView[T], fn func(i int, v T) T) error {
	return internalalg.ForEachIndex(ctx, p, view, fn)
}

// Transform writes fn(src[i]) to dst[i].
func Transform[T, R any](ctx context.Context, p execution.Policy, view LocalView[T], dst []R, fn func(T) R) error {
	return internalalg.Transform(ctx, p, view, dst, fn)
}
