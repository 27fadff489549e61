// Package algorithm implements the reduce and for-each entry points over the
// locally owned partition of a partitioned array.
package algorithm

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/born-ml/fold/internal/execution"
	"github.com/born-ml/fold/internal/kernel"
)

var tracer = otel.Tracer("internal/algorithm")

var (
	// ErrNoExecutor is returned for a Policy that wraps no Executor.
	ErrNoExecutor = errors.New("algorithm: policy has no executor")

	// ErrLengthMismatch is returned when source and destination differ in length.
	ErrLengthMismatch = errors.New("algorithm: length mismatch")
)

// LocalView is the contiguous block of a partitioned array owned by the
// calling process. Global placement is the partitioner's concern.
type LocalView[T any] interface {
	Local() []T
}

// Slice adapts a plain slice to LocalView.
type Slice[T any] []T

// Local returns the slice itself.
func (s Slice[T]) Local() []T {
	return s
}

func startSpan(ctx context.Context, name string, p execution.Policy, n int) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(
		attribute.Int("n", n),
		attribute.Bool("relaxed_ordering", p.RelaxedOrdering()),
	))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// reduce folds src with r and combines the result into init.
func reduce[T, R any](ctx context.Context, name string, p execution.Policy, src []T, init R, r kernel.Reducer[T, R]) (out R, err error) {
	if p.Executor() == nil {
		return init, ErrNoExecutor
	}
	if len(src) == 0 {
		return init, nil
	}

	ctx, span := startSpan(ctx, name, p, len(src))
	defer func() { endSpan(span, err) }()

	got, err := execution.RunReduce(ctx, p.Executor(), src, r, p.RunOptions()...)
	if err != nil {
		return init, fmt.Errorf("algorithm: %s: %w", name, err)
	}
	if !got.Valid {
		return init, nil
	}
	return r.Combine(init, got.Value), nil
}

// Reduce folds the local partition with combine, starting from identity.
// combine must be associative and commutative. An empty partition returns
// identity without calling combine.
func Reduce[T any](ctx context.Context, p execution.Policy, view LocalView[T], identity T, combine func(T, T) T) (T, error) {
	return reduce(ctx, "Reduce", p, view.Local(), identity, kernel.Fold(combine))
}

// TransformReduce maps every element through transform inside its lane and
// folds the results with combine, starting from init.
func TransformReduce[T, R any](ctx context.Context, p execution.Policy, view LocalView[T], init R, combine func(R, R) R, transform func(T) R) (R, error) {
	return reduce(ctx, "TransformReduce", p, view.Local(), init, kernel.Transformed(transform, combine))
}

// Sum adds up the local partition. The reduction is tagged so device
// targets can run a native kernel.
func Sum[T kernel.Number](ctx context.Context, p execution.Policy, view LocalView[T]) (T, error) {
	var zero T
	return reduce(ctx, "Sum", p, view.Local(), zero, kernel.SumOf[T]())
}

// Min returns the smallest element; ok is false for an empty partition.
func Min[T kernel.Number](ctx context.Context, p execution.Policy, view LocalView[T]) (v T, ok bool, err error) {
	return extremum(ctx, "Min", p, view.Local(), kernel.MinOf[T]())
}

// Max returns the largest element; ok is false for an empty partition.
func Max[T kernel.Number](ctx context.Context, p execution.Policy, view LocalView[T]) (v T, ok bool, err error) {
	return extremum(ctx, "Max", p, view.Local(), kernel.MaxOf[T]())
}

func extremum[T kernel.Number](ctx context.Context, name string, p execution.Policy, src []T, r kernel.Reducer[T, T]) (v T, ok bool, err error) {
	if p.Executor() == nil {
		return v, false, ErrNoExecutor
	}
	if len(src) == 0 {
		return v, false, nil
	}
	v, err = reduce(ctx, name, p, src, src[0], r)
	return v, err == nil, err
}
