// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package execution binds kernels to targets and runs them.
//
// A Context pairs a target with one of its devices and a queue. An Executor
// computes the launch geometry for a Context and combines block partials. A
// Policy hands an Executor to the algorithms in package algorithm.
//
// Example:
//
//	ctx, err := execution.NewDefaultContext(threaded.New(threaded.DefaultConfig()), execution.NonBlocking)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctx.Close()
//
//	ex, err := execution.NewExecutor(ctx, execution.DefaultConfig())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	sum, err := algorithm.Sum(context.Background(), execution.MakeParallelPolicy(ex), algorithm.Slice[float64](data))
package execution

import (
	"context"

	internalexec "github.com/born-ml/fold/internal/execution"
	"github.com/born-ml/fold/internal/logger"
	"github.com/born-ml/fold/kernel"
)

type (
	// Context binds a target, a device and a queue.
	Context = internalexec.Context

	// Queue orders launches on one device.
	Queue = internalexec.Queue

	// Mode selects whether Enqueue waits for the task.
	Mode = internalexec.Mode

	// Event completes when an enqueued task has run.
	Event = internalexec.Event

	// Executor launches kernels on a Context.
	Executor = internalexec.Executor

	// ExecutorOption configures an Executor.
	ExecutorOption = internalexec.ExecutorOption

	// Config holds the launch geometry and ordering defaults.
	Config = internalexec.Config

	// Policy hands an Executor to an algorithm.
	Policy = internalexec.Policy

	// RunOption configures one run.
	RunOption = internalexec.RunOption

	// Future is the pending result of an asynchronous reduction.
	Future[R any] = internalexec.Future[R]

	// Logger is the structured logger an Executor writes to.
	Logger = logger.Logger
)

// Queue modes.
const (
	Blocking    = internalexec.Blocking
	NonBlocking = internalexec.NonBlocking
)

// DefaultLanesPerBlock is the block width of DefaultConfig.
const DefaultLanesPerBlock = internalexec.DefaultLanesPerBlock

// Errors.
var (
	ErrContextMismatch = internalexec.ErrContextMismatch
	ErrInvalidConfig   = internalexec.ErrInvalidConfig
	ErrQueueClosed     = internalexec.ErrQueueClosed
)

// NewQueue creates a queue for dev.
func NewQueue(dev kernel.Device, mode Mode) *Queue {
	return internalexec.NewQueue(dev, mode)
}

// NewContext validates and binds target, device and queue.
func NewContext(target kernel.Target, device kernel.Device, queue *Queue) (*Context, error) {
	return internalexec.NewContext(target, device, queue)
}

// NewDefaultContext binds the first device of target to a new queue.
func NewDefaultContext(target kernel.Target, mode Mode) (*Context, error) {
	return internalexec.NewDefaultContext(target, mode)
}

// DefaultConfig returns the default executor configuration.
func DefaultConfig() Config {
	return internalexec.DefaultConfig()
}

// NewExecutor creates an executor for c.
func NewExecutor(c *Context, cfg Config, opts ...ExecutorOption) (*Executor, error) {
	return internalexec.NewExecutor(c, cfg, opts...)
}

// WithLogger sets the executor logger.
func WithLogger(l Logger) ExecutorOption {
	return internalexec.WithLogger(l)
}

// NewPolicy wraps ex; relaxed allows partials to be combined in any order.
func NewPolicy(ex *Executor, relaxed bool) Policy {
	return internalexec.NewPolicy(ex, relaxed)
}

// MakeParallelPolicy wraps ex with relaxed ordering.
func MakeParallelPolicy(ex *Executor) Policy {
	return internalexec.MakeParallelPolicy(ex)
}

// WithRelaxedOrdering overrides the executor's ordering for one run.
func WithRelaxedOrdering(relaxed bool) RunOption {
	return internalexec.WithRelaxedOrdering(relaxed)
}

// RunReduce reduces src with r and waits for the result.
func RunReduce[T, R any](ctx context.Context, ex *Executor, src []T, r kernel.Reducer[T, R], opts ...RunOption) (kernel.Partial[R], error) {
	return internalexec.RunReduce(ctx, ex, src, r, opts...)
}

// RunReduceAsync enqueues a reduction of src and returns its Future.
func RunReduceAsync[T, R any](ctx context.Context, ex *Executor, src []T, r kernel.Reducer[T, R], opts ...RunOption) (*Future[R], error) {
	return internalexec.RunReduceAsync(ctx, ex, src, r, opts...)
}

// NewLogger builds a zap-backed Logger. format is "json" or "text"; level is
// one of none, debug, info, warn or error.
func NewLogger(format, level string) (Logger, error) {
	l, err := logger.NewLogger(format, level)
	if err != nil {
		return nil, err
	}
	return l, nil
}
