package execution

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/born-ml/fold/internal/kernel"
	"github.com/born-ml/fold/internal/logger"
	"github.com/born-ml/fold/internal/parallel"
)

// Executor computes launch geometry, issues launches on a Context and folds
// the per-block partials on the host.
type Executor struct {
	ctx    *Context
	cfg    Config
	logger logger.Logger
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithLogger sets the logger used for launch diagnostics.
func WithLogger(l logger.Logger) ExecutorOption {
	return func(e *Executor) {
		e.logger = l
	}
}

// NewExecutor validates cfg and binds it to c.
func NewExecutor(c *Context, cfg Config, opts ...ExecutorOption) (*Executor, error) {
	if c == nil {
		return nil, fmt.Errorf("%w: nil context", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Executor{
		ctx:    c,
		cfg:    cfg,
		logger: logger.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Context returns the bound execution context.
func (e *Executor) Context() *Context {
	return e.ctx
}

// Config returns the validated configuration.
func (e *Executor) Config() Config {
	return e.cfg
}

// WorkDiv returns the launch geometry for n elements: ceil(n/B) blocks of B
// lanes, capped by MaxBlocks and fitted to the target.
func (e *Executor) WorkDiv(n int) kernel.WorkDiv {
	b := e.cfg.LanesPerBlock
	wd := kernel.WorkDiv{
		Blocks:        max((n+b-1)/b, 1),
		LanesPerBlock: b,
	}
	if e.cfg.MaxBlocks > 0 {
		wd.Blocks = min(wd.Blocks, e.cfg.MaxBlocks)
	}
	return e.ctx.target.Fit(wd)
}

// ParallelConfig returns the host loop configuration a map kernel should use
// for its per-element iteration on this executor's target.
func (e *Executor) ParallelConfig() parallel.Config {
	if e.ctx.target.Kind() == kernel.Sequential {
		return parallel.SequentialConfig()
	}
	cfg := parallel.DefaultConfig()
	if w, ok := e.ctx.target.(interface{ Workers() int }); ok && w.Workers() > 0 {
		cfg.NumWorkers = w.Workers()
		cfg.Enabled = cfg.NumWorkers > 1
	}
	return cfg
}

// launch enqueues one kernel launch. The launch runs to completion even if
// ctx is canceled afterwards.
func (e *Executor) launch(ctx context.Context, k kernel.Kernel, wd kernel.WorkDiv, n int) (*Event, error) {
	id := ulid.Make().String()
	target := e.ctx.target
	dev := e.ctx.device

	e.logger.DebugWithContext(ctx, "enqueue kernel launch",
		zap.String("launch_id", id),
		zap.String("kernel", k.Name()),
		zap.Stringer("device", dev),
		zap.Int("n", n),
		zap.Int("blocks", wd.Blocks),
		zap.Int("lanes_per_block", wd.LanesPerBlock),
	)

	ctx = context.WithoutCancel(ctx)
	return e.ctx.queue.Enqueue(func() error {
		ctx, span := tracer.Start(ctx, "execution.Launch", trace.WithAttributes(
			attribute.String("launch.id", id),
			attribute.String("kernel", k.Name()),
			attribute.String("target", target.Name()),
			attribute.Int("n", n),
			attribute.Int("blocks", wd.Blocks),
			attribute.Int("lanes_per_block", wd.LanesPerBlock),
		))
		defer span.End()

		start := time.Now()
		err := target.Launch(ctx, dev, k, wd)
		launchDurationHistogram.WithLabelValues(target.Name(), k.Name()).Observe(time.Since(start).Seconds())

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			launchCounter.WithLabelValues(target.Name(), k.Name(), "error").Inc()
			e.logger.ErrorWithContext(ctx, "kernel launch failed",
				zap.String("launch_id", id),
				zap.String("kernel", k.Name()),
				zap.Error(err),
			)
			return fmt.Errorf("execution: launch %s on %s: %w", k.Name(), dev, err)
		}

		launchCounter.WithLabelValues(target.Name(), k.Name(), "ok").Inc()
		elementsCounter.WithLabelValues(target.Name()).Add(float64(n))
		return nil
	})
}

// RunOption adjusts a single run.
type RunOption func(*runOptions)

type runOptions struct {
	relaxed bool
}

// WithRelaxedOrdering overrides the executor's RelaxedOrdering for one run.
func WithRelaxedOrdering(relaxed bool) RunOption {
	return func(o *runOptions) {
		o.relaxed = relaxed
	}
}

// Future is the pending result of an asynchronous reduction.
type Future[R any] struct {
	event  *Event
	fold   func() kernel.Partial[R]
	once   sync.Once
	result kernel.Partial[R]
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Done is closed when the launch finished.
func (f *Future[R]) Done() <-chan struct{} {
	if f.event == nil {
		return closedChan
	}
	return f.event.Done()
}

// Wait blocks until the launch completed and returns the combined partial.
// The block-partial buffer is read only after completion was observed.
// A result with Valid == false means no element contributed.
func (f *Future[R]) Wait(ctx context.Context) (kernel.Partial[R], error) {
	if f.event != nil {
		if err := f.event.Wait(ctx); err != nil {
			return kernel.Partial[R]{}, err
		}
	}
	f.once.Do(func() {
		if f.fold != nil {
			f.result = f.fold()
		}
	})
	return f.result, nil
}

// RunReduceAsync launches a reduction of src and returns without waiting.
// An empty src completes immediately without a launch.
func RunReduceAsync[T, R any](ctx context.Context, e *Executor, src []T, r kernel.Reducer[T, R], opts ...RunOption) (*Future[R], error) {
	o := runOptions{relaxed: e.cfg.RelaxedOrdering}
	for _, opt := range opts {
		opt(&o)
	}

	n := len(src)
	if n == 0 {
		return &Future[R]{}, nil
	}

	wd := e.WorkDiv(n)
	partials := make([]kernel.Partial[R], wd.Blocks)
	k := kernel.NewReduceKernel(src, partials, n, r)

	ev, err := e.launch(ctx, k, wd, n)
	if err != nil {
		return nil, err
	}

	return &Future[R]{
		event: ev,
		fold: func() kernel.Partial[R] {
			if o.relaxed {
				return kernel.FoldPartialsTree(partials, r.Combine)
			}
			return kernel.FoldPartials(partials, r.Combine)
		},
	}, nil
}

// RunReduce launches a reduction of src and waits for the combined result.
func RunReduce[T, R any](ctx context.Context, e *Executor, src []T, r kernel.Reducer[T, R], opts ...RunOption) (kernel.Partial[R], error) {
	f, err := RunReduceAsync(ctx, e, src, r, opts...)
	if err != nil {
		return kernel.Partial[R]{}, err
	}
	return f.Wait(ctx)
}

// RunMap launches a map-style kernel over n elements with a single-lane work
// division and waits for it to finish.
func (e *Executor) RunMap(ctx context.Context, k kernel.Kernel, n int) error {
	wd := e.ctx.target.Fit(kernel.WorkDiv{Blocks: 1, LanesPerBlock: 1})
	ev, err := e.launch(ctx, k, wd, n)
	if err != nil {
		return err
	}
	return ev.Wait(ctx)
}
