package execution

import "errors"

var (
	// ErrContextMismatch is returned when a context's target, device and queue
	// do not refer to the same execution target.
	ErrContextMismatch = errors.New("execution: target, device and queue do not match")

	// ErrInvalidConfig is returned by NewExecutor for an unusable Config.
	ErrInvalidConfig = errors.New("execution: invalid config")

	// ErrQueueClosed is returned when work is enqueued on a closed queue.
	ErrQueueClosed = errors.New("execution: queue closed")
)
