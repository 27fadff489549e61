package execution

import (
	"context"
	"sync"

	"github.com/born-ml/fold/internal/kernel"
)

// Mode selects how a Queue runs its work.
type Mode int

const (
	// Blocking runs each task inside Enqueue; the caller blocks until the
	// device work completes.
	Blocking Mode = iota
	// NonBlocking runs tasks in order on a worker goroutine; the caller must
	// wait on the returned Event before reading results.
	NonBlocking
)

// String returns the mode name.
func (m Mode) String() string {
	if m == NonBlocking {
		return "non-blocking"
	}
	return "blocking"
}

// queueDepth bounds the number of launches waiting on a non-blocking queue.
const queueDepth = 64

// Event signals completion of one enqueued task.
type Event struct {
	done chan struct{}
	err  error
}

func newEvent() *Event {
	return &Event{done: make(chan struct{})}
}

func (e *Event) complete(err error) {
	e.err = err
	close(e.done)
}

// Done is closed once the task finished.
func (e *Event) Done() <-chan struct{} {
	return e.done
}

// Wait blocks until the task finished and returns its error.
// If ctx ends first, Wait returns ctx.Err() and the task keeps running.
func (e *Event) Wait(ctx context.Context) error {
	select {
	case <-e.done:
		return e.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

type task struct {
	fn    func() error
	event *Event
}

// Queue orders the launches issued to one device.
type Queue struct {
	device kernel.Device
	mode   Mode

	mu      sync.Mutex
	run     sync.Mutex // serializes inline tasks of a blocking queue
	closed  bool
	pending sync.WaitGroup
	tasks   chan task
	stopped chan struct{}
}

// NewQueue creates a queue bound to dev. A NonBlocking queue owns a worker
// goroutine until Close.
func NewQueue(dev kernel.Device, mode Mode) *Queue {
	q := &Queue{
		device: dev,
		mode:   mode,
	}
	if mode == NonBlocking {
		q.tasks = make(chan task, queueDepth)
		q.stopped = make(chan struct{})
		go q.worker()
	}
	return q
}

func (q *Queue) worker() {
	defer close(q.stopped)
	for t := range q.tasks {
		t.event.complete(t.fn())
		q.pending.Done()
	}
}

// Device returns the device the queue is bound to.
func (q *Queue) Device() kernel.Device {
	return q.device
}

// Mode returns the queue mode.
func (q *Queue) Mode() Mode {
	return q.mode
}

// Enqueue schedules fn after every previously enqueued task.
func (q *Queue) Enqueue(fn func() error) (*Event, error) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil, ErrQueueClosed
	}

	ev := newEvent()
	q.pending.Add(1)
	if q.mode == NonBlocking {
		q.tasks <- task{fn: fn, event: ev}
		q.mu.Unlock()
		return ev, nil
	}
	q.mu.Unlock()

	q.runInline(task{fn: fn, event: ev})
	return ev, nil
}

func (q *Queue) runInline(t task) {
	q.run.Lock()
	defer q.run.Unlock()
	defer q.pending.Done()
	t.event.complete(t.fn())
}

// Wait blocks until every enqueued task finished.
func (q *Queue) Wait() {
	q.pending.Wait()
}

// Close waits for pending work and stops the worker. It is safe to call twice.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	if q.mode == NonBlocking {
		close(q.tasks)
	}
	q.mu.Unlock()

	if q.mode == NonBlocking {
		<-q.stopped
	}
	q.pending.Wait()
}
