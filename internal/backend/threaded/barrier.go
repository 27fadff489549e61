package threaded

import (
	"errors"
	"sync"
)

// errBarrierBroken is raised in lanes released by a broken barrier.
var errBarrierBroken = errors.New("threaded: block barrier broken")

// barrier is a reusable barrier for the lanes of one block.
// Break releases every waiter when a sibling lane can no longer arrive.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	phase   uint64
	broken  bool
	cause   any
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until all parties arrived. It panics with errBarrierBroken
// if the barrier was broken before the current phase completed.
func (b *barrier) Wait() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.broken {
		panic(errBarrierBroken)
	}

	phase := b.phase
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.phase++
		b.cond.Broadcast()
		return
	}

	for phase == b.phase {
		if b.broken {
			panic(errBarrierBroken)
		}
		b.cond.Wait()
	}
}

// Break marks the barrier broken and wakes every waiter. The first cause wins.
func (b *barrier) Break(cause any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.broken {
		b.broken = true
		b.cause = cause
	}
	b.cond.Broadcast()
}

// Cause returns the value passed to the first Break.
func (b *barrier) Cause() any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cause
}
