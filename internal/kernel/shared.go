package kernel

import (
	"fmt"
	"sync"
)

// SharedArray is a fixed-capacity array private to one block.
// It lives for a single block execution and is indexed by local lane id.
type SharedArray[T any] struct {
	data []T
}

// NewSharedArray allocates a zeroed array with the given capacity.
func NewSharedArray[T any](capacity int) *SharedArray[T] {
	return &SharedArray[T]{data: make([]T, capacity)}
}

// Len returns the capacity of the array.
func (s *SharedArray[T]) Len() int {
	return len(s.data)
}

// At returns slot i.
func (s *SharedArray[T]) At(i int) T {
	return s.data[i]
}

// Set stores v in slot i.
func (s *SharedArray[T]) Set(i int, v T) {
	s.data[i] = v
}

// Arena holds the shared variables of one block for one launch.
type Arena struct {
	mu    sync.Mutex
	lanes int
	vars  map[int]any
}

// NewArena creates an arena for a block of the given lane count.
func NewArena(lanes int) *Arena {
	return &Arena{lanes: lanes}
}

// Reset drops every variable so the arena can back another block.
func (a *Arena) Reset() {
	a.mu.Lock()
	clear(a.vars)
	a.mu.Unlock()
}

// Shared returns the block's shared array number id, sized to the block.
// The first lane to ask allocates it; the other lanes of the block receive
// the same array.
func Shared[T any](acc *Acc, id int) *SharedArray[T] {
	a := acc.arena
	if a == nil {
		panic("kernel: lane has no shared memory arena")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.vars == nil {
		a.vars = make(map[int]any)
	}
	v, ok := a.vars[id]
	if !ok {
		arr := NewSharedArray[T](a.lanes)
		a.vars[id] = arr
		return arr
	}
	arr, ok := v.(*SharedArray[T])
	if !ok {
		panic(fmt.Sprintf("kernel: shared variable %d has type %T", id, v))
	}
	return arr
}
