// Package iterator provides the strided segment walk used by every kernel lane.
package iterator

import "iter"

// Segment walks one lane's share of a contiguous buffer: the indices
// start, start+stride, start+2*stride, ... that are below the bound.
//
// A Segment only moves forward. To walk the same share again, construct a new
// one with NewSegment.
type Segment[T any] struct {
	base   []T
	pos    int
	stride int
	bound  int
}

// NewSegment creates a segment over base starting at start with the given stride.
// The bound is exclusive and is clipped to len(base).
// A stride below 1 is treated as 1.
func NewSegment[T any](base []T, start, stride, bound int) Segment[T] {
	if stride < 1 {
		stride = 1
	}
	if bound > len(base) {
		bound = len(base)
	}
	if start < 0 {
		start = 0
	}
	return Segment[T]{
		base:   base,
		pos:    start,
		stride: stride,
		bound:  bound,
	}
}

// AtEnd reports whether the segment has no current element.
func (s *Segment[T]) AtEnd() bool {
	return s.pos >= s.bound
}

// Advance moves to the next element of the lane's share.
func (s *Segment[T]) Advance() {
	s.pos += s.stride
}

// Index returns the current linear index into the base buffer.
func (s *Segment[T]) Index() int {
	return s.pos
}

// Value returns the element at the current position.
// Calling Value when AtEnd is true panics with an index error.
func (s *Segment[T]) Value() T {
	return s.base[s.pos]
}

// Ref returns a pointer to the element at the current position.
func (s *Segment[T]) Ref() *T {
	return &s.base[s.pos]
}

// Remaining returns how many elements the segment will still visit.
func (s *Segment[T]) Remaining() int {
	if s.AtEnd() {
		return 0
	}
	return (s.bound-s.pos-1)/s.stride + 1
}

// All returns a range-over-func sequence of (index, value) pairs
// from the current position to the end. It consumes the segment.
func (s *Segment[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for ; !s.AtEnd(); s.Advance() {
			if !yield(s.pos, s.base[s.pos]) {
				return
			}
		}
	}
}
