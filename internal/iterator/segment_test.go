package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegment_Stride(t *testing.T) {
	data := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	seg := NewSegment(data, 2, 3, len(data))
	var got []int
	for ; !seg.AtEnd(); seg.Advance() {
		got = append(got, seg.Value())
	}

	assert.Equal(t, []int{2, 5, 8}, got)
	assert.True(t, seg.AtEnd())
}

func TestSegment_EmptyWhenStartBeyondBound(t *testing.T) {
	data := []int{1, 2, 3}

	seg := NewSegment(data, 5, 4, len(data))
	assert.True(t, seg.AtEnd())
	assert.Equal(t, 0, seg.Remaining())
}

func TestSegment_BoundClippedToBuffer(t *testing.T) {
	data := []int{1, 2, 3}

	seg := NewSegment(data, 0, 1, 100)
	assert.Equal(t, 3, seg.Remaining())
}

func TestSegment_Remaining(t *testing.T) {
	data := make([]int, 10)

	tests := []struct {
		start, stride, bound, want int
	}{
		{0, 1, 10, 10},
		{0, 3, 10, 4},
		{1, 3, 10, 3},
		{9, 3, 10, 1},
		{10, 3, 10, 0},
		{0, 0, 4, 4},
	}
	for _, tt := range tests {
		seg := NewSegment(data, tt.start, tt.stride, tt.bound)
		assert.Equal(t, tt.want, seg.Remaining(), "start=%d stride=%d bound=%d", tt.start, tt.stride, tt.bound)
	}
}

func TestSegment_RefWritesThrough(t *testing.T) {
	data := []int{1, 2, 3, 4}

	for seg := NewSegment(data, 1, 2, len(data)); !seg.AtEnd(); seg.Advance() {
		*seg.Ref() *= 10
	}

	assert.Equal(t, []int{1, 20, 3, 40}, data)
}

func TestSegment_All(t *testing.T) {
	data := []string{"a", "b", "c", "d", "e"}
	seg := NewSegment(data, 0, 2, len(data))

	var idx []int
	var vals []string
	for i, v := range seg.All() {
		idx = append(idx, i)
		vals = append(vals, v)
	}

	require.True(t, seg.AtEnd())
	assert.Equal(t, []int{0, 2, 4}, idx)
	assert.Equal(t, []string{"a", "c", "e"}, vals)
}

// Every index of [0, n) must belong to exactly one lane for any lane count.
func TestSegment_LanesPartitionRange(t *testing.T) {
	for _, n := range []int{0, 1, 7, 64, 100, 257} {
		for _, lanes := range []int{1, 3, 16, 256, 300} {
			data := make([]int, n)
			visits := make([]int, n)
			for lane := 0; lane < lanes; lane++ {
				for seg := NewSegment(data, lane, lanes, n); !seg.AtEnd(); seg.Advance() {
					visits[seg.Index()]++
				}
			}
			for i, v := range visits {
				if v != 1 {
					t.Fatalf("n=%d lanes=%d: index %d visited %d times", n, lanes, i, v)
				}
			}
		}
	}
}
