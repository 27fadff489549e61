package kernel

import "github.com/born-ml/fold/internal/iterator"

// sdataSlot is the shared variable id of the reduction scratch array.
const sdataSlot = 0

// ReduceKernel folds Source[:N] into one Partial per block.
//
// Each lane folds its strided share of the input into a private partial,
// stores it in the block's shared array, and the block then folds the shared
// array with a barrier-separated binary tree. Lane 0 writes the block result
// to Dest[BlockIdx]. Blocks without a valid element leave their slot untouched.
type ReduceKernel[T, R any] struct {
	Source  []T
	Dest    []Partial[R]
	N       int
	Reducer Reducer[T, R]
}

// NewReduceKernel binds a reduction to its buffers.
func NewReduceKernel[T, R any](src []T, dst []Partial[R], n int, r Reducer[T, R]) *ReduceKernel[T, R] {
	return &ReduceKernel[T, R]{
		Source:  src,
		Dest:    dst,
		N:       n,
		Reducer: r,
	}
}

// Name returns the kernel name used in logs and metrics.
func (k *ReduceKernel[T, R]) Name() string {
	return "reduce_" + k.Reducer.Op.String()
}

// Run executes one lane of the reduction.
func (k *ReduceKernel[T, R]) Run(acc *Acc) {
	sdata := Shared[Partial[R]](acc, sdataSlot)
	tid := acc.ThreadIdx
	base := acc.BlockIdx * acc.BlockDim

	sdata.Set(tid, k.foldLane(acc))
	acc.Sync()

	// ceil-halving keeps odd block sizes exact: the middle slot of an odd
	// span stays in place and is folded in a later round.
	for size, up := acc.BlockDim, (acc.BlockDim+1)/2; size > 1; size, up = up, (up+1)/2 {
		if tid < up && tid+up < size && base+tid+up < k.N && base+tid < k.N {
			sdata.Set(tid, Merge(sdata.At(tid), sdata.At(tid+up), k.Reducer.Combine))
		}
		acc.Sync()
	}

	if tid == 0 && base < k.N {
		k.Dest[acc.BlockIdx] = sdata.At(0)
	}
}

// foldLane folds every element of the lane's share, seeded with the first one.
func (k *ReduceKernel[T, R]) foldLane(acc *Acc) Partial[R] {
	seg := iterator.NewSegment(k.Source, acc.GlobalIdx(), acc.TotalLanes(), k.N)
	if seg.AtEnd() {
		return Partial[R]{}
	}

	r := k.Reducer
	out := Partial[R]{Value: r.Transform(seg.Value()), Valid: true}
	for seg.Advance(); !seg.AtEnd(); seg.Advance() {
		out.Value = r.Combine(out.Value, r.Transform(seg.Value()))
	}
	return out
}
