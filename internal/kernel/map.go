package kernel

// MapFunc is an elementwise operation launched through the kernel path.
// It receives the whole source and destination and iterates them itself.
type MapFunc[T, R any] func(acc *Acc, block int, dst []R, src []T)

// MapKernel adapts a MapFunc to the Kernel interface. The function runs
// exactly once per launch, on the first lane of the grid, whatever the work
// division.
type MapKernel[T, R any] struct {
	Source []T
	Dest   []R
	Fn     MapFunc[T, R]
	name   string
}

// NewMapKernel binds fn to its buffers. For in-place maps src and dst are
// the same slice.
func NewMapKernel[T, R any](name string, src []T, dst []R, fn MapFunc[T, R]) *MapKernel[T, R] {
	if name == "" {
		name = "map"
	}
	return &MapKernel[T, R]{
		Source: src,
		Dest:   dst,
		Fn:     fn,
		name:   name,
	}
}

// Name returns the kernel name.
func (k *MapKernel[T, R]) Name() string {
	return k.name
}

// Run invokes the mapped function from lane 0 of block 0.
func (k *MapKernel[T, R]) Run(acc *Acc) {
	if acc.GlobalIdx() != 0 {
		return
	}
	k.Fn(acc, acc.BlockIdx, k.Dest, k.Source)
}
