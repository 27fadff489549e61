// Package kernel defines the lane-level execution model shared by every
// execution target: work division, the per-lane accelerator handle, block
// barriers, block-scoped shared memory, and the reduce and map kernels.
package kernel

import (
	"context"
	"fmt"
)

// MaxLanesPerBlock is the largest block any target accepts.
const MaxLanesPerBlock = 1024

// Kind identifies an execution target implementation.
type Kind int

// Supported target kinds.
const (
	Sequential Kind = iota
	Threaded
	WebGPU
)

// String returns a human-readable name for the target kind.
func (k Kind) String() string {
	switch k {
	case Sequential:
		return "sequential"
	case Threaded:
		return "threaded"
	case WebGPU:
		return "webgpu"
	default:
		return "unknown"
	}
}

// Device is a handle to one execution device of a target.
type Device struct {
	Kind  Kind
	Index int
	Name  string
}

// String formats the device as kind:index.
func (d Device) String() string {
	return fmt.Sprintf("%s:%d", d.Kind, d.Index)
}

// WorkDiv is the launch geometry of one kernel invocation.
type WorkDiv struct {
	Blocks        int
	LanesPerBlock int
}

// TotalLanes returns the number of lanes across the whole grid.
func (w WorkDiv) TotalLanes() int {
	return w.Blocks * w.LanesPerBlock
}

// Validate checks that the geometry can be launched.
func (w WorkDiv) Validate() error {
	if w.Blocks < 1 || w.LanesPerBlock < 1 || w.LanesPerBlock > MaxLanesPerBlock {
		return fmt.Errorf("%w: %d blocks x %d lanes", ErrInvalidWorkDiv, w.Blocks, w.LanesPerBlock)
	}
	return nil
}

// Kernel is a unit of device work. Run is executed once per lane of the
// launch; lanes of one block may synchronize through Acc.Sync.
type Kernel interface {
	Name() string
	Run(acc *Acc)
}

//go:generate mockgen -destination ../mocks/mock_target.go -package mocks github.com/born-ml/fold/internal/kernel Target

// Target executes kernels on its devices.
//
// Implementations:
//   - backend/sequential: one host lane, barriers are no-ops
//   - backend/threaded: one goroutine per lane, real block barriers
//   - backend/webgpu: WGSL compute shaders for tagged reductions
type Target interface {
	Kind() Kind
	Name() string
	Devices() []Device

	// Fit adapts a requested work division to what the target can run.
	Fit(wd WorkDiv) WorkDiv

	// Launch runs k over wd on dev and returns once every lane finished.
	Launch(ctx context.Context, dev Device, k Kernel, wd WorkDiv) error
}

// Barrier blocks each lane of a block until all lanes have arrived.
type Barrier interface {
	Wait()
}

// NoBarrier is the barrier of a single-lane block.
type NoBarrier struct{}

// Wait returns immediately.
func (NoBarrier) Wait() {}

// Acc is the accelerator handle passed to each lane.
type Acc struct {
	BlockIdx  int
	ThreadIdx int
	BlockDim  int
	GridDim   int

	barrier Barrier
	arena   *Arena
}

// NewAcc creates the handle for lane thread of block in wd.
// Lanes of the same block must share barrier and arena.
func NewAcc(wd WorkDiv, block, thread int, barrier Barrier, arena *Arena) *Acc {
	if barrier == nil {
		barrier = NoBarrier{}
	}
	return &Acc{
		BlockIdx:  block,
		ThreadIdx: thread,
		BlockDim:  wd.LanesPerBlock,
		GridDim:   wd.Blocks,
		barrier:   barrier,
		arena:     arena,
	}
}

// GlobalIdx returns the lane's linear index across the grid.
func (a *Acc) GlobalIdx() int {
	return a.BlockIdx*a.BlockDim + a.ThreadIdx
}

// TotalLanes returns the number of lanes across the grid.
func (a *Acc) TotalLanes() int {
	return a.GridDim * a.BlockDim
}

// Sync waits until every lane of the block reached the same barrier.
func (a *Acc) Sync() {
	a.barrier.Wait()
}
