// Package sequential implements the host execution target: a single lane
// runs the whole grid in order and block barriers are no-ops.
package sequential

import (
	"context"
	"fmt"

	"github.com/born-ml/fold/internal/kernel"
)

// Target executes kernels inline on the calling goroutine.
type Target struct {
	device kernel.Device
}

// New creates a sequential target.
func New() *Target {
	return &Target{
		device: kernel.Device{Kind: kernel.Sequential, Index: 0, Name: "host"},
	}
}

// Kind returns kernel.Sequential.
func (t *Target) Kind() kernel.Kind {
	return kernel.Sequential
}

// Name returns the target name.
func (t *Target) Name() string {
	return "sequential"
}

// Devices returns the host device.
func (t *Target) Devices() []kernel.Device {
	return []kernel.Device{t.device}
}

// Fit collapses any request to one block of one lane.
func (t *Target) Fit(kernel.WorkDiv) kernel.WorkDiv {
	return kernel.WorkDiv{Blocks: 1, LanesPerBlock: 1}
}

// Launch runs every block of wd in order. Blocks wider than one lane are
// rejected because a single lane cannot honor their barriers.
func (t *Target) Launch(_ context.Context, dev kernel.Device, k kernel.Kernel, wd kernel.WorkDiv) (err error) {
	if dev != t.device {
		return fmt.Errorf("%w: %s", kernel.ErrUnknownDevice, dev)
	}
	if err := wd.Validate(); err != nil {
		return err
	}
	if wd.LanesPerBlock != 1 {
		return fmt.Errorf("%w: sequential target runs 1 lane per block, got %d", kernel.ErrInvalidWorkDiv, wd.LanesPerBlock)
	}

	block := 0
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %s block %d: %v", kernel.ErrLaunchFailed, k.Name(), block, r)
		}
	}()

	arena := kernel.NewArena(1)
	for ; block < wd.Blocks; block++ {
		arena.Reset()
		k.Run(kernel.NewAcc(wd, block, 0, kernel.NoBarrier{}, arena))
	}
	return nil
}
