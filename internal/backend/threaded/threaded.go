// Package threaded implements the many-lane execution target: every lane of a
// block runs on its own goroutine, blocks synchronize through real barriers and
// blocks are scheduled on a bounded worker pool.
package threaded

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc"

	"github.com/born-ml/fold/internal/kernel"
	"github.com/born-ml/fold/internal/parallel"
)

// Config controls the threaded target.
type Config struct {
	// Workers is the number of blocks executing at the same time.
	Workers int
	// MaxBlocks caps the grid; lanes then stride over the remaining elements.
	// Zero means one block per LanesPerBlock elements.
	MaxBlocks int
}

// DefaultConfig runs one block per CPU at a time with an uncapped grid.
func DefaultConfig() Config {
	return Config{Workers: runtime.NumCPU()}
}

// Target runs kernels with goroutine lanes.
type Target struct {
	cfg    Config
	device kernel.Device
}

// New creates a threaded target.
func New(cfg Config) *Target {
	if cfg.Workers < 1 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.MaxBlocks < 0 {
		cfg.MaxBlocks = 0
	}
	return &Target{
		cfg: cfg,
		device: kernel.Device{
			Kind:  kernel.Threaded,
			Index: 0,
			Name:  fmt.Sprintf("goroutine lanes (%d workers)", cfg.Workers),
		},
	}
}

// Kind returns kernel.Threaded.
func (t *Target) Kind() kernel.Kind {
	return kernel.Threaded
}

// Name returns the target name.
func (t *Target) Name() string {
	return "threaded"
}

// Devices returns the single worker-pool device.
func (t *Target) Devices() []kernel.Device {
	return []kernel.Device{t.device}
}

// Workers returns the number of concurrently executing blocks.
func (t *Target) Workers() int {
	return t.cfg.Workers
}

// Fit clamps the block size and applies the grid cap.
func (t *Target) Fit(wd kernel.WorkDiv) kernel.WorkDiv {
	wd.LanesPerBlock = min(max(wd.LanesPerBlock, 1), kernel.MaxLanesPerBlock)
	wd.Blocks = max(wd.Blocks, 1)
	if t.cfg.MaxBlocks > 0 {
		wd.Blocks = min(wd.Blocks, t.cfg.MaxBlocks)
	}
	return wd
}

// Launch runs k over wd and returns when every block finished.
// A lane panic fails the launch with kernel.ErrLaunchFailed.
// Cancellation of ctx does not interrupt blocks that already started.
func (t *Target) Launch(ctx context.Context, dev kernel.Device, k kernel.Kernel, wd kernel.WorkDiv) error {
	if dev != t.device {
		return fmt.Errorf("%w: %s", kernel.ErrUnknownDevice, dev)
	}
	if err := wd.Validate(); err != nil {
		return err
	}

	cfg := parallel.Config{
		Enabled:      t.cfg.Workers > 1,
		NumWorkers:   t.cfg.Workers,
		MinChunkSize: 1,
	}
	return parallel.Blocks(context.WithoutCancel(ctx), wd.Blocks, func(_ context.Context, block int) error {
		return runBlock(k, wd, block)
	}, cfg)
}

// runBlock executes all lanes of one block and joins them.
func runBlock(k kernel.Kernel, wd kernel.WorkDiv, block int) error {
	lanes := wd.LanesPerBlock
	arena := kernel.NewArena(lanes)
	bar := newBarrier(lanes)

	var wg conc.WaitGroup
	for tid := 0; tid < lanes; tid++ {
		acc := kernel.NewAcc(wd, block, tid, bar, arena)
		wg.Go(func() {
			defer func() {
				if r := recover(); r != nil {
					bar.Break(r)
					panic(r)
				}
			}()
			k.Run(acc)
		})
	}

	if r := wg.WaitAndRecover(); r != nil {
		cause := bar.Cause()
		if cause == nil {
			cause = r.Value
		}
		return fmt.Errorf("%w: %s block %d: %v", kernel.ErrLaunchFailed, k.Name(), block, cause)
	}
	return nil
}
