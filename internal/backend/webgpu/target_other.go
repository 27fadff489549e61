//go:build !windows

package webgpu

import (
	"context"

	"github.com/born-ml/fold/internal/kernel"
)

// Target is unavailable on this platform.
type Target struct{}

// New always fails with ErrUnavailable.
func New() (*Target, error) {
	return nil, ErrUnavailable
}

// Kind returns kernel.WebGPU.
func (t *Target) Kind() kernel.Kind {
	return kernel.WebGPU
}

// Name returns the target name.
func (t *Target) Name() string {
	return "webgpu"
}

// Devices returns no devices.
func (t *Target) Devices() []kernel.Device {
	return nil
}

// Fit pins the block width to the workgroup size.
func (t *Target) Fit(wd kernel.WorkDiv) kernel.WorkDiv {
	return fit(wd)
}

// Launch fails with ErrUnavailable.
func (t *Target) Launch(context.Context, kernel.Device, kernel.Kernel, kernel.WorkDiv) error {
	return ErrUnavailable
}

// Close is a no-op.
func (t *Target) Close() {}
