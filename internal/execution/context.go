// Package execution binds kernels to execution targets: the execution context
// (target, device, queue), the executor that computes launch geometry and
// combines block partials, and the policy algorithms consume.
package execution

import (
	"fmt"
	"slices"

	"github.com/born-ml/fold/internal/kernel"
)

// Device is a handle to one device of an execution target.
type Device = kernel.Device

// Context binds an execution target, one of its devices and the queue that
// orders launches on that device.
type Context struct {
	target kernel.Target
	device Device
	queue  *Queue
}

// NewContext validates that device belongs to target and that queue is bound
// to device. A mismatch is a configuration error and is not recoverable.
func NewContext(target kernel.Target, device Device, queue *Queue) (*Context, error) {
	if target == nil || queue == nil {
		return nil, fmt.Errorf("%w: nil target or queue", ErrContextMismatch)
	}
	if device.Kind != target.Kind() {
		return nil, fmt.Errorf("%w: device %s on %s target", ErrContextMismatch, device, target.Kind())
	}
	if !slices.Contains(target.Devices(), device) {
		return nil, fmt.Errorf("%w: target %s has no device %s", ErrContextMismatch, target.Name(), device)
	}
	if queue.Device() != device {
		return nil, fmt.Errorf("%w: queue bound to %s, device is %s", ErrContextMismatch, queue.Device(), device)
	}

	return &Context{
		target: target,
		device: device,
		queue:  queue,
	}, nil
}

// MustNewContext is NewContext that panics on a mismatch.
func MustNewContext(target kernel.Target, device Device, queue *Queue) *Context {
	c, err := NewContext(target, device, queue)
	if err != nil {
		panic(err)
	}
	return c
}

// NewDefaultContext binds the target's first device to a new queue.
func NewDefaultContext(target kernel.Target, mode Mode) (*Context, error) {
	if target == nil {
		return nil, fmt.Errorf("%w: nil target", ErrContextMismatch)
	}
	devices := target.Devices()
	if len(devices) == 0 {
		return nil, fmt.Errorf("%w: target %s exposes no device", ErrContextMismatch, target.Name())
	}
	return NewContext(target, devices[0], NewQueue(devices[0], mode))
}

// Target returns the execution target.
func (c *Context) Target() kernel.Target {
	return c.target
}

// Device returns the bound device.
func (c *Context) Device() Device {
	return c.device
}

// Queue returns the bound queue.
func (c *Context) Queue() *Queue {
	return c.queue
}

// Close drains and closes the queue.
func (c *Context) Close() {
	c.queue.Close()
}
