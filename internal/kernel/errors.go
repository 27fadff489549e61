package kernel

import "errors"

var (
	// ErrInvalidWorkDiv is returned for a launch geometry a target cannot run.
	ErrInvalidWorkDiv = errors.New("kernel: invalid work division")

	// ErrLaunchFailed is returned when a device could not complete a launch.
	ErrLaunchFailed = errors.New("kernel: launch failed")

	// ErrUnknownDevice is returned when a launch names a device the target does not own.
	ErrUnknownDevice = errors.New("kernel: unknown device")
)
