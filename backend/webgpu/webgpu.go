// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the GPU target.
//
// Sum reductions over float32 and int32 run as a native compute shader; other
// kernels are emulated on the host. New returns ErrUnavailable where no
// adapter can be opened.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if errors.Is(err, webgpu.ErrUnavailable) {
//	    // fall back to threaded.New(threaded.DefaultConfig())
//	}
//	defer gpu.Close()
package webgpu

import (
	internalwebgpu "github.com/born-ml/fold/internal/backend/webgpu"
	"github.com/born-ml/fold/kernel"
)

// Target runs kernels on a WebGPU adapter.
type Target = internalwebgpu.Target

// ErrUnavailable is returned by New when WebGPU cannot be initialized.
var ErrUnavailable = internalwebgpu.ErrUnavailable

// Compile-time check that Target implements kernel.Target.
var _ kernel.Target = (*Target)(nil)

// New opens the first high-performance adapter.
func New() (*Target, error) {
	return internalwebgpu.New()
}

// IsAvailable reports whether a WebGPU adapter can be opened.
func IsAvailable() bool {
	t, err := New()
	if err != nil {
		return false
	}
	t.Close()
	return true
}
