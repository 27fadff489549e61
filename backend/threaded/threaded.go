// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package threaded provides the goroutine-lane target: every lane of a block
// runs concurrently and block barriers are real.
package threaded

import (
	internalthreaded "github.com/born-ml/fold/internal/backend/threaded"
	"github.com/born-ml/fold/kernel"
)

// Target runs blocks on a bounded worker pool.
type Target = internalthreaded.Target

// Config controls worker count and grid cap.
type Config = internalthreaded.Config

// Compile-time check that Target implements kernel.Target.
var _ kernel.Target = (*Target)(nil)

// DefaultConfig runs one block per CPU at a time.
func DefaultConfig() Config {
	return internalthreaded.DefaultConfig()
}

// New creates a threaded target.
func New(cfg Config) *Target {
	return internalthreaded.New(cfg)
}
