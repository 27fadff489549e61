// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package sequential provides the single-lane host target.
//
// Example:
//
//	import (
//	    "github.com/born-ml/fold/backend/sequential"
//	    "github.com/born-ml/fold/execution"
//	)
//
//	func main() {
//	    ctx, err := execution.NewDefaultContext(sequential.New(), execution.Blocking)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    defer ctx.Close()
//	}
package sequential

import (
	internalseq "github.com/born-ml/fold/internal/backend/sequential"
	"github.com/born-ml/fold/kernel"
)

// Target runs every block in order on the calling goroutine.
type Target = internalseq.Target

// Compile-time check that Target implements kernel.Target.
var _ kernel.Target = (*Target)(nil)

// New creates a sequential target.
func New() *Target {
	return internalseq.New()
}
