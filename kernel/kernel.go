// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kernel defines the device-independent kernel model: work
// divisions, per-lane accelerator handles, block-shared memory and the
// built-in reduction and map kernels.
//
// A target runs a kernel once per lane of a grid of blocks. Lanes of one block
// share memory and synchronize through Acc.Sync.
package kernel

import (
	internalkernel "github.com/born-ml/fold/internal/kernel"
)

// MaxLanesPerBlock bounds the block width on every target.
const MaxLanesPerBlock = internalkernel.MaxLanesPerBlock

// Number is the element constraint of the built-in operators.
type Number = internalkernel.Number

// Kind identifies an execution target family.
type Kind = internalkernel.Kind

// Target kinds.
const (
	Sequential = internalkernel.Sequential
	Threaded   = internalkernel.Threaded
	WebGPU     = internalkernel.WebGPU
)

type (
	// Device is one execution resource owned by a Target.
	Device = internalkernel.Device

	// WorkDiv is the launch geometry: blocks of lanes.
	WorkDiv = internalkernel.WorkDiv

	// Kernel is a program run once per lane.
	Kernel = internalkernel.Kernel

	// Target executes kernels on its devices.
	Target = internalkernel.Target

	// Acc is the per-lane handle passed to Kernel.Run.
	Acc = internalkernel.Acc

	// Op tags a reduction with a well-known operator.
	Op = internalkernel.Op

	// Reducer is a transform-reduce description.
	Reducer[T, R any] = internalkernel.Reducer[T, R]

	// Partial is one block's contribution; Valid is false when the block
	// covered no elements.
	Partial[R any] = internalkernel.Partial[R]

	// ReduceKernel folds a range into one Partial per block.
	ReduceKernel[T, R any] = internalkernel.ReduceKernel[T, R]

	// MapKernel runs an elementwise function once per launch.
	MapKernel[T, R any] = internalkernel.MapKernel[T, R]

	// MapFunc is the function a MapKernel runs.
	MapFunc[T, R any] = internalkernel.MapFunc[T, R]

	// SharedArray is block-shared memory.
	SharedArray[T any] = internalkernel.SharedArray[T]
)

// Reduction operators.
const (
	OpCustom = internalkernel.OpCustom
	OpSum    = internalkernel.OpSum
	OpProd   = internalkernel.OpProd
	OpMin    = internalkernel.OpMin
	OpMax    = internalkernel.OpMax
)

// Errors returned by targets.
var (
	ErrInvalidWorkDiv = internalkernel.ErrInvalidWorkDiv
	ErrLaunchFailed   = internalkernel.ErrLaunchFailed
	ErrUnknownDevice  = internalkernel.ErrUnknownDevice
)

// Shared returns the block-shared array with the given id. Every lane of a
// block receives the same array.
func Shared[T any](acc *Acc, id int) *SharedArray[T] {
	return internalkernel.Shared[T](acc, id)
}

// Fold returns a plain reduction with combine, which must be associative
// and commutative.
func Fold[T any](combine func(T, T) T) Reducer[T, T] {
	return internalkernel.Fold(combine)
}

// Transformed returns a reduction of transform(x) with combine.
func Transformed[T, R any](transform func(T) R, combine func(R, R) R) Reducer[T, R] {
	return internalkernel.Transformed(transform, combine)
}

// SumOf returns the tagged sum reduction.
func SumOf[T Number]() Reducer[T, T] {
	return internalkernel.SumOf[T]()
}

// ProdOf returns the tagged product reduction.
func ProdOf[T Number]() Reducer[T, T] {
	return internalkernel.ProdOf[T]()
}

// MinOf returns the tagged minimum reduction.
func MinOf[T Number]() Reducer[T, T] {
	return internalkernel.MinOf[T]()
}

// MaxOf returns the tagged maximum reduction.
func MaxOf[T Number]() Reducer[T, T] {
	return internalkernel.MaxOf[T]()
}

// NewReduceKernel binds a reduction of the first n elements of src to one
// destination slot per block.
func NewReduceKernel[T, R any](src []T, dst []Partial[R], n int, r Reducer[T, R]) *ReduceKernel[T, R] {
	return internalkernel.NewReduceKernel(src, dst, n, r)
}

// NewMapKernel binds fn to its buffers.
func NewMapKernel[T, R any](name string, src []T, dst []R, fn MapFunc[T, R]) *MapKernel[T, R] {
	return internalkernel.NewMapKernel(name, src, dst, fn)
}
