package kernel

import "golang.org/x/exp/constraints"

// Number is the set of element types the built-in operators accept.
type Number interface {
	constraints.Integer | constraints.Float
}

// Op tags a reduction with a well-known operator so a device target can
// replace the generic combine function with a native kernel.
type Op int

// Known operators.
const (
	OpCustom Op = iota
	OpSum
	OpProd
	OpMin
	OpMax
)

// String returns the operator name.
func (o Op) String() string {
	switch o {
	case OpSum:
		return "sum"
	case OpProd:
		return "prod"
	case OpMin:
		return "min"
	case OpMax:
		return "max"
	default:
		return "custom"
	}
}

// Sum adds two values.
func Sum[T Number](a, b T) T { return a + b }

// Prod multiplies two values.
func Prod[T Number](a, b T) T { return a * b }

// Min returns the smaller value.
func Min[T Number](a, b T) T { return min(a, b) }

// Max returns the larger value.
func Max[T Number](a, b T) T { return max(a, b) }

// Reducer describes a transform-reduce: every element is mapped through
// Transform inside its lane, then folded with Combine.
// Combine must be associative and commutative: the block tree pairs slot t
// with slot t+ceil(size/2), not with its neighbour.
type Reducer[T, R any] struct {
	Transform func(T) R
	Combine   func(R, R) R
	Op        Op
}

// Fold returns a plain reduction with combine.
func Fold[T any](combine func(T, T) T) Reducer[T, T] {
	return Reducer[T, T]{
		Transform: identity[T],
		Combine:   combine,
	}
}

// Transformed returns a reduction of transform(x) with combine.
func Transformed[T, R any](transform func(T) R, combine func(R, R) R) Reducer[T, R] {
	return Reducer[T, R]{
		Transform: transform,
		Combine:   combine,
	}
}

// SumOf returns the tagged sum reduction.
func SumOf[T Number]() Reducer[T, T] {
	return Reducer[T, T]{Transform: identity[T], Combine: Sum[T], Op: OpSum}
}

// ProdOf returns the tagged product reduction.
func ProdOf[T Number]() Reducer[T, T] {
	return Reducer[T, T]{Transform: identity[T], Combine: Prod[T], Op: OpProd}
}

// MinOf returns the tagged minimum reduction.
func MinOf[T Number]() Reducer[T, T] {
	return Reducer[T, T]{Transform: identity[T], Combine: Min[T], Op: OpMin}
}

// MaxOf returns the tagged maximum reduction.
func MaxOf[T Number]() Reducer[T, T] {
	return Reducer[T, T]{Transform: identity[T], Combine: Max[T], Op: OpMax}
}

func identity[T any](v T) T { return v }
