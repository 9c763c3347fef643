// Copyright 2025 The uBLAS-Go Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package tensor

import (
	"golang.org/x/exp/constraints"

	"github.com/ublas-go/ublas/internal/tensor"
)

// Type aliases for public API

// DType is a constraint for tensor element types.
// Supported types: float32, float64, int32, int64, uint8.
type DType = tensor.DType

// DataType describes the element type of a tensor at runtime.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
	Int32   DataType = tensor.Int32
	Int64   DataType = tensor.Int64
	Uint8   DataType = tensor.Uint8
)

// Layout selects how strides are derived from extents.
type Layout = tensor.Layout

// Layout constants.
const (
	RowMajor Layout = tensor.RowMajor
	ColMajor Layout = tensor.ColMajor
)

// Shape holds the extents of a tensor, one per dimension.
// Example: Shape{2, 3, 4} describes a 3-D tensor with dimensions 2×3×4.
type Shape = tensor.Shape

// Strides holds the storage step of each dimension.
type Strides = tensor.Strides

// Span selects the half-open strided range [first:step:last) from one
// dimension.
type Span = tensor.Span

// End marks a span bound that extends to the full extent of whichever
// dimension the span is applied to.
const End = tensor.End

// Tensor is a dense multi-dimensional array over a flat backing store.
//
// T is the element type (float32, float64, int32, int64, uint8).
//
// Tensor provides:
//   - Checked multi-index and linear element access
//   - Zero-copy sub-views through span selectors
//   - Constant-time Swap and copy-and-swap assignment
//   - Lazy expressions and Einstein-notation contractions
type Tensor[T DType] = tensor.Tensor[T]

// ReadOnly is an immutable facade over a Tensor. It shares the
// underlying state and satisfies Expression.
type ReadOnly[T DType] = tensor.ReadOnly[T]

// Expression is a lazy tensor computation, evaluated when assigned to a
// destination with Tensor.Assign.
type Expression[T DType] = tensor.Expression[T]

// Index is a symbolic placeholder naming a tensor dimension in Einstein
// notation.
type Index = tensor.Index

// Predeclared index placeholders.
const (
	I Index = tensor.I
	J Index = tensor.J
	K Index = tensor.K
	L Index = tensor.L
	M Index = tensor.M
	N Index = tensor.N
	O Index = tensor.O
	P Index = tensor.P
)

// Indexed pairs a tensor with one index placeholder per dimension,
// forming a deferred contraction operand.
type Indexed[T DType] = tensor.Indexed[T]

// Store is the backing-container abstraction tensors are built over.
type Store[T DType] = tensor.Store[T]

// Dense is the default slice-backed store.
type Dense[T DType] = tensor.Dense[T]

// Error sentinels. Every error returned by this package wraps one of
// these; classify with errors.Is.
var (
	ErrInvalidArgument = tensor.ErrInvalidArgument
	ErrOutOfRange      = tensor.ErrOutOfRange
)

// Span constructors

// All returns the span selecting a whole dimension.
func All() Span { return tensor.All() }

// UpTo returns the span selecting [0:1:last).
func UpTo(last int) Span { return tensor.UpTo(last) }

// Ran returns the span selecting [first:1:last).
func Ran(first, last int) Span { return tensor.Ran(first, last) }

// NewSpan returns the span selecting [first:step:last). A zero step is
// rejected unless the span is degenerate (first == last).
func NewSpan(first, step, last int) (Span, error) { return tensor.NewSpan(first, step, last) }

// Creation functions

// New creates a zero-initialized row-major tensor with the given
// extents.
//
// Example:
//
//	x, err := tensor.New[float32](3, 4, 2)
func New[T DType, U constraints.Integer](sizes ...U) (*Tensor[T], error) {
	return tensor.New[T](sizes...)
}

// NewWithLayout creates a zero-initialized tensor with the given extents
// and layout.
//
// Example:
//
//	x, err := tensor.NewWithLayout[float64](tensor.ColMajor, 3, 4)
func NewWithLayout[T DType, U constraints.Integer](layout Layout, sizes ...U) (*Tensor[T], error) {
	return tensor.NewWithLayout[T](layout, sizes...)
}

// NewWithStore creates a tensor over a caller-supplied store. The store
// must hold exactly as many elements as the extents describe.
//
// Example:
//
//	st := tensor.DenseOf([]float32{1, 2, 3, 4, 5, 6})
//	x, err := tensor.NewWithStore(st, tensor.RowMajor, 2, 3)
func NewWithStore[T DType](store Store[T], layout Layout, sizes ...int) (*Tensor[T], error) {
	return tensor.NewWithStore(store, layout, sizes...)
}

// FromSlice creates a row-major tensor with the given extents, copying
// the provided data.
//
// Example:
//
//	x, err := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, 2, 3)
func FromSlice[T DType](data []T, sizes ...int) (*Tensor[T], error) {
	return tensor.FromSlice(data, sizes...)
}

// Full creates a row-major tensor with the given extents where every
// element is v.
func Full[T DType](v T, sizes ...int) (*Tensor[T], error) {
	return tensor.Full(v, sizes...)
}

// Arange creates a 1-D tensor with values from start to end (exclusive).
//
// Example:
//
//	x, err := tensor.Arange[float32](0, 10) // [0, 1, 2, ..., 9]
func Arange[T DType](start, end T) (*Tensor[T], error) {
	return tensor.Arange(start, end)
}

// NewDense creates a zero-initialized dense store of n elements.
func NewDense[T DType](n int) *Dense[T] { return tensor.NewDense[T](n) }

// DenseOf wraps an existing slice as a dense store without copying.
func DenseOf[T DType](data []T) *Dense[T] { return tensor.DenseOf(data) }

// Expression builders

// Add returns the lazy elementwise sum of two expressions.
func Add[T DType](a, b Expression[T]) Expression[T] { return tensor.Add(a, b) }

// Sub returns the lazy elementwise difference of two expressions.
func Sub[T DType](a, b Expression[T]) Expression[T] { return tensor.Sub(a, b) }

// Mul returns the lazy elementwise product of two expressions.
func Mul[T DType](a, b Expression[T]) Expression[T] { return tensor.Mul(a, b) }

// Scale returns the lazy product of a scalar and an expression.
func Scale[T DType](alpha T, e Expression[T]) Expression[T] { return tensor.Scale(alpha, e) }

// Product returns the lazy Einstein product of two indexed operands.
// Placeholders shared by both operands are summed over; the remaining
// dimensions stay free, left operand's first.
//
// Example:
//
//	ai, _ := A.Bind(tensor.I, tensor.K)
//	bi, _ := B.Bind(tensor.K, tensor.J)
//	_ = C.Assign(tensor.Product(ai, bi))
func Product[T DType](a, b Indexed[T]) Expression[T] { return tensor.Product(a, b) }
