// Copyright 2025 The uBLAS-Go Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides dense multi-dimensional arrays with strided
// storage, span-based sub-views and lazily evaluated expressions.
//
// # Overview
//
// A Tensor[T] is a flat backing store plus a descriptor: extents give
// the logical shape, strides map a multi-index to a storage offset, and
// the layout (row-major or column-major) fixes how strides are derived.
// This package provides:
//   - Generic type-safe tensors (Tensor[T]) over pluggable stores
//   - Span selectors [first:step:last) and zero-copy sub-views
//   - Einstein-notation contractions via index placeholders
//   - Lazy expressions evaluated in a single pass at assignment
//
// # Basic Usage
//
//	import "github.com/ublas-go/ublas/tensor"
//
//	func main() {
//	    a, _ := tensor.New[float32](3, 4, 2)
//	    a.Fill(1)
//
//	    v, _ := a.At(1, 2, 0)     // checked multi-index access
//	    _ = a.SetAt(5, 1, 2, 0)   // checked multi-index write
//
//	    for i, x := range a.Values() {
//	        _ = i // linear position in storage order
//	        _ = x
//	    }
//	}
//
// # Spans and Views
//
// A Span selects [first:step:last) from one dimension. Slice applies one
// span per dimension and returns a view sharing the parent's store:
//
//	a, _ := tensor.New[float64](8, 8)
//	s, _ := tensor.NewSpan(0, 2, 8)
//	v, _ := a.Slice(tensor.Ran(2, 6), s)
//	v.Fill(1) // writes through to a
//
// Spans compose: s.Compose(t) selects through s what t selects from s's
// image, so slicing a view twice equals slicing the parent once with the
// composed spans.
//
// # Einstein Notation
//
// Binding index placeholders to tensors builds deferred contraction
// operands. A placeholder appearing on both operands of a Product is
// summed over; the rest stay free:
//
//	A, _ := tensor.New[float64](3, 4)
//	B, _ := tensor.New[float64](4, 5)
//	ai, _ := A.Bind(tensor.I, tensor.K)
//	bi, _ := B.Bind(tensor.K, tensor.J)
//
//	C, _ := tensor.New[float64](0)
//	_ = C.Assign(tensor.Product(ai, bi)) // C[i,j] = sum_k A[i,k]*B[k,j]
//
// # Lazy Evaluation
//
// Add, Sub, Mul, Scale and Product build expression trees without
// touching any element. Arithmetic runs once, elementwise, when the
// expression is assigned with Assign; conformance of every operand is
// validated first, and the destination is replaced atomically, so a
// failed assignment leaves it untouched.
//
// # Supported Data Types
//
// The DType constraint admits:
//   - float32, float64 (floating-point)
//   - int32, int64 (signed integers)
//   - uint8 (unsigned integers)
//
// # Layouts
//
// RowMajor keeps the last dimension contiguous in memory, ColMajor the
// first. The layout is fixed per tensor at construction; element access
// and expressions work transparently across layouts.
package tensor
