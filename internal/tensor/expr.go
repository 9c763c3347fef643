package tensor

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Expression is a lazy tensor computation. Building an expression from
// tensors and other expressions performs no arithmetic and touches no
// element; evaluation happens in a single elementwise pass when the
// expression is assigned to a destination with Tensor.Assign.
//
// Tensors, read-only views and the nodes returned by Add, Sub, Mul,
// Scale and Product all satisfy Expression. The interface is sealed:
// its methods are unexported so every node type lives in this package
// and evaluation can rely on their invariants.
type Expression[T DType] interface {
	// exprExtents returns the extents of the value the expression
	// produces, validating conformance across the whole tree.
	exprExtents() (Shape, error)

	// elem prepares the expression for evaluation and returns an
	// accessor for the element at a logical multi-index. The accessor
	// must be safe for concurrent use; the index slice is only valid
	// for the duration of the call.
	elem() (func(idx []int) T, error)
}

func (t *Tensor[T]) exprExtents() (Shape, error) {
	return t.extents, nil
}

func (t *Tensor[T]) elem() (func(idx []int) T, error) {
	data := t.store.Data()
	offset := t.offset
	strides := t.strides
	return func(idx []int) T {
		return data[offset+strides.Offset(idx...)]
	}, nil
}

func (r ReadOnly[T]) exprExtents() (Shape, error) { return r.t.exprExtents() }

func (r ReadOnly[T]) elem() (func(idx []int) T, error) { return r.t.elem() }

// binaryExpr applies op elementwise to two conforming operands.
type binaryExpr[T DType] struct {
	name     string
	op       func(a, b T) T
	lhs, rhs Expression[T]
}

func (e *binaryExpr[T]) exprExtents() (Shape, error) {
	le, lerr := e.lhs.exprExtents()
	re, rerr := e.rhs.exprExtents()
	if err := multierr.Combine(lerr, rerr); err != nil {
		return nil, err
	}
	if !le.Equal(re) {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"cannot %s operands with extents %v and %v", e.name, []int(le), []int(re))
	}
	return le, nil
}

func (e *binaryExpr[T]) elem() (func(idx []int) T, error) {
	lf, lerr := e.lhs.elem()
	rf, rerr := e.rhs.elem()
	if err := multierr.Combine(lerr, rerr); err != nil {
		return nil, err
	}
	op := e.op
	return func(idx []int) T {
		return op(lf(idx), rf(idx))
	}, nil
}

// unaryExpr applies op elementwise to a single operand.
type unaryExpr[T DType] struct {
	op      func(v T) T
	operand Expression[T]
}

func (e *unaryExpr[T]) exprExtents() (Shape, error) {
	return e.operand.exprExtents()
}

func (e *unaryExpr[T]) elem() (func(idx []int) T, error) {
	f, err := e.operand.elem()
	if err != nil {
		return nil, err
	}
	op := e.op
	return func(idx []int) T {
		return op(f(idx))
	}, nil
}

// Add returns the lazy elementwise sum of two expressions. Operands must
// agree in extents; the check runs at assignment time.
func Add[T DType](a, b Expression[T]) Expression[T] {
	return &binaryExpr[T]{name: "add", op: func(x, y T) T { return x + y }, lhs: a, rhs: b}
}

// Sub returns the lazy elementwise difference of two expressions.
func Sub[T DType](a, b Expression[T]) Expression[T] {
	return &binaryExpr[T]{name: "subtract", op: func(x, y T) T { return x - y }, lhs: a, rhs: b}
}

// Mul returns the lazy elementwise product of two expressions.
func Mul[T DType](a, b Expression[T]) Expression[T] {
	return &binaryExpr[T]{name: "multiply", op: func(x, y T) T { return x * y }, lhs: a, rhs: b}
}

// Scale returns the lazy product of a scalar and an expression.
func Scale[T DType](alpha T, e Expression[T]) Expression[T] {
	return &unaryExpr[T]{op: func(v T) T { return alpha * v }, operand: e}
}
