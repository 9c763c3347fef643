package tensor

import (
	"fmt"

	"github.com/pkg/errors"
)

// Index is a symbolic placeholder naming a tensor dimension in Einstein
// notation. Binding placeholders to tensors produces Indexed operands;
// a placeholder appearing in both operands of a Product is summed over,
// one appearing in a single operand stays free in the result.
//
// The zero value is not a valid placeholder.
type Index int

// Predeclared index placeholders.
const (
	I Index = iota + 1
	J
	K
	L
	M
	N
	O
	P
)

var indexNames = [...]string{"i", "j", "k", "l", "m", "n", "o", "p"}

// String returns the conventional lower-case letter for the placeholder.
func (x Index) String() string {
	if x < I || x > P {
		return fmt.Sprintf("Index(%d)", int(x))
	}
	return indexNames[x-I]
}

// Valid reports whether x is one of the predeclared placeholders.
func (x Index) Valid() bool {
	return x >= I && x <= P
}

// Indexed pairs a tensor with one index placeholder per dimension. It is
// a deferred operand descriptor: nothing is computed until the Product
// it participates in is assigned to a destination.
type Indexed[T DType] struct {
	tensor *Tensor[T]
	tags   []Index
}

// Bind attaches one index placeholder per dimension to the tensor,
// producing a contraction operand. The number of placeholders must equal
// the tensor's rank, every placeholder must be valid, and a placeholder
// may not appear twice on the same operand.
func (t *Tensor[T]) Bind(tags ...Index) (Indexed[T], error) {
	if len(tags) != t.Rank() {
		return Indexed[T]{}, errors.Wrapf(ErrInvalidArgument,
			"number of index placeholders %d does not match tensor rank %d", len(tags), t.Rank())
	}
	for i, tag := range tags {
		if !tag.Valid() {
			return Indexed[T]{}, errors.Wrapf(ErrInvalidArgument,
				"placeholder at position %d is not a valid index", i)
		}
		for j := 0; j < i; j++ {
			if tags[j] == tag {
				return Indexed[T]{}, errors.Wrapf(ErrInvalidArgument,
					"index placeholder %s appears more than once on the same operand", tag)
			}
		}
	}
	bound := make([]Index, len(tags))
	copy(bound, tags)
	return Indexed[T]{tensor: t, tags: bound}, nil
}

// Tensor returns a read-only view of the operand's tensor. Binding never
// grants mutable access, so an operand built from a ReadOnly stays
// read-only.
func (ix Indexed[T]) Tensor() ReadOnly[T] { return ReadOnly[T]{t: ix.tensor} }

// Tags returns a copy of the operand's index placeholders, one per
// dimension.
func (ix Indexed[T]) Tags() []Index {
	out := make([]Index, len(ix.tags))
	copy(out, ix.tags)
	return out
}

// String renders the operand as e.g. "[3 4](i, j)".
func (ix Indexed[T]) String() string {
	s := fmt.Sprintf("%v(", []int(ix.tensor.extents))
	for i, tag := range ix.tags {
		if i > 0 {
			s += ", "
		}
		s += tag.String()
	}
	return s + ")"
}
