package tensor

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Shape holds the extents of a tensor: the ordered sizes of its
// dimensions. A rank-0 shape describes a scalar.
type Shape []int

// Rank returns the number of dimensions.
func (s Shape) Rank() int {
	return len(s)
}

// NumElements returns the total number of elements, the product of all
// extents. A rank-0 shape has one element.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every extent is non-negative. Zero extents are
// legal and describe an empty tensor. All offending dimensions are
// reported, not just the first.
func (s Shape) Validate() error {
	var err error
	for i, dim := range s {
		if dim < 0 {
			err = multierr.Append(err,
				errors.Wrapf(ErrInvalidArgument, "extent %d at dimension %d must be non-negative", dim, i))
		}
	}
	return err
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}
