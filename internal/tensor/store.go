package tensor

import "github.com/pkg/errors"

// Store is the flat backing container holding tensor elements in
// physical order. The tensor core is generic over the concrete store: it
// only needs length, checked and unchecked element access, a fill
// primitive, a deep copy, and same-kind allocation. Swapping stores
// between tensors is handle exchange at the tensor layer and needs
// nothing from the store itself.
type Store[T DType] interface {
	// Len returns the number of elements the store holds.
	Len() int

	// At returns the element at offset i, reporting ErrOutOfRange when
	// i is outside [0, Len()).
	At(i int) (T, error)

	// SetAt stores v at offset i, reporting ErrOutOfRange when i is
	// outside [0, Len()).
	SetAt(i int, v T) error

	// Data returns the element slice backing the store. Access through
	// it is unchecked; out-of-range use is a caller contract violation.
	// Modifications are visible to every holder of the store.
	Data() []T

	// Fill sets every element to v.
	Fill(v T)

	// Clone returns a deep copy of the store.
	Clone() Store[T]

	// Alloc returns a new zero-initialized store of the same kind
	// holding n elements.
	Alloc(n int) Store[T]
}

// Dense is a contiguous in-memory store backed by a Go slice.
// Allocation zero-initializes all elements.
type Dense[T DType] struct {
	data []T
}

var _ Store[float32] = (*Dense[float32])(nil)

// NewDense allocates a zero-initialized dense store of n elements.
func NewDense[T DType](n int) *Dense[T] {
	return &Dense[T]{data: make([]T, n)}
}

// DenseOf wraps an existing slice as a dense store. The slice is not
// copied; the store and the caller alias the same memory.
func DenseOf[T DType](data []T) *Dense[T] {
	return &Dense[T]{data: data}
}

// Len returns the number of elements.
func (d *Dense[T]) Len() int {
	return len(d.data)
}

// At returns the element at offset i with bounds checking.
func (d *Dense[T]) At(i int) (T, error) {
	if i < 0 || i >= len(d.data) {
		var zero T
		return zero, errors.Wrapf(ErrOutOfRange, "offset %d outside store of %d elements", i, len(d.data))
	}
	return d.data[i], nil
}

// SetAt stores v at offset i with bounds checking.
func (d *Dense[T]) SetAt(i int, v T) error {
	if i < 0 || i >= len(d.data) {
		return errors.Wrapf(ErrOutOfRange, "offset %d outside store of %d elements", i, len(d.data))
	}
	d.data[i] = v
	return nil
}

// Data returns the raw element slice.
// WARNING: direct access to underlying memory; no bounds checking
// beyond the Go runtime's.
func (d *Dense[T]) Data() []T {
	return d.data
}

// Fill sets every element to v.
func (d *Dense[T]) Fill(v T) {
	for i := range d.data {
		d.data[i] = v
	}
}

// Clone returns a deep copy of the store.
func (d *Dense[T]) Clone() Store[T] {
	data := make([]T, len(d.data))
	copy(data, d.data)
	return &Dense[T]{data: data}
}

// Alloc returns a fresh zero-initialized dense store of n elements.
func (d *Dense[T]) Alloc(n int) Store[T] {
	return NewDense[T](n)
}
