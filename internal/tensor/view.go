package tensor

import "iter"

// ReadOnly is an immutable facade over a Tensor. It exposes the full
// read surface and satisfies Expression, so it can appear as an operand
// wherever a tensor can, while making accidental mutation through the
// handle impossible. The underlying tensor is shared, not copied.
type ReadOnly[T DType] struct {
	t *Tensor[T]
}

// ReadOnly returns an immutable facade sharing the receiver's state.
func (t *Tensor[T]) ReadOnly() ReadOnly[T] {
	return ReadOnly[T]{t: t}
}

// Rank returns the number of dimensions.
func (r ReadOnly[T]) Rank() int { return r.t.Rank() }

// Order returns the number of dimensions. It is a synonym for Rank.
func (r ReadOnly[T]) Order() int { return r.t.Order() }

// Size returns the total number of elements.
func (r ReadOnly[T]) Size() int { return r.t.Size() }

// Empty reports whether the tensor holds no elements.
func (r ReadOnly[T]) Empty() bool { return r.t.Empty() }

// Dim returns the extent of dimension d.
func (r ReadOnly[T]) Dim(d int) (int, error) { return r.t.Dim(d) }

// Extents returns a copy of the tensor's extents.
func (r ReadOnly[T]) Extents() Shape { return r.t.Extents() }

// Strides returns a copy of the tensor's strides.
func (r ReadOnly[T]) Strides() Strides { return r.t.Strides() }

// Layout returns the tensor's storage layout.
func (r ReadOnly[T]) Layout() Layout { return r.t.Layout() }

// DType returns the element type descriptor.
func (r ReadOnly[T]) DType() DataType { return r.t.DType() }

// At returns the element addressed by the multi-index.
func (r ReadOnly[T]) At(indices ...int) (T, error) { return r.t.At(indices...) }

// AtFlat returns the element at linear position i within the storage
// window.
func (r ReadOnly[T]) AtFlat(i int) (T, error) { return r.t.AtFlat(i) }

// Values returns an iterator over the storage window in physical order.
func (r ReadOnly[T]) Values() iter.Seq2[int, T] { return r.t.Values() }

// ValuesBackward returns an iterator over the storage window in reverse
// physical order.
func (r ReadOnly[T]) ValuesBackward() iter.Seq2[int, T] { return r.t.ValuesBackward() }

// Slice returns a read-only sub-view selected by one span per dimension.
func (r ReadOnly[T]) Slice(spans ...Span) (ReadOnly[T], error) {
	v, err := r.t.Slice(spans...)
	if err != nil {
		return ReadOnly[T]{}, err
	}
	return ReadOnly[T]{t: v}, nil
}

// Bind attaches index placeholders to the tensor for use in a
// contraction.
func (r ReadOnly[T]) Bind(tags ...Index) (Indexed[T], error) {
	return r.t.Bind(tags...)
}

// Clone returns a mutable deep copy of the underlying tensor.
func (r ReadOnly[T]) Clone() *Tensor[T] { return r.t.Clone() }

// String renders a short description of the underlying tensor.
func (r ReadOnly[T]) String() string { return r.t.String() }
