package tensor

import (
	"fmt"
	"iter"
	"slices"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Tensor is a dense multi-dimensional array over a flat backing store.
//
// The logical shape is described by extents, and the mapping from a
// multi-index to a storage offset by strides, which are derived from the
// tensor's layout at construction time. Sub-views produced by Slice share
// the parent's store and express their window purely through extents,
// strides and a starting offset, so no element is copied.
//
// Tensor has value semantics at the API level: CopyFrom replaces the
// receiver's state with a deep copy of the source, and Swap exchanges the
// state of two tensors in constant time without touching elements.
type Tensor[T DType] struct {
	extents Shape
	strides Strides
	layout  Layout
	offset  int
	size    int
	store   Store[T]
}

// New creates a zero-initialized tensor with the given extents using the
// row-major layout.
func New[T DType, U constraints.Integer](sizes ...U) (*Tensor[T], error) {
	return NewWithLayout[T](RowMajor, sizes...)
}

// NewWithLayout creates a zero-initialized tensor with the given extents
// and layout.
func NewWithLayout[T DType, U constraints.Integer](layout Layout, sizes ...U) (*Tensor[T], error) {
	extents := make(Shape, len(sizes))
	for i, s := range sizes {
		extents[i] = int(s)
	}
	if err := extents.Validate(); err != nil {
		return nil, err
	}
	if layout != RowMajor && layout != ColMajor {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown layout %d", int(layout))
	}
	n := extents.NumElements()
	return &Tensor[T]{
		extents: extents,
		strides: layout.Strides(extents),
		layout:  layout,
		size:    n,
		store:   NewDense[T](n),
	}, nil
}

// NewWithStore creates a tensor over a caller-supplied store. The store
// must hold exactly as many elements as the extents describe.
func NewWithStore[T DType](store Store[T], layout Layout, sizes ...int) (*Tensor[T], error) {
	extents := Shape(sizes).Clone()
	if err := extents.Validate(); err != nil {
		return nil, err
	}
	if layout != RowMajor && layout != ColMajor {
		return nil, errors.Wrapf(ErrInvalidArgument, "unknown layout %d", int(layout))
	}
	n := extents.NumElements()
	if store.Len() != n {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"extents %v require %d elements, but store holds %d", sizes, n, store.Len())
	}
	return &Tensor[T]{
		extents: extents,
		strides: layout.Strides(extents),
		layout:  layout,
		size:    n,
		store:   store,
	}, nil
}

// FromSlice creates a row-major tensor with the given extents, copying
// the provided data. The slice is copied, so later mutation of data does
// not affect the tensor.
func FromSlice[T DType](data []T, sizes ...int) (*Tensor[T], error) {
	t, err := New[T](sizes...)
	if err != nil {
		return nil, err
	}
	if len(data) != t.size {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"extents %v require %d elements, but got %d", sizes, t.size, len(data))
	}
	copy(t.store.Data(), data)
	return t, nil
}

// Full creates a row-major tensor with the given extents where every
// element is v.
func Full[T DType](v T, sizes ...int) (*Tensor[T], error) {
	t, err := New[T](sizes...)
	if err != nil {
		return nil, err
	}
	t.Fill(v)
	return t, nil
}

// Arange creates a 1-D tensor holding start, start+1, ... up to but not
// including end.
func Arange[T DType](start, end T) (*Tensor[T], error) {
	n := int(end - start)
	if n < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "arange end %v precedes start %v", end, start)
	}
	t, err := New[T](n)
	if err != nil {
		return nil, err
	}
	data := t.store.Data()
	for i := range data {
		data[i] = start + T(i)
	}
	return t, nil
}

// Rank returns the number of dimensions.
func (t *Tensor[T]) Rank() int {
	return len(t.extents)
}

// Order returns the number of dimensions. It is a synonym for Rank.
func (t *Tensor[T]) Order() int {
	return t.Rank()
}

// Size returns the total number of elements.
func (t *Tensor[T]) Size() int {
	return t.size
}

// Empty reports whether the tensor holds no elements.
func (t *Tensor[T]) Empty() bool {
	return t.size == 0
}

// Dim returns the extent of dimension r. It fails with an out-of-range
// error when r does not name a dimension.
func (t *Tensor[T]) Dim(r int) (int, error) {
	if r < 0 || r >= len(t.extents) {
		return 0, errors.Wrapf(ErrOutOfRange, "dimension %d outside tensor of rank %d", r, len(t.extents))
	}
	return t.extents[r], nil
}

// Extents returns a copy of the tensor's extents.
func (t *Tensor[T]) Extents() Shape {
	return t.extents.Clone()
}

// Strides returns a copy of the tensor's strides.
func (t *Tensor[T]) Strides() Strides {
	return t.strides.Clone()
}

// Layout returns the tensor's storage layout.
func (t *Tensor[T]) Layout() Layout {
	return t.layout
}

// DType returns the element type descriptor.
func (t *Tensor[T]) DType() DataType {
	var zero T
	return inferDataType(zero)
}

// Store returns the backing store shared by the tensor and any of its
// views.
func (t *Tensor[T]) Store() Store[T] {
	return t.store
}

// Offset returns the storage offset of the tensor's first element. It is
// zero for tensors that own their store and generally non-zero for
// sub-views.
func (t *Tensor[T]) Offset() int {
	return t.offset
}

// At returns the element addressed by the multi-index. The number of
// indices must equal the tensor's rank; the resolved storage offset is
// bounds-checked by the store.
func (t *Tensor[T]) At(indices ...int) (T, error) {
	var zero T
	if len(indices) != len(t.extents) {
		return zero, errors.Wrapf(ErrInvalidArgument,
			"number of indices %d does not match tensor rank %d", len(indices), len(t.extents))
	}
	return t.store.At(t.offset + t.strides.Offset(indices...))
}

// SetAt stores v at the element addressed by the multi-index, under the
// same checks as At.
func (t *Tensor[T]) SetAt(v T, indices ...int) error {
	if len(indices) != len(t.extents) {
		return errors.Wrapf(ErrInvalidArgument,
			"number of indices %d does not match tensor rank %d", len(indices), len(t.extents))
	}
	return t.store.SetAt(t.offset+t.strides.Offset(indices...), v)
}

// AtFlat returns the element at linear position i within the tensor's
// storage window, ignoring the multi-dimensional structure.
func (t *Tensor[T]) AtFlat(i int) (T, error) {
	var zero T
	if i < 0 {
		return zero, errors.Wrapf(ErrOutOfRange, "linear index %d is negative", i)
	}
	return t.store.At(t.offset + i)
}

// SetAtFlat stores v at linear position i within the tensor's storage
// window.
func (t *Tensor[T]) SetAtFlat(i int, v T) error {
	if i < 0 {
		return errors.Wrapf(ErrOutOfRange, "linear index %d is negative", i)
	}
	return t.store.SetAt(t.offset+i, v)
}

// Data returns the tensor's storage window as a raw slice, from the
// tensor's first element to the end of the backing store. For tensors
// that own their store this is exactly the tensor's elements in physical
// order.
//
// WARNING: this gives direct access to the underlying memory. Mutating
// the slice mutates the tensor and every view sharing the store.
func (t *Tensor[T]) Data() []T {
	return t.store.Data()[t.offset:]
}

// Values returns an iterator over the tensor's storage window in
// physical order, yielding linear positions and elements. No stride
// arithmetic is involved.
func (t *Tensor[T]) Values() iter.Seq2[int, T] {
	return slices.All(t.Data())
}

// ValuesBackward returns an iterator over the tensor's storage window in
// reverse physical order.
func (t *Tensor[T]) ValuesBackward() iter.Seq2[int, T] {
	return slices.Backward(t.Data())
}

// forEach walks the tensor's logical index space in odometer order (last
// dimension fastest) and calls fn with each element's storage offset and
// multi-index. The index slice is reused between calls and must not be
// retained.
func (t *Tensor[T]) forEach(fn func(off int, idx []int)) {
	if t.size == 0 {
		return
	}
	rank := len(t.extents)
	idx := make([]int, rank)
	if rank == 0 {
		fn(t.offset, idx)
		return
	}
	off := t.offset
	for {
		fn(off, idx)
		d := rank - 1
		for ; d >= 0; d-- {
			idx[d]++
			off += t.strides[d]
			if idx[d] < t.extents[d] {
				break
			}
			off -= idx[d] * t.strides[d]
			idx[d] = 0
		}
		if d < 0 {
			return
		}
	}
}

// contiguous reports whether the tensor covers its whole store in the
// natural order of its layout.
func (t *Tensor[T]) contiguous() bool {
	if t.offset != 0 || t.size != t.store.Len() {
		return false
	}
	natural := t.layout.Strides(t.extents)
	for i, s := range t.strides {
		if s != natural[i] {
			return false
		}
	}
	return true
}

// Fill sets every element of the tensor to v. For sub-views only the
// elements inside the view's window are written.
func (t *Tensor[T]) Fill(v T) {
	if t.contiguous() {
		t.store.Fill(v)
		return
	}
	data := t.store.Data()
	t.forEach(func(off int, _ []int) {
		data[off] = v
	})
}

// Clone returns a deep copy of the tensor. Views are compacted: the copy
// owns a fresh store holding exactly the view's elements in the natural
// order of its layout.
func (t *Tensor[T]) Clone() *Tensor[T] {
	extents := t.extents.Clone()
	if t.contiguous() {
		return &Tensor[T]{
			extents: extents,
			strides: t.strides.Clone(),
			layout:  t.layout,
			size:    t.size,
			store:   t.store.Clone(),
		}
	}
	dst := &Tensor[T]{
		extents: extents,
		strides: t.layout.Strides(extents),
		layout:  t.layout,
		size:    t.size,
		store:   t.store.Alloc(t.size),
	}
	src := t.store.Data()
	out := dst.store.Data()
	t.forEach(func(off int, idx []int) {
		out[dst.strides.Offset(idx...)] = src[off]
	})
	return dst
}

// CopyFrom replaces the receiver's state with a deep copy of src. The
// copy is built first and then swapped in, so the receiver is untouched
// if the copy cannot be made, and self-assignment is harmless.
func (t *Tensor[T]) CopyFrom(src *Tensor[T]) {
	tmp := src.Clone()
	t.Swap(tmp)
}

// Swap exchanges the contents of two tensors in constant time. Only
// descriptors and store handles are exchanged, never elements.
func (t *Tensor[T]) Swap(other *Tensor[T]) {
	t.extents, other.extents = other.extents, t.extents
	t.strides, other.strides = other.strides, t.strides
	t.layout, other.layout = other.layout, t.layout
	t.offset, other.offset = other.offset, t.offset
	t.size, other.size = other.size, t.size
	t.store, other.store = other.store, t.store
}

// Slice returns a sub-view of the tensor selected by one span per
// dimension. Omitted trailing spans default to All. The view shares the
// receiver's store: writing through the view writes the parent.
func (t *Tensor[T]) Slice(spans ...Span) (*Tensor[T], error) {
	rank := len(t.extents)
	if len(spans) > rank {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"number of spans %d exceeds tensor rank %d", len(spans), rank)
	}
	extents := make(Shape, rank)
	strides := make(Strides, rank)
	offset := t.offset
	for d := 0; d < rank; d++ {
		sp := All()
		if d < len(spans) {
			sp = spans[d]
		}
		first, step, count, err := sp.resolve(t.extents[d])
		if err != nil {
			return nil, errors.Wrapf(err, "dimension %d", d)
		}
		extents[d] = count
		strides[d] = t.strides[d] * step
		if count > 0 {
			// A degenerate span at the upper boundary, e.g. Ran(n, n) on a
			// dimension of extent n, resolves to an empty window; advancing
			// the offset for it would address past the end of the store.
			offset += first * t.strides[d]
		}
	}
	return &Tensor[T]{
		extents: extents,
		strides: strides,
		layout:  t.layout,
		offset:  offset,
		size:    extents.NumElements(),
		store:   t.store,
	}, nil
}

// String renders a short description such as "Tensor[float32][3 4 2] row-major".
func (t *Tensor[T]) String() string {
	return fmt.Sprintf("Tensor[%s]%v %s", t.DType(), []int(t.extents), t.layout)
}
