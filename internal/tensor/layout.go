package tensor

// Layout selects which dimension of a tensor is contiguous in physical
// storage, and thereby how strides are derived from extents.
type Layout int

const (
	// RowMajor keeps the last dimension contiguous (C order): moving one
	// unit along the last dimension moves one element in storage.
	RowMajor Layout = iota
	// ColMajor keeps the first dimension contiguous (Fortran order).
	ColMajor
)

// String returns a human-readable layout name.
func (l Layout) String() string {
	switch l {
	case RowMajor:
		return "row-major"
	case ColMajor:
		return "col-major"
	default:
		return "unknown"
	}
}

// Strides derives the stride vector for the given extents under this
// layout. strides[d] is the linear-offset delta for moving one unit
// along dimension d. The result always has the same length as extents.
func (l Layout) Strides(extents Shape) Strides {
	strides := make(Strides, len(extents))
	if len(extents) == 0 {
		return strides
	}
	switch l {
	case ColMajor:
		strides[0] = 1
		for i := 1; i < len(extents); i++ {
			strides[i] = strides[i-1] * extents[i-1]
		}
	default:
		strides[len(extents)-1] = 1
		for i := len(extents) - 2; i >= 0; i-- {
			strides[i] = strides[i+1] * extents[i+1]
		}
	}
	return strides
}

// Strides holds the per-dimension linear-offset multipliers of a tensor.
type Strides []int

// Offset resolves a multi-index to a linear storage offset: the
// stride-weighted dot product of the indices. The index count is not
// validated here; callers check it against the tensor order first.
func (st Strides) Offset(indices ...int) int {
	offset := 0
	for i, idx := range indices {
		offset += idx * st[i]
	}
	return offset
}

// Clone returns a copy of the strides.
func (st Strides) Clone() Strides {
	clone := make(Strides, len(st))
	copy(clone, st)
	return clone
}
