package tensor

import (
	"github.com/ublas-go/ublas/internal/parallel"
)

// evalConfig controls chunked parallel evaluation of expressions.
var evalConfig = parallel.DefaultConfig()

// Assign evaluates the expression and replaces the receiver's state with
// the result. This is the single point where deferred arithmetic runs:
// conformance of the whole tree is validated first, then every element
// is computed in one pass.
//
// Evaluation writes into a fresh store and swaps it in, so the receiver
// is untouched when evaluation fails, and the receiver may freely appear
// inside the expression. The result adopts the expression's extents and
// the receiver's layout; a receiver that was a sub-view is rebound to a
// tensor owning the result rather than writing through its old window.
func (t *Tensor[T]) Assign(e Expression[T]) error {
	out, err := t.evaluate(e)
	if err != nil {
		return err
	}
	t.Swap(out)
	return nil
}

// evaluate computes the expression into a fresh tensor carrying the
// receiver's layout and store kind.
func (t *Tensor[T]) evaluate(e Expression[T]) (*Tensor[T], error) {
	ext, err := e.exprExtents()
	if err != nil {
		return nil, err
	}
	at, err := e.elem()
	if err != nil {
		return nil, err
	}
	extents := ext.Clone()
	n := extents.NumElements()
	out := &Tensor[T]{
		extents: extents,
		strides: t.layout.Strides(extents),
		layout:  t.layout,
		size:    n,
		store:   t.store.Alloc(n),
	}
	data := out.store.Data()
	rank := len(extents)
	parallel.ForRange(n, func(start, end int) {
		idx := make([]int, rank)
		unflatten(extents, start, idx)
		off := out.strides.Offset(idx...)
		for i := start; i < end; i++ {
			data[off] = at(idx)
			for d := rank - 1; d >= 0; d-- {
				idx[d]++
				off += out.strides[d]
				if idx[d] < extents[d] {
					break
				}
				off -= idx[d] * out.strides[d]
				idx[d] = 0
			}
		}
	}, evalConfig)
	return out, nil
}

// unflatten decomposes a flat position over extents, last dimension
// fastest, into the index slice.
func unflatten(extents Shape, flat int, idx []int) {
	for d := len(extents) - 1; d >= 0; d-- {
		idx[d] = flat % extents[d]
		flat /= extents[d]
	}
}
