package tensor

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/ublas-go/ublas/internal/parallel"
)

// prodExpr is the deferred Einstein contraction of two indexed operands.
// Placeholders shared by both operands are summed over; the remaining
// dimensions stay free, left operand's first.
type prodExpr[T DType] struct {
	a, b Indexed[T]
}

// Product returns the lazy Einstein product of two indexed operands,
// e.g. Product(A.Bind(I, K), B.Bind(K, J)) for a matrix product summed
// over K. Like every expression it is evaluated at assignment.
func Product[T DType](a, b Indexed[T]) Expression[T] {
	return &prodExpr[T]{a: a, b: b}
}

// contractionPlan describes how operand strides map onto the output and
// summation index spaces.
type contractionPlan struct {
	outExtents Shape
	sumExtents Shape
	aOut, bOut Strides
	aSum, bSum Strides
}

func (e *prodExpr[T]) plan() (*contractionPlan, error) {
	a, b := e.a, e.b
	if a.tensor == nil || b.tensor == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "contraction operand is not bound to a tensor")
	}
	var p contractionPlan
	for i, tag := range a.tags {
		if j := slices.Index(b.tags, tag); j >= 0 {
			if a.tensor.extents[i] != b.tensor.extents[j] {
				return nil, errors.Wrapf(ErrInvalidArgument,
					"summed index %s has extent %d on the left but %d on the right",
					tag, a.tensor.extents[i], b.tensor.extents[j])
			}
			p.sumExtents = append(p.sumExtents, a.tensor.extents[i])
			p.aSum = append(p.aSum, a.tensor.strides[i])
			p.bSum = append(p.bSum, b.tensor.strides[j])
		} else {
			p.outExtents = append(p.outExtents, a.tensor.extents[i])
			p.aOut = append(p.aOut, a.tensor.strides[i])
			p.bOut = append(p.bOut, 0)
		}
	}
	for j, tag := range b.tags {
		if slices.Index(a.tags, tag) < 0 {
			p.outExtents = append(p.outExtents, b.tensor.extents[j])
			p.aOut = append(p.aOut, 0)
			p.bOut = append(p.bOut, b.tensor.strides[j])
		}
	}
	return &p, nil
}

func (e *prodExpr[T]) exprExtents() (Shape, error) {
	p, err := e.plan()
	if err != nil {
		return nil, err
	}
	return p.outExtents, nil
}

func (e *prodExpr[T]) elem() (func(idx []int) T, error) {
	out, err := e.contract()
	if err != nil {
		return nil, err
	}
	return out.elem()
}

// contract materializes the contraction into a compact row-major tensor.
func (e *prodExpr[T]) contract() (*Tensor[T], error) {
	p, err := e.plan()
	if err != nil {
		return nil, err
	}
	extents := p.outExtents.Clone()
	n := extents.NumElements()
	out := &Tensor[T]{
		extents: extents,
		strides: RowMajor.Strides(extents),
		layout:  RowMajor,
		size:    n,
		store:   e.a.tensor.store.Alloc(n),
	}
	if n == 0 {
		return out, nil
	}
	for _, s := range p.sumExtents {
		if s == 0 {
			// Summing over an empty range: every output element is zero.
			return out, nil
		}
	}
	aData := e.a.tensor.store.Data()
	bData := e.b.tensor.store.Data()
	aBase := e.a.tensor.offset
	bBase := e.b.tensor.offset
	data := out.store.Data()
	outRank := len(extents)
	sumRank := len(p.sumExtents)
	parallel.ForRange(n, func(start, end int) {
		idx := make([]int, outRank)
		sumIdx := make([]int, sumRank)
		unflatten(extents, start, idx)
		for i := start; i < end; i++ {
			offA, offB := aBase, bBase
			for d, v := range idx {
				offA += v * p.aOut[d]
				offB += v * p.bOut[d]
			}
			var acc T
			for {
				acc += aData[offA] * bData[offB]
				d := sumRank - 1
				for ; d >= 0; d-- {
					sumIdx[d]++
					offA += p.aSum[d]
					offB += p.bSum[d]
					if sumIdx[d] < p.sumExtents[d] {
						break
					}
					offA -= sumIdx[d] * p.aSum[d]
					offB -= sumIdx[d] * p.bSum[d]
					sumIdx[d] = 0
				}
				if d < 0 {
					break
				}
			}
			// Compact row-major output: the storage offset equals the
			// flat position.
			data[i] = acc
			for d := outRank - 1; d >= 0; d-- {
				idx[d]++
				if idx[d] < extents[d] {
					break
				}
				idx[d] = 0
			}
		}
	}, evalConfig)
	return out, nil
}
