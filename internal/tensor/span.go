package tensor

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// End is the sentinel last bound of a span that extends to the end of
// whichever dimension it is later applied to. It is resolved lazily
// against the actual extent at view-construction time.
const End = math.MaxInt

// Span is a half-open strided range selector [first:step:last) over one
// dimension, used to build sub-views. Spans are comparable values;
// equality is structural on the (first, step, last) triple, so two spans
// that happen to enumerate the same index set via different triples are
// not equal.
type Span struct {
	first, step, last int
}

// All returns the span covering the complete range of one dimension,
// the [0:1:End) selector.
func All() Span {
	return Span{first: 0, step: 1, last: End}
}

// UpTo returns the span [0:1:last): the leading sub-range of length
// last, starting at zero. This preserves the historical single-argument
// selector semantic, which selects a prefix rather than the single
// index `last`.
func UpTo(last int) Span {
	return Span{first: 0, step: 1, last: last}
}

// Ran returns the span [first:1:last).
func Ran(first, last int) Span {
	return Span{first: first, step: 1, last: last}
}

// NewSpan returns the span [first:step:last). A zero step is rejected
// unless the range is degenerate (first == last).
func NewSpan(first, step, last int) (Span, error) {
	if step == 0 && first != last {
		return Span{}, errors.Wrapf(ErrInvalidArgument,
			"span [%d:%d:%d): step must not be zero over a non-degenerate range", first, step, last)
	}
	return Span{first: first, step: step, last: last}, nil
}

// First returns the inclusive lower bound.
func (s Span) First() int { return s.first }

// Step returns the stride between selected indices.
func (s Span) Step() int { return s.step }

// Last returns the exclusive upper bound, possibly the End sentinel.
func (s Span) Last() int { return s.last }

// At maps a local selection index to the value at that position within
// the span: first + idx*step. The result is not checked against the
// upper bound; callers keep idx within the range the span expresses.
func (s Span) At(idx int) int {
	return s.first + idx*s.step
}

// Compose returns rhs reinterpreted relative to s, the selector for a
// view of a view: picking rhs out of the indices s selects. The result
// satisfies s.Compose(rhs).At(0) == s.At(rhs.First()). Sentinel bounds
// are not interpreted here: an rhs whose last is the End sentinel would
// have it scaled like an ordinary bound, overflowing for step > 1.
// Resolve spans against a dimension before composing relative
// selections; Tensor.Slice on a view does this for the caller.
func (s Span) Compose(rhs Span) Span {
	return Span{
		first: rhs.first*s.step + s.first,
		step:  s.step * rhs.step,
		last:  rhs.last*s.step + s.first,
	}
}

// String renders the span as [first:step:last].
func (s Span) String() string {
	return fmt.Sprintf("[%d:%d:%d]", s.first, s.step, s.last)
}

// resolve pins the span to a dimension of the given extent: the End
// sentinel becomes the extent, bounds are validated, and the number of
// selected indices is computed. Only forward selections are resolvable;
// views with negative steps are not supported.
func (s Span) resolve(extent int) (first, step, count int, err error) {
	last := s.last
	if last == End {
		last = extent
	}
	switch {
	case s.step < 0:
		return 0, 0, 0, errors.Wrapf(ErrInvalidArgument,
			"span %v: negative step cannot select a view", s)
	case s.first < 0 || s.first > last:
		return 0, 0, 0, errors.Wrapf(ErrInvalidArgument,
			"span %v: bounds [%d, %d) are not a forward range", s, s.first, last)
	case last > extent:
		return 0, 0, 0, errors.Wrapf(ErrInvalidArgument,
			"span %v: upper bound %d exceeds extent %d", s, last, extent)
	}
	if s.first == last {
		return s.first, 1, 0, nil
	}
	// step == 0 with first != last cannot reach here: constructors reject it.
	return s.first, s.step, (last - s.first + s.step - 1) / s.step, nil
}
