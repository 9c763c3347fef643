package tensor

import (
	"errors"
	"testing"

	"go.uber.org/multierr"
)

// Test helpers

func mustNew[T DType](t *testing.T, sizes ...int) *Tensor[T] {
	t.Helper()
	x, err := New[T](sizes...)
	if err != nil {
		t.Fatalf("New%v failed: %v", sizes, err)
	}
	return x
}

func mustFromSlice[T DType](t *testing.T, data []T, sizes ...int) *Tensor[T] {
	t.Helper()
	x, err := FromSlice(data, sizes...)
	if err != nil {
		t.Fatalf("FromSlice%v failed: %v", sizes, err)
	}
	return x
}

func assertShape(t *testing.T, want Shape, got Shape, msg string) {
	t.Helper()
	if !want.Equal(got) {
		t.Errorf("%s: expected shape %v, got %v", msg, want, got)
	}
}

// Construction

func TestNewTensor(t *testing.T) {
	x := mustNew[float32](t, 3, 4, 2)

	assertShape(t, Shape{3, 4, 2}, x.Extents(), "New(3, 4, 2)")
	if x.Rank() != 3 || x.Order() != 3 {
		t.Errorf("Rank() = %d, Order() = %d, want 3", x.Rank(), x.Order())
	}
	if x.Size() != 24 {
		t.Errorf("Size() = %d, want 24", x.Size())
	}
	if x.Empty() {
		t.Error("Empty() = true for 24-element tensor")
	}
	if x.Layout() != RowMajor {
		t.Errorf("Layout() = %v, want RowMajor", x.Layout())
	}
	if x.DType() != Float32 {
		t.Errorf("DType() = %v, want Float32", x.DType())
	}

	want := Strides{8, 2, 1}
	got := x.Strides()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Strides() = %v, want %v", got, want)
			break
		}
	}
}

func TestNewTensorInvalidExtents(t *testing.T) {
	_, err := New[float32](-1, 2, -3)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("New(-1, 2, -3) err = %v, want ErrInvalidArgument", err)
	}
	// Both negative extents are reported, not just the first.
	if got := len(multierr.Errors(err)); got != 2 {
		t.Errorf("New(-1, 2, -3) reported %d faults, want 2: %v", got, err)
	}
}

func TestNewWithLayout(t *testing.T) {
	x, err := NewWithLayout[float64](ColMajor, 3, 4, 2)
	if err != nil {
		t.Fatalf("NewWithLayout failed: %v", err)
	}
	if x.Layout() != ColMajor {
		t.Errorf("Layout() = %v, want ColMajor", x.Layout())
	}

	want := Strides{1, 3, 12}
	got := x.Strides()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Strides() = %v, want %v", got, want)
			break
		}
	}

	if _, err := NewWithLayout[float64](Layout(42), 2, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewWithLayout(42) err = %v, want ErrInvalidArgument", err)
	}
}

func TestNewWithStore(t *testing.T) {
	raw := []float32{1, 2, 3, 4, 5, 6}
	x, err := NewWithStore[float32](DenseOf(raw), RowMajor, 2, 3)
	if err != nil {
		t.Fatalf("NewWithStore failed: %v", err)
	}

	// The store is adopted, not copied: writes through the tensor reach
	// the original slice.
	if err := x.SetAt(42, 1, 2); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if raw[5] != 42 {
		t.Errorf("raw[5] = %v, want 42 after write through tensor", raw[5])
	}
}

func TestNewWithStoreSizeMismatch(t *testing.T) {
	st := NewDense[float32](5)
	if _, err := NewWithStore[float32](st, RowMajor, 2, 3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("NewWithStore with 5-element store for 6 elements: err = %v, want ErrInvalidArgument", err)
	}
}

func TestFromSlice(t *testing.T) {
	data := []float32{1, 2, 3, 4, 5, 6}
	x := mustFromSlice(t, data, 2, 3)

	// FromSlice copies: later mutation of the source must not show.
	data[0] = 99
	if got, _ := x.At(0, 0); got != 1 {
		t.Errorf("At(0, 0) = %v, want 1 after source mutation", got)
	}

	if _, err := FromSlice([]float32{1, 2, 3}, 2, 3); !errors.Is(err, ErrInvalidArgument) {
		t.Error("FromSlice with short data should fail")
	}
}

func TestFull(t *testing.T) {
	x, err := Full[int64](7, 2, 3)
	if err != nil {
		t.Fatalf("Full failed: %v", err)
	}
	for _, v := range x.Data() {
		if v != 7 {
			t.Errorf("element = %d, want 7", v)
			break
		}
	}
}

func TestArange(t *testing.T) {
	x, err := Arange[float32](0, 10)
	if err != nil {
		t.Fatalf("Arange failed: %v", err)
	}
	assertShape(t, Shape{10}, x.Extents(), "Arange(0, 10)")
	for i, v := range x.Data() {
		if v != float32(i) {
			t.Errorf("element %d = %v, want %d", i, v, i)
		}
	}

	if _, err := Arange[float32](5, 3); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Arange(5, 3) err = %v, want ErrInvalidArgument", err)
	}
}

// Element access

func TestAtSetAt(t *testing.T) {
	x := mustNew[float32](t, 3, 4, 2)

	if err := x.SetAt(42, 1, 2, 0); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	got, err := x.At(1, 2, 0)
	if err != nil {
		t.Fatalf("At failed: %v", err)
	}
	if got != 42 {
		t.Errorf("At(1, 2, 0) = %v, want 42", got)
	}

	// Strides [8 2 1]: (1, 2, 0) resolves to flat offset 12.
	if x.Data()[12] != 42 {
		t.Errorf("Data()[12] = %v, want 42", x.Data()[12])
	}
}

func TestAtWrongArity(t *testing.T) {
	x := mustNew[float32](t, 3, 4, 2)

	if _, err := x.At(1, 2); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("At(1, 2) err = %v, want ErrInvalidArgument", err)
	}
	if _, err := x.At(1, 2, 0, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("At(1, 2, 0, 0) err = %v, want ErrInvalidArgument", err)
	}
	if err := x.SetAt(1, 0); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("SetAt with one index err = %v, want ErrInvalidArgument", err)
	}
}

func TestAtChecksOffsetOnly(t *testing.T) {
	// Per-dimension bounds are not validated; only the resolved offset
	// is checked against the store. An index past its extent that still
	// lands inside the store aliases a neighbor.
	x := mustNew[float32](t, 3, 4, 2)
	if err := x.SetAtFlat(5, 99); err != nil {
		t.Fatalf("SetAtFlat failed: %v", err)
	}

	got, err := x.At(0, 0, 5) // offset 5, aliases (0, 2, 1)
	if err != nil {
		t.Fatalf("At(0, 0, 5) failed: %v", err)
	}
	if got != 99 {
		t.Errorf("At(0, 0, 5) = %v, want 99", got)
	}

	// An offset past the store is rejected.
	if _, err := x.At(2, 3, 5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("At(2, 3, 5) err = %v, want ErrOutOfRange", err)
	}
}

func TestAtFlat(t *testing.T) {
	x := mustFromSlice(t, []float32{0, 1, 2, 3, 4, 5}, 2, 3)

	got, err := x.AtFlat(4)
	if err != nil {
		t.Fatalf("AtFlat failed: %v", err)
	}
	if got != 4 {
		t.Errorf("AtFlat(4) = %v, want 4", got)
	}

	if err := x.SetAtFlat(0, 42); err != nil {
		t.Fatalf("SetAtFlat failed: %v", err)
	}
	if v, _ := x.At(0, 0); v != 42 {
		t.Errorf("At(0, 0) = %v, want 42", v)
	}

	if _, err := x.AtFlat(6); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("AtFlat(6) err = %v, want ErrOutOfRange", err)
	}
	if _, err := x.AtFlat(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("AtFlat(-1) err = %v, want ErrOutOfRange", err)
	}
}

func TestDim(t *testing.T) {
	x := mustNew[float32](t, 3, 4, 2)

	for d, want := range []int{3, 4, 2} {
		got, err := x.Dim(d)
		if err != nil {
			t.Fatalf("Dim(%d) failed: %v", d, err)
		}
		if got != want {
			t.Errorf("Dim(%d) = %d, want %d", d, got, want)
		}
	}

	if _, err := x.Dim(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Dim(3) err = %v, want ErrOutOfRange", err)
	}
	if _, err := x.Dim(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Dim(-1) err = %v, want ErrOutOfRange", err)
	}
}

func TestExtentsStridesCopied(t *testing.T) {
	x := mustNew[float32](t, 2, 3)

	ext := x.Extents()
	ext[0] = 99
	if e, _ := x.Dim(0); e != 2 {
		t.Error("Extents() exposed internal state")
	}

	st := x.Strides()
	st[0] = 99
	if x.Strides()[0] != 3 {
		t.Error("Strides() exposed internal state")
	}
}

// Iteration

func TestValues(t *testing.T) {
	data := []float32{0, 1, 2, 3, 4, 5}
	x := mustFromSlice(t, data, 2, 3)

	i := 0
	for pos, v := range x.Values() {
		if pos != i {
			t.Errorf("position = %d, want %d", pos, i)
		}
		if v != data[i] {
			t.Errorf("value at %d = %v, want %v", i, v, data[i])
		}
		i++
	}
	if i != 6 {
		t.Errorf("visited %d elements, want 6", i)
	}
}

func TestValuesBackward(t *testing.T) {
	x := mustFromSlice(t, []float32{0, 1, 2, 3}, 4)

	want := 3
	for pos, v := range x.ValuesBackward() {
		if pos != want || v != float32(want) {
			t.Errorf("got (%d, %v), want (%d, %d)", pos, v, want, want)
		}
		want--
	}
	if want != -1 {
		t.Errorf("visited %d elements, want 4", 3-want)
	}
}

func TestValuesOnView(t *testing.T) {
	// A view's storage window runs from its first element to the end of
	// the store, matching Data().
	a, _ := Arange[float32](0, 16)
	v, err := a.Slice(Ran(4, 8))
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	if got := v.Data()[0]; got != 4 {
		t.Errorf("view Data()[0] = %v, want 4", got)
	}
	if got := len(v.Data()); got != 12 {
		t.Errorf("view window length = %d, want 12", got)
	}

	n := 0
	for _, x := range v.Values() {
		_ = x
		n++
	}
	if n != 12 {
		t.Errorf("view Values() visited %d, want 12", n)
	}
}

// Fill

func TestFill(t *testing.T) {
	x := mustNew[float32](t, 2, 3)
	x.Fill(3.5)

	for _, v := range x.Data() {
		if v != 3.5 {
			t.Errorf("element = %v, want 3.5", v)
			break
		}
	}
}

func TestFillView(t *testing.T) {
	a := mustNew[float32](t, 4, 4)
	even, _ := NewSpan(0, 2, 4)
	v, err := a.Slice(Ran(1, 3), even)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	v.Fill(9)

	// Only the view's window is written: rows 1-2, even columns.
	count := 0
	for i, x := range a.Data() {
		if x == 9 {
			count++
			row, col := i/4, i%4
			if row < 1 || row > 2 || col%2 != 0 {
				t.Errorf("unexpected write at (%d, %d)", row, col)
			}
		}
	}
	if count != 4 {
		t.Errorf("view fill wrote %d elements, want 4", count)
	}
}

// Swap, Clone, CopyFrom

func TestSwap(t *testing.T) {
	a := mustNew[float32](t, 2, 3)
	a.Fill(1)
	b, err := NewWithLayout[float32](ColMajor, 4, 5)
	if err != nil {
		t.Fatalf("NewWithLayout failed: %v", err)
	}
	b.Fill(2)

	a.Swap(b)

	assertShape(t, Shape{4, 5}, a.Extents(), "a after swap")
	assertShape(t, Shape{2, 3}, b.Extents(), "b after swap")
	if a.Layout() != ColMajor || b.Layout() != RowMajor {
		t.Error("layouts not exchanged")
	}
	if v, _ := a.At(0, 0); v != 2 {
		t.Errorf("a[0][0] = %v, want 2", v)
	}
	if v, _ := b.At(0, 0); v != 1 {
		t.Errorf("b[0][0] = %v, want 1", v)
	}

	// Swapping back restores both tensors.
	a.Swap(b)
	assertShape(t, Shape{2, 3}, a.Extents(), "a after second swap")
	if v, _ := a.At(1, 2); v != 1 {
		t.Errorf("a[1][2] = %v, want 1", v)
	}
}

func TestSwapSelf(t *testing.T) {
	a := mustFromSlice(t, []float32{1, 2, 3, 4}, 2, 2)
	a.Swap(a)

	assertShape(t, Shape{2, 2}, a.Extents(), "self swap")
	if v, _ := a.At(1, 1); v != 4 {
		t.Errorf("a[1][1] = %v, want 4", v)
	}
}

func TestClone(t *testing.T) {
	a := mustFromSlice(t, []float32{1, 2, 3, 4}, 2, 2)
	b := a.Clone()

	if err := b.SetAt(99, 0, 0); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if v, _ := a.At(0, 0); v != 1 {
		t.Error("Clone() shares storage with original")
	}
}

func TestCloneCompactsView(t *testing.T) {
	a, _ := Arange[float32](0, 16)
	even, _ := NewSpan(0, 2, 16)
	v, err := a.Slice(even) // [0 2 4 ... 14], stride 2
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	c := v.Clone()
	assertShape(t, Shape{8}, c.Extents(), "clone of strided view")
	if c.Offset() != 0 {
		t.Errorf("clone offset = %d, want 0", c.Offset())
	}
	if c.Strides()[0] != 1 {
		t.Errorf("clone stride = %d, want natural 1", c.Strides()[0])
	}
	if c.Size() != c.Store().Len() {
		t.Errorf("clone store holds %d elements for size %d, want compact", c.Store().Len(), c.Size())
	}
	for i := 0; i < 8; i++ {
		got, _ := c.At(i)
		if got != float32(2*i) {
			t.Errorf("clone[%d] = %v, want %d", i, got, 2*i)
		}
	}

	// Independence from the parent.
	_ = c.SetAt(99, 0)
	if got, _ := a.At(0); got != 0 {
		t.Error("view clone shares storage with parent")
	}
}

func TestCopyFrom(t *testing.T) {
	src := mustFromSlice(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	dst := mustNew[float32](t, 7)

	dst.CopyFrom(src)

	assertShape(t, Shape{2, 3}, dst.Extents(), "CopyFrom adopts source extents")
	if v, _ := dst.At(1, 2); v != 6 {
		t.Errorf("dst[1][2] = %v, want 6", v)
	}

	// Deep copy: the two tensors are independent afterwards.
	_ = dst.SetAt(99, 0, 0)
	if v, _ := src.At(0, 0); v != 1 {
		t.Error("CopyFrom shares storage with source")
	}

	// Self copy is harmless.
	src.CopyFrom(src)
	if v, _ := src.At(1, 1); v != 5 {
		t.Errorf("src[1][1] = %v after self copy, want 5", v)
	}
}

// Sub-views

func TestSlice(t *testing.T) {
	a := mustNew[float32](t, 4, 4) // strides [4 1]
	even, _ := NewSpan(0, 2, 4)

	v, err := a.Slice(Ran(1, 3), even)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}

	assertShape(t, Shape{2, 2}, v.Extents(), "view extents")
	st := v.Strides()
	if st[0] != 4 || st[1] != 2 {
		t.Errorf("view strides = %v, want [4 2]", st)
	}
	if v.Offset() != 4 {
		t.Errorf("view offset = %d, want 4", v.Offset())
	}

	// Writes through the view land in the parent.
	if err := v.SetAt(7, 1, 1); err != nil {
		t.Fatalf("SetAt failed: %v", err)
	}
	if got, _ := a.At(2, 2); got != 7 {
		t.Errorf("parent At(2, 2) = %v, want 7", got)
	}
}

func TestSliceDefaultsToAll(t *testing.T) {
	a := mustNew[float32](t, 3, 4)

	v, err := a.Slice(Ran(1, 2))
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	assertShape(t, Shape{1, 4}, v.Extents(), "trailing dimensions default to All")
}

func TestSliceErrors(t *testing.T) {
	a := mustNew[float32](t, 3, 4)

	if _, err := a.Slice(All(), All(), All()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("too many spans: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := a.Slice(Ran(0, 99)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("span beyond extent: err = %v, want ErrInvalidArgument", err)
	}
}

func TestSliceDegenerateAtBoundary(t *testing.T) {
	a := mustNew[float32](t, 4, 4)

	// Ran(4, 4) on a dimension of extent 4 is an empty selection sitting
	// right at the upper boundary; the resulting view must keep its
	// window inside the store.
	v, err := a.Slice(Ran(4, 4), Ran(1, 1))
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	if !v.Empty() {
		t.Fatalf("view size = %d, want 0", v.Size())
	}
	if v.Offset() > a.Store().Len() {
		t.Fatalf("view offset %d past store length %d", v.Offset(), a.Store().Len())
	}
	// Data and the storage-order iterators reslice the store at the
	// view's offset; they must not panic for a boundary-degenerate view.
	if got := len(v.Data()); got != a.Store().Len()-v.Offset() {
		t.Errorf("Data() length = %d, want %d", got, a.Store().Len()-v.Offset())
	}
	n := 0
	for range v.Values() {
		n++
	}
	for range v.ValuesBackward() {
		n++
	}
	if n != 2*len(v.Data()) {
		t.Errorf("iterated %d elements, want %d", n, 2*len(v.Data()))
	}
}

func TestSliceOfSliceMatchesComposedSpan(t *testing.T) {
	a, _ := Arange[float32](0, 16)

	s1, _ := NewSpan(0, 2, 16)
	s2, _ := NewSpan(1, 3, 8)

	v1, err := a.Slice(s1)
	if err != nil {
		t.Fatalf("Slice failed: %v", err)
	}
	v2, err := v1.Slice(s2)
	if err != nil {
		t.Fatalf("Slice of view failed: %v", err)
	}

	direct, err := a.Slice(s1.Compose(s2))
	if err != nil {
		t.Fatalf("Slice with composed span failed: %v", err)
	}

	if v2.Size() != direct.Size() {
		t.Fatalf("sizes differ: %d vs %d", v2.Size(), direct.Size())
	}
	for i := 0; i < v2.Size(); i++ {
		x, _ := v2.At(i)
		y, _ := direct.At(i)
		if x != y {
			t.Errorf("element %d: view-of-view %v, composed %v", i, x, y)
		}
	}
}

// Degenerate shapes

func TestRankZeroTensor(t *testing.T) {
	x := mustNew[float64](t)

	if x.Rank() != 0 {
		t.Errorf("Rank() = %d, want 0", x.Rank())
	}
	if x.Size() != 1 {
		t.Errorf("Size() = %d, want 1", x.Size())
	}

	if err := x.SetAt(3.5); err != nil {
		t.Fatalf("SetAt() failed: %v", err)
	}
	got, err := x.At()
	if err != nil {
		t.Fatalf("At() failed: %v", err)
	}
	if got != 3.5 {
		t.Errorf("At() = %v, want 3.5", got)
	}
}

func TestZeroExtentTensor(t *testing.T) {
	x := mustNew[float32](t, 0, 3)

	if !x.Empty() {
		t.Error("Empty() = false for zero-extent tensor")
	}
	if x.Size() != 0 {
		t.Errorf("Size() = %d, want 0", x.Size())
	}
	if _, err := x.At(0, 0); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("At on empty tensor: err = %v, want ErrOutOfRange", err)
	}

	n := 0
	for range x.Values() {
		n++
	}
	if n != 0 {
		t.Errorf("Values() yielded %d elements, want 0", n)
	}

	x.Fill(1) // must not panic
}

func TestTensorString(t *testing.T) {
	x := mustNew[float32](t, 3, 4, 2)
	if got := x.String(); got != "Tensor[float32][3 4 2] row-major" {
		t.Errorf("String() = %q", got)
	}

	y, _ := NewWithLayout[int64](ColMajor, 2, 2)
	if got := y.String(); got != "Tensor[int64][2 2] col-major" {
		t.Errorf("String() = %q", got)
	}
}
