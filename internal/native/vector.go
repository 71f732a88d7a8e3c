package native

import (
	"math"
	"sort"

	"github.com/perseid-io/perseid-go/pkg/perr"
)

// vectorData is the native storage behind a vector handle.
type vectorData struct {
	elems []float64
}

// VectorNew allocates a zero-filled vector of the given size.
func (s *State) VectorNew(n int) Handle {
	if n <= 0 {
		s.fail("vector_new", perr.CodeIllegalInput, "size must be positive, got %d", n)
		return 0
	}
	return s.register(KindVector, &vectorData{elems: make([]float64, n)}, false)
}

// VectorWrap allocates a vector initialized from a copy of elems.
func (s *State) VectorWrap(elems []float64) Handle {
	if len(elems) == 0 {
		s.fail("vector_wrap", perr.CodeIllegalInput, "cannot wrap an empty slice")
		return 0
	}
	data := make([]float64, len(elems))
	copy(data, elems)
	return s.register(KindVector, &vectorData{elems: data}, false)
}

// VectorDelete frees the vector behind the handle.
func (s *State) VectorDelete(h Handle) {
	if _, ok := s.resolve("vector_delete", h, KindVector); !ok {
		return
	}
	s.remove(h)
}

// VectorDuplicate allocates a deep copy sharing no storage with the source.
func (s *State) VectorDuplicate(h Handle) Handle {
	e, ok := s.resolve("vector_duplicate", h, KindVector)
	if !ok {
		return 0
	}
	src := e.payload.(*vectorData)
	dup := make([]float64, len(src.elems))
	copy(dup, src.elems)
	return s.register(KindVector, &vectorData{elems: dup}, false)
}

// VectorSize returns the element count.
func (s *State) VectorSize(h Handle) int {
	e, ok := s.resolve("vector_size", h, KindVector)
	if !ok {
		return 0
	}
	return len(e.payload.(*vectorData).elems)
}

// VectorGet returns the element at index i.
func (s *State) VectorGet(h Handle, i int) float64 {
	e, ok := s.resolve("vector_get", h, KindVector)
	if !ok {
		return 0
	}
	v := e.payload.(*vectorData)
	if i < 0 || i >= len(v.elems) {
		s.fail("vector_get", perr.CodeIllegalInput, "index %d out of range for size %d", i, len(v.elems))
		return 0
	}
	return v.elems[i]
}

// VectorSet stores x at index i.
func (s *State) VectorSet(h Handle, i int, x float64) {
	e, ok := s.resolve("vector_set", h, KindVector)
	if !ok {
		return
	}
	v := e.payload.(*vectorData)
	if i < 0 || i >= len(v.elems) {
		s.fail("vector_set", perr.CodeIllegalInput, "index %d out of range for size %d", i, len(v.elems))
		return
	}
	v.elems[i] = x
}

// VectorFill sets every element to x.
func (s *State) VectorFill(h Handle, x float64) {
	e, ok := s.resolve("vector_fill", h, KindVector)
	if !ok {
		return
	}
	v := e.payload.(*vectorData)
	for i := range v.elems {
		v.elems[i] = x
	}
}

// vectorPair resolves two vector operands of equal size for an elementwise
// operation.
func (s *State) vectorPair(function string, h, other Handle) (*vectorData, *vectorData, bool) {
	e1, ok := s.resolve(function, h, KindVector)
	if !ok {
		return nil, nil, false
	}
	e2, ok := s.resolve(function, other, KindVector)
	if !ok {
		return nil, nil, false
	}
	a := e1.payload.(*vectorData)
	b := e2.payload.(*vectorData)
	if len(a.elems) != len(b.elems) {
		s.fail(function, perr.CodeIllegalInput, "vector sizes mismatch: %d vs %d", len(a.elems), len(b.elems))
		return nil, nil, false
	}
	return a, b, true
}

// VectorAdd adds other elementwise into h.
func (s *State) VectorAdd(h, other Handle) {
	a, b, ok := s.vectorPair("vector_add", h, other)
	if !ok {
		return
	}
	for i := range a.elems {
		a.elems[i] += b.elems[i]
	}
}

// VectorMultiply multiplies h by other elementwise.
func (s *State) VectorMultiply(h, other Handle) {
	a, b, ok := s.vectorPair("vector_multiply", h, other)
	if !ok {
		return
	}
	for i := range a.elems {
		a.elems[i] *= b.elems[i]
	}
}

// VectorDivide divides h by other elementwise. A zero divisor element
// aborts the operation before any element is written.
func (s *State) VectorDivide(h, other Handle) {
	a, b, ok := s.vectorPair("vector_divide", h, other)
	if !ok {
		return
	}
	for i, x := range b.elems {
		if x == 0 {
			s.fail("vector_divide", perr.CodeDivisionByZero, "zero divisor at index %d", i)
			return
		}
	}
	for i := range a.elems {
		a.elems[i] /= b.elems[i]
	}
}

// VectorAddScalar adds x to every element.
func (s *State) VectorAddScalar(h Handle, x float64) {
	e, ok := s.resolve("vector_add_scalar", h, KindVector)
	if !ok {
		return
	}
	v := e.payload.(*vectorData)
	for i := range v.elems {
		v.elems[i] += x
	}
}

// VectorMultiplyScalar multiplies every element by x.
func (s *State) VectorMultiplyScalar(h Handle, x float64) {
	e, ok := s.resolve("vector_multiply_scalar", h, KindVector)
	if !ok {
		return
	}
	v := e.payload.(*vectorData)
	for i := range v.elems {
		v.elems[i] *= x
	}
}

// VectorPower raises every element to the given exponent. Raising a
// negative element to a non-integral exponent has no real result and aborts
// before any element is written.
func (s *State) VectorPower(h Handle, exp float64) {
	e, ok := s.resolve("vector_power", h, KindVector)
	if !ok {
		return
	}
	v := e.payload.(*vectorData)
	if exp != math.Trunc(exp) {
		for i, x := range v.elems {
			if x < 0 {
				s.fail("vector_power", perr.CodeIllegalInput,
					"negative element at index %d with non-integral exponent %g", i, exp)
				return
			}
		}
	}
	for i := range v.elems {
		v.elems[i] = math.Pow(v.elems[i], exp)
	}
}

// VectorResize grows or shrinks the vector. New elements are zero.
func (s *State) VectorResize(h Handle, n int) {
	e, ok := s.resolve("vector_resize", h, KindVector)
	if !ok {
		return
	}
	if n <= 0 {
		s.fail("vector_resize", perr.CodeIllegalInput, "size must be positive, got %d", n)
		return
	}
	v := e.payload.(*vectorData)
	if n <= len(v.elems) {
		v.elems = v.elems[:n]
		return
	}
	grown := make([]float64, n)
	copy(grown, v.elems)
	v.elems = grown
}

// VectorExtract allocates a new vector holding count elements starting at
// start.
func (s *State) VectorExtract(h Handle, start, count int) Handle {
	e, ok := s.resolve("vector_extract", h, KindVector)
	if !ok {
		return 0
	}
	v := e.payload.(*vectorData)
	if start < 0 || count <= 0 || start+count > len(v.elems) {
		s.fail("vector_extract", perr.CodeIllegalInput,
			"range [%d, %d) out of bounds for size %d", start, start+count, len(v.elems))
		return 0
	}
	sub := make([]float64, count)
	copy(sub, v.elems[start:start+count])
	return s.register(KindVector, &vectorData{elems: sub}, false)
}

// intArrayData aliases a caller-owned buffer. Entries of this kind are
// always borrowed: cleanup is Unwrap, never an owning delete.
type intArrayData struct {
	ints []int64
}

// IntArrayWrap registers a borrowed view over the caller's buffer. The
// buffer's lifetime must enclose every native call made with the handle.
func (s *State) IntArrayWrap(buf []int64) Handle {
	if buf == nil {
		s.fail("int_array_wrap", perr.CodeNullInput, "nil buffer")
		return 0
	}
	return s.register(KindIntArray, &intArrayData{ints: buf}, true)
}

// VectorSortIndex writes the ascending sort permutation of the vector into
// the wrapped int array, which must have the same length.
func (s *State) VectorSortIndex(h, arr Handle) {
	e, ok := s.resolve("vector_sort_index", h, KindVector)
	if !ok {
		return
	}
	a, ok := s.resolve("vector_sort_index", arr, KindIntArray)
	if !ok {
		return
	}
	v := e.payload.(*vectorData)
	out := a.payload.(*intArrayData)
	if len(out.ints) != len(v.elems) {
		s.fail("vector_sort_index", perr.CodeIllegalInput,
			"permutation buffer size %d does not match vector size %d", len(out.ints), len(v.elems))
		return
	}
	for i := range out.ints {
		out.ints[i] = int64(i)
	}
	sort.SliceStable(out.ints, func(i, j int) bool {
		return v.elems[out.ints[i]] < v.elems[out.ints[j]]
	})
}
