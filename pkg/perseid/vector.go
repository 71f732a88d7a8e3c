package perseid

import (
	"github.com/perseid-io/perseid-go/internal/native"
	"github.com/perseid-io/perseid-go/pkg/perr"
)

// Vector owns one native vector handle.
type Vector struct {
	lib *Lib
	h   native.Handle
}

// NewVector allocates a zero-filled vector of the given size.
func (l *Lib) NewVector(n int) (*Vector, error) {
	h, err := perr.Call(l.state, func() native.Handle { return l.state.VectorNew(n) })
	if err != nil {
		return nil, err
	}
	return &Vector{lib: l, h: h}, nil
}

// NewVectorFrom allocates a vector initialized from a copy of elems.
func (l *Lib) NewVectorFrom(elems []float64) (*Vector, error) {
	h, err := perr.Call(l.state, func() native.Handle { return l.state.VectorWrap(elems) })
	if err != nil {
		return nil, err
	}
	return &Vector{lib: l, h: h}, nil
}

// AdoptVector wraps an already-allocated native vector handle, taking
// ownership. No native call is made; the transfer is pure bookkeeping.
func (l *Lib) AdoptVector(h native.Handle) *Vector {
	return &Vector{lib: l, h: h}
}

// inert reports whether the wrapper owns no handle (moved-from, released,
// or closed). The only legal operations on an inert wrapper are Close,
// TakeFrom, CopyFrom, and being discarded.
func (v *Vector) inert() bool {
	return v == nil || v.h == 0
}

// errInertVector is the failure every accessor returns on an inert wrapper.
func errInertVector() error {
	return raise(perr.CodeNullInput, "vector_wrapper", "vector owns no native handle")
}

// Handle exposes the owned native handle without transferring ownership.
func (v *Vector) Handle() native.Handle {
	return v.h
}

// Release unwraps the native handle back to the caller, who assumes
// ownership responsibility. The wrapper becomes inert.
func (v *Vector) Release() native.Handle {
	h := v.h
	v.h = 0
	return h
}

// Close frees the owned native handle. Closing an inert wrapper is a
// no-op. The handle is nulled before the native call so a failing free can
// never be retried against a dangling handle.
func (v *Vector) Close() error {
	if v.inert() {
		return nil
	}
	h := v.h
	v.h = 0
	return perr.Call0(v.lib.state, func() { v.lib.state.VectorDelete(h) })
}

// Clone allocates a deep copy. Mutating the clone never affects the
// original.
func (v *Vector) Clone() (*Vector, error) {
	if v.inert() {
		return nil, errInertVector()
	}
	h, err := perr.Call(v.lib.state, func() native.Handle { return v.lib.state.VectorDuplicate(v.h) })
	if err != nil {
		return nil, err
	}
	return &Vector{lib: v.lib, h: h}, nil
}

// TakeFrom moves src's handle into v, freeing whatever v held before. src
// is left inert; its Close becomes a no-op.
func (v *Vector) TakeFrom(src *Vector) error {
	if src.inert() {
		return errInertVector()
	}
	if v == src {
		return nil
	}
	if err := v.Close(); err != nil {
		return err
	}
	v.lib = src.lib
	v.h = src.h
	src.h = 0
	return nil
}

// CopyFrom replaces v's contents with a deep copy of src. The old handle is
// freed and nulled before the duplicate is attempted, so if duplication
// fails v is left inert rather than pointing at freed storage.
func (v *Vector) CopyFrom(src *Vector) error {
	if src.inert() {
		return errInertVector()
	}
	if v == src {
		return nil
	}
	if err := v.Close(); err != nil {
		return err
	}
	h, err := perr.Call(src.lib.state, func() native.Handle { return src.lib.state.VectorDuplicate(src.h) })
	if err != nil {
		return err
	}
	v.lib = src.lib
	v.h = h
	return nil
}

// Size returns the element count.
func (v *Vector) Size() (int, error) {
	if v.inert() {
		return 0, errInertVector()
	}
	return perr.Call(v.lib.state, func() int { return v.lib.state.VectorSize(v.h) })
}

// Get returns the element at index i.
func (v *Vector) Get(i int) (float64, error) {
	if v.inert() {
		return 0, errInertVector()
	}
	return perr.Call(v.lib.state, func() float64 { return v.lib.state.VectorGet(v.h, i) })
}

// Set stores x at index i.
func (v *Vector) Set(i int, x float64) error {
	if v.inert() {
		return errInertVector()
	}
	return perr.Call0(v.lib.state, func() { v.lib.state.VectorSet(v.h, i, x) })
}

// Fill sets every element to x.
func (v *Vector) Fill(x float64) error {
	if v.inert() {
		return errInertVector()
	}
	return perr.Call0(v.lib.state, func() { v.lib.state.VectorFill(v.h, x) })
}

// Add adds other elementwise. Sizes must match.
func (v *Vector) Add(other *Vector) error {
	if v.inert() || other.inert() {
		return errInertVector()
	}
	return perr.Call0(v.lib.state, func() { v.lib.state.VectorAdd(v.h, other.h) })
}

// Multiply multiplies by other elementwise. Sizes must match.
func (v *Vector) Multiply(other *Vector) error {
	if v.inert() || other.inert() {
		return errInertVector()
	}
	return perr.Call0(v.lib.state, func() { v.lib.state.VectorMultiply(v.h, other.h) })
}

// Divide divides by other elementwise. A zero divisor element fails the
// whole operation before anything is written.
func (v *Vector) Divide(other *Vector) error {
	if v.inert() || other.inert() {
		return errInertVector()
	}
	return perr.Call0(v.lib.state, func() { v.lib.state.VectorDivide(v.h, other.h) })
}

// AddScalar adds x to every element.
func (v *Vector) AddScalar(x float64) error {
	if v.inert() {
		return errInertVector()
	}
	return perr.Call0(v.lib.state, func() { v.lib.state.VectorAddScalar(v.h, x) })
}

// MultiplyScalar multiplies every element by x.
func (v *Vector) MultiplyScalar(x float64) error {
	if v.inert() {
		return errInertVector()
	}
	return perr.Call0(v.lib.state, func() { v.lib.state.VectorMultiplyScalar(v.h, x) })
}

// Power raises every element to the given exponent.
func (v *Vector) Power(exp float64) error {
	if v.inert() {
		return errInertVector()
	}
	return perr.Call0(v.lib.state, func() { v.lib.state.VectorPower(v.h, exp) })
}

// Resize grows or shrinks the vector; new elements are zero.
func (v *Vector) Resize(n int) error {
	if v.inert() {
		return errInertVector()
	}
	return perr.Call0(v.lib.state, func() { v.lib.state.VectorResize(v.h, n) })
}

// Extract allocates a new vector holding count elements starting at start.
func (v *Vector) Extract(start, count int) (*Vector, error) {
	if v.inert() {
		return nil, errInertVector()
	}
	h, err := perr.Call(v.lib.state, func() native.Handle {
		return v.lib.state.VectorExtract(v.h, start, count)
	})
	if err != nil {
		return nil, err
	}
	return &Vector{lib: v.lib, h: h}, nil
}

// SortIndex writes the ascending sort permutation into perm, which must
// have the vector's length. The buffer is handed to the native side as a
// non-owning view for the duration of the call and unwrapped afterwards;
// the native side never frees it.
func (v *Vector) SortIndex(perm []int64) error {
	if v.inert() {
		return errInertVector()
	}
	st := v.lib.state
	arr, err := perr.Call(st, func() native.Handle { return st.IntArrayWrap(perm) })
	if err != nil {
		return err
	}
	sortErr := perr.Call0(st, func() { st.VectorSortIndex(v.h, arr) })
	if unwrapErr := perr.Call0(st, func() { st.Unwrap(arr) }); sortErr == nil {
		return unwrapErr
	}
	return sortErr
}

// Elems copies the vector's contents into a fresh slice.
func (v *Vector) Elems() ([]float64, error) {
	n, err := v.Size()
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := range out {
		x, err := v.Get(i)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}
