package perseid

import (
	"github.com/perseid-io/perseid-go/internal/native"
	"github.com/perseid-io/perseid-go/pkg/perr"
)

// Matrix owns one native matrix handle.
type Matrix struct {
	lib *Lib
	h   native.Handle
}

// NewMatrix allocates a zero-filled rows-by-cols matrix.
func (l *Lib) NewMatrix(rows, cols int) (*Matrix, error) {
	h, err := perr.Call(l.state, func() native.Handle { return l.state.MatrixNew(rows, cols) })
	if err != nil {
		return nil, err
	}
	return &Matrix{lib: l, h: h}, nil
}

// AdoptMatrix wraps an already-allocated native matrix handle, taking
// ownership without a native call.
func (l *Lib) AdoptMatrix(h native.Handle) *Matrix {
	return &Matrix{lib: l, h: h}
}

func (m *Matrix) inert() bool {
	return m == nil || m.h == 0
}

func errInertMatrix() error {
	return raise(perr.CodeNullInput, "matrix_wrapper", "matrix owns no native handle")
}

// Release unwraps the native handle back to the caller; the wrapper becomes
// inert.
func (m *Matrix) Release() native.Handle {
	h := m.h
	m.h = 0
	return h
}

// Close frees the owned handle; a no-op on an inert wrapper.
func (m *Matrix) Close() error {
	if m.inert() {
		return nil
	}
	h := m.h
	m.h = 0
	return perr.Call0(m.lib.state, func() { m.lib.state.MatrixDelete(h) })
}

// Clone allocates a deep copy.
func (m *Matrix) Clone() (*Matrix, error) {
	if m.inert() {
		return nil, errInertMatrix()
	}
	h, err := perr.Call(m.lib.state, func() native.Handle { return m.lib.state.MatrixDuplicate(m.h) })
	if err != nil {
		return nil, err
	}
	return &Matrix{lib: m.lib, h: h}, nil
}

// TakeFrom moves src's handle into m, freeing whatever m held before.
func (m *Matrix) TakeFrom(src *Matrix) error {
	if src.inert() {
		return errInertMatrix()
	}
	if m == src {
		return nil
	}
	if err := m.Close(); err != nil {
		return err
	}
	m.lib = src.lib
	m.h = src.h
	src.h = 0
	return nil
}

// CopyFrom replaces m with a deep copy of src, nulling m's handle before
// the duplicate is attempted.
func (m *Matrix) CopyFrom(src *Matrix) error {
	if src.inert() {
		return errInertMatrix()
	}
	if m == src {
		return nil
	}
	if err := m.Close(); err != nil {
		return err
	}
	h, err := perr.Call(src.lib.state, func() native.Handle { return src.lib.state.MatrixDuplicate(src.h) })
	if err != nil {
		return err
	}
	m.lib = src.lib
	m.h = h
	return nil
}

// Rows returns the row count.
func (m *Matrix) Rows() (int, error) {
	if m.inert() {
		return 0, errInertMatrix()
	}
	return perr.Call(m.lib.state, func() int { return m.lib.state.MatrixRows(m.h) })
}

// Cols returns the column count.
func (m *Matrix) Cols() (int, error) {
	if m.inert() {
		return 0, errInertMatrix()
	}
	return perr.Call(m.lib.state, func() int { return m.lib.state.MatrixCols(m.h) })
}

// Get returns the element at (row, col).
func (m *Matrix) Get(row, col int) (float64, error) {
	if m.inert() {
		return 0, errInertMatrix()
	}
	return perr.Call(m.lib.state, func() float64 { return m.lib.state.MatrixGet(m.h, row, col) })
}

// Set stores x at (row, col).
func (m *Matrix) Set(row, col int, x float64) error {
	if m.inert() {
		return errInertMatrix()
	}
	return perr.Call0(m.lib.state, func() { m.lib.state.MatrixSet(m.h, row, col, x) })
}

// Fill sets every element to x.
func (m *Matrix) Fill(x float64) error {
	if m.inert() {
		return errInertMatrix()
	}
	return perr.Call0(m.lib.state, func() { m.lib.state.MatrixFill(m.h, x) })
}

// Add adds other elementwise; shapes must match.
func (m *Matrix) Add(other *Matrix) error {
	if m.inert() || other.inert() {
		return errInertMatrix()
	}
	return perr.Call0(m.lib.state, func() { m.lib.state.MatrixAdd(m.h, other.h) })
}

// MultiplyTo allocates the matrix product m times other.
func (m *Matrix) MultiplyTo(other *Matrix) (*Matrix, error) {
	if m.inert() || other.inert() {
		return nil, errInertMatrix()
	}
	h, err := perr.Call(m.lib.state, func() native.Handle {
		return m.lib.state.MatrixMultiply(m.h, other.h)
	})
	if err != nil {
		return nil, err
	}
	return &Matrix{lib: m.lib, h: h}, nil
}

// Transpose allocates the transpose of m.
func (m *Matrix) Transpose() (*Matrix, error) {
	if m.inert() {
		return nil, errInertMatrix()
	}
	h, err := perr.Call(m.lib.state, func() native.Handle { return m.lib.state.MatrixTranspose(m.h) })
	if err != nil {
		return nil, err
	}
	return &Matrix{lib: m.lib, h: h}, nil
}
