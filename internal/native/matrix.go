package native

import "github.com/perseid-io/perseid-go/pkg/perr"

// matrixData is the native storage behind a matrix handle, row-major.
type matrixData struct {
	rows  int
	cols  int
	elems []float64
}

// MatrixNew allocates a zero-filled rows-by-cols matrix.
func (s *State) MatrixNew(rows, cols int) Handle {
	if rows <= 0 || cols <= 0 {
		s.fail("matrix_new", perr.CodeIllegalInput, "dimensions must be positive, got %dx%d", rows, cols)
		return 0
	}
	return s.register(KindMatrix, &matrixData{
		rows:  rows,
		cols:  cols,
		elems: make([]float64, rows*cols),
	}, false)
}

// MatrixDelete frees the matrix behind the handle.
func (s *State) MatrixDelete(h Handle) {
	if _, ok := s.resolve("matrix_delete", h, KindMatrix); !ok {
		return
	}
	s.remove(h)
}

// MatrixDuplicate allocates a deep copy sharing no storage with the source.
func (s *State) MatrixDuplicate(h Handle) Handle {
	e, ok := s.resolve("matrix_duplicate", h, KindMatrix)
	if !ok {
		return 0
	}
	src := e.payload.(*matrixData)
	dup := make([]float64, len(src.elems))
	copy(dup, src.elems)
	return s.register(KindMatrix, &matrixData{rows: src.rows, cols: src.cols, elems: dup}, false)
}

// MatrixRows returns the row count.
func (s *State) MatrixRows(h Handle) int {
	e, ok := s.resolve("matrix_rows", h, KindMatrix)
	if !ok {
		return 0
	}
	return e.payload.(*matrixData).rows
}

// MatrixCols returns the column count.
func (s *State) MatrixCols(h Handle) int {
	e, ok := s.resolve("matrix_cols", h, KindMatrix)
	if !ok {
		return 0
	}
	return e.payload.(*matrixData).cols
}

// matrixAt resolves the matrix and bounds-checks a cell reference.
func (s *State) matrixAt(function string, h Handle, row, col int) (*matrixData, bool) {
	e, ok := s.resolve(function, h, KindMatrix)
	if !ok {
		return nil, false
	}
	m := e.payload.(*matrixData)
	if row < 0 || row >= m.rows || col < 0 || col >= m.cols {
		s.fail(function, perr.CodeIllegalInput,
			"cell (%d, %d) out of range for %dx%d matrix", row, col, m.rows, m.cols)
		return nil, false
	}
	return m, true
}

// MatrixGet returns the element at (row, col).
func (s *State) MatrixGet(h Handle, row, col int) float64 {
	m, ok := s.matrixAt("matrix_get", h, row, col)
	if !ok {
		return 0
	}
	return m.elems[row*m.cols+col]
}

// MatrixSet stores x at (row, col).
func (s *State) MatrixSet(h Handle, row, col int, x float64) {
	m, ok := s.matrixAt("matrix_set", h, row, col)
	if !ok {
		return
	}
	m.elems[row*m.cols+col] = x
}

// MatrixFill sets every element to x.
func (s *State) MatrixFill(h Handle, x float64) {
	e, ok := s.resolve("matrix_fill", h, KindMatrix)
	if !ok {
		return
	}
	m := e.payload.(*matrixData)
	for i := range m.elems {
		m.elems[i] = x
	}
}

// MatrixAdd adds other elementwise into h. Shapes must match.
func (s *State) MatrixAdd(h, other Handle) {
	e1, ok := s.resolve("matrix_add", h, KindMatrix)
	if !ok {
		return
	}
	e2, ok := s.resolve("matrix_add", other, KindMatrix)
	if !ok {
		return
	}
	a := e1.payload.(*matrixData)
	b := e2.payload.(*matrixData)
	if a.rows != b.rows || a.cols != b.cols {
		s.fail("matrix_add", perr.CodeIllegalInput,
			"shape mismatch: %dx%d vs %dx%d", a.rows, a.cols, b.rows, b.cols)
		return
	}
	for i := range a.elems {
		a.elems[i] += b.elems[i]
	}
}

// MatrixMultiply allocates the matrix product h times other. The inner
// dimensions must agree.
func (s *State) MatrixMultiply(h, other Handle) Handle {
	e1, ok := s.resolve("matrix_multiply", h, KindMatrix)
	if !ok {
		return 0
	}
	e2, ok := s.resolve("matrix_multiply", other, KindMatrix)
	if !ok {
		return 0
	}
	a := e1.payload.(*matrixData)
	b := e2.payload.(*matrixData)
	if a.cols != b.rows {
		s.fail("matrix_multiply", perr.CodeIllegalInput,
			"inner dimensions mismatch: %dx%d times %dx%d", a.rows, a.cols, b.rows, b.cols)
		return 0
	}
	out := make([]float64, a.rows*b.cols)
	for i := 0; i < a.rows; i++ {
		for k := 0; k < a.cols; k++ {
			aik := a.elems[i*a.cols+k]
			if aik == 0 {
				continue
			}
			for j := 0; j < b.cols; j++ {
				out[i*b.cols+j] += aik * b.elems[k*b.cols+j]
			}
		}
	}
	return s.register(KindMatrix, &matrixData{rows: a.rows, cols: b.cols, elems: out}, false)
}

// MatrixTranspose allocates the transpose of the matrix.
func (s *State) MatrixTranspose(h Handle) Handle {
	e, ok := s.resolve("matrix_transpose", h, KindMatrix)
	if !ok {
		return 0
	}
	m := e.payload.(*matrixData)
	out := make([]float64, len(m.elems))
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out[j*m.rows+i] = m.elems[i*m.cols+j]
		}
	}
	return s.register(KindMatrix, &matrixData{rows: m.cols, cols: m.rows, elems: out}, false)
}
