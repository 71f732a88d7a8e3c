package native

import (
	"testing"

	"github.com/perseid-io/perseid-go/pkg/perr"
)

func TestVectorLifecycle(t *testing.T) {
	s := NewState()
	h := s.VectorNew(5)
	if h == 0 {
		t.Fatal("VectorNew returned null handle")
	}
	if got := s.VectorSize(h); got != 5 {
		t.Errorf("size = %d, want 5", got)
	}

	s.VectorFill(h, 2.0)
	for i := 0; i < 5; i++ {
		if got := s.VectorGet(h, i); got != 2.0 {
			t.Errorf("elem %d = %g, want 2.0", i, got)
		}
	}

	dup := s.VectorDuplicate(h)
	s.VectorSet(dup, 0, 99)
	if got := s.VectorGet(h, 0); got != 2.0 {
		t.Errorf("mutating duplicate changed source: %g", got)
	}

	s.VectorDelete(h)
	s.VectorDelete(dup)
	if s.Depth() != 0 {
		t.Fatalf("unexpected frames: %+v", s.FramesSince(0))
	}

	// Deleting again is the double-free case.
	s.VectorDelete(h)
	if got := lastFrame(t, s).Code; got != perr.CodeNullInput {
		t.Errorf("double free code = %v, want %v", got, perr.CodeNullInput)
	}
}

func TestVectorErrors(t *testing.T) {
	tests := []struct {
		name     string
		run      func(s *State, h Handle)
		wantCode perr.Code
	}{
		{
			name:     "get out of range",
			run:      func(s *State, h Handle) { s.VectorGet(h, 10) },
			wantCode: perr.CodeIllegalInput,
		},
		{
			name:     "set negative index",
			run:      func(s *State, h Handle) { s.VectorSet(h, -1, 0) },
			wantCode: perr.CodeIllegalInput,
		},
		{
			name: "add size mismatch",
			run: func(s *State, h Handle) {
				other := s.VectorNew(3)
				s.VectorAdd(h, other)
			},
			wantCode: perr.CodeIllegalInput,
		},
		{
			name: "divide by zero element",
			run: func(s *State, h Handle) {
				other := s.VectorNew(5)
				s.VectorDivide(h, other)
			},
			wantCode: perr.CodeDivisionByZero,
		},
		{
			name:     "power negative base fractional exponent",
			run:      func(s *State, h Handle) { s.VectorAddScalar(h, -3); s.VectorPower(h, 0.5) },
			wantCode: perr.CodeIllegalInput,
		},
		{
			name:     "extract bad range",
			run:      func(s *State, h Handle) { s.VectorExtract(h, 3, 9) },
			wantCode: perr.CodeIllegalInput,
		},
		{
			name:     "resize to zero",
			run:      func(s *State, h Handle) { s.VectorResize(h, 0) },
			wantCode: perr.CodeIllegalInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			h := s.VectorNew(5)
			tt.run(s, h)
			if got := lastFrame(t, s).Code; got != tt.wantCode {
				t.Errorf("frame code = %v, want %v", got, tt.wantCode)
			}
		})
	}
}

func TestVectorArithmetic(t *testing.T) {
	s := NewState()
	h := s.VectorWrap([]float64{1, 2, 3})
	o := s.VectorWrap([]float64{4, 5, 6})

	s.VectorAdd(h, o)
	wantAdd := []float64{5, 7, 9}
	for i, w := range wantAdd {
		if got := s.VectorGet(h, i); got != w {
			t.Errorf("after add elem %d = %g, want %g", i, got, w)
		}
	}

	s.VectorMultiplyScalar(h, 2)
	if got := s.VectorGet(h, 0); got != 10 {
		t.Errorf("after scale elem 0 = %g, want 10", got)
	}

	s.VectorDivide(h, o)
	if got := s.VectorGet(h, 2); got != 3 {
		t.Errorf("after divide elem 2 = %g, want 3", got)
	}

	if s.Depth() != 0 {
		t.Fatalf("unexpected frames: %+v", s.FramesSince(0))
	}
}

func TestVectorSortIndexThroughWrappedBuffer(t *testing.T) {
	s := NewState()
	h := s.VectorWrap([]float64{3, 1, 2})

	perm := make([]int64, 3)
	ah := s.IntArrayWrap(perm)
	s.VectorSortIndex(h, ah)
	s.Unwrap(ah)

	if s.Depth() != 0 {
		t.Fatalf("unexpected frames: %+v", s.FramesSince(0))
	}
	want := []int64{1, 2, 0}
	for i, w := range want {
		if perm[i] != w {
			t.Errorf("perm[%d] = %d, want %d", i, perm[i], w)
		}
	}
}

func TestVectorSortIndexBufferSizeMismatch(t *testing.T) {
	s := NewState()
	h := s.VectorWrap([]float64{3, 1, 2})
	ah := s.IntArrayWrap(make([]int64, 2))
	s.VectorSortIndex(h, ah)
	if got := lastFrame(t, s).Code; got != perr.CodeIllegalInput {
		t.Errorf("frame code = %v, want %v", got, perr.CodeIllegalInput)
	}
}

func TestMatrixOps(t *testing.T) {
	s := NewState()
	a := s.MatrixNew(2, 3)
	s.MatrixSet(a, 0, 0, 1)
	s.MatrixSet(a, 0, 1, 2)
	s.MatrixSet(a, 0, 2, 3)
	s.MatrixSet(a, 1, 0, 4)
	s.MatrixSet(a, 1, 1, 5)
	s.MatrixSet(a, 1, 2, 6)

	bt := s.MatrixTranspose(a)
	if r, c := s.MatrixRows(bt), s.MatrixCols(bt); r != 3 || c != 2 {
		t.Fatalf("transpose shape = %dx%d, want 3x2", r, c)
	}
	if got := s.MatrixGet(bt, 2, 1); got != 6 {
		t.Errorf("transpose (2,1) = %g, want 6", got)
	}

	prod := s.MatrixMultiply(a, bt)
	if r, c := s.MatrixRows(prod), s.MatrixCols(prod); r != 2 || c != 2 {
		t.Fatalf("product shape = %dx%d, want 2x2", r, c)
	}
	if got := s.MatrixGet(prod, 0, 0); got != 14 {
		t.Errorf("product (0,0) = %g, want 14", got)
	}
	if s.Depth() != 0 {
		t.Fatalf("unexpected frames: %+v", s.FramesSince(0))
	}

	// Inner dimension mismatch.
	s.MatrixMultiply(a, a)
	if got := lastFrame(t, s).Code; got != perr.CodeIllegalInput {
		t.Errorf("frame code = %v, want %v", got, perr.CodeIllegalInput)
	}
}
