package native

import (
	"testing"

	"github.com/perseid-io/perseid-go/pkg/perr"
)

// appendProp creates a property and moves it into the list.
func appendProp(s *State, lh Handle, name string, kind ValKind, v any) {
	ph := s.PropertyNew(name, kind)
	s.PropertySet(ph, kind, v)
	s.ProplistAppend(lh, ph)
}

func TestProplistInsertionOrderAndFirstMatch(t *testing.T) {
	s := NewState()
	lh := s.ProplistNew()
	appendProp(s, lh, "object", ValString, "M31")
	appendProp(s, lh, "exptime", ValDouble, 120.0)
	appendProp(s, lh, "object", ValString, "M32")

	if got := s.ProplistSize(lh); got != 3 {
		t.Fatalf("size = %d, want 3", got)
	}

	// First match wins for duplicate names.
	idx := s.ProplistIndexOf(lh, "object")
	if idx != 0 {
		t.Errorf("IndexOf(object) = %d, want 0", idx)
	}
	bh := s.ProplistGetIndex(lh, idx)
	if got := s.PropertyValue(bh); got != "M31" {
		t.Errorf("first object = %v, want M31", got)
	}
	s.Unwrap(bh)

	if s.Depth() != 0 {
		t.Fatalf("unexpected frames: %+v", s.FramesSince(0))
	}
}

func TestProplistAppendTransfersOwnership(t *testing.T) {
	s := NewState()
	lh := s.ProplistNew()
	ph := s.PropertyNew("airmass", ValDouble)
	s.ProplistAppend(lh, ph)

	// The property handle was revoked by the move.
	s.PropertyName(ph)
	if got := lastFrame(t, s).Code; got != perr.CodeNullInput {
		t.Errorf("use-after-move code = %v, want %v", got, perr.CodeNullInput)
	}
}

func TestProplistEraseAllMatches(t *testing.T) {
	s := NewState()
	lh := s.ProplistNew()
	appendProp(s, lh, "comment", ValString, "a")
	appendProp(s, lh, "object", ValString, "M31")
	appendProp(s, lh, "comment", ValString, "b")

	if got := s.ProplistErase(lh, "comment"); got != 2 {
		t.Errorf("erase removed %d, want 2", got)
	}
	if got := s.ProplistSize(lh); got != 1 {
		t.Errorf("size after erase = %d, want 1", got)
	}

	s.ProplistErase(lh, "comment")
	if got := lastFrame(t, s).Code; got != perr.CodeDataNotFound {
		t.Errorf("erase miss code = %v, want %v", got, perr.CodeDataNotFound)
	}
}

func TestProplistGenerationAdvancesOnMutation(t *testing.T) {
	s := NewState()
	lh := s.ProplistNew()
	g0 := s.ProplistGeneration(lh)
	appendProp(s, lh, "object", ValString, "M31")
	g1 := s.ProplistGeneration(lh)
	if g1 == g0 {
		t.Error("generation unchanged by append")
	}
	s.ProplistErase(lh, "object")
	if s.ProplistGeneration(lh) == g1 {
		t.Error("generation unchanged by erase")
	}
}

func TestProplistFreedBorrowedElementIsDetected(t *testing.T) {
	s := NewState()
	lh := s.ProplistNew()
	appendProp(s, lh, "object", ValString, "M31")

	// Wrongly free a borrowed handle: the storage the list owns is gone.
	bh := s.ProplistGetIndex(lh, 0)
	s.PropertyDelete(bh)
	if s.Depth() != 0 {
		t.Fatalf("unexpected frames: %+v", s.FramesSince(0))
	}

	// The list's next access observes the damage instead of reading
	// reclaimed storage.
	bh2 := s.ProplistGetIndex(lh, 0)
	s.PropertyValue(bh2)
	if got := lastFrame(t, s).Code; got != perr.CodeNullInput {
		t.Errorf("freed element access code = %v, want %v", got, perr.CodeNullInput)
	}
}

func TestProplistForEachHandsBorrowedHandles(t *testing.T) {
	s := NewState()
	lh := s.ProplistNew()
	appendProp(s, lh, "a", ValLong, int64(1))
	appendProp(s, lh, "b", ValLong, int64(2))

	var names []string
	s.ProplistForEach(lh, func(bh Handle) {
		names = append(names, s.PropertyName(bh))
		s.Unwrap(bh)
	})
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("iteration order = %v, want [a b]", names)
	}
	if s.Depth() != 0 {
		t.Fatalf("unexpected frames: %+v", s.FramesSince(0))
	}
}

func TestPropertySetEnforcesDeclaredKind(t *testing.T) {
	s := NewState()
	ph := s.PropertyNew("naxis", ValInt)

	s.PropertySet(ph, ValDouble, 3.0)
	if got := lastFrame(t, s).Code; got != perr.CodeTypeMismatch {
		t.Errorf("kind mismatch code = %v, want %v", got, perr.CodeTypeMismatch)
	}
	s.Acknowledge(0)

	s.PropertySet(ph, ValInt, "not canonical")
	if got := lastFrame(t, s).Code; got != perr.CodeInvalidType {
		t.Errorf("non-canonical code = %v, want %v", got, perr.CodeInvalidType)
	}
	s.Acknowledge(0)

	s.PropertySet(ph, ValInt, int64(2))
	if got := s.PropertyValue(ph); got != int64(2) {
		t.Errorf("value = %v, want 2", got)
	}

	s.PropertyRetype(ph, ValString)
	if got := s.PropertyKind(ph); got != ValString {
		t.Errorf("kind after retype = %v, want string", got)
	}
	if got := s.PropertyValue(ph); got != "" {
		t.Errorf("value after retype = %v, want zero string", got)
	}
}
