package native

import (
	"github.com/google/uuid"

	"github.com/perseid-io/perseid-go/pkg/perr"
)

// Handle is an opaque index into a State's registry. The zero Handle is
// never allocated and always denotes "no resource".
type Handle uint64

// Kind tags what a registry entry points at.
type Kind int

// Registry entry kinds.
const (
	KindVector Kind = iota + 1
	KindMatrix
	KindProperty
	KindPropertyList
	KindTable
	KindIntArray
)

// String returns the native name of the kind.
func (k Kind) String() string {
	switch k {
	case KindVector:
		return "vector"
	case KindMatrix:
		return "matrix"
	case KindProperty:
		return "property"
	case KindPropertyList:
		return "propertylist"
	case KindTable:
		return "table"
	case KindIntArray:
		return "int array"
	default:
		return "unknown"
	}
}

// entry is one registry slot. Owned entries are freed with the matching
// per-kind delete; borrowed entries alias storage owned elsewhere (a
// collection's element, a caller's buffer) and must only ever be unwrapped.
type entry struct {
	kind     Kind
	token    uuid.UUID
	payload  any
	borrowed bool
}

// register allocates a fresh handle with a new ownership token.
func (s *State) register(kind Kind, payload any, borrowed bool) Handle {
	h := s.next
	s.next++
	s.entries[h] = &entry{
		kind:     kind,
		token:    newUUID(),
		payload:  payload,
		borrowed: borrowed,
	}
	return h
}

// resolve looks a handle up and checks its kind, recording a frame on
// behalf of the named native function when the handle is null, stale, or of
// the wrong kind.
func (s *State) resolve(function string, h Handle, kind Kind) (*entry, bool) {
	if h == 0 {
		s.fail(function, perr.CodeNullInput, "null %s handle", kind)
		return nil, false
	}
	e, ok := s.entries[h]
	if !ok {
		s.fail(function, perr.CodeNullInput, "unknown or already freed %s handle %d", kind, uint64(h))
		return nil, false
	}
	if e.kind != kind {
		s.fail(function, perr.CodeTypeMismatch, "handle %d is a %s, not a %s", uint64(h), e.kind, kind)
		return nil, false
	}
	return e, true
}

// Owner returns the ownership token of a live handle. The second result is
// false for unknown handles.
func (s *State) Owner(h Handle) (uuid.UUID, bool) {
	e, ok := s.entries[h]
	if !ok {
		return uuid.UUID{}, false
	}
	return e.token, true
}

// Unwrap revokes a handle's registry slot without touching the storage it
// points at. This is the cleanup path for borrowed handles and wrapped
// caller buffers; using the owning delete on those would free storage the
// owner still relies on.
func (s *State) Unwrap(h Handle) {
	if h == 0 {
		s.fail("unwrap", perr.CodeNullInput, "null handle")
		return
	}
	if _, ok := s.entries[h]; !ok {
		s.fail("unwrap", perr.CodeNullInput, "unknown or already freed handle %d", uint64(h))
		return
	}
	delete(s.entries, h)
}

// remove drops a resolved handle's slot. Callers are expected to have
// released or invalidated the payload as appropriate for its kind.
func (s *State) remove(h Handle) {
	delete(s.entries, h)
}
