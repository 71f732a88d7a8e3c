package native

import "github.com/perseid-io/perseid-go/pkg/perr"

// proplistData is the native storage behind a property list handle. The
// list preserves insertion order and does not require unique names; name
// lookups resolve to the first match. The generation counter advances on
// every structural mutation so borrowed element references can detect
// staleness.
type proplistData struct {
	props []*propertyData
	gen   uint64
}

// ProplistNew allocates an empty property list.
func (s *State) ProplistNew() Handle {
	return s.register(KindPropertyList, &proplistData{}, false)
}

// ProplistDelete frees the list and every property it owns.
func (s *State) ProplistDelete(h Handle) {
	e, ok := s.resolve("propertylist_delete", h, KindPropertyList)
	if !ok {
		return
	}
	l := e.payload.(*proplistData)
	for _, p := range l.props {
		p.freed = true
	}
	s.remove(h)
}

// ProplistDuplicate allocates a deep copy of the list and all elements.
func (s *State) ProplistDuplicate(h Handle) Handle {
	e, ok := s.resolve("propertylist_duplicate", h, KindPropertyList)
	if !ok {
		return 0
	}
	l := e.payload.(*proplistData)
	dup := &proplistData{props: make([]*propertyData, 0, len(l.props))}
	for i, p := range l.props {
		if p.freed {
			s.fail("propertylist_duplicate", perr.CodeNullInput,
				"element %d was freed behind the list's back", i)
			return 0
		}
		dup.props = append(dup.props, &propertyData{name: p.name, kind: p.kind, val: p.val})
	}
	return s.register(KindPropertyList, dup, false)
}

// ProplistSize returns the element count.
func (s *State) ProplistSize(h Handle) int {
	e, ok := s.resolve("propertylist_size", h, KindPropertyList)
	if !ok {
		return 0
	}
	return len(e.payload.(*proplistData).props)
}

// ProplistGeneration returns the list's structural generation. Borrowed
// element references record it at hand-out and revalidate it on access.
func (s *State) ProplistGeneration(h Handle) uint64 {
	e, ok := s.resolve("propertylist_generation", h, KindPropertyList)
	if !ok {
		return 0
	}
	return e.payload.(*proplistData).gen
}

// ProplistAppend moves the property behind ph into the list: the list takes
// ownership of the storage and the property handle is revoked. Borrowed
// property handles cannot be appended; the element they alias already has
// an owner.
func (s *State) ProplistAppend(h, ph Handle) {
	e, ok := s.resolve("propertylist_append", h, KindPropertyList)
	if !ok {
		return
	}
	pe, ok := s.resolve("propertylist_append", ph, KindProperty)
	if !ok {
		return
	}
	if pe.borrowed {
		s.fail("propertylist_append", perr.CodeIllegalInput,
			"cannot append a borrowed property handle")
		return
	}
	p := pe.payload.(*propertyData)
	if p.freed {
		s.fail("propertylist_append", perr.CodeNullInput, "property storage already freed")
		return
	}
	l := e.payload.(*proplistData)
	l.props = append(l.props, p)
	l.gen++
	s.remove(ph)
}

// ProplistIndexOf returns the index of the first property with the given
// name, in insertion order.
func (s *State) ProplistIndexOf(h Handle, name string) int {
	e, ok := s.resolve("propertylist_index_of", h, KindPropertyList)
	if !ok {
		return -1
	}
	l := e.payload.(*proplistData)
	for i, p := range l.props {
		if p.name == name {
			return i
		}
	}
	s.fail("propertylist_index_of", perr.CodeDataNotFound, "no property named %q", name)
	return -1
}

// ProplistGetIndex hands out a borrowed handle to the element at index i.
// The storage stays owned by the list; the handle must be unwrapped, never
// deleted.
func (s *State) ProplistGetIndex(h Handle, i int) Handle {
	e, ok := s.resolve("propertylist_get", h, KindPropertyList)
	if !ok {
		return 0
	}
	l := e.payload.(*proplistData)
	if i < 0 || i >= len(l.props) {
		s.fail("propertylist_get", perr.CodeAccessOutOfRange,
			"index %d out of range for size %d", i, len(l.props))
		return 0
	}
	return s.register(KindProperty, l.props[i], true)
}

// ProplistErase removes every property with the given name and frees their
// storage, returning how many were removed.
func (s *State) ProplistErase(h Handle, name string) int {
	e, ok := s.resolve("propertylist_erase", h, KindPropertyList)
	if !ok {
		return 0
	}
	l := e.payload.(*proplistData)
	kept := l.props[:0]
	removed := 0
	for _, p := range l.props {
		if p.name == name {
			p.freed = true
			removed++
			continue
		}
		kept = append(kept, p)
	}
	if removed == 0 {
		s.fail("propertylist_erase", perr.CodeDataNotFound, "no property named %q", name)
		return 0
	}
	l.props = kept
	l.gen++
	return removed
}

// ProplistForEach invokes fn once per element in insertion order, handing
// it a borrowed handle. fn must unwrap the handle before returning;
// anything else either leaks the slot or frees storage the list still owns.
func (s *State) ProplistForEach(h Handle, fn func(Handle)) {
	e, ok := s.resolve("propertylist_for_each", h, KindPropertyList)
	if !ok {
		return
	}
	l := e.payload.(*proplistData)
	for _, p := range l.props {
		fn(s.register(KindProperty, p, true))
	}
}
