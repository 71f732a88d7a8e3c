package perseid

import (
	"github.com/perseid-io/perseid-go/internal/native"
	"github.com/perseid-io/perseid-go/pkg/perr"
)

// PropertyList owns one native property list handle: an insertion-ordered
// collection of properties whose names need not be unique. Name lookups
// resolve to the first match.
type PropertyList struct {
	lib *Lib
	h   native.Handle
}

// NewPropertyList allocates an empty property list.
func (l *Lib) NewPropertyList() (*PropertyList, error) {
	h, err := perr.Call(l.state, func() native.Handle { return l.state.ProplistNew() })
	if err != nil {
		return nil, err
	}
	return &PropertyList{lib: l, h: h}, nil
}

// AdoptPropertyList wraps an already-allocated native list handle, taking
// ownership without a native call.
func (l *Lib) AdoptPropertyList(h native.Handle) *PropertyList {
	return &PropertyList{lib: l, h: h}
}

func (pl *PropertyList) inert() bool {
	return pl == nil || pl.h == 0
}

func errInertList() error {
	return raise(perr.CodeNullInput, "propertylist_wrapper", "property list owns no native handle")
}

// Release unwraps the native handle back to the caller; the wrapper becomes
// inert.
func (pl *PropertyList) Release() native.Handle {
	h := pl.h
	pl.h = 0
	return h
}

// Close frees the list and every property it owns; a no-op on an inert
// wrapper.
func (pl *PropertyList) Close() error {
	if pl.inert() {
		return nil
	}
	h := pl.h
	pl.h = 0
	return perr.Call0(pl.lib.state, func() { pl.lib.state.ProplistDelete(h) })
}

// Clone allocates a deep copy of the list and all its elements.
func (pl *PropertyList) Clone() (*PropertyList, error) {
	if pl.inert() {
		return nil, errInertList()
	}
	h, err := perr.Call(pl.lib.state, func() native.Handle { return pl.lib.state.ProplistDuplicate(pl.h) })
	if err != nil {
		return nil, err
	}
	return &PropertyList{lib: pl.lib, h: h}, nil
}

// TakeFrom moves src's handle into pl, freeing whatever pl held before.
func (pl *PropertyList) TakeFrom(src *PropertyList) error {
	if src.inert() {
		return errInertList()
	}
	if pl == src {
		return nil
	}
	if err := pl.Close(); err != nil {
		return err
	}
	pl.lib = src.lib
	pl.h = src.h
	src.h = 0
	return nil
}

// Size returns the element count.
func (pl *PropertyList) Size() (int, error) {
	if pl.inert() {
		return 0, errInertList()
	}
	return perr.Call(pl.lib.state, func() int { return pl.lib.state.ProplistSize(pl.h) })
}

// Append moves p into the list. The list takes ownership of the property's
// storage and p becomes inert.
func (pl *PropertyList) Append(p *Property) error {
	if pl.inert() {
		return errInertList()
	}
	if p.inert() {
		return errInertProperty()
	}
	err := perr.Call0(pl.lib.state, func() { pl.lib.state.ProplistAppend(pl.h, p.h) })
	if err != nil {
		return err
	}
	p.h = 0
	return nil
}

// Erase removes every property with the given name, returning how many were
// removed. A name with no matches fails with DataNotFound. Borrowed
// references handed out before the erase become stale.
func (pl *PropertyList) Erase(name string) (int, error) {
	if pl.inert() {
		return 0, errInertList()
	}
	return perr.Call(pl.lib.state, func() int { return pl.lib.state.ProplistErase(pl.h, name) })
}

// PropertyRef is a borrowed, non-owning reference to one element of a
// PropertyList. It aliases storage the list still owns and carries the
// list's structural generation at hand-out time; every access revalidates
// the generation, so a reference that survived an Append, Erase, or Close
// fails instead of touching moved or freed storage.
type PropertyRef struct {
	list  *PropertyList
	index int
	gen   uint64
}

// Get returns a borrowed reference to the first property with the given
// name.
func (pl *PropertyList) Get(name string) (*PropertyRef, error) {
	if pl.inert() {
		return nil, errInertList()
	}
	idx, err := perr.Call(pl.lib.state, func() int { return pl.lib.state.ProplistIndexOf(pl.h, name) })
	if err != nil {
		return nil, err
	}
	gen, err := perr.Call(pl.lib.state, func() uint64 { return pl.lib.state.ProplistGeneration(pl.h) })
	if err != nil {
		return nil, err
	}
	return &PropertyRef{list: pl, index: idx, gen: gen}, nil
}

// revalidate fails when the list was structurally mutated or closed after
// the reference was handed out.
func (r *PropertyRef) revalidate() error {
	if r.list.inert() {
		return errInertList()
	}
	gen, err := perr.Call(r.list.lib.state, func() uint64 {
		return r.list.lib.state.ProplistGeneration(r.list.h)
	})
	if err != nil {
		return err
	}
	if gen != r.gen {
		return raise(perr.CodeIllegalInput, "propertylist_ref",
			"stale reference: list mutated since hand-out")
	}
	return nil
}

// withBorrowed runs fn against a borrowed native handle for the referenced
// element, unwrapping the handle before returning.
func (r *PropertyRef) withBorrowed(fn func(h native.Handle) error) error {
	if err := r.revalidate(); err != nil {
		return err
	}
	st := r.list.lib.state
	bh, err := perr.Call(st, func() native.Handle { return st.ProplistGetIndex(r.list.h, r.index) })
	if err != nil {
		return err
	}
	fnErr := fn(bh)
	if unwrapErr := perr.Call0(st, func() { st.Unwrap(bh) }); fnErr == nil {
		return unwrapErr
	}
	return fnErr
}

// Name returns the referenced property's name.
func (r *PropertyRef) Name() (string, error) {
	var name string
	err := r.withBorrowed(func(h native.Handle) error {
		var err error
		name, err = perr.Call(r.list.lib.state, func() string { return r.list.lib.state.PropertyName(h) })
		return err
	})
	return name, err
}

// Kind returns the referenced property's declared kind.
func (r *PropertyRef) Kind() (Kind, error) {
	var kind Kind
	err := r.withBorrowed(func(h native.Handle) error {
		var err error
		kind, err = perr.Call(r.list.lib.state, func() Kind { return r.list.lib.state.PropertyKind(h) })
		return err
	})
	return kind, err
}

// Value returns the referenced property's scalar.
func (r *PropertyRef) Value() (Value, error) {
	var out Value
	err := r.withBorrowed(func(h native.Handle) error {
		st := r.list.lib.state
		kind, err := perr.Call(st, func() Kind { return st.PropertyKind(h) })
		if err != nil {
			return err
		}
		raw, err := perr.Call(st, func() any { return st.PropertyValue(h) })
		if err != nil {
			return err
		}
		out = valueFromCanonical(kind, raw)
		return nil
	})
	return out, err
}

// Extract deep-copies the referenced element into an owned Property,
// independent of the list.
func (r *PropertyRef) Extract() (*Property, error) {
	var p *Property
	err := r.withBorrowed(func(h native.Handle) error {
		st := r.list.lib.state
		dup, err := perr.Call(st, func() native.Handle { return st.PropertyDuplicate(h) })
		if err != nil {
			return err
		}
		p = &Property{lib: r.list.lib, h: dup}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Properties deep-copies every element into owned Property wrappers, in
// insertion order. The native iteration hands out borrowed handles; each
// one is duplicated into owned storage and then unwrapped immediately, so
// the list and the copies never share a free.
func (pl *PropertyList) Properties() ([]*Property, error) {
	if pl.inert() {
		return nil, errInertList()
	}
	st := pl.lib.state
	var out []*Property
	err := perr.Call0(st, func() {
		st.ProplistForEach(pl.h, func(bh native.Handle) {
			dup := st.PropertyDuplicate(bh)
			st.Unwrap(bh)
			if dup != 0 {
				out = append(out, &Property{lib: pl.lib, h: dup})
			}
		})
	})
	if err != nil {
		for _, p := range out {
			p.Close()
		}
		return nil, err
	}
	return out, nil
}
