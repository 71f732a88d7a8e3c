package perseid

import (
	"errors"

	"github.com/perseid-io/perseid-go/internal/native"
	"github.com/perseid-io/perseid-go/pkg/perr"
)

// Property owns one native property handle: a named scalar slot with a
// declared kind. Native storage is narrowly typed, so assignment follows a
// two-tier policy: SetTyped preserves the declared kind and rejects lossy
// values, SetPermissive widens the declared kind when preservation is
// impossible.
type Property struct {
	lib *Lib
	h   native.Handle
}

// NewProperty allocates a property holding the kind's zero value.
func (l *Lib) NewProperty(name string, kind Kind) (*Property, error) {
	h, err := perr.Call(l.state, func() native.Handle { return l.state.PropertyNew(name, kind) })
	if err != nil {
		return nil, err
	}
	return &Property{lib: l, h: h}, nil
}

// AdoptProperty wraps an already-allocated native property handle, taking
// ownership without a native call.
func (l *Lib) AdoptProperty(h native.Handle) *Property {
	return &Property{lib: l, h: h}
}

func (p *Property) inert() bool {
	return p == nil || p.h == 0
}

func errInertProperty() error {
	return raise(perr.CodeNullInput, "property_wrapper", "property owns no native handle")
}

// Release unwraps the native handle back to the caller; the wrapper becomes
// inert.
func (p *Property) Release() native.Handle {
	h := p.h
	p.h = 0
	return h
}

// Close frees the owned handle; a no-op on an inert wrapper.
func (p *Property) Close() error {
	if p.inert() {
		return nil
	}
	h := p.h
	p.h = 0
	return perr.Call0(p.lib.state, func() { p.lib.state.PropertyDelete(h) })
}

// Clone allocates a deep copy.
func (p *Property) Clone() (*Property, error) {
	if p.inert() {
		return nil, errInertProperty()
	}
	h, err := perr.Call(p.lib.state, func() native.Handle { return p.lib.state.PropertyDuplicate(p.h) })
	if err != nil {
		return nil, err
	}
	return &Property{lib: p.lib, h: h}, nil
}

// TakeFrom moves src's handle into p, freeing whatever p held before.
func (p *Property) TakeFrom(src *Property) error {
	if src.inert() {
		return errInertProperty()
	}
	if p == src {
		return nil
	}
	if err := p.Close(); err != nil {
		return err
	}
	p.lib = src.lib
	p.h = src.h
	src.h = 0
	return nil
}

// Name returns the property's name.
func (p *Property) Name() (string, error) {
	if p.inert() {
		return "", errInertProperty()
	}
	return perr.Call(p.lib.state, func() string { return p.lib.state.PropertyName(p.h) })
}

// SetName renames the property.
func (p *Property) SetName(name string) error {
	if p.inert() {
		return errInertProperty()
	}
	return perr.Call0(p.lib.state, func() { p.lib.state.PropertySetName(p.h, name) })
}

// Kind returns the declared scalar kind.
func (p *Property) Kind() (Kind, error) {
	if p.inert() {
		return 0, errInertProperty()
	}
	return perr.Call(p.lib.state, func() Kind { return p.lib.state.PropertyKind(p.h) })
}

// Value returns the stored scalar tagged with the declared kind.
func (p *Property) Value() (Value, error) {
	if p.inert() {
		return Value{}, errInertProperty()
	}
	kind, err := p.Kind()
	if err != nil {
		return Value{}, err
	}
	raw, err := perr.Call(p.lib.state, func() any { return p.lib.state.PropertyValue(p.h) })
	if err != nil {
		return Value{}, err
	}
	return valueFromCanonical(kind, raw), nil
}

// SetTyped stores v while preserving the declared kind: the value is cast
// into the current kind and rejected with InvalidType if no lossless path
// exists. The declared kind never changes.
func (p *Property) SetTyped(v Value) error {
	if p.inert() {
		return errInertProperty()
	}
	kind, err := p.Kind()
	if err != nil {
		return err
	}
	cast, err := Convert(v, kind)
	if err != nil {
		return err
	}
	return perr.Call0(p.lib.state, func() { p.lib.state.PropertySet(p.h, kind, cast.canonical()) })
}

// SetPermissive stores v, adapting the slot to the value when preservation
// fails: on InvalidType the declared kind is widened to the value's own
// runtime kind and the store is retried, which then always succeeds.
func (p *Property) SetPermissive(v Value) error {
	err := p.SetTyped(v)
	if err == nil || !errors.Is(err, perr.InvalidType) {
		return err
	}
	if retypeErr := perr.Call0(p.lib.state, func() { p.lib.state.PropertyRetype(p.h, v.Kind()) }); retypeErr != nil {
		return retypeErr
	}
	return p.SetTyped(v)
}
