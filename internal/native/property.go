package native

import "github.com/perseid-io/perseid-go/pkg/perr"

// ValKind is the declared scalar type of a property or table column. Native
// scalar storage is strongly and narrowly typed; there is no implicit
// promotion at this layer. Values cross the boundary in canonical Go form:
// bool, int64 for the integer kinds, float64 for the floating kinds,
// complex128 for the complex kinds, and string.
type ValKind int

// Scalar kinds.
const (
	ValBool ValKind = iota + 1
	ValChar
	ValInt
	ValLong
	ValLongLong
	ValFloat
	ValDouble
	ValFloatComplex
	ValDoubleComplex
	ValString
)

// valKindNames maps each kind to its stable native name, used in error
// messages and snapshot files.
var valKindNames = map[ValKind]string{
	ValBool:          "bool",
	ValChar:          "char",
	ValInt:           "int",
	ValLong:          "long",
	ValLongLong:      "longlong",
	ValFloat:         "float",
	ValDouble:        "double",
	ValFloatComplex:  "floatcomplex",
	ValDoubleComplex: "doublecomplex",
	ValString:        "string",
}

// String returns the native name of the kind.
func (k ValKind) String() string {
	if name, ok := valKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether k is one of the closed scalar kinds.
func (k ValKind) Valid() bool {
	_, ok := valKindNames[k]
	return ok
}

// ParseValKind maps a stable native name back to its kind.
func ParseValKind(name string) (ValKind, bool) {
	for k, n := range valKindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// Zero returns the canonical zero value for the kind.
func (k ValKind) Zero() any {
	switch k {
	case ValBool:
		return false
	case ValChar, ValInt, ValLong, ValLongLong:
		return int64(0)
	case ValFloat, ValDouble:
		return float64(0)
	case ValFloatComplex, ValDoubleComplex:
		return complex128(0)
	case ValString:
		return ""
	default:
		return nil
	}
}

// accepts reports whether v is in the canonical form of the kind.
func (k ValKind) accepts(v any) bool {
	switch k {
	case ValBool:
		_, ok := v.(bool)
		return ok
	case ValChar, ValInt, ValLong, ValLongLong:
		_, ok := v.(int64)
		return ok
	case ValFloat, ValDouble:
		_, ok := v.(float64)
		return ok
	case ValFloatComplex, ValDoubleComplex:
		_, ok := v.(complex128)
		return ok
	case ValString:
		_, ok := v.(string)
		return ok
	default:
		return false
	}
}

// propertyData is the native storage behind a property handle. The freed
// flag makes freeing a borrowed handle observable: the owning collection's
// next access fails instead of reading reclaimed memory.
type propertyData struct {
	name  string
	kind  ValKind
	val   any
	freed bool
}

// live resolves a property handle and rejects freed storage.
func (s *State) liveProperty(function string, h Handle) (*propertyData, bool) {
	e, ok := s.resolve(function, h, KindProperty)
	if !ok {
		return nil, false
	}
	p := e.payload.(*propertyData)
	if p.freed {
		s.fail(function, perr.CodeNullInput, "property storage already freed")
		return nil, false
	}
	return p, true
}

// PropertyNew allocates a property with the kind's zero value.
func (s *State) PropertyNew(name string, kind ValKind) Handle {
	if name == "" {
		s.fail("property_new", perr.CodeIllegalInput, "property name must not be empty")
		return 0
	}
	if !kind.Valid() {
		s.fail("property_new", perr.CodeInvalidType, "invalid scalar kind %d", int(kind))
		return 0
	}
	return s.register(KindProperty, &propertyData{name: name, kind: kind, val: kind.Zero()}, false)
}

// PropertyDelete frees the property's storage and drops the handle. Calling
// this on a borrowed handle frees storage the owning collection still
// references; the collection's subsequent accesses will fail.
func (s *State) PropertyDelete(h Handle) {
	e, ok := s.resolve("property_delete", h, KindProperty)
	if !ok {
		return
	}
	p := e.payload.(*propertyData)
	if p.freed {
		s.fail("property_delete", perr.CodeNullInput, "property storage already freed")
		return
	}
	p.freed = true
	s.remove(h)
}

// PropertyDuplicate allocates a deep copy of the property.
func (s *State) PropertyDuplicate(h Handle) Handle {
	p, ok := s.liveProperty("property_duplicate", h)
	if !ok {
		return 0
	}
	return s.register(KindProperty, &propertyData{name: p.name, kind: p.kind, val: p.val}, false)
}

// PropertyName returns the property's name.
func (s *State) PropertyName(h Handle) string {
	p, ok := s.liveProperty("property_name", h)
	if !ok {
		return ""
	}
	return p.name
}

// PropertySetName renames the property.
func (s *State) PropertySetName(h Handle, name string) {
	p, ok := s.liveProperty("property_set_name", h)
	if !ok {
		return
	}
	if name == "" {
		s.fail("property_set_name", perr.CodeIllegalInput, "property name must not be empty")
		return
	}
	p.name = name
}

// PropertyKind returns the declared scalar kind.
func (s *State) PropertyKind(h Handle) ValKind {
	p, ok := s.liveProperty("property_kind", h)
	if !ok {
		return 0
	}
	return p.kind
}

// PropertyValue returns the stored canonical value.
func (s *State) PropertyValue(h Handle) any {
	p, ok := s.liveProperty("property_value", h)
	if !ok {
		return nil
	}
	return p.val
}

// PropertySet stores a canonical value of exactly the declared kind. The
// caller performs any coercion beforehand; this layer only enforces that
// the declared kind and the supplied kind agree.
func (s *State) PropertySet(h Handle, kind ValKind, v any) {
	p, ok := s.liveProperty("property_set", h)
	if !ok {
		return
	}
	if kind != p.kind {
		s.fail("property_set", perr.CodeTypeMismatch,
			"value of kind %s cannot be stored in %s property %q", kind, p.kind, p.name)
		return
	}
	if !kind.accepts(v) {
		s.fail("property_set", perr.CodeInvalidType,
			"value %v is not canonical for kind %s", v, kind)
		return
	}
	p.val = v
}

// PropertyRetype changes the declared kind and resets the stored value to
// the new kind's zero. The caller re-stores the value afterwards.
func (s *State) PropertyRetype(h Handle, kind ValKind) {
	p, ok := s.liveProperty("property_retype", h)
	if !ok {
		return
	}
	if !kind.Valid() {
		s.fail("property_retype", perr.CodeInvalidType, "invalid scalar kind %d", int(kind))
		return
	}
	p.kind = kind
	p.val = kind.Zero()
}
