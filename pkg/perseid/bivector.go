package perseid

import "github.com/perseid-io/perseid-go/pkg/perr"

// Bivector composes two owned vectors of equal length, typically the x and
// y samples of a curve. The equal-length invariant is enforced at
// construction and re-checked whenever the size is queried, because a
// caller holding the component vectors can resize them underneath the
// composition.
type Bivector struct {
	x *Vector
	y *Vector
}

// NewBivector composes x and y, taking ownership of both. It fails with
// IllegalInput when the lengths differ, in which case ownership stays with
// the caller.
func (l *Lib) NewBivector(x, y *Vector) (*Bivector, error) {
	if x.inert() || y.inert() {
		return nil, errInertVector()
	}
	nx, err := x.Size()
	if err != nil {
		return nil, err
	}
	ny, err := y.Size()
	if err != nil {
		return nil, err
	}
	if nx != ny {
		return nil, raise(perr.CodeIllegalInput, "bivector_new",
			"vector sizes mismatch: %d vs %d", nx, ny)
	}
	return &Bivector{x: x, y: y}, nil
}

// X returns the x component. The reference is borrowed: the bivector still
// owns the vector.
func (b *Bivector) X() *Vector { return b.x }

// Y returns the y component, borrowed like X.
func (b *Bivector) Y() *Vector { return b.y }

// Size returns the common length of the two components, failing with
// IllegalInput if they have diverged since construction.
func (b *Bivector) Size() (int, error) {
	nx, err := b.x.Size()
	if err != nil {
		return 0, err
	}
	ny, err := b.y.Size()
	if err != nil {
		return 0, err
	}
	if nx != ny {
		return 0, raise(perr.CodeIllegalInput, "bivector_size",
			"vector sizes mismatch: %d vs %d", nx, ny)
	}
	return nx, nil
}

// Clone deep-copies both components.
func (b *Bivector) Clone() (*Bivector, error) {
	x, err := b.x.Clone()
	if err != nil {
		return nil, err
	}
	y, err := b.y.Clone()
	if err != nil {
		x.lib.CloseOrLog(x)
		return nil, err
	}
	return &Bivector{x: x, y: y}, nil
}

// Close frees both components. Both closes are attempted even if the first
// fails; the first failure wins.
func (b *Bivector) Close() error {
	errX := b.x.Close()
	errY := b.y.Close()
	if errX != nil {
		return errX
	}
	return errY
}
