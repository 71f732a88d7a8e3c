package perseid

import (
	"errors"
	"testing"

	"github.com/perseid-io/perseid-go/pkg/perr"
)

func TestPropertySetTypedPreservesKind(t *testing.T) {
	lib := Open(nil)

	p, err := lib.NewProperty("NAXIS", KindChar)
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}
	defer lib.CloseOrLog(p)

	if err := p.SetTyped(IntValue(42)); err != nil {
		t.Fatalf("SetTyped 42: %v", err)
	}
	kind, err := p.Kind()
	if err != nil {
		t.Fatalf("Kind: %v", err)
	}
	if kind != KindChar {
		t.Fatalf("Kind after fitting store: got %s, want %s", kind, KindChar)
	}
	v, err := p.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v.Int64() != 42 {
		t.Fatalf("Value: got %d, want 42", v.Int64())
	}
}

func TestPropertySetTypedRejectsLossyValue(t *testing.T) {
	lib := Open(nil)

	p, err := lib.NewProperty("NAXIS", KindChar)
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}
	defer lib.CloseOrLog(p)

	if err := p.SetTyped(IntValue(300)); !errors.Is(err, perr.InvalidType) {
		t.Fatalf("SetTyped 300: got %v, want InvalidType", err)
	}
	// The declared kind and the stored value are untouched.
	kind, err := p.Kind()
	if err != nil {
		t.Fatalf("Kind: %v", err)
	}
	if kind != KindChar {
		t.Fatalf("Kind after rejected store: got %s, want %s", kind, KindChar)
	}
	v, err := p.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v.Int64() != 0 {
		t.Fatalf("Value after rejected store: got %d, want 0", v.Int64())
	}
}

func TestPropertySetPermissiveWidensDeclaredKind(t *testing.T) {
	lib := Open(nil)

	p, err := lib.NewProperty("EXPTIME", KindChar)
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}
	defer lib.CloseOrLog(p)

	if err := p.SetPermissive(DoubleValue(30.5)); err != nil {
		t.Fatalf("SetPermissive: %v", err)
	}
	kind, err := p.Kind()
	if err != nil {
		t.Fatalf("Kind: %v", err)
	}
	if kind != KindDouble {
		t.Fatalf("Kind after widening store: got %s, want %s", kind, KindDouble)
	}
	v, err := p.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v.Float64() != 30.5 {
		t.Fatalf("Value: got %v, want 30.5", v.Float64())
	}
}

func TestPropertySetPermissiveKeepsKindWhenValueFits(t *testing.T) {
	lib := Open(nil)

	p, err := lib.NewProperty("BITPIX", KindLong)
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}
	defer lib.CloseOrLog(p)

	if err := p.SetPermissive(IntValue(16)); err != nil {
		t.Fatalf("SetPermissive: %v", err)
	}
	kind, err := p.Kind()
	if err != nil {
		t.Fatalf("Kind: %v", err)
	}
	if kind != KindLong {
		t.Fatalf("Kind after fitting store: got %s, want %s", kind, KindLong)
	}
}

func TestStringPropertyRejectsNumbers(t *testing.T) {
	lib := Open(nil)

	p, err := lib.NewProperty("OBJECT", KindString)
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}
	defer lib.CloseOrLog(p)

	if err := p.SetTyped(IntValue(42)); !errors.Is(err, perr.InvalidType) {
		t.Fatalf("SetTyped number into string slot: got %v, want InvalidType", err)
	}
	if err := p.SetTyped(StringValue("M31")); err != nil {
		t.Fatalf("SetTyped string: %v", err)
	}
	v, err := p.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v.Text() != "M31" {
		t.Fatalf("Value: got %q, want %q", v.Text(), "M31")
	}
}

func TestPropertyRename(t *testing.T) {
	lib := Open(nil)

	p, err := lib.NewProperty("OLD", KindBool)
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}
	defer lib.CloseOrLog(p)

	if err := p.SetName("NEW"); err != nil {
		t.Fatalf("SetName: %v", err)
	}
	name, err := p.Name()
	if err != nil {
		t.Fatalf("Name: %v", err)
	}
	if name != "NEW" {
		t.Fatalf("Name: got %q, want %q", name, "NEW")
	}
}

func TestPropertyCloneAndMove(t *testing.T) {
	lib := Open(nil)

	p, err := lib.NewProperty("GAIN", KindDouble)
	if err != nil {
		t.Fatalf("NewProperty: %v", err)
	}
	if err := p.SetTyped(DoubleValue(1.4)); err != nil {
		t.Fatalf("SetTyped: %v", err)
	}

	c, err := p.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	defer lib.CloseOrLog(c)
	if err := c.SetTyped(DoubleValue(2.0)); err != nil {
		t.Fatalf("SetTyped on clone: %v", err)
	}
	v, err := p.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if v.Float64() != 1.4 {
		t.Fatalf("original mutated through clone: got %v", v.Float64())
	}

	moved := lib.AdoptProperty(0)
	if err := moved.TakeFrom(p); err != nil {
		t.Fatalf("TakeFrom: %v", err)
	}
	defer lib.CloseOrLog(moved)
	if _, err := p.Value(); !errors.Is(err, perr.NullInput) {
		t.Fatalf("Value on moved-from property: got %v, want NullInput", err)
	}
}
