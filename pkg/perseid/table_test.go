package perseid

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/perseid-io/perseid-go/internal/native"
	"github.com/perseid-io/perseid-go/pkg/perr"
)

// newSampleTable builds a 3-row table with an int and a double column.
func newSampleTable(t *testing.T, lib *Lib) *Table {
	t.Helper()
	tbl, err := lib.NewTable(3)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	if err := tbl.NewColumn("flux", KindDouble); err != nil {
		t.Fatalf("NewColumn flux: %v", err)
	}
	if err := tbl.NewColumn("id", KindInt); err != nil {
		t.Fatalf("NewColumn id: %v", err)
	}
	for row := 0; row < 3; row++ {
		if err := tbl.SetCell("flux", row, DoubleValue(float64(row)+0.5)); err != nil {
			t.Fatalf("SetCell flux %d: %v", row, err)
		}
		if err := tbl.SetCell("id", row, IntValue(int32(row+100))); err != nil {
			t.Fatalf("SetCell id %d: %v", row, err)
		}
	}
	return tbl
}

func TestTableCells(t *testing.T) {
	lib := Open(nil)
	tbl := newSampleTable(t, lib)
	defer lib.CloseOrLog(tbl)

	v, err := tbl.Cell("flux", 1)
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if v.Kind() != KindDouble || v.Float64() != 1.5 {
		t.Fatalf("Cell: got %s %v", v.Kind(), v)
	}

	if _, err := tbl.Cell("flux", 3); !errors.Is(err, perr.AccessOutOfRange) {
		t.Fatalf("Cell past depth: got %v, want AccessOutOfRange", err)
	}
	if _, err := tbl.Cell("nope", 0); !errors.Is(err, perr.DataNotFound) {
		t.Fatalf("Cell of missing column: got %v, want DataNotFound", err)
	}
}

func TestTableSetCellConvertsIntoColumnKind(t *testing.T) {
	lib := Open(nil)
	tbl := newSampleTable(t, lib)
	defer lib.CloseOrLog(tbl)

	// An int fits a double column after widening.
	if err := tbl.SetCell("flux", 0, IntValue(7)); err != nil {
		t.Fatalf("SetCell int into double: %v", err)
	}
	v, err := tbl.Cell("flux", 0)
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if v.Float64() != 7 {
		t.Fatalf("Cell after widening store: got %v", v.Float64())
	}

	// A fractional double does not fit an int column.
	if err := tbl.SetCell("id", 0, DoubleValue(1.5)); !errors.Is(err, perr.InvalidType) {
		t.Fatalf("SetCell fractional into int: got %v, want InvalidType", err)
	}
	// A bool never reaches a numeric column.
	if err := tbl.SetCell("id", 0, BoolValue(true)); !errors.Is(err, perr.InvalidType) {
		t.Fatalf("SetCell bool into int: got %v, want InvalidType", err)
	}
}

func TestTableUnsetCellsReadAsZero(t *testing.T) {
	lib := Open(nil)

	tbl, err := lib.NewTable(2)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	defer lib.CloseOrLog(tbl)
	if err := tbl.NewColumn("name", KindString); err != nil {
		t.Fatalf("NewColumn: %v", err)
	}

	v, err := tbl.Cell("name", 1)
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if v.Kind() != KindString || v.Text() != "" {
		t.Fatalf("unset cell: got %s %q", v.Kind(), v.Text())
	}
}

func TestTableResizeAndColumns(t *testing.T) {
	lib := Open(nil)
	tbl := newSampleTable(t, lib)
	defer lib.CloseOrLog(tbl)

	names, err := tbl.ColumnNames()
	if err != nil {
		t.Fatalf("ColumnNames: %v", err)
	}
	if len(names) != 2 || names[0] != "flux" || names[1] != "id" {
		t.Fatalf("ColumnNames: got %v", names)
	}

	if err := tbl.Resize(5); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if depth, _ := tbl.Depth(); depth != 5 {
		t.Fatalf("Depth after grow: got %d, want 5", depth)
	}
	// Grown rows are unset and read as zeros.
	v, err := tbl.Cell("flux", 4)
	if err != nil {
		t.Fatalf("Cell in grown row: %v", err)
	}
	if v.Float64() != 0 {
		t.Fatalf("grown cell: got %v, want 0", v.Float64())
	}

	if err := tbl.Resize(2); err != nil {
		t.Fatalf("Resize shrink: %v", err)
	}
	if _, err := tbl.Cell("flux", 2); !errors.Is(err, perr.AccessOutOfRange) {
		t.Fatalf("Cell past shrunk depth: got %v, want AccessOutOfRange", err)
	}

	if err := tbl.EraseColumn("id"); err != nil {
		t.Fatalf("EraseColumn: %v", err)
	}
	if n, _ := tbl.ColumnCount(); n != 1 {
		t.Fatalf("ColumnCount after erase: got %d, want 1", n)
	}
	if err := tbl.EraseColumn("id"); !errors.Is(err, perr.DataNotFound) {
		t.Fatalf("EraseColumn again: got %v, want DataNotFound", err)
	}
}

func TestTableExtractColumn(t *testing.T) {
	lib := Open(nil)
	tbl := newSampleTable(t, lib)
	defer lib.CloseOrLog(tbl)

	v, err := tbl.ExtractColumn("flux")
	if err != nil {
		t.Fatalf("ExtractColumn: %v", err)
	}
	defer lib.CloseOrLog(v)

	got, err := v.Elems()
	if err != nil {
		t.Fatalf("Elems: %v", err)
	}
	want := []float64{0.5, 1.5, 2.5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Elems: got %v, want %v", got, want)
		}
	}

	// The extraction is a copy; mutating the vector leaves the table alone.
	if err := v.Fill(0); err != nil {
		t.Fatalf("Fill: %v", err)
	}
	cell, err := tbl.Cell("flux", 0)
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if cell.Float64() != 0.5 {
		t.Fatalf("table mutated through extracted vector: got %v", cell.Float64())
	}

	if err := tbl.NewColumn("name", KindString); err != nil {
		t.Fatalf("NewColumn: %v", err)
	}
	if _, err := tbl.ExtractColumn("name"); !errors.Is(err, perr.InvalidType) {
		t.Fatalf("ExtractColumn of string column: got %v, want InvalidType", err)
	}
}

func TestColumnRefGoesStaleOnMutation(t *testing.T) {
	lib := Open(nil)
	tbl := newSampleTable(t, lib)
	defer lib.CloseOrLog(tbl)

	r, err := tbl.Column("flux")
	if err != nil {
		t.Fatalf("Column: %v", err)
	}
	if kind, err := r.Kind(); err != nil || kind != KindDouble {
		t.Fatalf("Kind before mutation: got %s, %v", kind, err)
	}

	if err := tbl.NewColumn("extra", KindBool); err != nil {
		t.Fatalf("NewColumn: %v", err)
	}
	if _, err := r.Cell(0); !errors.Is(err, perr.IllegalInput) {
		t.Fatalf("Cell through stale ref: got %v, want IllegalInput", err)
	}

	r2, err := tbl.Column("flux")
	if err != nil {
		t.Fatalf("Column after mutation: %v", err)
	}
	if err := r2.SetCell(0, DoubleValue(9.5)); err != nil {
		t.Fatalf("SetCell through fresh ref: %v", err)
	}
	v, err := r2.Cell(0)
	if err != nil {
		t.Fatalf("Cell through fresh ref: %v", err)
	}
	if v.Float64() != 9.5 {
		t.Fatalf("Cell: got %v, want 9.5", v.Float64())
	}
}

func TestTableSnapshotRoundTrip(t *testing.T) {
	lib := Open(nil)
	tbl := newSampleTable(t, lib)
	defer lib.CloseOrLog(tbl)

	path := filepath.Join(t.TempDir(), "sample.snap")
	if err := tbl.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := lib.LoadTable(path)
	if err != nil {
		t.Fatalf("LoadTable: %v", err)
	}
	defer lib.CloseOrLog(loaded)

	if depth, _ := loaded.Depth(); depth != 3 {
		t.Fatalf("Depth: got %d, want 3", depth)
	}
	names, err := loaded.ColumnNames()
	if err != nil {
		t.Fatalf("ColumnNames: %v", err)
	}
	if len(names) != 2 || names[0] != "flux" || names[1] != "id" {
		t.Fatalf("ColumnNames: got %v", names)
	}
	for row := 0; row < 3; row++ {
		fv, err := loaded.Cell("flux", row)
		if err != nil {
			t.Fatalf("Cell flux %d: %v", row, err)
		}
		if fv.Float64() != float64(row)+0.5 {
			t.Fatalf("flux %d: got %v", row, fv.Float64())
		}
		iv, err := loaded.Cell("id", row)
		if err != nil {
			t.Fatalf("Cell id %d: %v", row, err)
		}
		if iv.Int64() != int64(row+100) {
			t.Fatalf("id %d: got %v", row, iv.Int64())
		}
	}
}

func TestLoadTableMissingFile(t *testing.T) {
	lib := Open(nil)

	_, err := lib.LoadTable(filepath.Join(t.TempDir(), "absent.snap"))
	if !errors.Is(err, perr.FileNotFound) {
		t.Fatalf("LoadTable: got %v, want FileNotFound", err)
	}
}

func TestTableCloneAndCopyFrom(t *testing.T) {
	lib := Open(nil)
	tbl := newSampleTable(t, lib)
	defer lib.CloseOrLog(tbl)

	c, err := tbl.Clone()
	if err != nil {
		t.Fatalf("Clone: %v", err)
	}
	defer lib.CloseOrLog(c)
	if err := c.SetCell("flux", 0, DoubleValue(99)); err != nil {
		t.Fatalf("SetCell on clone: %v", err)
	}
	v, err := tbl.Cell("flux", 0)
	if err != nil {
		t.Fatalf("Cell: %v", err)
	}
	if v.Float64() != 0.5 {
		t.Fatalf("original mutated through clone: got %v", v.Float64())
	}

	other, err := lib.NewTable(1)
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}
	defer lib.CloseOrLog(other)
	if err := other.CopyFrom(tbl); err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if depth, _ := other.Depth(); depth != 3 {
		t.Fatalf("Depth after CopyFrom: got %d, want 3", depth)
	}
}

func TestTableCopyFromFailedDuplicateLeavesTargetInert(t *testing.T) {
	lib := Open(nil)
	tbl := newSampleTable(t, lib)

	stale := lib.AdoptTable(native.Handle(9999))
	if err := tbl.CopyFrom(stale); !errors.Is(err, perr.NullInput) {
		t.Fatalf("CopyFrom stale source: got %v, want NullInput", err)
	}

	if _, err := tbl.Depth(); !errors.Is(err, perr.NullInput) {
		t.Fatalf("Depth after failed CopyFrom: got %v, want NullInput", err)
	}
	if err := tbl.Close(); err != nil {
		t.Fatalf("Close after failed CopyFrom: %v", err)
	}
}
