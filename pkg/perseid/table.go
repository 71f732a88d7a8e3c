package perseid

import (
	"github.com/perseid-io/perseid-go/internal/native"
	"github.com/perseid-io/perseid-go/pkg/perr"
)

// Table owns one native table handle: a fixed-depth collection of named,
// typed columns. Column names need not be unique; lookups resolve to the
// first match.
type Table struct {
	lib *Lib
	h   native.Handle
}

// NewTable allocates a table with the given depth and no columns.
func (l *Lib) NewTable(depth int) (*Table, error) {
	h, err := perr.Call(l.state, func() native.Handle { return l.state.TableNew(depth) })
	if err != nil {
		return nil, err
	}
	return &Table{lib: l, h: h}, nil
}

// AdoptTable wraps an already-allocated native table handle, taking
// ownership without a native call.
func (l *Lib) AdoptTable(h native.Handle) *Table {
	return &Table{lib: l, h: h}
}

// LoadTable reads a snapshot file into a freshly allocated table.
func (l *Lib) LoadTable(path string) (*Table, error) {
	h, err := perr.Call(l.state, func() native.Handle { return l.state.TableLoad(path) })
	if err != nil {
		return nil, err
	}
	return &Table{lib: l, h: h}, nil
}

func (t *Table) inert() bool {
	return t == nil || t.h == 0
}

func errInertTable() error {
	return raise(perr.CodeNullInput, "table_wrapper", "table owns no native handle")
}

// Release unwraps the native handle back to the caller; the wrapper becomes
// inert.
func (t *Table) Release() native.Handle {
	h := t.h
	t.h = 0
	return h
}

// Close frees the table and all its columns; a no-op on an inert wrapper.
func (t *Table) Close() error {
	if t.inert() {
		return nil
	}
	h := t.h
	t.h = 0
	return perr.Call0(t.lib.state, func() { t.lib.state.TableDelete(h) })
}

// Clone allocates a deep copy of the table.
func (t *Table) Clone() (*Table, error) {
	if t.inert() {
		return nil, errInertTable()
	}
	h, err := perr.Call(t.lib.state, func() native.Handle { return t.lib.state.TableDuplicate(t.h) })
	if err != nil {
		return nil, err
	}
	return &Table{lib: t.lib, h: h}, nil
}

// TakeFrom moves src's handle into t, freeing whatever t held before.
func (t *Table) TakeFrom(src *Table) error {
	if src.inert() {
		return errInertTable()
	}
	if t == src {
		return nil
	}
	if err := t.Close(); err != nil {
		return err
	}
	t.lib = src.lib
	t.h = src.h
	src.h = 0
	return nil
}

// CopyFrom replaces t with a deep copy of src, nulling t's handle before
// the duplicate is attempted.
func (t *Table) CopyFrom(src *Table) error {
	if src.inert() {
		return errInertTable()
	}
	if t == src {
		return nil
	}
	if err := t.Close(); err != nil {
		return err
	}
	h, err := perr.Call(src.lib.state, func() native.Handle { return src.lib.state.TableDuplicate(src.h) })
	if err != nil {
		return err
	}
	t.lib = src.lib
	t.h = h
	return nil
}

// Depth returns the number of rows.
func (t *Table) Depth() (int, error) {
	if t.inert() {
		return 0, errInertTable()
	}
	return perr.Call(t.lib.state, func() int { return t.lib.state.TableDepth(t.h) })
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() (int, error) {
	if t.inert() {
		return 0, errInertTable()
	}
	return perr.Call(t.lib.state, func() int { return t.lib.state.TableColumnCount(t.h) })
}

// NewColumn appends a column of the given name and kind, filled with unset
// cells.
func (t *Table) NewColumn(name string, kind Kind) error {
	if t.inert() {
		return errInertTable()
	}
	return perr.Call0(t.lib.state, func() { t.lib.state.TableNewColumn(t.h, name, kind) })
}

// EraseColumn removes the first column with the given name. Column
// references handed out before the erase become stale.
func (t *Table) EraseColumn(name string) error {
	if t.inert() {
		return errInertTable()
	}
	return perr.Call0(t.lib.state, func() { t.lib.state.TableEraseColumn(t.h, name) })
}

// ColumnNames returns the column names in position order, duplicates
// included.
func (t *Table) ColumnNames() ([]string, error) {
	n, err := t.ColumnCount()
	if err != nil {
		return nil, err
	}
	names := make([]string, n)
	for i := range names {
		name, err := perr.Call(t.lib.state, func() string { return t.lib.state.TableColumnName(t.h, i) })
		if err != nil {
			return nil, err
		}
		names[i] = name
	}
	return names, nil
}

// SetCell stores v at (column, row). The value is cast into the column's
// kind first, so a value that is lossy or has no cast path fails with
// InvalidType before anything is written.
func (t *Table) SetCell(column string, row int, v Value) error {
	if t.inert() {
		return errInertTable()
	}
	st := t.lib.state
	idx, err := perr.Call(st, func() int { return st.TableColumnIndex(t.h, column) })
	if err != nil {
		return err
	}
	kind, err := perr.Call(st, func() Kind { return st.TableColumnKind(t.h, idx) })
	if err != nil {
		return err
	}
	cast, err := Convert(v, kind)
	if err != nil {
		return err
	}
	return perr.Call0(st, func() { st.TableSetCell(t.h, column, row, kind, cast.canonical()) })
}

// Cell returns the value at (column, row), tagged with the column's kind.
// Unset cells read as the kind's zero value.
func (t *Table) Cell(column string, row int) (Value, error) {
	if t.inert() {
		return Value{}, errInertTable()
	}
	st := t.lib.state
	idx, err := perr.Call(st, func() int { return st.TableColumnIndex(t.h, column) })
	if err != nil {
		return Value{}, err
	}
	kind, err := perr.Call(st, func() Kind { return st.TableColumnKind(t.h, idx) })
	if err != nil {
		return Value{}, err
	}
	raw, err := perr.Call(st, func() any { return st.TableGetCell(t.h, column, row) })
	if err != nil {
		return Value{}, err
	}
	return valueFromCanonical(kind, raw), nil
}

// Resize changes the table depth. Growing pads every column with unset
// cells; shrinking discards rows past the new depth. Column references
// handed out before the resize become stale.
func (t *Table) Resize(depth int) error {
	if t.inert() {
		return errInertTable()
	}
	return perr.Call0(t.lib.state, func() { t.lib.state.TableResize(t.h, depth) })
}

// ExtractColumn copies a numeric column into a freshly allocated, owned
// vector. The column is unaffected; mutating either side never touches the
// other.
func (t *Table) ExtractColumn(name string) (*Vector, error) {
	if t.inert() {
		return nil, errInertTable()
	}
	h, err := perr.Call(t.lib.state, func() native.Handle {
		return t.lib.state.TableExtractColumn(t.h, name)
	})
	if err != nil {
		return nil, err
	}
	return &Vector{lib: t.lib, h: h}, nil
}

// Save writes the table to a snapshot file at path, replacing any existing
// file.
func (t *Table) Save(path string) error {
	if t.inert() {
		return errInertTable()
	}
	return perr.Call0(t.lib.state, func() { t.lib.state.TableSave(t.h, path) })
}

// ColumnRef is a borrowed, non-owning reference to one column of a Table.
// It carries the table's structural generation at hand-out time; every
// access revalidates the generation, so a reference that survived a
// NewColumn, EraseColumn, Resize, or Close fails instead of touching moved
// or freed storage.
type ColumnRef struct {
	table *Table
	index int
	gen   uint64
}

// Column returns a borrowed reference to the first column with the given
// name.
func (t *Table) Column(name string) (*ColumnRef, error) {
	if t.inert() {
		return nil, errInertTable()
	}
	st := t.lib.state
	idx, err := perr.Call(st, func() int { return st.TableColumnIndex(t.h, name) })
	if err != nil {
		return nil, err
	}
	gen, err := perr.Call(st, func() uint64 { return st.TableGeneration(t.h) })
	if err != nil {
		return nil, err
	}
	return &ColumnRef{table: t, index: idx, gen: gen}, nil
}

// revalidate fails when the table was structurally mutated or closed after
// the reference was handed out.
func (r *ColumnRef) revalidate() error {
	if r.table.inert() {
		return errInertTable()
	}
	gen, err := perr.Call(r.table.lib.state, func() uint64 {
		return r.table.lib.state.TableGeneration(r.table.h)
	})
	if err != nil {
		return err
	}
	if gen != r.gen {
		return raise(perr.CodeIllegalInput, "table_ref",
			"stale reference: table mutated since hand-out")
	}
	return nil
}

// Name returns the referenced column's name.
func (r *ColumnRef) Name() (string, error) {
	if err := r.revalidate(); err != nil {
		return "", err
	}
	st := r.table.lib.state
	return perr.Call(st, func() string { return st.TableColumnName(r.table.h, r.index) })
}

// Kind returns the referenced column's scalar kind.
func (r *ColumnRef) Kind() (Kind, error) {
	if err := r.revalidate(); err != nil {
		return 0, err
	}
	st := r.table.lib.state
	return perr.Call(st, func() Kind { return st.TableColumnKind(r.table.h, r.index) })
}

// Cell returns the referenced column's value at row.
func (r *ColumnRef) Cell(row int) (Value, error) {
	if err := r.revalidate(); err != nil {
		return Value{}, err
	}
	name, err := r.Name()
	if err != nil {
		return Value{}, err
	}
	return r.table.Cell(name, row)
}

// SetCell stores v in the referenced column at row.
func (r *ColumnRef) SetCell(row int, v Value) error {
	if err := r.revalidate(); err != nil {
		return err
	}
	name, err := r.Name()
	if err != nil {
		return err
	}
	return r.table.SetCell(name, row, v)
}
