package native

import (
	"github.com/google/uuid"

	"github.com/perseid-io/perseid-go/pkg/perr"
)

// columnData is one named, typed column of a table. Unset cells are nil and
// read back as the kind's zero value.
type columnData struct {
	id    uuid.UUID
	name  string
	kind  ValKind
	cells []any
}

// tableData is the native storage behind a table handle. Columns preserve
// insertion order and names need not be unique; lookups resolve to the
// first match. The generation counter advances on structural mutation.
type tableData struct {
	depth int
	cols  []*columnData
	gen   uint64
}

// TableNew allocates a table with the given depth and no columns.
func (s *State) TableNew(depth int) Handle {
	if depth <= 0 {
		s.fail("table_new", perr.CodeIllegalInput, "depth must be positive, got %d", depth)
		return 0
	}
	return s.register(KindTable, &tableData{depth: depth}, false)
}

// TableDelete frees the table and all its columns.
func (s *State) TableDelete(h Handle) {
	if _, ok := s.resolve("table_delete", h, KindTable); !ok {
		return
	}
	s.remove(h)
}

// TableDuplicate allocates a deep copy of the table.
func (s *State) TableDuplicate(h Handle) Handle {
	e, ok := s.resolve("table_duplicate", h, KindTable)
	if !ok {
		return 0
	}
	t := e.payload.(*tableData)
	dup := &tableData{depth: t.depth, cols: make([]*columnData, 0, len(t.cols))}
	for _, c := range t.cols {
		cells := make([]any, len(c.cells))
		copy(cells, c.cells)
		dup.cols = append(dup.cols, &columnData{id: newUUID(), name: c.name, kind: c.kind, cells: cells})
	}
	return s.register(KindTable, dup, false)
}

// TableDepth returns the number of rows.
func (s *State) TableDepth(h Handle) int {
	e, ok := s.resolve("table_depth", h, KindTable)
	if !ok {
		return 0
	}
	return e.payload.(*tableData).depth
}

// TableColumnCount returns the number of columns.
func (s *State) TableColumnCount(h Handle) int {
	e, ok := s.resolve("table_column_count", h, KindTable)
	if !ok {
		return 0
	}
	return len(e.payload.(*tableData).cols)
}

// TableGeneration returns the table's structural generation.
func (s *State) TableGeneration(h Handle) uint64 {
	e, ok := s.resolve("table_generation", h, KindTable)
	if !ok {
		return 0
	}
	return e.payload.(*tableData).gen
}

// TableNewColumn appends a column of the given name and kind. Duplicate
// names are allowed; lookups resolve to the earliest column.
func (s *State) TableNewColumn(h Handle, name string, kind ValKind) {
	e, ok := s.resolve("table_new_column", h, KindTable)
	if !ok {
		return
	}
	if name == "" {
		s.fail("table_new_column", perr.CodeIllegalInput, "column name must not be empty")
		return
	}
	if !kind.Valid() {
		s.fail("table_new_column", perr.CodeInvalidType, "invalid scalar kind %d", int(kind))
		return
	}
	t := e.payload.(*tableData)
	t.cols = append(t.cols, &columnData{
		id:    newUUID(),
		name:  name,
		kind:  kind,
		cells: make([]any, t.depth),
	})
	t.gen++
}

// column resolves the first column with the given name.
func (s *State) column(function string, h Handle, name string) (*tableData, *columnData, bool) {
	e, ok := s.resolve(function, h, KindTable)
	if !ok {
		return nil, nil, false
	}
	t := e.payload.(*tableData)
	for _, c := range t.cols {
		if c.name == name {
			return t, c, true
		}
	}
	s.fail(function, perr.CodeDataNotFound, "no column named %q", name)
	return nil, nil, false
}

// TableEraseColumn removes the first column with the given name.
func (s *State) TableEraseColumn(h Handle, name string) {
	e, ok := s.resolve("table_erase_column", h, KindTable)
	if !ok {
		return
	}
	t := e.payload.(*tableData)
	for i, c := range t.cols {
		if c.name == name {
			t.cols = append(t.cols[:i], t.cols[i+1:]...)
			t.gen++
			return
		}
	}
	s.fail("table_erase_column", perr.CodeDataNotFound, "no column named %q", name)
}

// TableColumnIndex returns the index of the first column with the name.
func (s *State) TableColumnIndex(h Handle, name string) int {
	e, ok := s.resolve("table_column_index", h, KindTable)
	if !ok {
		return -1
	}
	t := e.payload.(*tableData)
	for i, c := range t.cols {
		if c.name == name {
			return i
		}
	}
	s.fail("table_column_index", perr.CodeDataNotFound, "no column named %q", name)
	return -1
}

// columnAt resolves a column by position.
func (s *State) columnAt(function string, h Handle, i int) (*columnData, bool) {
	e, ok := s.resolve(function, h, KindTable)
	if !ok {
		return nil, false
	}
	t := e.payload.(*tableData)
	if i < 0 || i >= len(t.cols) {
		s.fail(function, perr.CodeAccessOutOfRange,
			"column index %d out of range for %d columns", i, len(t.cols))
		return nil, false
	}
	return t.cols[i], true
}

// TableColumnName returns the name of the column at position i.
func (s *State) TableColumnName(h Handle, i int) string {
	c, ok := s.columnAt("table_column_name", h, i)
	if !ok {
		return ""
	}
	return c.name
}

// TableColumnKind returns the kind of the column at position i.
func (s *State) TableColumnKind(h Handle, i int) ValKind {
	c, ok := s.columnAt("table_column_kind", h, i)
	if !ok {
		return 0
	}
	return c.kind
}

// TableGetCell returns the canonical value at (name, row). Unset cells read
// as the column kind's zero value.
func (s *State) TableGetCell(h Handle, name string, row int) any {
	t, c, ok := s.column("table_get_cell", h, name)
	if !ok {
		return nil
	}
	if row < 0 || row >= t.depth {
		s.fail("table_get_cell", perr.CodeAccessOutOfRange,
			"row %d out of range for depth %d", row, t.depth)
		return nil
	}
	if c.cells[row] == nil {
		return c.kind.Zero()
	}
	return c.cells[row]
}

// TableSetCell stores a canonical value of exactly the column's kind at
// (name, row).
func (s *State) TableSetCell(h Handle, name string, row int, kind ValKind, v any) {
	t, c, ok := s.column("table_set_cell", h, name)
	if !ok {
		return
	}
	if row < 0 || row >= t.depth {
		s.fail("table_set_cell", perr.CodeAccessOutOfRange,
			"row %d out of range for depth %d", row, t.depth)
		return
	}
	if kind != c.kind {
		s.fail("table_set_cell", perr.CodeTypeMismatch,
			"value of kind %s cannot be stored in %s column %q", kind, c.kind, name)
		return
	}
	if !kind.accepts(v) {
		s.fail("table_set_cell", perr.CodeInvalidType,
			"value %v is not canonical for kind %s", v, kind)
		return
	}
	c.cells[row] = v
}

// TableResize changes the table depth. Growing pads every column with
// unset cells; shrinking discards rows past the new depth.
func (s *State) TableResize(h Handle, depth int) {
	e, ok := s.resolve("table_resize", h, KindTable)
	if !ok {
		return
	}
	if depth <= 0 {
		s.fail("table_resize", perr.CodeIllegalInput, "depth must be positive, got %d", depth)
		return
	}
	t := e.payload.(*tableData)
	for _, c := range t.cols {
		if depth <= len(c.cells) {
			c.cells = c.cells[:depth]
			continue
		}
		grown := make([]any, depth)
		copy(grown, c.cells)
		c.cells = grown
	}
	t.depth = depth
	t.gen++
}

// TableExtractColumn copies a numeric column into a freshly allocated
// vector. The caller owns the returned handle; the column is unaffected.
func (s *State) TableExtractColumn(h Handle, name string) Handle {
	_, c, ok := s.column("table_extract_column", h, name)
	if !ok {
		return 0
	}
	if !c.kind.numeric() {
		s.fail("table_extract_column", perr.CodeInvalidType,
			"column %q has non-numeric kind %s", name, c.kind)
		return 0
	}
	elems := make([]float64, len(c.cells))
	for i, cell := range c.cells {
		if cell == nil {
			continue
		}
		switch c.kind {
		case ValChar, ValInt, ValLong, ValLongLong:
			elems[i] = float64(cell.(int64))
		case ValFloat, ValDouble:
			elems[i] = cell.(float64)
		}
	}
	return s.register(KindVector, &vectorData{elems: elems}, false)
}

// numeric reports whether the kind extracts into a vector.
func (k ValKind) numeric() bool {
	switch k {
	case ValChar, ValInt, ValLong, ValLongLong, ValFloat, ValDouble:
		return true
	default:
		return false
	}
}
