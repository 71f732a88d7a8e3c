package native

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	_ "modernc.org/sqlite"

	"github.com/perseid-io/perseid-go/pkg/perr"
)

//go:embed schema.sql
var schemaSQL string

// TableSave writes the table behind h to a snapshot file at path,
// replacing any existing file. Snapshots are the on-disk interchange
// format for tables; each one gets a fresh id.
func (s *State) TableSave(h Handle, path string) {
	e, ok := s.resolve("table_save", h, KindTable)
	if !ok {
		return
	}
	t := e.payload.(*tableData)

	// Snapshots are whole-file replacements, never incremental.
	_ = os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		s.fail("table_save", perr.CodeIllegalOutput, "open snapshot %q: %v", path, err)
		return
	}
	defer db.Close()

	if err := s.writeSnapshot(db, t); err != nil {
		s.fail("table_save", perr.CodeIllegalOutput, "write snapshot %q: %v", path, err)
	}
}

// writeSnapshot stores the table inside one transaction.
func (s *State) writeSnapshot(db *sql.DB, t *tableData) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	snapID := newUUID().String()
	_, err = tx.Exec(`INSERT INTO snapshot (id, depth, created_at) VALUES (?, ?, ?)`,
		snapID, t.depth, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return err
	}

	for pos, c := range t.cols {
		_, err = tx.Exec(`INSERT INTO columns (id, snapshot_id, position, name, kind) VALUES (?, ?, ?, ?, ?)`,
			c.id.String(), snapID, pos, c.name, c.kind.String())
		if err != nil {
			return err
		}
		for row, cell := range c.cells {
			if cell == nil {
				continue
			}
			_, err = tx.Exec(`INSERT INTO cells (column_id, row, value) VALUES (?, ?, ?)`,
				c.id.String(), row, encodeCell(c.kind, cell))
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// TableLoad reads a snapshot file into a freshly allocated table and
// returns its handle. The caller owns the handle.
func (s *State) TableLoad(path string) Handle {
	if _, err := os.Stat(path); err != nil {
		s.fail("table_load", perr.CodeFileNotFound, "snapshot %q: %v", path, err)
		return 0
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		s.fail("table_load", perr.CodeFileNotFound, "open snapshot %q: %v", path, err)
		return 0
	}
	defer db.Close()

	t, err := s.readSnapshot(db)
	if err != nil {
		s.fail("table_load", perr.CodeInvalidType, "read snapshot %q: %v", path, err)
		return 0
	}
	return s.register(KindTable, t, false)
}

// readSnapshot rebuilds tableData from an open snapshot database.
func (s *State) readSnapshot(db *sql.DB) (*tableData, error) {
	var depth int
	var snapID string
	if err := db.QueryRow(`SELECT id, depth FROM snapshot`).Scan(&snapID, &depth); err != nil {
		return nil, fmt.Errorf("snapshot header: %w", err)
	}
	if depth <= 0 {
		return nil, fmt.Errorf("snapshot depth %d is not positive", depth)
	}

	t := &tableData{depth: depth}

	rows, err := db.Query(`SELECT id, name, kind FROM columns WHERE snapshot_id = ? ORDER BY position`, snapID)
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}
	defer rows.Close()

	type colRow struct{ id, name, kind string }
	var cols []colRow
	for rows.Next() {
		var cr colRow
		if err := rows.Scan(&cr.id, &cr.name, &cr.kind); err != nil {
			return nil, fmt.Errorf("columns: %w", err)
		}
		cols = append(cols, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	for _, cr := range cols {
		kind, ok := ParseValKind(cr.kind)
		if !ok {
			return nil, fmt.Errorf("column %q has unknown kind %q", cr.name, cr.kind)
		}
		c := &columnData{id: newUUID(), name: cr.name, kind: kind, cells: make([]any, depth)}

		cellRows, err := db.Query(`SELECT row, value FROM cells WHERE column_id = ?`, cr.id)
		if err != nil {
			return nil, fmt.Errorf("cells of %q: %w", cr.name, err)
		}
		for cellRows.Next() {
			var row int
			var raw string
			if err := cellRows.Scan(&row, &raw); err != nil {
				cellRows.Close()
				return nil, fmt.Errorf("cells of %q: %w", cr.name, err)
			}
			if row < 0 || row >= depth {
				cellRows.Close()
				return nil, fmt.Errorf("cell row %d of %q outside depth %d", row, cr.name, depth)
			}
			v, err := decodeCell(kind, raw)
			if err != nil {
				cellRows.Close()
				return nil, fmt.Errorf("cell (%q, %d): %w", cr.name, row, err)
			}
			c.cells[row] = v
		}
		if err := cellRows.Err(); err != nil {
			cellRows.Close()
			return nil, fmt.Errorf("cells of %q: %w", cr.name, err)
		}
		cellRows.Close()

		t.cols = append(t.cols, c)
	}

	return t, nil
}

// encodeCell serializes a canonical value for storage.
func encodeCell(kind ValKind, v any) string {
	switch kind {
	case ValBool:
		return strconv.FormatBool(v.(bool))
	case ValChar, ValInt, ValLong, ValLongLong:
		return strconv.FormatInt(v.(int64), 10)
	case ValFloat, ValDouble:
		return strconv.FormatFloat(v.(float64), 'g', -1, 64)
	case ValFloatComplex, ValDoubleComplex:
		return strconv.FormatComplex(v.(complex128), 'g', -1, 128)
	default:
		return v.(string)
	}
}

// decodeCell parses a stored value back into canonical form.
func decodeCell(kind ValKind, raw string) (any, error) {
	switch kind {
	case ValBool:
		return strconv.ParseBool(raw)
	case ValChar, ValInt, ValLong, ValLongLong:
		return strconv.ParseInt(raw, 10, 64)
	case ValFloat, ValDouble:
		return strconv.ParseFloat(raw, 64)
	case ValFloatComplex, ValDoubleComplex:
		return strconv.ParseComplex(raw, 128)
	case ValString:
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown kind %d", int(kind))
	}
}
