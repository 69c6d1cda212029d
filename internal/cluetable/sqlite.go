package cluetable

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"regexp"

	_ "modernc.org/sqlite"

	"github.com/bodul/xwgrid/internal/grid"
)

// DefaultTable is the SQLite table read when none is configured.
const DefaultTable = "clues"

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads every row of table from the database at path, in rowid
// order. SQL NULLs in coordinate columns decode as null coordinates.
func LoadSQLite(ctx context.Context, path, table string) (grid.Table, error) {
	if table == "" {
		table = DefaultTable
	}
	if !identRE.MatchString(table) {
		return grid.Table{}, fmt.Errorf("%w: %q", ErrBadTableName, table)
	}
	// sql.Open would silently create a missing database file.
	if _, err := os.Stat(path); err != nil {
		return grid.Table{}, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return grid.Table{}, err
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	rows, err := db.QueryContext(ctx, fmt.Sprintf(`SELECT * FROM "%s" ORDER BY rowid`, table))
	if err != nil {
		return grid.Table{}, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	names, err := rows.Columns()
	if err != nil {
		return grid.Table{}, err
	}
	var t grid.Table
	for _, n := range names {
		t.Columns = append(t.Columns, normalizeColumn(n))
	}

	vals := make([]any, len(names))
	ptrs := make([]any, len(names))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for i := 0; rows.Next(); i++ {
		if err := rows.Scan(ptrs...); err != nil {
			return grid.Table{}, fmt.Errorf("scan row %d: %w", i, err)
		}
		row, err := decodeRecord(i, t.Columns, func(j int) (any, bool) {
			return vals[j], true
		})
		if err != nil {
			return grid.Table{}, err
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return grid.Table{}, err
	}
	return t, nil
}
