// Package cluetable reads clue tables from CSV files, zstd-compressed CSV
// files and SQLite databases. Loaders only decode values; schema and null
// checks are left to grid.Validate.
package cluetable

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bodul/xwgrid/internal/grid"
)

var (
	// ErrUnsupportedFormat is returned by Open for unknown file extensions.
	ErrUnsupportedFormat = errors.New("cluetable: unsupported format")
	// ErrBadValue indicates a cell that does not hold an integer.
	ErrBadValue = errors.New("cluetable: not an integer")
	// ErrBadTableName indicates an SQLite table name that is not a plain identifier.
	ErrBadTableName = errors.New("cluetable: invalid table name")
)

// ValueError locates a value that could not be decoded. Record is the
// 0-based data record index (the header is not counted).
type ValueError struct {
	Record int
	Column string
	Value  string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%v: record %d column %s: %q", ErrBadValue, e.Record, e.Column, e.Value)
}

func (e *ValueError) Unwrap() error { return ErrBadValue }

// ReadCSV decodes a clue table with a header line. Column names are matched
// case-insensitively; unknown columns are ignored. Empty or NaN coordinate
// cells decode as null.
func ReadCSV(r io.Reader) (grid.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return grid.Table{}, nil
	}
	if err != nil {
		return grid.Table{}, fmt.Errorf("read csv header: %w", err)
	}

	var t grid.Table
	for _, h := range header {
		t.Columns = append(t.Columns, normalizeColumn(h))
	}

	for i := 0; ; i++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return grid.Table{}, fmt.Errorf("read csv record %d: %w", i, err)
		}
		row, err := decodeRecord(i, t.Columns, func(j int) (any, bool) {
			if j >= len(rec) {
				return nil, false
			}
			return rec[j], true
		})
		if err != nil {
			return grid.Table{}, err
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func normalizeColumn(s string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(s, "\ufeff")))
}

// decodeRecord builds a row from a record whose values are looked up by
// column position. Shared by the CSV and SQLite loaders.
func decodeRecord(i int, columns []string, value func(j int) (any, bool)) (grid.Row, error) {
	var row grid.Row
	for j, col := range columns {
		v, ok := value(j)
		if !ok {
			continue
		}
		switch col {
		case grid.ColNumber:
			n, err := toInt(v)
			if err != nil || !n.Valid {
				return grid.Row{}, &ValueError{Record: i, Column: col, Value: fmt.Sprint(v)}
			}
			row.Number = n.V
		case grid.ColStartRow, grid.ColStartCol, grid.ColEndRow, grid.ColEndCol:
			n, err := toInt(v)
			if err != nil {
				return grid.Row{}, &ValueError{Record: i, Column: col, Value: fmt.Sprint(v)}
			}
			switch col {
			case grid.ColStartRow:
				row.StartRow = n
			case grid.ColStartCol:
				row.StartCol = n
			case grid.ColEndRow:
				row.EndRow = n
			case grid.ColEndCol:
				row.EndCol = n
			}
		case grid.ColClue:
			row.Clue = toString(v)
		case grid.ColAnswer:
			row.Answer = strings.TrimSpace(toString(v))
		}
	}
	return row, nil
}

// toInt accepts integers, integral floats ("3.0" as written by dataframe
// exports with missing values) and empty/NaN as null.
func toInt(v any) (sql.Null[int], error) {
	switch x := v.(type) {
	case nil:
		return sql.Null[int]{}, nil
	case int64:
		return sql.Null[int]{V: int(x), Valid: true}, nil
	case float64:
		return fromFloat(x)
	case []byte:
		return parseInt(string(x))
	case string:
		return parseInt(x)
	}
	return sql.Null[int]{}, ErrBadValue
}

func parseInt(s string) (sql.Null[int], error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") || strings.EqualFold(s, "null") {
		return sql.Null[int]{}, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return sql.Null[int]{V: n, Valid: true}, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return sql.Null[int]{}, ErrBadValue
	}
	return fromFloat(f)
}

func fromFloat(f float64) (sql.Null[int], error) {
	if math.IsNaN(f) {
		return sql.Null[int]{}, nil
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return sql.Null[int]{}, ErrBadValue
	}
	return sql.Null[int]{V: int(f), Valid: true}, nil
}

func toString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	}
	return fmt.Sprint(v)
}
