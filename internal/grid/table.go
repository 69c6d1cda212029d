package grid

import (
	"database/sql"
	"slices"
)

// Column names of a clue table.
const (
	ColNumber   = "number"
	ColStartRow = "start_row"
	ColStartCol = "start_col"
	ColEndRow   = "end_row"
	ColEndCol   = "end_col"
	ColClue     = "clue"
	ColAnswer   = "answer"
)

// RequiredColumns lists the columns every clue table must carry, in the
// order they are checked.
var RequiredColumns = []string{ColNumber, ColStartCol, ColStartRow, ColEndCol, ColEndRow, ColClue}

// coordinateColumns are checked for nulls in this order.
var coordinateColumns = []string{ColStartCol, ColStartRow, ColEndCol, ColEndRow}

// Row is one clue table record. Coordinates are nullable because loaders
// report missing values instead of guessing them.
type Row struct {
	Number   int           `json:"number"`
	StartRow sql.Null[int] `json:"start_row"`
	StartCol sql.Null[int] `json:"start_col"`
	EndRow   sql.Null[int] `json:"end_row"`
	EndCol   sql.Null[int] `json:"end_col"`
	Clue     string        `json:"clue"`
	Answer   string        `json:"answer,omitempty"`
}

// Table is a clue table as read from a data source: the header it declared
// and its rows in source order.
type Table struct {
	Columns []string
	Rows    []Row
}

// NewTable returns a table declaring all required columns plus answer.
func NewTable(rows ...Row) Table {
	cols := append(slices.Clone(RequiredColumns), ColAnswer)
	return Table{Columns: cols, Rows: rows}
}

// HasColumn reports whether the table declares the named column.
func (t Table) HasColumn(name string) bool {
	return slices.Contains(t.Columns, name)
}

// Span builds a fully populated row, mostly for tests and literals.
func Span(number, startRow, startCol, endRow, endCol int, clue string) Row {
	return Row{
		Number:   number,
		StartRow: sql.Null[int]{V: startRow, Valid: true},
		StartCol: sql.Null[int]{V: startCol, Valid: true},
		EndRow:   sql.Null[int]{V: endRow, Valid: true},
		EndCol:   sql.Null[int]{V: endCol, Valid: true},
		Clue:     clue,
	}
}

// WithAnswer returns a copy of r carrying answer.
func (r Row) WithAnswer(answer string) Row {
	r.Answer = answer
	return r
}

func (r Row) coordinate(col string) sql.Null[int] {
	switch col {
	case ColStartRow:
		return r.StartRow
	case ColStartCol:
		return r.StartCol
	case ColEndRow:
		return r.EndRow
	default:
		return r.EndCol
	}
}

// Validate checks that t declares every required column and that no row
// has a null coordinate. It returns a *SchemaError or *NullCoordinateError.
func Validate(t Table) error {
	for _, col := range RequiredColumns {
		if !t.HasColumn(col) {
			return &SchemaError{Column: col}
		}
	}
	for i, r := range t.Rows {
		for _, col := range coordinateColumns {
			if !r.coordinate(col).Valid {
				return &NullCoordinateError{Row: i, Column: col}
			}
		}
	}
	return nil
}
