package grid

import (
	"errors"
	"fmt"
)

// Sentinel errors. The typed errors below unwrap to one of these.
var (
	// ErrMissingColumn indicates a required clue table column is absent.
	ErrMissingColumn = errors.New("grid: missing required column")
	// ErrNullCoordinate indicates a coordinate column holds no value.
	ErrNullCoordinate = errors.New("grid: null coordinate value")
	// ErrInvalidDirection indicates a clue spans neither a single row nor a single column.
	ErrInvalidDirection = errors.New("grid: invalid clue direction")
	// ErrInvalidSpan indicates a reversed span or a negative coordinate.
	ErrInvalidSpan = errors.New("grid: invalid clue span")
	// ErrGridTooLarge indicates a coordinate at or beyond MaxDimension.
	ErrGridTooLarge = errors.New("grid: coordinate exceeds maximum grid dimension")
	// ErrInvalidNumber indicates a clue number below 1.
	ErrInvalidNumber = errors.New("grid: invalid clue number")
	// ErrDuplicateClue indicates two rows share the same number and direction.
	ErrDuplicateClue = errors.New("grid: duplicate clue")
	// ErrOutOfBounds indicates a cell coordinate outside the grid.
	ErrOutOfBounds = errors.New("grid: cell out of bounds")
	// ErrBlockedCell indicates a cell not covered by any clue.
	ErrBlockedCell = errors.New("grid: cell is blocked")
	// ErrInvalidLetter indicates a rune that cannot be placed in a cell.
	ErrInvalidLetter = errors.New("grid: invalid letter")
	// ErrUnknownClue indicates a clue id not present in the grid.
	ErrUnknownClue = errors.New("grid: unknown clue")
)

// SchemaError reports a required column missing from a clue table.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%v: %s", ErrMissingColumn, e.Column)
}

func (e *SchemaError) Unwrap() error { return ErrMissingColumn }

// NullCoordinateError reports the first null coordinate found in a clue table.
// Row is the 0-based index of the offending row.
type NullCoordinateError struct {
	Row    int
	Column string
}

func (e *NullCoordinateError) Error() string {
	return fmt.Sprintf("%v: row %d column %s", ErrNullCoordinate, e.Row, e.Column)
}

func (e *NullCoordinateError) Unwrap() error { return ErrNullCoordinate }

// ClueDirectionError reports a row whose span is neither Across nor Down.
type ClueDirectionError struct {
	Row    int
	Number int
	Start  Coord
	End    Coord
}

func (e *ClueDirectionError) Error() string {
	return fmt.Sprintf("%v: row %d (clue %d) spans %v to %v", ErrInvalidDirection, e.Row, e.Number, e.Start, e.End)
}

func (e *ClueDirectionError) Unwrap() error { return ErrInvalidDirection }

// RowError reports any other malformed clue row. Err is one of
// ErrInvalidSpan, ErrInvalidNumber or ErrDuplicateClue.
type RowError struct {
	Row    int
	Number int
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%v: row %d (clue %d)", e.Err, e.Row, e.Number)
}

func (e *RowError) Unwrap() error { return e.Err }

// CellError reports a rejected letter placement. Err is one of
// ErrOutOfBounds, ErrBlockedCell or ErrInvalidLetter.
type CellError struct {
	Row, Col int
	Err      error
}

func (e *CellError) Error() string {
	return fmt.Sprintf("%v: (%d,%d)", e.Err, e.Row, e.Col)
}

func (e *CellError) Unwrap() error { return e.Err }
