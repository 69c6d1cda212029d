package grid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Direction is the axis a clue's answer runs along.
type Direction int

const (
	Across Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "Down"
	}
	return "Across"
}

// Coord addresses a grid cell.
type Coord struct {
	Row, Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// ClueID identifies a clue by number and direction, e.g. "12-Across".
type ClueID string

// NewClueID formats the id of clue number n running in direction d.
func NewClueID(n int, d Direction) ClueID {
	return ClueID(strconv.Itoa(n) + "-" + d.String())
}

// Parse splits the id back into number and direction.
func (id ClueID) Parse() (int, Direction, bool) {
	num, dir, ok := strings.Cut(string(id), "-")
	if !ok {
		return 0, Across, false
	}
	n, err := strconv.Atoi(num)
	if err != nil {
		return 0, Across, false
	}
	switch dir {
	case "Across":
		return n, Across, true
	case "Down":
		return n, Down, true
	}
	return 0, Across, false
}

// Clue is a validated clue record with its derived direction and cells.
// Clues are immutable once the grid is built.
type Clue struct {
	Number    int
	Direction Direction
	Start     Coord
	End       Coord
	Text      string
	Answer    string

	cells []Coord
}

// ID returns the clue's number_direction identity.
func (c Clue) ID() ClueID {
	return NewClueID(c.Number, c.Direction)
}

// Cells returns the coordinates the clue covers, from start to end.
func (c Clue) Cells() []Coord {
	return slices.Clone(c.cells)
}

// Len is the number of cells covered.
func (c Clue) Len() int {
	return len(c.cells)
}

// Covers reports whether the clue runs through p.
func (c Clue) Covers(p Coord) bool {
	if c.Direction == Across {
		return p.Row == c.Start.Row && p.Col >= c.Start.Col && p.Col <= c.End.Col
	}
	return p.Col == c.Start.Col && p.Row >= c.Start.Row && p.Row <= c.End.Row
}

// MaxDimension bounds both grid height and width. Every coordinate in a clue
// table must be below it.
const MaxDimension = 1024

// newClue classifies row i of a validated table. A single-cell span
// satisfies both axes and resolves to Across.
func newClue(i int, r Row) (Clue, error) {
	start := Coord{Row: r.StartRow.V, Col: r.StartCol.V}
	end := Coord{Row: r.EndRow.V, Col: r.EndCol.V}

	if r.Number < 1 {
		return Clue{}, &RowError{Row: i, Number: r.Number, Err: ErrInvalidNumber}
	}
	if start.Row < 0 || start.Col < 0 || end.Row < 0 || end.Col < 0 {
		return Clue{}, &RowError{Row: i, Number: r.Number, Err: ErrInvalidSpan}
	}
	if max(start.Row, start.Col, end.Row, end.Col) >= MaxDimension {
		return Clue{}, &RowError{Row: i, Number: r.Number, Err: ErrGridTooLarge}
	}

	c := Clue{Number: r.Number, Start: start, End: end, Text: r.Clue, Answer: r.Answer}
	switch {
	case start.Row == end.Row:
		c.Direction = Across
		if end.Col < start.Col {
			return Clue{}, &RowError{Row: i, Number: r.Number, Err: ErrInvalidSpan}
		}
		c.cells = make([]Coord, 0, end.Col-start.Col+1)
		for x := start.Col; x <= end.Col; x++ {
			c.cells = append(c.cells, Coord{Row: start.Row, Col: x})
		}
	case start.Col == end.Col:
		c.Direction = Down
		if end.Row < start.Row {
			return Clue{}, &RowError{Row: i, Number: r.Number, Err: ErrInvalidSpan}
		}
		c.cells = make([]Coord, 0, end.Row-start.Row+1)
		for y := start.Row; y <= end.Row; y++ {
			c.cells = append(c.cells, Coord{Row: y, Col: start.Col})
		}
	default:
		return Clue{}, &ClueDirectionError{Row: i, Number: r.Number, Start: start, End: end}
	}
	return c, nil
}
