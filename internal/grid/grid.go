// Package grid builds a crossword grid from a table of clue spans and tracks
// the letters placed in it.
//
// A Grid is not safe for concurrent use. Callers that place letters from one
// goroutine while reading from another must synchronize around every
// PlaceLetter and every read (see internal/session).
package grid

import (
	"iter"
	"maps"
	"slices"
	"strings"
	"unicode"
)

// BlockedGlyph is printed by Render for cells no clue covers.
const BlockedGlyph = '#'

// Grid is the cell matrix derived from a clue table. Dimensions are fixed at
// construction; only letter placement mutates it.
type Grid struct {
	rows, cols int
	cells      [][]Cell
	clues      []Clue
	index      map[ClueID]int
	numbers    map[Coord]int
}

// New validates t, derives every clue and builds the grid. Any error leaves
// nothing behind: no partially built grid is returned.
func New(t Table) (*Grid, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}

	g := &Grid{
		clues:   make([]Clue, 0, len(t.Rows)),
		index:   make(map[ClueID]int, len(t.Rows)),
		numbers: make(map[Coord]int),
	}
	for i, r := range t.Rows {
		c, err := newClue(i, r)
		if err != nil {
			return nil, err
		}
		id := c.ID()
		if _, dup := g.index[id]; dup {
			return nil, &RowError{Row: i, Number: r.Number, Err: ErrDuplicateClue}
		}
		g.index[id] = len(g.clues)
		g.clues = append(g.clues, c)

		if _, ok := g.numbers[c.Start]; !ok {
			g.numbers[c.Start] = c.Number
		}
		g.rows = max(g.rows, c.End.Row+1)
		g.cols = max(g.cols, c.End.Col+1)
	}

	g.cells = make([][]Cell, g.rows)
	for y := range g.cells {
		g.cells[y] = make([]Cell, g.cols) // zero Cell is Blocked
	}
	for _, c := range g.clues {
		for _, p := range c.cells {
			g.cells[p.Row][p.Col] = EmptyCell()
		}
	}
	return g, nil
}

// Rows is the grid height.
func (g *Grid) Rows() int { return g.rows }

// Cols is the grid width.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Cell returns the cell at (row, col). Out-of-bounds coordinates read as
// Blocked with ok false.
func (g *Grid) Cell(row, col int) (c Cell, ok bool) {
	if !g.InBounds(row, col) {
		return BlockedCell(), false
	}
	return g.cells[row][col], true
}

// At is Cell addressed by a Coord.
func (g *Grid) At(p Coord) Cell {
	c, _ := g.Cell(p.Row, p.Col)
	return c
}

// PlaceLetter writes r into a fillable cell, overwriting any previous letter.
// Letters are stored upper-cased. A blocked or out-of-bounds target, or a
// rune that cannot be displayed in a cell, fails with a *CellError and
// leaves the grid unchanged.
func (g *Grid) PlaceLetter(row, col int, r rune) error {
	if !g.InBounds(row, col) {
		return &CellError{Row: row, Col: col, Err: ErrOutOfBounds}
	}
	if g.cells[row][col].IsBlocked() {
		return &CellError{Row: row, Col: col, Err: ErrBlockedCell}
	}
	if !ValidLetter(r) {
		return &CellError{Row: row, Col: col, Err: ErrInvalidLetter}
	}
	g.cells[row][col] = LetterCell(unicode.ToUpper(r))
	return nil
}

// ValidLetter reports whether r may be placed in a cell.
func ValidLetter(r rune) bool {
	return r != BlockedGlyph && unicode.IsGraphic(r) && !unicode.IsSpace(r)
}

// Clues returns every clue in table order.
func (g *Grid) Clues() []Clue {
	return slices.Clone(g.clues)
}

// Clue looks a clue up by id.
func (g *Grid) Clue(id ClueID) (Clue, bool) {
	i, ok := g.index[id]
	if !ok {
		return Clue{}, false
	}
	return g.clues[i], true
}

// CoordinatesOf returns the cells covered by the clue id.
func (g *Grid) CoordinatesOf(id ClueID) ([]Coord, error) {
	c, ok := g.Clue(id)
	if !ok {
		return nil, ErrUnknownClue
	}
	return c.Cells(), nil
}

// NumberAt returns the clue number printed in the cell, if a clue starts there.
func (g *Grid) NumberAt(row, col int) (int, bool) {
	n, ok := g.numbers[Coord{Row: row, Col: col}]
	return n, ok
}

// AcrossClues maps clue number to text for Across clues, in table order.
func (g *Grid) AcrossClues() ClueMap { return g.cluesFor(Across) }

// DownClues maps clue number to text for Down clues, in table order.
func (g *Grid) DownClues() ClueMap { return g.cluesFor(Down) }

func (g *Grid) cluesFor(d Direction) ClueMap {
	m := ClueMap{text: make(map[int]string)}
	for _, c := range g.clues {
		if c.Direction != d {
			continue
		}
		m.numbers = append(m.numbers, c.Number)
		m.text[c.Number] = c.Text
	}
	return m
}

// Clone returns an independent copy sharing only immutable clue data.
func (g *Grid) Clone() *Grid {
	cp := *g
	cp.cells = make([][]Cell, len(g.cells))
	for i, row := range g.cells {
		cp.cells[i] = slices.Clone(row)
	}
	return &cp
}

// Render prints one line per row, cells separated by a space: BlockedGlyph
// for blocked cells, a space for empty cells and the letter otherwise.
func (g *Grid) Render() string {
	var b strings.Builder
	b.Grow(g.rows * (2*g.cols + 1))
	for _, row := range g.cells {
		for x, c := range row {
			if x > 0 {
				b.WriteByte(' ')
			}
			switch c.Kind() {
			case Blocked:
				b.WriteRune(BlockedGlyph)
			case Empty:
				b.WriteByte(' ')
			case Filled:
				b.WriteRune(c.letter)
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// ClueMap is a read-only number → clue text mapping for one direction that
// iterates in table order.
type ClueMap struct {
	numbers []int
	text    map[int]string
}

// Get returns the text of clue number n.
func (m ClueMap) Get(n int) (string, bool) {
	s, ok := m.text[n]
	return s, ok
}

func (m ClueMap) Len() int { return len(m.numbers) }

// Numbers returns the clue numbers in table order.
func (m ClueMap) Numbers() []int { return slices.Clone(m.numbers) }

// All iterates number, text pairs in table order.
func (m ClueMap) All() iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		for _, n := range m.numbers {
			if !yield(n, m.text[n]) {
				return
			}
		}
	}
}

// Map returns the mapping as a plain map.
func (m ClueMap) Map() map[int]string {
	return maps.Clone(m.text)
}
