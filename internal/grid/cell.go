package grid

// CellKind tags the state a cell is in.
type CellKind uint8

const (
	// Blocked cells are covered by no clue. They never change.
	Blocked CellKind = iota
	// Empty cells are covered by at least one clue and hold no letter.
	Empty
	// Filled cells hold a placed letter.
	Filled
)

func (k CellKind) String() string {
	switch k {
	case Blocked:
		return "blocked"
	case Empty:
		return "empty"
	case Filled:
		return "letter"
	}
	return "unknown"
}

// Cell is the tagged value {Blocked, Empty, Letter(r)}. The zero Cell is Blocked.
type Cell struct {
	kind   CellKind
	letter rune
}

// BlockedCell returns a blocked cell.
func BlockedCell() Cell { return Cell{kind: Blocked} }

// EmptyCell returns a fillable cell with no letter.
func EmptyCell() Cell { return Cell{kind: Empty} }

// LetterCell returns a cell holding r.
func LetterCell(r rune) Cell { return Cell{kind: Filled, letter: r} }

func (c Cell) Kind() CellKind { return c.kind }

// Letter returns the placed letter, if any.
func (c Cell) Letter() (rune, bool) {
	return c.letter, c.kind == Filled
}

func (c Cell) IsBlocked() bool { return c.kind == Blocked }

// IsFillable reports whether the cell is covered by a clue.
func (c Cell) IsFillable() bool { return c.kind != Blocked }

// IsFilled reports whether the cell holds a letter.
func (c Cell) IsFilled() bool { return c.kind == Filled }
