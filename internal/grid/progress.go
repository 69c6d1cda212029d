package grid

// Progress summarises how much of a grid has been filled.
type Progress struct {
	Filled      int     `json:"filled"`
	Fillable    int     `json:"fillable"`
	Percent     float64 `json:"percent"`
	SolvedClues int     `json:"solved_clues"`
	TotalClues  int     `json:"total_clues"`
}

// Progress computes every progress figure in one pass over the grid.
func (g *Grid) Progress() Progress {
	p := Progress{TotalClues: len(g.clues)}
	for _, row := range g.cells {
		for _, c := range row {
			if c.IsFillable() {
				p.Fillable++
			}
			if c.IsFilled() {
				p.Filled++
			}
		}
	}
	p.Percent = percent(p.Filled, p.Fillable)
	p.SolvedClues = len(g.SolvedClueIDs())
	return p
}

// CompletionPercentage is 100 × filled cells / fillable cells, or 0 for a
// grid with no fillable cells.
func (g *Grid) CompletionPercentage() float64 {
	var filled, fillable int
	for _, row := range g.cells {
		for _, c := range row {
			if c.IsFillable() {
				fillable++
				if c.IsFilled() {
					filled++
				}
			}
		}
	}
	return percent(filled, fillable)
}

func percent(n, of int) float64 {
	if of == 0 {
		return 0
	}
	return 100 * float64(n) / float64(of)
}

// IsClueSolved reports whether every cell of the clue holds a letter.
// Unknown ids are never solved.
func (g *Grid) IsClueSolved(id ClueID) bool {
	c, ok := g.Clue(id)
	return ok && g.solved(c)
}

func (g *Grid) solved(c Clue) bool {
	for _, p := range c.cells {
		if !g.cells[p.Row][p.Col].IsFilled() {
			return false
		}
	}
	return true
}

// SolvedClueIDs lists, in table order, the clues whose cells are all filled.
func (g *Grid) SolvedClueIDs() []ClueID {
	var ids []ClueID
	for _, c := range g.clues {
		if g.solved(c) {
			ids = append(ids, c.ID())
		}
	}
	return ids
}

// SolvedSet is SolvedClueIDs as a set, for membership tests while drawing.
func (g *Grid) SolvedSet() map[ClueID]bool {
	set := make(map[ClueID]bool)
	for _, id := range g.SolvedClueIDs() {
		set[id] = true
	}
	return set
}

// IsFullySolved reports whether no cell of any clue is still empty. A grid
// without clues is trivially solved.
func (g *Grid) IsFullySolved() bool {
	for _, c := range g.clues {
		if !g.solved(c) {
			return false
		}
	}
	return true
}
