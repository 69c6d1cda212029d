package session

import (
	"time"

	"github.com/bodul/xwgrid/internal/grid"
)

// Snapshot is a point-in-time copy of a session in a form the viewers and
// `xwgrid show -json` can serialise. Cells hold "#" for blocked cells, ""
// for empty ones and the letter otherwise.
type Snapshot struct {
	SessionID string        `json:"session_id"`
	Rows      int           `json:"rows"`
	Cols      int           `json:"cols"`
	Cells     [][]string    `json:"cells"`
	Across    []ClueEntry   `json:"across"`
	Down      []ClueEntry   `json:"down"`
	Active    []grid.ClueID `json:"active"`
	Progress  grid.Progress `json:"progress"`
	Solved    bool          `json:"solved"`
	TakenAt   time.Time     `json:"taken_at"`
}

// ClueEntry describes one clue in a snapshot.
type ClueEntry struct {
	ID     grid.ClueID `json:"id"`
	Number int         `json:"number"`
	Text   string      `json:"text"`
	Start  [2]int      `json:"start"`
	Length int         `json:"length"`
	Solved bool        `json:"solved"`
}

// Snapshot copies the session state under the read lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	g := s.grid
	snap := Snapshot{
		SessionID: s.ID,
		Rows:      g.Rows(),
		Cols:      g.Cols(),
		Cells:     make([][]string, g.Rows()),
		Across:    []ClueEntry{},
		Down:      []ClueEntry{},
		Active:    s.activeLocked(),
		Progress:  g.Progress(),
		Solved:    g.IsFullySolved(),
		TakenAt:   time.Now().UTC(),
	}
	for y := range g.Rows() {
		row := make([]string, g.Cols())
		for x := range g.Cols() {
			c, _ := g.Cell(y, x)
			switch c.Kind() {
			case grid.Blocked:
				row[x] = string(grid.BlockedGlyph)
			case grid.Filled:
				r, _ := c.Letter()
				row[x] = string(r)
			}
		}
		snap.Cells[y] = row
	}

	solved := g.SolvedSet()
	for _, c := range g.Clues() {
		e := ClueEntry{
			ID:     c.ID(),
			Number: c.Number,
			Text:   c.Text,
			Start:  [2]int{c.Start.Row, c.Start.Col},
			Length: c.Len(),
			Solved: solved[c.ID()],
		}
		if c.Direction == grid.Across {
			snap.Across = append(snap.Across, e)
		} else {
			snap.Down = append(snap.Down, e)
		}
	}
	return snap
}
