// Package layout holds the geometry and ordering rules shared by the text
// display and the graphical view. Nothing here draws.
package layout

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/bodul/xwgrid/internal/config"
	"github.com/bodul/xwgrid/internal/grid"
)

const (
	buttonWidth   = 100
	buttonGap     = 20
	buttonRow     = 30
	barWidth      = 300
	barHeight     = 20
	controlsSpace = 110
)

// Rect is an axis-aligned rectangle in pixels.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Layout positions every widget of the graphical view.
type Layout struct {
	Width, Height int
	CellSize      int
	Grid          Rect
	Panel         Rect
	Start         Rect
	Quit          Rect
	Pause         Rect
	Bar           Rect
	// StatusY is the baseline row for the "X / Y clues solved" line.
	StatusY int
}

// New lays out a rows × cols grid with the clue panel on its right and the
// controls underneath.
func New(rows, cols int, v config.ViewerConfig) Layout {
	l := Layout{CellSize: v.CellSize}
	l.Grid = Rect{X: 0, Y: 0, W: cols * v.CellSize, H: rows * v.CellSize}
	l.Width = l.Grid.W + v.RightPanelWidth
	l.Height = max(l.Grid.H+max(v.ButtonHeight, controlsSpace), v.MinHeight)

	l.Panel = Rect{
		X: l.Grid.W + v.Padding,
		Y: v.Padding,
		W: v.RightPanelWidth - 2*v.Padding,
		H: l.Height - v.ButtonHeight - 2*v.Padding,
	}

	y := l.Grid.H + 10
	l.Start = Rect{X: v.Padding, Y: y, W: buttonWidth, H: buttonRow}
	l.Quit = Rect{X: v.Padding + buttonWidth + buttonGap, Y: y, W: buttonWidth, H: buttonRow}
	l.Pause = Rect{X: v.Padding + 2*(buttonWidth+buttonGap), Y: y, W: buttonWidth, H: buttonRow}
	l.Bar = Rect{X: v.Padding, Y: y + 40, W: barWidth, H: barHeight}
	l.StatusY = l.Bar.Y + l.Bar.H + 10
	return l
}

// CellAt maps a pixel to a grid cell.
func (l Layout) CellAt(x, y int) (grid.Coord, bool) {
	if !l.Grid.Contains(x, y) || l.CellSize == 0 {
		return grid.Coord{}, false
	}
	return grid.Coord{Row: y / l.CellSize, Col: x / l.CellSize}, true
}

// CellRect is the pixel rectangle of a grid cell.
func (l Layout) CellRect(c grid.Coord) Rect {
	return Rect{X: c.Col * l.CellSize, Y: c.Row * l.CellSize, W: l.CellSize, H: l.CellSize}
}

// BarFill is the filled width of a progress bar of width w at percent.
func BarFill(w int, percent float64) int {
	if percent <= 0 {
		return 0
	}
	if percent >= 100 {
		return w
	}
	return int(float64(w) * percent / 100)
}

// PercentLabel formats percent the way both viewers print it: truncated to
// a whole number.
func PercentLabel(percent float64) string {
	return fmt.Sprintf("%d%%", int(percent))
}

// SolvedLabel is the "X / Y clues solved" status line.
func SolvedLabel(p grid.Progress) string {
	return fmt.Sprintf("%d / %d clues solved", p.SolvedClues, p.TotalClues)
}

// ClueItem is one entry of a clue list as the viewers display it.
type ClueItem struct {
	ID     grid.ClueID
	Number int
	Text   string
	Solved bool
	Active bool
}

// Label is the printed form "12. Clue text".
func (c ClueItem) Label() string {
	return fmt.Sprintf("%d. %s", c.Number, c.Text)
}

// ClueList builds the display list for one direction: unsolved clues first,
// then solved ones, each group ordered by number.
func ClueList(g *grid.Grid, d grid.Direction, active func(grid.ClueID) bool) []ClueItem {
	m := g.AcrossClues()
	if d == grid.Down {
		m = g.DownClues()
	}
	solved := g.SolvedSet()

	items := make([]ClueItem, 0, m.Len())
	for n, text := range m.All() {
		id := grid.NewClueID(n, d)
		items = append(items, ClueItem{
			ID:     id,
			Number: n,
			Text:   text,
			Solved: solved[id],
			Active: active != nil && active(id),
		})
	}
	slices.SortStableFunc(items, func(a, b ClueItem) int {
		if a.Solved != b.Solved {
			if a.Solved {
				return 1
			}
			return -1
		}
		return cmp.Compare(a.Number, b.Number)
	})
	return items
}

// Wrap breaks text into lines no wider than maxWidth as reported by measure.
// A single word wider than maxWidth gets a line of its own.
func Wrap(text string, maxWidth float64, measure func(string) float64) []string {
	var lines []string
	current := ""
	for _, word := range strings.Fields(text) {
		candidate := strings.TrimSpace(current + " " + word)
		if measure(candidate) > maxWidth && current != "" {
			lines = append(lines, current)
			current = word
			continue
		}
		current = candidate
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// Scroll tracks the clue panel's vertical offset.
type Scroll struct {
	Offset int
	Max    int
}

// SetContent updates the scroll range for content of the given height shown
// in a viewport of visible pixels, clamping the offset.
func (s *Scroll) SetContent(content, visible int) {
	s.Max = max(0, content-visible)
	s.Offset = min(max(s.Offset, 0), s.Max)
}

// By moves the offset by delta, clamped to [0, Max].
func (s *Scroll) By(delta int) {
	s.Offset = min(max(s.Offset+delta, 0), s.Max)
}

// Thumb returns the scrollbar thumb position and height for a track of
// trackHeight pixels starting at top. ok is false when nothing scrolls.
func (s Scroll) Thumb(top, trackHeight int) (y, h int, ok bool) {
	if s.Max <= 0 {
		return 0, 0, false
	}
	ratio := float64(trackHeight) / float64(trackHeight+s.Max)
	h = max(30, int(float64(trackHeight)*ratio))
	y = top + int(float64(trackHeight-h)*float64(s.Offset)/float64(s.Max))
	return y, h, true
}
