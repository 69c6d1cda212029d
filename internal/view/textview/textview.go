// Package textview renders a grid and its clues for a terminal.
package textview

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/bodul/xwgrid/internal/grid"
	"github.com/bodul/xwgrid/internal/view/layout"
)

const (
	barCells     = 30
	defaultWidth = 48
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	solvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	gridStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

// Options tunes the text display.
type Options struct {
	Title string
	// ClueWidth wraps clue text at this many columns. Zero means 48.
	ClueWidth int
	// Active reports whether a clue is highlighted. May be nil.
	Active func(grid.ClueID) bool
}

// Render draws the grid inside a frame, the Across and Down lists with
// solved clues dimmed, and the progress lines.
func Render(g *grid.Grid, opts Options) string {
	width := opts.ClueWidth
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder
	if opts.Title != "" {
		b.WriteString(titleStyle.Render(opts.Title))
		b.WriteString("\n")
	}
	if g.Rows() > 0 {
		b.WriteString(gridStyle.Render(strings.TrimSuffix(g.Render(), "\n")))
		b.WriteString("\n")
	}

	across := clueColumn("Across", layout.ClueList(g, grid.Across, opts.Active), width)
	down := clueColumn("Down", layout.ClueList(g, grid.Down, opts.Active), width)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, across, "   ", down))
	b.WriteString("\n\n")

	p := g.Progress()
	b.WriteString(ProgressBar(p.Percent, barCells))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(layout.SolvedLabel(p)))
	b.WriteString("\n")
	return b.String()
}

func clueColumn(title string, items []layout.ClueItem, width int) string {
	lines := []string{headerStyle.Render(title)}
	for _, it := range items {
		style := lipgloss.NewStyle()
		switch {
		case it.Active:
			style = activeStyle
		case it.Solved:
			style = solvedStyle
		}
		wrapped := layout.Wrap(it.Label(), float64(width), func(s string) float64 {
			return float64(lipgloss.Width(s))
		})
		for _, l := range wrapped {
			lines = append(lines, style.Render(l))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// ProgressBar draws a bar of n cells followed by the percentage, for example
// "[#########.....................] 30%".
func ProgressBar(percent float64, n int) string {
	filled := layout.BarFill(n, percent)
	return fmt.Sprintf("[%s%s] %s",
		strings.Repeat("#", filled),
		strings.Repeat(".", n-filled),
		layout.PercentLabel(percent))
}
