package textview

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/require"

	"github.com/bodul/xwgrid/internal/grid"
	"github.com/bodul/xwgrid/internal/view/layout"
)

func miniGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.New(grid.NewTable(
		grid.Span(1, 0, 0, 0, 2, "Feline"),
		grid.Span(1, 0, 0, 2, 0, "Dairy animal"),
		grid.Span(2, 0, 2, 2, 2, "Foot digit"),
	))
	require.NoError(t, err)
	return g
}

func TestProgressBar(t *testing.T) {
	require.Equal(t, "[..........] 0%", ProgressBar(0, 10))
	require.Equal(t, "[#####.....] 50%", ProgressBar(50, 10))
	require.Equal(t, "[##########] 100%", ProgressBar(100, 10))
}

func TestRenderListsCluesAndProgress(t *testing.T) {
	g := miniGrid(t)
	for i, r := range "CAT" {
		require.NoError(t, g.PlaceLetter(0, i, r))
	}

	out := Render(g, Options{Title: "Mini"})
	require.Contains(t, out, "Mini")
	require.Contains(t, out, "C A T")
	require.Contains(t, out, "Across")
	require.Contains(t, out, "Down")
	require.Contains(t, out, "1. Feline")
	require.Contains(t, out, "1. Dairy animal")
	require.Contains(t, out, "2. Foot digit")
	require.Contains(t, out, "42%")
	require.Contains(t, out, "1 / 3 clues solved")
}

func TestRenderWrapsLongClues(t *testing.T) {
	g, err := grid.New(grid.NewTable(
		grid.Span(1, 0, 0, 0, 4, "A rather long clue that cannot fit on one narrow line"),
	))
	require.NoError(t, err)

	out := Render(g, Options{ClueWidth: 20})
	require.Contains(t, out, "1. A rather long")
	require.NotContains(t, out, "1. A rather long clue that")
	require.Contains(t, out, "clue that cannot fit")
	require.Contains(t, out, "on one narrow line")

	column := clueColumn("Across", layout.ClueList(g, grid.Across, nil), 20)
	for _, line := range strings.Split(column, "\n") {
		require.LessOrEqual(t, lipgloss.Width(line), 20, "line %q", line)
	}
}

func TestRenderEmptyGrid(t *testing.T) {
	g, err := grid.New(grid.NewTable())
	require.NoError(t, err)

	out := Render(g, Options{})
	require.Contains(t, out, "0%")
	require.Contains(t, out, "0 / 0 clues solved")
}
