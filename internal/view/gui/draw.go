package gui

import (
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/bodul/xwgrid/internal/grid"
	"github.com/bodul/xwgrid/internal/view/layout"
)

const (
	lineHeight     = 18
	scrollbarWidth = 8
)

var (
	colorBackground = color.RGBA{255, 255, 255, 255}
	colorInk        = color.RGBA{0, 0, 0, 255}
	colorGridLine   = color.RGBA{60, 60, 60, 255}
	colorHighlight  = color.RGBA{255, 240, 150, 255}
	colorSolved     = color.RGBA{150, 150, 150, 255}
	colorActive     = color.RGBA{190, 90, 0, 255}
	colorHeader     = color.RGBA{30, 60, 140, 255}
	colorButton     = color.RGBA{200, 200, 200, 255}
	colorButtonEdge = color.RGBA{100, 100, 100, 255}
	colorBarTrack   = color.RGBA{220, 220, 220, 255}
	colorBarFill    = color.RGBA{60, 170, 90, 255}
	colorScrollbar  = color.RGBA{170, 170, 170, 255}
)

type panelLine struct {
	text string
	clr  color.Color
}

// panelLines flattens both clue lists into wrapped, coloured lines.
func (g *Game) panelLines() []panelLine {
	var lines []panelLine
	maxWidth := float64(g.layout.Panel.W - scrollbarWidth - 4)
	measure := func(s string) float64 {
		w, _ := text.Measure(s, g.face, lineHeight)
		return w
	}

	active := make(map[grid.ClueID]bool)
	for _, id := range g.sess.Active() {
		active[id] = true
	}
	isActive := func(id grid.ClueID) bool { return active[id] }

	g.sess.Read(func(gr *grid.Grid) {
		for _, d := range []grid.Direction{grid.Across, grid.Down} {
			if len(lines) > 0 {
				lines = append(lines, panelLine{})
			}
			lines = append(lines, panelLine{text: d.String(), clr: colorHeader})
			for _, it := range layout.ClueList(gr, d, isActive) {
				clr := color.Color(colorInk)
				switch {
				case it.Active:
					clr = colorActive
				case it.Solved:
					clr = colorSolved
				}
				for _, l := range layout.Wrap(it.Label(), maxWidth, measure) {
					lines = append(lines, panelLine{text: l, clr: clr})
				}
			}
		}
	})
	return lines
}

// Draw paints the whole window.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	g.drawGrid(screen)
	g.drawPanel(screen)
	g.drawControls(screen)
}

func (g *Game) drawGrid(screen *ebiten.Image) {
	active := g.sess.Active()

	g.sess.Read(func(gr *grid.Grid) {
		highlighted := make(map[grid.Coord]bool)
		for _, id := range active {
			cells, err := gr.CoordinatesOf(id)
			if err != nil {
				continue
			}
			for _, p := range cells {
				highlighted[p] = true
			}
		}

		for row := range gr.Rows() {
			for col := range gr.Cols() {
				p := grid.Coord{Row: row, Col: col}
				r := g.layout.CellRect(p)
				x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)

				c := gr.At(p)
				if c.IsBlocked() {
					vector.DrawFilledRect(screen, x, y, w, h, colorInk, false)
					continue
				}
				if highlighted[p] {
					vector.DrawFilledRect(screen, x, y, w, h, colorHighlight, false)
				}
				vector.StrokeRect(screen, x, y, w, h, 1, colorGridLine, false)

				if n, ok := gr.NumberAt(row, col); ok {
					g.drawText(screen, strconv.Itoa(n), r.X+2, r.Y+1, colorInk)
				}
				if letter, ok := c.Letter(); ok {
					s := string(letter)
					tw, th := text.Measure(s, g.face, lineHeight)
					g.drawText(screen, s, r.X+(r.W-int(tw))/2, r.Y+(r.H-int(th))/2+4, colorInk)
				}
			}
		}
	})
}

func (g *Game) drawPanel(screen *ebiten.Image) {
	p := g.layout.Panel
	top := p.Y - g.scroll.Offset
	for i, l := range g.lines {
		y := top + i*lineHeight
		if y+lineHeight <= p.Y || y >= p.Y+p.H || l.text == "" {
			continue
		}
		g.drawText(screen, l.text, p.X, y, l.clr)
	}

	if y, h, ok := g.scroll.Thumb(p.Y, p.H); ok {
		x := float32(p.X + p.W - scrollbarWidth)
		vector.DrawFilledRect(screen, x, float32(y), scrollbarWidth, float32(h), colorScrollbar, false)
	}
}

func (g *Game) drawControls(screen *ebiten.Image) {
	pauseLabel := "Pause"
	if g.filler.Paused() {
		pauseLabel = "Resume"
	}
	g.drawButton(screen, g.layout.Start, "Start")
	g.drawButton(screen, g.layout.Quit, "Quit")
	g.drawButton(screen, g.layout.Pause, pauseLabel)

	progress := g.sess.Progress()
	bar := g.layout.Bar
	vector.DrawFilledRect(screen, float32(bar.X), float32(bar.Y), float32(bar.W), float32(bar.H), colorBarTrack, false)
	fill := layout.BarFill(bar.W, progress.Percent)
	vector.DrawFilledRect(screen, float32(bar.X), float32(bar.Y), float32(fill), float32(bar.H), colorBarFill, false)
	g.drawText(screen, layout.PercentLabel(progress.Percent), bar.X+bar.W+10, bar.Y+3, colorInk)
	g.drawText(screen, layout.SolvedLabel(progress), bar.X, g.layout.StatusY, colorInk)
}

func (g *Game) drawButton(screen *ebiten.Image, r layout.Rect, label string) {
	x, y, w, h := float32(r.X), float32(r.Y), float32(r.W), float32(r.H)
	vector.DrawFilledRect(screen, x, y, w, h, colorButton, false)
	vector.StrokeRect(screen, x, y, w, h, 1, colorButtonEdge, false)
	tw, th := text.Measure(label, g.face, lineHeight)
	g.drawText(screen, label, r.X+(r.W-int(tw))/2, r.Y+(r.H-int(th))/2+3, colorInk)
}

func (g *Game) drawText(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, g.face, op)
}
