// Package gui is the ebiten window: the grid on the left, the clue panel on
// the right, and the Start/Quit/Pause controls with a progress bar below.
package gui

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/bodul/xwgrid/internal/autofill"
	"github.com/bodul/xwgrid/internal/config"
	"github.com/bodul/xwgrid/internal/grid"
	"github.com/bodul/xwgrid/internal/session"
	"github.com/bodul/xwgrid/internal/view/layout"
)

// Game implements ebiten.Game over a session.
type Game struct {
	sess   *session.Session
	filler *autofill.Filler
	cfg    config.Config
	log    *log.Logger

	layout layout.Layout
	scroll layout.Scroll
	face   *text.GoXFace
	lines  []panelLine
	// stale is set by session events that change the clue panel.
	stale atomic.Bool

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	watched <-chan struct{}

	mu      sync.Mutex
	fillErr error
}

// NewGame prepares a window for s. The filler shares the session and is
// driven by the Start and Pause buttons.
func NewGame(ctx context.Context, s *session.Session, cfg config.Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	var rows, cols int
	s.Read(func(g *grid.Grid) { rows, cols = g.Rows(), g.Cols() })

	g := &Game{
		sess:   s,
		filler: autofill.New(s, cfg.Fill.Delay, logger),
		cfg:    cfg,
		log:    logger,
		layout: layout.New(rows, cols, cfg.Viewer),
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
	g.ctx, g.cancel = context.WithCancel(ctx)
	g.stale.Store(true)
	g.watched = s.Watch(g.ctx, g.onEvent)
	if cfg.Fill.AutoStart {
		g.start()
	}
	return g
}

// Run opens the window and blocks until it is closed or Quit is pressed.
func Run(ctx context.Context, s *session.Session, cfg config.Config, logger *log.Logger) error {
	g := NewGame(ctx, s, cfg, logger)
	defer g.Close()

	ebiten.SetWindowSize(g.layout.Width, g.layout.Height)
	ebiten.SetWindowTitle(cfg.Viewer.Title)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return g.Err()
}

// Close stops any running fill and the event watcher, and waits for both.
func (g *Game) Close() {
	g.cancel()
	g.wg.Wait()
	<-g.watched
}

// onEvent runs on the watcher goroutine.
func (g *Game) onEvent(e session.Event) {
	switch e.Type {
	case session.EventHighlight, session.EventClueSolved:
		g.stale.Store(true)
	case session.EventCompleted:
		g.stale.Store(true)
		g.log.Printf("gui: puzzle complete, %d / %d clues solved", e.Progress.SolvedClues, e.Progress.TotalClues)
	}
}

// Err returns the error that ended the last fill, if any. Cancellation is
// not an error.
func (g *Game) Err() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fillErr
}

func (g *Game) start() {
	if g.filler.Running() {
		return
	}
	g.filler.Resume()
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		res, err := g.filler.Run(g.ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			g.log.Printf("gui: fill stopped: %v", err)
			g.mu.Lock()
			g.fillErr = err
			g.mu.Unlock()
			return
		}
		g.log.Printf("gui: fill placed %d letters", res.Placed)
	}()
}

// Update handles one tick of input.
func (g *Game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.filler.Toggle()
	}

	x, y := ebiten.CursorPosition()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case g.layout.Start.Contains(x, y):
			g.start()
		case g.layout.Quit.Contains(x, y):
			return ebiten.Termination
		case g.layout.Pause.Contains(x, y):
			g.filler.Toggle()
		}
	}

	if g.stale.CompareAndSwap(true, false) {
		g.lines = g.panelLines()
		g.scroll.SetContent(len(g.lines)*lineHeight, g.layout.Panel.H)
	}
	if _, dy := ebiten.Wheel(); dy != 0 && g.layout.Panel.Contains(x, y) {
		g.scroll.By(-int(dy * float64(g.cfg.Viewer.ScrollSpeed)))
	}
	return nil
}

// Layout keeps the logical screen at the computed window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.layout.Width, g.layout.Height
}
