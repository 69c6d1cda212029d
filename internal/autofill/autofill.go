// Package autofill replays the answers stored in a clue table into a session,
// one letter at a time, so viewers can animate a solve. It never infers
// letters: clues without an answer are skipped.
package autofill

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync/atomic"
	"time"
	"unicode"

	"github.com/bodul/xwgrid/internal/grid"
	"github.com/bodul/xwgrid/internal/session"
)

const pausePoll = 20 * time.Millisecond

// ErrRunning is returned when Run is called while a run is in progress.
var ErrRunning = errors.New("autofill: already running")

// Result reports what a run did.
type Result struct {
	Placed  int
	Filled  []grid.ClueID
	Skipped []grid.ClueID
}

// Filler animates answer placement. Pause and Resume may be called from any
// goroutine while Run is in progress.
type Filler struct {
	sess  *session.Session
	delay time.Duration
	log   *log.Logger

	paused  atomic.Bool
	running atomic.Bool
}

// New returns a filler placing one letter every delay. A nil logger discards output.
func New(s *session.Session, delay time.Duration, logger *log.Logger) *Filler {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Filler{sess: s, delay: delay, log: logger}
}

func (f *Filler) Pause() {
	if f.paused.CompareAndSwap(false, true) {
		f.log.Printf("autofill: paused")
	}
}

func (f *Filler) Resume() {
	if f.paused.CompareAndSwap(true, false) {
		f.log.Printf("autofill: resumed")
	}
}

// Toggle flips the paused state and returns the new one.
func (f *Filler) Toggle() bool {
	for {
		old := f.paused.Load()
		if f.paused.CompareAndSwap(old, !old) {
			if old {
				f.log.Printf("autofill: resumed")
			} else {
				f.log.Printf("autofill: paused")
			}
			return !old
		}
	}
}

func (f *Filler) Paused() bool { return f.paused.Load() }
func (f *Filler) Running() bool { return f.running.Load() }

// Run fills every clue with a usable answer, in table order, highlighting the
// clue being filled. It returns early with ctx.Err() when ctx is cancelled;
// letters already placed stay placed.
func (f *Filler) Run(ctx context.Context) (Result, error) {
	if !f.running.CompareAndSwap(false, true) {
		return Result{}, ErrRunning
	}
	defer f.running.Store(false)

	var res Result
	clues := f.sess.Grid().Clues()
	f.log.Printf("autofill: starting %d clues (session %s)", len(clues), f.sess.ID)

	for _, c := range clues {
		letters, ok := answerLetters(c)
		if !ok {
			f.log.Printf("autofill: skipping %s: answer %q does not fit %d cells", c.ID(), c.Answer, c.Len())
			res.Skipped = append(res.Skipped, c.ID())
			continue
		}
		if err := f.sess.Highlight(c.ID()); err != nil {
			return res, err
		}
		for i, p := range c.Cells() {
			if err := f.wait(ctx); err != nil {
				f.log.Printf("autofill: stopped after %d letters: %v", res.Placed, err)
				return res, err
			}
			if err := f.sess.PlaceLetter(p.Row, p.Col, letters[i]); err != nil {
				return res, err
			}
			res.Placed++
		}
		res.Filled = append(res.Filled, c.ID())
	}

	if err := f.sess.Highlight(); err != nil {
		return res, err
	}
	f.log.Printf("autofill: done, %d letters placed, %d clues skipped", res.Placed, len(res.Skipped))
	return res, nil
}

// answerLetters normalises a clue's answer to one rune per cell. Spaces and
// hyphens inside multi-word answers are dropped.
func answerLetters(c grid.Clue) ([]rune, bool) {
	letters := []rune(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' {
			return -1
		}
		return unicode.ToUpper(r)
	}, c.Answer))
	if len(letters) == 0 || len(letters) != c.Len() {
		return nil, false
	}
	for _, r := range letters {
		if !grid.ValidLetter(r) {
			return nil, false
		}
	}
	return letters, true
}

// wait sleeps for one step, extending the sleep while paused.
func (f *Filler) wait(ctx context.Context) error {
	t := time.NewTimer(f.delay)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if !f.paused.Load() {
				return nil
			}
			t.Reset(pausePoll)
		}
	}
}
