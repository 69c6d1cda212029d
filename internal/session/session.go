// Package session guards a grid shared between a background letter writer
// and a render loop. Every placement and every read takes the session lock.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"slices"
	"sync"
	"time"

	"github.com/bodul/xwgrid/internal/grid"
)

// Session owns a grid for the lifetime of one viewer run.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu     sync.RWMutex
	grid   *grid.Grid
	active map[grid.ClueID]struct{}

	events *Broadcaster
}

// New wraps g. The caller must not touch g directly afterwards.
func New(g *grid.Grid) *Session {
	return &Session{
		ID:        generateID(),
		CreatedAt: time.Now(),
		grid:      g,
		active:    make(map[grid.ClueID]struct{}),
		events:    NewBroadcaster(),
	}
}

// PlaceLetter writes r at (row, col) and publishes the resulting events.
// Placement errors come from grid.PlaceLetter unchanged.
func (s *Session) PlaceLetter(row, col int, r rune) error {
	s.mu.Lock()
	before := s.grid.SolvedSet()
	if err := s.grid.PlaceLetter(row, col, r); err != nil {
		s.mu.Unlock()
		return err
	}
	letter, _ := s.grid.At(grid.Coord{Row: row, Col: col}).Letter()
	progress := s.grid.Progress()

	var newlySolved []grid.ClueID
	for _, id := range s.grid.SolvedClueIDs() {
		if !before[id] {
			newlySolved = append(newlySolved, id)
		}
	}
	complete := s.grid.IsFullySolved()
	s.mu.Unlock()

	s.events.Publish(Event{Type: EventCellUpdate, Row: row, Col: col, Letter: string(letter), Progress: progress})
	if len(newlySolved) > 0 {
		s.events.Publish(Event{Type: EventClueSolved, Clues: newlySolved, Progress: progress})
	}
	if complete && len(newlySolved) > 0 {
		s.events.Publish(Event{Type: EventCompleted, Progress: progress})
	}
	return nil
}

// Highlight replaces the set of active clues. Unknown ids are rejected and
// leave the previous set in place.
func (s *Session) Highlight(ids ...grid.ClueID) error {
	s.mu.Lock()
	for _, id := range ids {
		if _, ok := s.grid.Clue(id); !ok {
			s.mu.Unlock()
			return grid.ErrUnknownClue
		}
	}
	clear(s.active)
	for _, id := range ids {
		s.active[id] = struct{}{}
	}
	progress := s.grid.Progress()
	s.mu.Unlock()

	s.events.Publish(Event{Type: EventHighlight, Clues: slices.Clone(ids), Progress: progress})
	return nil
}

// Active returns the highlighted clue ids, sorted.
func (s *Session) Active() []grid.ClueID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeLocked()
}

func (s *Session) activeLocked() []grid.ClueID {
	ids := make([]grid.ClueID, 0, len(s.active))
	for id := range s.active {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IsActive reports whether id is highlighted.
func (s *Session) IsActive(id grid.ClueID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.active[id]
	return ok
}

// Read runs fn with the grid under the read lock. fn must not retain g or
// call back into the session.
func (s *Session) Read(fn func(g *grid.Grid)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.grid)
}

// Grid returns a copy of the current grid.
func (s *Session) Grid() *grid.Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Clone()
}

// Progress returns the current progress figures.
func (s *Session) Progress() grid.Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Progress()
}

// Subscribe returns a subscriber for this session's events.
func (s *Session) Subscribe() *Subscriber { return s.events.Subscribe() }

// Unsubscribe removes sub.
func (s *Session) Unsubscribe(sub *Subscriber) { s.events.Unsubscribe(sub) }

// Watch calls fn for every event on its own goroutine until ctx is done. The
// subscription is registered before Watch returns. Events already buffered
// when ctx ends are still delivered; the returned channel is closed after the
// last call to fn.
func (s *Session) Watch(ctx context.Context, fn func(Event)) <-chan struct{} {
	sub := s.Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case e, ok := <-sub.C():
				if !ok {
					return
				}
				fn(e)
			case <-ctx.Done():
				s.Unsubscribe(sub)
				for e := range sub.C() {
					fn(e)
				}
				return
			}
		}
	}()
	return done
}

func generateID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return hex.EncodeToString(b)
}
