package session

import (
	"sync"

	"github.com/bodul/xwgrid/internal/grid"
)

const subscriberBuffer = 64

// EventType names what changed in a session.
type EventType string

const (
	EventCellUpdate EventType = "cell_update"
	EventHighlight  EventType = "highlight"
	EventClueSolved EventType = "clue_solved"
	EventCompleted  EventType = "completed"
)

// Event is delivered to subscribers after each change.
type Event struct {
	Type     EventType     `json:"type"`
	Row      int           `json:"row"`
	Col      int           `json:"col"`
	Letter   string        `json:"letter,omitempty"`
	Clues    []grid.ClueID `json:"clues,omitempty"`
	Progress grid.Progress `json:"progress"`
}

// Subscriber receives events on C until it is unsubscribed.
type Subscriber struct {
	ch chan Event
}

// C is closed when the subscriber is removed.
func (s *Subscriber) C() <-chan Event { return s.ch }

// Broadcaster fans events out to subscribers. A subscriber whose buffer is
// full misses the event; publishers never block.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[*Subscriber]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[*Subscriber]struct{})}
}

// Subscribe registers a new subscriber.
func (b *Broadcaster) Subscribe() *Subscriber {
	s := &Subscriber{ch: make(chan Event, subscriberBuffer)}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	return s
}

// Unsubscribe removes s and closes its channel. Safe to call twice.
func (b *Broadcaster) Unsubscribe(s *Subscriber) {
	b.mu.Lock()
	if _, ok := b.subs[s]; ok {
		delete(b.subs, s)
		close(s.ch)
	}
	b.mu.Unlock()
}

// Publish delivers e to every subscriber with room for it.
func (b *Broadcaster) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for s := range b.subs {
		select {
		case s.ch <- e:
		default:
			// Slow subscriber, drop.
		}
	}
}

// Count returns the number of subscribers.
func (b *Broadcaster) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
