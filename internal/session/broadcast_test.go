package session

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroadcasterSubscribeUnsubscribe(t *testing.T) {
	b := NewBroadcaster()

	s1 := b.Subscribe()
	s2 := b.Subscribe()
	require.Equal(t, 2, b.Count())

	b.Unsubscribe(s1)
	require.Equal(t, 1, b.Count())

	_, open := <-s1.C()
	require.False(t, open, "unsubscribed channel should be closed")

	b.Unsubscribe(s2)
	require.Equal(t, 0, b.Count())
}

func TestBroadcasterDoubleUnsubscribe(t *testing.T) {
	b := NewBroadcaster()
	s := b.Subscribe()
	b.Unsubscribe(s)
	b.Unsubscribe(s) // should not panic
}

func TestPublish(t *testing.T) {
	b := NewBroadcaster()
	s1 := b.Subscribe()
	s2 := b.Subscribe()
	defer b.Unsubscribe(s1)
	defer b.Unsubscribe(s2)

	b.Publish(Event{Type: EventHighlight})

	for _, s := range []*Subscriber{s1, s2} {
		select {
		case e := <-s.C():
			require.Equal(t, EventHighlight, e.Type)
		case <-time.After(100 * time.Millisecond):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestPublishSkipsFullSubscriber(t *testing.T) {
	b := NewBroadcaster()
	s := b.Subscribe()

	for range subscriberBuffer {
		b.Publish(Event{Type: EventCellUpdate})
	}
	// This should not block.
	b.Publish(Event{Type: EventCompleted})

	require.Len(t, s.ch, subscriberBuffer)
	b.Unsubscribe(s)
}

func TestBroadcasterConcurrent(t *testing.T) {
	b := NewBroadcaster()
	var wg sync.WaitGroup

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := b.Subscribe()
			b.Publish(Event{Type: EventCellUpdate})
			b.Count()
			b.Unsubscribe(s)
		}()
	}
	wg.Wait()
	require.Equal(t, 0, b.Count())
}

func TestEventKeepsZeroCoordinates(t *testing.T) {
	raw, err := json.Marshal(Event{Type: EventCellUpdate, Row: 0, Col: 0, Letter: "C"})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Contains(t, got, "row")
	require.Contains(t, got, "col")
	require.Equal(t, 0.0, got["row"])
	require.Equal(t, 0.0, got["col"])
}
