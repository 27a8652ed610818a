package stream

import (
	"context"
	"sync"
	"time"
)

// OwnershipEvent describes an artifact changing hands for the event stream.
type OwnershipEvent struct {
	ArtifactID   string    `json:"artifactId"`
	ArtifactName string    `json:"artifactName"`
	FromWizardID *int64    `json:"fromWizardId,omitempty"`
	ToWizardID   int64     `json:"toWizardId"`
	Timestamp    time.Time `json:"timestamp"`
}

// Stream fan-outs ownership events to all active subscribers (SSE clients).
type Stream struct {
	mu   sync.RWMutex
	subs map[int]chan OwnershipEvent
	next int
}

// New initialises an empty stream.
func New() *Stream {
	return &Stream{subs: make(map[int]chan OwnershipEvent)}
}

// Subscribe registers a subscriber and returns a channel which will receive
// events. The channel is closed when the provided context ends.
func (s *Stream) Subscribe(ctx context.Context) <-chan OwnershipEvent {
	ch := make(chan OwnershipEvent, 16)

	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = ch
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		delete(s.subs, id)
		close(ch)
		s.mu.Unlock()
	}()

	return ch
}

// Publish fan-outs the event to all subscribers.
func (s *Stream) Publish(evt OwnershipEvent) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- evt:
		default:
			// Drop when subscriber is slow to avoid blocking.
		}
	}
}
