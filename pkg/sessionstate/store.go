package sessionstate

import (
	"sync"
)

// Message is the current session-error value. A nil *Message means no
// invalidation is known.
type Message struct {
	Text string
}

// Store is the single slot for the current session-error message.
// Writes are plain value replacements, last write wins; the mutex only
// makes the replacement and the subscriber fan-out race-free.
type Store struct {
	mu      sync.RWMutex
	current *Message
	subs    map[uint64]chan *Message
	nextSub uint64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		subs: make(map[uint64]chan *Message),
	}
}

// Set records a session-error message, overwriting any prior one.
func (s *Store) Set(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Message{Text: text}
	s.notify(s.current)
}

// Clear resets the slot to "no known invalidation". Called after a
// fresh successful authentication.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	s.notify(nil)
}

// Current returns the current message, or nil when the session is not
// known to be invalid.
func (s *Store) Current() *Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Subscribe registers a change listener. Every Set and Clear delivers
// the new value on the returned channel; a slow consumer only ever
// misses intermediate values, never the latest one. The cancel
// function must be called when the consumer goes away.
func (s *Store) Subscribe() (<-chan *Message, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++

	ch := make(chan *Message, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// notify pushes the latest value to every subscriber. Callers hold the
// write lock. A full channel is drained first so the buffered slot
// always ends up holding the most recent value.
func (s *Store) notify(m *Message) {
	for _, ch := range s.subs {
		select {
		case ch <- m:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- m
		}
	}
}
