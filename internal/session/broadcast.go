package session

import "sync"

// Broadcaster carries the single named "feed data changed" signal. It has
// no payload: a subscriber reacts by resetting its own loader to page one,
// so no mutable state crosses component boundaries.
type Broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[int]func())}
}

// Subscribe registers a handler and returns its unsubscribe func.
func (b *Broadcaster) Subscribe(handler func()) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish notifies all current subscribers. Handlers run outside the lock
// so a subscriber may unsubscribe itself.
func (b *Broadcaster) Publish() {
	b.mu.Lock()
	handlers := make([]func(), 0, len(b.subs))
	for _, handler := range b.subs {
		handlers = append(handlers, handler)
	}
	b.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
}
