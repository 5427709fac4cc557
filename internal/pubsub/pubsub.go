// Package pubsub is a small synchronous in-process message bus.
package pubsub

import "sync"

// Topic names a stream of messages
type Topic string

const (
	// TopicLoadingProgress carries an int percentage (0-100)
	TopicLoadingProgress Topic = "loading-progress"
	// TopicErrorMessage carries a user facing error string
	TopicErrorMessage Topic = "error-message"
)

// Handler receives the payload of a published message
type Handler func(payload any)

type subscription struct {
	id uint64
	fn Handler
}

// Bus delivers published messages to the subscribers of a topic in
// subscription order. The zero value is ready to use.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Topic][]subscription
}

// New creates an empty bus
func New() *Bus {
	return &Bus{}
}

// Subscribe registers fn for topic and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (b *Bus) Subscribe(topic Topic, fn Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs == nil {
		b.subs = make(map[Topic][]subscription)
	}
	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

func (b *Bus) remove(topic Topic, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == id {
			b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.subs[topic]) == 0 {
		delete(b.subs, topic)
	}
}

// Publish calls every subscriber of topic with payload and returns how many
// were called. Handlers run on the caller's goroutine and may subscribe or
// unsubscribe without deadlocking.
func (b *Bus) Publish(topic Topic, payload any) int {
	b.mu.RLock()
	subs := make([]subscription, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.RUnlock()

	for _, s := range subs {
		s.fn(payload)
	}
	return len(subs)
}

// Subscribers returns the number of handlers registered for topic
func (b *Bus) Subscribers(topic Topic) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[topic])
}
