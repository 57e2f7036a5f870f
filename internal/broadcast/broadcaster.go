// Package broadcast implements an in-memory, non-blocking multicast channel.
package broadcast

import (
	"context"
	"log/slog"
	"sync"
)

// DefaultBuffer is the per-subscriber buffer used when none is configured.
const DefaultBuffer = 64

// Broadcaster fans published values out to every live subscriber.
//
// Publish never blocks: each subscriber owns a buffered channel, and a value
// is dropped for a subscriber whose buffer is full. Values published before a
// subscriber registers are never replayed to it. Each subscriber receives
// values in publish order.
type Broadcaster[T any] struct {
	mu          sync.RWMutex
	subscribers map[uint64]chan T
	nextID      uint64
	buffer      int
	logger      *slog.Logger
}

// New creates a Broadcaster whose subscribers buffer up to buffer values.
func New[T any](buffer int, logger *slog.Logger) *Broadcaster[T] {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster[T]{
		subscribers: make(map[uint64]chan T),
		buffer:      buffer,
		logger:      logger,
	}
}

// Subscribe registers a new subscriber and returns its channel. The channel
// is closed once ctx is done.
func (b *Broadcaster[T]) Subscribe(ctx context.Context) <-chan T {
	ch := make(chan T, b.buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers[id] = ch
	b.mu.Unlock()

	go func() {
		<-ctx.Done()

		b.mu.Lock()
		delete(b.subscribers, id)
		close(ch)
		b.mu.Unlock()
	}()

	return ch
}

// Publish sends v to every subscriber without waiting for any of them.
func (b *Broadcaster[T]) Publish(v T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- v:
		default:
			b.logger.Debug("dropped broadcast for slow subscriber", "subscriber", id)
		}
	}
}

// Subscribers returns the number of live subscribers.
func (b *Broadcaster[T]) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
