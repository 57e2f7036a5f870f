package view

import (
	"context"
	"sync"
)

// Observable holds the latest value of some state and notifies watchers when
// it changes. Watchers only ever see the most recent value; intermediate
// values are dropped if a watcher falls behind.
type Observable[T any] struct {
	mu       sync.Mutex
	value    T
	watchers map[chan T]struct{}
}

// NewObservable returns an Observable holding initial.
func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{
		value:    initial,
		watchers: make(map[chan T]struct{}),
	}
}

// Value returns the current value.
func (o *Observable[T]) Value() T {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.value
}

// Set replaces the current value.
func (o *Observable[T]) Set(v T) {
	o.Update(func(T) T { return v })
}

// Update replaces the current value with fn applied to it and returns the
// new value. fn runs with the Observable locked and must not call back into it.
func (o *Observable[T]) Update(fn func(T) T) T {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.value = fn(o.value)
	for ch := range o.watchers {
		offer(ch, o.value)
	}
	return o.value
}

// Watch returns a channel that receives the current value immediately and
// then every later value, coalesced. The channel is closed when ctx is done.
func (o *Observable[T]) Watch(ctx context.Context) <-chan T {
	ch := make(chan T, 1)

	o.mu.Lock()
	ch <- o.value
	o.watchers[ch] = struct{}{}
	o.mu.Unlock()

	go func() {
		<-ctx.Done()
		o.mu.Lock()
		delete(o.watchers, ch)
		close(ch)
		o.mu.Unlock()
	}()

	return ch
}

// offer replaces whatever is buffered in ch with v. Only the holder of the
// Observable's lock sends on ch, so the second send cannot block.
func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
		return
	default:
	}
	select {
	case <-ch:
	default:
	}
	ch <- v
}
