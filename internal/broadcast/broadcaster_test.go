package broadcast

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
	var zero T
	return zero
}

func assertEmpty[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected broadcast %v", v)
	default:
	}
}

func TestPublishFansOutToAllSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := New[string](4, nil)
	first := b.Subscribe(ctx)
	second := b.Subscribe(ctx)

	b.Publish("a")
	b.Publish("b")

	assert.Equal(t, "a", receive(t, first))
	assert.Equal(t, "b", receive(t, first))
	assert.Equal(t, "a", receive(t, second))
	assert.Equal(t, "b", receive(t, second))
}

func TestPublishWithoutSubscribersIsNoop(t *testing.T) {
	b := New[int](1, nil)
	b.Publish(1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := b.Subscribe(ctx)
	assertEmpty(t, ch)

	b.Publish(2)
	assert.Equal(t, 2, receive(t, ch))
}

func TestPublishDoesNotBlockOnFullSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	b := New[int](1, nil)
	ch := b.Subscribe(ctx)

	done := make(chan struct{})
	go func() {
		b.Publish(1)
		b.Publish(2) // dropped: buffer already full
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Publish blocked on a full subscriber")
	}

	assert.Equal(t, 1, receive(t, ch))
	assertEmpty(t, ch)
}

func TestSubscriptionClosedWhenContextDone(t *testing.T) {
	b := New[int](1, nil)

	ctx, cancel := context.WithCancel(context.Background())
	ch := b.Subscribe(ctx)
	require.Equal(t, 1, b.Subscribers())

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "expected closed channel")
	case <-time.After(time.Second):
		t.Fatal("subscription was not closed")
	}
	assert.Equal(t, 0, b.Subscribers())

	// Publishing after the subscriber left must not panic.
	b.Publish(1)
}

func TestConcurrentPublishAndSubscribe(t *testing.T) {
	b := New[int](DefaultBuffer, nil)

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx, cancel := context.WithCancel(context.Background())
			ch := b.Subscribe(ctx)
			b.Publish(i)
			<-ch
			cancel()
		}(i)
	}
	wg.Wait()

	assert.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 10*time.Millisecond)
}
