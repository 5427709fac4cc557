package pubsub

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublish_DeliversInOrder(t *testing.T) {
	bus := New()
	var got []string

	bus.Subscribe(TopicErrorMessage, func(p any) { got = append(got, "first:"+p.(string)) })
	bus.Subscribe(TopicErrorMessage, func(p any) { got = append(got, "second:"+p.(string)) })
	bus.Subscribe(TopicLoadingProgress, func(p any) { got = append(got, "progress") })

	n := bus.Publish(TopicErrorMessage, "boom")

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"first:boom", "second:boom"}, got)
}

func TestPublish_NoSubscribers(t *testing.T) {
	var bus Bus
	assert.Equal(t, 0, bus.Publish(TopicLoadingProgress, 50))
}

func TestUnsubscribe(t *testing.T) {
	bus := New()
	calls := 0

	unsubscribe := bus.Subscribe(TopicLoadingProgress, func(any) { calls++ })
	keep := bus.Subscribe(TopicLoadingProgress, func(any) {})
	defer keep()

	bus.Publish(TopicLoadingProgress, 0)
	unsubscribe()
	unsubscribe()
	bus.Publish(TopicLoadingProgress, 100)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, bus.Subscribers(TopicLoadingProgress))
}

func TestUnsubscribe_LastSubscriberRemovesTopic(t *testing.T) {
	bus := New()
	unsubscribe := bus.Subscribe(TopicErrorMessage, func(any) {})
	unsubscribe()

	assert.Equal(t, 0, bus.Subscribers(TopicErrorMessage))
	assert.Empty(t, bus.subs)
}

func TestHandlerMayUnsubscribeItself(t *testing.T) {
	bus := New()
	calls := 0

	var unsubscribe func()
	unsubscribe = bus.Subscribe(TopicErrorMessage, func(any) {
		calls++
		unsubscribe()
	})

	bus.Publish(TopicErrorMessage, "a")
	bus.Publish(TopicErrorMessage, "b")

	assert.Equal(t, 1, calls)
}

func TestConcurrentPublish(t *testing.T) {
	bus := New()
	var mu sync.Mutex
	total := 0

	bus.Subscribe(TopicLoadingProgress, func(p any) {
		mu.Lock()
		total += p.(int)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bus.Publish(TopicLoadingProgress, 2)
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, total)
}
