package eventbus

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type testEvent struct {
	name string
}

func (e testEvent) Name() string { return e.name }

func TestPublishDeliversToAllSubscribers(t *testing.T) {
	bus := New(zap.NewNop())

	var wg sync.WaitGroup
	wg.Add(2)

	var mu sync.Mutex
	calls := 0

	listener := func(ctx context.Context, event Event) error {
		mu.Lock()
		calls++
		mu.Unlock()
		wg.Done()
		return nil
	}
	bus.Subscribe("order.status_changed", listener)
	bus.Subscribe("order.status_changed", listener)

	bus.Publish(context.Background(), testEvent{name: "order.status_changed"})

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listeners were not invoked in time")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 2, calls)
}

func TestPublishSkipsOtherEvents(t *testing.T) {
	bus := New(zap.NewNop())

	called := make(chan struct{}, 1)
	bus.Subscribe("delivery.completed", func(ctx context.Context, event Event) error {
		called <- struct{}{}
		return nil
	})

	bus.Publish(context.Background(), testEvent{name: "order.status_changed"})

	select {
	case <-called:
		t.Fatal("listener for another event must not fire")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestListenerErrorDoesNotReachPublisher(t *testing.T) {
	bus := New(zap.NewNop())

	done := make(chan struct{}, 1)
	bus.Subscribe("qc.failed", func(ctx context.Context, event Event) error {
		done <- struct{}{}
		return errors.New("listener exploded")
	})

	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), testEvent{name: "qc.failed"})
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("listener was not invoked")
	}
}

func TestPublishWithoutSubscribers(t *testing.T) {
	bus := New(zap.NewNop())
	assert.NotPanics(t, func() {
		bus.Publish(context.Background(), testEvent{name: "nobody.cares"})
	})
}
