package event

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shandysiswandi/goident/internal/identity/entity"
	"github.com/shandysiswandi/goident/internal/pkg/pkguid"
)

type handlerFunc func(ctx context.Context, event entity.DerivedEvent) error

func (h handlerFunc) Handle(ctx context.Context, event entity.DerivedEvent) error {
	return h(ctx, event)
}

type recorderFunc func(ctx context.Context, event entity.DerivedEvent) error

func (r recorderFunc) Index(ctx context.Context, event entity.DerivedEvent) error {
	return r(ctx, event)
}

func TestConsumerRetriesAndIdempotent(t *testing.T) {
	bus := NewBus(10)

	var attempts int32
	done := make(chan struct{})
	handler := handlerFunc(func(ctx context.Context, event entity.DerivedEvent) error {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return errors.New("temporary failure")
		}
		select {
		case <-done:
		default:
			close(done)
		}
		return nil
	})

	consumer := NewConsumer(bus, handler, ConsumerConfig{
		Workers:     1,
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
	})
	consumer.Start()

	event := entity.DerivedEvent{EventID: "evt-1", UUID: "6cb8e707-0fc5-5f55-88d4-d4fed43e64a8", Variant: pkguid.VariantHash}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish event: %v", err)
	}
	if err := bus.Publish(context.Background(), event); err != nil {
		t.Fatalf("publish duplicate: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for handler")
	}

	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestConsumerGivesUpAfterMaxRetries(t *testing.T) {
	bus := NewBus(1)

	var attempts int32
	consumer := NewConsumer(bus, handlerFunc(func(context.Context, entity.DerivedEvent) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("always failing")
	}), ConsumerConfig{Workers: 1, MaxRetries: 1, BaseBackoff: time.Millisecond})
	consumer.Start()

	if err := bus.Publish(context.Background(), entity.DerivedEvent{EventID: "evt-2"}); err != nil {
		t.Fatalf("publish event: %v", err)
	}

	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestBusPublishAfterClose(t *testing.T) {
	bus := NewBus(1)
	bus.Close()
	bus.Close()

	err := bus.Publish(context.Background(), entity.DerivedEvent{EventID: "late"})
	if !errors.Is(err, ErrBusClosed) {
		t.Fatalf("Publish() err = %v, want ErrBusClosed", err)
	}
}

func TestBusPublishHonoursContext(t *testing.T) {
	bus := NewBus(1)
	if err := bus.Publish(context.Background(), entity.DerivedEvent{EventID: "a"}); err != nil {
		t.Fatalf("publish first: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := bus.Publish(ctx, entity.DerivedEvent{EventID: "b"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Publish() err = %v, want deadline exceeded", err)
	}
}

func TestIndexer(t *testing.T) {
	var mu sync.Mutex
	var got []entity.DerivedEvent
	idx := NewIndexer(recorderFunc(func(_ context.Context, event entity.DerivedEvent) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, event)
		return nil
	}))

	if err := idx.Handle(context.Background(), entity.DerivedEvent{}); !errors.Is(err, ErrMissingEventID) {
		t.Fatalf("Handle() err = %v, want ErrMissingEventID", err)
	}

	event := entity.DerivedEvent{EventID: "evt-3", UUID: "u", Source: "s"}
	if err := idx.Handle(context.Background(), event); err != nil {
		t.Fatalf("Handle() err = %v", err)
	}
	if len(got) != 1 || got[0] != event {
		t.Fatalf("recorded %+v, want [%+v]", got, event)
	}
}

func TestBusRejectsEventWithoutID(t *testing.T) {
	bus := NewBus(2)
	if err := bus.Publish(context.Background(), entity.DerivedEvent{UUID: "u"}); !errors.Is(err, ErrMissingEventID) {
		t.Fatalf("Publish() err = %v, want ErrMissingEventID", err)
	}
	if err := bus.Publish(context.Background(), entity.DerivedEvent{EventID: "a"}); err != nil {
		t.Fatalf("Publish() err = %v", err)
	}

	st := bus.Stats()
	if st.Published != 1 || st.Rejected != 1 || st.Pending != 1 {
		t.Fatalf("Stats() = %+v, want 1 published, 1 rejected, 1 pending", st)
	}
}

func TestSeenSetIsBounded(t *testing.T) {
	s := newSeenSet(3)
	for _, key := range []string{"a", "b", "c", "d", "e"} {
		if !s.add(key) {
			t.Fatalf("add(%q) = false, want true", key)
		}
	}
	if got := s.len(); got != 3 {
		t.Fatalf("len() = %d, want 3", got)
	}
	if s.add("e") || s.add("c") {
		t.Fatal("recent keys were not remembered")
	}
	if !s.add("a") {
		t.Fatal("oldest key was not forgotten")
	}
	if got := s.len(); got != 3 {
		t.Fatalf("len() = %d after eviction, want 3", got)
	}
}

func TestConsumerForgetsOldEventIDs(t *testing.T) {
	bus := NewBus(10)

	var mu sync.Mutex
	handled := map[string]int{}
	consumer := NewConsumer(bus, handlerFunc(func(_ context.Context, event entity.DerivedEvent) error {
		mu.Lock()
		defer mu.Unlock()
		handled[event.EventID]++
		return nil
	}), ConsumerConfig{Workers: 1, SeenCapacity: 2})
	consumer.Start()

	for _, id := range []string{"a", "a", "b", "c", "a"} {
		if err := bus.Publish(context.Background(), entity.DerivedEvent{EventID: id}); err != nil {
			t.Fatalf("publish %s: %v", id, err)
		}
	}
	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if handled["a"] != 2 || handled["b"] != 1 || handled["c"] != 1 {
		t.Fatalf("handled = %v, want a:2 b:1 c:1", handled)
	}
	if got := consumer.seen.len(); got != 2 {
		t.Fatalf("seen ids = %d, want 2", got)
	}
}
