package event

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/shandysiswandi/goident/internal/identity/entity"
)

type Handler interface {
	Handle(ctx context.Context, event entity.DerivedEvent) error
}

type ConsumerConfig struct {
	Workers     int
	MaxRetries  int
	BaseBackoff time.Duration
	// SeenCapacity bounds how many event ids are remembered for
	// deduplication. Defaults to 4096.
	SeenCapacity int
}

// Consumer drains a Bus with a fixed pool of workers. An event id is handled
// at most once while it is among the last SeenCapacity ids; failed attempts
// are retried with doubling backoff.
type Consumer struct {
	bus         *Bus
	handler     Handler
	workers     int
	maxRetries  int
	baseBackoff time.Duration
	seen        *seenSet
	wg          sync.WaitGroup
}

func NewConsumer(bus *Bus, handler Handler, cfg ConsumerConfig) *Consumer {
	workers := cfg.Workers
	if workers < 1 {
		workers = 2
	}

	maxRetries := max(cfg.MaxRetries, 0)

	baseBackoff := cfg.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = 50 * time.Millisecond
	}

	seenCapacity := cfg.SeenCapacity
	if seenCapacity < 1 {
		seenCapacity = 4096
	}

	return &Consumer{
		seen:        newSeenSet(seenCapacity),
		bus:         bus,
		handler:     handler,
		workers:     workers,
		maxRetries:  maxRetries,
		baseBackoff: baseBackoff,
	}
}

func (c *Consumer) Start() {
	for range c.workers {
		c.wg.Add(1)
		go c.worker()
	}
}

// Stop closes the bus and waits for the queued events to be handled.
func (c *Consumer) Stop(ctx context.Context) error {
	if c.bus != nil {
		c.bus.Close()
		defer func() {
			st := c.bus.Stats()
			slog.Info("derived event bus stopped", "published", st.Published, "rejected", st.Rejected, "pending", st.Pending)
		}()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Consumer) worker() {
	defer c.wg.Done()

	for event := range c.bus.Subscribe() {
		c.processEvent(event)
	}
}

func (c *Consumer) processEvent(event entity.DerivedEvent) {
	if c.handler == nil {
		return
	}

	if event.EventID != "" {
		if !c.seen.add(event.EventID) {
			slog.Info("skip duplicate derived event", "event_id", event.EventID, "uuid", event.UUID)
			return
		}
	}

	backoff := c.baseBackoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.handler.Handle(context.Background(), event)
		if err == nil {
			return
		}

		if attempt == c.maxRetries {
			slog.Error("failed to index derived uuid after retries", "event_id", event.EventID, "uuid", event.UUID, "error", err)
			return
		}

		sleepBackoff(backoff)
		backoff *= 2
	}
}

func sleepBackoff(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
}

// Recorder stores derived events.
type Recorder interface {
	Index(ctx context.Context, event entity.DerivedEvent) error
}

// Indexer is the Handler that records every derived uuid.
type Indexer struct {
	rec Recorder
}

func NewIndexer(rec Recorder) *Indexer {
	return &Indexer{rec: rec}
}

func (i *Indexer) Handle(ctx context.Context, event entity.DerivedEvent) error {
	if event.EventID == "" {
		return ErrMissingEventID
	}

	if err := i.rec.Index(ctx, event); err != nil {
		return err
	}

	slog.Debug("indexed derived uuid", "event_id", event.EventID, "uuid", event.UUID, "variant", event.Variant.String())
	return nil
}
