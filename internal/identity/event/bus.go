package event

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/shandysiswandi/goident/internal/identity/entity"
)

var (
	ErrBusClosed      = errors.New("event bus is closed")
	ErrMissingEventID = errors.New("missing event id")
)

// BusStats counts what went through a Bus.
type BusStats struct {
	Published uint64
	Rejected  uint64
	Pending   int
}

// Bus is an in-process queue of derived events with a fixed buffer.
type Bus struct {
	mu        sync.RWMutex
	closed    bool
	queue     chan entity.DerivedEvent
	published atomic.Uint64
	rejected  atomic.Uint64
}

func NewBus(buffer int) *Bus {
	return &Bus{queue: make(chan entity.DerivedEvent, max(buffer, 1))}
}

// Publish queues event, waiting for room until ctx is done. The read lock
// spans the send so Close never closes the queue under a sender.
func (b *Bus) Publish(ctx context.Context, event entity.DerivedEvent) error {
	if event.EventID == "" {
		b.rejected.Add(1)
		return ErrMissingEventID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.rejected.Add(1)
		return ErrBusClosed
	}

	select {
	case b.queue <- event:
		b.published.Add(1)
		return nil
	case <-ctx.Done():
		b.rejected.Add(1)
		return ctx.Err()
	}
}

// Subscribe returns the queue. It is closed by Close once drained.
func (b *Bus) Subscribe() <-chan entity.DerivedEvent {
	return b.queue
}

func (b *Bus) Stats() BusStats {
	return BusStats{
		Published: b.published.Load(),
		Rejected:  b.rejected.Load(),
		Pending:   len(b.queue),
	}
}

// Close stops accepting events. Calling it again is a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.queue)
	}
}
