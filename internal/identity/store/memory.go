package store

import (
	"context"
	"slices"
	"sync"

	"github.com/shandysiswandi/goident/internal/identity/entity"
	"github.com/shandysiswandi/goident/internal/identity/usecase"
	"github.com/shandysiswandi/goident/internal/pkg/pkgerror"
)

// InMemoryStore keeps identifiers keyed by UUID, listed in the order they
// were first indexed.
type InMemoryStore struct {
	mu    sync.RWMutex
	ids   map[string]*entity.Identifier
	order []string
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		ids: make(map[string]*entity.Identifier),
	}
}

// Index records event. The first event for a UUID fixes its variant; later
// ones add their source when it is new.
func (s *InMemoryStore) Index(ctx context.Context, event entity.DerivedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.ids[event.UUID]
	if !ok {
		rec = &entity.Identifier{
			UUID:      event.UUID,
			Variant:   event.Variant,
			FirstSeen: event.At,
		}
		s.ids[event.UUID] = rec
		s.order = append(s.order, event.UUID)
	}

	if event.Source != "" && !slices.Contains(rec.Sources, event.Source) {
		rec.Sources = append(rec.Sources, event.Source)
	}
	rec.FirstSeen = min(rec.FirstSeen, event.At)
	rec.LastSeen = max(rec.LastSeen, event.At)
	rec.Count++

	return nil
}

func (s *InMemoryStore) Get(ctx context.Context, uuid string) (entity.Identifier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.ids[uuid]
	if !ok {
		return entity.Identifier{}, pkgerror.ErrNotFound
	}

	return rec.Clone(), nil
}

func (s *InMemoryStore) List(ctx context.Context, filter usecase.ListFilter, page, pageSize int) ([]entity.Identifier, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := 0
	start := (page - 1) * pageSize
	end := start + pageSize
	items := make([]entity.Identifier, 0, pageSize)

	for _, key := range s.order {
		rec := s.ids[key]
		if !filter.Matches(*rec) {
			continue
		}

		if total >= start && total < end {
			items = append(items, rec.Clone())
		}
		total++
	}

	return items, total, nil
}
