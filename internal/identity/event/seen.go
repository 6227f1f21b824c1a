package event

import "sync"

// seenSet remembers the last capacity keys in insertion order. Once full the
// oldest key is forgotten to make room.
type seenSet struct {
	mu    sync.Mutex
	keys  map[string]struct{}
	ring  []string
	next  int
	limit int
}

func newSeenSet(capacity int) *seenSet {
	capacity = max(capacity, 1)
	return &seenSet{
		keys:  make(map[string]struct{}, capacity),
		ring:  make([]string, 0, capacity),
		limit: capacity,
	}
}

// add records key and reports whether it was new.
func (s *seenSet) add(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.keys[key]; ok {
		return false
	}

	if len(s.ring) < s.limit {
		s.ring = append(s.ring, key)
	} else {
		delete(s.keys, s.ring[s.next])
		s.ring[s.next] = key
		s.next = (s.next + 1) % s.limit
	}
	s.keys[key] = struct{}{}
	return true
}

func (s *seenSet) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}
