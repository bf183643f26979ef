package persistence

import (
	"context"
	"fmt"
	"sync"

	"github.com/da-kil/reviewflow/internal/application/port"
	"github.com/da-kil/reviewflow/internal/domain/event"
)

// MemoryEventStore is an in-memory EventStore used by tests and local runs.
// It applies the same optimistic versioning discipline as the SQLite store.
type MemoryEventStore struct {
	mu      sync.RWMutex
	streams map[string][]event.Event
}

// NewMemoryEventStore creates an empty in-memory store
func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{streams: make(map[string][]event.Event)}
}

// Append adds events to an aggregate's stream under an expected version
func (s *MemoryEventStore) Append(_ context.Context, aggregateID string, expectedVersion int, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stream := s.streams[aggregateID]
	if len(stream) != expectedVersion {
		return fmt.Errorf("%w: expected %d, stream at %d",
			port.ErrVersionConflict, expectedVersion, len(stream))
	}
	s.streams[aggregateID] = append(stream, events...)
	return nil
}

// Load returns the full ordered event history for an aggregate
func (s *MemoryEventStore) Load(_ context.Context, aggregateID string) ([]event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream, ok := s.streams[aggregateID]
	if !ok || len(stream) == 0 {
		return nil, fmt.Errorf("%w: %s", port.ErrStreamNotFound, aggregateID)
	}
	out := make([]event.Event, len(stream))
	copy(out, stream)
	return out, nil
}
