package port

import (
	"context"
	"errors"

	"github.com/da-kil/reviewflow/internal/domain/event"
)

var (
	// ErrVersionConflict is returned when an append's expected version does
	// not match the stream's current version. The caller reloads and retries.
	ErrVersionConflict = errors.New("event stream version conflict")

	// ErrStreamNotFound is returned when no events exist for an aggregate id
	ErrStreamNotFound = errors.New("event stream not found")
)

// EventStore is the collaborator contract assumed from persistence: an
// append-only, per-aggregate-ordered log with optimistic concurrency.
type EventStore interface {
	// Append adds events to an aggregate's stream. expectedVersion is the
	// number of events already in the stream; a mismatch returns
	// ErrVersionConflict and appends nothing.
	Append(ctx context.Context, aggregateID string, expectedVersion int, events []event.Event) error

	// Load returns the full ordered event history for an aggregate.
	// Returns ErrStreamNotFound if the stream does not exist.
	Load(ctx context.Context, aggregateID string) ([]event.Event, error)
}
