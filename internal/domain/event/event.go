package event

import (
	"time"

	"github.com/google/uuid"
)

// Event is a domain event raised by the assignment aggregate. Events are the
// sole externally observable effect of a successful command: they are what
// gets appended to the store and what reconstructs the aggregate on load.
type Event interface {
	EventType() Type
	EventID() string
	AggregateID() string
	OccurredAt() time.Time
}

// Base carries the envelope fields shared by every event
type Base struct {
	ID           string    `json:"id"`
	AssignmentID string    `json:"assignment_id"`
	Timestamp    time.Time `json:"timestamp"`
}

// EventID returns the event's unique identity
func (b Base) EventID() string {
	return b.ID
}

// AggregateID returns the owning assignment's identity
func (b Base) AggregateID() string {
	return b.AssignmentID
}

// OccurredAt returns the event timestamp
func (b Base) OccurredAt() time.Time {
	return b.Timestamp
}

// NewBase creates an envelope with a fresh ID for the given assignment
func NewBase(assignmentID string, at time.Time) Base {
	return Base{
		ID:           uuid.NewString(),
		AssignmentID: assignmentID,
		Timestamp:    at,
	}
}
