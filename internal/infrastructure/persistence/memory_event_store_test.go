package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/da-kil/reviewflow/internal/application/port"
	"github.com/da-kil/reviewflow/internal/domain/event"
	"github.com/da-kil/reviewflow/internal/domain/workflow"
)

func testEvents(aggregateID string, n int) []event.Event {
	at := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	out := make([]event.Event, 0, n)
	out = append(out, &event.AssignmentCreated{
		Base:       event.NewBase(aggregateID, at),
		TemplateID: "tpl-1",
		EmployeeID: "emp-1",
		SectionIDs: []string{"s1"},
	})
	for i := 1; i < n; i++ {
		out = append(out, &event.WorkStarted{
			Base: event.NewBase(aggregateID, at.Add(time.Duration(i)*time.Minute)),
			Role: workflow.RoleEmployee,
		})
	}
	return out
}

func TestMemoryStoreAppendAndLoad(t *testing.T) {
	store := NewMemoryEventStore()
	ctx := context.Background()

	events := testEvents("agg-1", 3)
	require.NoError(t, store.Append(ctx, "agg-1", 0, events))

	loaded, err := store.Load(ctx, "agg-1")
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	for i, evt := range loaded {
		assert.Equal(t, events[i].EventID(), evt.EventID())
		assert.Equal(t, "agg-1", evt.AggregateID())
	}
}

func TestMemoryStoreVersionConflict(t *testing.T) {
	store := NewMemoryEventStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "agg-1", 0, testEvents("agg-1", 2)))

	// A stale writer expecting the old version is rejected
	err := store.Append(ctx, "agg-1", 0, testEvents("agg-1", 1))
	assert.ErrorIs(t, err, port.ErrVersionConflict)

	// The stream is untouched by the failed append
	loaded, err := store.Load(ctx, "agg-1")
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	// The writer at the current version succeeds
	assert.NoError(t, store.Append(ctx, "agg-1", 2, testEvents("agg-1", 1)))
}

func TestMemoryStoreLoadUnknownStream(t *testing.T) {
	store := NewMemoryEventStore()

	_, err := store.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, port.ErrStreamNotFound)
}

func TestMemoryStoreIsolatesStreams(t *testing.T) {
	store := NewMemoryEventStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, "agg-1", 0, testEvents("agg-1", 2)))
	require.NoError(t, store.Append(ctx, "agg-2", 0, testEvents("agg-2", 1)))

	a, err := store.Load(ctx, "agg-1")
	require.NoError(t, err)
	b, err := store.Load(ctx, "agg-2")
	require.NoError(t, err)

	assert.Len(t, a, 2)
	assert.Len(t, b, 1)
}
