package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/da-kil/reviewflow/internal/application/port"
	"github.com/da-kil/reviewflow/internal/domain/event"
	"github.com/da-kil/reviewflow/pkg/database"
	"go.uber.org/zap"
)

// SQLiteEventStore persists assignment event streams in SQLite. The
// UNIQUE(aggregate_id, version) constraint is what enforces the optimistic
// concurrency discipline: a stale append hits the constraint and is rolled
// back without touching the stream.
type SQLiteEventStore struct {
	db     *database.DB
	logger *zap.Logger
}

// NewSQLiteEventStore creates an event store over an open database
func NewSQLiteEventStore(db *database.DB, logger *zap.Logger) *SQLiteEventStore {
	return &SQLiteEventStore{db: db, logger: logger}
}

// Append adds events to an aggregate's stream under an expected version
func (s *SQLiteEventStore) Append(ctx context.Context, aggregateID string, expectedVersion int, events []event.Event) error {
	if len(events) == 0 {
		return nil
	}

	return s.db.WithTransaction(func(tx *sql.Tx) error {
		var current int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM assignment_events WHERE aggregate_id = ?`,
			aggregateID,
		).Scan(&current)
		if err != nil {
			return fmt.Errorf("failed to read stream version: %w", err)
		}
		if current != expectedVersion {
			s.logger.Warn("Version conflict on append",
				zap.String("aggregate_id", aggregateID),
				zap.Int("expected", expectedVersion),
				zap.Int("actual", current))
			return fmt.Errorf("%w: expected %d, stream at %d",
				port.ErrVersionConflict, expectedVersion, current)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO assignment_events (
				id, aggregate_id, version, event_type, payload, occurred_at
			) VALUES (?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, evt := range events {
			payload, err := event.Marshal(evt)
			if err != nil {
				return err
			}
			_, err = stmt.ExecContext(ctx,
				evt.EventID(),
				aggregateID,
				expectedVersion+i+1,
				evt.EventType().String(),
				payload,
				evt.OccurredAt().UTC().Format(time.RFC3339Nano),
			)
			if err != nil {
				return fmt.Errorf("failed to append event %s: %w", evt.EventType(), err)
			}
		}
		return nil
	})
}

// Load returns the full ordered event history for an aggregate
func (s *SQLiteEventStore) Load(ctx context.Context, aggregateID string) ([]event.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_type, payload
		FROM assignment_events
		WHERE aggregate_id = ?
		ORDER BY version ASC
	`, aggregateID)
	if err != nil {
		return nil, fmt.Errorf("failed to query event stream: %w", err)
	}
	defer rows.Close()

	var history []event.Event
	for rows.Next() {
		var eventType string
		var payload []byte
		if err := rows.Scan(&eventType, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		evt, err := event.Unmarshal(event.Type(eventType), payload)
		if err != nil {
			return nil, err
		}
		history = append(history, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate event rows: %w", err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: %s", port.ErrStreamNotFound, aggregateID)
	}
	return history, nil
}
