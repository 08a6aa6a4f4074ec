package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"jobspring-backend/internal/domain"
)

type outboxRepo struct {
	db Queryer
}

// NewOutboxRepository creates the durable event queue backing the lifecycle
// propagator.
func NewOutboxRepository(db Queryer) domain.OutboxRepository {
	return &outboxRepo{db: db}
}

// Enqueue writes a pending event row. Callers run it inside the producing
// transaction via TxManager, so the event is durable exactly when the state
// change it describes is.
func (r *outboxRepo) Enqueue(ctx context.Context, eventType string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("outbox: marshal %s payload: %w", eventType, err)
	}
	query := `INSERT INTO outbox_events (event_type, payload, status, attempts, created_at)
              VALUES ($1, $2, $3, 0, NOW())`
	_, err = queryerFromContext(ctx, r.db).Exec(ctx, query, eventType, body, domain.OutboxStatusPending)
	return err
}

func (r *outboxRepo) FetchPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	query := `
		SELECT id, event_type, payload, status, attempts, created_at, delivered_at, last_error
		FROM outbox_events
		WHERE status = $1
		ORDER BY id
		LIMIT $2`

	rows, err := queryerFromContext(ctx, r.db).Query(ctx, query, domain.OutboxStatusPending, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.OutboxEvent
	for rows.Next() {
		var e domain.OutboxEvent
		if err := rows.Scan(&e.ID, &e.EventType, &e.Payload, &e.Status, &e.Attempts, &e.CreatedAt, &e.DeliveredAt, &e.LastError); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *outboxRepo) MarkDelivered(ctx context.Context, id int64) error {
	query := `UPDATE outbox_events SET status = $2, delivered_at = NOW() WHERE id = $1`
	result, err := queryerFromContext(ctx, r.db).Exec(ctx, query, id, domain.OutboxStatusDelivered)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecordFailure keeps the row pending until maxAttempts is used up, then
// dead-letters it so delivery cannot loop forever on a poisoned event.
func (r *outboxRepo) RecordFailure(ctx context.Context, id int64, lastError string, maxAttempts int) error {
	query := `
		UPDATE outbox_events
		SET attempts = attempts + 1,
		    last_error = $2,
		    status = CASE WHEN attempts + 1 >= $3 THEN $4 ELSE $5 END
		WHERE id = $1`
	result, err := queryerFromContext(ctx, r.db).Exec(ctx, query,
		id, lastError, maxAttempts, domain.OutboxStatusFailed, domain.OutboxStatusPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
