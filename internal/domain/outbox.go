package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Outbox event delivery states.
const (
	OutboxStatusPending   = 0
	OutboxStatusDelivered = 1
	OutboxStatusFailed    = 2
)

// Event types carried through the outbox.
const (
	EventJobDeactivated       = "job.deactivated"
	EventApplicationSubmitted = "application.submitted"
)

// OutboxEvent is an immutable fact queued in the same transaction as the
// state change that produced it. A worker delivers pending rows strictly
// after that transaction commits, so a rollback never leaks an event and a
// slow consumer never delays the producing request.
type OutboxEvent struct {
	ID          int64
	EventType   string
	Payload     json.RawMessage
	Status      int
	Attempts    int
	CreatedAt   time.Time
	DeliveredAt *time.Time
	LastError   *string
}

// JobDeactivatedPayload records a posting leaving the active state.
type JobDeactivatedPayload struct {
	CompanyID int64 `json:"company_id"`
	JobID     int64 `json:"job_id"`
}

// ApplicationSubmittedPayload records a new application, with enough joined
// data for the notification mail to be built without further lookups.
type ApplicationSubmittedPayload struct {
	ApplicationID   int64  `json:"application_id"`
	JobID           int64  `json:"job_id"`
	CompanyID       int64  `json:"company_id"`
	JobTitle        string `json:"job_title"`
	ApplicantUserID int64  `json:"applicant_user_id"`
	ApplicantName   string `json:"applicant_name"`
	ApplicantEmail  string `json:"applicant_email"`
}

type OutboxRepository interface {
	// Enqueue inserts a pending event. Must be called inside the producing
	// transaction so the event commits or rolls back with it.
	Enqueue(ctx context.Context, eventType string, payload any) error
	FetchPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkDelivered(ctx context.Context, id int64) error
	// RecordFailure bumps the attempt counter and dead-letters the event
	// once maxAttempts is reached.
	RecordFailure(ctx context.Context, id int64, lastError string, maxAttempts int) error
}
