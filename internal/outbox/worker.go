package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"jobspring-backend/internal/domain"
)

// Handler consumes one committed event. Returning nil acknowledges the
// event; any error leaves it pending for redelivery, so handlers must be
// idempotent.
type Handler func(ctx context.Context, event domain.OutboxEvent) error

// Worker polls the outbox table and delivers pending events on an execution
// context decoupled from the requests that produced them. Delivery is
// at-least-once with a bounded number of retries; exhausted events are
// dead-lettered rather than retried forever.
type Worker struct {
	repo        domain.OutboxRepository
	handlers    map[string]Handler
	interval    time.Duration
	batchSize   int
	maxAttempts int
	log         *slog.Logger
}

type Config struct {
	PollInterval time.Duration
	BatchSize    int
	MaxAttempts  int
}

func NewWorker(repo domain.OutboxRepository, cfg Config, log *slog.Logger) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 5
	}
	return &Worker{
		repo:        repo,
		handlers:    make(map[string]Handler),
		interval:    cfg.PollInterval,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
		log:         log,
	}
}

// Handle registers the handler for an event type. Must be called before Run.
func (w *Worker) Handle(eventType string, h Handler) {
	w.handlers[eventType] = h
}

// Run polls until the context is cancelled. Worker failures are logged and
// never surface to the request that enqueued the event.
func (w *Worker) Run(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if _, err := w.DrainOnce(ctx); err != nil {
				w.log.Error("outbox poll failed", "error", err)
			}
		}
	}
}

// DrainOnce delivers one batch of pending events and reports how many were
// acknowledged. Exported so tests and shutdown paths can flush synchronously.
func (w *Worker) DrainOnce(ctx context.Context) (int, error) {
	events, err := w.repo.FetchPending(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	delivered := 0
	for _, e := range events {
		if err := w.deliver(ctx, e); err != nil {
			w.log.Warn("outbox delivery failed",
				"event_id", e.ID, "event_type", e.EventType, "attempts", e.Attempts+1, "error", err)
			if recErr := w.repo.RecordFailure(ctx, e.ID, err.Error(), w.maxAttempts); recErr != nil {
				w.log.Error("outbox failure bookkeeping failed", "event_id", e.ID, "error", recErr)
			}
			continue
		}
		if err := w.repo.MarkDelivered(ctx, e.ID); err != nil {
			// The side effect is applied; redelivery is safe because every
			// handler is idempotent.
			w.log.Error("outbox ack failed", "event_id", e.ID, "error", err)
			continue
		}
		delivered++
	}
	return delivered, nil
}

func (w *Worker) deliver(ctx context.Context, e domain.OutboxEvent) error {
	h, ok := w.handlers[e.EventType]
	if !ok {
		return fmt.Errorf("no handler for event type %q", e.EventType)
	}
	return h(ctx, e)
}
