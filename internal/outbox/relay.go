package outbox

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nikolayk812/shopcheckout/internal/port"
)

const defaultBatchSize = 100

// Relay moves committed outbox rows to the publisher. Delivery is at least
// once: a row is marked sent only after a successful publish.
type Relay struct {
	repo      port.OutboxRepository
	publisher Publisher
	interval  time.Duration
	batchSize int
	logger    *slog.Logger
}

func NewRelay(repo port.OutboxRepository, publisher Publisher, interval time.Duration, logger *slog.Logger) *Relay {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Relay{
		repo:      repo,
		publisher: publisher,
		interval:  interval,
		batchSize: defaultBatchSize,
		logger:    logger.With("component", "outbox_relay"),
	}
}

// Run flushes on every tick until ctx is done.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.Flush(ctx); err != nil && ctx.Err() == nil {
				r.logger.Error("outbox flush failed", "error", err)
			}
		}
	}
}

// Flush publishes one batch of pending events and returns how many were
// marked sent. It stops at the first failure so events keep their order.
func (r *Relay) Flush(ctx context.Context) (int, error) {
	events, err := r.repo.FetchPending(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("repo.FetchPending: %w", err)
	}

	sent := 0
	for _, event := range events {
		if err := r.publisher.Publish(ctx, event); err != nil {
			return sent, fmt.Errorf("publisher.Publish %s: %w", event.EventID, err)
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			return sent, fmt.Errorf("repo.MarkSent %d: %w", event.ID, err)
		}
		sent++
	}

	if sent > 0 {
		r.logger.Debug("outbox flushed", "sent", sent)
	}
	return sent, nil
}
