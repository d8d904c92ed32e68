package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcheckout/internal/db"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
)

type outboxRepository struct {
	q *db.Queries
}

func NewOutbox(pool *pgxpool.Pool) port.OutboxRepository {
	return &outboxRepository{q: db.New(pool)}
}

func NewOutboxWithTx(tx pgx.Tx) port.OutboxRepository {
	return &outboxRepository{q: db.New(tx)}
}

func (r *outboxRepository) Insert(ctx context.Context, event domain.OutboxEvent) error {
	err := r.q.InsertOutboxEvent(ctx, db.InsertOutboxEventParams{
		EventID: event.EventID,
		Topic:   event.Topic,
		Key:     event.Key,
		Payload: event.Payload,
	})
	if err != nil {
		return fmt.Errorf("q.InsertOutboxEvent: %w", err)
	}

	return nil
}

func (r *outboxRepository) FetchPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error) {
	rows, err := r.q.FetchPendingOutbox(ctx, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("q.FetchPendingOutbox: %w", err)
	}

	events := make([]domain.OutboxEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, domain.OutboxEvent{
			ID:        row.ID,
			EventID:   row.EventID,
			Topic:     row.Topic,
			Key:       row.Key,
			Payload:   row.Payload,
			CreatedAt: row.CreatedAt,
		})
	}

	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id int64) error {
	if err := r.q.MarkOutboxSent(ctx, id); err != nil {
		return fmt.Errorf("q.MarkOutboxSent: %w", err)
	}

	return nil
}
