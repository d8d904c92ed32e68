package port

import (
	"context"

	"github.com/nikolayk812/shopcheckout/internal/domain"
)

type OutboxRepository interface {
	Insert(ctx context.Context, event domain.OutboxEvent) error
	FetchPending(ctx context.Context, limit int) ([]domain.OutboxEvent, error)
	MarkSent(ctx context.Context, id int64) error
}
