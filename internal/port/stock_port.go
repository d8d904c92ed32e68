package port

import (
	"context"

	"github.com/google/uuid"
)

type StockLedger interface {
	// TryReserve atomically decrements available stock by quantity and
	// returns the remaining amount, or *domain.InsufficientStockError.
	TryReserve(ctx context.Context, productID uuid.UUID, quantity int32) (int32, error)
}
