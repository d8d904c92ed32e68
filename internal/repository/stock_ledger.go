package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcheckout/internal/db"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
)

type stockLedger struct {
	q *db.Queries
}

func NewStockLedger(pool *pgxpool.Pool) port.StockLedger {
	return &stockLedger{q: db.New(pool)}
}

func NewStockLedgerWithTx(tx pgx.Tx) port.StockLedger {
	return &stockLedger{q: db.New(tx)}
}

// TryReserve is a single conditional UPDATE: the check and the decrement
// happen under the same row lock, which is held until the surrounding
// transaction ends.
func (l *stockLedger) TryReserve(ctx context.Context, productID uuid.UUID, quantity int32) (int32, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("quantity must be positive")
	}

	remaining, err := l.q.ReserveStock(ctx, db.ReserveStockParams{
		Quantity:  quantity,
		ProductID: productID,
	})
	if errors.Is(err, pgx.ErrNoRows) {
		// either the product is gone or it has less than requested
		return 0, &domain.InsufficientStockError{ProductID: productID}
	}
	if err != nil {
		return 0, fmt.Errorf("q.ReserveStock: %w", err)
	}

	return remaining, nil
}
