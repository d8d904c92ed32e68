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

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) Snapshot(ctx context.Context, ownerID uuid.UUID) (domain.CartSnapshot, error) {
	if ownerID == uuid.Nil {
		return domain.CartSnapshot{}, fmt.Errorf("ownerID is empty")
	}

	cart, err := r.q.GetCartByUser(ctx, ownerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartSnapshot{}, domain.ErrCartNotFound
	}
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("q.GetCartByUser: %w", err)
	}

	rows, err := r.q.ListCartSnapshotRows(ctx, cart.CartID)
	if err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("q.ListCartSnapshotRows: %w", err)
	}

	// a cart without items counts as deleted
	if len(rows) == 0 {
		return domain.CartSnapshot{}, domain.ErrCartNotFound
	}

	return domain.CartSnapshot{
		CartID:  cart.CartID,
		OwnerID: cart.UserID,
		Lines:   mapSnapshotRowsToDomain(rows),
	}, nil
}

func (r *cartRepository) AddItem(ctx context.Context, ownerID uuid.UUID, item domain.CartItem) error {
	if ownerID == uuid.Nil {
		return fmt.Errorf("ownerID is empty")
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("quantity must be positive")
	}

	_, err := withTx(ctx, r.pool, r.q, func(q *db.Queries) (struct{}, error) {
		cartID, err := q.UpsertCart(ctx, ownerID)
		if err != nil {
			return struct{}{}, fmt.Errorf("q.UpsertCart: %w", err)
		}

		err = q.AddCartItem(ctx, db.AddCartItemParams{
			CartID:    cartID,
			ProductID: item.ProductID,
			SpellID:   toNullUUID(item.SpellID),
			Quantity:  item.Quantity,
		})
		if err != nil {
			return struct{}{}, fmt.Errorf("q.AddCartItem: %w", err)
		}

		return struct{}{}, nil
	})

	return err
}

func (r *cartRepository) DeleteCart(ctx context.Context, ownerID uuid.UUID) (bool, error) {
	if ownerID == uuid.Nil {
		return false, fmt.Errorf("ownerID is empty")
	}

	rowsAffected, err := r.q.DeleteCartByUser(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("q.DeleteCartByUser: %w", err)
	}

	return rowsAffected > 0, nil
}

func mapSnapshotRowToDomain(row db.ListCartSnapshotRowsRow) domain.CartLine {
	return domain.CartLine{
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		Price:       row.ProductPrice,
		Available:   row.ProductQuantity,
		Quantity:    row.Quantity,
		SpellID:     fromNullUUID(row.SpellID),
	}
}

func mapSnapshotRowsToDomain(rows []db.ListCartSnapshotRowsRow) []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(rows))

	for _, row := range rows {
		lines = append(lines, mapSnapshotRowToDomain(row))
	}

	return lines
}

func toNullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func fromNullUUID(id uuid.NullUUID) *uuid.UUID {
	if !id.Valid {
		return nil
	}
	v := id.UUID
	return &v
}
