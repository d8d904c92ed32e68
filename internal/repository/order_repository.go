package repository

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcheckout/internal/db"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"github.com/shopspring/decimal"
)

type orderRepository struct {
	q *db.Queries
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{q: db.New(pool)}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{q: db.New(tx)}
}

func (r *orderRepository) CreatePending(ctx context.Context, userID uuid.UUID) (domain.Order, error) {
	if userID == uuid.Nil {
		return domain.Order{}, fmt.Errorf("userID is empty")
	}

	row, err := r.q.CreateOrder(ctx, userID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.CreateOrder: %w", err)
	}

	return mapOrderRowToDomain(row), nil
}

func (r *orderRepository) AddLine(ctx context.Context, orderID uuid.UUID, line domain.OrderLine) error {
	err := r.q.AddOrderItem(ctx, db.AddOrderItemParams{
		OrderID:   orderID,
		ProductID: line.ProductID,
		SpellID:   toNullUUID(line.SpellID),
		Quantity:  line.Quantity,
		Price:     line.Price,
	})
	if err != nil {
		return fmt.Errorf("q.AddOrderItem: %w", err)
	}

	return nil
}

func (r *orderRepository) SetPaymentSession(ctx context.Context, orderID uuid.UUID, sessionID string) error {
	if sessionID == "" {
		return fmt.Errorf("sessionID is empty")
	}

	rowsAffected, err := r.q.SetStripePaymentID(ctx, db.SetStripePaymentIDParams{
		OrderID:         orderID,
		StripePaymentID: pgtype.Text{String: sessionID, Valid: true},
	})
	if err != nil {
		return fmt.Errorf("q.SetStripePaymentID: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	row, err := r.q.GetOrder(ctx, orderID)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	order := mapOrderRowToDomain(row)

	items, err := r.q.ListOrderItems(ctx, []uuid.UUID{orderID})
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.ListOrderItems: %w", err)
	}

	for _, item := range items {
		order.Lines = append(order.Lines, mapOrderItemRowToDomain(item))
	}

	return order, nil
}

// ApplyPayment stores gateway-reported amounts (minor units) and status.
func (r *orderRepository) ApplyPayment(ctx context.Context, orderID uuid.UUID, details domain.PaymentSessionDetails) error {
	rowsAffected, err := r.q.UpdateOrderPayment(ctx, db.UpdateOrderPaymentParams{
		OrderID:        orderID,
		Amount:         minorToNullDecimal(details.AmountSubtotal),
		ShippingAmount: minorToNullDecimal(details.ShippingAmount),
		TotalAmount:    minorToNullDecimal(details.AmountTotal),
		PaymentStatus:  details.Status,
	})
	if err != nil {
		return fmt.Errorf("q.UpdateOrderPayment: %w", err)
	}
	if rowsAffected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) ListByStatus(ctx context.Context, userID uuid.UUID, status domain.PaymentStatus, limit, offset int) ([]domain.Order, int64, error) {
	if userID == uuid.Nil {
		return nil, 0, fmt.Errorf("userID is empty")
	}
	if limit < 0 || limit > math.MaxInt32 || offset < 0 || offset > math.MaxInt32 {
		return nil, 0, fmt.Errorf("limit %d or offset %d out of range", limit, offset)
	}

	total, err := r.q.CountOrdersByUserAndStatus(ctx, db.CountOrdersByUserAndStatusParams{
		UserID:        userID,
		PaymentStatus: string(status),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("q.CountOrdersByUserAndStatus: %w", err)
	}
	if total == 0 {
		return nil, 0, nil
	}

	rows, err := r.q.ListOrdersByUserAndStatus(ctx, db.ListOrdersByUserAndStatusParams{
		UserID:        userID,
		PaymentStatus: string(status),
		Limit:         int32(limit),
		Offset:        int32(offset),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("q.ListOrdersByUserAndStatus: %w", err)
	}
	if len(rows) == 0 {
		return nil, total, nil
	}

	orders := make([]domain.Order, 0, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	byID := make(map[uuid.UUID]int, len(rows))

	for i, row := range rows {
		orders = append(orders, mapOrderRowToDomain(row))
		ids = append(ids, row.OrderID)
		byID[row.OrderID] = i
	}

	items, err := r.q.ListOrderItems(ctx, ids)
	if err != nil {
		return nil, 0, fmt.Errorf("q.ListOrderItems: %w", err)
	}

	for _, item := range items {
		idx := byID[item.OrderID]
		orders[idx].Lines = append(orders[idx].Lines, mapOrderItemRowToDomain(item))
	}

	return orders, total, nil
}

func mapOrderRowToDomain(row db.Order) domain.Order {
	return domain.Order{
		ID:              row.OrderID,
		UserID:          row.UserID,
		StripePaymentID: row.StripePaymentID.String,
		PaymentStatus:   domain.PaymentStatus(row.PaymentStatus),
		Amount:          fromNullDecimal(row.Amount),
		ShippingAmount:  fromNullDecimal(row.ShippingAmount),
		TotalAmount:     fromNullDecimal(row.TotalAmount),
		CreatedAt:       row.CreatedAt,
	}
}

func mapOrderItemRowToDomain(row db.ListOrderItemsRow) domain.OrderLine {
	return domain.OrderLine{
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		SpellID:     fromNullUUID(row.SpellID),
		SpellName:   row.SpellName,
		Quantity:    row.Quantity,
		Price:       row.Price,
	}
}

func minorToNullDecimal(minor int64) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.New(minor, -2), Valid: true}
}

func fromNullDecimal(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}
