package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
)

type OrderRepository interface {
	CreatePending(ctx context.Context, userID uuid.UUID) (domain.Order, error)
	AddLine(ctx context.Context, orderID uuid.UUID, line domain.OrderLine) error
	SetPaymentSession(ctx context.Context, orderID uuid.UUID, sessionID string) error

	GetOrder(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ApplyPayment(ctx context.Context, orderID uuid.UUID, details domain.PaymentSessionDetails) error
	ListByStatus(ctx context.Context, userID uuid.UUID, status domain.PaymentStatus, limit, offset int) ([]domain.Order, int64, error)
}
