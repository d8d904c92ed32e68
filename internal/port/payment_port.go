package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
)

type PaymentGateway interface {
	CreateSession(ctx context.Context, orderID uuid.UUID, items []domain.PaymentLineItem) (domain.PaymentSession, error)
	RetrieveSession(ctx context.Context, sessionID string) (domain.PaymentSessionDetails, error)
}
