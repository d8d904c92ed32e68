package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
)

type CartRepository interface {
	// Snapshot returns domain.ErrCartNotFound when the user has no cart or
	// the cart has no items.
	Snapshot(ctx context.Context, ownerID uuid.UUID) (domain.CartSnapshot, error)
	AddItem(ctx context.Context, ownerID uuid.UUID, item domain.CartItem) error
	DeleteCart(ctx context.Context, ownerID uuid.UUID) (bool, error)
}
