package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is keyed by (cart, product, spell); the same product with a
// different spell is a separate item.
type CartItem struct {
	ProductID uuid.UUID
	SpellID   *uuid.UUID
	Quantity  int32
}

// CartSnapshot is the cart content read inside the checkout transaction.
type CartSnapshot struct {
	CartID  uuid.UUID
	OwnerID uuid.UUID
	Lines   []CartLine
}

type CartLine struct {
	ProductID   uuid.UUID
	ProductName string
	Price       decimal.Decimal
	// Available is the product stock as of the snapshot. Zero for products
	// that no longer exist.
	Available int32
	Quantity  int32
	SpellID   *uuid.UUID
}
