package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusComplete PaymentStatus = "complete"
)

type Order struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	StripePaymentID string
	PaymentStatus   PaymentStatus

	// Amounts are filled by payment confirmation, nil until then.
	Amount         *decimal.Decimal
	ShippingAmount *decimal.Decimal
	TotalAmount    *decimal.Decimal

	Lines     []OrderLine
	CreatedAt time.Time
}

// OrderLine price is captured at purchase time and never follows later
// product price changes.
type OrderLine struct {
	ProductID   uuid.UUID
	ProductName string
	SpellID     *uuid.UUID
	SpellName   string
	Quantity    int32
	Price       decimal.Decimal
}

// Placement is what a successful checkout hands back to the caller.
type Placement struct {
	OrderID uuid.UUID
	URL     string
}

type OrderPage struct {
	Orders     []Order
	Page       int
	PageSize   int
	Total      int64
	TotalPages int
}
