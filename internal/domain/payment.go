package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type TaxBehavior string

const TaxBehaviorInclusive TaxBehavior = "inclusive"

type PaymentLineItem struct {
	Name string
	// UnitAmount is expressed in minor units.
	UnitAmount  decimal.Decimal
	Currency    currency.Unit
	Quantity    int32
	TaxBehavior TaxBehavior
}

type PaymentSession struct {
	ID  string
	URL string
}

// PaymentSessionDetails amounts are in minor units as reported by the gateway.
type PaymentSessionDetails struct {
	AmountSubtotal int64
	ShippingAmount int64
	AmountTotal    int64
	Status         string
}
