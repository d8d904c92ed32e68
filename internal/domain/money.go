package domain

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Money struct {
	Amount   decimal.Decimal
	Currency currency.Unit
}

// MinorUnits returns the amount in the smallest currency unit (cents, paise).
func (m Money) MinorUnits() decimal.Decimal {
	return m.Amount.Shift(2)
}
