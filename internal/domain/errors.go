package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrCartNotFound  = errors.New("cart not found")
	ErrOrderNotFound = errors.New("order not found")
	ErrNoOrders      = errors.New("no orders found")

	// ErrGateway marks failures of the payment gateway.
	ErrGateway = errors.New("payment gateway failure")

	// ErrTransientConflict marks serialization conflicts between concurrent
	// checkouts. The caller may retry.
	ErrTransientConflict = errors.New("transient conflict")
)

// InsufficientStockError is returned when a product has less stock than
// requested, including products that no longer exist.
type InsufficientStockError struct {
	ProductID uuid.UUID
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s", e.ProductID)
}
