package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"golang.org/x/text/currency"
)

// Assembly is the outcome of turning a cart snapshot into order lines.
type Assembly struct {
	Lines        []domain.OrderLine
	PaymentItems []domain.PaymentLineItem
}

// Assemble reserves stock and records an order line for every snapshot line,
// in snapshot order. It stops at the first failure; undoing the reservations
// already taken is left to the enclosing transaction.
func Assemble(
	ctx context.Context,
	ledger port.StockLedger,
	orders port.OrderRepository,
	orderID uuid.UUID,
	snapshot domain.CartSnapshot,
	cur currency.Unit,
) (Assembly, error) {
	if len(snapshot.Lines) == 0 {
		return Assembly{}, domain.ErrCartNotFound
	}

	assembly := Assembly{
		Lines:        make([]domain.OrderLine, 0, len(snapshot.Lines)),
		PaymentItems: make([]domain.PaymentLineItem, 0, len(snapshot.Lines)),
	}

	for _, line := range snapshot.Lines {
		if _, err := ledger.TryReserve(ctx, line.ProductID, line.Quantity); err != nil {
			return Assembly{}, fmt.Errorf("ledger.TryReserve: %w", err)
		}

		orderLine := domain.OrderLine{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			SpellID:     line.SpellID,
			Quantity:    line.Quantity,
			Price:       line.Price,
		}
		if err := orders.AddLine(ctx, orderID, orderLine); err != nil {
			return Assembly{}, fmt.Errorf("orders.AddLine: %w", err)
		}

		price := domain.Money{Amount: line.Price, Currency: cur}
		assembly.Lines = append(assembly.Lines, orderLine)
		assembly.PaymentItems = append(assembly.PaymentItems, domain.PaymentLineItem{
			Name:        line.ProductName,
			UnitAmount:  price.MinorUnits(),
			Currency:    cur,
			Quantity:    line.Quantity,
			TaxBehavior: domain.TaxBehaviorInclusive,
		})
	}

	return assembly, nil
}
