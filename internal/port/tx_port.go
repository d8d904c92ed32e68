package port

import "context"

// Tx exposes repositories bound to one database transaction.
type Tx interface {
	Carts() CartRepository
	Stock() StockLedger
	Orders() OrderRepository
	Outbox() OutboxRepository
}

// Transactor runs fn in a serializable transaction. The transaction is
// committed when fn returns nil and rolled back otherwise.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
