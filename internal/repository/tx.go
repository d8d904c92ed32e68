package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopcheckout/internal/db"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
)

var serializable = pgx.TxOptions{IsoLevel: pgx.Serializable}

// Store opens serializable transactions and hands out repositories bound to them.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx port.Tx) error) error {
	return runInTx(ctx, s.pool, serializable, func(tx pgx.Tx) error {
		return fn(ctx, txRepositories{tx: tx})
	})
}

type txRepositories struct {
	tx pgx.Tx
}

func (r txRepositories) Carts() port.CartRepository    { return NewCartWithTx(r.tx) }
func (r txRepositories) Stock() port.StockLedger       { return NewStockLedgerWithTx(r.tx) }
func (r txRepositories) Orders() port.OrderRepository  { return NewOrderWithTx(r.tx) }
func (r txRepositories) Outbox() port.OutboxRepository { return NewOutboxWithTx(r.tx) }

func withTx[T any](ctx context.Context, pool *pgxpool.Pool, q *db.Queries, fn func(q *db.Queries) (T, error)) (T, error) {
	// If we're already in a transaction (pool is nil), just use the existing queries
	if pool == nil {
		return fn(q)
	}

	var result T
	err := runInTx(ctx, pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		var err error
		result, err = fn(db.New(tx))
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return result, nil
}

func runInTx(ctx context.Context, pool *pgxpool.Pool, opts pgx.TxOptions, fn func(tx pgx.Tx) error) (txErr error) {
	tx, err := pool.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("pool.BeginTx: %w", err)
	}

	defer func() {
		if txErr != nil {
			// the caller's context may already be cancelled
			rollbackErr := tx.Rollback(context.WithoutCancel(ctx))
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
		txErr = classifyTxError(txErr)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("tx.Commit: %w", err)
	}

	return nil
}

// classifyTxError marks serialization failures and deadlocks as
// domain.ErrTransientConflict so callers can tell them from permanent errors.
func classifyTxError(err error) error {
	if err == nil || errors.Is(err, domain.ErrTransientConflict) {
		return err
	}

	if isSerializationFailure(err) {
		return fmt.Errorf("%w: %w", domain.ErrTransientConflict, err)
	}

	return err
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
}
