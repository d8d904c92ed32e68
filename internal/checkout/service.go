package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"golang.org/x/text/currency"
)

const (
	OutcomeCommitted         = "committed"
	OutcomeCartNotFound      = "cart_not_found"
	OutcomeInsufficientStock = "insufficient_stock"
	OutcomeConflict          = "conflict"
	OutcomeGateway           = "gateway"
	OutcomeTimeout           = "timeout"
	OutcomeInternal          = "internal"
)

// OutcomeRecorder receives the terminal outcome of every checkout.
type OutcomeRecorder interface {
	ObserveCheckout(outcome string)
}

type nopRecorder struct{}

func (nopRecorder) ObserveCheckout(string) {}

type Service struct {
	tx       port.Transactor
	gateway  port.PaymentGateway
	currency currency.Unit
	logger   *slog.Logger
	recorder OutcomeRecorder
	now      func() time.Time
}

func NewService(
	tx port.Transactor,
	gateway port.PaymentGateway,
	cur currency.Unit,
	logger *slog.Logger,
	recorder OutcomeRecorder,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}

	return &Service{
		tx:       tx,
		gateway:  gateway,
		currency: cur,
		logger:   logger.With("component", "checkout"),
		recorder: recorder,
		now:      time.Now,
	}
}

// PlaceOrder turns the user's cart into a pending order with reserved stock
// and a payment session. Either every effect is committed or none is.
func (s *Service) PlaceOrder(ctx context.Context, userID uuid.UUID) (domain.Placement, error) {
	if userID == uuid.Nil {
		return domain.Placement{}, fmt.Errorf("userID is empty")
	}

	r := newRun(s.logger, userID)

	var placement domain.Placement
	err := s.tx.WithinTx(ctx, func(ctx context.Context, tx port.Tx) error {
		var err error
		placement, err = s.placeOrder(ctx, tx, r)
		return err
	})
	if err != nil {
		failedIn := r.abort()
		outcome := Outcome(err)
		s.recorder.ObserveCheckout(outcome)
		s.logAborted(r, failedIn, outcome, err)

		return domain.Placement{}, err
	}

	if err := r.advance(StateCommitted); err != nil {
		return domain.Placement{}, err
	}
	s.recorder.ObserveCheckout(OutcomeCommitted)
	s.logger.Info("order placed",
		"user_id", userID,
		"order_id", placement.OrderID,
	)

	return placement, nil
}

func (s *Service) placeOrder(ctx context.Context, tx port.Tx, r *run) (domain.Placement, error) {
	snapshot, err := tx.Carts().Snapshot(ctx, r.userID)
	if err != nil {
		return domain.Placement{}, fmt.Errorf("carts.Snapshot: %w", err)
	}
	if err := r.advance(StateSnapshotLoaded); err != nil {
		return domain.Placement{}, err
	}

	order, err := tx.Orders().CreatePending(ctx, r.userID)
	if err != nil {
		return domain.Placement{}, fmt.Errorf("orders.CreatePending: %w", err)
	}
	r.orderID = order.ID
	if err := r.advance(StateAssembling); err != nil {
		return domain.Placement{}, err
	}

	assembly, err := Assemble(ctx, tx.Stock(), tx.Orders(), order.ID, snapshot, s.currency)
	if err != nil {
		return domain.Placement{}, fmt.Errorf("Assemble: %w", err)
	}

	session, err := s.gateway.CreateSession(ctx, order.ID, assembly.PaymentItems)
	if err != nil {
		if !errors.Is(err, domain.ErrGateway) {
			err = fmt.Errorf("%w: %w", domain.ErrGateway, err)
		}
		return domain.Placement{}, fmt.Errorf("gateway.CreateSession: %w", err)
	}
	if err := r.advance(StatePaymentSessionCreated); err != nil {
		return domain.Placement{}, err
	}

	if err := tx.Orders().SetPaymentSession(ctx, order.ID, session.ID); err != nil {
		return domain.Placement{}, fmt.Errorf("orders.SetPaymentSession: %w", err)
	}

	event, err := orderPlacedEvent(order, session.ID, assembly.Lines, s.now())
	if err != nil {
		return domain.Placement{}, fmt.Errorf("orderPlacedEvent: %w", err)
	}
	if err := tx.Outbox().Insert(ctx, event); err != nil {
		return domain.Placement{}, fmt.Errorf("outbox.Insert: %w", err)
	}

	deleted, err := tx.Carts().DeleteCart(ctx, r.userID)
	if err != nil {
		return domain.Placement{}, fmt.Errorf("carts.DeleteCart: %w", err)
	}
	if !deleted {
		return domain.Placement{}, fmt.Errorf("%w: cart removed concurrently", domain.ErrTransientConflict)
	}

	return domain.Placement{
		OrderID: order.ID,
		URL:     session.URL,
	}, nil
}

func (s *Service) logAborted(r *run, failedIn State, outcome string, err error) {
	attrs := []any{
		"user_id", r.userID,
		"state", failedIn.String(),
		"outcome", outcome,
		"error", err,
	}
	if r.orderID != uuid.Nil {
		attrs = append(attrs, "order_id", r.orderID)
	}

	switch outcome {
	case OutcomeCartNotFound, OutcomeInsufficientStock:
		s.logger.Info("checkout rejected", attrs...)
	case OutcomeConflict:
		s.logger.Warn("checkout conflict", attrs...)
	case OutcomeTimeout:
		s.logger.Warn("checkout timed out", attrs...)
	default:
		s.logger.Error("checkout failed", attrs...)
	}
}

// Outcome classifies a checkout error.
func Outcome(err error) string {
	var stockErr *domain.InsufficientStockError

	switch {
	case err == nil:
		return OutcomeCommitted
	case errors.Is(err, domain.ErrCartNotFound):
		return OutcomeCartNotFound
	case errors.As(err, &stockErr):
		return OutcomeInsufficientStock
	case errors.Is(err, domain.ErrTransientConflict):
		return OutcomeConflict
	case errors.Is(err, domain.ErrGateway):
		return OutcomeGateway
	// the caller gave up, not a fault of the checkout itself
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return OutcomeTimeout
	default:
		return OutcomeInternal
	}
}
