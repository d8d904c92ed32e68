package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
	"github.com/sony/gobreaker/v2"
)

type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		ConsecutiveFailures: 5,
		OpenTimeout:         30 * time.Second,
	}
}

// BreakerGateway stops calling the payment provider after repeated failures
// and fails fast with domain.ErrGateway while open.
type BreakerGateway struct {
	next     port.PaymentGateway
	create   *gobreaker.CircuitBreaker[domain.PaymentSession]
	retrieve *gobreaker.CircuitBreaker[domain.PaymentSessionDetails]
}

func NewBreakerGateway(next port.PaymentGateway, settings BreakerSettings, logger *slog.Logger) *BreakerGateway {
	if logger == nil {
		logger = slog.Default()
	}

	return &BreakerGateway{
		next:     next,
		create:   gobreaker.NewCircuitBreaker[domain.PaymentSession](breakerSettings("payment.create_session", settings, logger)),
		retrieve: gobreaker.NewCircuitBreaker[domain.PaymentSessionDetails](breakerSettings("payment.retrieve_session", settings, logger)),
	}
}

func (g *BreakerGateway) CreateSession(ctx context.Context, orderID uuid.UUID, items []domain.PaymentLineItem) (domain.PaymentSession, error) {
	session, err := g.create.Execute(func() (domain.PaymentSession, error) {
		return g.next.CreateSession(ctx, orderID, items)
	})
	if err != nil {
		return domain.PaymentSession{}, breakerError(err)
	}
	return session, nil
}

func (g *BreakerGateway) RetrieveSession(ctx context.Context, sessionID string) (domain.PaymentSessionDetails, error) {
	details, err := g.retrieve.Execute(func() (domain.PaymentSessionDetails, error) {
		return g.next.RetrieveSession(ctx, sessionID)
	})
	if err != nil {
		return domain.PaymentSessionDetails{}, breakerError(err)
	}
	return details, nil
}

func breakerSettings(name string, s BreakerSettings, logger *slog.Logger) gobreaker.Settings {
	return gobreaker.Settings{
		Name:    name,
		Timeout: s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			// a caller giving up says nothing about the provider
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}
}

func breakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %w", domain.ErrGateway, err)
	}
	return err
}
