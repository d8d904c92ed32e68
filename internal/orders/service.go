package orders

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/port"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 6
	maxPageSize     = 100

	// maxOffset is the largest offset the order queries accept.
	maxOffset = math.MaxInt32
)

// Service serves the post-checkout side of orders: payment confirmation and
// order history.
type Service struct {
	orders          port.OrderRepository
	gateway         port.PaymentGateway
	defaultPageSize int
	logger          *slog.Logger
}

func NewService(orders port.OrderRepository, gateway port.PaymentGateway, defaultPageSize int, logger *slog.Logger) *Service {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		orders:          orders,
		gateway:         gateway,
		defaultPageSize: defaultPageSize,
		logger:          logger.With("component", "orders"),
	}
}

// Confirm copies the amounts and status of the order's payment session onto
// the order.
func (s *Service) Confirm(ctx context.Context, orderID uuid.UUID) error {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("orders.GetOrder: %w", err)
	}
	if order.StripePaymentID == "" {
		return fmt.Errorf("order has no payment session: %w", domain.ErrOrderNotFound)
	}

	details, err := s.gateway.RetrieveSession(ctx, order.StripePaymentID)
	if err != nil {
		return fmt.Errorf("gateway.RetrieveSession: %w", err)
	}

	if err := s.orders.ApplyPayment(ctx, orderID, details); err != nil {
		return fmt.Errorf("orders.ApplyPayment: %w", err)
	}

	s.logger.Info("payment confirmed",
		"order_id", orderID,
		"status", details.Status,
		"amount_total", details.AmountTotal,
	)

	return nil
}

func (s *Service) Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}
	return order, nil
}

// ListCompleted pages through the user's completed orders, newest first.
// Non-positive page or pageSize fall back to the defaults.
func (s *Service) ListCompleted(ctx context.Context, userID uuid.UUID, page, pageSize int) (domain.OrderPage, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = s.defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	// pages past maxOffset are empty anyway, clamp before multiplying
	offset := maxOffset
	if page-1 <= maxOffset/pageSize {
		offset = (page - 1) * pageSize
	}

	orders, total, err := s.orders.ListByStatus(ctx, userID, domain.PaymentStatusComplete, pageSize, offset)
	if err != nil {
		return domain.OrderPage{}, fmt.Errorf("orders.ListByStatus: %w", err)
	}
	if total == 0 {
		return domain.OrderPage{}, domain.ErrNoOrders
	}

	return domain.OrderPage{
		Orders:     orders,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}, nil
}
