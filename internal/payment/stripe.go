package payment

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// OrderIDPlaceholder in SuccessURL/CancelURL is replaced with the order id.
const OrderIDPlaceholder = "{ORDER_ID}"

type StripeConfig struct {
	SecretKey  string
	SuccessURL string
	CancelURL  string
	Timeout    time.Duration

	// APIURL overrides the Stripe API endpoint.
	APIURL string
}

// StripeGateway creates and reads Stripe Checkout sessions.
type StripeGateway struct {
	api *client.API
	cfg StripeConfig
}

func NewStripeGateway(cfg StripeConfig, logger *slog.Logger) *StripeGateway {
	if logger == nil {
		logger = slog.Default()
	}

	backendCfg := &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     stripeLogger{logger: logger.With("component", "stripe")},
	}
	if cfg.APIURL != "" {
		backendCfg.URL = stripe.String(cfg.APIURL)
	}
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg)

	return &StripeGateway{
		api: client.New(cfg.SecretKey, &stripe.Backends{
			API:     backend,
			Connect: backend,
			Uploads: backend,
		}),
		cfg: cfg,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, orderID uuid.UUID, items []domain.PaymentLineItem) (domain.PaymentSession, error) {
	if len(items) == 0 {
		return domain.PaymentSession{}, fmt.Errorf("items are empty")
	}

	params := g.buildSessionParams(orderID, items)
	params.Context = ctx

	s, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return domain.PaymentSession{}, fmt.Errorf("%w: CheckoutSessions.New: %w", domain.ErrGateway, err)
	}

	return domain.PaymentSession{
		ID:  s.ID,
		URL: s.URL,
	}, nil
}

func (g *StripeGateway) RetrieveSession(ctx context.Context, sessionID string) (domain.PaymentSessionDetails, error) {
	if sessionID == "" {
		return domain.PaymentSessionDetails{}, fmt.Errorf("sessionID is empty")
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := g.api.CheckoutSessions.Get(sessionID, params)
	if err != nil {
		return domain.PaymentSessionDetails{}, fmt.Errorf("%w: CheckoutSessions.Get: %w", domain.ErrGateway, err)
	}

	return mapSessionDetails(s), nil
}

func (g *StripeGateway) buildSessionParams(orderID uuid.UUID, items []domain.PaymentLineItem) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(strings.ToLower(item.Currency.String())),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmountDecimal: stripe.Float64(item.UnitAmount.InexactFloat64()),
				TaxBehavior:       stripe.String(string(item.TaxBehavior)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		SuccessURL:        stripe.String(withOrderID(g.cfg.SuccessURL, orderID)),
		CancelURL:         stripe.String(withOrderID(g.cfg.CancelURL, orderID)),
		ClientReferenceID: stripe.String(orderID.String()),
	}
	params.AddMetadata("order_id", orderID.String())

	return params
}

func mapSessionDetails(s *stripe.CheckoutSession) domain.PaymentSessionDetails {
	details := domain.PaymentSessionDetails{
		AmountSubtotal: s.AmountSubtotal,
		AmountTotal:    s.AmountTotal,
		Status:         string(s.Status),
	}
	if s.ShippingCost != nil {
		details.ShippingAmount = s.ShippingCost.AmountTotal
	}
	return details
}

func withOrderID(url string, orderID uuid.UUID) string {
	return strings.ReplaceAll(url, OrderIDPlaceholder, orderID.String())
}

// stripeLogger routes stripe-go logs to slog.
type stripeLogger struct {
	logger *slog.Logger
}

func (l stripeLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l stripeLogger) Infof(format string, v ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, v...))
}

func (l stripeLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, v...))
}

func (l stripeLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, v...))
}
