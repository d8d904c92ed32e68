package payment_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/nikolayk812/shopcheckout/internal/payment"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/currency"
)

// stripeStub answers the two Checkout Session endpoints the gateway uses.
type stripeStub struct {
	mu   sync.Mutex
	form url.Values
}

func (s *stripeStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/v1/checkout/sessions":
		if err := r.ParseForm(); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.mu.Lock()
		s.form = r.PostForm
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]any{
			"id":     "cs_test_123",
			"object": "checkout.session",
			"url":    "https://checkout.stripe.com/c/pay/cs_test_123",
		})
	case r.Method == http.MethodGet && r.URL.Path == "/v1/checkout/sessions/cs_test_123":
		writeJSON(w, http.StatusOK, map[string]any{
			"id":              "cs_test_123",
			"object":          "checkout.session",
			"amount_subtotal": 49900,
			"amount_total":    54900,
			"shipping_cost":   map[string]any{"amount_total": 5000},
			"status":          "complete",
		})
	default:
		writeJSON(w, http.StatusNotFound, map[string]any{
			"error": map[string]any{
				"type":    "invalid_request_error",
				"message": "No such checkout.session",
			},
		})
	}
}

func (s *stripeStub) lastForm() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.form
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newStripeGateway(t *testing.T) (*payment.StripeGateway, *stripeStub) {
	t.Helper()

	stub := &stripeStub{}
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)

	gateway := payment.NewStripeGateway(payment.StripeConfig{
		SecretKey:  "sk_test_123",
		SuccessURL: "https://shop.example.com/orders?orderid=" + payment.OrderIDPlaceholder,
		CancelURL:  "https://shop.example.com/cart",
		Timeout:    5 * time.Second,
		APIURL:     srv.URL,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return gateway, stub
}

func TestStripeGateway_CreateSession(t *testing.T) {
	gateway, stub := newStripeGateway(t)
	orderID := uuid.New()

	session, err := gateway.CreateSession(t.Context(), orderID, []domain.PaymentLineItem{
		{
			Name:        "Wand",
			UnitAmount:  decimal.NewFromInt(4999),
			Currency:    currency.INR,
			Quantity:    2,
			TaxBehavior: domain.TaxBehaviorInclusive,
		},
		{
			Name:        "Cloak",
			UnitAmount:  decimal.NewFromInt(150),
			Currency:    currency.INR,
			Quantity:    1,
			TaxBehavior: domain.TaxBehaviorInclusive,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_test_123", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/c/pay/cs_test_123", session.URL)

	form := stub.lastForm()
	assert.Equal(t, "payment", form.Get("mode"))
	assert.Equal(t, orderID.String(), form.Get("client_reference_id"))
	assert.Equal(t, orderID.String(), form.Get("metadata[order_id]"))
	assert.Equal(t, "https://shop.example.com/orders?orderid="+orderID.String(), form.Get("success_url"))
	assert.Equal(t, "https://shop.example.com/cart", form.Get("cancel_url"))

	assert.Equal(t, "Wand", form.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "inr", form.Get("line_items[0][price_data][currency]"))
	assertDecimal(t, 4999, form.Get("line_items[0][price_data][unit_amount_decimal]"))
	assert.Equal(t, "inclusive", form.Get("line_items[0][price_data][tax_behavior]"))
	assert.Equal(t, "2", form.Get("line_items[0][quantity]"))
	assert.Equal(t, "Cloak", form.Get("line_items[1][price_data][product_data][name]"))
	assertDecimal(t, 150, form.Get("line_items[1][price_data][unit_amount_decimal]"))
}

func assertDecimal(t *testing.T, want int64, got string) {
	t.Helper()

	d, err := decimal.NewFromString(got)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(want).Equal(d), "want %d, got %s", want, got)
}

func TestStripeGateway_CreateSessionNoItems(t *testing.T) {
	gateway, _ := newStripeGateway(t)

	_, err := gateway.CreateSession(t.Context(), uuid.New(), nil)
	require.EqualError(t, err, "items are empty")
}

func TestStripeGateway_RetrieveSession(t *testing.T) {
	gateway, _ := newStripeGateway(t)

	details, err := gateway.RetrieveSession(t.Context(), "cs_test_123")
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentSessionDetails{
		AmountSubtotal: 49900,
		ShippingAmount: 5000,
		AmountTotal:    54900,
		Status:         "complete",
	}, details)
}

func TestStripeGateway_RetrieveSessionErrors(t *testing.T) {
	gateway, _ := newStripeGateway(t)

	_, err := gateway.RetrieveSession(t.Context(), "cs_missing")
	require.ErrorIs(t, err, domain.ErrGateway)

	_, err = gateway.RetrieveSession(t.Context(), "")
	require.EqualError(t, err, "sessionID is empty")
}
