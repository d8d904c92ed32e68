package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
)

type CheckoutService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID) (domain.Placement, error)
}

type OrderService interface {
	Confirm(ctx context.Context, orderID uuid.UUID) error
	Get(ctx context.Context, orderID uuid.UUID) (domain.Order, error)
	ListCompleted(ctx context.Context, userID uuid.UUID, page, pageSize int) (domain.OrderPage, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	checkout CheckoutService
	orders   OrderService
	db       Pinger
	timeout  time.Duration
	logger   *slog.Logger
}

func NewHandler(checkout CheckoutService, orders OrderService, db Pinger, timeout time.Duration, logger *slog.Logger) *Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		checkout: checkout,
		orders:   orders,
		db:       db,
		timeout:  timeout,
		logger:   logger.With("component", "http"),
	}
}

// POST /orders/add
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	authUserID, ok := UserIDFromContext(r.Context())
	if !ok {
		h.respondError(w, http.StatusUnauthorized, "missing user authentication")
		return
	}

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid userId")
		return
	}
	if userID != authUserID {
		h.respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	placement, err := h.checkout.PlaceOrder(ctx, userID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, PlaceOrderResponse{
		URL:     placement.URL,
		OrderID: placement.OrderID,
		Message: "order placed",
	})
}

// GET /orders?orderid=
func (h *Handler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, err := uuid.Parse(r.URL.Query().Get("orderid"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orders.Confirm(ctx, orderID); err != nil {
		h.handleError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, MessageResponse{Message: "successful payment"})
}

// GET /orders/{userId}?page=&pageSize=
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID, err := uuid.Parse(chi.URLParam(r, "userId"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if authUserID, _ := UserIDFromContext(r.Context()); authUserID != userID {
		h.respondError(w, http.StatusForbidden, "forbidden")
		return
	}

	page := queryInt(r, "page")
	pageSize := queryInt(r, "pageSize")

	result, err := h.orders.ListCompleted(ctx, userID, page, pageSize)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, toOrderListResponse(result))
}

// GET /order/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orders.Get(ctx, orderID)
	if err != nil {
		h.handleError(w, err)
		return
	}

	// other users' orders are reported as missing
	if authUserID, _ := UserIDFromContext(r.Context()); authUserID != order.UserID {
		h.handleError(w, domain.ErrOrderNotFound)
		return
	}

	h.respondJSON(w, http.StatusOK, toOrderDTO(order))
}

// GET /health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.Error("health check failed", "error", err)
		h.respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	var stockErr *domain.InsufficientStockError

	switch {
	case errors.Is(err, domain.ErrCartNotFound):
		h.respondError(w, http.StatusNotFound, "cart not found")
	case errors.Is(err, domain.ErrOrderNotFound):
		h.respondError(w, http.StatusNotFound, "order not found")
	case errors.Is(err, domain.ErrNoOrders):
		h.respondError(w, http.StatusNotFound, "no orders found")
	case errors.As(err, &stockErr):
		h.respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:     "insufficient quantity",
			ProductID: &stockErr.ProductID,
		})
	case errors.Is(err, domain.ErrTransientConflict):
		h.respondError(w, http.StatusConflict, "checkout conflict, retry")
	case errors.Is(err, domain.ErrGateway):
		h.respondError(w, http.StatusBadGateway, "payment gateway unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		h.respondError(w, http.StatusGatewayTimeout, "request timed out")
	default:
		h.logger.Error("request failed", "error", err)
		h.respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, data any) {
	writeJSON(w, h.logger, status, data)
}

func (h *Handler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
