package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// HTTPMetrics is the request instrumentation hook.
type HTTPMetrics interface {
	Middleware(next http.Handler) http.Handler
}

func NewRouter(h *Handler, m HTTPMetrics, metricsHandler http.Handler, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	if m != nil {
		r.Use(m.Middleware)
	}

	r.Get("/health", h.Health)
	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	// payment provider redirect target, carries no user identity
	r.Get("/orders", h.ConfirmPayment)

	r.Group(func(r chi.Router) {
		r.Use(Authenticate(h.logger))

		r.Post("/orders/add", h.PlaceOrder)
		r.Get("/orders/{userId}", h.ListOrders)
		r.Get("/order/{id}", h.GetOrder)
	})

	return r
}
