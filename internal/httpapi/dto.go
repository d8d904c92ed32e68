package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/shopspring/decimal"
)

type PlaceOrderRequest struct {
	UserID string `json:"userId"`
}

type PlaceOrderResponse struct {
	URL     string    `json:"url"`
	OrderID uuid.UUID `json:"orderId"`
	Message string    `json:"message"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error     string     `json:"error"`
	ProductID *uuid.UUID `json:"productId,omitempty"`
}

type OrderItemDTO struct {
	ProductID   uuid.UUID       `json:"productId"`
	ProductName string          `json:"productName"`
	SpellID     *uuid.UUID      `json:"spellId,omitempty"`
	SpellName   string          `json:"spellName,omitempty"`
	Quantity    int32           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

type OrderDTO struct {
	OrderID         uuid.UUID        `json:"orderId"`
	UserID          uuid.UUID        `json:"userId"`
	StripePaymentID string           `json:"stripePaymentId,omitempty"`
	PaymentStatus   string           `json:"paymentStatus"`
	Amount          *decimal.Decimal `json:"amount,omitempty"`
	ShippingAmount  *decimal.Decimal `json:"shippingAmount,omitempty"`
	TotalAmount     *decimal.Decimal `json:"totalAmount,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	Items           []OrderItemDTO   `json:"items"`
}

type PaginationDTO struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type OrderListResponse struct {
	Orders     []OrderDTO    `json:"orders"`
	Pagination PaginationDTO `json:"pagination"`
}

func toOrderDTO(o domain.Order) OrderDTO {
	items := make([]OrderItemDTO, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, OrderItemDTO{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			SpellID:     l.SpellID,
			SpellName:   l.SpellName,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}

	return OrderDTO{
		OrderID:         o.ID,
		UserID:          o.UserID,
		StripePaymentID: o.StripePaymentID,
		PaymentStatus:   string(o.PaymentStatus),
		Amount:          o.Amount,
		ShippingAmount:  o.ShippingAmount,
		TotalAmount:     o.TotalAmount,
		CreatedAt:       o.CreatedAt,
		Items:           items,
	}
}

func toOrderListResponse(p domain.OrderPage) OrderListResponse {
	orders := make([]OrderDTO, 0, len(p.Orders))
	for _, o := range p.Orders {
		orders = append(orders, toOrderDTO(o))
	}

	return OrderListResponse{
		Orders: orders,
		Pagination: PaginationDTO{
			Page:       p.Page,
			PageSize:   p.PageSize,
			Total:      p.Total,
			TotalPages: p.TotalPages,
		},
	}
}
