package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const TopicOrderPlaced = "order.placed"

type OutboxEvent struct {
	ID        int64
	EventID   uuid.UUID
	Topic     string
	Key       string
	Payload   []byte
	CreatedAt time.Time
}

type OrderPlaced struct {
	OrderID          uuid.UUID         `json:"order_id"`
	UserID           uuid.UUID         `json:"user_id"`
	PaymentSessionID string            `json:"payment_session_id"`
	Lines            []OrderPlacedLine `json:"lines"`
	PlacedAt         time.Time         `json:"placed_at"`
}

type OrderPlacedLine struct {
	ProductID uuid.UUID       `json:"product_id"`
	SpellID   *uuid.UUID      `json:"spell_id,omitempty"`
	Quantity  int32           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}
