package checkout

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nikolayk812/shopcheckout/internal/domain"
)

func orderPlacedEvent(order domain.Order, sessionID string, lines []domain.OrderLine, placedAt time.Time) (domain.OutboxEvent, error) {
	payload := domain.OrderPlaced{
		OrderID:          order.ID,
		UserID:           order.UserID,
		PaymentSessionID: sessionID,
		Lines:            make([]domain.OrderPlacedLine, 0, len(lines)),
		PlacedAt:         placedAt.UTC(),
	}
	for _, line := range lines {
		payload.Lines = append(payload.Lines, domain.OrderPlacedLine{
			ProductID: line.ProductID,
			SpellID:   line.SpellID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return domain.OutboxEvent{}, fmt.Errorf("json.Marshal: %w", err)
	}

	return domain.OutboxEvent{
		EventID: uuid.New(),
		Topic:   domain.TopicOrderPlaced,
		Key:     order.ID.String(),
		Payload: data,
	}, nil
}
