package outbox

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nikolayk812/shopcheckout/internal/domain"
	"github.com/segmentio/kafka-go"
)

type Publisher interface {
	Publish(ctx context.Context, events ...domain.OutboxEvent) error
}

// KafkaPublisher writes each event to the topic it names. A non-empty
// topicOverride sends every event to that topic instead.
type KafkaPublisher struct {
	writer        *kafka.Writer
	topicOverride string
}

// ParseBrokers splits a comma separated broker list, dropping blanks.
func ParseBrokers(csv string) []string {
	var brokers []string
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func NewKafkaPublisher(brokers []string, topicOverride string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
			BatchTimeout:           50 * time.Millisecond,
		},
		topicOverride: topicOverride,
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events ...domain.OutboxEvent) error {
	if len(events) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, p.messages(events)...); err != nil {
		return fmt.Errorf("writer.WriteMessages: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) messages(events []domain.OutboxEvent) []kafka.Message {
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		topic := e.Topic
		if p.topicOverride != "" {
			topic = p.topicOverride
		}

		msgs = append(msgs, kafka.Message{
			Topic: topic,
			Key:   []byte(e.Key),
			Value: e.Payload,
			Headers: []kafka.Header{
				{Key: "event_id", Value: []byte(e.EventID.String())},
				{Key: "event_type", Value: []byte(e.Topic)},
			},
			Time: e.CreatedAt.UTC(),
		})
	}
	return msgs
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
