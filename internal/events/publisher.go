package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/sixlab/storefront/internal/config"
	"github.com/sixlab/storefront/internal/entities"
)

// OrderCreatedEvent is emitted after the order channel exists. Consumers
// (fulfillment analytics) tolerate loss: publishing is best-effort.
type OrderCreatedEvent struct {
	EventID   string    `json:"event_id"`
	OrderID   string    `json:"order_id"`
	ChannelID string    `json:"channel_id"`
	Total     int       `json:"total"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

type publisher struct {
	writer *kafka.Writer
	logger *slog.Logger
}

func NewPublisher(logger *slog.Logger, cfg config.Kafka) *publisher {
	return &publisher{
		logger: logger.With(slog.String("publisher", "kafka")),
		writer: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
	}
}

func (p *publisher) OrderCreated(ctx context.Context, receipt entities.OrderReceipt, itemCount int) error {
	event := OrderCreatedEvent{
		EventID:   uuid.NewString(),
		OrderID:   receipt.OrderID,
		ChannelID: receipt.ChannelID,
		Total:     receipt.Total,
		ItemCount: itemCount,
		CreatedAt: time.Now().UTC(),
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	// kafka-go retries writes internally.
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID),
		Value: value,
	})
}

func (p *publisher) Close() error {
	return p.writer.Close()
}
