// Package kafka publishes product lifecycle events for the analytics
// pipeline. Publishing is best effort: a broker outage must never fail a
// marketplace request.
package kafka

import (
	"context"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/ecoloop/backend/internal/config"
	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
)

type ProductEvent struct {
	Type          string    `json:"type"`
	ProductID     string    `json:"product_id"`
	SellerID      string    `json:"seller_id"`
	WalletAddress string    `json:"wallet_address"`
	Name          string    `json:"name"`
	Price         float64   `json:"price"`
	Supply        int64     `json:"supply"`
	CreatedAt     time.Time `json:"created_at"`
}

const EventProductCreated = "product.created"

type Publisher interface {
	PublishProductEvent(ctx context.Context, event ProductEvent)
	Close() error
}

func NewPublisher(cfg *config.Config) Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		return &noopPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Kafka.Brokers...),
		Topic:        cfg.Kafka.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: 10 * time.Second,
	}
	return &publisher{writer: writer}
}

type publisher struct {
	writer *kafka.Writer
}

func (p *publisher) PublishProductEvent(ctx context.Context, event ProductEvent) {
	value, err := json.Marshal(event)
	if err != nil {
		log.Errorw(ctx, "marshal product event", "error", err, "product_id", event.ProductID)
		return
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.SellerID),
		Value: value,
	})
	if err != nil {
		log.Errorw(ctx, "publish product event",
			"error", err,
			"type", event.Type,
			"product_id", event.ProductID,
		)
		return
	}
	log.Debugw(ctx, "published product event", "type", event.Type, "product_id", event.ProductID)
}

func (p *publisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

func (noopPublisher) PublishProductEvent(context.Context, ProductEvent) {}
func (noopPublisher) Close() error                                     { return nil }
