package event

import (
	"context"
	"fmt"
	"log/slog"

	pkgkafka "github.com/bookhaven/storefront/pkg/kafka"

	"github.com/bookhaven/storefront/internal/domain"
)

// Kafka topic constants for cart domain events.
const (
	TopicCartUpdated = "storefront.cart.updated"
	TopicCartCleared = "storefront.cart.cleared"
)

const (
	aggregateTypeCart = "cart"
	sourceStorefront  = "storefront"
)

// CartUpdatedData is the payload for a cart.updated event.
type CartUpdatedData struct {
	Slot      string         `json:"slot"`
	Lines     []CartLineData `json:"lines"`
	ItemCount int            `json:"item_count"`
	Total     float64        `json:"total"`
}

// CartLineData is the line payload within cart events.
type CartLineData struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// CartClearedData is the payload for a cart.cleared event.
type CartClearedData struct {
	Slot string `json:"slot"`
}

// Producer publishes cart domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	slot   string
	logger *slog.Logger
}

// NewProducer creates an event producer keyed to the given cart slot.
func NewProducer(kafka *pkgkafka.Producer, slot string, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		slot:   slot,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	lines := make([]CartLineData, len(cart.Lines))
	for i, line := range cart.Lines {
		lines[i] = CartLineData{
			ProductID: line.Product.ID,
			Title:     line.Product.Title,
			UnitPrice: line.Product.EffectivePrice(),
			Quantity:  line.Quantity,
		}
	}

	data := CartUpdatedData{
		Slot:      p.slot,
		Lines:     lines,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
	}

	evt, err := pkgkafka.NewEvent(TopicCartUpdated, p.slot, aggregateTypeCart, sourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, evt); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("slot", p.slot),
		slog.Int("item_count", data.ItemCount),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event.
func (p *Producer) PublishCartCleared(ctx context.Context) error {
	evt, err := pkgkafka.NewEvent(TopicCartCleared, p.slot, aggregateTypeCart, sourceStorefront, CartClearedData{Slot: p.slot})
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, evt); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("slot", p.slot),
	)

	return nil
}
