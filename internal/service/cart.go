package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookhaven/storefront/internal/domain"
	"github.com/bookhaven/storefront/internal/event"
	"github.com/bookhaven/storefront/internal/repository"
)

// CartService is the sole authority over cart contents and their durable
// storage. Every mutation is a full read-modify-write of the persisted slot;
// concurrent writers are last-write-wins.
type CartService struct {
	store    repository.CartStore
	producer *event.Producer
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(store repository.CartStore, producer *event.Producer, logger *slog.Logger) *CartService {
	return &CartService{
		store:    store,
		producer: producer,
		logger:   logger,
	}
}

// CheckoutSummary is the read-only summary returned by Checkout. No order is
// created and the cart is left untouched.
type CheckoutSummary struct {
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Total     float64           `json:"total"`
}

// GetCart returns the current persisted cart. An absent, unreadable, or
// malformed slot yields an empty cart; the caller never sees a failure.
func (s *CartService) GetCart(ctx context.Context) *domain.Cart {
	return &domain.Cart{Lines: s.loadLines(ctx)}
}

// AddItem adds the product to the cart. If a line for the product already
// exists its quantity is incremented by the given amount; otherwise a new
// line is appended, preserving insertion order. The quantity is taken as
// given; callers pass at least 1.
func (s *CartService) AddItem(ctx context.Context, product domain.Product, quantity int) (*domain.Cart, error) {
	lines := s.loadLines(ctx)

	cart := &domain.Cart{Lines: lines}
	if i := cart.FindLineIndex(product.ID); i >= 0 {
		cart.Lines[i].Quantity += quantity
	} else {
		cart.Lines = append(cart.Lines, domain.CartLine{Product: product, Quantity: quantity})
	}

	if err := s.store.Save(ctx, cart.Lines); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("product_id", product.ID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// RemoveItem deletes the line matching the given product ID. A missing
// product is a silent no-op; the slot is rewritten either way.
func (s *CartService) RemoveItem(ctx context.Context, productID string) (*domain.Cart, error) {
	lines := s.loadLines(ctx)

	kept := lines[:0]
	for _, line := range lines {
		if line.Product.ID != productID {
			kept = append(kept, line)
		}
	}
	cart := &domain.Cart{Lines: kept}

	if err := s.store.Save(ctx, cart.Lines); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item removed from cart",
		slog.String("product_id", productID),
	)

	return cart, nil
}

// SetQuantity replaces the quantity of the line matching the given product
// ID. A quantity of zero or less removes the line. An unknown product ID is a
// no-op and nothing is persisted.
func (s *CartService) SetQuantity(ctx context.Context, productID string, quantity int) (*domain.Cart, error) {
	lines := s.loadLines(ctx)

	cart := &domain.Cart{Lines: lines}
	i := cart.FindLineIndex(productID)
	if i < 0 {
		return cart, nil
	}

	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	cart.Lines[i].Quantity = quantity

	if err := s.store.Save(ctx, cart.Lines); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}

	s.publishUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "cart line quantity updated",
		slog.String("product_id", productID),
		slog.Int("quantity", quantity),
	)

	return cart, nil
}

// Clear empties the cart and persists the empty state unconditionally.
func (s *CartService) Clear(ctx context.Context) error {
	if err := s.store.Save(ctx, []domain.CartLine{}); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}

	if err := s.producer.PublishCartCleared(ctx); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.cleared event",
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "cart cleared")

	return nil
}

// ItemCount returns the sum of quantities across all lines; 0 for an empty
// or unreadable cart.
func (s *CartService) ItemCount(ctx context.Context) int {
	cart := domain.Cart{Lines: s.loadLines(ctx)}
	return cart.ItemCount()
}

// Total returns the cart total using the effective unit price per line.
func (s *CartService) Total(ctx context.Context) float64 {
	cart := domain.Cart{Lines: s.loadLines(ctx)}
	return cart.Total()
}

// Checkout returns a summary of the current cart. There is no payment or
// order processing behind it and the cart is not cleared.
func (s *CartService) Checkout(ctx context.Context) CheckoutSummary {
	cart := domain.Cart{Lines: s.loadLines(ctx)}
	return CheckoutSummary{
		Lines:     cart.Lines,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
	}
}

// loadLines reads the persisted lines, degrading storage failures to an
// empty cart.
func (s *CartService) loadLines(ctx context.Context) []domain.CartLine {
	lines, err := s.store.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load cart, treating as empty",
			slog.String("error", err.Error()),
		)
		return []domain.CartLine{}
	}
	return lines
}

// publishUpdated emits a cart.updated event; publish failures never fail the
// mutation that triggered them.
func (s *CartService) publishUpdated(ctx context.Context, cart *domain.Cart) {
	if err := s.producer.PublishCartUpdated(ctx, cart); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish cart.updated event",
			slog.String("error", err.Error()),
		)
	}
}
