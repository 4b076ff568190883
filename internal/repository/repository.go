package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/bookhaven/storefront/internal/domain"
)

// Slot is the byte-level capability over the single persisted cart slot.
// Read returns nil with no error when the slot has never been written.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

// CartStore defines cart persistence in terms of cart lines. The persisted
// representation is a single JSON array of {product, quantity} records.
type CartStore interface {
	// Load returns the persisted cart lines. An absent or malformed slot
	// yields an empty sequence, not an error; only transport failures are
	// returned.
	Load(ctx context.Context) ([]domain.CartLine, error)

	// Save overwrites the slot with the given lines. Each mutation is a full
	// rewrite; concurrent writers are last-write-wins.
	Save(ctx context.Context, lines []domain.CartLine) error
}

// CartRepository implements CartStore by JSON-encoding cart lines into a Slot.
type CartRepository struct {
	slot   Slot
	logger *slog.Logger
}

// NewCartRepository creates a cart repository over the given slot.
func NewCartRepository(slot Slot, logger *slog.Logger) *CartRepository {
	return &CartRepository{
		slot:   slot,
		logger: logger,
	}
}

// Load reads and decodes the persisted cart lines.
func (r *CartRepository) Load(ctx context.Context) ([]domain.CartLine, error) {
	data, err := r.slot.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read cart slot: %w", err)
	}
	if len(data) == 0 {
		return []domain.CartLine{}, nil
	}

	var lines []domain.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		// A corrupt slot degrades to an empty cart rather than surfacing a
		// decode failure to the caller.
		r.logger.WarnContext(ctx, "cart slot is malformed, treating as empty",
			slog.String("error", err.Error()),
		)
		return []domain.CartLine{}, nil
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}

	return lines, nil
}

// Save encodes the given lines and overwrites the slot.
func (r *CartRepository) Save(ctx context.Context, lines []domain.CartLine) error {
	if lines == nil {
		lines = []domain.CartLine{}
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}

	if err := r.slot.Write(ctx, data); err != nil {
		return fmt.Errorf("write cart slot: %w", err)
	}

	return nil
}
