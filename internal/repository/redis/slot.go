package redis

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// ChangeChannel is the pub/sub channel carrying cart slot change
// notifications. The message payload is the name of the slot that changed.
const ChangeChannel = "storefront.cart.changed"

// Slot implements repository.Slot over a single Redis key. Every successful
// write publishes a change notification, mirroring how browser storage fires
// a storage event for listeners in other tabs.
type Slot struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

// NewSlot creates a Redis-backed slot for the given key.
func NewSlot(client *redis.Client, key string, logger *slog.Logger) *Slot {
	return &Slot{
		client: client,
		key:    key,
		logger: logger,
	}
}

// Read returns the slot contents, or nil when the slot has never been written.
func (s *Slot) Read(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get %s: %w", s.key, err)
	}
	return data, nil
}

// Write overwrites the slot. The value persists until the next write; there
// is no expiry. A change notification is published best-effort afterwards.
func (s *Slot) Write(ctx context.Context, data []byte) error {
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}

	if err := s.client.Publish(ctx, ChangeChannel, s.key).Err(); err != nil {
		// Listeners fall back to polling, so a lost notification only delays
		// reconciliation.
		s.logger.WarnContext(ctx, "failed to publish cart change notification",
			slog.String("channel", ChangeChannel),
			slog.String("error", err.Error()),
		)
	}

	return nil
}
