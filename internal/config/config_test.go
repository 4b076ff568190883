package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "shopping_cart", cfg.CartSlot)
	assert.Equal(t, "data/products.json", cfg.CatalogPath)
	assert.Equal(t, 500*time.Millisecond, cfg.BadgePollInterval)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CART_SLOT", "cart:session-42")
	t.Setenv("BADGE_POLL_INTERVAL", "2s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, "cart:session-42", cfg.CartSlot)
	assert.Equal(t, 2*time.Second, cfg.BadgePollInterval)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "99999")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_EmptySlotName(t *testing.T) {
	t.Setenv("CART_SLOT", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cart slot name")
}

func TestLoad_InvalidPollInterval(t *testing.T) {
	t.Setenv("BADGE_POLL_INTERVAL", "0s")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "badge poll interval")
}
