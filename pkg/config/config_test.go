package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load("dairy-service")

	assert.Equal(t, "dairy-service", cfg.ServiceName)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 3, cfg.StoreConflictRetries)
	assert.False(t, cfg.StrictStock)
	assert.Equal(t, 10, cfg.LowStockThreshold)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("INVENTORY_STRICT_STOCK", "true")
	t.Setenv("STORE_TIMEOUT", "250ms")
	t.Setenv("SHOP_TIMEZONE", "UTC")

	cfg := Load("dairy-service")

	assert.Equal(t, "9999", cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.StrictStock)
	assert.Equal(t, 250*time.Millisecond, cfg.StoreTimeout)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())
}
