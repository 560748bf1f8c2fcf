package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("APP_BASE_URL", "")
		t.Setenv("KAFKA_BROKERS", "")
		t.Setenv("BLOB_URL_TTL", "")
		t.Setenv("RATE_LIMIT_DISABLED", "")
		t.Setenv("TRUSTED_PROXIES", "")

		cfg := FromEnv()
		assert.Equal(t, "http://localhost:8080", cfg.AppBaseURL)
		assert.Empty(t, cfg.Kafka.Brokers)
		assert.Equal(t, 15*time.Minute, cfg.Blob.URLTTL)
		assert.False(t, cfg.RateLimit.Disabled)
		assert.Equal(t, 60, cfg.RateLimit.VerifyLimit)
		assert.Empty(t, cfg.TrustedProxies)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("APP_BASE_URL", "https://permits.example.gov/")
		t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
		t.Setenv("BLOB_URL_TTL", "90s")
		t.Setenv("REDIS_POOL_SIZE", "not-a-number")
		t.Setenv("RATE_LIMIT_DISABLED", "true")
		t.Setenv("RATE_LIMIT_VERIFY_WINDOW", "10s")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.10")

		cfg := FromEnv()
		assert.Equal(t, "https://permits.example.gov", cfg.AppBaseURL)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, 90*time.Second, cfg.Blob.URLTTL)
		assert.Equal(t, 10, cfg.Redis.PoolSize)
		assert.True(t, cfg.RateLimit.Disabled)
		assert.Equal(t, 10*time.Second, cfg.RateLimit.VerifyWindow)
		assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.10"}, cfg.TrustedProxies)
	})
}
