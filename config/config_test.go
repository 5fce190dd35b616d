package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("ADMIN_JWT_SECRET", "")
	t.Setenv("CACHE_TTL_SECONDS", "")
	t.Setenv("PROMETHEUS_PORT", "")
	t.Setenv("LOG_LEVEL", "")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Observ.PrometheusPort)
	assert.Empty(t, cfg.Observ.LogLevel)

	assert.Equal(t, "catalog-events", cfg.Kafka.TopicCatalog)
	assert.Equal(t, []string{"localhost:9092"}, cfg.Kafka.Brokers)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("ADMIN_JWT_SECRET", "s3cret")
	t.Setenv("CACHE_TTL_SECONDS", "30")
	t.Setenv("DB_AUTO_MIGRATE", "false")
	t.Setenv("PROMETHEUS_PORT", "9191")
	t.Setenv("LOG_LEVEL", "warn")

	cfg := Load()

	assert.Equal(t, "9191", cfg.Observ.PrometheusPort)
	assert.Equal(t, "warn", cfg.Observ.LogLevel)

	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
	assert.False(t, cfg.Database.AutoMigrate)
}
