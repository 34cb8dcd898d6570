package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv(t *testing.T) {
	t.Run("defaults are usable for development", func(t *testing.T) {
		t.Setenv("DRAFT_STORE_BACKEND", "")
		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Server.Addr)
		assert.Equal(t, DraftBackendSQLite, cfg.DraftStore.Backend)
		assert.Equal(t, "29", cfg.Payment.ConsultationFee.String())
		assert.Equal(t, "EUR", cfg.Payment.Currency)
		assert.Equal(t, 10*time.Minute, cfg.Identity.OTPTTL)
		assert.True(t, cfg.IsDevelopment())
	})

	t.Run("overrides are parsed", func(t *testing.T) {
		t.Setenv("DRAFT_STORE_BACKEND", "memory")
		t.Setenv("CONSULTATION_FEE", "35.50")
		t.Setenv("PAYMENT_CURRENCY", "chf")
		t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
		t.Setenv("OTP_TTL", "5m")
		t.Setenv("IDENTITY_SEED_ACCOUNTS", "Jane@Example.com=pat-1, broken, max@example.com=pat-2")

		cfg, err := FromEnv()
		require.NoError(t, err)

		assert.Equal(t, DraftBackendMemory, cfg.DraftStore.Backend)
		assert.Equal(t, "35.5", cfg.Payment.ConsultationFee.String())
		assert.Equal(t, "CHF", cfg.Payment.Currency)
		assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
		assert.Equal(t, 5*time.Minute, cfg.Identity.OTPTTL)
		assert.Equal(t, map[string]string{
			"jane@example.com": "pat-1",
			"max@example.com":  "pat-2",
		}, cfg.Identity.SeedAccounts)
	})

	t.Run("rejects unknown draft backend", func(t *testing.T) {
		t.Setenv("DRAFT_STORE_BACKEND", "browser")
		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("redis backend requires a url", func(t *testing.T) {
		t.Setenv("DRAFT_STORE_BACKEND", "redis")
		t.Setenv("REDIS_URL", "")
		_, err := FromEnv()
		require.Error(t, err)
	})

	t.Run("rejects non-positive consultation fee", func(t *testing.T) {
		t.Setenv("DRAFT_STORE_BACKEND", "memory")
		t.Setenv("CONSULTATION_FEE", "0")
		_, err := FromEnv()
		require.Error(t, err)
	})
}
