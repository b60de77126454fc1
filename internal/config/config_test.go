package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("JWT_TTL", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.RedisEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("SLOT_LOCK_TTL", "3")
	t.Setenv("SHUTDOWN_TIMEOUT", "1m")
	t.Setenv("AUDIT_QUEUE_SIZE", "7")
	t.Setenv("APP_ENV", "production")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.RedisEnabled())
	assert.Equal(t, 3*time.Second, cfg.SlotLockTTL)
	assert.Equal(t, time.Minute, cfg.ShutdownTimeout)
	assert.Equal(t, 7, cfg.AuditQueueSize)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SLOT_LOCK_TTL", "soon")
	t.Setenv("REDIS_DB", "x")

	cfg := Load()

	assert.Equal(t, 5*time.Second, cfg.SlotLockTTL)
	assert.Equal(t, 0, cfg.RedisDB)
}
