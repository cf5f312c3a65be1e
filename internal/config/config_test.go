package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("CFG_TEST_KEY", "  value  ")
	assert.Equal(t, "value", getEnv("CFG_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getEnv("CFG_TEST_MISSING", "fallback"))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("CFG_TEST_TTL", "24h")
	assert.Equal(t, 24*time.Hour, getDuration("CFG_TEST_TTL", 0))
	assert.Equal(t, time.Duration(0), getDuration("CFG_TEST_TTL_MISSING", 0))
}

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitCSV("a, b"))
	assert.Equal(t, []string{"*"}, splitCSV(""))
	assert.Equal(t, []string{"*"}, splitCSV(" , ,"))
}

func TestLoad(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/test-blog.db")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://example.com")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/test-blog.db", cfg.DatabasePath)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"https://example.com"}, cfg.CorsAllowedOrigins)
}
