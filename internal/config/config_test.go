package config

import (
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "school")
	t.Setenv("DB_PASS", "")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "school_db")
	t.Setenv("JWT_SECRET", "topsecret")
	t.Setenv("TOKEN_TTL_SECONDS", "")

	cfg := Load()
	if cfg.Port != "8080" || cfg.DBName != "school_db" || cfg.JWTSecret != "topsecret" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.TokenTTLSecs != 3600 {
		t.Fatalf("default TTL = %d, want 3600", cfg.TokenTTLSecs)
	}

	t.Setenv("TOKEN_TTL_SECONDS", "120")
	if got := Load().TokenTTLSecs; got != 120 {
		t.Fatalf("TTL = %d, want 120", got)
	}
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_CAPACITY", "")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "")
	t.Setenv("RATE_LIMIT_TTL", "")

	cfg := LoadRateLimitConfig()
	if !cfg.Enabled || cfg.Capacity != 60 || cfg.RefillInterval != time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_TOKENS", "-3")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")

	cfg := LoadRateLimitConfig()
	if cfg.Capacity != 1 || cfg.RefillTokens != 1 {
		t.Fatalf("capacity/refill not clamped: %+v", cfg)
	}
	if cfg.TTL < 5*cfg.RefillInterval {
		t.Fatalf("TTL %v below floor", cfg.TTL)
	}
}
