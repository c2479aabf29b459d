package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("EMAIL_ENABLED", "")
	t.Setenv("RATE_LIMIT_WINDOW", "")
	t.Setenv("RATE_LIMIT_MAX", "")
	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.EmailEnabled {
		t.Fatalf("expected email disabled by default")
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Fatalf("expected default email provider sendgrid, got %s", cfg.EmailProvider)
	}
	if cfg.RateLimitWindow != 10*time.Minute {
		t.Fatalf("expected default rate limit window, got %s", cfg.RateLimitWindow)
	}
	if cfg.RateLimitMax != 5 {
		t.Fatalf("expected default rate limit max, got %d", cfg.RateLimitMax)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DATABASE_URL", "postgres://user@host/db")
	t.Setenv("EMAIL_ENABLED", "true")
	t.Setenv("EMAIL_PROVIDER", " SES ")
	t.Setenv("RATE_LIMIT_WINDOW", "2m")
	t.Setenv("RATE_LIMIT_MAX", "3")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("expected env override, got %s", cfg.Env)
	}
	if cfg.DatabaseURL != "postgres://user@host/db" {
		t.Fatalf("expected database url override, got %s", cfg.DatabaseURL)
	}
	if !cfg.EmailEnabled {
		t.Fatalf("expected email enabled")
	}
	if cfg.EmailProvider != "ses" {
		t.Fatalf("expected normalized email provider, got %q", cfg.EmailProvider)
	}
	if cfg.RateLimitWindow != 2*time.Minute {
		t.Fatalf("expected rate limit window override, got %s", cfg.RateLimitWindow)
	}
	if cfg.RateLimitMax != 3 {
		t.Fatalf("expected rate limit max override, got %d", cfg.RateLimitMax)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("expected redis addr override, got %s", cfg.RedisAddr)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT_WINDOW", "not-a-duration")
	t.Setenv("RATE_LIMIT_MAX", "many")
	t.Setenv("EMAIL_ENABLED", "yes please")
	cfg := Load()
	if cfg.RateLimitWindow != 10*time.Minute {
		t.Fatalf("expected fallback window, got %s", cfg.RateLimitWindow)
	}
	if cfg.RateLimitMax != 5 {
		t.Fatalf("expected fallback max, got %d", cfg.RateLimitMax)
	}
	if cfg.EmailEnabled {
		t.Fatalf("expected fallback email disabled")
	}
}
