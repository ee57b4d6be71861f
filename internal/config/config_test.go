package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.APIBase != "http://127.0.0.1:8000" {
		t.Errorf("APIBase = %q", cfg.APIBase)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want 30s", cfg.HTTPTimeout)
	}
	if cfg.DefaultCurrency != "EUR" {
		t.Errorf("DefaultCurrency = %q, want EUR", cfg.DefaultCurrency)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir is empty")
	}
}

func TestLoadTrimsTrailingSlash(t *testing.T) {
	t.Setenv("ANYCART_API_BASE", "https://api.example.com///")

	cfg := Load()
	if cfg.APIBase != "https://api.example.com" {
		t.Errorf("APIBase = %q, want trailing slashes stripped", cfg.APIBase)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ANYCART_HTTP_TIMEOUT", "5s")
	t.Setenv("ANYCART_RATE_LIMIT", "2.5")
	t.Setenv("ANYCART_RATE_BURST", "3")
	t.Setenv("ANYCART_CURRENCY", "USD")

	cfg := Load()
	if cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("HTTPTimeout = %v, want 5s", cfg.HTTPTimeout)
	}
	if cfg.RateLimit != 2.5 || cfg.RateBurst != 3 {
		t.Errorf("rate limit = %v/%d", cfg.RateLimit, cfg.RateBurst)
	}
	if cfg.DefaultCurrency != "USD" {
		t.Errorf("DefaultCurrency = %q, want USD", cfg.DefaultCurrency)
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("ANYCART_HTTP_TIMEOUT", "soon")
	t.Setenv("ANYCART_RATE_BURST", "many")

	cfg := Load()
	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("HTTPTimeout = %v, want the default for an invalid value", cfg.HTTPTimeout)
	}
	if cfg.RateBurst != 20 {
		t.Errorf("RateBurst = %d, want the default for an invalid value", cfg.RateBurst)
	}
}
