package config

import (
	"log/slog"
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	// Clear any env vars that might affect defaults
	for _, key := range []string{"MARKET_URL", "CURRENCIES_PATH", "RATES_PATH", "MARKET_TIMEOUT", "HTTP_PORT", "DEFAULT_RATE", "GOOGLE_SHEETS_ID", "GOOGLE_CREDENTIALS_JSON"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Market.URL != "https://gabana.ch/cc" {
		t.Errorf("Market.URL = %q, want default", cfg.Market.URL)
	}
	if cfg.Market.CurrenciesPath != "/cryptos" {
		t.Errorf("Market.CurrenciesPath = %q, want /cryptos", cfg.Market.CurrenciesPath)
	}
	if cfg.Market.RatesPath != "/taux" {
		t.Errorf("Market.RatesPath = %q, want /taux", cfg.Market.RatesPath)
	}
	if cfg.Market.Timeout != 30*time.Second {
		t.Errorf("Market.Timeout = %v, want 30s", cfg.Market.Timeout)
	}
	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %q, want 8080", cfg.HTTPPort)
	}
	if cfg.DefaultRate != "EUR" {
		t.Errorf("DefaultRate = %q, want EUR", cfg.DefaultRate)
	}
	if cfg.Sheets.Enabled() {
		t.Error("Sheets.Enabled() = true, want false without credentials")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("MARKET_URL", "https://rates.example.com")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("MARKET_TIMEOUT", "5s")
	t.Setenv("MARKET_DEBUG", "true")
	t.Setenv("DEFAULT_RATE", "chf")
	t.Setenv("GOOGLE_SHEETS_ID", "sheet-id")
	t.Setenv("GOOGLE_CREDENTIALS_JSON", `{"type":"service_account"}`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Market.URL != "https://rates.example.com" {
		t.Errorf("Market.URL = %q, want override", cfg.Market.URL)
	}
	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %q, want 9090", cfg.HTTPPort)
	}
	if cfg.Market.Timeout != 5*time.Second {
		t.Errorf("Market.Timeout = %v, want 5s", cfg.Market.Timeout)
	}
	if !cfg.Market.Debug {
		t.Error("Market.Debug = false, want true")
	}
	if cfg.DefaultRate != "CHF" {
		t.Errorf("DefaultRate = %q, want CHF", cfg.DefaultRate)
	}
	if !cfg.Sheets.Enabled() {
		t.Error("Sheets.Enabled() = false, want true")
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("MARKET_TIMEOUT", "invalid-duration")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid duration, got nil")
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		cfg := Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}
