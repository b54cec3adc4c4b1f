package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	Market Market
	Sheets Sheets

	// DefaultRate is the fiat code selected when a request names none.
	DefaultRate string `env:"DEFAULT_RATE" envDefault:"EUR"`
}

// Market configures the remote currency and exchange-rate endpoints.
type Market struct {
	URL            string        `env:"MARKET_URL" envDefault:"https://gabana.ch/cc"`
	CurrenciesPath string        `env:"CURRENCIES_PATH" envDefault:"/cryptos"`
	RatesPath      string        `env:"RATES_PATH" envDefault:"/taux"`
	Timeout        time.Duration `env:"MARKET_TIMEOUT" envDefault:"30s"`
	Debug          bool          `env:"MARKET_DEBUG" envDefault:"false"`
}

// Sheets configures the optional Google Sheets portfolio export.
type Sheets struct {
	SpreadsheetID   string `env:"GOOGLE_SHEETS_ID"`
	CredentialsJSON string `env:"GOOGLE_CREDENTIALS_JSON"`
}

// Enabled reports whether both the spreadsheet and the credentials are set.
func (s Sheets) Enabled() bool {
	return s.SpreadsheetID != "" && s.CredentialsJSON != ""
}

// Load reads an optional .env file, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err == nil {
		slog.Debug("loaded .env file")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	cfg.DefaultRate = strings.ToUpper(cfg.DefaultRate)

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warning", "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
