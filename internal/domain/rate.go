package domain

import "github.com/shopspring/decimal"

// BaseCurrency is the fiat currency every Currency value is quoted in.
const BaseCurrency = "EUR"

// ExchangeRate maps a fiat currency to its rate relative to EUR.
type ExchangeRate struct {
	CurrencyCode string          `json:"currencyCode"`
	Rate         decimal.Decimal `json:"rate"`
}

// NewExchangeRate creates an ExchangeRate.
func NewExchangeRate(code string, rate decimal.Decimal) ExchangeRate {
	return ExchangeRate{CurrencyCode: code, Rate: rate}
}

// BaseRate returns the identity rate EUR -> 1.
func BaseRate() ExchangeRate {
	return ExchangeRate{CurrencyCode: BaseCurrency, Rate: decimal.NewFromInt(1)}
}
