package domain

import "github.com/shopspring/decimal"

// Converter turns EUR values into amounts of the selected fiat currency.
// Results are exact; no rounding is applied.
type Converter struct {
	rate ExchangeRate
}

// NewConverter creates a Converter targeting the given rate.
func NewConverter(rate ExchangeRate) *Converter {
	return &Converter{rate: rate}
}

// ExchangeRate returns the current target rate.
func (c *Converter) ExchangeRate() ExchangeRate {
	return c.rate
}

// SetExchangeRate changes the target rate for subsequent conversions.
func (c *Converter) SetExchangeRate(rate ExchangeRate) {
	c.rate = rate
}

// Convert returns currency.ValueEUR * rate.
func (c *Converter) Convert(currency Currency) decimal.Decimal {
	return currency.ValueEUR.Mul(c.rate.Rate)
}

// ConvertPosition returns the converted value of the whole position.
func (c *Converter) ConvertPosition(p Position) decimal.Decimal {
	if p.Currency == nil {
		return decimal.Zero
	}
	return c.Convert(*p.Currency).Mul(decimal.NewFromInt(int64(p.Amount)))
}
