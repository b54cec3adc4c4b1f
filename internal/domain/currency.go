package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is a crypto asset quoted in EUR.
type Currency struct {
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	ValueEUR decimal.Decimal `json:"valueEUR"`
}

// NewCurrency creates a Currency.
func NewCurrency(code, name string, valueEUR decimal.Decimal) *Currency {
	return &Currency{Code: code, Name: name, ValueEUR: valueEUR}
}

// String renders "CODE - Name - ValueEUR", e.g. "BTC - Bitcoin - 17724.08".
func (c Currency) String() string {
	return fmt.Sprintf("%s - %s - %s", c.Code, c.Name, c.ValueEUR.String())
}
