package domain

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// FormatFiat renders amount for display in the given fiat currency, e.g.
// "$1,234.57". Codes unknown to ISO 4217 fall back to "1234.57 CODE".
// Display only: stored and converted values are never rounded.
func FormatFiat(amount decimal.Decimal, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
