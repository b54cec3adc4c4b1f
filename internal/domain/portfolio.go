package domain

import (
	"sort"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Position is a held quantity of one crypto asset.
type Position struct {
	Currency *Currency `json:"currency"`
	Amount   int       `json:"amount"`
}

// Code returns the code of the held currency.
func (p Position) Code() string {
	if p.Currency == nil {
		return ""
	}
	return p.Currency.Code
}

// Value returns Amount * ValueEUR.
func (p Position) Value() decimal.Decimal {
	if p.Currency == nil {
		return decimal.Zero
	}
	return p.Currency.ValueEUR.Mul(decimal.NewFromInt(int64(p.Amount)))
}

// Portfolio holds at most one Position per currency code. Entries never
// have a zero amount: they are removed instead.
//
// A Portfolio is not safe for concurrent use.
type Portfolio struct {
	positions map[string]*Position
}

// NewPortfolio creates an empty Portfolio.
func NewPortfolio() *Portfolio {
	return &Portfolio{positions: make(map[string]*Position)}
}

// AddPosition buys one unit of currency.
func (p *Portfolio) AddPosition(currency *Currency) *Portfolio {
	if existing, ok := p.positions[currency.Code]; ok {
		existing.Amount++
		return p
	}
	p.positions[currency.Code] = &Position{Currency: currency, Amount: 1}
	return p
}

// DeletePosition drops the whole position for code. Unknown codes are ignored.
func (p *Portfolio) DeletePosition(code string) *Portfolio {
	delete(p.positions, code)
	return p
}

// SellPosition sells one unit of code, dropping the position once it is empty.
// Unknown codes are ignored.
func (p *Portfolio) SellPosition(code string) *Portfolio {
	existing, ok := p.positions[code]
	if !ok {
		return p
	}
	existing.Amount--
	if existing.Amount <= 0 {
		delete(p.positions, code)
	}
	return p
}

// Position returns a copy of the position held for code.
func (p *Portfolio) Position(code string) (Position, bool) {
	pos, ok := p.positions[code]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// Positions returns copies of all positions ordered by code.
func (p *Portfolio) Positions() []Position {
	codes := lo.Keys(p.positions)
	sort.Strings(codes)
	return lo.Map(codes, func(code string, _ int) Position {
		return *p.positions[code]
	})
}

// Len returns the number of distinct positions.
func (p *Portfolio) Len() int {
	return len(p.positions)
}

// TotalEUR sums the EUR value of all positions.
func (p *Portfolio) TotalEUR() decimal.Decimal {
	return lo.Reduce(lo.Values(p.positions), func(acc decimal.Decimal, pos *Position, _ int) decimal.Decimal {
		return acc.Add(pos.Value())
	}, decimal.Zero)
}

// Clear removes every position.
func (p *Portfolio) Clear() {
	clear(p.positions)
}
